/*
   tibasic - TI-Basic program compiler & decompiler
   Copyright (c) 2021, Alexander Vollschwitz

   This file is part of tibasic.

   tibasic is free software: you can redistribute it and/or modify
   it under the terms of the GNU General Public License as published by
   the Free Software Foundation, either version 3 of the License, or
   (at your option) any later version.

   tibasic is distributed in the hope that it will be useful,
   but WITHOUT ANY WARRANTY; without even the implied warranty of
   MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
   GNU General Public License for more details.

   You should have received a copy of the GNU General Public License
   along with tibasic. If not, see <http://www.gnu.org/licenses/>.
*/

package main

import (
	"fmt"
	"os"

	"github.com/xelalexv/tibasic/pkg/run"
)

//
var TIBasicVersion string

//
func synopsis() {
	fmt.Print(`
synopsis: tibasic {compile|decompile|validate|dump|verify|tokens|serve|version} ...

run 'tibasic {action} -h|--help' to see detailed info

`)
}

//
func version() {
	fmt.Printf("\ntibasic %s\n\n", TIBasicVersion)
}

//
func main() {

	var action string
	var args []string

	if len(os.Args) > 1 {
		action = os.Args[1]
	}

	if len(os.Args) > 2 {
		args = os.Args[2:]
	}

	switch action {

	case "compile":
		run.DieOnError(run.NewCompile().Execute(args))

	case "decompile":
		run.DieOnError(run.NewDecompile().Execute(args))

	case "validate":
		run.DieOnError(run.NewValidate().Execute(args))

	case "dump":
		run.DieOnError(run.NewDump().Execute(args))

	case "verify":
		run.DieOnError(run.NewVerify().Execute(args))

	case "tokens":
		run.DieOnError(run.NewTokens().Execute(args))

	case "serve":
		version()
		run.DieOnError(run.NewServe().Execute(args))

	case "version":
		version()

	case "":
		fallthrough
	case "-h":
		fallthrough
	case "--help":
		synopsis()

	default:
		run.Die("unknown action: %s\n", action)
	}
}
