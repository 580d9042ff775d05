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

package run

import (
	"github.com/xelalexv/tibasic/pkg/format"
)

//
func NewDump() *Dump {

	d := &Dump{}
	d.Runner = *NewRunner(
		"dump -i|--input {file} [-n|--name {name}] [-t|--tokens {file}]",
		"dump a program file",
		"\nUse the dump command to see a hex dump of a program's header, body, and footer.",
		"", `- When the input is a plain text file (.txt, .basic), it is compiled first.

`+runnerHelpEpilogue, d.Run)

	d.AddBaseSettings()
	d.AddSetting(&d.Input, "input", "i", "", nil, "program input file", true)
	d.AddSetting(&d.Name, "name", "n", "", nil,
		"program name, when compiling plain text", false)

	return d
}

//
type Dump struct {
	//
	Runner
	//
	Input string
	Name  string
}

//
func (d *Dump) Run() error {

	if err := d.ParseSettings(); err != nil {
		return err
	}

	entries, err := d.Entries()
	if err != nil {
		return err
	}

	p, err := d.readProgram(
		d.Input, false, true, format.Options{Name: d.Name, Entries: entries})
	if err != nil {
		return err
	}

	p.Emit(d.Out())
	return nil
}
