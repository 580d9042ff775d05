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
	"fmt"
	"io"
	"os"

	"github.com/xelalexv/tibasic/pkg/format"
	"github.com/xelalexv/tibasic/pkg/prgm"
)

//
func NewValidate() *Validate {

	v := &Validate{}
	v.Runner = *NewRunner(
		"validate -i|--input {file}",
		"validate a program file",
		"\nUse the validate command to check signature, name marker, and size fields of an .8xp program file.",
		"", runnerHelpEpilogue, v.Run)

	v.AddSetting(&v.Input, "input", "i", "", nil, "program input file", true)

	return v
}

//
type Validate struct {
	//
	Runner
	//
	Input string
}

//
func (v *Validate) Run() error {

	if err := v.ParseSettings(); err != nil {
		return err
	}

	f, err := os.Open(v.Input)
	if err != nil {
		return err
	}
	defer f.Close()

	buf, err := io.ReadAll(io.LimitReader(f, format.MaxFileSize+1))
	if err != nil {
		return err
	}

	p, err := prgm.Parse(buf)
	if err != nil {
		return err
	}

	if err := p.Validate(); err != nil {
		return fmt.Errorf("%s: %w", v.Input, err)
	}

	fmt.Fprintf(v.Out(), "%s: valid program %+q, size %d\n",
		v.Input, p.Name(), p.Size())
	return nil
}
