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
	"bufio"
	"encoding/hex"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/xelalexv/tibasic/pkg/format"
	"github.com/xelalexv/tibasic/pkg/prgm"
)

//
func NewCompile() *Compile {

	c := &Compile{}
	c.Runner = *NewRunner(
		`compile -i|--input {file} [-o|--output {file}] [-n|--name {name}]
        [-c|--comment {comment}] [-f|--force] [-t|--tokens {file}]`,
		"compile plain text into a program file",
		"\nUse the compile command to turn a TI-Basic listing into an .8xp program file.",
		"", `- The output file always gets the .8xp extension, replacing any other
  extension. When no output file is given, a hex dump of the compiled program
  is written to stdout.

- The program name defaults to the upper cased name of the input file, and is
  truncated to 8 characters.

`+runnerHelpEpilogue, c.Run)

	c.AddBaseSettings()
	c.AddSetting(&c.Input, "input", "i", "", nil, "plain text input file", true)
	c.AddSetting(&c.Output, "output", "o", "", nil, "program output file", false)
	c.AddSetting(&c.Name, "name", "n", "", nil, "program name", false)
	c.AddSetting(&c.Comment, "comment", "c", "TIBASIC_COMMENT",
		prgm.DefaultComment, "comment to place in program header", false)
	c.AddSetting(&c.Force, "force", "f", "", false,
		"force overwriting output file", false)

	return c
}

//
type Compile struct {
	//
	Runner
	//
	Input   string
	Output  string
	Name    string
	Comment string
	Force   bool
}

//
func (c *Compile) Run() error {

	if err := c.ParseSettings(); err != nil {
		return err
	}

	entries, err := c.Entries()
	if err != nil {
		return err
	}

	name := c.Name
	if name == "" {
		name = prgm.NameFromFile(c.Input)
	}

	f, err := os.Open(c.Input)
	if err != nil {
		return err
	}
	defer f.Close()

	p, err := format.NewTXT(format.Options{
		Name: name, Comment: c.Comment, Entries: entries,
	}).Read(bufio.NewReader(f), true)
	if err != nil {
		return fmt.Errorf("cannot compile %s: %w", c.Input, err)
	}

	if c.Output == "" {
		d := hex.Dumper(c.Out())
		defer d.Close()
		_, err := p.WriteTo(d)
		return err
	}

	out := prgm.FileName(c.Output)
	if !c.confirmOverwrite(out, c.Force) {
		return nil
	}

	if err := writeFile(out, p); err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"file": out,
		"name": p.Name(),
		"size": p.Size(),
	}).Info("program compiled")

	return nil
}

//
func writeFile(file string, p *prgm.Program) error {

	f, err := os.Create(file)
	if err != nil {
		return err
	}
	defer f.Close()

	out := bufio.NewWriter(f)
	if err := format.NewPRGM().Write(p, out); err != nil {
		return err
	}
	return out.Flush()
}
