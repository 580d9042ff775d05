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
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/xelalexv/tibasic/pkg/basic"
	"github.com/xelalexv/tibasic/pkg/format"
	"github.com/xelalexv/tibasic/pkg/prgm"
	"github.com/xelalexv/tibasic/pkg/tokens"
)

//
func NewDecompile() *Decompile {

	d := &Decompile{}
	d.Runner = *NewRunner(
		`decompile -i|--input {file} [-o|--output {file}] [-p|--passes]
          [--color {auto|always|never}] [-f|--force] [-t|--tokens {file}]`,
		"decompile a program file into plain text",
		"\nUse the decompile command to turn an .8xp program file into a TI-Basic listing.",
		"", `- When no output file is given, the listing is written to stdout. If stdout is
  a terminal, the listing is colorized by token category, unless turned off
  with --color never.

- With --passes, the program is decoded category by category rather than by
  longest token. This only covers single byte tokens and lowercase letters,
  and is only provided for comparison.

- Bytes that do not correspond to any token are skipped, and reported as
  warnings.

`+runnerHelpEpilogue, d.Run)

	d.AddBaseSettings()
	d.AddSetting(&d.Input, "input", "i", "", nil, "program input file", true)
	d.AddSetting(&d.Output, "output", "o", "", nil, "plain text output file", false)
	d.AddSetting(&d.Passes, "passes", "p", "", false,
		"decode category by category", false)
	d.AddSetting(&d.Color, "color", "", "TIBASIC_COLOR", colorAuto,
		"colorize listing: auto, always, never", false)
	d.AddSetting(&d.Force, "force", "f", "", false,
		"force overwriting output file", false)

	return d
}

//
type Decompile struct {
	//
	Runner
	//
	Input  string
	Output string
	Passes bool
	Color  string
	Force  bool
}

//
func (d *Decompile) Run() error {

	if err := d.ParseSettings(); err != nil {
		return err
	}

	entries, err := d.Entries()
	if err != nil {
		return err
	}

	p, err := d.readProgram(
		d.Input, false, false, format.Options{Entries: entries})
	if err != nil {
		return err
	}

	var unknown []basic.UnknownByte

	if d.Output == "" {
		if unknown, err = d.list(d.Out(), d.Color, p, entries); err != nil {
			return err
		}

	} else {
		if !d.confirmOverwrite(d.Output, d.Force) {
			return nil
		}
		f, err := os.Create(d.Output)
		if err != nil {
			return err
		}
		w := bufio.NewWriter(f)
		if unknown, err = d.list(w, colorNever, p, entries); err == nil {
			err = w.Flush()
		}
		if cErr := f.Close(); err == nil {
			err = cErr
		}
		if err != nil {
			return fmt.Errorf("cannot write %s: %w", d.Output, err)
		}
	}

	if len(unknown) > 0 {
		log.WithFields(log.Fields{
			"program": p.Name(),
			"unknown": len(unknown),
		}).Warn("program contains bytes that could not be decoded")
	}

	return nil
}

// list writes the decompiled program to out, using the given color mode.
func (d *Decompile) list(out io.Writer, mode string, p *prgm.Program,
	entries []tokens.Entry) ([]basic.UnknownByte, error) {

	if d.Passes {
		lines, unknown := basic.DecodePasses(p.Body, entries)
		for _, l := range lines {
			if _, err := fmt.Fprintln(out, l); err != nil {
				return nil, err
			}
		}
		return unknown, nil
	}

	dc, err := basic.NewDecompiler(entries)
	if err != nil {
		return nil, err
	}
	palette, err := newPalette(mode, out)
	if err != nil {
		return nil, err
	}
	toks, unknown := dc.Tokens(p.Body)
	return unknown, writeListing(out, toks, palette)
}
