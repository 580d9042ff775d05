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
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
	log "github.com/sirupsen/logrus"

	"github.com/xelalexv/tibasic/pkg/basic"
	"github.com/xelalexv/tibasic/pkg/format"
	"github.com/xelalexv/tibasic/pkg/prgm"
	"github.com/xelalexv/tibasic/pkg/tokens"
)

//
var ErrMismatch = errors.New("round trip mismatch")

//
func NewVerify() *Verify {

	v := &Verify{}
	v.Runner = *NewRunner(
		"verify -i|--input {file} [-t|--tokens {file}]",
		"verify that a listing survives compiling and decompiling",
		`
Use the verify command to check that a TI-Basic listing comes out unchanged
after compiling it, wrapping it into a program file, parsing that file again,
and decompiling it.`,
		"", `- On a mismatch, the difference between the original and the decompiled
  listing is shown.

`+runnerHelpEpilogue, v.Run)

	v.AddBaseSettings()
	v.AddSetting(&v.Input, "input", "i", "", nil, "plain text input file", true)

	return v
}

//
type Verify struct {
	//
	Runner
	//
	Input string
}

//
func (v *Verify) Run() error {

	if err := v.ParseSettings(); err != nil {
		return err
	}

	entries, err := v.Entries()
	if err != nil {
		return err
	}

	f, err := os.Open(v.Input)
	if err != nil {
		return err
	}
	defer f.Close()

	lines, err := format.ReadLines(f)
	if err != nil {
		return err
	}

	got, err := roundTrip(lines, prgm.NameFromFile(v.Input), entries)
	if err != nil {
		return err
	}

	want := strings.Join(lines, basic.LineSeparator)
	if got != want {
		dmp := diffmatchpatch.New()
		diffs := dmp.DiffMain(want, got, false)
		fmt.Fprintln(v.Out(), dmp.DiffPrettyText(diffs))
		return fmt.Errorf("%s: %w", v.Input, ErrMismatch)
	}

	log.WithField("lines", len(lines)).Info("round trip ok")
	fmt.Fprintf(v.Out(), "%s: ok\n", v.Input)
	return nil
}

//
func roundTrip(lines []string, name string, entries []tokens.Entry) (string,
	error) {

	txt := format.NewTXT(format.Options{Name: name, Entries: entries})

	body, err := txt.Encode(lines)
	if err != nil {
		return "", err
	}

	built, err := prgm.Build(body, name, prgm.DefaultComment)
	if err != nil {
		return "", err
	}

	p, err := prgm.Parse(built.Bytes())
	if err != nil {
		return "", err
	}
	if err := p.Validate(); err != nil {
		return "", err
	}

	decoded, unknown, err := txt.Decode(p.Body)
	if err != nil {
		return "", err
	}
	if len(unknown) > 0 {
		return "", fmt.Errorf("%w: %v", ErrMismatch, unknown[0])
	}

	return strings.Join(decoded, basic.LineSeparator), nil
}
