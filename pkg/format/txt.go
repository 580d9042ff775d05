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

package format

import (
	"bufio"
	"io"
	"strings"

	"github.com/xelalexv/tibasic/pkg/basic"
	"github.com/xelalexv/tibasic/pkg/prgm"
)

// DefaultName is used for programs built from plain text without a name
const DefaultName = "PRGM"

// TXT is a reader/writer for plain text listings
type TXT struct {
	opts Options
}

//
func NewTXT(opts Options) *TXT {
	return &TXT{opts: opts}
}

// Read compiles the plain text from in and wraps it into a program. Strict has
// no effect, since compile errors are always fatal.
func (t *TXT) Read(in io.Reader, strict bool) (*prgm.Program, error) {

	lines, err := ReadLines(in)
	if err != nil {
		return nil, err
	}

	body, err := t.Encode(lines)
	if err != nil {
		return nil, err
	}

	name := t.opts.Name
	if name == "" {
		name = DefaultName
	}
	comment := t.opts.Comment
	if comment == "" {
		comment = prgm.DefaultComment
	}

	return prgm.Build(body, name, comment)
}

// Write decompiles the program and writes the lines to out.
func (t *TXT) Write(p *prgm.Program, out io.Writer) error {

	lines, _, err := t.Decode(p.Body)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(out)
	for _, l := range lines {
		if _, err := w.WriteString(l + "\n"); err != nil {
			return err
		}
	}
	return w.Flush()
}

// Encode compiles lines with the configured token table.
func (t *TXT) Encode(lines []string) ([]byte, error) {
	c, err := basic.NewCompiler(t.opts.entries())
	if err != nil {
		return nil, err
	}
	return c.Encode(lines)
}

// Decode decompiles body with the configured token table and decoder.
func (t *TXT) Decode(body []byte) ([]string, []basic.UnknownByte, error) {

	if t.opts.Passes {
		lines, unknown := basic.DecodePasses(body, t.opts.entries())
		return lines, unknown, nil
	}

	d, err := basic.NewDecompiler(t.opts.entries())
	if err != nil {
		return nil, nil, err
	}
	lines, unknown := d.Decode(body)
	return lines, unknown, nil
}

// ReadLines reads all lines from in, without line endings.
func ReadLines(in io.Reader) ([]string, error) {

	var lines []string

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	for scanner.Scan() {
		lines = append(lines, strings.TrimSuffix(scanner.Text(), "\r"))
	}

	return lines, scanner.Err()
}
