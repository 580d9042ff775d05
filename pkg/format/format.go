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
	"fmt"
	"io"
	"strings"

	"github.com/xelalexv/tibasic/pkg/prgm"
	"github.com/xelalexv/tibasic/pkg/tokens"
)

// Reader interface for reading in a program
type Reader interface {
	// when setting strict, programs that fail validation are rejected
	Read(in io.Reader, strict bool) (*prgm.Program, error)
}

// Writer interface for writing out a program
type Writer interface {
	Write(p *prgm.Program, out io.Writer) error
}

// ReaderWriter interface for reading/writing a program
type ReaderWriter interface {
	Reader
	Writer
}

// Options for reading & writing programs
type Options struct {
	// program name & comment used when building a program from plain text
	Name    string
	Comment string
	// token table; the built-in table when nil
	Entries []tokens.Entry
	// decode category by category instead of by longest code
	Passes bool
}

//
func (o Options) entries() []tokens.Entry {
	if o.Entries == nil {
		return tokens.Default()
	}
	return o.Entries
}

//
func NewFormat(typ string, opts Options) (ReaderWriter, error) {

	switch strings.ToLower(typ) {

	case prgm.Extension:
		return NewPRGM(), nil

	case "txt", "basic":
		return NewTXT(opts), nil

	default:
		return nil, fmt.Errorf("unsupported program format: %s", typ)
	}
}
