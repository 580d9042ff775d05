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

	log "github.com/sirupsen/logrus"

	"github.com/xelalexv/tibasic/pkg/prgm"
)

// MaxFileSize is the largest program file that will be read
const MaxFileSize = prgm.HeaderLength + prgm.SizeLimit + prgm.FooterLength

// PRGM is a reader/writer for 8xp program files
type PRGM struct{}

//
func NewPRGM() *PRGM {
	return &PRGM{}
}

//
func (f *PRGM) Read(in io.Reader, strict bool) (*prgm.Program, error) {

	buf, err := io.ReadAll(io.LimitReader(in, MaxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("error reading program file: %w", err)
	}

	p, err := prgm.Parse(buf)
	if err != nil {
		return nil, err
	}

	if err := p.Validate(); err != nil {
		if strict {
			return nil, fmt.Errorf("defective program file: %w", err)
		}
		log.Warnf("defective program file: %v", err)
	}

	log.Debugf("read program '%s' with %d bytes", p.Name(), len(p.Body))
	return p, nil
}

//
func (f *PRGM) Write(p *prgm.Program, out io.Writer) error {
	_, err := p.WriteTo(out)
	return err
}
