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

package control

import (
	"fmt"
	"strings"

	"github.com/xelalexv/tibasic/pkg/basic"
	"github.com/xelalexv/tibasic/pkg/prgm"
	"github.com/xelalexv/tibasic/pkg/tokens"
)

// Listing is a decompiled program
type Listing struct {
	Name     string   `json:"name"`
	Comment  string   `json:"comment"`
	Valid    bool     `json:"valid"`
	Lines    []string `json:"lines"`
	Warnings []string `json:"warnings,omitempty"`
}

//
func newListing(p *prgm.Program, lines []string,
	unknown []basic.UnknownByte) *Listing {

	ret := &Listing{
		Name:    p.Name(),
		Comment: p.Comment(),
		Valid:   p.Validate() == nil,
		Lines:   lines,
	}
	if ret.Lines == nil {
		ret.Lines = []string{}
	}
	for _, u := range unknown {
		ret.Warnings = append(ret.Warnings, u.String())
	}
	return ret
}

// Validation is the result of validating a program file
type Validation struct {
	Valid bool   `json:"valid"`
	Name  string `json:"name,omitempty"`
	Size  int    `json:"size"`
	Error string `json:"error,omitempty"`
}

//
func (v *Validation) String() string {
	if v.Valid {
		return fmt.Sprintf("valid program %+q, size %d", v.Name, v.Size)
	}
	return fmt.Sprintf("invalid program: %s", v.Error)
}

//
type Token struct {
	Code     string `json:"code"`
	Category string `json:"category"`
	Text     string `json:"text"`
}

//
type TokenList []*Token

//
func newTokenList(entries []tokens.Entry) TokenList {
	ret := make(TokenList, 0, len(entries))
	for _, e := range entries {
		ret = append(ret, &Token{
			Code:     e.Code.String(),
			Category: e.Category.String(),
			Text:     e.Text,
		})
	}
	return ret
}

//
func (l TokenList) String() string {
	var sb strings.Builder
	sb.WriteString("\nCODE CATEGORY   TEXT")
	for _, t := range l {
		sb.WriteString(fmt.Sprintf("\n%-4s %-10s %+q", t.Code, t.Category, t.Text))
	}
	return sb.String()
}
