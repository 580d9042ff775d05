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

package basic

import (
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/xelalexv/tibasic/pkg/tokens"
)

// LineSeparator is the fragment of the newline token, at which decoded text
// is split into lines.
const LineSeparator = "\n"

// Token is a decoded token found in a program body
type Token struct {
	Offset   int
	Code     tokens.Code
	Text     string
	Category tokens.Category
}

// UnknownByte is a body byte for which there is no table entry
type UnknownByte struct {
	Offset int
	Value  byte
}

//
func (u UnknownByte) String() string {
	return fmt.Sprintf("unknown byte 0x%02X at offset %d", u.Value, u.Offset)
}

// Decompiler turns program bodies into plain text
type Decompiler struct {
	forward    tokens.Forward
	categories map[tokens.Code]tokens.Category
}

// NewDecompiler creates a decompiler for the given table entries.
func NewDecompiler(entries []tokens.Entry) (*Decompiler, error) {

	fwd, err := tokens.NewForward(entries)
	if err != nil {
		return nil, err
	}

	cats := make(map[tokens.Code]tokens.Category, len(entries))
	for _, e := range entries {
		cats[e.Code] = e.Category
	}

	return &Decompiler{forward: fwd, categories: cats}, nil
}

// Decompile decodes body with the built-in token table.
func Decompile(body []byte) ([]string, []UnknownByte, error) {
	d, err := NewDecompiler(tokens.Default())
	if err != nil {
		return nil, nil, err
	}
	lines, unknown := d.Decode(body)
	return lines, unknown, nil
}

/*
	Tokens scans body from left to right. At each position, a two byte token is
	tried first, then a single byte token. Bytes that match neither are skipped
	and reported, without aborting the scan.
*/
func (d *Decompiler) Tokens(body []byte) ([]Token, []UnknownByte) {

	var toks []Token
	var unknown []UnknownByte

	for ix := 0; ix < len(body); {

		if ix+1 < len(body) {
			if tok, ok := d.token(ix, body[ix:ix+2]); ok {
				toks = append(toks, tok)
				ix += 2
				continue
			}
		}

		if tok, ok := d.token(ix, body[ix:ix+1]); ok {
			toks = append(toks, tok)
			ix++
			continue
		}

		u := UnknownByte{Offset: ix, Value: body[ix]}
		log.Warnf("could not decode %v", u)
		unknown = append(unknown, u)
		ix++
	}

	return toks, unknown
}

//
func (d *Decompiler) token(offset int, code []byte) (Token, bool) {
	text, ok := d.forward.Lookup(code...)
	if !ok {
		return Token{}, false
	}
	c := tokens.Code(code)
	return Token{
		Offset: offset, Code: c, Text: text, Category: d.categories[c]}, true
}

// Decode decodes body into lines of plain text.
func (d *Decompiler) Decode(body []byte) ([]string, []UnknownByte) {
	toks, unknown := d.Tokens(body)
	return Lines(toks), unknown
}

// Lines joins the text of all tokens and splits it into lines.
func Lines(toks []Token) []string {
	if len(toks) == 0 {
		return nil
	}
	var sb strings.Builder
	for _, t := range toks {
		sb.WriteString(t.Text)
	}
	return strings.Split(sb.String(), LineSeparator)
}
