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

package tokens

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// Escape is the prefix byte in front of lowercase letters and the two byte
// keyword tokens.
const Escape byte = 0xbb

// Delimiters is the padding that may surround a fragment in hand written
// plain text, and which is disregarded when looking up fragments.
const Delimiters = " ,\n"

// Code is the raw token code of one or two bytes, as it appears in a program
// body.
type Code string

//
func NewCode(b ...byte) Code {
	return Code(b)
}

// ParseCode parses a code given as hex string, e.g. "BB0A".
func ParseCode(s string) (Code, error) {
	b, err := hex.DecodeString(strings.TrimPrefix(strings.ToLower(s), "0x"))
	if err != nil {
		return "", fmt.Errorf("invalid token code '%s': %w", s, err)
	}
	if len(b) < 1 || len(b) > 2 {
		return "", fmt.Errorf(
			"invalid token code '%s': need 1 or 2 bytes, got %d", s, len(b))
	}
	return Code(b), nil
}

//
func (c Code) Bytes() []byte {
	return []byte(c)
}

//
func (c Code) Len() int {
	return len(c)
}

//
func (c Code) String() string {
	return strings.ToUpper(hex.EncodeToString([]byte(c)))
}

// Category groups entries of the token table
type Category int

//
const (
	Uppercase Category = iota
	Lowercase
	Symbol
	Whitespace
	Keyword
)

//
var categoryNames = []string{
	"uppercase",
	"lowercase",
	"symbol",
	"whitespace",
	"keyword",
}

// Categories returns all categories in decoding pass order. Lowercase needs to
// come before Symbol, since their raw codes overlap.
func Categories() []Category {
	return []Category{Uppercase, Lowercase, Symbol, Whitespace, Keyword}
}

//
func ParseCategory(s string) (Category, error) {
	for ix, n := range categoryNames {
		if strings.EqualFold(s, n) {
			return Category(ix), nil
		}
	}
	return -1, fmt.Errorf("unknown token category: %s", s)
}

//
func (c Category) String() string {
	if 0 <= c && int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return fmt.Sprintf("category(%d)", int(c))
}

// Entry maps a token code to its plain text fragment
type Entry struct {
	Code     Code
	Text     string
	Category Category
}

// Key returns the fragment as used for looking up codes from plain text, i.e.
// with delimiter padding removed. Fragments made up of delimiters only, such
// as space or comma, are their own key.
func (e Entry) Key() string {
	if k := strings.Trim(e.Text, Delimiters); k != "" {
		return k
	}
	return e.Text
}

// Padding returns the delimiters surrounding the fragment's key.
func (e Entry) Padding() (lead, trail string) {
	k := e.Key()
	if k == e.Text {
		return "", ""
	}
	ix := strings.Index(e.Text, k)
	return e.Text[:ix], e.Text[ix+len(k):]
}

//
func (e Entry) String() string {
	return fmt.Sprintf("%-4s %-10s %+q", e.Code, e.Category, e.Text)
}
