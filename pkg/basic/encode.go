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
	"errors"
	"fmt"
	"strings"
	"unicode"

	log "github.com/sirupsen/logrus"

	"github.com/xelalexv/tibasic/pkg/tokens"
)

// ErrUntokenizable indicates plain text for which no token could be found
var ErrUntokenizable = errors.New("untokenizable text")

// UntokenizableError reports where compiling got stuck. Offset is counted in
// runes, Line and Column start at 1.
type UntokenizableError struct {
	Offset   int
	Line     int
	Column   int
	Fragment string
}

//
func (e *UntokenizableError) Error() string {
	return fmt.Sprintf("%v: no token for %+q at line %d, column %d",
		ErrUntokenizable, e.Fragment, e.Line, e.Column)
}

//
func (e *UntokenizableError) Is(target error) bool {
	return target == ErrUntokenizable
}

//
func newUntokenizableError(src []rune, pos int) *UntokenizableError {
	line, col := 1, 1
	for _, r := range src[:pos] {
		if string(r) == LineSeparator {
			line++
			col = 1
		} else {
			col++
		}
	}
	return &UntokenizableError{
		Offset: pos, Line: line, Column: col, Fragment: string(src[pos])}
}

// Compiler turns plain text into program bodies
type Compiler struct {
	inverse *tokens.Inverse
}

// NewCompiler creates a compiler for the given table entries.
func NewCompiler(entries []tokens.Entry) (*Compiler, error) {
	inv, err := tokens.NewInverse(entries)
	if err != nil {
		return nil, err
	}
	return &Compiler{inverse: inv}, nil
}

// Compile encodes lines with the built-in token table.
func Compile(lines []string) ([]byte, error) {
	c, err := NewCompiler(tokens.Default())
	if err != nil {
		return nil, err
	}
	return c.Encode(lines)
}

/*
	Encode joins lines with the line separator and tokenizes the result with a
	greedy longest match: at each position, windows of decreasing length are
	looked up, starting at the length of the longest fragment in the table. The
	first match wins. A window may include the delimiter padding of the
	fragment it matches, e.g. the space after "Disp ", which is then consumed.
	If not even a single character matches, compiling fails.
*/
func (c *Compiler) Encode(lines []string) ([]byte, error) {

	src := []rune(strings.Join(lines, LineSeparator))
	out := make([]byte, 0, len(src))

	for pos := 0; pos < len(src); {
		e, n, ok := c.match(src, pos)
		if !ok {
			return nil, newUntokenizableError(src, pos)
		}
		out = append(out, e.Code.Bytes()...)
		pos += n
	}

	log.Debugf("compiled %d characters into %d bytes", len(src), len(out))
	return out, nil
}

//
func (c *Compiler) match(src []rune, pos int) (tokens.Entry, int, bool) {

	n := c.inverse.Longest()
	if rest := len(src) - pos; rest < n {
		n = rest
	}

	for ; n > 0; n-- {
		window := string(src[pos : pos+n])
		key := strings.Trim(window, tokens.Delimiters)
		if key == "" {
			key = window
		}
		if e, ok := c.inverse.Lookup(key); ok && fits(e, src, pos, n, window, key) {
			return e, n, true
		}
	}

	return tokens.Entry{}, 0, false
}

/*
	fits checks whether the delimiters around key in window are part of the
	entry's own padding. Padding may be left out, except where a word keyword
	would then touch a letter or digit, so that e.g. "random" does not turn into
	r, " and ", o, m.
*/
func fits(e tokens.Entry, src []rune, pos, n int, window, key string) bool {

	ix := strings.Index(window, key)
	lead, trail := window[:ix], window[ix+len(key):]
	eLead, eTrail := e.Padding()

	if !strings.HasSuffix(eLead, lead) || !strings.HasPrefix(eTrail, trail) {
		return false
	}

	k := []rune(key)

	if lead == "" && eLead != "" && isWord(k[0]) &&
		pos > 0 && isWord(src[pos-1]) {
		return false
	}

	end := pos + n
	if trail == "" && eTrail != "" && isWord(k[len(k)-1]) &&
		end < len(src) && isWord(src[end]) {
		return false
	}

	return true
}

//
func isWord(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
