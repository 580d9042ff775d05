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

// Package translate rewrites a stream of raw bytes into text, one mapping at a
// time. Each pass only touches atoms that are still raw, so text produced by an
// earlier pass is never translated again.
package translate

import (
	"strings"
)

// Atom is one unit of a translation stream: either a raw byte still waiting to
// be translated, or the text it has been translated to.
type Atom struct {
	Offset   int
	Raw      byte
	Text     string
	Resolved bool
}

// Atoms turns raw bytes into a stream of unresolved atoms.
func Atoms(data []byte) []Atom {
	ret := make([]Atom, len(data))
	for ix, b := range data {
		ret[ix] = Atom{Offset: ix, Raw: b}
	}
	return ret
}

// Translate replaces every unresolved atom whose byte is a key in m with the
// mapped text. Atoms not in m pass through unchanged. The input is not
// modified.
func Translate(m map[byte]string, atoms []Atom) []Atom {
	ret := make([]Atom, 0, len(atoms))
	for _, a := range atoms {
		if !a.Resolved {
			if s, ok := m[a.Raw]; ok {
				a.Text, a.Resolved = s, true
			}
		}
		ret = append(ret, a)
	}
	return ret
}

/*
	TranslateEscaped works like Translate, but only maps atoms that follow the
	escape byte. The escape atom itself is dropped from the output. If the atom
	after an escape is missing, already resolved, or not in m, both atoms are
	left unmodified. The input is not modified.
*/
func TranslateEscaped(m map[byte]string, atoms []Atom, escape byte) []Atom {

	ret := make([]Atom, 0, len(atoms))

	for ix := 0; ix < len(atoms); ix++ {
		a := atoms[ix]
		if a.Resolved || a.Raw != escape {
			ret = append(ret, a)
			continue
		}
		if next, ok := lookahead(atoms, ix); ok {
			if s, found := m[next.Raw]; found {
				ret = append(ret, Atom{
					Offset: a.Offset, Raw: next.Raw, Text: s, Resolved: true})
				ix++
				continue
			}
		}
		ret = append(ret, a)
	}

	return ret
}

// lookahead returns the unresolved atom after position ix, if there is one.
func lookahead(atoms []Atom, ix int) (Atom, bool) {
	if ix+1 >= len(atoms) || atoms[ix+1].Resolved {
		return Atom{}, false
	}
	return atoms[ix+1], true
}

// Join concatenates the text of all resolved atoms. The offsets of atoms that
// are still unresolved are returned alongside.
func Join(atoms []Atom) (string, []int) {
	var sb strings.Builder
	var unresolved []int
	for _, a := range atoms {
		if a.Resolved {
			sb.WriteString(a.Text)
		} else {
			unresolved = append(unresolved, a.Offset)
		}
	}
	return sb.String(), unresolved
}
