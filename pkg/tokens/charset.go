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

//
var uppercase = []string{
	"A", "A", "B", "B", "C", "C", "D", "D", "E", "E", "F", "F", "G", "G",
	"H", "H", "I", "I", "J", "J", "K", "K", "L", "L", "M", "M", "N", "N",
	"O", "O", "P", "P", "Q", "Q", "R", "R", "S", "S", "T", "T", "U", "U",
	"V", "V", "W", "W", "X", "X", "Y", "Y", "Z", "Z",
	"0", "0", "1", "1", "2", "2", "3", "3", "4", "4",
	"5", "5", "6", "6", "7", "7", "8", "8", "9", "9",
	"*", `"`,
}

// lowercase letters without the escape byte; note that 0xbb is skipped
var lowercase = []string{
	"\xb0", "a",
	"\xb1", "b",
	"\xb2", "c",
	"\xb3", "d",
	"\xb4", "e",
	"\xb5", "f",
	"\xb6", "g",
	"\xb7", "h",
	"\xb8", "i",
	"\xb9", "j",
	"\xba", "k",
	"\xbc", "l",
	"\xbd", "m",
	"\xbe", "n",
	"\xbf", "o",
	"\xc0", "p",
	"\xc1", "q",
	"\xc2", "r",
	"\xc3", "s",
	"\xc4", "t",
	"\xc5", "u",
	"\xc6", "v",
	"\xc7", "w",
	"\xc8", "x",
	"\xc9", "y",
	"\xca", "z",
}

//
var symbols = []string{
	">", ":",
	"\x83", "/",
	"\x82", "*",
	"q", "-",
	"p", "+",
	"j", "=",
	"k", "<",
	"l", ">",
	"m", "<=",
	"n", ">=",
	"o", "!=",
	"+", ",",
	"\x10", "(",
	"\x11", ")",
	"\x06", "[",
	"\x07", "]",
	"\x08", "{",
	"\x09", "}",
	":", ".",
	"-", "!",
	"\xae", "'",
	"\xb0", "{-}",
	"\xaf", "?",
	"\xf0", "^",
}

//
var whitespace = []string{
	"?", "\n",
	")", " ",
}

//
var keywords = []string{
	"\xde", "Disp ",
	"\xdd", "Prompt ",
	"\xdc", "Input ",
	"\xce", "If ",
	"\xcf", "Then",
	"\xd0", "Else",
	"\xd1", "While ",
	"\xd2", "Repeat ",
	"\xd3", "For(",
	"\xd4", "End",
	"\xd5", "Return",
	"\xd6", "Lbl ",
	"\xd7", "Goto ",
	"\xd8", "Pause ",
	"\xd9", "Stop",
	"\xda", "IS>(",
	"\xdb", "DS<(",
	"\xdf", "DispGraph",
	"\xe0", "Output(",
	"\xe1", "ClrHome",
	"\xe6", "Menu(",
	"\x85", "ClrDraw",
	"\xad", "getKey",
	"r", "Ans",
	"\x04", " -> ",
	"@", " and ",
	"<", " or ",
	"=", " xor ",
	"\xb8", "not(",
	"\xab", "rand",
	"\xb1", "int(",
	"\xb2", "abs(",
	"\xb9", "iPart(",
	"\xba", "fPart(",
	"\xbc", "sqrt(",
	"\x12", "round(",
	"\xbb\x0a", "randInt(",
	"\xbb\x0c", "sub(",
	"\xbb\x0f", "inString(",
	"\xbb\x2a", "expr(",
	"\xbb\x2b", "length(",
}

// Default returns the built-in token table, ordered by category.
func Default() []Entry {
	var ret []Entry
	ret = appendPairs(ret, Uppercase, "", uppercase)
	ret = appendPairs(ret, Lowercase, string([]byte{Escape}), lowercase)
	ret = appendPairs(ret, Symbol, "", symbols)
	ret = appendPairs(ret, Whitespace, "", whitespace)
	ret = appendPairs(ret, Keyword, "", keywords)
	return ret
}

//
func appendPairs(to []Entry, cat Category, prefix string,
	pairs []string) []Entry {
	for ix := 0; ix+1 < len(pairs); ix += 2 {
		to = append(to, Entry{
			Code:     Code(prefix + pairs[ix]),
			Text:     pairs[ix+1],
			Category: cat,
		})
	}
	return to
}

// Filter returns the entries of the given category.
func Filter(entries []Entry, cat Category) []Entry {
	var ret []Entry
	for _, e := range entries {
		if e.Category == cat {
			ret = append(ret, e)
		}
	}
	return ret
}

// SingleByte returns the single byte view of one category, as used by the
// category pass decoder. For lowercase letters, the escape byte is dropped from
// the key. Entries that do not fit into a single byte key are left out.
func SingleByte(entries []Entry, cat Category) map[byte]string {
	ret := map[byte]string{}
	for _, e := range Filter(entries, cat) {
		c := e.Code
		if cat == Lowercase && c.Len() == 2 && c[0] == Escape {
			c = c[1:]
		}
		if c.Len() == 1 {
			ret[c[0]] = e.Text
		}
	}
	return ret
}
