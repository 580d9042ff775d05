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

package prgm

// field offsets and lengths within the header
var headerIndex = map[string][2]int{
	"signature":   {0, 10},
	"comment":     {11, CommentLength},
	"placeholder": {55, 1},
	"unresolved":  {56, 1},
	"newline":     {57, 1},
	"size":        {59, 2},
	"marker":      {61, 1},
	"name":        {62, NameLength},
	"sizeAgain":   {72, 2},
	"dataSize":    {74, 2},
}

//
func newBlock(index map[string][2]int, data []byte) *block {
	return &block{index: index, data: data}
}

// block gives access to the fields of a byte slice via a field index
type block struct {
	index map[string][2]int
	data  []byte
}

//
func (b *block) getByte(key string) byte {
	if ix, ok := b.index[key]; ok {
		if 0 <= ix[0] && ix[0] < len(b.data) && ix[1] == 1 {
			return b.data[ix[0]]
		}
	}
	return 0
}

//
func (b *block) getSlice(key string) []byte {
	if ix, ok := b.index[key]; ok {
		start := ix[0]
		end := start + ix[1]
		if 0 <= start && end <= len(b.data) {
			return b.data[start:end]
		}
	}
	return []byte{}
}

// getSize decodes a two byte size field; -1 if the field is missing
func (b *block) getSize(key string) int {
	bytes := b.getSlice(key)
	if len(bytes) != 2 {
		return -1
	}
	return DecodeSize([2]byte{bytes[0], bytes[1]})
}

//
func (b *block) getString(key string) string {
	return string(b.getSlice(key))
}

// set copies val into the field, truncating or leaving the remainder of the
// field untouched, as needed
func (b *block) set(key string, val []byte) {
	copy(b.getSlice(key), val)
}

//
func (b *block) setByte(key string, val byte) {
	if s := b.getSlice(key); len(s) == 1 {
		s[0] = val
	}
}
