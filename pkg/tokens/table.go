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
	"errors"
	"fmt"
	"unicode/utf8"
)

// ErrConfig indicates an inconsistent token table
var ErrConfig = errors.New("inconsistent token table")

// ConfigError is returned when a table cannot be built because two entries
// share a code, or share a fragment key after trimming delimiters.
type ConfigError struct {
	Key    string
	First  Entry
	Second Entry
	byCode bool
}

//
func (e *ConfigError) Error() string {
	if e.byCode {
		return fmt.Sprintf("%v: code %s used for both %+q and %+q",
			ErrConfig, e.First.Code, e.First.Text, e.Second.Text)
	}
	return fmt.Sprintf("%v: fragment %+q maps to both %s and %s",
		ErrConfig, e.Key, e.First.Code, e.Second.Code)
}

//
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}

// Forward maps token codes to fragments, for decoding
type Forward map[Code]string

// ForwardTable returns the forward view of the built-in table.
func ForwardTable() (Forward, error) {
	return NewForward(Default())
}

// NewForward creates the forward view of the given entries. Duplicate codes
// cause a ConfigError.
func NewForward(entries []Entry) (Forward, error) {
	ret := make(Forward, len(entries))
	seen := make(map[Code]Entry, len(entries))
	for _, e := range entries {
		if e.Code.Len() < 1 || e.Code.Len() > 2 {
			return nil, fmt.Errorf("%w: code of %+q has %d bytes",
				ErrConfig, e.Text, e.Code.Len())
		}
		if prev, ok := seen[e.Code]; ok {
			return nil, &ConfigError{
				Key: e.Code.String(), First: prev, Second: e, byCode: true}
		}
		seen[e.Code] = e
		ret[e.Code] = e.Text
	}
	return ret, nil
}

// Lookup looks up the fragment for the given raw code bytes.
func (f Forward) Lookup(code ...byte) (string, bool) {
	s, ok := f[Code(code)]
	return s, ok
}

// Inverse maps trimmed fragments to entries, for encoding
type Inverse struct {
	keys    map[string]Entry
	longest int
}

// InverseTable returns the inverse view of the built-in table.
func InverseTable() (*Inverse, error) {
	return NewInverse(Default())
}

// NewInverse creates the inverse view of the given entries. When two entries
// end up with the same key, a ConfigError is returned, since the code could
// not be uniquely recovered from text.
func NewInverse(entries []Entry) (*Inverse, error) {

	if _, err := NewForward(entries); err != nil {
		return nil, err
	}

	inv := &Inverse{keys: make(map[string]Entry, len(entries))}

	for _, e := range entries {
		k := e.Key()
		if k == "" {
			return nil, fmt.Errorf("%w: empty fragment for code %s",
				ErrConfig, e.Code)
		}
		if prev, ok := inv.keys[k]; ok {
			return nil, &ConfigError{Key: k, First: prev, Second: e}
		}
		inv.keys[k] = e
		if l := utf8.RuneCountInString(e.Text); l > inv.longest {
			inv.longest = l
		}
	}

	return inv, nil
}

//
func (i *Inverse) Lookup(key string) (Entry, bool) {
	e, ok := i.keys[key]
	return e, ok
}

// Longest returns the length in runes of the longest fragment, including its
// padding.
func (i *Inverse) Longest() int {
	return i.longest
}

//
func (i *Inverse) Len() int {
	return len(i.keys)
}
