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

package run

import (
	"fmt"

	"github.com/xelalexv/tibasic/pkg/tokens"
)

//
func NewTokens() *Tokens {

	t := &Tokens{}
	t.Runner = *NewRunner(
		`tokens [-c|--category {category}] [--color {auto|always|never}]
       [-t|--tokens {file}]`,
		"list the token table",
		"\nUse the tokens command to list the token table in use.",
		"", `- Categories are uppercase, lowercase, symbol, whitespace, and keyword.

- Entries added with a tokens file are included, and the table is checked for
  consistency.

`+runnerHelpEpilogue, t.Run)

	t.AddBaseSettings()
	t.AddSetting(&t.Category, "category", "c", "", nil,
		"list only entries of this category", false)
	t.AddSetting(&t.Color, "color", "", "TIBASIC_COLOR", colorAuto,
		"colorize listing: auto, always, never", false)

	return t
}

//
type Tokens struct {
	//
	Runner
	//
	Category string
	Color    string
}

//
func (t *Tokens) Run() error {

	if err := t.ParseSettings(); err != nil {
		return err
	}

	entries, err := t.Entries()
	if err != nil {
		return err
	}

	// building the inverse table checks both directions for collisions
	if _, err := tokens.NewInverse(entries); err != nil {
		return err
	}

	if t.Category != "" {
		cat, err := tokens.ParseCategory(t.Category)
		if err != nil {
			return err
		}
		entries = tokens.Filter(entries, cat)
	}

	palette, err := newPalette(t.Color, t.Out())
	if err != nil {
		return err
	}

	fmt.Fprintf(t.Out(), "\nCODE CATEGORY   TEXT\n")
	for _, e := range entries {
		palette[e.Category].Fprintln(t.Out(), e.String())
	}
	fmt.Fprintf(t.Out(), "\n%d entries\n\n", len(entries))

	return nil
}
