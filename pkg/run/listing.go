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
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/xelalexv/tibasic/pkg/basic"
	"github.com/xelalexv/tibasic/pkg/tokens"
)

//
const (
	colorAuto   = "auto"
	colorAlways = "always"
	colorNever  = "never"
)

/*
	newPalette returns the colors to use for each token category. Mode is one
	of auto, always, or never. With auto, colors are only used when out is a
	terminal.
*/
func newPalette(mode string, out io.Writer) (map[tokens.Category]*color.Color,
	error) {

	var enable bool

	switch strings.ToLower(mode) {
	case colorAuto, "":
		enable = isTerminal(out)
	case colorAlways:
		enable = true
	case colorNever:
		enable = false
	default:
		return nil, fmt.Errorf("invalid color mode: %s", mode)
	}

	ret := map[tokens.Category]*color.Color{
		tokens.Uppercase:  color.New(color.FgWhite),
		tokens.Lowercase:  color.New(color.FgGreen),
		tokens.Symbol:     color.New(color.FgYellow),
		tokens.Whitespace: color.New(color.Reset),
		tokens.Keyword:    color.New(color.FgCyan, color.Bold),
	}

	for _, c := range ret {
		if enable {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	return ret, nil
}

//
func isTerminal(out io.Writer) bool {
	if f, ok := out.(*os.File); ok {
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return false
}

// writeListing writes the text of toks to out, colored by token category.
func writeListing(out io.Writer, toks []basic.Token,
	palette map[tokens.Category]*color.Color) error {

	if len(toks) == 0 {
		return nil
	}

	for _, t := range toks {
		var err error
		if c, ok := palette[t.Category]; ok && t.Text != basic.LineSeparator {
			_, err = c.Fprint(out, t.Text)
		} else {
			_, err = io.WriteString(out, t.Text)
		}
		if err != nil {
			return err
		}
	}

	_, err := io.WriteString(out, "\n")
	return err
}
