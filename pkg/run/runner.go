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
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xelalexv/tibasic/pkg/format"
	"github.com/xelalexv/tibasic/pkg/prgm"
	"github.com/xelalexv/tibasic/pkg/tokens"
)

//
const runnerHelpPrologue = ""
const runnerHelpEpilogue = `- When a flag can be set via environment variable, the variable name is given
  in parenthesis at the end of the flag explanation. Note however that a flag,
  when specified overrides an environment variable.
`

/*
	NewRunner creates a base runner for commands to use. The parameters are
	passed to the base command wrapped by this runner.
*/
func NewRunner(use, short, long, helpPrologue, helpEpilogue string,
	exec func() error) *Runner {
	return &Runner{
		Command: *NewCommand(
			use, short, long, helpPrologue, helpEpilogue, exec),
	}
}

//
type Runner struct {
	//
	Command
	//
	Tokens string
}

//
func (r *Runner) AddBaseSettings() {
	// Implementation Note: This cannot be included in NewRunner, but rather has
	// to be called from the top level command type. Otherwise, we will confuse
	// Cobra/Viper and the settings will not be filled with their values.
	r.AddSetting(&r.Tokens, "tokens", "t", "TIBASIC_TOKENS", nil,
		"file with additional token table entries (yaml, json, toml)", false)
}

// Entries returns the token table to use, i.e. the built-in table extended by
// the entries from the tokens file, if any.
func (r *Runner) Entries() ([]tokens.Entry, error) {
	return tokens.WithFile(r.Tokens)
}

/*
	readProgram reads the program from file. When allowText is set and the file
	has a plain text extension (.txt, .basic), it gets compiled. Any other file
	is read as a program file, regardless of its extension.
*/
func (r *Runner) readProgram(file string, strict, allowText bool,
	opts format.Options) (*prgm.Program, error) {

	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var form format.Reader = format.NewPRGM()
	if allowText && isTextFile(file) {
		if form, err = format.NewFormat(getExtension(file), opts); err != nil {
			return nil, err
		}
	}

	return form.Read(bufio.NewReader(f), strict)
}

//
func isTextFile(file string) bool {
	switch getExtension(file) {
	case "txt", "basic":
		return true
	}
	return false
}

//
func (r *Runner) confirmOverwrite(file string, force bool) bool {
	if force {
		return true
	}
	if _, err := os.Stat(file); err == nil {
		return GetUserConfirmation(
			fmt.Sprintf("File %s exists, overwrite?", file))
	}
	return true
}

//
func getExtension(file string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(file), "."))
}
