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
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xelalexv/tibasic/pkg/prgm"
)

func init() {
	UnderTest = true
}

//
func writeTextFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestCompileToFile(t *testing.T) {
	dir := t.TempDir()
	in := writeTextFile(t, dir, "hello.txt", "Disp \"HI\"\n")
	out := filepath.Join(dir, "hello.out")

	c := NewCompile()
	require.NoError(t, c.Execute([]string{"-i", in, "-o", out, "-c", "test"}))

	buf, err := os.ReadFile(filepath.Join(dir, "hello.8xp"))
	require.NoError(t, err)

	p, err := prgm.Parse(buf)
	require.NoError(t, err)
	assert.NoError(t, p.Validate())
	assert.Equal(t, []byte{0xde, 0x2a, 0x48, 0x49, 0x2a}, p.Body)
	assert.Equal(t, "HELLO", p.Name())
	assert.Equal(t, "test", p.Comment())
}

func TestCompileToStdout(t *testing.T) {
	dir := t.TempDir()
	in := writeTextFile(t, dir, "hello.txt", "Disp \"HI\"\n")

	var out bytes.Buffer
	c := NewCompile()
	c.SetOutput(&out)
	require.NoError(t, c.Execute([]string{"-i", in, "-n", "greet"}))

	// complete program file, header included
	assert.Contains(t, out.String(), "de 2a 48 49")
	assert.Contains(t, out.String(), "|**TI83F*")
}

func TestCompileRequiresInput(t *testing.T) {
	err := NewCompile().Execute([]string{"-n", "X"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--input")
}

func TestCompileUntokenizable(t *testing.T) {
	dir := t.TempDir()
	in := writeTextFile(t, dir, "bad.txt", "A\nB~\n")

	var out bytes.Buffer
	c := NewCompile()
	c.SetOutput(&out)
	err := c.Execute([]string{"-i", in})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestDecompile(t *testing.T) {
	dir := t.TempDir()
	in := writeTextFile(t, dir, "loop.txt",
		"For(I,1,10)\nDisp I\nEnd\n")
	require.NoError(t, NewCompile().Execute(
		[]string{"-i", in, "-o", filepath.Join(dir, "loop")}))
	program := filepath.Join(dir, "loop.8xp")

	for _, tt := range []struct {
		args  []string
		color bool
	}{
		{[]string{"--color", "never"}, false},
		{[]string{"--color", "always"}, true},
		{[]string{"--passes"}, false},
	} {
		var out bytes.Buffer
		d := NewDecompile()
		d.SetOutput(&out)
		require.NoError(t, d.Execute(append([]string{"-i", program}, tt.args...)))

		if tt.color {
			assert.Contains(t, out.String(), "\x1b[")
		} else {
			assert.NotContains(t, out.String(), "\x1b[")
		}
		if tt.args[0] != "--passes" {
			assert.Equal(t, "For(I,1,10)\nDisp I\nEnd\n",
				stripColors(out.String()))
		}
	}
}

func TestDecompileToFile(t *testing.T) {
	dir := t.TempDir()
	in := writeTextFile(t, dir, "hi.txt", "Disp \"HI\"")
	require.NoError(t, NewCompile().Execute(
		[]string{"-i", in, "-o", filepath.Join(dir, "hi")}))

	out := filepath.Join(dir, "decompiled.txt")
	require.NoError(t, NewDecompile().Execute(
		[]string{"-i", filepath.Join(dir, "hi.8xp"), "-o", out}))

	buf, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "Disp \"HI\"\n", string(buf))
}

func TestDecompileIgnoresExtension(t *testing.T) {
	dir := t.TempDir()
	in := writeTextFile(t, dir, "guess.txt", "Disp \"HI\"")
	require.NoError(t, NewCompile().Execute(
		[]string{"-i", in, "-o", filepath.Join(dir, "guess")}))
	buf, err := os.ReadFile(filepath.Join(dir, "guess.8xp"))
	require.NoError(t, err)

	for _, name := range []string{"GUESS", "guess.bak"} {
		program := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(program, buf, 0644))

		var out bytes.Buffer
		d := NewDecompile()
		d.SetOutput(&out)
		require.NoError(t, d.Execute(
			[]string{"-i", program, "--color", "never"}), name)
		assert.Equal(t, "Disp \"HI\"\n", out.String(), name)
	}

	// plain text is not a program file
	d := NewDecompile()
	d.SetOutput(&bytes.Buffer{})
	err = d.Execute([]string{"-i", in})
	require.Error(t, err)
	assert.True(t, errors.Is(err, prgm.ErrUndersize))
}

func TestDecompileReportsWriteErrors(t *testing.T) {
	if _, err := os.Stat("/dev/full"); err != nil {
		t.Skip("no /dev/full on this system")
	}

	dir := t.TempDir()
	in := writeTextFile(t, dir, "w.txt", "Disp \"HI\"")
	require.NoError(t, NewCompile().Execute(
		[]string{"-i", in, "-o", filepath.Join(dir, "w")}))

	err := NewDecompile().Execute([]string{
		"-i", filepath.Join(dir, "w.8xp"), "-o", "/dev/full", "-f"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/dev/full")
}

func TestDecompileInvalidColorMode(t *testing.T) {
	dir := t.TempDir()
	in := writeTextFile(t, dir, "a.txt", "A")
	require.NoError(t, NewCompile().Execute(
		[]string{"-i", in, "-o", filepath.Join(dir, "a")}))

	d := NewDecompile()
	d.SetOutput(&bytes.Buffer{})
	err := d.Execute(
		[]string{"-i", filepath.Join(dir, "a.8xp"), "--color", "sometimes"})
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	in := writeTextFile(t, dir, "v.txt", "Disp 1")
	require.NoError(t, NewCompile().Execute(
		[]string{"-i", in, "-o", filepath.Join(dir, "v")}))
	program := filepath.Join(dir, "v.8xp")

	var out bytes.Buffer
	v := NewValidate()
	v.SetOutput(&out)
	require.NoError(t, v.Execute([]string{"-i", program}))
	assert.Contains(t, out.String(), `valid program "V"`)

	buf, err := os.ReadFile(program)
	require.NoError(t, err)
	buf[5] = 'X'
	broken := filepath.Join(dir, "broken.8xp")
	require.NoError(t, os.WriteFile(broken, buf, 0644))

	err = NewValidate().Execute([]string{"-i", broken})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "signature")

	short := filepath.Join(dir, "short.8xp")
	require.NoError(t, os.WriteFile(short, buf[:10], 0644))
	err = NewValidate().Execute([]string{"-i", short})
	assert.True(t, errors.Is(err, prgm.ErrUndersize))
}

func TestDump(t *testing.T) {
	dir := t.TempDir()
	in := writeTextFile(t, dir, "d.txt", "ClrHome")

	var out bytes.Buffer
	d := NewDump()
	d.SetOutput(&out)
	require.NoError(t, d.Execute([]string{"-i", in, "-n", "dumped"}))
	assert.Contains(t, out.String(), `PROGRAM: "DUMPED"`)
	assert.Contains(t, out.String(), "BODY:")
	assert.Contains(t, out.String(), "e1")
}

func TestVerify(t *testing.T) {
	dir := t.TempDir()

	var out bytes.Buffer
	v := NewVerify()
	v.SetOutput(&out)
	ok := writeTextFile(t, dir, "ok.txt", "Disp \"HI\"\nrandInt(1,6) -> A\n")
	require.NoError(t, v.Execute([]string{"-i", ok}))
	assert.Contains(t, out.String(), "ok")

	out.Reset()
	v = NewVerify()
	v.SetOutput(&out)
	// Disp without its trailing space comes back with it
	bad := writeTextFile(t, dir, "bad.txt", "Disp\"HI\"\n")
	err := v.Execute([]string{"-i", bad})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMismatch))
}

func TestTokens(t *testing.T) {
	var out bytes.Buffer
	tk := NewTokens()
	tk.SetOutput(&out)
	require.NoError(t, tk.Execute([]string{"-c", "keyword", "--color", "never"}))
	assert.Contains(t, out.String(), `"Disp "`)
	assert.NotContains(t, out.String(), "uppercase")

	assert.Error(t, NewTokens().Execute([]string{"-c", "bogus"}))
}

func TestTokensFromFile(t *testing.T) {
	dir := t.TempDir()
	table := writeTextFile(t, dir, "extra.yaml", `
tokens:
  - code: "BB54"
    text: "DelVar "
`)

	var out bytes.Buffer
	tk := NewTokens()
	tk.SetOutput(&out)
	require.NoError(t, tk.Execute(
		[]string{"-t", table, "-c", "keyword", "--color", "never"}))
	assert.Contains(t, out.String(), `"DelVar "`)

	in := writeTextFile(t, dir, "del.txt", "DelVar A")
	c := NewCompile()
	c.SetOutput(&bytes.Buffer{})
	require.NoError(t, c.Execute(
		[]string{"-i", in, "-t", table, "-o", filepath.Join(dir, "del")}))
	buf, err := os.ReadFile(filepath.Join(dir, "del.8xp"))
	require.NoError(t, err)
	assert.Equal(t, []byte{0xbb, 0x54, 0x41},
		buf[prgm.HeaderLength:len(buf)-prgm.FooterLength])
}

func TestTokensFromEnv(t *testing.T) {
	dir := t.TempDir()
	table := writeTextFile(t, dir, "extra.json",
		`{"tokens": [{"code": "BB55", "text": "GraphStyle("}]}`)
	t.Setenv("TIBASIC_TOKENS", table)

	var out bytes.Buffer
	tk := NewTokens()
	tk.SetOutput(&out)
	require.NoError(t, tk.Execute([]string{"--color", "never"}))
	assert.Contains(t, out.String(), `"GraphStyle("`)
}

func TestGetExtension(t *testing.T) {
	assert.Equal(t, "8xp", getExtension("dir/prog.8XP"))
	assert.Equal(t, "txt", getExtension("prog.txt"))
	assert.Equal(t, "", getExtension("prog"))
}

//
func stripColors(s string) string {
	var ret []rune
	esc := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			esc = true
		case esc && r == 'm':
			esc = false
		case !esc:
			ret = append(ret, r)
		}
	}
	return string(ret)
}
