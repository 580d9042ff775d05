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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xelalexv/tibasic/pkg/tokens"
)

func TestCompileDisp(t *testing.T) {
	body, err := Compile([]string{`Disp "HI"`})
	require.NoError(t, err)
	assert.Equal(t, []byte{0xde, 0x2a, 0x48, 0x49, 0x2a}, body)

	lines, unknown, err := Decompile(body)
	require.NoError(t, err)
	assert.Empty(t, unknown)
	assert.Equal(t, []string{`Disp "HI"`}, lines)
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  []string
	}{
		{
			name: "program",
			lines: []string{
				"ClrHome",
				"Prompt A,B",
				"If A>=B",
				"Then",
				`Disp "A IS BIGGER"`,
				"Else",
				`Disp "hello world"`,
				"End",
			},
		},
		{
			name: "loop",
			lines: []string{
				"randInt(1,6) -> X",
				"While X!=0",
				"X-1 -> X",
				`Output(1,1,"SCORE")`,
				"getKey -> K",
				"If K=21 and A<5 or B>2",
				"Lbl A",
				"Goto A",
				"Stop",
			},
		},
		{
			name:  "padding is normalized",
			lines: []string{"A->B", "DispB"},
			want:  []string{"A -> B", "DispB"},
		},
		{
			name:  "missing padding next to symbol",
			lines: []string{`Disp"OK"`},
			want:  []string{`Disp "OK"`},
		},
		{
			name:  "trailing empty line",
			lines: []string{"Stop", ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, err := Compile(tt.lines)
			require.NoError(t, err)
			lines, unknown, err := Decompile(body)
			require.NoError(t, err)
			assert.Empty(t, unknown)
			want := tt.want
			if want == nil {
				want = tt.lines
			}
			assert.Equal(t, want, lines)
		})
	}
}

func TestLongestMatchWins(t *testing.T) {
	body, err := Compile([]string{"While "})
	require.NoError(t, err)
	assert.Equal(t, []byte{0xd1}, body)

	body, err = Compile([]string{"randInt("})
	require.NoError(t, err)
	assert.Equal(t, []byte{0xbb, 0x0a}, body)

	body, err = Compile([]string{"rand"})
	require.NoError(t, err)
	assert.Equal(t, []byte{0xab}, body)

	body, err = Compile([]string{"A!=B"})
	require.NoError(t, err)
	assert.Equal(t, []byte{0x41, 0x6f, 0x42}, body)
}

func TestWordKeywordsNeedPaddingNextToLetters(t *testing.T) {
	body, err := Compile([]string{"for"})
	require.NoError(t, err)
	assert.Equal(t, []byte{0xbb, 0xb5, 0xbb, 0xbf, 0xbb, 0xc2}, body)

	// "DispA" is not Disp followed by A
	body, err = Compile([]string{"DispA"})
	require.NoError(t, err)
	assert.Len(t, body, 1+2*3+1)
	assert.Equal(t, byte(0x44), body[0])
}

func TestLowercaseEscape(t *testing.T) {
	body, err := Compile([]string{"a"})
	require.NoError(t, err)
	assert.Equal(t, []byte{tokens.Escape, 0xb0}, body)

	d, err := NewDecompiler(tokens.Default())
	require.NoError(t, err)
	toks, unknown := d.Tokens(body)
	assert.Empty(t, unknown)
	require.Len(t, toks, 1)
	assert.Equal(t, "a", toks[0].Text)
	assert.Equal(t, 2, toks[0].Code.Len())
	assert.Equal(t, tokens.Lowercase, toks[0].Category)
}

func TestUnknownByteIsSkipped(t *testing.T) {
	d, err := NewDecompiler(tokens.Default())
	require.NoError(t, err)

	body := []byte{0xde, 0x2a, 0x48, 0xff, 0x49, 0x2a}
	lines, unknown := d.Decode(body)
	assert.Equal(t, []string{`Disp "HI"`}, lines)
	require.Len(t, unknown, 1)
	assert.Equal(t, UnknownByte{Offset: 3, Value: 0xff}, unknown[0])
	assert.Contains(t, unknown[0].String(), "0xFF")

	// trailing escape byte on its own
	lines, unknown = d.Decode([]byte{0x41, tokens.Escape})
	assert.Equal(t, []string{"A"}, lines)
	assert.Equal(t, []UnknownByte{{Offset: 1, Value: tokens.Escape}}, unknown)
}

func TestDecodeLines(t *testing.T) {
	d, err := NewDecompiler(tokens.Default())
	require.NoError(t, err)

	lines, unknown := d.Decode([]byte{0xd9, 0x3f, 0xd4})
	assert.Empty(t, unknown)
	assert.Equal(t, []string{"Stop", "End"}, lines)

	lines, unknown = d.Decode(nil)
	assert.Nil(t, lines)
	assert.Empty(t, unknown)
}

func TestDecodeIsDeterministic(t *testing.T) {
	body, err := Compile([]string{`Disp "hello"`, "Stop"})
	require.NoError(t, err)
	a, _, _ := Decompile(body)
	b, _, _ := Decompile(body)
	assert.Equal(t, a, b)
}

func TestUntokenizable(t *testing.T) {
	_, err := Compile([]string{"A", "B~"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUntokenizable))

	var ue *UntokenizableError
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, "~", ue.Fragment)
	assert.Equal(t, 2, ue.Line)
	assert.Equal(t, 2, ue.Column)
	assert.Equal(t, 3, ue.Offset)
	assert.Contains(t, err.Error(), `"~"`)
}

func TestCompileEmpty(t *testing.T) {
	body, err := Compile(nil)
	require.NoError(t, err)
	assert.Empty(t, body)
}

func TestCompilerWithCustomTable(t *testing.T) {
	entries := append(tokens.Default(), tokens.Entry{
		Code: tokens.NewCode(0xbb, 0x54), Text: "DelVar ",
		Category: tokens.Keyword})

	c, err := NewCompiler(entries)
	require.NoError(t, err)
	body, err := c.Encode([]string{"DelVar A"})
	require.NoError(t, err)
	assert.Equal(t, []byte{0xbb, 0x54, 0x41}, body)

	d, err := NewDecompiler(entries)
	require.NoError(t, err)
	lines, _ := d.Decode(body)
	assert.Equal(t, []string{"DelVar A"}, lines)
}

func TestCompilerRejectsInconsistentTable(t *testing.T) {
	entries := append(tokens.Default(), tokens.Entry{
		Code: tokens.NewCode(0x01), Text: "Disp", Category: tokens.Keyword})
	_, err := NewCompiler(entries)
	assert.True(t, errors.Is(err, tokens.ErrConfig))
}

func TestDecodePasses(t *testing.T) {
	body, err := Compile([]string{`Disp "hi"`, "A -> B"})
	require.NoError(t, err)

	lines, unknown := DecodePasses(body, tokens.Default())
	assert.Empty(t, unknown)
	assert.Equal(t, []string{`Disp "hi"`, "A -> B"}, lines)

	// two byte keywords are out of reach for the pass decoder
	lines, unknown = DecodePasses([]byte{0xbb, 0x0a}, tokens.Default())
	assert.Equal(t, []string{""}, lines)
	assert.Equal(t, []UnknownByte{{0, 0xbb}, {1, 0x0a}}, unknown)

	lines, unknown = DecodePasses(nil, tokens.Default())
	assert.Nil(t, lines)
	assert.Empty(t, unknown)
}
