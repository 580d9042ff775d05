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

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeSize(t *testing.T) {
	tests := []struct {
		size int
		want [2]byte
	}{
		{0, [2]byte{0, 0}},
		{2, [2]byte{2, 0}},
		{254, [2]byte{254, 0}},
		{255, [2]byte{0, 1}},
		{300, [2]byte{300 - 255, 1}},
		{SizeLimit - 1, [2]byte{254, 254}},
	}

	for _, tt := range tests {
		got, err := EncodeSize(tt.size)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "size %d", tt.size)
		assert.Equal(t, tt.size, DecodeSize(got))
	}
}

func TestEncodeSizeLimit(t *testing.T) {
	for _, size := range []int{SizeLimit, SizeLimit + 1, 100000} {
		_, err := EncodeSize(size)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrOversize))
		var se *SizeError
		require.True(t, errors.As(err, &se))
		assert.Equal(t, size, se.Size)
		assert.Equal(t, SizeLimit, se.Limit)
	}
	_, err := EncodeSize(-1)
	assert.Error(t, err)
}

func TestBuildHeader(t *testing.T) {
	body := []byte{0xde, 0x2a, 0x48, 0x49, 0x2a}
	p, err := Build(body, "helloworld", "a comment")
	require.NoError(t, err)

	require.Len(t, p.Header, HeaderLength)
	assert.Equal(t, body, p.Body)
	assert.Equal(t, []byte{0, 0}, p.Footer)

	h := p.Header
	assert.Equal(t, Signature, h[:10])
	assert.Equal(t, byte(0), h[10])
	assert.Equal(t, []byte("a comment"), h[11:20])
	assert.Equal(t, make([]byte, CommentLength-9), h[20:53])
	assert.Equal(t, []byte{0, 0, 'N', 0, '\n', 0}, h[53:59])
	assert.Equal(t, []byte{7, 0}, h[59:61])
	assert.Equal(t, NameMarker, h[61])
	assert.Equal(t, []byte("HELLOWOR"), h[62:70])
	assert.Equal(t, []byte{0, 0}, h[70:72])
	assert.Equal(t, []byte{7, 0}, h[72:74])
	assert.Equal(t, []byte{5, 0}, h[74:76])

	assert.Equal(t, "HELLOWOR", p.Name())
	assert.Equal(t, "a comment", p.Comment())
	assert.Equal(t, len(body)+SizeOffset, p.Size())
	assert.NoError(t, p.Validate())
}

func TestBuildPadsAndSanitizes(t *testing.T) {
	p, err := Build(nil, "ab", "café")
	require.NoError(t, err)
	assert.Equal(t, []byte("AB      "), p.Header[62:70])
	assert.Equal(t, "AB", p.Name())
	assert.Equal(t, "caf?", p.Comment())
	assert.Empty(t, p.Body)
}

func TestBuildOversize(t *testing.T) {
	_, err := Build(make([]byte, SizeLimit-SizeOffset), "BIG", "")
	assert.True(t, errors.Is(err, ErrOversize))
	assert.Contains(t, err.Error(), "65025")

	_, err = Build(make([]byte, SizeLimit-SizeOffset-1), "BIG", "")
	assert.NoError(t, err)
}

func TestParseRoundTrip(t *testing.T) {
	for _, n := range []int{0, 1, 3, 300, SizeLimit - SizeOffset - 1} {
		body := bytes.Repeat([]byte{0x41}, n)
		built, err := Build(body, "PRGM", DefaultComment)
		require.NoError(t, err)

		p, err := Parse(built.Bytes())
		require.NoError(t, err)
		assert.True(t, p.IsValid())
		assert.NoError(t, p.Validate())
		assert.Equal(t, built.Header, p.Header)
		assert.Equal(t, body, p.Body)
		assert.Equal(t, built.Footer, p.Footer)
	}
}

func TestParseUndersize(t *testing.T) {
	_, err := Parse(make([]byte, HeaderLength-1))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUndersize))
	assert.Contains(t, err.Error(), "75")
}

func TestParseHeaderOnly(t *testing.T) {
	built, err := Build(nil, "EMPTY", "")
	require.NoError(t, err)

	for _, buf := range [][]byte{
		built.Header,
		append(append([]byte{}, built.Header...), 0x00),
	} {
		p, err := Parse(buf)
		require.NoError(t, err)
		assert.Empty(t, p.Body)
		assert.Empty(t, p.Footer)
		assert.True(t, p.IsValid())
	}
}

func TestParseDoesNotAlias(t *testing.T) {
	built, err := Build([]byte{1, 2, 3}, "X", "")
	require.NoError(t, err)
	buf := built.Bytes()
	p, err := Parse(buf)
	require.NoError(t, err)
	buf[HeaderLength] = 0xff
	assert.Equal(t, byte(1), p.Body[0])
}

func TestIsValidSkipsFirstByte(t *testing.T) {
	built, err := Build([]byte{0x41}, "X", "")
	require.NoError(t, err)

	built.Header[0] = 0x00
	assert.True(t, built.IsValid())

	built.Header[3] = 'X'
	assert.False(t, built.IsValid())
	assert.Error(t, built.Validate())

	assert.False(t, (&Program{Header: []byte("**TI")}).IsValid())
}

func TestValidateSizeFields(t *testing.T) {
	built, err := Build([]byte{0x41, 0x42}, "X", "")
	require.NoError(t, err)

	built.Header[59] = 9
	err = built.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "want 4, got 9")

	built, err = Build([]byte{0x41, 0x42}, "X", "")
	require.NoError(t, err)
	built.Header[61] = 0x06
	assert.Error(t, built.Validate())
}

func TestEmit(t *testing.T) {
	built, err := Build([]byte{0xde, 0x2a}, "HELLO", "")
	require.NoError(t, err)

	var buf bytes.Buffer
	built.Emit(&buf)
	out := buf.String()
	assert.Contains(t, out, `PROGRAM: "HELLO"`)
	assert.Contains(t, out, "HEADER:")
	assert.Contains(t, out, "BODY:")
	assert.Contains(t, out, "de 2a")
}

func TestFileNames(t *testing.T) {
	assert.Equal(t, "hello.8xp", FileName("hello.txt"))
	assert.Equal(t, "dir/hello.8xp", FileName("dir/hello"))
	assert.Equal(t, "hello.8xp", FileName("hello.8xp"))

	assert.Equal(t, "HELLO", NameFromFile("dir/hello.txt"))
	assert.Equal(t, "VERYLONG", NameFromFile("verylongname.txt"))
}
