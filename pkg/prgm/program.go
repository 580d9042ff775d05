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
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
)

//
const HeaderLength = 76
const FooterLength = 2
const CommentLength = 42
const NameLength = 8

// SizeOffset is added to the body length for the size fields. Its meaning is
// unknown, but it matches real program files.
const SizeOffset = 2

// SizeLimit is the smallest size that can no longer be expressed in the size
// fields.
const SizeLimit = 255 * 255

//
const Extension = "8xp"

//
const NameMarker byte = 0x05
const Placeholder byte = 'N'

//
const DefaultComment = "Created with tibasic"

// Signature is the file type signature at the start of every program file
var Signature = []byte("**TI83F*\x1a\n")

//
var ErrOversize = errors.New("program too large")
var ErrUndersize = errors.New("program file too short")

// SizeError reports a program size beyond the limit of the size fields
type SizeError struct {
	Size  int
	Limit int
}

//
func (e *SizeError) Error() string {
	return fmt.Sprintf("%v: size %d, limit %d", ErrOversize, e.Size, e.Limit)
}

//
func (e *SizeError) Is(target error) bool {
	return target == ErrOversize
}

/*
	EncodeSize encodes a size for the header. This is not little endian: the
	low byte is size mod 255, the high byte size div 255.
*/
func EncodeSize(size int) ([2]byte, error) {
	if size < 0 {
		return [2]byte{}, fmt.Errorf("invalid negative size: %d", size)
	}
	if size >= SizeLimit {
		return [2]byte{}, &SizeError{Size: size, Limit: SizeLimit}
	}
	return [2]byte{byte(size % 255), byte(size / 255)}, nil
}

//
func DecodeSize(b [2]byte) int {
	return int(b[0]) + 255*int(b[1])
}

// Program is a program file, split into its three regions
type Program struct {
	Header []byte
	Body   []byte
	Footer []byte
}

/*
	Build creates a program file around body. The name is upper cased, and
	truncated or padded with spaces to NameLength. The comment is truncated or
	padded with null bytes to CommentLength. Characters outside of printable
	ASCII are replaced with '?'.
*/
func Build(body []byte, name, comment string) (*Program, error) {

	size := len(body) + SizeOffset

	sz, err := EncodeSize(size)
	if err != nil {
		return nil, err
	}
	dsz, err := EncodeSize(size - 2)
	if err != nil {
		return nil, err
	}

	p := &Program{
		Header: make([]byte, HeaderLength),
		Body:   make([]byte, len(body)),
		Footer: make([]byte, FooterLength),
	}
	copy(p.Body, body)

	b := newBlock(headerIndex, p.Header)
	b.set("signature", Signature)
	b.set("comment", asciiField(comment, CommentLength, 0x00))
	b.setByte("placeholder", Placeholder)
	b.setByte("newline", '\n')
	b.set("size", sz[:])
	b.setByte("marker", NameMarker)
	b.set("name", asciiField(strings.ToUpper(name), NameLength, ' '))
	b.set("sizeAgain", sz[:])
	b.set("dataSize", dsz[:])

	log.WithFields(log.Fields{
		"name": p.Name(),
		"size": size,
	}).Debug("built program")

	return p, nil
}

/*
	Parse splits buf into header, body, and footer. A buffer shorter than the
	header is an error. If there is not enough left after the header for a
	footer, the program is reported as malformed and comes with empty body and
	footer.
*/
func Parse(buf []byte) (*Program, error) {

	if len(buf) < HeaderLength {
		return nil, fmt.Errorf("%w: got %d bytes, need at least %d",
			ErrUndersize, len(buf), HeaderLength)
	}

	p := &Program{Header: clone(buf[:HeaderLength])}
	rest := buf[HeaderLength:]

	if len(rest) < FooterLength {
		log.Warnf(
			"malformed program: file is only long enough to contain a header")
		p.Body = []byte{}
		p.Footer = []byte{}
		return p, nil
	}

	p.Body = clone(rest[:len(rest)-FooterLength])
	p.Footer = clone(rest[len(rest)-FooterLength:])

	if size := len(p.Body) + SizeOffset; size >= SizeLimit {
		return nil, &SizeError{Size: size, Limit: SizeLimit}
	}

	return p, nil
}

// IsValid compares bytes 1 through 9 of the signature. Byte 0 is skipped,
// since it is known to get lost by some readers.
func (p *Program) IsValid() bool {
	if len(p.Header) < len(Signature) {
		return false
	}
	return bytes.Equal(p.Header[1:len(Signature)], Signature[1:])
}

// Validate checks signature, name marker, and size fields.
func (p *Program) Validate() error {

	if !p.IsValid() {
		return fmt.Errorf("invalid file signature, want %+q, got %+q",
			Signature[1:], p.header().getSlice("signature"))
	}

	b := p.header()

	if got := b.getByte("marker"); got != NameMarker {
		return fmt.Errorf(
			"invalid name marker, want 0x%02X, got 0x%02X", NameMarker, got)
	}

	want := len(p.Body) + SizeOffset
	for _, f := range []string{"size", "sizeAgain"} {
		if got := b.getSize(f); got != want {
			return fmt.Errorf("invalid %s field, want %d, got %d", f, want, got)
		}
	}
	if got := b.getSize("dataSize"); got != want-2 {
		return fmt.Errorf("invalid dataSize field, want %d, got %d", want-2, got)
	}

	return nil
}

//
func (p *Program) header() *block {
	return newBlock(headerIndex, p.Header)
}

// Name returns the program name, without padding
func (p *Program) Name() string {
	return strings.TrimRight(p.header().getString("name"), " \x00")
}

// Comment returns the comment, without padding
func (p *Program) Comment() string {
	return strings.TrimRight(p.header().getString("comment"), "\x00")
}

// Size returns the size as stored in the header, -1 if not present.
func (p *Program) Size() int {
	return p.header().getSize("size")
}

// Bytes returns the complete program file.
func (p *Program) Bytes() []byte {
	ret := make([]byte, 0, len(p.Header)+len(p.Body)+len(p.Footer))
	ret = append(ret, p.Header...)
	ret = append(ret, p.Body...)
	return append(ret, p.Footer...)
}

// WriteTo writes the complete program file to w.
func (p *Program) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(p.Bytes())
	return int64(n), err
}

// Emit writes a description of the program followed by a hex dump of its
// regions.
func (p *Program) Emit(w io.Writer) {
	io.WriteString(w, fmt.Sprintf(
		"\nPROGRAM: %+q - comment: %+q, size: %d, body: %d, valid: %t\n",
		p.Name(), p.Comment(), p.Size(), len(p.Body), p.IsValid()))
	for _, r := range []struct {
		name string
		data []byte
	}{{"HEADER", p.Header}, {"BODY", p.Body}, {"FOOTER", p.Footer}} {
		io.WriteString(w, fmt.Sprintf("\n%s:\n", r.name))
		d := hex.Dumper(w)
		d.Write(r.data)
		d.Close()
	}
}

// FileName returns the file name to use for a program written to requested:
// any extension is replaced with the program file extension.
func FileName(requested string) string {
	return strings.TrimSuffix(requested, filepath.Ext(requested)) +
		"." + Extension
}

// NameFromFile derives a program name from a file path.
func NameFromFile(path string) string {
	base := filepath.Base(path)
	name := strings.ToUpper(strings.TrimSuffix(base, filepath.Ext(base)))
	if len(name) > NameLength {
		name = name[:NameLength]
	}
	return name
}

//
func asciiField(s string, width int, pad byte) []byte {
	ret := bytes.Repeat([]byte{pad}, width)
	ix := 0
	for _, r := range s {
		if ix >= width {
			break
		}
		if r < 0x20 || r > 0x7e {
			r = '?'
		}
		ret[ix] = byte(r)
		ix++
	}
	return ret
}

//
func clone(b []byte) []byte {
	ret := make([]byte, len(b))
	copy(ret, b)
	return ret
}
