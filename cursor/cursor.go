// github.com/jvoss-raster/pdfraster - a PDF rendering engine
// Copyright (C) 2026  pdfraster contributors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package cursor provides a seekable, bounds-checked view over an
// immutable byte slice.
//
// A Cursor never panics on malformed or truncated input: every read that
// would run past the end of the buffer returns ErrEOF instead of indexing
// raw memory.
package cursor

import (
	"errors"
	"math"
)

// ErrEOF is returned whenever a read or seek would run past the end of
// the underlying buffer.
var ErrEOF = errors.New("cursor: unexpected end of data")

// Cursor is a read-only, bounds-checked view over buf, starting at
// offset 0.
type Cursor struct {
	buf    []byte
	offset int
}

// New returns a Cursor positioned at the start of buf. The cursor does
// not copy buf; the caller must not mutate it while the cursor is in use.
func New(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

// Len returns the total length of the underlying buffer.
func (c *Cursor) Len() int { return len(c.buf) }

// Offset returns the current read position.
func (c *Cursor) Offset() int { return c.offset }

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int { return len(c.buf) - c.offset }

// Seek moves the cursor to absolute position k. It fails with ErrEOF if
// k is outside [0, Len()].
func (c *Cursor) Seek(k int) error {
	if k < 0 || k > len(c.buf) {
		return ErrEOF
	}
	c.offset = k
	return nil
}

// Skip advances the cursor by n bytes.
func (c *Cursor) Skip(n int) error {
	return c.Seek(c.offset + n)
}

// Peek returns the next n bytes without advancing the cursor.
func (c *Cursor) Peek(n int) ([]byte, error) {
	if n < 0 || c.offset+n > len(c.buf) {
		return nil, ErrEOF
	}
	return c.buf[c.offset : c.offset+n], nil
}

// Bytes reads and returns the next n bytes, advancing the cursor.
func (c *Cursor) Bytes(n int) ([]byte, error) {
	b, err := c.Peek(n)
	if err != nil {
		return nil, err
	}
	c.offset += n
	return b, nil
}

// Subcursor returns a new Cursor over the next n bytes of c and advances
// c past them. The returned cursor shares the underlying array.
func (c *Cursor) Subcursor(n int) (*Cursor, error) {
	b, err := c.Bytes(n)
	if err != nil {
		return nil, err
	}
	return New(b), nil
}

// U8 reads an unsigned 8-bit integer.
func (c *Cursor) U8() (uint8, error) {
	b, err := c.Bytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// I8 reads a signed 8-bit integer.
func (c *Cursor) I8() (int8, error) {
	v, err := c.U8()
	return int8(v), err
}

// U16BE reads a big-endian unsigned 16-bit integer.
func (c *Cursor) U16BE() (uint16, error) {
	b, err := c.Bytes(2)
	if err != nil {
		return 0, err
	}
	return uint16(b[0])<<8 | uint16(b[1]), nil
}

// U16LE reads a little-endian unsigned 16-bit integer.
func (c *Cursor) U16LE() (uint16, error) {
	b, err := c.Bytes(2)
	if err != nil {
		return 0, err
	}
	return uint16(b[1])<<8 | uint16(b[0]), nil
}

// I16BE reads a big-endian signed 16-bit integer.
func (c *Cursor) I16BE() (int16, error) {
	v, err := c.U16BE()
	return int16(v), err
}

// U32BE reads a big-endian unsigned 32-bit integer.
func (c *Cursor) U32BE() (uint32, error) {
	b, err := c.Bytes(4)
	if err != nil {
		return 0, err
	}
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3]), nil
}

// U32LE reads a little-endian unsigned 32-bit integer.
func (c *Cursor) U32LE() (uint32, error) {
	b, err := c.Bytes(4)
	if err != nil {
		return 0, err
	}
	return uint32(b[3])<<24 | uint32(b[2])<<16 | uint32(b[1])<<8 | uint32(b[0]), nil
}

// I32BE reads a big-endian signed 32-bit integer.
func (c *Cursor) I32BE() (int32, error) {
	v, err := c.U32BE()
	return int32(v), err
}

// U64BE reads a big-endian unsigned 64-bit integer.
func (c *Cursor) U64BE() (uint64, error) {
	hi, err := c.U32BE()
	if err != nil {
		return 0, err
	}
	lo, err := c.U32BE()
	if err != nil {
		return 0, err
	}
	return uint64(hi)<<32 | uint64(lo), nil
}

// F64BE reads a big-endian IEEE-754 double.
func (c *Cursor) F64BE() (float64, error) {
	v, err := c.U64BE()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(v), nil
}

// Tag reads a 4-byte SFNT table tag.
func (c *Cursor) Tag() (string, error) {
	b, err := c.Bytes(4)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
