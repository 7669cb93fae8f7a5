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

package cursor

import "testing"

func TestReadersBounds(t *testing.T) {
	buf := []byte{0x01, 0x02, 0x03, 0x04, 0xFF, 0xFE}
	c := New(buf)

	v, err := c.U16BE()
	if err != nil || v != 0x0102 {
		t.Fatalf("U16BE() = %#x, %v, want 0x0102, nil", v, err)
	}
	v2, err := c.U16LE()
	if err != nil || v2 != 0x0403 {
		t.Fatalf("U16LE() = %#x, %v, want 0x0403, nil", v2, err)
	}
	i, err := c.I16BE()
	if err != nil || i != -2 {
		t.Fatalf("I16BE() = %d, %v, want -2, nil", i, err)
	}
	if c.Remaining() != 0 {
		t.Fatalf("Remaining() = %d, want 0", c.Remaining())
	}
}

func TestEOF(t *testing.T) {
	c := New([]byte{0x01})
	if _, err := c.U16BE(); err != ErrEOF {
		t.Fatalf("U16BE() err = %v, want ErrEOF", err)
	}
	if err := c.Seek(5); err != ErrEOF {
		t.Fatalf("Seek(5) err = %v, want ErrEOF", err)
	}
	if err := c.Seek(1); err != nil {
		t.Fatalf("Seek(1) err = %v, want nil", err)
	}
}

func TestSubcursor(t *testing.T) {
	buf := []byte{1, 2, 3, 4, 5, 6}
	c := New(buf)
	sub, err := c.Subcursor(3)
	if err != nil {
		t.Fatal(err)
	}
	if sub.Len() != 3 {
		t.Fatalf("sub.Len() = %d, want 3", sub.Len())
	}
	if c.Offset() != 3 {
		t.Fatalf("parent offset = %d, want 3", c.Offset())
	}
	b, err := sub.Bytes(3)
	if err != nil || b[0] != 1 || b[2] != 3 {
		t.Fatalf("sub.Bytes(3) = %v, %v", b, err)
	}
	if _, err := c.Subcursor(10); err != ErrEOF {
		t.Fatalf("Subcursor(10) err = %v, want ErrEOF", err)
	}
}
