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

package cff

import (
	"testing"

	"github.com/jvoss-raster/pdfraster/cursor"
)

func TestReadFDSelectFormat0(t *testing.T) {
	data := []byte{0, 0, 1, 1, 0}
	c := cursor.New(data)
	fds, err := readFDSelect(c, 4)
	if err != nil {
		t.Fatalf("readFDSelect: %v", err)
	}
	want := []uint8{0, 1, 1, 0}
	for i, w := range want {
		if fds[i] != w {
			t.Errorf("fds[%d] = %d, want %d", i, fds[i], w)
		}
	}
}

func TestReadFDSelectFormat3(t *testing.T) {
	// Two ranges: gids [0,3) -> FD 0, gids [3,5) -> FD 1; sentinel 5.
	data := []byte{
		3,
		0, 2, // nRanges
		0, 0, // first = 0
		0,          // fd 0
		0, 3,       // next = 3
		1,          // fd 1
		0, 5,       // sentinel = numGlyphs
	}
	c := cursor.New(data)
	fds, err := readFDSelect(c, 5)
	if err != nil {
		t.Fatalf("readFDSelect: %v", err)
	}
	want := []uint8{0, 0, 0, 1, 1}
	for i, w := range want {
		if fds[i] != w {
			t.Errorf("fds[%d] = %d, want %d", i, fds[i], w)
		}
	}
}

func TestReadFDSelectFormat3SentinelMismatch(t *testing.T) {
	data := []byte{
		3,
		0, 1, // nRanges
		0, 0, // first = 0
		0,    // fd 0
		0, 3, // sentinel, but numGlyphs is 5
	}
	c := cursor.New(data)
	if _, err := readFDSelect(c, 5); err == nil {
		t.Fatal("expected error for sentinel not matching glyph count")
	}
}

func TestReadFDSelectUnsupportedFormat(t *testing.T) {
	data := []byte{7}
	c := cursor.New(data)
	if _, err := readFDSelect(c, 2); err == nil {
		t.Fatal("expected error for unsupported FDSelect format")
	}
}
