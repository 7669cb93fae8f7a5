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

package cmap

import "testing"

func TestUTF16BEToStringBMP(t *testing.T) {
	got := utf16BEToString([]byte{0x00, 0x41})
	if got != "A" {
		t.Fatalf("got %q", got)
	}
}

func TestUTF16BEToStringSurrogatePair(t *testing.T) {
	// U+1F600 (grinning face) = surrogate pair D83D DE00.
	got := utf16BEToString([]byte{0xD8, 0x3D, 0xDE, 0x00})
	want := string(rune(0x1F600))
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestUTF16BEToStringIndependentCalls(t *testing.T) {
	// Two back-to-back calls must not leak decoder state between them:
	// a shared decoder previously used here would corrupt the second
	// call if the first left a pending surrogate half in its buffer.
	first := utf16BEToString([]byte{0x00, 0x42})
	second := utf16BEToString([]byte{0x00, 0x43})
	if first != "B" || second != "C" {
		t.Fatalf("got %q, %q", first, second)
	}
}
