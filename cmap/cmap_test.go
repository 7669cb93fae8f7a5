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

func TestCodespaceRangeMatches(t *testing.T) {
	r := CodespaceRange{Low: []byte{0x81, 0x00}, High: []byte{0xFE, 0xFF}}
	if !r.matches([]byte{0x90, 0x12}) {
		t.Fatalf("expected match")
	}
	if r.matches([]byte{0x80, 0x12}) {
		t.Fatalf("expected no match: first byte out of range")
	}
	if r.matches([]byte{0x90}) {
		t.Fatalf("expected no match: too short")
	}
}

func TestInfoDecodeNextNoMatchResyncs(t *testing.T) {
	info := &Info{
		CodespaceRanges: []CodespaceRange{{Low: []byte{0x20}, High: []byte{0x7E}}},
	}
	code, n, ok := info.DecodeNext([]byte{0x01, 0x41})
	if ok {
		t.Fatalf("expected no match for byte 0x01")
	}
	if n != 1 {
		t.Fatalf("resync length = %d, want 1", n)
	}
	_ = code
}

func TestInfoDecodeNextEmptyInput(t *testing.T) {
	info := &Info{CodespaceRanges: []CodespaceRange{{Low: []byte{0}, High: []byte{0xFF}}}}
	_, n, ok := info.DecodeNext(nil)
	if ok || n != 0 {
		t.Fatalf("got n=%d, ok=%v, want 0, false", n, ok)
	}
}
