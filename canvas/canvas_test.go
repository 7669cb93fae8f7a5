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

package canvas

import (
	"bytes"
	"testing"
)

func TestSetPixelBoundsChecked(t *testing.T) {
	c := New(4, 4, 1)
	c.SetPixel(1, 1, 10, 20, 30, 255)
	r, g, b, a := c.At(1, 1)
	if r != 10 || g != 20 || b != 30 || a != 255 {
		t.Fatalf("At(1,1) = %d,%d,%d,%d", r, g, b, a)
	}

	// Out of bounds must not panic and must not write anywhere.
	c.SetPixel(-1, 0, 1, 2, 3, 4)
	c.SetPixel(4, 4, 1, 2, 3, 4)
	r, g, b, a = c.At(0, 0)
	if r != 0 || g != 0 || b != 0 || a != 0 {
		t.Fatalf("out-of-bounds write leaked into (0,0): %d,%d,%d,%d", r, g, b, a)
	}
}

func TestBlendSourceOver(t *testing.T) {
	c := New(1, 1, 1)
	c.SetPixel(0, 0, 0, 0, 0, 255)
	c.Blend(0, 0, 255, 255, 255, 0.5)
	r, _, _, _ := c.At(0, 0)
	if r < 120 || r > 135 {
		t.Fatalf("50%% white-over-black red channel = %d, want ~127", r)
	}
}

func TestBlendIgnoresZeroAlpha(t *testing.T) {
	c := New(1, 1, 1)
	c.SetPixel(0, 0, 5, 6, 7, 8)
	c.Blend(0, 0, 255, 255, 255, 0)
	r, g, b, a := c.At(0, 0)
	if r != 5 || g != 6 || b != 7 || a != 8 {
		t.Fatalf("zero-alpha blend changed pixel: %d,%d,%d,%d", r, g, b, a)
	}
}

func TestWriteBMPHeaderAndSize(t *testing.T) {
	c := New(2, 2, 1)
	c.Fill(1, 2, 3, 255)
	var buf bytes.Buffer
	if err := c.WriteBMP(&buf); err != nil {
		t.Fatal(err)
	}
	data := buf.Bytes()
	if data[0] != 'B' || data[1] != 'M' {
		t.Fatalf("missing BM magic, got %q", data[:2])
	}
	wantSize := 14 + 40 + 2*2*4
	if len(data) != wantSize {
		t.Fatalf("file size = %d, want %d", len(data), wantSize)
	}
}

func TestCeilScaledRoundsUpAndFloorsAtOne(t *testing.T) {
	if got := ceilScaled(10, 1); got != 10 {
		t.Fatalf("ceilScaled(10,1) = %d, want 10", got)
	}
	if got := ceilScaled(10.1, 1); got != 11 {
		t.Fatalf("ceilScaled(10.1,1) = %d, want 11", got)
	}
	if got := ceilScaled(0, 1); got != 1 {
		t.Fatalf("ceilScaled(0,1) = %d, want 1 (degenerate box floors to 1px)", got)
	}
}
