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

	"github.com/jvoss-raster/pdfraster/graphics"
)

// b encodes a single Type 2 small integer operand (-107..107) as its
// one-byte form.
func b(v int) byte { return byte(v + 139) }

func TestRunCharstringTriangle(t *testing.T) {
	code := []byte{
		b(100), b(0), t2rmoveto,
		b(0), b(100), t2rlineto,
		b(-100), b(0), t2rlineto,
		t2endchar,
	}
	ctx := &charstringContext{defaultWidthX: 500}
	outline, width, err := runCharstring(code, ctx)
	if err != nil {
		t.Fatalf("runCharstring: %v", err)
	}
	if width != 500 {
		t.Errorf("width = %v, want 500 (default, unset)", width)
	}
	if len(outline.Contours) != 1 {
		t.Fatalf("got %d contours, want 1", len(outline.Contours))
	}
	segs := outline.Contours[0]
	if len(segs) != 4 {
		t.Fatalf("got %d segments, want 4 (move, line, line, close)", len(segs))
	}
	if segs[0].Kind != graphics.SegMoveTo || segs[0].P.X != 100 || segs[0].P.Y != 0 {
		t.Errorf("segs[0] = %+v, want moveto (100,0)", segs[0])
	}
	if segs[1].Kind != graphics.SegLineTo || segs[1].P.X != 100 || segs[1].P.Y != 100 {
		t.Errorf("segs[1] = %+v, want lineto (100,100)", segs[1])
	}
	if segs[2].Kind != graphics.SegLineTo || segs[2].P.X != 0 || segs[2].P.Y != 100 {
		t.Errorf("segs[2] = %+v, want lineto (0,100)", segs[2])
	}
	if segs[3].Kind != graphics.SegClose {
		t.Errorf("segs[3].Kind = %v, want SegClose", segs[3].Kind)
	}
}

func TestRunCharstringWidthFromExtraOperand(t *testing.T) {
	// hmoveto with two operands: the first is the glyph's width delta,
	// the second its actual dx.
	code := []byte{
		b(50), b(10), t2hmoveto,
		t2endchar,
	}
	ctx := &charstringContext{defaultWidthX: 0, nominalWidthX: 200}
	outline, width, err := runCharstring(code, ctx)
	if err != nil {
		t.Fatalf("runCharstring: %v", err)
	}
	if width != 250 {
		t.Errorf("width = %v, want 250", width)
	}
	if len(outline.Contours) != 1 || outline.Contours[0][0].P.X != 10 {
		t.Fatalf("moveto did not use the post-width operand: %+v", outline.Contours[0])
	}
}

func TestRunCharstringCallsubr(t *testing.T) {
	// A one-entry local subr index containing "rlineto" after an
	// rmoveto in the main charstring, invoked via callsubr. The operand
	// for subr 0 in a 1-entry index (bias 107) is -107.
	subr := []byte{b(0), b(50), t2rlineto, t2return}
	ctx := &charstringContext{
		localSubrs: Index{subr},
	}
	code := []byte{
		b(10), b(10), t2rmoveto,
		b(-107), t2callsubr,
		t2endchar,
	}
	outline, _, err := runCharstring(code, ctx)
	if err != nil {
		t.Fatalf("runCharstring: %v", err)
	}
	segs := outline.Contours[0]
	if len(segs) != 3 {
		t.Fatalf("got %d segments, want 3 (move, line from subr, close)", len(segs))
	}
	if segs[1].Kind != graphics.SegLineTo || segs[1].P.X != 10 || segs[1].P.Y != 60 {
		t.Errorf("segs[1] = %+v, want lineto (10,60)", segs[1])
	}
}

func TestRunCharstringHintmaskSkipsBytes(t *testing.T) {
	// vstemhm with one pair of operands declares one stem; hintmask then
	// consumes ceil(1/8) = 1 mask byte before the next real operator.
	code := []byte{
		b(0), b(10), t2vstemhm,
		t2hintmask, 0xFF, // the mask byte itself, value irrelevant
		b(5), b(5), t2rmoveto,
		t2endchar,
	}
	ctx := &charstringContext{}
	outline, _, err := runCharstring(code, ctx)
	if err != nil {
		t.Fatalf("runCharstring: %v", err)
	}
	if len(outline.Contours) != 1 || outline.Contours[0][0].P.X != 5 {
		t.Fatalf("hintmask byte was not skipped correctly: %+v", outline)
	}
}

func TestSubrBias(t *testing.T) {
	cases := []struct {
		n    int
		want int
	}{
		{0, 107},
		{1239, 107},
		{1240, 1131},
		{33899, 1131},
		{33900, 32768},
	}
	for _, c := range cases {
		if got := subrBias(c.n); got != c.want {
			t.Errorf("subrBias(%d) = %d, want %d", c.n, got, c.want)
		}
	}
}
