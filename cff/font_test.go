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

// int32Operand encodes v using the DICT/charstring 5-byte int32 form
// (opcode 29), so its length never depends on v's magnitude - which
// lets a test lay out offsets before they are known.
func int32Operand(v int32) []byte {
	return []byte{29, byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)}
}

// buildMinimalCFF assembles a bare CFF font program with two glyphs:
// gid 0 (.notdef, empty) and gid 1 (a triangle outline), no Charset
// table (charset offset 0, i.e. predefined ISOAdobe) and no local
// subroutines.
func buildMinimalCFF(t *testing.T) []byte {
	t.Helper()

	header := []byte{1, 0, 4, 4}
	nameIndex := encodeIndex(nil)
	stringIndex := encodeIndex(nil)
	globalSubrIndex := encodeIndex(nil)

	const prefixLen = 4 + 2 + 22 + 2 + 2 // header + nameIndex + topDictIndex + stringIndex + globalSubrIndex
	charStringsOffset := int32(prefixLen)

	notdef := []byte{t2endchar}
	triangle := []byte{
		b(100), b(0), t2rmoveto,
		b(0), b(100), t2rlineto,
		b(-100), b(0), t2rlineto,
		t2endchar,
	}
	csIndexBytes := encodeIndex([][]byte{notdef, triangle})

	privateOffset := charStringsOffset + int32(len(csIndexBytes))
	const privateSize = 12 // int32Operand(500) + op20 + int32Operand(0) + op21
	privateDict := append(append(int32Operand(500), 20), append(int32Operand(0), 21)...)
	if len(privateDict) != privateSize {
		t.Fatalf("privateDict length = %d, want %d", len(privateDict), privateSize)
	}

	var topDictBytes []byte
	topDictBytes = append(topDictBytes, int32Operand(charStringsOffset)...)
	topDictBytes = append(topDictBytes, 17)
	topDictBytes = append(topDictBytes, int32Operand(privateSize)...)
	topDictBytes = append(topDictBytes, int32Operand(privateOffset)...)
	topDictBytes = append(topDictBytes, 18)
	topDictIndex := encodeIndex([][]byte{topDictBytes})
	if len(topDictIndex) != 22 {
		t.Fatalf("topDictIndex length = %d, want 22", len(topDictIndex))
	}

	var out []byte
	out = append(out, header...)
	out = append(out, nameIndex...)
	out = append(out, topDictIndex...)
	out = append(out, stringIndex...)
	out = append(out, globalSubrIndex...)
	out = append(out, csIndexBytes...)
	out = append(out, privateDict...)
	return out
}

func TestNewParsesMinimalFont(t *testing.T) {
	data := buildMinimalCFF(t)
	f, err := New(data)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if f.NumGlyphs() != 2 {
		t.Fatalf("NumGlyphs() = %d, want 2", f.NumGlyphs())
	}
	if f.ctx.defaultWidthX != 500 {
		t.Errorf("defaultWidthX = %v, want 500", f.ctx.defaultWidthX)
	}
}

func TestFontOutlineNotdefIsEmpty(t *testing.T) {
	f, err := New(buildMinimalCFF(t))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	outline, width, ok := f.Outline(0)
	if !ok {
		t.Fatal("Outline(0) reported not ok")
	}
	if len(outline.Contours) != 0 {
		t.Errorf("got %d contours for .notdef, want 0", len(outline.Contours))
	}
	if width != 500 {
		t.Errorf("width = %v, want 500 (default)", width)
	}
}

func TestFontOutlineTriangle(t *testing.T) {
	f, err := New(buildMinimalCFF(t))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	outline, _, ok := f.Outline(1)
	if !ok {
		t.Fatal("Outline(1) reported not ok")
	}
	if len(outline.Contours) != 1 || len(outline.Contours[0]) != 4 {
		t.Fatalf("got %+v, want one 4-segment contour", outline.Contours)
	}
	if outline.Contours[0][0].Kind != graphics.SegMoveTo {
		t.Errorf("first segment kind = %v, want SegMoveTo", outline.Contours[0][0].Kind)
	}
}

func TestFontOutlineOutOfRangeGid(t *testing.T) {
	f, err := New(buildMinimalCFF(t))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, _, ok := f.Outline(99); ok {
		t.Error("Outline(99) reported ok for an out-of-range gid")
	}
}

func TestGIDForCIDUsesPredefinedCharset(t *testing.T) {
	f, err := New(buildMinimalCFF(t))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	// The predefined ISOAdobe charset maps charset[gid] = gid, so CID 1
	// resolves back to gid 1.
	if got := f.GIDForCID(1); got != 1 {
		t.Errorf("GIDForCID(1) = %d, want 1", got)
	}
}

// buildMinimalCIDCFF assembles a two-glyph CID-keyed CFF program (a
// Top DICT carrying ROS, FDArray, and FDSelect) with two Font DICTs:
// gid 0 -> Font DICT 0 (defaultWidthX 500), gid 1 -> Font DICT 1
// (defaultWidthX 700), via an FDSelect format 0 table.
func buildMinimalCIDCFF(t *testing.T) []byte {
	t.Helper()

	header := []byte{1, 0, 4, 4}
	nameIndex := encodeIndex(nil)
	stringIndex := encodeIndex(nil)
	globalSubrIndex := encodeIndex(nil)

	notdef := []byte{t2endchar}
	triangle := []byte{
		b(100), b(0), t2rmoveto,
		b(0), b(100), t2rlineto,
		b(-100), b(0), t2rlineto,
		t2endchar,
	}
	csIndexBytes := encodeIndex([][]byte{notdef, triangle})

	// buildTopDict produces the Top DICT's bytes given the offsets it
	// names; its length does not depend on the offset values themselves
	// since int32Operand always emits exactly 5 bytes per operand, so
	// it is safe to call twice (once with placeholder zero offsets, to
	// learn topDictIndex's length, and again with the real offsets).
	buildTopDict := func(charStringsOff, fdArrayOff, fdSelectOff int32) []byte {
		var d []byte
		d = append(d, int32Operand(0)...) // Registry SID (unused by tests)
		d = append(d, int32Operand(0)...) // Ordering SID
		d = append(d, int32Operand(0)...) // Supplement
		d = append(d, 12, 30)             // ROS
		d = append(d, int32Operand(charStringsOff)...)
		d = append(d, 17) // CharStrings
		d = append(d, int32Operand(fdArrayOff)...)
		d = append(d, 12, 36) // FDArray
		d = append(d, int32Operand(fdSelectOff)...)
		d = append(d, 12, 37) // FDSelect
		return d
	}

	topDictIndexLen := len(encodeIndex([][]byte{buildTopDict(0, 0, 0)}))
	prefixLen := int32(len(header) + len(nameIndex) + topDictIndexLen + len(stringIndex) + len(globalSubrIndex))

	charStringsOffset := prefixLen
	fdSelectOffset := charStringsOffset + int32(len(csIndexBytes))
	fdSelectBytes := []byte{0, 0, 1} // format 0: gid 0 -> FD 0, gid 1 -> FD 1
	fdArrayOffset := fdSelectOffset + int32(len(fdSelectBytes))

	fontDictPlaceholder := func(privOff int32) []byte {
		d := append(int32Operand(12), int32Operand(privOff)...)
		return append(d, 18)
	}
	fdArrayIndexLen := int32(len(encodeIndex([][]byte{fontDictPlaceholder(0), fontDictPlaceholder(0)})))

	private0Offset := fdArrayOffset + fdArrayIndexLen
	private1Offset := private0Offset + 12

	fontDict0 := fontDictPlaceholder(private0Offset)
	fontDict1 := fontDictPlaceholder(private1Offset)
	fdArrayBytes := encodeIndex([][]byte{fontDict0, fontDict1})
	if int32(len(fdArrayBytes)) != fdArrayIndexLen {
		t.Fatalf("FDArray INDEX length changed between passes: %d vs %d", len(fdArrayBytes), fdArrayIndexLen)
	}

	privateDict0 := append(append(int32Operand(500), 20), append(int32Operand(0), 21)...)
	privateDict1 := append(append(int32Operand(700), 20), append(int32Operand(0), 21)...)

	topDictBytes := buildTopDict(charStringsOffset, fdArrayOffset, fdSelectOffset)
	topDictIndex := encodeIndex([][]byte{topDictBytes})
	if len(topDictIndex) != topDictIndexLen {
		t.Fatalf("topDictIndex length changed between passes: %d vs %d", len(topDictIndex), topDictIndexLen)
	}

	var out []byte
	out = append(out, header...)
	out = append(out, nameIndex...)
	out = append(out, topDictIndex...)
	out = append(out, stringIndex...)
	out = append(out, globalSubrIndex...)
	out = append(out, csIndexBytes...)
	out = append(out, fdSelectBytes...)
	out = append(out, fdArrayBytes...)
	out = append(out, privateDict0...)
	out = append(out, privateDict1...)
	return out
}

func TestNewParsesCIDKeyedFont(t *testing.T) {
	f, err := New(buildMinimalCIDCFF(t))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if f.NumGlyphs() != 2 {
		t.Fatalf("NumGlyphs() = %d, want 2", f.NumGlyphs())
	}
	if len(f.fdContexts) != 2 {
		t.Fatalf("fdContexts = %+v, want 2 entries", f.fdContexts)
	}
}

func TestCIDKeyedFontUsesPerGlyphPrivateDict(t *testing.T) {
	f, err := New(buildMinimalCIDCFF(t))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	_, width0, ok := f.Outline(0)
	if !ok {
		t.Fatal("Outline(0) reported not ok")
	}
	if width0 != 500 {
		t.Errorf("gid 0 width = %v, want 500 (Font DICT 0's defaultWidthX)", width0)
	}

	outline1, width1, ok := f.Outline(1)
	if !ok {
		t.Fatal("Outline(1) reported not ok")
	}
	// The triangle's rmoveto carries no extra leading operand, so its
	// width is never explicitly set and falls back to defaultWidthX -
	// gid 1's own Font DICT 1 (700), confirming FDSelect picked the
	// right Private DICT rather than Font DICT 0's.
	if width1 != 700 {
		t.Errorf("gid 1 width = %v, want 700 (Font DICT 1's defaultWidthX)", width1)
	}
	if len(outline1.Contours) != 1 || len(outline1.Contours[0]) != 4 {
		t.Fatalf("got %+v, want one 4-segment contour", outline1.Contours)
	}
}
