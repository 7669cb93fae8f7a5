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

package font

import "github.com/jvoss-raster/pdfraster/graphics"

// glyphLookup maps one of a simple font's 256 codes to the glyph index
// carrying its outline: a TrueType font goes through its cmap by
// Unicode value (resolved from the code's glyph name via the Adobe
// Glyph List), a CFF font is addressed by code directly, since the
// subsetted CFF programs PDF embeds are conventionally laid out in
// code order and this package does not resolve CFF glyph names (see
// cff.Font.GIDForCID's doc comment).
type glyphLookup func(code int) uint16

// simpleFont implements graphics.Font for a /Subtype /Type1,
// /TrueType, or /MMType1 font: one byte per character code, a fixed
// 256-entry glyph-name encoding, and a FirstChar/LastChar/Widths
// metrics triple. outlines is nil for a font with no usable embedded
// program (e.g. a non-embedded Type1/base-14 font, or raw Type1
// FontFile data this module does not parse); Outline then always
// reports ok=false but text still advances correctly from widths.
type simpleFont struct {
	encoding simpleEncoding
	lookup   glyphLookup
	outlines outlineSource
	widths   simpleWidths

	widthByGID map[uint16]float64
}

func newSimpleFont(encoding simpleEncoding, lookup glyphLookup, outlines outlineSource, widths simpleWidths) *simpleFont {
	f := &simpleFont{
		encoding:   encoding,
		lookup:     lookup,
		outlines:   outlines,
		widths:     widths,
		widthByGID: make(map[uint16]float64, 256),
	}
	for code := 0; code < 256; code++ {
		f.widthByGID[f.gidForCode(code)] = widths.width(code)
	}
	return f
}

func (f *simpleFont) gidForCode(code int) uint16 {
	if f.lookup == nil {
		// No embedded outline program: Outline always reports ok=false
		// regardless of gid, so using the code itself as a stand-in gid
		// keeps every code's width distinct in widthByGID instead of
		// collapsing them all onto gid 0.
		return uint16(code)
	}
	return f.lookup(code)
}

// Decode implements graphics.Font: every code in a simple font is
// exactly one byte.
func (f *simpleFont) Decode(s []byte) []graphics.Code {
	codes := make([]graphics.Code, len(s))
	for i, b := range s {
		codes[i] = graphics.Code(b)
	}
	return codes
}

// GlyphID implements graphics.Font.
func (f *simpleFont) GlyphID(code graphics.Code) uint16 {
	return f.gidForCode(int(code))
}

// Outline implements graphics.Font. The advance width comes from the
// font dictionary's own Widths array (keyed by gid, reconstructed at
// load time from the code->gid mapping), not the embedded program's
// metrics: PDF widths always win when both are present.
func (f *simpleFont) Outline(gid uint16) (graphics.GlyphOutline, float64, bool) {
	width := f.widthByGID[gid]
	if f.outlines == nil {
		return graphics.GlyphOutline{}, width, false
	}
	outline, _, ok := f.outlines.Outline(gid)
	return outline, width, ok
}

// IsSpace implements graphics.Font.
func (f *simpleFont) IsSpace(code graphics.Code) bool {
	return code == 32
}
