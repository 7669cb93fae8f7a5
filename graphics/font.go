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

package graphics

import "github.com/jvoss-raster/pdfraster/geom"

// Font is the surface a loaded font program (SFNT or CFF, simple or
// composite) must present to the text-showing operators. The concrete
// implementations live outside this package, next to the outline parsers
// they wrap; graphics only needs to walk a string of character codes,
// advance the text matrix, and obtain a glyph outline to tessellate.
type Font interface {
	// Decode splits s into character codes, one element per glyph to show,
	// honoring the font's code width (single-byte simple fonts, or
	// multi-byte via the font's CMap for composite fonts).
	Decode(s []byte) []Code

	// GlyphID maps a character code to the glyph index in the font's
	// outline table.
	GlyphID(code Code) uint16

	// Outline returns the glyph outline for gid in 1000-unit glyph space,
	// along with its advance width in the same units. ok is false for a
	// missing/notdef glyph with no outline to paint.
	Outline(gid uint16) (outline GlyphOutline, advanceWidth float64, ok bool)

	// IsSpace reports whether code is the single-byte value 32, the only
	// code word-spacing applies an extra adjustment to.
	IsSpace(code Code) bool
}

// Code is one decoded character code (1-4 bytes packed into a uint32 for
// composite fonts; a single byte for simple fonts).
type Code uint32

// GlyphOutline is a list of closed contours in glyph space (1000 units per
// em, PDF's convention), each a sequence of line and curve segments
// starting from an implicit current point established by the contour's
// first point.
type GlyphOutline struct {
	Contours [][]GlyphSegment
}

// GlyphSegment mirrors Segment's shape but in glyph space: quadratic
// curves appear here (SFNT glyf contours are quadratic), cubic curves
// appear for CFF-sourced outlines.
type GlyphSegment struct {
	Kind SegmentKind
	P    geom.Vec2
	C1   geom.Vec2 // quadratic control point, or first cubic control point
	C2   geom.Vec2 // second cubic control point (SegCubicTo only)
}
