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

// Package glyf decodes the SFNT "loca" and "glyf" tables: per-glyph
// byte offsets into the glyph data table, and simple TrueType glyph
// outlines (quadratic Bézier contours). Composite glyphs are out of
// scope — DecodeSimpleGlyph rejects a composite glyph with an error,
// since composites reference other glyphs rather than carrying their
// own contour data.
package glyf

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/image/math/fixed"

	"github.com/jvoss-raster/pdfraster/geom"
	"github.com/jvoss-raster/pdfraster/graphics"
)

// DecodeLoca decodes the "loca" table into per-glyph byte offsets into
// "glyf" data. The returned slice has numGlyphs+1 entries; glyph i's
// data spans offsets[i]:offsets[i+1].
func DecodeLoca(data []byte, numGlyphs int, longOffsets bool) ([]uint32, error) {
	if longOffsets {
		n := numGlyphs + 1
		if len(data) < 4*n {
			return nil, fmt.Errorf("glyf: loca table too short for long offsets")
		}
		offs := make([]uint32, n)
		for i := range offs {
			offs[i] = binary.BigEndian.Uint32(data[4*i : 4*i+4])
		}
		return offs, nil
	}

	n := numGlyphs + 1
	if len(data) < 2*n {
		return nil, fmt.Errorf("glyf: loca table too short for short offsets")
	}
	offs := make([]uint32, n)
	for i := range offs {
		offs[i] = uint32(binary.BigEndian.Uint16(data[2*i:2*i+2])) * 2
	}
	return offs, nil
}

// point is one decoded glyf outline point, prior to flattening.
type point struct {
	x, y    int16
	onCurve bool
}

// simple glyph flag bits.
const (
	flagOnCurve  = 0x01
	flagXShort   = 0x02
	flagYShort   = 0x04
	flagRepeat   = 0x08
	flagXSameOrP = 0x10 // X_IS_SAME_OR_POSITIVE_X_SHORT_VECTOR
	flagYSameOrP = 0x20 // Y_IS_SAME_OR_POSITIVE_Y_SHORT_VECTOR
)

// DecodeSimpleGlyph decodes a simple glyph's contours and flattens them
// into a graphics.GlyphOutline, in font design units. data is the
// glyph's own slice of the glyf table (a composite glyph, whose
// numberOfContours is negative, is rejected with an error); an
// empty data slice (a glyph with no outline, e.g. the space glyph)
// decodes to an empty outline.
func DecodeSimpleGlyph(data []byte) (graphics.GlyphOutline, error) {
	if len(data) == 0 {
		return graphics.GlyphOutline{}, nil
	}
	if len(data) < 10 {
		return graphics.GlyphOutline{}, fmt.Errorf("glyf: glyph header truncated")
	}

	numContours := int(int16(binary.BigEndian.Uint16(data[0:2])))
	if numContours < 0 {
		return graphics.GlyphOutline{}, fmt.Errorf("glyf: composite glyphs are not supported")
	}
	buf := data[10:]

	if len(buf) < 2*numContours+2 {
		return graphics.GlyphOutline{}, fmt.Errorf("glyf: truncated endPtsOfContours")
	}
	endPts := make([]int, numContours)
	for i := 0; i < numContours; i++ {
		endPts[i] = int(binary.BigEndian.Uint16(buf[2*i : 2*i+2]))
	}
	buf = buf[2*numContours:]

	if numContours == 0 {
		return graphics.GlyphOutline{}, nil
	}
	numPoints := endPts[numContours-1] + 1

	if len(buf) < 2 {
		return graphics.GlyphOutline{}, fmt.Errorf("glyf: truncated instruction length")
	}
	instrLen := int(binary.BigEndian.Uint16(buf[0:2]))
	buf = buf[2:]
	if len(buf) < instrLen {
		return graphics.GlyphOutline{}, fmt.Errorf("glyf: truncated instructions")
	}
	buf = buf[instrLen:] // instructions themselves are irrelevant to outline rendering

	flags := make([]byte, numPoints)
	for i := 0; i < numPoints; {
		if len(buf) < 1 {
			return graphics.GlyphOutline{}, fmt.Errorf("glyf: truncated flags")
		}
		f := buf[0]
		buf = buf[1:]
		flags[i] = f
		i++
		if f&flagRepeat != 0 {
			if len(buf) < 1 {
				return graphics.GlyphOutline{}, fmt.Errorf("glyf: truncated flag repeat count")
			}
			count := buf[0]
			buf = buf[1:]
			for count > 0 && i < numPoints {
				flags[i] = f
				i++
				count--
			}
		}
	}

	xs := make([]int16, numPoints)
	var x int16
	for i, f := range flags {
		switch {
		case f&flagXShort != 0:
			if len(buf) < 1 {
				return graphics.GlyphOutline{}, fmt.Errorf("glyf: truncated x-coordinates")
			}
			dx := int16(buf[0])
			buf = buf[1:]
			if f&flagXSameOrP != 0 {
				x += dx
			} else {
				x -= dx
			}
		case f&flagXSameOrP == 0:
			if len(buf) < 2 {
				return graphics.GlyphOutline{}, fmt.Errorf("glyf: truncated x-coordinates")
			}
			x += int16(binary.BigEndian.Uint16(buf[0:2]))
			buf = buf[2:]
		}
		xs[i] = x
	}

	ys := make([]int16, numPoints)
	var y int16
	for i, f := range flags {
		switch {
		case f&flagYShort != 0:
			if len(buf) < 1 {
				return graphics.GlyphOutline{}, fmt.Errorf("glyf: truncated y-coordinates")
			}
			dy := int16(buf[0])
			buf = buf[1:]
			if f&flagYSameOrP != 0 {
				y += dy
			} else {
				y -= dy
			}
		case f&flagYSameOrP == 0:
			if len(buf) < 2 {
				return graphics.GlyphOutline{}, fmt.Errorf("glyf: truncated y-coordinates")
			}
			y += int16(binary.BigEndian.Uint16(buf[0:2]))
			buf = buf[2:]
		}
		ys[i] = y
	}

	outline := graphics.GlyphOutline{Contours: make([][]graphics.GlyphSegment, numContours)}
	start := 0
	for c := 0; c < numContours; c++ {
		end := endPts[c] + 1
		pts := make([]point, end-start)
		for j := start; j < end; j++ {
			pts[j-start] = point{xs[j], ys[j], flags[j]&flagOnCurve != 0}
		}
		start = end
		outline.Contours[c] = flattenContour(pts)
	}
	return outline, nil
}

// flattenContour turns a raw on/off-curve point list into a closed
// sequence of GlyphSegments: consecutive off-curve points imply an
// on-curve midpoint between them, so every on-off-on run becomes one
// quadratic Bézier segment.
func flattenContour(pts []point) []graphics.GlyphSegment {
	n := len(pts)
	if n == 0 {
		return nil
	}

	// Point coordinates are carried as fixed.Point26_6 through the
	// midpoint arithmetic below, the same fixed-point representation an
	// outline rasterizer works in, before the final conversion back to
	// the float64 glyph space graphics.GlyphSegment expects.
	fpt := func(p point) fixed.Point26_6 {
		return fixed.Point26_6{X: fixed.I(int(p.x)), Y: fixed.I(int(p.y))}
	}
	toVec2 := func(fp fixed.Point26_6) geom.Vec2 {
		return geom.Vec2{X: float64(fp.X) / 64, Y: float64(fp.Y) / 64}
	}
	vec := func(p point) geom.Vec2 { return toVec2(fpt(p)) }
	mid := func(a, b point) geom.Vec2 {
		return toVec2(fixed.Point26_6{X: (fpt(a).X + fpt(b).X) / 2, Y: (fpt(a).Y + fpt(b).Y) / 2})
	}

	// Rotate so the contour starts on an on-curve point; if none
	// exists (a legal but rare all-off-curve contour), synthesize one
	// at the midpoint of the first and last points.
	startIdx := -1
	for i, p := range pts {
		if p.onCurve {
			startIdx = i
			break
		}
	}
	var start geom.Vec2
	var rest []point
	if startIdx >= 0 {
		start = vec(pts[startIdx])
		rest = append(append([]point{}, pts[startIdx+1:]...), pts[:startIdx]...)
	} else {
		start = mid(pts[n-1], pts[0])
		rest = pts
	}

	segs := []graphics.GlyphSegment{{Kind: graphics.SegMoveTo, P: start}}
	var pending *geom.Vec2 // an off-curve control point awaiting resolution

	for i := range rest {
		p := rest[i]
		if p.onCurve {
			if pending != nil {
				segs = append(segs, graphics.GlyphSegment{Kind: graphics.SegQuadTo, C1: *pending, P: vec(p)})
				pending = nil
			} else {
				segs = append(segs, graphics.GlyphSegment{Kind: graphics.SegLineTo, P: vec(p)})
			}
			continue
		}
		if pending != nil {
			m := mid(point{int16(pending.X), int16(pending.Y), false}, p)
			segs = append(segs, graphics.GlyphSegment{Kind: graphics.SegQuadTo, C1: *pending, P: m})
		}
		v := vec(p)
		pending = &v
	}
	if pending != nil {
		segs = append(segs, graphics.GlyphSegment{Kind: graphics.SegQuadTo, C1: *pending, P: start})
	}
	segs = append(segs, graphics.GlyphSegment{Kind: graphics.SegClose})
	return segs
}
