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

package sfnt

import (
	"github.com/jvoss-raster/pdfraster/geom"
	"github.com/jvoss-raster/pdfraster/graphics"
	"github.com/jvoss-raster/pdfraster/sfnt/cmap"
	"github.com/jvoss-raster/pdfraster/sfnt/glyf"
	"github.com/jvoss-raster/pdfraster/sfnt/head"
)

// Font is an opened SFNT font program: its directory, metrics, outline
// table, and character-to-glyph map, ready for gid-indexed outline and
// advance-width queries. Font does not itself implement graphics.Font:
// it has no notion of a PDF simple/composite font's encoding or widths
// array, which is the font package's job, built on top of this type
// and the cff package's equivalent.
type Font struct {
	dir       *Directory
	Head      *head.Info
	NumGlyphs int
	Cmap      *cmap.Table // nil if the font carries no cmap table

	hmtx     *hMetrics
	loca     []uint32
	glyfData []byte
}

// New opens an SFNT font program: reads the table directory, then the
// head, maxp, hhea, hmtx, loca, and glyf tables every TrueType-flavored
// font must carry. cmap is optional; its absence (e.g. a font embedded
// and referenced purely by glyph index, as PDF allows) is not an error.
func New(data []byte, checksumOpt ChecksumPolicy) (*Font, error) {
	dir, err := ReadDirectory(data, checksumOpt)
	if err != nil {
		return nil, err
	}

	headData, err := dir.Find(data, "head")
	if err != nil {
		return nil, err
	}
	headInfo, err := head.Read(headData)
	if err != nil {
		return nil, err
	}

	maxpData, err := dir.Find(data, "maxp")
	if err != nil {
		return nil, err
	}
	numGlyphs, err := readMaxp(maxpData)
	if err != nil {
		return nil, err
	}

	hheaData, err := dir.Find(data, "hhea")
	if err != nil {
		return nil, err
	}
	numLongHorMetrics, err := readNumLongHorMetrics(hheaData)
	if err != nil {
		return nil, err
	}

	hmtxData, err := dir.Find(data, "hmtx")
	if err != nil {
		return nil, err
	}
	hmtx, err := readHmtx(hmtxData, numGlyphs, numLongHorMetrics)
	if err != nil {
		return nil, err
	}

	locaData, err := dir.Find(data, "loca")
	if err != nil {
		return nil, err
	}
	loca, err := glyf.DecodeLoca(locaData, numGlyphs, headInfo.HasLongOffsets)
	if err != nil {
		return nil, err
	}

	glyfData, err := dir.Find(data, "glyf")
	if err != nil {
		return nil, err
	}

	var cm *cmap.Table
	if cmapData, cerr := dir.Find(data, "cmap"); cerr == nil {
		cm, _ = cmap.Decode(cmapData) // a malformed cmap leaves Cmap nil; GlyphID then always misses
	}

	return &Font{
		dir:       dir,
		Head:      headInfo,
		NumGlyphs: numGlyphs,
		Cmap:      cm,
		hmtx:      hmtx,
		loca:      loca,
		glyfData:  glyfData,
	}, nil
}

// scale converts font design units to the 1000-unit glyph space
// graphics.Font.Outline reports in.
func (f *Font) scale() float64 {
	if f.Head.UnitsPerEm == 0 {
		return 1
	}
	return 1000.0 / float64(f.Head.UnitsPerEm)
}

// GlyphID maps a character code through the font's best cmap subtable.
// It returns 0 (.notdef) if the font has no usable cmap or the code is
// unmapped.
func (f *Font) GlyphID(code uint32) uint16 {
	if f.Cmap == nil {
		return 0
	}
	sub := f.Cmap.Best()
	if sub == nil {
		return 0
	}
	return sub.Lookup(code)
}

// AdvanceWidth returns gid's advance width in 1000-unit glyph space.
func (f *Font) AdvanceWidth(gid uint16) float64 {
	return float64(f.hmtx.AdvanceWidth(int(gid))) * f.scale()
}

// Outline decodes and scales gid's outline into 1000-unit glyph space.
// ok is false for an out-of-range gid or a glyph with no contour data
// (e.g. the space glyph); composite glyphs are rejected with ok false
// rather than an error, since PDF text showing should keep going with a
// blank glyph rather than abort the whole run.
func (f *Font) Outline(gid uint16) (outline graphics.GlyphOutline, advanceWidth float64, ok bool) {
	advanceWidth = f.AdvanceWidth(gid)
	if int(gid)+1 >= len(f.loca) {
		return graphics.GlyphOutline{}, advanceWidth, false
	}
	start, end := f.loca[gid], f.loca[gid+1]
	if start >= end || end > uint32(len(f.glyfData)) {
		return graphics.GlyphOutline{}, advanceWidth, false // empty or out-of-range glyph data: nothing to paint
	}
	raw, err := glyf.DecodeSimpleGlyph(f.glyfData[start:end])
	if err != nil {
		return graphics.GlyphOutline{}, advanceWidth, false
	}
	return scaleOutline(raw, f.scale()), advanceWidth, true
}

func scaleOutline(o graphics.GlyphOutline, s float64) graphics.GlyphOutline {
	scaled := graphics.GlyphOutline{Contours: make([][]graphics.GlyphSegment, len(o.Contours))}
	scalePt := func(v geom.Vec2) geom.Vec2 { return geom.Vec2{X: v.X * s, Y: v.Y * s} }
	for i, contour := range o.Contours {
		out := make([]graphics.GlyphSegment, len(contour))
		for j, seg := range contour {
			out[j] = graphics.GlyphSegment{
				Kind: seg.Kind,
				P:    scalePt(seg.P),
				C1:   scalePt(seg.C1),
				C2:   scalePt(seg.C2),
			}
		}
		scaled.Contours[i] = out
	}
	return scaled
}
