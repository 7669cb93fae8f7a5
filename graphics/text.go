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

import (
	"github.com/jvoss-raster/pdfraster/geom"
	"github.com/jvoss-raster/pdfraster/pdf"
)

// showText renders str and advances Tm: each decoded glyph is painted at
// the current render matrix, then Tm is advanced in text space before
// the next glyph.
func (ip *Interpreter) showText(gs *GraphicsState, str pdf.String) {
	font := gs.Text.Font
	if font == nil {
		ip.warnf("graphics: Tj/TJ with no font bound, ignoring")
		return
	}
	for _, code := range font.Decode(str) {
		ip.showGlyph(gs, font, code)
	}
}

// showTextArray renders a TJ operand array: string elements are shown as
// with Tj; number elements adjust Tm by a horizontal displacement of
// -num/1000 * font_size * horizontal_scaling.
func (ip *Interpreter) showTextArray(gs *GraphicsState, arr pdf.Array) {
	font := gs.Text.Font
	for _, el := range arr {
		switch v := el.(type) {
		case pdf.String:
			if font == nil {
				ip.warnf("graphics: TJ with no font bound, ignoring")
				continue
			}
			for _, code := range font.Decode(v) {
				ip.showGlyph(gs, font, code)
			}
		default:
			n, ok := pdf.AsNumber(v)
			if !ok {
				continue
			}
			dx := -n / 1000 * gs.Text.FontSize * gs.Text.HorizScaling
			gs.Text.Tm = geom.Translate(dx, 0).Mul(gs.Text.Tm)
		}
	}
}

// showGlyph paints one decoded character code: maps it to a glyph ID,
// fetches its outline, composes the render matrix, submits to the
// painter, and advances Tm by the glyph's advance width plus spacing.
func (ip *Interpreter) showGlyph(gs *GraphicsState, font Font, code Code) {
	gid := font.GlyphID(code)
	outline, advanceWidth, ok := font.Outline(gid)

	ts := &gs.Text
	if ok && ip.Paint != nil && ts.RenderMode != 3 { // mode 3: invisible
		scale := geom.PDFMatrix(
			ts.FontSize*ts.HorizScaling, 0,
			0, ts.FontSize,
			0, ts.Rise,
		)
		// glyph space is 1000 units per em; fold that into the scale.
		scale.M[0][0] /= 1000
		scale.M[1][1] /= 1000

		renderMatrix := scale.Mul(ts.Tm).Mul(gs.CTM)
		color := gs.FillColor
		if ts.RenderMode == 1 || ts.RenderMode == 5 {
			color = gs.StrokeColor
		}
		ip.Paint.DrawGlyph(outline, renderMatrix, color, gs.FillAlpha)
	}

	tx := advanceWidth/1000*ts.FontSize + ts.CharSpacing
	if font.IsSpace(code) {
		tx += ts.WordSpacing
	}
	tx *= ts.HorizScaling
	ts.Tm = geom.Translate(tx, 0).Mul(ts.Tm)
}
