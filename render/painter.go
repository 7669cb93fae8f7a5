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

package render

import (
	"math"

	"github.com/jvoss-raster/pdfraster/canvas"
	"github.com/jvoss-raster/pdfraster/geom"
	"github.com/jvoss-raster/pdfraster/graphics"
	"github.com/jvoss-raster/pdfraster/tessellate"
)

// tessellatingPainter implements graphics.Painter by flattening the path
// graphics hands it, transforming into device space, and rasterizing with
// tessellate.Fill straight onto the canvas.
type tessellatingPainter struct {
	cv   *canvas.Canvas
	opts tessellate.Options
}

func (p *tessellatingPainter) Fill(path *graphics.Path, ctm geom.Mat3, color graphics.Color, alpha float64, evenOdd bool) {
	contours := flattenPath(path, ctm, p.opts)
	p.rasterize(contours, color, alpha, evenOdd)
}

// Stroke approximates stroking by filling each line segment of the path
// as a thin rectangle along its direction; this covers the common case of
// axis-aligned and near-straight strokes without a full miter/join/cap
// geometry engine.
func (p *tessellatingPainter) Stroke(path *graphics.Path, ctm geom.Mat3, color graphics.Color, alpha float64, lineWidth float64) {
	contours := flattenPath(path, ctm, p.opts)
	halfWidth := lineWidth * scaleOf(ctm) / 2
	if halfWidth <= 0 {
		halfWidth = 0.5
	}
	for _, c := range contours {
		for i := 0; i+1 < len(c.Points); i++ {
			rect := strokeSegmentRect(c.Points[i], c.Points[i+1], halfWidth)
			p.rasterize([]tessellate.Contour{rect}, color, alpha, false)
		}
	}
}

func (p *tessellatingPainter) DrawGlyph(outline graphics.GlyphOutline, renderMatrix geom.Mat3, color graphics.Color, alpha float64) {
	builder := tessellate.NewPathBuilder(p.opts)
	for _, contour := range outline.Contours {
		if len(contour) == 0 {
			continue
		}
		builder.NewContour(contour[0].P)
		for _, seg := range contour[1:] {
			switch seg.Kind {
			case graphics.SegLineTo:
				builder.LineTo(seg.P)
			case graphics.SegQuadTo:
				builder.QuadTo(seg.C1, seg.P)
			case graphics.SegCubicTo:
				builder.CubicTo(seg.C1, seg.C2, seg.P)
			}
		}
		builder.CloseContour()
	}
	builder.ApplyTransform(renderMatrix)
	p.rasterize(builder.Contours(), color, alpha, false)
}

func (p *tessellatingPainter) rasterize(contours []tessellate.Contour, color graphics.Color, alpha float64, evenOdd bool) {
	r, g, b, _ := color.RGBA8()
	tessellate.Fill(contours, p.cv.Width, p.cv.Height, evenOdd, func(x, y int, coverage float64) {
		p.cv.Blend(x, y, r, g, b, coverage*alpha)
	})
}

func flattenPath(path *graphics.Path, ctm geom.Mat3, opts tessellate.Options) []tessellate.Contour {
	builder := tessellate.NewPathBuilder(opts)
	for _, seg := range path.Segments {
		switch seg.Kind {
		case graphics.SegMoveTo:
			builder.NewContour(seg.P)
		case graphics.SegLineTo:
			builder.LineTo(seg.P)
		case graphics.SegCubicTo:
			builder.CubicTo(seg.C1, seg.C2, seg.P3)
		case graphics.SegClose:
			builder.CloseContour()
		}
	}
	builder.ApplyTransform(ctm)
	return builder.Contours()
}

func scaleOf(m geom.Mat3) float64 {
	// approximate uniform scale as the square root of the linear part's
	// determinant magnitude.
	det := m.Determinant()
	if det < 0 {
		det = -det
	}
	return math.Sqrt(det)
}

func strokeSegmentRect(a, b geom.Vec2, halfWidth float64) tessellate.Contour {
	dx, dy := b.X-a.X, b.Y-a.Y
	length := math.Sqrt(dx*dx + dy*dy)
	if length == 0 {
		length = 1
	}
	nx, ny := -dy/length*halfWidth, dx/length*halfWidth
	return tessellate.Contour{Points: []geom.Vec2{
		{X: a.X + nx, Y: a.Y + ny},
		{X: b.X + nx, Y: b.Y + ny},
		{X: b.X - nx, Y: b.Y - ny},
		{X: a.X - nx, Y: a.Y - ny},
	}}
}
