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

// Package tessellate flattens curved path segments into line segments
// and rasterizes the result with a non-zero-winding, supersampled
// antialiased scanline fill.
package tessellate

import (
	"math"

	"github.com/jvoss-raster/pdfraster/geom"
)

// Options bounds the curve-flattening work: how close an approximation
// has to be before a recursive subdivision stops, and how deep the
// recursion is allowed to go regardless.
type Options struct {
	QuadFlatness  float64
	CubicFlatness float64
	QuadMaxDepth  int
	CubicMaxDepth int
}

// Default favors fidelity: tight flatness tolerances, deep recursion
// budget. Suitable for print-resolution output.
func Default() Options {
	return Options{QuadFlatness: 0.1, CubicFlatness: 0.1, QuadMaxDepth: 16, CubicMaxDepth: 16}
}

// Flattened favors speed over fidelity: looser tolerances, shallow
// recursion. Suitable for screen-preview-resolution output.
func Flattened() Options {
	return Options{QuadFlatness: 0.5, CubicFlatness: 0.5, QuadMaxDepth: 6, CubicMaxDepth: 6}
}

// Contour is one closed (or left-open) polyline, after curve flattening,
// in device space.
type Contour struct {
	Points []geom.Vec2
	closed bool
}

// PathBuilder accumulates contours from MoveTo/LineTo/QuadTo/CubicTo/Close
// calls, flattening curves as they arrive.
type PathBuilder struct {
	opts     Options
	contours []Contour
	current  *Contour
}

// NewPathBuilder returns a builder that flattens curves per opts.
func NewPathBuilder(opts Options) *PathBuilder {
	return &PathBuilder{opts: opts}
}

func (b *PathBuilder) NewContour(p geom.Vec2) {
	b.contours = append(b.contours, Contour{Points: []geom.Vec2{p}})
	b.current = &b.contours[len(b.contours)-1]
}

func (b *PathBuilder) LineTo(p geom.Vec2) {
	if b.current == nil {
		b.NewContour(p)
		return
	}
	b.current.Points = append(b.current.Points, p)
}

// QuadTo flattens a quadratic Bézier (current point implied, control c,
// endpoint p) by recursive midpoint subdivision: stop subdividing once
// the control point's distance to the chord midpoint is within
// QuadFlatness, or QuadMaxDepth is reached.
func (b *PathBuilder) QuadTo(c, p geom.Vec2) {
	if b.current == nil {
		b.NewContour(c)
	}
	start := b.current.Points[len(b.current.Points)-1]
	b.flattenQuad(start, c, p, b.opts.QuadMaxDepth)
}

func (b *PathBuilder) flattenQuad(p0, c, p1 geom.Vec2, depth int) {
	mid := geom.Vec2{X: (p0.X + p1.X) / 2, Y: (p0.Y + p1.Y) / 2}
	if depth <= 0 || dist(c, mid) <= b.opts.QuadFlatness {
		b.current.Points = append(b.current.Points, p1)
		return
	}
	c0 := lerp(p0, c, 0.5)
	c1 := lerp(c, p1, 0.5)
	mm := lerp(c0, c1, 0.5)
	b.flattenQuad(p0, c0, mm, depth-1)
	b.flattenQuad(mm, c1, p1, depth-1)
}

// CubicTo flattens a cubic Bézier (current point implied, controls c1/c2,
// endpoint p) by recursive de Casteljau subdivision: stop once both
// control points lie within CubicFlatness of the p0-p1 chord.
func (b *PathBuilder) CubicTo(c1, c2, p geom.Vec2) {
	if b.current == nil {
		b.NewContour(c1)
	}
	start := b.current.Points[len(b.current.Points)-1]
	b.flattenCubic(start, c1, c2, p, b.opts.CubicMaxDepth)
}

func (b *PathBuilder) flattenCubic(p0, c1, c2, p1 geom.Vec2, depth int) {
	if depth <= 0 || (chordDeviation(p0, p1, c1) <= b.opts.CubicFlatness &&
		chordDeviation(p0, p1, c2) <= b.opts.CubicFlatness) {
		b.current.Points = append(b.current.Points, p1)
		return
	}
	p01 := lerp(p0, c1, 0.5)
	p12 := lerp(c1, c2, 0.5)
	p23 := lerp(c2, p1, 0.5)
	p012 := lerp(p01, p12, 0.5)
	p123 := lerp(p12, p23, 0.5)
	mid := lerp(p012, p123, 0.5)
	b.flattenCubic(p0, p01, p012, mid, depth-1)
	b.flattenCubic(mid, p123, p23, p1, depth-1)
}

func (b *PathBuilder) CloseContour() {
	if b.current != nil {
		b.current.closed = true
	}
}

// ApplyTransform maps every stored point through m, in place. Used once a
// path is fully built in user/glyph space, to move it into device space
// immediately before rasterization.
func (b *PathBuilder) ApplyTransform(m geom.Mat3) {
	for i := range b.contours {
		pts := b.contours[i].Points
		for j := range pts {
			pts[j] = geom.Transform(pts[j], m)
		}
	}
}

// Contours returns the accumulated, flattened contours.
func (b *PathBuilder) Contours() []Contour { return b.contours }

func lerp(a, b geom.Vec2, t float64) geom.Vec2 {
	return geom.Vec2{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t}
}

func dist(a, b geom.Vec2) float64 {
	dx, dy := a.X-b.X, a.Y-b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// chordDeviation returns the perpendicular distance from p to the line
// through a-b: the cubic flattening test measures a curve's deviation
// from its endpoint chord.
func chordDeviation(a, b, p geom.Vec2) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	length := math.Sqrt(dx*dx + dy*dy)
	if length == 0 {
		return dist(a, p)
	}
	// |cross(b-a, p-a)| / |b-a|
	cross := dx*(p.Y-a.Y) - dy*(p.X-a.X)
	if cross < 0 {
		cross = -cross
	}
	return cross / length
}
