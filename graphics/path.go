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

// SegmentKind identifies one path-construction segment.
type SegmentKind int

const (
	SegMoveTo SegmentKind = iota
	SegLineTo
	SegQuadTo
	SegCubicTo
	SegClose
)

// Segment is one element of a subpath, in user space at the time it was
// recorded (the CTM at paint time is applied later by the renderer).
type Segment struct {
	Kind           SegmentKind
	P              geom.Vec2 // MoveTo/LineTo endpoint
	C1, C2, P3     geom.Vec2 // CurveTo control points and endpoint
}

// Path is the sequence of subpaths accumulated by the path-construction
// operators (m/l/c/v/y/re/h) between two painting operators. It is cleared
// after every painting operator (S/s/f/F/f*/B/B*/b/b*/n), per PDF's path
// object lifecycle.
type Path struct {
	Segments []Segment
	start    geom.Vec2 // current subpath's starting point, for h/H
	current  geom.Vec2
	open     bool
}

func (p *Path) MoveTo(x, y float64) {
	p.start = geom.Vec2{X: x, Y: y}
	p.current = p.start
	p.open = true
	p.Segments = append(p.Segments, Segment{Kind: SegMoveTo, P: p.start})
}

func (p *Path) LineTo(x, y float64) {
	if !p.open {
		p.MoveTo(x, y)
		return
	}
	p.current = geom.Vec2{X: x, Y: y}
	p.Segments = append(p.Segments, Segment{Kind: SegLineTo, P: p.current})
}

func (p *Path) CurveTo(x1, y1, x2, y2, x3, y3 float64) {
	if !p.open {
		p.MoveTo(x1, y1)
	}
	c1 := geom.Vec2{X: x1, Y: y1}
	c2 := geom.Vec2{X: x2, Y: y2}
	p3 := geom.Vec2{X: x3, Y: y3}
	p.current = p3
	p.Segments = append(p.Segments, Segment{Kind: SegCubicTo, C1: c1, C2: c2, P3: p3})
}

// CurveToV is the "v" operator: the first control point equals the current
// point.
func (p *Path) CurveToV(x2, y2, x3, y3 float64) {
	p.CurveTo(p.current.X, p.current.Y, x2, y2, x3, y3)
}

// CurveToY is the "y" operator: the second control point equals the
// endpoint.
func (p *Path) CurveToY(x1, y1, x3, y3 float64) {
	p.CurveTo(x1, y1, x3, y3, x3, y3)
}

func (p *Path) Rect(x, y, w, h float64) {
	p.MoveTo(x, y)
	p.LineTo(x+w, y)
	p.LineTo(x+w, y+h)
	p.LineTo(x, y+h)
	p.ClosePath()
}

func (p *Path) ClosePath() {
	if !p.open {
		return
	}
	p.Segments = append(p.Segments, Segment{Kind: SegClose, P: p.start})
	p.current = p.start
}

// Reset clears the path after a painting operator consumes it.
func (p *Path) Reset() {
	p.Segments = p.Segments[:0]
	p.open = false
}

// Empty reports whether the path has no segments (an "n" no-op with
// nothing queued, or a stream that paints before constructing anything).
func (p *Path) Empty() bool { return len(p.Segments) == 0 }
