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

package tessellate

import (
	"math"
	"sort"

	"github.com/bits-and-blooms/bitset"
	"github.com/jvoss-raster/pdfraster/geom"
)

// Sink receives one antialiased pixel's coverage: for (x, y), coverage in
// [0,1] is the fraction of that pixel covered by the fill. The canvas
// package's Blend is the typical Sink.
type Sink func(x, y int, coverage float64)

const subSamples = 4

// crossing is one edge/scanline intersection: its x coordinate and the
// edge's winding contribution (the sign of its vertical direction).
type crossing struct {
	x    float64
	wind int
}

// Fill rasterizes contours (already in device space) using the non-zero
// (or, if evenOdd, even-odd) winding rule. Each pixel row is supersampled
// at subSamples evenly spaced sub-scanlines and the results averaged into
// a coverage fraction, clipped to [0,width)x[0,height).
func Fill(contours []Contour, width, height int, evenOdd bool, sink Sink) {
	if len(contours) == 0 || width <= 0 || height <= 0 {
		return
	}

	minY, maxY := boundsY(contours)
	y0 := clampInt(int(math.Floor(minY)), 0, height)
	y1 := clampInt(int(math.Ceil(maxY)), 0, height)

	counts := make([]uint16, width)
	for y := y0; y < y1; y++ {
		for i := range counts {
			counts[i] = 0
		}
		touched := bitset.New(uint(width))

		for s := 0; s < subSamples; s++ {
			sampleY := float64(y) + (float64(s)+0.5)/subSamples
			crossings := scanlineCrossings(contours, sampleY)
			if len(crossings) == 0 {
				continue
			}
			sort.Slice(crossings, func(i, j int) bool { return crossings[i].x < crossings[j].x })

			wind := 0
			for i := 0; i < len(crossings); i++ {
				wind += crossings[i].wind
				if !windingIsInside(wind, evenOdd) || i+1 >= len(crossings) {
					continue
				}
				addSpanCoverage(counts, touched, crossings[i].x, crossings[i+1].x, width)
			}
		}

		for x, e := touched.NextSet(0); e; x, e = touched.NextSet(x + 1) {
			if counts[x] == 0 {
				continue
			}
			sink(int(x), y, float64(counts[x])/(255*subSamples))
		}
	}
}

// addSpanCoverage distributes one sub-scanline's [xStart, xEnd) inside-run
// across the pixels it touches, adding partial coverage at the two end
// pixels and full coverage to whole pixels in between, and marks every
// touched pixel in touched so Fill only visits pixels with real coverage.
func addSpanCoverage(counts []uint16, touched *bitset.BitSet, xStart, xEnd float64, width int) {
	lo := clampInt(int(math.Floor(xStart)), 0, width)
	hi := clampInt(int(math.Ceil(xEnd)), 0, width)
	for x := lo; x < hi; x++ {
		left := math.Max(float64(x), xStart)
		right := math.Min(float64(x+1), xEnd)
		frac := right - left
		if frac <= 0 {
			continue
		}
		counts[x] += uint16(frac * 255)
		touched.Set(uint(x))
	}
}

func windingIsInside(wind int, evenOdd bool) bool {
	if evenOdd {
		return wind%2 != 0
	}
	return wind != 0
}

// scanlineCrossings finds every edge of every contour that crosses
// horizontal line y=sampleY, recording the crossing's x coordinate and
// winding contribution. Contours are treated as implicitly closed for
// rasterization purposes regardless of Contour.closed, per PDF's fill
// semantics (an unclosed subpath is closed with a straight line before
// filling).
func scanlineCrossings(contours []Contour, sampleY float64) []crossing {
	var out []crossing
	for _, c := range contours {
		n := len(c.Points)
		if n < 2 {
			continue
		}
		for i := 0; i < n; i++ {
			p0 := c.Points[i]
			p1 := c.Points[(i+1)%n]
			if p0.Y == p1.Y {
				continue
			}
			var wind int
			var top, bottom geom.Vec2
			if p0.Y < p1.Y {
				wind, top, bottom = 1, p0, p1
			} else {
				wind, top, bottom = -1, p1, p0
			}
			if sampleY < top.Y || sampleY >= bottom.Y {
				continue
			}
			t := (sampleY - top.Y) / (bottom.Y - top.Y)
			x := top.X + (bottom.X-top.X)*t
			out = append(out, crossing{x: x, wind: wind})
		}
	}
	return out
}

func boundsY(contours []Contour) (min, max float64) {
	min, max = math.Inf(1), math.Inf(-1)
	for _, c := range contours {
		for _, p := range c.Points {
			if p.Y < min {
				min = p.Y
			}
			if p.Y > max {
				max = p.Y
			}
		}
	}
	return min, max
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
