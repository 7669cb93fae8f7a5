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

// Package canvas is the pixel sink a page renders into: a dense RGBA8888
// framebuffer with bounds-checked pixel access, source-over compositing,
// and a BMP encoder for dumping the result.
package canvas

import "github.com/jvoss-raster/pdfraster/geom"

// Canvas is a row-major RGBA8888 framebuffer. Scale converts user-space
// units to pixels (the page renderer derives it from the requested output
// resolution and the page's MediaBox).
type Canvas struct {
	Width, Height int
	Scale         float64
	Pix           []byte // len == Width*Height*4, row-major, top-left origin
}

// New allocates a canvas of the given pixel dimensions, fully transparent
// black.
func New(width, height int, scale float64) *Canvas {
	return &Canvas{
		Width:  width,
		Height: height,
		Scale:  scale,
		Pix:    make([]byte, width*height*4),
	}
}

// NewForMediaBox sizes a canvas from a page's MediaBox at the given
// user-unit-to-pixel scale, rounding up so the box is fully covered.
func NewForMediaBox(box geom.Rect, scale float64) *Canvas {
	w := ceilScaled(box.Max.X-box.Min.X, scale)
	h := ceilScaled(box.Max.Y-box.Min.Y, scale)
	return New(w, h, scale)
}

func ceilScaled(units float64, scale float64) int {
	px := units * scale
	n := int(px)
	if float64(n) < px {
		n++
	}
	if n < 1 {
		n = 1
	}
	return n
}

func (c *Canvas) offset(x, y int) (int, bool) {
	if x < 0 || y < 0 || x >= c.Width || y >= c.Height {
		return 0, false
	}
	return (y*c.Width + x) * 4, true
}

// SetPixel bounds-checks (x, y) and overwrites the pixel there; out-of-
// bounds coordinates are silently ignored, clipping rasterization to the
// canvas rect.
func (c *Canvas) SetPixel(x, y int, r, g, b, a uint8) {
	off, ok := c.offset(x, y)
	if !ok {
		return
	}
	c.Pix[off], c.Pix[off+1], c.Pix[off+2], c.Pix[off+3] = r, g, b, a
}

// At returns the pixel at (x, y); out-of-bounds reads return transparent
// black.
func (c *Canvas) At(x, y int) (r, g, b, a uint8) {
	off, ok := c.offset(x, y)
	if !ok {
		return 0, 0, 0, 0
	}
	return c.Pix[off], c.Pix[off+1], c.Pix[off+2], c.Pix[off+3]
}

// Blend composites (r, g, b) at coverage alpha over the existing pixel at
// (x, y) using source-over: dst <- src*alpha + dst*(1-alpha). alpha is in
// [0, 1], typically the supersampled coverage fraction from the
// rasterizer times the paint's own alpha.
func (c *Canvas) Blend(x, y int, r, g, b uint8, alpha float64) {
	off, ok := c.offset(x, y)
	if !ok {
		return
	}
	if alpha <= 0 {
		return
	}
	if alpha > 1 {
		alpha = 1
	}
	inv := 1 - alpha
	c.Pix[off] = blendChannel(c.Pix[off], r, alpha, inv)
	c.Pix[off+1] = blendChannel(c.Pix[off+1], g, alpha, inv)
	c.Pix[off+2] = blendChannel(c.Pix[off+2], b, alpha, inv)
	srcA := alpha * 255
	dstA := float64(c.Pix[off+3])
	c.Pix[off+3] = uint8(srcA + dstA*inv)
}

func blendChannel(dst, src uint8, alpha, inv float64) uint8 {
	v := float64(src)*alpha + float64(dst)*inv
	if v > 255 {
		v = 255
	}
	return uint8(v + 0.5)
}

// Fill overwrites every pixel with a single solid color, used to
// establish the page's background before painting content.
func (c *Canvas) Fill(r, g, b, a uint8) {
	for i := 0; i < len(c.Pix); i += 4 {
		c.Pix[i], c.Pix[i+1], c.Pix[i+2], c.Pix[i+3] = r, g, b, a
	}
}
