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

// Package render drives a page's content stream through the graphics
// state machine and a tessellating rasterizer to produce a canvas.Canvas,
// including recursive Form XObject interpretation.
package render

import (
	"github.com/jvoss-raster/pdfraster/canvas"
	"github.com/jvoss-raster/pdfraster/content"
	"github.com/jvoss-raster/pdfraster/geom"
	"github.com/jvoss-raster/pdfraster/graphics"
	"github.com/jvoss-raster/pdfraster/pdf"
	"github.com/jvoss-raster/pdfraster/tessellate"
)

// Options configures the rendering pass: the output resolution (pixels
// per user-space unit) and which curve-flattening preset to use.
type Options struct {
	Scale        float64
	PathOpts     tessellate.Options
	MaxFormDepth int
}

// PreviewOptions favors speed at screen-preview resolutions.
func PreviewOptions(scale float64) Options {
	return Options{Scale: scale, PathOpts: tessellate.Flattened(), MaxFormDepth: 16}
}

// PrintOptions favors fidelity at print resolutions.
func PrintOptions(scale float64) Options {
	return Options{Scale: scale, PathOpts: tessellate.Default(), MaxFormDepth: 16}
}

// FontLoader resolves a /Font resource dictionary reference to a usable
// graphics.Font. Loading and parsing the underlying SFNT/CFF program is
// the font package's job; render only needs the resulting interface.
type FontLoader func(r *pdf.Resolver, fontRef pdf.Reference) (graphics.Font, error)

// Renderer renders pages against a single resolver, caching nothing
// across pages beyond what the caller's FontLoader chooses to cache.
type Renderer struct {
	Resolver *pdf.Resolver
	Filters  pdf.FilterDecoder
	LoadFont FontLoader
	Log      content.Logger
	Opts     Options
}

// New returns a Renderer backed by r. filters may be nil if content
// streams are never filter-encoded (rare in practice, but the object
// model tolerates it); loadFont may be nil to render with no text.
func New(r *pdf.Resolver, filters pdf.FilterDecoder, loadFont FontLoader, opts Options) *Renderer {
	return &Renderer{Resolver: r, Filters: filters, LoadFont: loadFont, Opts: opts}
}

// RenderPage computes the page's user-space extents from its (possibly
// inherited) MediaBox, allocates a canvas with a Y-flipping device CTM,
// and interprets the page's content streams into it.
func (rd *Renderer) RenderPage(page *pdf.Page) (*canvas.Canvas, error) {
	resources, mediaBox, err := pdf.ResolvePageAttributes(page, rd.Resolver)
	if err != nil {
		return nil, err
	}

	cv := canvas.NewForMediaBox(mediaBox, rd.Opts.Scale)
	cv.Fill(255, 255, 255, 255) // PDF pages render onto an opaque white page by default

	deviceCTM := rd.deviceCTM(mediaBox, cv.Height)

	buf, err := rd.concatenatedContents(page)
	if err != nil {
		return nil, err
	}

	initial := graphics.NewGraphicsState()
	initial.CTM = deviceCTM
	ip := graphics.NewInterpreter(initial, &resources, rd.Resolver, &tessellatingPainter{cv: cv, opts: rd.Opts.PathOpts})
	ip.Log = rd.Log
	ip.LookupFont = rd.fontLookup(&resources)
	ip.DoXObject = rd.doXObject(ip, &resources, 0)

	ops, err := content.Parse(buf, rd.Log)
	if err != nil {
		return nil, err
	}
	if err := ip.Run(ops); err != nil {
		return nil, err
	}
	return cv, nil
}

// deviceCTM maps PDF user space (y-up, origin at MediaBox.Min) onto pixel
// space (y-down, origin at the canvas's top-left), at the renderer's
// configured scale.
func (rd *Renderer) deviceCTM(mediaBox geom.Rect, canvasHeight int) geom.Mat3 {
	toOrigin := geom.Translate(-mediaBox.Min.X, -mediaBox.Min.Y)
	scale := geom.Scale(rd.Opts.Scale, -rd.Opts.Scale)
	flip := geom.Translate(0, float64(canvasHeight))
	return toOrigin.Mul(scale).Mul(flip)
}

// concatenatedContents resolves and decodes every stream named by
// page.Contents, concatenating them with an intervening space: PDF treats
// a Contents array as if its streams were laid end to end, so an operator
// split across two streams (rare but legal) must not get glued together.
func (rd *Renderer) concatenatedContents(page *pdf.Page) ([]byte, error) {
	if !page.Contents.Present {
		return nil, nil
	}
	var buf []byte
	for _, ref := range page.Contents.Value {
		obj, err := rd.Resolver.ResolveRef(ref)
		if err != nil {
			return nil, err
		}
		stream, ok := obj.(*pdf.Stream)
		if !ok {
			continue
		}
		decoded, err := stream.Bytes(rd.Filters)
		if err != nil {
			return nil, err
		}
		buf = append(buf, decoded...)
		buf = append(buf, ' ')
	}
	return buf, nil
}

func (rd *Renderer) fontLookup(resources *pdf.Resources) graphics.FontLookup {
	return func(name pdf.Name) (graphics.Font, error) {
		if rd.LoadFont == nil || !resources.Font.Present {
			return nil, &renderError{"no font resources available"}
		}
		ref, ok := resources.Font.Value[name]
		if !ok {
			return nil, &renderError{"unknown font resource " + string(name)}
		}
		return rd.LoadFont(rd.Resolver, ref)
	}
}

type renderError struct{ msg string }

func (e *renderError) Error() string { return "render: " + e.msg }
