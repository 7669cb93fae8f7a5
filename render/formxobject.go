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
	"github.com/jvoss-raster/pdfraster/content"
	"github.com/jvoss-raster/pdfraster/geom"
	"github.com/jvoss-raster/pdfraster/graphics"
	"github.com/jvoss-raster/pdfraster/pdf"
)

// doXObject builds the Interpreter.DoXObject callback for ip: resolving
// name against resources.XObject, dispatching on /Subtype. Image XObjects
// are accepted but produce no marks (image decoding is out of scope);
// Form XObjects recurse: save gstate, concat Matrix, interpret the
// form's own content stream against the form's own Resources (falling
// back to the parent's if the form declares none), restore gstate. The
// form's marks are not clipped to its BBox; only the canvas bounds
// limit them.
func (rd *Renderer) doXObject(ip *graphics.Interpreter, resources *pdf.Resources, depth int) func(name pdf.Name, ctm geom.Mat3) error {
	return func(name pdf.Name, ctm geom.Mat3) error {
		if depth >= rd.Opts.MaxFormDepth {
			return &renderError{"Form XObject recursion depth exceeded"}
		}
		if resources == nil || !resources.XObject.Present {
			return &renderError{"Do: no XObject resources available"}
		}
		ref, ok := resources.XObject.Value[name]
		if !ok {
			return &renderError{"Do: unknown XObject " + string(name)}
		}
		obj, err := rd.Resolver.ResolveRef(ref)
		if err != nil {
			return err
		}
		stream, ok := obj.(*pdf.Stream)
		if !ok {
			return &renderError{"Do: XObject is not a stream"}
		}
		subtype, _ := stream.Dict["Subtype"].(pdf.Name)
		switch subtype {
		case "Image":
			return nil
		case "Form":
			return rd.runForm(ip, stream, resources, ctm, depth)
		default:
			return nil
		}
	}
}

func (rd *Renderer) runForm(ip *graphics.Interpreter, stream *pdf.Stream, parentResources *pdf.Resources, ctm geom.Mat3, depth int) error {
	form, err := pdf.DeserializeFormXObject(stream, rd.Resolver.Arena(), rd.Resolver)
	if err != nil {
		return err
	}

	formResources := parentResources
	if form.Resources.Present {
		formResources = &form.Resources.Value
	}

	ip.Stack.Push()
	defer ip.Stack.Pop()

	gs := ip.Stack.Current()
	if form.Matrix.Present && len(form.Matrix.Value) == 6 {
		m := form.Matrix.Value
		concat := geom.PDFMatrix(m[0], m[1], m[2], m[3], m[4], m[5])
		gs.CTM = concat.Mul(ctm)
	} else {
		gs.CTM = ctm
	}
	// BBox clipping is approximated by the renderer's existing canvas
	// bounds clip (every Fill/Stroke already clips to the canvas rect);
	// a precise BBox clip would require an active clip path in
	// GraphicsState, which this renderer does not yet track.

	buf, err := stream.Bytes(rd.Filters)
	if err != nil {
		return err
	}
	ops, err := content.Parse(buf, rd.Log)
	if err != nil {
		return err
	}

	savedResources := ip.Resources
	savedDo := ip.DoXObject
	ip.Resources = formResources
	ip.DoXObject = rd.doXObject(ip, formResources, depth+1)
	defer func() {
		ip.Resources = savedResources
		ip.DoXObject = savedDo
	}()

	return ip.Run(ops)
}
