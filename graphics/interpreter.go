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
	"github.com/jvoss-raster/pdfraster/content"
	"github.com/jvoss-raster/pdfraster/geom"
	"github.com/jvoss-raster/pdfraster/pdf"
)

// Painter receives the fully-resolved results of painting operators: a
// path in user space together with the CTM to transform it by, and glyph
// outlines positioned by their render matrix. It is implemented by the
// tessellator-backed canvas writer; graphics itself never touches pixels.
//
// This interface exists so graphics can drive the full painting model
// described by the content-stream state machine without depending on
// the rasterizer or the font outline sources directly.
type Painter interface {
	Fill(path *Path, ctm geom.Mat3, color Color, alpha float64, evenOdd bool)
	Stroke(path *Path, ctm geom.Mat3, color Color, alpha float64, lineWidth float64)
	DrawGlyph(outline GlyphOutline, renderMatrix geom.Mat3, color Color, alpha float64)
}

// FontLookup resolves a /Font resource name (as found in Resources.Font)
// to a usable Font. The font package supplies the real implementation;
// tests can stub it directly.
type FontLookup func(name pdf.Name) (Font, error)

// Interpreter walks a decoded content stream, maintaining the graphics and
// text state and invoking Painter for every painting operator. One
// Interpreter is used per content stream; Form XObject recursion
// constructs a nested Interpreter with the form's own Resources, driven
// by the page renderer, not by this package.
type Interpreter struct {
	Stack     *Stack
	Resources *pdf.Resources
	Resolver  *pdf.Resolver
	Paint     Painter
	Log       content.Logger
	LookupFont FontLookup

	// DoXObject is invoked for every "Do" operator naming an XObject.
	// Resolving and interpreting Form XObjects (including the nested
	// save/concat/clip/restore dance) is the page renderer's
	// responsibility, since it needs to re-invoke the content-stream
	// parser recursively; this package only reports which name and
	// current CTM the operator named.
	DoXObject func(name pdf.Name, ctm geom.Mat3) error

	path Path
}

// NewInterpreter constructs an Interpreter seeded with initial as the
// bottom-of-stack graphics state.
func NewInterpreter(initial GraphicsState, resources *pdf.Resources, r *pdf.Resolver, paint Painter) *Interpreter {
	return &Interpreter{
		Stack:     NewStack(initial),
		Resources: resources,
		Resolver:  r,
		Paint:     paint,
	}
}

func (ip *Interpreter) warnf(format string, args ...any) {
	if ip.Log != nil {
		ip.Log.Warnf(format, args...)
	}
}

// Run interprets ops in order against the interpreter's current state.
func (ip *Interpreter) Run(ops []content.Operation) error {
	for _, op := range ops {
		if err := ip.step(op); err != nil {
			return err
		}
	}
	return nil
}

func nums(operands []pdf.Object) []float64 {
	out := make([]float64, len(operands))
	for i, o := range operands {
		v, _ := pdf.AsNumber(o)
		out[i] = v
	}
	return out
}

func (ip *Interpreter) step(op content.Operation) error {
	gs := ip.Stack.Current()

	switch op.Kind {
	case content.OpGSave:
		ip.Stack.Push()
	case content.OpGRestore:
		if err := ip.Stack.Pop(); err != nil {
			return err
		}

	case content.OpConcat:
		n := nums(op.Operands)
		m := geom.PDFMatrix(n[0], n[1], n[2], n[3], n[4], n[5])
		gs.CTM = m.Mul(gs.CTM)

	case content.OpLineWidth:
		gs.LineWidth = nums(op.Operands)[0]
	case content.OpLineCap:
		gs.LineCap = int(nums(op.Operands)[0])
	case content.OpLineJoin:
		gs.LineJoin = int(nums(op.Operands)[0])
	case content.OpMiterLimit:
		gs.MiterLimit = nums(op.Operands)[0]
	case content.OpDash:
		if arr, ok := op.Operands[0].(pdf.Array); ok {
			gs.DashArray = nums([]pdf.Object(arr))
		}
		if len(op.Operands) > 1 {
			gs.DashPhase = nums(op.Operands[1:])[0]
		}
	case content.OpFlatness:
		gs.Flatness = nums(op.Operands)[0]
	case content.OpGState:
		name, _ := op.Operands[0].(pdf.Name)
		if err := ip.applyExtGState(gs, name); err != nil {
			return err
		}

	case content.OpMoveTo:
		n := nums(op.Operands)
		ip.path.MoveTo(n[0], n[1])
	case content.OpLineTo:
		n := nums(op.Operands)
		ip.path.LineTo(n[0], n[1])
	case content.OpCurveTo:
		n := nums(op.Operands)
		ip.path.CurveTo(n[0], n[1], n[2], n[3], n[4], n[5])
	case content.OpCurveToV:
		n := nums(op.Operands)
		ip.path.CurveToV(n[0], n[1], n[2], n[3])
	case content.OpCurveToY:
		n := nums(op.Operands)
		ip.path.CurveToY(n[0], n[1], n[2], n[3])
	case content.OpRect:
		n := nums(op.Operands)
		ip.path.Rect(n[0], n[1], n[2], n[3])
	case content.OpClosePath:
		ip.path.ClosePath()

	case content.OpStroke, content.OpCloseStroke:
		if op.Kind == content.OpCloseStroke {
			ip.path.ClosePath()
		}
		ip.paintStroke(gs)
	case content.OpFill, content.OpFillCompat:
		ip.paintFill(gs, false)
	case content.OpFillEvenOdd:
		ip.paintFill(gs, true)
	case content.OpFillStroke:
		ip.paintFill(gs, false)
		ip.paintStroke(gs)
	case content.OpFillStrokeEO:
		ip.paintFill(gs, true)
		ip.paintStroke(gs)
	case content.OpCloseFillStroke:
		ip.path.ClosePath()
		ip.paintFill(gs, false)
		ip.paintStroke(gs)
	case content.OpCloseFillStrokeEO:
		ip.path.ClosePath()
		ip.paintFill(gs, true)
		ip.paintStroke(gs)
	case content.OpNoOp:
		ip.path.Reset()

	case content.OpBeginText:
		gs.Text.Tm = geom.Identity()
		gs.Text.Tlm = geom.Identity()
	case content.OpEndText:
		// no state to restore: Tm/Tlm are simply undefined outside BT/ET.

	case content.OpCharSpace:
		gs.Text.CharSpacing = nums(op.Operands)[0]
	case content.OpWordSpace:
		gs.Text.WordSpacing = nums(op.Operands)[0]
	case content.OpHScale:
		gs.Text.HorizScaling = nums(op.Operands)[0] / 100
	case content.OpLeading:
		gs.Text.Leading = nums(op.Operands)[0]
	case content.OpFont:
		name, _ := op.Operands[0].(pdf.Name)
		size, _ := pdf.AsNumber(op.Operands[1])
		if err := ip.applyFont(gs, name, size); err != nil {
			return err
		}
	case content.OpRenderMode:
		gs.Text.RenderMode = int(nums(op.Operands)[0])
	case content.OpTextRise:
		gs.Text.Rise = nums(op.Operands)[0]

	case content.OpTextMove:
		n := nums(op.Operands)
		gs.Text.Tlm = geom.Translate(n[0], n[1]).Mul(gs.Text.Tlm)
		gs.Text.Tm = gs.Text.Tlm
	case content.OpTextMoveSet:
		n := nums(op.Operands)
		gs.Text.Leading = -n[1]
		gs.Text.Tlm = geom.Translate(n[0], n[1]).Mul(gs.Text.Tlm)
		gs.Text.Tm = gs.Text.Tlm
	case content.OpTextMatrix:
		n := nums(op.Operands)
		m := geom.PDFMatrix(n[0], n[1], n[2], n[3], n[4], n[5])
		gs.Text.Tm = m
		gs.Text.Tlm = m
	case content.OpTextNextLine:
		gs.Text.Tlm = geom.Translate(0, -gs.Text.Leading).Mul(gs.Text.Tlm)
		gs.Text.Tm = gs.Text.Tlm

	case content.OpShowText:
		str, _ := op.Operands[0].(pdf.String)
		ip.showText(gs, str)
	case content.OpShowTextArray:
		arr, _ := op.Operands[0].(pdf.Array)
		ip.showTextArray(gs, arr)
	case content.OpNextLineShow:
		gs.Text.Tlm = geom.Translate(0, -gs.Text.Leading).Mul(gs.Text.Tlm)
		gs.Text.Tm = gs.Text.Tlm
		str, _ := op.Operands[0].(pdf.String)
		ip.showText(gs, str)
	case content.OpNextLineShowSp:
		n := op.Operands
		gs.Text.WordSpacing, _ = pdf.AsNumber(n[0])
		gs.Text.CharSpacing, _ = pdf.AsNumber(n[1])
		gs.Text.Tlm = geom.Translate(0, -gs.Text.Leading).Mul(gs.Text.Tlm)
		gs.Text.Tm = gs.Text.Tlm
		str, _ := n[2].(pdf.String)
		ip.showText(gs, str)

	case content.OpColorSpaceStroke, content.OpColorSpaceNonstroke,
		content.OpSetColorStroke, content.OpSetColorStrokeN,
		content.OpSetColorNonstroke, content.OpSetColorNonstrokeN:
		ip.setColorGeneric(gs, op)
	case content.OpGrayStroke:
		gs.StrokeColor = grayColor(nums(op.Operands)[0])
	case content.OpGrayNonstroke:
		gs.FillColor = grayColor(nums(op.Operands)[0])
	case content.OpRGBStroke:
		n := nums(op.Operands)
		gs.StrokeColor = rgbColor(n[0], n[1], n[2])
	case content.OpRGBNonstroke:
		n := nums(op.Operands)
		gs.FillColor = rgbColor(n[0], n[1], n[2])
	case content.OpCMYKStroke:
		n := nums(op.Operands)
		gs.StrokeColor = cmykColor(n[0], n[1], n[2], n[3])
	case content.OpCMYKNonstroke:
		n := nums(op.Operands)
		gs.FillColor = cmykColor(n[0], n[1], n[2], n[3])

	case content.OpPaintXObject:
		name, _ := op.Operands[0].(pdf.Name)
		if ip.DoXObject != nil {
			return ip.DoXObject(name, gs.CTM)
		}

	case content.OpInlineImage:
		// image decoding is out of scope; the operator is accepted and
		// its (already skipped) data simply produces no marks.

	default:
		ip.warnf("graphics: operator %q has no effect, ignoring", op.Kind)
	}
	return nil
}

// setColorGeneric handles CS/cs (color-space selection, a no-op for this
// renderer beyond recording which space subsequent SC/SCN/sc/scn operands
// should be interpreted in) and SC/SCN/sc/scn, whose arity depends on that
// space: 1 component is Gray, 3 is RGB, 4 is CMYK; a trailing Name operand
// (pattern color spaces) is dropped with a warning since pattern fills are
// out of scope.
func (ip *Interpreter) setColorGeneric(gs *GraphicsState, op content.Operation) {
	switch op.Kind {
	case content.OpColorSpaceStroke, content.OpColorSpaceNonstroke:
		// Tracking named color-space resources (ICC profiles, Indexed,
		// Separation) is out of scope; SC/SCN below infer the space from
		// the operand count instead.
		return
	}

	operands := op.Operands
	if len(operands) > 0 {
		if _, isName := operands[len(operands)-1].(pdf.Name); isName {
			ip.warnf("graphics: pattern color space for %q not supported, ignoring", op.Kind)
			operands = operands[:len(operands)-1]
		}
	}
	n := nums(operands)

	var c Color
	switch len(n) {
	case 1:
		c = grayColor(n[0])
	case 3:
		c = rgbColor(n[0], n[1], n[2])
	case 4:
		c = cmykColor(n[0], n[1], n[2], n[3])
	default:
		ip.warnf("graphics: %q with %d components, ignoring", op.Kind, len(n))
		return
	}

	switch op.Kind {
	case content.OpSetColorStroke, content.OpSetColorStrokeN:
		gs.StrokeColor = c
	default:
		gs.FillColor = c
	}
}

func (ip *Interpreter) paintFill(gs *GraphicsState, evenOdd bool) {
	if !ip.path.Empty() && ip.Paint != nil {
		ip.Paint.Fill(&ip.path, gs.CTM, gs.FillColor, gs.FillAlpha, evenOdd)
	}
	ip.path.Reset()
}

func (ip *Interpreter) paintStroke(gs *GraphicsState) {
	if !ip.path.Empty() && ip.Paint != nil {
		ip.Paint.Stroke(&ip.path, gs.CTM, gs.StrokeColor, gs.StrokeAlpha, gs.LineWidth)
	}
	ip.path.Reset()
}

// applyExtGState looks up name in Resources.ExtGState, deserializes it,
// and selectively overwrites only the parameters the dictionary actually
// names.
func (ip *Interpreter) applyExtGState(gs *GraphicsState, name pdf.Name) error {
	if ip.Resources == nil || !ip.Resources.ExtGState.Present {
		return &stateError{"gs: no ExtGState resources"}
	}
	ref, ok := ip.Resources.ExtGState.Value[name]
	if !ok {
		return &stateError{"gs: unknown ExtGState name " + string(name)}
	}
	obj, err := ip.Resolver.ResolveRef(ref)
	if err != nil {
		return err
	}
	params, err := pdf.DeserializeGStateParams(obj, ip.Resolver.Arena(), ip.Resolver)
	if err != nil {
		return err
	}
	if params.LineWidth.Present {
		gs.LineWidth = params.LineWidth.Value
	}
	if params.LineCap.Present {
		gs.LineCap = int(params.LineCap.Value)
	}
	if params.LineJoin.Present {
		gs.LineJoin = int(params.LineJoin.Value)
	}
	if params.CA.Present {
		gs.StrokeAlpha = params.CA.Value
	}
	if params.Ca.Present {
		gs.FillAlpha = params.Ca.Value
	}
	return nil
}

// applyFont looks up name in Resources.Font, loads it via LookupFont, and
// binds it (and the given point size) to the text state.
func (ip *Interpreter) applyFont(gs *GraphicsState, name pdf.Name, size float64) error {
	gs.Text.FontSize = size
	if ip.LookupFont == nil {
		return nil
	}
	f, err := ip.LookupFont(name)
	if err != nil {
		return err
	}
	gs.Text.Font = f
	return nil
}
