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
	"testing"

	"github.com/jvoss-raster/pdfraster/arena"
	"github.com/jvoss-raster/pdfraster/content"
	"github.com/jvoss-raster/pdfraster/geom"
	"github.com/jvoss-raster/pdfraster/pdf"
)

type fakeSource struct{ byOffset map[int64]pdf.Object }

func (s *fakeSource) ParseObjectAt(off int64) (pdf.Object, error) {
	obj, ok := s.byOffset[off]
	if !ok {
		return nil, &pdf.MissingObjectError{}
	}
	return obj, nil
}

func newTestResolver(objs map[pdf.Reference]pdf.Object) *pdf.Resolver {
	xref := make(map[pdf.Reference]int64)
	byOffset := make(map[int64]pdf.Object)
	var i int64
	for ref, obj := range objs {
		xref[ref] = i
		byOffset[i] = obj
		i++
	}
	return pdf.NewResolver(&fakeSource{byOffset: byOffset}, xref, arena.New(0))
}

type recordingPainter struct {
	fills   int
	strokes int
	glyphs  int
}

func (p *recordingPainter) Fill(path *Path, ctm geom.Mat3, color Color, alpha float64, evenOdd bool) {
	p.fills++
}
func (p *recordingPainter) Stroke(path *Path, ctm geom.Mat3, color Color, alpha float64, lineWidth float64) {
	p.strokes++
}
func (p *recordingPainter) DrawGlyph(outline GlyphOutline, m geom.Mat3, color Color, alpha float64) {
	p.glyphs++
}

type stubFont struct{}

func (stubFont) Decode(s []byte) []Code {
	codes := make([]Code, len(s))
	for i, b := range s {
		codes[i] = Code(b)
	}
	return codes
}
func (stubFont) GlyphID(c Code) uint16 { return uint16(c) }
func (stubFont) Outline(gid uint16) (GlyphOutline, float64, bool) {
	return GlyphOutline{Contours: [][]GlyphSegment{{{Kind: SegLineTo, P: geom.Vec2{X: 1, Y: 1}}}}}, 500, true
}
func (stubFont) IsSpace(c Code) bool { return c == ' ' }

func TestInterpreterPathAndPaintingOperators(t *testing.T) {
	ops, err := content.Parse([]byte("1 0 0 1 0 0 cm 0 0 100 100 re f"), nil)
	if err != nil {
		t.Fatal(err)
	}
	paint := &recordingPainter{}
	ip := NewInterpreter(NewGraphicsState(), nil, nil, paint)
	if err := ip.Run(ops); err != nil {
		t.Fatal(err)
	}
	if paint.fills != 1 {
		t.Fatalf("fills = %d, want 1", paint.fills)
	}
	if !ip.path.Empty() {
		t.Fatal("path should be cleared after fill")
	}
}

func TestInterpreterGSavePushesAndGRestorePops(t *testing.T) {
	ops, err := content.Parse([]byte("2 w q 5 w Q"), nil)
	if err != nil {
		t.Fatal(err)
	}
	ip := NewInterpreter(NewGraphicsState(), nil, nil, nil)
	if err := ip.Run(ops); err != nil {
		t.Fatal(err)
	}
	if ip.Stack.Current().LineWidth != 2 {
		t.Fatalf("LineWidth = %v, want 2", ip.Stack.Current().LineWidth)
	}
}

func TestInterpreterUnbalancedGRestoreIsError(t *testing.T) {
	ops, err := content.Parse([]byte("Q"), nil)
	if err != nil {
		t.Fatal(err)
	}
	ip := NewInterpreter(NewGraphicsState(), nil, nil, nil)
	if err := ip.Run(ops); err == nil {
		t.Fatal("expected an error for Q with no matching q")
	}
}

func TestInterpreterSetColorByOperandCount(t *testing.T) {
	ops, err := content.Parse([]byte("1 0 0 rg 0.2 g 0 1 0 1 k"), nil)
	if err != nil {
		t.Fatal(err)
	}
	ip := NewInterpreter(NewGraphicsState(), nil, nil, nil)
	if err := ip.Run(ops); err != nil {
		t.Fatal(err)
	}
	c := ip.Stack.Current().FillColor
	if c.Space != ColorSpaceCMYK {
		t.Fatalf("FillColor.Space = %v, want CMYK (last operator wins)", c.Space)
	}
}

func TestInterpreterExtGStateSelectiveOverwrite(t *testing.T) {
	gsRef := pdf.Reference{Num: 7, Gen: 0}
	r := newTestResolver(map[pdf.Reference]pdf.Object{
		gsRef: pdf.Dict{"LW": pdf.Real(3.5)},
	})
	res := &pdf.Resources{
		ExtGState: pdf.Optional[map[pdf.Name]pdf.Reference]{
			Present: true,
			Value:   map[pdf.Name]pdf.Reference{"GS1": gsRef},
		},
	}
	state := NewGraphicsState()
	state.LineCap = 1
	ip := NewInterpreter(state, res, r, nil)

	ops, err := content.Parse([]byte("/GS1 gs"), nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := ip.Run(ops); err != nil {
		t.Fatal(err)
	}
	cur := ip.Stack.Current()
	if cur.LineWidth != 3.5 {
		t.Fatalf("LineWidth = %v, want 3.5", cur.LineWidth)
	}
	if cur.LineCap != 1 {
		t.Fatalf("LineCap = %v, want 1 (gs dict doesn't mention LC, must be left untouched)", cur.LineCap)
	}
}

func TestInterpreterShowTextAdvancesAndPaints(t *testing.T) {
	paint := &recordingPainter{}
	ip := NewInterpreter(NewGraphicsState(), nil, nil, paint)
	ip.LookupFont = func(name pdf.Name) (Font, error) { return stubFont{}, nil }

	ops, err := content.Parse([]byte("BT /F1 12 Tf 0 0 Td (AB) Tj ET"), nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := ip.Run(ops); err != nil {
		t.Fatal(err)
	}
	if paint.glyphs != 2 {
		t.Fatalf("glyphs drawn = %d, want 2", paint.glyphs)
	}
	if ip.Stack.Current().Text.Tm.M[2][0] == 0 {
		t.Fatal("Tm should have advanced in x after showing two glyphs")
	}
}

func TestInterpreterShowTextArrayNumberAdjustsTm(t *testing.T) {
	paint := &recordingPainter{}
	ip := NewInterpreter(NewGraphicsState(), nil, nil, paint)
	ip.LookupFont = func(name pdf.Name) (Font, error) { return stubFont{}, nil }

	ops, err := content.Parse([]byte("BT /F1 10 Tf [(A) -1000 (B)] TJ ET"), nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := ip.Run(ops); err != nil {
		t.Fatal(err)
	}
	if paint.glyphs != 2 {
		t.Fatalf("glyphs drawn = %d, want 2", paint.glyphs)
	}
}
