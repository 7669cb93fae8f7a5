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

package content

import (
	"fmt"
	"testing"

	"github.com/jvoss-raster/pdfraster/pdf"
)

// warnLog collects every Warnf call so tests can assert on the dropped
// operator path.
type warnLog struct{ warnings []string }

func (l *warnLog) Warnf(format string, args ...any) {
	l.warnings = append(l.warnings, fmt.Sprintf(format, args...))
}

func TestParseFixedArityOperators(t *testing.T) {
	ops, err := Parse([]byte("1 0 0 1 10 20 cm q 0 0 100 100 re f Q"), nil)
	if err != nil {
		t.Fatal(err)
	}
	want := []Kind{OpConcat, OpGSave, OpRect, OpFill, OpGRestore}
	if len(ops) != len(want) {
		t.Fatalf("got %d ops, want %d: %+v", len(ops), len(want), ops)
	}
	for i, k := range want {
		if ops[i].Kind != k {
			t.Fatalf("op %d: got %q, want %q", i, ops[i].Kind, k)
		}
	}
	if len(ops[0].Operands) != 6 {
		t.Fatalf("cm operands = %+v", ops[0].Operands)
	}
	if len(ops[2].Operands) != 4 {
		t.Fatalf("re operands = %+v", ops[2].Operands)
	}
}

func TestParseVariableArityColorOperators(t *testing.T) {
	cases := []struct {
		src      string
		wantKind Kind
		wantN    int
	}{
		{"0.5 sc", OpSetColorNonstroke, 1},
		{"1 0 0 SCN", OpSetColorStrokeN, 3},
		{"1 0 0 1 k", OpCMYKNonstroke, 4},
		{"/P1 scn", OpSetColorNonstrokeN, 1},
	}

	for _, c := range cases {
		ops, err := Parse([]byte(c.src), nil)
		if err != nil {
			t.Fatalf("%q: %v", c.src, err)
		}
		if len(ops) != 1 {
			t.Fatalf("%q: got %d ops, want 1: %+v", c.src, len(ops), ops)
		}
		if ops[0].Kind != c.wantKind {
			t.Fatalf("%q: kind = %q, want %q", c.src, ops[0].Kind, c.wantKind)
		}
		if len(ops[0].Operands) != c.wantN {
			t.Fatalf("%q: operands = %+v, want %d", c.src, ops[0].Operands, c.wantN)
		}
	}
}

func TestParseTextShowArray(t *testing.T) {
	ops, err := Parse([]byte("[(Hello) -250 (World)] TJ"), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(ops) != 1 || ops[0].Kind != OpShowTextArray {
		t.Fatalf("got %+v", ops)
	}
	arr, ok := ops[0].Operands[0].(pdf.Array)
	if !ok || len(arr) != 3 {
		t.Fatalf("TJ operand = %+v", ops[0].Operands)
	}
}

func TestParseDropsUnknownOperatorWithWarning(t *testing.T) {
	log := &warnLog{}
	ops, err := Parse([]byte("1 2 ZZ q"), log)
	if err != nil {
		t.Fatal(err)
	}
	if len(ops) != 1 || ops[0].Kind != OpGSave {
		t.Fatalf("got %+v", ops)
	}
	if len(log.warnings) != 1 {
		t.Fatalf("warnings = %+v", log.warnings)
	}
}

func TestParseDropUnknownOperatorNilLoggerDoesNotPanic(t *testing.T) {
	ops, err := Parse([]byte("1 2 ZZ q"), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(ops) != 1 || ops[0].Kind != OpGSave {
		t.Fatalf("got %+v", ops)
	}
}

func TestParseInlineImage(t *testing.T) {
	src := "q BI /W 2 /H 2 /BPC 8 /CS /G ID \x00\xff\xff\x00EI Q"
	ops, err := Parse([]byte(src), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(ops) != 3 {
		t.Fatalf("got %d ops, want 3: %+v", len(ops), ops)
	}
	if ops[0].Kind != OpGSave || ops[2].Kind != OpGRestore {
		t.Fatalf("got %+v", ops)
	}
	img := ops[1]
	if img.Kind != OpInlineImage {
		t.Fatalf("kind = %q", img.Kind)
	}
	if img.InlineImageDict["W"] != pdf.Integer(2) || img.InlineImageDict["CS"] != pdf.Name("G") {
		t.Fatalf("dict = %+v", img.InlineImageDict)
	}
	if string(img.InlineImageData) != "\x00\xff\xff\x00" {
		t.Fatalf("data = %q", img.InlineImageData)
	}
}

func TestParseTextPositioningSequence(t *testing.T) {
	ops, err := Parse([]byte("BT /F1 12 Tf 100 700 Td (Hi) Tj ET"), nil)
	if err != nil {
		t.Fatal(err)
	}
	want := []Kind{OpBeginText, OpFont, OpTextMove, OpShowText, OpEndText}
	if len(ops) != len(want) {
		t.Fatalf("got %d ops, want %d: %+v", len(ops), len(want), ops)
	}
	for i, k := range want {
		if ops[i].Kind != k {
			t.Fatalf("op %d: got %q, want %q", i, ops[i].Kind, k)
		}
	}
	if len(ops[1].Operands) != 2 {
		t.Fatalf("Tf operands = %+v", ops[1].Operands)
	}
}
