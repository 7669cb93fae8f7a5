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
	"testing"

	"github.com/jvoss-raster/pdfraster/pdf"
)

func TestScannerNumbers(t *testing.T) {
	cases := []struct {
		src  string
		want pdf.Object
	}{
		{"123", pdf.Integer(123)},
		{"-45", pdf.Integer(-45)},
		{"3.14", pdf.Real(3.14)},
		{"-.5", pdf.Real(-0.5)},
		{"4.", pdf.Real(4)},
	}
	for _, c := range cases {
		s := newScanner([]byte(c.src))
		got, err := s.Next()
		if err != nil {
			t.Fatalf("%q: %v", c.src, err)
		}
		if got != c.want {
			t.Fatalf("%q: got %#v, want %#v", c.src, got, c.want)
		}
	}
}

func TestScannerNameWithHexEscape(t *testing.T) {
	s := newScanner([]byte("/Name#20With#20Spaces"))
	got, err := s.Next()
	if err != nil {
		t.Fatal(err)
	}
	if got != pdf.Name("Name With Spaces") {
		t.Fatalf("got %#v", got)
	}
}

func TestScannerLiteralString(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{`(hello)`, "hello"},
		{`(line1\nline2)`, "line1\nline2"},
		{`(nested (parens) ok)`, "nested (parens) ok"},
		{"(escaped line\\\ncontinuation)", "escaped linecontinuation"},
		{`(\101\102\103)`, "ABC"},
	}
	for _, c := range cases {
		s := newScanner([]byte(c.src))
		got, err := s.Next()
		if err != nil {
			t.Fatalf("%q: %v", c.src, err)
		}
		str, ok := got.(pdf.String)
		if !ok || string(str) != c.want {
			t.Fatalf("%q: got %#v, want %q", c.src, got, c.want)
		}
	}
}

func TestScannerHexString(t *testing.T) {
	s := newScanner([]byte("<48656C6C6F>"))
	got, err := s.Next()
	if err != nil {
		t.Fatal(err)
	}
	str, ok := got.(pdf.String)
	if !ok || string(str) != "Hello" {
		t.Fatalf("got %#v", got)
	}

	// A trailing odd hex digit is padded with a zero low nibble.
	s2 := newScanner([]byte("<4>"))
	got2, err := s2.Next()
	if err != nil {
		t.Fatal(err)
	}
	str2 := got2.(pdf.String)
	if len(str2) != 1 || str2[0] != 0x40 {
		t.Fatalf("got %#v", got2)
	}
}

func TestScannerKeywordsAndOperators(t *testing.T) {
	s := newScanner([]byte("true false null Tf"))
	want := []pdf.Object{pdf.Boolean(true), pdf.Boolean(false), pdf.Null{}, pdf.Operator("Tf")}
	for i, w := range want {
		got, err := s.Next()
		if err != nil {
			t.Fatalf("token %d: %v", i, err)
		}
		if got != w {
			t.Fatalf("token %d: got %#v, want %#v", i, got, w)
		}
	}
}

func TestScannerSkipsCommentsAndWhitespace(t *testing.T) {
	s := newScanner([]byte("  % a comment\n  42"))
	got, err := s.Next()
	if err != nil {
		t.Fatal(err)
	}
	if got != pdf.Integer(42) {
		t.Fatalf("got %#v", got)
	}
}

func TestScannerAssemblesArray(t *testing.T) {
	s := newScanner([]byte("[1 2 /Three (four)]"))
	got, err := s.Next()
	if err != nil {
		t.Fatal(err)
	}
	arr, ok := got.(pdf.Array)
	if !ok || len(arr) != 4 {
		t.Fatalf("got %#v", got)
	}
	if arr[0] != pdf.Integer(1) || arr[1] != pdf.Integer(2) || arr[2] != pdf.Name("Three") {
		t.Fatalf("got %#v", arr)
	}
}

func TestScannerAssemblesDict(t *testing.T) {
	s := newScanner([]byte("<< /Type /Example /Count 3 >>"))
	got, err := s.Next()
	if err != nil {
		t.Fatal(err)
	}
	dict, ok := got.(pdf.Dict)
	if !ok {
		t.Fatalf("got %#v", got)
	}
	if dict["Type"] != pdf.Name("Example") || dict["Count"] != pdf.Integer(3) {
		t.Fatalf("got %#v", dict)
	}
}

func TestScannerAssemblesNestedComposite(t *testing.T) {
	s := newScanner([]byte("<< /Matrix [1 0 0 1 0 0] /Sub << /X 1 >> >>"))
	got, err := s.Next()
	if err != nil {
		t.Fatal(err)
	}
	dict, ok := got.(pdf.Dict)
	if !ok {
		t.Fatalf("got %#v", got)
	}
	matrix, ok := dict["Matrix"].(pdf.Array)
	if !ok || len(matrix) != 6 {
		t.Fatalf("Matrix = %#v", dict["Matrix"])
	}
	sub, ok := dict["Sub"].(pdf.Dict)
	if !ok || sub["X"] != pdf.Integer(1) {
		t.Fatalf("Sub = %#v", dict["Sub"])
	}
}

func TestScannerUnbalancedDictIsError(t *testing.T) {
	s := newScanner([]byte(">>"))
	if _, err := s.Next(); err == nil {
		t.Fatal("expected an error for a stray '>>'")
	}
}

func TestCharacterClassTable(t *testing.T) {
	cases := []struct {
		b    byte
		want characterClass
	}{
		{' ', space}, {'\t', space}, {'\n', space}, {'\r', space}, {0, space},
		{'(', delimiter}, {')', delimiter}, {'<', delimiter}, {'>', delimiter},
		{'[', delimiter}, {']', delimiter}, {'{', delimiter}, {'}', delimiter}, {'/', delimiter}, {'%', delimiter},
		{'A', regular}, {'1', regular}, {'-', regular}, {'.', regular},
	}
	for _, c := range cases {
		if class[c.b] != c.want {
			t.Fatalf("class[%q] = %v, want %v", c.b, class[c.b], c.want)
		}
	}
}
