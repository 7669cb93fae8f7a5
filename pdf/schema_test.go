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

package pdf

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jvoss-raster/pdfraster/arena"
	"github.com/jvoss-raster/pdfraster/geom"
)

// node is a minimal self-referential record used to exercise cyclic
// LazyRef resolution (a stand-in for Page.Parent pointing back up the
// tree).
type node struct {
	Name  string
	Next  LazyRef[node]
	Label Optional[string]
}

var nodeSchema = &Schema{
	Name: "node",
	Fields: []FieldDescriptor{
		{Key: "Name", Field: "Name", Kind: Primitive(TagName)},
		{Key: "Next", Field: "Next", Kind: LazyReference(nil /* set in init */)},
		{Key: "Label", Field: "Label", Kind: OptionalField(Primitive(TagString))},
	},
}

func init() {
	nodeSchema.Fields[1].Kind = LazyReference(nodeSchema)
}

func newTestResolver(objs map[Reference]Object) *Resolver {
	xref := make(map[Reference]int64)
	byOffset := make(map[int64]Object)
	var i int64
	for ref, obj := range objs {
		xref[ref] = i
		byOffset[i] = obj
		i++
	}
	return NewResolver(&fakeSource{byOffset: byOffset}, xref, arena.New(0))
}

func TestDeserializeRequiredAndOptional(t *testing.T) {
	r := newTestResolver(nil)
	dict := Dict{"Name": Name("root")}
	var n node
	if err := Deserialize(nodeSchema, dict, r.Arena(), r, &n); err == nil {
		t.Fatal("expected MissingFieldError for Next")
	}
}

func TestDeserializeIdempotence(t *testing.T) {
	r := newTestResolver(nil)
	dict := Dict{
		"Name": Name("root"),
		"Next": Reference{Num: 1, Gen: 0},
	}
	var a, b node
	if err := Deserialize(nodeSchema, dict, r.Arena(), r, &a); err != nil {
		t.Fatal(err)
	}
	if err := Deserialize(nodeSchema, dict, r.Arena(), r, &b); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(a.Name, b.Name); diff != "" {
		t.Fatalf("deserialize not idempotent (-a +b):\n%s", diff)
	}
}

func TestCyclicLazyRef(t *testing.T) {
	selfRef := Reference{Num: 1, Gen: 0}
	r := newTestResolver(map[Reference]Object{
		selfRef: Dict{"Name": Name("cyclic"), "Next": selfRef},
	})

	var root node
	if err := Deserialize(nodeSchema, selfRef, r.Arena(), r, &root); err != nil {
		t.Fatal(err)
	}

	next, err := root.Next.Get(r)
	if err != nil {
		t.Fatal(err)
	}
	if next.Name != "cyclic" {
		t.Fatalf("next.Name = %q, want %q", next.Name, "cyclic")
	}

	// Resolving again must not recurse forever and must yield the
	// identical pointer (LazyRef uniqueness).
	again, err := next.Next.Get(r)
	if err != nil {
		t.Fatal(err)
	}
	if again != next {
		t.Fatalf("LazyRef.Get() not idempotent: %p != %p", again, next)
	}
}

func TestArrayAndRectangle(t *testing.T) {
	type box struct {
		MediaBox geom.Rect
		Numbers  []float64
	}
	schema := &Schema{
		Name: "box",
		Fields: []FieldDescriptor{
			{Key: "MediaBox", Field: "MediaBox", Kind: RectangleField()},
			{Key: "Numbers", Field: "Numbers", Kind: ArrayOf(NumberField())},
		},
	}
	r := newTestResolver(nil)
	dict := Dict{
		// Given out of canonical order: upper-right first.
		"MediaBox": Array{Real(612), Real(792), Integer(0), Integer(0)},
		"Numbers":  Array{Integer(1), Real(2.5), Integer(3)},
	}
	var b box
	if err := Deserialize(schema, dict, r.Arena(), r, &b); err != nil {
		t.Fatal(err)
	}
	want := geom.NewRect(geom.Vec2{X: 0, Y: 0}, geom.Vec2{X: 612, Y: 792})
	if b.MediaBox != want {
		t.Fatalf("MediaBox = %+v, want %+v", b.MediaBox, want)
	}
	if len(b.Numbers) != 3 || b.Numbers[1] != 2.5 {
		t.Fatalf("Numbers = %v", b.Numbers)
	}
}

func TestMissingFieldAndTypeMismatch(t *testing.T) {
	r := newTestResolver(nil)
	var n node
	err := Deserialize(nodeSchema, Dict{"Name": Integer(5), "Next": Reference{}}, r.Arena(), r, &n)
	if err == nil {
		t.Fatal("expected IncorrectTypeError")
	}
	if _, ok := err.(*IncorrectTypeError); !ok {
		t.Fatalf("err = %T, want *IncorrectTypeError", err)
	}
}
