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
	"reflect"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/jvoss-raster/pdfraster/arena"
	"github.com/jvoss-raster/pdfraster/geom"
)

// FieldDescriptor names one dictionary key, the destination field
// within the target struct, and the field kind used to decode it.
// A Schema is a static array of descriptors; the framework
// walks the array instead of relying on per-type generated code.
type FieldDescriptor struct {
	Key   Name
	Field string
	Kind  FieldKind
}

// Schema is the static field-descriptor table for one typed record.
type Schema struct {
	Name   string
	Fields []FieldDescriptor
}

// FieldKind decodes one dictionary value into the reflect.Value of a
// destination struct field.
type FieldKind interface {
	apply(ctx fieldCtx) error
}

type fieldCtx struct {
	structName string
	key        Name
	raw        Object // as stored in the dict, before any resolution
	present    bool
	ar         *arena.Arena
	r          *Resolver
	field      reflect.Value
}

// Deserialize projects obj onto target according to schema.
//
//  1. obj is resolved through at most one indirection.
//  2. the result must be a dictionary (or a stream, whose Dict is used).
//  3. each descriptor looks up its key and applies its kind; presence
//     or type mismatches fail with an error naming the struct and field.
//  4. unknown keys are tolerated.
func Deserialize(schema *Schema, obj Object, ar *arena.Arena, r *Resolver, target any) error {
	resolved, err := ResolveObject(r, obj, true)
	if err != nil {
		return err
	}

	var dict Dict
	switch v := resolved.(type) {
	case Dict:
		dict = v
	case *Stream:
		dict = v.Dict
	case nil, Null:
		dict = Dict{}
	default:
		return &NotADictError{Struct: schema.Name, Got: TypeOf(resolved)}
	}

	targetVal := reflect.ValueOf(target)
	if targetVal.Kind() != reflect.Ptr {
		panic("pdf: Deserialize target must be a pointer to struct")
	}
	elem := targetVal.Elem()

	for _, fd := range schema.Fields {
		raw, present := dict[fd.Key]
		field := elem.FieldByName(fd.Field)
		if !field.IsValid() {
			panic("pdf: schema " + schema.Name + " names unknown field " + fd.Field)
		}
		ctx := fieldCtx{
			structName: schema.Name,
			key:        fd.Key,
			raw:        raw,
			present:    present,
			ar:         ar,
			r:          r,
			field:      field,
		}
		if err := fd.Kind.apply(ctx); err != nil {
			return err
		}
	}
	return nil
}

// ---- Primitive ----

// PrimitiveTag names the PDF object type a Primitive field kind
// requires.
type PrimitiveTag string

const (
	TagName    PrimitiveTag = "name"
	TagInteger PrimitiveTag = "integer"
	TagReal    PrimitiveTag = "real"
	TagString  PrimitiveTag = "string"
	TagBoolean PrimitiveTag = "boolean"
	TagArray   PrimitiveTag = "array"
	TagDict    PrimitiveTag = "dict"
	TagStream  PrimitiveTag = "stream"
)

// Primitive consumes the named PDF primitive type and assigns it to a
// Go field of the matching native type (Name->Name/string,
// Integer->int64/Integer, Real->float64/Real, String->String/[]byte,
// Boolean->bool/Boolean, Array->Array, Dict->Dict, Stream->*Stream).
func Primitive(tag PrimitiveTag) FieldKind { return primitiveKind{tag} }

type primitiveKind struct{ tag PrimitiveTag }

func (k primitiveKind) apply(ctx fieldCtx) error {
	if !ctx.present {
		return &MissingFieldError{Struct: ctx.structName, Field: string(ctx.key)}
	}
	resolved, err := ResolveObject(ctx.r, ctx.raw, true)
	if err != nil {
		return err
	}
	return assignPrimitive(ctx, resolved, k.tag)
}

func assignPrimitive(ctx fieldCtx, resolved Object, tag PrimitiveTag) error {
	mismatch := func() error {
		return &IncorrectTypeError{
			Struct: ctx.structName, Field: string(ctx.key),
			Expected: string(tag), Got: TypeOf(resolved),
		}
	}
	switch tag {
	case TagName:
		v, ok := resolved.(Name)
		if !ok {
			return mismatch()
		}
		setNative(ctx.field, string(v), v)
	case TagInteger:
		v, ok := resolved.(Integer)
		if !ok {
			return mismatch()
		}
		setNative(ctx.field, int64(v), v)
	case TagReal:
		v, ok := resolved.(Real)
		if !ok {
			return mismatch()
		}
		setNative(ctx.field, float64(v), v)
	case TagString:
		v, ok := resolved.(String)
		if !ok {
			return mismatch()
		}
		setNative(ctx.field, []byte(v), v)
	case TagBoolean:
		v, ok := resolved.(Boolean)
		if !ok {
			return mismatch()
		}
		setNative(ctx.field, bool(v), v)
	case TagArray:
		v, ok := resolved.(Array)
		if !ok {
			return mismatch()
		}
		ctx.field.Set(reflect.ValueOf(v))
	case TagDict:
		v, ok := resolved.(Dict)
		if !ok {
			return mismatch()
		}
		ctx.field.Set(reflect.ValueOf(v))
	case TagStream:
		v, ok := resolved.(*Stream)
		if !ok {
			return mismatch()
		}
		ctx.field.Set(reflect.ValueOf(v))
	default:
		panic("pdf: unknown primitive tag " + string(tag))
	}
	return nil
}

// setNative assigns whichever of the Go-native or PDF-object-typed
// representations fits the field's static type.
func setNative(field reflect.Value, native any, pdfTyped any) {
	nv := reflect.ValueOf(native)
	if field.Type() == nv.Type() {
		field.Set(nv)
		return
	}
	field.Set(reflect.ValueOf(pdfTyped))
}

// ---- Optional ----

// Optional wraps a field that may be absent from the dictionary. When
// Present is false, Value holds T's zero value.
type Optional[T any] struct {
	Present bool
	Value   T
}

// OptionalField wraps inner so that a missing key produces a
// zero-valued, not-present Optional instead of an error.
func OptionalField(inner FieldKind) FieldKind { return optionalKind{inner} }

type optionalKind struct{ inner FieldKind }

func (k optionalKind) apply(ctx fieldCtx) error {
	presentField := ctx.field.FieldByName("Present")
	valueField := ctx.field.FieldByName("Value")
	if !ctx.present || ctx.raw == nil {
		presentField.SetBool(false)
		return nil
	}
	inner := fieldCtx{
		structName: ctx.structName, key: ctx.key, raw: ctx.raw, present: true,
		ar: ctx.ar, r: ctx.r, field: valueField,
	}
	if err := k.inner.apply(inner); err != nil {
		return err
	}
	presentField.SetBool(true)
	return nil
}

// ---- Array ----

// ArrayOf expects the dictionary value to be a PDF array and applies
// inner to each element, appending to a Go slice field.
func ArrayOf(inner FieldKind) FieldKind { return arrayKind{inner} }

type arrayKind struct{ inner FieldKind }

func (k arrayKind) apply(ctx fieldCtx) error {
	if !ctx.present {
		return &MissingFieldError{Struct: ctx.structName, Field: string(ctx.key)}
	}
	resolved, err := ResolveObject(ctx.r, ctx.raw, true)
	if err != nil {
		return err
	}
	arr, ok := resolved.(Array)
	if !ok {
		return &IncorrectTypeError{Struct: ctx.structName, Field: string(ctx.key), Expected: "array", Got: TypeOf(resolved)}
	}

	sliceType := ctx.field.Type()
	out := reflect.MakeSlice(sliceType, len(arr), len(arr))
	for i, elemObj := range arr {
		elemField := out.Index(i)
		elemCtx := fieldCtx{
			structName: ctx.structName,
			key:        Name(indexedKey(ctx.key, i)),
			raw:        elemObj,
			present:    true,
			ar:         ctx.ar, r: ctx.r,
			field: elemField,
		}
		if err := k.inner.apply(elemCtx); err != nil {
			return err
		}
	}
	ctx.field.Set(out)
	return nil
}

func indexedKey(key Name, i int) string {
	return string(key) + "[]"
}

// ---- TypedStruct ----

// TypedStruct recursively deserializes a nested dictionary using
// schema; the destination field must be of the struct type schema
// describes.
func TypedStruct(schema *Schema) FieldKind { return typedStructKind{schema} }

type typedStructKind struct{ schema *Schema }

func (k typedStructKind) apply(ctx fieldCtx) error {
	if !ctx.present {
		return &MissingFieldError{Struct: ctx.structName, Field: string(ctx.key)}
	}
	return Deserialize(k.schema, ctx.raw, ctx.ar, ctx.r, ctx.field.Addr().Interface())
}

// ---- LazyRef ----

// LazyRef holds a raw indirect reference plus a memoized resolved
// pointer, materialized at most once per resolver. The zero
// value is not ready for use until a LazyRefKind has populated Ref and
// Schema during deserialization.
type LazyRef[T any] struct {
	Ref      Reference
	Schema   *Schema
	Resolved *T
}

// Get resolves and memoizes the referenced struct. Materialization
// happens at most once per reference per resolver: a second LazyRef
// instance pointing at the same reference (e.g. two sibling Kids
// entries sharing a Resources dict) returns the identical pointer. The
// memoized pointer is installed before the nested Deserialize call
// recurses, so that cyclic references (e.g. Page.Parent) observe the
// partially initialized target instead of looping forever.
func (l *LazyRef[T]) Get(r *Resolver) (*T, error) {
	if l.Resolved != nil {
		return l.Resolved, nil
	}
	if cached, ok := r.typed[l.Ref]; ok {
		target, ok := cached.(*T)
		if !ok {
			return nil, &IncorrectTypeError{Struct: "LazyRef", Field: "Ref", Expected: "consistent type", Got: TypeOf(nil)}
		}
		l.Resolved = target
		return target, nil
	}

	obj, err := r.ResolveRef(l.Ref)
	if err != nil {
		return nil, err
	}
	target := arena.New[T](r.Arena())
	l.Resolved = target
	r.typed[l.Ref] = target
	if err := Deserialize(l.Schema, obj, r.Arena(), r, target); err != nil {
		l.Resolved = nil
		delete(r.typed, l.Ref)
		return nil, err
	}
	return l.Resolved, nil
}

// LazyReference requires the dictionary value to be a literal indirect
// reference (no implicit unwrapping) and stores it for later
// resolution via schema.
func LazyReference(schema *Schema) FieldKind { return lazyRefKind{schema} }

type lazyRefKind struct{ schema *Schema }

func (k lazyRefKind) apply(ctx fieldCtx) error {
	if !ctx.present {
		return &MissingFieldError{Struct: ctx.structName, Field: string(ctx.key)}
	}
	ref, ok := ctx.raw.(Reference)
	if !ok {
		return &IncorrectTypeError{Struct: ctx.structName, Field: string(ctx.key), Expected: "reference", Got: TypeOf(ctx.raw)}
	}
	ctx.field.FieldByName("Ref").Set(reflect.ValueOf(ref))
	ctx.field.FieldByName("Schema").Set(reflect.ValueOf(k.schema))
	return nil
}

// ---- Rectangle ----

// RectangleField expects an array of four numbers and canonicalizes
// them into a geom.Rect with Min <= Max componentwise ("lower-left,
// upper-right" order on parse, regardless of source order).
func RectangleField() FieldKind { return rectangleKind{} }

type rectangleKind struct{}

func (rectangleKind) apply(ctx fieldCtx) error {
	if !ctx.present {
		return &MissingFieldError{Struct: ctx.structName, Field: string(ctx.key)}
	}
	resolved, err := ResolveObject(ctx.r, ctx.raw, true)
	if err != nil {
		return err
	}
	arr, ok := resolved.(Array)
	if !ok || len(arr) != 4 {
		return &InvalidRectangleError{Struct: ctx.structName, Field: string(ctx.key)}
	}
	var nums [4]float64
	for i, o := range arr {
		v, err := ResolveObject(ctx.r, o, true)
		if err != nil {
			return err
		}
		n, ok := AsNumber(v)
		if !ok {
			return &InvalidRectangleError{Struct: ctx.structName, Field: string(ctx.key)}
		}
		nums[i] = n
	}
	r := geom.NewRect(
		geom.Vec2{X: nums[0], Y: nums[1]},
		geom.Vec2{X: nums[2], Y: nums[3]},
	)
	ctx.field.Set(reflect.ValueOf(r))
	return nil
}

// ---- Number ----

// NumberField accepts either an Integer or Real PDF object and boxes it
// uniformly as a float64 Go field.
func NumberField() FieldKind { return numberKind{} }

type numberKind struct{}

func (numberKind) apply(ctx fieldCtx) error {
	if !ctx.present {
		return &MissingFieldError{Struct: ctx.structName, Field: string(ctx.key)}
	}
	resolved, err := ResolveObject(ctx.r, ctx.raw, true)
	if err != nil {
		return err
	}
	n, ok := AsNumber(resolved)
	if !ok {
		return &IncorrectTypeError{Struct: ctx.structName, Field: string(ctx.key), Expected: "number", Got: TypeOf(resolved)}
	}
	ctx.field.SetFloat(n)
	return nil
}

// ---- ReferenceArray ----

// ReferenceArray expects an array of literal indirect references (no
// unwrapping of the elements) and assigns it to a []Reference field,
// e.g. a page tree node's Kids.
func ReferenceArray() FieldKind { return referenceArrayKind{} }

type referenceArrayKind struct{}

func (referenceArrayKind) apply(ctx fieldCtx) error {
	if !ctx.present {
		return &MissingFieldError{Struct: ctx.structName, Field: string(ctx.key)}
	}
	resolved, err := ResolveObject(ctx.r, ctx.raw, true)
	if err != nil {
		return err
	}
	arr, ok := resolved.(Array)
	if !ok {
		return &IncorrectTypeError{Struct: ctx.structName, Field: string(ctx.key), Expected: "array", Got: TypeOf(resolved)}
	}
	out := make([]Reference, len(arr))
	for i, o := range arr {
		ref, ok := o.(Reference)
		if !ok {
			return &IncorrectTypeError{Struct: ctx.structName, Field: indexedKey(ctx.key, i), Expected: "reference", Got: TypeOf(o)}
		}
		out[i] = ref
	}
	ctx.field.Set(reflect.ValueOf(out))
	return nil
}

// ---- LiteralReference ----

// LiteralReference requires the dictionary value to be a literal
// indirect reference, stored unresolved (e.g. FontDescriptor.FontFile2:
// the renderer decides whether and when to load the embedded program).
func LiteralReference() FieldKind { return literalReferenceKind{} }

type literalReferenceKind struct{}

func (literalReferenceKind) apply(ctx fieldCtx) error {
	if !ctx.present {
		return &MissingFieldError{Struct: ctx.structName, Field: string(ctx.key)}
	}
	ref, ok := ctx.raw.(Reference)
	if !ok {
		return &IncorrectTypeError{Struct: ctx.structName, Field: string(ctx.key), Expected: "reference", Got: TypeOf(ctx.raw)}
	}
	ctx.field.Set(reflect.ValueOf(ref))
	return nil
}

// ---- AnyObject ----

// AnyObject accepts any resolved PDF object and stores it, unmodified,
// into a field of type Object — for dictionary entries whose shape
// varies by context (e.g. /Encoding, which may be a Name or a Dict).
func AnyObject() FieldKind { return anyObjectKind{} }

type anyObjectKind struct{}

func (anyObjectKind) apply(ctx fieldCtx) error {
	if !ctx.present {
		return &MissingFieldError{Struct: ctx.structName, Field: string(ctx.key)}
	}
	resolved, err := ResolveObject(ctx.r, ctx.raw, true)
	if err != nil {
		return err
	}
	ctx.field.Set(reflect.ValueOf(resolved))
	return nil
}

// ---- NameOrNameArray ----

// NameOrNameArray accepts either a single Name or an Array of Names and
// uniformly produces a []Name field — the shape PDF's /Filter entry
// takes (a lone filter vs. a chain of several).
func NameOrNameArray() FieldKind { return nameOrNameArrayKind{} }

type nameOrNameArrayKind struct{}

func (nameOrNameArrayKind) apply(ctx fieldCtx) error {
	if !ctx.present {
		return &MissingFieldError{Struct: ctx.structName, Field: string(ctx.key)}
	}
	resolved, err := ResolveObject(ctx.r, ctx.raw, true)
	if err != nil {
		return err
	}
	switch v := resolved.(type) {
	case Name:
		ctx.field.Set(reflect.ValueOf([]Name{v}))
	case Array:
		out := make([]Name, len(v))
		for i, o := range v {
			n, ok := o.(Name)
			if !ok {
				return &IncorrectTypeError{Struct: ctx.structName, Field: indexedKey(ctx.key, i), Expected: "name", Got: TypeOf(o)}
			}
			out[i] = n
		}
		ctx.field.Set(reflect.ValueOf(out))
	default:
		return &IncorrectTypeError{Struct: ctx.structName, Field: string(ctx.key), Expected: "name or array", Got: TypeOf(resolved)}
	}
	return nil
}

// ---- ReferenceMap ----

// ReferenceMap expects a dictionary whose values are literal indirect
// references (a resource subdictionary such as Resources.Font) and
// assigns it to a map[Name]Reference field.
func ReferenceMap() FieldKind { return referenceMapKind{} }

type referenceMapKind struct{}

func (referenceMapKind) apply(ctx fieldCtx) error {
	if !ctx.present {
		return &MissingFieldError{Struct: ctx.structName, Field: string(ctx.key)}
	}
	resolved, err := ResolveObject(ctx.r, ctx.raw, true)
	if err != nil {
		return err
	}
	dict, ok := resolved.(Dict)
	if !ok {
		return &IncorrectTypeError{Struct: ctx.structName, Field: string(ctx.key), Expected: "dict", Got: TypeOf(resolved)}
	}
	out := make(map[Name]Reference, len(dict))
	// Dict iteration order is randomized by the Go runtime; walking keys in
	// sorted order keeps which entry the error below names reproducible
	// across runs instead of depending on map hash seeding.
	names := maps.Keys(dict)
	slices.Sort(names)
	for _, name := range names {
		ref, ok := dict[name].(Reference)
		if !ok {
			return &IncorrectTypeError{Struct: ctx.structName, Field: string(ctx.key) + "." + string(name), Expected: "reference", Got: TypeOf(dict[name])}
		}
		out[name] = ref
	}
	ctx.field.Set(reflect.ValueOf(out))
	return nil
}

// ---- Custom ----

// CustomTrampoline is invoked directly with the resolved object; it is
// responsible for its own type checks and for setting field itself.
type CustomTrampoline func(obj Object, ar *arena.Arena, r *Resolver, field reflect.Value) error

// Custom runs fn as an opaque escape hatch for field kinds the static
// descriptor vocabulary cannot express.
func Custom(fn CustomTrampoline) FieldKind { return customKind{fn} }

type customKind struct{ fn CustomTrampoline }

func (k customKind) apply(ctx fieldCtx) error {
	resolved, err := ResolveObject(ctx.r, ctx.raw, true)
	if err != nil {
		return err
	}
	return k.fn(resolved, ctx.ar, ctx.r, ctx.field)
}
