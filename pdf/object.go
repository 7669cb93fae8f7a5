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

// Package pdf implements the PDF object model: a tagged union of
// primitive object kinds plus the resolver and field-descriptor
// deserialization framework that project a dictionary-shaped object
// graph onto strongly typed Go structs.
package pdf

import "fmt"

// Object is the PDF object tagged union. The concrete types are Null,
// Boolean, Integer, Real, Name, String, Array, Dict, *Stream, and
// Reference. All concrete types are immutable after parsing.
type Object interface {
	objectTag() string
}

// Null is the PDF null object.
type Null struct{}

func (Null) objectTag() string { return "null" }

// Boolean is a PDF boolean object.
type Boolean bool

func (Boolean) objectTag() string { return "boolean" }

// Integer is a PDF integer object.
type Integer int64

func (Integer) objectTag() string { return "integer" }

// Real is a PDF real (floating point) object.
type Real float64

func (Real) objectTag() string { return "real" }

// Name is a PDF name object. Equality is byte-exact.
type Name string

func (Name) objectTag() string { return "name" }

// String is a PDF string object; its bytes are opaque.
type String []byte

func (String) objectTag() string { return "string" }

// Array is an ordered sequence of objects.
type Array []Object

func (Array) objectTag() string { return "array" }

// Dict is a mapping from name to object. Go map iteration order is
// random; callers needing the source's insertion order for debug output
// should keep a side list when parsing (not required for correctness).
type Dict map[Name]Object

func (Dict) objectTag() string { return "dict" }

// Stream is a dictionary plus an opaque byte payload and the list of
// filter names applied to it, in application order.
type Stream struct {
	Dict    Dict
	Raw     []byte
	Filters []Name
}

func (*Stream) objectTag() string { return "stream" }

// Reference is an indirect reference (object-id, generation).
type Reference struct {
	Num uint32
	Gen uint16
}

func (Reference) objectTag() string { return "reference" }

func (r Reference) String() string {
	return fmt.Sprintf("%d %d R", r.Num, r.Gen)
}

// Operator is a content-stream or object-syntax operator token, used
// only by the content-stream and CMap scanners while they are still
// assembling composite objects (arrays, dicts) from the token stream.
type Operator string

func (Operator) objectTag() string { return "operator" }

// TypeOf returns a short human-readable name for the dynamic type of
// obj, or "null" for a nil interface.
func TypeOf(obj Object) string {
	if obj == nil {
		return "null"
	}
	return obj.objectTag()
}

// AsInteger returns the Integer value of obj and whether obj actually
// was an Integer.
func AsInteger(obj Object) (Integer, bool) {
	v, ok := obj.(Integer)
	return v, ok
}

// AsReal returns the Real value of obj and whether obj actually was a
// Real.
func AsReal(obj Object) (Real, bool) {
	v, ok := obj.(Real)
	return v, ok
}

// AsNumber widens Integer or Real to float64. ok is false for any other
// type.
func AsNumber(obj Object) (float64, bool) {
	switch v := obj.(type) {
	case Integer:
		return float64(v), true
	case Real:
		return float64(v), true
	default:
		return 0, false
	}
}

// AsNameEq reports whether obj is the Name want, compared byte-exact.
func AsNameEq(obj Object, want Name) bool {
	n, ok := obj.(Name)
	return ok && n == want
}

// AsArray returns obj as an Array and whether the assertion succeeded.
func AsArray(obj Object) (Array, bool) {
	v, ok := obj.(Array)
	return v, ok
}

// DictGet looks up key in dict, returning (nil, false) if absent. The
// bool return distinguishes an absent key from a present key whose
// value is the PDF null object (which is returned as Go nil).
func DictGet(dict Dict, key Name) (Object, bool) {
	v, ok := dict[key]
	return v, ok
}

// StreamDict returns the dictionary portion of a stream object.
func StreamDict(obj Object) (Dict, bool) {
	s, ok := obj.(*Stream)
	if !ok {
		return nil, false
	}
	return s.Dict, true
}

// FilterDecoder decodes a stream's encoded bytes given its filter name
// chain. It is an external collaborator: the PDF stream-filter
// decoders (Flate/ASCIIHex/etc.) are not part of this module's scope.
type FilterDecoder interface {
	DecodeStreamFilters(data []byte, filters []Name) ([]byte, error)
}

// Bytes returns the decoded contents of the stream, running it through
// fd if fd is non-nil and the stream has filters; otherwise the raw
// bytes are returned unchanged.
func (s *Stream) Bytes(fd FilterDecoder) ([]byte, error) {
	if fd == nil || len(s.Filters) == 0 {
		return s.Raw, nil
	}
	return fd.DecodeStreamFilters(s.Raw, s.Filters)
}
