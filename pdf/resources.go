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
	"github.com/jvoss-raster/pdfraster/arena"
	"github.com/jvoss-raster/pdfraster/geom"
)

// Resources collects the named resource dictionaries a content stream
// may reference by name: fonts, XObjects (images and forms), extended
// graphics state parameter dictionaries, and color spaces. Each entry
// maps a resource name used by a content-stream operator (Tf, Do, gs,
// cs/CS) to the indirect reference holding the resource's own
// dictionary; resources are resolved lazily, on first use by a page
// renderer, not eagerly at Resources-deserialization time.
type Resources struct {
	Font       Optional[map[Name]Reference]
	XObject    Optional[map[Name]Reference]
	ExtGState  Optional[map[Name]Reference]
	ColorSpace Optional[map[Name]Reference]
}

var resourcesSchema = &Schema{
	Name: "Resources",
	Fields: []FieldDescriptor{
		{Key: "Font", Field: "Font", Kind: OptionalField(ReferenceMap())},
		{Key: "XObject", Field: "XObject", Kind: OptionalField(ReferenceMap())},
		{Key: "ExtGState", Field: "ExtGState", Kind: OptionalField(ReferenceMap())},
		{Key: "ColorSpace", Field: "ColorSpace", Kind: OptionalField(ReferenceMap())},
	},
}

// DeserializeResources projects obj onto a Resources value.
func DeserializeResources(obj Object, ar *arena.Arena, r *Resolver) (*Resources, error) {
	var res Resources
	if err := Deserialize(resourcesSchema, obj, ar, r, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// FontDict is a /Font resource entry (the subset of keys needed to
// locate and interpret the font's outline program and encoding). For a
// composite (/Subtype /Type0) font, DescendantFonts names the single
// CIDFont dictionary carrying the actual glyph metrics and embedded
// program; Encoding is then the font's CMap (a predefined Name such as
// Identity-H, or an embedded CMap stream) rather than a simple-font
// base encoding.
type FontDict struct {
	Subtype         Name
	BaseFont        Name
	FirstChar       Optional[Integer]
	LastChar        Optional[Integer]
	Widths          Optional[[]float64]
	FontDescriptor  Optional[LazyRef[FontDescriptor]]
	Encoding        Optional[Object]
	ToUnicode       Optional[Reference]
	DescendantFonts Optional[[]Reference]
}

var fontDictSchema = &Schema{
	Name: "FontDict",
	Fields: []FieldDescriptor{
		{Key: "Subtype", Field: "Subtype", Kind: Primitive(TagName)},
		{Key: "BaseFont", Field: "BaseFont", Kind: Primitive(TagName)},
		{Key: "FirstChar", Field: "FirstChar", Kind: OptionalField(Primitive(TagInteger))},
		{Key: "LastChar", Field: "LastChar", Kind: OptionalField(Primitive(TagInteger))},
		{Key: "Widths", Field: "Widths", Kind: OptionalField(ArrayOf(NumberField()))},
		{Key: "FontDescriptor", Field: "FontDescriptor", Kind: OptionalField(LazyReference(fontDescriptorSchema))},
		{Key: "Encoding", Field: "Encoding", Kind: OptionalField(AnyObject())},
		{Key: "ToUnicode", Field: "ToUnicode", Kind: OptionalField(LiteralReference())},
		{Key: "DescendantFonts", Field: "DescendantFonts", Kind: OptionalField(ReferenceArray())},
	},
}

// DeserializeFontDict projects obj onto a FontDict.
func DeserializeFontDict(obj Object, ar *arena.Arena, r *Resolver) (*FontDict, error) {
	var f FontDict
	if err := Deserialize(fontDictSchema, obj, ar, r, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// CIDSystemInfo names the character collection a CIDFont's glyph
// indices are defined against (e.g. Registry "Adobe", Ordering
// "Identity", Supplement 0).
type CIDSystemInfo struct {
	Registry   String
	Ordering   String
	Supplement Integer
}

var cidSystemInfoSchema = &Schema{
	Name: "CIDSystemInfo",
	Fields: []FieldDescriptor{
		{Key: "Registry", Field: "Registry", Kind: Primitive(TagString)},
		{Key: "Ordering", Field: "Ordering", Kind: Primitive(TagString)},
		{Key: "Supplement", Field: "Supplement", Kind: Primitive(TagInteger)},
	},
}

// CIDFontDict is a Type0 font's sole DescendantFonts entry: a
// CIDFontType0 (CFF-flavored) or CIDFontType2 (TrueType-flavored)
// dictionary giving CID-keyed glyph metrics and the embedded outline
// program.
type CIDFontDict struct {
	Subtype        Name
	BaseFont       Name
	CIDSystemInfo  Optional[CIDSystemInfo]
	FontDescriptor Optional[LazyRef[FontDescriptor]]
	DW             Optional[float64]
	W              Optional[Array] // packed [cid [w...]] / [cidFirst cidLast w] ranges; font package unpacks it
	CIDToGIDMap    Optional[Object]
}

var cidFontDictSchema = &Schema{
	Name: "CIDFontDict",
	Fields: []FieldDescriptor{
		{Key: "Subtype", Field: "Subtype", Kind: Primitive(TagName)},
		{Key: "BaseFont", Field: "BaseFont", Kind: Primitive(TagName)},
		{Key: "CIDSystemInfo", Field: "CIDSystemInfo", Kind: OptionalField(TypedStruct(cidSystemInfoSchema))},
		{Key: "FontDescriptor", Field: "FontDescriptor", Kind: OptionalField(LazyReference(fontDescriptorSchema))},
		{Key: "DW", Field: "DW", Kind: OptionalField(NumberField())},
		{Key: "W", Field: "W", Kind: OptionalField(Primitive(TagArray))},
		{Key: "CIDToGIDMap", Field: "CIDToGIDMap", Kind: OptionalField(AnyObject())},
	},
}

// DeserializeCIDFontDict projects obj onto a CIDFontDict.
func DeserializeCIDFontDict(obj Object, ar *arena.Arena, r *Resolver) (*CIDFontDict, error) {
	var f CIDFontDict
	if err := Deserialize(cidFontDictSchema, obj, ar, r, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// FontDescriptor carries the metrics and embedded-program references a
// renderer needs to load glyph outlines.
type FontDescriptor struct {
	FontName     Name
	Flags        Integer
	FontBBox     Optional[[]float64]
	FontFile2    Optional[Reference] // embedded SFNT (TrueType) program
	FontFile3    Optional[Reference] // embedded CFF (Type1C/CIDFontType0C) program
	MissingWidth Optional[float64]
}

var fontDescriptorSchema = &Schema{
	Name: "FontDescriptor",
	Fields: []FieldDescriptor{
		{Key: "FontName", Field: "FontName", Kind: Primitive(TagName)},
		{Key: "Flags", Field: "Flags", Kind: Primitive(TagInteger)},
		{Key: "FontBBox", Field: "FontBBox", Kind: OptionalField(ArrayOf(NumberField()))},
		{Key: "FontFile2", Field: "FontFile2", Kind: OptionalField(LiteralReference())},
		{Key: "FontFile3", Field: "FontFile3", Kind: OptionalField(LiteralReference())},
		{Key: "MissingWidth", Field: "MissingWidth", Kind: OptionalField(NumberField())},
	},
}

// FormXObject is a /Subtype /Form XObject stream: a self-contained
// content stream with its own coordinate transform, bounding box, and
// (optionally) its own Resources, recursively rendered in place of a Do
// operator invocation.
type FormXObject struct {
	Subtype   Name
	BBox      geom.Rect
	Matrix    Optional[[]float64]
	Resources Optional[Resources]
}

var formXObjectSchema = &Schema{
	Name: "FormXObject",
	Fields: []FieldDescriptor{
		{Key: "Subtype", Field: "Subtype", Kind: Primitive(TagName)},
		{Key: "BBox", Field: "BBox", Kind: RectangleField()},
		{Key: "Matrix", Field: "Matrix", Kind: OptionalField(ArrayOf(NumberField()))},
		{Key: "Resources", Field: "Resources", Kind: OptionalField(TypedStruct(resourcesSchema))},
	},
}

// DeserializeFormXObject projects a stream's dictionary onto a FormXObject.
func DeserializeFormXObject(obj Object, ar *arena.Arena, r *Resolver) (*FormXObject, error) {
	var f FormXObject
	if err := Deserialize(formXObjectSchema, obj, ar, r, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// ImageXObject is a /Subtype /Image XObject stream.
type ImageXObject struct {
	Subtype          Name
	Width            Integer
	Height           Integer
	BitsPerComponent Optional[Integer]
	ColorSpace       Optional[Object]
	Filter           Optional[[]Name]
}

var imageXObjectSchema = &Schema{
	Name: "ImageXObject",
	Fields: []FieldDescriptor{
		{Key: "Subtype", Field: "Subtype", Kind: Primitive(TagName)},
		{Key: "Width", Field: "Width", Kind: Primitive(TagInteger)},
		{Key: "Height", Field: "Height", Kind: Primitive(TagInteger)},
		{Key: "BitsPerComponent", Field: "BitsPerComponent", Kind: OptionalField(Primitive(TagInteger))},
		{Key: "ColorSpace", Field: "ColorSpace", Kind: OptionalField(AnyObject())},
		{Key: "Filter", Field: "Filter", Kind: OptionalField(NameOrNameArray())},
	},
}

// DeserializeImageXObject projects a stream's dictionary onto an ImageXObject.
func DeserializeImageXObject(obj Object, ar *arena.Arena, r *Resolver) (*ImageXObject, error) {
	var img ImageXObject
	if err := Deserialize(imageXObjectSchema, obj, ar, r, &img); err != nil {
		return nil, err
	}
	return &img, nil
}

// GStateParams is an /ExtGState parameter dictionary (only the subset
// the content-stream interpreter understands).
type GStateParams struct {
	LineWidth Optional[float64]
	LineCap   Optional[Integer]
	LineJoin  Optional[Integer]
	CA        Optional[float64] // stroking alpha
	Ca        Optional[float64] // non-stroking alpha (lowercase "ca" key)
}

var gStateParamsSchema = &Schema{
	Name: "GStateParams",
	Fields: []FieldDescriptor{
		{Key: "LW", Field: "LineWidth", Kind: OptionalField(NumberField())},
		{Key: "LC", Field: "LineCap", Kind: OptionalField(Primitive(TagInteger))},
		{Key: "LJ", Field: "LineJoin", Kind: OptionalField(Primitive(TagInteger))},
		{Key: "CA", Field: "CA", Kind: OptionalField(NumberField())},
		{Key: "ca", Field: "Ca", Kind: OptionalField(NumberField())},
	},
}

// DeserializeGStateParams projects obj onto a GStateParams.
func DeserializeGStateParams(obj Object, ar *arena.Arena, r *Resolver) (*GStateParams, error) {
	var g GStateParams
	if err := Deserialize(gStateParamsSchema, obj, ar, r, &g); err != nil {
		return nil, err
	}
	return &g, nil
}
