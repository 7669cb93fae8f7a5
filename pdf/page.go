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

// Catalog is the document catalog dictionary (the root object,
// referenced from the trailer — trailer parsing itself is out of
// scope, see the xref/object parser).
type Catalog struct {
	Pages LazyRef[PageTreeNode]
}

var catalogSchema = &Schema{
	Name: "Catalog",
	Fields: []FieldDescriptor{
		{Key: "Pages", Field: "Pages", Kind: LazyReference(pageTreeNodeSchema)},
	},
}

// DeserializeCatalog projects obj onto a Catalog.
func DeserializeCatalog(obj Object, ar *arena.Arena, r *Resolver) (*Catalog, error) {
	var c Catalog
	if err := Deserialize(catalogSchema, obj, ar, r, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// PageTreeNode is an internal node of the page tree. Kids holds the raw
// references to its children, each of which is in turn either another
// PageTreeNode or a Page, distinguished by Type once resolved. Resources
// and MediaBox are inheritable: a Page with no Resources/MediaBox of its
// own takes the nearest ancestor's, see ResolvePageAttributes.
type PageTreeNode struct {
	Type      Name
	Parent    Optional[LazyRef[PageTreeNode]]
	Kids      []Reference
	Count     Integer
	Resources Optional[Resources]
	MediaBox  Optional[geom.Rect]
}

var pageTreeNodeSchema = &Schema{
	Name: "PageTreeNode",
	Fields: []FieldDescriptor{
		{Key: "Type", Field: "Type", Kind: Primitive(TagName)},
		{Key: "Parent", Field: "Parent", Kind: OptionalField(nil /* patched in init */)},
		{Key: "Kids", Field: "Kids", Kind: ReferenceArray()},
		{Key: "Count", Field: "Count", Kind: Primitive(TagInteger)},
		{Key: "Resources", Field: "Resources", Kind: OptionalField(TypedStruct(resourcesSchema))},
		{Key: "MediaBox", Field: "MediaBox", Kind: OptionalField(RectangleField())},
	},
}

func init() {
	pageTreeNodeSchema.Fields[1].Kind = OptionalField(LazyReference(pageTreeNodeSchema))
}

// DeserializePageTreeNode projects obj onto a PageTreeNode.
func DeserializePageTreeNode(obj Object, ar *arena.Arena, r *Resolver) (*PageTreeNode, error) {
	var n PageTreeNode
	if err := Deserialize(pageTreeNodeSchema, obj, ar, r, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

// Page is a leaf of the page tree.
type Page struct {
	Type      Name
	Parent    Optional[LazyRef[PageTreeNode]]
	Resources Optional[Resources]
	MediaBox  Optional[geom.Rect]
	Contents  Optional[[]Reference]
}

var pageSchema = &Schema{
	Name: "Page",
	Fields: []FieldDescriptor{
		{Key: "Type", Field: "Type", Kind: Primitive(TagName)},
		{Key: "Parent", Field: "Parent", Kind: OptionalField(LazyReference(pageTreeNodeSchema))},
		{Key: "Resources", Field: "Resources", Kind: OptionalField(TypedStruct(resourcesSchema))},
		{Key: "MediaBox", Field: "MediaBox", Kind: OptionalField(RectangleField())},
		{Key: "Contents", Field: "Contents", Kind: OptionalField(ReferenceArray())},
	},
}

// DeserializePage projects obj onto a Page.
func DeserializePage(obj Object, ar *arena.Arena, r *Resolver) (*Page, error) {
	var p Page
	if err := Deserialize(pageSchema, obj, ar, r, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ResolvePageAttributes walks Parent links to find the nearest ancestor
// supplying Resources and MediaBox for a Page that lacks its own. A
// document with no MediaBox anywhere up the chain to the root has no
// usable page size; callers should treat the all-zero result as an
// error in that case.
func ResolvePageAttributes(p *Page, r *Resolver) (Resources, geom.Rect, error) {
	var res Resources
	var mediaBox geom.Rect
	if p.Resources.Present {
		res = p.Resources.Value
	}
	if p.MediaBox.Present {
		mediaBox = p.MediaBox.Value
	}

	link := p.Parent
	for !p.Resources.Present || !p.MediaBox.Present {
		if !link.Present {
			break
		}
		parent, err := link.Value.Get(r)
		if err != nil {
			return res, mediaBox, err
		}
		if !p.Resources.Present && parent.Resources.Present {
			res = parent.Resources.Value
			p.Resources = parent.Resources
		}
		if !p.MediaBox.Present && parent.MediaBox.Present {
			mediaBox = parent.MediaBox.Value
			p.MediaBox = parent.MediaBox
		}
		link = parent.Parent
	}
	return res, mediaBox, nil
}
