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
)

// ObjectSource is the external collaborator that turns a byte offset
// into the PDF object stored there ("parse_object_at(offset)
// -> Object"). The xref table/stream parser and lexical tokenizer that
// produce it are out of this module's scope.
type ObjectSource interface {
	ParseObjectAt(offset int64) (Object, error)
}

// Resolver owns the raw document buffer (indirectly, through src) and
// the xref mapping from (object-id, generation) to byte offset. A
// Resolver is constructed once per document and is not safe for
// concurrent use.
type Resolver struct {
	src   ObjectSource
	xref  map[Reference]int64
	ar    *arena.Arena
	typed map[Reference]any // ref -> *T, memoized typed records (LazyRef uniqueness)
}

// NewResolver returns a Resolver backed by src, using xref to map
// references to byte offsets. All typed records produced while using
// this resolver are allocated from ar.
func NewResolver(src ObjectSource, xref map[Reference]int64, ar *arena.Arena) *Resolver {
	return &Resolver{src: src, xref: xref, ar: ar, typed: make(map[Reference]any)}
}

// Arena returns the arena owned by this resolver.
func (r *Resolver) Arena() *arena.Arena { return r.ar }

// ResolveRef returns the object stored at ref, or a *MissingObjectError
// if ref does not appear in the xref mapping.
func (r *Resolver) ResolveRef(ref Reference) (Object, error) {
	offset, ok := r.xref[ref]
	if !ok {
		return nil, &MissingObjectError{Ref: ref}
	}
	return r.src.ParseObjectAt(offset)
}

// ResolveObject implements resolve_object: if obj is a Reference
// and unwrap is true, it follows exactly one hop and returns the
// result; otherwise obj is returned unchanged. This function
// deliberately does not chase chains of references itself — the
// deserialization framework is responsible for not recursing
// into cycles, via LazyRef's before-recursion memoization.
func ResolveObject(r *Resolver, obj Object, unwrap bool) (Object, error) {
	ref, isRef := obj.(Reference)
	if !isRef || !unwrap {
		return obj, nil
	}
	return r.ResolveRef(ref)
}
