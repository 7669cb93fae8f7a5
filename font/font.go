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

// Package font loads a /Font resource dictionary into a graphics.Font:
// it dispatches on /Subtype to build either a simple (Type1/TrueType)
// font, addressed by a single-byte code through a 256-entry encoding,
// or a composite (Type0) font, addressed by a CMap-decoded multi-byte
// code through its descendant CIDFont, and wraps whichever embedded
// SFNT or CFF outline program the font carries.
package font

import (
	"fmt"

	"github.com/jvoss-raster/pdfraster/cff"
	"github.com/jvoss-raster/pdfraster/cmap"
	"github.com/jvoss-raster/pdfraster/graphics"
	"github.com/jvoss-raster/pdfraster/pdf"
	"github.com/jvoss-raster/pdfraster/sfnt"
)

// Loader builds graphics.Font values from /Font resource references,
// decoding embedded program streams through Filters.
type Loader struct {
	Filters pdf.FilterDecoder
}

// NewLoader returns a Loader that decodes embedded font program and
// CMap streams through filters (nil is fine for documents that never
// filter-encode their font streams).
func NewLoader(filters pdf.FilterDecoder) *Loader {
	return &Loader{Filters: filters}
}

// Load resolves fontRef to a FontDict and builds the graphics.Font it
// describes. Its signature matches render.FontLoader, so a *Loader's
// Load method can be used directly as a Renderer's LoadFont.
func (ld *Loader) Load(r *pdf.Resolver, fontRef pdf.Reference) (graphics.Font, error) {
	dict, err := pdf.DeserializeFontDict(fontRef, r.Arena(), r)
	if err != nil {
		return nil, err
	}

	switch dict.Subtype {
	case "Type0":
		return ld.loadComposite(r, dict)
	default: // Type1, TrueType, MMType1, and (metrics-only) Type3
		return ld.loadSimple(r, dict)
	}
}

func (ld *Loader) streamBytes(r *pdf.Resolver, ref pdf.Reference) ([]byte, error) {
	obj, err := r.ResolveRef(ref)
	if err != nil {
		return nil, err
	}
	stream, ok := obj.(*pdf.Stream)
	if !ok {
		return nil, fmt.Errorf("font: object %s is not a stream", ref)
	}
	return stream.Bytes(ld.Filters)
}

// embeddedOutlines loads whichever of FontFile2 (SFNT/TrueType) or
// FontFile3 (bare CFF) the descriptor carries. A descriptor with
// neither (e.g. a non-embedded base-14 font, or a raw Type1 FontFile
// this module does not parse) returns a nil source: Outline then
// always reports ok=false, but the font's widths still drive text
// positioning correctly.
func (ld *Loader) embeddedOutlines(r *pdf.Resolver, desc *pdf.FontDescriptor) (sfntFont *sfnt.Font, cffFont *cff.Font, err error) {
	switch {
	case desc.FontFile2.Present:
		data, err := ld.streamBytes(r, desc.FontFile2.Value)
		if err != nil {
			return nil, nil, err
		}
		f, err := sfnt.New(data, sfnt.ChecksumIgnore)
		if err != nil {
			return nil, nil, fmt.Errorf("font: FontFile2: %w", err)
		}
		return f, nil, nil
	case desc.FontFile3.Present:
		data, err := ld.streamBytes(r, desc.FontFile3.Value)
		if err != nil {
			return nil, nil, err
		}
		f, err := cff.New(data)
		if err != nil {
			return nil, nil, fmt.Errorf("font: FontFile3: %w", err)
		}
		return nil, f, nil
	default:
		return nil, nil, nil
	}
}

func (ld *Loader) loadSimple(r *pdf.Resolver, dict *pdf.FontDict) (graphics.Font, error) {
	var missingWidth float64
	var sfntFont *sfnt.Font
	var cffFont *cff.Font

	if dict.FontDescriptor.Present {
		desc, err := dict.FontDescriptor.Value.Get(r)
		if err != nil {
			return nil, err
		}
		if desc.MissingWidth.Present {
			missingWidth = desc.MissingWidth.Value
		}
		sfntFont, cffFont, err = ld.embeddedOutlines(r, desc)
		if err != nil {
			return nil, err
		}
	}

	var encoding simpleEncoding
	if dict.Encoding.Present {
		encoding = resolveEncoding(dict.Encoding.Value)
	} else {
		encoding = StandardEncoding
	}

	var outlines outlineSource
	var lookup glyphLookup
	switch {
	case sfntFont != nil:
		outlines = sfntFont
		lookup = func(code int) uint16 {
			name := encoding[code]
			if r, ok := glyphNameToRune(name); ok {
				if gid := sfntFont.GlyphID(uint32(r)); gid != 0 {
					return gid
				}
			}
			// Symbolic TrueType fonts are often keyed by the (3,0)
			// subtable's 0xF000+code convention, or by raw code in a
			// Mac Roman subtable; both read the same through a direct
			// code lookup once the glyph-name route has failed.
			if gid := sfntFont.GlyphID(0xF000 + uint32(code)); gid != 0 {
				return gid
			}
			return sfntFont.GlyphID(uint32(code))
		}
	case cffFont != nil:
		outlines = cffFont
		lookup = func(code int) uint16 { return uint16(code) }
	}

	widths := newSimpleWidths(dict, missingWidth)
	return newSimpleFont(encoding, lookup, outlines, widths), nil
}

func (ld *Loader) loadComposite(r *pdf.Resolver, dict *pdf.FontDict) (graphics.Font, error) {
	if !dict.DescendantFonts.Present || len(dict.DescendantFonts.Value) == 0 {
		return nil, fmt.Errorf("font: Type0 font has no DescendantFonts entry")
	}
	cidDict, err := pdf.DeserializeCIDFontDict(dict.DescendantFonts.Value[0], r.Arena(), r)
	if err != nil {
		return nil, err
	}

	info, err := ld.resolveCMap(r, dict.Encoding)
	if err != nil {
		return nil, err
	}

	var desc *pdf.FontDescriptor
	if cidDict.FontDescriptor.Present {
		desc, err = cidDict.FontDescriptor.Value.Get(r)
		if err != nil {
			return nil, err
		}
	}
	var sfntFont *sfnt.Font
	var cffFont *cff.Font
	if desc != nil {
		sfntFont, cffFont, err = ld.embeddedOutlines(r, desc)
		if err != nil {
			return nil, err
		}
	}

	var outlines outlineSource
	var toGID cidToGID = identityCIDToGID{}
	switch {
	case cffFont != nil:
		// CIDFontType0: the embedded CFF's own Charset is the CID<->GID
		// mapping; a /CIDToGIDMap entry, if present, does not apply here
		// (PDF 32000-1:2008, 9.7.4.2).
		outlines = cffFont
		toGID = cffCharsetCIDToGID{font: cffFont}
	case sfntFont != nil:
		outlines = sfntFont
		if stream, ok := cidDict.CIDToGIDMap.Value.(*pdf.Stream); cidDict.CIDToGIDMap.Present && ok {
			data, err := stream.Bytes(ld.Filters)
			if err != nil {
				return nil, err
			}
			toGID = decodeTableCIDToGID(data)
		}
	}

	return &compositeFont{
		cmap:     info,
		toGID:    toGID,
		outlines: outlines,
		widths:   newCIDWidths(cidDict),
	}, nil
}

// resolveCMap builds the *cmap.Info driving a Type0 font's code->CID
// decoding: Identity-H/V are PDF's two predefined CMaps (a direct,
// two-byte-code-equals-CID identity mapping over the whole codespace),
// anything else must be an embedded CMap stream.
func (ld *Loader) resolveCMap(r *pdf.Resolver, encoding pdf.Optional[pdf.Object]) (*cmap.Info, error) {
	if !encoding.Present {
		return cmap.Identity(), nil
	}
	switch e := encoding.Value.(type) {
	case pdf.Name:
		// Other predefined CMaps (e.g. UniGB-UCS2-H) are out of scope;
		// Identity is the safe fallback for any name this module does
		// not special-case.
		return cmap.Identity(), nil
	case *pdf.Stream:
		data, err := e.Bytes(ld.Filters)
		if err != nil {
			return nil, err
		}
		return cmap.Read(data)
	default:
		return cmap.Identity(), nil
	}
}
