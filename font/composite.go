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

package font

import (
	"github.com/jvoss-raster/pdfraster/cmap"
	"github.com/jvoss-raster/pdfraster/graphics"
)

// outlineSource is the subset of cff.Font/sfnt.Font a font needs to
// turn a glyph index into paintable geometry.
type outlineSource interface {
	Outline(gid uint16) (graphics.GlyphOutline, float64, bool)
}

// cidToGID resolves a CID to the glyph index carrying its outline, and
// back again: cid (GID -> CID) is needed because graphics.Font.Outline takes a
// gid, but a CIDFont's /W widths array is indexed by CID.
type cidToGID interface {
	gid(cid int32) uint16
	cid(gid uint16) int32
}

type identityCIDToGID struct{}

func (identityCIDToGID) gid(cid int32) uint16 { return uint16(cid) }
func (identityCIDToGID) cid(gid uint16) int32 { return int32(gid) }

// tableCIDToGID is an explicit CIDFontType2 /CIDToGIDMap stream: a flat
// array of big-endian uint16 glyph indices, one per CID in ascending
// order (PDF 32000-1:2008, 9.7.4.3).
type tableCIDToGID struct {
	cidToGIDTable []uint16
	gidToCIDTable map[uint16]int32
}

func decodeTableCIDToGID(data []byte) tableCIDToGID {
	table := make([]uint16, len(data)/2)
	rev := make(map[uint16]int32, len(table))
	for i := range table {
		gid := uint16(data[2*i])<<8 | uint16(data[2*i+1])
		table[i] = gid
		if gid != 0 {
			rev[gid] = int32(i)
		}
	}
	return tableCIDToGID{cidToGIDTable: table, gidToCIDTable: rev}
}

func (t tableCIDToGID) gid(cid int32) uint16 {
	if cid < 0 || int(cid) >= len(t.cidToGIDTable) {
		return 0
	}
	return t.cidToGIDTable[cid]
}

func (t tableCIDToGID) cid(gid uint16) int32 { return t.gidToCIDTable[gid] }

// cffCharsetCIDToGID is a CIDFontType0 descendant: the embedded CFF's
// own Charset table already is the CID <-> GID mapping.
type cffCharsetCIDToGID struct {
	font interface {
		GIDForCID(cid int32) uint16
		CIDForGID(gid uint16) int32
	}
}

func (c cffCharsetCIDToGID) gid(cid int32) uint16 { return c.font.GIDForCID(cid) }
func (c cffCharsetCIDToGID) cid(gid uint16) int32 { return c.font.CIDForGID(gid) }

// compositeFont implements graphics.Font for a /Subtype /Type0 font: a
// CMap splits the input byte string into multi-byte character codes and
// maps each to a CID, which toGID then resolves to an outline-table
// glyph index.
type compositeFont struct {
	cmap     *cmap.Info
	toGID    cidToGID
	outlines outlineSource
	widths   cidWidths
}

// Decode implements graphics.Font: each returned Code packs the
// matched byte count into the high byte above the raw code value, so
// a symbolic mix of codespace widths round-trips without a second
// CMap pass.
func (f *compositeFont) Decode(s []byte) []graphics.Code {
	var codes []graphics.Code
	for len(s) > 0 {
		code, n, ok := f.cmap.DecodeNext(s)
		if !ok {
			s = s[n:]
			continue
		}
		codes = append(codes, graphics.Code(uint32(n)<<24|code))
		s = s[n:]
	}
	return codes
}

// GlyphID implements graphics.Font.
func (f *compositeFont) GlyphID(code graphics.Code) uint16 {
	n := int(uint32(code) >> 24)
	raw := uint32(code) & 0x00FFFFFF
	cid, ok := f.cmap.CID(raw, n)
	if !ok {
		return 0
	}
	return f.toGID.gid(cid)
}

// Outline implements graphics.Font: the advance width PDF actually
// specifies comes from the descendant CIDFont's /W array, indexed by
// the CID gid maps back to, not the embedded program's own metrics.
func (f *compositeFont) Outline(gid uint16) (graphics.GlyphOutline, float64, bool) {
	width := f.widths.width(f.toGID.cid(gid))
	if f.outlines == nil {
		return graphics.GlyphOutline{}, width, false
	}
	outline, _, ok := f.outlines.Outline(gid)
	return outline, width, ok
}

// IsSpace implements graphics.Font: word spacing only ever applies to
// the single-byte code 32 (PDF 32000-1:2008, 9.3.3), which a composite
// font's multi-byte codespace essentially never produces.
func (f *compositeFont) IsSpace(code graphics.Code) bool {
	return uint32(code)>>24 == 1 && uint32(code)&0xFF == 32
}
