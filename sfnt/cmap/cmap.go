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

// Package cmap reads an SFNT "cmap" table: the directory of
// platform/encoding subtables and the format 0, 4, and 6 subtable
// codecs a PDF renderer needs to map character codes to glyph IDs.
package cmap

import (
	"encoding/binary"
	"fmt"
)

// Subtable maps character codes to glyph IDs for one platform/encoding
// pair.
type Subtable interface {
	Lookup(code uint32) uint16
}

// key identifies one encoding record in the cmap directory.
type key struct {
	platformID, encodingID uint16
}

// Table is a decoded "cmap" table: every subtable the font declares,
// indexed by platform/encoding.
type Table struct {
	subtables map[key]Subtable
}

// Decode parses a cmap table's header and every subtable it lists.
// Subtables in formats this package does not implement are skipped,
// not treated as an error: a font with both a format 4 and a format 12
// subtable for the same platform is still usable via the format 4 one.
func Decode(data []byte) (*Table, error) {
	if len(data) < 4 {
		return nil, fmt.Errorf("cmap: table too short")
	}
	version := binary.BigEndian.Uint16(data[0:2])
	if version != 0 {
		return nil, fmt.Errorf("cmap: unknown version %d", version)
	}
	numTables := int(binary.BigEndian.Uint16(data[2:4]))
	if 4+8*numTables > len(data) {
		return nil, fmt.Errorf("cmap: encoding record table extends past end of data")
	}

	t := &Table{subtables: make(map[key]Subtable, numTables)}
	for i := 0; i < numTables; i++ {
		rec := data[4+8*i : 4+8*i+8]
		platformID := binary.BigEndian.Uint16(rec[0:2])
		encodingID := binary.BigEndian.Uint16(rec[2:4])
		offset := binary.BigEndian.Uint32(rec[4:8])
		if int(offset) >= len(data) {
			continue
		}
		sub, err := decodeSubtable(data[offset:])
		if err != nil {
			continue
		}
		if sub != nil {
			t.subtables[key{platformID, encodingID}] = sub
		}
	}
	return t, nil
}

func decodeSubtable(data []byte) (Subtable, error) {
	if len(data) < 2 {
		return nil, fmt.Errorf("cmap: truncated subtable header")
	}
	format := binary.BigEndian.Uint16(data[0:2])
	switch format {
	case 0:
		return decodeFormat0(data)
	case 4:
		return decodeFormat4(data)
	case 6:
		return decodeFormat6(data)
	default:
		return nil, nil // recognized-but-unsupported format: caller falls back
	}
}

// platform/encoding preference order, most to least preferred, per the
// directory's "best subtable" selection rule: Unicode full repertoire,
// then Unicode BMP, then Windows Unicode BMP, then Mac Roman.
var preference = []key{
	{3, 10}, // Windows, Unicode full repertoire
	{0, 4},  // Unicode 2.0+, full repertoire
	{0, 3},  // Unicode 2.0+, BMP
	{3, 1},  // Windows, Unicode BMP
	{0, 0},  // Unicode 1.0
	{1, 0},  // Mac Roman
}

// Best returns the most preferred subtable present in the table. If
// none of the recognized platform/encoding pairs are present it returns
// any other decoded subtable, and nil only if the table holds none.
func (t *Table) Best() Subtable {
	for _, k := range preference {
		if sub, ok := t.subtables[k]; ok {
			return sub
		}
	}
	for _, sub := range t.subtables {
		return sub // last resort: any subtable we managed to decode
	}
	return nil
}

// Format0 is the format 0 "byte encoding table" subtable: a direct
// 256-entry glyph index array indexed by character code.
type Format0 struct {
	glyphIDArray [256]byte
}

func decodeFormat0(data []byte) (Subtable, error) {
	if len(data) < 262 {
		return nil, fmt.Errorf("cmap: format 0 subtable too short")
	}
	f := &Format0{}
	copy(f.glyphIDArray[:], data[6:262])
	return f, nil
}

// Lookup implements Subtable.
func (f *Format0) Lookup(code uint32) uint16 {
	if code > 255 {
		return 0
	}
	return uint16(f.glyphIDArray[code])
}

// Format4 is the format 4 "segment mapping to delta values" subtable,
// used by nearly all Windows-targeted fonts for the BMP.
type Format4 struct {
	endCode       []uint16
	startCode     []uint16
	idDelta       []uint16
	idRangeOffset []uint16
	glyphIDArray  []uint16
}

func decodeFormat4(data []byte) (Subtable, error) {
	if len(data) < 14 {
		return nil, fmt.Errorf("cmap: format 4 subtable too short")
	}
	segCountX2 := int(binary.BigEndian.Uint16(data[6:8]))
	if segCountX2%2 != 0 || 14+2*segCountX2 > len(data) {
		return nil, fmt.Errorf("cmap: format 4 subtable malformed segment count")
	}
	segCount := segCountX2 / 2

	words := make([]uint16, 0, (len(data)-14)/2)
	for i := 14; i+1 < len(data); i += 2 {
		words = append(words, binary.BigEndian.Uint16(data[i:i+2]))
	}
	if len(words) < 4*segCount+1 {
		return nil, fmt.Errorf("cmap: format 4 subtable truncated")
	}

	f := &Format4{
		endCode:       words[:segCount],
		startCode:     words[segCount+1 : 2*segCount+1],
		idDelta:       words[2*segCount+1 : 3*segCount+1],
		idRangeOffset: words[3*segCount+1 : 4*segCount+1],
		glyphIDArray:  words[4*segCount+1:],
	}
	return f, nil
}

// Lookup implements Subtable: binary-search segments by endCode, then
// apply the segment's delta or range-offset indirection rule.
func (f *Format4) Lookup(code uint32) uint16 {
	if code > 0xFFFF {
		return 0
	}
	c := uint16(code)

	lo, hi := 0, len(f.endCode)
	for lo < hi {
		mid := (lo + hi) / 2
		if f.endCode[mid] < c {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo >= len(f.endCode) || c < f.startCode[lo] {
		return 0
	}

	segIdx := lo
	if f.idRangeOffset[segIdx] == 0 {
		return c + f.idDelta[segIdx]
	}
	// glyphIndexArray[r/2 + (c - start) - (segCount - segIdx)], per the
	// format's pointer-arithmetic definition relative to the
	// idRangeOffset word's own storage location.
	idx := int(f.idRangeOffset[segIdx])/2 + int(c-f.startCode[segIdx]) - (len(f.endCode) - segIdx)
	if idx < 0 || idx >= len(f.glyphIDArray) {
		return 0
	}
	gid := f.glyphIDArray[idx]
	if gid == 0 {
		return 0
	}
	return gid + f.idDelta[segIdx]
}

// Format6 is the format 6 "trimmed table mapping" subtable: a dense
// glyph index array over a contiguous code range.
type Format6 struct {
	firstCode    uint16
	glyphIDArray []uint16
}

func decodeFormat6(data []byte) (Subtable, error) {
	if len(data) < 10 {
		return nil, fmt.Errorf("cmap: format 6 subtable too short")
	}
	firstCode := binary.BigEndian.Uint16(data[6:8])
	entryCount := int(binary.BigEndian.Uint16(data[8:10]))
	if 10+2*entryCount > len(data) {
		return nil, fmt.Errorf("cmap: format 6 subtable truncated")
	}
	arr := make([]uint16, entryCount)
	for i := 0; i < entryCount; i++ {
		arr[i] = binary.BigEndian.Uint16(data[10+2*i : 12+2*i])
	}
	return &Format6{firstCode: firstCode, glyphIDArray: arr}, nil
}

// Lookup implements Subtable.
func (f *Format6) Lookup(code uint32) uint16 {
	if code < uint32(f.firstCode) {
		return 0
	}
	idx := code - uint32(f.firstCode)
	if idx >= uint32(len(f.glyphIDArray)) {
		return 0
	}
	return f.glyphIDArray[idx]
}
