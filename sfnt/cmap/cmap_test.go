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

package cmap

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

// buildFormat4 assembles a two-segment format 4 subtable: codes
// [startCode,endCode] map by delta to gidStart..gidStart+n, followed by
// the mandatory 0xFFFF terminator segment.
func buildFormat4(startCode, endCode uint16, gidStart int) []byte {
	segCount := 2
	words := make([]uint16, 0, 4*segCount+1)
	// endCode
	words = append(words, endCode, 0xFFFF)
	// reservedPad
	words = append(words, 0)
	// startCode
	words = append(words, startCode, 0xFFFF)
	// idDelta
	words = append(words, uint16(gidStart)-startCode, 1)
	// idRangeOffset
	words = append(words, 0, 0)

	buf := make([]byte, 14+2*len(words))
	binary.BigEndian.PutUint16(buf[0:2], 4)
	binary.BigEndian.PutUint16(buf[6:8], uint16(2*segCount))
	for i, w := range words {
		binary.BigEndian.PutUint16(buf[14+2*i:16+2*i], w)
	}
	return buf
}

func TestFormat4Lookup(t *testing.T) {
	data := buildFormat4(65, 70, 10) // 'A'-'F' -> gids 10-15

	sub, err := decodeFormat4(data)
	require.NoError(t, err)

	require.Equal(t, uint16(10), sub.Lookup(65))
	require.Equal(t, uint16(11), sub.Lookup(66))
	require.Equal(t, uint16(15), sub.Lookup(70))
	require.Equal(t, uint16(0), sub.Lookup(64), "below mapped range")
	require.Equal(t, uint16(0), sub.Lookup(0xFFFF), "terminator segment maps glyph 0 to 0 regardless of delta")
}

// buildFormat4Multi assembles a multi-segment format 4 subtable directly
// from parallel startCode/endCode/idDelta/idRangeOffset arrays, the shape
// the "CMap format 4" numeric fixture is specified against.
func buildFormat4Multi(startCode, endCode []uint16, idDelta []int16, idRangeOffset []uint16) []byte {
	segCount := len(startCode)
	words := make([]uint16, 0, 4*segCount+1)
	words = append(words, endCode...)
	words = append(words, 0) // reservedPad
	words = append(words, startCode...)
	for _, d := range idDelta {
		words = append(words, uint16(d))
	}
	words = append(words, idRangeOffset...)

	buf := make([]byte, 14+2*len(words))
	binary.BigEndian.PutUint16(buf[0:2], 4)
	binary.BigEndian.PutUint16(buf[6:8], uint16(2*segCount))
	for i, w := range words {
		binary.BigEndian.PutUint16(buf[14+2*i:16+2*i], w)
	}
	return buf
}

// TestFormat4ScenarioFixture is the "CMap format 4" numeric fixture:
// startCode=[10,30,100,0xFFFF], endCode=[20,90,153,0xFFFF],
// idDelta=[-9,-18,-27,1], idRangeOffset=[0,0,0,0] maps
// cid=10->gid=1, cid=20->gid=11, cid=30->gid=12, cid=90->gid=72,
// cid=21->gid=0.
func TestFormat4ScenarioFixture(t *testing.T) {
	data := buildFormat4Multi(
		[]uint16{10, 30, 100, 0xFFFF},
		[]uint16{20, 90, 153, 0xFFFF},
		[]int16{-9, -18, -27, 1},
		[]uint16{0, 0, 0, 0},
	)
	sub, err := decodeFormat4(data)
	require.NoError(t, err)

	require.Equal(t, uint16(1), sub.Lookup(10))
	require.Equal(t, uint16(11), sub.Lookup(20))
	require.Equal(t, uint16(12), sub.Lookup(30))
	require.Equal(t, uint16(72), sub.Lookup(90))
	require.Equal(t, uint16(0), sub.Lookup(21), "21 falls in the gap between segments 0 and 1")
}

func TestFormat0Lookup(t *testing.T) {
	data := make([]byte, 262)
	binary.BigEndian.PutUint16(data[0:2], 0)
	data[6+65] = 10 // 'A' -> gid 10

	sub, err := decodeFormat0(data)
	if err != nil {
		t.Fatal(err)
	}
	if got := sub.Lookup(65); got != 10 {
		t.Errorf("Lookup(65) = %d, want 10", got)
	}
	if got := sub.Lookup(300); got != 0 {
		t.Errorf("Lookup(300) = %d, want 0 (out of byte range)", got)
	}
}

func TestFormat6Lookup(t *testing.T) {
	buf := make([]byte, 10+2*3)
	binary.BigEndian.PutUint16(buf[0:2], 6)
	binary.BigEndian.PutUint16(buf[6:8], 100) // firstCode
	binary.BigEndian.PutUint16(buf[8:10], 3)  // entryCount
	binary.BigEndian.PutUint16(buf[10:12], 20)
	binary.BigEndian.PutUint16(buf[12:14], 21)
	binary.BigEndian.PutUint16(buf[14:16], 22)

	sub, err := decodeFormat6(buf)
	if err != nil {
		t.Fatal(err)
	}
	if got := sub.Lookup(101); got != 21 {
		t.Errorf("Lookup(101) = %d, want 21", got)
	}
	if got := sub.Lookup(99); got != 0 {
		t.Errorf("Lookup(99) = %d, want 0 (below firstCode)", got)
	}
	if got := sub.Lookup(200); got != 0 {
		t.Errorf("Lookup(200) = %d, want 0 (past entryCount)", got)
	}
}

func TestTableBestPreference(t *testing.T) {
	tab := &Table{subtables: map[key]Subtable{
		{1, 0}:  &Format0{},
		{3, 10}: &Format6{firstCode: 5, glyphIDArray: []uint16{9}},
	}}
	best := tab.Best()
	if _, ok := best.(*Format6); !ok {
		t.Errorf("Best() = %T, want *Format6 (Windows full-repertoire Unicode wins over Mac Roman)", best)
	}
}

func TestTableDecodeSkipsUnsupportedFormat(t *testing.T) {
	buf := make([]byte, 4+8)
	binary.BigEndian.PutUint16(buf[0:2], 0) // version
	binary.BigEndian.PutUint16(buf[2:4], 1) // numTables
	binary.BigEndian.PutUint16(buf[4:6], 3) // platformID
	binary.BigEndian.PutUint16(buf[6:8], 1) // encodingID
	binary.BigEndian.PutUint32(buf[8:12], 12)
	buf = append(buf, 0, 12) // format 12, unsupported: skipped, not an error

	tab, err := Decode(buf)
	if err != nil {
		t.Fatal(err)
	}
	if tab.Best() != nil {
		t.Error("Best() = non-nil, want nil when every subtable format is unsupported")
	}
}
