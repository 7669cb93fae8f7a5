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

package sfnt

import (
	"encoding/binary"
	"fmt"
)

// readMaxp returns the number of glyphs declared by the maxp table.
func readMaxp(data []byte) (int, error) {
	if len(data) < 6 {
		return 0, &MalformedError{"maxp table too short"}
	}
	version := binary.BigEndian.Uint32(data[0:4])
	if version != 0x00005000 && version != 0x00010000 {
		return 0, fmt.Errorf("sfnt/maxp: unknown version 0x%08x", version)
	}
	return int(binary.BigEndian.Uint16(data[4:6])), nil
}

// readNumLongHorMetrics returns hhea's numberOfHMetrics field, the
// number of (advanceWidth, lsb) pairs at the start of hmtx before the
// trailing lsb-only entries.
func readNumLongHorMetrics(hhea []byte) (int, error) {
	if len(hhea) < 36 {
		return 0, &MalformedError{"hhea table too short"}
	}
	return int(binary.BigEndian.Uint16(hhea[34:36])), nil
}

// hMetrics is the decoded hmtx table: every glyph's advance width, with
// glyphs beyond numLongHorMetrics inheriting the last full metric's
// advance width and contributing only their own left side bearing.
type hMetrics struct {
	advanceWidths []uint16 // length == numLongHorMetrics
}

func readHmtx(data []byte, numGlyphs, numLongHorMetrics int) (*hMetrics, error) {
	if numLongHorMetrics <= 0 || numLongHorMetrics > numGlyphs {
		return nil, &MalformedError{"invalid numberOfHMetrics"}
	}
	if len(data) < 4*numLongHorMetrics {
		return nil, &MalformedError{"hmtx table too short"}
	}
	widths := make([]uint16, numLongHorMetrics)
	for i := 0; i < numLongHorMetrics; i++ {
		widths[i] = binary.BigEndian.Uint16(data[4*i : 4*i+2])
	}
	return &hMetrics{advanceWidths: widths}, nil
}

// AdvanceWidth returns glyph gid's advance width, in font design units.
// Glyphs beyond the last explicit hmtx entry inherit the final entry's
// advance width, per the format's "monospace tail" convention.
func (m *hMetrics) AdvanceWidth(gid int) uint16 {
	if gid < 0 {
		gid = 0
	}
	if gid >= len(m.advanceWidths) {
		return m.advanceWidths[len(m.advanceWidths)-1]
	}
	return m.advanceWidths[gid]
}
