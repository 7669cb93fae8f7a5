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

// Package cff parses the Compact Font Format: the Header, Name INDEX,
// Top DICT INDEX, String INDEX, Global Subr INDEX, and (per selected
// font) Charset, CharStrings INDEX, Private DICT, and Local Subr
// INDEX, plus the Type 2 charstring interpreter that turns a
// CharStrings entry into a glyph outline.
package cff

import (
	"fmt"

	"github.com/jvoss-raster/pdfraster/cursor"
)

// Index is a decoded CFF INDEX: an ordered sequence of binary blobs,
// each a view into the font's own byte slice.
type Index [][]byte

// readIndex decodes one INDEX structure starting at c's current
// position. A count of 0 is a valid empty INDEX with no offset table
// or data at all.
func readIndex(c *cursor.Cursor) (Index, error) {
	count, err := c.U16BE()
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, nil
	}

	offSize, err := c.U8()
	if err != nil {
		return nil, err
	}
	if offSize < 1 || offSize > 4 {
		return nil, fmt.Errorf("cff: invalid INDEX offset size %d", offSize)
	}

	offsets := make([]uint32, int(count)+1)
	prev := uint32(1)
	for i := range offsets {
		raw, err := c.Bytes(int(offSize))
		if err != nil {
			return nil, err
		}
		var v uint32
		for _, b := range raw {
			v = v<<8 | uint32(b)
		}
		if v < prev {
			return nil, fmt.Errorf("cff: INDEX offsets not non-decreasing")
		}
		offsets[i] = v - 1
		prev = v
	}

	dataLen := int(offsets[count])
	data, err := c.Bytes(dataLen)
	if err != nil {
		return nil, err
	}

	idx := make(Index, count)
	for i := 0; i < int(count); i++ {
		idx[i] = data[offsets[i]:offsets[i+1]]
	}
	return idx, nil
}
