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

package cff

import (
	"fmt"

	"github.com/jvoss-raster/pdfraster/cursor"
)

// readCharset decodes a Charset: for each of the numGlyphs glyphs
// (including an implicit .notdef at index 0, not itself recorded in
// the table), the SID it names, or for a CID-keyed font, the CID it
// is. The returned slice always has numGlyphs entries, index 0 fixed
// at 0 (.notdef).
func readCharset(c *cursor.Cursor, numGlyphs int) ([]int32, error) {
	if numGlyphs < 1 {
		return nil, fmt.Errorf("cff: invalid glyph count %d", numGlyphs)
	}

	format, err := c.U8()
	if err != nil {
		return nil, err
	}

	ids := make([]int32, 1, numGlyphs)
	switch format {
	case 0:
		for len(ids) < numGlyphs {
			sid, err := c.U16BE()
			if err != nil {
				return nil, err
			}
			ids = append(ids, int32(sid))
		}
	case 1:
		for len(ids) < numGlyphs {
			first, err := c.U16BE()
			if err != nil {
				return nil, err
			}
			nLeft, err := c.U8()
			if err != nil {
				return nil, err
			}
			for i := int32(0); i <= int32(nLeft) && len(ids) < numGlyphs; i++ {
				ids = append(ids, int32(first)+i)
			}
		}
	case 2:
		for len(ids) < numGlyphs {
			first, err := c.U16BE()
			if err != nil {
				return nil, err
			}
			nLeft, err := c.U16BE()
			if err != nil {
				return nil, err
			}
			for i := int32(0); i <= int32(nLeft) && len(ids) < numGlyphs; i++ {
				ids = append(ids, int32(first)+i)
			}
		}
	default:
		return nil, fmt.Errorf("cff: unsupported charset format %d", format)
	}

	if len(ids) != numGlyphs {
		return nil, fmt.Errorf("cff: charset has %d entries, want %d", len(ids), numGlyphs)
	}
	return ids, nil
}

// predefinedISOAdobeCharset is charset ID 0: SIDs 1..228 in order, the
// standard Latin-text glyph complement. Most embedded subset fonts
// carry an explicit charset instead, but the predefined charsets are
// still legal Top DICT Charset offsets (0, 1, or 2).
func predefinedISOAdobeCharset(numGlyphs int) []int32 {
	ids := make([]int32, numGlyphs)
	for i := range ids {
		ids[i] = int32(i)
	}
	return ids
}
