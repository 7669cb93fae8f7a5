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

// readFDSelect decodes a CID-keyed font's FDSelect table: for each of
// numGlyphs glyphs, which entry of the FDArray (its Font DICT and
// Private DICT) governs that glyph's width defaults and local subrs.
func readFDSelect(c *cursor.Cursor, numGlyphs int) ([]uint8, error) {
	format, err := c.U8()
	if err != nil {
		return nil, err
	}

	fds := make([]uint8, numGlyphs)
	switch format {
	case 0:
		for i := range fds {
			fd, err := c.U8()
			if err != nil {
				return nil, err
			}
			fds[i] = fd
		}
	case 3:
		nRanges, err := c.U16BE()
		if err != nil {
			return nil, err
		}
		first, err := c.U16BE()
		if err != nil {
			return nil, err
		}
		for i := 0; i < int(nRanges); i++ {
			fd, err := c.U8()
			if err != nil {
				return nil, err
			}
			next, err := c.U16BE()
			if err != nil {
				return nil, err
			}
			if int(next) > numGlyphs || int(first) > int(next) {
				return nil, fmt.Errorf("cff: FDSelect range out of order")
			}
			for gid := first; gid < next; gid++ {
				fds[gid] = fd
			}
			first = next
		}
		if int(first) != numGlyphs {
			return nil, fmt.Errorf("cff: FDSelect sentinel %d does not match glyph count %d", first, numGlyphs)
		}
	default:
		return nil, fmt.Errorf("cff: unsupported FDSelect format %d", format)
	}
	return fds, nil
}
