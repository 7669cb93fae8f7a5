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

// Package head reads the SFNT "head" table: units-per-em, the font's
// design-space bounding box, and whether "loca" uses short or long
// offsets.
package head

import (
	"encoding/binary"
	"fmt"
)

const magicNumber = 0x5F0F3CF5

// Info holds the fields of the head table a renderer needs.
type Info struct {
	UnitsPerEm     uint16
	XMin, YMin     int16
	XMax, YMax     int16
	HasLongOffsets bool // indexToLocFormat == 1
}

// ErrInvalidMagic is returned when the table's magic number field does
// not match the fixed constant every SFNT head table must carry.
type ErrInvalidMagic struct{ Got uint32 }

func (e *ErrInvalidMagic) Error() string {
	return fmt.Sprintf("sfnt/head: invalid magic number 0x%08x", e.Got)
}

// Read decodes a head table. data must be at least 54 bytes, the fixed
// length of the table.
func Read(data []byte) (*Info, error) {
	if len(data) < 54 {
		return nil, fmt.Errorf("sfnt/head: table too short (%d bytes)", len(data))
	}

	version := binary.BigEndian.Uint32(data[0:4])
	if version != 0x00010000 {
		return nil, fmt.Errorf("sfnt/head: unsupported table version 0x%08x", version)
	}

	magic := binary.BigEndian.Uint32(data[12:16])
	if magic != magicNumber {
		return nil, &ErrInvalidMagic{Got: magic}
	}

	indexToLocFormat := int16(binary.BigEndian.Uint16(data[50:52]))
	if indexToLocFormat != 0 && indexToLocFormat != 1 {
		return nil, fmt.Errorf("sfnt/head: invalid indexToLocFormat %d", indexToLocFormat)
	}

	return &Info{
		UnitsPerEm:     binary.BigEndian.Uint16(data[18:20]),
		XMin:           int16(binary.BigEndian.Uint16(data[36:38])),
		YMin:           int16(binary.BigEndian.Uint16(data[38:40])),
		XMax:           int16(binary.BigEndian.Uint16(data[40:42])),
		YMax:           int16(binary.BigEndian.Uint16(data[42:44])),
		HasLongOffsets: indexToLocFormat == 1,
	}, nil
}
