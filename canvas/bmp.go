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

package canvas

import (
	"encoding/binary"
	"io"
	"os"
)

// WriteBMP encodes c as an uncompressed 32-bit BGRA Windows BMP (40-byte
// BITMAPINFOHEADER, BI_RGB compression; the alpha channel is written as
// the plain 4th byte of each pixel) and writes it to w.
func (c *Canvas) WriteBMP(w io.Writer) error {
	const (
		fileHeaderSize = 14
		dibHeaderSize  = 40
		bpp            = 32
	)
	rowSize := c.Width * 4 // 32bpp rows are always a multiple of 4 bytes
	pixelDataSize := rowSize * c.Height
	fileSize := fileHeaderSize + dibHeaderSize + pixelDataSize

	fileHeader := make([]byte, fileHeaderSize)
	fileHeader[0], fileHeader[1] = 'B', 'M'
	binary.LittleEndian.PutUint32(fileHeader[2:], uint32(fileSize))
	binary.LittleEndian.PutUint32(fileHeader[10:], uint32(fileHeaderSize+dibHeaderSize))
	if _, err := w.Write(fileHeader); err != nil {
		return err
	}

	dibHeader := make([]byte, dibHeaderSize)
	binary.LittleEndian.PutUint32(dibHeader[0:], uint32(dibHeaderSize))
	binary.LittleEndian.PutUint32(dibHeader[4:], uint32(c.Width))
	binary.LittleEndian.PutUint32(dibHeader[8:], uint32(c.Height)) // positive: bottom-up rows
	binary.LittleEndian.PutUint16(dibHeader[12:], 1)               // color planes
	binary.LittleEndian.PutUint16(dibHeader[14:], bpp)
	binary.LittleEndian.PutUint32(dibHeader[20:], uint32(pixelDataSize))
	if _, err := w.Write(dibHeader); err != nil {
		return err
	}

	// BMP pixel rows run bottom-to-top, and each pixel is stored BGRA, not
	// RGBA, so neither the row order nor the channel order can be written
	// as a straight copy of Pix.
	row := make([]byte, rowSize)
	for y := c.Height - 1; y >= 0; y-- {
		for x := 0; x < c.Width; x++ {
			r, g, b, a := c.At(x, y)
			row[x*4+0] = b
			row[x*4+1] = g
			row[x*4+2] = r
			row[x*4+3] = a
		}
		if _, err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// WriteBMPFile is a convenience wrapper around WriteBMP for a filesystem
// path.
func (c *Canvas) WriteBMPFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return c.WriteBMP(f)
}
