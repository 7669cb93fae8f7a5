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
	"golang.org/x/text/encoding/unicode"
)

// utf16BEToString decodes b, the big-endian UTF-16 bytes a ToUnicode
// CMap's destination string always carries, to a Go string. A decode
// failure (an odd byte count, a lone surrogate) falls back to the raw
// bytes rather than dropping the mapping entirely. A fresh decoder is
// used per call: encoding.Decoder carries transform state that must not
// be shared across unrelated strings.
func utf16BEToString(b []byte) string {
	dec := unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder()
	s, err := dec.String(string(b))
	if err != nil {
		return string(b)
	}
	return s
}
