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

import "fmt"

// dictOp identifies a DICT operator: single-byte operators (0-21) are
// their own value; two-byte operators (12 followed by an extension
// byte) are encoded as 0x0C00|ext so both fit in one map key space.
type dictOp int

const (
	opCharset     dictOp = 15
	opEncoding    dictOp = 16
	opCharStrings dictOp = 17
	opPrivate     dictOp = 18

	opSubrs          dictOp = 19
	opDefaultWidthX  dictOp = 20
	opNominalWidthX  dictOp = 21
	opCharstringType dictOp = 0x0C06
	opROS            dictOp = 0x0C1E
	opFDArray        dictOp = 0x0C24
	opFDSelect       dictOp = 0x0C25
)

// dict is a decoded Top/Private DICT: every operator's operand list,
// keyed by dictOp. Operands that name strings (e.g. opROS's two SIDs)
// are left as plain numbers here; resolving a SID to text is the
// caller's job via the String INDEX.
type dict map[dictOp][]float64

// decodeDict parses a DICT's token stream per the CFF operand/operator
// encoding: operators are bytes 0-21 (or 12+ext); operands are
// integers encoded in one of five byte-range-dependent forms, or a
// packed-BCD real number introduced by byte 30.
func decodeDict(data []byte) (dict, error) {
	d := dict{}
	var stack []float64

	for len(data) > 0 {
		b0 := data[0]
		switch {
		case b0 == 12:
			if len(data) < 2 {
				return nil, fmt.Errorf("cff: truncated two-byte DICT operator")
			}
			d[dictOp(0x0C00|int(data[1]))] = stack
			stack = nil
			data = data[2:]
		case b0 <= 21:
			d[dictOp(b0)] = stack
			stack = nil
			data = data[1:]
		case b0 == 28:
			if len(data) < 3 {
				return nil, fmt.Errorf("cff: truncated DICT int16 operand")
			}
			v := int16(uint16(data[1])<<8 | uint16(data[2]))
			stack = append(stack, float64(v))
			data = data[3:]
		case b0 == 29:
			if len(data) < 5 {
				return nil, fmt.Errorf("cff: truncated DICT int32 operand")
			}
			v := int32(uint32(data[1])<<24 | uint32(data[2])<<16 | uint32(data[3])<<8 | uint32(data[4]))
			stack = append(stack, float64(v))
			data = data[5:]
		case b0 == 30:
			rest, v, err := decodeReal(data[1:])
			if err != nil {
				return nil, err
			}
			stack = append(stack, v)
			data = rest
		case b0 >= 32 && b0 <= 246:
			stack = append(stack, float64(int(b0)-139))
			data = data[1:]
		case b0 >= 247 && b0 <= 250:
			if len(data) < 2 {
				return nil, fmt.Errorf("cff: truncated DICT operand")
			}
			stack = append(stack, float64((int(b0)-247)*256+int(data[1])+108))
			data = data[2:]
		case b0 >= 251 && b0 <= 254:
			if len(data) < 2 {
				return nil, fmt.Errorf("cff: truncated DICT operand")
			}
			stack = append(stack, float64(-(int(b0)-251)*256-int(data[1])-108))
			data = data[2:]
		default: // 22-27, 31, 255 are reserved
			return nil, fmt.Errorf("cff: reserved DICT token %d", b0)
		}
	}
	if len(stack) > 0 {
		return nil, fmt.Errorf("cff: DICT ends mid-operator with unconsumed operands")
	}
	return d, nil
}

// decodeReal decodes a packed-BCD real number (the bytes following the
// 30 introducer) and returns the remaining data past its terminator
// nibble.
func decodeReal(data []byte) ([]byte, float64, error) {
	var s []byte
	for {
		if len(data) == 0 {
			return nil, 0, fmt.Errorf("cff: truncated DICT real operand")
		}
		b := data[0]
		data = data[1:]
		for _, nibble := range [2]byte{b >> 4, b & 0x0F} {
			switch nibble {
			case 0x0, 0x1, 0x2, 0x3, 0x4, 0x5, 0x6, 0x7, 0x8, 0x9:
				s = append(s, '0'+nibble)
			case 0xA:
				s = append(s, '.')
			case 0xB:
				s = append(s, 'e')
			case 0xC:
				s = append(s, 'e', '-')
			case 0xD:
				return nil, 0, fmt.Errorf("cff: reserved real nibble 0xD")
			case 0xE:
				s = append(s, '-')
			case 0xF:
				v, err := parseFloat(s)
				if err != nil {
					return nil, 0, err
				}
				return data, v, nil
			}
		}
	}
}

func parseFloat(s []byte) (float64, error) {
	if len(s) == 0 {
		return 0, nil
	}
	var v float64
	_, err := fmt.Sscanf(string(s), "%g", &v)
	if err != nil {
		return 0, fmt.Errorf("cff: invalid real operand %q: %w", s, err)
	}
	return v, nil
}

// getInt returns op's first operand as an int, or def if op is absent.
func (d dict) getInt(op dictOp, def int) int {
	v, ok := d[op]
	if !ok || len(v) == 0 {
		return def
	}
	return int(v[0])
}

// getPair returns op's first two operands, and whether op was present
// with at least two operands (used for Private's {size, offset} and
// ROS's {registry SID, ordering SID}).
func (d dict) getPair(op dictOp) (int, int, bool) {
	v, ok := d[op]
	if !ok || len(v) < 2 {
		return 0, 0, false
	}
	return int(v[0]), int(v[1]), true
}
