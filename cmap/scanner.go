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

// Package cmap parses the Adobe CMap text format used by a PDF
// composite font's /Encoding stream (code -> CID) and its /ToUnicode
// stream (code -> Unicode string): begincodespacerange,
// begincidrange/begincidchar, and beginbfrange/beginbfchar blocks.
package cmap

import (
	"fmt"
	"math"
	"strconv"

	"github.com/jvoss-raster/pdfraster/cursor"
	"github.com/jvoss-raster/pdfraster/pdf"
)

// scanner tokenizes the PostScript-like subset of syntax a CMap program
// uses: names, hex and literal strings, arrays, dictionaries, numbers,
// and bare keywords (begincidrange, def, findresource, ...), each
// surfaced as a pdf.Operator. It is the same token grammar as a content
// stream, minus inline images, which a CMap program never contains.
type scanner struct {
	c     *cursor.Cursor
	ahead []byte
}

func newScanner(buf []byte) *scanner {
	return &scanner{c: cursor.New(buf)}
}

// Next returns the next fully assembled token: a primitive object, a
// bare keyword as pdf.Operator, or a composite Array/Dict assembled
// from a balanced "["/"]" or "<<"/">>" run.
func (s *scanner) Next() (pdf.Object, error) {
	type stackEntry struct {
		isDict bool
		data   []pdf.Object
	}
	var stack []*stackEntry
	for {
		obj, err := s.next()
		if err != nil {
			return nil, err
		}

	retry:
		switch obj {
		case pdf.Operator("<<"):
			stack = append(stack, &stackEntry{isDict: true})
		case pdf.Operator(">>"):
			if len(stack) == 0 || !stack[len(stack)-1].isDict {
				return nil, fmt.Errorf("cmap: unexpected '>>'")
			}
			entry := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if len(entry.data)%2 != 0 {
				return nil, fmt.Errorf("cmap: odd number of dict entries")
			}
			dict := pdf.Dict{}
			for i := 0; i < len(entry.data); i += 2 {
				key, ok := entry.data[i].(pdf.Name)
				if !ok {
					return nil, fmt.Errorf("cmap: unexpected dict key %v", entry.data[i])
				}
				dict[key] = entry.data[i+1]
			}
			obj = dict
			goto retry
		case pdf.Operator("["):
			stack = append(stack, &stackEntry{})
		case pdf.Operator("]"):
			if len(stack) == 0 || stack[len(stack)-1].isDict {
				return nil, fmt.Errorf("cmap: unexpected ']'")
			}
			entry := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			obj = pdf.Array(entry.data)
			goto retry
		default:
			if len(stack) == 0 {
				return obj, nil
			}
			stack[len(stack)-1].data = append(stack[len(stack)-1].data, obj)
		}
	}
}

func (s *scanner) next() (pdf.Object, error) {
	if err := s.skipWhiteSpace(); err != nil {
		return nil, err
	}
	b, err := s.peek()
	if err != nil {
		return nil, err
	}
	switch b {
	case '(':
		return s.readString()
	case '<':
		bb := s.peekN(2)
		if string(bb) == "<<" {
			s.nextByte()
			s.nextByte()
			return pdf.Operator("<<"), nil
		}
		return s.readHexString()
	case '>':
		bb := s.peekN(2)
		if string(bb) == ">>" {
			s.nextByte()
			s.nextByte()
			return pdf.Operator(">>"), nil
		}
		return nil, fmt.Errorf("cmap: unexpected '>'")
	case '/':
		s.nextByte()
		return s.readName()
	default:
		s.nextByte()
		opBytes := []byte{b}
		if class[b] == regular {
			for {
				b, err := s.peek()
				if err == cursor.ErrEOF {
					break
				} else if err != nil {
					return nil, err
				}
				if class[b] != regular {
					break
				}
				s.nextByte()
				opBytes = append(opBytes, b)
			}
		}

		if x, err := parseNumber(opBytes); err == nil {
			return x, nil
		}

		switch string(opBytes) {
		case "true":
			return pdf.Boolean(true), nil
		case "false":
			return pdf.Boolean(false), nil
		case "null":
			return pdf.Null{}, nil
		}

		return pdf.Operator(opBytes), nil
	}
}

func (s *scanner) readString() (pdf.String, error) {
	if err := s.skipRequiredByte('('); err != nil {
		return nil, err
	}
	var res []byte
	depth := 1
	for {
		b, err := s.nextByte()
		if err != nil {
			return nil, err
		}
		switch b {
		case '(':
			depth++
			res = append(res, b)
		case ')':
			depth--
			if depth == 0 {
				return pdf.String(res), nil
			}
			res = append(res, b)
		case '\\':
			b, err = s.nextByte()
			if err != nil {
				return nil, err
			}
			switch b {
			case 'n':
				res = append(res, '\n')
			case 'r':
				res = append(res, '\r')
			case 't':
				res = append(res, '\t')
			default:
				res = append(res, b)
			}
		default:
			res = append(res, b)
		}
	}
}

func (s *scanner) readHexString() (pdf.String, error) {
	if err := s.skipRequiredByte('<'); err != nil {
		return nil, err
	}
	var res []byte
	first := true
	var hi byte
	for {
		b, err := s.nextByte()
		if err != nil {
			return nil, err
		}
		var lo byte
		switch {
		case b == '>':
			if !first {
				res = append(res, hi)
			}
			return pdf.String(res), nil
		case b <= 32:
			continue
		case b >= '0' && b <= '9':
			lo = b - '0'
		case b >= 'A' && b <= 'F':
			lo = b - 'A' + 10
		case b >= 'a' && b <= 'f':
			lo = b - 'a' + 10
		default:
			return nil, fmt.Errorf("cmap: invalid hex digit %q", b)
		}
		if first {
			hi = lo << 4
			first = false
		} else {
			res = append(res, hi|lo)
			first = true
		}
	}
}

func (s *scanner) readName() (pdf.Name, error) {
	var name []byte
	for {
		b, err := s.peek()
		if err == cursor.ErrEOF {
			break
		} else if err != nil {
			return "", err
		}
		if class[b] != regular {
			break
		}
		s.nextByte()
		name = append(name, b)
	}
	return pdf.Name(name), nil
}

func (s *scanner) skipWhiteSpace() error {
	for {
		b, err := s.peek()
		if err != nil {
			return err
		}
		if b <= 32 {
			s.nextByte()
		} else if b == '%' {
			s.skipComment()
		} else {
			return nil
		}
	}
}

func (s *scanner) skipComment() {
	if err := s.skipRequiredByte('%'); err != nil {
		return
	}
	for {
		b, err := s.peek()
		if err != nil || b == 10 || b == 13 {
			return
		}
		s.nextByte()
	}
}

func (s *scanner) skipRequiredByte(want byte) error {
	b, err := s.nextByte()
	if err != nil {
		return err
	}
	if b != want {
		return fmt.Errorf("cmap: expected %q, got %q", want, b)
	}
	return nil
}

func (s *scanner) peek() (byte, error) {
	if len(s.ahead) == 0 {
		b, err := s.c.U8()
		if err != nil {
			return 0, err
		}
		s.ahead = append(s.ahead, b)
	}
	return s.ahead[0], nil
}

func (s *scanner) peekN(n int) []byte {
	for len(s.ahead) < n {
		b, err := s.c.U8()
		if err != nil {
			return s.ahead
		}
		s.ahead = append(s.ahead, b)
	}
	return s.ahead[:n]
}

func (s *scanner) nextByte() (byte, error) {
	if len(s.ahead) > 0 {
		b := s.ahead[0]
		s.ahead = s.ahead[1:]
		return b, nil
	}
	return s.c.U8()
}

func parseNumber(b []byte) (pdf.Object, error) {
	if x, err := strconv.ParseInt(string(b), 10, 64); err == nil {
		return pdf.Integer(x), nil
	}

	isSimple := len(b) > 0
	for i, c := range b {
		if i == 0 && (c == '+' || c == '-') {
			continue
		}
		if c == '.' {
			continue
		}
		if c < '0' || c > '9' {
			isSimple = false
			break
		}
	}
	if isSimple {
		if y, err := strconv.ParseFloat(string(b), 64); err == nil && !math.IsInf(y, 0) && !math.IsNaN(y) {
			return pdf.Real(y), nil
		}
	}

	return nil, fmt.Errorf("cmap: %q is not a number", b)
}

type characterClass byte

const (
	regular characterClass = iota
	space
	delimiter
)

var class = [256]characterClass{
	space, regular, regular, regular, regular, regular, regular, regular,
	regular, space, space, regular, space, space, regular, regular,
	regular, regular, regular, regular, regular, regular, regular, regular,
	regular, regular, regular, regular, regular, regular, regular, regular,
	space, regular, regular, regular, regular, delimiter, regular, regular,
	delimiter, delimiter, regular, regular, regular, regular, regular, delimiter,
	regular, regular, regular, regular, regular, regular, regular, regular,
	regular, regular, regular, regular, delimiter, regular, delimiter, regular,
	regular, regular, regular, regular, regular, regular, regular, regular,
	regular, regular, regular, regular, regular, regular, regular, regular,
	regular, regular, regular, regular, regular, regular, regular, regular,
	regular, regular, regular, delimiter, regular, delimiter, regular, regular,
	regular, regular, regular, regular, regular, regular, regular, regular,
	regular, regular, regular, regular, regular, regular, regular, regular,
	regular, regular, regular, regular, regular, regular, regular, regular,
	regular, regular, regular, delimiter, regular, delimiter, regular, regular,
	// 128-255 are all regular (the zero value of characterClass).
}
