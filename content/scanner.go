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

// Package content tokenizes and parses PDF content streams: the
// sequence of operands and operators that a page (or a Form XObject)
// executes to paint itself.
package content

import (
	"fmt"
	"math"
	"strconv"

	"github.com/jvoss-raster/pdfraster/cursor"
	"github.com/jvoss-raster/pdfraster/pdf"
)

// scannerError reports a lexical error in a content stream.
type scannerError struct{ msg string }

func (e *scannerError) Error() string { return "content: " + e.msg }

// scanner breaks a content stream into pdf.Object tokens, assembling
// composite objects (arrays, dictionaries) from the flat token stream.
// The underlying byte source is a cursor.Cursor rather than an
// io.Reader: content-stream bytes arrive already decoded and held in
// memory (the stream's filter chain has already run), so there is
// nothing to buffer incrementally.
type scanner struct {
	c     *cursor.Cursor
	ahead []byte
}

// newScanner returns a scanner reading from buf.
func newScanner(buf []byte) *scanner {
	return &scanner{c: cursor.New(buf)}
}

// Next returns the next fully assembled token from the input: a
// primitive object, an Operator, or a composite Array/Dict built from a
// balanced run of "["/"]" or "<<"/">>" tokens.
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
				return nil, &scannerError{"unexpected '>>'"}
			}
			entry := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if len(entry.data)%2 != 0 {
				return nil, &scannerError{"odd number of dict entries"}
			}
			dict := pdf.Dict{}
			for i := 0; i < len(entry.data); i += 2 {
				key, ok := entry.data[i].(pdf.Name)
				if !ok {
					return nil, &scannerError{"unexpected dict key"}
				}
				dict[key] = entry.data[i+1]
			}
			obj = dict
			goto retry
		case pdf.Operator("["):
			stack = append(stack, &stackEntry{})
		case pdf.Operator("]"):
			if len(stack) == 0 || stack[len(stack)-1].isDict {
				return nil, &scannerError{"unexpected ']'"}
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
		return nil, &scannerError{"unexpected '>'"}
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
	ignoreLF := false
	for {
		b, err := s.nextByte()
		if err != nil {
			return nil, err
		}
		if ignoreLF && b == 10 {
			continue
		}
		ignoreLF = false
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
			case 'b':
				res = append(res, '\b')
			case 'f':
				res = append(res, '\f')
			case '(', ')', '\\':
				res = append(res, b)
			case 10: // LF: line continuation, drop
			case 13: // CR or CR+LF: line continuation, drop
				ignoreLF = true
			case '0', '1', '2', '3', '4', '5', '6', '7':
				oct := b - '0'
				for i := 0; i < 2; i++ {
					peeked, err := s.peek()
					if err == cursor.ErrEOF {
						break
					} else if err != nil {
						return nil, err
					}
					if peeked < '0' || peeked > '7' {
						break
					}
					s.nextByte()
					oct = oct*8 + (peeked - '0')
				}
				res = append(res, oct)
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
			return nil, &scannerError{fmt.Sprintf("invalid hex digit %q", b)}
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

// readName reads a PDF name (the leading '/' has already been consumed).
func (s *scanner) readName() (pdf.Name, error) {
	var name []byte
	for {
		b, err := s.peek()
		if err == cursor.ErrEOF {
			break
		} else if err != nil {
			return "", err
		}
		if b == '#' {
			s.nextByte()
			hi, err := s.nextByte()
			if err != nil {
				return "", err
			}
			lo, err := s.nextByte()
			if err != nil {
				return "", err
			}
			h, ok1 := hexDigit(hi)
			l, ok2 := hexDigit(lo)
			if !ok1 || !ok2 {
				return "", &scannerError{"invalid name hex escape"}
			}
			name = append(name, h<<4|l)
			continue
		}
		if class[b] != regular {
			break
		}
		s.nextByte()
		name = append(name, b)
	}
	return pdf.Name(name), nil
}

func hexDigit(b byte) (byte, bool) {
	switch {
	case b >= '0' && b <= '9':
		return b - '0', true
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10, true
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10, true
	default:
		return 0, false
	}
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
		return &scannerError{fmt.Sprintf("expected %q, got %q", want, b)}
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

// offset reports the scanner's current position in the content stream,
// accounting for any bytes that have been peeked but not consumed. Used
// by the inline-image skip scan to find the raw data region precisely.
func (s *scanner) offset() int {
	return s.c.Offset() - len(s.ahead)
}

// skipTo consumes bytes up to and including the next occurrence of the
// literal sequence delim, returning the skipped bytes (not including
// delim). Used to scan past inline image data (between ID and EI),
// which is not content-stream-tokenizable in general (it may contain
// arbitrary binary that looks like other tokens).
func (s *scanner) skipTo(delim string) ([]byte, error) {
	var skipped []byte
	for {
		b, err := s.nextByte()
		if err != nil {
			return nil, err
		}
		skipped = append(skipped, b)
		if len(skipped) >= len(delim) && string(skipped[len(skipped)-len(delim):]) == delim {
			return skipped[:len(skipped)-len(delim)], nil
		}
	}
}

func parseNumber(b []byte) (pdf.Object, error) {
	if x, err := strconv.ParseInt(string(b), 10, 64); err == nil {
		return pdf.Integer(x), nil
	}

	isSimple := true
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

	return nil, &scannerError{fmt.Sprintf("invalid number %q", b)}
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
