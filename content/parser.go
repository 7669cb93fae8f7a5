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

package content

import (
	"github.com/jvoss-raster/pdfraster/cursor"
	"github.com/jvoss-raster/pdfraster/pdf"
)

// Logger receives warnings for content-stream conditions that are
// recoverable, such as unknown operators. Operand counts are not
// checked against operandCounts. A nil Logger silently drops them.
type Logger interface {
	Warnf(format string, args ...any)
}

// Parse tokenizes and groups buf into a sequence of Operations,
// following PDF's postfix convention: operands accumulate on an
// implicit stack until an operator is seen, at which point all
// operands accumulated since the last operator belong to it.
//
// Unknown operators are dropped with a warning (via log, if non-nil)
// rather than failing the whole stream: a single misbehaving operator
// in an otherwise-valid content stream should not prevent rendering the
// rest of the page.
func Parse(buf []byte, log Logger) ([]Operation, error) {
	s := newScanner(buf)
	var ops []Operation
	var operands []pdf.Object

	for {
		tok, err := s.Next()
		if err == cursor.ErrEOF {
			break
		}
		if err != nil {
			return ops, err
		}

		op, isOperator := tok.(pdf.Operator)
		if !isOperator {
			operands = append(operands, tok)
			continue
		}

		kind := Kind(op)
		if kind == OpBeginInlineImage {
			img, err := parseInlineImage(s)
			if err != nil {
				return ops, err
			}
			ops = append(ops, img)
			operands = nil
			continue
		}

		if _, known := operandCounts[kind]; !known {
			switch kind {
			case OpSetColorStroke, OpSetColorStrokeN,
				OpSetColorNonstroke, OpSetColorNonstrokeN:
				// variable-arity color operators (1-4 numbers, plus an
				// optional trailing pattern name for SCN/scn): fall
				// through, all accumulated operands belong to them.
			default:
				if log != nil {
					log.Warnf("content: dropping unknown operator %q with %d operands", op, len(operands))
				}
				operands = nil
				continue
			}
		}

		ops = append(ops, Operation{Kind: kind, Operands: operands})
		operands = nil
	}
	return ops, nil
}

// parseInlineImage consumes a BI ... ID ... EI run. The dictionary
// portion between BI and ID is ordinary content-stream syntax (name/
// value pairs); the portion between ID and EI is raw, filtered image
// data that must not be tokenized, since it may contain arbitrary bytes
// that look like other operators or delimiters.
func parseInlineImage(s *scanner) (Operation, error) {
	dict := pdf.Dict{}
	for {
		keyTok, err := s.Next()
		if err != nil {
			return Operation{}, err
		}
		if op, ok := keyTok.(pdf.Operator); ok && op == "ID" {
			break
		}
		key, ok := keyTok.(pdf.Name)
		if !ok {
			return Operation{}, &scannerError{"inline image: expected a name key"}
		}
		val, err := s.Next()
		if err != nil {
			return Operation{}, err
		}
		dict[key] = val
	}

	// A single whitespace byte separates ID from the raw data; consume it.
	if _, err := s.nextByte(); err != nil {
		return Operation{}, err
	}
	data, err := s.skipTo("EI")
	if err != nil {
		return Operation{}, err
	}

	return Operation{Kind: OpInlineImage, InlineImageDict: dict, InlineImageData: data}, nil
}
