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
	"fmt"

	"github.com/jvoss-raster/pdfraster/cursor"
	"github.com/jvoss-raster/pdfraster/pdf"
)

// Read parses the Adobe CMap text syntax from data, producing the
// codespace and code->CID/code->Unicode tables its begin*/end* blocks
// declare. Read tolerates and skips PostScript it doesn't understand
// (procedure bodies, resource lookups): a CMap program is PostScript,
// and only a handful of its operators carry data this renderer needs.
func Read(data []byte) (*Info, error) {
	s := newScanner(data)
	info := &Info{}

	var pendingName pdf.Name
	for {
		tok, err := s.Next()
		if err == cursor.ErrEOF {
			break
		}
		if err != nil {
			break // truncated/malformed trailing PostScript: keep whatever was parsed so far
		}

		switch t := tok.(type) {
		case pdf.Name:
			if pendingName == "CMapName" {
				info.Name = string(t)
				pendingName = ""
				continue
			}
			pendingName = t

		case pdf.Operator:
			switch string(t) {
			case "begincodespacerange":
				if err := readCodespaceRanges(s, info); err != nil {
					return nil, err
				}
			case "begincidrange":
				if err := readCIDRanges(s, info); err != nil {
					return nil, err
				}
			case "begincidchar":
				if err := readCIDChars(s, info); err != nil {
					return nil, err
				}
			case "beginbfrange":
				if err := readBFRanges(s, info); err != nil {
					return nil, err
				}
			case "beginbfchar":
				if err := readBFChars(s, info); err != nil {
					return nil, err
				}
			}
			pendingName = ""

		default:
			if pendingName == "" {
				continue
			}
			switch pendingName {
			case "CMapName":
				if name, ok := tok.(pdf.Name); ok {
					info.Name = string(name)
				}
			case "WMode":
				if n, ok := tok.(pdf.Integer); ok {
					info.WMode = int(n)
				}
			case "CIDSystemInfo":
				if dict, ok := tok.(pdf.Dict); ok {
					info.ROS = readROS(dict)
				}
			}
			pendingName = ""
		}
	}

	if len(info.CodespaceRanges) == 0 {
		return nil, fmt.Errorf("cmap: no begincodespacerange block found")
	}
	return info, nil
}

func readROS(dict pdf.Dict) CIDSystemInfo {
	var ros CIDSystemInfo
	if v, ok := dict["Registry"].(pdf.String); ok {
		ros.Registry = string(v)
	}
	if v, ok := dict["Ordering"].(pdf.String); ok {
		ros.Ordering = string(v)
	}
	if v, ok := dict["Supplement"].(pdf.Integer); ok {
		ros.Supplement = int32(v)
	}
	return ros
}

func readCodespaceRanges(s *scanner, info *Info) error {
	for {
		tok, err := s.Next()
		if err != nil {
			return err
		}
		if op, ok := tok.(pdf.Operator); ok && string(op) == "endcodespacerange" {
			return nil
		}
		low, ok := tok.(pdf.String)
		if !ok {
			continue // stray token between entries; ignore
		}
		high, err := s.Next()
		if err != nil {
			return err
		}
		highStr, ok := high.(pdf.String)
		if !ok || len(highStr) != len(low) {
			return fmt.Errorf("cmap: malformed begincodespacerange entry")
		}
		info.CodespaceRanges = append(info.CodespaceRanges, CodespaceRange{
			Low:  []byte(low),
			High: []byte(highStr),
		})
	}
}

func readCIDRanges(s *scanner, info *Info) error {
	for {
		tok, err := s.Next()
		if err != nil {
			return err
		}
		if op, ok := tok.(pdf.Operator); ok && string(op) == "endcidrange" {
			return nil
		}
		lowStr, ok := tok.(pdf.String)
		if !ok {
			continue
		}
		highTok, err := s.Next()
		if err != nil {
			return err
		}
		highStr, ok := highTok.(pdf.String)
		if !ok {
			return fmt.Errorf("cmap: malformed begincidrange entry")
		}
		cidTok, err := s.Next()
		if err != nil {
			return err
		}
		cid, ok := cidTok.(pdf.Integer)
		if !ok {
			return fmt.Errorf("cmap: begincidrange entry's CID is not an integer")
		}
		info.cidRanges = append(info.cidRanges, cidRange{
			low:    codeFromBytes(lowStr),
			high:   codeFromBytes(highStr),
			nbytes: len(lowStr),
			base:   int32(cid),
		})
	}
}

func readCIDChars(s *scanner, info *Info) error {
	for {
		tok, err := s.Next()
		if err != nil {
			return err
		}
		if op, ok := tok.(pdf.Operator); ok && string(op) == "endcidchar" {
			return nil
		}
		codeStr, ok := tok.(pdf.String)
		if !ok {
			continue
		}
		cidTok, err := s.Next()
		if err != nil {
			return err
		}
		cid, ok := cidTok.(pdf.Integer)
		if !ok {
			return fmt.Errorf("cmap: begincidchar entry's CID is not an integer")
		}
		info.cidSingles = append(info.cidSingles, cidSingle{
			code:   codeFromBytes(codeStr),
			nbytes: len(codeStr),
			cid:    int32(cid),
		})
	}
}

func readBFRanges(s *scanner, info *Info) error {
	for {
		tok, err := s.Next()
		if err != nil {
			return err
		}
		if op, ok := tok.(pdf.Operator); ok && string(op) == "endbfrange" {
			return nil
		}
		lowStr, ok := tok.(pdf.String)
		if !ok {
			continue
		}
		highTok, err := s.Next()
		if err != nil {
			return err
		}
		highStr, ok := highTok.(pdf.String)
		if !ok {
			return fmt.Errorf("cmap: malformed beginbfrange entry")
		}
		dstTok, err := s.Next()
		if err != nil {
			return err
		}

		nbytes := len(lowStr)
		low := codeFromBytes(lowStr)
		high := codeFromBytes(highStr)

		switch dst := dstTok.(type) {
		case pdf.String:
			info.uniRanges = append(info.uniRanges, uniRange{
				low: low, high: high, nbytes: nbytes,
				dstStart: []byte(dst),
			})
		case pdf.Array:
			for i, elem := range dst {
				str, ok := elem.(pdf.String)
				if !ok {
					continue
				}
				code := low + uint32(i)
				if code > high {
					break
				}
				info.uniSingles = append(info.uniSingles, uniSingle{
					code: code, nbytes: nbytes, dst: utf16BEToString(str),
				})
			}
		default:
			return fmt.Errorf("cmap: beginbfrange destination is neither a string nor an array")
		}
	}
}

func readBFChars(s *scanner, info *Info) error {
	for {
		tok, err := s.Next()
		if err != nil {
			return err
		}
		if op, ok := tok.(pdf.Operator); ok && string(op) == "endbfchar" {
			return nil
		}
		codeStr, ok := tok.(pdf.String)
		if !ok {
			continue
		}
		dstTok, err := s.Next()
		if err != nil {
			return err
		}
		dstStr, ok := dstTok.(pdf.String)
		if !ok {
			return fmt.Errorf("cmap: beginbfchar destination is not a string")
		}
		info.uniSingles = append(info.uniSingles, uniSingle{
			code:   codeFromBytes(codeStr),
			nbytes: len(codeStr),
			dst:    utf16BEToString(dstStr),
		})
	}
}
