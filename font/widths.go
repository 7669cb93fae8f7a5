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

package font

import "github.com/jvoss-raster/pdfraster/pdf"

// simpleWidths answers a simple font's per-code advance width from its
// FirstChar/LastChar/Widths triple, falling back to missingWidth for a
// code outside that range (PDF 32000-1:2008, 9.2.2).
type simpleWidths struct {
	firstChar    int
	widths       []float64
	missingWidth float64
}

func newSimpleWidths(dict *pdf.FontDict, missingWidth float64) simpleWidths {
	w := simpleWidths{missingWidth: missingWidth}
	if dict.FirstChar.Present {
		w.firstChar = int(dict.FirstChar.Value)
	}
	if dict.Widths.Present {
		w.widths = dict.Widths.Value
	}
	return w
}

func (w simpleWidths) width(code int) float64 {
	i := code - w.firstChar
	if i < 0 || i >= len(w.widths) {
		return w.missingWidth
	}
	return w.widths[i]
}

// cidWidths answers a CIDFont's per-CID advance width from its /DW
// default and /W array of width runs (PDF 32000-1:2008, 9.7.4.3). Each
// /W run is either [cFirst cLast w], a flat width for every CID in the
// inclusive range, or [cFirst [w1 w2 ...]], one width per consecutive
// CID starting at cFirst.
type cidWidths struct {
	defaultWidth float64
	single       map[int32]float64
	ranges       []cidWidthRange
}

type cidWidthRange struct {
	first, last int32
	width       float64
}

func newCIDWidths(dict *pdf.CIDFontDict) cidWidths {
	w := cidWidths{defaultWidth: 1000, single: map[int32]float64{}}
	if dict.DW.Present {
		w.defaultWidth = dict.DW.Value
	}
	if !dict.W.Present {
		return w
	}

	arr := dict.W.Value
	for i := 0; i < len(arr); {
		first, ok := pdf.AsInteger(arr[i])
		if !ok || i+1 >= len(arr) {
			break
		}
		switch next := arr[i+1].(type) {
		case pdf.Array:
			for j, wObj := range next {
				if width, ok := pdf.AsNumber(wObj); ok {
					w.single[int32(first)+int32(j)] = width
				}
			}
			i += 2
		default:
			if i+2 >= len(arr) {
				i = len(arr)
				break
			}
			last, lok := pdf.AsInteger(arr[i+1])
			width, wok := pdf.AsNumber(arr[i+2])
			if lok && wok {
				w.ranges = append(w.ranges, cidWidthRange{int32(first), int32(last), width})
			}
			i += 3
		}
	}
	return w
}

func (w cidWidths) width(cid int32) float64 {
	if width, ok := w.single[cid]; ok {
		return width
	}
	for _, r := range w.ranges {
		if cid >= r.first && cid <= r.last {
			return r.width
		}
	}
	return w.defaultWidth
}
