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

// CIDSystemInfo identifies a character collection (e.g. Adobe-Japan1).
type CIDSystemInfo struct {
	Registry   string
	Ordering   string
	Supplement int32
}

// CodespaceRange is one byte-prefix range a CMap declares as a valid
// character code: any code whose bytes fall within [Low[i], High[i]]
// at every position i has this range's byte length.
type CodespaceRange struct {
	Low, High []byte
}

func (r CodespaceRange) matches(s []byte) bool {
	if len(s) < len(r.Low) {
		return false
	}
	for i := range r.Low {
		if s[i] < r.Low[i] || s[i] > r.High[i] {
			return false
		}
	}
	return true
}

type cidRange struct {
	low, high uint32
	nbytes    int
	base      int32
}

type cidSingle struct {
	code   uint32
	nbytes int
	cid    int32
}

type uniRange struct {
	low, high uint32
	nbytes    int
	dstStart  []byte
}

type uniSingle struct {
	code   uint32
	nbytes int
	dst    string
}

// Info is a fully parsed Adobe CMap: its codespace (determining how
// many bytes of a content string make up the next code) plus whichever
// of the code->CID and code->Unicode maps the source CMap carried. A
// composite font's /Encoding CMap populates the CID tables; a
// /ToUnicode CMap populates the Unicode tables. Nothing prevents a
// single Info from carrying both, since the text syntax is identical.
type Info struct {
	Name  string
	ROS   CIDSystemInfo
	WMode int

	CodespaceRanges []CodespaceRange

	cidRanges  []cidRange
	cidSingles []cidSingle
	uniRanges  []uniRange
	uniSingles []uniSingle
}

// Identity returns the predefined Identity-H/V CMap: a single two-byte
// codespace covering 0x0000-0xFFFF, with every code mapping to the CID
// of the same numeric value.
func Identity() *Info {
	return &Info{
		Name: "Identity-H",
		CodespaceRanges: []CodespaceRange{
			{Low: []byte{0x00, 0x00}, High: []byte{0xFF, 0xFF}},
		},
		cidRanges: []cidRange{
			{low: 0, high: 0xFFFF, nbytes: 2, base: 0},
		},
	}
}

func codeFromBytes(b []byte) uint32 {
	var v uint32
	for _, c := range b {
		v = v<<8 | uint32(c)
	}
	return v
}

// DecodeNext greedy-prefix-matches the start of s against the CMap's
// codespace ranges and returns the resulting code and the number of
// bytes it consumed. ok is false if no codespace range matches s's
// leading bytes at all, in which case the caller should resynchronize
// by skipping a single byte.
func (m *Info) DecodeNext(s []byte) (code uint32, nbytes int, ok bool) {
	for _, r := range m.CodespaceRanges {
		if r.matches(s) {
			return codeFromBytes(s[:len(r.Low)]), len(r.Low), true
		}
	}
	if len(s) == 0 {
		return 0, 0, false
	}
	return 0, 1, false
}

// CID looks up code's CID via the CMap's begincidchar/begincidrange
// entries.
func (m *Info) CID(code uint32, nbytes int) (int32, bool) {
	for _, e := range m.cidSingles {
		if e.nbytes == nbytes && e.code == code {
			return e.cid, true
		}
	}
	for _, r := range m.cidRanges {
		if r.nbytes == nbytes && code >= r.low && code <= r.high {
			return r.base + int32(code-r.low), true
		}
	}
	return 0, false
}

// Unicode looks up code's destination string via the CMap's
// beginbfchar/beginbfrange entries.
func (m *Info) Unicode(code uint32, nbytes int) (string, bool) {
	for _, e := range m.uniSingles {
		if e.nbytes == nbytes && e.code == code {
			return e.dst, true
		}
	}
	for _, r := range m.uniRanges {
		if r.nbytes == nbytes && code >= r.low && code <= r.high {
			offset := code - r.low
			return shiftUTF16(r.dstStart, offset), true
		}
	}
	return "", false
}

// shiftUTF16 adds offset to the integer value of the big-endian UTF-16
// bytes dst and decodes the result back to a string: the bfrange
// convention used when a destination string (rather than an array) is
// given for a range, incrementing the last code unit for each
// successive code in the range.
func shiftUTF16(dst []byte, offset uint32) string {
	if len(dst) == 0 {
		return ""
	}
	v := codeFromBytes(dst) + offset
	shifted := make([]byte, len(dst))
	for i := len(shifted) - 1; i >= 0; i-- {
		shifted[i] = byte(v)
		v >>= 8
	}
	return utf16BEToString(shifted)
}
