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

import "testing"

const identityLikeCMap = `
/CIDInit /ProcSet findresource begin
12 dict begin
begincmap
/CIDSystemInfo << /Registry (Adobe) /Ordering (Identity) /Supplement 0 >> def
/CMapName /Test-Identity-H def
/WMode 0 def
1 begincodespacerange
<0000> <FFFF>
endcodespacerange
2 begincidrange
<0000> <00FF> 0
<0100> <01FF> 256
endcidrange
1 begincidchar
<0300> 999
endcidchar
endcmap
CMapName currentdict /CMap defineresource pop
end
end
`

func TestReadCIDCMap(t *testing.T) {
	info, err := Read([]byte(identityLikeCMap))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if info.Name != "Test-Identity-H" {
		t.Fatalf("Name = %q", info.Name)
	}
	if info.ROS.Registry != "Adobe" || info.ROS.Ordering != "Identity" || info.ROS.Supplement != 0 {
		t.Fatalf("ROS = %+v", info.ROS)
	}
	if len(info.CodespaceRanges) != 1 {
		t.Fatalf("CodespaceRanges = %+v", info.CodespaceRanges)
	}

	code, n, ok := info.DecodeNext([]byte{0x01, 0x23, 0x45})
	if !ok || n != 2 || code != 0x0123 {
		t.Fatalf("DecodeNext = %d, %d, %v", code, n, ok)
	}

	cid, ok := info.CID(0x00AB, 2)
	if !ok || cid != 0xAB {
		t.Fatalf("CID(0x00AB) = %d, %v", cid, ok)
	}
	cid, ok = info.CID(0x0105, 2)
	if !ok || cid != 256+5 {
		t.Fatalf("CID(0x0105) = %d, %v", cid, ok)
	}
	cid, ok = info.CID(0x0300, 2)
	if !ok || cid != 999 {
		t.Fatalf("CID(0x0300) = %d, %v", cid, ok)
	}
	if _, ok := info.CID(0xFFFF, 2); ok {
		t.Fatalf("CID(0xFFFF) unexpectedly found")
	}
}

const toUnicodeCMap = `
/CIDInit /ProcSet findresource begin
12 dict begin
begincmap
1 begincodespacerange
<0000> <FFFF>
endcodespacerange
2 beginbfchar
<0041> <0041>
<00E9> <00E9>
endbfchar
1 beginbfrange
<0061> <0063> <0061>
endbfrange
1 beginbfrange
<0100> <0102> [<0041> <0042> <0043>]
endbfrange
endcmap
end
end
`

func TestReadToUnicodeCMap(t *testing.T) {
	info, err := Read([]byte(toUnicodeCMap))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	if s, ok := info.Unicode(0x0041, 2); !ok || s != "A" {
		t.Fatalf("Unicode(0x0041) = %q, %v", s, ok)
	}
	if s, ok := info.Unicode(0x00E9, 2); !ok || s != "é" {
		t.Fatalf("Unicode(0x00E9) = %q, %v", s, ok)
	}
	if s, ok := info.Unicode(0x0062, 2); !ok || s != "b" {
		t.Fatalf("Unicode(0x0062) = %q, %v", s, ok)
	}
	if s, ok := info.Unicode(0x0101, 2); !ok || s != "B" {
		t.Fatalf("Unicode(0x0101) = %q, %v", s, ok)
	}
	if _, ok := info.Unicode(0x9999, 2); ok {
		t.Fatalf("Unicode(0x9999) unexpectedly found")
	}
}

func TestReadRequiresCodespaceRange(t *testing.T) {
	_, err := Read([]byte("begincidrange\n<00> <FF> 0\nendcidrange\n"))
	if err == nil {
		t.Fatalf("expected error for CMap with no codespace range")
	}
}

func TestCodespaceRangeMultiLength(t *testing.T) {
	src := `
1 begincodespacerange
<00> <80>
<8100> <FEFF>
endcodespacerange
1 begincidrange
<00> <7F> 1
endcidrange
1 begincidchar
<8140> 500
endcidchar
`
	info, err := Read([]byte(src))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	code, n, ok := info.DecodeNext([]byte{0x41})
	if !ok || n != 1 || code != 0x41 {
		t.Fatalf("DecodeNext(single) = %d, %d, %v", code, n, ok)
	}
	code, n, ok = info.DecodeNext([]byte{0x81, 0x40})
	if !ok || n != 2 || code != 0x8140 {
		t.Fatalf("DecodeNext(double) = %d, %d, %v", code, n, ok)
	}

	cid, ok := info.CID(0x41, 1)
	if !ok || cid != 0x42 {
		t.Fatalf("CID(single) = %d, %v", cid, ok)
	}
	cid, ok = info.CID(0x8140, 2)
	if !ok || cid != 500 {
		t.Fatalf("CID(double) = %d, %v", cid, ok)
	}
}
