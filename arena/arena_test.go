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

package arena

import "testing"

func TestAllocGrows(t *testing.T) {
	a := New(16)
	b1 := a.Alloc(10, 1)
	b2 := a.Alloc(10, 1) // forces growth past the 16-byte first block
	for i := range b1 {
		b1[i] = 1
	}
	for i := range b2 {
		b2[i] = 2
	}
	if b1[0] != 1 || b2[0] != 2 {
		t.Fatalf("allocations overlapped or were corrupted")
	}
}

func TestTypedAlloc(t *testing.T) {
	a := New(64)
	type point struct{ X, Y int32 }
	p := New[point](a)
	p.X, p.Y = 3, 4
	q := New[point](a)
	if q.X != 0 || q.Y != 0 {
		t.Fatalf("New[point]() not zeroed: %+v", *q)
	}
	if p.X != 3 || p.Y != 4 {
		t.Fatalf("p overwritten: %+v", *p)
	}
}

func TestFree(t *testing.T) {
	a := New(16)
	a.Alloc(8, 1)
	a.Free()
	if a.Bytes() != 0 {
		t.Fatalf("Bytes() after Free() = %d, want 0", a.Bytes())
	}
}
