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

// Package arena implements a bump-pointer region allocator with a
// single bulk reclamation. All parsed PDF and font data allocates from
// an Arena; individual allocations are never freed, only the whole
// arena at once.
package arena

// defaultBlockSize is used for new blocks once the arena has grown
// beyond its initial capacity.
const defaultBlockSize = 64 * 1024

// Arena is a bump-pointer allocator. It is not safe for concurrent use;
// each document owns exactly one Arena.
type Arena struct {
	blocks [][]byte
	cur    []byte
	used   int
}

// New returns an Arena whose first block has the given capacity in
// bytes. A non-positive capacity falls back to defaultBlockSize.
func New(initialCapacity int) *Arena {
	if initialCapacity <= 0 {
		initialCapacity = defaultBlockSize
	}
	a := &Arena{}
	a.cur = make([]byte, initialCapacity)
	a.blocks = append(a.blocks, a.cur)
	return a
}

// Alloc returns a zeroed byte slice of length n, aligned to align bytes
// (align must be a power of two; 1 means no alignment constraint). The
// returned slice remains valid for the lifetime of the arena.
func (a *Arena) Alloc(n int, align int) []byte {
	if align < 1 {
		align = 1
	}

	pad := (align - a.used%align) % align
	if a.used+pad+n > len(a.cur) {
		a.growFor(n, align)
		pad = 0
	}

	a.used += pad
	out := a.cur[a.used : a.used+n : a.used+n]
	a.used += n
	return out
}

func (a *Arena) growFor(n, align int) {
	size := defaultBlockSize
	if n+align > size {
		size = n + align
	}
	a.cur = make([]byte, size)
	a.blocks = append(a.blocks, a.cur)
	a.used = 0
}

// Free releases all blocks held by the arena. Every pointer previously
// returned by Alloc becomes invalid.
func (a *Arena) Free() {
	a.blocks = nil
	a.cur = nil
	a.used = 0
}

// Bytes returns the number of bytes currently allocated across all
// blocks (not counting unused tail space of the active block).
func (a *Arena) Bytes() int {
	if len(a.blocks) == 0 {
		return 0
	}
	total := 0
	for _, b := range a.blocks[:len(a.blocks)-1] {
		total += len(b)
	}
	return total + a.used
}
