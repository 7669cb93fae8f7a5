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

// Package sfnt parses the SFNT container format (TrueType and OpenType
// fonts with TrueType outlines): the table directory, the tables a
// content-stream renderer actually needs (head, maxp, hhea/hmtx, cmap,
// loca, glyf), and checksum validation. CFF-flavored outlines are the
// cff package's job; sfnt only recognizes the TrueType/Apple scaler
// types.
package sfnt

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Scaler types recognized in the first four bytes of an SFNT file.
const (
	ScalerTypeTrueType = 0x00010000
	ScalerTypeApple    = 0x74727565 // "true"
	ScalerTypeOpenType = 0x4F54544F // "OTTO" (CFF-flavored, not handled here)
)

// Record locates one table's bytes within the font file and records its
// directory-declared checksum for validation.
type Record struct {
	Checksum uint32
	Offset   uint32
	Length   uint32
}

// Directory is a parsed SFNT table directory: the scaler type and a
// tag-indexed map of table records.
type Directory struct {
	ScalerType uint32
	Tables     map[string]Record
}

// MalformedError reports a structural problem with an SFNT file: an
// invalid directory or a missing required table. Checksum mismatches are
// reported as ChecksumMismatchError.
type MalformedError struct {
	Reason string
}

func (e *MalformedError) Error() string { return "sfnt: " + e.Reason }

// ChecksumMismatchError reports that a table's computed checksum does
// not match the value recorded in its directory entry.
type ChecksumMismatchError struct {
	Tag string
}

func (e *ChecksumMismatchError) Error() string {
	return fmt.Sprintf("sfnt: checksum mismatch in table %q", e.Tag)
}

// ReadDirectory parses the file header and table directory from data and
// validates every table's checksum, per checksumOpt. The "head" table's
// checksum is always computed with its own checksumAdjustment field
// (bytes 8-11) zeroed, since that field is defined to make the whole
// file's checksum come out to a fixed constant and therefore cannot
// itself be covered by a simple per-table check.
func ReadDirectory(data []byte, checksumOpt ChecksumPolicy) (*Directory, error) {
	if len(data) < 12 {
		return nil, &MalformedError{"file too short for a table directory"}
	}
	scalerType := binary.BigEndian.Uint32(data[0:4])
	switch scalerType {
	case ScalerTypeTrueType, ScalerTypeApple:
	case ScalerTypeOpenType:
		return nil, &MalformedError{"CFF-flavored SFNT (OTTO); use the cff package for the outline program"}
	default:
		return nil, &MalformedError{fmt.Sprintf("unrecognized scaler type 0x%08x", scalerType)}
	}

	numTables := int(binary.BigEndian.Uint16(data[4:6]))
	if 12+16*numTables > len(data) {
		return nil, &MalformedError{"table directory extends past end of file"}
	}

	dir := &Directory{ScalerType: scalerType, Tables: make(map[string]Record, numTables)}
	for i := 0; i < numTables; i++ {
		rec := data[12+16*i : 12+16*i+16]
		tag := string(rec[0:4])
		r := Record{
			Checksum: binary.BigEndian.Uint32(rec[4:8]),
			Offset:   binary.BigEndian.Uint32(rec[8:12]),
			Length:   binary.BigEndian.Uint32(rec[12:16]),
		}
		if uint64(r.Offset)+uint64(r.Length) > uint64(len(data)) {
			return nil, &MalformedError{fmt.Sprintf("table %q extends past end of file", tag)}
		}
		dir.Tables[tag] = r
	}

	if checksumOpt == ChecksumValidate {
		// Table directory order on disk need not match map iteration order;
		// validating tags in sorted order makes reproducible, across runs,
		// which tag a malformed font is first rejected for.
		tags := maps.Keys(dir.Tables)
		slices.Sort(tags)
		for _, tag := range tags {
			r := dir.Tables[tag]
			payload := data[r.Offset : r.Offset+r.Length]
			var sum uint32
			if tag == "head" {
				sum = checksumSkippingAdjustment(payload)
			} else {
				sum = checksum(payload)
			}
			if sum != r.Checksum {
				return nil, &ChecksumMismatchError{Tag: tag}
			}
		}
	}

	return dir, nil
}

// ChecksumPolicy selects whether ReadDirectory validates table checksums.
type ChecksumPolicy int

const (
	// ChecksumValidate rejects a font whose checksums don't match (the
	// default per the format's own integrity story).
	ChecksumValidate ChecksumPolicy = iota
	// ChecksumIgnore skips validation entirely, for callers that have
	// already decided to tolerate the (rare, in-the-wild) fonts with
	// stale or incorrectly computed checksums.
	ChecksumIgnore
)

// Find returns the bytes of the named table, or an error if it's absent.
func (d *Directory) Find(data []byte, tag string) ([]byte, error) {
	r, ok := d.Tables[tag]
	if !ok {
		return nil, &MalformedError{"missing required table " + tag}
	}
	return data[r.Offset : r.Offset+r.Length], nil
}

// checksum implements the SFNT table checksum: the big-endian 32-bit
// word sum of the table's bytes, treating any final partial word as
// zero-padded.
func checksum(data []byte) uint32 {
	var sum uint32
	var i int
	for ; i+4 <= len(data); i += 4 {
		sum += binary.BigEndian.Uint32(data[i : i+4])
	}
	if rem := len(data) - i; rem > 0 {
		var tail [4]byte
		copy(tail[:], data[i:])
		sum += binary.BigEndian.Uint32(tail[:])
	}
	return sum
}

// checksumSkippingAdjustment computes the head table's checksum with its
// checksumAdjustment field (bytes 8-11) treated as zero.
func checksumSkippingAdjustment(data []byte) uint32 {
	if len(data) < 12 {
		return checksum(data)
	}
	patched := make([]byte, len(data))
	copy(patched, data)
	for i := 8; i < 12; i++ {
		patched[i] = 0
	}
	return checksum(patched)
}
