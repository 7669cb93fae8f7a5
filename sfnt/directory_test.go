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

package sfnt

import (
	"encoding/binary"
	"errors"
	"testing"
)

// buildFont assembles a minimal one-table SFNT file (scaler type +
// directory + one record) around payload, for directory/checksum tests
// that don't need a full font.
func buildFont(tag string, payload []byte) []byte {
	buf := make([]byte, 12+16+len(payload))
	binary.BigEndian.PutUint32(buf[0:4], ScalerTypeTrueType)
	binary.BigEndian.PutUint16(buf[4:6], 1) // numTables
	rec := buf[12:28]
	copy(rec[0:4], tag)
	binary.BigEndian.PutUint32(rec[4:8], checksum(payload))
	binary.BigEndian.PutUint32(rec[8:12], 28)
	binary.BigEndian.PutUint32(rec[12:16], uint32(len(payload)))
	copy(buf[28:], payload)
	return buf
}

func TestReadDirectoryChecksumValidation(t *testing.T) {
	payload := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	good := buildFont("test", payload)

	if _, err := ReadDirectory(good, ChecksumValidate); err != nil {
		t.Fatalf("ReadDirectory(good) = %v, want nil error", err)
	}

	bad := make([]byte, len(good))
	copy(bad, good)
	bad[28] ^= 0xFF // corrupt the payload without updating its recorded checksum

	_, err := ReadDirectory(bad, ChecksumValidate)
	var mismatch *ChecksumMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("ReadDirectory(corrupted) = %v, want *ChecksumMismatchError", err)
	}
	if mismatch.Tag != "test" {
		t.Fatalf("mismatch.Tag = %q, want %q", mismatch.Tag, "test")
	}

	if _, err := ReadDirectory(bad, ChecksumIgnore); err != nil {
		t.Fatalf("ReadDirectory(corrupted, ChecksumIgnore) = %v, want nil error", err)
	}
}

func TestReadDirectoryRejectsOpenType(t *testing.T) {
	buf := make([]byte, 12)
	binary.BigEndian.PutUint32(buf[0:4], ScalerTypeOpenType)
	_, err := ReadDirectory(buf, ChecksumIgnore)
	if err == nil {
		t.Fatal("ReadDirectory(OTTO) = nil error, want rejection")
	}
}

func TestChecksumSkipsHeadAdjustmentBytes(t *testing.T) {
	a := make([]byte, 16)
	b := make([]byte, 16)
	for i := range a {
		a[i] = byte(i)
		b[i] = byte(i)
	}
	// Differ only in bytes 8-11, the checksumAdjustment field.
	binary.BigEndian.PutUint32(b[8:12], 0xDEADBEEF)

	if checksumSkippingAdjustment(a) != checksumSkippingAdjustment(b) {
		t.Fatal("checksumSkippingAdjustment should ignore bytes 8-11")
	}
	if checksum(a) == checksum(b) {
		t.Fatal("checksum (without skipping) should differ when bytes 8-11 differ")
	}
}

func TestDirectoryFindMissingTable(t *testing.T) {
	good := buildFont("test", []byte{1, 2, 3, 4})
	dir, err := ReadDirectory(good, ChecksumValidate)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := dir.Find(good, "glyf"); err == nil {
		t.Fatal("Find(missing table) = nil error, want MalformedError")
	}
}
