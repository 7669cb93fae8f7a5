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

package cff

import (
	"fmt"

	"github.com/jvoss-raster/pdfraster/cursor"
	"github.com/jvoss-raster/pdfraster/graphics"
)

// Font is an opened bare CFF font program: its CharStrings, Charset,
// and the Private DICT environment(s) (subroutines, width defaults) a
// charstring needs to decode. A CID-keyed font (Top DICT carries ROS)
// selects its Private DICT per glyph via FDArray/FDSelect; any other
// font uses a single Private DICT shared by every glyph.
type Font struct {
	charStrings Index
	charset     []int32 // charStrings[gid] names SID/CID charset[gid]; len == len(charStrings)

	ctx charstringContext // used when fdSelect is nil (non-CID-keyed font)

	fdSelect   []uint8             // len == len(charStrings) for a CID-keyed font, else nil
	fdContexts []charstringContext // indexed by fdSelect[gid]
}

// New parses a bare CFF font program (the kind embedded directly in a
// PDF FontFile3 stream, or found inside an OpenType font's "CFF "
// table): Header, Name INDEX, Top DICT INDEX, String INDEX, Global
// Subr INDEX, then the selected font's Charset, CharStrings INDEX,
// Private DICT, and Local Subr INDEX.
func New(data []byte) (*Font, error) {
	c := cursor.New(data)

	if _, err := c.U8(); err != nil { // major
		return nil, err
	}
	if _, err := c.U8(); err != nil { // minor
		return nil, err
	}
	hdrSize, err := c.U8()
	if err != nil {
		return nil, err
	}
	if _, err := c.U8(); err != nil { // offSize, unused: INDEX structures carry their own
		return nil, err
	}
	if err := c.Seek(int(hdrSize)); err != nil {
		return nil, fmt.Errorf("cff: truncated header: %w", err)
	}

	if _, err := readIndex(c); err != nil { // Name INDEX, unused beyond validation
		return nil, fmt.Errorf("cff: Name INDEX: %w", err)
	}

	topDicts, err := readIndex(c)
	if err != nil {
		return nil, fmt.Errorf("cff: Top DICT INDEX: %w", err)
	}
	if len(topDicts) == 0 {
		return nil, fmt.Errorf("cff: no Top DICT present")
	}
	topDict, err := decodeDict(topDicts[0])
	if err != nil {
		return nil, fmt.Errorf("cff: Top DICT: %w", err)
	}

	if _, err := readIndex(c); err != nil { // String INDEX, unused: glyph names aren't needed for PDF gid lookup
		return nil, fmt.Errorf("cff: String INDEX: %w", err)
	}

	globalSubrs, err := readIndex(c)
	if err != nil {
		return nil, fmt.Errorf("cff: Global Subr INDEX: %w", err)
	}

	charStringsOff := topDict.getInt(opCharStrings, 0)
	if charStringsOff <= 0 || charStringsOff >= len(data) {
		return nil, fmt.Errorf("cff: missing or invalid CharStrings offset")
	}
	csCursor := cursor.New(data)
	if err := csCursor.Seek(charStringsOff); err != nil {
		return nil, fmt.Errorf("cff: CharStrings offset out of range: %w", err)
	}
	charStrings, err := readIndex(csCursor)
	if err != nil {
		return nil, fmt.Errorf("cff: CharStrings INDEX: %w", err)
	}
	numGlyphs := len(charStrings)

	var charset []int32
	charsetOff := topDict.getInt(opCharset, 0)
	switch charsetOff {
	case 0:
		charset = predefinedISOAdobeCharset(numGlyphs)
	case 1, 2:
		// Expert/ExpertSubset predefined charsets: treat identically to
		// ISOAdobe since glyph names aren't consulted for PDF rendering,
		// only the gid itself is.
		charset = predefinedISOAdobeCharset(numGlyphs)
	default:
		chCursor := cursor.New(data)
		if err := chCursor.Seek(charsetOff); err != nil {
			return nil, fmt.Errorf("cff: Charset offset out of range: %w", err)
		}
		charset, err = readCharset(chCursor, numGlyphs)
		if err != nil {
			return nil, fmt.Errorf("cff: Charset: %w", err)
		}
	}

	_, isCID := topDict.getPair(opROS)

	if isCID {
		fdArrayOff := topDict.getInt(opFDArray, 0)
		fdSelectOff := topDict.getInt(opFDSelect, 0)
		if fdArrayOff <= 0 || fdSelectOff <= 0 {
			return nil, fmt.Errorf("cff: CID-keyed font missing FDArray or FDSelect")
		}

		faCursor := cursor.New(data)
		if err := faCursor.Seek(fdArrayOff); err != nil {
			return nil, fmt.Errorf("cff: FDArray offset out of range: %w", err)
		}
		fdDicts, err := readIndex(faCursor)
		if err != nil {
			return nil, fmt.Errorf("cff: FDArray INDEX: %w", err)
		}

		fdContexts := make([]charstringContext, len(fdDicts))
		for i, raw := range fdDicts {
			fd, err := decodeDict(raw)
			if err != nil {
				return nil, fmt.Errorf("cff: Font DICT %d: %w", i, err)
			}
			ctx := charstringContext{globalSubrs: globalSubrs}
			if err := readPrivate(data, fd, &ctx); err != nil {
				return nil, fmt.Errorf("cff: Font DICT %d Private: %w", i, err)
			}
			fdContexts[i] = ctx
		}

		fsCursor := cursor.New(data)
		if err := fsCursor.Seek(fdSelectOff); err != nil {
			return nil, fmt.Errorf("cff: FDSelect offset out of range: %w", err)
		}
		fdSelect, err := readFDSelect(fsCursor, numGlyphs)
		if err != nil {
			return nil, fmt.Errorf("cff: FDSelect: %w", err)
		}
		for _, fd := range fdSelect {
			if int(fd) >= len(fdContexts) {
				return nil, fmt.Errorf("cff: FDSelect names Font DICT %d, have %d", fd, len(fdContexts))
			}
		}

		return &Font{
			charStrings: charStrings,
			charset:     charset,
			fdSelect:    fdSelect,
			fdContexts:  fdContexts,
		}, nil
	}

	ctx := charstringContext{globalSubrs: globalSubrs}
	if err := readPrivate(data, topDict, &ctx); err != nil {
		return nil, fmt.Errorf("cff: Private DICT: %w", err)
	}

	return &Font{
		charStrings: charStrings,
		charset:     charset,
		ctx:         ctx,
	}, nil
}

// readPrivate decodes d's {size, offset} Private DICT pair (if present)
// into ctx's width defaults and local subroutines.
func readPrivate(data []byte, d dict, ctx *charstringContext) error {
	size, off, ok := d.getPair(opPrivate)
	if !ok || size <= 0 {
		return nil
	}
	if off < 0 || off+size > len(data) {
		return fmt.Errorf("out of range")
	}
	priv, err := decodeDict(data[off : off+size])
	if err != nil {
		return err
	}
	ctx.defaultWidthX = float64(priv.getInt(opDefaultWidthX, 0))
	ctx.nominalWidthX = float64(priv.getInt(opNominalWidthX, 0))

	if subrsRel := priv.getInt(opSubrs, 0); subrsRel > 0 {
		lsCursor := cursor.New(data)
		if err := lsCursor.Seek(off + subrsRel); err != nil {
			return fmt.Errorf("Local Subr offset out of range: %w", err)
		}
		ctx.localSubrs, err = readIndex(lsCursor)
		if err != nil {
			return fmt.Errorf("Local Subr INDEX: %w", err)
		}
	}
	return nil
}

// NumGlyphs returns the number of glyphs in the font's CharStrings
// INDEX, including .notdef at gid 0.
func (f *Font) NumGlyphs() int { return len(f.charStrings) }

// GIDForCID returns the glyph index whose Charset entry names cid, or
// 0 (.notdef) if no glyph claims it. For a non-CID-keyed font, cid is
// really a glyph name's SID; PDF simple-font CFFs are looked up by gid
// directly via Outline instead, so this is only exercised for
// CIDFontType0 descendants, whose embedded CFF Charset is the CID to
// GID mapping (a /CIDToGIDMap entry does not apply to them).
func (f *Font) GIDForCID(cid int32) uint16 {
	for gid, id := range f.charset {
		if id == cid {
			return uint16(gid)
		}
	}
	return 0
}

// CIDForGID is GIDForCID's inverse: the Charset entry a glyph index
// claims, i.e. the CID a CIDFontType0 descendant's /W array indexes
// widths by.
func (f *Font) CIDForGID(gid uint16) int32 {
	if int(gid) >= len(f.charset) {
		return 0
	}
	return f.charset[gid]
}

// Outline decodes gid's Type 2 charstring into a glyph outline and
// advance width, both already in the font's own design-space units.
// CFF has no analogue of TrueType's unitsPerEm scaling knob: by
// convention every CFF font is authored directly in a 1000-unit em
// square, so no post-hoc scaling step is needed here (contrast
// sfnt.Font.Outline, which must rescale from the font's own
// unitsPerEm).
func (f *Font) Outline(gid uint16) (outline graphics.GlyphOutline, advanceWidth float64, ok bool) {
	if int(gid) >= len(f.charStrings) {
		return graphics.GlyphOutline{}, 0, false
	}
	ctx := &f.ctx
	if f.fdSelect != nil {
		ctx = &f.fdContexts[f.fdSelect[gid]]
	}
	outline, advanceWidth, err := runCharstring(f.charStrings[gid], ctx)
	if err != nil {
		return graphics.GlyphOutline{}, 0, false
	}
	return outline, advanceWidth, true
}
