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

import (
	"seehuhn.de/go/postscript/type1/names"

	"github.com/jvoss-raster/pdfraster/pdf"
)

// simpleEncoding is a code (0-255) -> Adobe glyph name table, the shape
// every simple-font base encoding and a /Differences array both take.
type simpleEncoding [256]string

// asciiPrintable fills codes 32-126 with their PDF StandardEncoding
// glyph names, which Standard, WinAnsi, and MacRoman all agree on
// except for 0x27 (quote) and 0x60 (grave accent), which the WinAnsi
// and MacRoman tables patch in their own init.
var asciiPrintable = [...]string{
	"space", "exclam", "quotedbl", "numbersign", "dollar", "percent",
	"ampersand", "quoteright", "parenleft", "parenright", "asterisk",
	"plus", "comma", "hyphen", "period", "slash",
	"zero", "one", "two", "three", "four", "five", "six", "seven",
	"eight", "nine",
	"colon", "semicolon", "less", "equal", "greater", "question", "at",
	"A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K", "L", "M",
	"N", "O", "P", "Q", "R", "S", "T", "U", "V", "W", "X", "Y", "Z",
	"bracketleft", "backslash", "bracketright", "asciicircum",
	"underscore", "quoteleft",
	"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l", "m",
	"n", "o", "p", "q", "r", "s", "t", "u", "v", "w", "x", "y", "z",
	"braceleft", "bar", "braceright", "asciitilde",
}

func baseWithASCII() simpleEncoding {
	var e simpleEncoding
	for i := range e {
		e[i] = ".notdef"
	}
	for i, name := range asciiPrintable {
		e[32+i] = name
	}
	return e
}

// StandardEncoding is Adobe's original PostScript font encoding, PDF's
// implicit default for a simple font with no /Encoding entry.
var StandardEncoding = func() simpleEncoding {
	e := baseWithASCII()
	// StandardEncoding's high half is sparse and mostly ligatures and
	// accents rarely seen outside legacy Type 1 fonts; only the commonly
	// used entries are filled in, the rest stay .notdef.
	high := map[byte]string{
		0xA1: "exclamdown", 0xA2: "cent", 0xA3: "sterling",
		0xA4: "fraction", 0xA5: "yen", 0xA6: "florin",
		0xA7: "section", 0xA8: "currency", 0xA9: "quotesingle",
		0xAA: "quotedblleft", 0xAB: "guillemotleft",
		0xAC: "guilsinglleft", 0xAD: "guilsinglright", 0xAE: "fi",
		0xAF: "fl", 0xB1: "endash", 0xB2: "dagger", 0xB3: "daggerdbl",
		0xB4: "periodcentered", 0xB6: "paragraph", 0xB7: "bullet",
		0xB8: "quotesinglbase", 0xB9: "quotedblbase",
		0xBA: "quotedblright", 0xBB: "guillemotright",
		0xBC: "ellipsis", 0xBD: "perthousand", 0xBF: "questiondown",
		0xC1: "grave", 0xC2: "acute", 0xC3: "circumflex",
		0xC4: "tilde", 0xC5: "macron", 0xC6: "breve",
		0xC7: "dotaccent", 0xC8: "dieresis", 0xCA: "ring",
		0xCB: "cedilla", 0xCD: "hungarumlaut", 0xCE: "ogonek",
		0xCF: "caron", 0xD0: "emdash",
	}
	for code, name := range high {
		e[code] = name
	}
	return e
}()

// WinAnsiEncoding is PDF's rendition of the Windows code page 1252
// Latin encoding, the usual default for text authored on Windows.
var WinAnsiEncoding = func() simpleEncoding {
	e := baseWithASCII()
	e[0x27] = "quotesingle"
	e[0x60] = "grave"
	high := map[byte]string{
		0x80: "Euro", 0x82: "quotesinglbase", 0x83: "florin",
		0x84: "quotedblbase", 0x85: "ellipsis", 0x86: "dagger",
		0x87: "daggerdbl", 0x88: "circumflex", 0x89: "perthousand",
		0x8A: "Scaron", 0x8B: "guilsinglleft", 0x8C: "OE",
		0x8E: "Zcaron", 0x91: "quoteleft", 0x92: "quoteright",
		0x93: "quotedblleft", 0x94: "quotedblright", 0x95: "bullet",
		0x96: "endash", 0x97: "emdash", 0x98: "tilde",
		0x99: "trademark", 0x9A: "scaron", 0x9B: "guilsinglright",
		0x9C: "oe", 0x9E: "zcaron", 0x9F: "Ydieresis",
		0xA0: "space", 0xA1: "exclamdown", 0xA2: "cent",
		0xA3: "sterling", 0xA4: "currency", 0xA5: "yen",
		0xA6: "brokenbar", 0xA7: "section", 0xA8: "dieresis",
		0xA9: "copyright", 0xAA: "ordfeminine",
		0xAB: "guillemotleft", 0xAC: "logicalnot", 0xAD: "hyphen",
		0xAE: "registered", 0xAF: "macron", 0xB0: "degree",
		0xB1: "plusminus", 0xB2: "twosuperior", 0xB3: "threesuperior",
		0xB4: "acute", 0xB5: "mu", 0xB6: "paragraph",
		0xB7: "periodcentered", 0xB8: "cedilla", 0xB9: "onesuperior",
		0xBA: "ordmasculine", 0xBB: "guillemotright",
		0xBC: "onequarter", 0xBD: "onehalf", 0xBE: "threequarters",
		0xBF: "questiondown", 0xC0: "Agrave", 0xC1: "Aacute",
		0xC2: "Acircumflex", 0xC3: "Atilde", 0xC4: "Adieresis",
		0xC5: "Aring", 0xC6: "AE", 0xC7: "Ccedilla", 0xC8: "Egrave",
		0xC9: "Eacute", 0xCA: "Ecircumflex", 0xCB: "Edieresis",
		0xCC: "Igrave", 0xCD: "Iacute", 0xCE: "Icircumflex",
		0xCF: "Idieresis", 0xD0: "Eth", 0xD1: "Ntilde", 0xD2: "Ograve",
		0xD3: "Oacute", 0xD4: "Ocircumflex", 0xD5: "Otilde",
		0xD6: "Odieresis", 0xD7: "multiply", 0xD8: "Oslash",
		0xD9: "Ugrave", 0xDA: "Uacute", 0xDB: "Ucircumflex",
		0xDC: "Udieresis", 0xDD: "Yacute", 0xDE: "Thorn",
		0xDF: "germandbls", 0xE0: "agrave", 0xE1: "aacute",
		0xE2: "acircumflex", 0xE3: "atilde", 0xE4: "adieresis",
		0xE5: "aring", 0xE6: "ae", 0xE7: "ccedilla", 0xE8: "egrave",
		0xE9: "eacute", 0xEA: "ecircumflex", 0xEB: "edieresis",
		0xEC: "igrave", 0xED: "iacute", 0xEE: "icircumflex",
		0xEF: "idieresis", 0xF0: "eth", 0xF1: "ntilde", 0xF2: "ograve",
		0xF3: "oacute", 0xF4: "ocircumflex", 0xF5: "otilde",
		0xF6: "odieresis", 0xF7: "divide", 0xF8: "oslash",
		0xF9: "ugrave", 0xFA: "uacute", 0xFB: "ucircumflex",
		0xFC: "udieresis", 0xFD: "yacute", 0xFE: "thorn",
		0xFF: "ydieresis",
	}
	for code, name := range high {
		e[code] = name
	}
	return e
}()

// MacRomanEncoding is the classic Mac OS Latin text encoding.
var MacRomanEncoding = func() simpleEncoding {
	e := baseWithASCII()
	e[0x27] = "quotesingle"
	e[0x60] = "grave"
	high := map[byte]string{
		0x80: "Adieresis", 0x81: "Aring", 0x82: "Ccedilla",
		0x83: "Eacute", 0x84: "Ntilde", 0x85: "Odieresis",
		0x86: "Udieresis", 0x87: "aacute", 0x88: "agrave",
		0x89: "acircumflex", 0x8A: "adieresis", 0x8B: "atilde",
		0x8C: "aring", 0x8D: "ccedilla", 0x8E: "eacute",
		0x8F: "egrave", 0x90: "ecircumflex", 0x91: "edieresis",
		0x92: "iacute", 0x93: "igrave", 0x94: "icircumflex",
		0x95: "idieresis", 0x96: "ntilde", 0x97: "oacute",
		0x98: "ograve", 0x99: "ocircumflex", 0x9A: "odieresis",
		0x9B: "otilde", 0x9C: "uacute", 0x9D: "ugrave",
		0x9E: "ucircumflex", 0x9F: "udieresis", 0xA0: "dagger",
		0xA1: "degree", 0xA2: "cent", 0xA3: "sterling",
		0xA4: "section", 0xA5: "bullet", 0xA6: "paragraph",
		0xA7: "germandbls", 0xA8: "registered", 0xA9: "copyright",
		0xAA: "trademark", 0xAB: "acute", 0xAC: "dieresis",
		0xAE: "AE", 0xAF: "Oslash", 0xB1: "plusminus",
		0xB4: "yen", 0xB5: "mu", 0xBB: "ordfeminine",
		0xBC: "ordmasculine", 0xBE: "ae", 0xBF: "oslash",
		0xC0: "questiondown", 0xC1: "exclamdown", 0xC2: "logicalnot",
		0xC4: "florin", 0xC7: "guillemotleft", 0xC8: "guillemotright",
		0xC9: "ellipsis", 0xCA: "space", 0xCB: "Agrave",
		0xCC: "Atilde", 0xCD: "Otilde", 0xCE: "OE", 0xCF: "oe",
		0xD0: "endash", 0xD1: "emdash", 0xD2: "quotedblleft",
		0xD3: "quotedblright", 0xD4: "quoteleft", 0xD5: "quoteright",
		0xD6: "divide", 0xD9: "ydieresis", 0xDA: "Ydieresis",
		0xDB: "fraction", 0xDC: "currency", 0xDD: "guilsinglleft",
		0xDE: "guilsinglright", 0xDF: "fi", 0xE0: "fl",
		0xE1: "daggerdbl", 0xE2: "periodcentered",
		0xE3: "quotesinglbase", 0xE4: "quotedblbase",
		0xE5: "perthousand", 0xE6: "Acircumflex", 0xE7: "Ecircumflex",
		0xE8: "Aacute", 0xE9: "Edieresis", 0xEA: "Egrave",
		0xEB: "Iacute", 0xEC: "Icircumflex", 0xED: "Idieresis",
		0xEE: "Igrave", 0xEF: "Oacute", 0xF0: "Ocircumflex",
		0xF2: "Ograve", 0xF3: "Uacute", 0xF4: "Ucircumflex",
		0xF5: "Ugrave", 0xF6: "dotlessi", 0xF7: "circumflex",
		0xF8: "tilde", 0xF9: "macron", 0xFA: "breve", 0xFB: "dotaccent",
		0xFC: "ring", 0xFD: "cedilla", 0xFE: "hungarumlaut",
		0xFF: "caron",
	}
	for code, name := range high {
		e[code] = name
	}
	return e
}()

// baseEncoding resolves a FontDict /Encoding entry's base name (or the
// implicit default, when encoding is absent or a bare /Differences
// dict) to a simpleEncoding. No distinction is made for symbolic fonts:
// resolveEncoding applies these tables whether or not the font carries
// its own built-in encoding.
func baseEncoding(name pdf.Name) simpleEncoding {
	switch name {
	case "WinAnsiEncoding":
		return WinAnsiEncoding
	case "MacRomanEncoding":
		return MacRomanEncoding
	default:
		return StandardEncoding
	}
}

// resolveEncoding builds the effective code -> glyph name table for a
// simple font: starting from enc's /BaseEncoding (or StandardEncoding),
// then applying /Differences entries in order. A bare Name (no
// /Differences) selects a base table outright; a Dict carries
// /BaseEncoding and/or /Differences; anything else (including an
// absent /Encoding) falls back to StandardEncoding.
func resolveEncoding(enc pdf.Object) simpleEncoding {
	switch e := enc.(type) {
	case pdf.Name:
		return baseEncoding(e)
	case pdf.Dict:
		base := StandardEncoding
		if baseName, ok := e["BaseEncoding"].(pdf.Name); ok {
			base = baseEncoding(baseName)
		}
		if diffs, ok := e["Differences"].(pdf.Array); ok {
			applyDifferences(&base, diffs)
		}
		return base
	default:
		return StandardEncoding
	}
}

// applyDifferences walks a /Differences array: a sequence of (code
// Integer, name Name, name Name, ...) runs, each integer resetting the
// code counter that subsequent names are assigned to in order.
func applyDifferences(e *simpleEncoding, diffs pdf.Array) {
	code := 0
	for _, obj := range diffs {
		switch v := obj.(type) {
		case pdf.Integer:
			code = int(v)
		case pdf.Name:
			if code >= 0 && code < 256 {
				e[code] = string(v)
			}
			code++
		}
	}
}

// glyphNameToRune resolves a glyph name to its Unicode text via the
// Adobe Glyph List; a TrueType simple font uses it to look an encoded
// glyph name up in the font's Unicode cmap subtable.
func glyphNameToRune(name string) (rune, bool) {
	rr := names.ToUnicode(name, false)
	if len(rr) != 1 {
		return 0, false
	}
	return rr[0], true
}
