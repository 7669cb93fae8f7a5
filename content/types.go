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

package content

import "github.com/jvoss-raster/pdfraster/pdf"

// Kind names a content-stream operator this package understands.
type Kind string

const (
	OpGSave     Kind = "q"
	OpGRestore  Kind = "Q"
	OpConcat    Kind = "cm"
	OpLineWidth Kind = "w"
	OpLineCap   Kind = "J"
	OpLineJoin  Kind = "j"
	OpMiterLimit Kind = "M"
	OpDash      Kind = "d"
	OpRenderIntent Kind = "ri"
	OpFlatness  Kind = "i"
	OpGState    Kind = "gs"

	OpMoveTo    Kind = "m"
	OpLineTo    Kind = "l"
	OpCurveTo   Kind = "c"
	OpCurveToV  Kind = "v"
	OpCurveToY  Kind = "y"
	OpRect      Kind = "re"
	OpClosePath Kind = "h"

	OpStroke          Kind = "S"
	OpCloseStroke     Kind = "s"
	OpFill            Kind = "f"
	OpFillCompat      Kind = "F"
	OpFillEvenOdd     Kind = "f*"
	OpFillStroke      Kind = "B"
	OpFillStrokeEO    Kind = "B*"
	OpCloseFillStroke Kind = "b"
	OpCloseFillStrokeEO Kind = "b*"
	OpNoOp            Kind = "n"

	OpBeginText Kind = "BT"
	OpEndText   Kind = "ET"

	OpCharSpace   Kind = "Tc"
	OpWordSpace   Kind = "Tw"
	OpHScale      Kind = "Tz"
	OpLeading     Kind = "TL"
	OpFont        Kind = "Tf"
	OpRenderMode  Kind = "Tr"
	OpTextRise    Kind = "Ts"

	OpTextMove     Kind = "Td"
	OpTextMoveSet  Kind = "TD"
	OpTextMatrix   Kind = "Tm"
	OpTextNextLine Kind = "T*"

	OpShowText       Kind = "Tj"
	OpShowTextArray  Kind = "TJ"
	OpNextLineShow   Kind = "'"
	OpNextLineShowSp Kind = "\""

	OpColorSpaceStroke    Kind = "CS"
	OpColorSpaceNonstroke Kind = "cs"
	OpSetColorStroke      Kind = "SC"
	OpSetColorStrokeN     Kind = "SCN"
	OpSetColorNonstroke   Kind = "sc"
	OpSetColorNonstrokeN  Kind = "scn"
	OpGrayStroke          Kind = "G"
	OpGrayNonstroke       Kind = "g"
	OpRGBStroke           Kind = "RG"
	OpRGBNonstroke        Kind = "rg"
	OpCMYKStroke          Kind = "K"
	OpCMYKNonstroke       Kind = "k"

	OpPaintXObject Kind = "Do"

	OpBeginInlineImage Kind = "BI"
	OpInlineImage      Kind = "inline-image" // synthesized from BI ... ID ... EI
)

// operandCounts gives the number of operands each operator consumes,
// for operators with a fixed arity (TJ takes its single array operand).
// The color operators whose arity depends on the active color space
// (SC/SCN/sc/scn) are handled specially in Parse.
var operandCounts = map[Kind]int{
	OpGSave: 0, OpGRestore: 0,
	OpConcat: 6,
	OpLineWidth: 1, OpLineCap: 1, OpLineJoin: 1, OpMiterLimit: 1,
	OpDash: 2, OpRenderIntent: 1, OpFlatness: 1, OpGState: 1,

	OpMoveTo: 2, OpLineTo: 2, OpCurveTo: 6, OpCurveToV: 4, OpCurveToY: 4,
	OpRect: 4, OpClosePath: 0,

	OpStroke: 0, OpCloseStroke: 0, OpFill: 0, OpFillCompat: 0,
	OpFillEvenOdd: 0, OpFillStroke: 0, OpFillStrokeEO: 0,
	OpCloseFillStroke: 0, OpCloseFillStrokeEO: 0, OpNoOp: 0,

	OpBeginText: 0, OpEndText: 0,

	OpCharSpace: 1, OpWordSpace: 1, OpHScale: 1, OpLeading: 1,
	OpFont: 2, OpRenderMode: 1, OpTextRise: 1,

	OpTextMove: 2, OpTextMoveSet: 2, OpTextMatrix: 6, OpTextNextLine: 0,

	OpShowText: 1, OpShowTextArray: 1, OpNextLineShow: 1, OpNextLineShowSp: 3,

	OpColorSpaceStroke: 1, OpColorSpaceNonstroke: 1,
	OpGrayStroke: 1, OpGrayNonstroke: 1,
	OpRGBStroke: 3, OpRGBNonstroke: 3,
	OpCMYKStroke: 4, OpCMYKNonstroke: 4,

	OpPaintXObject: 1,
}

// Operation is one emitted content-stream instruction: an operator and
// its already-popped operands, in source order.
type Operation struct {
	Kind     Kind
	Operands []pdf.Object

	// InlineImageDict and InlineImageData are populated only for
	// OpInlineImage, synthesized from a BI/ID/EI run.
	InlineImageDict pdf.Dict
	InlineImageData []byte
}
