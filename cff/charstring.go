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
	"math"

	"golang.org/x/image/math/fixed"

	"github.com/jvoss-raster/pdfraster/geom"
	"github.com/jvoss-raster/pdfraster/graphics"
)

// maxSubrDepth bounds nested callsubr/callgsubr recursion: malicious
// input cannot force unbounded recursion through self-referential
// subroutines.
const maxSubrDepth = 10

// Type 2 charstring operators. Two-byte operators (12 ext) are packed
// as 0x0C00|ext, matching how decodeDict packs two-byte DICT operators.
const (
	t2hstem      = 1
	t2vstem      = 3
	t2vmoveto    = 4
	t2rlineto    = 5
	t2hlineto    = 6
	t2vlineto    = 7
	t2rrcurveto  = 8
	t2callsubr   = 10
	t2return     = 11
	t2endchar    = 14
	t2hstemhm    = 18
	t2hintmask   = 19
	t2cntrmask   = 20
	t2rmoveto    = 21
	t2hmoveto    = 22
	t2vstemhm    = 23
	t2rcurveline = 24
	t2rlinecurve = 25
	t2vvcurveto  = 26
	t2hhcurveto  = 27
	t2callgsubr  = 29
	t2vhcurveto  = 30
	t2hvcurveto  = 31

	t2hflex  = 0x0C22
	t2flex   = 0x0C23
	t2hflex1 = 0x0C24
	t2flex1  = 0x0C25
)

// charstringContext is the per-glyph environment a Type 2 charstring
// decodes against: its font's local and global subroutine indexes and
// the width defaults from the Private DICT.
type charstringContext struct {
	localSubrs    Index
	globalSubrs   Index
	defaultWidthX float64
	nominalWidthX float64
}

// subrBias implements the Type 2 subroutine index bias: the operand on
// the stack names a subroutine relative to this bias, not its absolute
// index.
func subrBias(n int) int {
	switch {
	case n < 1240:
		return 107
	case n < 33900:
		return 1131
	default:
		return 32768
	}
}

func lookupSubr(subrs Index, biased float64) ([]byte, error) {
	idx := int(biased) + subrBias(len(subrs))
	if idx < 0 || idx >= len(subrs) {
		return nil, fmt.Errorf("cff: subroutine index %d out of range (of %d)", idx, len(subrs))
	}
	return subrs[idx], nil
}

// toFixed converts a charstring operand (design units, occasionally
// fractional from a packed-BCD real number) to the 26.6 fixed-point
// representation the running current-point is accumulated in.
func toFixed(f float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(f * 64))
}

func fixedVec2(p fixed.Point26_6) geom.Vec2 {
	return geom.Vec2{X: float64(p.X) / 64, Y: float64(p.Y) / 64}
}

// outlineBuilder accumulates Type 2 moveto/lineto/curveto operators
// into glyph-space contours, auto-closing a contour whenever a new one
// starts (Type 2 contours have no explicit closepath operator). The
// running current point is kept as fixed.Point26_6, the same
// fixed-point representation a rasterizer consumes, converting to
// float64 glyph space only once a segment is emitted.
type outlineBuilder struct {
	contours [][]graphics.GlyphSegment
	current  []graphics.GlyphSegment
	pos      fixed.Point26_6
}

func (b *outlineBuilder) closeCurrent() {
	if len(b.current) > 0 {
		b.current = append(b.current, graphics.GlyphSegment{Kind: graphics.SegClose})
		b.contours = append(b.contours, b.current)
		b.current = nil
	}
}

func (b *outlineBuilder) moveTo(dx, dy float64) {
	b.closeCurrent()
	b.pos.X += toFixed(dx)
	b.pos.Y += toFixed(dy)
	b.current = append(b.current, graphics.GlyphSegment{Kind: graphics.SegMoveTo, P: fixedVec2(b.pos)})
}

func (b *outlineBuilder) lineTo(dx, dy float64) {
	b.pos.X += toFixed(dx)
	b.pos.Y += toFixed(dy)
	b.current = append(b.current, graphics.GlyphSegment{Kind: graphics.SegLineTo, P: fixedVec2(b.pos)})
}

func (b *outlineBuilder) curveTo(dxa, dya, dxb, dyb, dxc, dyc float64) {
	a := fixed.Point26_6{X: b.pos.X + toFixed(dxa), Y: b.pos.Y + toFixed(dya)}
	c := fixed.Point26_6{X: a.X + toFixed(dxb), Y: a.Y + toFixed(dyb)}
	b.pos = fixed.Point26_6{X: c.X + toFixed(dxc), Y: c.Y + toFixed(dyc)}
	b.current = append(b.current, graphics.GlyphSegment{
		Kind: graphics.SegCubicTo,
		C1:   fixedVec2(a),
		C2:   fixedVec2(c),
		P:    fixedVec2(b.pos),
	})
}

func (b *outlineBuilder) finish() graphics.GlyphOutline {
	b.closeCurrent()
	return graphics.GlyphOutline{Contours: b.contours}
}

// runCharstring interprets a Type 2 charstring, producing its outline
// and advance width (in the font's own design units; scaling to
// 1000-unit glyph space is the caller's job, same convention as sfnt).
// Arithmetic and storage operators (add, put, get, roll, ...) and any
// other unrecognized operator are accepted but not evaluated: the whole
// operand stack is cleared and no result is pushed, and decoding goes
// on with the next operator.
func runCharstring(code []byte, ctx *charstringContext) (graphics.GlyphOutline, float64, error) {
	b := &outlineBuilder{}
	width := ctx.defaultWidthX
	widthSet := false
	setWidth := func(present bool, stack []float64) []float64 {
		if widthSet {
			return stack
		}
		widthSet = true
		if present && len(stack) > 0 {
			width = stack[0] + ctx.nominalWidthX
			return stack[1:]
		}
		return stack
	}

	var stack []float64
	var stems int
	type frame struct {
		code []byte
	}
	callStack := []frame{{code}}

	for len(callStack) > 0 {
		top := callStack[len(callStack)-1]
		callStack = callStack[:len(callStack)-1]
		cur := top.code

	runFrame:
		for len(cur) > 0 {
			if len(stack) > 48 {
				return graphics.GlyphOutline{}, 0, fmt.Errorf("cff: charstring operand stack overflow")
			}
			op := int(cur[0])

			switch {
			case op >= 32 && op <= 246:
				stack = append(stack, float64(op-139))
				cur = cur[1:]
				continue
			case op >= 247 && op <= 250:
				if len(cur) < 2 {
					return graphics.GlyphOutline{}, 0, fmt.Errorf("cff: truncated charstring operand")
				}
				stack = append(stack, float64((op-247)*256+int(cur[1])+108))
				cur = cur[2:]
				continue
			case op >= 251 && op <= 254:
				if len(cur) < 2 {
					return graphics.GlyphOutline{}, 0, fmt.Errorf("cff: truncated charstring operand")
				}
				stack = append(stack, float64(-(op-251)*256-int(cur[1])-108))
				cur = cur[2:]
				continue
			case op == 28:
				if len(cur) < 3 {
					return graphics.GlyphOutline{}, 0, fmt.Errorf("cff: truncated charstring operand")
				}
				v := int16(uint16(cur[1])<<8 | uint16(cur[2]))
				stack = append(stack, float64(v))
				cur = cur[3:]
				continue
			case op == 255:
				if len(cur) < 5 {
					return graphics.GlyphOutline{}, 0, fmt.Errorf("cff: truncated charstring operand")
				}
				v := int32(cur[1])<<24 | int32(cur[2])<<16 | int32(cur[3])<<8 | int32(cur[4])
				stack = append(stack, float64(v)/65536)
				cur = cur[5:]
				continue
			}

			if op == 12 {
				if len(cur) < 2 {
					return graphics.GlyphOutline{}, 0, fmt.Errorf("cff: truncated two-byte charstring operator")
				}
				op = 0x0C00 | int(cur[1])
				cur = cur[2:]
			} else {
				cur = cur[1:]
			}

			switch op {
			case t2rmoveto:
				stack = setWidth(len(stack) > 2, stack)
				if len(stack) >= 2 {
					b.moveTo(stack[0], stack[1])
				}
				stack = stack[:0]
			case t2hmoveto:
				stack = setWidth(len(stack) > 1, stack)
				if len(stack) >= 1 {
					b.moveTo(stack[0], 0)
				}
				stack = stack[:0]
			case t2vmoveto:
				stack = setWidth(len(stack) > 1, stack)
				if len(stack) >= 1 {
					b.moveTo(0, stack[0])
				}
				stack = stack[:0]

			case t2rlineto:
				for len(stack) >= 2 {
					b.lineTo(stack[0], stack[1])
					stack = stack[2:]
				}
				stack = stack[:0]

			case t2hlineto, t2vlineto:
				horiz := op == t2hlineto
				for _, v := range stack {
					if horiz {
						b.lineTo(v, 0)
					} else {
						b.lineTo(0, v)
					}
					horiz = !horiz
				}
				stack = stack[:0]

			case t2rrcurveto, t2rcurveline, t2rlinecurve:
				for op == t2rlinecurve && len(stack) >= 8 {
					b.lineTo(stack[0], stack[1])
					stack = stack[2:]
				}
				for len(stack) >= 6 {
					b.curveTo(stack[0], stack[1], stack[2], stack[3], stack[4], stack[5])
					stack = stack[6:]
				}
				if op == t2rcurveline && len(stack) >= 2 {
					b.lineTo(stack[0], stack[1])
					stack = stack[2:]
				}
				stack = stack[:0]

			case t2hhcurveto:
				var dy1 float64
				if len(stack)%4 != 0 {
					dy1, stack = stack[0], stack[1:]
				}
				for len(stack) >= 4 {
					b.curveTo(stack[0], dy1, stack[1], stack[2], stack[3], 0)
					stack = stack[4:]
					dy1 = 0
				}
				stack = stack[:0]

			case t2vvcurveto:
				var dx1 float64
				if len(stack)%4 != 0 {
					dx1, stack = stack[0], stack[1:]
				}
				for len(stack) >= 4 {
					b.curveTo(dx1, stack[0], stack[1], stack[2], 0, stack[3])
					stack = stack[4:]
					dx1 = 0
				}
				stack = stack[:0]

			case t2hvcurveto, t2vhcurveto:
				horiz := op == t2hvcurveto
				for len(stack) >= 4 {
					var extra float64
					if len(stack) == 5 {
						extra = stack[4]
					}
					if horiz {
						b.curveTo(stack[0], 0, stack[1], stack[2], extra, stack[3])
					} else {
						b.curveTo(0, stack[0], stack[1], stack[2], stack[3], extra)
					}
					stack = stack[4:]
					horiz = !horiz
				}
				stack = stack[:0]

			case t2flex:
				if len(stack) >= 12 {
					b.curveTo(stack[0], stack[1], stack[2], stack[3], stack[4], stack[5])
					b.curveTo(stack[6], stack[7], stack[8], stack[9], stack[10], stack[11])
				}
				stack = stack[:0]
			case t2flex1:
				if len(stack) >= 11 {
					b.curveTo(stack[0], stack[1], stack[2], stack[3], stack[4], stack[5])
					dx := stack[0] + stack[2] + stack[4] + stack[6] + stack[8]
					dy := stack[1] + stack[3] + stack[5] + stack[7] + stack[9]
					if abs(dx) > abs(dy) {
						b.curveTo(stack[6], stack[7], stack[8], stack[9], stack[10], 0)
					} else {
						b.curveTo(stack[6], stack[7], stack[8], stack[9], 0, stack[10])
					}
				}
				stack = stack[:0]
			case t2hflex:
				if len(stack) >= 7 {
					b.curveTo(stack[0], 0, stack[1], stack[2], stack[3], 0)
					b.curveTo(stack[4], 0, stack[5], -stack[2], stack[6], 0)
				}
				stack = stack[:0]
			case t2hflex1:
				if len(stack) >= 9 {
					b.curveTo(stack[0], stack[1], stack[2], stack[3], stack[4], 0)
					dy := stack[1] + stack[3] + stack[7]
					b.curveTo(stack[5], 0, stack[6], stack[7], stack[8], -dy)
				}
				stack = stack[:0]

			case t2hstem, t2vstem, t2hstemhm, t2vstemhm:
				stack = setWidth(len(stack)%2 == 1, stack)
				stems += len(stack) / 2
				stack = stack[:0]

			case t2hintmask, t2cntrmask:
				stack = setWidth(len(stack)%2 == 1, stack)
				stems += len(stack) / 2
				stack = stack[:0]
				maskBytes := (stems + 7) / 8
				if maskBytes > len(cur) {
					return graphics.GlyphOutline{}, 0, fmt.Errorf("cff: truncated hintmask")
				}
				cur = cur[maskBytes:]

			case t2callsubr, t2callgsubr:
				if len(stack) == 0 {
					return graphics.GlyphOutline{}, 0, fmt.Errorf("cff: callsubr with empty stack")
				}
				idx := stack[len(stack)-1]
				stack = stack[:len(stack)-1]

				var target Index
				if op == t2callsubr {
					target = ctx.localSubrs
				} else {
					target = ctx.globalSubrs
				}
				sub, err := lookupSubr(target, idx)
				if err != nil {
					return graphics.GlyphOutline{}, 0, err
				}
				if len(callStack)+1 > maxSubrDepth {
					return graphics.GlyphOutline{}, 0, fmt.Errorf("cff: subroutine call depth exceeded")
				}
				callStack = append(callStack, frame{cur})
				cur = sub

			case t2return:
				break runFrame

			case t2endchar:
				stack = setWidth(len(stack) == 1 || len(stack) > 4, stack)
				return b.finish(), width, nil

			default:
				// Unsupported operator (arithmetic/storage/seac-style
				// endchar args): drop its operands and keep going rather
				// than abort the whole glyph.
				stack = stack[:0]
			}
		}
	}

	return graphics.GlyphOutline{}, 0, fmt.Errorf("cff: charstring ended without endchar")
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
