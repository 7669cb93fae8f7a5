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

package graphics

import "github.com/jvoss-raster/pdfraster/geom"

// TextState holds the parameters set by the text-state operators (Tc, Tw,
// Tz, TL, Tf, Tr, Ts) plus the two matrices maintained between BT and ET.
// It lives inside GraphicsState because q/Q must save and restore it along
// with everything else, but Tm/Tlm are additionally reset on every BT.
type TextState struct {
	CharSpacing     float64
	WordSpacing     float64
	HorizScaling    float64 // Tz, given as a percentage in the operator, stored as a fraction (100 -> 1.0)
	Leading         float64
	Font            Font
	FontSize        float64
	RenderMode      int
	Rise            float64

	Tm  geom.Mat3 // text matrix
	Tlm geom.Mat3 // text line matrix
}

func newTextState() TextState {
	return TextState{HorizScaling: 1, Tm: geom.Identity(), Tlm: geom.Identity()}
}

// GraphicsState is the complete set of parameters the content-stream
// interpreter tracks: the CTM, stroking and nonstroking colors, the text
// state, and the line/alpha/rendering-quality parameters an ExtGState
// dictionary can override.
type GraphicsState struct {
	CTM geom.Mat3

	StrokeColor Color
	FillColor   Color

	Text TextState

	LineWidth         float64
	LineCap           int
	LineJoin          int
	MiterLimit        float64
	DashArray         []float64
	DashPhase         float64
	StrokeAdjustment  bool
	StrokeAlpha       float64
	FillAlpha         float64
	AlphaIsShape      bool
	Overprint         bool
	OverprintMode     int
	Flatness          float64
	Smoothness        float64
}

// NewGraphicsState returns the state a page or Form XObject begins
// interpretation with: identity CTM (the caller composes the device CTM
// separately), black fill/stroke, and the PDF-mandated defaults for the
// line and alpha parameters.
func NewGraphicsState() GraphicsState {
	return GraphicsState{
		CTM:          geom.Identity(),
		StrokeColor:  Black(),
		FillColor:    Black(),
		Text:         newTextState(),
		LineWidth:    1,
		MiterLimit:   10,
		StrokeAlpha:  1,
		FillAlpha:    1,
		Flatness:     1,
	}
}

// clone returns a deep copy: the slice-typed DashArray field is copied so
// that mutating one state's dash pattern after a q never leaks into the
// saved copy.
func (g GraphicsState) clone() GraphicsState {
	cp := g
	if g.DashArray != nil {
		cp.DashArray = append([]float64(nil), g.DashArray...)
	}
	return cp
}

// Stack is the q/Q graphics-state stack: the current state is always
// stack[len(stack)-1].
type Stack struct {
	frames []GraphicsState
}

// NewStack seeds the stack with a single frame holding the given initial
// state (the page renderer's device CTM, typically).
func NewStack(initial GraphicsState) *Stack {
	return &Stack{frames: []GraphicsState{initial}}
}

// Current returns a pointer to the top-of-stack state, for in-place
// mutation by content-stream operators.
func (s *Stack) Current() *GraphicsState {
	return &s.frames[len(s.frames)-1]
}

// Push deep-copies the current state onto the stack (the "q" operator).
func (s *Stack) Push() {
	s.frames = append(s.frames, s.Current().clone())
}

// Pop discards the top-of-stack state (the "Q" operator). Popping the last
// remaining frame is an error: PDF content streams must balance q/Q within
// each content stream, and a stream that pops more than it pushed is
// malformed.
func (s *Stack) Pop() error {
	if len(s.frames) <= 1 {
		return &stateError{"Q with no matching q"}
	}
	s.frames = s.frames[:len(s.frames)-1]
	return nil
}

// Depth reports the number of frames currently on the stack (1 means only
// the initial frame remains).
func (s *Stack) Depth() int { return len(s.frames) }

type stateError struct{ msg string }

func (e *stateError) Error() string { return "graphics: " + e.msg }
