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

package geom

// Mat3 is a 3x3 matrix used for 2D affine transforms, stored row-major.
// A PDF matrix operand [a b c d e f] maps onto Mat3 as
//
//	{{a, b, 0}, {c, d, 0}, {e, f, 1}}
//
// so that transforming a point follows the PDF convention
// (x', y', 1) = (x, y, 1) · M.
type Mat3 struct {
	M [3][3]float64
}

// Identity returns the 3x3 identity matrix.
func Identity() Mat3 {
	return Mat3{M: [3][3]float64{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}}
}

// PDFMatrix builds the Mat3 corresponding to the six-number PDF matrix
// operand [a b c d e f].
func PDFMatrix(a, b, c, d, e, f float64) Mat3 {
	return Mat3{M: [3][3]float64{
		{a, b, 0},
		{c, d, 0},
		{e, f, 1},
	}}
}

// Translate returns the matrix translating by (tx, ty).
func Translate(tx, ty float64) Mat3 {
	return PDFMatrix(1, 0, 0, 1, tx, ty)
}

// Scale returns the matrix scaling by (sx, sy).
func Scale(sx, sy float64) Mat3 {
	return PDFMatrix(sx, 0, 0, sy, 0, 0)
}

// Mul returns a·b, i.e. the matrix that first applies a, then b:
// Transform(Transform(p, a), b) == Transform(p, a.Mul(b)).
func (a Mat3) Mul(b Mat3) Mat3 {
	var r Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			var sum float64
			for k := 0; k < 3; k++ {
				sum += a.M[i][k] * b.M[k][j]
			}
			r.M[i][j] = sum
		}
	}
	return r
}

// Transform applies m to point p, interpreting p as the row vector
// (p.X, p.Y, 1).
func Transform(p Vec2, m Mat3) Vec2 {
	x := p.X*m.M[0][0] + p.Y*m.M[1][0] + m.M[2][0]
	y := p.X*m.M[0][1] + p.Y*m.M[1][1] + m.M[2][1]
	return Vec2{X: x, Y: y}
}

// TransformDir applies the linear part of m to the direction vector v,
// ignoring translation.
func TransformDir(v Vec2, m Mat3) Vec2 {
	x := v.X*m.M[0][0] + v.Y*m.M[1][0]
	y := v.X*m.M[0][1] + v.Y*m.M[1][1]
	return Vec2{X: x, Y: y}
}

// Determinant returns the determinant of the linear (upper-left 2x2)
// part of m.
func (m Mat3) Determinant() float64 {
	return m.M[0][0]*m.M[1][1] - m.M[0][1]*m.M[1][0]
}

// Invert returns the inverse of m. If m is singular (Determinant is 0)
// it returns the identity matrix instead.
func (m Mat3) Invert() Mat3 {
	det := m.Determinant()
	if det == 0 {
		return Identity()
	}
	a, b := m.M[0][0], m.M[0][1]
	c, d := m.M[1][0], m.M[1][1]
	e, f := m.M[2][0], m.M[2][1]

	invDet := 1 / det
	na := d * invDet
	nb := -b * invDet
	nc := -c * invDet
	nd := a * invDet
	ne := -(e*na + f*nc)
	nf := -(e*nb + f*nd)

	return PDFMatrix(na, nb, nc, nd, ne, nf)
}
