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

package pdf

import "fmt"

// MissingObjectError is returned when a Reference does not appear in
// the resolver's xref mapping.
type MissingObjectError struct {
	Ref Reference
}

func (e *MissingObjectError) Error() string {
	return fmt.Sprintf("pdf: missing object %s", e.Ref)
}

// MissingFieldError is returned by the deserialization framework when a
// required dictionary key is absent.
type MissingFieldError struct {
	Struct string
	Field  string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("pdf: %s: missing required field %q", e.Struct, e.Field)
}

// IncorrectTypeError is returned by the deserialization framework when
// a dictionary value has the wrong PDF object type for its field kind.
type IncorrectTypeError struct {
	Struct   string
	Field    string
	Expected string
	Got      string
}

func (e *IncorrectTypeError) Error() string {
	return fmt.Sprintf("pdf: %s.%s: expected %s, got %s", e.Struct, e.Field, e.Expected, e.Got)
}

// NotADictError is returned when Deserialize is asked to project a
// non-dictionary object onto a struct schema.
type NotADictError struct {
	Struct string
	Got    string
}

func (e *NotADictError) Error() string {
	return fmt.Sprintf("pdf: %s: expected a dictionary, got %s", e.Struct, e.Got)
}

// InvalidRectangleError is returned when a Rectangle field does not
// decode to a four-element array of numbers.
type InvalidRectangleError struct {
	Struct string
	Field  string
}

func (e *InvalidRectangleError) Error() string {
	return fmt.Sprintf("pdf: %s.%s: not a valid rectangle", e.Struct, e.Field)
}
