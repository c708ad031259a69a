// seehuhn.de/go/sketch - stroke geometry for a note-taking canvas
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
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

package stroke

import (
	"errors"
)

// Decode error kinds, for use with [errors.Is].
var (
	ErrUnrecognizedFormat = errors.New("unrecognized image format")
	ErrCorruptData        = errors.New("corrupt image data")
)

// DecodeError is returned when a stroke cannot be constructed from image
// data.
type DecodeError struct {
	Kind error // ErrUnrecognizedFormat or ErrCorruptData
	Err  error // underlying cause, may be nil
}

func (e *DecodeError) Error() string {
	if e.Err == nil {
		return "stroke: " + e.Kind.Error()
	}
	return "stroke: " + e.Kind.Error() + ": " + e.Err.Error()
}

func (e *DecodeError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}
