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

package render

import (
	"errors"
	"fmt"
)

// Error kinds, for use with [errors.Is].
var (
	ErrTemplateMissing = errors.New("template missing")
	ErrTemplateSyntax  = errors.New("template syntax")
	ErrEncoding        = errors.New("encoding failure")
)

// Error describes a failure to produce markup or a render node.
// Errors of this type are recoverable; the caller can keep showing the
// previous render node.
type Error struct {
	Kind error  // one of ErrTemplateMissing, ErrTemplateSyntax, ErrEncoding
	Path string // template path, if any
	Err  error  // underlying cause, may be nil
}

func (e *Error) Error() string {
	msg := "render: " + e.Kind.Error()
	if e.Path != "" {
		msg += fmt.Sprintf(" %q", e.Path)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap gives access to both the error kind and the underlying cause.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}
