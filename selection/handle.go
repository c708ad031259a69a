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

// Package selection turns pointer drags on the selection handles into
// geometry changes of the current selection.
//
// The handles are the four corners of the selection, which resize it, and
// the body, which moves it.  Drag deltas arrive in device pixels and are
// converted to document space with the current scale factor.  Resizing
// keeps the corner opposite to the dragged one fixed and never shrinks the
// selection below a minimum edge length.
package selection

import (
	"fmt"
	"strings"

	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/sketch/aabb"
)

// Default sizes.  DefaultSelectionMin must not exceed DefaultHandleSize,
// otherwise a collapsed selection could hide its own handles.
const (
	DefaultSelectionMin = 3.0  // minimum selection edge, document units
	DefaultHandleSize   = 22.0 // handle square edge, device pixels
)

// Handle identifies the part of the selection a drag started on.
type Handle int

const (
	Body Handle = iota
	TopLeft
	TopRight
	BottomLeft
	BottomRight
)

// Corners lists the four resize handles.
var Corners = []Handle{TopLeft, TopRight, BottomLeft, BottomRight}

func (h Handle) String() string {
	switch h {
	case Body:
		return "body"
	case TopLeft:
		return "tl"
	case TopRight:
		return "tr"
	case BottomLeft:
		return "bl"
	case BottomRight:
		return "br"
	default:
		return fmt.Sprintf("Handle(%d)", int(h))
	}
}

// ParseHandle converts the output of [Handle.String] back to a Handle.
func ParseHandle(s string) (Handle, error) {
	switch strings.ToLower(s) {
	case "body":
		return Body, nil
	case "tl":
		return TopLeft, nil
	case "tr":
		return TopRight, nil
	case "bl":
		return BottomLeft, nil
	case "br":
		return BottomRight, nil
	}
	return 0, fmt.Errorf("selection: unknown handle %q", s)
}

// IsCorner reports whether h is one of the four resize handles.
func (h Handle) IsCorner() bool {
	return h >= TopLeft && h <= BottomRight
}

// Corner returns the position of the handle's corner of b.
// For [Body], the centre of b is returned.
func (h Handle) Corner(b aabb.AABB) vec.Vec2 {
	switch h {
	case TopLeft:
		return b.Mins
	case TopRight:
		return vec.Vec2{X: b.Maxs.X, Y: b.Mins.Y}
	case BottomLeft:
		return vec.Vec2{X: b.Mins.X, Y: b.Maxs.Y}
	case BottomRight:
		return b.Maxs
	default:
		return b.Mins.Add(b.Maxs).Mul(0.5)
	}
}

// Opposite returns the corner handle diagonally across from h.
// Body is its own opposite.
func (h Handle) Opposite() Handle {
	switch h {
	case TopLeft:
		return BottomRight
	case TopRight:
		return BottomLeft
	case BottomLeft:
		return TopRight
	case BottomRight:
		return TopLeft
	default:
		return Body
	}
}
