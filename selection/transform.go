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

package selection

import (
	"math"

	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/sketch/aabb"
)

// DeviceToDocument converts a drag delta from device pixels to document
// units.  The delta is first rounded to whole device pixels, so that
// sub-pixel pointer noise does not leak into document coordinates.
func DeviceToDocument(delta vec.Vec2, scale float64) vec.Vec2 {
	return vec.Vec2{
		X: math.Round(delta.X) / scale,
		Y: math.Round(delta.Y) / scale,
	}
}

// MoveCorner moves the edges of b adjacent to corner h by offset.  The
// opposite corner stays fixed.
//
// The result may be inverted; it must be passed through [ClampResize]
// before use.
func MoveCorner(b aabb.AABB, h Handle, offset vec.Vec2) aabb.AABB {
	switch h {
	case TopLeft:
		b.Mins = b.Mins.Add(offset)
	case TopRight:
		b.Mins.Y += offset.Y
		b.Maxs.X += offset.X
	case BottomLeft:
		b.Mins.X += offset.X
		b.Maxs.Y += offset.Y
	case BottomRight:
		b.Maxs = b.Maxs.Add(offset)
	}
	return b
}

// MinBound returns the square of edge length minSize which shares the
// corner opposite to h with b and extends into b.
//
// For [Body], the result is the degenerate box at the centre of b.
func MinBound(b aabb.AABB, h Handle, minSize float64) aabb.AABB {
	switch h {
	case TopLeft: // anchored at the bottom right
		return aabb.AABB{
			Mins: vec.Vec2{X: b.Maxs.X - minSize, Y: b.Maxs.Y - minSize},
			Maxs: b.Maxs,
		}
	case TopRight: // anchored at the bottom left
		return aabb.AABB{
			Mins: vec.Vec2{X: b.Mins.X, Y: b.Maxs.Y - minSize},
			Maxs: vec.Vec2{X: b.Mins.X + minSize, Y: b.Maxs.Y},
		}
	case BottomLeft: // anchored at the top right
		return aabb.AABB{
			Mins: vec.Vec2{X: b.Maxs.X - minSize, Y: b.Mins.Y},
			Maxs: vec.Vec2{X: b.Maxs.X, Y: b.Mins.Y + minSize},
		}
	case BottomRight: // anchored at the top left
		return aabb.AABB{
			Mins: b.Mins,
			Maxs: vec.Vec2{X: b.Mins.X + minSize, Y: b.Mins.Y + minSize},
		}
	default:
		c := h.Corner(b)
		return aabb.AABB{Mins: c, Maxs: c}
	}
}

// ClampResize constrains a box produced by [MoveCorner] for handle h, so
// that it contains the minSize square at the fixed corner.
func ClampResize(b aabb.AABB, h Handle, minSize float64) aabb.AABB {
	lo := MinBound(b, h, minSize)
	return b.Clamp(&lo, nil)
}

// Resize returns the bounds obtained by dragging corner h of b by offset
// (in document units), keeping the opposite corner fixed and every edge
// at least minSize long.
func Resize(b aabb.AABB, h Handle, offset vec.Vec2, minSize float64) aabb.AABB {
	return ClampResize(MoveCorner(b, h, offset), h, minSize)
}
