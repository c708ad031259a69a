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

// Package aabb implements axis-aligned bounding boxes in document space.
//
// An AABB is valid if Mins.X <= Maxs.X and Mins.Y <= Maxs.Y.  None of the
// operations in this package turn a valid box into an invalid one.
package aabb

import (
	"fmt"
	"math"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// AABB is an axis-aligned bounding box.
type AABB struct {
	Mins vec.Vec2 `json:"mins"` // minimum corner (smallest x and y)
	Maxs vec.Vec2 `json:"maxs"` // maximum corner (largest x and y)
}

// New returns the smallest box containing the points a and b.
func New(a, b vec.Vec2) AABB {
	return AABB{
		Mins: vec.Vec2{X: min(a.X, b.X), Y: min(a.Y, b.Y)},
		Maxs: vec.Vec2{X: max(a.X, b.X), Y: max(a.Y, b.Y)},
	}
}

// FromSize returns the box with the given origin and extent.
// Negative extents are treated as zero.
func FromSize(origin, size vec.Vec2) AABB {
	return AABB{
		Mins: origin,
		Maxs: vec.Vec2{X: origin.X + max(size.X, 0), Y: origin.Y + max(size.Y, 0)},
	}
}

// IsValid reports whether the corners are ordered and all coordinates
// are finite.
func (a AABB) IsValid() bool {
	for _, x := range []float64{a.Mins.X, a.Mins.Y, a.Maxs.X, a.Maxs.Y} {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return a.Mins.X <= a.Maxs.X && a.Mins.Y <= a.Maxs.Y
}

// Width returns the horizontal extent of the box.
func (a AABB) Width() float64 {
	return a.Maxs.X - a.Mins.X
}

// Height returns the vertical extent of the box.
func (a AABB) Height() float64 {
	return a.Maxs.Y - a.Mins.Y
}

// Size returns the extent of the box as a vector.
func (a AABB) Size() vec.Vec2 {
	return a.Maxs.Sub(a.Mins)
}

// Translate shifts the box by offset.  The size is unchanged.
func (a AABB) Translate(offset vec.Vec2) AABB {
	return AABB{Mins: a.Mins.Add(offset), Maxs: a.Maxs.Add(offset)}
}

// Scale multiplies all coordinates by s.  This maps document space to
// device space when s is the scale factor.  s must be positive.
func (a AABB) Scale(s float64) AABB {
	return AABB{Mins: a.Mins.Mul(s), Maxs: a.Maxs.Mul(s)}
}

// Merge returns the smallest box containing both a and b.
func (a AABB) Merge(b AABB) AABB {
	return AABB{
		Mins: vec.Vec2{X: min(a.Mins.X, b.Mins.X), Y: min(a.Mins.Y, b.Mins.Y)},
		Maxs: vec.Vec2{X: max(a.Maxs.X, b.Maxs.X), Y: max(a.Maxs.Y, b.Maxs.Y)},
	}
}

// Contains reports whether p lies inside the box or on its boundary.
func (a AABB) Contains(p vec.Vec2) bool {
	return p.X >= a.Mins.X && p.X <= a.Maxs.X && p.Y >= a.Mins.Y && p.Y <= a.Maxs.Y
}

// ContainsBox reports whether b lies inside a.
func (a AABB) ContainsBox(b AABB) bool {
	return a.Contains(b.Mins) && a.Contains(b.Maxs)
}

// Clamp constrains the box by a lower and an upper bound.  Either bound
// may be nil.
//
// The result contains lo, so it is at least as large as lo on both axes.
// Edges which already reach past lo stay where they are; this keeps the
// corner of a which lo is anchored at fixed.
//
// The result lies inside hi: every coordinate is clamped to the extent of
// hi.  If lo is not contained in hi, lo takes precedence.
//
// Clamping twice with the same bounds gives the same result as clamping
// once, provided lo lies inside hi.
func (a AABB) Clamp(lo, hi *AABB) AABB {
	if hi != nil {
		a.Mins.X = clampf(a.Mins.X, hi.Mins.X, hi.Maxs.X)
		a.Mins.Y = clampf(a.Mins.Y, hi.Mins.Y, hi.Maxs.Y)
		a.Maxs.X = clampf(a.Maxs.X, hi.Mins.X, hi.Maxs.X)
		a.Maxs.Y = clampf(a.Maxs.Y, hi.Mins.Y, hi.Maxs.Y)
	}
	if lo != nil {
		a = a.Merge(*lo)
	}
	return a
}

func clampf(x, lo, hi float64) float64 {
	return max(lo, min(x, hi))
}

// Rect converts the box to a [rect.Rect].
func (a AABB) Rect() rect.Rect {
	return rect.Rect{LLx: a.Mins.X, LLy: a.Mins.Y, URx: a.Maxs.X, URy: a.Maxs.Y}
}

// FromRect converts a [rect.Rect] to a box.
func FromRect(r rect.Rect) AABB {
	return New(vec.Vec2{X: r.LLx, Y: r.LLy}, vec.Vec2{X: r.URx, Y: r.URy})
}

func (a AABB) String() string {
	return fmt.Sprintf("[%g %g %g %g]", a.Mins.X, a.Mins.Y, a.Maxs.X, a.Maxs.Y)
}
