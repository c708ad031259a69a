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

// Package testcases holds selection drag scenarios shared by the tests of
// several packages.
package testcases

import (
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/sketch/aabb"
)

// SelectionMin is the minimum selection edge length assumed by the cases.
const SelectionMin = 3.0

// Drag is a single drag interaction on a selection.
type Drag struct {
	Name      string    // lowercase a-z, 0-9 and _ only
	Selection aabb.AABB // selection bounds at drag start
	Handle    string    // "tl", "tr", "bl", "br" or "body"
	Delta     vec.Vec2  // device pixels, relative to drag start
	Scale     float64   // device pixels per document unit
	Want      aabb.AABB // selection bounds after the drag
}

// All contains all drag cases, grouped by category.
var All = map[string][]Drag{
	"resize":    resizeCases,
	"translate": translateCases,
}

// square is the selection used by most cases.
var square = box(10, 10, 110, 110)

func box(x0, y0, x1, y1 float64) aabb.AABB {
	return aabb.AABB{Mins: vec.Vec2{X: x0, Y: y0}, Maxs: vec.Vec2{X: x1, Y: y1}}
}

func pt(x, y float64) vec.Vec2 {
	return vec.Vec2{X: x, Y: y}
}

var resizeCases = []Drag{
	{
		Name:      "br_scaled",
		Selection: square,
		Handle:    "br",
		Delta:     pt(55, 33),
		Scale:     2,
		Want:      box(10, 10, 137.5, 126.5),
	},
	{
		Name:      "br_collapse_x",
		Selection: square,
		Handle:    "br",
		Delta:     pt(-195, -10),
		Scale:     1,
		Want:      box(10, 10, 13, 100),
	},
	{
		Name:      "br_exactly_min",
		Selection: square,
		Handle:    "br",
		Delta:     pt(-97, -97),
		Scale:     1,
		Want:      box(10, 10, 13, 13),
	},
	{
		Name:      "br_rounding",
		Selection: square,
		Handle:    "br",
		Delta:     pt(10.4, 10.6),
		Scale:     1,
		Want:      box(10, 10, 120, 121),
	},
	{
		Name:      "br_half_pixel_zoomed_out",
		Selection: square,
		Handle:    "br",
		Delta:     pt(2.5, -2.5),
		Scale:     0.5,
		Want:      box(10, 10, 116, 104),
	},
	{
		Name:      "tl_grow",
		Selection: square,
		Handle:    "tl",
		Delta:     pt(-10, -20),
		Scale:     1,
		Want:      box(0, -10, 110, 110),
	},
	{
		Name:      "tl_collapse",
		Selection: square,
		Handle:    "tl",
		Delta:     pt(150, 150),
		Scale:     1,
		Want:      box(107, 107, 110, 110),
	},
	{
		Name:      "tr_move",
		Selection: square,
		Handle:    "tr",
		Delta:     pt(30, -40),
		Scale:     1,
		Want:      box(10, -30, 140, 110),
	},
	{
		Name:      "tr_collapse_y",
		Selection: square,
		Handle:    "tr",
		Delta:     pt(0, 120),
		Scale:     1,
		Want:      box(10, 107, 110, 110),
	},
	{
		Name:      "bl_move",
		Selection: square,
		Handle:    "bl",
		Delta:     pt(-5, 15),
		Scale:     1,
		Want:      box(5, 10, 110, 125),
	},
	{
		Name:      "bl_collapse_both",
		Selection: square,
		Handle:    "bl",
		Delta:     pt(200, -300),
		Scale:     1,
		Want:      box(107, 10, 110, 13),
	},
}

var translateCases = []Drag{
	{
		Name:      "right",
		Selection: square,
		Handle:    "body",
		Delta:     pt(20, 0),
		Scale:     1,
		Want:      box(30, 10, 130, 110),
	},
	{
		Name:      "zoomed_in",
		Selection: square,
		Handle:    "body",
		Delta:     pt(-33, 7),
		Scale:     2,
		Want:      box(-6.5, 13.5, 93.5, 113.5),
	},
	{
		Name:      "sub_pixel",
		Selection: square,
		Handle:    "body",
		Delta:     pt(0.4, -0.4),
		Scale:     1,
		Want:      square,
	},
}
