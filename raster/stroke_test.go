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

package raster

import (
	"image"
	"math"
	"testing"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

func strokeArea(r *Rasteriser, p *path.Data) float64 {
	var total float64
	r.Stroke(p, func(y, xMin int, cov []float32) {
		for _, c := range cov {
			total += float64(c)
		}
	})
	return total
}

// A square frame of side 20, stroked with width 4, for each join style.
func TestStrokeFrameJoins(t *testing.T) {
	frame := Rectangle(rect.Rect{LLx: 10, LLy: 10, URx: 30, URy: 30})
	const d = 2.0
	miter := 24.0*24.0 - 16.0*16.0
	cases := []struct {
		join graphics.LineJoinStyle
		want float64
	}{
		{graphics.LineJoinMiter, miter},
		{graphics.LineJoinBevel, miter - 4*d*d/2},
		{graphics.LineJoinRound, miter - 4*(d*d-math.Pi*d*d/4)},
	}
	for _, tc := range cases {
		t.Run(tc.join.String(), func(t *testing.T) {
			r := NewRasteriser(rect.Rect{LLx: 0, LLy: 0, URx: 40, URy: 40})
			r.Flatness = 0.01
			r.Width = 2 * d
			r.Join = tc.join
			if got := strokeArea(r, frame); math.Abs(got-tc.want) > 0.05 {
				t.Errorf("area %.3f, want %.3f", got, tc.want)
			}
		})
	}
}

// Stroking a closed path leaves its interior empty.
func TestStrokeFrameInterior(t *testing.T) {
	r := NewRasteriser(rect.Rect{LLx: 0, LLy: 0, URx: 40, URy: 40})
	r.Width = 4
	mask := image.NewAlpha(image.Rect(0, 0, 40, 40))
	r.StrokeInto(mask, Rectangle(rect.Rect{LLx: 10, LLy: 10, URx: 30, URy: 30}))

	checks := []struct {
		x, y int
		want uint8
	}{
		{20, 20, 0},   // interior
		{20, 9, 255},  // top side
		{31, 20, 255}, // right side
		{8, 8, 255},   // miter corner
		{20, 33, 0},   // outside
	}
	for _, c := range checks {
		if got := mask.AlphaAt(c.x, c.y).A; got != c.want {
			t.Errorf("pixel (%d,%d): got %d, want %d", c.x, c.y, got, c.want)
		}
	}
}

func TestStrokeOpenCaps(t *testing.T) {
	line := (&path.Data{}).
		MoveTo(vec.Vec2{X: 5, Y: 10}).
		LineTo(vec.Vec2{X: 25, Y: 10})
	cases := []struct {
		cap  graphics.LineCapStyle
		want float64
	}{
		{graphics.LineCapButt, 80},
		{graphics.LineCapSquare, 96},
		{graphics.LineCapRound, 80 + 4*math.Pi},
	}
	for _, tc := range cases {
		t.Run(tc.cap.String(), func(t *testing.T) {
			r := NewRasteriser(rect.Rect{LLx: 0, LLy: 0, URx: 40, URy: 20})
			r.Flatness = 0.01
			r.Width = 4
			r.Cap = tc.cap
			if got := strokeArea(r, line); math.Abs(got-tc.want) > 0.05 {
				t.Errorf("area %.3f, want %.3f", got, tc.want)
			}
		})
	}
}

// A polyline with a right angle gives an L shape, with the outer corner
// filled by the miter.
func TestStrokeOpenCorner(t *testing.T) {
	corner := (&path.Data{}).
		MoveTo(vec.Vec2{X: 5, Y: 5}).
		LineTo(vec.Vec2{X: 25, Y: 5}).
		LineTo(vec.Vec2{X: 25, Y: 25})
	r := NewRasteriser(rect.Rect{LLx: 0, LLy: 0, URx: 40, URy: 40})
	r.Width = 2
	// 21x2 along the top, 2x19 down the right side
	if got, want := strokeArea(r, corner), 80.0; math.Abs(got-want) > 0.01 {
		t.Errorf("area %.3f, want %.3f", got, want)
	}
}

func TestStrokeDot(t *testing.T) {
	dot := (&path.Data{}).MoveTo(vec.Vec2{X: 10, Y: 10}).LineTo(vec.Vec2{X: 10, Y: 10})
	r := NewRasteriser(rect.Rect{LLx: 0, LLy: 0, URx: 20, URy: 20})
	r.Width = 4
	if got := strokeArea(r, dot); got != 0 {
		t.Errorf("butt cap dot: area %.3f", got)
	}
	r.Cap = graphics.LineCapRound
	r.Flatness = 0.01
	if got, want := strokeArea(r, dot), 4*math.Pi; math.Abs(got-want) > 0.05 {
		t.Errorf("round cap dot: area %.3f, want %.3f", got, want)
	}
}
