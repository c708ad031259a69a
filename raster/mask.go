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

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// Mask fills p and returns the coverage as an alpha image spanning the
// clip rectangle.
func (r *Rasteriser) Mask(p *path.Data, rule FillRule) *image.Alpha {
	dst := image.NewAlpha(image.Rect(
		int(r.Clip.LLx), int(r.Clip.LLy),
		int(r.Clip.URx), int(r.Clip.URy)))
	r.MaskInto(dst, p, rule)
	return dst
}

// MaskInto fills p and composites the coverage onto dst, using
// source-over compositing of the coverage values.
func (r *Rasteriser) MaskInto(dst *image.Alpha, p *path.Data, rule FillRule) {
	r.Fill(p, rule, compositeOnto(dst))
}

// compositeOnto returns an EmitFunc which composites coverage onto dst.
func compositeOnto(dst *image.Alpha) EmitFunc {
	return func(y, xMin int, coverage []float32) {
		if y < dst.Rect.Min.Y || y >= dst.Rect.Max.Y {
			return
		}
		for i, c := range coverage {
			x := xMin + i
			if x < dst.Rect.Min.X || x >= dst.Rect.Max.X {
				continue
			}
			k := dst.PixOffset(x, y)
			a := float32(dst.Pix[k]) / 255
			a += c * (1 - a)
			dst.Pix[k] = uint8(math.Round(float64(a) * 255))
		}
	}
}

// Rectangle returns a closed, counter-clockwise path around r.
func Rectangle(r rect.Rect) *path.Data {
	return (&path.Data{}).
		MoveTo(vec.Vec2{X: r.LLx, Y: r.LLy}).
		LineTo(vec.Vec2{X: r.URx, Y: r.LLy}).
		LineTo(vec.Vec2{X: r.URx, Y: r.URy}).
		LineTo(vec.Vec2{X: r.LLx, Y: r.URy}).
		Close()
}

// Append adds the subpaths of q to p, keeping q unchanged.
func Append(p, q *path.Data) *path.Data {
	p.Cmds = append(p.Cmds, q.Cmds...)
	p.Coords = append(p.Coords, q.Coords...)
	return p
}
