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

package main

import (
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/graphics/color"

	"seehuhn.de/go/sketch/aabb"
	"seehuhn.de/go/sketch/selection"
	"seehuhn.de/go/sketch/store"
)

// writeLayout writes a one-page PDF showing the stroke outlines in grey
// and the selection frame in black.  One PDF unit is one
// document unit.
func writeLayout(fname string, st *store.Store, page, sel aabb.AABB, ov selection.Overlay) error {
	paper := &pdf.Rectangle{
		URx: page.Maxs.X,
		URy: page.Maxs.Y,
	}
	w, err := document.CreateSinglePage(fname, paper, pdf.V1_7, nil)
	if err != nil {
		return err
	}

	// PDF origin is bottom-left; the page uses top-left.
	w.Transform(matrix.Matrix{1, 0, 0, -1, 0, page.Maxs.Y})

	w.SetStrokeColor(color.DeviceGray(0.6))
	w.SetLineWidth(0.5)
	for _, k := range st.Keys() {
		b, ok := st.Bounds(k)
		if !ok {
			continue
		}
		w.Rectangle(b.Mins.X, b.Mins.Y, b.Width(), b.Height())
		w.Stroke()
	}

	if _, ok := st.SelectionBounds(); ok {
		w.SetStrokeColor(color.DeviceGray(0))
		w.SetLineJoin(ov.Join)
		w.SetLineWidth(max(ov.FrameWidth, 0.5))
		w.Rectangle(sel.Mins.X, sel.Mins.Y, sel.Width(), sel.Height())
		w.Stroke()
	}

	return w.Close()
}
