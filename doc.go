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

// Package sketch holds the geometry core of a vector/raster note-taking
// canvas.
//
// Drawable content is modelled as strokes ([seehuhn.de/go/sketch/stroke])
// with axis-aligned bounds ([seehuhn.de/go/sketch/aabb]) in document space.
// Strokes render to scalable SVG markup and, per zoom level, to
// device-resolution nodes ([seehuhn.de/go/sketch/render]).  The selection
// engine ([seehuhn.de/go/sketch/selection]) turns pointer drags in device
// pixels into translations and corner resizes of the current selection,
// which the stroke store ([seehuhn.de/go/sketch/store]) applies to the
// selected strokes.
//
// Document space and device space are related by a scale factor:
// device = document × scale.
package sketch
