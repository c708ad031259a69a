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
	"fmt"
	"image"
	"math"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
	"seehuhn.de/go/sketch/aabb"
	"seehuhn.de/go/sketch/raster"
)

// HandleBox returns the device space square of the given corner handle,
// centred on the corner of sel.  sel is in document space.
func HandleBox(sel aabb.AABB, h Handle, scale, handleSize float64) aabb.AABB {
	c := h.Corner(sel).Mul(scale)
	half := vec.Vec2{X: handleSize / 2, Y: handleSize / 2}
	return aabb.AABB{Mins: c.Sub(half), Maxs: c.Add(half)}
}

// HandleAt returns the handle under the device space point p.  Corner
// handles take precedence over the body.  The second return value is false
// if p misses the selection and all handles.
func HandleAt(sel aabb.AABB, p vec.Vec2, scale, handleSize float64) (Handle, bool) {
	for _, h := range Corners {
		if HandleBox(sel, h, scale, handleSize).Contains(p) {
			return h, true
		}
	}
	if sel.Scale(scale).Contains(p) {
		return Body, true
	}
	return Body, false
}

// Overlay draws the selection frame and its handles.
type Overlay struct {
	// HandleSize is the edge length of the handle squares in device
	// pixels.
	HandleSize float64

	// FrameWidth is the width of the selection frame in device pixels.
	FrameWidth float64

	// Join is the corner shape of the frame.
	Join graphics.LineJoinStyle
}

// DefaultOverlay returns an overlay with the default handle size, a two
// pixel frame and mitred corners.
func DefaultOverlay() Overlay {
	return Overlay{
		HandleSize: DefaultHandleSize,
		FrameWidth: 2,
		Join:       graphics.LineJoinMiter,
	}
}

// Mask renders the overlay for the document space selection sel at the
// given scale into an alpha mask.  The mask rectangle is in device
// coordinates and covers the frame and all handles.
func (o Overlay) Mask(sel aabb.AABB, scale float64) (*image.Alpha, error) {
	if !sel.IsValid() || !(scale > 0) {
		return nil, fmt.Errorf("selection: cannot draw overlay for %s at scale %g", sel, scale)
	}
	dev := sel.Scale(scale)
	d := o.FrameWidth / 2
	margin := max(d, o.HandleSize/2)

	pix := image.Rect(
		int(math.Floor(dev.Mins.X-margin)), int(math.Floor(dev.Mins.Y-margin)),
		int(math.Ceil(dev.Maxs.X+margin)), int(math.Ceil(dev.Maxs.Y+margin)))
	clip := rect.Rect{
		LLx: float64(pix.Min.X), LLy: float64(pix.Min.Y),
		URx: float64(pix.Max.X), URy: float64(pix.Max.Y),
	}
	r := raster.NewRasteriser(clip)
	mask := image.NewAlpha(pix)

	if d > 0 {
		r.Width = o.FrameWidth
		r.Join = o.Join
		r.StrokeInto(mask, raster.Rectangle(dev.Rect()))
	}

	if o.HandleSize > 0 {
		for _, h := range Corners {
			r.MaskInto(mask, raster.Rectangle(HandleBox(sel, h, scale, o.HandleSize).Rect()), raster.NonZero)
		}
	}
	return mask, nil
}
