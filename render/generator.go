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
	"crypto/sha256"
	"fmt"
	"image"
	"math"
	"strings"
	"sync"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/sketch/aabb"
	"seehuhn.de/go/sketch/raster"
)

// Node is a stroke rendered at a fixed scale factor.
// Nodes are shared through the generator's memo table and must not be
// modified.
type Node struct {
	// Bounds is the placement of the stroke in document space.
	Bounds aabb.AABB

	// Scale is the scale factor the node was rendered at.
	Scale float64

	// Markup is the SVG document describing the stroke.  It identifies
	// the pixels but is not interpreted: the pixels are drawn from the
	// decoded bitmap passed to [Generator.Rasterize].
	Markup string

	// Image holds the pixels.  Image.Rect is in device coordinates: the
	// pixel (x, y) shows the document point (x/Scale, y/Scale).
	Image *image.RGBA
}

// DefaultMaxPixels is the largest node, in device pixels, which a new
// generator renders.
const DefaultMaxPixels = 1 << 24

// maxDeviceCoord bounds the device coordinates of a node.
const maxDeviceCoord = 1 << 30

// Generator turns decoded bitmaps into device-resolution nodes.
//
// The markup passed to [Generator.Rasterize] stands for the bitmap, so
// results are memoised on markup, bounds and scale.  A Generator is safe
// for concurrent use.
type Generator struct {
	// MaxPixels limits the size of a node.  Larger requests fail with
	// [ErrEncoding].  Zero or negative means no limit.  Set before first
	// use.
	MaxPixels int

	interp draw.Interpolator

	mu    sync.Mutex
	size  int
	memo  map[nodeKey]*Node
	order []nodeKey // insertion order, oldest first
	r     *raster.Rasteriser
}

type nodeKey struct {
	markup [sha256.Size]byte
	bounds aabb.AABB
	scale  float64
}

// NewGenerator returns a generator which keeps up to cacheSize nodes and
// resamples bitmaps with interp.  A nil interp selects
// [draw.CatmullRom].
func NewGenerator(cacheSize int, interp draw.Interpolator) *Generator {
	if interp == nil {
		interp = draw.CatmullRom
	}
	return &Generator{
		MaxPixels: DefaultMaxPixels,

		interp: interp,
		size:   max(cacheSize, 0),
		memo:   make(map[nodeKey]*Node),
		r:      raster.NewRasteriser(rect.Rect{}),
	}
}

// Len returns the number of memoised nodes.
func (g *Generator) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.memo)
}

// Rasterize draws the bitmap src into the device-resolution area of
// bounds at the given scale.  The markup is stored in the node and
// identifies src for memoisation; it is not rendered.
//
// The bitmap is stretched to fill bounds.  Device pixels only partially
// covered by bounds receive proportional alpha.  Requests above MaxPixels
// pixels fail without allocating.
func (g *Generator) Rasterize(markup string, bounds aabb.AABB, scale float64, src image.Image) (*Node, error) {
	if !(scale > 0) || math.IsInf(scale, 0) {
		return nil, &Error{Kind: ErrEncoding, Err: fmt.Errorf("invalid scale factor %g", scale)}
	}
	if !bounds.IsValid() {
		return nil, &Error{Kind: ErrEncoding, Err: fmt.Errorf("invalid bounds %s", bounds)}
	}
	if src == nil || src.Bounds().Empty() {
		return nil, &Error{Kind: ErrEncoding, Err: fmt.Errorf("empty source image")}
	}
	dev := bounds.Scale(scale)
	w := math.Ceil(dev.Maxs.X) - math.Floor(dev.Mins.X)
	h := math.Ceil(dev.Maxs.Y) - math.Floor(dev.Mins.Y)
	far := max(math.Abs(dev.Mins.X), math.Abs(dev.Mins.Y), math.Abs(dev.Maxs.X), math.Abs(dev.Maxs.Y))
	tooLarge := !(w*h < math.MaxInt32) || (g.MaxPixels > 0 && w*h > float64(g.MaxPixels))
	if !(far < maxDeviceCoord) || tooLarge {
		return nil, &Error{Kind: ErrEncoding,
			Err: fmt.Errorf("node of %gx%g device pixels is too large", w, h)}
	}

	key := nodeKey{markup: sha256.Sum256([]byte(markup)), bounds: bounds, scale: scale}

	g.mu.Lock()
	defer g.mu.Unlock()

	if node, ok := g.memo[key]; ok {
		return node, nil
	}

	node := &Node{
		Bounds: bounds,
		Scale:  scale,
		Markup: markup,
		Image:  g.draw(bounds, scale, src),
	}
	g.remember(key, node)
	return node, nil
}

func (g *Generator) draw(bounds aabb.AABB, scale float64, src image.Image) *image.RGBA {
	dev := bounds.Scale(scale)
	pix := image.Rect(
		int(math.Floor(dev.Mins.X)), int(math.Floor(dev.Mins.Y)),
		int(math.Ceil(dev.Maxs.X)), int(math.Ceil(dev.Maxs.Y)))
	dst := image.NewRGBA(pix)
	if pix.Empty() || dev.Width() == 0 || dev.Height() == 0 {
		return dst
	}

	sr := src.Bounds()
	sx := dev.Width() / float64(sr.Dx())
	sy := dev.Height() / float64(sr.Dy())
	s2d := f64.Aff3{
		sx, 0, dev.Mins.X - float64(sr.Min.X)*sx,
		0, sy, dev.Mins.Y - float64(sr.Min.Y)*sy,
	}
	scaled := image.NewRGBA(pix)
	g.interp.Transform(scaled, s2d, src, sr, draw.Src, nil)

	g.r.Reset(rect.Rect{
		LLx: float64(pix.Min.X), LLy: float64(pix.Min.Y),
		URx: float64(pix.Max.X), URy: float64(pix.Max.Y),
	})
	mask := g.r.Mask(raster.Rectangle(dev.Rect()), raster.NonZero)

	draw.DrawMask(dst, pix, scaled, pix.Min, mask, pix.Min, draw.Over)
	return dst
}

// remember adds node to the memo table, evicting the oldest entries when
// the table is full.
func (g *Generator) remember(key nodeKey, node *Node) {
	if g.size == 0 {
		return
	}
	for len(g.order) >= g.size {
		delete(g.memo, g.order[0])
		g.order = g.order[1:]
	}
	g.memo[key] = node
	g.order = append(g.order, key)
}

// ParseInterpolation returns the resampling method with the given name:
// "nearest", "approx-bilinear", "bilinear" or "catmull-rom".
func ParseInterpolation(name string) (draw.Interpolator, error) {
	switch strings.ToLower(name) {
	case "nearest":
		return draw.NearestNeighbor, nil
	case "approx-bilinear":
		return draw.ApproxBiLinear, nil
	case "bilinear":
		return draw.BiLinear, nil
	case "catmull-rom", "":
		return draw.CatmullRom, nil
	}
	return nil, fmt.Errorf("unknown interpolation %q", name)
}
