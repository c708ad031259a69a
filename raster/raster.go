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

// Package raster computes anti-aliased coverage for filled and stroked
// paths.
//
// Coverage is the fraction of each device pixel covered by the filled
// path, from 0 (outside) to 1 (inside).  The render generator uses this
// to clip resampled bitmaps to fractional device positions, the selection
// overlay uses it to draw the selection frame and its handles.
package raster

import (
	"cmp"
	"math"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// FillRule selects how the interior of a path is determined.
type FillRule int

const (
	NonZero FillRule = iota
	EvenOdd
)

// EmitFunc receives the coverage for a horizontal run of pixels in row y,
// starting at column xMin.  The slice is only valid during the call.
type EmitFunc func(y, xMin int, coverage []float32)

// edge is a non-horizontal line segment in device coordinates.
type edge struct {
	x0, y0 float64
	x1, y1 float64
	dxdy   float64 // (x1-x0)/(y1-y0)
}

func (e *edge) yMin() float64 { return min(e.y0, e.y1) }
func (e *edge) yMax() float64 { return max(e.y0, e.y1) }

// Rasteriser converts paths to pixel coverage.
// A Rasteriser can be reused for many paths; its internal buffers grow
// as needed and are kept between calls.
//
// A Rasteriser is not safe for concurrent use.
type Rasteriser struct {
	// CTM maps user space to device space.  Must be non-singular.
	CTM matrix.Matrix

	// Clip limits output to this device rectangle.
	// Coordinates must be integers.
	Clip rect.Rect

	// Flatness is the curve approximation tolerance in device pixels.
	// Must be positive.
	Flatness float64

	// Width is the stroke width in user space units.
	Width float64

	// Cap is the shape of the ends of open subpaths when stroking.
	Cap graphics.LineCapStyle

	// Join is the shape of stroke corners.
	Join graphics.LineJoinStyle

	// MiterLimit limits the length of miter joins, relative to the
	// stroke width.  Longer miters are drawn as bevels.  Must be at
	// least 1.
	MiterLimit float64

	edges  []edge
	active []int
	cover  []float32 // per pixel change of the running cover value
	area   []float32 // per pixel area contribution

	// device space bounding box of the collected edges
	haveBox bool
	devX0   float64
	devX1   float64
	devY0   float64
	devY1   float64

	// stroking buffers
	segs          []strokeSegment // flattened segments of all subpaths
	segsOffsets   []int           // start of each subpath in segs
	subpathClosed []bool
	dots          []vec.Vec2 // subpaths without direction
	stroke        []vec.Vec2 // outline vertices of all stroke polygons
	strokeOffsets []int      // start of each polygon in stroke
}

// NewRasteriser returns a Rasteriser for the given clip rectangle, with
// the identity transformation and the default flatness.
func NewRasteriser(clip rect.Rect) *Rasteriser {
	r := &Rasteriser{}
	r.Reset(clip)
	return r
}

// Reset restores the defaults for the given clip rectangle, keeping the
// internal buffers.
func (r *Rasteriser) Reset(clip rect.Rect) {
	r.CTM = matrix.Identity
	r.Clip = clip
	r.Flatness = defaultFlatness
	r.Width = 1
	r.Cap = graphics.LineCapButt
	r.Join = graphics.LineJoinMiter
	r.MiterLimit = defaultMiterLimit
	r.edges = r.edges[:0]
	r.active = r.active[:0]
}

// FillNonZero fills p using the nonzero winding rule.
func (r *Rasteriser) FillNonZero(p *path.Data, emit EmitFunc) {
	r.Fill(p, NonZero, emit)
}

// FillEvenOdd fills p using the even-odd rule.
func (r *Rasteriser) FillEvenOdd(p *path.Data, emit EmitFunc) {
	r.Fill(p, EvenOdd, emit)
}

// Fill fills p using the given rule.  The emit callback is called once
// for every row which has non-zero coverage, in increasing order of y.
func (r *Rasteriser) Fill(p *path.Data, rule FillRule, emit EmitFunc) {
	x0, x1, y0, y1, ok := r.collectEdges(p)
	if !ok {
		return
	}
	r.scan(x0, x1, y0, y1, rule, emit)
}

// scan computes the coverage of the collected edges, row by row.
func (r *Rasteriser) scan(x0, x1, y0, y1 int, rule FillRule, emit EmitFunc) {
	width := x1 - x0

	r.cover = slices.Grow(r.cover[:0], width)[:width]
	r.area = slices.Grow(r.area[:0], width)[:width]

	slices.SortFunc(r.edges, func(a, b edge) int {
		return cmp.Compare(a.yMin(), b.yMin())
	})

	r.active = r.active[:0]
	next := 0
	for y := y0; y < y1; y++ {
		top := float64(y)
		bot := float64(y + 1)

		for next < len(r.edges) && r.edges[next].yMin() < bot {
			r.active = append(r.active, next)
			next++
		}

		// drop edges which end above this row
		r.active = slices.DeleteFunc(r.active, func(i int) bool {
			return r.edges[i].yMax() <= top
		})
		if len(r.active) == 0 {
			continue
		}

		clear(r.cover)
		clear(r.area)
		for _, i := range r.active {
			accumulate(&r.edges[i], y, r.cover, r.area, x0, x1)
		}

		if rule == NonZero {
			integrateNonZero(r.cover, r.area)
		} else {
			integrateEvenOdd(r.cover, r.area)
		}
		if run, offset := trimZeros(r.cover); run != nil {
			emit(y, x0+offset, run)
		}
	}
}

// collectEdges flattens p into device space edges and returns the pixel
// range touched by the edges, intersected with the clip rectangle.
func (r *Rasteriser) collectEdges(p *path.Data) (x0, x1, y0, y1 int, ok bool) {
	r.edges = r.edges[:0]
	r.haveBox = false

	var current, start vec.Vec2
	k := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			// subpaths are implicitly closed for filling
			if current != start {
				r.addEdge(current, start)
			}
			current = p.Coords[k]
			start = current
			k++
		case path.CmdLineTo:
			r.addEdge(current, p.Coords[k])
			current = p.Coords[k]
			k++
		case path.CmdQuadTo:
			r.flattenQuadratic(current, p.Coords[k], p.Coords[k+1], r.addEdge)
			current = p.Coords[k+1]
			k += 2
		case path.CmdCubeTo:
			r.flattenCubic(current, p.Coords[k], p.Coords[k+1], p.Coords[k+2], r.addEdge)
			current = p.Coords[k+2]
			k += 3
		case path.CmdClose:
			if current != start {
				r.addEdge(current, start)
			}
			current = start
		}
	}
	if current != start {
		r.addEdge(current, start)
	}
	return r.edgeRange()
}

// edgeRange returns the pixel range touched by the collected edges,
// intersected with the clip rectangle.
func (r *Rasteriser) edgeRange() (x0, x1, y0, y1 int, ok bool) {
	if len(r.edges) == 0 {
		return 0, 0, 0, 0, false
	}

	x0 = max(int(math.Floor(r.devX0)), int(r.Clip.LLx))
	x1 = min(int(math.Floor(r.devX1))+1, int(r.Clip.URx))
	y0 = max(int(math.Floor(r.devY0)), int(r.Clip.LLy))
	y1 = min(int(math.Floor(r.devY1))+1, int(r.Clip.URy))
	if x0 >= x1 || y0 >= y1 {
		return 0, 0, 0, 0, false
	}
	return x0, x1, y0, y1, true
}

func (r *Rasteriser) toDevice(p vec.Vec2) vec.Vec2 {
	m := r.CTM
	return vec.Vec2{
		X: m[0]*p.X + m[2]*p.Y + m[4],
		Y: m[1]*p.X + m[3]*p.Y + m[5],
	}
}

// linear applies the linear part of the CTM, ignoring the translation.
func (r *Rasteriser) linear(v vec.Vec2) vec.Vec2 {
	m := r.CTM
	return vec.Vec2{X: m[0]*v.X + m[2]*v.Y, Y: m[1]*v.X + m[3]*v.Y}
}

// addEdge adds the user space segment a-b to the edge list.
func (r *Rasteriser) addEdge(a, b vec.Vec2) {
	a = r.toDevice(a)
	b = r.toDevice(b)

	dy := b.Y - a.Y
	if math.Abs(dy) < horizontalEdgeThreshold {
		return
	}
	r.edges = append(r.edges, edge{
		x0: a.X, y0: a.Y,
		x1: b.X, y1: b.Y,
		dxdy: (b.X - a.X) / dy,
	})

	if !r.haveBox {
		r.devX0, r.devX1 = a.X, a.X
		r.devY0, r.devY1 = a.Y, a.Y
		r.haveBox = true
	}
	r.devX0 = min(r.devX0, a.X, b.X)
	r.devX1 = max(r.devX1, a.X, b.X)
	r.devY0 = min(r.devY0, a.Y, b.Y)
	r.devY1 = max(r.devY1, a.Y, b.Y)
}

// flattenQuadratic approximates a quadratic Bézier curve by line segments,
// which are passed to the to function.
func (r *Rasteriser) flattenQuadratic(p0, p1, p2 vec.Vec2, to func(a, b vec.Vec2)) {
	// deviation from the chord is bounded by |p0 - 2p1 + p2| / 4
	dev := r.linear(p0.Sub(p1.Mul(2)).Add(p2).Mul(0.25)).Length()
	n := 1
	if dev > r.Flatness {
		n = int(math.Ceil(math.Sqrt(dev / r.Flatness)))
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		pt := p0.Mul(s * s).Add(p1.Mul(2 * s * t)).Add(p2.Mul(t * t))
		to(prev, pt)
		prev = pt
	}
}

// flattenCubic approximates a cubic Bézier curve by line segments, using
// Wang's formula for the number of segments.
func (r *Rasteriser) flattenCubic(p0, p1, p2, p3 vec.Vec2, to func(a, b vec.Vec2)) {
	d1 := r.linear(p0.Sub(p1.Mul(2)).Add(p2)).Length()
	d2 := r.linear(p1.Sub(p2.Mul(2)).Add(p3)).Length()
	n := 1
	if m := max(d1, d2); m > 0 {
		if f := math.Sqrt(3 * m / (4 * r.Flatness)); f > 1 {
			n = int(math.Ceil(f))
		}
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		pt := p0.Mul(s * s * s).
			Add(p1.Mul(3 * s * s * t)).
			Add(p2.Mul(3 * s * t * t)).
			Add(p3.Mul(t * t * t))
		to(prev, pt)
		prev = pt
	}
}

// accumulate adds the contribution of e within row y to the cover and
// area buffers.  Buffer index 0 corresponds to device column x0.
//
// For each pixel crossed by the edge, cover receives the signed vertical
// extent of the crossing and area receives the same value weighted by the
// fraction of the pixel to the right of the crossing.  Contributions left
// of x0 are folded into index 0, contributions at or right of x1 are
// dropped.
func accumulate(e *edge, y int, cover, area []float32, x0, x1 int) {
	top := max(float64(y), e.yMin())
	bot := min(float64(y+1), e.yMax())
	if bot <= top {
		return
	}

	sign := float32(1)
	if e.y1 < e.y0 {
		sign = -1
	}

	xTop := e.x0 + e.dxdy*(top-e.y0)
	xBot := e.x0 + e.dxdy*(bot-e.y0)
	pixL := int(math.Floor(min(xTop, xBot)))
	pixR := int(math.Floor(max(xTop, xBot)))

	add := func(pix int, segTop, segBot float64) {
		c := sign * float32(segBot-segTop)
		switch {
		case pix < x0:
			cover[0] += c
			area[0] += c
		case pix < x1:
			xMid := e.x0 + e.dxdy*((segTop+segBot)/2-e.y0)
			frac := xMid - float64(pix)
			cover[pix-x0] += c
			area[pix-x0] += c * float32(1-frac)
		}
	}

	if pixR < x0 || pixL == pixR {
		add(pixL, top, bot)
		return
	}
	if pixL >= x1 {
		return
	}

	// the edge crosses several columns: split it at the column boundaries
	dydx := 1 / e.dxdy
	for pix := pixL; pix <= pixR; pix++ {
		ya := e.y0 + dydx*(float64(pix)-e.x0)
		yb := e.y0 + dydx*(float64(pix+1)-e.x0)
		segTop := max(min(ya, yb), top)
		segBot := min(max(ya, yb), bot)
		if segBot > segTop {
			add(pix, segTop, segBot)
		}
	}
}

// integrateNonZero turns accumulated cover/area values into coverage,
// using the nonzero winding rule.  The result is stored in cover.
func integrateNonZero(cover, area []float32) {
	var acc float32
	for i := range cover {
		v := acc + area[i]
		acc += cover[i]
		cover[i] = min(abs32(v), 1)
	}
}

// integrateEvenOdd turns accumulated cover/area values into coverage,
// using the even-odd rule.  The result is stored in cover.
func integrateEvenOdd(cover, area []float32) {
	var acc float32
	for i := range cover {
		v := abs32(acc + area[i])
		acc += cover[i]
		m := v - 2*float32(int(v/2))
		cover[i] = 1 - abs32(1-m)
	}
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

// trimZeros returns the part of coverage between the first and the last
// non-zero value, together with its offset.  If all values are zero, nil
// is returned.
func trimZeros(coverage []float32) ([]float32, int) {
	lo := 0
	for lo < len(coverage) && coverage[lo] == 0 {
		lo++
	}
	if lo == len(coverage) {
		return nil, 0
	}
	hi := len(coverage)
	for coverage[hi-1] == 0 {
		hi--
	}
	return coverage[lo:hi], lo
}

const (
	// defaultFlatness is the default curve tolerance in device pixels.
	defaultFlatness = 0.25

	// defaultMiterLimit is the PDF default miter limit.
	defaultMiterLimit = 10.0

	// horizontalEdgeThreshold is the smallest vertical extent for an edge
	// to be kept.
	horizontalEdgeThreshold = 1e-10

	// zeroLengthThreshold is the shortest stroke segment which is kept.
	zeroLengthThreshold = 1e-10

	// collinearityThreshold is the sine of the turning angle below which
	// two stroke segments need no join.
	collinearityThreshold = 1e-6

	// cuspCosineThreshold detects a path doubling back on itself.
	cuspCosineThreshold = -0.9999
)
