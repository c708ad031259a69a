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
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// strokeSegment is a flattened piece of a stroked path, in user space.
type strokeSegment struct {
	A, B vec.Vec2
	T    vec.Vec2 // unit tangent, from A to B
	N    vec.Vec2 // unit normal, T rotated by 90° counter-clockwise
}

// turn returns the sine of the angle from the direction of s to the
// direction of next.
func (s *strokeSegment) turn(next *strokeSegment) float64 {
	return s.T.X*next.T.Y - s.T.Y*next.T.X
}

// Stroke computes the coverage of the outline of p, drawn with the
// current Width, Cap, Join and MiterLimit.  The emit callback is called
// as for [Rasteriser.Fill].
func (r *Rasteriser) Stroke(p *path.Data, emit EmitFunc) {
	r.flattenStroke(p)

	r.stroke = r.stroke[:0]
	r.strokeOffsets = r.strokeOffsets[:0]

	// a subpath without direction is only visible with round caps
	if r.Cap == graphics.LineCapRound {
		for _, pt := range r.dots {
			start := len(r.stroke)
			r.addArc(pt, r.Width/2, vec.Vec2{X: 1}, 2*math.Pi, true)
			r.strokeOffsets = append(r.strokeOffsets, start)
		}
	}

	for i, start := range r.segsOffsets {
		end := len(r.segs)
		if i+1 < len(r.segsOffsets) {
			end = r.segsOffsets[i+1]
		}
		first := len(r.stroke)
		if r.subpathClosed[i] {
			r.strokeClosed(r.segs[start:end])
		} else {
			r.strokeOpen(r.segs[start:end])
		}
		if len(r.stroke)-first >= 3 {
			r.strokeOffsets = append(r.strokeOffsets, first)
		} else {
			r.stroke = r.stroke[:first]
		}
	}

	// all outlines are filled together, so that overlaps are painted once
	r.edges = r.edges[:0]
	r.haveBox = false
	for i, start := range r.strokeOffsets {
		end := len(r.stroke)
		if i+1 < len(r.strokeOffsets) {
			end = r.strokeOffsets[i+1]
		}
		poly := r.stroke[start:end]
		for j := 1; j < len(poly); j++ {
			r.addEdge(poly[j-1], poly[j])
		}
		r.addEdge(poly[len(poly)-1], poly[0])
	}
	x0, x1, y0, y1, ok := r.edgeRange()
	if !ok {
		return
	}
	r.scan(x0, x1, y0, y1, NonZero, emit)
}

// flattenStroke splits p into subpaths of line segments.
func (r *Rasteriser) flattenStroke(p *path.Data) {
	r.segs = r.segs[:0]
	r.segsOffsets = r.segsOffsets[:0]
	r.subpathClosed = r.subpathClosed[:0]
	r.dots = r.dots[:0]

	var current, start vec.Vec2
	first := 0     // index into segs where the current subpath starts
	open := false  // inside a subpath
	drawn := false // the subpath has a drawing command
	finish := func(closed bool) {
		if !open || (!drawn && len(r.segs) == first) {
			return
		}
		if len(r.segs) == first {
			r.dots = append(r.dots, start)
		} else {
			r.segsOffsets = append(r.segsOffsets, first)
			r.subpathClosed = append(r.subpathClosed, closed)
		}
	}

	k := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			finish(false)
			current = p.Coords[k]
			start = current
			first = len(r.segs)
			open = true
			drawn = false
			k++
		case path.CmdLineTo:
			if open {
				drawn = true
				r.addStrokeSegment(current, p.Coords[k])
				current = p.Coords[k]
			}
			k++
		case path.CmdQuadTo:
			if open {
				drawn = true
				r.flattenQuadratic(current, p.Coords[k], p.Coords[k+1], r.addStrokeSegment)
				current = p.Coords[k+1]
			}
			k += 2
		case path.CmdCubeTo:
			if open {
				drawn = true
				r.flattenCubic(current, p.Coords[k], p.Coords[k+1], p.Coords[k+2], r.addStrokeSegment)
				current = p.Coords[k+2]
			}
			k += 3
		case path.CmdClose:
			if open {
				if current != start {
					r.addStrokeSegment(current, start)
				}
				drawn = true
				finish(true)
				current = start
				first = len(r.segs)
				open = false
				drawn = false
			}
		}
	}
	finish(false)
}

func (r *Rasteriser) addStrokeSegment(a, b vec.Vec2) {
	d := b.Sub(a)
	length := d.Length()
	if length < zeroLengthThreshold {
		return
	}
	t := d.Mul(1 / length)
	r.segs = append(r.segs, strokeSegment{A: a, B: b, T: t, N: vec.Vec2{X: -t.Y, Y: t.X}})
}

// strokeClosed adds the outline of a closed subpath as one polygon: the
// +N side forwards, then the -N side backwards.  Joins are added on the
// outer side of every corner, including the one where the path closes.
func (r *Rasteriser) strokeClosed(segs []strokeSegment) {
	d := r.Width / 2
	n := len(segs)
	first := &segs[0]
	last := &segs[n-1]

	r.stroke = append(r.stroke, first.A.Add(first.N.Mul(d)))
	for i := range segs {
		seg := &segs[i]
		next := first
		if i < n-1 {
			next = &segs[i+1]
		}
		r.corner(seg, next, d, true)
	}

	r.corner(last, first, d, false)
	for i := n - 1; i > 0; i-- {
		r.corner(&segs[i-1], &segs[i], d, false)
	}
	r.stroke = append(r.stroke, first.A.Sub(first.N.Mul(d)))
}

// corner adds the outline vertices where seg meets next.  On the +N side
// (forward pass) the vertices are added in path direction, on the -N side
// in reverse.
func (r *Rasteriser) corner(seg, next *strokeSegment, d float64, plusSide bool) {
	sin := seg.turn(next)
	P := seg.B
	if plusSide {
		switch {
		case math.Abs(sin) < collinearityThreshold:
			r.stroke = append(r.stroke, P.Add(seg.N.Mul(d)), P.Add(next.N.Mul(d)))
		case sin > 0: // +N is the inner side
			r.addInner(P, seg.T, next.T, seg.N, next.N, d, true)
		default:
			r.stroke = append(r.stroke, P.Add(seg.N.Mul(d)))
			r.addJoin(P, seg.T, next.T, d, true)
			r.stroke = append(r.stroke, P.Add(next.N.Mul(d)))
		}
		return
	}
	switch {
	case math.Abs(sin) < collinearityThreshold:
		r.stroke = append(r.stroke, P.Sub(next.N.Mul(d)), P.Sub(seg.N.Mul(d)))
	case sin > 0: // -N is the outer side
		r.stroke = append(r.stroke, P.Sub(next.N.Mul(d)))
		r.addJoin(P, seg.T, next.T, d, false)
		r.stroke = append(r.stroke, P.Sub(seg.N.Mul(d)))
	default:
		r.addInner(P, seg.T, next.T, seg.N, next.N, d, false)
	}
}

// strokeOpen adds the outline of an open subpath, with caps at both ends.
func (r *Rasteriser) strokeOpen(segs []strokeSegment) {
	d := r.Width / 2
	first := &segs[0]
	last := &segs[len(segs)-1]

	r.addCap(first.A, first.T.Mul(-1), d)

	skip := false
	for i := range segs {
		seg := &segs[i]
		if !skip {
			r.stroke = append(r.stroke, seg.A.Add(seg.N.Mul(d)))
		}
		skip = false
		if i == len(segs)-1 {
			r.stroke = append(r.stroke, seg.B.Add(seg.N.Mul(d)))
			break
		}
		next := &segs[i+1]
		sin := seg.turn(next)
		switch {
		case math.Abs(sin) < collinearityThreshold:
			r.stroke = append(r.stroke, seg.B.Add(seg.N.Mul(d)))
		case sin > 0:
			skip = r.addInner(seg.B, seg.T, next.T, seg.N, next.N, d, true)
		default:
			r.stroke = append(r.stroke, seg.B.Add(seg.N.Mul(d)))
			r.addJoin(seg.B, seg.T, next.T, d, true)
		}
	}

	r.addCap(last.B, last.T, d)

	skip = false
	for i := len(segs) - 1; i >= 0; i-- {
		seg := &segs[i]
		if !skip {
			r.stroke = append(r.stroke, seg.B.Sub(seg.N.Mul(d)))
		}
		skip = false
		if i == 0 {
			r.stroke = append(r.stroke, seg.A.Sub(seg.N.Mul(d)))
			break
		}
		prev := &segs[i-1]
		sin := prev.turn(seg)
		switch {
		case math.Abs(sin) < collinearityThreshold:
			r.stroke = append(r.stroke, seg.A.Sub(seg.N.Mul(d)))
		case sin > 0:
			r.stroke = append(r.stroke, seg.A.Sub(seg.N.Mul(d)))
			r.addJoin(seg.A, prev.T, seg.T, d, false)
		default:
			skip = r.addInner(seg.A, prev.T, seg.T, prev.N, seg.N, d, false)
		}
	}
}

// addCap adds a line cap at P.  T points away from the line.
func (r *Rasteriser) addCap(P, T vec.Vec2, d float64) {
	N := vec.Vec2{X: -T.Y, Y: T.X}
	switch r.Cap {
	case graphics.LineCapSquare:
		ext := P.Add(T.Mul(d))
		r.stroke = append(r.stroke, ext.Add(N.Mul(d)), ext.Sub(N.Mul(d)))
	case graphics.LineCapRound:
		r.addArc(P, d, N, -math.Pi, true)
	}
}

// addInner adds the vertex on the inner side of a corner: the
// intersection of the two offset lines if it exists, or else both offset
// points.  The result reports whether the intersection was used.
func (r *Rasteriser) addInner(P, T1, T2, N1, N2 vec.Vec2, d float64, plusSide bool) bool {
	cos := T1.Dot(T2)
	half := math.Sqrt((1 + cos) / 2) // cos(θ/2)
	dir := N1.Add(N2)
	if !plusSide {
		dir = dir.Mul(-1)
	}
	if l := dir.Length(); cos < 1-1e-9 && half > 1e-9 && l > 1e-9 {
		r.stroke = append(r.stroke, P.Add(dir.Mul(d/(half*l))))
		return true
	}
	if plusSide {
		r.stroke = append(r.stroke, P.Add(N1.Mul(d)), P.Add(N2.Mul(d)))
	} else {
		r.stroke = append(r.stroke, P.Sub(N1.Mul(d)), P.Sub(N2.Mul(d)))
	}
	return false
}

// addJoin adds the join geometry at P, where the tangent turns from T1 to
// T2, on the given side of the stroke.  The offset points on both sides
// of the join are added by the caller.
func (r *Rasteriser) addJoin(P, T1, T2 vec.Vec2, d float64, plusSide bool) {
	cos := T1.Dot(T2)
	sin := T1.X*T2.Y - T1.Y*T2.X
	if math.Abs(sin) < collinearityThreshold {
		return
	}
	if cos < cuspCosineThreshold {
		r.addCap(P, T1, d)
		r.addCap(P, T2.Mul(-1), d)
		return
	}

	switch r.Join {
	case graphics.LineJoinRound:
		angle := math.Acos(max(-1, min(1, cos)))
		if plusSide {
			start := vec.Vec2{X: -T1.Y, Y: T1.X}
			if sin < 0 {
				angle = -angle
			}
			r.addArc(P, d, start, angle, false)
		} else {
			start := vec.Vec2{X: T2.Y, Y: -T2.X}
			if sin > 0 {
				angle = -angle
			}
			r.addArc(P, d, start, angle, false)
		}

	case graphics.LineJoinBevel:
		// the two offset points are connected directly

	default: // miter
		// the miter length relative to the width is 1/sin(φ/2), where φ
		// is the angle at the corner, and sin(φ/2) = cos(θ/2)
		half := math.Sqrt((1 + cos) / 2)
		if half <= 0 || 1/half > r.MiterLimit+1e-10 {
			return
		}
		bisector := vec.Vec2{X: -T1.Y - T2.Y, Y: T1.X + T2.X}
		if !plusSide {
			bisector = bisector.Mul(-1)
		}
		if l := bisector.Length(); l > zeroLengthThreshold {
			r.stroke = append(r.stroke, P.Add(bisector.Mul(d/(half*l))))
		}
	}
}

// addArc adds vertices along a circular arc around center, starting in
// direction startDir and sweeping by the given angle (positive is
// counter-clockwise).  The start point is only added if includeStart is
// set.
func (r *Rasteriser) addArc(center vec.Vec2, radius float64, startDir vec.Vec2, sweep float64, includeStart bool) {
	devRadius := max(
		r.linear(vec.Vec2{X: radius}).Length(),
		r.linear(vec.Vec2{Y: radius}).Length())

	// a chord of angle θ deviates from the circle by radius·(1 - cos(θ/2))
	n := 1
	if devRadius >= r.Flatness {
		step := 2 * math.Acos(1-r.Flatness/devRadius)
		if !(step > 0) {
			step = math.Pi / 4
		}
		n = max(int(math.Ceil(math.Abs(sweep)/step)), 1)
	}

	i0 := 1
	if includeStart {
		i0 = 0
	}
	dt := sweep / float64(n)
	for i := i0; i <= n; i++ {
		sin, cos := math.Sincos(float64(i) * dt)
		dir := vec.Vec2{
			X: startDir.X*cos - startDir.Y*sin,
			Y: startDir.X*sin + startDir.Y*cos,
		}
		r.stroke = append(r.stroke, center.Add(dir.Mul(radius)))
	}
}

// StrokeInto strokes p and composites the coverage onto dst, like
// [Rasteriser.MaskInto].
func (r *Rasteriser) StrokeInto(dst *image.Alpha, p *path.Data) {
	r.Stroke(p, compositeOnto(dst))
}
