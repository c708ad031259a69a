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

package aabb

import (
	"testing"

	"seehuhn.de/go/geom/vec"
)

func box(x0, y0, x1, y1 float64) AABB {
	return AABB{Mins: vec.Vec2{X: x0, Y: y0}, Maxs: vec.Vec2{X: x1, Y: y1}}
}

func TestNewOrdersCorners(t *testing.T) {
	a := New(vec.Vec2{X: 5, Y: 1}, vec.Vec2{X: 2, Y: 7})
	if a != box(2, 1, 5, 7) {
		t.Errorf("got %v", a)
	}
	if !a.IsValid() {
		t.Error("box should be valid")
	}
}

func TestTranslate(t *testing.T) {
	boxes := []AABB{
		box(0, 0, 1, 1),
		box(10, 10, 110, 110),
		box(-3.5, 2, 0, 2),
	}
	offsets := []vec.Vec2{
		{X: 0, Y: 0},
		{X: 20, Y: 0},
		{X: -7.25, Y: 13},
	}
	for _, a := range boxes {
		for _, offset := range offsets {
			b := a.Translate(offset)
			if d := b.Mins.Sub(a.Mins); d != offset {
				t.Errorf("%v+%v: mins moved by %v", a, offset, d)
			}
			if b.Size() != a.Size() {
				t.Errorf("%v+%v: size changed from %v to %v", a, offset, a.Size(), b.Size())
			}
		}
	}
}

func TestClampMin(t *testing.T) {
	cases := []struct {
		name string
		a    AABB
		lo   AABB
		want AABB
	}{
		{"no_change", box(10, 10, 110, 110), box(10, 10, 13, 13), box(10, 10, 110, 110)},
		{"inverted_x", box(10, 10, -85, 100), box(10, 10, 13, 13), box(10, 10, 13, 100)},
		{"collapsed_both", box(50, 50, 50, 50), box(47, 47, 50, 50), box(47, 47, 50, 50)},
		{"inverted_y", box(0, 40, 10, 5), box(0, 37, 3, 40), box(0, 37, 10, 40)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.a.Clamp(&tc.lo, nil)
			if got != tc.want {
				t.Errorf("got %v, want %v", got, tc.want)
			}
			if got.Width() < tc.lo.Width() || got.Height() < tc.lo.Height() {
				t.Errorf("%v is smaller than %v", got, tc.lo)
			}
			if again := got.Clamp(&tc.lo, nil); again != got {
				t.Errorf("not idempotent: %v then %v", got, again)
			}
		})
	}
}

func TestClampMax(t *testing.T) {
	hi := box(0, 0, 100, 100)
	lo := box(40, 40, 43, 43)

	got := box(-10, 20, 150, 60).Clamp(&lo, &hi)
	want := box(0, 20, 100, 60)
	if got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	if again := got.Clamp(&lo, &hi); again != got {
		t.Errorf("not idempotent: %v then %v", got, again)
	}

	// A box outside hi is pushed onto its boundary but never inverted.
	got = box(200, 200, 300, 300).Clamp(nil, &hi)
	if !got.IsValid() || !hi.ContainsBox(got) {
		t.Errorf("got %v", got)
	}
}

func TestMergeContains(t *testing.T) {
	a := box(0, 0, 1, 1)
	b := box(3, -2, 4, 0.5)
	m := a.Merge(b)
	if m != box(0, -2, 4, 1) {
		t.Errorf("got %v", m)
	}
	if !m.ContainsBox(a) || !m.ContainsBox(b) {
		t.Error("merge must contain both inputs")
	}
	if m.Contains(vec.Vec2{X: 5, Y: 0}) {
		t.Error("point outside reported as inside")
	}
}

func TestRectRoundTrip(t *testing.T) {
	a := box(1, 2, 3, 4)
	if b := FromRect(a.Rect()); b != a {
		t.Errorf("got %v, want %v", b, a)
	}
}
