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

package store

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/sketch/aabb"
	"seehuhn.de/go/sketch/render"
	"seehuhn.de/go/sketch/selection"
	"seehuhn.de/go/sketch/stroke"
	"seehuhn.de/go/sketch/testcases"
)

// box is a stroke without any visual representation.
type box struct {
	bounds  aabb.AABB
	renders int
}

func (b *box) Kind() string                          { return "box" }
func (b *box) Bounds() aabb.AABB                     { return b.bounds }
func (b *box) Translate(offset vec.Vec2)             { b.bounds = b.bounds.Translate(offset) }
func (b *box) Resize(nb aabb.AABB)                   { b.bounds = nb }
func (b *box) Render(vec.Vec2) (string, error)       { return "", nil }
func (b *box) RegenerateRenderCache(float64) error   { b.renders++; return nil }
func (b *box) RenderNode(scale float64) *render.Node { return nil }

func newBox(x0, y0, x1, y1 float64) *box {
	return &box{bounds: aabb.New(vec.Vec2{X: x0, Y: y0}, vec.Vec2{X: x1, Y: y1})}
}

func pngImage(t *testing.T, w, h int, origin vec.Vec2) *stroke.BitmapImage {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, color.NRGBA{R: uint8(x * 5), G: uint8(y * 5), B: 200, A: 255})
		}
	}
	buf := &bytes.Buffer{}
	require.NoError(t, png.Encode(buf, img))
	b, err := stroke.FromBytes(buf.Bytes(), origin)
	require.NoError(t, err)
	return b
}

func TestInsertRemove(t *testing.T) {
	st := New()
	a := st.Insert(newBox(0, 0, 1, 1))
	b := st.Insert(newBox(1, 1, 2, 2))
	c := st.Insert(newBox(2, 2, 3, 3))
	assert.Equal(t, []Key{a, b, c}, st.Keys())
	assert.Equal(t, 3, st.Len())

	st.Select(a, c)
	st.Remove(c)
	assert.Equal(t, []Key{a, b}, st.Keys())
	_, ok := st.Get(c)
	assert.False(t, ok)

	sel, ok := st.SelectionBounds()
	require.True(t, ok)
	assert.Equal(t, aabb.New(vec.Vec2{}, vec.Vec2{X: 1, Y: 1}), sel)

	st.Remove(a)
	_, ok = st.SelectionBounds()
	assert.False(t, ok)
	assert.Empty(t, st.Selected())
}

func TestSelect(t *testing.T) {
	st := New()
	a := st.Insert(newBox(10, 10, 60, 40))
	b := st.Insert(newBox(50, 30, 110, 110))
	st.Insert(newBox(500, 500, 510, 510))

	_, ok := st.SelectionBounds()
	assert.False(t, ok)

	st.Select(b, a, 999)
	assert.Equal(t, []Key{a, b}, st.Selected())
	sel, ok := st.SelectionBounds()
	require.True(t, ok)
	assert.Equal(t, aabb.New(vec.Vec2{X: 10, Y: 10}, vec.Vec2{X: 110, Y: 110}), sel)

	st.ClearSelection()
	_, ok = st.SelectionBounds()
	assert.False(t, ok)
}

func TestResizeProportional(t *testing.T) {
	st := New()
	a := newBox(10, 10, 60, 60)
	b := newBox(60, 60, 110, 110)
	other := newBox(0, 0, 5, 5)
	st.Select(st.Insert(a), st.Insert(b))
	st.Insert(other)

	target := aabb.New(vec.Vec2{X: 10, Y: 10}, vec.Vec2{X: 210, Y: 60})
	st.ResizeSelection(target)

	assert.Equal(t, aabb.New(vec.Vec2{X: 10, Y: 10}, vec.Vec2{X: 110, Y: 35}), a.bounds)
	assert.Equal(t, aabb.New(vec.Vec2{X: 110, Y: 35}, vec.Vec2{X: 210, Y: 60}), b.bounds)
	assert.Equal(t, aabb.New(vec.Vec2{}, vec.Vec2{X: 5, Y: 5}), other.bounds)
	assert.Equal(t, 1, a.renders)
	assert.Zero(t, other.renders)

	sel, _ := st.SelectionBounds()
	assert.Equal(t, target, sel)
}

func TestResizeZeroExtent(t *testing.T) {
	st := New()
	line := newBox(10, 20, 50, 20)
	st.Select(st.Insert(line))

	st.ResizeSelection(aabb.New(vec.Vec2{X: 10, Y: 30}, vec.Vec2{X: 90, Y: 33}))
	assert.Equal(t, aabb.New(vec.Vec2{X: 10, Y: 30}, vec.Vec2{X: 90, Y: 30}), line.bounds)
}

func TestTranslateScenario(t *testing.T) {
	st := New()
	a := pngImage(t, 40, 30, vec.Vec2{X: 10, Y: 10})
	b := pngImage(t, 20, 50, vec.Vec2{X: 60, Y: 60})
	st.Select(st.Insert(a), st.Insert(b))
	sizeA, sizeB := a.Bounds().Size(), b.Bounds().Size()
	startA, startB := a.Bounds().Mins, b.Bounds().Mins

	e := selection.NewEngine(st, testcases.SelectionMin)
	require.True(t, e.Begin(selection.Body))
	e.Update(vec.Vec2{X: 20, Y: 0}, 1)
	e.End()

	shift := vec.Vec2{X: 20, Y: 0}
	assert.Equal(t, startA.Add(shift), a.Bounds().Mins)
	assert.Equal(t, startB.Add(shift), b.Bounds().Mins)
	assert.Equal(t, sizeA, a.Bounds().Size())
	assert.Equal(t, sizeB, b.Bounds().Size())
}

func TestDragCasesThroughStore(t *testing.T) {
	for _, tc := range testcases.All["resize"] {
		t.Run(tc.Name, func(t *testing.T) {
			st := New()
			s := &box{bounds: tc.Selection}
			st.Select(st.Insert(s))

			h, err := selection.ParseHandle(tc.Handle)
			require.NoError(t, err)
			e := selection.NewEngine(st, testcases.SelectionMin)
			require.True(t, e.Begin(h))
			e.Update(tc.Delta, tc.Scale)
			e.End()

			// a single selected stroke fills the selection
			const eps = 1e-9
			assert.InDelta(t, tc.Want.Mins.X, s.bounds.Mins.X, eps)
			assert.InDelta(t, tc.Want.Mins.Y, s.bounds.Mins.Y, eps)
			assert.InDelta(t, tc.Want.Maxs.X, s.bounds.Maxs.X, eps)
			assert.InDelta(t, tc.Want.Maxs.Y, s.bounds.Maxs.Y, eps)
		})
	}
}

func TestNodes(t *testing.T) {
	st := New()
	st.Insert(pngImage(t, 40, 30, vec.Vec2{X: 10, Y: 10}))
	st.Insert(newBox(0, 0, 1, 1))
	st.SetScale(2)
	st.SetScale(-1)
	assert.Equal(t, 2.0, st.Scale())

	nodes := st.Nodes()
	require.Len(t, nodes, 1)
	assert.Equal(t, 2.0, nodes[0].Scale)
	assert.Equal(t, image.Rect(20, 20, 100, 80), nodes[0].Image.Rect)
}

func TestJSONRoundTrip(t *testing.T) {
	st := New()
	img := pngImage(t, 8, 8, vec.Vec2{X: 28, Y: 28})
	st.Insert(img)
	st.Select(st.Keys()...)

	data, err := json.Marshal(st)
	require.NoError(t, err)

	loaded := New()
	require.NoError(t, json.Unmarshal(data, loaded))
	require.Equal(t, 1, loaded.Len())
	_, ok := loaded.SelectionBounds()
	assert.False(t, ok, "selection is not stored")

	s, _ := loaded.Get(loaded.Keys()[0])
	got, ok := s.(*stroke.BitmapImage)
	require.True(t, ok)
	assert.Equal(t, img.Bounds(), got.Bounds())
	assert.Equal(t, img.DataBase64(), got.DataBase64())

	assert.Error(t, loaded.UnmarshalJSON([]byte(`[{"kind":"lasso","data":{}}]`)))
	assert.Equal(t, 1, loaded.Len(), "failed load keeps the contents")
}

func TestConcurrentAccess(t *testing.T) {
	st := New()
	for i := range 10 {
		x := float64(10 * i)
		st.Insert(newBox(x, 0, x+5, 5))
	}
	st.Select(st.Keys()...)

	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				st.TranslateSelection(vec.Vec2{X: 1, Y: 0})
				st.SelectionBounds()
				st.Nodes()
				for _, k := range st.Keys() {
					st.Bounds(k)
				}
			}
		}()
	}
	wg.Wait()

	sel, _ := st.SelectionBounds()
	assert.Equal(t, aabb.New(vec.Vec2{X: 400, Y: 0}, vec.Vec2{X: 495, Y: 5}), sel)
}

func TestBounds(t *testing.T) {
	st := New()
	k := st.Insert(newBox(1, 2, 3, 4))
	b, ok := st.Bounds(k)
	require.True(t, ok)
	assert.Equal(t, aabb.New(vec.Vec2{X: 1, Y: 2}, vec.Vec2{X: 3, Y: 4}), b)

	st.Remove(k)
	_, ok = st.Bounds(k)
	assert.False(t, ok)
}
