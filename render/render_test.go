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
	"errors"
	"image"
	"image/color"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/draw"

	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/sketch/aabb"
)

func TestBuiltinTemplate(t *testing.T) {
	out, err := BuiltinTemplates().Execute(BitmapImageTemplate, ImageData{
		X: 0, Y: 0, Width: 640, Height: 480.5,
		MIME: "image/png", DataBase64: "AAAA",
	})
	require.NoError(t, err)
	assert.Contains(t, out, `width="640"`)
	assert.Contains(t, out, `height="480.5"`)
	assert.Contains(t, out, `href="data:image/png;base64,AAAA"`)
}

func TestTemplateMissing(t *testing.T) {
	tmpl := NewTemplates(fstest.MapFS{})
	_, err := tmpl.Execute(BitmapImageTemplate, ImageData{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTemplateMissing))

	var rerr *Error
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, BitmapImageTemplate, rerr.Path)
}

func TestTemplateSyntax(t *testing.T) {
	fsys := fstest.MapFS{
		"broken.tmpl":  {Data: []byte(`<image x="{{num .X"/>`)},
		"unknown.tmpl": {Data: []byte(`<image x="{{.Nope}}"/>`)},
	}
	tmpl := NewTemplates(fsys)

	_, err := tmpl.Execute("broken.tmpl", ImageData{})
	assert.True(t, errors.Is(err, ErrTemplateSyntax), "parse error: %v", err)

	_, err = tmpl.Execute("unknown.tmpl", ImageData{})
	assert.True(t, errors.Is(err, ErrTemplateSyntax), "execution error: %v", err)
}

func TestWrapSVG(t *testing.T) {
	bounds := aabb.New(vec.Vec2{X: 10, Y: 20}, vec.Vec2{X: 110, Y: 70})
	viewBox := aabb.New(vec.Vec2{}, vec.Vec2{X: 400, Y: 200})
	svg := WrapSVG("<g/>", &bounds, &viewBox, false, false)

	assert.True(t, strings.HasPrefix(svg, "<svg "))
	assert.Contains(t, svg, `x="10" y="20" width="100" height="50"`)
	assert.Contains(t, svg, `viewBox="0 0 400 200"`)
	assert.Contains(t, svg, `preserveAspectRatio="none"`)
	assert.Contains(t, svg, `overflow="hidden"`)
	assert.Contains(t, svg, "\n<g/>\n")
	assert.True(t, strings.HasSuffix(svg, "</svg>"))

	withHeader := AddXMLHeader(svg)
	assert.True(t, strings.HasPrefix(withHeader, "<?xml"))
	assert.Equal(t, withHeader, AddXMLHeader(withHeader))
}

func checker(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			if (x+y)%2 == 0 {
				img.Set(x, y, color.RGBA{R: 255, A: 255})
			} else {
				img.Set(x, y, color.RGBA{B: 255, A: 255})
			}
		}
	}
	return img
}

func TestRasterizeSize(t *testing.T) {
	g := NewGenerator(4, draw.NearestNeighbor)
	bounds := aabb.New(vec.Vec2{X: 10, Y: 10}, vec.Vec2{X: 20, Y: 15})

	node, err := g.Rasterize("m", bounds, 2, checker(4, 4))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(20, 20, 40, 30), node.Image.Rect)
	assert.Equal(t, 2.0, node.Scale)
	assert.Equal(t, bounds, node.Bounds)

	// fully covered pixels are opaque
	assert.Equal(t, uint8(255), node.Image.RGBAAt(25, 25).A)
}

func TestRasterizeFractionalEdge(t *testing.T) {
	g := NewGenerator(0, draw.NearestNeighbor)
	bounds := aabb.New(vec.Vec2{X: 0.5, Y: 0}, vec.Vec2{X: 4, Y: 4})

	node, err := g.Rasterize("m", bounds, 1, checker(2, 2))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 4, 4), node.Image.Rect)

	a := node.Image.RGBAAt(0, 1).A
	assert.InDelta(t, 128, float64(a), 2, "half covered pixel")
	assert.Equal(t, uint8(255), node.Image.RGBAAt(2, 1).A)
}

func TestRasterizeMemo(t *testing.T) {
	g := NewGenerator(2, nil)
	src := checker(8, 8)
	b1 := aabb.New(vec.Vec2{}, vec.Vec2{X: 8, Y: 8})
	b2 := b1.Translate(vec.Vec2{X: 1})
	b3 := b1.Translate(vec.Vec2{X: 2})

	n1, err := g.Rasterize("m", b1, 1, src)
	require.NoError(t, err)
	again, err := g.Rasterize("m", b1, 1, src)
	require.NoError(t, err)
	assert.Same(t, n1, again)

	// a fresh generator must produce identical pixels
	fresh, err := NewGenerator(0, nil).Rasterize("m", b1, 1, src)
	require.NoError(t, err)
	assert.Equal(t, n1.Image.Pix, fresh.Image.Pix)

	_, err = g.Rasterize("m", b2, 1, src)
	require.NoError(t, err)
	_, err = g.Rasterize("m", b3, 1, src)
	require.NoError(t, err)
	assert.Equal(t, 2, g.Len())

	evicted, err := g.Rasterize("m", b1, 1, src)
	require.NoError(t, err)
	assert.NotSame(t, n1, evicted)
}

func TestRasterizeInvalid(t *testing.T) {
	g := NewGenerator(1, nil)
	bounds := aabb.New(vec.Vec2{}, vec.Vec2{X: 1, Y: 1})

	_, err := g.Rasterize("m", bounds, 0, checker(1, 1))
	assert.True(t, errors.Is(err, ErrEncoding))

	_, err = g.Rasterize("m", bounds, 1, nil)
	assert.True(t, errors.Is(err, ErrEncoding))

	inverted := aabb.AABB{Mins: vec.Vec2{X: 2}, Maxs: vec.Vec2{X: 1}}
	_, err = g.Rasterize("m", inverted, 1, checker(1, 1))
	assert.True(t, errors.Is(err, ErrEncoding))
}

func TestRasterizeTooLarge(t *testing.T) {
	g := NewGenerator(0, nil)
	huge := aabb.New(vec.Vec2{}, vec.Vec2{X: 1e10, Y: 1e10})
	_, err := g.Rasterize("m", huge, 1, checker(4, 4))
	assert.True(t, errors.Is(err, ErrEncoding))

	far := aabb.New(vec.Vec2{X: 1e20}, vec.Vec2{X: 1e20 + 4, Y: 4})
	_, err = g.Rasterize("m", far, 1, checker(4, 4))
	assert.True(t, errors.Is(err, ErrEncoding))

	g.MaxPixels = 100
	_, err = g.Rasterize("m", aabb.New(vec.Vec2{}, vec.Vec2{X: 20, Y: 20}), 1, checker(4, 4))
	assert.True(t, errors.Is(err, ErrEncoding))
	node, err := g.Rasterize("m", aabb.New(vec.Vec2{}, vec.Vec2{X: 10, Y: 10}), 1, checker(4, 4))
	require.NoError(t, err)
	assert.Equal(t, 10, node.Image.Rect.Dx())
}

func TestRasterizeZeroWidth(t *testing.T) {
	g := NewGenerator(1, nil)
	bounds := aabb.New(vec.Vec2{X: 3, Y: 3}, vec.Vec2{X: 3, Y: 9})
	node, err := g.Rasterize("m", bounds, 1, checker(2, 2))
	require.NoError(t, err)
	assert.True(t, node.Image.Rect.Empty())
}

func TestParseInterpolation(t *testing.T) {
	for _, name := range []string{"nearest", "approx-bilinear", "bilinear", "catmull-rom", ""} {
		_, err := ParseInterpolation(name)
		assert.NoError(t, err, name)
	}
	_, err := ParseInterpolation("lanczos")
	assert.Error(t, err)
}
