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

// Package stroke implements the drawable objects of a canvas.
//
// Every stroke variant implements [Stroke].  The set of variants is
// closed: [Unmarshal] knows all kinds, and code which needs
// variant-specific behaviour uses a type switch.  At the moment the only
// variant is [BitmapImage].
package stroke

import (
	"encoding/json"
	"fmt"

	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/sketch/aabb"
	"seehuhn.de/go/sketch/render"
)

// Stroke is the capability set shared by all stroke variants.
// Coordinates are in document space.
type Stroke interface {
	// Kind returns the tag used in serialised form.
	Kind() string

	// Bounds returns the current placement.
	Bounds() aabb.AABB

	// Translate shifts the stroke by offset without changing its size.
	Translate(offset vec.Vec2)

	// Resize replaces the bounds.  The caller must supply a valid box;
	// Resize does not clamp.
	Resize(newBounds aabb.AABB)

	// Render returns SVG markup for the stroke, placed at Bounds()
	// shifted by offset.
	Render(offset vec.Vec2) (string, error)

	// RegenerateRenderCache renders the stroke at the given scale factor
	// and stores the result.  On failure the previous render node is kept.
	RegenerateRenderCache(scale float64) error

	// RenderNode returns the render node for the given scale factor,
	// regenerating it if the geometry or the scale changed since the last
	// call.  If regeneration fails, the last good node is returned, which
	// may be nil if the stroke has never been rendered successfully.
	RenderNode(scale float64) *render.Node
}

// RenderError is the error type returned by the rendering methods.
type RenderError = render.Error

// envelope is the serialised form of a stroke.
type envelope struct {
	Kind string          `json:"kind"`
	Data json.RawMessage `json:"data"`
}

// Marshal encodes s together with its kind tag.  Render caches are not
// included.
func Marshal(s Stroke) ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return json.Marshal(envelope{Kind: s.Kind(), Data: data})
}

// Unmarshal decodes a stroke written by [Marshal].  The render cache of
// the result is empty and is rebuilt on the first call to RenderNode.
func Unmarshal(data []byte) (Stroke, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("stroke: %w", err)
	}

	switch env.Kind {
	case KindBitmapImage:
		b := &BitmapImage{}
		if err := json.Unmarshal(env.Data, b); err != nil {
			return nil, err
		}
		return b, nil
	default:
		return nil, fmt.Errorf("stroke: unknown kind %q", env.Kind)
	}
}
