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

// Package store keeps the strokes of a page in memory, together with the
// current selection.
//
// A [Store] implements [selection.Store], so the selection engine can
// resize and move the selected strokes through it.  The methods of a
// [Store] may be called concurrently.  A stroke obtained from [Store.Get]
// is not guarded by the store's lock and must not be used while other
// goroutines modify the store; [Store.Bounds] returns a copy instead.
package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/sketch"
	"seehuhn.de/go/sketch/aabb"
	"seehuhn.de/go/sketch/render"
	"seehuhn.de/go/sketch/selection"
	"seehuhn.de/go/sketch/stroke"
)

// Key identifies a stroke within a store.
type Key uint64

// Store holds strokes in insertion order.
type Store struct {
	mu sync.Mutex

	next    Key
	order   []Key
	strokes map[Key]stroke.Stroke

	selected  map[Key]bool
	selBounds aabb.AABB
	scale     float64
}

var _ selection.Store = (*Store)(nil)

// New returns an empty store with scale factor 1.
func New() *Store {
	return &Store{
		strokes:  make(map[Key]stroke.Stroke),
		selected: make(map[Key]bool),
		scale:    1,
	}
}

// Insert adds s to the store and returns its key.
func (st *Store) Insert(s stroke.Stroke) Key {
	st.mu.Lock()
	defer st.mu.Unlock()

	st.next++
	k := st.next
	st.order = append(st.order, k)
	st.strokes[k] = s
	return k
}

// Remove deletes a stroke.  If the stroke was selected, the selection
// bounds shrink to the remaining selected strokes.
func (st *Store) Remove(k Key) {
	st.mu.Lock()
	defer st.mu.Unlock()

	if _, ok := st.strokes[k]; !ok {
		return
	}
	delete(st.strokes, k)
	st.order = slices.DeleteFunc(st.order, func(x Key) bool { return x == k })
	if st.selected[k] {
		delete(st.selected, k)
		st.updateSelectionBounds()
	}
}

// Get returns the stroke stored under k.
func (st *Store) Get(k Key) (stroke.Stroke, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()

	s, ok := st.strokes[k]
	return s, ok
}

// Bounds returns the bounds of the stroke stored under k.
func (st *Store) Bounds(k Key) (aabb.AABB, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()

	s, ok := st.strokes[k]
	if !ok {
		return aabb.AABB{}, false
	}
	return s.Bounds(), true
}

// Keys returns the keys of all strokes, in insertion order.
func (st *Store) Keys() []Key {
	st.mu.Lock()
	defer st.mu.Unlock()

	return slices.Clone(st.order)
}

// Len returns the number of strokes.
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()

	return len(st.order)
}

// Select replaces the selection by the given strokes.  Unknown keys are
// ignored.
func (st *Store) Select(keys ...Key) {
	st.mu.Lock()
	defer st.mu.Unlock()

	clear(st.selected)
	for _, k := range keys {
		if _, ok := st.strokes[k]; ok {
			st.selected[k] = true
		}
	}
	st.updateSelectionBounds()
}

// ClearSelection deselects all strokes.
func (st *Store) ClearSelection() {
	st.Select()
}

// Selected returns the keys of the selected strokes, in insertion order.
func (st *Store) Selected() []Key {
	st.mu.Lock()
	defer st.mu.Unlock()

	var keys []Key
	for _, k := range st.order {
		if st.selected[k] {
			keys = append(keys, k)
		}
	}
	return keys
}

func (st *Store) updateSelectionBounds() {
	first := true
	for _, k := range st.order {
		if !st.selected[k] {
			continue
		}
		b := st.strokes[k].Bounds()
		if first {
			st.selBounds = b
			first = false
		} else {
			st.selBounds = st.selBounds.Merge(b)
		}
	}
	if first {
		st.selBounds = aabb.AABB{}
	}
}

// SelectionBounds implements [selection.Store].
func (st *Store) SelectionBounds() (aabb.AABB, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()

	return st.selBounds, len(st.selected) > 0
}

// ResizeSelection implements [selection.Store].
//
// Every selected stroke is mapped from the old selection bounds onto b,
// keeping its relative position and size.  An axis of zero extent is not
// scaled.
func (st *Store) ResizeSelection(b aabb.AABB) {
	st.mu.Lock()
	defer st.mu.Unlock()

	if len(st.selected) == 0 {
		return
	}
	old := st.selBounds
	fx, fy := 1.0, 1.0
	if w := old.Width(); w > 0 {
		fx = b.Width() / w
	}
	if h := old.Height(); h > 0 {
		fy = b.Height() / h
	}
	mapPoint := func(p vec.Vec2) vec.Vec2 {
		return vec.Vec2{
			X: b.Mins.X + (p.X-old.Mins.X)*fx,
			Y: b.Mins.Y + (p.Y-old.Mins.Y)*fy,
		}
	}

	for _, k := range st.order {
		if !st.selected[k] {
			continue
		}
		s := st.strokes[k]
		sb := s.Bounds()
		s.Resize(aabb.AABB{Mins: mapPoint(sb.Mins), Maxs: mapPoint(sb.Maxs)})
		st.regenerate(k, s)
	}
	st.selBounds = b
}

// TranslateSelection implements [selection.Store].
func (st *Store) TranslateSelection(offset vec.Vec2) {
	st.mu.Lock()
	defer st.mu.Unlock()

	if len(st.selected) == 0 {
		return
	}
	for _, k := range st.order {
		if !st.selected[k] {
			continue
		}
		s := st.strokes[k]
		s.Translate(offset)
		st.regenerate(k, s)
	}
	st.selBounds = st.selBounds.Translate(offset)
}

// regenerate refreshes the render cache of a stroke.  Failures are logged
// by the stroke itself and leave the previous cache in place.
func (st *Store) regenerate(k Key, s stroke.Stroke) {
	if err := s.RegenerateRenderCache(st.scale); err != nil {
		sketch.Logger().Debug("render cache kept",
			slog.Uint64("key", uint64(k)),
			slog.Any("err", err))
	}
}

// SetScale sets the device pixels per document unit used for rendering.
// Non-positive values are ignored.
func (st *Store) SetScale(scale float64) {
	if !(scale > 0) {
		return
	}
	st.mu.Lock()
	defer st.mu.Unlock()

	st.scale = scale
}

// Scale returns the current scale factor.
func (st *Store) Scale() float64 {
	st.mu.Lock()
	defer st.mu.Unlock()

	return st.scale
}

// Nodes returns the render nodes of all strokes at the current scale, in
// insertion order.  Strokes which have never rendered successfully are
// skipped.
func (st *Store) Nodes() []*render.Node {
	st.mu.Lock()
	defer st.mu.Unlock()

	nodes := make([]*render.Node, 0, len(st.order))
	for _, k := range st.order {
		if n := st.strokes[k].RenderNode(st.scale); n != nil {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

// MarshalJSON writes the strokes as a JSON array of tagged values.  The
// selection and the render caches are not written.
func (st *Store) MarshalJSON() ([]byte, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	items := make([]json.RawMessage, 0, len(st.order))
	for _, k := range st.order {
		data, err := stroke.Marshal(st.strokes[k])
		if err != nil {
			return nil, fmt.Errorf("store: stroke %d: %w", k, err)
		}
		items = append(items, data)
	}
	return json.Marshal(items)
}

// UnmarshalJSON replaces the contents of the store by the strokes in
// data.  On error the store is left unchanged.
func (st *Store) UnmarshalJSON(data []byte) error {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("store: %w", err)
	}
	strokes := make([]stroke.Stroke, 0, len(items))
	for i, item := range items {
		s, err := stroke.Unmarshal(item)
		if err != nil {
			return fmt.Errorf("store: stroke %d: %w", i, err)
		}
		strokes = append(strokes, s)
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	if st.strokes == nil {
		st.strokes = make(map[Key]stroke.Stroke)
		st.selected = make(map[Key]bool)
		st.scale = 1
	}
	clear(st.strokes)
	clear(st.selected)
	st.order = st.order[:0]
	st.selBounds = aabb.AABB{}
	for _, s := range strokes {
		st.next++
		st.order = append(st.order, st.next)
		st.strokes[st.next] = s
	}
	return nil
}
