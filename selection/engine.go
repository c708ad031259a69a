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
	"log/slog"
	"math"

	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/sketch"
	"seehuhn.de/go/sketch/aabb"
)

// Store is the part of the stroke store used by the engine.
type Store interface {
	// SelectionBounds returns the bounds of the current selection, and
	// false if nothing is selected.
	SelectionBounds() (aabb.AABB, bool)

	// ResizeSelection changes the selection bounds to b, resizing the
	// selected strokes accordingly.
	ResizeSelection(b aabb.AABB)

	// TranslateSelection moves the selection and all selected strokes.
	TranslateSelection(offset vec.Vec2)
}

// State is the phase of a drag interaction.
type State int

const (
	Idle State = iota
	Resizing
	Translating
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Resizing:
		return "resizing"
	case Translating:
		return "translating"
	default:
		return "State(?)"
	}
}

// Op is the kind of a [Command].
type Op int

const (
	OpResize Op = iota + 1
	OpTranslate
)

// Command is a single geometry change of the selection.
type Command struct {
	Op     Op
	Bounds aabb.AABB // new selection bounds, for OpResize
	Offset vec.Vec2  // document space shift, for OpTranslate
}

// Apply performs the command on s.
func (c Command) Apply(s Store) {
	switch c.Op {
	case OpResize:
		s.ResizeSelection(c.Bounds)
	case OpTranslate:
		s.TranslateSelection(c.Offset)
	}
}

// Engine tracks one drag interaction at a time.
//
// All methods must be called from the goroutine which delivers input
// events.  Drag deltas are relative to the pointer position at drag start;
// every update is computed from the selection bounds captured by
// [Engine.Begin], so updates do not accumulate rounding errors.
type Engine struct {
	// SelectionMin is the minimum selection edge length in document
	// units.  Must be positive.
	SelectionMin float64

	// OnChange, if set, is called after every change to the store,
	// typically to request a repaint.
	OnChange func()

	store Store

	state   State
	handle  Handle
	start   aabb.AABB // selection bounds at drag start
	applied vec.Vec2  // translation applied so far
	changed bool      // whether the store was modified in this drag
}

// NewEngine returns an idle engine operating on store.
func NewEngine(store Store, selectionMin float64) *Engine {
	return &Engine{
		SelectionMin: selectionMin,
		store:        store,
	}
}

// State returns the current interaction phase.
func (e *Engine) State() State { return e.state }

// Handle returns the handle of the active drag.
func (e *Engine) Handle() Handle { return e.handle }

// Begin starts a drag on handle h.  It returns false, and the engine stays
// idle, if there is no selection.  A drag which is still active is ended
// first.
func (e *Engine) Begin(h Handle) bool {
	if e.state != Idle {
		e.End()
	}
	start, ok := e.store.SelectionBounds()
	if !ok {
		return false
	}

	e.handle = h
	e.start = start
	e.applied = vec.Vec2{}
	e.changed = false
	if h.IsCorner() {
		e.state = Resizing
	} else {
		e.state = Translating
	}
	sketch.Logger().Debug("drag start",
		slog.String("handle", h.String()),
		slog.String("bounds", start.String()))
	return true
}

// Plan computes the command for a drag delta (in device pixels, relative
// to the drag start) without applying it.  It returns false if no drag is
// active, or if scale is not a positive finite number.
func (e *Engine) Plan(delta vec.Vec2, scale float64) (Command, bool) {
	if !(scale > 0) || math.IsInf(scale, 1) {
		return Command{}, false
	}
	offset := DeviceToDocument(delta, scale)
	switch e.state {
	case Resizing:
		return Command{
			Op:     OpResize,
			Bounds: Resize(e.start, e.handle, offset, e.SelectionMin),
		}, true
	case Translating:
		return Command{
			Op:     OpTranslate,
			Offset: offset.Sub(e.applied),
		}, true
	default:
		return Command{}, false
	}
}

// Update applies a drag delta (in device pixels, relative to the drag
// start) at the given scale factor.  It returns the command which was
// applied, and false if no drag is active or scale is unusable.
func (e *Engine) Update(delta vec.Vec2, scale float64) (Command, bool) {
	cmd, ok := e.Plan(delta, scale)
	if !ok {
		return cmd, false
	}
	cmd.Apply(e.store)
	if cmd.Op == OpTranslate {
		e.applied = e.applied.Add(cmd.Offset)
	}
	e.changed = true
	e.notify()
	return cmd, true
}

// End finishes the active drag, keeping all changes.
func (e *Engine) End() {
	if e.state == Idle {
		return
	}
	sketch.Logger().Debug("drag end", slog.String("handle", e.handle.String()))
	e.reset()
}

// Cancel abandons the active drag.  Changes made by the drag are undone;
// a drag without any updates leaves the store untouched.
func (e *Engine) Cancel() {
	if e.state == Idle {
		return
	}
	if e.changed {
		switch e.state {
		case Resizing:
			e.store.ResizeSelection(e.start)
		case Translating:
			e.store.TranslateSelection(e.applied.Mul(-1))
		}
		e.notify()
	}
	sketch.Logger().Debug("drag cancelled", slog.String("handle", e.handle.String()))
	e.reset()
}

func (e *Engine) reset() {
	e.state = Idle
	e.handle = Body
	e.applied = vec.Vec2{}
	e.changed = false
}

func (e *Engine) notify() {
	if e.OnChange != nil {
		e.OnChange()
	}
}
