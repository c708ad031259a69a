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

import "sync"

// Renderer bundles the template set and the generator used by strokes.
type Renderer struct {
	Templates *Templates
	Generator *Generator
}

// DefaultCacheSize is the number of nodes memoised by the default
// generator.
const DefaultCacheSize = 64

var (
	defaultOnce     sync.Once
	defaultRenderer *Renderer
)

// Default returns the renderer used by strokes which have not been given
// one explicitly.  It uses the built-in templates and Catmull-Rom
// resampling.
func Default() *Renderer {
	defaultOnce.Do(func() {
		defaultRenderer = &Renderer{
			Templates: BuiltinTemplates(),
			Generator: NewGenerator(DefaultCacheSize, nil),
		}
	})
	return defaultRenderer
}
