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

// Package config reads the settings of the sketch tools from TOML.
//
// A typical file looks like this:
//
//	selection_min = 3.0
//	handle_size = 22.0
//	import_offset = [28.0, 28.0]
//	interpolation = "catmull-rom"
//	cache_size = 64
//	max_pixels = 16777216
//	frame_width = 2.0
//	frame_join = "miter"
//
// Missing keys keep their default values.  Unknown keys are an error.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/image/draw"

	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
	"seehuhn.de/go/sketch/render"
	"seehuhn.de/go/sketch/selection"
	"seehuhn.de/go/sketch/stroke"
)

// Config holds all settings.
type Config struct {
	// SelectionMin is the smallest selection edge, in document units.
	SelectionMin float64 `toml:"selection_min"`

	// HandleSize is the edge length of the handle squares, in device
	// pixels.
	HandleSize float64 `toml:"handle_size"`

	// ImportOffset is where imported images are placed.
	ImportOffset []float64 `toml:"import_offset"`

	// Interpolation selects the resampling filter of the render
	// generator.
	Interpolation string `toml:"interpolation"`

	// CacheSize is the number of render nodes kept by the generator.
	CacheSize int `toml:"cache_size"`

	// MaxPixels limits the size of a single render node, in device
	// pixels.  Zero disables the limit.
	MaxPixels int `toml:"max_pixels"`

	// FrameWidth is the width of the selection frame, in device pixels.
	FrameWidth float64 `toml:"frame_width"`

	// FrameJoin is the corner shape of the selection frame: "miter",
	// "round" or "bevel".
	FrameJoin string `toml:"frame_join"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		SelectionMin:  selection.DefaultSelectionMin,
		HandleSize:    selection.DefaultHandleSize,
		ImportOffset:  []float64{stroke.DefaultOffsetX, stroke.DefaultOffsetY},
		Interpolation: "catmull-rom",
		CacheSize:     render.DefaultCacheSize,
		MaxPixels:     render.DefaultMaxPixels,
		FrameWidth:    2,
		FrameJoin:     "miter",
	}
}

// Load reads and validates a configuration file.
func Load(fname string) (*Config, error) {
	data, err := os.ReadFile(fname)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	return c, nil
}

// Parse decodes and validates TOML data, starting from the defaults.
func Parse(data []byte) (*Config, error) {
	c := Default()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(c); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return nil, fmt.Errorf("config: line %d, column %d: %w", row, col, err)
		}
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks the settings for consistency.
func (c *Config) Validate() error {
	if !(c.SelectionMin > 0) {
		return fmt.Errorf("config: selection_min must be positive, got %g", c.SelectionMin)
	}
	if c.HandleSize < c.SelectionMin {
		return fmt.Errorf("config: handle_size %g is smaller than selection_min %g",
			c.HandleSize, c.SelectionMin)
	}
	if len(c.ImportOffset) != 2 {
		return fmt.Errorf("config: import_offset needs 2 values, got %d", len(c.ImportOffset))
	}
	if c.CacheSize < 0 {
		return fmt.Errorf("config: negative cache_size %d", c.CacheSize)
	}
	if c.MaxPixels < 0 {
		return fmt.Errorf("config: negative max_pixels %d", c.MaxPixels)
	}
	if c.FrameWidth < 0 {
		return fmt.Errorf("config: negative frame_width %g", c.FrameWidth)
	}
	if _, err := render.ParseInterpolation(c.Interpolation); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := parseJoin(c.FrameJoin); err != nil {
		return err
	}
	return nil
}

// Interpolator returns the resampling filter.
func (c *Config) Interpolator() (draw.Interpolator, error) {
	return render.ParseInterpolation(c.Interpolation)
}

// Offset returns the import offset as a vector.
func (c *Config) Offset() vec.Vec2 {
	if len(c.ImportOffset) != 2 {
		return vec.Vec2{X: stroke.DefaultOffsetX, Y: stroke.DefaultOffsetY}
	}
	return vec.Vec2{X: c.ImportOffset[0], Y: c.ImportOffset[1]}
}

// Overlay returns the selection overlay described by the settings.
func (c *Config) Overlay() (selection.Overlay, error) {
	join, err := parseJoin(c.FrameJoin)
	if err != nil {
		return selection.Overlay{}, err
	}
	return selection.Overlay{
		HandleSize: c.HandleSize,
		FrameWidth: c.FrameWidth,
		Join:       join,
	}, nil
}

// Renderer returns a renderer with the built-in templates and a generator
// configured by the settings.
func (c *Config) Renderer() (*render.Renderer, error) {
	interp, err := c.Interpolator()
	if err != nil {
		return nil, err
	}
	gen := render.NewGenerator(c.CacheSize, interp)
	gen.MaxPixels = c.MaxPixels
	return &render.Renderer{
		Templates: render.BuiltinTemplates(),
		Generator: gen,
	}, nil
}

func parseJoin(name string) (graphics.LineJoinStyle, error) {
	switch strings.ToLower(name) {
	case "miter", "":
		return graphics.LineJoinMiter, nil
	case "round":
		return graphics.LineJoinRound, nil
	case "bevel":
		return graphics.LineJoinBevel, nil
	}
	return 0, fmt.Errorf("config: unknown frame_join %q", name)
}
