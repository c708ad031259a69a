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

// Command sketchimg imports an image as a bitmap stroke, applies selection
// drags to it and writes the result.
//
// Usage:
//
//	sketchimg -in photo.jpg [-config sketch.toml] [-scale 2]
//	    [-drag br:55,33] [-drag body:20,0]
//	    [-svg out.svg] [-png out.png] [-overlay] [-json out.json] [-pdf out.pdf]
//
// Each -drag flag is one complete drag gesture: the handle ("tl", "tr",
// "bl", "br" or "body") followed by the device pixel offset at the end of
// the gesture.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"golang.org/x/image/draw"

	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/sketch"
	"seehuhn.de/go/sketch/aabb"
	"seehuhn.de/go/sketch/config"
	"seehuhn.de/go/sketch/render"
	"seehuhn.de/go/sketch/selection"
	"seehuhn.de/go/sketch/store"
	"seehuhn.de/go/sketch/stroke"
)

type drag struct {
	handle selection.Handle
	delta  vec.Vec2
}

// dragList collects the -drag flags.
type dragList []drag

func (d *dragList) String() string {
	parts := make([]string, len(*d))
	for i, g := range *d {
		parts[i] = fmt.Sprintf("%s:%g,%g", g.handle, g.delta.X, g.delta.Y)
	}
	return strings.Join(parts, " ")
}

func (d *dragList) Set(s string) error {
	g, err := parseDrag(s)
	if err != nil {
		return err
	}
	*d = append(*d, g)
	return nil
}

func parseDrag(s string) (drag, error) {
	name, offset, ok := strings.Cut(s, ":")
	if !ok {
		return drag{}, fmt.Errorf("drag %q: want handle:dx,dy", s)
	}
	h, err := selection.ParseHandle(name)
	if err != nil {
		return drag{}, err
	}
	xs, ys, ok := strings.Cut(offset, ",")
	if !ok {
		return drag{}, fmt.Errorf("drag %q: want handle:dx,dy", s)
	}
	dx, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return drag{}, fmt.Errorf("drag %q: %w", s, err)
	}
	dy, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return drag{}, fmt.Errorf("drag %q: %w", s, err)
	}
	return drag{handle: h, delta: vec.Vec2{X: dx, Y: dy}}, nil
}

func main() {
	in := flag.String("in", "", "input image")
	configFile := flag.String("config", "", "TOML configuration file")
	scale := flag.Float64("scale", 1, "device pixels per document unit")
	svgOut := flag.String("svg", "", "write SVG markup to this file")
	pngOut := flag.String("png", "", "write the rendered page to this PNG file")
	overlay := flag.Bool("overlay", false, "draw the selection frame and handles into the PNG")
	jsonOut := flag.String("json", "", "write the strokes as JSON to this file")
	pdfOut := flag.String("pdf", "", "write a PDF of the page layout to this file")
	verbose := flag.Bool("v", false, "log drag and render events")
	var drags dragList
	flag.Var(&drags, "drag", "apply a drag `handle:dx,dy` (repeatable)")
	flag.Parse()

	if *verbose {
		sketch.SetLogger(slog.New(slog.NewTextHandler(os.Stderr,
			&slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	if *in == "" {
		fmt.Fprintln(os.Stderr, "sketchimg: missing -in")
		flag.Usage()
		os.Exit(2)
	}

	err := run(*in, *configFile, *scale, drags, outputs{
		svg:     *svgOut,
		png:     *pngOut,
		overlay: *overlay,
		json:    *jsonOut,
		pdf:     *pdfOut,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "sketchimg:", err)
		os.Exit(1)
	}
}

type outputs struct {
	svg, png, json, pdf string
	overlay             bool
}

func run(in, configFile string, scale float64, drags []drag, out outputs) error {
	cfg := config.Default()
	if configFile != "" {
		var err error
		cfg, err = config.Load(configFile)
		if err != nil {
			return err
		}
	}
	renderer, err := cfg.Renderer()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(in)
	if err != nil {
		return err
	}
	img, err := stroke.FromBytes(data, cfg.Offset())
	if err != nil {
		return fmt.Errorf("%s: %w", in, err)
	}
	img.SetRenderer(renderer)

	st := store.New()
	st.SetScale(scale)
	st.Select(st.Insert(img))

	e := selection.NewEngine(st, cfg.SelectionMin)
	for _, d := range drags {
		if !e.Begin(d.handle) {
			return fmt.Errorf("nothing selected")
		}
		e.Update(d.delta, scale)
		e.End()
	}
	sel, _ := st.SelectionBounds()
	sketch.Logger().Info("image placed",
		slog.String("mime", img.MIME()),
		slog.String("bounds", img.Bounds().String()))

	page := aabb.AABB{Maxs: sel.Maxs.Add(cfg.Offset())}

	if out.svg != "" {
		markup, err := img.Render(vec.Vec2{})
		if err != nil {
			return err
		}
		doc := render.AddXMLHeader(render.WrapSVG(markup, &page, &page, true, false))
		if err := os.WriteFile(out.svg, []byte(doc+"\n"), 0o644); err != nil {
			return err
		}
	}

	if out.png != "" {
		var ov *selection.Overlay
		if out.overlay {
			o, err := cfg.Overlay()
			if err != nil {
				return err
			}
			ov = &o
		}
		canvas, err := paint(st, page, scale, sel, ov)
		if err != nil {
			return err
		}
		if err := writePNG(out.png, canvas); err != nil {
			return err
		}
	}

	if out.json != "" {
		data, err := json.MarshalIndent(st, "", "  ")
		if err != nil {
			return err
		}
		if err := os.WriteFile(out.json, append(data, '\n'), 0o644); err != nil {
			return err
		}
	}

	if out.pdf != "" {
		o, err := cfg.Overlay()
		if err != nil {
			return err
		}
		if err := writeLayout(out.pdf, st, page, sel, o); err != nil {
			return err
		}
	}
	return nil
}

var frameColor = color.NRGBA{R: 0x35, G: 0x84, B: 0xe4, A: 0xff}

// paint composites the render nodes of all strokes, and optionally the
// selection overlay, onto a white page.
func paint(st *store.Store, page aabb.AABB, scale float64, sel aabb.AABB, ov *selection.Overlay) (*image.RGBA, error) {
	dev := page.Scale(scale)
	canvas := image.NewRGBA(image.Rect(0, 0, int(dev.Maxs.X+0.5), int(dev.Maxs.Y+0.5)))
	draw.Draw(canvas, canvas.Rect, image.White, image.Point{}, draw.Src)

	for _, node := range st.Nodes() {
		draw.Draw(canvas, node.Image.Rect, node.Image, node.Image.Rect.Min, draw.Over)
	}

	if ov != nil {
		mask, err := ov.Mask(sel, scale)
		if err != nil {
			return nil, err
		}
		frame := image.NewUniform(frameColor)
		draw.DrawMask(canvas, mask.Rect, frame, image.Point{}, mask, mask.Rect.Min, draw.Over)
	}
	return canvas, nil
}

func writePNG(fname string, img image.Image) error {
	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
