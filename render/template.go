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

// Package render turns stroke geometry into SVG markup and into
// device-resolution render nodes.
//
// Markup is produced from templates stored in an [fs.FS] under fixed
// logical paths (see [BitmapImageTemplate]).  The built-in templates are
// embedded in the package.
package render

import (
	"embed"
	"io/fs"
	"strconv"
	"strings"
	"sync"
	"text/template"
)

// BitmapImageTemplate is the logical path of the markup template for
// bitmap image strokes.
const BitmapImageTemplate = "templates/bitmapimage.svg.tmpl"

//go:embed templates
var builtin embed.FS

// ImageData holds the substitution variables for [BitmapImageTemplate].
type ImageData struct {
	X, Y          float64
	Width, Height float64
	MIME          string // media type of the payload, e.g. "image/png"
	DataBase64    string // payload, standard base64 encoding
}

// Templates looks up and caches markup templates.
// A Templates value is safe for concurrent use.
type Templates struct {
	fsys fs.FS

	mu    sync.Mutex
	cache map[string]*template.Template
}

// NewTemplates returns a template set reading from fsys.
func NewTemplates(fsys fs.FS) *Templates {
	return &Templates{
		fsys:  fsys,
		cache: make(map[string]*template.Template),
	}
}

// BuiltinTemplates returns a template set reading the embedded templates.
func BuiltinTemplates() *Templates {
	return NewTemplates(builtin)
}

var funcs = template.FuncMap{
	"num": formatNumber,
}

func (t *Templates) lookup(name string) (*template.Template, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if tmpl, ok := t.cache[name]; ok {
		return tmpl, nil
	}

	// any read failure, not only fs.ErrNotExist, means the resource
	// cannot be located
	body, err := fs.ReadFile(t.fsys, name)
	if err != nil {
		return nil, &Error{Kind: ErrTemplateMissing, Path: name, Err: err}
	}

	tmpl, err := template.New(name).Funcs(funcs).Option("missingkey=error").Parse(string(body))
	if err != nil {
		return nil, &Error{Kind: ErrTemplateSyntax, Path: name, Err: err}
	}
	t.cache[name] = tmpl
	return tmpl, nil
}

// Execute fills in the template stored under name.
func (t *Templates) Execute(name string, data any) (string, error) {
	tmpl, err := t.lookup(name)
	if err != nil {
		return "", err
	}
	buf := &strings.Builder{}
	if err := tmpl.Execute(buf, data); err != nil {
		return "", &Error{Kind: ErrTemplateSyntax, Path: name, Err: err}
	}
	return strings.TrimSpace(buf.String()), nil
}

// formatNumber formats x with the minimal number of digits, without
// exponent notation.
func formatNumber(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}
