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

package stroke

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"log/slog"

	"github.com/h2non/filetype"
	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder

	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/sketch"
	"seehuhn.de/go/sketch/aabb"
	"seehuhn.de/go/sketch/render"
)

// KindBitmapImage is the serialisation tag of [BitmapImage].
const KindBitmapImage = "bitmapimage"

// Placement defaults for imported images.
const (
	DefaultWidth   = 500.0
	DefaultHeight  = 500.0
	DefaultOffsetX = 28.0
	DefaultOffsetY = 28.0
)

// BitmapImage is a stroke showing an embedded raster image.
//
// The original encoded bytes are kept unchanged, so that exporting the
// stroke reproduces the imported file.  The image can be placed and
// stretched independently of its pixel size.
type BitmapImage struct {
	data      string   // payload, standard base64
	mime      string   // media type of the payload
	intrinsic vec.Vec2 // pixel size of the decoded image
	bounds    aabb.AABB

	renderer *render.Renderer
	decoded  image.Image  // decoded payload, nil until needed
	node     *render.Node // last good render node
	stale    bool         // geometry changed since node was made
}

// FromBytes decodes an image and returns a stroke showing it at its
// pixel size, with the top-left corner at origin.
//
// The format is detected from the content.  PNG, JPEG, GIF, BMP, TIFF and
// WebP are supported.  If the data cannot be decoded, a *DecodeError is
// returned.
func FromBytes(data []byte, origin vec.Vec2) (*BitmapImage, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if errors.Is(err, image.ErrFormat) {
		return nil, &DecodeError{Kind: ErrUnrecognizedFormat, Err: err}
	} else if err != nil {
		return nil, &DecodeError{Kind: ErrCorruptData, Err: err}
	}

	size := img.Bounds().Size()
	if size.X <= 0 || size.Y <= 0 {
		return nil, &DecodeError{
			Kind: ErrCorruptData,
			Err:  fmt.Errorf("image has size %dx%d", size.X, size.Y),
		}
	}
	intrinsic := vec.Vec2{X: float64(size.X), Y: float64(size.Y)}

	mime := sniffMIME(data, "image/"+format)

	return &BitmapImage{
		data:      base64.StdEncoding.EncodeToString(data),
		mime:      mime,
		intrinsic: intrinsic,
		bounds:    aabb.FromSize(origin, intrinsic),
		decoded:   img,
	}, nil
}

// sniffMIME returns the media type of data, or fallback if the content
// is not recognised.
func sniffMIME(data []byte, fallback string) string {
	kind, err := filetype.Match(data)
	if err != nil || kind == filetype.Unknown {
		return fallback
	}
	return kind.MIME.Value
}

// SetRenderer selects the templates and generator used for rendering.
// A nil renderer selects [render.Default].
func (b *BitmapImage) SetRenderer(r *render.Renderer) {
	b.renderer = r
	b.stale = true
}

func (b *BitmapImage) getRenderer() *render.Renderer {
	if b.renderer != nil {
		return b.renderer
	}
	return render.Default()
}

// Kind implements [Stroke].
func (b *BitmapImage) Kind() string { return KindBitmapImage }

// Bounds implements [Stroke].
func (b *BitmapImage) Bounds() aabb.AABB { return b.bounds }

// IntrinsicSize returns the pixel size of the image.
func (b *BitmapImage) IntrinsicSize() vec.Vec2 { return b.intrinsic }

// MIME returns the media type of the payload.
func (b *BitmapImage) MIME() string { return b.mime }

// DataBase64 returns the payload in standard base64 encoding.
func (b *BitmapImage) DataBase64() string { return b.data }

// Payload returns the original image bytes.
func (b *BitmapImage) Payload() ([]byte, error) {
	return base64.StdEncoding.DecodeString(b.data)
}

// Translate implements [Stroke].
func (b *BitmapImage) Translate(offset vec.Vec2) {
	b.bounds = b.bounds.Translate(offset)
	b.stale = true
}

// Resize implements [Stroke].
func (b *BitmapImage) Resize(newBounds aabb.AABB) {
	b.bounds = newBounds
	b.stale = true
}

// Render implements [Stroke].
//
// The image element is laid out in its own pixel coordinates, with the
// view box set to the intrinsic size, so that the markup does not depend
// on the placement.  The enclosing <svg> element stretches it onto the
// bounds shifted by offset.
func (b *BitmapImage) Render(offset vec.Vec2) (string, error) {
	inner, err := b.getRenderer().Templates.Execute(render.BitmapImageTemplate, render.ImageData{
		X:          0,
		Y:          0,
		Width:      b.intrinsic.X,
		Height:     b.intrinsic.Y,
		MIME:       b.mime,
		DataBase64: b.data,
	})
	if err != nil {
		return "", err
	}

	placed := b.bounds.Translate(offset)
	intrinsic := aabb.FromSize(vec.Vec2{}, b.intrinsic)
	return render.WrapSVG(inner, &placed, &intrinsic, false, false), nil
}

// RegenerateRenderCache implements [Stroke].
func (b *BitmapImage) RegenerateRenderCache(scale float64) error {
	node, err := b.renderNode(scale)
	if err != nil {
		sketch.Logger().Error("cannot regenerate render cache",
			slog.String("kind", b.Kind()),
			slog.Float64("scale", scale),
			slog.Any("err", err))
		return err
	}
	b.node = node
	b.stale = false
	return nil
}

func (b *BitmapImage) renderNode(scale float64) (*render.Node, error) {
	markup, err := b.Render(vec.Vec2{})
	if err != nil {
		return nil, err
	}
	img, err := b.decodedImage()
	if err != nil {
		return nil, err
	}
	return b.getRenderer().Generator.Rasterize(render.AddXMLHeader(markup), b.bounds, scale, img)
}

// decodedImage returns the decoded payload, decoding it on first use.
func (b *BitmapImage) decodedImage() (image.Image, error) {
	if b.decoded != nil {
		return b.decoded, nil
	}
	data, err := b.Payload()
	if err != nil {
		return nil, &render.Error{Kind: render.ErrEncoding, Err: err}
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &render.Error{Kind: render.ErrEncoding, Err: err}
	}
	b.decoded = img
	return img, nil
}

// RenderNode implements [Stroke].
func (b *BitmapImage) RenderNode(scale float64) *render.Node {
	if b.node == nil || b.stale || b.node.Scale != scale {
		_ = b.RegenerateRenderCache(scale)
	}
	return b.node
}

type bitmapImageJSON struct {
	DataBase64    string    `json:"data_base64"`
	MIME          string    `json:"mime,omitempty"`
	Bounds        aabb.AABB `json:"bounds"`
	IntrinsicSize vec.Vec2  `json:"intrinsic_size"`
}

// MarshalJSON implements [json.Marshaler].  The render cache is not
// written.
func (b *BitmapImage) MarshalJSON() ([]byte, error) {
	return json.Marshal(bitmapImageJSON{
		DataBase64:    b.data,
		MIME:          b.mime,
		Bounds:        b.bounds,
		IntrinsicSize: b.intrinsic,
	})
}

// UnmarshalJSON implements [json.Unmarshaler].
func (b *BitmapImage) UnmarshalJSON(data []byte) error {
	var raw bitmapImageJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if !(raw.IntrinsicSize.X > 0 && raw.IntrinsicSize.Y > 0) {
		return fmt.Errorf("stroke: invalid intrinsic size %v", raw.IntrinsicSize)
	}
	if !raw.Bounds.IsValid() {
		return fmt.Errorf("stroke: invalid bounds %s", raw.Bounds)
	}
	payload, err := base64.StdEncoding.DecodeString(raw.DataBase64)
	if err != nil {
		return fmt.Errorf("stroke: invalid payload: %w", err)
	}
	if raw.MIME == "" {
		raw.MIME = sniffMIME(payload, "application/octet-stream")
	}

	*b = BitmapImage{
		data:      raw.DataBase64,
		mime:      raw.MIME,
		intrinsic: raw.IntrinsicSize,
		bounds:    raw.Bounds,
		renderer:  b.renderer,
	}
	return nil
}
