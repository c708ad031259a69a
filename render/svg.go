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
	"strings"

	"seehuhn.de/go/sketch/aabb"
)

const xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="no"?>` + "\n"

// AddXMLHeader prefixes svg with an XML declaration, unless it already
// has one.
func AddXMLHeader(svg string) string {
	if strings.HasPrefix(svg, "<?xml") {
		return svg
	}
	return xmlHeader + svg
}

// WrapSVG wraps the markup inner in an <svg> element.
//
// If bounds is non-nil, the element is placed at bounds.Mins with the size
// of bounds.  If viewBox is non-nil, it becomes the coordinate system of
// inner; the content is stretched to fill bounds unless
// preserveAspectRatio is set.  If overflow is false, content outside the
// view box is clipped.
func WrapSVG(inner string, bounds, viewBox *aabb.AABB, preserveAspectRatio, overflow bool) string {
	b := &strings.Builder{}
	b.WriteString(`<svg`)
	if bounds != nil {
		attr(b, "x", formatNumber(bounds.Mins.X))
		attr(b, "y", formatNumber(bounds.Mins.Y))
		attr(b, "width", formatNumber(bounds.Width()))
		attr(b, "height", formatNumber(bounds.Height()))
	}
	if viewBox != nil {
		attr(b, "viewBox", strings.Join([]string{
			formatNumber(viewBox.Mins.X),
			formatNumber(viewBox.Mins.Y),
			formatNumber(viewBox.Width()),
			formatNumber(viewBox.Height()),
		}, " "))
	}
	if preserveAspectRatio {
		attr(b, "preserveAspectRatio", "xMidYMid")
	} else {
		attr(b, "preserveAspectRatio", "none")
	}
	if overflow {
		attr(b, "overflow", "visible")
	} else {
		attr(b, "overflow", "hidden")
	}
	attr(b, "xmlns", "http://www.w3.org/2000/svg")
	attr(b, "xmlns:xlink", "http://www.w3.org/1999/xlink")
	b.WriteString(">\n")
	b.WriteString(inner)
	b.WriteString("\n</svg>")
	return b.String()
}

func attr(b *strings.Builder, name, value string) {
	b.WriteByte(' ')
	b.WriteString(name)
	b.WriteString(`="`)
	b.WriteString(value)
	b.WriteByte('"')
}
