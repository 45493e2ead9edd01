// seehuhn.de/go/impose - automated imposition of print jobs onto press sheets
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

// Package render drives the drawing passes which turn a planned layout
// into output sheets.
//
// The package does not draw anything itself.  It computes geometry via
// the layout, rotate and marks packages and issues drawing commands
// through the [Doc] and [Canvas] interfaces; the pdfdraw package
// implements these on top of seehuhn.de/go/pdf, and [Recorder]
// implements them for tests.
package render

import (
	"image"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/impose/rotate"
)

// ArtPage is one embedded artwork page, ready to be drawn.
type ArtPage interface {
	// Size returns the page size in user space units.
	Size() (w, h float64)
}

// Art is an embedded artwork document.  Implementations memoize their
// pages: requesting the same page twice returns the same handle.
type Art interface {
	NumPages() int
	Page(i int) (ArtPage, error)
}

// Canvas draws onto one output sheet.
//
// All angles are quarter-turn placement rotations; rotated objects turn
// about their origin.
type Canvas interface {
	SetLineWidth(w float64)
	SetGray(g float64)
	SetOpacity(alpha float64)

	// Line strokes a straight line.
	Line(from, to vec.Vec2)

	// Rect fills or outlines a rectangle.
	Rect(r rect.Rect, fill bool)

	// Text draws a single line of text with its baseline starting at
	// origin.
	Text(s string, origin vec.Vec2, size float64, angle rotate.Angle)

	// Image draws a raster image with the given pre-rotation extent.
	Image(img image.Image, origin vec.Vec2, w, h float64, angle rotate.Angle)

	// Art draws an embedded artwork page at its natural size.
	Art(p ArtPage, origin vec.Vec2, angle rotate.Angle)
}

// Doc is the output document being assembled.  Sheets are written
// strictly one after the other: AddSheet opens a sheet, CloseSheet
// finishes it.
type Doc interface {
	// Embed loads an artwork document so that its pages can be drawn.
	Embed(data []byte) (Art, error)

	AddSheet(w, h float64) (Canvas, error)
	CloseSheet() error

	// Close finishes the document.  No other method may be called
	// afterwards.
	Close() error
}
