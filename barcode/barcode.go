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

// Package barcode renders tracking values as barcode images.
//
// Barcode rendering is an optional capability.  Code which draws
// markers depends on the [Generator] interface only; when the job runs
// without barcode support, [Null] makes every call site fall back to
// plain text.
package barcode

import (
	"errors"
	"fmt"
	"image"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	"golang.org/x/image/draw"
)

// ErrUnavailable is returned by generators which cannot produce
// barcodes.  Callers are expected to degrade to a text rendering.
var ErrUnavailable = errors.New("barcode rendering not available")

// Generator renders a tracking value as a raster image of the given
// size in pixels.
type Generator interface {
	Generate(text string, w, h int) (image.Image, error)
}

// Code128 renders Code 128 barcodes.
type Code128 struct{}

// Generate implements the [Generator] interface.
func (Code128) Generate(text string, w, h int) (image.Image, error) {
	if w < 1 || h < 1 {
		return nil, fmt.Errorf("barcode %q: target size %dx%d", text, w, h)
	}
	bc, err := code128.Encode(text)
	if err != nil {
		return nil, fmt.Errorf("barcode %q: %w", text, err)
	}
	scaled, err := barcode.Scale(bc, w, h)
	if err == nil {
		return scaled, nil
	}
	// Scale refuses targets smaller than the module count, which
	// happens for long tracking values in small markers.  Resample
	// instead; nearest neighbour keeps the bar edges sharp.
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), bc, bc.Bounds(), draw.Src, nil)
	return dst, nil
}

// Null is the no-op generator used when barcode support is disabled.
type Null struct{}

// Generate implements the [Generator] interface.  It always returns
// [ErrUnavailable].
func (Null) Generate(text string, w, h int) (image.Image, error) {
	return nil, ErrUnavailable
}

var (
	_ Generator = Code128{}
	_ Generator = Null{}
)
