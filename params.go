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

package impose

// Inch is the number of user space units per inch.
const Inch = 72.0

// Params collects the fixed distances used by the layout and marking code.
//
// Earlier generations of this engine did not agree on all of these values
// (the crop tick offset has been shipped as both 1/16in and 1/4in, the
// outer sheet margin as both 0 and 1/8in).  They are therefore
// configuration, not constants.  [DefaultParams] returns the values used
// in current production.
type Params struct {
	// OuterMargin is kept free on all four sheet edges, regardless of
	// the margins declared by the items.
	OuterMargin float64

	// TrimOffset is the gap between a cut box corner and the near end
	// of each crop tick.
	TrimOffset float64

	// PerimeterTick is the length of crop ticks which point away from
	// the grid, towards a sheet edge.
	PerimeterTick float64

	// InteriorTick is the maximum length of crop ticks inside a gutter.
	InteriorTick float64

	// InteriorTickFrac limits interior ticks to this fraction of the
	// gutter space left after the trim offsets, so that ticks cannot
	// reach into a neighbouring cell's bleed.
	InteriorTickFrac float64

	// BugThickness is the thickness of the gutter bug label strip.
	BugThickness float64

	// BugStandoff is the preferred distance between the edge of a
	// placed item and its gutter bug.
	BugStandoff float64

	// MarkerSize is the edge length of the square tracking marker.
	MarkerSize float64
}

// DefaultParams returns the production distances.
func DefaultParams() *Params {
	return &Params{
		OuterMargin:      Inch / 8,
		TrimOffset:       Inch / 16,
		PerimeterTick:    Inch / 8,
		InteriorTick:     Inch / 32,
		InteriorTickFrac: 0.4,
		BugThickness:     Inch / 8,
		BugStandoff:      Inch / 8,
		MarkerSize:       Inch / 4,
	}
}
