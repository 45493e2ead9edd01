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

// Package marks computes the geometry of the auxiliary markings added
// to an imposed sheet: crop ticks at the cut corners, the gutter bug
// label strip, and the rotation-stable tracking marker.
//
// The package only does geometry.  Drawing the resulting lines, text
// and images is left to the render layer.
package marks

import (
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/impose"
	"seehuhn.de/go/impose/layout"
)

// Tick is one crop mark stroke.
type Tick struct {
	From, To vec.Vec2
}

// CropTicks returns the crop marks for the cut box of the cell at
// (row, col).  Each corner receives two perpendicular ticks, offset from
// the corner by the trim offset.
//
// Ticks pointing away from the grid get the full perimeter length.
// Ticks inside a gutter are shortened so that they can never reach into
// the neighbouring cell's bleed: their length is capped at a fraction
// of the gutter space left after the trim offsets on both sides.
func CropTicks(g *layout.Grid, row, col int, box rect.Rect, p *impose.Params) []Tick {
	lengths := [4]float64{
		impose.Left:   tickLen(g, row, col, impose.Left, g.GapX, p),
		impose.Right:  tickLen(g, row, col, impose.Right, g.GapX, p),
		impose.Top:    tickLen(g, row, col, impose.Top, g.GapY, p),
		impose.Bottom: tickLen(g, row, col, impose.Bottom, g.GapY, p),
	}

	var ticks []Tick
	add := func(e impose.Edge, x, y float64) {
		l := lengths[e]
		if l <= 0 {
			return
		}
		from := vec.Vec2{X: x, Y: y}
		to := from
		switch e {
		case impose.Left:
			from.X = box.LLx - p.TrimOffset
			to.X = from.X - l
		case impose.Right:
			from.X = box.URx + p.TrimOffset
			to.X = from.X + l
		case impose.Top:
			from.Y = box.URy + p.TrimOffset
			to.Y = from.Y + l
		case impose.Bottom:
			from.Y = box.LLy - p.TrimOffset
			to.Y = from.Y - l
		}
		ticks = append(ticks, Tick{From: from, To: to})
	}

	for _, y := range []float64{box.LLy, box.URy} {
		add(impose.Left, 0, y)
		add(impose.Right, 0, y)
	}
	for _, x := range []float64{box.LLx, box.URx} {
		add(impose.Top, x, 0)
		add(impose.Bottom, x, 0)
	}
	return ticks
}

func tickLen(g *layout.Grid, row, col int, e impose.Edge, gap float64, p *impose.Params) float64 {
	if g.OnBoundary(row, col, e) {
		return p.PerimeterTick
	}
	l := min(p.InteriorTick, p.InteriorTickFrac*(gap-2*p.TrimOffset))
	return max(l, 0)
}
