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

// Package rotate decides how each placed copy is turned and, for the
// backs of duplex sheets, where it moves to.
//
// Everything in this package is a pure function of the grid position,
// the artwork page index and the item flags.  The same answers feed the
// crop mark, gutter bug and tracking marker computations, so they are
// computed in exactly one place.
package rotate

import (
	"math"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/impose"
)

// Angle is a placement rotation, restricted to quarter turns.
type Angle int

// The four possible placement rotations, counterclockwise.
const (
	Deg0   Angle = 0
	Deg90  Angle = 90
	Deg180 Angle = 180
	Deg270 Angle = 270
)

// Add composes two quarter-turn rotations.
func (a Angle) Add(b Angle) Angle {
	return Angle(((int(a)+int(b))%360 + 360) % 360)
}

// Rad returns the angle in radians.
func (a Angle) Rad() float64 {
	return float64(a) / 180 * math.Pi
}

// Apply rotates the vector v by the angle.
func (a Angle) Apply(v vec.Vec2) vec.Vec2 {
	switch a {
	case Deg90:
		return vec.Vec2{X: -v.Y, Y: v.X}
	case Deg180:
		return vec.Vec2{X: -v.X, Y: -v.Y}
	case Deg270:
		return vec.Vec2{X: v.Y, Y: -v.X}
	default:
		return v
	}
}

// Inverse rotates the vector v by the negated angle.  This maps a
// desired post-rotation displacement into the artwork's own frame.
func (a Angle) Inverse(v vec.Vec2) vec.Vec2 {
	return Angle(360 - int(a)%360).Apply(v)
}

// Base returns the rotation of the cell at (row, col) before any duplex
// handling, for artwork page index page (0-based).
func Base(mode impose.RotationMode, rotateFirst bool, row, col, page int) Angle {
	var odd bool
	switch mode {
	case impose.RotateRows:
		odd = row%2 == 1
	case impose.RotateColumns:
		odd = col%2 == 1
	case impose.RotateEvenPages:
		// every physical second page, regardless of position
		return pick(page%2 == 1)
	default:
		return Deg0
	}
	if rotateFirst {
		odd = !odd
	}
	return pick(odd)
}

func pick(turned bool) Angle {
	if turned {
		return Deg180
	}
	return Deg0
}

// Mirror maps a grid position to its location on the back of a duplex
// sheet.  Binding along a vertical sheet edge mirrors columns, binding
// along a horizontal edge mirrors rows.  Mirror is an involution.
func Mirror(binding impose.Edge, cols, rows, row, col int) (int, int) {
	if binding.Horizontal() {
		return row, cols - 1 - col
	}
	return rows - 1 - row, col
}

// Placed is the resolved drawing state for one copy in one cell.
type Placed struct {
	// Row, Col is the effective cell, after duplex mirroring.
	Row, Col int

	// Angle is the final placement rotation.
	Angle Angle

	// SheetShift is the artwork nudge in sheet coordinates.  On the
	// back of a duplex sheet its binding-axis component is negated.
	SheetShift vec.Vec2

	// Shift is SheetShift mapped into the artwork's unrotated frame,
	// for drawing pipelines which translate before they rotate.
	Shift vec.Vec2
}

// Resolve combines the alternation pattern, duplex mirroring and shift
// handling for the cell at (row, col).
//
// On the back of a duplex sheet the effective position is mirrored
// along the binding axis, the rotation gains an extra half turn, and
// the shift component along the binding axis changes sign, so that
// front and back line up after cutting.
func Resolve(item *impose.Item, back bool, cols, rows, row, col, page int) Placed {
	shift := vec.Vec2{X: item.ShiftX, Y: item.ShiftY}
	if back {
		row, col = Mirror(item.Binding, cols, rows, row, col)
		if item.Binding.Horizontal() {
			shift.X = -shift.X
		} else {
			shift.Y = -shift.Y
		}
	}

	angle := Base(item.Rotation, item.RotateFirst, row, col, page)
	if back {
		angle = angle.Add(Deg180)
	}

	return Placed{
		Row:        row,
		Col:        col,
		Angle:      angle,
		SheetShift: shift,
		Shift:      angle.Apply(shift),
	}
}

// Origin returns the drawing origin for a w x h object which is rotated
// by angle about its origin and whose visual center must end up at
// center.  For 180 degrees this is the usual (+w, +h) correction.
func Origin(center vec.Vec2, w, h float64, angle Angle) vec.Vec2 {
	half := angle.Apply(vec.Vec2{X: w / 2, Y: h / 2})
	return vec.Vec2{X: center.X - half.X, Y: center.Y - half.Y}
}
