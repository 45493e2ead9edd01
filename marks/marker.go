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

package marks

import (
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/impose/rotate"
)

// Marker is the placed tracking marker, ready to draw.
type Marker struct {
	// Origin is the draw origin on the sheet.  The marker is rotated
	// by Angle about this point.
	Origin vec.Vec2

	// W, H is the marker size, possibly reduced to stay inside the
	// cut area.
	W, H float64

	Angle rotate.Angle
}

// PlaceMarker positions a w x h tracking marker inside a placed item.
//
// The offset (offX, offY) is measured from the cut box's lower left
// corner in the artwork's own unrotated frame.  The marker turns with
// the artwork: for any placement rotation it covers the same physical
// spot of the printed piece.  cut is the item's cut box on the sheet,
// before rotation; angle is the placement rotation.
func PlaceMarker(cut rect.Rect, angle rotate.Angle, offX, offY, w, h float64) Marker {
	// never reach past the cut area; an offset outside the cut box
	// leaves no room at all
	w = max(0, min(w, cut.Dx()-offX))
	h = max(0, min(h, cut.Dy()-offY))

	// intended center relative to the cut center, in the unrotated frame
	local := vec.Vec2{
		X: offX + w/2 - cut.Dx()/2,
		Y: offY + h/2 - cut.Dy()/2,
	}

	cutCenter := vec.Vec2{X: (cut.LLx + cut.URx) / 2, Y: (cut.LLy + cut.URy) / 2}
	turned := angle.Apply(local)
	center := vec.Vec2{X: cutCenter.X + turned.X, Y: cutCenter.Y + turned.Y}

	half := angle.Apply(vec.Vec2{X: w / 2, Y: h / 2})
	return Marker{
		Origin: vec.Vec2{X: center.X - half.X, Y: center.Y - half.Y},
		W:      w,
		H:      h,
		Angle:  angle,
	}
}
