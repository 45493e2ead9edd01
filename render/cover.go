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

package render

import (
	"fmt"
	"strings"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/impose"
	"seehuhn.de/go/impose/rotate"
)

// Cover sheets duplicate the production layout, but the job metadata is
// written over the artwork so that press operators can identify the
// batch without decoding any barcodes.

const (
	coverTitleSize = 18.0
	coverTextSize  = 10.0
	coverLeading   = 14.0
	coverPad       = 18.0
)

func (r *run) drawCoverOverlay(canvas Canvas, sheet int) {
	job := r.job
	g := r.grid

	title := "COVER SHEET / NOT FOR PRODUCTION"
	if job.Duplex {
		side := "FRONT"
		if sheet%2 == 1 {
			side = "BACK"
		}
		title = fmt.Sprintf("COVER SHEET (%s) / NOT FOR PRODUCTION", side)
	}

	lines := []string{
		"Order:  " + job.OrderID,
		"Batch:  " + job.Batch,
		fmt.Sprintf("Sheet:  %s x %s", inches(g.SheetW), inches(g.SheetH)),
		fmt.Sprintf("Grid:   %d x %d, %d positions, %d waste",
			g.Cols, g.Rows, g.Positions, g.Waste),
	}
	if job.Duplex {
		lines = append(lines, "Duplex: yes")
	}
	for i, item := range job.Items {
		qty := item.Quantity
		if qty < 1 {
			qty = 1
		}
		line := fmt.Sprintf("Item %d: %s, cut %s x %s, qty %d",
			i+1, item.ID, inches(item.CutW), inches(item.CutH), qty)
		if len(item.Labels) > 0 {
			line += ", " + strings.Join(item.Labels, ", ")
		}
		lines = append(lines, line)
	}

	const barcodeH = 36.0
	boxW := 0.6 * g.SheetW
	boxH := coverTitleSize + float64(len(lines))*coverLeading + barcodeH + 4*coverPad
	box := rect.Rect{
		LLx: (g.SheetW - boxW) / 2,
		LLy: (g.SheetH - boxH) / 2,
		URx: (g.SheetW + boxW) / 2,
		URy: (g.SheetH + boxH) / 2,
	}

	// knock the artwork back so the text stays legible
	canvas.SetGray(1)
	canvas.SetOpacity(0.85)
	canvas.Rect(box, true)
	canvas.SetOpacity(1)
	canvas.SetGray(0)
	canvas.SetLineWidth(1)
	canvas.Rect(box, false)

	y := box.URy - coverPad - coverTitleSize
	canvas.Text(title, vec.Vec2{X: box.LLx + coverPad, Y: y}, coverTitleSize, rotate.Deg0)
	y -= coverPad
	for _, line := range lines {
		y -= coverLeading
		canvas.Text(line, vec.Vec2{X: box.LLx + coverPad, Y: y}, coverTextSize, rotate.Deg0)
	}

	if job.OrderID != "" {
		w := 0.5 * boxW
		origin := vec.Vec2{X: box.LLx + coverPad, Y: box.LLy + coverPad}
		if img := r.barcodeImage(job.OrderID, false, w, barcodeH); img != nil {
			canvas.Image(img, origin, w, barcodeH, rotate.Deg0)
		} else {
			canvas.Text(job.OrderID, origin, coverTextSize, rotate.Deg0)
		}
	}
}

func inches(units float64) string {
	return fmt.Sprintf("%gin", units/impose.Inch)
}
