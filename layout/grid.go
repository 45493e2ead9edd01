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

// Package layout fits a grid of item cells onto a press sheet and assigns
// items to grid positions.
//
// Cells are uniform: every cell is large enough for the largest cut box
// among the items, and the gutters between cells are wide enough for the
// largest declared margin.  Rows are counted from the top of the sheet,
// columns from the left, so that position 0 is the top left cell.
package layout

import (
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/impose"
)

// Grid is the result of planning.  It is immutable after [Plan] returns;
// all per-cell geometry is derived on demand.
type Grid struct {
	Cols, Rows int

	// CellW, CellH is the uniform cell size, the maximum cut box size
	// over all items.
	CellW, CellH float64

	// GapX is the gutter between columns, GapY the gutter between rows.
	GapX, GapY float64

	// MaxBleedW, MaxBleedH is the largest bleed box size over all
	// items.  Bleed protrudes into the gutters and reduces the
	// clearance between neighbouring cells.
	MaxBleedW, MaxBleedH float64

	// OffX, OffY is the lower left corner of the grid on the sheet.
	OffX, OffY float64

	// SheetW, SheetH is the sheet size in the chosen orientation.
	SheetW, SheetH float64

	// Positions is the number of reserved positions, Waste the number
	// of grid cells beyond that.
	Positions int
	Waste     int

	// Turned is set if the planner swapped the sheet dimensions.
	Turned bool
}

// Plan fits positions cells onto the sheet.
//
// If the sheet orientation is [impose.OrientAuto], both orientations are
// planned and the one producing strictly fewer waste cells wins; on a tie
// the layout with more columns is kept.  An infeasible layout is a
// terminal failure, reported as [*impose.InfeasibleError].
func Plan(sheet impose.Sheet, items []impose.Item, positions int, p *impose.Params) (*Grid, error) {
	switch sheet.Orientation {
	case impose.OrientPortrait:
		return planOne(sheet.W, sheet.H, false, items, positions, p)
	case impose.OrientLandscape:
		return planOne(sheet.H, sheet.W, true, items, positions, p)
	}

	a, errA := planOne(sheet.W, sheet.H, false, items, positions, p)
	b, errB := planOne(sheet.H, sheet.W, true, items, positions, p)
	switch {
	case errA != nil && errB != nil:
		return nil, errA
	case errA != nil:
		return b, nil
	case errB != nil:
		return a, nil
	case b.Waste < a.Waste:
		return b, nil
	case a.Waste < b.Waste:
		return a, nil
	case b.Cols > a.Cols:
		return b, nil
	default:
		return a, nil
	}
}

func planOne(sheetW, sheetH float64, turned bool, items []impose.Item, positions int, p *impose.Params) (*Grid, error) {
	var cellW, cellH, gapX, gapY, bleedW, bleedH float64
	for _, item := range items {
		cellW = max(cellW, item.CutW)
		cellH = max(cellH, item.CutH)
		gapX = max(gapX, item.MarginX)
		gapY = max(gapY, item.MarginY)
		bleedW = max(bleedW, item.BleedW)
		bleedH = max(bleedH, item.BleedH)
	}

	availW := sheetW - 2*p.OuterMargin
	availH := sheetH - 2*p.OuterMargin

	colsMax := int((availW + gapX) / (cellW + gapX))
	rowsMax := int((availH + gapY) / (cellH + gapY))
	infeasible := &impose.InfeasibleError{
		SheetW:    sheetW,
		SheetH:    sheetH,
		CellW:     cellW,
		CellH:     cellH,
		Positions: positions,
	}
	if colsMax < 1 || rowsMax < 1 || colsMax*rowsMax < positions {
		return nil, infeasible
	}

	cols := min(colsMax, positions)
	rows := ceilDiv(positions, cols)
	for rows > rowsMax {
		cols--
		if cols < 1 {
			return nil, infeasible
		}
		rows = ceilDiv(positions, cols)
	}

	gridW := float64(cols)*cellW + float64(cols-1)*gapX
	gridH := float64(rows)*cellH + float64(rows-1)*gapY
	g := &Grid{
		Cols:      cols,
		Rows:      rows,
		CellW:     cellW,
		CellH:     cellH,
		GapX:      gapX,
		GapY:      gapY,
		MaxBleedW: bleedW,
		MaxBleedH: bleedH,
		OffX:      p.OuterMargin + (availW-gridW)/2,
		OffY:      p.OuterMargin + (availH-gridH)/2,
		SheetW:    sheetW,
		SheetH:    sheetH,
		Positions: positions,
		Waste:     cols*rows - positions,
		Turned:    turned,
	}
	return g, nil
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

// Center returns the sheet coordinates of the cell's center.
func (g *Grid) Center(row, col int) vec.Vec2 {
	gridH := float64(g.Rows)*g.CellH + float64(g.Rows-1)*g.GapY
	x := g.OffX + float64(col)*(g.CellW+g.GapX) + g.CellW/2
	y := g.OffY + gridH - float64(row)*(g.CellH+g.GapY) - g.CellH/2
	return vec.Vec2{X: x, Y: y}
}

// CutBox returns the item's cut box, centered in the given cell.
func (g *Grid) CutBox(row, col int, item *impose.Item) rect.Rect {
	return boxAround(g.Center(row, col), item.CutW, item.CutH)
}

// CellBox returns the full cell rectangle.  Blank cells are trimmed at
// the cell outline, so their crop marks use this box.
func (g *Grid) CellBox(row, col int) rect.Rect {
	return boxAround(g.Center(row, col), g.CellW, g.CellH)
}

// BleedBox returns the item's bleed box, centered in the given cell.
func (g *Grid) BleedBox(row, col int, item *impose.Item) rect.Rect {
	return boxAround(g.Center(row, col), item.BleedW, item.BleedH)
}

func boxAround(c vec.Vec2, w, h float64) rect.Rect {
	return rect.Rect{
		LLx: c.X - w/2,
		LLy: c.Y - h/2,
		URx: c.X + w/2,
		URy: c.Y + h/2,
	}
}

// OnBoundary reports whether the given cell touches the outside of the
// grid on the given side.
func (g *Grid) OnBoundary(row, col int, e impose.Edge) bool {
	switch e {
	case impose.Left:
		return col == 0
	case impose.Right:
		return col == g.Cols-1
	case impose.Top:
		return row == 0
	default:
		return row == g.Rows-1
	}
}

// SideGap returns the space available next to the given box on the given
// side: the clearance to the neighbouring cell's bleed for interior
// sides, and the distance to the physical sheet edge for cells on the
// grid boundary.
func (g *Grid) SideGap(row, col int, box rect.Rect, e impose.Edge) float64 {
	if !g.OnBoundary(row, col, e) {
		// the neighbouring cell's bleed may protrude into the gutter
		if e.Horizontal() {
			return g.CellW + g.GapX - g.MaxBleedW/2 - box.Dx()/2
		}
		return g.CellH + g.GapY - g.MaxBleedH/2 - box.Dy()/2
	}
	switch e {
	case impose.Left:
		return box.LLx
	case impose.Right:
		return g.SheetW - box.URx
	case impose.Top:
		return g.SheetH - box.URy
	default:
		return box.LLy
	}
}
