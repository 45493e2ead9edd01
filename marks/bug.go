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

	"seehuhn.de/go/impose"
	"seehuhn.de/go/impose/layout"
)

// Bug is a placed gutter bug: a thin label strip next to one edge of a
// placed item, holding a barcode in one half and text in the other.
type Bug struct {
	// Side is the side of the item the strip sits on.
	Side impose.Edge

	// Box is the whole strip in sheet coordinates.
	Box rect.Rect

	// Vertical is set for strips on the left or right side; their
	// content is rotated by 90 degrees.
	Vertical bool

	// BarcodeBox and TextBox are the two halves of the strip, split at
	// the item's perpendicular centerline.
	BarcodeBox rect.Rect
	TextBox    rect.Rect
}

// PlaceBug selects a side for the gutter bug of the cell at (row, col)
// and lays out the strip.  The second return value is false if no side
// offers at least the strip thickness; in that case nothing is drawn.
//
// An explicitly requested side is taken or refused as-is.  For the
// automatic positions the placer looks at both axes: an axis qualifies
// if its wider side can hold the strip, axes with room for the full
// standoff beat axes without, and the wider axis wins.  Within the
// chosen axis "inside" prefers the side facing the sheet center and
// "outside" the side facing away; if the preferred side is too narrow
// the strip moves to the opposite side of the same axis.
func PlaceBug(g *layout.Grid, row, col int, item *impose.Item, p *impose.Params) (*Bug, bool) {
	art := g.BleedBox(row, col, item)
	gap := func(e impose.Edge) float64 {
		return g.SideGap(row, col, art, e)
	}

	var side impose.Edge
	switch item.BugPos {
	case impose.BugLeft, impose.BugRight, impose.BugTop, impose.BugBottom:
		side = explicitSide(item.BugPos)
		if gap(side) < p.BugThickness {
			return nil, false
		}
	default:
		s, ok := autoSide(g, art, item.BugPos, gap, p)
		if !ok {
			return nil, false
		}
		side = s
	}

	return placeStrip(art, side, gap(side), p), true
}

func explicitSide(pos impose.BugPosition) impose.Edge {
	switch pos {
	case impose.BugLeft:
		return impose.Left
	case impose.BugRight:
		return impose.Right
	case impose.BugTop:
		return impose.Top
	default:
		return impose.Bottom
	}
}

func autoSide(g *layout.Grid, art rect.Rect, pos impose.BugPosition, gap func(impose.Edge) float64, p *impose.Params) (impose.Edge, bool) {
	hMax := max(gap(impose.Left), gap(impose.Right))
	vMax := max(gap(impose.Top), gap(impose.Bottom))

	full := p.BugThickness + p.BugStandoff
	hFull, vFull := hMax >= full, vMax >= full
	hOK, vOK := hMax >= p.BugThickness, vMax >= p.BugThickness

	var horizontal bool
	switch {
	case hFull && vFull:
		horizontal = hMax >= vMax
	case hFull:
		horizontal = true
	case vFull:
		horizontal = false
	case hOK && vOK:
		horizontal = hMax >= vMax
	case hOK:
		horizontal = true
	case vOK:
		horizontal = false
	default:
		return 0, false
	}

	// the two candidate sides of the chosen axis, inner first
	var inner, outer impose.Edge
	if horizontal {
		inner, outer = impose.Right, impose.Left
		if (art.LLx+art.URx)/2 > g.SheetW/2 {
			inner, outer = outer, inner
		}
	} else {
		inner, outer = impose.Top, impose.Bottom
		if (art.LLy+art.URy)/2 > g.SheetH/2 {
			inner, outer = outer, inner
		}
	}

	var first, second impose.Edge
	switch pos {
	case impose.BugInside:
		first, second = inner, outer
	case impose.BugOutside:
		first, second = outer, inner
	default:
		// no stated preference: take the roomier side, ties go outward
		first, second = outer, inner
		if gap(inner) > gap(outer) {
			first, second = inner, outer
		}
	}
	if gap(first) >= p.BugThickness {
		return first, true
	}
	if gap(second) >= p.BugThickness {
		return second, true
	}
	return 0, false
}

func placeStrip(art rect.Rect, side impose.Edge, gap float64, p *impose.Params) *Bug {
	// stand off from the art edge as far as the gutter allows
	offset := min(p.BugStandoff, gap-p.BugThickness)

	bug := &Bug{Side: side, Vertical: side.Horizontal()}
	switch side {
	case impose.Left:
		bug.Box = rect.Rect{
			LLx: art.LLx - offset - p.BugThickness,
			LLy: art.LLy,
			URx: art.LLx - offset,
			URy: art.URy,
		}
	case impose.Right:
		bug.Box = rect.Rect{
			LLx: art.URx + offset,
			LLy: art.LLy,
			URx: art.URx + offset + p.BugThickness,
			URy: art.URy,
		}
	case impose.Top:
		bug.Box = rect.Rect{
			LLx: art.LLx,
			LLy: art.URy + offset,
			URx: art.URx,
			URy: art.URy + offset + p.BugThickness,
		}
	default:
		bug.Box = rect.Rect{
			LLx: art.LLx,
			LLy: art.LLy - offset - p.BugThickness,
			URx: art.URx,
			URy: art.LLy - offset,
		}
	}

	// split at the art box's perpendicular centerline: the barcode
	// takes the lower (or left) half, the text the other
	if bug.Vertical {
		mid := (art.LLy + art.URy) / 2
		bug.BarcodeBox = rect.Rect{LLx: bug.Box.LLx, LLy: bug.Box.LLy, URx: bug.Box.URx, URy: mid}
		bug.TextBox = rect.Rect{LLx: bug.Box.LLx, LLy: mid, URx: bug.Box.URx, URy: bug.Box.URy}
	} else {
		mid := (art.LLx + art.URx) / 2
		bug.BarcodeBox = rect.Rect{LLx: bug.Box.LLx, LLy: bug.Box.LLy, URx: mid, URy: bug.Box.URy}
		bug.TextBox = rect.Rect{LLx: mid, LLy: bug.Box.LLy, URx: bug.Box.URx, URy: bug.Box.URy}
	}
	return bug
}
