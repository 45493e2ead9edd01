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
	"math"
	"testing"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/impose"
	"seehuhn.de/go/impose/layout"
	"seehuhn.de/go/impose/rotate"
)

func testGrid(t *testing.T, marginX, marginY float64, positions int) (*layout.Grid, impose.Item) {
	t.Helper()
	item := impose.Item{
		ID:      "test",
		CutW:    2 * impose.Inch,
		CutH:    2 * impose.Inch,
		BleedW:  2.25 * impose.Inch,
		BleedH:  2.25 * impose.Inch,
		MarginX: marginX,
		MarginY: marginY,
	}
	sheet := impose.Sheet{
		W:           13 * impose.Inch,
		H:           19 * impose.Inch,
		Orientation: impose.OrientPortrait,
	}
	g, err := layout.Plan(sheet, []impose.Item{item}, positions, impose.DefaultParams())
	if err != nil {
		t.Fatal(err)
	}
	return g, item
}

func tickLength(tk Tick) float64 {
	return math.Hypot(tk.To.X-tk.From.X, tk.To.Y-tk.From.Y)
}

func TestCropTickCount(t *testing.T) {
	p := impose.DefaultParams()
	g, item := testGrid(t, 0.5*impose.Inch, 0.5*impose.Inch, 6)

	ticks := CropTicks(g, 0, 1, g.CutBox(0, 1, &item), p)
	if len(ticks) != 8 {
		t.Fatalf("got %d ticks, want 8", len(ticks))
	}
}

func TestCropTickLengths(t *testing.T) {
	p := impose.DefaultParams()
	g, item := testGrid(t, 0.5*impose.Inch, 0.25*impose.Inch, 13)
	if g.Cols < 3 || g.Rows < 3 {
		t.Fatalf("grid too small for an interior cell: %dx%d", g.Cols, g.Rows)
	}

	// fully interior cell: all ticks are capped gutter ticks
	interiorCap := func(gap float64) float64 {
		return math.Min(p.InteriorTick, p.InteriorTickFrac*(gap-2*p.TrimOffset))
	}
	box := g.CutBox(1, 1, &item)
	for _, tk := range CropTicks(g, 1, 1, box, p) {
		l := tickLength(tk)
		gap := g.GapX
		if tk.From.X == tk.To.X { // vertical tick
			gap = g.GapY
		}
		if l > interiorCap(gap)+1e-9 {
			t.Errorf("interior tick length %g exceeds cap %g", l, interiorCap(gap))
		}
	}

	// corner cell: ticks pointing off the grid use the perimeter length
	box = g.CutBox(0, 0, &item)
	for _, tk := range CropTicks(g, 0, 0, box, p) {
		l := tickLength(tk)
		outward := tk.To.X < box.LLx || tk.To.Y > box.URy
		if outward && math.Abs(l-p.PerimeterTick) > 1e-9 {
			t.Errorf("perimeter tick length %g, want %g", l, p.PerimeterTick)
		}
	}
}

func TestCropTickGap(t *testing.T) {
	// ticks start one trim offset away from the cut corner
	p := impose.DefaultParams()
	g, item := testGrid(t, 0.5*impose.Inch, 0.5*impose.Inch, 6)
	box := g.CutBox(0, 0, &item)
	for _, tk := range CropTicks(g, 0, 0, box, p) {
		// the start point matches a corner in one coordinate and is
		// one trim offset away in the other
		dx := math.Min(math.Abs(tk.From.X-box.LLx), math.Abs(tk.From.X-box.URx))
		dy := math.Min(math.Abs(tk.From.Y-box.LLy), math.Abs(tk.From.Y-box.URy))
		off := math.Max(dx, dy)
		if math.Abs(off-p.TrimOffset) > 1e-9 {
			t.Errorf("tick starts %g from the corner, want %g", off, p.TrimOffset)
		}
	}
}

func TestCropTicksVanishInTightGutters(t *testing.T) {
	// with no declared margins the gutters are too tight for interior
	// ticks, but perimeter ticks must survive
	p := impose.DefaultParams()
	g, item := testGrid(t, 0, 0, 6)
	ticks := CropTicks(g, 0, 0, g.CutBox(0, 0, &item), p)
	for _, tk := range ticks {
		if l := tickLength(tk); math.Abs(l-p.PerimeterTick) > 1e-9 {
			t.Errorf("unexpected tick of length %g in tight gutter", l)
		}
	}
	if len(ticks) != 4 {
		t.Errorf("got %d ticks, want only the 4 perimeter ticks", len(ticks))
	}
}

func TestPlaceBugExplicit(t *testing.T) {
	p := impose.DefaultParams()
	g, item := testGrid(t, 1*impose.Inch, 0, 6)

	item.Bug = true
	item.BugPos = impose.BugRight
	bug, ok := PlaceBug(g, 0, 0, &item, p)
	if !ok {
		t.Fatal("no bug placed")
	}
	if bug.Side != impose.Right || !bug.Vertical {
		t.Errorf("got side %s vertical=%t, want right/vertical", bug.Side, bug.Vertical)
	}
	art := g.BleedBox(0, 0, &item)
	if bug.Box.LLx < art.URx {
		t.Errorf("strip at %g overlaps the art ending at %g", bug.Box.LLx, art.URx)
	}
	if w := bug.Box.Dx(); math.Abs(w-p.BugThickness) > 1e-9 {
		t.Errorf("strip thickness %g, want %g", w, p.BugThickness)
	}

	// requesting a side with no room must place nothing
	item.BugPos = impose.BugTop
	tight, _ := testGrid(t, 1*impose.Inch, 0, 6)
	if _, ok := PlaceBug(tight, 1, 0, &item, p); ok {
		t.Error("bug placed in a gutter narrower than the strip")
	}
}

func TestPlaceBugAuto(t *testing.T) {
	p := impose.DefaultParams()
	g, item := testGrid(t, 1*impose.Inch, 0, 6)
	item.Bug = true

	// with only two rows, every cell faces a sheet edge above or
	// below; that side offers by far the most room and must win
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			bug, ok := PlaceBug(g, row, col, &item, p)
			if !ok {
				t.Fatalf("no bug at (%d,%d)", row, col)
			}
			want := impose.Top
			if row == g.Rows-1 {
				want = impose.Bottom
			}
			if bug.Side != want {
				t.Errorf("(%d,%d): bug on %s, want %s", row, col, bug.Side, want)
			}
			art := g.BleedBox(row, col, &item)
			gap := g.SideGap(row, col, art, bug.Side)
			if gap < p.BugThickness {
				t.Errorf("(%d,%d): side %s has gap %g below thickness %g",
					row, col, bug.Side, gap, p.BugThickness)
			}
		}
	}
}

func TestPlaceBugInsideOutside(t *testing.T) {
	// four rows keep cell (1,1) away from the sheet edges, and the
	// wide column gutters make the horizontal axis win
	p := impose.DefaultParams()
	g, item := testGrid(t, 1*impose.Inch, 0.25*impose.Inch, 13)
	if g.Cols != 4 || g.Rows != 4 {
		t.Fatalf("got %dx%d grid, want 4x4", g.Cols, g.Rows)
	}
	item.Bug = true

	// cell (1,1) sits left of the sheet center, so "inside" is to the
	// right and "outside" to the left
	item.BugPos = impose.BugInside
	bug, ok := PlaceBug(g, 1, 1, &item, p)
	if !ok || bug.Side != impose.Right {
		t.Errorf("inside bug on %v, want right", bug)
	}
	item.BugPos = impose.BugOutside
	bug, ok = PlaceBug(g, 1, 1, &item, p)
	if !ok || bug.Side != impose.Left {
		t.Errorf("outside bug on %v, want left", bug)
	}
}

func TestBugSplit(t *testing.T) {
	p := impose.DefaultParams()
	g, item := testGrid(t, 1*impose.Inch, 0, 6)
	item.Bug = true
	item.BugPos = impose.BugRight

	bug, ok := PlaceBug(g, 0, 0, &item, p)
	if !ok {
		t.Fatal("no bug placed")
	}
	art := g.BleedBox(0, 0, &item)
	mid := (art.LLy + art.URy) / 2
	if math.Abs(bug.BarcodeBox.URy-mid) > 1e-9 || math.Abs(bug.TextBox.LLy-mid) > 1e-9 {
		t.Errorf("strip not split at the art centerline %g: barcode %v, text %v",
			mid, bug.BarcodeBox, bug.TextBox)
	}
}

func TestPlaceMarkerUpright(t *testing.T) {
	cut := rect.Rect{LLx: 100, LLy: 200, URx: 244, URy: 344}
	m := PlaceMarker(cut, rotate.Deg0, 10, 20, 18, 18)
	want := vec.Vec2{X: 110, Y: 220}
	if m.Origin != want {
		t.Errorf("origin %v, want cut lower left plus offset %v", m.Origin, want)
	}
	if m.W != 18 || m.H != 18 {
		t.Errorf("marker resized to %gx%g for no reason", m.W, m.H)
	}
}

func TestPlaceMarkerRotationStable(t *testing.T) {
	// under rotation the marker must stay glued to the same physical
	// spot: its center, rotated back around the cut center, must match
	// the upright center for every angle
	cut := rect.Rect{LLx: 100, LLy: 200, URx: 244, URy: 344}
	cutCenter := vec.Vec2{X: 172, Y: 272}

	base := PlaceMarker(cut, rotate.Deg0, 10, 20, 18, 18)
	baseCenter := vec.Vec2{X: base.Origin.X + base.W/2, Y: base.Origin.Y + base.H/2}

	for _, angle := range []rotate.Angle{rotate.Deg90, rotate.Deg180, rotate.Deg270} {
		m := PlaceMarker(cut, angle, 10, 20, 18, 18)
		half := angle.Apply(vec.Vec2{X: m.W / 2, Y: m.H / 2})
		center := vec.Vec2{X: m.Origin.X + half.X, Y: m.Origin.Y + half.Y}
		local := angle.Inverse(vec.Vec2{X: center.X - cutCenter.X, Y: center.Y - cutCenter.Y})
		got := vec.Vec2{X: cutCenter.X + local.X, Y: cutCenter.Y + local.Y}
		if math.Abs(got.X-baseCenter.X) > 1e-9 || math.Abs(got.Y-baseCenter.Y) > 1e-9 {
			t.Errorf("%d degrees: unrotated center %v, want %v", angle, got, baseCenter)
		}
	}
}

func TestPlaceMarkerClamped(t *testing.T) {
	cut := rect.Rect{LLx: 0, LLy: 0, URx: 72, URy: 72}
	m := PlaceMarker(cut, rotate.Deg0, 60, 60, 18, 18)
	if m.W != 12 || m.H != 12 {
		t.Errorf("marker %gx%g exceeds the remaining cut area, want 12x12", m.W, m.H)
	}
	if m.Origin.X+m.W > 72+1e-9 || m.Origin.Y+m.H > 72+1e-9 {
		t.Errorf("marker at %v size %gx%g leaves the cut box", m.Origin, m.W, m.H)
	}

	// an offset outside the cut box leaves an empty marker, never a
	// negative one
	m = PlaceMarker(cut, rotate.Deg0, 100, 30, 18, 18)
	if m.W != 0 || m.H < 0 {
		t.Errorf("marker %gx%g for an offset outside the cut box, want 0 width", m.W, m.H)
	}
}
