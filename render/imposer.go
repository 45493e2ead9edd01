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
	"context"
	"fmt"
	"image"

	"github.com/charmbracelet/log"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/impose"
	"seehuhn.de/go/impose/barcode"
	"seehuhn.de/go/impose/fetch"
	"seehuhn.de/go/impose/layout"
	"seehuhn.de/go/impose/marks"
	"seehuhn.de/go/impose/rotate"
)

// Imposer runs one imposition job against an output document.
type Imposer struct {
	Job *impose.Job

	// Params provides the geometry constants.  A nil value selects
	// [impose.DefaultParams].
	Params *impose.Params

	// Source retrieves the artwork documents.
	Source fetch.Source

	// Barcode renders tracking barcodes.  A nil value selects
	// [barcode.Null], which makes all markers fall back to text.
	Barcode barcode.Generator

	// Log, if non-nil, receives warnings about non-fatal degradations.
	Log *log.Logger
}

// Result summarizes a finished run.
type Result struct {
	Grid   *layout.Grid
	Sheets int
	Covers int
}

// Run fetches all artwork, plans the layout and draws every output
// sheet onto doc.  The document is left open; closing it is the
// caller's responsibility.
//
// Any failure aborts the run: there is no partial output.
func (imp *Imposer) Run(ctx context.Context, doc Doc) (*Result, error) {
	job := imp.Job
	if err := job.Validate(); err != nil {
		return nil, err
	}
	params := imp.Params
	if params == nil {
		params = impose.DefaultParams()
	}
	gen := imp.Barcode
	if gen == nil {
		gen = barcode.Null{}
	}

	ids := make([]string, len(job.Items))
	for i, item := range job.Items {
		ids[i] = item.ID
	}
	data, err := fetch.All(ctx, imp.Source, ids)
	if err != nil {
		return nil, err
	}

	grid, err := layout.Plan(job.Sheet, job.Items, job.RequiredPositions(), params)
	if err != nil {
		return nil, err
	}
	placements := layout.Placements(grid, layout.Quantities(job.Items), job.CycleFill)

	// each item's artwork is embedded exactly once, no matter how
	// many cells it occupies
	arts := make(map[string]Art, len(data))
	for id, raw := range data {
		art, err := doc.Embed(raw)
		if err != nil {
			return nil, fmt.Errorf("embedding artwork %q: %w", id, err)
		}
		arts[id] = art
	}

	sheets := 1
	for _, pl := range placements {
		if pl.Item < 0 {
			continue
		}
		if n := arts[job.Items[pl.Item].ID].NumPages(); n > sheets {
			sheets = n
		}
	}

	r := &run{
		doc:        doc,
		job:        job,
		params:     params,
		gen:        gen,
		log:        imp.Log,
		grid:       grid,
		placements: placements,
		arts:       arts,
		barcodes:   make(map[barcodeKey]image.Image),
	}

	covers := 0
	if job.Cover {
		covers = 1
		if job.Duplex {
			covers = 2
		}
		for s := range covers {
			if err := r.drawSheet(s, true); err != nil {
				return nil, fmt.Errorf("cover sheet %d: %w", s+1, err)
			}
		}
	}
	for s := range sheets {
		if err := r.drawSheet(s, false); err != nil {
			return nil, fmt.Errorf("sheet %d: %w", s+1, err)
		}
	}

	return &Result{Grid: grid, Sheets: sheets, Covers: covers}, nil
}

type barcodeKey struct {
	value    string
	vertical bool
}

// run is the transient state of one Imposer.Run call.
type run struct {
	doc        Doc
	job        *impose.Job
	params     *impose.Params
	gen        barcode.Generator
	log        *log.Logger
	grid       *layout.Grid
	placements []layout.Placement
	arts       map[string]Art

	barcodes map[barcodeKey]image.Image
	degraded bool
}

// copy is one placement resolved for a specific sheet.
type copyOnSheet struct {
	item   *impose.Item
	art    Art
	page   int
	placed rotate.Placed
}

func (r *run) resolve(sheet int, back bool) []copyOnSheet {
	var copies []copyOnSheet
	for _, pl := range r.placements {
		if pl.Item < 0 {
			continue
		}
		item := &r.job.Items[pl.Item]
		art := r.arts[item.ID]
		page := sheet % art.NumPages()
		copies = append(copies, copyOnSheet{
			item:   item,
			art:    art,
			page:   page,
			placed: rotate.Resolve(item, back, r.grid.Cols, r.grid.Rows, pl.Row, pl.Col, page),
		})
	}
	return copies
}

// drawSheet draws one output sheet.  The layer order is fixed: crop
// marks, then gutter bugs, then artwork, then the overlay (tracking
// markers, or the cover information block).
func (r *run) drawSheet(sheet int, cover bool) error {
	g := r.grid
	canvas, err := r.doc.AddSheet(g.SheetW, g.SheetH)
	if err != nil {
		return err
	}

	back := r.job.Duplex && sheet%2 == 1
	copies := r.resolve(sheet, back)

	occupied := make(map[[2]int]*impose.Item)
	for _, c := range copies {
		occupied[[2]int{c.placed.Row, c.placed.Col}] = c.item
	}

	// crop layer: every grid cell is trimmed, including blanks
	canvas.SetGray(0)
	canvas.SetLineWidth(0.5)
	for row := range g.Rows {
		for col := range g.Cols {
			box := g.CellBox(row, col)
			if item := occupied[[2]int{row, col}]; item != nil {
				box = g.CutBox(row, col, item)
			}
			for _, tick := range marks.CropTicks(g, row, col, box, r.params) {
				canvas.Line(tick.From, tick.To)
			}
		}
	}

	if !cover {
		for _, c := range copies {
			if !c.item.Bug {
				continue
			}
			bug, ok := marks.PlaceBug(g, c.placed.Row, c.placed.Col, c.item, r.params)
			if !ok {
				continue
			}
			r.drawBug(canvas, bug, c.item)
		}
	}

	for _, c := range copies {
		page, err := c.art.Page(c.page)
		if err != nil {
			return err
		}
		w, h := page.Size()
		center := r.grid.Center(c.placed.Row, c.placed.Col)
		center.X += c.placed.SheetShift.X
		center.Y += c.placed.SheetShift.Y
		canvas.Art(page, rotate.Origin(center, w, h, c.placed.Angle), c.placed.Angle)
	}

	if cover {
		r.drawCoverOverlay(canvas, sheet)
	} else {
		for _, c := range copies {
			if !c.item.Marker || c.page != markerPage(c.item, c.art) {
				continue
			}
			r.drawMarker(canvas, c)
		}
	}

	return r.doc.CloseSheet()
}

// markerPage returns the 0-based artwork page which carries the
// tracking marker.
func markerPage(item *impose.Item, art Art) int {
	if item.MarkerPage > 0 {
		return item.MarkerPage - 1
	}
	return art.NumPages() - 1
}

func (r *run) drawMarker(canvas Canvas, c copyOnSheet) {
	g := r.grid
	cut := g.CutBox(c.placed.Row, c.placed.Col, c.item)
	cut.LLx += c.placed.SheetShift.X
	cut.URx += c.placed.SheetShift.X
	cut.LLy += c.placed.SheetShift.Y
	cut.URy += c.placed.SheetShift.Y

	size := r.params.MarkerSize
	m := marks.PlaceMarker(cut, c.placed.Angle, c.item.MarkerX, c.item.MarkerY, size, size)
	if m.W <= 0 || m.H <= 0 {
		return
	}

	value := r.trackingValue(c.item)
	if img := r.barcodeImage(value, false, m.W, m.H); img != nil {
		canvas.Image(img, m.Origin, m.W, m.H, m.Angle)
	} else {
		canvas.SetGray(0)
		canvas.Text(value, m.Origin, m.H*0.8, m.Angle)
	}
}

func (r *run) drawBug(canvas Canvas, bug *marks.Bug, item *impose.Item) {
	// white backdrop so the strip stays readable whatever the sheet
	// carries underneath
	canvas.SetGray(1)
	canvas.Rect(bug.Box, true)
	canvas.SetGray(0)

	value := r.trackingValue(item)

	drawn := false
	if item.BugBarcode {
		box := bug.BarcodeBox
		w, h := box.Dx(), box.Dy()
		if bug.Vertical {
			w, h = h, w
		}
		if img := r.barcodeImage(value, bug.Vertical, w, h); img != nil {
			origin := vec.Vec2{X: box.LLx, Y: box.LLy}
			angle := rotate.Deg0
			if bug.Vertical {
				// rotate the strip content a quarter turn
				origin = vec.Vec2{X: box.URx, Y: box.LLy}
				angle = rotate.Deg90
			}
			canvas.Image(img, origin, w, h, angle)
			drawn = true
		}
	}
	if !drawn {
		r.bugText(canvas, bug.BarcodeBox, bug.Vertical, value)
	}

	label := item.ID
	if len(item.Labels) > 0 {
		label = item.Labels[0]
	}
	r.bugText(canvas, bug.TextBox, bug.Vertical, label)
}

// bugText draws a left-anchored text line into one half of the strip,
// rotated with the strip for vertical placements.
func (r *run) bugText(canvas Canvas, box rect.Rect, vertical bool, s string) {
	const pad = 2.0
	canvas.SetGray(0)
	if vertical {
		size := 0.6 * box.Dx()
		origin := vec.Vec2{X: box.URx - 0.2*box.Dx() - pad, Y: box.LLy + pad}
		canvas.Text(s, origin, size, rotate.Deg90)
		return
	}
	size := 0.6 * box.Dy()
	origin := vec.Vec2{X: box.LLx + pad, Y: box.LLy + 0.2*box.Dy() + pad}
	canvas.Text(s, origin, size, rotate.Deg0)
}

func (r *run) trackingValue(item *impose.Item) string {
	if r.job.OrderID == "" {
		return item.ID
	}
	return r.job.OrderID + "/" + item.ID
}

// barcodeImage returns the memoized barcode raster for the given value,
// or nil if barcode rendering is unavailable.  Rasters are cached per
// (value, orientation) because the same value can appear in the gutter
// bug, the in-artwork marker and on cover sheets.
func (r *run) barcodeImage(value string, vertical bool, w, h float64) image.Image {
	key := barcodeKey{value: value, vertical: vertical}
	if img, ok := r.barcodes[key]; ok {
		return img
	}

	// rasterize at 4 pixels per unit to keep the bars crisp
	img, err := r.gen.Generate(value, int(w*4), int(h*4))
	if err != nil {
		if !r.degraded {
			r.degraded = true
			r.warn("barcode rendering unavailable, using text", "err", err)
		}
		img = nil
	}
	r.barcodes[key] = img
	return img
}

func (r *run) warn(msg string, args ...any) {
	if r.log != nil {
		r.log.Warn(msg, args...)
	}
}
