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

import (
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"
)

// RotationMode selects how placements alternate between upright and
// upside-down across the grid.
type RotationMode int

// The supported rotation modes.
const (
	// RotateNone places every copy upright.
	RotateNone RotationMode = iota

	// RotateRows turns every other grid row by 180 degrees.
	RotateRows

	// RotateColumns turns every other grid column by 180 degrees.
	RotateColumns

	// RotateEvenPages turns every second artwork page by 180 degrees,
	// independent of the grid position.
	RotateEvenPages
)

func (m RotationMode) String() string {
	switch m {
	case RotateNone:
		return "none"
	case RotateRows:
		return "rows"
	case RotateColumns:
		return "columns"
	case RotateEvenPages:
		return "even-pages"
	default:
		return fmt.Sprintf("RotationMode(%d)", int(m))
	}
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (m *RotationMode) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "", "none":
		*m = RotateNone
	case "rows":
		*m = RotateRows
	case "columns":
		*m = RotateColumns
	case "even-pages", "evenpages":
		*m = RotateEvenPages
	default:
		return &ConfigError{Field: "rotation", Reason: fmt.Sprintf("unknown mode %q", text)}
	}
	return nil
}

// Edge identifies one side of a rectangle, or of the sheet.
type Edge int

// The four edges, in the order used throughout this module.
const (
	Left Edge = iota
	Right
	Top
	Bottom
)

func (e Edge) String() string {
	switch e {
	case Left:
		return "left"
	case Right:
		return "right"
	case Top:
		return "top"
	case Bottom:
		return "bottom"
	default:
		return fmt.Sprintf("Edge(%d)", int(e))
	}
}

// Horizontal reports whether the edge is a vertical boundary of the
// rectangle, so that movement towards it is horizontal.
func (e Edge) Horizontal() bool {
	return e == Left || e == Right
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (e *Edge) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "", "left":
		*e = Left
	case "right":
		*e = Right
	case "top":
		*e = Top
	case "bottom":
		*e = Bottom
	default:
		return &ConfigError{Field: "binding", Reason: fmt.Sprintf("unknown edge %q", text)}
	}
	return nil
}

// BugPosition expresses where the gutter bug should go, relative to a
// placed item.
type BugPosition int

// The supported gutter bug positions.  BugAuto lets the placer choose
// the side with the most room.
const (
	BugAuto BugPosition = iota
	BugLeft
	BugRight
	BugTop
	BugBottom
	BugInside
	BugOutside
)

func (p BugPosition) String() string {
	switch p {
	case BugAuto:
		return "auto"
	case BugLeft:
		return "left"
	case BugRight:
		return "right"
	case BugTop:
		return "top"
	case BugBottom:
		return "bottom"
	case BugInside:
		return "inside"
	case BugOutside:
		return "outside"
	default:
		return fmt.Sprintf("BugPosition(%d)", int(p))
	}
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (p *BugPosition) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "", "auto":
		*p = BugAuto
	case "left":
		*p = BugLeft
	case "right":
		*p = BugRight
	case "top":
		*p = BugTop
	case "bottom":
		*p = BugBottom
	case "inside":
		*p = BugInside
	case "outside":
		*p = BugOutside
	default:
		return &ConfigError{Field: "bug-position", Reason: fmt.Sprintf("unknown position %q", text)}
	}
	return nil
}

// Orientation selects how the sheet is turned before planning.
type Orientation int

// OrientAuto plans both ways and keeps the layout with less waste.
const (
	OrientAuto Orientation = iota
	OrientPortrait
	OrientLandscape
)

// UnmarshalText implements [encoding.TextUnmarshaler].
func (o *Orientation) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "", "auto":
		*o = OrientAuto
	case "portrait":
		*o = OrientPortrait
	case "landscape":
		*o = OrientLandscape
	default:
		return &ConfigError{Field: "orientation", Reason: fmt.Sprintf("unknown orientation %q", text)}
	}
	return nil
}

// Item describes one print item to be placed on the sheet.
// All sizes and distances are in user space units.
type Item struct {
	// ID identifies the item's artwork at the artwork source.
	ID string

	// CutW, CutH give the final trimmed size.
	CutW, CutH float64

	// BleedW, BleedH give the artwork size including bleed.
	// Both must be at least as large as the cut size.
	BleedW, BleedH float64

	// MarginX, MarginY is the spacing this item asks for between
	// neighbouring grid cells.
	MarginX, MarginY float64

	// Rotation selects the grid alternation pattern.
	Rotation RotationMode

	// RotateFirst starts the alternation with the first row or column
	// in the turned state.
	RotateFirst bool

	// ShiftX, ShiftY nudge the artwork inside its cell, given in sheet
	// coordinates after rotation.
	ShiftX, ShiftY float64

	// Binding is the sheet edge the cut pieces will be bound along.
	// It selects the mirror axis for duplex backs.
	Binding Edge

	// Bug enables the gutter bug label strip.
	Bug bool

	// BugPos is the requested gutter bug position.
	BugPos BugPosition

	// BugBarcode draws the bug's tracking value as a barcode instead
	// of plain text only.
	BugBarcode bool

	// Marker enables the in-artwork tracking marker.
	Marker bool

	// MarkerX, MarkerY is the marker offset from the cut box's lower
	// left corner, measured in the artwork's own unrotated frame.
	MarkerX, MarkerY float64

	// MarkerPage is the 1-based artwork page that receives the marker.
	// Zero selects the last page.
	MarkerPage int

	// Labels are free-form identifying strings shown on cover sheets
	// and in the gutter bug text half.
	Labels []string

	// Quantity is the number of grid positions this item should occupy.
	Quantity int
}

// Sheet describes the press sheet.
type Sheet struct {
	W, H        float64
	Orientation Orientation
}

// Job is the complete description of one imposition run.
type Job struct {
	// OrderID and Batch identify the job in tracking barcodes and on
	// cover sheets.
	OrderID string
	Batch   string

	Sheet Sheet
	Items []Item

	// Positions is the number of grid positions to reserve.  Zero
	// means the sum of the item quantities (at least one per item).
	Positions int

	// CycleFill repeats the item sequence into positions beyond the
	// item count instead of leaving them blank.
	CycleFill bool

	// Duplex marks the job as two-sided: every second sheet is a back
	// and is mirrored along the binding edge.
	Duplex bool

	// Cover prefixes the output with non-production cover sheets
	// carrying the job metadata.
	Cover bool

	// Output is the name for the finished document.  If empty, a name
	// is derived from the batch.
	Output string
}

// RequiredPositions returns the number of grid positions the layout must
// provide for this job.
func (job *Job) RequiredPositions() int {
	if job.Positions > 0 {
		return job.Positions
	}
	n := 0
	for _, item := range job.Items {
		q := item.Quantity
		if q < 1 {
			q = 1
		}
		n += q
	}
	return n
}

// OutputName returns the file name for the finished document.  If no
// name was configured, a unique name is derived from the batch (or the
// order) so that repeated runs do not overwrite each other.
func (job *Job) OutputName() string {
	if job.Output != "" {
		return job.Output
	}
	stem := job.Batch
	if stem == "" {
		stem = job.OrderID
	}
	if stem == "" {
		stem = "imposed"
	}
	return stem + "-" + uuid.NewString() + ".pdf"
}

// Validate checks the fields which must be present before layout can run.
func (job *Job) Validate() error {
	if len(job.Items) == 0 {
		return &ConfigError{Field: "items", Reason: "no items"}
	}
	if job.Sheet.W <= 0 || job.Sheet.H <= 0 {
		return &ConfigError{Field: "sheet", Reason: "sheet size must be positive"}
	}
	for i, item := range job.Items {
		where := fmt.Sprintf("items[%d]", i)
		if item.ID == "" {
			return &ConfigError{Field: where + ".id", Reason: "missing artwork id"}
		}
		if item.CutW <= 0 || item.CutH <= 0 {
			return &ConfigError{Field: where + ".cut", Reason: "cut size must be positive"}
		}
		if item.BleedW < item.CutW || item.BleedH < item.CutH {
			return &ConfigError{Field: where + ".bleed", Reason: "bleed box smaller than cut box"}
		}
		if item.MarginX < 0 || item.MarginY < 0 {
			return &ConfigError{Field: where + ".margin", Reason: "margins must not be negative"}
		}
		if item.MarkerX < 0 || item.MarkerY < 0 {
			return &ConfigError{Field: where + ".marker", Reason: "marker offset must not be negative"}
		}
		if item.Marker && (item.MarkerX >= item.CutW || item.MarkerY >= item.CutH) {
			return &ConfigError{Field: where + ".marker", Reason: "marker offset outside the cut box"}
		}
	}
	if job.Positions > 0 && job.Positions < len(job.Items) {
		return &ConfigError{
			Field:  "positions",
			Reason: fmt.Sprintf("%d positions for %d items", job.Positions, len(job.Items)),
		}
	}
	return nil
}

// ticket mirrors the TOML job ticket.  Sizes in the ticket are given in
// inches and converted to user space units while loading.
type ticket struct {
	Order     string       `toml:"order"`
	Batch     string       `toml:"batch"`
	Output    string       `toml:"output"`
	Positions int          `toml:"positions"`
	CycleFill bool         `toml:"cycle-fill"`
	Duplex    bool         `toml:"duplex"`
	Cover     bool         `toml:"cover"`
	Sheet     ticketSheet  `toml:"sheet"`
	Items     []ticketItem `toml:"item"`
}

type ticketSheet struct {
	Width       float64     `toml:"width"`
	Height      float64     `toml:"height"`
	Orientation Orientation `toml:"orientation"`
}

type ticketItem struct {
	ID           string       `toml:"id"`
	CutWidth     float64      `toml:"cut-width"`
	CutHeight    float64      `toml:"cut-height"`
	BleedWidth   float64      `toml:"bleed-width"`
	BleedHeight  float64      `toml:"bleed-height"`
	MarginX      float64      `toml:"margin-x"`
	MarginY      float64      `toml:"margin-y"`
	Rotation     RotationMode `toml:"rotation"`
	RotateFirst  bool         `toml:"rotate-first"`
	ShiftX       float64      `toml:"shift-x"`
	ShiftY       float64      `toml:"shift-y"`
	Binding      Edge         `toml:"binding"`
	Bug          bool         `toml:"bug"`
	BugPosition  BugPosition  `toml:"bug-position"`
	BugBarcode   bool         `toml:"bug-barcode"`
	Marker       bool         `toml:"marker"`
	MarkerX      float64      `toml:"marker-x"`
	MarkerY      float64      `toml:"marker-y"`
	MarkerPage   int          `toml:"marker-page"`
	Labels       []string     `toml:"labels"`
	Quantity     int          `toml:"quantity"`
}

// ReadJob loads and validates a TOML job ticket.
func ReadJob(r io.Reader) (*Job, error) {
	var t ticket
	meta, err := toml.NewDecoder(r).Decode(&t)
	if err != nil {
		return nil, &ConfigError{Field: "ticket", Reason: err.Error()}
	}
	if undec := meta.Undecoded(); len(undec) > 0 {
		return nil, &ConfigError{
			Field:  undec[0].String(),
			Reason: "unknown ticket key",
		}
	}

	job := &Job{
		OrderID: t.Order,
		Batch:   t.Batch,
		Output:  t.Output,
		Sheet: Sheet{
			W:           t.Sheet.Width * Inch,
			H:           t.Sheet.Height * Inch,
			Orientation: t.Sheet.Orientation,
		},
		Positions: t.Positions,
		CycleFill: t.CycleFill,
		Duplex:    t.Duplex,
		Cover:     t.Cover,
	}
	for _, ti := range t.Items {
		item := Item{
			ID:          ti.ID,
			CutW:        ti.CutWidth * Inch,
			CutH:        ti.CutHeight * Inch,
			BleedW:      ti.BleedWidth * Inch,
			BleedH:      ti.BleedHeight * Inch,
			MarginX:     ti.MarginX * Inch,
			MarginY:     ti.MarginY * Inch,
			Rotation:    ti.Rotation,
			RotateFirst: ti.RotateFirst,
			ShiftX:      ti.ShiftX * Inch,
			ShiftY:      ti.ShiftY * Inch,
			Binding:     ti.Binding,
			Bug:         ti.Bug,
			BugPos:      ti.BugPosition,
			BugBarcode:  ti.BugBarcode,
			Marker:      ti.Marker,
			MarkerX:     ti.MarkerX * Inch,
			MarkerY:     ti.MarkerY * Inch,
			MarkerPage:  ti.MarkerPage,
			Labels:      ti.Labels,
			Quantity:    ti.Quantity,
		}
		if item.BleedW == 0 {
			item.BleedW = item.CutW
		}
		if item.BleedH == 0 {
			item.BleedH = item.CutH
		}
		job.Items = append(job.Items, item)
	}

	if err := job.Validate(); err != nil {
		return nil, err
	}
	return job, nil
}
