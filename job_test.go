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
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const sampleTicket = `
order = "ORD-2026-0815"
batch = "B12"
duplex = true
cover = true

[sheet]
width = 13
height = 19
orientation = "portrait"

[[item]]
id = "card-front"
cut-width = 2
cut-height = 3.5
bleed-width = 2.25
bleed-height = 3.75
margin-x = 0.25
margin-y = 0.25
rotation = "rows"
binding = "left"
bug = true
bug-barcode = true
marker = true
marker-x = 0.125
marker-y = 0.125
labels = ["matte", "rush"]
quantity = 8
`

func TestReadJob(t *testing.T) {
	job, err := ReadJob(strings.NewReader(sampleTicket))
	if err != nil {
		t.Fatal(err)
	}

	want := &Job{
		OrderID: "ORD-2026-0815",
		Batch:   "B12",
		Duplex:  true,
		Cover:   true,
		Sheet: Sheet{
			W:           13 * Inch,
			H:           19 * Inch,
			Orientation: OrientPortrait,
		},
		Items: []Item{{
			ID:         "card-front",
			CutW:       2 * Inch,
			CutH:       3.5 * Inch,
			BleedW:     2.25 * Inch,
			BleedH:     3.75 * Inch,
			MarginX:    0.25 * Inch,
			MarginY:    0.25 * Inch,
			Rotation:   RotateRows,
			Binding:    Left,
			Bug:        true,
			BugBarcode: true,
			Marker:     true,
			MarkerX:    0.125 * Inch,
			MarkerY:    0.125 * Inch,
			Labels:     []string{"matte", "rush"},
			Quantity:   8,
		}},
	}
	if d := cmp.Diff(want, job); d != "" {
		t.Errorf("job differs (-want +got):\n%s", d)
	}
}

func TestReadJobDefaultBleed(t *testing.T) {
	const ticket = `
[sheet]
width = 12
height = 18

[[item]]
id = "x"
cut-width = 2
cut-height = 2
`
	job, err := ReadJob(strings.NewReader(ticket))
	if err != nil {
		t.Fatal(err)
	}
	item := job.Items[0]
	if item.BleedW != item.CutW || item.BleedH != item.CutH {
		t.Errorf("bleed box not defaulted: %g x %g", item.BleedW, item.BleedH)
	}
}

func TestReadJobUnknownKey(t *testing.T) {
	const ticket = `
fnord = 1

[sheet]
width = 12
height = 18

[[item]]
id = "x"
cut-width = 2
cut-height = 2
`
	_, err := ReadJob(strings.NewReader(ticket))
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("got %v, want *ConfigError", err)
	}
	if cfgErr.Field != "fnord" {
		t.Errorf("got field %q, want %q", cfgErr.Field, "fnord")
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Job {
		return &Job{
			Sheet: Sheet{W: 900, H: 1200},
			Items: []Item{{ID: "a", CutW: 100, CutH: 100, BleedW: 110, BleedH: 110}},
		}
	}

	testCases := []struct {
		name   string
		modify func(*Job)
		field  string
	}{
		{
			name:   "ok",
			modify: func(job *Job) {},
		},
		{
			name:   "no items",
			modify: func(job *Job) { job.Items = nil },
			field:  "items",
		},
		{
			name:   "bad sheet",
			modify: func(job *Job) { job.Sheet.W = 0 },
			field:  "sheet",
		},
		{
			name:   "missing id",
			modify: func(job *Job) { job.Items[0].ID = "" },
			field:  "items[0].id",
		},
		{
			name:   "bleed too small",
			modify: func(job *Job) { job.Items[0].BleedW = 90 },
			field:  "items[0].bleed",
		},
		{
			name:   "negative margin",
			modify: func(job *Job) { job.Items[0].MarginY = -1 },
			field:  "items[0].margin",
		},
		{
			name: "marker offset outside cut",
			modify: func(job *Job) {
				job.Items[0].Marker = true
				job.Items[0].MarkerX = 120
			},
			field: "items[0].marker",
		},
		{
			name:   "too few positions",
			modify: func(job *Job) { job.Positions = 1; job.Items = append(job.Items, job.Items[0]) },
			field:  "positions",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			job := valid()
			tc.modify(job)
			err := job.Validate()
			if tc.field == "" {
				if err != nil {
					t.Fatalf("unexpected error %v", err)
				}
				return
			}
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("got %v, want *ConfigError", err)
			}
			if cfgErr.Field != tc.field {
				t.Errorf("got field %q, want %q", cfgErr.Field, tc.field)
			}
		})
	}
}

func TestRequiredPositions(t *testing.T) {
	job := &Job{
		Items: []Item{
			{ID: "a", Quantity: 3},
			{ID: "b"}, // counts as one
		},
	}
	if got := job.RequiredPositions(); got != 4 {
		t.Errorf("got %d positions, want 4", got)
	}

	job.Positions = 7
	if got := job.RequiredPositions(); got != 7 {
		t.Errorf("got %d positions, want 7", got)
	}
}

func TestOutputName(t *testing.T) {
	job := &Job{Output: "out.pdf"}
	if got := job.OutputName(); got != "out.pdf" {
		t.Errorf("got %q", got)
	}

	job = &Job{Batch: "B12"}
	n1 := job.OutputName()
	n2 := job.OutputName()
	if !strings.HasPrefix(n1, "B12-") || !strings.HasSuffix(n1, ".pdf") {
		t.Errorf("unexpected name %q", n1)
	}
	if n1 == n2 {
		t.Errorf("names are not unique: %q", n1)
	}
}
