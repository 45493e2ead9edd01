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

package layout

import "seehuhn.de/go/impose"

// Blank marks a reserved position which holds no item.  Blank cells
// still receive crop marks.
const Blank = -1

// Placement assigns one grid position to an item.  Item is an index into
// the job's item list, or [Blank].
type Placement struct {
	Row, Col int
	Item     int
}

// Placements fills the reserved grid positions in row-major order.
//
// The item sequence is each item repeated according to its quantity.
// Positions beyond the sequence stay blank, unless cycle is set, in
// which case the sequence repeats until all reserved positions are
// filled.  Grid cells beyond the reserved count are not placed at all.
func Placements(g *Grid, quantities []int, cycle bool) []Placement {
	var seq []int
	for i, q := range quantities {
		if q < 1 {
			q = 1
		}
		for range q {
			seq = append(seq, i)
		}
	}

	pl := make([]Placement, 0, g.Positions)
	for idx := range g.Positions {
		item := Blank
		switch {
		case idx < len(seq):
			item = seq[idx]
		case cycle && len(seq) > 0:
			item = seq[idx%len(seq)]
		}
		pl = append(pl, Placement{
			Row:  idx / g.Cols,
			Col:  idx % g.Cols,
			Item: item,
		})
	}
	return pl
}

// Quantities extracts the per-item quantity list for [Placements] from
// the items of a job.
func Quantities(items []impose.Item) []int {
	qq := make([]int, len(items))
	for i, item := range items {
		qq[i] = item.Quantity
	}
	return qq
}
