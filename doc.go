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

// Package impose arranges print items onto larger press sheets.
//
// Imposition places one or many items (or repeated copies of one item) on a
// grid covering a press sheet, adds crop marks for trimming, and optionally
// mirrors the grid for two-sided printing so that fronts and backs line up
// after cutting.  Small auxiliary markings can be added: a "gutter bug"
// label strip next to each placed item, and a rotation-stable tracking
// marker glued to the artwork itself.
//
// This package holds the job description and the shared geometry
// parameters.  The actual work is done by the subpackages:
//
//   - [seehuhn.de/go/impose/layout] fits a grid of cells onto a sheet and
//     assigns items to grid positions.
//   - [seehuhn.de/go/impose/rotate] computes per-cell rotation angles and
//     the mirrored positions used on the backs of duplex sheets.
//   - [seehuhn.de/go/impose/marks] computes crop tick, gutter bug and
//     tracking marker geometry.
//   - [seehuhn.de/go/impose/render] drives the per-sheet drawing passes.
//   - [seehuhn.de/go/impose/pdfdraw] implements the drawing interfaces on
//     top of seehuhn.de/go/pdf.
//
// All coordinates and distances are in PDF default user space units
// (1/72 inch).  Job tickets use inches; decoding converts.
package impose
