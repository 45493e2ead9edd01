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

import "fmt"

// ConfigError indicates that the job description is missing required
// information or could not be parsed.  Jobs failing this way produce no
// output at all.
type ConfigError struct {
	Field  string
	Reason string
}

func (err *ConfigError) Error() string {
	if err.Field == "" {
		return "invalid job: " + err.Reason
	}
	return fmt.Sprintf("invalid job: %s: %s", err.Field, err.Reason)
}

// InfeasibleError indicates that the requested number of positions cannot
// be fitted onto the sheet, even using the largest possible grid.
type InfeasibleError struct {
	SheetW, SheetH float64
	CellW, CellH   float64
	Positions      int
}

func (err *InfeasibleError) Error() string {
	return fmt.Sprintf("cannot fit %d cells of %gx%g onto a %gx%g sheet",
		err.Positions, err.CellW, err.CellH, err.SheetW, err.SheetH)
}
