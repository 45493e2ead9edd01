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
	"image"
	"strconv"
	"strings"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/impose/rotate"
)

// A Recorder implements [Doc] and [Canvas] and records all drawing
// commands instead of producing output.  Tests inspect the recorded
// command stream.
//
// Artwork handed to Embed is interpreted as `pages <n>` to simulate an
// n-page document; everything else embeds as a single page.  Embedded
// pages report EmbedW x EmbedH as their size.
type Recorder struct {
	Ops []Op

	// EmbedW, EmbedH is the size reported by embedded artwork pages.
	// The zero value means 2in x 2in.
	EmbedW, EmbedH float64

	Embeds      int
	SheetsOpen  int
	SheetsDrawn int
	Closed      bool
}

// Op is one recorded drawing command.
type Op struct {
	Name string // addsheet, closesheet, linewidth, gray, opacity, line, rect, text, image, art

	From, To vec.Vec2
	Rect     rect.Rect
	Origin   vec.Vec2
	W, H     float64
	Value    float64
	Text     string
	Fill     bool
	Angle    rotate.Angle
	Page     int
}

func (r *Recorder) record(op Op) {
	r.Ops = append(r.Ops, op)
}

// Names returns the names of all recorded commands, in order.
func (r *Recorder) Names() []string {
	names := make([]string, len(r.Ops))
	for i, op := range r.Ops {
		names[i] = op.Name
	}
	return names
}

// Count returns how many commands with the given name were recorded.
func (r *Recorder) Count(name string) int {
	n := 0
	for _, op := range r.Ops {
		if op.Name == name {
			n++
		}
	}
	return n
}

type recordedArt struct {
	r     *Recorder
	pages int
}

type recordedPage struct {
	art  *recordedArt
	page int
}

func (a *recordedArt) NumPages() int {
	return a.pages
}

func (a *recordedArt) Page(i int) (ArtPage, error) {
	if i < 0 || i >= a.pages {
		return nil, fmt.Errorf("page %d out of range", i)
	}
	return &recordedPage{art: a, page: i}, nil
}

func (p *recordedPage) Size() (float64, float64) {
	w, h := p.art.r.EmbedW, p.art.r.EmbedH
	if w == 0 {
		w = 144
	}
	if h == 0 {
		h = 144
	}
	return w, h
}

// Embed implements the [Doc] interface.
func (r *Recorder) Embed(data []byte) (Art, error) {
	pages := 1
	if s, ok := strings.CutPrefix(string(data), "pages "); ok {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return nil, err
		}
		pages = n
	}
	r.Embeds++
	return &recordedArt{r: r, pages: pages}, nil
}

// AddSheet implements the [Doc] interface.
func (r *Recorder) AddSheet(w, h float64) (Canvas, error) {
	if r.SheetsOpen != 0 {
		return nil, fmt.Errorf("%d sheets still open", r.SheetsOpen)
	}
	r.SheetsOpen++
	r.record(Op{Name: "addsheet", W: w, H: h})
	return r, nil
}

// CloseSheet implements the [Doc] interface.
func (r *Recorder) CloseSheet() error {
	if r.SheetsOpen != 1 {
		return fmt.Errorf("no sheet open")
	}
	r.SheetsOpen--
	r.SheetsDrawn++
	r.record(Op{Name: "closesheet"})
	return nil
}

// Close implements the [Doc] interface.
func (r *Recorder) Close() error {
	if r.SheetsOpen != 0 {
		return fmt.Errorf("%d sheets still open", r.SheetsOpen)
	}
	r.Closed = true
	return nil
}

func (r *Recorder) SetLineWidth(w float64) {
	r.record(Op{Name: "linewidth", Value: w})
}

func (r *Recorder) SetGray(g float64) {
	r.record(Op{Name: "gray", Value: g})
}

func (r *Recorder) SetOpacity(alpha float64) {
	r.record(Op{Name: "opacity", Value: alpha})
}

func (r *Recorder) Line(from, to vec.Vec2) {
	r.record(Op{Name: "line", From: from, To: to})
}

func (r *Recorder) Rect(rr rect.Rect, fill bool) {
	r.record(Op{Name: "rect", Rect: rr, Fill: fill})
}

func (r *Recorder) Text(s string, origin vec.Vec2, size float64, angle rotate.Angle) {
	r.record(Op{Name: "text", Text: s, Origin: origin, Value: size, Angle: angle})
}

func (r *Recorder) Image(img image.Image, origin vec.Vec2, w, h float64, angle rotate.Angle) {
	r.record(Op{Name: "image", Origin: origin, W: w, H: h, Angle: angle})
}

func (r *Recorder) Art(p ArtPage, origin vec.Vec2, angle rotate.Angle) {
	page := p.(*recordedPage)
	r.record(Op{Name: "art", Origin: origin, Angle: angle, Page: page.page})
}

var (
	_ Doc    = (*Recorder)(nil)
	_ Canvas = (*Recorder)(nil)
)
