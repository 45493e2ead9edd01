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

// Package pdfdraw implements the render interfaces on top of
// seehuhn.de/go/pdf.
//
// Artwork pages are copied into the output as Form XObjects, so that
// each embedded document contributes its objects only once no matter on
// how many sheets it appears.
package pdfdraw

import (
	"bytes"
	"fmt"
	"image"
	"io"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/font"
	"seehuhn.de/go/pdf/font/standard"
	"seehuhn.de/go/pdf/graphics"
	"seehuhn.de/go/pdf/graphics/color"
	"seehuhn.de/go/pdf/graphics/extgstate"
	"seehuhn.de/go/pdf/graphics/form"
	pdfimage "seehuhn.de/go/pdf/graphics/image"
	"seehuhn.de/go/pdf/pagetree"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/impose/render"
	"seehuhn.de/go/impose/rotate"
)

// Doc writes imposition sheets to a PDF file.  It implements
// [render.Doc].
//
// Drawing commands do not report errors individually.  The first error
// is latched and returned by CloseSheet or Close, in the manner of the
// content stream builders in seehuhn.de/go/pdf.
type Doc struct {
	doc  *document.MultiPage
	font font.Layouter
	err  error

	paperW, paperH float64
	cur            *document.Page

	readers []io.Closer
	images  map[image.Image]graphics.XObject
	numImg  int
}

// Create writes the output document to the file with the given name.
// The sheet size fixes the default page size.
func Create(fileName string, sheetW, sheetH float64) (*Doc, error) {
	paper := &pdf.Rectangle{URx: sheetW, URy: sheetH}
	doc, err := document.CreateMultiPage(fileName, paper, pdf.V1_7, nil)
	if err != nil {
		return nil, err
	}
	return newDoc(doc, sheetW, sheetH)
}

// Write writes the output document to w.
func Write(w io.Writer, sheetW, sheetH float64) (*Doc, error) {
	paper := &pdf.Rectangle{URx: sheetW, URy: sheetH}
	doc, err := document.WriteMultiPage(w, paper, pdf.V1_7, nil)
	if err != nil {
		return nil, err
	}
	return newDoc(doc, sheetW, sheetH)
}

func newDoc(doc *document.MultiPage, sheetW, sheetH float64) (*Doc, error) {
	helvetica, err := standard.Helvetica.New(nil)
	if err != nil {
		return nil, err
	}
	return &Doc{
		doc:    doc,
		font:   helvetica,
		paperW: sheetW,
		paperH: sheetH,
		images: make(map[image.Image]graphics.XObject),
	}, nil
}

// AddSheet implements the [render.Doc] interface.
func (d *Doc) AddSheet(w, h float64) (render.Canvas, error) {
	if d.err != nil {
		return nil, d.err
	}
	if d.cur != nil {
		return nil, fmt.Errorf("previous sheet not closed")
	}
	page := d.doc.AddPage()
	if w != d.paperW || h != d.paperH {
		page.SetPageSize(&pdf.Rectangle{URx: w, URy: h})
	}
	d.cur = page
	return &sheet{doc: d, page: page}, nil
}

// CloseSheet implements the [render.Doc] interface.
func (d *Doc) CloseSheet() error {
	if d.cur == nil {
		return fmt.Errorf("no sheet open")
	}
	page := d.cur
	d.cur = nil
	if d.err != nil {
		return d.err
	}
	return page.Close()
}

// Close implements the [render.Doc] interface.  It finishes the PDF
// file and releases all embedded artwork readers.
func (d *Doc) Close() error {
	if d.cur != nil {
		return fmt.Errorf("sheet still open")
	}
	for _, r := range d.readers {
		if err := r.Close(); err != nil && d.err == nil {
			d.err = err
		}
	}
	d.readers = nil
	if d.err != nil {
		return d.err
	}
	return d.doc.Close()
}

// Embed implements the [render.Doc] interface.  The artwork must be a
// PDF document.
func (d *Doc) Embed(data []byte) (render.Art, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)), nil)
	if err != nil {
		return nil, err
	}
	numPages, err := pagetree.NumPages(r)
	if err != nil {
		return nil, err
	}
	if numPages < 1 {
		return nil, fmt.Errorf("artwork has no pages")
	}
	d.readers = append(d.readers, r)
	return &art{
		doc:    d,
		r:      r,
		copier: pdf.NewCopier(d.doc.Out, r),
		pages:  make([]*artPage, numPages),
	}, nil
}

type art struct {
	doc    *Doc
	r      *pdf.Reader
	copier *pdf.Copier
	pages  []*artPage
}

type artPage struct {
	xobj graphics.XObject
	bbox *pdf.Rectangle
}

func (a *art) NumPages() int {
	return len(a.pages)
}

// Page copies the given artwork page into the output document as a Form
// XObject.  Pages are copied lazily and at most once.
func (a *art) Page(i int) (render.ArtPage, error) {
	if i < 0 || i >= len(a.pages) {
		return nil, fmt.Errorf("page %d out of range", i)
	}
	if a.pages[i] != nil {
		return a.pages[i], nil
	}

	pageDict, err := pagetree.GetPage(a.r, i)
	if err != nil {
		return nil, err
	}

	box := pageDict["CropBox"]
	if box == nil {
		box = pageDict["MediaBox"]
	}
	bbox, err := pdf.GetRectangle(a.r, box)
	if err != nil {
		return nil, err
	}

	origRes, err := pdf.GetDict(a.r, pageDict["Resources"])
	if err != nil {
		return nil, err
	}
	resObj, err := a.copier.Copy(origRes)
	if err != nil {
		return nil, err
	}
	res, err := pdf.ExtractResources(nil, resObj)
	if err != nil {
		return nil, err
	}

	contents, err := pagetree.ContentStream(a.r, pageDict)
	if err != nil {
		return nil, err
	}
	body, err := io.ReadAll(contents)
	if err != nil {
		return nil, err
	}

	f := &form.Form{
		BBox:      bbox,
		Resources: res,
	}
	emb, err := f.Embed(a.doc.doc.Out, body)
	if err != nil {
		return nil, err
	}

	a.pages[i] = &artPage{xobj: emb, bbox: bbox}
	return a.pages[i], nil
}

func (p *artPage) Size() (float64, float64) {
	return p.bbox.Dx(), p.bbox.Dy()
}

// sheet implements [render.Canvas] on one open page.
type sheet struct {
	doc  *Doc
	page *document.Page
}

func (s *sheet) fail(err error) {
	if s.doc.err == nil {
		s.doc.err = err
	}
}

func (s *sheet) SetLineWidth(w float64) {
	s.page.SetLineWidth(w)
}

func (s *sheet) SetGray(g float64) {
	s.page.SetStrokeColor(color.DeviceGray(g))
	s.page.SetFillColor(color.DeviceGray(g))
}

func (s *sheet) SetOpacity(alpha float64) {
	s.page.SetExtGState(&extgstate.ExtGState{
		Set:         graphics.StateStrokeAlpha | graphics.StateFillAlpha,
		StrokeAlpha: alpha,
		FillAlpha:   alpha,
	})
}

func (s *sheet) Line(from, to vec.Vec2) {
	s.page.MoveTo(from.X, from.Y)
	s.page.LineTo(to.X, to.Y)
	s.page.Stroke()
}

func (s *sheet) Rect(r rect.Rect, fill bool) {
	s.page.Rectangle(r.LLx, r.LLy, r.Dx(), r.Dy())
	if fill {
		s.page.Fill()
	} else {
		s.page.Stroke()
	}
}

func (s *sheet) Text(str string, origin vec.Vec2, size float64, angle rotate.Angle) {
	s.page.TextBegin()
	s.page.TextSetFont(s.doc.font, size)
	s.page.TextSetMatrix(matrix.RotateDeg(float64(angle)).Translate(origin.X, origin.Y))
	s.page.TextShow(str)
	s.page.TextEnd()
}

func (s *sheet) Image(img image.Image, origin vec.Vec2, w, h float64, angle rotate.Angle) {
	xobj, ok := s.doc.images[img]
	if !ok {
		s.doc.numImg++
		name := fmt.Sprintf("I%d", s.doc.numImg)
		var err error
		xobj, err = pdfimage.EmbedPNG(s.doc.doc.Out, img, name)
		if err != nil {
			s.fail(err)
			return
		}
		s.doc.images[img] = xobj
	}

	s.page.PushGraphicsState()
	s.page.Transform(matrix.Translate(origin.X, origin.Y))
	if angle != rotate.Deg0 {
		s.page.Transform(matrix.RotateDeg(float64(angle)))
	}
	// image XObjects cover the unit square
	s.page.Transform(matrix.Scale(w, h))
	s.page.DrawXObject(xobj)
	s.page.PopGraphicsState()
}

func (s *sheet) Art(p render.ArtPage, origin vec.Vec2, angle rotate.Angle) {
	page, ok := p.(*artPage)
	if !ok {
		s.fail(fmt.Errorf("foreign artwork page %T", p))
		return
	}

	s.page.PushGraphicsState()
	s.page.Transform(matrix.Translate(origin.X, origin.Y))
	if angle != rotate.Deg0 {
		s.page.Transform(matrix.RotateDeg(float64(angle)))
	}
	// the form's own coordinates need not start at the origin
	if page.bbox.LLx != 0 || page.bbox.LLy != 0 {
		s.page.Transform(matrix.Translate(-page.bbox.LLx, -page.bbox.LLy))
	}
	s.page.DrawXObject(page.xobj)
	s.page.PopGraphicsState()
}

var (
	_ render.Doc    = (*Doc)(nil)
	_ render.Canvas = (*sheet)(nil)
)
