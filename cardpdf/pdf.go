// Package cardpdf renders a card document as a one page PDF,
// sized to the card.
package cardpdf

import (
	"image/color"

	"github.com/benoitkugler/pdf/contentstream"
	"github.com/benoitkugler/pdf/model"
	"github.com/benoitkugler/punchcard/carddoc"
	"github.com/benoitkugler/punchcard/cardpath"
)

// PointsPerInch is the number of PDF points per inch,
// to use when the card units are inches.
const PointsPerInch = 72

var _ cardpath.Drawer = (*pather)(nil) // assert interface conformance

// pather accumulates the path construction operators
type pather struct {
	ops []contentstream.Operation
}

func (p *pather) Start(a cardpath.Point) {
	p.ops = append(p.ops, contentstream.OpMoveTo{X: a.X, Y: a.Y})
}

func (p *pather) Line(b cardpath.Point) {
	p.ops = append(p.ops, contentstream.OpLineTo{X: b.X, Y: b.Y})
}

func (p *pather) CubeBezier(b, c, d cardpath.Point) {
	p.ops = append(p.ops, contentstream.OpCubicTo{X1: b.X, Y1: b.Y, X2: c.X, Y2: c.Y, X3: d.X, Y3: d.Y})
}

func (p *pather) Stop(closeLoop bool) {
	if closeLoop {
		p.ops = append(p.ops, contentstream.OpClosePath{})
	}
}

// pathOps returns the operators building `p`, after applying `m`.
func pathOps(p cardpath.Path, m cardpath.Matrix2D) []contentstream.Operation {
	var pa pather
	p.DrawTo(&pa, m)
	return pa.ops
}

// Operations returns the content of the page: the punches
// filled with the non zero winding rule, and the outline stroked.
// The coordinates are in points, with the y axis going down; see Render
// for the page transform.
func Operations(doc *carddoc.Document, pointsPerUnit float64) []contentstream.Operation {
	m := cardpath.Identity.Scale(pointsPerUnit, pointsPerUnit).Translate(-doc.ViewBox.X, -doc.ViewBox.Y)

	var ops []contentstream.Operation
	if punches := pathOps(doc.Punches, m); len(punches) != 0 {
		ops = append(ops, punches...)
		ops = append(ops, contentstream.OpFill{})
	}
	if outline := pathOps(doc.Outline, m); len(outline) != 0 {
		ops = append(ops, contentstream.OpSetLineWidth{W: doc.StrokeWidth * pointsPerUnit})
		ops = append(ops, outline...)
		ops = append(ops, contentstream.OpStroke{})
	}
	return ops
}

// Render returns a PDF document made of one page, which displays
// the card in black, with `pointsPerUnit` points for one card unit.
func Render(doc *carddoc.Document, pointsPerUnit float64) model.Document {
	w, h := doc.Size()
	w, h = w*pointsPerUnit, h*pointsPerUnit

	page := contentstream.NewAppearance(w, h)
	page.Ops(
		contentstream.OpSave{},
		contentstream.OpConcat{Matrix: model.Matrix{1, 0, 0, -1, 0, h}},
	)
	page.SetColorFill(color.Black)
	page.SetColorStroke(color.Black)
	page.Ops(Operations(doc, pointsPerUnit)...)
	page.Ops(contentstream.OpRestore{})

	pageObject := new(model.PageObject)
	page.ApplyToPageObject(pageObject, true)

	var out model.Document
	out.Catalog.Pages.Kids = append(out.Catalog.Pages.Kids, pageObject)
	return out
}

// WriteFile renders the card and writes it to `path`.
func WriteFile(doc *carddoc.Document, pointsPerUnit float64, path string) error {
	out := Render(doc, pointsPerUnit)
	return out.WriteFile(path, nil)
}
