// Implements a raster backend to preview cards,
// by wrapping rasterx.
package cardraster

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"github.com/benoitkugler/punchcard/carddoc"
	"github.com/benoitkugler/punchcard/cardpath"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
)

var _ cardpath.Drawer = adder{} // assert interface conformance

// adder forwards the path operations to a rasterx Adder,
// in fixed point coordinates.
type adder struct {
	rasterx.Adder
}

func toFixed(p cardpath.Point) fixed.Point26_6 {
	return fixed.Point26_6{X: fixed.Int26_6(math.Round(p.X * 64)), Y: fixed.Int26_6(math.Round(p.Y * 64))}
}

func (a adder) Start(p cardpath.Point) { a.Adder.Start(toFixed(p)) }

func (a adder) Line(b cardpath.Point) { a.Adder.Line(toFixed(b)) }

func (a adder) CubeBezier(b, c, d cardpath.Point) {
	a.Adder.CubeBezier(toFixed(b), toFixed(c), toFixed(d))
}

func (a adder) Stop(closeLoop bool) { a.Adder.Stop(closeLoop) }

// Renderer draws card paths on an image, with `dpi` pixels per card unit.
type Renderer struct {
	img    *image.RGBA
	dpi    float64
	origin cardpath.Point // top left corner, in card units
	filler *rasterx.Filler // we use separated instances
	dasher *rasterx.Dasher // to avoid shared state
}

// NewRenderer returns a renderer for a card of the given size
// (in card units), starting with a white image.
// It panics if the resulting image would be empty.
func NewRenderer(width, height, dpi float64) *Renderer {
	if !(width*dpi >= 1 && height*dpi >= 1) {
		panic(fmt.Sprintf("cardraster: invalid image size %g x %g at %g dpi", width, height, dpi))
	}
	w, h := int(math.Ceil(width*dpi)), int(math.Ceil(height*dpi))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{color.White}, image.Point{}, draw.Src)

	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	return &Renderer{
		img:    img,
		dpi:    dpi,
		filler: rasterx.NewFiller(w, h, scanner),
		dasher: rasterx.NewDasher(w, h, scanner),
	}
}

// Image returns the image drawn so far.
func (rd *Renderer) Image() *image.RGBA { return rd.img }

func (rd *Renderer) transform() cardpath.Matrix2D {
	return cardpath.Identity.Scale(rd.dpi, rd.dpi).Translate(-rd.origin.X, -rd.origin.Y)
}

// SetOrigin changes the card point mapped to the top left
// corner of the image.
func (rd *Renderer) SetOrigin(origin cardpath.Point) { rd.origin = origin }

// Fill paints the inside of the path with `c`, using the non zero winding rule.
func (rd *Renderer) Fill(p cardpath.Path, c color.Color) {
	rd.filler.Clear()
	rd.filler.SetWinding(true)
	p.DrawTo(adder{rd.filler}, rd.transform())
	rd.filler.SetColor(c)
	rd.filler.Draw()
}

// Stroke paints the outline of the path with `c`, with a line
// of `width` card units.
func (rd *Renderer) Stroke(p cardpath.Path, width float64, c color.Color) {
	rd.dasher.Clear()
	rd.dasher.SetStroke(fixed.Int26_6(width*rd.dpi*64), fixed.Int26_6(4*64),
		rasterx.ButtCap, rasterx.ButtCap, rasterx.FlatGap, rasterx.Miter, nil, 0)
	p.DrawTo(adder{rd.dasher}, rd.transform())
	rd.dasher.SetColor(c)
	rd.dasher.Draw()
}

// Rasterize returns a preview of the punches of a card of the
// given size, filled in black over a white background.
func Rasterize(punches cardpath.Path, width, height, dpi float64) *image.RGBA {
	rd := NewRenderer(width, height, dpi)
	rd.Fill(punches, color.Black)
	return rd.Image()
}

// RasterizeDocument returns a preview of the card document,
// including its outline if any.
func RasterizeDocument(doc *carddoc.Document, dpi float64) *image.RGBA {
	w, h := doc.Size()
	rd := NewRenderer(w, h, dpi)
	rd.SetOrigin(cardpath.Point{X: doc.ViewBox.X, Y: doc.ViewBox.Y})
	rd.Fill(doc.Punches, color.Black)
	if len(doc.Outline) != 0 {
		rd.Stroke(doc.Outline, doc.StrokeWidth, color.Black)
	}
	return rd.Image()
}

// EncodePNG writes the image in PNG format.
func EncodePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}
