// Serializes the holes of a card into a vector document:
// an SVG image whose viewport matches the card dimensions,
// with one compound path for the punches and an optional outline.
package carddoc

import (
	"encoding/xml"
	"strings"

	"github.com/benoitkugler/punchcard/cardlayout"
	"github.com/benoitkugler/punchcard/cardpath"
)

const (
	// DefaultTolerance is the maximum distance between
	// the rendered curves and the true circles.
	DefaultTolerance = 0.00001

	// DefaultStrokeWidth is the width of the outline.
	DefaultStrokeWidth = 0.05

	svgNamespace = "http://www.w3.org/2000/svg"
)

// Options controls the document layout.
// The zero value renders the punches only, as a standalone SVG.
type Options struct {
	// IncludeOutline adds a stroked rectangle around the card.
	IncludeOutline bool
	// OutlineWidth is the width of the outline rectangle,
	// defaulting to the card width.
	OutlineWidth float64
	StrokeWidth  float64 // defaults to DefaultStrokeWidth
	Tolerance    float64 // defaults to DefaultTolerance

	// HTML wraps the SVG image in a minimal HTML page.
	HTML bool
	// Unit, if not empty, adds explicit width and height
	// attributes (such as "13.8in") to the SVG element.
	Unit string
}

func (opts Options) tolerance() float64 {
	if opts.Tolerance > 0 {
		return opts.Tolerance
	}
	return DefaultTolerance
}

func (opts Options) strokeWidth() float64 {
	if opts.StrokeWidth > 0 {
		return opts.StrokeWidth
	}
	return DefaultStrokeWidth
}

func writeAttr(sb *strings.Builder, name, value string) {
	sb.WriteByte(' ')
	sb.WriteString(name)
	sb.WriteString(`="`)
	xml.EscapeText(sb, []byte(value))
	sb.WriteByte('"')
}

// Render returns the document for the given holes, with a viewport
// of exactly width x height card units. Circles are written in order,
// as one compound, filled path.
// The output only depends on its arguments.
func Render(circles []cardlayout.Circle, width, height float64, opts Options) string {
	punches := cardlayout.Path(circles, opts.tolerance())

	var sb strings.Builder
	if opts.HTML {
		sb.WriteString("<!DOCTYPE html>\n<html>\n<body>\n")
	}

	w, h := cardpath.FormatNumber(width), cardpath.FormatNumber(height)
	sb.WriteString("<svg")
	writeAttr(&sb, "viewBox", "0 0 "+w+" "+h)
	if opts.Unit != "" {
		writeAttr(&sb, "width", w+opts.Unit)
		writeAttr(&sb, "height", h+opts.Unit)
	}
	writeAttr(&sb, "xmlns", svgNamespace)
	sb.WriteString(">\n")

	sb.WriteString("<path")
	writeAttr(&sb, "d", punches.ToSVGPath())
	writeAttr(&sb, "stroke", "none")
	writeAttr(&sb, "fill", "black")
	sb.WriteString("/>\n")

	if opts.IncludeOutline {
		outlineWidth := opts.OutlineWidth
		if outlineWidth == 0 {
			outlineWidth = width
		}
		var outline cardpath.Path
		outline.AddRect(cardpath.Point{}, cardpath.Point{X: outlineWidth, Y: height})

		sb.WriteString("<path")
		writeAttr(&sb, "d", outline.ToSVGPath())
		writeAttr(&sb, "stroke", "black")
		writeAttr(&sb, "fill", "none")
		writeAttr(&sb, "stroke-width", cardpath.FormatNumber(opts.strokeWidth()))
		sb.WriteString("/>\n")
	}

	sb.WriteString("</svg>\n")
	if opts.HTML {
		sb.WriteString("</body>\n</html>\n")
	}
	return sb.String()
}

// RenderCard generates the holes of the card and renders them.
// When the outline is included without an explicit width, the
// outline width of the constants is used.
func RenderCard(g cardlayout.Grid, c cardlayout.Constants, opts Options) string {
	if opts.IncludeOutline && opts.OutlineWidth == 0 {
		opts.OutlineWidth = c.CardOutlineWidth()
	}
	return Render(cardlayout.Generate(g, c), c.CardWidth(), c.CardHeight(), opts)
}
