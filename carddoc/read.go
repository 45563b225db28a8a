package carddoc

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/benoitkugler/punchcard/cardpath"
	"golang.org/x/net/html/charset"
)

// ErrorMode is the for setting how the reader handles
// elements which are not part of a card document.
type ErrorMode uint8

const (
	// IgnoreErrorMode skips unknown elements
	IgnoreErrorMode ErrorMode = iota
	// WarnErrorMode logs a warning for unknown elements
	WarnErrorMode
	// StrictErrorMode returns an error for unknown elements
	StrictErrorMode
)

var (
	errParamMismatch = errors.New("param mismatch")
	errNoViewBox     = errors.New("invalid card document: missing svg viewBox")
)

// Bounds defines a bounding box, such as a viewport.
type Bounds struct{ X, Y, W, H float64 }

// Document is a card document read back from its text.
type Document struct {
	ViewBox       Bounds
	Width, Height string // top level width and height attributes, with unit

	Punches     cardpath.Path // union of the filled paths
	Outline     cardpath.Path // union of the stroked, unfilled paths
	StrokeWidth float64       // of the outline
}

// Size returns the width and height of the card, read from the viewport.
func (doc *Document) Size() (width, height float64) { return doc.ViewBox.W, doc.ViewBox.H }

// Overflow reports whether the punches or the outline
// extend beyond the viewport, and would be clipped.
func (doc *Document) Overflow() (punches, outline bool) {
	vb := doc.ViewBox
	viewport := cardpath.Rect{
		Min: cardpath.Point{X: vb.X, Y: vb.Y},
		Max: cardpath.Point{X: vb.X + vb.W, Y: vb.Y + vb.H},
	}
	if bbox, ok := doc.Punches.Bounds(); ok && !viewport.Contains(bbox) {
		punches = true
	}
	if bbox, ok := doc.Outline.Bounds(); ok && !viewport.Contains(bbox) {
		outline = true
	}
	return punches, outline
}

// docCursor is used while parsing card documents
type docCursor struct {
	doc       *Document
	errorMode ErrorMode
	seenSVG   bool
}

// Read parses a document produced by Render (optionally wrapped in HTML).
// errMode determines if the reader ignores, errors out, or logs a warning
// if it finds an element it does not handle.
func Read(stream io.Reader, errMode ErrorMode) (*Document, error) {
	c := docCursor{doc: new(Document), errorMode: errMode}
	decoder := xml.NewDecoder(stream)
	decoder.CharsetReader = charset.NewReaderLabel
	for {
		t, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if se, ok := t.(xml.StartElement); ok {
			if err = c.readStartElement(se); err != nil {
				return nil, fmt.Errorf("reading <%s>: %w", se.Name.Local, err)
			}
		}
	}
	if !c.seenSVG {
		return nil, errNoViewBox
	}
	return c.doc, nil
}

// ReadFile reads the card document from the named file.
func ReadFile(docFile string, errMode ErrorMode) (*Document, error) {
	fin, err := os.Open(docFile)
	if err != nil {
		return nil, err
	}
	defer fin.Close()
	return Read(fin, errMode)
}

func (c *docCursor) readStartElement(se xml.StartElement) error {
	switch se.Name.Local {
	case "html", "body", "head", "title":
		return nil
	case "svg":
		return c.readSVG(se.Attr)
	case "path":
		return c.readPath(se.Attr)
	default:
		errStr := "Cannot process element " + se.Name.Local
		if c.errorMode == StrictErrorMode {
			return errors.New(errStr)
		} else if c.errorMode == WarnErrorMode {
			log.Println(errStr)
		}
		return nil
	}
}

func (c *docCursor) readSVG(attrs []xml.Attr) error {
	if c.seenSVG {
		return errors.New("nested svg elements are not supported")
	}
	c.seenSVG = true
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "viewBox":
			fields := strings.FieldsFunc(attr.Value, func(r rune) bool { return r == ',' || r == ' ' })
			if len(fields) != 4 {
				return errParamMismatch
			}
			var vals [4]float64
			for i, f := range fields {
				v, err := strconv.ParseFloat(f, 64)
				if err != nil {
					return err
				}
				vals[i] = v
			}
			c.doc.ViewBox = Bounds{vals[0], vals[1], vals[2], vals[3]}
		case "width":
			c.doc.Width = attr.Value
		case "height":
			c.doc.Height = attr.Value
		}
	}
	if c.doc.ViewBox.W <= 0 || c.doc.ViewBox.H <= 0 {
		return errNoViewBox
	}
	return nil
}

func (c *docCursor) readPath(attrs []xml.Attr) error {
	if !c.seenSVG {
		return errors.New("path outside of the svg element")
	}
	d, fill, stroke := "", "black", "none" // SVG defaults
	strokeWidth := 1.
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "d":
			d = attr.Value
		case "fill":
			fill = attr.Value
		case "stroke":
			stroke = attr.Value
		case "stroke-width":
			v, err := strconv.ParseFloat(attr.Value, 64)
			if err != nil {
				return err
			}
			strokeWidth = v
		}
	}
	path, err := cardpath.Parse(d)
	if err != nil {
		return err
	}
	switch {
	case fill != "none":
		c.doc.Punches.Append(path)
	case stroke != "none":
		c.doc.Outline.Append(path)
		c.doc.StrokeWidth = strokeWidth
	}
	return nil
}
