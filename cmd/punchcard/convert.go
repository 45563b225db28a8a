package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/benoitkugler/punchcard/carddoc"
	"github.com/benoitkugler/punchcard/cardgcode"
	"github.com/benoitkugler/punchcard/cardgrid"
	"github.com/benoitkugler/punchcard/cardlayout"
	"github.com/benoitkugler/punchcard/cardpdf"
	"github.com/benoitkugler/punchcard/cardraster"
)

type config struct {
	input, output string
	preset        string
	outline, html bool
	unit          string
	tolerance     float64

	preview string
	dpi     float64
	pdf     string
	gcode   string
	inspect string
}

// convert runs the whole pipeline: the input bitmap is decoded
// into a grid (rejecting any pixel neither black nor white), then
// laid out and written to the requested outputs.
func convert(cfg config) error {
	constants, ok := cardlayout.Presets[cfg.preset]
	if !ok {
		return fmt.Errorf("unknown preset %q", cfg.preset)
	}
	if cfg.preview != "" && !(cfg.dpi > 0) {
		return fmt.Errorf("invalid preview resolution %g: dpi must be positive", cfg.dpi)
	}

	grid, err := cardgrid.Load(cfg.input, constants.Columns, constants.Rows)
	if err != nil {
		return err
	}

	circles := cardlayout.Generate(grid, constants)
	if i, j, overlap := cardlayout.Overlaps(circles); overlap {
		log.Printf("warning: holes %d and %d overlap", i, j)
	}

	opts := carddoc.Options{
		IncludeOutline: cfg.outline || constants.OutlineWidth != 0,
		OutlineWidth:   constants.CardOutlineWidth(),
		Tolerance:      cfg.tolerance,
		HTML:           cfg.html,
		Unit:           cfg.unit,
	}
	content := carddoc.Render(circles, constants.CardWidth(), constants.CardHeight(), opts)
	doc, err := carddoc.Read(strings.NewReader(content), carddoc.StrictErrorMode)
	if err != nil {
		return err
	}
	if punches, outline := doc.Overflow(); punches || outline {
		log.Printf("warning: the card is clipped by its viewport (punches: %v, outline: %v)", punches, outline)
	}

	if err := os.WriteFile(cfg.output, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", cfg.output, err)
	}
	if err := writeDocument(doc, cfg); err != nil {
		return err
	}

	if cfg.gcode != "" {
		if err := writeGCode(cfg.gcode, circles, constants.CardHeight()); err != nil {
			return err
		}
	}
	return nil
}

func writeDocument(doc *carddoc.Document, cfg config) error {
	if cfg.preview != "" {
		f, err := os.Create(cfg.preview)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := cardraster.EncodePNG(f, cardraster.RasterizeDocument(doc, cfg.dpi)); err != nil {
			return fmt.Errorf("writing %s: %w", cfg.preview, err)
		}
		if err := f.Close(); err != nil {
			return err
		}
	}
	if cfg.pdf != "" {
		if err := cardpdf.WriteFile(doc, cardpdf.PointsPerInch, cfg.pdf); err != nil {
			return fmt.Errorf("writing %s: %w", cfg.pdf, err)
		}
	}
	return nil
}

func writeGCode(path string, circles []cardlayout.Circle, cardHeight float64) error {
	opts := cardgcode.DefaultOptions
	opts.FlipY, opts.CardHeight = true, cardHeight

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := cardgcode.Write(f, circles, opts); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

// inspect prints a summary of the card document at `path`.
func inspect(path string, out io.Writer) error {
	doc, err := carddoc.ReadFile(path, carddoc.WarnErrorMode)
	if err != nil {
		return err
	}
	w, h := doc.Size()
	fmt.Fprintf(out, "size: %g x %g\n", w, h)
	fmt.Fprintf(out, "holes: %d\n", doc.Punches.Subpaths())
	if len(doc.Outline) != 0 {
		fmt.Fprintf(out, "outline: stroke width %g\n", doc.StrokeWidth)
	} else {
		fmt.Fprintln(out, "outline: none")
	}
	return nil
}
