// Package cardgcode writes the punches of a card as G-code,
// for a plotter or a laser cutting each hole as a full arc.
package cardgcode

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/benoitkugler/punchcard/cardlayout"
)

// Options controls the machine coordinates.
type Options struct {
	Scale        float64 // millimeters per card unit
	Offset       float64 // added to both coordinates, in millimeters
	FeedRate     float64 // cutting speed (G1, G2)
	TravelRate   float64 // rapid move speed (G0)
	SpindleSpeed float64 // S argument of M3

	// FlipY maps the card (y axis pointing down) to the machine
	// frame (y axis pointing up) by mirroring around CardHeight,
	// so that the cut card is not mirrored. Without it, card
	// coordinates are used as is.
	FlipY      bool
	CardHeight float64 // in card units, required by FlipY
}

// DefaultOptions maps inches to millimeters.
var DefaultOptions = Options{
	Scale:        25.4,
	FeedRate:     1500,
	TravelRate:   3000,
	SpindleSpeed: 1000,
}

var (
	errInvalidScale  = errors.New("invalid G-code options: scale must be positive")
	errInvalidHeight = errors.New("invalid G-code options: card height must be positive to flip y")
)

// Convert returns the G-code program cutting the given circles, in order.
// Each circle is cut with G2, starting and ending at its rightmost point:
// clockwise in the machine frame, which is also clockwise on the card
// only when FlipY is set.
func Convert(circles []cardlayout.Circle, opts Options) (string, error) {
	if !(opts.Scale > 0) {
		return "", errInvalidScale
	}
	if opts.FlipY && !(opts.CardHeight > 0) {
		return "", errInvalidHeight
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "G21\nG90\nM5\nG0 F%.0f\nG1 F%.0f\n", opts.TravelRate, opts.FeedRate)

	for _, circle := range circles {
		x := opts.Offset + (circle.Center.X+circle.Radius)*opts.Scale
		cy := circle.Center.Y
		if opts.FlipY {
			cy = opts.CardHeight - cy
		}
		y := opts.Offset + cy*opts.Scale
		i := -circle.Radius * opts.Scale

		fmt.Fprintf(&sb, "G0 X%.3f Y%.3f\nM3 S%.0f\n", x, y, opts.SpindleSpeed)
		fmt.Fprintf(&sb, "G2 X%.3f Y%.3f I%.3f J0.000\n", x, y, i)
		sb.WriteString("M5\n")
	}

	sb.WriteString("M5\nG0 X0 Y0\n")
	return sb.String(), nil
}

// Write writes the program returned by Convert to `w`.
func Write(w io.Writer, circles []cardlayout.Circle, opts Options) error {
	program, err := Convert(circles, opts)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, program)
	return err
}
