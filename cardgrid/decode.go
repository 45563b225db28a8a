package cardgrid

import (
	"fmt"
	"image"
	"image/color"
)

var (
	black = color.NRGBA{0, 0, 0, 0xff}
	white = color.NRGBA{0xff, 0xff, 0xff, 0xff}
)

// DimensionError is returned when the image size
// does not match the expected grid size.
type DimensionError struct {
	Want, Got image.Point
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("the image should be %d pixels wide & %d pixels tall (got %dx%d)",
		e.Want.X, e.Want.Y, e.Got.X, e.Got.Y)
}

// InvalidPixelColorError is returned when a pixel is neither
// pure opaque black nor pure opaque white.
type InvalidPixelColorError struct {
	X, Y  int // relative to the image bounds
	Color color.NRGBA
}

func (e *InvalidPixelColorError) Error() string {
	return fmt.Sprintf("the image should only contain black and white: pixel (%d, %d) has color rgba(%d, %d, %d, %d)",
		e.X, e.Y, e.Color.R, e.Color.G, e.Color.B, e.Color.A)
}

// Classify maps a color to its punch state, returning false
// if the color is neither pure black nor pure white.
func Classify(c color.Color) (PunchState, bool) {
	switch color.NRGBAModel.Convert(c).(color.NRGBA) {
	case black:
		return Punched, true
	case white:
		return Unpunched, true
	default:
		return 0, false
	}
}

// Decode validates `img` and returns the corresponding grid:
// the image must be exactly `columns` x `rows` pixels, and only contain
// opaque black (Punched) and opaque white (Unpunched) pixels.
// Pixels are scanned row by row, and the first invalid one is reported.
// No grid is returned on error.
func Decode(img image.Image, columns, rows int) (*Grid, error) {
	bounds := img.Bounds()
	if bounds.Dx() != columns || bounds.Dy() != rows {
		return nil, &DimensionError{Want: image.Pt(columns, rows), Got: bounds.Size()}
	}
	g := NewGrid(columns, rows)
	for y := 0; y < rows; y++ {
		for x := 0; x < columns; x++ {
			c := img.At(bounds.Min.X+x, bounds.Min.Y+y)
			state, ok := Classify(c)
			if !ok {
				return nil, &InvalidPixelColorError{X: x, Y: y, Color: color.NRGBAModel.Convert(c).(color.NRGBA)}
			}
			g.Set(x, y, state)
		}
	}
	return g, nil
}

// Image returns the monochrome image of the grid, so that
// Decode(g.Image(), columns, rows) returns a grid equal to g.
func (g *Grid) Image() *image.Paletted {
	img := image.NewPaletted(image.Rect(0, 0, g.columns, g.rows), color.Palette{white, black})
	for c := 0; c < g.columns; c++ {
		for r := 0; r < g.rows; r++ {
			if g.IsPunched(c, r) {
				img.SetColorIndex(c, r, 1)
			}
		}
	}
	return img
}
