package cardlayout

import (
	"fmt"

	"github.com/benoitkugler/punchcard/cardpath"
)

// Circle is a hole to punch, in card units.
type Circle struct {
	Center cardpath.Point
	Radius float64
}

// Grid is the source of the data holes.
// It is implemented by *cardgrid.Grid.
type Grid interface {
	Size() (columns, rows int)
	IsPunched(column, row int) bool
}

// Role distinguishes the two kinds of holes.
type Role uint8

const (
	Track Role = iota // alignment hole, present on every row
	Data              // hole of a punched cell
)

func (r Role) String() string {
	switch r {
	case Track:
		return "Track"
	case Data:
		return "Data"
	default:
		return fmt.Sprintf("<unknown Role %d>", uint8(r))
	}
}

// Role returns the role of the i-th circle returned by Generate:
// the first TrackCount() circles are track holes.
func (c Constants) Role(i int) Role {
	if i < c.TrackCount() {
		return Track
	}
	return Data
}

// Generate returns the holes of the card, in a deterministic order:
// first the two track holes of every row (left then right), then
// the data holes of the punched cells, column by column and, inside
// a column, row by row.
//
// Only the cells in the Columns x Rows window are read, so `g` may be
// larger than the card. Generate panics if the constants are not valid
// or if the grid is too small, which are programming errors: images are
// validated when decoding the grid.
func Generate(g Grid, c Constants) []Circle {
	if err := c.Validate(); err != nil {
		panic("cardlayout: " + err.Error())
	}
	if columns, rows := g.Size(); columns < c.Columns || rows < c.Rows {
		panic(fmt.Sprintf("cardlayout: grid %dx%d is smaller than the %dx%d card", columns, rows, c.Columns, c.Rows))
	}

	out := make([]Circle, 0, c.TrackCount())
	left, right := c.trackX()
	for row := 0; row < c.Rows; row++ {
		y := c.rowY(row)
		out = append(out,
			Circle{Center: cardpath.Point{X: left, Y: y}, Radius: c.TrackPunchRadius},
			Circle{Center: cardpath.Point{X: right, Y: y}, Radius: c.TrackPunchRadius},
		)
	}

	for column := 0; column < c.Columns; column++ {
		x := c.columnX(column)
		for row := 0; row < c.Rows; row++ {
			if g.IsPunched(column, row) {
				out = append(out, Circle{Center: cardpath.Point{X: x, Y: c.rowY(row)}, Radius: c.PunchRadius})
			}
		}
	}
	return out
}

// Path returns the compound path of the circles, in order,
// each approximated within `tolerance`.
func Path(circles []Circle, tolerance float64) cardpath.Path {
	var p cardpath.Path
	for _, ci := range circles {
		p.AddCircle(ci.Center, ci.Radius, tolerance)
	}
	return p
}

// Overlaps returns the indices of the first two overlapping circles,
// or ok = false. The check is quadratic in the number of circles.
func Overlaps(circles []Circle) (i, j int, ok bool) {
	for i = range circles {
		for j = i + 1; j < len(circles); j++ {
			a, b := circles[i], circles[j]
			d := a.Center.Sub(b.Center)
			r := a.Radius + b.Radius
			if d.X*d.X+d.Y*d.Y < r*r {
				return i, j, true
			}
		}
	}
	return 0, 0, false
}
