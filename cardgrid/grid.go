// Provides the typed grid of punch states read from a
// monochrome bitmap, and the decoding step validating
// the bitmap colors.
package cardgrid

import (
	"fmt"
	"strings"
)

// PunchState is the state of one grid cell.
type PunchState uint8

const (
	Unpunched PunchState = iota // white pixel, the zero value
	Punched                     // black pixel
)

func (s PunchState) String() string {
	switch s {
	case Unpunched:
		return "Unpunched"
	case Punched:
		return "Punched"
	default:
		return fmt.Sprintf("<unknown PunchState %d>", uint8(s))
	}
}

// Grid stores one PunchState per (column, row) cell.
// The zero value is not usable: use NewGrid or Decode.
type Grid struct {
	columns, rows int
	cells         []PunchState // column major
}

// NewGrid returns a blank grid (every cell Unpunched).
// It panics if the size is not positive.
func NewGrid(columns, rows int) *Grid {
	if columns <= 0 || rows <= 0 {
		panic(fmt.Sprintf("cardgrid: invalid grid size %dx%d", columns, rows))
	}
	return &Grid{columns: columns, rows: rows, cells: make([]PunchState, columns*rows)}
}

// Size returns the number of columns and rows.
func (g *Grid) Size() (columns, rows int) { return g.columns, g.rows }

func (g *Grid) index(column, row int) int {
	if column < 0 || column >= g.columns || row < 0 || row >= g.rows {
		panic(fmt.Sprintf("cardgrid: cell (%d, %d) out of %dx%d grid", column, row, g.columns, g.rows))
	}
	return column*g.rows + row
}

// At returns the state of the cell.
func (g *Grid) At(column, row int) PunchState { return g.cells[g.index(column, row)] }

// Set updates the state of the cell.
func (g *Grid) Set(column, row int, s PunchState) { g.cells[g.index(column, row)] = s }

// IsPunched returns true if the cell is Punched.
func (g *Grid) IsPunched(column, row int) bool { return g.At(column, row) == Punched }

// Count returns the number of Punched cells.
func (g *Grid) Count() int {
	n := 0
	for _, s := range g.cells {
		if s == Punched {
			n++
		}
	}
	return n
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	out := *g
	out.cells = append([]PunchState(nil), g.cells...)
	return &out
}

// String draws the grid row by row, with '#' for punched cells.
func (g *Grid) String() string {
	var sb strings.Builder
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.columns; c++ {
			if g.IsPunched(c, r) {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// ParseGrid is the inverse of String: it reads rows of '#' (punched)
// and '.' (unpunched) characters, ignoring blank lines.
// It is mainly useful to write tests and small cards by hand.
func ParseGrid(s string) (*Grid, error) {
	var lines []string
	for _, l := range strings.Split(s, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("empty grid")
	}
	g := NewGrid(len(lines[0]), len(lines))
	for r, l := range lines {
		if len(l) != g.columns {
			return nil, fmt.Errorf("row %d has %d cells, expected %d", r, len(l), g.columns)
		}
		for c := 0; c < len(l); c++ {
			switch l[c] {
			case '#':
				g.Set(c, r, Punched)
			case '.':
			default:
				return nil, fmt.Errorf("invalid cell %q at (%d, %d)", l[c], c, r)
			}
		}
	}
	return g, nil
}
