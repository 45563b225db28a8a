// Implements an abstract representation of
// the compound path punched out of a card, which can then be
// serialized to SVG path data or replayed on a painting driver.
package cardpath

import (
	"strconv"
	"strings"
)

// Point is a position in card units, with the y axis pointing down.
type Point struct{ X, Y float64 }

// Add returns p + q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p - q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Scale returns p scaled by f.
func (p Point) Scale(f float64) Point { return Point{p.X * f, p.Y * f} }

type pathCommand uint8

// Human readable path constants
const (
	pathMoveTo pathCommand = iota
	pathLineTo
	pathCubicTo
	pathClose
)

// Operation groups the different path commands
type Operation interface {
	command() pathCommand
}

type MoveTo Point

type LineTo Point

// CubicTo holds the two control points and the end point.
type CubicTo [3]Point

type Close struct{}

func (MoveTo) command() pathCommand  { return pathMoveTo }
func (LineTo) command() pathCommand  { return pathLineTo }
func (CubicTo) command() pathCommand { return pathCubicTo }
func (Close) command() pathCommand   { return pathClose }

// Path describes a sequence of basic operations.
// Higher-level shapes (circles, rectangles) are reduced to a path,
// and several closed shapes may be concatenated into one compound path.
type Path []Operation

// ToSVGPath returns the SVG path data of the path, using
// absolute commands only. The output only depends on the operations,
// so that identical paths always yield identical strings.
func (p Path) ToSVGPath() string {
	var sb strings.Builder
	for _, op := range p {
		switch op := op.(type) {
		case MoveTo:
			sb.WriteByte('M')
			writePoint(&sb, Point(op))
		case LineTo:
			sb.WriteByte('L')
			writePoint(&sb, Point(op))
		case CubicTo:
			sb.WriteByte('C')
			writePoint(&sb, op[0])
			sb.WriteByte(' ')
			writePoint(&sb, op[1])
			sb.WriteByte(' ')
			writePoint(&sb, op[2])
		case Close:
			sb.WriteByte('Z')
		}
	}
	return sb.String()
}

// String returns a readable representation of a Path.
func (p Path) String() string {
	return p.ToSVGPath()
}

func writePoint(sb *strings.Builder, pt Point) {
	sb.WriteString(FormatNumber(pt.X))
	sb.WriteByte(',')
	sb.WriteString(FormatNumber(pt.Y))
}

// FormatNumber prints v with the shortest decimal representation
// which parses back to v exactly, without exponent.
// Negative zero is printed as "0".
func FormatNumber(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if s == "-0" {
		return "0"
	}
	return s
}

// Start starts a new curve at the given point.
func (p *Path) Start(a Point) {
	*p = append(*p, MoveTo(a))
}

// Line adds a linear segment to the current curve.
func (p *Path) Line(b Point) {
	*p = append(*p, LineTo(b))
}

// CubeBezier adds a cubic segment to the current curve.
func (p *Path) CubeBezier(b, c, d Point) {
	*p = append(*p, CubicTo{b, c, d})
}

// Stop joins the ends of the path
func (p *Path) Stop(closeLoop bool) {
	if closeLoop {
		*p = append(*p, Close{})
	}
}

// Append adds all the operations of q at the end of p.
func (p *Path) Append(q Path) {
	*p = append(*p, q...)
}

// Subpaths returns the number of sub-paths, that is
// the number of MoveTo operations.
func (p Path) Subpaths() int {
	n := 0
	for _, op := range p {
		if op.command() == pathMoveTo {
			n++
		}
	}
	return n
}

// SubpathStarts returns the starting point of every sub-path, in order.
func (p Path) SubpathStarts() []Point {
	var out []Point
	for _, op := range p {
		if m, ok := op.(MoveTo); ok {
			out = append(out, Point(m))
		}
	}
	return out
}
