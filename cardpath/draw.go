package cardpath

// Given a path, implements how to replay it
// on a painting driver, such as a rasterizer or a pdf writer.

// Drawer knows how to do the actual draw operations
// but doesn't need any path kwowledge.
// Transformations are already applied to the points
// before sending them to the Drawer.
type Drawer interface {
	// Start starts a new sub-path at the given point.
	Start(a Point)

	// Line adds a line from the current point to `b`
	Line(b Point)

	// CubeBezier adds a cubic bezier curve to the path
	CubeBezier(b, c, d Point)

	// Stop closes the sub-path to its start point if `closeLoop` is true
	Stop(closeLoop bool)
}

// Matrix2D represents the affine transform
//
//	x' = A*x + C*y + E
//	y' = B*x + D*y + F
type Matrix2D struct {
	A, B, C, D, E, F float64
}

// Identity is the identity transform
var Identity = Matrix2D{1, 0, 0, 1, 0, 0}

// Mult returns m * n, that is the transform applying n, then m.
func (m Matrix2D) Mult(n Matrix2D) Matrix2D {
	return Matrix2D{
		A: m.A*n.A + m.C*n.B,
		B: m.B*n.A + m.D*n.B,
		C: m.A*n.C + m.C*n.D,
		D: m.B*n.C + m.D*n.D,
		E: m.A*n.E + m.C*n.F + m.E,
		F: m.B*n.E + m.D*n.F + m.F,
	}
}

// Translate returns m followed by a translation by (x, y)
// in the source space.
func (m Matrix2D) Translate(x, y float64) Matrix2D {
	return m.Mult(Matrix2D{1, 0, 0, 1, x, y})
}

// Scale returns m followed by a scaling in the source space.
func (m Matrix2D) Scale(x, y float64) Matrix2D {
	return m.Mult(Matrix2D{x, 0, 0, y, 0, 0})
}

// Transform applies the matrix to the point.
func (m Matrix2D) Transform(p Point) Point {
	return Point{
		X: m.A*p.X + m.C*p.Y + m.E,
		Y: m.B*p.X + m.D*p.Y + m.F,
	}
}

// DrawTo replays the path on `d`, after applying the transform `m`.
// A MoveTo implicitly ends the current sub-path without closing it.
func (p Path) DrawTo(d Drawer, m Matrix2D) {
	inPath := false
	for _, op := range p {
		switch op := op.(type) {
		case MoveTo:
			if inPath {
				d.Stop(false)
			}
			d.Start(m.Transform(Point(op)))
			inPath = true
		case LineTo:
			d.Line(m.Transform(Point(op)))
		case CubicTo:
			d.CubeBezier(m.Transform(op[0]), m.Transform(op[1]), m.Transform(op[2]))
		case Close:
			d.Stop(true)
			inPath = false
		}
	}
	if inPath {
		d.Stop(false)
	}
}
