package cardpath

import (
	"fmt"
	"math"
)

// This file implements the transformation from
// high level shapes to their path equivalent

const (
	// below this radius/tolerance ratio, four segments
	// with the optimal arm length are precise enough
	fourSegmentsRatio = 1 / 1.9608e-4

	// arm length minimizing the radial error of a quarter circle,
	// see https://spencermortensen.com/articles/bezier-circle/
	quarterArm = 0.551784777779014
)

// circleSegments returns the number of cubic segments and the
// (unit) arm length used to approximate a full circle
// of radius r, so that the radial error stays below tolerance.
func circleSegments(r, tolerance float64) (int, float64) {
	ratio := math.Abs(r) / tolerance
	if ratio < fourSegmentsRatio {
		return 4, quarterArm
	}
	// empirically determined to stay within the tolerance
	n := int(math.Ceil(math.Pow(1.1163*ratio, 1./6)))
	return n, 4. / 3 * math.Tan(math.Pi/(2*float64(n)))
}

// AddCircle adds a closed circle of radius r to the path.
// The circle starts at angle 0 (the rightmost point) and is
// approximated by cubic beziers, deviating at most `tolerance`
// from the true circle.
func (p *Path) AddCircle(center Point, r, tolerance float64) {
	if !(tolerance > 0) {
		panic(fmt.Sprintf("cardpath: invalid tolerance %g", tolerance))
	}
	n, arm := circleSegments(r, tolerance)
	dTheta := 2 * math.Pi / float64(n)

	p0 := Point{center.X + r, center.Y}
	d0 := Point{0, r} // tangent at angle 0
	start := p0
	p.Start(start)
	for i := 1; i <= n; i++ {
		theta := dTheta * float64(i)
		sin, cos := math.Sincos(theta)
		var p1 Point
		if i == n {
			p1 = start // just makes the end point exact; no roundoff error
		} else {
			p1 = Point{center.X + r*cos, center.Y + r*sin}
		}
		d1 := Point{-r * sin, r * cos}
		p.CubeBezier(
			p0.Add(d0.Scale(arm)),
			p1.Sub(d1.Scale(arm)),
			p1,
		)
		p0, d0 = p1, d1
	}
	p.Stop(true)
}

// AddRect adds the axis aligned rectangle with opposite corners
// min and max, as four line segments.
func (p *Path) AddRect(min, max Point) {
	p.Start(min)
	p.Line(Point{max.X, min.Y})
	p.Line(max)
	p.Line(Point{min.X, max.Y})
	p.Stop(true)
}
