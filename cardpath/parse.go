package cardpath

import (
	"errors"
	"fmt"
	"strconv"
	"unicode"
)

var (
	errParamMismatch  = errors.New("param mismatch")
	errCommandUnknown = errors.New("unknown command")
	errNoStart        = errors.New("path does not start with a move")
)

// pathCursor is used while parsing SVG path data
type pathCursor struct {
	path           Path
	points         []float64
	curX, curY     float64 // current point
	startX, startY float64 // start of the current sub-path
	lastKey        byte
	inPath         bool
}

// Parse reads SVG path data, as found in the `d` attribute
// of a path element. Only the commands M, L, H, V, C and Z (and
// their relative forms) are supported, which is enough
// to read back the output of ToSVGPath.
// The returned path only contains absolute coordinates.
func Parse(d string) (Path, error) {
	var c pathCursor
	key := byte(0)
	start := -1
	for i := 0; i < len(d); i++ {
		r := d[i]
		if !isCommand(r) {
			continue
		}
		if key != 0 {
			if err := c.addSeg(key, d[start:i]); err != nil {
				return nil, err
			}
		}
		key, start = r, i+1
	}
	if key != 0 {
		if err := c.addSeg(key, d[start:]); err != nil {
			return nil, err
		}
	} else if len(splitNumbers(d)) > 0 {
		return nil, errNoStart
	}
	return c.path, nil
}

func isCommand(r byte) bool {
	switch unicode.ToLower(rune(r)) {
	case 'm', 'l', 'h', 'v', 'c', 'z', 'q', 't', 's', 'a':
		return true
	}
	return false
}

// splitNumbers splits s on separators, signs and
// repeated decimal points, following the SVG number grammar.
func splitNumbers(s string) []string {
	var (
		out      []string
		cur      []byte
		seenDot  bool
		seenExp  bool
		prevByte byte
	)
	flush := func() {
		if len(cur) > 0 {
			out = append(out, string(cur))
		}
		cur, seenDot, seenExp = cur[:0:0], false, false
	}
	for i := 0; i < len(s); i++ {
		b := s[i]
		switch {
		case b == ',' || b == ' ' || b == '\t' || b == '\n' || b == '\r':
			flush()
		case b == '-' || b == '+':
			if prevByte != 'e' && prevByte != 'E' {
				flush()
			}
			cur = append(cur, b)
		case b == '.':
			if seenDot || seenExp {
				flush()
			}
			seenDot = true
			cur = append(cur, b)
		case b == 'e' || b == 'E':
			seenExp = true
			cur = append(cur, b)
		default:
			cur = append(cur, b)
		}
		prevByte = b
	}
	flush()
	return out
}

func (c *pathCursor) readPoints(s string) error {
	c.points = c.points[:0]
	for _, f := range splitNumbers(s) {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return fmt.Errorf("invalid number %q: %w", f, err)
		}
		c.points = append(c.points, v)
	}
	return nil
}

func (c *pathCursor) addSeg(key byte, args string) error {
	if err := c.readPoints(args); err != nil {
		return err
	}
	l := len(c.points)
	rel := unicode.IsLower(rune(key))
	k := byte(unicode.ToLower(rune(key)))
	if !c.inPath && k != 'm' {
		if c.lastKey == 0 {
			return errNoStart
		}
		// a segment following a close starts at the previous sub-path start
		c.path.Start(Point{c.startX, c.startY})
		c.inPath = true
	}
	switch k {
	case 'z':
		if l != 0 {
			return errParamMismatch
		}
		c.path.Stop(true)
		c.curX, c.curY = c.startX, c.startY
		c.inPath = false
	case 'm':
		if l < 2 || l%2 != 0 {
			return errParamMismatch
		}
		x, y := c.points[0], c.points[1]
		if rel && c.lastKey != 0 {
			x, y = x+c.curX, y+c.curY
		}
		c.path.Start(Point{x, y})
		c.curX, c.curY = x, y
		c.startX, c.startY = x, y
		c.inPath = true
		// extra pairs are implicit line-tos
		for i := 2; i < l; i += 2 {
			c.lineTo(c.points[i], c.points[i+1], rel)
		}
	case 'l':
		if l == 0 || l%2 != 0 {
			return errParamMismatch
		}
		for i := 0; i < l; i += 2 {
			c.lineTo(c.points[i], c.points[i+1], rel)
		}
	case 'h':
		if l == 0 {
			return errParamMismatch
		}
		for _, x := range c.points {
			if rel {
				x += c.curX
			}
			c.lineTo(x, c.curY, false)
		}
	case 'v':
		if l == 0 {
			return errParamMismatch
		}
		for _, y := range c.points {
			if rel {
				y += c.curY
			}
			c.lineTo(c.curX, y, false)
		}
	case 'c':
		if l == 0 || l%6 != 0 {
			return errParamMismatch
		}
		for i := 0; i < l; i += 6 {
			pts := c.points[i : i+6]
			var ox, oy float64
			if rel {
				ox, oy = c.curX, c.curY
			}
			b := Point{pts[0] + ox, pts[1] + oy}
			cc := Point{pts[2] + ox, pts[3] + oy}
			d := Point{pts[4] + ox, pts[5] + oy}
			c.path.CubeBezier(b, cc, d)
			c.curX, c.curY = d.X, d.Y
		}
	default:
		return fmt.Errorf("%w: %c", errCommandUnknown, key)
	}
	c.lastKey = k
	return nil
}

func (c *pathCursor) lineTo(x, y float64, rel bool) {
	if rel {
		x, y = x+c.curX, y+c.curY
	}
	c.path.Line(Point{x, y})
	c.curX, c.curY = x, y
}
