package cardlayout

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/benoitkugler/punchcard/cardgrid"
	"github.com/benoitkugler/punchcard/cardpath"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

const eps = 1e-9

func almostEqual(a, b float64) bool { return math.Abs(a-b) <= eps }

func randomGrid(rng *rand.Rand, columns, rows int) *cardgrid.Grid {
	g := cardgrid.NewGrid(columns, rows)
	for c := 0; c < columns; c++ {
		for r := 0; r < rows; r++ {
			if rng.Intn(2) == 0 {
				g.Set(c, r, cardgrid.Punched)
			}
		}
	}
	return g
}

func TestStandardScenario(t *testing.T) {
	g := cardgrid.NewGrid(24, 22)
	g.Set(0, 0, cardgrid.Punched)

	circles := Generate(g, Standard)
	if len(circles) != 45 {
		t.Fatalf("expected 45 circles, got %d", len(circles))
	}
	data := circles[44]
	if !almostEqual(data.Center.X, 1.75) || !almostEqual(data.Center.Y, 0.5) || data.Radius != 0.15 {
		t.Errorf("unexpected data circle %v", data)
	}
	if w := Standard.CardWidth(); !almostEqual(w, 13.8) {
		t.Errorf("expected width 13.8, got %g", w)
	}
	if h := Standard.CardHeight(); !almostEqual(h, 11.5) {
		t.Errorf("expected height 11.5, got %g", h)
	}
	if Standard.Role(43) != Track || Standard.Role(44) != Data {
		t.Error("unexpected roles")
	}
}

func TestTrackHoles(t *testing.T) {
	g := cardgrid.NewGrid(24, 22)
	circles := Generate(g, Standard)
	if len(circles) != 44 {
		t.Fatalf("expected 44 track circles, got %d", len(circles))
	}
	xs := map[float64]bool{}
	for i, ci := range circles {
		row := i / 2
		if !almostEqual(ci.Center.Y, 0.5*float64(row+1)) {
			t.Errorf("circle %d: unexpected y %g", i, ci.Center.Y)
		}
		if ci.Radius != Standard.TrackPunchRadius {
			t.Errorf("circle %d: unexpected radius %g", i, ci.Radius)
		}
		xs[ci.Center.X] = true
	}
	left, right := Standard.trackX()
	if diff := cmp.Diff(map[float64]bool{left: true, right: true}, xs); diff != "" {
		t.Errorf("unexpected track positions (-want +got):\n%s", diff)
	}
	if !almostEqual(left, 1.25) || !almostEqual(right, 12.55) {
		t.Errorf("unexpected track positions %g %g", left, right)
	}
	if circles[0].Center.X > circles[1].Center.X {
		t.Error("left track hole should come first")
	}
}

func TestCircleCount(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for _, c := range []Constants{
		Standard,
		{Columns: 3, Rows: 2, PunchRadius: 0.1, RowHeight: 1, ColumnWidth: 1, TrackPunchRadius: 0.05},
		{Columns: 80, Rows: 12, PunchRadius: 0.05, RowHeight: 0.25, ColumnWidth: 0.087, LeadingPadding: 0.25, TrackPadding: 0.2, TrackPunchRadius: 0.03},
	} {
		for range [5]int{} {
			g := randomGrid(rng, c.Columns, c.Rows)
			circles := Generate(g, c)
			if len(circles) != c.TrackCount()+g.Count() {
				t.Errorf("expected %d circles, got %d", c.TrackCount()+g.Count(), len(circles))
			}
			for i, ci := range circles {
				expected := c.TrackPunchRadius
				if c.Role(i) == Data {
					expected = c.PunchRadius
				}
				if ci.Radius != expected {
					t.Errorf("circle %d (%s): unexpected radius %g", i, c.Role(i), ci.Radius)
				}
			}
		}
	}
}

func TestDataOrder(t *testing.T) {
	g, err := cardgrid.ParseGrid(`
		.#.
		##.
		..#
	`)
	if err != nil {
		t.Fatal(err)
	}
	c := Constants{Columns: 3, Rows: 3, PunchRadius: 0.1, RowHeight: 1, ColumnWidth: 2, LeadingPadding: 1, TrackPadding: 1, TrackPunchRadius: 0.05}
	circles := Generate(g, c)[c.TrackCount():]
	var got []cardpath.Point
	for _, ci := range circles {
		got = append(got, ci.Center)
	}
	// column major: (0,1), (1,0), (1,1), (2,2)
	expected := []cardpath.Point{{X: 2, Y: 2}, {X: 4, Y: 1}, {X: 4, Y: 2}, {X: 6, Y: 3}}
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("unexpected data holes (-want +got):\n%s", diff)
	}
}

func TestToggleCell(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	g := randomGrid(rng, 24, 22)
	before := len(Generate(g, Standard))
	for range [20]int{} {
		col, row := rng.Intn(24), rng.Intn(22)
		toggled := g.Clone()
		delta := 1
		if toggled.IsPunched(col, row) {
			toggled.Set(col, row, cardgrid.Unpunched)
			delta = -1
		} else {
			toggled.Set(col, row, cardgrid.Punched)
		}
		if after := len(Generate(toggled, Standard)); after != before+delta {
			t.Errorf("toggling (%d, %d): expected %d circles, got %d", col, row, before+delta, after)
		}
	}
}

func TestFullGrid(t *testing.T) {
	g := cardgrid.NewGrid(24, 22)
	for c := 0; c < 24; c++ {
		for r := 0; r < 22; r++ {
			g.Set(c, r, cardgrid.Punched)
		}
	}
	circles := Generate(g, Standard)
	data := circles[Standard.TrackCount():]
	if len(data) != 24*22 {
		t.Fatalf("expected %d data circles, got %d", 24*22, len(data))
	}
	seen := map[cardpath.Point]bool{}
	for _, ci := range data {
		if seen[ci.Center] {
			t.Errorf("coincident centers at %v", ci.Center)
		}
		seen[ci.Center] = true
	}
	if i, j, ok := Overlaps(circles); ok {
		t.Errorf("circles %d and %d overlap: %v %v", i, j, circles[i], circles[j])
	}
}

func TestOutlineWidth(t *testing.T) {
	if Standard.CardWidth() != Outlined.CardWidth() || Standard.CardHeight() != Outlined.CardHeight() {
		t.Error("outline width should not change the card dimensions")
	}
	if Standard.CardOutlineWidth() != Standard.CardWidth() {
		t.Error("outline width should default to the card width")
	}
	if Outlined.CardOutlineWidth() != 14.25 {
		t.Errorf("unexpected outline width %g", Outlined.CardOutlineWidth())
	}
}

func TestLargerGridIgnored(t *testing.T) {
	g := cardgrid.NewGrid(25, 23) // one extra column and row
	for c := 0; c < 25; c++ {
		g.Set(c, 22, cardgrid.Punched)
	}
	for r := 0; r < 23; r++ {
		g.Set(24, r, cardgrid.Punched)
	}
	if n := len(Generate(g, Standard)); n != Standard.TrackCount() {
		t.Errorf("cells outside the window should be ignored, got %d circles", n)
	}
}

func TestDeterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	g := randomGrid(rng, 24, 22)
	a := Path(Generate(g, Standard), 0.00001).ToSVGPath()
	b := Path(Generate(g.Clone(), Standard), 0.00001).ToSVGPath()
	if a != b {
		t.Error("identical inputs should produce identical paths")
	}
}

func TestPath(t *testing.T) {
	g := cardgrid.NewGrid(24, 22)
	g.Set(3, 4, cardgrid.Punched)
	circles := Generate(g, Standard)
	p := Path(circles, 0.00001)
	if p.Subpaths() != len(circles) {
		t.Errorf("expected %d sub-paths, got %d", len(circles), p.Subpaths())
	}
	starts := p.SubpathStarts()
	for i, ci := range circles {
		if starts[i] != ci.Center.Add(cardpath.Point{X: ci.Radius}) {
			t.Errorf("sub-path %d starts at %v", i, starts[i])
		}
	}
}

func TestGeneratePanics(t *testing.T) {
	for _, test := range []struct {
		g Grid
		c Constants
	}{
		{cardgrid.NewGrid(24, 22), Constants{}},
		{cardgrid.NewGrid(23, 22), Standard},
		{cardgrid.NewGrid(24, 21), Standard},
	} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("expected panic for %v", test.c)
				}
			}()
			Generate(test.g, test.c)
		}()
	}
}

func TestValidate(t *testing.T) {
	if err := Standard.Validate(); err != nil {
		t.Fatal(err)
	}
	if err := Outlined.Validate(); err != nil {
		t.Fatal(err)
	}
	for _, test := range []struct {
		modify func(c *Constants)
		field  string
	}{
		{func(c *Constants) { c.Columns = 0 }, "Columns"},
		{func(c *Constants) { c.Rows = -2 }, "Rows"},
		{func(c *Constants) { c.PunchRadius = 0 }, "PunchRadius"},
		{func(c *Constants) { c.RowHeight = math.NaN() }, "RowHeight"},
		{func(c *Constants) { c.ColumnWidth = math.Inf(1) }, "ColumnWidth"},
		{func(c *Constants) { c.LeadingPadding = -1 }, "LeadingPadding"},
		{func(c *Constants) { c.TrackPunchRadius = -0.1 }, "TrackPunchRadius"},
		{func(c *Constants) { c.OutlineWidth = -14 }, "OutlineWidth"},
	} {
		c := Standard
		test.modify(&c)
		err := c.Validate()
		var cErr *ConstantError
		if !errors.As(err, &cErr) {
			t.Fatalf("expected a ConstantError, got %v", err)
		}
		if cErr.Field != test.field {
			t.Errorf("expected field %s, got %s", test.field, cErr.Field)
		}
	}
	// zero paddings are allowed
	c := Standard
	c.LeadingPadding, c.TrackPadding, c.TrailingPadding = 0, 0, 0
	if err := c.Validate(); err != nil {
		t.Error(err)
	}
}

func TestOverlaps(t *testing.T) {
	circles := []Circle{
		{Center: cardpath.Point{X: 0, Y: 0}, Radius: 1},
		{Center: cardpath.Point{X: 3, Y: 0}, Radius: 1},
		{Center: cardpath.Point{X: 4.5, Y: 0}, Radius: 1},
	}
	i, j, ok := Overlaps(circles)
	if !ok || i != 1 || j != 2 {
		t.Errorf("expected overlap of 1 and 2, got %d %d %v", i, j, ok)
	}
	if _, _, ok := Overlaps(circles[:2]); ok {
		t.Error("unexpected overlap")
	}
	opt := cmpopts.EquateApprox(0, eps)
	if !cmp.Equal(Standard.CardWidth(), 13.8, opt) {
		t.Error("unexpected width")
	}
}
