package carddoc

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/benoitkugler/punchcard/cardgrid"
	"github.com/benoitkugler/punchcard/cardlayout"
	"github.com/benoitkugler/punchcard/cardpath"
	"github.com/google/go-cmp/cmp"
)

var tinyCard = cardlayout.Constants{
	Columns:          1,
	Rows:             1,
	PunchRadius:      0.25,
	RowHeight:        1,
	ColumnWidth:      1,
	LeadingPadding:   1,
	TrackPadding:     1,
	TrailingPadding:  1,
	TrackPunchRadius: 0.25,
}

// circleAt returns the path data of a hole of tinyCard, centered on (x, 1).
func circleAt(x float64) string {
	var p cardpath.Path
	p.AddCircle(cardpath.Point{X: x, Y: 1}, 0.25, 0.01)
	return p.ToSVGPath()
}

var (
	leftTrack  = circleAt(1)
	rightTrack = circleAt(3)
	dataHole   = circleAt(2)
)

func TestRenderTinyCard(t *testing.T) {
	g := cardgrid.NewGrid(1, 1)
	g.Set(0, 0, cardgrid.Punched)

	got := RenderCard(g, tinyCard, Options{Tolerance: 0.01})
	expected := `<svg viewBox="0 0 4 2" xmlns="http://www.w3.org/2000/svg">
<path d="` + leftTrack + rightTrack + dataHole + `" stroke="none" fill="black"/>
</svg>
`
	if got != expected {
		t.Errorf("unexpected document:\n%s\nexpected:\n%s", got, expected)
	}
	if !strings.HasPrefix(leftTrack, "M1.25,1C") || !strings.HasSuffix(leftTrack, " 1.25,1Z") || strings.Count(leftTrack, "C") != 4 {
		t.Errorf("unexpected circle %s", leftTrack)
	}
}

func TestRenderExactValues(t *testing.T) {
	c := cardlayout.Standard
	c.ColumnWidth = 0.3333333333
	c.RowHeight = 0.1234567
	g := cardgrid.NewGrid(c.Columns, c.Rows)
	g.Set(0, 0, cardgrid.Punched)
	g.Set(23, 21, cardgrid.Punched)

	opts := Options{Tolerance: 1e-9, IncludeOutline: true}
	doc, err := Read(strings.NewReader(RenderCard(g, c, opts)), StrictErrorMode)
	if err != nil {
		t.Fatal(err)
	}
	if w, h := doc.Size(); w != c.CardWidth() || h != c.CardHeight() {
		t.Errorf("viewport %v x %v should be exactly %v x %v", w, h, c.CardWidth(), c.CardHeight())
	}
	// every coordinate is written without loss
	expected := cardlayout.Path(cardlayout.Generate(g, c), opts.Tolerance)
	if diff := cmp.Diff(expected, doc.Punches); diff != "" {
		t.Errorf("unexpected punches (-want +got):\n%s", diff)
	}
	data := doc.Punches.SubpathStarts()[c.TrackCount()]
	if data != (cardpath.Point{X: c.LeadingPadding + c.TrackPadding + c.PunchRadius, Y: c.RowHeight}) {
		t.Errorf("unexpected first data hole %v", data)
	}
}

func TestRenderOutlineAndHTML(t *testing.T) {
	g := cardgrid.NewGrid(1, 1)
	got := RenderCard(g, tinyCard, Options{Tolerance: 0.01, IncludeOutline: true, HTML: true, Unit: "in"})
	expected := `<!DOCTYPE html>
<html>
<body>
<svg viewBox="0 0 4 2" width="4in" height="2in" xmlns="http://www.w3.org/2000/svg">
<path d="` + leftTrack + rightTrack + `" stroke="none" fill="black"/>
<path d="M0,0L4,0L4,2L0,2Z" stroke="black" fill="none" stroke-width="0.05"/>
</svg>
</body>
</html>
`
	if got != expected {
		t.Errorf("unexpected document:\n%s\nexpected:\n%s", got, expected)
	}
}

func TestRenderOutlineWidth(t *testing.T) {
	g := cardgrid.NewGrid(24, 22)
	doc := RenderCard(g, cardlayout.Outlined, Options{IncludeOutline: true, StrokeWidth: 0.1})
	if !strings.Contains(doc, `viewBox="0 0 13.8 11.5"`) {
		t.Errorf("viewport should match the computed card size:\n%s", doc)
	}
	if !strings.Contains(doc, `d="M0,0L14.25,0L14.25,11.5L0,11.5Z"`) {
		t.Errorf("outline should use the independent outline width:\n%s", doc)
	}
	if !strings.Contains(doc, `stroke-width="0.1"`) {
		t.Error("missing custom stroke width")
	}

	// explicit option wins
	doc = RenderCard(g, cardlayout.Outlined, Options{IncludeOutline: true, OutlineWidth: 10})
	if !strings.Contains(doc, `d="M0,0L10,0L10,11.5L0,11.5Z"`) {
		t.Errorf("outline should use the explicit width:\n%s", doc)
	}

	// no outline requested
	doc = RenderCard(g, cardlayout.Outlined, Options{})
	if strings.Count(doc, "<path") != 1 {
		t.Errorf("expected a single path:\n%s", doc)
	}
}

func TestStandardScenarioDocument(t *testing.T) {
	g := cardgrid.NewGrid(24, 22)
	g.Set(0, 0, cardgrid.Punched)
	text := RenderCard(g, cardlayout.Standard, Options{})

	if !strings.Contains(text, `<svg viewBox="0 0 13.8 11.5" xmlns="http://www.w3.org/2000/svg">`) {
		t.Fatalf("unexpected viewport:\n%s", text)
	}
	doc, err := Read(strings.NewReader(text), StrictErrorMode)
	if err != nil {
		t.Fatal(err)
	}
	if n := doc.Punches.Subpaths(); n != 45 {
		t.Errorf("expected 45 circles, got %d", n)
	}
	if starts := doc.Punches.SubpathStarts(); starts[44] != (cardpath.Point{X: 1.9, Y: 0.5}) {
		t.Errorf("data hole should start at its rightmost point, got %v", starts[44])
	}
	if len(doc.Outline) != 0 {
		t.Error("unexpected outline")
	}
}

func TestRenderDeterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	g := cardgrid.NewGrid(24, 22)
	for c := 0; c < 24; c++ {
		for r := 0; r < 22; r++ {
			if rng.Intn(3) == 0 {
				g.Set(c, r, cardgrid.Punched)
			}
		}
	}
	opts := Options{IncludeOutline: true}
	a := RenderCard(g, cardlayout.Outlined, opts)
	b := RenderCard(g.Clone(), cardlayout.Outlined, opts)
	if a != b {
		t.Error("identical inputs should produce byte-identical documents")
	}
}

func TestRenderEmptyAndFull(t *testing.T) {
	c := cardlayout.Standard
	empty := cardgrid.NewGrid(c.Columns, c.Rows)
	full := cardgrid.NewGrid(c.Columns, c.Rows)
	for col := 0; col < c.Columns; col++ {
		for row := 0; row < c.Rows; row++ {
			full.Set(col, row, cardgrid.Punched)
		}
	}

	for _, test := range []struct {
		g        *cardgrid.Grid
		expected int
	}{
		{empty, c.TrackCount()},
		{full, c.TrackCount() + c.Columns*c.Rows},
	} {
		doc, err := Read(strings.NewReader(RenderCard(test.g, c, Options{})), StrictErrorMode)
		if err != nil {
			t.Fatal(err)
		}
		if n := doc.Punches.Subpaths(); n != test.expected {
			t.Errorf("expected %d circles, got %d", test.expected, n)
		}
		seen := map[cardpath.Point]bool{}
		for _, s := range doc.Punches.SubpathStarts() {
			if seen[s] {
				t.Errorf("duplicated circle at %v", s)
			}
			seen[s] = true
		}
	}
}
