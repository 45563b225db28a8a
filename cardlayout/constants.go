// Computes the geometry of a punch card: the track
// alignment holes of every row and the data holes of the
// punched grid cells, in card units.
package cardlayout

import (
	"fmt"
	"math"
)

// Constants holds the physical description of a card.
// Every coordinate produced by Generate derives from these values.
type Constants struct {
	Columns, Rows int // size of the data grid

	PunchRadius      float64 // radius of the data holes
	RowHeight        float64
	ColumnWidth      float64
	LeadingPadding   float64 // from the left edge to the left track holes
	TrackPadding     float64 // from the left track holes to the first data column
	TrailingPadding  float64 // from the right track holes to the right edge
	TrackPunchRadius float64 // radius of the track alignment holes

	// OutlineWidth is the width of the card outline.
	// It is kept independent from the computed CardWidth,
	// which is used when OutlineWidth is zero.
	OutlineWidth float64
}

// Standard is the 24 columns x 22 rows card, rendered without outline.
var Standard = Constants{
	Columns:          24,
	Rows:             22,
	PunchRadius:      0.3 / 2,
	RowHeight:        0.5,
	ColumnWidth:      0.45,
	LeadingPadding:   1.25,
	TrackPadding:     0.5,
	TrailingPadding:  1.25,
	TrackPunchRadius: 0.1,
}

// Outlined is the Standard card, with the full card width
// used for the visible outline.
var Outlined = func() Constants {
	c := Standard
	c.OutlineWidth = 14.25
	return c
}()

// Presets maps the names accepted on the command line
// to the known card layouts.
var Presets = map[string]Constants{
	"standard": Standard,
	"outlined": Outlined,
}

// ConstantError is returned by Validate for an invalid field.
type ConstantError struct {
	Field string
	Value float64
}

func (e *ConstantError) Error() string {
	return fmt.Sprintf("invalid layout constant %s: %g", e.Field, e.Value)
}

func isFinite(v float64) bool { return !math.IsInf(v, 0) && !math.IsNaN(v) }

// Validate checks that the counts and lengths are usable.
// It does not check that the holes do not overlap.
func (c Constants) Validate() error {
	for _, f := range [...]struct {
		name     string
		value    float64
		positive bool
	}{
		{"Columns", float64(c.Columns), true},
		{"Rows", float64(c.Rows), true},
		{"PunchRadius", c.PunchRadius, true},
		{"RowHeight", c.RowHeight, true},
		{"ColumnWidth", c.ColumnWidth, true},
		{"LeadingPadding", c.LeadingPadding, false},
		{"TrackPadding", c.TrackPadding, false},
		{"TrailingPadding", c.TrailingPadding, false},
		{"TrackPunchRadius", c.TrackPunchRadius, true},
		{"OutlineWidth", c.OutlineWidth, false},
	} {
		if !isFinite(f.value) || f.value < 0 || (f.positive && f.value == 0) {
			return &ConstantError{Field: f.name, Value: f.value}
		}
	}
	return nil
}

// trackX returns the horizontal positions of the left and right track holes.
func (c Constants) trackX() (left, right float64) {
	return c.LeadingPadding, c.LeadingPadding + c.TrackPadding + c.ColumnWidth*float64(c.Columns)
}

// columnX returns the horizontal position of the data holes of `column`.
func (c Constants) columnX(column int) float64 {
	return c.LeadingPadding + c.TrackPadding + c.ColumnWidth*float64(column)
}

// rowY returns the vertical position of the holes of `row`.
// The first row is one full row height below the top edge.
func (c Constants) rowY(row int) float64 {
	return c.RowHeight * float64(row+1)
}

// CardWidth returns the width of the card, which only depends on the constants.
func (c Constants) CardWidth() float64 {
	return c.LeadingPadding + c.TrackPadding + c.ColumnWidth*float64(c.Columns) + c.TrailingPadding
}

// CardHeight returns the height of the card, which only depends on the constants.
func (c Constants) CardHeight() float64 {
	return c.RowHeight * float64(c.Rows+1)
}

// CardOutlineWidth returns OutlineWidth if set, or CardWidth.
func (c Constants) CardOutlineWidth() float64 {
	if c.OutlineWidth != 0 {
		return c.OutlineWidth
	}
	return c.CardWidth()
}

// TrackCount returns the number of track alignment holes, 2 per row.
func (c Constants) TrackCount() int { return 2 * c.Rows }
