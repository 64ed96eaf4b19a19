// Package chart builds scatter-chart descriptions from a view. It produces
// data only; rendering belongs to the presentation layer.
package chart

import (
	"fmt"

	"github.com/mwinther/scoutline/internal/domain"
)

// Point is one plotted row. Label carries the row's display name when the
// view has one, so renderers can annotate outliers.
type Point struct {
	X     float64
	Y     float64
	Label string
}

// Range is a closed axis interval.
type Range struct {
	Min float64
	Max float64
}

// Chart is a complete scatter description. Axis ranges are computed from the
// full dataset, not the plotted view, so the same chart keeps its frame as
// the view narrows across turns.
type Chart struct {
	Title  string
	XLabel string
	YLabel string
	Points []Point
	XRange Range
	YRange Range
}

// axisMargin widens each axis by this fraction of its span on both sides.
const axisMargin = 0.05

// Build creates a scatter chart of y against x over the view's rows. Rows
// where either coordinate is not numeric are skipped. Both columns must
// exist in the view and hold at least one numeric value.
func Build(view, full *domain.Frame, x, y, title string) (*Chart, error) {
	for _, col := range []string{x, y} {
		if !view.HasColumn(col) {
			return nil, fmt.Errorf("cannot plot: column %q is not in the current view", col)
		}
		if !view.IsNumeric(col) {
			return nil, fmt.Errorf("cannot plot: column %q has no numeric values", col)
		}
	}

	c := &Chart{Title: title, XLabel: x, YLabel: y}
	for i := 0; i < view.Len(); i++ {
		xv, okX := view.Value(i, x).AsNumber()
		yv, okY := view.Value(i, y).AsNumber()
		if !okX || !okY {
			continue
		}
		p := Point{X: xv, Y: yv}
		if view.HasColumn("name") {
			p.Label, _ = view.Value(i, "name").AsString()
		}
		c.Points = append(c.Points, p)
	}

	c.XRange = axisRange(view, full, x)
	c.YRange = axisRange(view, full, y)
	return c, nil
}

// axisRange anchors the axis on the full dataset's extent so the view's
// position within the population stays visible. Columns absent from the
// dataset (fit scores are computed per view) fall back to the view's extent.
func axisRange(view, full *domain.Frame, col string) Range {
	src := view
	if full != nil && full.HasColumn(col) && full.IsNumeric(col) {
		src = full
	}
	lo, hi, ok := src.MinMax(col)
	if !ok {
		return Range{}
	}
	margin := (hi - lo) * axisMargin
	if margin == 0 {
		margin = 1
	}
	return Range{Min: lo - margin, Max: hi + margin}
}
