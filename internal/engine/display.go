package engine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mwinther/scoutline/internal/domain"
	"github.com/mwinther/scoutline/internal/intelligence"
	"github.com/mwinther/scoutline/internal/profile"
	"github.com/mwinther/scoutline/internal/score"
)

// identityColumns lead every display table when the dataset has them.
var identityColumns = []string{"name", "age", "primary_category"}

// displayProjection trims a view down to the columns a scout needs this
// turn: identity, fit scores (rounded to 3 decimals), the active profile's
// metrics, and whatever columns the turn itself filtered or sorted on.
// Duplicates keep their first position.
func displayProjection(view *domain.Frame, active *profile.Profile, turnCols []string) *domain.Frame {
	var order []string
	seen := map[string]bool{}
	add := func(col string) {
		if col == "" || seen[col] || !view.HasColumn(col) {
			return
		}
		seen[col] = true
		order = append(order, col)
	}

	for _, col := range identityColumns {
		add(col)
	}

	var fitCols []string
	for _, col := range view.Columns() {
		if score.IsFitScoreColumn(col) {
			fitCols = append(fitCols, col)
		}
	}
	sort.Strings(fitCols)
	for _, col := range fitCols {
		add(col)
	}

	if active != nil {
		metrics := make([]string, 0, len(active.Metrics))
		for m := range active.Metrics {
			metrics = append(metrics, m)
		}
		sort.Strings(metrics)
		for _, m := range metrics {
			add(m)
		}
	}

	for _, col := range turnCols {
		add(col)
	}

	table := view.Select(order)
	for _, col := range fitCols {
		vals, _ := table.Column(col)
		for i, v := range vals {
			vals[i] = v.Round(3)
		}
		table, _ = table.WithColumn(col, vals)
	}
	return table
}

// fallbackSummary is the templated confirmation used when summary generation
// fails. It must always hold something true about what just happened.
func fallbackSummary(op intelligence.Operation, res *Result) string {
	switch o := op.(type) {
	case intelligence.StartView:
		return fmt.Sprintf("Started a new %s search: %d players in view.", o.ProfileName, res.RawView.Len())
	case intelligence.RefineView:
		return fmt.Sprintf("Updated the view: %d players remaining.", res.RawView.Len())
	case intelligence.PlotView:
		return fmt.Sprintf("Plotted %s against %s for the current view.", o.YAxis, o.XAxis)
	case intelligence.AppendRecord:
		note := fmt.Sprintf("Added a record to the %q logbook.", o.StoreName)
		if res.StoreUpdate != nil && len(res.StoreUpdate.MissingColumns) > 0 {
			note += fmt.Sprintf(" Left empty: %s.", strings.Join(res.StoreUpdate.MissingColumns, ", "))
		}
		return note
	default:
		return fmt.Sprintf("Completed the %s operation.", op.Name())
	}
}
