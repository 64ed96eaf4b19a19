// Package score computes profile fit scores over player frames.
//
// A fit score is a dataset-normalized weighted sum: each profile metric is
// min-max normalized against a fixed reference frame, so scores stay
// comparable across turns even as the active view narrows. Scores are only
// meaningful relative to rows scored with the same reference and profile.
package score

import (
	"strings"

	"github.com/mwinther/scoutline/internal/domain"
	"github.com/mwinther/scoutline/internal/profile"
)

// ColumnName returns the derived column name for a profile's fit score.
// The scorer and the display-column assembler share this function so the
// naming scheme can never diverge between them.
func ColumnName(profileName string) string {
	canonical := strings.ToLower(profileName)
	canonical = strings.ReplaceAll(canonical, " ", "_")
	canonical = strings.ReplaceAll(canonical, "/", "_")
	return "fit_score_" + canonical
}

// IsFitScoreColumn reports whether a column name is a derived fit score.
func IsFitScoreColumn(name string) bool {
	return strings.HasPrefix(name, "fit_score_")
}

// Compute returns one fit score per target row, normalized against the
// reference frame. A nil profile (unknown at lookup time) yields an all-null
// column, signaling "cannot score" rather than a fabricated default.
//
// Per metric: the metric is skipped when it is not a numeric column of the
// reference frame or when the reference min and max coincide (a zero
// normalization span contributes nothing, never a division error). Rows with
// a missing or non-numeric value contribute 0 for that metric.
func Compute(target, reference *domain.Frame, p *profile.Profile) []domain.Value {
	out := make([]domain.Value, target.Len())
	if p == nil {
		for i := range out {
			out[i] = domain.Null()
		}
		return out
	}

	totals := make([]float64, target.Len())
	for metric, weight := range p.Metrics {
		if weight == 0 {
			continue
		}
		if !reference.IsNumeric(metric) {
			continue
		}
		min, max, ok := reference.MinMax(metric)
		if !ok || max-min <= 0 {
			continue
		}
		span := max - min
		for row := 0; row < target.Len(); row++ {
			v, isNum := target.Value(row, metric).AsNumber()
			if !isNum {
				continue
			}
			totals[row] += (v - min) / span * weight
		}
	}

	for i, total := range totals {
		out[i] = domain.Number(total)
	}
	return out
}
