package score

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwinther/scoutline/internal/domain"
	"github.com/mwinther/scoutline/internal/profile"
)

func scoreFrame(t *testing.T) *domain.Frame {
	t.Helper()
	f, err := domain.NewFrame([]string{"name", "goals", "assists", "flat_stat", "notes"})
	require.NoError(t, err)
	rows := [][]domain.Value{
		{domain.String("A"), domain.Number(0), domain.Number(10), domain.Number(5), domain.String("x")},
		{domain.String("B"), domain.Number(5), domain.Number(0), domain.Number(5), domain.String("y")},
		{domain.String("C"), domain.Number(10), domain.Number(5), domain.Number(5), domain.String("z")},
	}
	for _, r := range rows {
		require.NoError(t, f.AppendRow(r))
	}
	return f
}

func nums(t *testing.T, vals []domain.Value) []float64 {
	t.Helper()
	out := make([]float64, len(vals))
	for i, v := range vals {
		n, ok := v.AsNumber()
		require.True(t, ok, "value %d is not numeric", i)
		out[i] = n
	}
	return out
}

func TestColumnName(t *testing.T) {
	assert.Equal(t, "fit_score_winger", ColumnName("Winger"))
	assert.Equal(t, "fit_score_poacher___goal_hanger", ColumnName("Poacher / Goal Hanger"))
	assert.Equal(t, "fit_score_inside_forward", ColumnName("Inside Forward"))
	assert.True(t, IsFitScoreColumn("fit_score_winger"))
	assert.False(t, IsFitScoreColumn("goals"))
}

func TestCompute_WeightedNormalizedSum(t *testing.T) {
	f := scoreFrame(t)
	p := &profile.Profile{Name: "Test", Metrics: map[string]float64{"goals": 0.6, "assists": 0.4}}

	got := nums(t, Compute(f, f, p))
	// goals normalized: 0, 0.5, 1; assists normalized: 1, 0, 0.5
	assert.InDelta(t, 0.4, got[0], 1e-9)
	assert.InDelta(t, 0.3, got[1], 1e-9)
	assert.InDelta(t, 0.8, got[2], 1e-9)
}

func TestCompute_ZeroSpanMetricContributesNothing(t *testing.T) {
	f := scoreFrame(t)
	p := &profile.Profile{Name: "Test", Metrics: map[string]float64{"flat_stat": 1.0, "goals": 1.0}}

	got := nums(t, Compute(f, f, p))
	// flat_stat has min == max, so only goals contributes.
	assert.InDelta(t, 0.0, got[0], 1e-9)
	assert.InDelta(t, 0.5, got[1], 1e-9)
	assert.InDelta(t, 1.0, got[2], 1e-9)
}

func TestCompute_NonNumericAndMissingMetricsSkipped(t *testing.T) {
	f := scoreFrame(t)
	p := &profile.Profile{Name: "Test", Metrics: map[string]float64{
		"notes":       1.0, // string column
		"xg_chain":    1.0, // absent column
		"zero_weight": 0.0,
		"goals":       1.0,
	}}
	got := nums(t, Compute(f, f, p))
	assert.InDelta(t, 1.0, got[2], 1e-9, "only goals contributes")
}

func TestCompute_MissingRowValueContributesZero(t *testing.T) {
	ref := scoreFrame(t)
	target, err := domain.NewFrame([]string{"name", "goals"})
	require.NoError(t, err)
	require.NoError(t, target.AppendRow([]domain.Value{domain.String("D"), domain.Null()}))

	p := &profile.Profile{Name: "Test", Metrics: map[string]float64{"goals": 1.0}}
	got := nums(t, Compute(target, ref, p))
	assert.Equal(t, 0.0, got[0])
}

func TestCompute_NilProfileYieldsAllNull(t *testing.T) {
	f := scoreFrame(t)
	got := Compute(f, f, nil)
	require.Len(t, got, f.Len())
	for _, v := range got {
		assert.True(t, v.IsNull())
	}
}

func TestCompute_PureAndRepeatable(t *testing.T) {
	f := scoreFrame(t)
	p := &profile.Profile{Name: "Test", Metrics: map[string]float64{"goals": 0.7, "assists": 0.3}}

	first := nums(t, Compute(f, f, p))
	second := nums(t, Compute(f, f, p))
	assert.Equal(t, first, second)
}

func TestCompute_NarrowedTargetUsesReferenceNormalization(t *testing.T) {
	ref := scoreFrame(t)
	narrowed := ref.FilterRows(func(row int) bool { return row == 2 })

	p := &profile.Profile{Name: "Test", Metrics: map[string]float64{"goals": 1.0}}
	got := nums(t, Compute(narrowed, ref, p))
	// Row C still scores 1.0 against the full reference even though it is
	// the only row in the narrowed target.
	assert.InDelta(t, 1.0, got[0], 1e-9)
}
