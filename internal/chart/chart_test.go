package chart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwinther/scoutline/internal/domain"
)

func frameOf(t *testing.T, cols []string, rows ...[]domain.Value) *domain.Frame {
	t.Helper()
	f, err := domain.NewFrame(cols)
	require.NoError(t, err)
	for _, r := range rows {
		require.NoError(t, f.AppendRow(r))
	}
	return f
}

func TestBuild_PointsAndLabels(t *testing.T) {
	view := frameOf(t, []string{"name", "age", "pace"},
		[]domain.Value{domain.String("Ada"), domain.Number(24), domain.Number(88)},
		[]domain.Value{domain.String("Ben"), domain.Number(31), domain.Number(72)},
		[]domain.Value{domain.String("Cyd"), domain.Null(), domain.Number(90)},
	)

	c, err := Build(view, view, "age", "pace", "Pace vs Age")
	require.NoError(t, err)

	assert.Equal(t, "Pace vs Age", c.Title)
	require.Len(t, c.Points, 2, "null coordinate row skipped")
	assert.Equal(t, "Ada", c.Points[0].Label)
	assert.Equal(t, 24.0, c.Points[0].X)
}

func TestBuild_RangesAnchoredOnFullDataset(t *testing.T) {
	full := frameOf(t, []string{"age", "pace"},
		[]domain.Value{domain.Number(18), domain.Number(50)},
		[]domain.Value{domain.Number(38), domain.Number(95)},
	)
	view := frameOf(t, []string{"age", "pace"},
		[]domain.Value{domain.Number(24), domain.Number(88)},
	)

	c, err := Build(view, full, "age", "pace", "t")
	require.NoError(t, err)

	assert.InDelta(t, 17.0, c.XRange.Min, 1e-9) // 18 - 5% of 20
	assert.InDelta(t, 39.0, c.XRange.Max, 1e-9)
	assert.InDelta(t, 47.75, c.YRange.Min, 1e-9) // 50 - 5% of 45
	assert.InDelta(t, 97.25, c.YRange.Max, 1e-9)
}

func TestBuild_RangesStableAcrossNarrowing(t *testing.T) {
	full := frameOf(t, []string{"age", "pace"},
		[]domain.Value{domain.Number(18), domain.Number(50)},
		[]domain.Value{domain.Number(25), domain.Number(70)},
		[]domain.Value{domain.Number(38), domain.Number(95)},
	)
	narrow := full.FilterRows(func(row int) bool {
		v, _ := full.Value(row, "age").AsNumber()
		return v < 26
	})

	before, err := Build(full, full, "age", "pace", "t")
	require.NoError(t, err)
	after, err := Build(narrow, full, "age", "pace", "t")
	require.NoError(t, err)

	assert.Equal(t, before.XRange, after.XRange)
	assert.Equal(t, before.YRange, after.YRange)
	assert.Less(t, len(after.Points), len(before.Points))
}

func TestBuild_ViewOnlyColumnFallsBackToViewRange(t *testing.T) {
	full := frameOf(t, []string{"age"},
		[]domain.Value{domain.Number(18)},
		[]domain.Value{domain.Number(38)},
	)
	view := frameOf(t, []string{"age", "fit_score_target_man"},
		[]domain.Value{domain.Number(24), domain.Number(0.8)},
		[]domain.Value{domain.Number(30), domain.Number(0.4)},
	)

	c, err := Build(view, full, "age", "fit_score_target_man", "t")
	require.NoError(t, err)

	assert.InDelta(t, 0.38, c.YRange.Min, 1e-9)
	assert.InDelta(t, 0.82, c.YRange.Max, 1e-9)
}

func TestBuild_MissingColumn(t *testing.T) {
	view := frameOf(t, []string{"age"}, []domain.Value{domain.Number(24)})

	_, err := Build(view, view, "age", "pace", "t")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"pace"`)
}

func TestBuild_NonNumericColumn(t *testing.T) {
	view := frameOf(t, []string{"name", "age"},
		[]domain.Value{domain.String("Ada"), domain.Number(24)},
	)

	_, err := Build(view, view, "name", "age", "t")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no numeric values")
}

func TestBuild_ZeroSpanGetsUnitMargin(t *testing.T) {
	view := frameOf(t, []string{"age", "pace"},
		[]domain.Value{domain.Number(24), domain.Number(80)},
	)

	c, err := Build(view, view, "age", "pace", "t")
	require.NoError(t, err)
	assert.Equal(t, Range{Min: 23, Max: 25}, c.XRange)
}
