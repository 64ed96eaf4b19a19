package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFrame(t *testing.T) *Frame {
	t.Helper()
	f, err := NewFrame([]string{"name", "age", "primary_category", "npxg_p90"})
	require.NoError(t, err)
	rows := [][]Value{
		{String("Arno Vink"), Number(24), String("Striker"), Number(0.52)},
		{String("Ben Sato"), Number(28), String("Winger"), Number(0.31)},
		{String("Cole Adeyemi"), Number(21), String("Winger"), Null()},
	}
	for _, r := range rows {
		require.NoError(t, f.AppendRow(r))
	}
	return f
}

func TestNewFrame_RejectsDuplicateColumns(t *testing.T) {
	_, err := NewFrame([]string{"name", "name"})
	assert.ErrorContains(t, err, "duplicate column")
}

func TestFrame_AppendRow_LengthMismatch(t *testing.T) {
	f, err := NewFrame([]string{"a", "b"})
	require.NoError(t, err)
	assert.Error(t, f.AppendRow([]Value{Number(1)}))
}

func TestFrame_IsNumeric(t *testing.T) {
	f := testFrame(t)
	assert.True(t, f.IsNumeric("age"))
	assert.True(t, f.IsNumeric("npxg_p90"), "nulls do not disqualify a numeric column")
	assert.False(t, f.IsNumeric("name"))
	assert.False(t, f.IsNumeric("missing"))

	empty, err := NewFrame([]string{"x"})
	require.NoError(t, err)
	require.NoError(t, empty.AppendRow([]Value{Null()}))
	assert.False(t, empty.IsNumeric("x"), "all-null column is not numeric")
}

func TestFrame_MinMax(t *testing.T) {
	f := testFrame(t)
	min, max, ok := f.MinMax("age")
	require.True(t, ok)
	assert.Equal(t, 21.0, min)
	assert.Equal(t, 28.0, max)

	_, _, ok = f.MinMax("name")
	assert.False(t, ok)
	_, _, ok = f.MinMax("missing")
	assert.False(t, ok)
}

func TestFrame_WithColumn_ReplacesExisting(t *testing.T) {
	f := testFrame(t)
	vals := []Value{Number(1), Number(2), Number(3)}
	out, err := f.WithColumn("age", vals)
	require.NoError(t, err)

	// Same column set, new values; original untouched.
	assert.Equal(t, f.Columns(), out.Columns())
	n, _ := out.Value(0, "age").AsNumber()
	assert.Equal(t, 1.0, n)
	orig, _ := f.Value(0, "age").AsNumber()
	assert.Equal(t, 24.0, orig)
}

func TestFrame_WithColumn_AppendsNew(t *testing.T) {
	f := testFrame(t)
	out, err := f.WithColumn("fit_score_winger", []Value{Number(0.9), Number(0.8), Number(0.7)})
	require.NoError(t, err)
	assert.Len(t, out.Columns(), 5)
	assert.False(t, f.HasColumn("fit_score_winger"), "source frame unchanged")
}

func TestFrame_WithColumn_LengthMismatch(t *testing.T) {
	f := testFrame(t)
	_, err := f.WithColumn("x", []Value{Number(1)})
	assert.Error(t, err)
}

func TestFrame_Select_DropsUnknownAndPreservesOrder(t *testing.T) {
	f := testFrame(t)
	out := f.Select([]string{"age", "missing", "name"})
	assert.Equal(t, []string{"age", "name"}, out.Columns())
	assert.Equal(t, 3, out.Len())
}

func TestFrame_SortBy(t *testing.T) {
	f := testFrame(t)

	asc := f.SortBy("age", true)
	first, _ := asc.Value(0, "name").AsString()
	assert.Equal(t, "Cole Adeyemi", first)

	desc := f.SortBy("age", false)
	first, _ = desc.Value(0, "name").AsString()
	assert.Equal(t, "Ben Sato", first)

	// Nulls sort last in both directions.
	byScore := f.SortBy("npxg_p90", true)
	last, _ := byScore.Value(2, "name").AsString()
	assert.Equal(t, "Cole Adeyemi", last)
	byScoreDesc := f.SortBy("npxg_p90", false)
	last, _ = byScoreDesc.Value(2, "name").AsString()
	assert.Equal(t, "Cole Adeyemi", last)
}

func TestFrame_SortBy_MissingColumnNoOp(t *testing.T) {
	f := testFrame(t)
	out := f.SortBy("nope", true)
	assert.Equal(t, f.Len(), out.Len())
	name, _ := out.Value(0, "name").AsString()
	assert.Equal(t, "Arno Vink", name)
}

func TestValue_Round(t *testing.T) {
	assert.Equal(t, Number(0.123), Number(0.12345).Round(3))
	assert.Equal(t, Number(-0.124), Number(-0.1235).Round(3))
	assert.Equal(t, Null(), Null().Round(3))
	assert.Equal(t, String("x"), String("x").Round(3))
}

func TestParseValue(t *testing.T) {
	assert.Equal(t, Null(), ParseValue("  "))
	assert.Equal(t, Number(26), ParseValue("26"))
	assert.Equal(t, Number(0.48), ParseValue("0.48"))
	assert.Equal(t, String("Winger"), ParseValue("Winger"))
}
