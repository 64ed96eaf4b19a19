package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func filterFrame(t *testing.T) *Frame {
	t.Helper()
	f, err := NewFrame([]string{"name", "age", "primary_category", "goals"})
	require.NoError(t, err)
	rows := [][]Value{
		{String("Arno Vink"), Number(24), String("Striker"), Number(12)},
		{String("Ben Sato"), Number(28), String("Winger"), Number(7)},
		{String("Cole Adeyemi"), Number(21), String("Winger"), Number(9)},
		{String("Dani Moreau"), Number(31), String("Center Back"), Number(1)},
	}
	for _, r := range rows {
		require.NoError(t, f.AppendRow(r))
	}
	return f
}

func names(f *Frame) []string {
	var out []string
	for i := 0; i < f.Len(); i++ {
		s, _ := f.Value(i, "name").AsString()
		out = append(out, s)
	}
	return out
}

func TestApplyFilters_GreaterAndLessThan(t *testing.T) {
	f := filterFrame(t)
	out, diags := ApplyFilters(f, []Predicate{
		{Column: "age", Operator: OpLessThan, Value: 26.0},
		{Column: "goals", Operator: OpGreaterThan, Value: 8.0},
	})
	assert.Empty(t, diags)
	assert.Equal(t, []string{"Arno Vink", "Cole Adeyemi"}, names(out))
}

func TestApplyFilters_NumericValueAsString(t *testing.T) {
	f := filterFrame(t)
	out, diags := ApplyFilters(f, []Predicate{{Column: "age", Operator: OpLessThan, Value: "26"}})
	assert.Empty(t, diags)
	assert.Equal(t, 2, out.Len())
}

func TestApplyFilters_EqualTo(t *testing.T) {
	f := filterFrame(t)
	out, _ := ApplyFilters(f, []Predicate{{Column: "primary_category", Operator: OpEqualTo, Value: "Winger"}})
	assert.Equal(t, []string{"Ben Sato", "Cole Adeyemi"}, names(out))

	out, _ = ApplyFilters(f, []Predicate{{Column: "age", Operator: OpEqualTo, Value: 28.0}})
	assert.Equal(t, []string{"Ben Sato"}, names(out))
}

func TestApplyFilters_ContainsIsCaseInsensitive(t *testing.T) {
	f := filterFrame(t)
	out, diags := ApplyFilters(f, []Predicate{{Column: "name", Operator: OpContains, Value: "sato"}})
	assert.Empty(t, diags)
	assert.Equal(t, []string{"Ben Sato"}, names(out))
}

func TestApplyFilters_ContainsOnNumericColumnMatchesNothing(t *testing.T) {
	f := filterFrame(t)
	out, diags := ApplyFilters(f, []Predicate{{Column: "age", Operator: OpContains, Value: "2"}})
	assert.Empty(t, diags, "predicate itself is well formed")
	assert.Equal(t, 0, out.Len(), "non-string cells fail the predicate silently")
}

func TestApplyFilters_IsIn(t *testing.T) {
	f := filterFrame(t)
	out, diags := ApplyFilters(f, []Predicate{
		{Column: "primary_category", Operator: OpIsIn, Value: []any{"Striker", "Winger"}},
	})
	assert.Empty(t, diags)
	assert.Equal(t, 3, out.Len())
}

func TestApplyFilters_SkipsBadPredicatesAndKeepsGoing(t *testing.T) {
	f := filterFrame(t)
	out, diags := ApplyFilters(f, []Predicate{
		{Column: "shoe_size", Operator: OpGreaterThan, Value: 42.0}, // unknown column
		{Column: "age", Operator: OpGreaterThan, Value: "old"},      // malformed value
		{Column: "age", Operator: Operator("between"), Value: 1.0},  // unknown operator
		{Column: "age", Operator: OpLessThan, Value: 26.0},          // still applies
	})
	assert.Len(t, diags, 3)
	assert.Equal(t, []string{"Arno Vink", "Cole Adeyemi"}, names(out))
}

func TestApplyFilters_NilValueIsSkippedWithDiagnostic(t *testing.T) {
	f, err := NewFrame([]string{"name", "age"})
	require.NoError(t, err)
	require.NoError(t, f.AppendRow([]Value{String("Arno Vink"), Number(24)}))
	require.NoError(t, f.AppendRow([]Value{String("Ben Sato"), Null()}))

	out, diags := ApplyFilters(f, []Predicate{{Column: "age", Operator: OpEqualTo, Value: nil}})
	assert.Equal(t, 2, out.Len(), "valueless filter must not match null cells")
	require.Len(t, diags, 1)
	assert.Contains(t, diags[0], "no value given")
}

func TestApplyFilters_OrderEquivalence(t *testing.T) {
	f := filterFrame(t)
	a := []Predicate{
		{Column: "age", Operator: OpLessThan, Value: 30.0},
		{Column: "goals", Operator: OpGreaterThan, Value: 5.0},
	}
	b := []Predicate{a[1], a[0]}

	outA, _ := ApplyFilters(f, a)
	outB, _ := ApplyFilters(f, b)
	assert.Equal(t, names(outA), names(outB), "independent predicates commute")

	// Sequential application equals batch application.
	step1, _ := ApplyFilters(f, a[:1])
	step2, _ := ApplyFilters(step1, a[1:])
	assert.Equal(t, names(outA), names(step2))
}

func TestApplyFilters_NoMatchesYieldsEmptyFrameNotError(t *testing.T) {
	f := filterFrame(t)
	out, diags := ApplyFilters(f, []Predicate{{Column: "age", Operator: OpGreaterThan, Value: 99.0}})
	assert.Empty(t, diags)
	assert.Equal(t, 0, out.Len())
	assert.Equal(t, f.Columns(), out.Columns())
}
