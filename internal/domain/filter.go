package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Operator is a filter comparison operator.
type Operator string

const (
	OpGreaterThan Operator = "greater_than"
	OpLessThan    Operator = "less_than"
	OpEqualTo     Operator = "equal_to"
	OpContains    Operator = "contains"
	OpIsIn        Operator = "is_in"
)

// Predicate is one typed filter condition against a single column.
type Predicate struct {
	Column   string
	Operator Operator
	Value    any
}

func (p Predicate) String() string {
	return fmt.Sprintf("%s %s %v", p.Column, p.Operator, p.Value)
}

// ApplyFilters applies predicates in order, AND-composed. A predicate that
// references a missing column or carries a malformed value is skipped and
// reported in the returned diagnostics; the remaining predicates still apply.
func ApplyFilters(f *Frame, preds []Predicate) (*Frame, []string) {
	var diags []string
	out := f
	for _, p := range preds {
		if p.Column == "" || p.Operator == "" {
			diags = append(diags, fmt.Sprintf("skipped incomplete filter %v", p))
			continue
		}
		if p.Value == nil {
			diags = append(diags, fmt.Sprintf("skipped filter on %q: no value given", p.Column))
			continue
		}
		if !out.HasColumn(p.Column) {
			diags = append(diags, fmt.Sprintf("skipped filter on unknown column %q", p.Column))
			continue
		}
		match, err := matcher(p)
		if err != nil {
			diags = append(diags, fmt.Sprintf("skipped filter %v: %v", p, err))
			continue
		}
		col := p.Column
		out = out.FilterRows(func(row int) bool {
			return match(out.Value(row, col))
		})
	}
	return out, diags
}

// matcher builds the per-cell match function for a predicate, or an error
// when the predicate value cannot serve the operator.
func matcher(p Predicate) (func(Value) bool, error) {
	switch p.Operator {
	case OpGreaterThan, OpLessThan:
		threshold, ok := toFloat(p.Value)
		if !ok {
			return nil, fmt.Errorf("value %v is not numeric", p.Value)
		}
		greater := p.Operator == OpGreaterThan
		return func(v Value) bool {
			n, isNum := v.AsNumber()
			if !isNum {
				return false
			}
			if greater {
				return n > threshold
			}
			return n < threshold
		}, nil

	case OpEqualTo:
		return func(v Value) bool { return valueEquals(v, p.Value) }, nil

	case OpContains:
		needle, ok := p.Value.(string)
		if !ok || needle == "" {
			return nil, fmt.Errorf("contains requires a non-empty string value")
		}
		lowered := strings.ToLower(needle)
		return func(v Value) bool {
			s, isStr := v.AsString()
			if !isStr {
				// Non-string cells fail the predicate silently.
				return false
			}
			return strings.Contains(strings.ToLower(s), lowered)
		}, nil

	case OpIsIn:
		members, err := membership(p.Value)
		if err != nil {
			return nil, err
		}
		return func(v Value) bool {
			for _, m := range members {
				if valueEquals(v, m) {
					return true
				}
			}
			return false
		}, nil
	}
	return nil, fmt.Errorf("unknown operator %q", p.Operator)
}

func membership(raw any) ([]any, error) {
	switch t := raw.(type) {
	case []any:
		return t, nil
	case []string:
		out := make([]any, len(t))
		for i, s := range t {
			out[i] = s
		}
		return out, nil
	case []float64:
		out := make([]any, len(t))
		for i, n := range t {
			out[i] = n
		}
		return out, nil
	}
	return nil, fmt.Errorf("is_in requires a list value, got %T", raw)
}

// valueEquals compares a cell against a raw filter value: numerically when
// both sides are numeric, otherwise by exact string form.
func valueEquals(v Value, raw any) bool {
	if v.IsNull() {
		return raw == nil
	}
	if n, isNum := v.AsNumber(); isNum {
		if f, ok := toFloat(raw); ok {
			return n == f
		}
		return false
	}
	s, _ := v.AsString()
	if rs, ok := raw.(string); ok {
		return s == rs
	}
	return false
}

func toFloat(raw any) (float64, bool) {
	switch t := raw.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return f, err == nil
	}
	return 0, false
}
