package domain

import (
	"fmt"
	"sort"
)

// Frame is an ordered, column-named table of values. All transforms return
// new frames; a frame is never mutated after construction, so views derived
// from the same dataset can be held side by side safely.
type Frame struct {
	cols     []string
	colIndex map[string]int
	rows     [][]Value
}

// NewFrame creates an empty frame with the given column names.
// Duplicate column names are rejected.
func NewFrame(columns []string) (*Frame, error) {
	idx := make(map[string]int, len(columns))
	for i, c := range columns {
		if _, dup := idx[c]; dup {
			return nil, fmt.Errorf("duplicate column %q", c)
		}
		idx[c] = i
	}
	return &Frame{
		cols:     append([]string(nil), columns...),
		colIndex: idx,
	}, nil
}

// AppendRow adds a row. The value count must match the column count.
func (f *Frame) AppendRow(vals []Value) error {
	if len(vals) != len(f.cols) {
		return fmt.Errorf("row has %d values, frame has %d columns", len(vals), len(f.cols))
	}
	f.rows = append(f.rows, append([]Value(nil), vals...))
	return nil
}

// Columns returns a copy of the ordered column names.
func (f *Frame) Columns() []string {
	return append([]string(nil), f.cols...)
}

// Len returns the number of rows.
func (f *Frame) Len() int { return len(f.rows) }

// HasColumn reports whether the named column exists.
func (f *Frame) HasColumn(name string) bool {
	_, ok := f.colIndex[name]
	return ok
}

// Value returns the cell at (row, column). Missing columns yield null.
func (f *Frame) Value(row int, column string) Value {
	i, ok := f.colIndex[column]
	if !ok || row < 0 || row >= len(f.rows) {
		return Null()
	}
	return f.rows[row][i]
}

// Column returns all values of the named column in row order.
func (f *Frame) Column(name string) ([]Value, bool) {
	i, ok := f.colIndex[name]
	if !ok {
		return nil, false
	}
	out := make([]Value, len(f.rows))
	for r := range f.rows {
		out[r] = f.rows[r][i]
	}
	return out, true
}

// IsNumeric reports whether the column exists and holds at least one numeric
// value with no string values. All-null columns are not numeric.
func (f *Frame) IsNumeric(name string) bool {
	i, ok := f.colIndex[name]
	if !ok {
		return false
	}
	seen := false
	for r := range f.rows {
		switch f.rows[r][i].Kind() {
		case KindNumber:
			seen = true
		case KindString:
			return false
		}
	}
	return seen
}

// MinMax returns the minimum and maximum numeric values of a column,
// ignoring nulls and non-numeric cells. ok is false when the column is
// missing or has no numeric values.
func (f *Frame) MinMax(name string) (min, max float64, ok bool) {
	i, found := f.colIndex[name]
	if !found {
		return 0, 0, false
	}
	for r := range f.rows {
		n, isNum := f.rows[r][i].AsNumber()
		if !isNum {
			continue
		}
		if !ok {
			min, max, ok = n, n, true
			continue
		}
		if n < min {
			min = n
		}
		if n > max {
			max = n
		}
	}
	return min, max, ok
}

// WithColumn returns a new frame with the named column set to vals.
// An existing column of the same name is replaced in place; a new column is
// appended. The value count must match the row count.
func (f *Frame) WithColumn(name string, vals []Value) (*Frame, error) {
	if len(vals) != len(f.rows) {
		return nil, fmt.Errorf("column %q has %d values, frame has %d rows", name, len(vals), len(f.rows))
	}
	if i, exists := f.colIndex[name]; exists {
		out := f.clone()
		for r := range out.rows {
			out.rows[r][i] = vals[r]
		}
		return out, nil
	}
	out, err := NewFrame(append(f.Columns(), name))
	if err != nil {
		return nil, err
	}
	for r := range f.rows {
		row := append(append([]Value(nil), f.rows[r]...), vals[r])
		out.rows = append(out.rows, row)
	}
	return out, nil
}

// Select returns a new frame containing only the named columns, in the given
// order. Names not present in the frame are dropped.
func (f *Frame) Select(columns []string) *Frame {
	var kept []string
	var srcIdx []int
	for _, c := range columns {
		if i, ok := f.colIndex[c]; ok {
			kept = append(kept, c)
			srcIdx = append(srcIdx, i)
		}
	}
	out, _ := NewFrame(kept)
	for r := range f.rows {
		row := make([]Value, len(srcIdx))
		for j, i := range srcIdx {
			row[j] = f.rows[r][i]
		}
		out.rows = append(out.rows, row)
	}
	return out
}

// FilterRows returns a new frame keeping rows for which keep returns true.
func (f *Frame) FilterRows(keep func(row int) bool) *Frame {
	out, _ := NewFrame(f.cols)
	for r := range f.rows {
		if keep(r) {
			out.rows = append(out.rows, append([]Value(nil), f.rows[r]...))
		}
	}
	return out
}

// SortBy returns a new frame stably sorted by the named column. Missing
// columns are a no-op. Numeric columns sort numerically; mixed or string
// columns sort lexically by display form. Nulls always sort last.
func (f *Frame) SortBy(column string, ascending bool) *Frame {
	i, ok := f.colIndex[column]
	if !ok {
		return f.clone()
	}
	out := f.clone()
	sort.SliceStable(out.rows, func(a, b int) bool {
		va, vb := out.rows[a][i], out.rows[b][i]
		if va.IsNull() || vb.IsNull() {
			// Nulls to the end regardless of direction.
			return !va.IsNull() && vb.IsNull()
		}
		less := lessValue(va, vb)
		if ascending {
			return less
		}
		return lessValue(vb, va)
	})
	return out
}

func lessValue(a, b Value) bool {
	na, aNum := a.AsNumber()
	nb, bNum := b.AsNumber()
	if aNum && bNum {
		return na < nb
	}
	return a.Display() < b.Display()
}

func (f *Frame) clone() *Frame {
	out, _ := NewFrame(f.cols)
	out.rows = make([][]Value, len(f.rows))
	for r := range f.rows {
		out.rows[r] = append([]Value(nil), f.rows[r]...)
	}
	return out
}
