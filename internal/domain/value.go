package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// ValueKind discriminates the cell types a Frame can hold.
type ValueKind int

const (
	KindNull ValueKind = iota
	KindNumber
	KindString
)

// Value is a single immutable cell: null, a float64, or a string.
type Value struct {
	kind ValueKind
	num  float64
	str  string
}

func Null() Value { return Value{kind: KindNull} }

func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

func String(s string) Value { return Value{kind: KindString, str: s} }

func (v Value) Kind() ValueKind { return v.kind }
func (v Value) IsNull() bool    { return v.kind == KindNull }

// AsNumber returns the numeric value and true when the cell is numeric.
func (v Value) AsNumber() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	return v.num, true
}

// AsString returns the string value and true when the cell is a string.
func (v Value) AsString() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.str, true
}

// Display renders the cell for tables and serialization. Nulls render empty.
func (v Value) Display() string {
	switch v.kind {
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindString:
		return v.str
	default:
		return ""
	}
}

// Round returns a numeric value rounded to the given number of decimals.
// Non-numeric values are returned unchanged.
func (v Value) Round(decimals int) Value {
	n, ok := v.AsNumber()
	if !ok {
		return v
	}
	shift := 1.0
	for i := 0; i < decimals; i++ {
		shift *= 10
	}
	rounded := float64(int64(n*shift+copysignHalf(n))) / shift
	return Number(rounded)
}

func copysignHalf(n float64) float64 {
	if n < 0 {
		return -0.5
	}
	return 0.5
}

// ParseValue converts a raw CSV cell into a typed Value. Empty strings
// become null; anything that parses as a float becomes a number.
func ParseValue(raw string) Value {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Null()
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return Number(f)
	}
	return String(trimmed)
}

// CoerceValue converts an arbitrary decoded JSON value into a Value.
// Unsupported types render through fmt as strings so no data is dropped.
func CoerceValue(raw any) Value {
	switch t := raw.(type) {
	case nil:
		return Null()
	case float64:
		return Number(t)
	case int:
		return Number(float64(t))
	case int64:
		return Number(float64(t))
	case bool:
		if t {
			return String("true")
		}
		return String("false")
	case string:
		return String(t)
	default:
		return String(fmt.Sprintf("%v", t))
	}
}
