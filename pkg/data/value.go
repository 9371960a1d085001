package data

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"
)

// Kind is the coerced type of a field.
type Kind int

const (
	KindNull Kind = iota
	KindNumber
	KindTime
	KindString
)

// String returns the lowercase kind name.
func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindTime:
		return "time"
	case KindString:
		return "string"
	default:
		return "null"
	}
}

// Value is a single coerced field value.
type Value struct {
	kind Kind
	num  float64
	str  string
	t    time.Time
}

// Null is the zero Value.
var Null = Value{}

// Number returns a numeric Value.
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// String returns a string Value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Time returns a time Value.
func Time(t time.Time) Value { return Value{kind: KindTime, t: t} }

// Kind returns the value's kind.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v carries no value.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Float returns the numeric interpretation of v. Times map to Unix seconds.
// The second result is false for strings and nulls.
func (v Value) Float() (float64, bool) {
	switch v.kind {
	case KindNumber:
		return v.num, true
	case KindTime:
		return float64(v.t.UnixNano()) / 1e9, true
	default:
		return math.NaN(), false
	}
}

// TimeValue returns the time held by v.
func (v Value) TimeValue() (time.Time, bool) {
	if v.kind != KindTime {
		return time.Time{}, false
	}
	return v.t, true
}

// Text returns v formatted for display and for use as a category or key.
func (v Value) Text() string {
	switch v.kind {
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindTime:
		if v.t.Hour() == 0 && v.t.Minute() == 0 && v.t.Second() == 0 && v.t.Nanosecond() == 0 {
			return v.t.Format("2006-01-02")
		}
		return v.t.Format(time.RFC3339)
	case KindString:
		return v.str
	default:
		return ""
	}
}

// MarshalJSON encodes numbers as JSON numbers, times as RFC 3339 strings
// and nulls (including non-finite numbers) as null.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNumber:
		if math.IsNaN(v.num) || math.IsInf(v.num, 0) {
			return []byte("null"), nil
		}
		return json.Marshal(v.num)
	case KindTime:
		return json.Marshal(v.t.Format(time.RFC3339Nano))
	case KindString:
		return json.Marshal(v.str)
	default:
		return []byte("null"), nil
	}
}

// String implements fmt.Stringer.
func (v Value) String() string { return v.Text() }

// GoString implements fmt.GoStringer for readable test failures.
func (v Value) GoString() string {
	return fmt.Sprintf("data.Value{%s:%s}", v.kind, v.Text())
}

// Equal reports whether two values have the same kind and content.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNumber:
		return v.num == o.num
	case KindTime:
		return v.t.Equal(o.t)
	case KindString:
		return v.str == o.str
	default:
		return true
	}
}

// Less orders values of the same kind. Values of different kinds order by kind.
func (v Value) Less(o Value) bool {
	if v.kind != o.kind {
		return v.kind < o.kind
	}
	switch v.kind {
	case KindNumber:
		return v.num < o.num
	case KindTime:
		return v.t.Before(o.t)
	case KindString:
		return v.str < o.str
	default:
		return false
	}
}
