package form

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Kind tags the variant held by a Value.
type Kind uint8

const (
	KindEmpty Kind = iota
	KindString
	KindNumber
	KindList
	KindDate
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindList:
		return "list"
	case KindDate:
		return "date"
	case KindBool:
		return "bool"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// dateLayouts are tried in order when a string is read as a date.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	time.DateOnly,
	"01/02/2006",
	"1/2/2006",
}

// Value is a respondent answer or configured literal. The zero Value is
// empty, standing in for both null and undefined.
type Value struct {
	kind Kind
	str  string
	num  float64
	list []string
	date time.Time
	b    bool
}

// Null returns the empty Value.
func Null() Value { return Value{} }

// String returns a text Value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Number returns a numeric Value.
func Number(n float64) Value { return Value{kind: KindNumber, num: n} }

// List returns a multi-select Value. The items are copied.
func List(items ...string) Value {
	out := make([]string, len(items))
	copy(out, items)
	return Value{kind: KindList, list: out}
}

// Date returns a date Value.
func Date(t time.Time) Value { return Value{kind: KindDate, date: t} }

// Bool returns a boolean Value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// FromAny converts a decoded JSON or YAML value into a Value.
func FromAny(v any) Value {
	switch x := v.(type) {
	case nil:
		return Null()
	case Value:
		return x
	case *Value:
		if x == nil {
			return Null()
		}
		return *x
	case string:
		return String(x)
	case bool:
		return Bool(x)
	case float64:
		return Number(x)
	case float32:
		return Number(float64(x))
	case int:
		return Number(float64(x))
	case int8:
		return Number(float64(x))
	case int16:
		return Number(float64(x))
	case int32:
		return Number(float64(x))
	case int64:
		return Number(float64(x))
	case uint:
		return Number(float64(x))
	case uint8:
		return Number(float64(x))
	case uint16:
		return Number(float64(x))
	case uint32:
		return Number(float64(x))
	case uint64:
		return Number(float64(x))
	case json.Number:
		if n, err := x.Float64(); err == nil {
			return Number(n)
		}
		return String(x.String())
	case time.Time:
		return Date(x)
	case *time.Time:
		if x == nil {
			return Null()
		}
		return Date(*x)
	case []string:
		return List(x...)
	case []any:
		items := make([]string, 0, len(x))
		for _, item := range x {
			iv := FromAny(item)
			if iv.kind == KindEmpty {
				continue
			}
			items = append(items, iv.String())
		}
		return List(items...)
	default:
		return String(fmt.Sprint(x))
	}
}

// Kind returns the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsEmpty reports whether v is null, undefined or the empty string.
func (v Value) IsEmpty() bool {
	return v.kind == KindEmpty || (v.kind == KindString && v.str == "")
}

// IsZero reports whether v is the empty Value. Used by encoding/json omitzero.
func (v Value) IsZero() bool { return v.kind == KindEmpty }

// String renders v as plain text. Lists are comma joined without spaces and
// dates without a time component render as YYYY-MM-DD.
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return FormatNumber(v.num)
	case KindList:
		return strings.Join(v.list, ",")
	case KindDate:
		return formatDate(v.date)
	case KindBool:
		return strconv.FormatBool(v.b)
	default:
		return ""
	}
}

// Number reads v as a finite number. Strings are parsed after trimming and
// booleans count as 1 or 0.
func (v Value) Number() (float64, bool) {
	switch v.kind {
	case KindNumber:
		if math.IsNaN(v.num) || math.IsInf(v.num, 0) {
			return 0, false
		}
		return v.num, true
	case KindString:
		return ParseNumber(v.str)
	case KindBool:
		if v.b {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}

// List returns v as a list of strings. Empty values yield nil and scalars a
// single element list.
func (v Value) List() []string {
	switch v.kind {
	case KindEmpty:
		return nil
	case KindList:
		return slices.Clone(v.list)
	default:
		return []string{v.String()}
	}
}

// Time reads v as a point in time. Strings are parsed with common layouts.
func (v Value) Time() (time.Time, bool) {
	switch v.kind {
	case KindDate:
		return v.date, true
	case KindString:
		return ParseDate(v.str)
	default:
		return time.Time{}, false
	}
}

// Interface converts v to a plain Go value suitable for encoding.
func (v Value) Interface() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return v.num
	case KindList:
		return slices.Clone(v.list)
	case KindDate:
		return formatDate(v.date)
	case KindBool:
		return v.b
	default:
		return nil
	}
}

// GoString makes test failure output readable.
func (v Value) GoString() string {
	return fmt.Sprintf("form.Value{%s: %q}", v.kind, v.String())
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*v = FromAny(raw)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (v Value) MarshalYAML() (any, error) {
	return v.Interface(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	var raw any
	if err := node.Decode(&raw); err != nil {
		return err
	}
	*v = FromAny(raw)
	return nil
}

// ParseNumber parses trimmed text as a finite float64.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

// ParseDate parses trimmed text using the supported date layouts.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatNumber renders n without exponent and without trailing zeros.
func FormatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// Normalize trims and lowercases s. It is the one normalization used for
// every string comparison.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func normalizeOption(s string) string { return Normalize(s) }

func formatDate(t time.Time) string {
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return t.Format(time.DateOnly)
	}
	return t.Format(time.RFC3339)
}
