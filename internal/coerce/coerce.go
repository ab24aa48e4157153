// Package coerce converts answer values into the shape a target field type
// expects. Every rule is a named function so the conversions can be listed
// and tested one by one.
package coerce

import (
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/robbyt/go-formlogic/form"
)

// Func converts a value for a target field type.
type Func func(v form.Value) form.Value

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// targetCoercions lists the rules applied when a value is copied into a field.
// Types not listed are rendered as text.
var targetCoercions = map[form.FieldType]Func{
	form.TypeEmail:    Email,
	form.TypePhone:    Phone,
	form.TypeDate:     Date,
	form.TypeURL:      URL,
	form.TypeCheckbox: Checkbox,
	form.TypeNumber:   Number,
}

// For returns the coercion rule for target.
func For(target form.FieldType) Func {
	if fn, ok := targetCoercions[target]; ok {
		return fn
	}
	return Text
}

// ToField coerces v for a field of type target. Empty input stays empty.
func ToField(v form.Value, target form.FieldType) form.Value {
	if v.IsEmpty() {
		return v
	}
	return For(target)(v)
}

// Text renders v as a string. Lists are joined with ", ".
func Text(v form.Value) form.Value {
	if v.Kind() == form.KindList {
		return form.String(strings.Join(v.List(), ", "))
	}
	if v.Kind() == form.KindEmpty {
		return form.String("")
	}
	return form.String(v.String())
}

// Email lowercases and trims v. Anything that does not look like an address
// becomes the empty string.
func Email(v form.Value) form.Value {
	s := strings.ToLower(strings.TrimSpace(v.String()))
	if !emailPattern.MatchString(s) {
		return form.String("")
	}
	return form.String(s)
}

// Phone reformats ten digit numbers as (NNN) NNN-NNNN. Other input is
// returned trimmed.
func Phone(v form.Value) form.Value {
	raw := strings.TrimSpace(v.String())
	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	d := digits.String()
	if len(d) != 10 {
		return form.String(raw)
	}
	return form.String("(" + d[:3] + ") " + d[3:6] + "-" + d[6:])
}

// Date reduces v to its ISO date portion. Numbers are read as Unix
// milliseconds. Unparseable input becomes the empty string.
func Date(v form.Value) form.Value {
	if n, ok := v.Number(); ok && v.Kind() == form.KindNumber {
		return form.String(time.UnixMilli(int64(n)).UTC().Format(time.DateOnly))
	}
	t, ok := v.Time()
	if !ok {
		return form.String("")
	}
	return form.String(t.Format(time.DateOnly))
}

// URL keeps absolute http and https URLs and empties everything else.
func URL(v form.Value) form.Value {
	s := strings.TrimSpace(v.String())
	u, err := url.ParseRequestURI(s)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return form.String("")
	}
	return form.String(s)
}

// Checkbox always yields a list. Scalars become a single selection.
func Checkbox(v form.Value) form.Value {
	switch v.Kind() {
	case form.KindList:
		return v
	case form.KindEmpty:
		return form.List()
	default:
		return form.List(v.String())
	}
}

// Number yields a numeric value or null.
func Number(v form.Value) form.Value {
	n, ok := v.Number()
	if !ok {
		return form.Null()
	}
	return form.Number(n)
}

// Choice returns the option matching v, ignoring case and surrounding
// whitespace, or the empty string when v is not an option.
func Choice(v form.Value, options []string) form.Value {
	want := form.Normalize(v.String())
	for _, o := range options {
		if form.Normalize(o) == want {
			return form.String(o)
		}
	}
	return form.String("")
}

// Selections splits v on commas and keeps the entries found in options,
// using each option's canonical spelling. With no options every non-blank
// entry is kept.
func Selections(v form.Value, options []string) form.Value {
	var parts []string
	if v.Kind() == form.KindList {
		parts = v.List()
	} else {
		parts = strings.Split(v.String(), ",")
	}

	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if len(options) == 0 {
			out = append(out, p)
			continue
		}
		if match := Choice(form.String(p), options); !match.IsEmpty() {
			out = append(out, match.String())
		}
	}
	return form.List(out...)
}

// InRange yields v as a number when it lies within [minimum, maximum], or null.
func InRange(v form.Value, minimum, maximum float64) form.Value {
	n, ok := v.Number()
	if !ok || n < minimum || n > maximum {
		return form.Null()
	}
	return form.Number(n)
}
