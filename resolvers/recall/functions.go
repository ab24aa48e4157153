package recall

import (
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/robbyt/go-formlogic/form"
)

type function func(args []argument) string

// functions are the template built-ins, keyed by lower case name.
var functions = map[string]function{
	"uppercase":   textFunc(strings.ToUpper),
	"lowercase":   textFunc(strings.ToLower),
	"capitalize":  textFunc(capitalize),
	"date_format": dateFormat,
	"join":        join,
	"count":       count,
	"sum":         sum,
}

func textFunc(fn func(string) string) function {
	return func(args []argument) string {
		if len(args) == 0 {
			return ""
		}
		return fn(args[0].display)
	}
}

// capitalize upper-cases the first letter and lower-cases the rest.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

// DefaultDateFormat is used by date_format when no pattern is given.
const DefaultDateFormat = "YYYY-MM-DD"

// dateFormat renders a date with the pattern tokens YYYY MM DD HH mm ss.
// Answers that are not dates render empty.
func dateFormat(args []argument) string {
	if len(args) == 0 {
		return ""
	}
	tm, ok := args[0].raw.Time()
	if !ok {
		return ""
	}
	pattern := DefaultDateFormat
	if len(args) > 1 {
		pattern = args[1].raw.String()
	}
	return FormatDate(tm, pattern)
}

// FormatDate replaces the pattern tokens YYYY MM DD HH mm ss with the
// corresponding parts of t. Other text is kept as is.
func FormatDate(t time.Time, pattern string) string {
	return strings.NewReplacer(
		"YYYY", fmt.Sprintf("%04d", t.Year()),
		"MM", fmt.Sprintf("%02d", int(t.Month())),
		"DD", fmt.Sprintf("%02d", t.Day()),
		"HH", fmt.Sprintf("%02d", t.Hour()),
		"mm", fmt.Sprintf("%02d", t.Minute()),
		"ss", fmt.Sprintf("%02d", t.Second()),
	).Replace(pattern)
}

// join concatenates the selections of a list answer with a separator,
// ", " by default.
func join(args []argument) string {
	if len(args) == 0 {
		return ""
	}
	sep := ", "
	if len(args) > 1 {
		sep = args[1].raw.String()
	}
	if args[0].raw.Kind() == form.KindList {
		return strings.Join(args[0].raw.List(), sep)
	}
	return args[0].display
}

// count is the number of selections of a list answer, 1 for any other
// answer and 0 when unanswered.
func count(args []argument) string {
	if len(args) == 0 {
		return "0"
	}
	v := args[0].raw
	switch {
	case v.Kind() == form.KindList:
		return form.FormatNumber(float64(len(v.List())))
	case v.IsEmpty():
		return "0"
	default:
		return "1"
	}
}

// sum adds its arguments. Missing or non-numeric answers count as 0.
func sum(args []argument) string {
	var total float64
	for _, a := range args {
		if n, ok := a.raw.Number(); ok {
			total += n
		}
	}
	return form.FormatNumber(total)
}
