package recall

import (
	"regexp"
	"strings"

	"github.com/robbyt/go-formlogic/form"
	"github.com/robbyt/go-formlogic/internal/format"
)

// tokenPattern matches a {{fieldId}} reference. Any text between the
// braces is a reference; ids that are blank or match no field render empty.
var tokenPattern = regexp.MustCompile(`\{\{([^{}]*)\}\}`)

// tokenID is the trimmed id of a matched token.
func tokenID(raw string) string {
	return strings.TrimSpace(raw)
}

// renderer expands one template against a set of answers.
type renderer struct {
	responses form.Responses
	types     map[string]form.FieldType
	formatter *format.Formatter
	// unknown collects token ids that match no field.
	unknown []string
}

func newRenderer(fields []form.Field, responses form.Responses, f *format.Formatter) *renderer {
	types := make(map[string]form.FieldType, len(fields))
	for _, field := range fields {
		if _, seen := types[field.ID]; !seen {
			types[field.ID] = field.Type
		}
	}
	return &renderer{responses: responses, types: types, formatter: f}
}

// render substitutes tokens and applies template functions. Anything that is
// neither is copied through unchanged.
func (r *renderer) render(tmpl string) string {
	var b strings.Builder
	for i := 0; i < len(tmpl); {
		if strings.HasPrefix(tmpl[i:], "{{") {
			if loc := tokenPattern.FindStringSubmatchIndex(tmpl[i:]); loc != nil && loc[0] == 0 {
				b.WriteString(r.display(tokenID(tmpl[i+loc[2] : i+loc[3]])))
				i += loc[1]
				continue
			}
		}

		if isIdentByte(tmpl[i]) && (i == 0 || !isIdentByte(tmpl[i-1])) {
			j := i
			for j < len(tmpl) && isIdentByte(tmpl[j]) {
				j++
			}
			if fn, ok := functions[strings.ToLower(tmpl[i:j])]; ok {
				if closeAt, args, ok := splitCall(tmpl, j); ok {
					b.WriteString(fn(r.arguments(args)))
					i = closeAt + 1
					continue
				}
			}
			b.WriteString(tmpl[i:j])
			i = j
			continue
		}

		b.WriteByte(tmpl[i])
		i++
	}
	return b.String()
}

// argument is a function argument. raw is the bound answer for a bare
// {{id}} token and the rendered text otherwise.
type argument struct {
	raw     form.Value
	display string
}

func (r *renderer) arguments(args []string) []argument {
	out := make([]argument, 0, len(args))
	for _, a := range args {
		out = append(out, r.argument(a))
	}
	return out
}

func (r *renderer) argument(a string) argument {
	a = strings.TrimSpace(a)
	if s, ok := unquote(a); ok {
		return argument{raw: form.String(s), display: s}
	}
	if m := tokenPattern.FindStringSubmatch(a); m != nil && m[0] == a {
		id := tokenID(m[1])
		return argument{raw: r.lookup(id), display: r.display(id)}
	}
	s := r.render(a)
	return argument{raw: form.String(s), display: s}
}

func (r *renderer) lookup(id string) form.Value {
	if _, known := r.types[id]; !known {
		r.noteUnknown(id)
	}
	return r.responses.Get(id)
}

func (r *renderer) noteUnknown(id string) {
	for _, u := range r.unknown {
		if u == id {
			return
		}
	}
	r.unknown = append(r.unknown, id)
}

// display renders an answer for reading: lists joined with ", ", dates in
// the locale's short form and numbers with grouping separators.
func (r *renderer) display(id string) string {
	v := r.lookup(id)
	if v.IsEmpty() {
		return ""
	}
	t := r.types[id]

	switch {
	case v.Kind() == form.KindList:
		return strings.Join(v.List(), ", ")
	case v.Kind() == form.KindDate || t == form.TypeDate:
		if tm, ok := v.Time(); ok {
			return r.formatter.Date(tm)
		}
	case v.Kind() == form.KindNumber || t == form.TypeNumber || t.IsRange():
		if n, ok := v.Number(); ok {
			return r.formatter.Grouped(n)
		}
	}
	return v.String()
}

func isIdentByte(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// splitCall reads the argument list of a call whose name ends at nameEnd.
// Quotes, nested parentheses and tokens are respected. ok is false when no
// '(' follows the name or the call never closes.
func splitCall(s string, nameEnd int) (closeAt int, args []string, ok bool) {
	open := nameEnd
	for open < len(s) && s[open] == ' ' {
		open++
	}
	if open >= len(s) || s[open] != '(' {
		return 0, nil, false
	}

	depth, braces := 0, 0
	var quote byte
	argStart := open + 1
	for i := open; i < len(s); i++ {
		c := s[i]
		if quote != 0 {
			if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '\'', '"':
			quote = c
		case '{':
			braces++
		case '}':
			if braces > 0 {
				braces--
			}
		case '(':
			if braces == 0 {
				depth++
			}
		case ')':
			if braces > 0 {
				continue
			}
			depth--
			if depth == 0 {
				if last := s[argStart:i]; strings.TrimSpace(last) != "" || len(args) > 0 {
					args = append(args, last)
				}
				return i, args, true
			}
		case ',':
			if depth == 1 && braces == 0 {
				args = append(args, s[argStart:i])
				argStart = i + 1
			}
		}
	}
	return 0, nil, false
}

// unquote strips matching single or double quotes.
func unquote(s string) (string, bool) {
	if len(s) >= 2 && (s[0] == '\'' || s[0] == '"') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1], true
	}
	return "", false
}

// References lists the field ids a template mentions, in order of first
// appearance. A blank token is listed as "".
func References(tmpl string) []string {
	var refs []string
	seen := make(map[string]bool)
	for _, m := range tokenPattern.FindAllStringSubmatch(tmpl, -1) {
		id := tokenID(m[1])
		if !seen[id] {
			seen[id] = true
			refs = append(refs, id)
		}
	}
	return refs
}
