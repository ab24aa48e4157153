package calculation

import (
	"regexp"
	"strings"
)

// tokenPattern matches {{fieldId}} references.
var tokenPattern = regexp.MustCompile(`\{\{\s*([^{}\s]+)\s*\}\}`)

// identPattern matches a bare field id used as a function argument.
var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.\-]*$`)

// builtins are the functions a formula may call. Names are matched without
// regard to case.
var builtins = map[string]struct{}{
	"SUM": {}, "AVG": {}, "MIN": {}, "MAX": {}, "COUNT": {},
	"IF": {}, "SQRT": {}, "ABS": {}, "ROUND": {},
}

// call is one builtin invocation found in a formula.
type call struct {
	name  string // upper case
	start int    // offset of the function name
	end   int    // offset just past the closing parenthesis
	args  []string
}

func isIdentByte(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// nextCall finds the first builtin call at or after offset from. ok is false
// when no call remains; err is set for a call without a closing parenthesis.
func nextCall(s string, from int) (c call, ok bool, err error) {
	for i := from; i < len(s); i++ {
		if !isIdentByte(s[i]) || (i > 0 && isIdentByte(s[i-1])) {
			continue
		}
		j := i
		for j < len(s) && isIdentByte(s[j]) {
			j++
		}
		name := strings.ToUpper(s[i:j])
		if _, known := builtins[name]; !known {
			i = j - 1
			continue
		}
		k := j
		for k < len(s) && (s[k] == ' ' || s[k] == '\t') {
			k++
		}
		if k >= len(s) || s[k] != '(' {
			i = j - 1
			continue
		}
		closeAt, args := splitArgs(s, k)
		if closeAt < 0 {
			return call{}, false, ErrUnbalancedCall
		}
		return call{name: name, start: i, end: closeAt + 1, args: args}, true, nil
	}
	return call{}, false, nil
}

// splitArgs splits the argument list that opens at s[open] == '(' on top level
// commas. It returns the offset of the matching ')' or -1.
func splitArgs(s string, open int) (int, []string) {
	depth := 0
	braces := 0
	argStart := open + 1
	var args []string
	for i := open; i < len(s); i++ {
		switch s[i] {
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
				last := strings.TrimSpace(s[argStart:i])
				if last != "" || len(args) > 0 {
					args = append(args, last)
				}
				return i, args
			}
		case ',':
			if depth == 1 && braces == 0 {
				args = append(args, strings.TrimSpace(s[argStart:i]))
				argStart = i + 1
			}
		}
	}
	return -1, nil
}

// isBuiltin reports whether name is a builtin function name, ignoring case.
func isBuiltin(name string) bool {
	_, ok := builtins[strings.ToUpper(name)]
	return ok
}

// fieldRef reports the field id an argument names, either as {{id}} or as a
// bare identifier. A bare identifier that is a builtin name is never a field.
func fieldRef(arg string) (string, bool) {
	arg = strings.TrimSpace(arg)
	if m := tokenPattern.FindStringSubmatch(arg); m != nil && m[0] == arg {
		return m[1], true
	}
	if identPattern.MatchString(arg) && !isBuiltin(arg) {
		return arg, true
	}
	return "", false
}

// References lists every field id a formula mentions: {{id}} tokens anywhere
// and bare ids inside builtin argument lists. Order of first appearance is kept.
func References(formula string) []string {
	seen := make(map[string]struct{})
	var refs []string
	add := func(id string) {
		if _, dup := seen[id]; dup {
			return
		}
		seen[id] = struct{}{}
		refs = append(refs, id)
	}

	for _, m := range tokenPattern.FindAllStringSubmatch(formula, -1) {
		add(m[1])
	}
	collectCallRefs(formula, add)
	return refs
}

func collectCallRefs(s string, add func(string)) {
	pos := 0
	for {
		c, ok, err := nextCall(s, pos)
		if err != nil || !ok {
			return
		}
		for _, arg := range c.args {
			if id, isRef := fieldRef(arg); isRef {
				add(id)
				continue
			}
			collectCallRefs(arg, add)
		}
		pos = c.end
	}
}
