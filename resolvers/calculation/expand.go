package calculation

import (
	"fmt"
	"math"
	"regexp"
	"slices"
	"strings"

	"github.com/robbyt/go-formlogic/form"
	"github.com/robbyt/go-formlogic/resolvers/calculation/internal/arith"
)

// nonArithmetic matches every character the arithmetic evaluator rejects.
var nonArithmetic = regexp.MustCompile(`[^0-9+\-*/().\s]`)

// comparisons are tried longest first so ">=" is not read as ">".
var comparisons = []string{">=", "<=", "==", "!=", ">", "<"}

// expander turns a formula into a number against a context of known values.
type expander struct {
	context map[string]float64
	// missing collects token references that had no value.
	missing []string
}

// evaluate expands builtins and tokens in formula and evaluates the result.
func (e *expander) evaluate(formula string) (float64, error) {
	expanded, err := e.expand(formula)
	if err != nil {
		return 0, err
	}
	return arith.Eval(expanded)
}

// expand replaces builtin calls (innermost arguments first) and {{id}}
// tokens with numbers, then strips everything that is not arithmetic.
func (e *expander) expand(formula string) (string, error) {
	var b strings.Builder
	pos := 0
	for {
		c, ok, err := nextCall(formula, pos)
		if err != nil {
			return "", err
		}
		if !ok {
			break
		}
		v, err := e.apply(c)
		if err == nil {
			err = finite(v)
		}
		if err != nil {
			return "", fmt.Errorf("%s: %w", c.name, err)
		}
		b.WriteString(formula[pos:c.start])
		b.WriteString(literal(v))
		pos = c.end
	}
	b.WriteString(formula[pos:])

	var tokenErr error
	substituted := tokenPattern.ReplaceAllStringFunc(b.String(), func(tok string) string {
		id := tokenPattern.FindStringSubmatch(tok)[1]
		v, ok := e.context[id]
		if !ok {
			if !slices.Contains(e.missing, id) {
				e.missing = append(e.missing, id)
			}
			return "0"
		}
		if err := finite(v); err != nil && tokenErr == nil {
			tokenErr = fmt.Errorf("%s: %w", id, err)
		}
		return literal(v)
	})
	if tokenErr != nil {
		return "", tokenErr
	}
	return nonArithmetic.ReplaceAllString(substituted, ""), nil
}

// finite rejects NaN and infinities, which have no arithmetic literal.
func finite(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %v", arith.ErrNotFinite, v)
	}
	return nil
}

// arg evaluates one builtin argument. present is false when the argument
// names a field without a value.
func (e *expander) arg(raw string) (value float64, present bool, err error) {
	if id, isRef := fieldRef(raw); isRef {
		v, ok := e.context[id]
		if ok {
			if err := finite(v); err != nil {
				return 0, false, fmt.Errorf("%s: %w", id, err)
			}
		}
		return v, ok, nil
	}
	v, err := e.evaluate(raw)
	if err != nil {
		return 0, false, err
	}
	return v, true, nil
}

// present evaluates every argument and keeps the ones with values.
func (e *expander) present(args []string) ([]float64, error) {
	vals := make([]float64, 0, len(args))
	for _, a := range args {
		v, ok, err := e.arg(a)
		if err != nil {
			return nil, err
		}
		if ok {
			vals = append(vals, v)
		}
	}
	return vals, nil
}

func (e *expander) single(c call) (float64, error) {
	if len(c.args) != 1 {
		return 0, fmt.Errorf("%w: want 1, got %d", ErrFunctionArity, len(c.args))
	}
	v, _, err := e.arg(c.args[0])
	return v, err
}

func (e *expander) apply(c call) (float64, error) {
	switch c.name {
	case "SUM", "AVG", "MIN", "MAX", "COUNT":
		vals, err := e.present(c.args)
		if err != nil {
			return 0, err
		}
		return aggregate(c.name, vals), nil
	case "IF":
		return e.ifThenElse(c.args)
	case "SQRT":
		v, err := e.single(c)
		if err != nil {
			return 0, err
		}
		if v < 0 {
			return 0, fmt.Errorf("%w: square root of %v", ErrFunctionDomain, v)
		}
		return math.Sqrt(v), nil
	case "ABS":
		v, err := e.single(c)
		if err != nil {
			return 0, err
		}
		return math.Abs(v), nil
	case "ROUND":
		return e.round(c.args)
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnknownFunction, c.name)
	}
}

func aggregate(name string, vals []float64) float64 {
	if name == "COUNT" {
		return float64(len(vals))
	}
	if len(vals) == 0 {
		return 0
	}
	switch name {
	case "MIN":
		return slices.Min(vals)
	case "MAX":
		return slices.Max(vals)
	}
	var sum float64
	for _, v := range vals {
		sum += v
	}
	if name == "AVG" {
		return sum / float64(len(vals))
	}
	return sum
}

func (e *expander) round(args []string) (float64, error) {
	if len(args) < 1 || len(args) > 2 {
		return 0, fmt.Errorf("%w: want 1 or 2, got %d", ErrFunctionArity, len(args))
	}
	v, _, err := e.arg(args[0])
	if err != nil {
		return 0, err
	}
	digits := 0.0
	if len(args) == 2 {
		if digits, _, err = e.arg(args[1]); err != nil {
			return 0, err
		}
	}
	scale := math.Pow(10, math.Trunc(digits))
	return roundHalfUp(v*scale) / scale, nil
}

func (e *expander) ifThenElse(args []string) (float64, error) {
	if len(args) < 2 || len(args) > 3 {
		return 0, fmt.Errorf("%w: want 2 or 3, got %d", ErrFunctionArity, len(args))
	}
	ok, err := e.condition(args[0])
	if err != nil {
		return 0, err
	}
	branch := ""
	switch {
	case ok:
		branch = args[1]
	case len(args) == 3:
		branch = args[2]
	default:
		return 0, nil
	}
	v, _, err := e.arg(branch)
	return v, err
}

// condition evaluates "left OP right" or, without a comparison, tests the
// expression for a non-zero value.
func (e *expander) condition(cond string) (bool, error) {
	for _, op := range comparisons {
		idx := topLevelIndex(cond, op)
		if idx < 0 {
			continue
		}
		left, _, err := e.arg(cond[:idx])
		if err != nil {
			return false, err
		}
		right, _, err := e.arg(cond[idx+len(op):])
		if err != nil {
			return false, err
		}
		switch op {
		case ">=":
			return left >= right, nil
		case "<=":
			return left <= right, nil
		case "==":
			return left == right, nil
		case "!=":
			return left != right, nil
		case ">":
			return left > right, nil
		default:
			return left < right, nil
		}
	}
	v, _, err := e.arg(cond)
	return v != 0, err
}

// topLevelIndex finds op outside parentheses and tokens.
func topLevelIndex(s, op string) int {
	depth, braces := 0, 0
	for i := 0; i+len(op) <= len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
		case '{':
			braces++
		case '}':
			braces--
		}
		if depth != 0 || braces != 0 || s[i:i+len(op)] != op {
			continue
		}
		// ">" must not be the first half of ">=" and "<" not of "<=".
		if len(op) == 1 && i+1 < len(s) && s[i+1] == '=' {
			continue
		}
		return i
	}
	return -1
}

// literal renders v so it can be spliced into an arithmetic expression.
func literal(v float64) string {
	if v < 0 {
		return "(" + form.FormatNumber(v) + ")"
	}
	return form.FormatNumber(v)
}

// roundHalfUp rounds .5 toward positive infinity.
func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}
