package calculation

import (
	"errors"
	"regexp"
	"strings"

	"github.com/robbyt/go-formlogic/form"
	"github.com/robbyt/go-formlogic/resolvers/calculation/internal/arith"
)

// functionNames matches builtin names so they are not reported as stray text.
var functionNames = regexp.MustCompile(`(?i)\b(SUM|AVG|MIN|MAX|COUNT|IF|SQRT|ABS|ROUND)\b`)

// bareIdent matches identifiers left after tokens are removed.
var bareIdent = regexp.MustCompile(`[A-Za-z_][A-Za-z0-9_.\-]*`)

// allowedSyntax matches characters with a meaning in a formula.
var allowedSyntax = regexp.MustCompile(`[0-9+\-*/().\s,<>=!]`)

// Validate checks calculation configuration at authoring time: formula
// syntax, references and dependency cycles.
func Validate(fields []form.Field) form.ValidationResult {
	var rep form.Reporter
	index := form.IndexByID(fields)

	for _, f := range form.Ordered(fields) {
		if !f.HasCalculation() {
			continue
		}
		calc := f.Calculation
		formula := strings.TrimSpace(calc.Formula)
		if formula == "" {
			rep.Errorf(f.ID, form.CodeEmptyFormula, "calculation is enabled but the formula is empty")
			continue
		}
		if !calc.DisplayType.Valid() {
			rep.Warnf(f.ID, form.CodeUnknownDisplayType, "display type %q is not supported; the value is shown as a number", calc.DisplayType)
		}

		declared := make(map[string]bool, len(calc.Dependencies))
		for _, dep := range calc.Dependencies {
			declared[dep] = true
			switch {
			case dep == f.ID:
				rep.Errorf(f.ID, form.CodeSelfReference, "calculation depends on itself")
			case !fieldExists(index, dep):
				rep.Errorf(f.ID, form.CodeUnknownField, "dependency %q does not match any field", dep)
			case isBuiltin(dep):
				rep.Warnf(f.ID, form.CodeReservedName, "dependency %q is also a function name; inside function arguments write it as {{%s}}", dep, dep)
			}
		}

		for _, ref := range References(formula) {
			switch {
			case ref == f.ID:
				if !declared[ref] {
					rep.Errorf(f.ID, form.CodeSelfReference, "formula references its own field")
				}
			case !fieldExists(index, ref):
				rep.Errorf(f.ID, form.CodeUnknownField, "formula references %q which does not match any field", ref)
			case !declared[ref]:
				rep.Warnf(f.ID, form.CodeUndeclaredDependency, "formula references %q which is not listed in dependencies; it evaluates as 0 until answered", ref)
			}
		}

		if stray := strayText(formula, index); stray != "" {
			rep.Warnf(f.ID, form.CodeStrippedCharacters, "characters %q are not arithmetic and are ignored", stray)
		}

		if err := checkSyntax(formula); err != nil {
			rep.Errorf(f.ID, form.CodeInvalidFormula, "formula cannot be evaluated: %v", err)
		}
	}

	for _, cycle := range findCycles(fields) {
		if len(cycle) <= 2 {
			continue
		}
		rep.Errorf(cycle[0], form.CodeCircularDependency, "circular dependency: %s", strings.Join(cycle, " -> "))
	}
	return rep.Result()
}

func fieldExists(index map[string]form.Field, id string) bool {
	_, ok := index[id]
	return ok
}

// checkSyntax evaluates the formula with every referenced field set to 1.
// Only structural problems are reported; domain errors such as a division by
// zero depend on real answers.
func checkSyntax(formula string) error {
	values := make(map[string]float64)
	for _, ref := range References(formula) {
		values[ref] = 1
	}
	e := &expander{context: values}
	_, err := e.evaluate(formula)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, arith.ErrSyntax), errors.Is(err, arith.ErrEmpty), errors.Is(err, arith.ErrTooComplex),
		errors.Is(err, ErrFunctionArity), errors.Is(err, ErrUnbalancedCall):
		return err
	default:
		return nil
	}
}

// strayText returns the characters that would be stripped before evaluation,
// ignoring tokens, builtin names and field ids.
func strayText(formula string, index map[string]form.Field) string {
	s := tokenPattern.ReplaceAllString(formula, "")
	s = functionNames.ReplaceAllString(s, "")
	s = bareIdent.ReplaceAllStringFunc(s, func(id string) string {
		if fieldExists(index, id) {
			return ""
		}
		return id
	})
	s = allowedSyntax.ReplaceAllString(s, "")
	return s
}
