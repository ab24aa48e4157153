// Package condition holds the comparison primitive shared by visibility and
// skip logic, and the left fold that combines a list of conditions.
package condition

import (
	"fmt"
	"strings"

	"github.com/robbyt/go-formlogic/form"
)

// Compare evaluates one condition operator against an answer. The field type
// changes the meaning of equals and not_equals: on checkbox fields they test
// whether expected is one of the selections.
//
// Compare never panics. An unknown operator yields false together with an
// error wrapping ErrUnknownOperator; every other failure, such as a value that
// does not parse as a number, is simply false.
func Compare(fieldValue form.Value, op form.Operator, expected form.Value, fieldType form.FieldType) (bool, error) {
	switch op {
	case form.OpIsEmpty:
		return fieldValue.IsEmpty(), nil
	case form.OpIsNotEmpty:
		return !fieldValue.IsEmpty(), nil
	case form.OpEquals:
		return equals(fieldValue, expected, fieldType), nil
	case form.OpNotEquals:
		return !equals(fieldValue, expected, fieldType), nil
	case form.OpContains:
		return contains(fieldValue, expected), nil
	case form.OpNotContains:
		return !contains(fieldValue, expected), nil
	case form.OpGreaterThan, form.OpLessThan:
		left, ok := fieldValue.Number()
		if !ok {
			return false, nil
		}
		right, ok := expected.Number()
		if !ok {
			return false, nil
		}
		if op == form.OpGreaterThan {
			return left > right, nil
		}
		return left < right, nil
	default:
		return false, fmt.Errorf("%w: %q", ErrUnknownOperator, op)
	}
}

func equals(fieldValue, expected form.Value, fieldType form.FieldType) bool {
	want := form.Normalize(expected.String())
	if fieldType == form.TypeCheckbox && fieldValue.Kind() == form.KindList {
		for _, item := range fieldValue.List() {
			if form.Normalize(item) == want {
				return true
			}
		}
		return false
	}
	return form.Normalize(fieldValue.String()) == want
}

// contains matches a substring of the answer, or of any element of a list
// answer.
func contains(fieldValue, expected form.Value) bool {
	want := form.Normalize(expected.String())
	if fieldValue.Kind() == form.KindList {
		for _, item := range fieldValue.List() {
			if strings.Contains(form.Normalize(item), want) {
				return true
			}
		}
		return false
	}
	return strings.Contains(form.Normalize(fieldValue.String()), want)
}
