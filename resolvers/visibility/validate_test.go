package visibility

import (
	"testing"

	"github.com/robbyt/go-formlogic/form"
	"github.com/stretchr/testify/assert"
)

func codes(issues []form.Issue) []form.Code {
	out := make([]form.Code, 0, len(issues))
	for _, i := range issues {
		out = append(out, i.Code)
	}
	return out
}

func TestValidate(t *testing.T) {
	t.Parallel()

	base := []form.Field{
		{ID: "color", Type: form.TypeDropdown, Options: []string{"Red", "Blue"}},
		{ID: "age", Type: form.TypeNumber},
	}

	tests := []struct {
		name     string
		field    form.Field
		errors   []form.Code
		warnings []form.Code
	}{
		{
			name:     "valid show logic",
			field:    form.Field{ID: "x", Conditional: show(when("color", form.OpEquals, "red"), or(when("age", form.OpGreaterThan, 30)))},
			errors:   []form.Code{},
			warnings: []form.Code{},
		},
		{
			name:     "unknown field",
			field:    form.Field{ID: "x", Conditional: show(when("ghost", form.OpIsEmpty, nil))},
			errors:   []form.Code{form.CodeUnknownField},
			warnings: []form.Code{},
		},
		{
			name:     "self reference",
			field:    form.Field{ID: "x", Conditional: show(when("x", form.OpIsEmpty, nil))},
			errors:   []form.Code{form.CodeSelfReference},
			warnings: []form.Code{},
		},
		{
			name:     "unknown operator",
			field:    form.Field{ID: "x", Conditional: show(form.Condition{FieldID: "age", Operator: "between", Value: form.Number(1)})},
			errors:   []form.Code{form.CodeUnknownOperator},
			warnings: []form.Code{},
		},
		{
			name:     "empty group",
			field:    form.Field{ID: "x", Conditional: show()},
			errors:   []form.Code{},
			warnings: []form.Code{form.CodeEmptyConditions},
		},
		{
			name:     "missing value",
			field:    form.Field{ID: "x", Conditional: show(when("color", form.OpEquals, ""))},
			errors:   []form.Code{},
			warnings: []form.Code{form.CodeMissingValue},
		},
		{
			name:     "non numeric value",
			field:    form.Field{ID: "x", Conditional: show(when("age", form.OpLessThan, "old"))},
			errors:   []form.Code{},
			warnings: []form.Code{form.CodeNonNumericValue},
		},
		{
			name:     "value outside options",
			field:    form.Field{ID: "x", Conditional: show(when("color", form.OpNotEquals, "green"))},
			errors:   []form.Code{},
			warnings: []form.Code{form.CodeUnknownOption},
		},
		{
			name:     "skip without target",
			field:    form.Field{ID: "x", Conditional: skipTo("", when("age", form.OpIsEmpty, nil))},
			errors:   []form.Code{form.CodeMissingTarget},
			warnings: []form.Code{},
		},
		{
			name:     "skip to itself",
			field:    form.Field{ID: "x", Conditional: skipTo("x", when("age", form.OpIsEmpty, nil))},
			errors:   []form.Code{form.CodeSelfReference},
			warnings: []form.Code{},
		},
		{
			name:     "skip to unknown field",
			field:    form.Field{ID: "x", Conditional: skipTo("ghost", when("age", form.OpIsEmpty, nil))},
			errors:   []form.Code{form.CodeUnknownField},
			warnings: []form.Code{},
		},
		{
			name:     "backward skip",
			field:    form.Field{ID: "x", Conditional: skipTo("color", when("age", form.OpIsEmpty, nil))},
			errors:   []form.Code{},
			warnings: []form.Code{form.CodeBackwardSkip},
		},
		{
			name:     "skip without conditions",
			field:    form.Field{ID: "x", Conditional: skipTo("age")},
			errors:   []form.Code{},
			warnings: []form.Code{form.CodeEmptyConditions, form.CodeBackwardSkip},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := form.Sequence(append(append([]form.Field{}, base...), tt.field))
			res := Validate(fields)
			assert.Equal(t, tt.errors, codes(res.Errors), "errors: %v", res.Errors)
			assert.Equal(t, tt.warnings, codes(res.Warnings), "warnings: %v", res.Warnings)
			assert.Equal(t, len(tt.errors) == 0, res.IsValid)
		})
	}
}

func TestValidate_ForwardReference(t *testing.T) {
	t.Parallel()

	res := Validate(form.Sequence([]form.Field{
		{ID: "early", Conditional: show(when("late", form.OpIsNotEmpty, nil))},
		{ID: "late", Type: form.TypeText},
	}))
	assert.True(t, res.IsValid)
	assert.Equal(t, []form.Code{form.CodeForwardReference}, codes(res.Warnings))
}

func TestValidate_IgnoresDisabledLogic(t *testing.T) {
	t.Parallel()

	res := Validate([]form.Field{{
		ID: "x",
		Conditional: &form.Conditional{
			Show: &form.ConditionGroup{Conditions: []form.Condition{when("ghost", "bogus", nil)}},
			Skip: &form.SkipLogic{TargetFieldID: "x"},
		},
	}})
	assert.True(t, res.IsValid)
	assert.Empty(t, res.Warnings)
}
