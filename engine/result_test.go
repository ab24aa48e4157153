package engine

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robbyt/go-formlogic/form"
)

func surveyForm() []form.Field {
	return form.Sequence([]form.Field{
		{ID: "smoker", Type: form.TypeRadio, Options: []string{"yes", "no"}, Conditional: &form.Conditional{
			Skip: &form.SkipLogic{Enabled: true, TargetFieldID: "contact", Conditions: []form.Condition{
				{FieldID: "smoker", Operator: form.OpEquals, Value: form.String("no")},
			}},
		}},
		{ID: "per_day", Type: form.TypeNumber},
		{ID: "years", Type: form.TypeNumber},
		{ID: "contact", Type: form.TypeEmail, Conditional: &form.Conditional{
			Show: &form.ConditionGroup{Enabled: true, Conditions: []form.Condition{
				{FieldID: "smoker", Operator: form.OpIsNotEmpty},
			}},
		}},
		{ID: "done", Type: form.TypeText},
	})
}

func TestResult_Accessors(t *testing.T) {
	t.Parallel()

	e := newEvaluator(t, surveyForm())
	res := e.Evaluate(context.Background(), form.ResponsesFrom(map[string]any{"smoker": "No"}), nil)

	_, err := uuid.Parse(res.ID())
	require.NoError(t, err)
	assert.Contains(t, res.String(), res.ID())

	target, ok := res.SkipTarget("smoker")
	assert.True(t, ok)
	assert.Equal(t, "contact", target)
	_, ok = res.SkipTarget("per_day")
	assert.False(t, ok)

	t.Run("copies", func(t *testing.T) {
		visible := res.VisibleFields()
		visible[0] = "changed"
		assert.Equal(t, "smoker", res.VisibleFields()[0])

		skips := res.SkipTargets()
		skips["smoker"] = "done"
		assert.Equal(t, map[string]string{"smoker": "contact"}, res.SkipTargets())

		calc := res.CalculatedValues()
		calc["x"] = form.Number(1)
		assert.Empty(t, res.CalculatedValues())
	})
}

func TestResult_NextField(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		responses map[string]any
		current   string
		want      string
	}{
		{name: "skip fires", responses: map[string]any{"smoker": "no"}, current: "smoker", want: "contact"},
		{name: "no skip", responses: map[string]any{"smoker": "yes"}, current: "smoker", want: "per_day"},
		{name: "hidden field passed over", responses: map[string]any{}, current: "years", want: "done"},
		{name: "last field", responses: map[string]any{"smoker": "yes"}, current: "done", want: ""},
		{name: "unknown field", responses: map[string]any{}, current: "nope", want: ""},
	}

	e := newEvaluator(t, surveyForm())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res := e.Evaluate(context.Background(), form.ResponsesFrom(tt.responses), nil)
			assert.Equal(t, tt.want, res.NextField(tt.current))
		})
	}
}

func TestResult_MarshalJSON(t *testing.T) {
	t.Parallel()

	e := newEvaluator(t, orderForm())
	res := e.Evaluate(context.Background(),
		form.ResponsesFrom(map[string]any{"name": "Ada", "plan": "basic", "qty": 2, "price": 3}),
		map[string]string{"name": "Grace"})

	raw, err := json.Marshal(res)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, res.ID(), decoded["id"])
	assert.Equal(t, []any{"seats"}, decoded["hiddenFields"])
	assert.Equal(t, map[string]any{"total": 6.0}, decoded["calculatedValues"])
	assert.Equal(t, map[string]any{"summary": "Ada owes 6"}, decoded["recalledValues"])
	assert.Equal(t, map[string]any{"name": "Grace"}, decoded["prefilledValues"])
	assert.Equal(t, map[string]any{}, decoded["skipTargets"])
	assert.NotContains(t, decoded, "diagnostics")
	assert.NotEmpty(t, decoded["execTime"])
}
