package visibility

import (
	"testing"

	"github.com/robbyt/go-formlogic/form"
	"github.com/stretchr/testify/assert"
)

func TestNextField(t *testing.T) {
	t.Parallel()

	fields := form.Sequence([]form.Field{
		{ID: "q1", Type: form.TypeRadio, Conditional: skipTo("q4", when("q1", form.OpEquals, "skip"))},
		{ID: "q2", Type: form.TypeText, Conditional: skipTo("q3", when("q1", form.OpEquals, "jump-hidden"))},
		{ID: "q3", Type: form.TypeText, Conditional: show(when("q1", form.OpEquals, "show q3"))},
		{ID: "q4", Type: form.TypeText},
		{ID: "q5", Type: form.TypeText},
	})

	tests := []struct {
		name      string
		responses map[string]any
		current   string
		want      string
	}{
		{name: "next visible field", current: "q1", want: "q2"},
		{name: "hidden field is passed over", current: "q2", want: "q4"},
		{name: "shown field is not passed over", responses: map[string]any{"q1": "show q3"}, current: "q2", want: "q3"},
		{name: "skip target wins", responses: map[string]any{"q1": "skip"}, current: "q1", want: "q4"},
		{name: "hidden skip target moves on", responses: map[string]any{"q1": "jump-hidden"}, current: "q2", want: "q4"},
		{name: "end of form", current: "q5", want: ""},
		{name: "unknown current field", current: "nope", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := newResolver(t)
			res := r.Resolve(fields, form.ResponsesFrom(tt.responses))
			assert.Equal(t, tt.want, NextField(fields, res, tt.current))
		})
	}
}
