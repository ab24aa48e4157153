package engine

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/robbyt/go-formlogic/form"
	"github.com/robbyt/go-formlogic/resolvers/visibility"
)

// Result is the outcome of one evaluation. It is immutable; every accessor
// returns a copy.
type Result struct {
	id          string
	fields      []form.Field
	visibility  visibility.Result
	calculated  map[string]form.Value
	recalled    map[string]form.Value
	prefilled   map[string]form.Value
	diagnostics []form.Diagnostic
	duration    time.Duration
}

func newResult(
	fields []form.Field,
	vis visibility.Result,
	calculated, recalled, prefilled map[string]form.Value,
	diagnostics []form.Diagnostic,
	duration time.Duration,
) *Result {
	return &Result{
		id:          uuid.NewString(),
		fields:      fields,
		visibility:  vis,
		calculated:  calculated,
		recalled:    recalled,
		prefilled:   prefilled,
		diagnostics: diagnostics,
		duration:    duration,
	}
}

func (r *Result) String() string {
	return fmt.Sprintf(
		"engine.Result{ID: %s, Visible: %d, Hidden: %d, Calculated: %d, Recalled: %d, Prefilled: %d, Duration: %s}",
		r.id, len(r.visibility.Visible), len(r.visibility.Hidden),
		len(r.calculated), len(r.recalled), len(r.prefilled), r.duration,
	)
}

// ID identifies this evaluation.
func (r *Result) ID() string {
	return r.id
}

// Duration is the time the evaluation took.
func (r *Result) Duration() time.Duration {
	return r.duration
}

// VisibleFields lists visible field ids in form order.
func (r *Result) VisibleFields() []string {
	return slices.Clone(r.visibility.Visible)
}

// HiddenFields lists hidden field ids in form order.
func (r *Result) HiddenFields() []string {
	return slices.Clone(r.visibility.Hidden)
}

// IsVisible reports whether id is visible.
func (r *Result) IsVisible(id string) bool {
	return r.visibility.IsVisible(id)
}

// SkipTargets maps fields whose skip logic fired to their target.
func (r *Result) SkipTargets() map[string]string {
	return maps.Clone(r.visibility.SkipTargets)
}

// SkipTarget returns the skip target of id, if its skip logic fired.
func (r *Result) SkipTarget(id string) (string, bool) {
	target, ok := r.visibility.SkipTargets[id]
	return target, ok
}

// CalculatedValues maps formula fields to their formatted result.
func (r *Result) CalculatedValues() map[string]form.Value {
	return maps.Clone(r.calculated)
}

// RecalledValues maps recall fields to their rendered value.
func (r *Result) RecalledValues() map[string]form.Value {
	return maps.Clone(r.recalled)
}

// PrefilledValues maps prefill fields to their initial value.
func (r *Result) PrefilledValues() map[string]form.Value {
	return maps.Clone(r.prefilled)
}

// Diagnostics lists everything that was degraded during evaluation.
func (r *Result) Diagnostics() []form.Diagnostic {
	return slices.Clone(r.diagnostics)
}

// NextField returns the field to present after currentID, following skip
// logic and skipping hidden fields. It returns "" at the end of the form.
func (r *Result) NextField(currentID string) string {
	return visibility.NextField(r.fields, r.visibility, currentID)
}

type resultJSON struct {
	ID          string                `json:"id"`
	Visible     []string              `json:"visibleFields"`
	Hidden      []string              `json:"hiddenFields"`
	SkipTargets map[string]string     `json:"skipTargets"`
	Calculated  map[string]form.Value `json:"calculatedValues"`
	Recalled    map[string]form.Value `json:"recalledValues"`
	Prefilled   map[string]form.Value `json:"prefilledValues"`
	Diagnostics []form.Diagnostic     `json:"diagnostics,omitempty"`
	ExecTime    string                `json:"execTime"`
}

// MarshalJSON implements json.Marshaler.
func (r *Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(resultJSON{
		ID:          r.id,
		Visible:     r.visibility.Visible,
		Hidden:      r.visibility.Hidden,
		SkipTargets: r.visibility.SkipTargets,
		Calculated:  r.calculated,
		Recalled:    r.recalled,
		Prefilled:   r.prefilled,
		Diagnostics: r.diagnostics,
		ExecTime:    r.duration.String(),
	})
}
