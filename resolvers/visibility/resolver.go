// Package visibility decides which fields are shown and where skip logic
// jumps to, given the answers so far.
package visibility

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robbyt/go-formlogic/form"
	"github.com/robbyt/go-formlogic/internal/helpers"
	"github.com/robbyt/go-formlogic/resolvers/condition"
)

// Component names visibility diagnostics.
const Component = "visibility"

// Result lists visible and hidden field ids in form order, plus the skip
// target of every field whose skip logic fired.
type Result struct {
	Visible     []string          `json:"visibleFields"`
	Hidden      []string          `json:"hiddenFields"`
	SkipTargets map[string]string `json:"skipTargets"`
	Diagnostics []form.Diagnostic `json:"diagnostics,omitempty"`
}

// IsVisible reports whether id is in the visible set.
func (r Result) IsVisible(id string) bool {
	for _, v := range r.Visible {
		if v == id {
			return true
		}
	}
	return false
}

// Resolver evaluates show and skip conditions. It is safe for concurrent use.
type Resolver struct {
	logger *slog.Logger
}

// New creates a Resolver logging to handler.
func New(handler slog.Handler) *Resolver {
	_, logger := helpers.SetupLogger(handler, Component, "Resolver")
	return &Resolver{logger: logger}
}

func (r *Resolver) String() string {
	return "visibility.Resolver"
}

// Resolve evaluates every field's show and skip logic.
func (r *Resolver) Resolve(fields []form.Field, responses form.Responses) Result {
	return r.ResolveContext(context.Background(), fields, responses)
}

// ResolveContext is Resolve with a context used for logging.
func (r *Resolver) ResolveContext(ctx context.Context, fields []form.Field, responses form.Responses) Result {
	logger := r.logger.WithGroup("Resolve")
	ordered := form.Ordered(fields)
	ev := &evaluation{
		index:     form.IndexByID(fields),
		responses: responses,
		ctx:       ctx,
		logger:    logger,
	}
	res := Result{
		Visible:     []string{},
		Hidden:      []string{},
		SkipTargets: make(map[string]string),
	}

	for _, f := range ordered {
		if ev.visible(f) {
			res.Visible = append(res.Visible, f.ID)
		} else {
			res.Hidden = append(res.Hidden, f.ID)
		}

		if target, ok := ev.skip(f); ok {
			res.SkipTargets[f.ID] = target
		}
	}
	res.Diagnostics = ev.diagnostics

	logger.DebugContext(ctx, "visibility resolved",
		"visible", len(res.Visible), "hidden", len(res.Hidden), "skips", len(res.SkipTargets))
	return res
}

// evaluation carries the state of one Resolve call.
type evaluation struct {
	index       map[string]form.Field
	responses   form.Responses
	ctx         context.Context
	logger      *slog.Logger
	diagnostics []form.Diagnostic
}

func (e *evaluation) diagnose(fieldID, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	e.logger.WarnContext(e.ctx, msg, "field", fieldID)
	e.diagnostics = append(e.diagnostics, form.Diagnostic{
		Component: Component,
		FieldID:   fieldID,
		Message:   msg,
	})
}

// visible is true without an enabled show group or when the group's
// conditions fold to true.
func (e *evaluation) visible(f form.Field) bool {
	show := f.ShowConditions()
	if show == nil || len(show.Conditions) == 0 {
		return true
	}
	return condition.Fold(show.Conditions, func(c form.Condition) bool {
		return e.check(f.ID, c)
	})
}

// skip returns the skip target when the field's skip logic fires and the
// target exists.
func (e *evaluation) skip(f form.Field) (string, bool) {
	sk := f.SkipConditions()
	if sk == nil || len(sk.Conditions) == 0 {
		return "", false
	}
	fired := condition.Fold(sk.Conditions, func(c form.Condition) bool {
		return e.check(f.ID, c)
	})
	if !fired {
		return "", false
	}
	if _, ok := e.index[sk.TargetFieldID]; !ok {
		e.diagnose(f.ID, "skip target %q does not match any field", sk.TargetFieldID)
		return "", false
	}
	return sk.TargetFieldID, true
}

// check evaluates a single condition owned by field ownerID. Problems are
// recorded as diagnostics and the condition counts as false.
func (e *evaluation) check(ownerID string, c form.Condition) bool {
	source, ok := e.index[c.FieldID]
	if !ok {
		e.diagnose(ownerID, "condition references unknown field %q", c.FieldID)
		return false
	}
	result, err := condition.Compare(e.responses.Get(c.FieldID), c.Operator, c.Value, source.Type)
	if err != nil {
		e.diagnose(ownerID, "condition on %q: %v", c.FieldID, err)
		return false
	}
	return result
}
