// Package recall fills fields with earlier answers, either copied directly
// from a source field or rendered through a template with built-in functions.
package recall

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robbyt/go-formlogic/form"
	"github.com/robbyt/go-formlogic/internal/coerce"
	"github.com/robbyt/go-formlogic/internal/format"
	"github.com/robbyt/go-formlogic/internal/helpers"
)

// Component names recall diagnostics.
const Component = "recall"

// Result maps recall-enabled field ids to their rendered value.
type Result struct {
	Values      map[string]form.Value
	Diagnostics []form.Diagnostic
}

// Resolver renders answer recall. It is safe for concurrent use.
type Resolver struct {
	logger    *slog.Logger
	formatter *format.Formatter
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithFormatter sets the locale used for numbers and dates in templates.
func WithFormatter(f *format.Formatter) Option {
	return func(r *Resolver) {
		if f != nil {
			r.formatter = f
		}
	}
}

// New creates a Resolver.
func New(handler slog.Handler, opts ...Option) *Resolver {
	_, logger := helpers.SetupLogger(handler, Component, "Resolver")
	r := &Resolver{logger: logger, formatter: format.Default()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Resolver) String() string {
	return "recall.Resolver"
}

// Render produces the recalled value of field. A template wins over a source
// field when both are set. Direct recall coerces the source answer to the
// field's own type and yields an empty value when the source is unanswered.
func (r *Resolver) Render(field form.Field, responses form.Responses, fields []form.Field) form.Value {
	v, _ := r.render(field, responses, fields)
	return v
}

func (r *Resolver) render(field form.Field, responses form.Responses, fields []form.Field) (form.Value, []string) {
	if !field.HasRecall() {
		return form.Null(), nil
	}
	cfg := field.AnswerRecall
	if cfg.Template != "" {
		rd := newRenderer(fields, responses, r.formatter)
		return form.String(rd.render(cfg.Template)), rd.unknown
	}
	if cfg.SourceFieldID == "" {
		return form.Null(), nil
	}
	return coerce.ToField(responses.Get(cfg.SourceFieldID), field.Type), nil
}

// Resolve renders every recall-enabled field. Direct recalls of unanswered
// sources are left out.
func (r *Resolver) Resolve(fields []form.Field, responses form.Responses) Result {
	return r.ResolveContext(context.Background(), fields, responses)
}

// ResolveContext is Resolve with a context used for logging.
func (r *Resolver) ResolveContext(ctx context.Context, fields []form.Field, responses form.Responses) Result {
	logger := r.logger.WithGroup("Resolve")
	res := Result{Values: make(map[string]form.Value)}

	for _, f := range form.Ordered(fields) {
		if !f.HasRecall() {
			continue
		}
		v, unknown := r.render(f, responses, fields)
		for _, id := range unknown {
			msg := fmt.Sprintf("template references unknown field %q", id)
			logger.WarnContext(ctx, msg, "field", f.ID)
			res.Diagnostics = append(res.Diagnostics, form.Diagnostic{Component: Component, FieldID: f.ID, Message: msg})
		}
		if v.IsZero() {
			continue
		}
		res.Values[f.ID] = v
	}

	logger.DebugContext(ctx, "recall resolved", "values", len(res.Values))
	return res
}
