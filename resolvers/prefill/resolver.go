// Package prefill maps URL query parameters, or configured defaults, to typed
// initial field values, and builds links that carry such parameters.
package prefill

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/robbyt/go-formlogic/form"
	"github.com/robbyt/go-formlogic/internal/coerce"
	"github.com/robbyt/go-formlogic/internal/helpers"
)

// Component names prefill diagnostics.
const Component = "prefill"

const (
	// DefaultScaleMin is the lower bound for rating and scale fields without
	// their own validation range.
	DefaultScaleMin = 1.0
	// DefaultScaleMax is the matching upper bound.
	DefaultScaleMax = 10.0
)

// Result maps prefill-enabled field ids to their initial value. A value that
// was supplied but rejected is present as an empty string, or null for
// numeric fields.
type Result struct {
	Values      map[string]form.Value
	Diagnostics []form.Diagnostic
}

// Resolver resolves prefill values. It is safe for concurrent use.
type Resolver struct {
	logger   *slog.Logger
	scaleMin float64
	scaleMax float64
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithScaleRange sets the fallback range for rating and scale fields. Ranges
// with minimum > maximum are ignored.
func WithScaleRange(minimum, maximum float64) Option {
	return func(r *Resolver) {
		if minimum <= maximum {
			r.scaleMin, r.scaleMax = minimum, maximum
		}
	}
}

// New creates a Resolver.
func New(handler slog.Handler, opts ...Option) *Resolver {
	_, logger := helpers.SetupLogger(handler, Component, "Resolver")
	r := &Resolver{logger: logger, scaleMin: DefaultScaleMin, scaleMax: DefaultScaleMax}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Resolver) String() string {
	return "prefill.Resolver"
}

// Resolve computes the initial value of every prefill-enabled field. params
// holds raw query values; each is URL-decoded once, '+' becoming a space. A
// missing or empty parameter falls back to the field's default. Fields with
// neither are left out.
func (r *Resolver) Resolve(fields []form.Field, params map[string]string) Result {
	return r.ResolveContext(context.Background(), fields, params)
}

// ResolveContext is Resolve with a context used for logging.
func (r *Resolver) ResolveContext(ctx context.Context, fields []form.Field, params map[string]string) Result {
	logger := r.logger.WithGroup("Resolve")
	res := Result{Values: make(map[string]form.Value)}

	for _, f := range form.Ordered(fields) {
		if !f.HasPrefill() {
			continue
		}
		input, fromURL := r.input(f, params)
		if input.IsEmpty() {
			continue
		}
		v := r.Coerce(f, input)
		if rejected(v) {
			source := "default value"
			if fromURL {
				source = fmt.Sprintf("parameter %q", f.Prefill.URLParameter)
			}
			msg := fmt.Sprintf("%s %q is not valid for a %s field", source, input.String(), typeName(f.Type))
			logger.WarnContext(ctx, msg, "field", f.ID)
			res.Diagnostics = append(res.Diagnostics, form.Diagnostic{Component: Component, FieldID: f.ID, Message: msg})
		}
		res.Values[f.ID] = v
	}

	logger.DebugContext(ctx, "prefill resolved", "values", len(res.Values), "params", len(params))
	return res
}

// ResolveQuery is Resolve over a raw query string. A full URL is accepted;
// only its query is read.
func (r *Resolver) ResolveQuery(fields []form.Field, rawQuery string) Result {
	if before, after, found := strings.Cut(rawQuery, "?"); found && !strings.Contains(before, "=") {
		rawQuery = after
	}
	rawQuery, _, _ = strings.Cut(rawQuery, "#")
	return r.Resolve(fields, helpers.RawQueryParams(rawQuery))
}

// input picks the URL parameter or, failing that, the default value.
func (r *Resolver) input(f form.Field, params map[string]string) (form.Value, bool) {
	if p := f.Prefill.URLParameter; p != "" {
		if raw, ok := params[p]; ok && raw != "" {
			return form.String(helpers.DecodeQueryComponent(raw)), true
		}
	}
	return f.Prefill.DefaultValue, false
}

// Coerce converts an input to the value field would hold. Single choice
// fields must match an option, checkbox input is split on commas and
// filtered against the options, rating and scale input must lie in range.
// Other types follow the answer recall rules.
func (r *Resolver) Coerce(f form.Field, v form.Value) form.Value {
	switch {
	case f.Type.IsSingleChoice():
		return coerce.Choice(v, f.Options)
	case f.Type == form.TypeCheckbox:
		return coerce.Selections(v, f.Options)
	case f.Type.IsRange():
		minimum, maximum := r.bounds(f)
		return coerce.InRange(v, minimum, maximum)
	default:
		return coerce.ToField(v, f.Type)
	}
}

func (r *Resolver) bounds(f form.Field) (float64, float64) {
	minimum, maximum := r.scaleMin, r.scaleMax
	if f.Validation != nil {
		if f.Validation.Min != nil {
			minimum = *f.Validation.Min
		}
		if f.Validation.Max != nil {
			maximum = *f.Validation.Max
		}
	}
	return minimum, maximum
}

func rejected(v form.Value) bool {
	return v.IsEmpty() || (v.Kind() == form.KindList && len(v.List()) == 0)
}

func typeName(t form.FieldType) string {
	if t == "" {
		return string(form.TypeText)
	}
	return string(t)
}
