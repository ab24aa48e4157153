// Package calculation resolves formula fields to a fixed point over their
// dependencies and checks the dependency graph for cycles.
package calculation

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/robbyt/go-formlogic/form"
	"github.com/robbyt/go-formlogic/internal/format"
	"github.com/robbyt/go-formlogic/internal/helpers"
)

// Component names calculation diagnostics.
const Component = "calculation"

// DefaultPassFactor multiplies the field count to bound the fixed-point loop.
const DefaultPassFactor = 2

// Result holds the formatted value of every resolved formula field.
type Result struct {
	Values      map[string]form.Value
	Passes      int
	Diagnostics []form.Diagnostic
}

// Resolver evaluates calculation fields. It holds no per-call state and is
// safe for concurrent use.
type Resolver struct {
	logger     *slog.Logger
	formatter  *format.Formatter
	passFactor int
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithFormatter sets the locale used for currency and percentage output.
func WithFormatter(f *format.Formatter) Option {
	return func(r *Resolver) {
		if f != nil {
			r.formatter = f
		}
	}
}

// WithPassFactor changes the pass bound to factor × field count.
func WithPassFactor(factor int) Option {
	return func(r *Resolver) {
		if factor > 0 {
			r.passFactor = factor
		}
	}
}

// New creates a Resolver.
func New(handler slog.Handler, opts ...Option) *Resolver {
	_, logger := helpers.SetupLogger(handler, Component, "Resolver")
	r := &Resolver{
		logger:     logger,
		formatter:  format.Default(),
		passFactor: DefaultPassFactor,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Resolver) String() string {
	return "calculation.Resolver"
}

// MaxPasses is the pass bound for a form with fieldCount fields.
func (r *Resolver) MaxPasses(fieldCount int) int {
	return max(1, r.passFactor*fieldCount)
}

// Resolve computes every enabled formula whose dependencies can be satisfied.
// Fields that never become resolvable are left out of the result.
func (r *Resolver) Resolve(fields []form.Field, responses form.Responses) Result {
	return r.ResolveContext(context.Background(), fields, responses)
}

// ResolveContext is Resolve with a context used for logging.
func (r *Resolver) ResolveContext(ctx context.Context, fields []form.Field, responses form.Responses) Result {
	logger := r.logger.WithGroup("Resolve")
	res := Result{Values: make(map[string]form.Value)}

	ordered := form.Ordered(fields)
	var pending []form.Field
	seen := make(map[string]bool)
	for _, f := range ordered {
		if f.HasCalculation() && !seen[f.ID] {
			seen[f.ID] = true
			pending = append(pending, f)
		}
	}
	if len(pending) == 0 {
		return res
	}

	values := seedContext(ordered, responses)
	maxPasses := r.MaxPasses(len(fields))
	resolved := make(map[string]bool, len(pending))

	for pass := 1; pass <= maxPasses && len(resolved) < len(pending); pass++ {
		res.Passes = pass
		progress := false
		for _, f := range pending {
			if resolved[f.ID] || !dependenciesReady(f.Calculation.Dependencies, values) {
				continue
			}
			n, diags := r.evaluate(ctx, f, values)
			res.Diagnostics = append(res.Diagnostics, diags...)
			values[f.ID] = n
			res.Values[f.ID] = r.display(n, f.Calculation.DisplayType)
			resolved[f.ID] = true
			progress = true
		}
		if !progress {
			break
		}
	}

	for _, f := range pending {
		if !resolved[f.ID] {
			logger.DebugContext(ctx, "formula left unresolved", "field", f.ID,
				"dependencies", f.Calculation.Dependencies)
		}
	}
	logger.DebugContext(ctx, "calculation complete",
		"resolved", len(resolved), "pending", len(pending), "passes", res.Passes)
	return res
}

func dependenciesReady(deps []string, values map[string]float64) bool {
	for _, d := range deps {
		if _, ok := values[d]; !ok {
			return false
		}
	}
	return true
}

// evaluate runs one formula. Any failure yields 0 plus a diagnostic.
func (r *Resolver) evaluate(ctx context.Context, f form.Field, values map[string]float64) (float64, []form.Diagnostic) {
	logger := r.logger.WithGroup("evaluate").With("field", f.ID)
	var diags []form.Diagnostic

	e := &expander{context: values}
	n, err := e.evaluate(f.Calculation.Formula)
	for _, id := range e.missing {
		diags = append(diags, form.Diagnostic{
			Component: Component,
			FieldID:   f.ID,
			Message:   fmt.Sprintf("formula references %q which has no value; using 0", id),
		})
	}
	if err != nil {
		logger.WarnContext(ctx, "formula evaluation failed", "formula", f.Calculation.Formula, "error", err)
		diags = append(diags, form.Diagnostic{
			Component: Component,
			FieldID:   f.ID,
			Message:   fmt.Sprintf("formula evaluation failed: %v", err),
		})
		return 0, diags
	}
	return n, diags
}

// display formats n according to the field's display type.
func (r *Resolver) display(n float64, dt form.DisplayType) form.Value {
	switch dt {
	case form.DisplayCurrency:
		return form.String(r.formatter.Currency(n))
	case form.DisplayPercentage:
		return form.String(r.formatter.Percent(n))
	case form.DisplayDecimal:
		return form.Number(math.Round(n*100) / 100)
	default:
		return form.Number(roundHalfUp(n))
	}
}
