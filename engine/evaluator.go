// Package engine runs every resolver over a form in a fixed order and
// collects their output into one immutable Result.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/robbyt/go-formlogic/data"
	"github.com/robbyt/go-formlogic/form"
	"github.com/robbyt/go-formlogic/internal/format"
	"github.com/robbyt/go-formlogic/internal/helpers"
	"github.com/robbyt/go-formlogic/options"
	"github.com/robbyt/go-formlogic/resolvers/calculation"
	"github.com/robbyt/go-formlogic/resolvers/prefill"
	"github.com/robbyt/go-formlogic/resolvers/recall"
	"github.com/robbyt/go-formlogic/resolvers/visibility"
)

var _ EvaluatorWithPrep = (*Evaluator)(nil)

// Evaluator evaluates one form. It holds the fields and configured resolvers
// and no per-call state, so a single Evaluator may be shared between
// goroutines.
type Evaluator struct {
	fields         []form.Field
	provider       data.Provider
	prefillSeeding bool

	visibility  *visibility.Resolver
	calculation *calculation.Resolver
	recall      *recall.Resolver
	prefill     *prefill.Resolver

	logHandler slog.Handler
	logger     *slog.Logger
}

// New creates an Evaluator for fields. A nil cfg uses the defaults. Fields
// are copied and sorted by Order.
func New(fields []form.Field, cfg *options.Config) (*Evaluator, error) {
	if cfg == nil {
		var err error
		if cfg, err = options.New(); err != nil {
			return nil, err
		}
	}
	if dups := form.DuplicateIDs(fields); len(dups) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateField, strings.Join(dups, ", "))
	}

	handler, logger := helpers.SetupLogger(cfg.GetHandler(), "engine", "Evaluator")
	formatter := format.New(cfg.GetLocale(), cfg.GetCurrency())
	scaleMin, scaleMax := cfg.GetScaleRange()

	return &Evaluator{
		fields:         form.Ordered(fields),
		provider:       cfg.GetDataProvider(),
		prefillSeeding: cfg.PrefillSeeding(),
		visibility:     visibility.New(handler),
		calculation: calculation.New(handler,
			calculation.WithFormatter(formatter),
			calculation.WithPassFactor(cfg.GetPassFactor())),
		recall:     recall.New(handler, recall.WithFormatter(formatter)),
		prefill:    prefill.New(handler, prefill.WithScaleRange(scaleMin, scaleMax)),
		logHandler: handler,
		logger:     logger,
	}, nil
}

func (e *Evaluator) String() string {
	return fmt.Sprintf("engine.Evaluator{Fields: %d}", len(e.fields))
}

// Fields returns a copy of the evaluator's fields in form order.
func (e *Evaluator) Fields() []form.Field {
	return form.Ordered(e.fields)
}

// Evaluate runs prefill, visibility, calculation and recall over responses.
// params holds raw URL query values for prefill and may be nil. Form content
// never makes Evaluate fail; problems are reported as diagnostics.
func (e *Evaluator) Evaluate(ctx context.Context, responses form.Responses, params map[string]string) *Result {
	logger := e.logger.WithGroup("Evaluate")
	start := time.Now()

	answers := responses.Clone()
	pre := e.prefill.ResolveContext(ctx, e.fields, params)
	if e.prefillSeeding {
		for id, v := range pre.Values {
			if answers.Get(id).IsEmpty() && !v.IsEmpty() {
				answers[id] = v
			}
		}
	}

	vis := e.visibility.ResolveContext(ctx, e.fields, answers)
	calc := e.calculation.ResolveContext(ctx, e.fields, answers)

	recallInput := answers.Clone()
	for id, v := range calc.Values {
		if recallInput.Get(id).IsEmpty() {
			recallInput[id] = v
		}
	}
	rec := e.recall.ResolveContext(ctx, e.fields, recallInput)

	var diags []form.Diagnostic
	diags = append(diags, pre.Diagnostics...)
	diags = append(diags, vis.Diagnostics...)
	diags = append(diags, calc.Diagnostics...)
	diags = append(diags, rec.Diagnostics...)

	res := newResult(e.fields, vis, calc.Values, rec.Values, pre.Values, diags, time.Since(start))
	logger.DebugContext(ctx, "evaluation complete",
		"id", res.ID(), "visible", len(vis.Visible), "calculated", len(calc.Values),
		"passes", calc.Passes, "diagnostics", len(diags), "duration", res.Duration())
	return res
}

// loadInputData retrieves responses and parameters from the data provider.
func (e *Evaluator) loadInputData(ctx context.Context) (form.Responses, map[string]string, error) {
	logger := e.logger.WithGroup("loadInputData")
	if e.provider == nil {
		logger.WarnContext(ctx, "no data provider available, using empty data")
		return form.Responses{}, map[string]string{}, nil
	}

	raw, err := e.provider.GetData(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "failed to get input data from provider", "error", err)
		return nil, nil, err
	}
	if len(raw) == 0 {
		logger.WarnContext(ctx, "empty input data returned from provider")
	}
	return data.Extract(raw)
}

// Eval reads responses and URL parameters from the data provider and
// evaluates them.
func (e *Evaluator) Eval(ctx context.Context) (*Result, error) {
	responses, params, err := e.loadInputData(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get input data: %w", err)
	}
	return e.Evaluate(ctx, responses, params), nil
}

// PrepareContext stores data in ctx for a later Eval. The data provider must
// implement data.Preparer.
func (e *Evaluator) PrepareContext(ctx context.Context, d ...any) (context.Context, error) {
	logger := e.logger.WithGroup("PrepareContext")
	preparer, ok := e.provider.(data.Preparer)
	if !ok {
		logger.ErrorContext(ctx, "data provider cannot prepare context", "provider", fmt.Sprintf("%T", e.provider))
		return ctx, ErrNoPreparer
	}

	enriched, err := preparer.AddDataToContext(ctx, d...)
	if err != nil {
		logger.WarnContext(ctx, "some data could not be added to context", "error", err)
	}
	return enriched, err
}
