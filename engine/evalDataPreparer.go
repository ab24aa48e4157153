package engine

import (
	"context"
)

// EvalDataPreparer prepares evaluation input by enriching a context. This
// separates gathering responses and URL parameters from evaluating them, so
// the two steps can happen in different places.
type EvalDataPreparer interface {
	// PrepareContext stores data in ctx through the evaluator's data provider.
	//
	// The variadic data parameter accepts *http.Request (its query becomes
	// prefill parameters), url.Values, map[string]string parameters, and
	// map[string]any or form.Responses answers.
	//
	// Example:
	//  enrichedCtx, err := evaluator.PrepareContext(ctx, request, answers)
	//  if err != nil {
	//      return err
	//  }
	//  result, err := evaluator.Eval(enrichedCtx)
	PrepareContext(ctx context.Context, data ...any) (context.Context, error)
}

// FormEvaluator evaluates a form against input read from a context.
type FormEvaluator interface {
	Eval(ctx context.Context) (*Result, error)
}

// EvaluatorWithPrep combines FormEvaluator and EvalDataPreparer.
type EvaluatorWithPrep interface {
	FormEvaluator
	EvalDataPreparer
}
