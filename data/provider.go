// Package data supplies responses and URL parameters to an evaluator. A
// Provider returns a map with up to two entries: ResponsesKey holding the
// answers and ParamsKey holding raw query parameters.
package data

import (
	"context"
)

// Provider retrieves evaluation input.
type Provider interface {
	// GetData returns the evaluation input for ctx.
	GetData(ctx context.Context) (map[string]any, error)
}

// Preparer is a Provider that can also store input in a context, separating
// data preparation from evaluation.
type Preparer interface {
	Provider
	AddDataToContext(ctx context.Context, data ...any) (context.Context, error)
}
