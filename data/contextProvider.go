package data

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"net/http"
	"net/url"

	"github.com/robbyt/go-formlogic/form"
	"github.com/robbyt/go-formlogic/internal/helpers"
)

// ContextProvider reads and stores evaluation input in a context.
type ContextProvider struct {
	contextKey ContextKey
}

// NewContextProvider creates a ContextProvider using contextKey.
func NewContextProvider(contextKey ContextKey) *ContextProvider {
	return &ContextProvider{contextKey: contextKey}
}

// GetData returns the input stored under the provider's key, or an empty map.
func (p *ContextProvider) GetData(ctx context.Context) (map[string]any, error) {
	if p.contextKey == "" {
		return nil, ErrEmptyContextKey
	}

	value := ctx.Value(p.contextKey)
	if value == nil {
		return make(map[string]any), nil
	}

	input, ok := value.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: expected map[string]any, got %T", ErrInvalidData, value)
	}
	return cloneInput(input), nil
}

// AddDataToContext stores input for a later GetData. Accepted items:
//   - *http.Request: its query string becomes the URL parameters
//   - url.Values: re-encoded so each value is decoded exactly once later
//   - map[string]string: raw query parameters
//   - map[string]any, form.Responses: answers
//
// Items are merged in order; later answers and parameters win. Unsupported
// items are reported in the joined error but do not prevent the rest from
// being stored. Input already in ctx under the same key is kept as a base.
//
// Example:
//
//	provider := NewContextProvider(EvalData)
//	ctx, err := provider.AddDataToContext(ctx, req, map[string]any{"name": "Ada"})
func (p *ContextProvider) AddDataToContext(ctx context.Context, data ...any) (context.Context, error) {
	if p.contextKey == "" {
		return ctx, ErrEmptyContextKey
	}

	var errz []error
	toStore, err := p.GetData(ctx)
	if err != nil {
		errz = append(errz, err)
		toStore = make(map[string]any)
	}
	responses := responseMap(toStore[ResponsesKey])
	params := paramMap(toStore[ParamsKey])

	for _, item := range data {
		switch v := item.(type) {
		case nil:
			continue
		case *http.Request:
			if v == nil {
				continue
			}
			maps.Copy(params, helpers.RequestQueryParams(v))
		case url.Values:
			for key, vals := range v {
				if len(vals) > 0 {
					params[key] = url.QueryEscape(vals[0])
				}
			}
		case map[string]string:
			maps.Copy(params, v)
		case map[string]any:
			maps.Copy(responses, v)
		case form.Responses:
			for id, val := range v {
				responses[id] = val
			}
		default:
			errz = append(errz, fmt.Errorf("%w: %T", ErrUnsupportedType, item))
		}
	}

	toStore[ResponsesKey] = responses
	toStore[ParamsKey] = params
	return context.WithValue(ctx, p.contextKey, toStore), errors.Join(errz...)
}

func responseMap(v any) map[string]any {
	out := make(map[string]any)
	switch r := v.(type) {
	case map[string]any:
		maps.Copy(out, r)
	case form.Responses:
		for id, val := range r {
			out[id] = val
		}
	}
	return out
}

func paramMap(v any) map[string]string {
	out := make(map[string]string)
	if p, ok := v.(map[string]string); ok {
		maps.Copy(out, p)
	}
	return out
}
