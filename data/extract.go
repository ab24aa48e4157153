package data

import (
	"fmt"
	"maps"

	"github.com/robbyt/go-formlogic/form"
)

// Extract splits provider output into answers and raw URL parameters.
// Missing entries yield empty maps.
func Extract(d map[string]any) (form.Responses, map[string]string, error) {
	responses := form.Responses{}
	switch r := d[ResponsesKey].(type) {
	case nil:
	case map[string]any:
		responses = form.ResponsesFrom(r)
	case form.Responses:
		responses = r.Clone()
	default:
		return nil, nil, fmt.Errorf("%w: %s must be a map, got %T", ErrInvalidData, ResponsesKey, r)
	}

	params := map[string]string{}
	switch p := d[ParamsKey].(type) {
	case nil:
	case map[string]string:
		params = maps.Clone(p)
	default:
		return nil, nil, fmt.Errorf("%w: %s must be map[string]string, got %T", ErrInvalidData, ParamsKey, p)
	}
	return responses, params, nil
}
