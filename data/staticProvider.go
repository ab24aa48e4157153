package data

import (
	"context"
	"maps"
)

// StaticProvider returns a fixed input regardless of the context. It suits
// tests and batch evaluation where the answers are known up front.
type StaticProvider struct {
	data map[string]any
}

// NewStaticProvider creates a StaticProvider over data, which should use
// ResponsesKey and ParamsKey.
func NewStaticProvider(data map[string]any) *StaticProvider {
	if data == nil {
		data = make(map[string]any)
	}
	return &StaticProvider{data: data}
}

// NewStaticResponses is a StaticProvider holding only answers.
func NewStaticResponses(responses map[string]any) *StaticProvider {
	return NewStaticProvider(map[string]any{ResponsesKey: responses})
}

// GetData returns a copy of the static input.
func (p *StaticProvider) GetData(_ context.Context) (map[string]any, error) {
	return cloneInput(p.data), nil
}

// cloneInput copies the top level and the two known nested maps.
func cloneInput(in map[string]any) map[string]any {
	out := maps.Clone(in)
	if out == nil {
		out = make(map[string]any)
	}
	if r, ok := out[ResponsesKey].(map[string]any); ok {
		out[ResponsesKey] = maps.Clone(r)
	}
	if p, ok := out[ParamsKey].(map[string]string); ok {
		out[ParamsKey] = maps.Clone(p)
	}
	return out
}
