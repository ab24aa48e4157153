package data

import (
	"context"
	"fmt"
	"maps"
)

// CompositeProvider merges several providers. Answers and parameters are
// merged key by key; later providers win.
type CompositeProvider struct {
	providers []Provider
}

// NewCompositeProvider creates a CompositeProvider querying providers in order.
func NewCompositeProvider(providers ...Provider) *CompositeProvider {
	return &CompositeProvider{providers: providers}
}

// GetData implements Provider.
func (p *CompositeProvider) GetData(ctx context.Context) (map[string]any, error) {
	result := make(map[string]any)
	responses := make(map[string]any)
	params := make(map[string]string)

	for i, provider := range p.providers {
		if provider == nil {
			continue
		}
		d, err := provider.GetData(ctx)
		if err != nil {
			return nil, fmt.Errorf("error from provider %d: %w", i, err)
		}
		for k, v := range d {
			switch k {
			case ResponsesKey:
				maps.Copy(responses, responseMap(v))
			case ParamsKey:
				maps.Copy(params, paramMap(v))
			default:
				result[k] = v
			}
		}
	}

	result[ResponsesKey] = responses
	result[ParamsKey] = params
	return result, nil
}
