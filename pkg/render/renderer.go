package render

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-pricefield/pkg/model"
)

// Renderer converts a built price element into a byte representation.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, state model.FieldState, options RenderOptions) ([]byte, error)
}

// JSONRenderer emits the field state together with any per-request errors
// and values. Client-side widgets hydrate from this payload.
type JSONRenderer struct{}

var _ Renderer = JSONRenderer{}

// jsonPayload is the document JSONRenderer writes.
type jsonPayload struct {
	Element model.FieldState    `json:"element"`
	Hidden  []HiddenField       `json:"hidden,omitempty"`
	Values  map[string]string   `json:"values,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// Name implements Renderer.
func (JSONRenderer) Name() string { return "json" }

// ContentType implements Renderer.
func (JSONRenderer) ContentType() string { return "application/json; charset=utf-8" }

// Render implements Renderer.
func (JSONRenderer) Render(_ context.Context, state model.FieldState, options RenderOptions) ([]byte, error) {
	LocalizeFieldState(&state, options)
	hidden := append(StateHiddenFields(state), options.HiddenFields...)
	payload, err := json.Marshal(jsonPayload{
		Element: state,
		Hidden:  hidden,
		Values:  options.Values,
		Errors:  options.Errors,
	})
	if err != nil {
		return nil, fmt.Errorf("render: encode json: %w", err)
	}
	return payload, nil
}
