package render_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-pricefield/pkg/model"
	"github.com/goliatone/go-pricefield/pkg/render"
)

func TestRegistry(t *testing.T) {
	registry := render.NewRegistry(render.JSONRenderer{})

	if err := registry.Register(render.JSONRenderer{}); err == nil {
		t.Fatalf("expected duplicate registration to fail")
	}
	if _, err := registry.Get("vanilla"); err == nil {
		t.Fatalf("expected missing renderer error")
	}
	renderer, err := registry.Resolve("", "json")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if renderer.Name() != "json" {
		t.Fatalf("expected json renderer, got %q", renderer.Name())
	}
	if diff := cmp.Diff([]string{"json"}, registry.List()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
}

func TestJSONRenderer(t *testing.T) {
	state := model.FieldState{
		Name:     "price",
		Mode:     model.ModeSingleCurrency,
		Amount:   model.AmountField{Name: model.NumberKey, Value: "9.99", Suffix: "USD"},
		Currency: model.CurrencyField{Name: model.CurrencyCodeKey, Kind: model.CurrencyKindHidden, Value: "USD"},
	}

	out, err := render.JSONRenderer{}.Render(context.Background(), state, render.RenderOptions{
		Errors: map[string][]string{"price.number": {"Price is not numeric."}},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	var decoded struct {
		Element model.FieldState     `json:"element"`
		Hidden  []render.HiddenField `json:"hidden"`
		Errors  map[string][]string  `json:"errors"`
	}
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if diff := cmp.Diff(state, decoded.Element); diff != "" {
		t.Fatalf("element mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]render.HiddenField{{Name: "price[currency_code]", Value: "USD"}}, decoded.Hidden); diff != "" {
		t.Fatalf("hidden mismatch (-want +got):\n%s", diff)
	}
	if len(decoded.Errors["price.number"]) != 1 {
		t.Fatalf("expected errors to round-trip, got %+v", decoded.Errors)
	}
}
