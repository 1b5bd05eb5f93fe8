package price_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-pricefield/pkg/model"
	"github.com/goliatone/go-pricefield/pkg/price"
)

func TestValueCallback(t *testing.T) {
	cases := []struct {
		name   string
		input  any
		want   map[string]string
		wantOK bool
	}{
		{
			name:   "empty number becomes zero",
			input:  map[string]string{"number": "", "currency_code": "USD"},
			want:   map[string]string{"number": "0", "currency_code": "USD"},
			wantOK: true,
		},
		{
			name:   "number only",
			input:  map[string]string{"number": ""},
			want:   map[string]string{"number": "0"},
			wantOK: true,
		},
		{
			name:   "passes structure through",
			input:  map[string]string{"number": "9,99", "currency_code": "EUR"},
			want:   map[string]string{"number": "9,99", "currency_code": "EUR"},
			wantOK: true,
		},
		{
			name:   "any map",
			input:  map[string]any{"number": "", "currency_code": "EUR"},
			want:   map[string]string{"number": "0", "currency_code": "EUR"},
			wantOK: true,
		},
		{name: "missing number", input: map[string]string{"currency_code": "USD"}},
		{name: "nil number", input: map[string]any{"number": nil}},
		{name: "non string number", input: map[string]any{"number": 5}},
		{name: "scalar", input: "9.99"},
		{name: "nil", input: nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := price.ValueCallback(tc.input)
			if ok != tc.wantOK {
				t.Fatalf("expected ok=%v, got %v", tc.wantOK, ok)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("value mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestValueCallback_DoesNotMutateInput(t *testing.T) {
	input := map[string]string{"number": "", "currency_code": "USD"}
	if _, ok := price.ValueCallback(input); !ok {
		t.Fatalf("expected value")
	}
	if input["number"] != "" {
		t.Fatalf("input mutated: %+v", input)
	}
}

func TestSubmitted(t *testing.T) {
	got := price.Submitted(map[string]string{"number": "1", "currency_code": "USD"})
	if diff := cmp.Diff(model.Price{Number: "1", CurrencyCode: "USD"}, got); diff != "" {
		t.Fatalf("price mismatch (-want +got):\n%s", diff)
	}
}
