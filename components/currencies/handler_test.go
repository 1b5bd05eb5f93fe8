package currencies

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-pricefield/pkg/locale"
	"github.com/goliatone/go-pricefield/pkg/model"
	"github.com/goliatone/go-pricefield/pkg/price"
	"github.com/goliatone/go-pricefield/pkg/testsupport"
)

type handlerResponse struct {
	Data []Option `json:"data"`
}

func testHandler(t *testing.T, fns ...OptionFn) http.Handler {
	t.Helper()

	base := []OptionFn{
		WithCatalog(testsupport.Catalog(t, "USD", "EUR", "JPY", "BHD")),
		WithFormatters(func(tag string) (price.NumberFormatter, error) {
			if tag == "xx-invalid-" {
				return nil, locale.ErrInvalidLocale
			}
			return testsupport.Formatter(tag), nil
		}),
	}
	return NewHandler(append(base, fns...)...)
}

func serve(h http.Handler, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandler_ListsCatalog(t *testing.T) {
	rec := serve(testHandler(t), http.MethodGet, "/api/currencies")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Fatalf("expected JSON content-type, got %q", ct)
	}

	var payload handlerResponse
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	want := []Option{
		{Value: "USD", Label: "USD", FractionDigits: 2},
		{Value: "EUR", Label: "EUR", FractionDigits: 2},
		{Value: "JPY", Label: "JPY", FractionDigits: 0},
		{Value: "BHD", Label: "BHD", FractionDigits: 3},
	}
	if diff := cmp.Diff(want, payload.Data); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
}

func TestHandler_SearchAndLimit(t *testing.T) {
	rec := serve(testHandler(t, WithMaxLimit(1)), http.MethodGet, "/api/currencies?q=u&limit=5")

	var payload handlerResponse
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(payload.Data) != 1 || payload.Data[0].Value != "USD" {
		t.Fatalf("expected USD prefix match first, got %#v", payload.Data)
	}
}

func TestHandler_NoMatchesReturnsEmptyArray(t *testing.T) {
	rec := serve(testHandler(t), http.MethodGet, "/api/currencies?q=zzz")

	var payload handlerResponse
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if payload.Data == nil || len(payload.Data) != 0 {
		t.Fatalf("expected empty data array, got %#v", payload.Data)
	}
}

func TestHandler_Format(t *testing.T) {
	rec := serve(testHandler(t), http.MethodGet, "/api/currencies/format?value=1234.5&locale=de")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var payload formatResponse
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	want := FormatResult{Value: "1234.5", Text: "1234,5", Locale: "de"}
	if diff := cmp.Diff(want, payload.Data); diff != "" {
		t.Fatalf("format mismatch (-want +got):\n%s", diff)
	}
}

func TestHandler_FormatRequiresValue(t *testing.T) {
	rec := serve(testHandler(t), http.MethodGet, "/api/currencies/format")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestHandler_FormatRejectsNonCanonical(t *testing.T) {
	for _, value := range []string{"1e3", "1e50000000", "abc", "1,5"} {
		rec := serve(testHandler(t), http.MethodGet, "/api/currencies/format?value="+url.QueryEscape(value))
		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected status 422 for %q, got %d", value, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), `"error"`) {
			t.Fatalf("expected error payload for %q, got %s", value, rec.Body.String())
		}
	}
}

func TestHandler_Parse(t *testing.T) {
	cases := []struct {
		name   string
		target string
		status int
		want   model.Price
		errMsg string
	}{
		{
			name:   "localized text",
			target: "/api/currencies/parse?text=9,99&currency=eur&locale=de",
			status: http.StatusOK,
			want:   model.Price{Number: "9.99", CurrencyCode: "EUR"},
		},
		{
			name:   "excess precision",
			target: "/api/currencies/parse?text=100.5&currency=JPY",
			status: http.StatusUnprocessableEntity,
		},
		{
			name:   "not numeric",
			target: "/api/currencies/parse?text=abc&currency=USD",
			status: http.StatusUnprocessableEntity,
		},
		{
			name:   "unknown currency",
			target: "/api/currencies/parse?text=1&currency=GBP",
			status: http.StatusUnprocessableEntity,
			errMsg: "currencies: unknown currency GBP",
		},
		{
			name:   "invalid locale",
			target: "/api/currencies/parse?text=1&currency=USD&locale=xx-invalid-",
			status: http.StatusBadRequest,
		},
	}

	h := testHandler(t)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := serve(h, http.MethodGet, tc.target)
			if rec.Code != tc.status {
				t.Fatalf("expected status %d, got %d: %s", tc.status, rec.Code, rec.Body.String())
			}
			if tc.status == http.StatusOK {
				var payload parseResponse
				if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
					t.Fatalf("failed to decode response: %v", err)
				}
				if diff := cmp.Diff(tc.want, payload.Data); diff != "" {
					t.Fatalf("parse mismatch (-want +got):\n%s", diff)
				}
				return
			}
			var payload errorResponse
			if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
				t.Fatalf("failed to decode error: %v", err)
			}
			if payload.Error == "" {
				t.Fatalf("expected error message")
			}
			if tc.errMsg != "" && payload.Error != tc.errMsg {
				t.Fatalf("expected %q, got %q", tc.errMsg, payload.Error)
			}
		})
	}
}

func TestHandler_GuardRejects(t *testing.T) {
	h := testHandler(t, WithGuard(func(r *http.Request) error {
		return StatusError{Code: http.StatusUnauthorized}
	}))

	for _, target := range []string{"/api/currencies", "/api/currencies/parse?text=1&currency=USD"} {
		if rec := serve(h, http.MethodGet, target); rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected status 401, got %d", target, rec.Code)
		}
	}
}

func TestHandler_MethodNotAllowed(t *testing.T) {
	rec := serve(testHandler(t), http.MethodPost, "/api/currencies/format?value=1")

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected status 405, got %d", rec.Code)
	}
	if allow := rec.Header().Get("Allow"); allow != "GET, HEAD" {
		t.Fatalf("unexpected Allow header %q", allow)
	}
}

func TestHandler_HeadHasNoBody(t *testing.T) {
	rec := serve(testHandler(t), http.MethodHead, "/api/currencies")
	if rec.Code != http.StatusOK || rec.Body.Len() != 0 {
		t.Fatalf("expected empty 200, got %d with %d bytes", rec.Code, rec.Body.Len())
	}
}

func TestHandler_MissingCatalog(t *testing.T) {
	rec := serve(NewHandler(), http.MethodGet, "/api/currencies")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}
}
