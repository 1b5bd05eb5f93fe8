package pricefield_test

import (
	"errors"
	"io/fs"
	"net/url"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-pricefield"
	"github.com/goliatone/go-pricefield/pkg/catalog"
	"github.com/goliatone/go-pricefield/pkg/locale"
	"github.com/goliatone/go-pricefield/pkg/price"
	"github.com/goliatone/go-pricefield/pkg/renderers/vanilla"
	"github.com/goliatone/go-pricefield/pkg/testsupport"
)

func newService(t *testing.T, codes ...string) *pricefield.Service {
	t.Helper()

	svc, err := pricefield.New(testsupport.Catalog(t, codes...), locale.NewFactory())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestNew_RequiresCatalog(t *testing.T) {
	if _, err := pricefield.New(nil, nil); !errors.Is(err, price.ErrMissingCatalog) {
		t.Fatalf("expected ErrMissingCatalog, got %v", err)
	}
}

func TestService_DefaultRenderers(t *testing.T) {
	svc := newService(t, "USD")
	if diff := cmp.Diff([]string{"json", "vanilla"}, svc.Renderers().List()); diff != "" {
		t.Fatalf("renderers mismatch (-want +got):\n%s", diff)
	}
}

func TestService_RenderVanilla(t *testing.T) {
	svc := newService(t, "USD", "EUR")

	out, err := svc.Render(testsupport.Context(), pricefield.RenderRequest{
		Locale: "en",
		Config: pricefield.Config{Title: "List price"},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)
	for _, fragment := range []string{`name="price[number]"`, `<select`, `<option value="EUR">EUR</option>`} {
		if !strings.Contains(html, fragment) {
			t.Fatalf("expected %q in output\n%s", fragment, html)
		}
	}
}

func TestService_RenderUnknownRenderer(t *testing.T) {
	svc := newService(t, "USD")

	_, err := svc.Render(testsupport.Context(), pricefield.RenderRequest{Renderer: "preact"})
	if err == nil || !strings.Contains(err.Error(), `renderer "preact" not found`) {
		t.Fatalf("expected unknown renderer error, got %v", err)
	}
}

func TestService_CustomRenderers(t *testing.T) {
	html, err := vanilla.New(vanilla.WithEmptyOptionLabel("Pick one"))
	if err != nil {
		t.Fatalf("vanilla: %v", err)
	}
	svc, err := pricefield.New(catalog.MustStatic(testsupport.Catalog(t, "USD", "EUR").All()...), nil,
		pricefield.WithRenderers(html),
	)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	out, err := svc.Render(testsupport.Context(), pricefield.RenderRequest{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(out), "Pick one") {
		t.Fatalf("expected custom renderer output\n%s", out)
	}
}

func TestService_SubmitValid(t *testing.T) {
	svc := newService(t, "USD", "EUR")

	sub, err := svc.Submit("en", pricefield.Config{}, url.Values{
		"price[number]":        {"1,234.50"},
		"price[currency_code]": {"EUR"},
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !sub.Posted || !sub.Outcome.OK() {
		t.Fatalf("expected accepted submission, got %+v", sub)
	}
	if diff := cmp.Diff("1234.5", sub.Outcome.Price.Number); diff != "" {
		t.Fatalf("parsed number mismatch (-want +got):\n%s", diff)
	}
	if len(sub.Errors) != 0 {
		t.Fatalf("expected no errors, got %v", sub.Errors)
	}
}

func TestService_SubmitBlankAmountSkipsValidation(t *testing.T) {
	svc := newService(t, "USD")

	for _, number := range []string{"", "   "} {
		sub, err := svc.Submit("en", pricefield.Config{}, url.Values{
			"price[number]":        {number},
			"price[currency_code]": {"XXX"},
		})
		if err != nil {
			t.Fatalf("submit: %v", err)
		}
		if !sub.Posted || !sub.Outcome.OK() || len(sub.Errors) != 0 {
			t.Fatalf("expected blank amount %q to pass, got %+v", number, sub)
		}
	}

	sub, err := svc.Submit("en", pricefield.Config{}, url.Values{
		"price[number]":        {"0"},
		"price[currency_code]": {"XXX"},
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if sub.Outcome.OK() {
		t.Fatalf("expected typed zero with unknown currency to be rejected")
	}
}

func TestService_SubmitInvalidRerenders(t *testing.T) {
	svc := newService(t, "USD")
	cfg := pricefield.Config{Title: "Fee"}

	sub, err := svc.Submit("en", cfg, url.Values{
		"price[number]":        {"abc"},
		"price[currency_code]": {"USD"},
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if sub.Outcome.OK() {
		t.Fatalf("expected rejected submission")
	}
	if diff := cmp.Diff(map[string][]string{"price.number": {"Fee is not numeric."}}, sub.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}

	out, err := svc.Render(testsupport.Context(), pricefield.RenderRequest{
		Locale:  "en",
		Config:  cfg,
		Options: sub.RenderOptions(),
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(out), `value="abc"`) || !strings.Contains(string(out), "<li>Fee is not numeric.</li>") {
		t.Fatalf("expected re-rendered input and error\n%s", out)
	}
}

func TestService_RenderErrorPayload(t *testing.T) {
	svc := newService(t, "USD")

	out, err := svc.Render(testsupport.Context(), pricefield.RenderRequest{
		Locale: "en",
		ErrorPayload: map[string][]string{
			"/body/price/number": {"Price exceeds the limit."},
			"non_field_errors":   {"Quote expired."},
		},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, fragment := range []string{"<li>Price exceeds the limit.</li>", "Quote expired."} {
		if !strings.Contains(string(out), fragment) {
			t.Fatalf("expected %q in output\n%s", fragment, out)
		}
	}
}

func TestService_SubmitNotPosted(t *testing.T) {
	svc := newService(t, "USD")

	sub, err := svc.Submit("en", pricefield.Config{}, url.Values{"other": {"1"}})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if sub.Posted {
		t.Fatalf("expected no submission, got %+v", sub)
	}
}

func TestService_ForInvalidLocale(t *testing.T) {
	svc := newService(t, "USD")
	if _, err := svc.For("!!"); !errors.Is(err, locale.ErrInvalidLocale) {
		t.Fatalf("expected ErrInvalidLocale, got %v", err)
	}
}

func TestEmbeddedTemplates(t *testing.T) {
	if _, err := fs.Stat(pricefield.EmbeddedTemplates(), vanilla.DefaultTemplate); err != nil {
		t.Fatalf("expected default template: %v", err)
	}
	if _, err := fs.Stat(pricefield.AssetsFS(), vanilla.StylesheetName); err != nil {
		t.Fatalf("expected stylesheet: %v", err)
	}
}
