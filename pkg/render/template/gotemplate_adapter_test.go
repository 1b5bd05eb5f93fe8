package template_test

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-pricefield/pkg/model"
	"github.com/goliatone/go-pricefield/pkg/render/template/gotemplate"
	"github.com/goliatone/go-pricefield/pkg/testsupport"
)

var templatesFS = fstest.MapFS{
	"amount.tpl":     {Data: []byte(`<input name="{{ state.name|input_name:"number" }}" id="{{ state.name|field_id }}-number" value="{{ state.amount.value }}">`)},
	"use-global.tpl": {Data: []byte(`locale={{ settings.locale }}`)},
	"use-filter.tpl": {Data: []byte(`{{ code|shout }}`)},
}

func TestGoTemplateEngine_RenderTemplate(t *testing.T) {
	engine := newEngine(t)
	state := model.FieldState{
		Name:   "list_price",
		Amount: model.AmountField{Name: model.NumberKey, Value: "9,99"},
	}

	result, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("amount", map[string]any{"state": state}, w)
	})

	want := `<input name="list_price[number]" id="list-price-number" value="9,99">`
	if result != want {
		t.Fatalf("render template mismatch result\nwant: %q\n got: %q", want, result)
	}
	if written != want {
		t.Fatalf("render template mismatch writer\nwant: %q\n got: %q", want, written)
	}
}

func TestGoTemplateEngine_GlobalContext(t *testing.T) {
	engine := newEngine(t)
	if err := engine.GlobalContext(map[string]any{
		"settings": map[string]any{"locale": "de"},
	}); err != nil {
		t.Fatalf("global context: %v", err)
	}

	result, _ := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("use-global", nil, w)
	})
	if result != "locale=de" {
		t.Fatalf("expected global value, got %q", result)
	}
}

func TestGoTemplateEngine_RegisterFilter(t *testing.T) {
	engine := newEngine(t)
	err := engine.RegisterFilter("shout", func(input any, _ any) (any, error) {
		if input == nil {
			return "", nil
		}
		return fmt.Sprintf("%s!", strings.ToUpper(fmt.Sprint(input))), nil
	})
	if err != nil {
		t.Fatalf("register filter: %v", err)
	}
	if err := engine.RegisterFilter("shout", func(any, any) (any, error) { return nil, nil }); err == nil {
		t.Fatalf("expected duplicate filter registration to fail")
	}

	result, _ := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("use-filter", map[string]any{"code": "eur"}, w)
	})
	if result != "EUR!" {
		t.Fatalf("expected EUR!, got %q", result)
	}
}

func TestGoTemplateEngine_RenderString(t *testing.T) {
	engine := newEngine(t)

	result, err := engine.Render(`{{ currency.value|trim }}`, map[string]any{
		"currency": model.CurrencyField{Value: " USD "},
	})
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if result != "USD" {
		t.Fatalf("expected USD, got %q", result)
	}
}

func TestGoTemplateEngine_RequiresSource(t *testing.T) {
	if _, err := gotemplate.New(gotemplate.WithGoTemplateOptions()); err == nil {
		t.Fatalf("expected error without base dir or fs")
	}
}

func TestGoTemplateEngine_BaseDirTakesPrecedence(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "amount.tpl"), []byte(`override {{ code }}`), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}
	engine, err := gotemplate.New(gotemplate.WithBaseDir(dir), gotemplate.WithFS(templatesFS))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	result, err := engine.RenderTemplate("amount.tpl", map[string]any{"code": "CHF"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "override CHF" {
		t.Fatalf("expected base dir template, got %q", result)
	}
	if _, err := engine.RenderTemplate("use-global", nil); err != nil {
		t.Fatalf("expected fs fallback: %v", err)
	}
}

func newEngine(t *testing.T) *gotemplate.Engine {
	t.Helper()

	engine, err := gotemplate.New(gotemplate.WithFS(templatesFS))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}
