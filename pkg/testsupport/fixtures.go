// Package testsupport holds fixtures shared by the package tests: ISO
// catalogs, fixed-symbol formatters and models built from them.
package testsupport

import (
	"bytes"
	"context"
	"io"
	"testing"

	"golang.org/x/text/language"

	"github.com/goliatone/go-pricefield/pkg/catalog"
	"github.com/goliatone/go-pricefield/pkg/locale"
	pkgmodel "github.com/goliatone/go-pricefield/pkg/model"
	"github.com/goliatone/go-pricefield/pkg/price"
)

// Catalog returns an ISO backed catalog for the supplied codes, failing the
// test on unknown codes.
func Catalog(t *testing.T, codes ...string) *catalog.Static {
	t.Helper()

	cat, err := catalog.ISO(codes...)
	if err != nil {
		t.Fatalf("iso catalog: %v", err)
	}
	return cat
}

// Formatter returns a formatter with fixed symbols for the common test
// locales so assertions do not depend on CLDR data: "de" uses comma decimals
// and dot grouping, anything else uses DefaultSymbols.
func Formatter(tag string) *locale.Formatter {
	switch tag {
	case "de":
		return locale.NewWithSymbols(language.German, locale.Symbols{Decimal: ",", Group: ".", Minus: "-"})
	default:
		return locale.NewWithSymbols(language.English, locale.DefaultSymbols())
	}
}

// Model wires a price model over an ISO catalog and a fixed-symbol formatter.
func Model(t *testing.T, tag string, codes ...string) *price.Model {
	t.Helper()

	m, err := price.New(Catalog(t, codes...), Formatter(tag))
	if err != nil {
		t.Fatalf("price model: %v", err)
	}
	return m
}

// MustBuild builds a field state through Model, failing the test on error.
func MustBuild(t *testing.T, cfg price.Config, tag string, codes ...string) pkgmodel.FieldState {
	t.Helper()

	state, err := Model(t, tag, codes...).Build(cfg)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return state
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}
	return out, buf.String()
}
