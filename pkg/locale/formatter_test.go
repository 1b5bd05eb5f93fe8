package locale_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"

	"github.com/goliatone/go-pricefield/pkg/locale"
	"github.com/goliatone/go-pricefield/pkg/model"
)

var (
	usd = model.Currency{Code: "USD", FractionDigits: 2, Symbol: "$"}
	eur = model.Currency{Code: "EUR", FractionDigits: 2}
	jpy = model.Currency{Code: "JPY", FractionDigits: 0}
)

func germanFormatter() *locale.Formatter {
	return locale.NewWithSymbols(language.German, locale.Symbols{Decimal: ",", Group: ".", Minus: "-"})
}

func TestDiscoverSymbols(t *testing.T) {
	cases := []struct {
		tag  language.Tag
		want locale.Symbols
	}{
		{tag: language.English, want: locale.Symbols{Decimal: ".", Group: ",", Minus: "-", Plus: "+", Zero: '0'}},
		{tag: language.German, want: locale.Symbols{Decimal: ",", Group: ".", Minus: "-", Plus: "+", Zero: '0'}},
	}
	for _, tc := range cases {
		t.Run(tc.tag.String(), func(t *testing.T) {
			if diff := cmp.Diff(tc.want, locale.DiscoverSymbols(tc.tag)); diff != "" {
				t.Fatalf("symbols mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	en := locale.NewWithSymbols(language.English, locale.DefaultSymbols())
	de := germanFormatter()

	cases := []struct {
		name      string
		formatter *locale.Formatter
		value     string
		opts      locale.FormatOptions
		want      string
	}{
		{name: "keeps min digits", formatter: en, value: "9.99", opts: locale.FormatOptions{MinFractionDigits: 2, MaxFractionDigits: 6}, want: "9.99"},
		{name: "zero min keeps significant digits", formatter: en, value: "9.99", opts: locale.FormatOptions{MinFractionDigits: 0, MaxFractionDigits: 6}, want: "9.99"},
		{name: "strips trailing zeros", formatter: en, value: "10.00", opts: locale.FormatOptions{MinFractionDigits: 0, MaxFractionDigits: 6}, want: "10"},
		{name: "strips partially", formatter: en, value: "10.500", opts: locale.FormatOptions{MinFractionDigits: 0, MaxFractionDigits: 6}, want: "10.5"},
		{name: "pads to min", formatter: en, value: "10", opts: locale.FormatOptions{MinFractionDigits: 2, MaxFractionDigits: 6}, want: "10.00"},
		{name: "rounds at max", formatter: en, value: "1.23456789", opts: locale.FormatOptions{MinFractionDigits: 0, MaxFractionDigits: 6}, want: "1.234568"},
		{name: "negative", formatter: en, value: "-5", opts: locale.FormatOptions{MinFractionDigits: 2, MaxFractionDigits: 6}, want: "-5.00"},
		{name: "negative rounding to zero", formatter: en, value: "-0.0000001", opts: locale.FormatOptions{MinFractionDigits: 2, MaxFractionDigits: 6}, want: "0.00"},
		{name: "grouping", formatter: en, value: "1234567.5", opts: locale.FormatOptions{MinFractionDigits: 2, MaxFractionDigits: 6, GroupingUsed: true}, want: "1,234,567.50"},
		{name: "no grouping", formatter: en, value: "1234567.5", opts: locale.FormatOptions{MinFractionDigits: 2, MaxFractionDigits: 6}, want: "1234567.50"},
		{name: "min above max clamps", formatter: en, value: "1.5", opts: locale.FormatOptions{MinFractionDigits: 8, MaxFractionDigits: 3}, want: "1.500"},
		{name: "comma decimal", formatter: de, value: "9.99", opts: locale.FormatOptions{MinFractionDigits: 2, MaxFractionDigits: 6}, want: "9,99"},
		{name: "comma decimal grouping", formatter: de, value: "-1234.5", opts: locale.FormatOptions{MinFractionDigits: 2, MaxFractionDigits: 6, GroupingUsed: true}, want: "-1.234,50"},
		{name: "beyond float precision", formatter: en, value: "12345678901234567890.12", opts: locale.FormatOptions{MinFractionDigits: 2, MaxFractionDigits: 6}, want: "12345678901234567890.12"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.formatter.Format(tc.value, tc.opts)
			if err != nil {
				t.Fatalf("format: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestFormat_InvalidNumber(t *testing.T) {
	en := locale.NewWithSymbols(language.English, locale.DefaultSymbols())
	for _, value := range []string{"", "abc", "9,99", "1.2.3", "1e3", "1e50000000", "1E-2", ".5", "5.", "+5", "0x10", "Inf", "NaN", "--1"} {
		if _, err := en.Format(value, locale.FormatOptions{MaxFractionDigits: 6}); !errors.Is(err, locale.ErrInvalidNumber) {
			t.Fatalf("expected invalid number for %q, got %v", value, err)
		}
	}
}

func TestFormat_LocalizedDigits(t *testing.T) {
	arabic := locale.NewWithSymbols(language.Arabic, locale.Symbols{Decimal: "٫", Group: "٬", Minus: "-", Zero: '٠'})

	got, err := arabic.Format("12.5", locale.FormatOptions{MinFractionDigits: 2, MaxFractionDigits: 6})
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	if got != "١٢٫٥٠" {
		t.Fatalf("expected arabic digits, got %q", got)
	}

	parsed, err := arabic.Parse(got, model.Currency{Code: "EGP", FractionDigits: 2})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if parsed != "12.50" {
		t.Fatalf("expected 12.50, got %q", parsed)
	}
}

func TestParse(t *testing.T) {
	en := locale.NewWithSymbols(language.English, locale.DefaultSymbols())
	de := germanFormatter()
	fr := locale.NewWithSymbols(language.French, locale.Symbols{Decimal: ",", Group: " ", Minus: "-"})

	cases := []struct {
		name      string
		formatter *locale.Formatter
		text      string
		currency  model.Currency
		want      string
	}{
		{name: "plain", formatter: en, text: "9.99", currency: usd, want: "9.99"},
		{name: "grouped", formatter: en, text: "1,234.50", currency: usd, want: "1234.50"},
		{name: "integer", formatter: en, text: "10", currency: usd, want: "10"},
		{name: "keeps typed zeros", formatter: en, text: "10.00", currency: usd, want: "10.00"},
		{name: "trims surplus trailing zeros", formatter: en, text: "9.990", currency: usd, want: "9.99"},
		{name: "leading zeros", formatter: en, text: "007.5", currency: usd, want: "7.5"},
		{name: "leading decimal", formatter: en, text: ".5", currency: usd, want: "0.5"},
		{name: "trailing decimal", formatter: en, text: "5.", currency: usd, want: "5"},
		{name: "negative", formatter: en, text: "-3.25", currency: usd, want: "-3.25"},
		{name: "unicode minus", formatter: en, text: "\u22123.25", currency: usd, want: "-3.25"},
		{name: "negative zero", formatter: en, text: "-0.00", currency: usd, want: "0.00"},
		{name: "plus sign", formatter: en, text: "+5", currency: usd, want: "5"},
		{name: "surrounding space", formatter: en, text: "  9.99 ", currency: usd, want: "9.99"},
		{name: "currency code", formatter: en, text: "9.99 USD", currency: usd, want: "9.99"},
		{name: "currency symbol", formatter: en, text: "$9.99", currency: usd, want: "9.99"},
		{name: "zero digit currency", formatter: en, text: "100.0", currency: jpy, want: "100"},
		{name: "comma decimal", formatter: de, text: "9,99", currency: eur, want: "9.99"},
		{name: "comma decimal grouped", formatter: de, text: "1.234,5", currency: eur, want: "1234.5"},
		{name: "space grouping", formatter: fr, text: "1 234,56", currency: eur, want: "1234.56"},
		{name: "narrow space grouping", formatter: fr, text: "1\u202f234,56", currency: eur, want: "1234.56"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.formatter.Parse(tc.text, tc.currency)
			if err != nil {
				t.Fatalf("parse %q: %v", tc.text, err)
			}
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestParse_Rejects(t *testing.T) {
	en := locale.NewWithSymbols(language.English, locale.DefaultSymbols())
	de := germanFormatter()

	cases := []struct {
		name      string
		formatter *locale.Formatter
		text      string
		currency  model.Currency
		precision bool
	}{
		{name: "letters", formatter: en, text: "abc", currency: usd},
		{name: "empty", formatter: en, text: "   ", currency: usd},
		{name: "sign only", formatter: en, text: "-", currency: usd},
		{name: "double decimal", formatter: en, text: "1.2.3", currency: usd},
		{name: "sign after digits", formatter: en, text: "5-", currency: usd},
		{name: "comma decimal in dot locale", formatter: en, text: "9,99", currency: usd},
		{name: "short group", formatter: en, text: "1,23,456", currency: usd},
		{name: "group in fraction", formatter: en, text: "1.234,5", currency: usd},
		{name: "dot in comma locale", formatter: de, text: "9.99", currency: eur},
		{name: "exponent", formatter: en, text: "1e3", currency: usd},
		{name: "code inside number", formatter: en, text: "9USD.99", currency: usd},
		{name: "symbol inside number", formatter: en, text: "9$.99", currency: usd},
		{name: "code on both sides", formatter: en, text: "USD 9.99 USD USD", currency: usd},
		{name: "excess precision", formatter: en, text: "1.234", currency: usd, precision: true},
		{name: "fraction for zero digit currency", formatter: en, text: "100.5", currency: jpy, precision: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.formatter.Parse(tc.text, tc.currency)
			if !errors.Is(err, locale.ErrNotNumeric) {
				t.Fatalf("expected not numeric for %q, got %v", tc.text, err)
			}
			if tc.precision != errors.Is(err, locale.ErrExcessPrecision) {
				t.Fatalf("excess precision mismatch for %q: %v", tc.text, err)
			}
		})
	}
}

func TestFormatParse_RoundTrip(t *testing.T) {
	formatters := map[string]*locale.Formatter{
		"en": locale.NewWithSymbols(language.English, locale.DefaultSymbols()),
		"de": germanFormatter(),
	}
	values := []string{"0", "9.99", "10.00", "1234567.89", "-42.10", "0.05"}

	for name, formatter := range formatters {
		for _, value := range values {
			display, err := formatter.Format(value, locale.FormatOptions{MinFractionDigits: 2, MaxFractionDigits: locale.DefaultMaxFractionDigits})
			if err != nil {
				t.Fatalf("%s: format %q: %v", name, value, err)
			}
			parsed, err := formatter.Parse(display, usd)
			if err != nil {
				t.Fatalf("%s: parse %q: %v", name, display, err)
			}
			if !decimal.RequireFromString(parsed).Equal(decimal.RequireFromString(value)) {
				t.Fatalf("%s: round trip %q -> %q -> %q", name, value, display, parsed)
			}
		}
	}
}
