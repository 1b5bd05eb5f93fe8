package locale_test

import (
	"errors"
	"sync"
	"testing"

	"golang.org/x/text/language"

	"github.com/goliatone/go-pricefield/pkg/locale"
)

func TestFactory_BlankLocaleUsesFallback(t *testing.T) {
	factory := locale.NewFactory(locale.WithFallback(language.German))

	formatter, err := factory.Formatter("  ")
	if err != nil {
		t.Fatalf("formatter: %v", err)
	}
	if formatter.Locale() != language.German {
		t.Fatalf("expected fallback de, got %s", formatter.Locale())
	}
}

func TestFactory_AcceptsUnderscoreLocales(t *testing.T) {
	factory := locale.NewFactory()

	formatter, err := factory.Formatter("de_CH")
	if err != nil {
		t.Fatalf("formatter: %v", err)
	}
	if got := formatter.Locale().String(); got != "de-CH" {
		t.Fatalf("expected de-CH, got %s", got)
	}
}

func TestFactory_InvalidLocale(t *testing.T) {
	factory := locale.NewFactory()
	if _, err := factory.Formatter("not a locale!"); !errors.Is(err, locale.ErrInvalidLocale) {
		t.Fatalf("expected ErrInvalidLocale, got %v", err)
	}
}

func TestFactory_MatchesSupported(t *testing.T) {
	factory := locale.NewFactory(
		locale.WithFallback(language.English),
		locale.WithSupported(language.English, language.German),
	)

	formatter, err := factory.Formatter("de-AT")
	if err != nil {
		t.Fatalf("formatter: %v", err)
	}
	if formatter.Locale() != language.German {
		t.Fatalf("expected de, got %s", formatter.Locale())
	}

	formatter, err = factory.Formatter("ja")
	if err != nil {
		t.Fatalf("formatter: %v", err)
	}
	if formatter.Locale() != language.English {
		t.Fatalf("expected fallback en, got %s", formatter.Locale())
	}
}

func TestFactory_CachesFormatters(t *testing.T) {
	factory := locale.NewFactory()

	var (
		wg      sync.WaitGroup
		results = make([]*locale.Formatter, 8)
	)
	for i := range results {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			formatter, err := factory.Formatter("en")
			if err != nil {
				t.Errorf("formatter: %v", err)
				return
			}
			results[idx] = formatter
		}(i)
	}
	wg.Wait()

	for i, formatter := range results {
		if formatter != results[0] {
			t.Fatalf("expected cached formatter at %d", i)
		}
	}
}

func TestFactory_PrivateUseVariantsShareFormatter(t *testing.T) {
	factory := locale.NewFactory()

	first, err := factory.Formatter("en-x-p1")
	if err != nil {
		t.Fatalf("formatter: %v", err)
	}
	for _, tag := range []string{"en-x-p2", "en-x-p3", "en-u-nu-latn", "en"} {
		formatter, err := factory.Formatter(tag)
		if err != nil {
			t.Fatalf("formatter %s: %v", tag, err)
		}
		if formatter != first {
			t.Fatalf("expected %s to reuse the en formatter", tag)
		}
	}
	if first.Locale() != language.English {
		t.Fatalf("expected en, got %s", first.Locale())
	}
}

func TestReduce(t *testing.T) {
	cases := map[string]string{
		"de-CH-u-nu-latn":  "de-CH",
		"sr-Latn-RS-x-foo": "sr-Latn-RS",
		"en-US-t-de":       "en-US",
		"fr":               "fr",
	}
	for in, want := range cases {
		if got := locale.Reduce(language.MustParse(in)).String(); got != want {
			t.Fatalf("Reduce(%s): expected %s, got %s", in, want, got)
		}
	}
}
