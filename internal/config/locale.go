package config

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"

	"github.com/goliatone/go-pricefield/pkg/locale"
)

// SupportedLocales returns the configured locale first, followed by Locales
// without duplicates.
func (c Config) SupportedLocales() ([]language.Tag, error) {
	seen := map[string]bool{}
	var tags []language.Tag
	for _, raw := range append([]string{c.Locale}, c.Locales...) {
		raw = strings.ReplaceAll(strings.TrimSpace(raw), "_", "-")
		if raw == "" {
			continue
		}
		tag, err := language.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: locale %q: %v", ErrInvalidConfig, raw, err)
		}
		tag = locale.Reduce(tag)
		if seen[tag.String()] {
			continue
		}
		seen[tag.String()] = true
		tags = append(tags, tag)
	}
	if len(tags) == 0 {
		return nil, fmt.Errorf("%w: no locale configured", ErrInvalidConfig)
	}
	return tags, nil
}

// LocaleFactory builds a formatter factory with the configured locale as
// fallback. When Locales is set the factory is limited to SupportedLocales and
// other requests get the closest supported match.
func (c Config) LocaleFactory() (*locale.Factory, error) {
	tags, err := c.SupportedLocales()
	if err != nil {
		return nil, err
	}
	if len(c.Locales) == 0 {
		return locale.NewFactory(locale.WithFallback(tags[0])), nil
	}
	return locale.NewFactory(
		locale.WithFallback(tags[0]),
		locale.WithSupported(tags...),
	), nil
}
