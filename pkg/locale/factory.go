package locale

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/text/language"
)

// ErrInvalidLocale is returned when a locale string is not a valid BCP 47 tag.
var ErrInvalidLocale = errors.New("locale: invalid locale")

// Factory hands out formatters per locale, caching them by tag. When a
// supported list is configured, requested locales are matched against it and
// unmatched requests get the fallback.
type Factory struct {
	mu        sync.RWMutex
	cache     map[string]*Formatter
	fallback  language.Tag
	supported []language.Tag
	matcher   language.Matcher
}

// FactoryOption configures a Factory.
type FactoryOption func(*Factory)

// WithFallback sets the locale used for blank or unmatched requests.
func WithFallback(tag language.Tag) FactoryOption {
	return func(f *Factory) {
		if f == nil {
			return
		}
		f.fallback = tag
	}
}

// WithSupported restricts formatters to the supplied locales.
func WithSupported(tags ...language.Tag) FactoryOption {
	return func(f *Factory) {
		if f == nil {
			return
		}
		f.supported = append([]language.Tag(nil), tags...)
	}
}

// NewFactory builds a factory. The fallback defaults to English.
func NewFactory(fns ...FactoryOption) *Factory {
	f := &Factory{
		cache:    make(map[string]*Formatter),
		fallback: language.English,
	}
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(f)
	}
	if len(f.supported) > 0 {
		f.matcher = language.NewMatcher(f.supported)
	}
	return f
}

// Formatter returns the formatter for locale. Underscore separated locales
// such as "de_CH" are accepted. Extensions, variants and private use subtags
// are dropped, so "en-x-a" and "en-u-nu-latn" share the "en" formatter.
func (f *Factory) Formatter(locale string) (*Formatter, error) {
	tag, err := f.resolve(locale)
	if err != nil {
		return nil, err
	}
	key := tag.String()

	f.mu.RLock()
	if cached, ok := f.cache[key]; ok {
		f.mu.RUnlock()
		return cached, nil
	}
	f.mu.RUnlock()

	f.mu.Lock()
	defer f.mu.Unlock()
	if cached, ok := f.cache[key]; ok {
		return cached, nil
	}
	formatter := New(tag)
	f.cache[key] = formatter
	return formatter, nil
}

// Reduce keeps the language, script and region subtags of tag.
func Reduce(tag language.Tag) language.Tag {
	base, script, region := tag.Raw()
	reduced, err := language.Compose(base, script, region)
	if err != nil {
		return tag
	}
	return reduced
}

func (f *Factory) resolve(locale string) (language.Tag, error) {
	locale = strings.ReplaceAll(strings.TrimSpace(locale), "_", "-")
	if locale == "" {
		return f.fallback, nil
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return language.Tag{}, fmt.Errorf("%w: %q: %v", ErrInvalidLocale, locale, err)
	}
	if f.matcher == nil {
		return Reduce(tag), nil
	}
	_, idx, confidence := f.matcher.Match(tag)
	if confidence == language.No || idx < 0 || idx >= len(f.supported) {
		return f.fallback, nil
	}
	return f.supported[idx], nil
}
