package price

import (
	"fmt"
	"strings"
)

// Translation keys used for validation messages. Arguments are passed in the
// order of the English fallback: title, then currency code.
const (
	MessageNotNumeric      = "price.error.not_numeric"
	MessageUnknownCurrency = "price.error.unknown_currency"
)

// DefaultTitle names the amount in messages when the element has no title.
const DefaultTitle = "Amount"

// Translator resolves message keys for a locale.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// TranslatorFunc adapts a function into a Translator.
type TranslatorFunc func(locale, key string, args ...any) (string, error)

// Translate implements Translator.
func (fn TranslatorFunc) Translate(locale, key string, args ...any) (string, error) {
	return fn(locale, key, args...)
}

var fallbackMessages = map[string]string{
	MessageNotNumeric:      "%s is not numeric.",
	MessageUnknownCurrency: "%s: the currency %s is not available.",
}

func (m *Model) message(key string, args ...any) string {
	if m.translator != nil {
		if out, err := m.translator.Translate(m.locale, key, args...); err == nil && strings.TrimSpace(out) != "" {
			return out
		}
	}
	format, ok := fallbackMessages[key]
	if !ok {
		return key
	}
	return fmt.Sprintf(format, args...)
}

func messageTitle(title string) string {
	if title = strings.TrimSpace(title); title != "" {
		return title
	}
	return DefaultTitle
}
