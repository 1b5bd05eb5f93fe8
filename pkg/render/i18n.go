package render

import (
	"errors"
	"strings"

	"github.com/goliatone/go-pricefield/pkg/model"
	"github.com/goliatone/go-pricefield/pkg/price"
)

// Translation keys for chrome strings of the price element.
const (
	CurrencyTitleKey       = "price.currency.title"
	currencyOptionKeyStart = "price.currency."
)

// ErrMissingTranslator is passed to MissingTranslationHandler when no
// translator is configured.
var ErrMissingTranslator = errors.New("render: translator not configured")

// MissingTranslationHandler decides the string used when key cannot be
// translated. args carries the fallback under the "default" key.
type MissingTranslationHandler func(locale, key string, args []any, err error) string

func missingTranslationDefault(_ string, key string, args []any, _ error) string {
	for _, arg := range args {
		if values, ok := arg.(map[string]any); ok {
			if fallback, ok := values["default"].(string); ok && strings.TrimSpace(fallback) != "" {
				return fallback
			}
		}
	}
	return key
}

// CurrencyOptionKey returns the translation key for a currency option label,
// for example "price.currency.EUR".
func CurrencyOptionKey(code string) string {
	return currencyOptionKeyStart + strings.ToUpper(strings.TrimSpace(code))
}

// LocalizeFieldState translates the currency select title and option labels
// in place. Translation failures fall back to the existing text through
// opts.OnMissing.
func LocalizeFieldState(state *model.FieldState, opts RenderOptions) {
	if state == nil || state.IsEmpty() {
		return
	}
	onMissing := opts.OnMissing
	if onMissing == nil {
		onMissing = missingTranslationDefault
	}

	if state.Currency.Title != "" {
		state.Currency.Title = translate(opts.Locale, CurrencyTitleKey, state.Currency.Title, opts.Translator, onMissing)
	}
	if len(state.Currency.Options) == 0 {
		return
	}
	options := make([]model.Option, len(state.Currency.Options))
	for i, option := range state.Currency.Options {
		option.Label = translate(opts.Locale, CurrencyOptionKey(option.Value), option.Label, opts.Translator, onMissing)
		options[i] = option
	}
	state.Currency.Options = options
}

func translate(locale, key, fallback string, t price.Translator, onMissing MissingTranslationHandler) string {
	args := []any{map[string]any{"default": fallback}}
	if t == nil {
		return onMissing(locale, key, args, ErrMissingTranslator)
	}
	result, err := t.Translate(locale, key)
	if err == nil && strings.TrimSpace(result) != "" {
		return result
	}
	return onMissing(locale, key, args, err)
}
