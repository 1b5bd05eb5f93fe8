package render

import (
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-pricefield/pkg/price"
)

// RenderOptions describe per-request data that renderers can use to customise
// their output without changing the built field state.
type RenderOptions struct {
	// Values re-populates sub-fields keyed by dotted path (for example
	// "price.number"), typically with the raw text of a rejected submission.
	Values map[string]string
	// Errors surfaces server-side validation feedback keyed by dotted path.
	// OutcomeErrors produces this map from a validation outcome.
	Errors map[string][]string
	// HiddenFields are emitted alongside the element, for example a CSRF
	// token.
	HiddenFields []HiddenField
	// Locale is passed to Translator.
	Locale string
	// Translator localizes chrome strings such as the currency select title.
	Translator price.Translator
	// OnMissing decides the string used when a translation is missing.
	OnMissing MissingTranslationHandler
	// Theme carries the resolved go-theme selection. Renderers read partial
	// overrides, CSS variables and the asset resolver from it.
	Theme *theme.RendererConfig
}

// ValueFor returns the re-populated value for path, falling back to fallback.
func (o RenderOptions) ValueFor(path, fallback string) string {
	if value, ok := o.Values[path]; ok {
		return value
	}
	return fallback
}

// ErrorsFor returns the messages attached to path.
func (o RenderOptions) ErrorsFor(path string) []string {
	return normalizeMessages(o.Errors[path])
}
