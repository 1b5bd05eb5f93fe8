package render

import (
	"strings"

	"github.com/goliatone/go-pricefield/pkg/price"
)

// TemplateI18nConfig configures template-level translation helpers.
type TemplateI18nConfig struct {
	// FuncName customizes the translator helper name (defaults to "translate").
	FuncName string
	// OnMissing controls the string returned when a translation is missing.
	OnMissing MissingTranslationHandler
}

// TemplateI18nFuncs returns helpers suitable for injecting into template
// engines. The helper signature is:
//
//	translate(locale, key, fallback) string
func TemplateI18nFuncs(t price.Translator, cfg TemplateI18nConfig) map[string]any {
	name := strings.TrimSpace(cfg.FuncName)
	if name == "" {
		name = "translate"
	}
	onMissing := cfg.OnMissing
	if onMissing == nil {
		onMissing = missingTranslationDefault
	}

	return map[string]any{
		name: func(locale, key, fallback string) string {
			key = strings.TrimSpace(key)
			if key == "" {
				return fallback
			}
			return translate(locale, key, fallback, t, onMissing)
		},
	}
}
