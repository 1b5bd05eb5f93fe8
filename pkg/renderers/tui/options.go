package tui

import "github.com/goliatone/go-pricefield/pkg/model"

// OutputFormat controls how collected values are serialized.
type OutputFormat string

const (
	// OutputFormatJSON emits application/json payloads.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatFormURLEncoded emits application/x-www-form-urlencoded payloads.
	OutputFormatFormURLEncoded OutputFormat = "form"
	// OutputFormatPrettyText emits a human-friendly text summary.
	OutputFormatPrettyText OutputFormat = "pretty"
)

// DefaultMaxAttempts bounds how often a rejected submission is re-prompted.
const DefaultMaxAttempts = 5

// Theme captures optional formatting hints the driver can apply when printing
// messages.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
}

// Validator reconciles a collected submission, usually price.Model.Validate
// bound to the element configuration.
type Validator func(model.Price) model.ValidationOutcome

// SubmitTransformer mutates collected values before serialization.
type SubmitTransformer func(map[string]string) (map[string]string, error)

// Option configures the TUI renderer.
type Option func(*Renderer)

// WithPromptDriver overrides the prompt driver used by the renderer.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithOutputFormat selects the output serialization format.
func WithOutputFormat(format OutputFormat) Option {
	return func(r *Renderer) {
		if format != "" {
			r.outputFormat = format
		}
	}
}

// WithValidator re-prompts the offending sub-field until validator accepts
// the submission.
func WithValidator(validator Validator) Option {
	return func(r *Renderer) {
		r.validator = validator
	}
}

// WithMaxAttempts overrides DefaultMaxAttempts.
func WithMaxAttempts(attempts int) Option {
	return func(r *Renderer) {
		if attempts > 0 {
			r.maxAttempts = attempts
		}
	}
}

// WithSubmitTransformer allows callers to mutate collected values prior to
// serialization.
func WithSubmitTransformer(fn SubmitTransformer) Option {
	return func(r *Renderer) {
		r.submitTransformer = fn
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(r *Renderer) {
		r.theme = theme
	}
}
