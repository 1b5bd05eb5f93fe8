package tui

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/goliatone/go-pricefield/pkg/model"
	"github.com/goliatone/go-pricefield/pkg/price"
	"github.com/goliatone/go-pricefield/pkg/render"
)

const defaultCurrencyTitle = "Currency"

// Renderer implements render.Renderer for terminal-driven sessions. It
// prompts for the amount, and for the currency when the element offers a
// choice, then serializes the submission.
type Renderer struct {
	driver            PromptDriver
	outputFormat      OutputFormat
	validator         Validator
	maxAttempts       int
	submitTransformer SubmitTransformer
	theme             Theme
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		outputFormat: OutputFormatJSON,
		maxAttempts:  DefaultMaxAttempts,
	}

	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}

	if r.driver == nil {
		r.driver = NewSurveyDriver(nil)
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain; charset=utf-8"
	default:
		return "application/json"
	}
}

// Render collects a submission for state. Prefilled values and server errors
// come from opts; errors are printed before the sub-field they target is
// prompted. Empty states render nothing.
func (r *Renderer) Render(ctx context.Context, state model.FieldState, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}
	if state.IsEmpty() {
		return nil, nil
	}

	render.LocalizeFieldState(&state, opts)

	amountPath := state.Path(model.NumberKey)
	currencyPath := state.Path(model.CurrencyCodeKey)

	for _, message := range opts.ErrorsFor(state.Name) {
		r.error(ctx, message)
	}

	submitted := model.Price{
		Number:       opts.ValueFor(amountPath, state.Amount.Value),
		CurrencyCode: opts.ValueFor(currencyPath, state.Currency.Value),
	}
	amountErrors := opts.ErrorsFor(amountPath)
	currencyErrors := opts.ErrorsFor(currencyPath)
	askAmount, askCurrency := true, true

	for attempt := 1; ; attempt++ {
		if askAmount {
			number, err := r.promptAmount(ctx, state, submitted.Number, amountErrors)
			if err != nil {
				return nil, err
			}
			submitted.Number = number
		}
		if askCurrency && state.Currency.Kind == model.CurrencyKindSelect {
			code, err := r.promptCurrency(ctx, state, submitted.CurrencyCode, currencyErrors)
			if err != nil {
				return nil, err
			}
			submitted.CurrencyCode = code
		}

		outcome := r.validate(submitted)
		if outcome.OK() {
			break
		}
		if attempt >= r.maxAttempts {
			return nil, fmt.Errorf("%w: %s", ErrTooManyAttempts, outcome.Err.Message)
		}

		amountErrors, currencyErrors = nil, nil
		switch outcome.Err.Field {
		case currencyPath:
			askAmount, askCurrency = false, true
			currencyErrors = []string{outcome.Err.Message}
		default:
			askAmount, askCurrency = true, false
			amountErrors = []string{outcome.Err.Message}
		}
	}

	values, _ := price.ValueCallback(map[string]string{
		model.NumberKey:       submitted.Number,
		model.CurrencyCodeKey: submitted.CurrencyCode,
	})
	if r.submitTransformer != nil {
		var err error
		values, err = r.submitTransformer(values)
		if err != nil {
			return nil, fmt.Errorf("tui: submit transformer: %w", err)
		}
	}

	return r.serialize(state, values)
}

func (r *Renderer) promptAmount(ctx context.Context, state model.FieldState, current string, errs []string) (string, error) {
	label := amountLabel(state)
	if state.Amount.Suffix != "" {
		label = fmt.Sprintf("%s (%s)", label, state.Amount.Suffix)
	}
	help := strings.TrimSpace(state.Amount.Description)
	if state.Amount.Placeholder != "" {
		help = strings.TrimSpace(strings.Join([]string{help, "e.g. " + state.Amount.Placeholder}, " "))
	}

	for _, message := range errs {
		r.error(ctx, message)
	}

	for {
		response, err := r.driver.Input(ctx, InputConfig{
			Message: label,
			Default: current,
			Help:    help,
		})
		if err != nil {
			return "", err
		}
		response = strings.TrimSpace(response)
		if state.Amount.Required && response == "" {
			r.error(ctx, fmt.Sprintf("%s field is required.", amountLabel(state)))
			continue
		}
		if state.Amount.MaxLength > 0 && len([]rune(response)) > state.Amount.MaxLength {
			r.error(ctx, fmt.Sprintf("%s cannot be longer than %d characters.", amountLabel(state), state.Amount.MaxLength))
			continue
		}
		return response, nil
	}
}

func (r *Renderer) promptCurrency(ctx context.Context, state model.FieldState, current string, errs []string) (string, error) {
	options := state.Currency.Options
	if len(options) == 0 {
		return current, nil
	}
	labels := make([]string, len(options))
	defaultIdx := 0
	for i, option := range options {
		labels[i] = option.Label
		if option.Value == current {
			defaultIdx = i
		}
	}

	for _, message := range errs {
		r.error(ctx, message)
	}

	idx, err := r.driver.Select(ctx, SelectConfig{
		Message:      currencyLabel(state),
		Options:      labels,
		DefaultIndex: defaultIdx,
		Help:         strings.TrimSpace(state.Currency.Description),
	})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(options) {
		return "", fmt.Errorf("tui: invalid currency selection %d", idx)
	}
	return options[idx].Value, nil
}

func (r *Renderer) validate(submitted model.Price) model.ValidationOutcome {
	if r.validator == nil {
		return model.ValidationOutcome{}
	}
	return r.validator(submitted)
}

func (r *Renderer) error(ctx context.Context, message string) {
	if strings.TrimSpace(message) == "" {
		return
	}
	_ = r.driver.Info(ctx, r.theme.ErrorPrefix+message)
}

func (r *Renderer) serialize(state model.FieldState, values map[string]string) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		form := url.Values{}
		for key, value := range values {
			form.Set(render.InputName(state.Name, key), value)
		}
		return []byte(form.Encode()), nil
	case OutputFormatPrettyText:
		var buf bytes.Buffer
		fmt.Fprintf(&buf, "%s%s: %s\n", r.theme.InfoPrefix, amountLabel(state), values[model.NumberKey])
		fmt.Fprintf(&buf, "%s%s: %s\n", r.theme.InfoPrefix, currencyLabel(state), values[model.CurrencyCodeKey])
		return buf.Bytes(), nil
	default:
		payload := map[string]any{state.Name: values}
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("tui: encode submission: %w", err)
		}
		return data, nil
	}
}

func amountLabel(state model.FieldState) string {
	if title := strings.TrimSpace(state.Amount.Title); title != "" {
		return title
	}
	return price.DefaultTitle
}

func currencyLabel(state model.FieldState) string {
	if title := strings.TrimSpace(state.Currency.Title); title != "" {
		return title
	}
	return defaultCurrencyTitle
}
