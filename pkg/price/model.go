package price

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"golang.org/x/text/language"

	"github.com/goliatone/go-pricefield/pkg/catalog"
	"github.com/goliatone/go-pricefield/pkg/locale"
	"github.com/goliatone/go-pricefield/pkg/model"
)

// PlaceholderExample is formatted with the catalog-wide rules so users can see
// which decimal separator to type.
const PlaceholderExample = "9.99"

// NumberFormatter is the locale collaborator the model formats and parses
// amounts through. *locale.Formatter satisfies it.
type NumberFormatter interface {
	Format(value string, opts locale.FormatOptions) (string, error)
	Parse(text string, currency model.Currency) (string, error)
}

var _ NumberFormatter = (*locale.Formatter)(nil)

// Model builds and validates price elements for one catalog and one locale.
// It holds no per-request state and is safe for concurrent use when its
// collaborators are.
type Model struct {
	catalog    catalog.Catalog
	formatter  NumberFormatter
	logger     *slog.Logger
	translator Translator
	locale     string
}

// Option customises a Model.
type Option func(*Model)

// WithLogger routes debug output through logger. Models discard logs by
// default.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Model) {
		if m == nil || logger == nil {
			return
		}
		m.logger = logger
	}
}

// WithTranslator translates validation messages.
func WithTranslator(t Translator) Option {
	return func(m *Model) {
		if m == nil {
			return
		}
		m.translator = t
	}
}

// WithLocale overrides the locale passed to the translator. It defaults to
// the formatter locale when the formatter exposes one.
func WithLocale(locale string) Option {
	return func(m *Model) {
		if m == nil {
			return
		}
		m.locale = strings.TrimSpace(locale)
	}
}

// New wires a model against its collaborators.
func New(cat catalog.Catalog, formatter NumberFormatter, options ...Option) (*Model, error) {
	if cat == nil {
		return nil, ErrMissingCatalog
	}
	if formatter == nil {
		return nil, ErrMissingFormatter
	}
	m := &Model{
		catalog:   cat,
		formatter: formatter,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	if tagged, ok := formatter.(interface{ Locale() language.Tag }); ok {
		m.locale = tagged.Locale().String()
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(m)
	}
	return m, nil
}

// Build returns the renderable element for cfg. An empty catalog yields an
// empty state rather than an error; an invalid default value or display hint
// is reported as an error.
func (m *Model) Build(cfg Config) (model.FieldState, error) {
	if err := cfg.Validate(); err != nil {
		return model.FieldState{}, err
	}
	cfg = cfg.normalized()

	defaultPrice, err := parseDefault(cfg.Default)
	if err != nil {
		return model.FieldState{}, err
	}

	state := model.FieldState{Name: cfg.Name, Title: cfg.Title}

	currencies := m.catalog.All()
	if len(currencies) == 0 {
		m.logger.Debug("price: no currencies available, rendering empty element", "name", cfg.Name)
		return state, nil
	}

	opts := displayOptions(currencies)

	numberText := ""
	if defaultPrice != nil && strings.TrimSpace(defaultPrice.Number) != "" {
		numberText, err = m.formatter.Format(defaultPrice.Number, opts)
		if err != nil {
			return model.FieldState{}, fmt.Errorf("%w: number %q: %v", ErrInvalidDefaultValue, defaultPrice.Number, err)
		}
	}
	placeholder, err := m.formatter.Format(PlaceholderExample, opts)
	if err != nil {
		return model.FieldState{}, fmt.Errorf("price: format placeholder: %w", err)
	}

	state.Mode = model.ModeFor(len(currencies))
	state.Classes = []string{ElementClass}
	state.Amount = model.AmountField{
		Name:        model.NumberKey,
		Title:       cfg.Title,
		Value:       numberText,
		Placeholder: placeholder,
		Required:    cfg.Required,
		Size:        cfg.Size,
		MaxLength:   cfg.MaxLength,
	}

	switch state.Mode {
	case model.ModeSingleCurrency:
		code := currencies[0].Code
		state.Amount.Suffix = code
		state.Amount.Description = cfg.Description
		state.Currency = model.CurrencyField{
			Name:  model.CurrencyCodeKey,
			Kind:  model.CurrencyKindHidden,
			Value: code,
		}
	default:
		state.Currency = model.CurrencyField{
			Name:           model.CurrencyCodeKey,
			Kind:           model.CurrencyKindSelect,
			Title:          "Currency",
			TitleInvisible: true,
			Value:          m.preselect(defaultPrice),
			Options:        currencyOptions(currencies),
			Description:    cfg.Description,
		}
	}

	m.logger.Debug("price: built element",
		"name", cfg.Name,
		"mode", string(state.Mode),
		"currencies", len(currencies),
		"min_fraction_digits", opts.MinFractionDigits,
	)
	return state, nil
}

// MustBuild mirrors Build but panics on configuration errors. It suits
// elements declared at package level.
func (m *Model) MustBuild(cfg Config) model.FieldState {
	state, err := m.Build(cfg)
	if err != nil {
		panic(err)
	}
	return state
}

// Validate parses a submitted amount against the precision of the selected
// currency. An empty amount passes through untouched with no price.
func (m *Model) Validate(cfg Config, submitted model.Price) model.ValidationOutcome {
	cfg = cfg.normalized()

	if strings.TrimSpace(submitted.Number) == "" {
		return model.ValidationOutcome{}
	}

	title := messageTitle(cfg.Title)

	currency, ok := m.catalog.Lookup(submitted.CurrencyCode)
	if !ok {
		m.logger.Debug("price: submitted currency not in catalog",
			"name", cfg.Name,
			"currency", submitted.CurrencyCode,
		)
		return model.Invalid(
			model.JoinPath(cfg.Name, model.CurrencyCodeKey),
			m.message(MessageUnknownCurrency, title, submitted.CurrencyCode),
		)
	}

	number, err := m.formatter.Parse(submitted.Number, currency)
	if err != nil {
		m.logger.Debug("price: submitted amount rejected",
			"name", cfg.Name,
			"currency", currency.Code,
			"reason", err.Error(),
		)
		return model.Invalid(
			model.JoinPath(cfg.Name, model.NumberKey),
			m.message(MessageNotNumeric, title),
		)
	}

	return model.Ok(model.Price{Number: number, CurrencyCode: currency.Code})
}

func (m *Model) preselect(defaultPrice *model.Price) string {
	if defaultPrice == nil || strings.TrimSpace(defaultPrice.CurrencyCode) == "" {
		return ""
	}
	currency, ok := m.catalog.Lookup(defaultPrice.CurrencyCode)
	if !ok {
		m.logger.Debug("price: default currency not in catalog", "currency", defaultPrice.CurrencyCode)
		return ""
	}
	return currency.Code
}

// DisplayOptions returns the formatting rules used for display across cat:
// the lowest fraction digit count of any currency, at most six digits, no
// grouping.
func DisplayOptions(cat catalog.Catalog) locale.FormatOptions {
	if cat == nil {
		return displayOptions(nil)
	}
	return displayOptions(cat.All())
}

func displayOptions(currencies []model.Currency) locale.FormatOptions {
	opts := locale.FormatOptions{
		MaxFractionDigits: locale.DefaultMaxFractionDigits,
		GroupingUsed:      false,
	}
	for i, currency := range currencies {
		if i == 0 || currency.FractionDigits < opts.MinFractionDigits {
			opts.MinFractionDigits = currency.FractionDigits
		}
	}
	return opts
}

func currencyOptions(currencies []model.Currency) []model.Option {
	options := make([]model.Option, 0, len(currencies))
	for _, currency := range currencies {
		options = append(options, model.Option{Value: currency.Code, Label: currency.Code})
	}
	return options
}
