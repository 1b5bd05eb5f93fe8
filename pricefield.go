package pricefield

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strings"

	"github.com/goliatone/go-pricefield/pkg/catalog"
	"github.com/goliatone/go-pricefield/pkg/locale"
	"github.com/goliatone/go-pricefield/pkg/model"
	"github.com/goliatone/go-pricefield/pkg/price"
	"github.com/goliatone/go-pricefield/pkg/render"
	"github.com/goliatone/go-pricefield/pkg/renderers/vanilla"
)

// RenderOptions describes per-request overrides that renderers can use to
// prefill values or surface server-side validation errors.
type RenderOptions = render.RenderOptions

// Config aliases price.Config for callers that only import the root package.
type Config = price.Config

// DefaultRenderer is used when a request names no renderer.
const DefaultRenderer = "vanilla"

// Option configures a Service.
type Option func(*Service)

// WithLogger routes model and service logs to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithTranslator translates validation messages and renderer chrome.
func WithTranslator(t price.Translator) Option {
	return func(s *Service) {
		if t != nil {
			s.translator = t
		}
	}
}

// WithRenderers replaces the default renderers (vanilla and json).
func WithRenderers(renderers ...render.Renderer) Option {
	return func(s *Service) {
		s.custom = append(s.custom, renderers...)
	}
}

// WithDefaultRenderer overrides DefaultRenderer.
func WithDefaultRenderer(name string) Option {
	return func(s *Service) {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			s.defaultRenderer = trimmed
		}
	}
}

// Service binds a catalog to a formatter factory and a renderer registry.
// It is safe for concurrent use once constructed.
type Service struct {
	catalog         catalog.Catalog
	factory         *locale.Factory
	logger          *slog.Logger
	translator      price.Translator
	renderers       *render.Registry
	custom          []render.Renderer
	defaultRenderer string
}

// New constructs a Service. A nil factory falls back to locale.NewFactory().
func New(cat catalog.Catalog, factory *locale.Factory, options ...Option) (*Service, error) {
	if cat == nil {
		return nil, price.ErrMissingCatalog
	}
	if factory == nil {
		factory = locale.NewFactory()
	}
	s := &Service{
		catalog:         cat,
		factory:         factory,
		logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
		defaultRenderer: DefaultRenderer,
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}

	renderers := s.custom
	s.custom = nil
	if len(renderers) == 0 {
		html, err := vanilla.New()
		if err != nil {
			return nil, fmt.Errorf("pricefield: vanilla renderer: %w", err)
		}
		renderers = []render.Renderer{html, render.JSONRenderer{}}
	}
	registry := render.NewRegistry()
	for _, renderer := range renderers {
		if err := registry.Register(renderer); err != nil {
			return nil, fmt.Errorf("pricefield: %w", err)
		}
	}
	s.renderers = registry
	return s, nil
}

// Catalog returns the catalog served by the service.
func (s *Service) Catalog() catalog.Catalog {
	return s.catalog
}

// Factory returns the formatter factory used by For.
func (s *Service) Factory() *locale.Factory {
	return s.factory
}

// Renderers returns the renderer registry.
func (s *Service) Renderers() *render.Registry {
	return s.renderers
}

// For returns the element model for a locale. Blank locales use the factory
// fallback.
func (s *Service) For(tag string) (*price.Model, error) {
	formatter, err := s.factory.Formatter(tag)
	if err != nil {
		return nil, fmt.Errorf("pricefield: %w", err)
	}
	opts := []price.Option{price.WithLogger(s.logger)}
	if s.translator != nil {
		opts = append(opts, price.WithTranslator(s.translator))
	}
	if trimmed := strings.TrimSpace(tag); trimmed != "" {
		opts = append(opts, price.WithLocale(trimmed))
	}
	return price.New(s.catalog, formatter, opts...)
}

// RenderRequest selects the locale, renderer and element configuration of
// a render.
type RenderRequest struct {
	Locale   string
	Renderer string
	Config   price.Config
	Options  render.RenderOptions
	// ErrorPayload carries backend errors keyed by dotted path, posted input
	// name or JSON pointer. They are merged into Options.Errors; keys that
	// match no sub-field attach to the element.
	ErrorPayload map[string][]string
}

// Render builds the element for req.Locale and renders it.
func (s *Service) Render(ctx context.Context, req RenderRequest) ([]byte, error) {
	renderer, err := s.renderers.Resolve(req.Renderer, s.defaultRenderer)
	if err != nil {
		return nil, fmt.Errorf("pricefield: %w", err)
	}
	m, err := s.For(req.Locale)
	if err != nil {
		return nil, err
	}
	state, err := m.Build(req.Config)
	if err != nil {
		return nil, err
	}

	opts := req.Options
	if opts.Locale == "" {
		opts.Locale = req.Locale
	}
	if opts.Translator == nil {
		opts.Translator = s.translator
	}
	if len(req.ErrorPayload) > 0 {
		opts.Errors = mergeErrors(state, opts.Errors, req.ErrorPayload)
	}
	return renderer.Render(ctx, state, opts)
}

func mergeErrors(state model.FieldState, existing, payload map[string][]string) map[string][]string {
	mapped := render.MapErrorPayload(state, payload)
	out := make(map[string][]string, len(existing)+len(mapped.Fields)+1)
	for path, messages := range existing {
		out[path] = append([]string(nil), messages...)
	}
	for path, messages := range mapped.Fields {
		out[path] = render.MergeFormErrors(out[path], messages...)
	}
	if len(mapped.Form) > 0 {
		out[state.Name] = render.MergeFormErrors(out[state.Name], mapped.Form...)
	}
	return out
}

// Submission is the reconciled result of a posted form.
type Submission struct {
	// Posted reports whether the amount sub-field was present.
	Posted bool
	// Values is the element value after the value callback.
	Values map[string]string
	// Outcome is the validation result of Values.
	Outcome model.ValidationOutcome
	// Errors maps Outcome onto render.RenderOptions.Errors.
	Errors map[string][]string
	// Raw holds the posted sub-field text for re-rendering.
	Raw map[string]string
}

// Submit reconciles the posted values of the element named by cfg.
func (s *Service) Submit(tag string, cfg price.Config, form url.Values) (Submission, error) {
	m, err := s.For(tag)
	if err != nil {
		return Submission{}, err
	}
	name := strings.TrimSpace(cfg.Name)
	if name == "" {
		name = price.DefaultName
	}

	values, ok := render.ValueFromForm(form, name)
	if !ok {
		return Submission{}, nil
	}
	// A blank amount was zero filled and counts as nothing entered.
	var outcome model.ValidationOutcome
	if strings.TrimSpace(form.Get(render.InputName(name, model.NumberKey))) != "" {
		outcome = m.Validate(cfg, price.Submitted(values))
	}
	if !outcome.OK() {
		s.logger.Debug("pricefield: submission rejected",
			"element", name,
			"field", outcome.Err.Field,
		)
	}
	return Submission{
		Posted:  true,
		Values:  values,
		Outcome: outcome,
		Errors:  render.OutcomeErrors(outcome),
		Raw:     render.SubmittedValues(form, name),
	}, nil
}

// RenderOptions returns the options that re-render a rejected submission
// with the user's input and its errors.
func (sub Submission) RenderOptions() render.RenderOptions {
	return render.RenderOptions{Values: sub.Raw, Errors: sub.Errors}
}
