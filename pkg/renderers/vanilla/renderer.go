package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-pricefield/pkg/model"
	"github.com/goliatone/go-pricefield/pkg/render"
	rendertemplate "github.com/goliatone/go-pricefield/pkg/render/template"
	gotemplate "github.com/goliatone/go-pricefield/pkg/render/template/gotemplate"
)

const (
	// DefaultTemplate is the template rendered for a price element.
	DefaultTemplate = "templates/price.tpl"
	// PartialKey is the go-theme partial key that overrides DefaultTemplate.
	PartialKey = "forms.price"
	// DefaultEmptyOptionLabel labels the blank option of an unselected
	// currency select.
	DefaultEmptyOptionLabel = "- Select -"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	templateFuncs    map[string]any
	stylesheet       string
	emptyLabel       string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithTemplateFuncs registers helpers on the default engine, for example
// render.TemplateI18nFuncs.
func WithTemplateFuncs(funcs map[string]any) Option {
	return func(cfg *config) {
		if len(funcs) == 0 {
			return
		}
		if cfg.templateFuncs == nil {
			cfg.templateFuncs = make(map[string]any, len(funcs))
		}
		for name, fn := range funcs {
			cfg.templateFuncs[name] = fn
		}
	}
}

// WithStylesheet links a stylesheet ahead of the element. Theme asset
// resolvers rewrite the href when present.
func WithStylesheet(href string) Option {
	return func(cfg *config) {
		cfg.stylesheet = strings.TrimSpace(href)
	}
}

// WithEmptyOptionLabel overrides the label of the blank currency option.
func WithEmptyOptionLabel(label string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(label); trimmed != "" {
			cfg.emptyLabel = trimmed
		}
	}
}

// Renderer renders a price element to HTML.
type Renderer struct {
	templates  rendertemplate.TemplateRenderer
	stylesheet string
	emptyLabel string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS(), emptyLabel: DefaultEmptyOptionLabel}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithTemplateFunc(cfg.templateFuncs),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{
		templates:  renderer,
		stylesheet: cfg.stylesheet,
		emptyLabel: cfg.emptyLabel,
	}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render writes the element markup. Empty states render nothing.
func (r *Renderer) Render(_ context.Context, state model.FieldState, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}
	if state.IsEmpty() {
		return nil, nil
	}

	render.LocalizeFieldState(&state, options)

	result, err := r.templates.RenderTemplate(templateFor(options.Theme), r.view(state, options))
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}

func templateFor(cfg *theme.RendererConfig) string {
	if cfg != nil {
		if name := strings.TrimSpace(cfg.Partials[PartialKey]); name != "" {
			return name
		}
	}
	return DefaultTemplate
}

func (r *Renderer) view(state model.FieldState, options render.RenderOptions) map[string]any {
	amountPath := state.Path(model.NumberKey)
	currencyPath := state.Path(model.CurrencyCodeKey)

	amount := map[string]any{
		"id":          controlID(amountPath),
		"name":        render.InputName(state.Name, model.NumberKey),
		"title":       state.Amount.Title,
		"value":       options.ValueFor(amountPath, state.Amount.Value),
		"placeholder": state.Amount.Placeholder,
		"required":    state.Amount.Required,
		"size":        state.Amount.Size,
		"max_length":  state.Amount.MaxLength,
		"suffix":      state.Amount.Suffix,
		"description": sanitizeDescription(state.Amount.Description),
		"errors":      options.ErrorsFor(amountPath),
	}

	selected := options.ValueFor(currencyPath, state.Currency.Value)
	currencyOptions := make([]map[string]any, 0, len(state.Currency.Options))
	for _, option := range state.Currency.Options {
		currencyOptions = append(currencyOptions, map[string]any{
			"value":    option.Value,
			"label":    option.Label,
			"selected": option.Value == selected,
		})
	}
	currency := map[string]any{
		"select":          state.Currency.Kind == model.CurrencyKindSelect,
		"id":              controlID(currencyPath),
		"name":            render.InputName(state.Name, model.CurrencyCodeKey),
		"title":           state.Currency.Title,
		"title_invisible": state.Currency.TitleInvisible,
		"value":           selected,
		"empty_label":     r.emptyLabel,
		"options":         currencyOptions,
		"description":     sanitizeDescription(state.Currency.Description),
		"errors":          options.ErrorsFor(currencyPath),
	}

	hidden := make([]map[string]any, 0, len(options.HiddenFields)+1)
	for _, field := range hiddenFields(state, options) {
		hidden = append(hidden, map[string]any{"name": field.Name, "value": field.Value})
	}

	return map[string]any{
		"id":         controlID(state.Name),
		"mode":       string(state.Mode),
		"classes":    strings.Join(state.Classes, " "),
		"stylesheet": r.assetURL(options.Theme),
		"theme":      themeView(options.Theme),
		"errors":     options.ErrorsFor(state.Name),
		"amount":     amount,
		"currency":   currency,
		"hidden":     hidden,
	}
}

func hiddenFields(state model.FieldState, options render.RenderOptions) []render.HiddenField {
	merged := map[string]string{}
	for _, field := range options.HiddenFields {
		merged[field.Name] = field.Value
	}
	merged = render.MergeHiddenFields(merged, render.StateHiddenFields(state)...)
	return render.SortedHiddenFields(merged)
}

func (r *Renderer) assetURL(cfg *theme.RendererConfig) string {
	if r.stylesheet == "" {
		return ""
	}
	if cfg != nil && cfg.AssetURL != nil {
		if resolved := strings.TrimSpace(cfg.AssetURL(r.stylesheet)); resolved != "" {
			return resolved
		}
	}
	return r.stylesheet
}

func themeView(cfg *theme.RendererConfig) map[string]any {
	if cfg == nil {
		return map[string]any{}
	}
	return map[string]any{
		"name":           cfg.Theme,
		"variant":        cfg.Variant,
		"css_vars_style": cssVarsStyle(cfg.CSSVars),
	}
}

func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(".form-type-price {")
	for _, key := range keys {
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(vars[key])
		b.WriteString(";")
	}
	b.WriteString("}")
	return b.String()
}

func controlID(path string) string {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return ""
	}
	replacer := strings.NewReplacer(".", "-", "_", "-")
	return "pf-" + replacer.Replace(trimmed)
}
