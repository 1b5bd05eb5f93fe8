package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/goliatone/go-pricefield"
	"github.com/goliatone/go-pricefield/internal/config"
	"github.com/goliatone/go-pricefield/pkg/model"
	pkgopenapi "github.com/goliatone/go-pricefield/pkg/openapi"
	"github.com/goliatone/go-pricefield/pkg/price"
	"github.com/goliatone/go-pricefield/pkg/render"
	"github.com/goliatone/go-pricefield/pkg/renderers/tui"
)

func main() {
	configPath := flag.String("config", "", "YAML configuration file")
	localeTag := flag.String("locale", "", "locale used to format and parse the amount (defaults to the configured locale)")
	title := flag.String("title", "", "amount label")
	required := flag.Bool("required", false, "require an amount")
	format := flag.String("format", string(tui.OutputFormatJSON), "output format: json, form or pretty")
	source := flag.String("openapi", "", "OpenAPI document path or URL to read the element configuration from")
	field := flag.String("field", "", "dotted schema path of the element inside -openapi (first match if empty)")
	flag.Parse()

	if err := run(*configPath, *localeTag, *title, *required, *format, *source, *field); err != nil {
		if errors.Is(err, tui.ErrAborted) {
			os.Exit(130)
		}
		fmt.Fprintf(os.Stderr, "pricefield: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, localeTag, title string, required bool, format, source, field string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	logger, err := config.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	if strings.TrimSpace(localeTag) == "" {
		localeTag = cfg.Locale
	}

	cat, err := config.OpenCatalog(ctx, cfg)
	if err != nil {
		return err
	}
	formatters, err := cfg.LocaleFactory()
	if err != nil {
		return err
	}
	svc, err := pricefield.New(cat, formatters, pricefield.WithLogger(logger))
	if err != nil {
		return err
	}
	m, err := svc.For(localeTag)
	if err != nil {
		return err
	}

	priceCfg := price.Config{Title: title, Required: required}
	if source != "" {
		priceCfg, err = configFromDocument(ctx, source, field)
		if err != nil {
			return err
		}
		if title != "" {
			priceCfg.Title = title
		}
		priceCfg.Required = priceCfg.Required || required
	}

	state, err := m.Build(priceCfg)
	if err != nil {
		return err
	}
	logger.Debug("pricefield: prompting",
		"locale", localeTag,
		"mode", string(state.Mode),
		"currencies", len(state.Currency.Options),
	)

	renderer, err := tui.New(
		tui.WithOutputFormat(tui.OutputFormat(strings.ToLower(strings.TrimSpace(format)))),
		tui.WithTheme(tui.Theme{ErrorPrefix: "✗ "}),
		tui.WithValidator(func(p model.Price) model.ValidationOutcome {
			return m.Validate(priceCfg, p)
		}),
	)
	if err != nil {
		return err
	}

	out, err := renderer.Render(ctx, state, render.RenderOptions{Locale: localeTag})
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, string(out))
	return nil
}

func configFromDocument(ctx context.Context, location, field string) (price.Config, error) {
	src, err := pkgopenapi.ParseSource(location)
	if err != nil {
		return price.Config{}, err
	}
	doc, err := pkgopenapi.NewLoader(pkgopenapi.WithHTTPFallback(10*time.Second)).Load(ctx, src)
	if err != nil {
		return price.Config{}, err
	}
	entries, err := doc.Configs(ctx)
	if err != nil {
		return price.Config{}, err
	}
	for _, entry := range entries {
		if field == "" || entry.Path == field {
			return entry.Config, nil
		}
	}
	if field == "" {
		return price.Config{}, fmt.Errorf("no price element in %s", location)
	}
	return price.Config{}, fmt.Errorf("no price element at %q in %s", field, location)
}
