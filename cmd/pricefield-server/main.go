package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goliatone/go-pricefield"
	"github.com/goliatone/go-pricefield/internal/config"
	"github.com/goliatone/go-pricefield/internal/server"
	"github.com/goliatone/go-pricefield/pkg/price"
)

func main() {
	configPath := flag.String("config", "", "YAML configuration file")
	title := flag.String("title", "", "amount label on the demo form")
	required := flag.Bool("required", false, "require an amount on the demo form")
	flag.Parse()

	if err := run(*configPath, price.Config{Title: *title, Required: *required}); err != nil {
		fmt.Fprintf(os.Stderr, "pricefield-server: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string, element price.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	logger, err := config.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}

	cat, err := config.OpenCatalog(ctx, cfg)
	if err != nil {
		return err
	}
	logger.Info("catalog loaded", "source", string(cfg.CatalogSource()), "currencies", cat.Len())

	formatters, err := cfg.LocaleFactory()
	if err != nil {
		return err
	}
	svc, err := pricefield.New(cat, formatters, pricefield.WithLogger(logger))
	if err != nil {
		return err
	}
	srv, err := server.New(svc, server.Options{Locale: cfg.Locale, Element: element, Logger: logger})
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           srv,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.ListenAddr, "currencies", srv.Routes().List)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logger.Info("shutting down")
	return httpServer.Shutdown(shutdownCtx)
}
