// Package server exposes the price element over HTTP: a demo form page that
// renders and validates the element, the currency lookup routes and the
// shipped stylesheet.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/text/language"

	"github.com/goliatone/go-pricefield"
	"github.com/goliatone/go-pricefield/components/currencies"
	"github.com/goliatone/go-pricefield/pkg/model"
	"github.com/goliatone/go-pricefield/pkg/price"
	"github.com/goliatone/go-pricefield/pkg/render"
	"github.com/goliatone/go-pricefield/pkg/render/template/gotemplate"
	"github.com/goliatone/go-pricefield/pkg/renderers/vanilla"
)

const (
	// AssetsPath serves the element stylesheet.
	AssetsPath = "/assets/"
	// APIPath prefixes the currency routes.
	APIPath = "/api"
)

// Options configures the form page.
type Options struct {
	// Locale is used when the request carries no locale preference.
	Locale string
	// Element configures the price element on the form page.
	Element price.Config
	// Logger receives request and submission logs.
	Logger *slog.Logger
}

// Server routes the page, the API and the assets.
type Server struct {
	svc    *pricefield.Service
	router *chi.Mux
	logger *slog.Logger
	opts   Options
	routes currencies.Routes
	pages  *gotemplate.Engine
}

// New wires the router. It fails when the currency routes cannot mount.
func New(svc *pricefield.Service, opts Options) (*Server, error) {
	if svc == nil {
		return nil, errors.New("server: pricefield service is required")
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	pages, err := gotemplate.New(gotemplate.WithFS(pageTemplates))
	if err != nil {
		return nil, fmt.Errorf("server: page templates: %w", err)
	}
	s := &Server{
		svc:    svc,
		router: chi.NewRouter(),
		logger: opts.Logger,
		opts:   opts,
		pages:  pages,
	}
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(30 * time.Second))
	s.router.Use(s.requestLogger)

	if err := s.setupRoutes(); err != nil {
		return nil, err
	}
	return s, nil
}

// Routes returns the mounted currency routes.
func (s *Server) Routes() currencies.Routes {
	return s.routes
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() error {
	s.router.Handle(AssetsPath+"*", http.StripPrefix(AssetsPath, http.FileServer(http.FS(pricefield.AssetsFS()))))

	routes, err := currencies.RegisterRoutes(s.router, APIPath,
		currencies.WithCatalog(s.svc.Catalog()),
		currencies.WithFactory(s.svc.Factory()),
	)
	if err != nil {
		return fmt.Errorf("server: mount currencies: %w", err)
	}
	s.routes = routes

	s.router.Get("/", s.handleForm)
	s.router.Post("/", s.handleSubmit)
	return nil
}

func (s *Server) handleForm(w http.ResponseWriter, r *http.Request) {
	s.renderForm(w, r, http.StatusOK, render.RenderOptions{})
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	tag := s.requestLocale(r)

	sub, err := s.svc.Submit(tag, s.opts.Element, r.PostForm)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if !sub.Posted {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "price was not submitted"})
		return
	}
	if !sub.Outcome.OK() {
		s.logger.Info("submission rejected", "locale", tag, "field", sub.Outcome.Err.Field)
		s.renderForm(w, r, http.StatusUnprocessableEntity, sub.RenderOptions())
		return
	}

	writeJSON(w, http.StatusOK, submissionResponse{Values: sub.Values, Price: sub.Outcome.Price})
}

type submissionResponse struct {
	Values map[string]string `json:"values"`
	Price  *model.Price      `json:"price,omitempty"`
}

func (s *Server) renderForm(w http.ResponseWriter, r *http.Request, status int, opts render.RenderOptions) {
	tag := s.requestLocale(r)
	name := strings.TrimSpace(r.URL.Query().Get("renderer"))

	renderer, err := s.svc.Renderers().Resolve(name, pricefield.DefaultRenderer)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	out, err := s.svc.Render(r.Context(), pricefield.RenderRequest{
		Locale:   tag,
		Renderer: renderer.Name(),
		Config:   s.opts.Element,
		Options:  opts,
	})
	if err != nil {
		s.logger.Error("render failed", "renderer", renderer.Name(), "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	if !strings.HasPrefix(renderer.ContentType(), "text/html") {
		w.Header().Set("Content-Type", renderer.ContentType())
		w.WriteHeader(status)
		_, _ = w.Write(out)
		return
	}

	html, err := s.pages.RenderTemplate(PageTemplate, map[string]any{
		"locale":     tag,
		"title":      pageTitle(s.opts.Element),
		"stylesheet": AssetsPath + vanilla.StylesheetName,
		"action":     r.URL.RequestURI(),
		"element":    string(out),
	})
	if err != nil {
		s.logger.Error("render page", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	w.Header().Set("Content-Type", renderer.ContentType())
	w.WriteHeader(status)
	_, _ = io.WriteString(w, html)
}

// requestLocale prefers ?locale=, then the first Accept-Language tag, then
// the configured locale.
func (s *Server) requestLocale(r *http.Request) string {
	if tag := strings.TrimSpace(r.URL.Query().Get("locale")); tag != "" {
		return tag
	}
	if header := r.Header.Get("Accept-Language"); header != "" {
		tags, _, err := language.ParseAcceptLanguage(header)
		if err == nil && len(tags) > 0 {
			return tags[0].String()
		}
	}
	return s.opts.Locale
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func pageTitle(cfg price.Config) string {
	if title := strings.TrimSpace(cfg.Title); title != "" {
		return title
	}
	return price.DefaultTitle
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
