package currencies

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"golang.org/x/text/language"

	"github.com/goliatone/go-pricefield/pkg/locale"
	"github.com/goliatone/go-pricefield/pkg/model"
	"github.com/goliatone/go-pricefield/pkg/price"
)

// Sub-routes below the list route.
const (
	FormatRoute = "/format"
	ParseRoute  = "/parse"
)

type HTTPError interface {
	error
	StatusCode() int
}

type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

type optionsResponse struct {
	Data []Option `json:"data"`
}

// FormatResult is the payload of the format route.
type FormatResult struct {
	Value  string `json:"value"`
	Text   string `json:"text"`
	Locale string `json:"locale"`
}

type formatResponse struct {
	Data FormatResult `json:"data"`
}

type parseResponse struct {
	Data model.Price `json:"data"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Handler builds a net/http handler with default options plus any overrides.
// It is an alias of NewHandler to match the recommended component API surface.
func Handler(fns ...OptionFn) http.Handler {
	return NewHandler(fns...)
}

func NewHandler(fns ...OptionFn) http.Handler {
	opts := NewOptions(fns...)
	return HandlerWithOptions(opts)
}

// HandlerWithOptions builds a handler serving the list, format and parse
// routes, dispatching on the path suffix.
func HandlerWithOptions(opts Options) http.Handler {
	opts = NewOptions(func(o *Options) { *o = opts })
	list := ListHandler(opts)
	format := FormatHandler(opts)
	parse := ParseHandler(opts)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r == nil || r.URL == nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		path := strings.TrimRight(r.URL.Path, "/")
		switch {
		case strings.HasSuffix(path, FormatRoute):
			format.ServeHTTP(w, r)
		case strings.HasSuffix(path, ParseRoute):
			parse.ServeHTTP(w, r)
		default:
			list.ServeHTTP(w, r)
		}
	})
}

// ListHandler answers with the catalog currencies matching the query.
func ListHandler(opts Options) http.Handler {
	return guarded(opts, func(w http.ResponseWriter, r *http.Request) {
		if opts.Catalog == nil {
			writeError(w, r, http.StatusInternalServerError, price.ErrMissingCatalog)
			return
		}
		query := r.URL.Query().Get(opts.SearchParam)
		limit := parseInt(r.URL.Query().Get(opts.LimitParam))

		results := SearchOptions(opts.Catalog.All(), query, limit, opts)
		if results == nil {
			results = []Option{}
		}
		writeJSON(w, r, http.StatusOK, optionsResponse{Data: results})
	})
}

// FormatHandler renders ?value= with the catalog-wide display rules of the
// requested locale.
func FormatHandler(opts Options) http.Handler {
	return guarded(opts, func(w http.ResponseWriter, r *http.Request) {
		formatter, ok := resolveFormatter(w, r, opts)
		if !ok {
			return
		}
		value := strings.TrimSpace(r.URL.Query().Get("value"))
		if value == "" {
			writeError(w, r, http.StatusBadRequest, errors.New("currencies: value is required"))
			return
		}
		if !locale.IsCanonical(value) {
			writeError(w, r, http.StatusUnprocessableEntity, fmt.Errorf("currencies: %w: %q", locale.ErrInvalidNumber, value))
			return
		}

		text, err := formatter.Format(value, price.DisplayOptions(opts.Catalog))
		if err != nil {
			writeError(w, r, http.StatusUnprocessableEntity, err)
			return
		}
		writeJSON(w, r, http.StatusOK, formatResponse{Data: FormatResult{
			Value:  value,
			Text:   text,
			Locale: formatterLocale(formatter),
		}})
	})
}

// ParseHandler converts ?text= into a canonical price for ?currency=.
func ParseHandler(opts Options) http.Handler {
	return guarded(opts, func(w http.ResponseWriter, r *http.Request) {
		formatter, ok := resolveFormatter(w, r, opts)
		if !ok {
			return
		}
		query := r.URL.Query()
		code := query.Get("currency")
		currency, found := opts.Catalog.Lookup(code)
		if !found {
			writeError(w, r, http.StatusUnprocessableEntity, errors.New("currencies: unknown currency "+strings.TrimSpace(code)))
			return
		}

		number, err := formatter.Parse(query.Get("text"), currency)
		if err != nil {
			writeError(w, r, http.StatusUnprocessableEntity, err)
			return
		}
		writeJSON(w, r, http.StatusOK, parseResponse{Data: model.Price{Number: number, CurrencyCode: currency.Code}})
	})
}

func guarded(opts Options, next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r == nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", http.MethodGet+", "+http.MethodHead)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		if opts.Guard != nil {
			if err := opts.Guard(r); err != nil {
				writeGuardError(w, err)
				return
			}
		}
		next(w, r)
	})
}

func resolveFormatter(w http.ResponseWriter, r *http.Request, opts Options) (price.NumberFormatter, bool) {
	if opts.Catalog == nil {
		writeError(w, r, http.StatusInternalServerError, price.ErrMissingCatalog)
		return nil, false
	}
	if opts.Formatters == nil {
		writeError(w, r, http.StatusInternalServerError, price.ErrMissingFormatter)
		return nil, false
	}
	formatter, err := opts.Formatters(r.URL.Query().Get(opts.LocaleParam))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, locale.ErrInvalidLocale) {
			status = http.StatusBadRequest
		}
		writeError(w, r, status, err)
		return nil, false
	}
	return formatter, true
}

func formatterLocale(formatter price.NumberFormatter) string {
	if tagged, ok := formatter.(interface{ Locale() language.Tag }); ok {
		return tagged.Locale().String()
	}
	return ""
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if r.Method == http.MethodHead {
		return
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	_ = enc.Encode(payload)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	writeJSON(w, r, status, errorResponse{Error: err.Error()})
}

func writeGuardError(w http.ResponseWriter, err error) {
	if w == nil {
		return
	}
	if err == nil {
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return
	}
	code := http.StatusForbidden
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code = httpErr.StatusCode()
		if code <= 0 {
			code = http.StatusForbidden
		}
	}
	http.Error(w, http.StatusText(code), code)
}

func parseInt(raw string) int {
	if raw == "" {
		return 0
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return value
}
