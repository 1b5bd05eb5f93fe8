package currencies

import (
	"net/http"

	"github.com/goliatone/go-pricefield/pkg/catalog"
	"github.com/goliatone/go-pricefield/pkg/locale"
	"github.com/goliatone/go-pricefield/pkg/price"
)

type GuardFunc func(r *http.Request) error

// FormatterFunc resolves the formatter for a request locale. A blank locale
// selects the default.
type FormatterFunc func(locale string) (price.NumberFormatter, error)

type Options struct {
	RoutePath    string
	SearchParam  string
	LimitParam   string
	LocaleParam  string
	DefaultLimit int
	MaxLimit     int
	Guard        GuardFunc

	Catalog    catalog.Catalog
	Formatters FormatterFunc
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		RoutePath:    "/api/currencies",
		SearchParam:  "q",
		LimitParam:   "limit",
		LocaleParam:  "locale",
		DefaultLimit: 50,
		MaxLimit:     200,
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.DefaultLimit <= 0 {
		opts.DefaultLimit = 50
	}
	if opts.MaxLimit <= 0 {
		opts.MaxLimit = 200
	}
	if opts.RoutePath == "" {
		opts.RoutePath = "/api/currencies"
	}
	if opts.SearchParam == "" {
		opts.SearchParam = "q"
	}
	if opts.LimitParam == "" {
		opts.LimitParam = "limit"
	}
	if opts.LocaleParam == "" {
		opts.LocaleParam = "locale"
	}
	return opts
}

func WithRoutePath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.RoutePath = path
	}
}

func WithSearchParam(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.SearchParam = name
	}
}

func WithLimitParam(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.LimitParam = name
	}
}

func WithLocaleParam(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.LocaleParam = name
	}
}

func WithDefaultLimit(limit int) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.DefaultLimit = limit
	}
}

func WithMaxLimit(limit int) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.MaxLimit = limit
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

// WithCatalog sets the catalog served by the component.
func WithCatalog(cat catalog.Catalog) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Catalog = cat
	}
}

// WithFormatters sets the formatter resolver used by /format and /parse.
func WithFormatters(fn FormatterFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Formatters = fn
	}
}

// WithFactory resolves formatters through a locale.Factory.
func WithFactory(factory *locale.Factory) OptionFn {
	return func(o *Options) {
		if o == nil || factory == nil {
			return
		}
		o.Formatters = func(tag string) (price.NumberFormatter, error) {
			formatter, err := factory.Formatter(tag)
			if err != nil {
				return nil, err
			}
			return formatter, nil
		}
	}
}

func clampLimit(limit int, opts Options) int {
	if limit < 0 {
		return 0
	}
	if limit == 0 {
		limit = opts.DefaultLimit
	}
	if opts.MaxLimit > 0 && limit > opts.MaxLimit {
		return opts.MaxLimit
	}
	return limit
}
