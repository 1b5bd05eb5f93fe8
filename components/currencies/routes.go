package currencies

import (
	"fmt"
	"net/http"
	"strings"
)

// Mux is the minimal interface required to register a net/http handler.
// It is satisfied by *http.ServeMux and chi routers.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

// Routes lists the mounted paths of the component.
type Routes struct {
	List   string `json:"list"`
	Format string `json:"format"`
	Parse  string `json:"parse"`
}

// MountPath returns the full mount path for the list route under basePath.
func MountPath(basePath string, fns ...OptionFn) string {
	opts := NewOptions(fns...)
	return mountPath(basePath, opts.RoutePath)
}

// MountRoutes returns every route below basePath.
func MountRoutes(basePath string, fns ...OptionFn) Routes {
	list := MountPath(basePath, fns...)
	return Routes{List: list, Format: list + FormatRoute, Parse: list + ParseRoute}
}

// RegisterRoutes registers the currency handlers under basePath on mux.
func RegisterRoutes(mux Mux, basePath string, fns ...OptionFn) (Routes, error) {
	opts := NewOptions(fns...)
	return RegisterRoutesWithOptions(mux, basePath, opts)
}

// RegisterRoutesWithOptions registers the handlers under basePath using a
// pre-built Options value.
func RegisterRoutesWithOptions(mux Mux, basePath string, opts Options) (Routes, error) {
	if mux == nil {
		return Routes{}, fmt.Errorf("currencies: missing mux")
	}
	if opts.Catalog == nil {
		return Routes{}, fmt.Errorf("currencies: missing catalog")
	}
	opts = NewOptions(func(o *Options) { *o = opts })
	list := mountPath(basePath, opts.RoutePath)
	routes := Routes{List: list, Format: list + FormatRoute, Parse: list + ParseRoute}

	mux.Handle(routes.List, ListHandler(opts))
	mux.Handle(routes.Format, FormatHandler(opts))
	mux.Handle(routes.Parse, ParseHandler(opts))
	return routes, nil
}

func mountPath(basePath, routePath string) string {
	basePath = strings.TrimSpace(basePath)
	routePath = strings.TrimSpace(routePath)

	if routePath == "" {
		routePath = "/"
	}
	if !strings.HasPrefix(routePath, "/") {
		routePath = "/" + routePath
	}
	routePath = strings.TrimRight(routePath, "/")
	if routePath == "" {
		routePath = "/"
	}

	if basePath == "" || basePath == "/" {
		return routePath
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	basePath = strings.TrimRight(basePath, "/")
	return basePath + routePath
}
