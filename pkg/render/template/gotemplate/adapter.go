package gotemplate

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"reflect"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
	gotemplatepkg "github.com/goliatone/go-template"

	"github.com/goliatone/go-pricefield/pkg/render/template"
)

// Extension is appended to template names given without one.
const Extension = ".tpl"

// Option configures the engine before construction.
type Option func(*config)

type config struct {
	dir     string
	files   fs.FS
	funcs   map[string]any
	globals map[string]any
}

// WithBaseDir loads templates from a directory on disk. It is consulted
// before WithFS when both are set.
func WithBaseDir(dir string) Option {
	return func(cfg *config) {
		cfg.dir = strings.TrimSpace(dir)
	}
}

// WithFS loads templates from an fs.FS, typically an embedded one.
func WithFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.files = files
	}
}

// WithTemplateFunc registers helpers. pongo2.FilterFunction values become
// filters, other functions become globals.
func WithTemplateFunc(funcs map[string]any) Option {
	return func(cfg *config) {
		cfg.funcs = mergeInto(cfg.funcs, funcs)
	}
}

// WithGlobalData seeds values available to every template.
func WithGlobalData(data map[string]any) Option {
	return func(cfg *config) {
		cfg.globals = mergeInto(cfg.globals, data)
	}
}

// WithGoTemplateOptions keeps call sites shared with go-template engines
// compiling. The options are ignored by the pongo2 engine.
func WithGoTemplateOptions(_ ...gotemplatepkg.Option) Option {
	return func(*config) {}
}

func mergeInto(dst, src map[string]any) map[string]any {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = make(map[string]any, len(src))
	}
	for key, value := range src {
		if key = strings.TrimSpace(key); key != "" {
			dst[key] = value
		}
	}
	return dst
}

// Engine renders pongo2 templates. Parsed files are cached per name.
type Engine struct {
	set   *pongo2.TemplateSet
	cache sync.Map // template path -> *pongo2.Template
	mu    sync.RWMutex
}

var _ template.TemplateRenderer = (*Engine)(nil)

// New constructs an Engine from a base dir, an fs.FS or both.
func New(options ...Option) (*Engine, error) {
	var cfg config
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	var loaders []pongo2.TemplateLoader
	if cfg.dir != "" {
		local, err := pongo2.NewLocalFileSystemLoader(cfg.dir)
		if err != nil {
			return nil, fmt.Errorf("gotemplate: template dir %q: %w", cfg.dir, err)
		}
		loaders = append(loaders, local)
	}
	if cfg.files != nil {
		loaders = append(loaders, pongo2.NewFSLoader(cfg.files))
	}
	if len(loaders) == 0 {
		return nil, errors.New("gotemplate: a template dir or fs.FS is required")
	}

	set := pongo2.NewSet("pricefield", loaders...)
	set.Globals = pongo2.Context{}
	e := &Engine{set: set}
	registerDefaultFilters()

	if err := e.GlobalContext(cfg.globals); err != nil {
		return nil, err
	}
	for name, fn := range cfg.funcs {
		if err := e.addFunc(name, fn); err != nil {
			return nil, fmt.Errorf("gotemplate: template func %q: %w", name, err)
		}
	}
	return e, nil
}

// Render treats name as inline content when it contains template tags and
// as a template path otherwise.
func (e *Engine) Render(name string, data any, out ...io.Writer) (string, error) {
	if strings.Contains(name, "{{") || strings.Contains(name, "{%") {
		return e.RenderString(name, data, out...)
	}
	return e.RenderTemplate(name, data, out...)
}

// RenderTemplate executes the template at name, adding Extension when the
// name has none.
func (e *Engine) RenderTemplate(name string, data any, out ...io.Writer) (string, error) {
	if e == nil || e.set == nil {
		return "", errors.New("gotemplate: engine is nil")
	}
	if !strings.HasSuffix(name, Extension) {
		name += Extension
	}

	tmpl, err := e.lookup(name)
	if err != nil {
		return "", err
	}
	return e.run(name, tmpl, data, out)
}

// RenderString parses and executes inline template content.
func (e *Engine) RenderString(content string, data any, out ...io.Writer) (string, error) {
	if e == nil || e.set == nil {
		return "", errors.New("gotemplate: engine is nil")
	}
	tmpl, err := e.set.FromString(content)
	if err != nil {
		return "", fmt.Errorf("gotemplate: parse inline template: %w", err)
	}
	return e.run("inline template", tmpl, data, out)
}

func (e *Engine) lookup(name string) (*pongo2.Template, error) {
	if cached, ok := e.cache.Load(name); ok {
		return cached.(*pongo2.Template), nil
	}
	tmpl, err := e.set.FromFile(name)
	if err != nil {
		return nil, fmt.Errorf("gotemplate: load %q: %w", name, err)
	}
	actual, _ := e.cache.LoadOrStore(name, tmpl)
	return actual.(*pongo2.Template), nil
}

func (e *Engine) run(label string, tmpl *pongo2.Template, data any, out []io.Writer) (string, error) {
	ctx, err := toContext(data)
	if err != nil {
		return "", fmt.Errorf("gotemplate: %s data: %w", label, err)
	}

	e.mu.RLock()
	rendered, err := tmpl.Execute(ctx)
	e.mu.RUnlock()
	if err != nil {
		return "", fmt.Errorf("gotemplate: execute %s: %w", label, err)
	}

	for _, w := range out {
		if _, err := io.WriteString(w, rendered); err != nil {
			return "", err
		}
	}
	return rendered, nil
}

// RegisterFilter adds a process-wide pongo2 filter. Existing names fail.
func (e *Engine) RegisterFilter(name string, fn func(input any, param any) (any, error)) error {
	name = strings.TrimSpace(name)
	if name == "" || fn == nil {
		return errors.New("gotemplate: filter name and function required")
	}
	if pongo2.FilterExists(name) {
		return fmt.Errorf("gotemplate: filter %q already exists", name)
	}
	return pongo2.RegisterFilter(name, func(in, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
		var arg any
		if param != nil {
			arg = param.Interface()
		}
		result, err := fn(in.Interface(), arg)
		if err != nil {
			return nil, &pongo2.Error{Sender: "filter:" + name, OrigError: err}
		}
		return pongo2.AsValue(result), nil
	})
}

// GlobalContext merges data into the template set globals.
func (e *Engine) GlobalContext(data any) error {
	if e == nil || e.set == nil {
		return errors.New("gotemplate: engine is nil")
	}
	if data == nil {
		return nil
	}
	ctx, err := toContext(data)
	if err != nil {
		return fmt.Errorf("gotemplate: global data: %w", err)
	}

	e.mu.Lock()
	e.set.Globals.Update(ctx)
	e.mu.Unlock()
	return nil
}

func (e *Engine) addFunc(name string, fn any) error {
	name = strings.TrimSpace(name)
	if name == "" || fn == nil {
		return nil
	}
	if filter, ok := fn.(pongo2.FilterFunction); ok {
		if pongo2.FilterExists(name) {
			return nil
		}
		return pongo2.RegisterFilter(name, filter)
	}
	if reflect.TypeOf(fn).Kind() != reflect.Func {
		return fmt.Errorf("expected a function, got %T", fn)
	}

	e.mu.Lock()
	e.set.Globals[name] = fn
	e.mu.Unlock()
	return nil
}

// toContext exposes structs through their JSON field names so templates can
// write state.amount.value. Maps, slices, scalars and functions pass through.
func toContext(data any) (pongo2.Context, error) {
	switch typed := data.(type) {
	case nil:
		return pongo2.Context{}, nil
	case pongo2.Context:
		return normalizeMap(typed)
	case map[string]any:
		return normalizeMap(typed)
	}

	decoded, err := viaJSON(data)
	if err != nil {
		return nil, err
	}
	m, ok := decoded.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("data of type %T is not an object", data)
	}
	return pongo2.Context(m), nil
}

func normalizeMap(in map[string]any) (pongo2.Context, error) {
	out := make(pongo2.Context, len(in))
	for key, value := range in {
		if key = strings.TrimSpace(key); key == "" {
			continue
		}
		if needsJSON(value) {
			decoded, err := viaJSON(value)
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", key, err)
			}
			value = decoded
		}
		out[key] = value
	}
	return out, nil
}

func needsJSON(value any) bool {
	if value == nil {
		return false
	}
	t := reflect.TypeOf(value)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Kind() == reflect.Struct
}

func viaJSON(v any) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}
