package widgets

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-pricefield/pkg/model"
)

// WidgetPrice is the identifier of the price widget.
const WidgetPrice = "price"

// hintKey is where resolved widget names are stamped on fields.
const hintKey = "widget"

// Matcher decides whether a widget renderer should handle the supplied field.
type Matcher func(field model.Field) bool

type rule struct {
	name     string
	priority int
	match    Matcher
}

// Registry picks a widget for a field: explicit hints first, then the
// registered matchers by descending priority. Equal priorities keep
// registration order.
type Registry struct {
	mu    sync.RWMutex
	rules []rule
}

// NewRegistry constructs a registry with IsPriceField registered at
// priority 100.
func NewRegistry() *Registry {
	reg := &Registry{}
	reg.Register(WidgetPrice, 100, IsPriceField)
	return reg
}

// Register adds a matcher. Blank names and nil matchers are ignored.
func (r *Registry) Register(name string, priority int, matcher Matcher) {
	name = strings.TrimSpace(name)
	if r == nil || matcher == nil || name == "" {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	at := sort.Search(len(r.rules), func(i int) bool {
		return r.rules[i].priority < priority
	})
	r.rules = append(r.rules, rule{})
	copy(r.rules[at+1:], r.rules[at:])
	r.rules[at] = rule{name: name, priority: priority, match: matcher}
}

// Resolve returns the widget name for a field. The admin.widget and widget
// metadata keys and the widget UI hint override every matcher.
func (r *Registry) Resolve(field model.Field) (string, bool) {
	if explicit := explicitWidget(field); explicit != "" {
		return explicit, true
	}
	if r == nil {
		return "", false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, entry := range r.rules {
		if entry.match(field) {
			return entry.name, true
		}
	}
	return "", false
}

// Decorate implements model.Decorator. Resolved names are written to
// Metadata["widget"] and UIHints["widget"] unless already set. Sub-fields of
// a price element are left alone.
func (r *Registry) Decorate(form *model.FormModel) error {
	if r == nil || form == nil {
		return nil
	}
	r.walk(form.Fields)
	return nil
}

// PriceFields returns the top-level fields that resolve to the price widget.
func (r *Registry) PriceFields(form model.FormModel) []model.Field {
	var out []model.Field
	for _, field := range form.Fields {
		if widget, _ := r.Resolve(field); widget == WidgetPrice {
			out = append(out, field)
		}
	}
	return out
}

func (r *Registry) walk(fields []model.Field) {
	for i := range fields {
		widget, ok := r.Resolve(fields[i])
		if ok {
			fields[i].Metadata = setDefault(fields[i].Metadata, hintKey, widget)
			fields[i].UIHints = setDefault(fields[i].UIHints, hintKey, widget)
		}
		if widget != WidgetPrice {
			r.walk(fields[i].Nested)
		}
	}
}

func setDefault(m map[string]string, key, value string) map[string]string {
	if m == nil {
		m = make(map[string]string, 1)
	}
	if m[key] == "" {
		m[key] = value
	}
	return m
}

func explicitWidget(field model.Field) string {
	candidates := []string{
		field.Metadata["admin.widget"],
		field.Metadata[hintKey],
		field.UIHints[hintKey],
	}
	for _, candidate := range candidates {
		if trimmed := strings.TrimSpace(candidate); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

// IsPriceField matches fields formatted "price" and object fields whose
// nested fields are exactly number and currency_code.
func IsPriceField(field model.Field) bool {
	if strings.EqualFold(strings.TrimSpace(field.Format), WidgetPrice) {
		return true
	}
	if field.Type != model.FieldTypeObject || len(field.Nested) != 2 {
		return false
	}
	seen := map[string]bool{}
	for _, nested := range field.Nested {
		seen[nested.Name] = true
	}
	return seen[model.NumberKey] && seen[model.CurrencyCodeKey]
}
