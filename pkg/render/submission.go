package render

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/goliatone/go-pricefield/pkg/model"
	"github.com/goliatone/go-pricefield/pkg/price"
)

// HiddenField represents a hidden form input emitted alongside the element.
type HiddenField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Hidden returns a HiddenField for an arbitrary name/value pair.
func Hidden(name string, value any) HiddenField {
	return HiddenField{
		Name:  strings.TrimSpace(name),
		Value: fmt.Sprint(value),
	}
}

// CSRFToken constructs a hidden field carrying the provided token. Callers
// supply the input name to match their backend expectations (for example,
// "_csrf" or "csrf_token").
func CSRFToken(name, token string) HiddenField {
	return Hidden(name, token)
}

// InputName returns the posted name of a sub-field, for example
// "price[number]".
func InputName(element, key string) string {
	element = strings.TrimSpace(element)
	if element == "" {
		return key
	}
	return element + "[" + key + "]"
}

// StateHiddenFields returns the hidden inputs a state needs: the fixed
// currency code in single currency mode.
func StateHiddenFields(state model.FieldState) []HiddenField {
	if state.IsEmpty() || state.Currency.Kind != model.CurrencyKindHidden {
		return nil
	}
	return []HiddenField{Hidden(InputName(state.Name, model.CurrencyCodeKey), state.Currency.Value)}
}

// MergeHiddenFields returns a copy of base with the provided fields applied.
// Empty names are ignored; later fields win on name collisions.
func MergeHiddenFields(base map[string]string, fields ...HiddenField) map[string]string {
	if len(base) == 0 && len(fields) == 0 {
		return nil
	}
	out := make(map[string]string, len(base)+len(fields))
	for key, value := range base {
		if trimmed := strings.TrimSpace(key); trimmed != "" {
			out[trimmed] = value
		}
	}
	for _, field := range fields {
		name := strings.TrimSpace(field.Name)
		if name == "" {
			continue
		}
		out[name] = field.Value
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// SortedHiddenFields normalises and sorts hidden fields for deterministic
// rendering. Empty names are dropped.
func SortedHiddenFields(fields map[string]string) []HiddenField {
	if len(fields) == 0 {
		return nil
	}

	names := make([]string, 0, len(fields))
	clean := make(map[string]string, len(fields))
	for name, value := range fields {
		key := strings.TrimSpace(name)
		if key == "" {
			continue
		}
		if _, seen := clean[key]; !seen {
			names = append(names, key)
		}
		clean[key] = value
	}
	if len(names) == 0 {
		return nil
	}
	sort.Strings(names)

	result := make([]HiddenField, 0, len(names))
	for _, name := range names {
		result = append(result, HiddenField{Name: name, Value: clean[name]})
	}
	return result
}

// ValueFromForm extracts the posted sub-fields of element and reconciles them
// through price.ValueCallback. It reports false when the amount was not
// posted at all.
func ValueFromForm(values url.Values, element string) (map[string]string, bool) {
	if values == nil {
		return nil, false
	}
	numberKey := InputName(element, model.NumberKey)
	if _, posted := values[numberKey]; !posted {
		return nil, false
	}
	raw := map[string]string{
		model.NumberKey: values.Get(numberKey),
	}
	if codeKey := InputName(element, model.CurrencyCodeKey); values.Has(codeKey) {
		raw[model.CurrencyCodeKey] = values.Get(codeKey)
	}
	return price.ValueCallback(raw)
}

// SubmittedValues returns the raw posted sub-field values keyed by dotted
// path so a failed submission can be re-rendered with what the user typed.
func SubmittedValues(values url.Values, element string) map[string]string {
	if values == nil {
		return nil
	}
	out := make(map[string]string, 2)
	for _, key := range []string{model.NumberKey, model.CurrencyCodeKey} {
		if name := InputName(element, key); values.Has(name) {
			out[model.JoinPath(element, key)] = values.Get(name)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
