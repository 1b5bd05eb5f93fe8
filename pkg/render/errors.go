package render

import (
	"strings"

	"github.com/goliatone/go-pricefield/pkg/model"
)

// ErrorMapping splits an error payload into messages scoped to the price
// sub-fields and element-level messages, keyed by dotted path.
type ErrorMapping struct {
	Fields map[string][]string
	Form   []string
}

// OutcomeErrors converts a validation outcome into the field error map
// renderers consume through RenderOptions.Errors. Successful outcomes yield
// nil.
func OutcomeErrors(outcome model.ValidationOutcome) map[string][]string {
	if outcome.Err == nil {
		return nil
	}
	message := strings.TrimSpace(outcome.Err.Message)
	if message == "" {
		return nil
	}
	field := strings.TrimSpace(outcome.Err.Field)
	return map[string][]string{field: {message}}
}

// MergeFormErrors concatenates and normalises element-level messages, trimming
// whitespace and removing duplicates while preserving order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

// MapErrorPayload normalises server error payloads into the sub-field paths
// of state. Keys may use dotted paths ("price.number"), posted input names
// ("price[number]") or JSON pointers ("/body/price/number"). Keys that match no
// sub-field are kept as element-level messages.
func MapErrorPayload(state model.FieldState, payload map[string][]string) ErrorMapping {
	mapping := ErrorMapping{Fields: make(map[string][]string)}
	if len(payload) == 0 {
		mapping.Fields = nil
		return mapping
	}

	paths := fieldPaths(state)
	for rawPath, messages := range payload {
		normalized := normalizeMessages(messages)
		if len(normalized) == 0 {
			continue
		}
		mapped := mapErrorPath(rawPath, paths)
		if mapped == "" {
			mapping.Form = append(mapping.Form, normalized...)
			continue
		}
		mapping.Fields[mapped] = append(mapping.Fields[mapped], normalized...)
	}

	for path, messages := range mapping.Fields {
		mapping.Fields[path] = normalizeMessages(messages)
	}
	if len(mapping.Fields) == 0 {
		mapping.Fields = nil
	}
	mapping.Form = normalizeMessages(mapping.Form)
	return mapping
}

func fieldPaths(state model.FieldState) map[string]struct{} {
	paths := map[string]struct{}{
		state.Name: {},
	}
	paths[state.Path(model.NumberKey)] = struct{}{}
	paths[state.Path(model.CurrencyCodeKey)] = struct{}{}
	return paths
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))
	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}

func mapErrorPath(raw string, paths map[string]struct{}) string {
	if isFormLevelKey(raw) {
		return ""
	}
	segments := parsePathSegments(raw)
	if len(segments) == 0 {
		return ""
	}
	if path := longestMatchingPath(segments, paths); path != "" {
		return path
	}
	return longestMatchingPath(dropWrapperSegments(segments), paths)
}

func parsePathSegments(path string) []string {
	clean := strings.TrimSpace(path)
	clean = strings.TrimLeft(clean, "#$/.")

	replacer := strings.NewReplacer("[", ".", "]", "", "//", "/")
	clean = strings.Trim(replacer.Replace(clean), "./")
	if clean == "" {
		return nil
	}

	parts := strings.FieldsFunc(clean, func(r rune) bool {
		return r == '.' || r == '/'
	})
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if segment := strings.TrimSpace(part); segment != "" {
			out = append(out, segment)
		}
	}
	return out
}

var wrapperSegments = map[string]struct{}{
	"body":       {},
	"request":    {},
	"payload":    {},
	"data":       {},
	"attributes": {},
}

func dropWrapperSegments(segments []string) []string {
	out := segments
	for len(out) > 0 {
		if _, ok := wrapperSegments[strings.ToLower(out[0])]; !ok {
			break
		}
		out = out[1:]
	}
	return out
}

func longestMatchingPath(segments []string, paths map[string]struct{}) string {
	for end := len(segments); end > 0; end-- {
		candidate := strings.Join(segments[:end], ".")
		if _, ok := paths[candidate]; ok {
			return candidate
		}
	}
	return ""
}

func isFormLevelKey(key string) bool {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "", ".", "/", "#", "$", "form", "base", "__all__", "non_field_errors", "non-field-errors":
		return true
	default:
		return false
	}
}
