package price

import "github.com/goliatone/go-pricefield/pkg/model"

// ValueCallback reconciles raw submitted input. Structured input with a
// number key passes through with an empty number replaced by "0"; anything
// else reports no value so the caller falls back to the default.
func ValueCallback(input any) (map[string]string, bool) {
	switch typed := input.(type) {
	case map[string]string:
		if _, ok := typed[model.NumberKey]; !ok {
			return nil, false
		}
		out := make(map[string]string, len(typed))
		for key, value := range typed {
			out[key] = value
		}
		if out[model.NumberKey] == "" {
			out[model.NumberKey] = "0"
		}
		return out, true
	case map[string]any:
		raw, ok := typed[model.NumberKey]
		if !ok || raw == nil {
			return nil, false
		}
		out := make(map[string]string, len(typed))
		for key, value := range typed {
			if str, isString := value.(string); isString {
				out[key] = str
			}
		}
		if _, isString := raw.(string); !isString {
			return nil, false
		}
		if out[model.NumberKey] == "" {
			out[model.NumberKey] = "0"
		}
		return out, true
	default:
		return nil, false
	}
}

// Submitted converts reconciled input into the price Validate expects.
func Submitted(values map[string]string) model.Price {
	return model.Price{
		Number:       values[model.NumberKey],
		CurrencyCode: values[model.CurrencyCodeKey],
	}
}
