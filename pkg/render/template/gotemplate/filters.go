package gotemplate

import (
	"strings"

	"github.com/flosch/pongo2/v6"
)

func registerDefaultFilters() {
	if !pongo2.FilterExists("trim") {
		_ = pongo2.RegisterFilter("trim", filterTrim)
	}
	if !pongo2.FilterExists("input_name") {
		_ = pongo2.RegisterFilter("input_name", filterInputName)
	}
	if !pongo2.FilterExists("field_id") {
		_ = pongo2.RegisterFilter("field_id", filterFieldID)
	}
}

func filterTrim(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.Len() <= 0 {
		return pongo2.AsValue(""), nil
	}
	return pongo2.AsValue(strings.TrimSpace(in.String())), nil
}

// filterInputName turns an element name and a sub-field key into the posted
// input name: {{ "price"|input_name:"number" }} renders price[number].
func filterInputName(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	element := strings.TrimSpace(in.String())
	key := ""
	if param != nil {
		key = strings.TrimSpace(param.String())
	}
	switch {
	case element == "":
		return pongo2.AsValue(key), nil
	case key == "":
		return pongo2.AsValue(element), nil
	default:
		return pongo2.AsValue(element + "[" + key + "]"), nil
	}
}

// filterFieldID turns a dotted path or posted name into an HTML id:
// "price.number" and "price[number]" both render price-number.
func filterFieldID(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	replacer := strings.NewReplacer(".", "-", "[", "-", "]", "", "_", "-", " ", "-")
	return pongo2.AsValue(strings.ToLower(replacer.Replace(strings.TrimSpace(in.String())))), nil
}
