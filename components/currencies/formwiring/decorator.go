// Package formwiring annotates host form fields with the currency component
// endpoints so client side price inputs can reach them.
package formwiring

import (
	"github.com/goliatone/go-pricefield/components/currencies"
	"github.com/goliatone/go-pricefield/pkg/model"
	"github.com/goliatone/go-pricefield/pkg/widgets"
)

// Metadata keys written onto price fields.
const (
	MetadataListEndpoint   = "price.endpoint.currencies"
	MetadataFormatEndpoint = "price.endpoint.format"
	MetadataParseEndpoint  = "price.endpoint.parse"
)

// EndpointDecorator returns a model.Decorator that stamps the mounted
// component routes onto every field the registry resolves to the price
// widget. Existing metadata values are kept.
func EndpointDecorator(registry *widgets.Registry, basePath string, fns ...currencies.OptionFn) model.Decorator {
	if registry == nil {
		registry = widgets.NewRegistry()
	}
	routes := currencies.MountRoutes(basePath, fns...)
	return model.DecoratorFunc(func(form *model.FormModel) error {
		if form == nil {
			return nil
		}
		form.Fields = decorate(registry, form.Fields, routes)
		return nil
	})
}

func decorate(registry *widgets.Registry, fields []model.Field, routes currencies.Routes) []model.Field {
	if len(fields) == 0 {
		return fields
	}
	out := make([]model.Field, len(fields))
	for i, field := range fields {
		if widget, ok := registry.Resolve(field); ok && widget == widgets.WidgetPrice {
			field.Metadata = withDefaults(field.Metadata, map[string]string{
				MetadataListEndpoint:   routes.List,
				MetadataFormatEndpoint: routes.Format,
				MetadataParseEndpoint:  routes.Parse,
			})
		} else if len(field.Nested) > 0 {
			field.Nested = decorate(registry, field.Nested, routes)
		}
		out[i] = field
	}
	return out
}

func withDefaults(metadata, defaults map[string]string) map[string]string {
	out := make(map[string]string, len(metadata)+len(defaults))
	for key, value := range metadata {
		out[key] = value
	}
	for key, value := range defaults {
		if out[key] == "" {
			out[key] = value
		}
	}
	return out
}
