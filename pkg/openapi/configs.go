package openapi

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-pricefield/pkg/model"
	"github.com/goliatone/go-pricefield/pkg/price"
	"github.com/goliatone/go-pricefield/pkg/widgets"
)

// Extension keys recognised on schemas.
const (
	WidgetExtensionKey = "x-formgen-widget"
	SizeExtensionKey   = "x-formgen-size"
)

// ErrEmptyDocument is returned when no payload is supplied.
var ErrEmptyDocument = errors.New("openapi: document payload is empty")

// Entry is a price element found in a document. Path is the dotted location
// of the schema, starting with the component name.
type Entry struct {
	Path   string       `json:"path"`
	Config price.Config `json:"config"`
}

// ConfigFromSchema maps a schema onto a price configuration. The boolean is
// false when the schema does not describe a price element.
func ConfigFromSchema(name string, schema *openapi3.Schema, required bool) (price.Config, bool) {
	return configFromSchema(widgets.NewRegistry(), name, schema, required)
}

func configFromSchema(registry *widgets.Registry, name string, schema *openapi3.Schema, required bool) (price.Config, bool) {
	if schema == nil {
		return price.Config{}, false
	}
	field := FieldFromSchema(name, schema, required)
	widget, ok := registry.Resolve(field)
	if !ok || widget != widgets.WidgetPrice {
		return price.Config{}, false
	}
	return widgets.PriceConfig(field), true
}

// FieldFromSchema converts a schema into a host field, carrying the widget
// extension as a UI hint.
func FieldFromSchema(name string, schema *openapi3.Schema, required bool) model.Field {
	field := model.Field{
		Name:        name,
		Type:        fieldType(schema.Type),
		Format:      schema.Format,
		Required:    required,
		Label:       strings.TrimSpace(schema.Title),
		Description: strings.TrimSpace(schema.Description),
		Default:     schema.Default,
	}
	if widget := extensionString(schema.Extensions, WidgetExtensionKey); widget != "" {
		field.UIHints = map[string]string{"widget": widget}
	}

	metadata := map[string]string{}
	if schema.MaxLength != nil {
		metadata[widgets.MetadataMaxLength] = strconv.FormatUint(*schema.MaxLength, 10)
	}
	if size := extensionString(schema.Extensions, SizeExtensionKey); size != "" {
		metadata[widgets.MetadataSize] = size
	}
	if len(metadata) > 0 {
		field.Metadata = metadata
	}

	for _, key := range sortedKeys(schema.Properties) {
		ref := schema.Properties[key]
		if ref == nil || ref.Value == nil {
			continue
		}
		field.Nested = append(field.Nested, FieldFromSchema(key, ref.Value, contains(schema.Required, key)))
	}
	return field
}

// ConfigsFromDocument loads an OpenAPI document and returns every price
// element among its component schemas, ordered by path.
func ConfigsFromDocument(data []byte) ([]Entry, error) {
	return ConfigsFromDocumentContext(context.Background(), data)
}

// ConfigsFromDocumentContext mirrors ConfigsFromDocument with a caller
// supplied context for reference resolution.
func ConfigsFromDocumentContext(ctx context.Context, data []byte) ([]Entry, error) {
	if len(data) == 0 {
		return nil, ErrEmptyDocument
	}
	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	if doc.Components == nil {
		return nil, nil
	}

	registry := widgets.NewRegistry()
	var entries []Entry
	for _, name := range sortedKeys(doc.Components.Schemas) {
		ref := doc.Components.Schemas[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		entries = collect(registry, entries, name, name, ref.Value, false, 0)
	}
	return entries, nil
}

// Configs extracts the price elements of a loaded document.
func (d Document) Configs(ctx context.Context) ([]Entry, error) {
	return ConfigsFromDocumentContext(ctx, d.raw)
}

const maxDepth = 8

func collect(registry *widgets.Registry, entries []Entry, path, name string, schema *openapi3.Schema, required bool, depth int) []Entry {
	if cfg, ok := configFromSchema(registry, name, schema, required); ok {
		return append(entries, Entry{Path: path, Config: cfg})
	}
	if depth >= maxDepth {
		return entries
	}
	for _, key := range sortedKeys(schema.Properties) {
		ref := schema.Properties[key]
		if ref == nil || ref.Value == nil {
			continue
		}
		entries = collect(registry, entries, model.JoinPath(path, key), key, ref.Value, contains(schema.Required, key), depth+1)
	}
	return entries
}

func fieldType(types *openapi3.Types) model.FieldType {
	if types == nil {
		return ""
	}
	switch {
	case types.Is(openapi3.TypeObject):
		return model.FieldTypeObject
	case types.Is(openapi3.TypeNumber), types.Is(openapi3.TypeInteger):
		return model.FieldTypeNumber
	case types.Is(openapi3.TypeBoolean):
		return model.FieldTypeBoolean
	case types.Is(openapi3.TypeString):
		return model.FieldTypeString
	default:
		return ""
	}
}

func extensionString(ext map[string]any, key string) string {
	value, ok := ext[key]
	if !ok || value == nil {
		return ""
	}
	switch typed := value.(type) {
	case string:
		return strings.TrimSpace(typed)
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	default:
		return strings.Trim(strings.TrimSpace(fmt.Sprint(typed)), `"`)
	}
}

func sortedKeys[V any](in map[string]V) []string {
	keys := make([]string, 0, len(in))
	for key := range in {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func contains(values []string, target string) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}
