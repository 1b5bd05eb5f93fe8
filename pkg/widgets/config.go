package widgets

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-pricefield/pkg/model"
	"github.com/goliatone/go-pricefield/pkg/price"
)

// Metadata keys read by PriceConfig.
const (
	MetadataSize      = "price.size"
	MetadataMaxLength = "price.maxlength"
)

// PriceConfig maps a host field onto the element configuration. Size and
// maximum length come from metadata and fall back to the element defaults.
func PriceConfig(field model.Field) price.Config {
	cfg := price.Config{
		Name:        field.Name,
		Title:       strings.TrimSpace(field.Label),
		Description: strings.TrimSpace(field.Description),
		Required:    field.Required,
		Default:     field.Default,
	}
	if size, ok := metadataInt(field, MetadataSize); ok {
		cfg.Size = size
	}
	if maxLength, ok := metadataInt(field, MetadataMaxLength); ok {
		cfg.MaxLength = maxLength
	}
	return cfg
}

func metadataInt(field model.Field, key string) (int, bool) {
	raw := strings.TrimSpace(field.Metadata[key])
	if raw == "" {
		return 0, false
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return 0, false
	}
	return value, true
}
