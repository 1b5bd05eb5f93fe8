package price

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/goliatone/go-pricefield/pkg/model"
)

const (
	// DefaultName is the element name used when Config.Name is blank.
	DefaultName = "price"
	// DefaultSize is the amount input size used when Config.Size is zero.
	DefaultSize = 10
	// DefaultMaxLength is the amount input maxlength used when
	// Config.MaxLength is zero.
	DefaultMaxLength = 128
	// ElementClass is attached to every built element.
	ElementClass = "form-type-price"
)

// Config enumerates the recognised element settings. Display hints are passed
// through to the sub-fields without interpretation.
//
// Default accepts nil, model.Price, *model.Price, map[string]string or
// map[string]any. Maps must carry both the number and currency_code keys.
type Config struct {
	Name        string `json:"name,omitempty" yaml:"name,omitempty" validate:"omitempty,max=128,excludesall=[]"`
	Title       string `json:"title,omitempty" yaml:"title,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Size        int    `json:"size,omitempty" yaml:"size,omitempty" validate:"gte=0"`
	MaxLength   int    `json:"maxLength,omitempty" yaml:"maxLength,omitempty" validate:"gte=0"`
	Required    bool   `json:"required,omitempty" yaml:"required,omitempty"`
	Default     any    `json:"default,omitempty" yaml:"default,omitempty"`
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func configValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Validate checks the display hints. The default value is checked by Build.
func (c Config) Validate() error {
	if err := configValidator().Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

func (c Config) normalized() Config {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		c.Name = DefaultName
	}
	c.Title = strings.TrimSpace(c.Title)
	c.Description = strings.TrimSpace(c.Description)
	if c.Size == 0 {
		c.Size = DefaultSize
	}
	if c.MaxLength == 0 {
		c.MaxLength = DefaultMaxLength
	}
	return c
}

// DefaultPrice returns the configured default as a price. A nil result means
// no default was configured.
func (c Config) DefaultPrice() (*model.Price, error) {
	return parseDefault(c.Default)
}

func parseDefault(value any) (*model.Price, error) {
	switch typed := value.(type) {
	case nil:
		return nil, nil
	case model.Price:
		return &typed, nil
	case *model.Price:
		if typed == nil {
			return nil, nil
		}
		clone := *typed
		return &clone, nil
	case map[string]string:
		number, hasNumber := typed[model.NumberKey]
		code, hasCode := typed[model.CurrencyCodeKey]
		if !hasNumber || !hasCode {
			return nil, missingKeys(hasNumber, hasCode)
		}
		return &model.Price{Number: number, CurrencyCode: code}, nil
	case map[string]any:
		rawNumber, hasNumber := typed[model.NumberKey]
		rawCode, hasCode := typed[model.CurrencyCodeKey]
		if !hasNumber || !hasCode {
			return nil, missingKeys(hasNumber, hasCode)
		}
		number, err := defaultString(model.NumberKey, rawNumber)
		if err != nil {
			return nil, err
		}
		code, err := defaultString(model.CurrencyCodeKey, rawCode)
		if err != nil {
			return nil, err
		}
		return &model.Price{Number: number, CurrencyCode: code}, nil
	default:
		return nil, fmt.Errorf("%w: unsupported type %T", ErrInvalidDefaultValue, value)
	}
}

func missingKeys(hasNumber, hasCode bool) error {
	var missing []string
	if !hasNumber {
		missing = append(missing, model.NumberKey)
	}
	if !hasCode {
		missing = append(missing, model.CurrencyCodeKey)
	}
	return fmt.Errorf("%w: missing %s", ErrInvalidDefaultValue, strings.Join(missing, ", "))
}

func defaultString(key string, value any) (string, error) {
	switch typed := value.(type) {
	case nil:
		return "", nil
	case string:
		return typed, nil
	case json.Number:
		return typed.String(), nil
	case fmt.Stringer:
		return typed.String(), nil
	default:
		return "", fmt.Errorf("%w: %s must be a string, got %T", ErrInvalidDefaultValue, key, value)
	}
}
