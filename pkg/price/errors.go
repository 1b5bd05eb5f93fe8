package price

import "errors"

var (
	// ErrInvalidDefaultValue is returned by Build when the configured default
	// is not a price with both number and currency_code keys.
	ErrInvalidDefaultValue = errors.New("price: invalid default value")
	// ErrInvalidConfig is returned by Build when the display hints fail
	// validation.
	ErrInvalidConfig = errors.New("price: invalid config")
	// ErrMissingCatalog is returned by New without a catalog.
	ErrMissingCatalog = errors.New("price: missing currency catalog")
	// ErrMissingFormatter is returned by New without a number formatter.
	ErrMissingFormatter = errors.New("price: missing number formatter")
)
