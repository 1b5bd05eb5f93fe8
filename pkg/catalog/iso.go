package catalog

import (
	"fmt"

	"github.com/govalues/money"

	"github.com/goliatone/go-pricefield/pkg/model"
)

// ISO builds a catalog for the supplied codes, taking fraction digits from
// the ISO 4217 table. Unknown codes fail the whole catalog.
func ISO(codes ...string) (*Static, error) {
	currencies := make([]model.Currency, 0, len(codes))
	for _, code := range codes {
		currency, err := ISOCurrency(code)
		if err != nil {
			return nil, err
		}
		currencies = append(currencies, currency)
	}
	return NewStatic(currencies...)
}

// ISOCurrency resolves a single code against the ISO 4217 table. Numeric codes
// such as "840" are accepted and normalised to their alphabetic form.
func ISOCurrency(code string) (model.Currency, error) {
	normalized := NormalizeCode(code)
	if normalized == "" {
		return model.Currency{}, ErrMissingCode
	}
	curr, err := money.ParseCurr(normalized)
	if err != nil {
		return model.Currency{}, fmt.Errorf("%w: %s", ErrUnknownCurrency, normalized)
	}
	return model.Currency{
		Code:           curr.Code(),
		FractionDigits: curr.Scale(),
	}, nil
}
