// Package catalog provides read-only currency lookups for the price widget.
//
// A Catalog is consumed, never mutated, by price.Model. Static is the
// in-memory snapshot every adapter in this module produces: ISO resolves
// fraction digits from the ISO 4217 table, LoadYAML reads a currency list
// from a document, and pgcatalog loads one from a SQL table.
package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-pricefield/pkg/model"
)

var (
	// ErrDuplicateCode is returned when two entries share a currency code.
	ErrDuplicateCode = errors.New("catalog: duplicate currency code")
	// ErrInvalidFractionDigits is returned for negative fraction digits.
	ErrInvalidFractionDigits = errors.New("catalog: invalid fraction digits")
	// ErrUnknownCurrency is returned when a code is missing from the ISO table.
	ErrUnknownCurrency = errors.New("catalog: unknown currency")
	// ErrMissingCode is returned for entries without a code.
	ErrMissingCode = errors.New("catalog: missing currency code")
)

// Catalog lists the available currencies. All must return entries in a stable
// order so select lists render deterministically.
type Catalog interface {
	All() []model.Currency
	Lookup(code string) (model.Currency, bool)
}

// Static is an immutable catalog snapshot. It is safe for concurrent use.
type Static struct {
	currencies []model.Currency
	index      map[string]int
}

var _ Catalog = (*Static)(nil)

// NewStatic builds a catalog preserving the order of the supplied entries.
// Codes are trimmed and upper-cased.
func NewStatic(currencies ...model.Currency) (*Static, error) {
	out := &Static{
		currencies: make([]model.Currency, 0, len(currencies)),
		index:      make(map[string]int, len(currencies)),
	}
	for _, currency := range currencies {
		currency.Code = NormalizeCode(currency.Code)
		if currency.Code == "" {
			return nil, ErrMissingCode
		}
		if currency.FractionDigits < 0 {
			return nil, fmt.Errorf("%w: %s has %d", ErrInvalidFractionDigits, currency.Code, currency.FractionDigits)
		}
		if _, exists := out.index[currency.Code]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCode, currency.Code)
		}
		out.index[currency.Code] = len(out.currencies)
		out.currencies = append(out.currencies, currency)
	}
	return out, nil
}

// MustStatic mirrors NewStatic but panics on error, simplifying fixtures and
// package-level catalogs.
func MustStatic(currencies ...model.Currency) *Static {
	cat, err := NewStatic(currencies...)
	if err != nil {
		panic(err)
	}
	return cat
}

// All returns a copy of the catalog entries.
func (s *Static) All() []model.Currency {
	if s == nil || len(s.currencies) == 0 {
		return nil
	}
	return append([]model.Currency(nil), s.currencies...)
}

// Lookup resolves a currency by code. Matching ignores case and surrounding
// whitespace.
func (s *Static) Lookup(code string) (model.Currency, bool) {
	if s == nil {
		return model.Currency{}, false
	}
	idx, ok := s.index[NormalizeCode(code)]
	if !ok {
		return model.Currency{}, false
	}
	return s.currencies[idx], true
}

// Len returns the number of entries.
func (s *Static) Len() int {
	if s == nil {
		return 0
	}
	return len(s.currencies)
}

// Codes returns the currency codes in catalog order.
func Codes(cat Catalog) []string {
	if cat == nil {
		return nil
	}
	all := cat.All()
	if len(all) == 0 {
		return nil
	}
	codes := make([]string, 0, len(all))
	for _, currency := range all {
		codes = append(codes, currency.Code)
	}
	return codes
}

// MinFractionDigits returns the smallest fraction digit count across the
// catalog. ok is false for an empty catalog.
func MinFractionDigits(cat Catalog) (int, bool) {
	if cat == nil {
		return 0, false
	}
	all := cat.All()
	if len(all) == 0 {
		return 0, false
	}
	lowest := all[0].FractionDigits
	for _, currency := range all[1:] {
		lowest = min(lowest, currency.FractionDigits)
	}
	return lowest, true
}

// NormalizeCode trims and upper-cases a currency code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
