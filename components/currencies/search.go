package currencies

import (
	"sort"
	"strings"

	"github.com/goliatone/go-pricefield/pkg/model"
)

// Option is a currency entry of the list response.
type Option struct {
	Value          string `json:"value"`
	Label          string `json:"label"`
	FractionDigits int    `json:"fraction_digits"`
}

// Search filters currencies by a case-insensitive code match. Prefix matches
// come first; an empty query keeps catalog order.
func Search(currencies []model.Currency, query string, limit int, opts Options) []model.Currency {
	limit = clampLimit(limit, opts)
	if limit == 0 {
		return nil
	}

	query = strings.TrimSpace(query)
	if query == "" {
		if len(currencies) <= limit {
			return append([]model.Currency{}, currencies...)
		}
		return append([]model.Currency{}, currencies[:limit]...)
	}

	q := strings.ToUpper(query)
	matches := make([]matchedCurrency, 0, len(currencies))
	for _, currency := range currencies {
		if !strings.Contains(currency.Code, q) {
			continue
		}
		matches = append(matches, matchedCurrency{
			currency: currency,
			isPrefix: strings.HasPrefix(currency.Code, q),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].isPrefix != matches[j].isPrefix {
			return matches[i].isPrefix
		}
		return matches[i].currency.Code < matches[j].currency.Code
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}

	out := make([]model.Currency, 0, len(matches))
	for _, match := range matches {
		out = append(out, match.currency)
	}
	return out
}

func SearchOptions(currencies []model.Currency, query string, limit int, opts Options) []Option {
	results := Search(currencies, query, limit, opts)
	if len(results) == 0 {
		return nil
	}

	out := make([]Option, 0, len(results))
	for _, currency := range results {
		out = append(out, Option{
			Value:          currency.Code,
			Label:          currency.Code,
			FractionDigits: currency.FractionDigits,
		})
	}
	return out
}

type matchedCurrency struct {
	currency model.Currency
	isPrefix bool
}
