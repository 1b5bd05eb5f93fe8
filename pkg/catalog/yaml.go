package catalog

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-pricefield/pkg/model"
)

type yamlDocument struct {
	Currencies []yamlCurrency `yaml:"currencies"`
}

type yamlCurrency struct {
	Code           string `yaml:"code"`
	FractionDigits *int   `yaml:"fraction_digits"`
	Symbol         string `yaml:"symbol"`
	Name           string `yaml:"name"`
}

// LoadYAML reads a currency list in the form
//
//	currencies:
//	  - code: USD
//	    fraction_digits: 2
//	    symbol: $
//
// Entries without fraction_digits take the ISO 4217 value.
func LoadYAML(r io.Reader) (*Static, error) {
	if r == nil {
		return nil, errors.New("catalog: missing reader")
	}
	var doc yamlDocument
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("catalog: decode yaml: %w", err)
	}

	currencies := make([]model.Currency, 0, len(doc.Currencies))
	for _, entry := range doc.Currencies {
		currency := model.Currency{
			Code:   NormalizeCode(entry.Code),
			Symbol: entry.Symbol,
			Name:   entry.Name,
		}
		if entry.FractionDigits != nil {
			currency.FractionDigits = *entry.FractionDigits
		} else {
			iso, err := ISOCurrency(entry.Code)
			if err != nil {
				return nil, err
			}
			currency.FractionDigits = iso.FractionDigits
		}
		currencies = append(currencies, currency)
	}
	return NewStatic(currencies...)
}

// LoadYAMLFile opens path and delegates to LoadYAML.
func LoadYAMLFile(path string) (*Static, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: open %q: %w", path, err)
	}
	defer func() { _ = f.Close() }()
	return LoadYAML(f)
}
