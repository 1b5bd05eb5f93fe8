package model

import "strings"

// Sub-field names used for the amount and currency inputs. Posted values and
// error paths use the same keys.
const (
	NumberKey       = "number"
	CurrencyCodeKey = "currency_code"
)

// Price is a canonical amount paired with a currency code. Number is never
// localized: it uses "." as the decimal separator and carries no grouping.
type Price struct {
	Number       string `json:"number" yaml:"number"`
	CurrencyCode string `json:"currency_code" yaml:"currency_code"`
}

// Map returns the price as the structured value hosts write back into form
// state.
func (p Price) Map() map[string]string {
	return map[string]string{
		NumberKey:       p.Number,
		CurrencyCodeKey: p.CurrencyCode,
	}
}

// Currency is a catalog entry. Symbol and Name are optional display aids.
type Currency struct {
	Code           string `json:"code" yaml:"code"`
	FractionDigits int    `json:"fraction_digits" yaml:"fraction_digits"`
	Symbol         string `json:"symbol,omitempty" yaml:"symbol,omitempty"`
	Name           string `json:"name,omitempty" yaml:"name,omitempty"`
}

// Mode describes how the currency sub-field is presented. The zero value marks
// an empty field built against an empty catalog.
type Mode string

const (
	ModeSingleCurrency Mode = "single"
	ModeMultiCurrency  Mode = "multi"
)

// ModeFor derives the presentation mode from the number of available
// currencies.
func ModeFor(count int) Mode {
	switch {
	case count <= 0:
		return ""
	case count == 1:
		return ModeSingleCurrency
	default:
		return ModeMultiCurrency
	}
}

// CurrencyKind selects the input used for the currency sub-field.
type CurrencyKind string

const (
	CurrencyKindHidden CurrencyKind = "hidden"
	CurrencyKindSelect CurrencyKind = "select"
)

// Option is a single select list entry.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// AmountField is the text input holding the localized amount.
type AmountField struct {
	Name        string `json:"name"`
	Title       string `json:"title,omitempty"`
	Value       string `json:"value"`
	Placeholder string `json:"placeholder,omitempty"`
	Required    bool   `json:"required"`
	Size        int    `json:"size,omitempty"`
	MaxLength   int    `json:"maxLength,omitempty"`
	Suffix      string `json:"suffix,omitempty"`
	Description string `json:"description,omitempty"`
}

// CurrencyField is either a hidden input fixed to the only available currency
// or a select list over every catalog entry.
type CurrencyField struct {
	Name           string       `json:"name"`
	Kind           CurrencyKind `json:"kind"`
	Title          string       `json:"title,omitempty"`
	TitleInvisible bool         `json:"titleInvisible,omitempty"`
	Value          string       `json:"value,omitempty"`
	Options        []Option     `json:"options,omitempty"`
	Description    string       `json:"description,omitempty"`
}

// FieldState is the renderable price element. It is built fresh per render
// and discarded once the submission has been validated.
type FieldState struct {
	Name     string        `json:"name"`
	Title    string        `json:"title,omitempty"`
	Mode     Mode          `json:"mode,omitempty"`
	Classes  []string      `json:"classes,omitempty"`
	Amount   AmountField   `json:"amount"`
	Currency CurrencyField `json:"currency"`
}

// IsEmpty reports whether the state was built without any currencies and
// should render nothing further.
func (s FieldState) IsEmpty() bool {
	return s.Mode == ""
}

// NumberText returns the localized amount shown to the user.
func (s FieldState) NumberText() string {
	return s.Amount.Value
}

// CurrencyCode returns the fixed or pre-selected currency code. The empty
// string means no currency has been chosen yet.
func (s FieldState) CurrencyCode() string {
	return s.Currency.Value
}

// Path returns the dotted path of a sub-field inside the element.
func (s FieldState) Path(key string) string {
	return JoinPath(s.Name, key)
}

// FieldError is a user-facing validation message attached to a sub-field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return e.Message
}

// ValidationOutcome is either a reconciled price or a field error. An outcome
// with neither set means nothing was entered.
type ValidationOutcome struct {
	Price *Price      `json:"price,omitempty"`
	Err   *FieldError `json:"error,omitempty"`
}

// OK reports whether the submission passed validation.
func (o ValidationOutcome) OK() bool {
	return o.Err == nil
}

// Ok wraps a reconciled price.
func Ok(price Price) ValidationOutcome {
	return ValidationOutcome{Price: &price}
}

// Invalid wraps a field error.
func Invalid(field, message string) ValidationOutcome {
	return ValidationOutcome{Err: &FieldError{Field: field, Message: message}}
}

// JoinPath joins dotted path segments, skipping blanks.
func JoinPath(parent, child string) string {
	parent = strings.TrimSpace(parent)
	child = strings.TrimSpace(child)
	if parent == "" {
		return child
	}
	if child == "" {
		return parent
	}
	return parent + "." + child
}
