// Package model defines the value types shared by the price widget packages.
//
// Price is the canonical interchange value (a base-10 string using "." as the
// decimal separator, no grouping) paired with a currency code. Currency
// describes a catalog entry and its fraction digits. FieldState is the
// renderable shape produced by price.Model.Build: an amount sub-field that
// carries the localized text, and a currency sub-field that is either a fixed
// hidden value (single currency catalogs) or a select list (multi currency
// catalogs). ValidationOutcome carries either the reconciled Price or a
// FieldError keyed by the dotted path of the offending sub-field, so renderers
// can surface it through the same Errors map used for server-side feedback.
//
// Field and FormModel are the lightweight host form descriptors consumed by
// the widget registry when deciding which fields should render as a price
// input.
package model
