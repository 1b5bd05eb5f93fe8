// Package price builds and validates the price input element.
//
// A Model pairs a currency catalog with a locale number formatter. Build turns
// a Config (and its optional default price) into a model.FieldState that
// renderers consume; Validate parses the submitted amount against the
// precision of the selected currency and returns a model.ValidationOutcome.
// Configuration mistakes surface as Go errors from Build, while user input
// problems are always reported through the outcome.
package price
