// Package locale formats canonical decimal strings for display and parses
// localized input back into canonical form.
//
// Locale conventions (decimal separator, grouping separator, minus sign and
// numbering system digits) are discovered through golang.org/x/text; the
// arithmetic itself runs on shopspring/decimal so amounts never pass through
// binary floating point. Only a single decimal number per call is handled:
// there is no currency pattern, percent or scientific support.
package locale
