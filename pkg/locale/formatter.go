package locale

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"

	"github.com/goliatone/go-pricefield/pkg/model"
)

// DefaultMaxFractionDigits caps the fraction digits shown when formatting an
// amount for display, independent of any currency.
const DefaultMaxFractionDigits = 6

var (
	// ErrInvalidNumber is returned by Format when the value is not a canonical
	// decimal string.
	ErrInvalidNumber = errors.New("locale: invalid canonical number")
	// ErrNotNumeric is wrapped by every Parse failure.
	ErrNotNumeric = errors.New("locale: not numeric")
	// ErrExcessPrecision is returned by Parse when the input carries more
	// significant fraction digits than the currency allows.
	ErrExcessPrecision = fmt.Errorf("%w: excess precision", ErrNotNumeric)
)

// FormatOptions mirrors the fraction digit and grouping knobs of a decimal
// number formatter.
type FormatOptions struct {
	MinFractionDigits int
	MaxFractionDigits int
	GroupingUsed      bool
}

// Formatter converts canonical decimal strings to localized display strings
// and back for a single locale. It is immutable and safe for concurrent use.
type Formatter struct {
	tag     language.Tag
	symbols Symbols
}

// New returns a formatter for tag using symbols discovered through
// golang.org/x/text.
func New(tag language.Tag) *Formatter {
	return &Formatter{tag: tag, symbols: DiscoverSymbols(tag)}
}

// NewWithSymbols returns a formatter with explicit symbols. Blank symbols take
// their DefaultSymbols value, except Group which may stay empty.
func NewWithSymbols(tag language.Tag, symbols Symbols) *Formatter {
	defaults := DefaultSymbols()
	if symbols.Decimal == "" {
		symbols.Decimal = defaults.Decimal
	}
	if symbols.Minus == "" {
		symbols.Minus = defaults.Minus
	}
	if symbols.Plus == "" {
		symbols.Plus = defaults.Plus
	}
	if symbols.Zero == 0 {
		symbols.Zero = defaults.Zero
	}
	return &Formatter{tag: tag, symbols: symbols}
}

// Locale returns the formatter locale.
func (f *Formatter) Locale() language.Tag {
	return f.tag
}

// Symbols returns the formatter symbols.
func (f *Formatter) Symbols() Symbols {
	return f.symbols
}

// Format renders value with at least MinFractionDigits and at most
// MaxFractionDigits fraction digits. Values are rounded half away from zero
// at the maximum, then trailing zeros are stripped down to the minimum.
func (f *Formatter) Format(value string, opts FormatOptions) (string, error) {
	value = strings.TrimSpace(value)
	if !IsCanonical(value) {
		return "", fmt.Errorf("%w: %q", ErrInvalidNumber, value)
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidNumber, value)
	}
	minDigits, maxDigits := clampDigits(opts.MinFractionDigits, opts.MaxFractionDigits)

	fixed := d.Round(int32(maxDigits)).StringFixed(int32(maxDigits))
	negative := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")

	intPart, frac, _ := strings.Cut(fixed, ".")
	for len(frac) > minDigits && strings.HasSuffix(frac, "0") {
		frac = frac[:len(frac)-1]
	}
	if negative && allZero(intPart) && allZero(frac) {
		negative = false
	}

	if opts.GroupingUsed && f.symbols.Group != "" {
		intPart = groupDigits(intPart, f.symbols.Group)
	}

	var b strings.Builder
	if negative {
		b.WriteString(f.symbols.Minus)
	}
	b.WriteString(localizeDigits(intPart, f.symbols.Zero))
	if frac != "" {
		b.WriteString(f.symbols.Decimal)
		b.WriteString(localizeDigits(frac, f.symbols.Zero))
	}
	return b.String(), nil
}

// Parse converts localized text into a canonical decimal string scoped to the
// precision of currency. The currency code and symbol are ignored when
// present. Grouping separators are accepted in the integer part only when
// they split it into groups of three digits. Fraction digits beyond the
// currency precision are rejected unless they are trailing zeros, which are
// dropped.
func (f *Formatter) Parse(text string, currency model.Currency) (string, error) {
	cleaned := stripCurrency(text, currency)
	if cleaned == "" {
		return "", fmt.Errorf("%w: empty input", ErrNotNumeric)
	}

	negative, intPart, frac, err := f.scan(cleaned)
	if err != nil {
		return "", fmt.Errorf("%w: %q", err, text)
	}

	digits := max(currency.FractionDigits, 0)
	if len(frac) > digits {
		if len(strings.TrimRight(frac, "0")) > digits {
			return "", fmt.Errorf("%w: %q exceeds %d fraction digits for %s", ErrExcessPrecision, text, digits, currency.Code)
		}
		frac = frac[:digits]
	}

	intPart = strings.TrimLeft(intPart, "0")
	if intPart == "" {
		intPart = "0"
	}
	if negative && allZero(intPart) && allZero(frac) {
		negative = false
	}

	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}
	b.WriteString(intPart)
	if frac != "" {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String(), nil
}

// scan tokenizes cleaned input into a sign, ASCII integer digits and ASCII
// fraction digits.
func (f *Formatter) scan(input string) (bool, string, string, error) {
	var (
		negative   bool
		signSeen   bool
		decimalSet bool
		groups     []string
		current    strings.Builder
		frac       strings.Builder
		digitsSeen bool
	)

	for i := 0; i < len(input); {
		rest := input[i:]

		if sign, size := f.matchSign(rest); size > 0 {
			if signSeen || digitsSeen || decimalSet {
				return false, "", "", ErrNotNumeric
			}
			signSeen = true
			negative = sign < 0
			i += size
			continue
		}
		if strings.HasPrefix(rest, f.symbols.Decimal) {
			if decimalSet {
				return false, "", "", ErrNotNumeric
			}
			decimalSet = true
			i += len(f.symbols.Decimal)
			continue
		}
		if size := f.matchGroup(rest); size > 0 {
			if decimalSet || current.Len() == 0 {
				return false, "", "", ErrNotNumeric
			}
			groups = append(groups, current.String())
			current.Reset()
			i += size
			continue
		}

		r, size := utf8.DecodeRuneInString(rest)
		i += size
		if isBidiMark(r) {
			continue
		}
		value, ok := digitValue(r, f.symbols.Zero)
		if !ok {
			return false, "", "", ErrNotNumeric
		}
		digitsSeen = true
		if decimalSet {
			frac.WriteByte(byte('0' + value))
		} else {
			current.WriteByte(byte('0' + value))
		}
	}

	if !digitsSeen {
		return false, "", "", ErrNotNumeric
	}

	intPart := current.String()
	if len(groups) > 0 {
		if len(intPart) != 3 || len(groups[0]) > 3 {
			return false, "", "", ErrNotNumeric
		}
		for _, group := range groups[1:] {
			if len(group) != 3 {
				return false, "", "", ErrNotNumeric
			}
		}
		intPart = strings.Join(groups, "") + intPart
	}
	return negative, intPart, frac.String(), nil
}

func (f *Formatter) matchSign(s string) (int, int) {
	for _, minus := range []string{f.symbols.Minus, "-", "\u2212"} {
		if minus != "" && strings.HasPrefix(s, minus) {
			return -1, len(minus)
		}
	}
	for _, plus := range []string{f.symbols.Plus, "+"} {
		if plus != "" && strings.HasPrefix(s, plus) {
			return 1, len(plus)
		}
	}
	return 0, 0
}

// matchGroup reports the byte length of a grouping separator at the start of
// s. Space-like separators accept any white space rune since users rarely
// type the narrow no-break space most locales specify.
func (f *Formatter) matchGroup(s string) int {
	group := f.symbols.Group
	if group == "" {
		return 0
	}
	if strings.HasPrefix(s, group) {
		return len(group)
	}
	if g, _ := utf8.DecodeRuneInString(group); unicode.IsSpace(g) {
		if r, size := utf8.DecodeRuneInString(s); unicode.IsSpace(r) {
			return size
		}
	}
	return 0
}

// IsCanonical reports whether value is an optional "-", one or more ASCII
// digits and an optional "." followed by one or more digits.
func IsCanonical(value string) bool {
	value = strings.TrimPrefix(value, "-")
	intPart, frac, hasDot := strings.Cut(value, ".")
	if !asciiDigits(intPart) {
		return false
	}
	return !hasDot || asciiDigits(frac)
}

func asciiDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// stripCurrency drops the currency code or symbol when it leads or trails
// the text. Occurrences inside the number are left for scan to reject.
func stripCurrency(text string, currency model.Currency) string {
	cleaned := strings.TrimSpace(text)
	var tokens []string
	if code := strings.TrimSpace(currency.Code); code != "" {
		tokens = append(tokens, strings.ToUpper(code), strings.ToLower(code))
	}
	if symbol := strings.TrimSpace(currency.Symbol); symbol != "" {
		tokens = append(tokens, symbol)
	}
	for _, token := range tokens {
		if trimmed, ok := strings.CutPrefix(cleaned, token); ok {
			cleaned = strings.TrimSpace(trimmed)
			break
		}
	}
	for _, token := range tokens {
		if trimmed, ok := strings.CutSuffix(cleaned, token); ok {
			cleaned = strings.TrimSpace(trimmed)
			break
		}
	}
	return cleaned
}

func clampDigits(minDigits, maxDigits int) (int, int) {
	minDigits = max(minDigits, 0)
	maxDigits = max(maxDigits, 0)
	if minDigits > maxDigits {
		minDigits = maxDigits
	}
	return minDigits, maxDigits
}

func groupDigits(digits, sep string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

func allZero(digits string) bool {
	for _, r := range digits {
		if r != '0' {
			return false
		}
	}
	return true
}
