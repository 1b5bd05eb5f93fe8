package locale

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Symbols holds the locale conventions needed to format and parse a single
// decimal number. Zero is the digit zero of the locale numbering system; the
// remaining digits follow it contiguously.
type Symbols struct {
	Decimal string
	Group   string
	Minus   string
	Plus    string
	Zero    rune
}

// DefaultSymbols returns dot-decimal, comma-grouped Latin symbols.
func DefaultSymbols() Symbols {
	return Symbols{
		Decimal: ".",
		Group:   ",",
		Minus:   "-",
		Plus:    "+",
		Zero:    '0',
	}
}

// probeValue has three digit groups and a single fraction digit so every
// separator shows up in its formatted form.
const probeValue = -12345678.5

// DiscoverSymbols derives the symbols of tag by formatting a probe number with
// golang.org/x/text and reading the separators back. Locales whose output
// cannot be decoded fall back to DefaultSymbols.
func DiscoverSymbols(tag language.Tag) Symbols {
	printer := message.NewPrinter(tag)
	probe := printer.Sprintf("%v", number.Decimal(probeValue,
		number.MinFractionDigits(1),
		number.MaxFractionDigits(1),
	))
	symbols, ok := decodeProbe(probe)
	if !ok {
		return DefaultSymbols()
	}
	return symbols
}

type probeRun struct {
	digits bool
	text   string
	first  rune
	count  int
}

func decodeProbe(probe string) (Symbols, bool) {
	var runs []probeRun
	for _, r := range probe {
		isDigit := unicode.IsDigit(r)
		if n := len(runs); n > 0 && runs[n-1].digits == isDigit {
			runs[n-1].text += string(r)
			runs[n-1].count++
			continue
		}
		runs = append(runs, probeRun{digits: isDigit, text: string(r), first: r, count: 1})
	}

	var (
		digitRuns []int
		prefix    string
	)
	for idx, run := range runs {
		if run.digits {
			digitRuns = append(digitRuns, idx)
			continue
		}
		if len(digitRuns) == 0 {
			prefix += run.text
		}
	}
	if len(digitRuns) < 2 {
		return Symbols{}, false
	}

	first := runs[digitRuns[0]]
	last := runs[digitRuns[len(digitRuns)-1]]
	zero := first.first - 1
	if last.count != 1 || last.first != zero+5 {
		return Symbols{}, false
	}

	decimalIdx := digitRuns[len(digitRuns)-1] - 1
	decimal := runs[decimalIdx].text
	if runs[decimalIdx].digits || decimal == "" {
		return Symbols{}, false
	}

	group := ""
	if len(digitRuns) > 2 {
		group = runs[digitRuns[0]+1].text
		if group == decimal {
			return Symbols{}, false
		}
	}

	minus := prefix
	if stripBidi(minus) == "" {
		minus = "-"
	}

	return Symbols{
		Decimal: decimal,
		Group:   group,
		Minus:   minus,
		Plus:    "+",
		Zero:    zero,
	}, true
}

// digitValue maps r to its value in the numbering system starting at zero.
// ASCII digits are always accepted.
func digitValue(r, zero rune) (int, bool) {
	if r >= '0' && r <= '9' {
		return int(r - '0'), true
	}
	if zero != '0' && r >= zero && r <= zero+9 {
		return int(r - zero), true
	}
	return 0, false
}

func localizeDigits(digits string, zero rune) string {
	if zero == '0' || zero == 0 {
		return digits
	}
	out := make([]rune, 0, utf8.RuneCountInString(digits))
	for _, r := range digits {
		if r >= '0' && r <= '9' {
			out = append(out, zero+(r-'0'))
			continue
		}
		out = append(out, r)
	}
	return string(out)
}

func isBidiMark(r rune) bool {
	switch r {
	case '\u200e', '\u200f', '\u061c':
		return true
	default:
		return false
	}
}

func stripBidi(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if isBidiMark(r) {
			continue
		}
		out = append(out, r)
	}
	return string(out)
}
