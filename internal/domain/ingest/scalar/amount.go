// Package scalar provides locale-tolerant parsing of amount and date tokens
// found in bank exports and scanned statements. All parsers are forgiving:
// malformed input degrades to a zero value instead of an error, so a single
// bad cell never aborts the surrounding row or line.
package scalar

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// guaraniMarker matches the local-currency marker ("Gs." / "Gs" / "GS") as a
// standalone token. The word boundary matters: "Gs" must be stripped from
// "Gs. 1.500" but not from the middle of a description fragment.
var guaraniMarker = regexp.MustCompile(`(?i)(^|[\s(])gs\.?(\s|\d|$)`)

var currencySymbols = strings.NewReplacer(
	"₲", "", "$", "", "€", "", "£", "",
	"USD", "", "usd", "", "PYG", "", "pyg", "",
)

// ParseAmount converts an amount token into a decimal value.
//
// It tolerates currency symbols, the guaraní marker, thousands separators in
// either the comma or dot convention, and negation via parentheses or a
// leading minus. When both separators appear, the one occurring later in the
// string is the decimal separator; a lone separator fewer than three
// characters from the end is a decimal separator regardless of symbol.
// Unparseable input yields zero.
func ParseAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}

	s = guaraniMarker.ReplaceAllString(s, "$1$2")
	s = currencySymbols.Replace(s)
	s = strings.TrimSpace(s)

	negative := false
	if strings.Contains(s, "(") && strings.Contains(s, ")") {
		negative = true
	}
	s = strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9', r == ',', r == '.', r == '-':
			return r
		default:
			return -1
		}
	}, s)
	if strings.HasPrefix(s, "-") {
		negative = true
	}
	s = strings.Trim(s, "-")
	if s == "" {
		return decimal.Zero
	}

	s = normalizeSeparators(s)

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	if negative {
		d = d.Neg()
	}
	return d
}

// normalizeSeparators rewrites a digit string with mixed comma/dot separators
// into canonical dot-decimal form.
func normalizeSeparators(s string) string {
	lastComma := strings.LastIndex(s, ",")
	lastDot := strings.LastIndex(s, ".")

	switch {
	case lastComma >= 0 && lastDot >= 0:
		// Both present: the later one is the decimal separator.
		if lastComma > lastDot {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", -1)
			s = stripAllButLast(s, '.')
		} else {
			s = strings.ReplaceAll(s, ",", "")
			s = stripAllButLast(s, '.')
		}

	case lastComma >= 0:
		s = resolveSingleSeparator(s, ',')

	case lastDot >= 0:
		s = resolveSingleSeparator(s, '.')
	}

	return s
}

// resolveSingleSeparator handles strings with only one separator type. A
// separator fewer than 3 characters from the end is a decimal point;
// otherwise every occurrence is a thousands separator.
func resolveSingleSeparator(s string, sep rune) string {
	idx := strings.LastIndex(s, string(sep))
	if len(s)-idx-1 < 3 {
		s = stripAllButLast(s, sep)
		return strings.Replace(s, string(sep), ".", 1)
	}
	return strings.ReplaceAll(s, string(sep), "")
}

// stripAllButLast removes every occurrence of sep except the final one. The
// remaining occurrence, if sep is a comma, is left for the caller to rewrite.
func stripAllButLast(s string, sep rune) string {
	last := strings.LastIndex(s, string(sep))
	if last < 0 {
		return s
	}
	head := strings.ReplaceAll(s[:last], string(sep), "")
	return head + s[last:]
}
