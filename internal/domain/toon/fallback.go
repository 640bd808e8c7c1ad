package toon

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rvelazco/finparse/internal/domain/ingest/scalar"
)

// Amount markers, tried in order of specificity: an explicit USD suffix
// wins over the "20k" shorthand, which wins over a bare embedded number.
var (
	usdAmountRe    = regexp.MustCompile(`(?i)(\d+(?:[.,]\d{1,2})?)\s*(?:usd|u\$s|us\$|d[oó]lar(?:es)?)\b`)
	kAmountRe      = regexp.MustCompile(`(?i)\b(\d+(?:[.,]\d{1,2})?)\s*k\b`)
	plainAmountRe  = regexp.MustCompile(`\d+(?:[.,]\d{3})*(?:[.,]\d{1,2})?`)
	embeddedDateRe = regexp.MustCompile(`\b(\d{1,2})[/-](\d{1,2})[/-](\d{2,4})\b`)
)

var thousand = decimal.NewFromInt(1000)

// parseFallback is the deterministic path: one transaction per note line
// that carries a positive amount. Lines without one are skipped, never
// guessed at.
func parseFallback(note string, now time.Time, d Defaults) []Transaction {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	var out []Transaction
	for _, line := range strings.Split(note, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if tx, ok := fallbackLine(line, today, d); ok {
			out = append(out, tx)
		}
	}
	return out
}

func fallbackLine(line string, today time.Time, d Defaults) (Transaction, bool) {
	rest, date := extractDate(line, today)
	rest, amount, currency := extractAmount(rest, d.Currency)
	if !amount.IsPositive() {
		return Transaction{}, false
	}

	desc := strings.Join(strings.Fields(rest), " ")
	note := desc
	if note == "" {
		note = strings.TrimSpace(line)
	}

	category := d.Category
	if label, ok := categoryEngine.Match(line); ok {
		category = label
	}
	source := d.Source
	if label, ok := accountEngine.Match(line); ok {
		source = label
	}

	return Transaction{
		Date:        date,
		Amount:      amount,
		Currency:    currency,
		Source:      source,
		Destination: source,
		Category:    category,
		Note:        note,
	}, true
}

// extractDate pulls the date out of the line, preferring the relative
// Spanish vocabulary over an embedded numeric date, and returns the line
// with the date text removed.
func extractDate(line string, today time.Time) (string, time.Time) {
	lower := strings.ToLower(line)
	for _, rel := range []struct {
		word string
		days int
	}{
		{"anteayer", -2},
		{"ayer", -1},
		{"hoy", 0},
	} {
		idx := strings.Index(lower, rel.word)
		if idx < 0 {
			continue
		}
		return line[:idx] + line[idx+len(rel.word):], today.AddDate(0, 0, rel.days)
	}

	if m := embeddedDateRe.FindStringSubmatchIndex(line); m != nil {
		token := line[m[0]:m[1]]
		parts := embeddedDateRe.FindStringSubmatch(token)
		year := scalar.ExpandYear(atoi(parts[3]))
		date := time.Date(year, time.Month(atoi(parts[2])), atoi(parts[1]), 0, 0, 0, 0, time.UTC)
		return line[:m[0]] + line[m[1]:], date
	}
	return line, today
}

// extractAmount finds the line's amount and currency and returns the line
// with the amount text removed. The zero decimal signals no usable amount.
func extractAmount(line, defaultCurrency string) (string, decimal.Decimal, string) {
	if m := usdAmountRe.FindStringSubmatchIndex(line); m != nil {
		amount := scalar.ParseAmount(line[m[2]:m[3]])
		return line[:m[0]] + line[m[1]:], amount, CurrencySecondary
	}
	if m := kAmountRe.FindStringSubmatchIndex(line); m != nil {
		amount := scalar.ParseAmount(line[m[2]:m[3]]).Mul(thousand)
		return line[:m[0]] + line[m[1]:], amount, defaultCurrency
	}
	if loc := plainAmountRe.FindStringIndex(line); loc != nil {
		amount := scalar.ParseAmount(line[loc[0]:loc[1]])
		return line[:loc[0]] + line[loc[1]:], amount, defaultCurrency
	}
	return line, decimal.Zero, defaultCurrency
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
