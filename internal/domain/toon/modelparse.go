package toon

import (
	"regexp"
	"strings"
	"time"

	"github.com/rvelazco/finparse/internal/domain/ingest/scalar"
	"github.com/rvelazco/finparse/pkg/money"
)

// strictFieldCount is the column count of a well-formed response row:
// date, amount, currency, source, destination, category, note.
const strictFieldCount = 7

var (
	isoDateRe     = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)
	looseNumberRe = regexp.MustCompile(`\d+(?:[.,]\d+)?`)
)

// parseModelResponse extracts transactions from a model reply. The reply is
// untrusted: header lines, braces, and code fences are skipped, and a row
// with an unknown currency or an unparseable amount is dropped rather than
// patched. Rows that lost their column structure still go through a lenient
// scan so one sloppy line does not sink the whole reply.
func parseModelResponse(raw string, now time.Time, d Defaults) []Transaction {
	var out []Transaction
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || skipModelLine(line) {
			continue
		}
		fields := splitFieldsTrim(line)
		if len(fields) >= strictFieldCount {
			if tx, ok := strictRow(fields, now, d); ok {
				out = append(out, tx)
			}
			continue
		}
		if tx, ok := lenientRow(line, d); ok {
			out = append(out, tx)
		}
	}
	return out
}

// skipModelLine filters scaffolding the model tends to wrap rows in.
func skipModelLine(line string) bool {
	lower := strings.ToLower(line)
	switch {
	case strings.HasPrefix(lower, "```"):
	case strings.HasPrefix(lower, "transactions"):
	case strings.ContainsAny(line, "{}"):
	case strings.HasPrefix(line, "#"):
	default:
		return false
	}
	return true
}

// strictRow maps one positional row. Extra trailing fields are commas inside
// the note and are joined back.
func strictRow(fields []string, now time.Time, d Defaults) (Transaction, bool) {
	amount := scalar.ParseAmount(fields[1])
	if amount.IsZero() {
		return Transaction{}, false
	}
	currency, ok := money.NormalizeCurrency(fields[2])
	if !ok {
		return Transaction{}, false
	}

	date := now
	if parsed, err := time.Parse("2006-01-02", fields[0]); err == nil {
		date = parsed
	} else if fields[0] != "" {
		date = scalar.ParseDate(fields[0])
	}

	source := coalesceLabel(fields[3], d.Source)
	return Transaction{
		Date:        date,
		Amount:      amount.Abs(),
		Currency:    currency,
		Source:      source,
		Destination: coalesceLabel(fields[4], source),
		Category:    coalesceLabel(fields[5], d.Category),
		Note:        strings.Join(fields[6:], ", "),
	}, true
}

// lenientRow salvages a row that lost its column structure. It requires an
// embedded ISO date plus a number; everything else falls back to defaults
// and the keyword tables.
func lenientRow(line string, d Defaults) (Transaction, bool) {
	dateLoc := isoDateRe.FindStringIndex(line)
	if dateLoc == nil {
		return Transaction{}, false
	}
	date, err := time.Parse("2006-01-02", line[dateLoc[0]:dateLoc[1]])
	if err != nil {
		return Transaction{}, false
	}

	rest := line[:dateLoc[0]] + line[dateLoc[1]:]
	numText := looseNumberRe.FindString(rest)
	if numText == "" {
		return Transaction{}, false
	}
	amount := scalar.ParseAmount(numText)
	if amount.IsZero() {
		return Transaction{}, false
	}

	currency := d.Currency
	if lower := strings.ToLower(rest); strings.Contains(lower, "usd") || strings.Contains(lower, "$") {
		currency = CurrencySecondary
	}
	category := d.Category
	if label, ok := categoryEngine.Match(rest); ok {
		category = label
	}
	source := d.Source
	if label, ok := accountEngine.Match(rest); ok {
		source = label
	}
	return Transaction{
		Date:        date,
		Amount:      amount.Abs(),
		Currency:    currency,
		Source:      source,
		Destination: source,
		Category:    category,
		Note:        strings.TrimSpace(line),
	}, true
}

func splitFieldsTrim(line string) []string {
	parts := strings.Split(line, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func coalesceLabel(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
