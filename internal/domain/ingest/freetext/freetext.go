// Package freetext extracts transaction candidates from unstructured text:
// OCR output, byte-scanned PDFs, and plain statement dumps. It sweeps the
// text line by line looking for a date and amount on the same line.
package freetext

import (
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/rvelazco/finparse/internal/domain/ingest"
	"github.com/rvelazco/finparse/internal/domain/ingest/scalar"
)

const (
	maxDescriptionLen      = 120
	placeholderDescription = "Transaccion importada"
)

var (
	dateRe = regexp.MustCompile(`\b(?:\d{4}-\d{2}-\d{2}|\d{1,2}[/-]\d{1,2}[/-]\d{2,4})\b`)
	// amountRe tolerates currency symbols, thousands separators in either
	// convention, and parenthesized negatives. The leading group demands a
	// boundary so version tags ("%PDF-1.4") and hyphenated words never read
	// as negative amounts; group 2 is the amount token itself.
	amountRe = regexp.MustCompile(`(^|[\s|])([-(]?\s*(?:[$₲€]|(?i:gs)\.?\s?)?\d+(?:[.,]\d{3})*(?:[.,]\d{1,2})?\)?)`)
)

// Extract sweeps text line by line. A line produces a candidate when it
// carries at least one parseable, non-zero amount; the last amount on the
// line wins, since running balances tend to precede the movement amount in
// statement layouts.
func Extract(text string) []ingest.Candidate {
	var out []ingest.Candidate

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if c, ok := extractLine(line); ok {
			out = append(out, c)
		}
	}

	return out
}

func extractLine(line string) (ingest.Candidate, bool) {
	dateTok := dateRe.FindString(line)
	// Blank the date span so its digits never read as an amount.
	scanLine := line
	if dateTok != "" {
		scanLine = strings.Replace(scanLine, dateTok, strings.Repeat(" ", len(dateTok)), 1)
	}

	matches := amountRe.FindAllStringSubmatchIndex(scanLine, -1)
	if len(matches) == 0 {
		return ingest.Candidate{}, false
	}

	last := matches[len(matches)-1]
	amount := scalar.ParseAmount(scanLine[last[4]:last[5]])
	if amount.IsZero() {
		return ingest.Candidate{}, false
	}

	// Blank the amount spans in place so the remainder is the description.
	descBytes := []byte(scanLine)
	for _, m := range matches {
		for i := m[4]; i < m[5]; i++ {
			descBytes[i] = ' '
		}
	}
	desc := strings.ReplaceAll(string(descBytes), "|", " ")
	desc = strings.Join(strings.Fields(desc), " ")
	if runes := []rune(desc); len(runes) > maxDescriptionLen {
		desc = string(runes[:maxDescriptionLen])
	}
	if desc == "" {
		desc = placeholderDescription
	}

	direction := ingest.DirectionIncome
	if amount.IsNegative() {
		direction = ingest.DirectionExpense
	}

	return ingest.Candidate{
		ID:          uuid.NewString(),
		Date:        scalar.ParseDate(dateTok),
		Description: desc,
		Amount:      amount.Abs(),
		Direction:   direction,
		Selected:    true,
	}, true
}
