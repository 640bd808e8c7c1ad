// Package tabular turns delimited and spreadsheet data into transaction
// candidates. The CSV path tries a header-tag unmarshal first and falls back
// to positional role inference; the spreadsheet path additionally understands
// a known dual-currency statement layout.
package tabular

import (
	"bytes"
	"encoding/csv"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rvelazco/finparse/internal/domain/ingest"
	"github.com/rvelazco/finparse/internal/domain/ingest/scalar"
	"github.com/rvelazco/finparse/internal/domain/ingest/sniffer"
)

// minDescriptionField filters out short noise cells ("PY", "01") when
// concatenating description text.
const minDescriptionField = 2

// statementRow supports header-based unmarshaling with bilingual column
// names. gocsv matches by header, so unknown columns are ignored.
type statementRow struct {
	Date        string `csv:"date"`
	Fecha       string `csv:"fecha"`
	Description string `csv:"description"`
	Descripcion string `csv:"descripcion"`
	Concepto    string `csv:"concepto"`
	Detalle     string `csv:"detalle"`
	Amount      string `csv:"amount"`
	Monto       string `csv:"monto"`
	Importe     string `csv:"importe"`
}

// ExtractCSV parses delimited data into candidates. It never fails: rows
// that cannot produce a transaction are skipped, and an empty result simply
// means nothing was recoverable.
func ExtractCSV(data []byte) []ingest.Candidate {
	text := strings.TrimPrefix(string(data), "\uFEFF")
	delimiter := sniffer.DetectDelimiter(text)

	lines := splitLines(text)
	if len(lines) == 0 {
		return nil
	}
	hasHeader := sniffer.HasHeader(lines[0])

	// Stage chain: header-tag unmarshal first, positional inference second.
	// The first stage that recovers rows wins.
	stages := []func() []ingest.Candidate{
		func() []ingest.Candidate {
			if !hasHeader {
				return nil
			}
			return extractWithHeaderTags([]byte(text), delimiter)
		},
		func() []ingest.Candidate {
			dataLines := lines
			if hasHeader {
				dataLines = lines[1:]
			}
			return extractPositional(dataLines, delimiter)
		},
	}

	for _, stage := range stages {
		if out := stage(); len(out) > 0 {
			return out
		}
	}
	return nil
}

func extractWithHeaderTags(data []byte, delimiter rune) []ingest.Candidate {
	// Per-call reader: the package-global gocsv factory is shared state and
	// would race concurrent extractions with different delimiters.
	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = delimiter
	r.LazyQuotes = true
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1

	var rows []statementRow
	if err := gocsv.UnmarshalCSV(r, &rows); err != nil {
		return nil
	}

	var out []ingest.Candidate
	for _, row := range rows {
		amountStr := coalesce(row.Amount, row.Monto, row.Importe)
		amount := scalar.ParseAmount(amountStr)
		if amount.IsZero() {
			continue
		}
		desc := coalesce(row.Description, row.Descripcion, row.Concepto, row.Detalle)
		out = append(out, newCandidate(
			scalar.ParseDate(coalesce(row.Date, row.Fecha)),
			desc, amount, currencyHint(amountStr), "",
		))
	}
	return out
}

func extractPositional(lines []string, delimiter rune) []ingest.Candidate {
	var out []ingest.Candidate

	for _, line := range lines {
		fields := sniffer.SplitFields(line, delimiter)

		var (
			dateTok   string
			amount    decimal.Decimal
			amountTok string
			descParts []string
		)
		for _, f := range fields {
			switch {
			case dateTok == "" && sniffer.LooksLikeDate(f):
				dateTok = f
			case sniffer.LooksLikeAmount(f):
				if amount.IsZero() {
					if v := scalar.ParseAmount(f); !v.IsZero() {
						amount = v
						amountTok = f
					}
				}
			default:
				if len(f) > minDescriptionField {
					descParts = append(descParts, f)
				}
			}
		}

		if amount.IsZero() {
			continue
		}
		out = append(out, newCandidate(
			scalar.ParseDate(dateTok),
			strings.Join(descParts, " "),
			amount, currencyHint(amountTok), "",
		))
	}
	return out
}

// newCandidate folds the sign into the direction: negative means expense,
// everything else income. The stored amount is always absolute.
func newCandidate(date time.Time, desc string, amount decimal.Decimal, currency, reference string) ingest.Candidate {
	direction := ingest.DirectionIncome
	if amount.IsNegative() {
		direction = ingest.DirectionExpense
	}
	return ingest.Candidate{
		ID:          uuid.NewString(),
		Date:        date,
		Description: desc,
		Amount:      amount.Abs(),
		Direction:   direction,
		Currency:    currency,
		Selected:    true,
		Reference:   reference,
	}
}

func coalesce(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func currencyHint(token string) string {
	lower := strings.ToLower(token)
	switch {
	case strings.Contains(lower, "$") || strings.Contains(lower, "usd"):
		return "USD"
	case strings.Contains(lower, "gs") || strings.Contains(lower, "₲") || strings.Contains(lower, "pyg"):
		return "PYG"
	}
	return ""
}

func splitLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) != "" {
			out = append(out, line)
		}
	}
	return out
}
