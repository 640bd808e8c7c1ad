package main

import (
	"github.com/rvelazco/finparse/internal/domain/ingest"
	"github.com/rvelazco/finparse/pkg/money"
)

// renderedTransaction is the CLI's JSON view of a candidate: the decimal
// amount becomes currency-tagged minor units plus a display string.
type renderedTransaction struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	Description string `json:"description"`
	Direction   string `json:"direction"`
	AmountMinor int64  `json:"amount_minor"`
	Currency    string `json:"currency"`
	Display     string `json:"display"`
	Reference   string `json:"reference,omitempty"`
	Selected    bool   `json:"selected"`
}

type renderedResult struct {
	Succeeded    bool                  `json:"succeeded"`
	Format       string                `json:"format"`
	Transactions []renderedTransaction `json:"transactions,omitempty"`
	RawText      string                `json:"raw_text,omitempty"`
	Error        string                `json:"error,omitempty"`
}

func renderResult(res ingest.Result, defaultCurrency string) renderedResult {
	out := renderedResult{
		Succeeded: res.Succeeded,
		Format:    res.Format,
		RawText:   res.RawText,
		Error:     res.Error,
	}
	for _, c := range res.Transactions {
		out.Transactions = append(out.Transactions, renderCandidate(c, defaultCurrency))
	}
	return out
}

func renderCandidate(c ingest.Candidate, defaultCurrency string) renderedTransaction {
	code := c.Currency
	if code == "" {
		code = defaultCurrency
	}
	m := money.NewFromDecimal(c.Amount, code)
	return renderedTransaction{
		ID:          c.ID,
		Date:        c.Date.Format("2006-01-02"),
		Description: c.Description,
		Direction:   string(c.Direction),
		AmountMinor: m.Amount(),
		Currency:    m.Currency(),
		Display:     m.Display(),
		Reference:   c.Reference,
		Selected:    c.Selected,
	}
}
