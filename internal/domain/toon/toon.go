// Package toon parses short informal expense notes ("1000 palito de agua",
// "20k uber ayer") into structured transaction tuples. It asks the language
// model first and falls back to deterministic pattern matching whenever the
// model is unavailable, fails, or returns nothing. A model outage degrades
// accuracy, not behavior.
package toon

import (
	"time"

	"github.com/shopspring/decimal"
)

// The two currencies this pipeline recognizes. Anything else in a model
// response is rejected.
const (
	CurrencyPrimary   = "PYG"
	CurrencySecondary = "USD"
)

// Defaults fill fields the note doesn't state.
type Defaults struct {
	Currency string // applied when no currency marker is present
	Source   string // origin account label, e.g. "Efectivo"
	Category string // category label when no keyword matches
}

// StandardDefaults mirror the typical cash-expense note.
func StandardDefaults() Defaults {
	return Defaults{
		Currency: CurrencyPrimary,
		Source:   "Efectivo",
		Category: "Otros",
	}
}

// Transaction is the structured form of one note line. Both the model path
// and the fallback path populate every field.
type Transaction struct {
	Date        time.Time       `json:"date"`
	Amount      decimal.Decimal `json:"amount"` // always positive
	Currency    string          `json:"currency"`
	Source      string          `json:"source"`
	Destination string          `json:"destination"`
	Category    string          `json:"category"`
	Note        string          `json:"note"`
}

// Prepared is the registry-resolved counterpart, ready for the caller to
// persist. SourceAccountID is always set: a transaction whose source cannot
// be resolved is skipped rather than fabricated.
type Prepared struct {
	SourceAccountID      string          `json:"source_account_id"`
	DestinationAccountID string          `json:"destination_account_id"`
	Amount               decimal.Decimal `json:"amount"`
	Date                 time.Time       `json:"date"`
	CategoryID           *string         `json:"category_id"`
	Description          string          `json:"description"`
	Currency             string          `json:"currency"`
}
