// Package ingest defines the value objects produced by the document
// extraction pipeline. Candidates are transient: they live for a single
// extraction call and are owned by the caller afterwards; nothing here is
// persisted.
package ingest

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direction tells the caller which side of the ledger a candidate belongs
// to. Sign information is always folded into the direction; Amount is never
// negative.
type Direction string

const (
	DirectionIncome   Direction = "income"
	DirectionExpense  Direction = "expense"
	DirectionTransfer Direction = "transfer"
)

// Candidate is a transaction extracted from a document, not yet persisted.
type Candidate struct {
	ID          string          `json:"id"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Direction   Direction       `json:"direction"`
	Currency    string          `json:"currency,omitempty"`
	Selected    bool            `json:"selected"`
	Reference   string          `json:"reference,omitempty"`
}

// Result is the envelope returned by every extraction entry point.
// Succeeded is true exactly when Transactions is non-empty, unless the
// caller asked for raw text only.
type Result struct {
	Succeeded    bool        `json:"succeeded"`
	Transactions []Candidate `json:"transactions"`
	RawText      string      `json:"raw_text,omitempty"`
	Format       string      `json:"format"`
	Error        string      `json:"error,omitempty"`
}
