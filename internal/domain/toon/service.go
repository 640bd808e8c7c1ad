package toon

import (
	"context"
	"log/slog"
	"time"

	"github.com/rvelazco/finparse/internal/domain/registry"
)

// Completer is the model client the parser talks to. A nil Completer means
// the deterministic path only.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Parser turns informal notes into transactions, model-first.
type Parser struct {
	completer Completer
	logger    *slog.Logger
	defaults  Defaults
	now       func() time.Time
}

// NewParser wires a parser. completer and logger may be nil.
func NewParser(completer Completer, defaults Defaults, logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	if defaults == (Defaults{}) {
		defaults = StandardDefaults()
	}
	return &Parser{
		completer: completer,
		logger:    logger,
		defaults:  defaults,
		now:       time.Now,
	}
}

// Parse extracts transactions from a note. Model failures and empty model
// replies route to the deterministic fallback; they are logged and counted
// but never surface to the caller.
func (p *Parser) Parse(ctx context.Context, note string) []Transaction {
	now := p.now()
	if p.completer != nil {
		reply, err := p.completer.Complete(ctx, BuildPrompt(note, now, p.defaults))
		if err != nil {
			p.logger.Warn("note model call failed, using fallback", slog.Any("error", err))
			modelFailures.Inc()
		} else if txs := parseModelResponse(reply, now, p.defaults); len(txs) > 0 {
			return txs
		} else {
			p.logger.Debug("note model reply yielded no rows, using fallback")
		}
	}
	fallbackParses.Inc()
	return parseFallback(note, now, p.defaults)
}

// Prepare resolves parsed transactions against the account and category
// registries. A transaction whose source account cannot be resolved is
// dropped; an unresolved destination falls back to the source account and
// an unresolved category stays nil.
func (p *Parser) Prepare(txs []Transaction, accounts []registry.Account, categories []registry.Category) []Prepared {
	resolver := registry.NewResolver(accounts, categories)
	prepared := make([]Prepared, 0, len(txs))
	for _, tx := range txs {
		sourceID, ok := resolver.ResolveAccount(tx.Source)
		if !ok {
			p.logger.Warn("skipping transaction with unknown source account",
				slog.String("source", tx.Source), slog.String("note", tx.Note))
			continue
		}
		destinationID := sourceID
		if tx.Destination != "" && tx.Destination != tx.Source {
			if id, ok := resolver.ResolveAccount(tx.Destination); ok {
				destinationID = id
			}
		}
		var categoryID *string
		if id, ok := resolver.ResolveCategory(tx.Category); ok {
			categoryID = &id
		}
		prepared = append(prepared, Prepared{
			SourceAccountID:      sourceID,
			DestinationAccountID: destinationID,
			Amount:               tx.Amount,
			Date:                 tx.Date,
			CategoryID:           categoryID,
			Description:          tx.Note,
			Currency:             tx.Currency,
		})
	}
	return prepared
}
