package toon

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rvelazco/finparse/internal/domain/registry"
)

type fakeCompleter struct {
	reply  string
	err    error
	prompt string
}

func (f *fakeCompleter) Complete(_ context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.reply, f.err
}

func TestParseUsesModelReply(t *testing.T) {
	completer := &fakeCompleter{
		reply: "2025-11-15,150000,PYG,Efectivo,Super Seis,Comida,compras del super",
	}
	p := NewParser(completer, StandardDefaults(), nil)

	txs := p.Parse(context.Background(), "150k super seis")
	require.Len(t, txs, 1)
	assert.True(t, decimal.RequireFromString("150000").Equal(txs[0].Amount))
	assert.Equal(t, "Super Seis", txs[0].Destination)
	assert.Contains(t, completer.prompt, "150k super seis", "prompt carries the note")
}

func TestParseFallsBackOnModelError(t *testing.T) {
	completer := &fakeCompleter{err: errors.New("transport down")}
	p := NewParser(completer, StandardDefaults(), nil)

	txs := p.Parse(context.Background(), "1000 palito de agua")
	require.Len(t, txs, 1, "model failure never loses the note")
	assert.Equal(t, "Comida", txs[0].Category)
}

func TestParseFallsBackOnEmptyReply(t *testing.T) {
	completer := &fakeCompleter{reply: "no transactions found, sorry"}
	p := NewParser(completer, StandardDefaults(), nil)

	txs := p.Parse(context.Background(), "20k uber")
	require.Len(t, txs, 1)
	assert.Equal(t, "Transporte", txs[0].Category)
}

func TestPrepareResolvesRegistries(t *testing.T) {
	p := NewParser(nil, StandardDefaults(), nil)
	accounts := []registry.Account{
		{ID: "a1", Name: "Efectivo"},
		{ID: "a2", Name: "BBVA"},
	}
	categories := []registry.Category{{ID: "c1", Name: "Comida"}}

	txs := []Transaction{
		{
			Date:        time.Date(2025, 11, 15, 0, 0, 0, 0, time.UTC),
			Amount:      decimal.NewFromInt(50000),
			Currency:    "PYG",
			Source:      "Efectivo",
			Destination: "BBVA",
			Category:    "Comida",
			Note:        "transferencia y almuerzo",
		},
	}

	prepared := p.Prepare(txs, accounts, categories)
	require.Len(t, prepared, 1)

	pr := prepared[0]
	assert.Equal(t, "a1", pr.SourceAccountID)
	assert.Equal(t, "a2", pr.DestinationAccountID)
	require.NotNil(t, pr.CategoryID)
	assert.Equal(t, "c1", *pr.CategoryID)
	assert.Equal(t, "transferencia y almuerzo", pr.Description)
}

func TestPrepareSkipsUnknownSource(t *testing.T) {
	p := NewParser(nil, StandardDefaults(), nil)
	accounts := []registry.Account{{ID: "a1", Name: "Efectivo"}}

	txs := []Transaction{
		{Source: "cuenta fantasma xyz", Amount: decimal.NewFromInt(1000), Currency: "PYG"},
		{Source: "Efectivo", Destination: "Efectivo", Amount: decimal.NewFromInt(2000), Currency: "PYG"},
	}

	prepared := p.Prepare(txs, accounts, nil)
	require.Len(t, prepared, 1, "unknown source is a hard skip")
	assert.Equal(t, "a1", prepared[0].SourceAccountID)
}

func TestPrepareUnresolvedDestinationFallsBackToSource(t *testing.T) {
	p := NewParser(nil, StandardDefaults(), nil)
	accounts := []registry.Account{{ID: "a1", Name: "Efectivo"}}

	txs := []Transaction{
		{Source: "Efectivo", Destination: "Comercio Desconocido XYZ", Amount: decimal.NewFromInt(3000), Currency: "PYG"},
	}

	prepared := p.Prepare(txs, accounts, nil)
	require.Len(t, prepared, 1)
	assert.Equal(t, "a1", prepared[0].DestinationAccountID)
	assert.Nil(t, prepared[0].CategoryID)
}
