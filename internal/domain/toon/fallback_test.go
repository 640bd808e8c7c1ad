package toon

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func deterministicParser() *Parser {
	return NewParser(nil, StandardDefaults(), nil)
}

func TestFallbackSimpleFoodNote(t *testing.T) {
	p := deterministicParser()
	txs := p.Parse(context.Background(), "1000 palito de agua")
	require.Len(t, txs, 1)

	tx := txs[0]
	assert.True(t, decimal.RequireFromString("1000").Equal(tx.Amount))
	assert.Equal(t, CurrencyPrimary, tx.Currency)
	assert.Equal(t, "Comida", tx.Category)
	assert.Equal(t, "Efectivo", tx.Source)
	assert.Equal(t, "Efectivo", tx.Destination)
}

func TestFallbackThousandsShorthand(t *testing.T) {
	p := deterministicParser()
	txs := p.Parse(context.Background(), "20k uber")
	require.Len(t, txs, 1)

	tx := txs[0]
	assert.True(t, decimal.RequireFromString("20000").Equal(tx.Amount))
	assert.Equal(t, CurrencyPrimary, tx.Currency)
	assert.Equal(t, "Transporte", tx.Category)
}

func TestFallbackUSDSuffix(t *testing.T) {
	p := deterministicParser()
	txs := p.Parse(context.Background(), "12.5 usd netflix")
	require.Len(t, txs, 1)

	tx := txs[0]
	assert.True(t, decimal.RequireFromString("12.5").Equal(tx.Amount))
	assert.Equal(t, CurrencySecondary, tx.Currency)
	assert.Equal(t, "Ocio", tx.Category)
}

func TestFallbackRelativeDate(t *testing.T) {
	p := deterministicParser()
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	txs := p.Parse(context.Background(), "50.000 almuerzo ayer")
	require.Len(t, txs, 1)
	assert.Equal(t, today.AddDate(0, 0, -1), txs[0].Date)
	assert.True(t, decimal.RequireFromString("50000").Equal(txs[0].Amount))
}

func TestFallbackEmbeddedDate(t *testing.T) {
	p := deterministicParser()
	txs := p.Parse(context.Background(), "25.000 nafta 15/08/2026")
	require.Len(t, txs, 1)

	tx := txs[0]
	assert.Equal(t, time.Date(2026, time.August, 15, 0, 0, 0, 0, time.UTC), tx.Date)
	assert.Equal(t, "Transporte", tx.Category)
}

func TestFallbackAccountKeyword(t *testing.T) {
	p := deterministicParser()
	txs := p.Parse(context.Background(), "80.000 cena con tarjeta")
	require.Len(t, txs, 1)

	assert.Equal(t, "Tarjeta", txs[0].Source)
	assert.Equal(t, "Comida", txs[0].Category)
}

func TestFallbackMultiLineNote(t *testing.T) {
	p := deterministicParser()
	txs := p.Parse(context.Background(), "15k uber\n30.000 farmacia\n\nsin monto aqui")
	require.Len(t, txs, 2)

	assert.Equal(t, "Transporte", txs[0].Category)
	assert.True(t, decimal.RequireFromString("15000").Equal(txs[0].Amount))
	assert.Equal(t, "Salud", txs[1].Category)
}

func TestFallbackSkipsLinesWithoutAmount(t *testing.T) {
	p := deterministicParser()
	assert.Empty(t, p.Parse(context.Background(), "hoy no gaste nada"))
	assert.Empty(t, p.Parse(context.Background(), ""))
}

func TestFallbackDefaultCategory(t *testing.T) {
	p := deterministicParser()
	txs := p.Parse(context.Background(), "5000 varios")
	require.Len(t, txs, 1)
	assert.Equal(t, "Otros", txs[0].Category)
}
