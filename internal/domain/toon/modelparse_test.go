package toon

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var parseRef = time.Date(2026, time.August, 23, 0, 0, 0, 0, time.UTC)

func TestParseModelResponseStrictRow(t *testing.T) {
	reply := "transactions[1]{date,amount,currency,source,destination,category,note}:\n" +
		"  2025-11-15,150000,PYG,Efectivo,Super Seis,Comida,compras del super\n"

	txs := parseModelResponse(reply, parseRef, StandardDefaults())
	require.Len(t, txs, 1)

	tx := txs[0]
	assert.Equal(t, time.Date(2025, time.November, 15, 0, 0, 0, 0, time.UTC), tx.Date)
	assert.True(t, decimal.RequireFromString("150000").Equal(tx.Amount))
	assert.Equal(t, "PYG", tx.Currency)
	assert.Equal(t, "Efectivo", tx.Source)
	assert.Equal(t, "Super Seis", tx.Destination)
	assert.Equal(t, "Comida", tx.Category)
	assert.Equal(t, "compras del super", tx.Note)
}

func TestParseModelResponseNoteWithCommas(t *testing.T) {
	reply := "2025-11-15,150000,PYG,Efectivo,Super Seis,Comida,compras, del super, ayer\n"

	txs := parseModelResponse(reply, parseRef, StandardDefaults())
	require.Len(t, txs, 1)
	assert.Equal(t, "compras, del super, ayer", txs[0].Note)
}

func TestParseModelResponseRejectsBadRows(t *testing.T) {
	t.Run("unknown currency", func(t *testing.T) {
		reply := "2025-11-15,150000,EUR,Efectivo,Super,Comida,nota\n"
		assert.Empty(t, parseModelResponse(reply, parseRef, StandardDefaults()))
	})

	t.Run("unparseable amount", func(t *testing.T) {
		reply := "2025-11-15,mucho,PYG,Efectivo,Super,Comida,nota\n"
		assert.Empty(t, parseModelResponse(reply, parseRef, StandardDefaults()))
	})
}

func TestParseModelResponseSkipsScaffolding(t *testing.T) {
	reply := "```\n" +
		"transactions[2]{date,amount,currency,source,destination,category,note}:\n" +
		"# comment\n" +
		"{\"not\": \"a row\"}\n" +
		"2025-11-15,25000,PYG,Efectivo,Efectivo,Comida,almuerzo\n" +
		"```\n"

	txs := parseModelResponse(reply, parseRef, StandardDefaults())
	require.Len(t, txs, 1)
	assert.Equal(t, "almuerzo", txs[0].Note)
}

func TestParseModelResponseLenientRow(t *testing.T) {
	reply := "gaste el 2025-11-15 unos 12000 en uber\n"

	txs := parseModelResponse(reply, parseRef, StandardDefaults())
	require.Len(t, txs, 1)

	tx := txs[0]
	assert.Equal(t, time.Date(2025, time.November, 15, 0, 0, 0, 0, time.UTC), tx.Date)
	assert.True(t, decimal.RequireFromString("12000").Equal(tx.Amount))
	assert.Equal(t, CurrencyPrimary, tx.Currency)
	assert.Equal(t, "Transporte", tx.Category)
	assert.Equal(t, "Efectivo", tx.Source)
}

func TestParseModelResponseLenientNeedsDate(t *testing.T) {
	assert.Empty(t, parseModelResponse("gaste 12000 en uber\n", parseRef, StandardDefaults()))
}

func TestParseModelResponseEmpty(t *testing.T) {
	assert.Empty(t, parseModelResponse("", parseRef, StandardDefaults()))
	assert.Empty(t, parseModelResponse("\n\n", parseRef, StandardDefaults()))
}

func TestParseModelResponseDefaultsFillBlanks(t *testing.T) {
	reply := "2025-11-15,9000,Gs,,,,\n"

	txs := parseModelResponse(reply, parseRef, StandardDefaults())
	require.Len(t, txs, 1)

	tx := txs[0]
	assert.Equal(t, "PYG", tx.Currency, "loose currency marker normalizes")
	assert.Equal(t, "Efectivo", tx.Source)
	assert.Equal(t, "Efectivo", tx.Destination, "destination defaults to source")
	assert.Equal(t, "Otros", tx.Category)
}
