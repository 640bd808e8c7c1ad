package tabular_test

import (
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rvelazco/finparse/internal/domain/ingest"
	"github.com/rvelazco/finparse/internal/domain/ingest/tabular"
)

func TestExtractCSVPositional(t *testing.T) {
	out := tabular.ExtractCSV([]byte("15/11/2025,-500.00,Coffee shop"))
	require.Len(t, out, 1)

	c := out[0]
	assert.Equal(t, time.Date(2025, time.November, 15, 0, 0, 0, 0, time.UTC), c.Date)
	assert.True(t, decimal.RequireFromString("500").Equal(c.Amount))
	assert.Equal(t, ingest.DirectionExpense, c.Direction)
	assert.Equal(t, "Coffee shop", c.Description)
	assert.True(t, c.Selected)
}

func TestExtractCSVWithHeader(t *testing.T) {
	data := "fecha,descripcion,monto\n" +
		"15/11/2025,Supermercado,-150.000\n" +
		"16/11/2025,Deposito,2.000.000\n"
	out := tabular.ExtractCSV([]byte(data))
	require.Len(t, out, 2)

	assert.Equal(t, "Supermercado", out[0].Description)
	assert.True(t, decimal.RequireFromString("150000").Equal(out[0].Amount))
	assert.Equal(t, ingest.DirectionExpense, out[0].Direction)

	assert.Equal(t, "Deposito", out[1].Description)
	assert.Equal(t, ingest.DirectionIncome, out[1].Direction)
}

func TestExtractCSVEnglishHeader(t *testing.T) {
	data := "date,description,amount\n2025-11-15,Coffee shop,-12.50\n"
	out := tabular.ExtractCSV([]byte(data))
	require.Len(t, out, 1)
	assert.True(t, decimal.RequireFromString("12.5").Equal(out[0].Amount))
	assert.Equal(t, ingest.DirectionExpense, out[0].Direction)
}

func TestExtractCSVSemicolonDelimited(t *testing.T) {
	data := "fecha;descripcion;monto\n01/02/2024;Pago de luz;Gs. 250.000\n"
	out := tabular.ExtractCSV([]byte(data))
	require.Len(t, out, 1)

	c := out[0]
	assert.Equal(t, time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), c.Date)
	assert.True(t, decimal.RequireFromString("250000").Equal(c.Amount))
	assert.Equal(t, "PYG", c.Currency)
}

func TestExtractCSVQuotedDescription(t *testing.T) {
	out := tabular.ExtractCSV([]byte(`15/11/2025,"Cafe, centro",-25.000`))
	require.Len(t, out, 1)
	assert.Equal(t, "Cafe, centro", out[0].Description)
	assert.True(t, decimal.RequireFromString("25000").Equal(out[0].Amount))
}

func TestExtractCSVCurrencyHint(t *testing.T) {
	out := tabular.ExtractCSV([]byte("15/11/2025,Compra online,$120.50"))
	require.Len(t, out, 1)
	assert.Equal(t, "USD", out[0].Currency)
}

func TestExtractCSVSkipsUnusableRows(t *testing.T) {
	data := "fecha,descripcion,monto\n" +
		"15/11/2025,Sin monto,\n" +
		"16/11/2025,Valido,-10.000\n"
	out := tabular.ExtractCSV([]byte(data))
	require.Len(t, out, 1)
	assert.Equal(t, "Valido", out[0].Description)
}

func TestExtractCSVStripsByteOrderMark(t *testing.T) {
	data := []byte("\uFEFFfecha,descripcion,monto\n15/11/2025,Cafe,-5.000\n")
	out := tabular.ExtractCSV(data)
	require.Len(t, out, 1)
	assert.Equal(t, "Cafe", out[0].Description)
}

func TestExtractCSVConcurrent(t *testing.T) {
	comma := []byte("fecha,descripcion,monto\n15/11/2025,Cafe,-5.000\n")
	semi := []byte("fecha;descripcion;monto\n15/11/2025;Cafe;-5.000\n")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			assert.Len(t, tabular.ExtractCSV(comma), 1)
		}()
		go func() {
			defer wg.Done()
			assert.Len(t, tabular.ExtractCSV(semi), 1)
		}()
	}
	wg.Wait()
}

func TestExtractCSVEmpty(t *testing.T) {
	assert.Empty(t, tabular.ExtractCSV(nil))
	assert.Empty(t, tabular.ExtractCSV([]byte("\n\n")))
}

func TestExtractCSVBulk(t *testing.T) {
	gofakeit.Seed(11)

	var sb strings.Builder
	sb.WriteString("fecha,descripcion,monto\n")
	const rows = 200
	for i := 0; i < rows; i++ {
		date := gofakeit.DateRange(
			time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
		)
		fmt.Fprintf(&sb, "%02d/%02d/%d,%s,-%d\n",
			date.Day(), int(date.Month()), date.Year(),
			gofakeit.Word(), gofakeit.Number(1000, 900000))
	}

	out := tabular.ExtractCSV([]byte(sb.String()))
	require.Len(t, out, rows)
	for _, c := range out {
		assert.Equal(t, ingest.DirectionExpense, c.Direction)
		assert.False(t, c.Amount.IsNegative(), "stored amounts are absolute")
		assert.False(t, c.Amount.IsZero())
	}
}
