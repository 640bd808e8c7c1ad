// Package money converts decimal amounts into currency-tagged integer minor
// units for rendering, and normalizes the loose currency markers found in
// bank exports and informal notes.
package money

import (
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Currency codes (ISO-4217) handled by the pipeline.
const (
	PYG = "PYG" // Paraguayan guarani, zero decimal places
	USD = "USD" // US dollar
)

// currencyAliases maps the markers seen in the wild to ISO codes. Lookup is
// case-insensitive and tolerates a trailing dot ("Gs.").
var currencyAliases = map[string]string{
	"pyg":       PYG,
	"gs":        PYG,
	"g":         PYG,
	"₲":         PYG,
	"guarani":   PYG,
	"guaranies": PYG,
	"usd":       USD,
	"$":         USD,
	"us$":       USD,
	"u$s":       USD,
	"dolar":     USD,
	"dolares":   USD,
	"dollar":    USD,
	"dollars":   USD,
}

// NormalizeCurrency maps a free-text currency marker to its ISO code.
// Returns false for anything outside the two supported currencies.
func NormalizeCurrency(raw string) (string, bool) {
	key := strings.ToLower(strings.TrimSpace(raw))
	key = strings.TrimSuffix(key, ".")
	if code, ok := currencyAliases[key]; ok {
		return code, true
	}
	return "", false
}

// Money represents a monetary value with currency. It wraps go-money for
// minor-unit handling and locale-correct display formatting.
type Money struct {
	m *money.Money
}

// New creates Money from minor units. For PYG the minor unit is the whole
// guarani.
func New(amountMinor int64, currencyCode string) *Money {
	return &Money{m: money.New(amountMinor, currencyCode)}
}

// NewFromDecimal creates Money from a decimal amount in major units.
func NewFromDecimal(amount decimal.Decimal, currencyCode string) *Money {
	currency := money.GetCurrency(currencyCode)
	if currency == nil {
		currency = money.GetCurrency(USD)
	}
	multiplier := decimal.New(1, int32(currency.Fraction))
	minor := amount.Mul(multiplier).Round(0).IntPart()
	return New(minor, currencyCode)
}

// Amount returns the value in minor units.
func (m *Money) Amount() int64 {
	if m == nil || m.m == nil {
		return 0
	}
	return m.m.Amount()
}

// Currency returns the ISO-4217 code.
func (m *Money) Currency() string {
	if m == nil || m.m == nil {
		return ""
	}
	return m.m.Currency().Code
}

// Display formats the value with its currency symbol.
func (m *Money) Display() string {
	if m == nil || m.m == nil {
		return ""
	}
	return m.m.Display()
}
