package toon

import (
	"fmt"
	"strings"
	"time"
)

// promptTemplate instructs the model to answer in a line-oriented tabular
// block so the response parser can stay a plain field splitter. The example
// rows double as few-shot anchors for the defaults.
const promptTemplate = `You convert short informal expense notes, usually written in Spanish, into structured transactions.

Today is %s. Unless the note says otherwise use these defaults:
- currency: %s (the other accepted currency is %s)
- source account: %s
- the destination account is the source account when the note names none

Rules:
- "20k" means 20000. "ayer" means yesterday, "anteayer" two days ago.
- A trailing "usd" or "$" marks the amount as USD.
- One transaction per expense mentioned in the note.
- Amounts are positive numbers without thousands separators.

Answer ONLY with a block in this exact format, one row per transaction, no prose:

transactions[N]{date,amount,currency,source,destination,category,note}:
  %s,25000,%s,%s,Super Seis,Comida,compras del super
  %s,12.50,%s,%s,Uber,Transporte,uber al centro

Note to parse:
%s`

// BuildPrompt renders the full model prompt for one note.
func BuildPrompt(note string, now time.Time, d Defaults) string {
	today := now.Format("2006-01-02")
	return fmt.Sprintf(promptTemplate,
		today,
		d.Currency, otherCurrency(d.Currency),
		d.Source,
		today, d.Currency, d.Source,
		today, CurrencySecondary, d.Source,
		strings.TrimSpace(note),
	)
}

func otherCurrency(c string) string {
	if strings.EqualFold(c, CurrencySecondary) {
		return CurrencyPrimary
	}
	return CurrencySecondary
}
