package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Amounts and totals go over the wire as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// Fund is a single entry in the society funds ledger.
type Fund struct {
	ID          string          `json:"_id"`
	Information string          `json:"information"`
	Date        time.Time       `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	User        *string         `json:"user,omitempty"`
}

// SumAmounts adds up the amount of every fund.
func SumAmounts(funds []Fund) decimal.Decimal {
	total := decimal.Zero
	for _, f := range funds {
		total = total.Add(f.Amount)
	}
	return total
}
