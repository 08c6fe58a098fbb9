package domain

import (
	"github.com/shopspring/decimal"
)

// TradeResult reports the outcome of a successful purchase or sale: the
// account state after the trade, the position it touched (nil when a sale
// closed the position out), and the ledger entry that was appended.
type TradeResult struct {
	User       User            `json:"user"`
	Position   *Position       `json:"position,omitempty"`
	Entry      LedgerEntry     `json:"entry"`
	TradeValue decimal.Decimal `json:"tradeValue"` // rate x quantity, in base currency
}
