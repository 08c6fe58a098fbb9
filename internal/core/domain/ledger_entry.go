package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry is one immutable record of a buy or sell. Quantity is signed:
// positive for purchases, negative for sales. Price is always the unit rate
// at the time of the trade, never the trade value.
type LedgerEntry struct {
	EntryID      string          `json:"entryID"` // Primary Key (UUID)
	UserID       string          `json:"userID"`
	CurrencyCode string          `json:"currencyCode"`
	CurrencyName string          `json:"currencyName"` // Display name from the rate provider
	Quantity     int64           `json:"quantity"`     // Signed: +buy / -sell
	Price        decimal.Decimal `json:"price"`
	ExecutedAt   time.Time       `json:"executedAt"`
}
