package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry is one row of the append-only ledger_entries table.
// Rows are never updated or deleted once inserted.
type LedgerEntry struct {
	EntryID      string          `db:"entry_id"`
	UserID       string          `db:"user_id"`
	CurrencyCode string          `db:"currency_code"`
	CurrencyName string          `db:"currency_name"`
	Quantity     int64           `db:"quantity"`
	Price        decimal.Decimal `db:"price"`
	ExecutedAt   time.Time       `db:"executed_at"`
}
