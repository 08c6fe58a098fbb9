package dto

import (
	"time"

	"github.com/cantordev/cantor_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ListHistoryParams holds query parameters for listing ledger entries.
type ListHistoryParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// LedgerEntryResponse is the public view of one history record.
type LedgerEntryResponse struct {
	EntryID      string          `json:"entryID"`
	CurrencyCode string          `json:"currencyCode"`
	CurrencyName string          `json:"currencyName"`
	Quantity     int64           `json:"quantity"` // Signed: +buy / -sell
	Price        decimal.Decimal `json:"price"`
	ExecutedAt   time.Time       `json:"executedAt"`
}

// ListHistoryResponse wraps a page of ledger entries with the cursor for the
// next page, if any.
type ListHistoryResponse struct {
	Entries   []LedgerEntryResponse `json:"entries"`
	NextToken *string               `json:"nextToken,omitempty"`
}

// ToLedgerEntryResponse converts a domain.LedgerEntry to the response DTO.
func ToLedgerEntryResponse(e domain.LedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		EntryID:      e.EntryID,
		CurrencyCode: e.CurrencyCode,
		CurrencyName: e.CurrencyName,
		Quantity:     e.Quantity,
		Price:        e.Price,
		ExecutedAt:   e.ExecutedAt,
	}
}

// ToLedgerEntryResponses converts a slice of ledger entries.
func ToLedgerEntryResponses(entries []domain.LedgerEntry) []LedgerEntryResponse {
	out := make([]LedgerEntryResponse, len(entries))
	for i, e := range entries {
		out[i] = ToLedgerEntryResponse(e)
	}
	return out
}
