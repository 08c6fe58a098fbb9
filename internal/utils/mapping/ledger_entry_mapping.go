package mapping

import (
	"github.com/cantordev/cantor_backend/internal/core/domain"
	"github.com/cantordev/cantor_backend/internal/models"
)

// ToModelLedgerEntry converts a domain.LedgerEntry to its DB representation.
func ToModelLedgerEntry(d domain.LedgerEntry) models.LedgerEntry {
	return models.LedgerEntry{
		EntryID:      d.EntryID,
		UserID:       d.UserID,
		CurrencyCode: d.CurrencyCode,
		CurrencyName: d.CurrencyName,
		Quantity:     d.Quantity,
		Price:        d.Price,
		ExecutedAt:   d.ExecutedAt,
	}
}

// ToDomainLedgerEntry converts a ledger row to the domain representation.
func ToDomainLedgerEntry(m models.LedgerEntry) domain.LedgerEntry {
	return domain.LedgerEntry{
		EntryID:      m.EntryID,
		UserID:       m.UserID,
		CurrencyCode: m.CurrencyCode,
		CurrencyName: m.CurrencyName,
		Quantity:     m.Quantity,
		Price:        m.Price,
		ExecutedAt:   m.ExecutedAt,
	}
}

// ToDomainLedgerEntrySlice converts a slice of ledger rows.
func ToDomainLedgerEntrySlice(ms []models.LedgerEntry) []domain.LedgerEntry {
	out := make([]domain.LedgerEntry, len(ms))
	for i, m := range ms {
		out[i] = ToDomainLedgerEntry(m)
	}
	return out
}
