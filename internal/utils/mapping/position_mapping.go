package mapping

import (
	"github.com/cantordev/cantor_backend/internal/core/domain"
	"github.com/cantordev/cantor_backend/internal/models"
)

// ToModelPosition converts a domain.Position to its DB representation.
func ToModelPosition(d domain.Position) models.Position {
	return models.Position{
		PositionID:   d.PositionID,
		UserID:       d.UserID,
		CurrencyCode: d.CurrencyCode,
		Quantity:     d.Quantity,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			LastUpdatedAt: d.LastUpdatedAt,
		},
	}
}

// ToDomainPosition converts a DB position row to the domain representation.
func ToDomainPosition(m models.Position) domain.Position {
	return domain.Position{
		PositionID:   m.PositionID,
		UserID:       m.UserID,
		CurrencyCode: m.CurrencyCode,
		Quantity:     m.Quantity,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			LastUpdatedAt: m.LastUpdatedAt,
		},
	}
}

// ToDomainPositionSlice converts a slice of position rows.
func ToDomainPositionSlice(ms []models.Position) []domain.Position {
	out := make([]domain.Position, len(ms))
	for i, m := range ms {
		out[i] = ToDomainPosition(m)
	}
	return out
}
