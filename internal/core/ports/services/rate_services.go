package services

import (
	"context"

	"github.com/cantordev/cantor_backend/internal/core/domain"
)

// RateSvcFacade exposes quotes from the external rate provider.
type RateSvcFacade interface {
	GetRate(ctx context.Context, currencyCode string) (*domain.Rate, error)
}
