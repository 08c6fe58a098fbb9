package providers

import (
	"context"

	"github.com/cantordev/cantor_backend/internal/core/domain"
)

// RateProvider maps a currency code to its current quote against the base
// currency. Implementations return apperrors.ErrRateUnavailable when the code
// cannot be priced; callers treat that as a user-facing rejection, never a
// fault. Timeout and retry policy are the implementation's own concern.
type RateProvider interface {
	Lookup(ctx context.Context, currencyCode string) (*domain.Rate, error)
}
