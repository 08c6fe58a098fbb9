package services

import (
	"context"

	"github.com/cantordev/cantor_backend/internal/core/domain"
	"github.com/cantordev/cantor_backend/internal/core/ports/providers"
	portssvc "github.com/cantordev/cantor_backend/internal/core/ports/services"
)

type rateService struct {
	rates providers.RateProvider
}

// NewRateService creates a new RateService.
func NewRateService(rates providers.RateProvider) portssvc.RateSvcFacade {
	return &rateService{rates: rates}
}

var _ portssvc.RateSvcFacade = (*rateService)(nil)

// GetRate returns the current mid rate for the currency code.
func (s *rateService) GetRate(ctx context.Context, currencyCode string) (*domain.Rate, error) {
	code, err := normalizeCurrencyCode(currencyCode)
	if err != nil {
		return nil, err
	}
	return s.rates.Lookup(ctx, code)
}
