package dto

import (
	"github.com/cantordev/cantor_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RateResponse is the public view of a quote from the rate provider.
type RateResponse struct {
	CurrencyCode string          `json:"currencyCode"`
	CurrencyName string          `json:"currencyName"`
	Mid          decimal.Decimal `json:"mid"`
}

// ToRateResponse converts a domain.Rate to the response DTO.
func ToRateResponse(r *domain.Rate) RateResponse {
	return RateResponse{
		CurrencyCode: r.CurrencyCode,
		CurrencyName: r.CurrencyName,
		Mid:          r.Mid,
	}
}
