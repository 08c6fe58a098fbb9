package dto

import (
	"github.com/cantordev/cantor_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PortfolioResponse lists every open position together with the account's
// base-currency balance.
type PortfolioResponse struct {
	Balance   decimal.Decimal    `json:"balance"`
	Positions []PositionResponse `json:"positions"`
}

// ToPortfolioResponse converts the user's balance and positions to the DTO.
func ToPortfolioResponse(balance decimal.Decimal, positions []domain.Position) PortfolioResponse {
	out := make([]PositionResponse, len(positions))
	for i, p := range positions {
		out[i] = PositionResponse{
			CurrencyCode: p.CurrencyCode,
			Quantity:     p.Quantity,
		}
	}
	return PortfolioResponse{Balance: balance, Positions: out}
}
