package dto

import (
	"time"

	"github.com/cantordev/cantor_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TradeRequest carries the buy/sell form fields. Quantity is always positive;
// the direction comes from the route, not the payload.
type TradeRequest struct {
	CurrencyCode string `json:"currencyCode" binding:"required,len=3,alpha"`
	Quantity     int64  `json:"quantity" binding:"required,gt=0"`
}

// PositionResponse is the public view of one held position.
type PositionResponse struct {
	CurrencyCode string `json:"currencyCode"`
	Quantity     int64  `json:"quantity"`
}

// TradeResponse reports a completed trade back to the client.
// Position is nil when a sale closed the position out entirely.
type TradeResponse struct {
	Balance      decimal.Decimal   `json:"balance"`
	Position     *PositionResponse `json:"position,omitempty"`
	CurrencyCode string            `json:"currencyCode"`
	CurrencyName string            `json:"currencyName"`
	Quantity     int64             `json:"quantity"` // Signed: +buy / -sell
	Price        decimal.Decimal   `json:"price"`
	TradeValue   decimal.Decimal   `json:"tradeValue"`
	ExecutedAt   time.Time         `json:"executedAt"`
}

// ToTradeResponse converts a domain.TradeResult to the response DTO.
func ToTradeResponse(r *domain.TradeResult) TradeResponse {
	resp := TradeResponse{
		Balance:      r.User.Balance,
		CurrencyCode: r.Entry.CurrencyCode,
		CurrencyName: r.Entry.CurrencyName,
		Quantity:     r.Entry.Quantity,
		Price:        r.Entry.Price,
		TradeValue:   r.TradeValue,
		ExecutedAt:   r.Entry.ExecutedAt,
	}
	if r.Position != nil {
		resp.Position = &PositionResponse{
			CurrencyCode: r.Position.CurrencyCode,
			Quantity:     r.Position.Quantity,
		}
	}
	return resp
}
