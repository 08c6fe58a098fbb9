package services

import (
	"context"

	"github.com/cantordev/cantor_backend/internal/core/domain"
	"github.com/cantordev/cantor_backend/internal/dto"
	"github.com/shopspring/decimal"
)

// LedgerSvcFacade is the account ledger: it owns balance mutation, portfolio
// aggregation, and history append for buy and sell operations. Quantities are
// always positive; the buy/sell direction is encoded only in the ledger entry.
type LedgerSvcFacade interface {
	// CanPurchase reports whether the user's balance covers tradeValue.
	// No side effects.
	CanPurchase(user *domain.User, tradeValue decimal.Decimal) bool
	// CanSell reports whether the user holds at least quantity of the
	// currency. A missing position is false, not an error.
	CanSell(ctx context.Context, userID string, currencyCode string, quantity int64) (bool, error)
	// Purchase buys quantity units of the currency at the current rate.
	Purchase(ctx context.Context, userID string, currencyCode string, quantity int64) (*domain.TradeResult, error)
	// Sell sells quantity units from the user's position at the current rate.
	Sell(ctx context.Context, userID string, currencyCode string, quantity int64) (*domain.TradeResult, error)
	// GetPortfolio returns the user's balance and open positions.
	GetPortfolio(ctx context.Context, userID string) (*dto.PortfolioResponse, error)
	// ListHistory returns a page of the user's ledger entries, newest first.
	ListHistory(ctx context.Context, userID string, params dto.ListHistoryParams) (*dto.ListHistoryResponse, error)
}
