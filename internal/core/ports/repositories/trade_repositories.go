package repositories

import (
	"context"
	"time"

	"github.com/cantordev/cantor_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TradeExecution describes the full effect of one buy or sell. BalanceDelta
// and QuantityDelta carry opposite signs: a purchase decreases the balance
// and increases the position, a sale does the reverse.
type TradeExecution struct {
	UserID        string
	CurrencyCode  string
	CurrencyName  string
	BalanceDelta  decimal.Decimal // Signed change to users.balance
	QuantityDelta int64           // Signed change to the position quantity
	Price         decimal.Decimal // Unit rate at execution time
	ExecutedAt    time.Time
}

// TradeRepositoryFacade persists trades and reads portfolio/history state.
//
// ExecuteTrade applies the whole effect of a trade as one atomic unit: it
// locks the user row, applies BalanceDelta, locates and updates (or creates,
// or deletes at zero) the position row, and appends exactly one ledger entry.
// If any step fails, or the deltas would drive the balance or the position
// quantity negative, nothing is persisted; the latter cases are reported as
// apperrors.ErrInsufficientFunds / apperrors.ErrInsufficientHoldings so that
// concurrent trades which both passed their precondition check cannot both
// apply.
type TradeRepositoryFacade interface {
	ExecuteTrade(ctx context.Context, exec TradeExecution) (*domain.User, *domain.Position, *domain.LedgerEntry, error)
	FindPosition(ctx context.Context, userID string, currencyCode string) (*domain.Position, error)
	ListPositionsByUserID(ctx context.Context, userID string) ([]domain.Position, error)
	ListLedgerEntriesByUserID(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error)
}
