package repositories

import (
	"context"

	"github.com/cantordev/cantor_backend/internal/core/domain"
)

// UserRepositoryFacade defines persistence operations for users.
// Balance mutation is deliberately absent here: balances change only through
// TradeRepositoryFacade.ExecuteTrade so the update stays inside the trade
// transaction.
type UserRepositoryFacade interface {
	SaveUser(ctx context.Context, user *domain.User) error
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
}
