package pgsql

import (
	portsrepo "github.com/cantordev/cantor_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider creates all pgsql-backed repositories and returns
// them bundled for the service container.
func NewRepositoryProvider(pool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:  newPgxUserRepository(pool),
		TradeRepo: newPgxTradeRepository(pool),
	}
}
