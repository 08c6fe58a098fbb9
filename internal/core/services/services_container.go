package services

import (
	"github.com/cantordev/cantor_backend/internal/core/ports/providers"
	portsrepo "github.com/cantordev/cantor_backend/internal/core/ports/repositories"
	portssvc "github.com/cantordev/cantor_backend/internal/core/ports/services"
	"github.com/cantordev/cantor_backend/internal/platform/config"
	"github.com/cantordev/cantor_backend/internal/utils/passwordpolicy"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, rates providers.RateProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.User = NewUserService(repos.UserRepo, passwordpolicy.Default(cfg.HIBPCheckEnabled), cfg.StartingBalance)
	container.Ledger = NewLedgerService(repos.UserRepo, repos.TradeRepo, rates)
	container.Rate = NewRateService(rates)

	return container
}
