package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode"

	"github.com/cantordev/cantor_backend/internal/apperrors"
	"github.com/cantordev/cantor_backend/internal/core/domain"
	"github.com/cantordev/cantor_backend/internal/core/ports/providers"
	portsrepo "github.com/cantordev/cantor_backend/internal/core/ports/repositories"
	portssvc "github.com/cantordev/cantor_backend/internal/core/ports/services"
	"github.com/cantordev/cantor_backend/internal/dto"
	"github.com/cantordev/cantor_backend/internal/middleware"
	"github.com/shopspring/decimal"
)

// ledgerService implements the account ledger: buy/sell with balance
// mutation, single-row position aggregation, and an append-only history.
// Every trade executes as one atomic storage transaction; a rejected or
// failed trade leaves all state untouched.
type ledgerService struct {
	userRepo  portsrepo.UserRepositoryFacade
	tradeRepo portsrepo.TradeRepositoryFacade
	rates     providers.RateProvider
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(userRepo portsrepo.UserRepositoryFacade, tradeRepo portsrepo.TradeRepositoryFacade, rates providers.RateProvider) portssvc.LedgerSvcFacade {
	return &ledgerService{
		userRepo:  userRepo,
		tradeRepo: tradeRepo,
		rates:     rates,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// normalizeCurrencyCode upper-cases and shape-checks an ISO 4217 code.
func normalizeCurrencyCode(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != 3 {
		return "", fmt.Errorf("%w: currency code must be 3 letters", apperrors.ErrValidation)
	}
	for _, r := range code {
		if !unicode.IsLetter(r) {
			return "", fmt.Errorf("%w: currency code must be 3 letters", apperrors.ErrValidation)
		}
	}
	return code, nil
}

// CanPurchase reports whether the user's balance covers tradeValue.
func (s *ledgerService) CanPurchase(user *domain.User, tradeValue decimal.Decimal) bool {
	return tradeValue.LessThanOrEqual(user.Balance)
}

// CanSell reports whether the user holds at least quantity of the currency.
// A missing position is an ordinary false, not an error.
func (s *ledgerService) CanSell(ctx context.Context, userID string, currencyCode string, quantity int64) (bool, error) {
	code, err := normalizeCurrencyCode(currencyCode)
	if err != nil {
		return false, err
	}

	position, err := s.tradeRepo.FindPosition(ctx, userID, code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to find position for sell check: %w", err)
	}
	return position.Quantity >= quantity, nil
}

// Purchase buys quantity units of the currency at the current rate. The trade
// value is rate x quantity; the balance decreases by it, the position for the
// currency grows by quantity (created on first purchase), and one ledger
// entry with signed quantity +quantity is appended.
func (s *ledgerService) Purchase(ctx context.Context, userID string, currencyCode string, quantity int64) (*domain.TradeResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", apperrors.ErrValidation)
	}
	code, err := normalizeCurrencyCode(currencyCode)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user for purchase: %w", err)
	}

	rate, err := s.rates.Lookup(ctx, code)
	if err != nil {
		if !errors.Is(err, apperrors.ErrRateUnavailable) {
			logger.Error("Rate lookup failed", slog.String("currency_code", code), slog.String("error", err.Error()))
		}
		return nil, err
	}

	tradeValue := rate.Mid.Mul(decimal.NewFromInt(quantity))
	if !s.CanPurchase(user, tradeValue) {
		logger.Info("Purchase rejected", slog.String("currency_code", code), slog.String("trade_value", tradeValue.String()), slog.String("balance", user.Balance.String()))
		return nil, apperrors.ErrInsufficientFunds
	}

	exec := portsrepo.TradeExecution{
		UserID:        userID,
		CurrencyCode:  code,
		CurrencyName:  rate.CurrencyName,
		BalanceDelta:  tradeValue.Neg(),
		QuantityDelta: quantity,
		Price:         rate.Mid,
		ExecutedAt:    time.Now().UTC(),
	}

	// The repository re-checks the balance under the row lock; a concurrent
	// trade that drained the account between the check above and here comes
	// back as ErrInsufficientFunds with nothing persisted.
	updatedUser, position, entry, err := s.tradeRepo.ExecuteTrade(ctx, exec)
	if err != nil {
		if errors.Is(err, apperrors.ErrInsufficientFunds) {
			return nil, err
		}
		logger.Error("Failed to execute purchase", slog.String("currency_code", code), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to execute purchase: %w", err)
	}

	logger.Info("Purchase executed",
		slog.String("currency_code", code),
		slog.Int64("quantity", quantity),
		slog.String("price", rate.Mid.String()),
		slog.String("trade_value", tradeValue.String()),
	)

	return &domain.TradeResult{
		User:       *updatedUser,
		Position:   position,
		Entry:      *entry,
		TradeValue: tradeValue,
	}, nil
}

// Sell sells quantity units from the user's position at the current rate.
// The balance grows by rate x quantity, the position shrinks by quantity and
// is removed entirely when it reaches exactly zero, and one ledger entry with
// signed quantity -quantity is appended.
func (s *ledgerService) Sell(ctx context.Context, userID string, currencyCode string, quantity int64) (*domain.TradeResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", apperrors.ErrValidation)
	}
	code, err := normalizeCurrencyCode(currencyCode)
	if err != nil {
		return nil, err
	}

	ok, err := s.CanSell(ctx, userID, code, quantity)
	if err != nil {
		return nil, err
	}
	if !ok {
		logger.Info("Sale rejected", slog.String("currency_code", code), slog.Int64("quantity", quantity))
		return nil, apperrors.ErrInsufficientHoldings
	}

	rate, err := s.rates.Lookup(ctx, code)
	if err != nil {
		if !errors.Is(err, apperrors.ErrRateUnavailable) {
			logger.Error("Rate lookup failed", slog.String("currency_code", code), slog.String("error", err.Error()))
		}
		return nil, err
	}

	tradeValue := rate.Mid.Mul(decimal.NewFromInt(quantity))

	exec := portsrepo.TradeExecution{
		UserID:        userID,
		CurrencyCode:  code,
		CurrencyName:  rate.CurrencyName,
		BalanceDelta:  tradeValue,
		QuantityDelta: -quantity,
		Price:         rate.Mid,
		ExecutedAt:    time.Now().UTC(),
	}

	// As with Purchase, the holdings check under the row lock is the
	// authoritative one.
	updatedUser, position, entry, err := s.tradeRepo.ExecuteTrade(ctx, exec)
	if err != nil {
		if errors.Is(err, apperrors.ErrInsufficientHoldings) {
			return nil, err
		}
		logger.Error("Failed to execute sale", slog.String("currency_code", code), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to execute sale: %w", err)
	}

	logger.Info("Sale executed",
		slog.String("currency_code", code),
		slog.Int64("quantity", quantity),
		slog.String("price", rate.Mid.String()),
		slog.String("trade_value", tradeValue.String()),
	)

	return &domain.TradeResult{
		User:       *updatedUser,
		Position:   position,
		Entry:      *entry,
		TradeValue: tradeValue,
	}, nil
}

// GetPortfolio returns the user's balance and open positions.
func (s *ledgerService) GetPortfolio(ctx context.Context, userID string) (*dto.PortfolioResponse, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user for portfolio: %w", err)
	}

	positions, err := s.tradeRepo.ListPositionsByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list positions: %w", err)
	}

	resp := dto.ToPortfolioResponse(user.Balance, positions)
	return &resp, nil
}

// ListHistory returns a page of the user's ledger entries, newest first.
func (s *ledgerService) ListHistory(ctx context.Context, userID string, params dto.ListHistoryParams) (*dto.ListHistoryResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20 // Default limit
	}

	entries, nextToken, err := s.tradeRepo.ListLedgerEntriesByUserID(ctx, userID, limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}

	return &dto.ListHistoryResponse{
		Entries:   dto.ToLedgerEntryResponses(entries),
		NextToken: nextToken,
	}, nil
}
