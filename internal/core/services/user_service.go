package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cantordev/cantor_backend/internal/apperrors"
	"github.com/cantordev/cantor_backend/internal/core/domain"
	portsrepo "github.com/cantordev/cantor_backend/internal/core/ports/repositories"
	portssvc "github.com/cantordev/cantor_backend/internal/core/ports/services"
	"github.com/cantordev/cantor_backend/internal/dto"
	"github.com/cantordev/cantor_backend/internal/middleware"
	"github.com/cantordev/cantor_backend/internal/utils"
	"github.com/cantordev/cantor_backend/internal/utils/passwordpolicy"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type userService struct {
	userRepo        portsrepo.UserRepositoryFacade
	policy          *passwordpolicy.Policy
	startingBalance decimal.Decimal
}

// NewUserService creates a new UserService. Every registered account starts
// with startingBalance PLN.
func NewUserService(userRepo portsrepo.UserRepositoryFacade, policy *passwordpolicy.Policy, startingBalance decimal.Decimal) portssvc.UserSvcFacade {
	return &userService{
		userRepo:        userRepo,
		policy:          policy,
		startingBalance: startingBalance,
	}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

// RegisterUser validates the request, hashes the password and persists the
// new account with the configured starting balance.
func (s *userService) RegisterUser(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Password != req.ConfirmPassword {
		return nil, fmt.Errorf("%w: passwords do not match", apperrors.ErrValidation)
	}
	if reason := s.policy.Validate(ctx, req.Password); reason != "" {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, reason)
	}

	if _, err := s.userRepo.FindUserByUsername(ctx, req.Username); err == nil {
		return nil, fmt.Errorf("%w: username already taken", apperrors.ErrDuplicate)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check username availability: %w", err)
	}
	if _, err := s.userRepo.FindUserByEmail(ctx, req.Email); err == nil {
		return nil, fmt.Errorf("%w: email already registered", apperrors.ErrDuplicate)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check email availability: %w", err)
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		logger.Error("Failed to hash password", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user := domain.User{
		UserID:       uuid.NewString(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: passwordHash,
		Balance:      s.startingBalance,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.userRepo.SaveUser(ctx, &user); err != nil {
		// The unique constraints are the authoritative duplicate check.
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: username or email already registered", apperrors.ErrDuplicate)
		}
		logger.Error("Failed to save user", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	logger.Info("User registered", slog.String("user_id", user.UserID), slog.String("username", user.Username))
	return &user, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user by id: %w", err)
	}
	return user, nil
}

func (s *userService) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to find user by username: %w", err)
	}
	return user, nil
}
