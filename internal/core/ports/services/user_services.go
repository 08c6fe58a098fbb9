package services

import (
	"context"

	"github.com/cantordev/cantor_backend/internal/core/domain"
	"github.com/cantordev/cantor_backend/internal/dto"
)

// UserSvcFacade defines registration and account lookup operations.
type UserSvcFacade interface {
	RegisterUser(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error)
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
}
