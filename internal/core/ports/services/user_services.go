package services

import (
	"context"

	"github.com/maslamhussaini/posaccoutingapp/internal/core/domain"
	"github.com/maslamhussaini/posaccoutingapp/internal/dto"
)

// UserSvcFacade provides the minimal user surface the core needs: creating
// operators and verifying credentials for token issuance.
type UserSvcFacade interface {
	// CreateUser persists a new user with a bcrypt password hash.
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error)

	// GetUserByID retrieves a user.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// Authenticate verifies username/password and returns the user on
	// success, ErrForbidden otherwise.
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
}
