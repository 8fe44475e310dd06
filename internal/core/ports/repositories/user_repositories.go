package repositories

import (
	"context"

	"github.com/maslamhussaini/posaccoutingapp/internal/core/domain"
	"github.com/maslamhussaini/posaccoutingapp/internal/models"
)

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID retrieves a user by ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByUsername retrieves the full user row (including the password
	// hash) for credential verification.
	FindUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// SaveUser persists a new user.
	SaveUser(ctx context.Context, user models.User) error
}

// UserRepositoryFacade combines all user-related repository interfaces.
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}
