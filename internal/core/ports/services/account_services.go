package services

import (
	"context"

	"github.com/maslamhussaini/posaccoutingapp/internal/core/domain"
	"github.com/maslamhussaini/posaccoutingapp/internal/dto"
)

// AccountReaderSvc defines read operations for the account registry
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account by its unique identifier.
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// GetAccountByCode retrieves an account by its unique user-facing code.
	GetAccountByCode(ctx context.Context, code string) (*domain.Account, error)

	// ListAccounts retrieves a paginated list of active accounts.
	ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error)

	// Hierarchy produces the full active-account forest.
	Hierarchy(ctx context.Context) ([]*domain.AccountNode, error)
}

// AccountWriterSvc defines write operations for the account registry
type AccountWriterSvc interface {
	// CreateAccount persists a new account.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error)

	// UpdateAccount updates an existing account's details.
	UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error)

	// DeactivateAccount marks an account as inactive. Fails with
	// ErrInvalidState if the account has child accounts or journal entries.
	DeactivateAccount(ctx context.Context, accountID string, userID string) error
}

// AccountSvcFacade combines all account-related service interfaces.
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
