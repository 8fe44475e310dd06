package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	AccountRepo      AccountRepositoryFacade
	JournalRepo      JournalRepositoryFacade
	CashRegisterRepo CashRegisterRepositoryFacade
	ReportingRepo    ReportingRepository
	UserRepo         UserRepositoryFacade
}

// TransactionManager defines explicit database transaction control for
// repositories that need multi-statement atomicity.
type TransactionManager interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Commit(ctx context.Context, tx pgx.Tx) error
	Rollback(ctx context.Context, tx pgx.Tx) error
}
