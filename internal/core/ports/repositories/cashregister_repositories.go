package repositories

import (
	"context"
	"time"

	"github.com/maslamhussaini/posaccoutingapp/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CashRegisterReader defines read operations for cash registers
type CashRegisterReader interface {
	// FindRegisterByID retrieves a register by its ID.
	FindRegisterByID(ctx context.Context, registerID string) (*domain.CashRegister, error)

	// FindOpenRegisterByUser retrieves the register currently opened by the
	// user, or ErrNotFound if the user holds none.
	FindOpenRegisterByUser(ctx context.Context, userID string) (*domain.CashRegister, error)

	// ListRegisters retrieves a paginated list of registers.
	ListRegisters(ctx context.Context, limit int, offset int) ([]domain.CashRegister, error)
}

// CashRegisterWriter defines write operations for cash registers
type CashRegisterWriter interface {
	// SaveRegister persists a new (closed) register.
	SaveRegister(ctx context.Context, register domain.CashRegister) error

	// OpenRegister transitions the register to OPEN and records the OPENING
	// movement atomically. The unique partial index on opened_by is the
	// authority for the one-open-register-per-user invariant; a violation
	// surfaces as ErrInvalidState.
	OpenRegister(ctx context.Context, register domain.CashRegister, opening domain.CashMovement) error

	// CloseRegister transitions the register to CLOSED, records the CLOSING
	// movement and stores the counted balance, atomically.
	CloseRegister(ctx context.Context, registerID string, actualBalance decimal.Decimal, closing domain.CashMovement, closedBy string, closedAt time.Time) error

	// AppendMovement inserts one movement and applies delta to the register's
	// current balance as a single atomic increment. When enforceFloor is set
	// the decrement only applies if current_balance >= |delta|; a floor breach
	// returns ErrInvalidState and nothing is written.
	AppendMovement(ctx context.Context, movement domain.CashMovement, delta decimal.Decimal, enforceFloor bool) error
}

// CashMovementReader defines read operations for the movement log
type CashMovementReader interface {
	// ListMovementsSince retrieves all movements for a register recorded at or
	// after the given time, ordered by created_at ascending.
	ListMovementsSince(ctx context.Context, registerID string, since time.Time) ([]domain.CashMovement, error)

	// ListMovements retrieves a page of a register's movements ordered by
	// created_at descending, using token pagination.
	ListMovements(ctx context.Context, registerID string, limit int, nextToken *string) ([]domain.CashMovement, *string, error)

	// ListMovementsInWindow retrieves all movements in [from, to], optionally
	// restricted to one register (empty registerID means all).
	ListMovementsInWindow(ctx context.Context, registerID string, from, to time.Time) ([]domain.CashMovement, error)
}

// CashRegisterRepositoryFacade combines all register-related repository interfaces.
type CashRegisterRepositoryFacade interface {
	CashRegisterReader
	CashRegisterWriter
	CashMovementReader
}
