package services

import (
	"context"

	"github.com/maslamhussaini/posaccoutingapp/internal/core/domain"
	"github.com/maslamhussaini/posaccoutingapp/internal/dto"
	"github.com/shopspring/decimal"
)

// CashRegisterLifecycleSvc defines the open/close lifecycle of a register.
type CashRegisterLifecycleSvc interface {
	// CreateRegister persists a new register in the CLOSED state.
	CreateRegister(ctx context.Context, req dto.CreateRegisterRequest, userID string) (*domain.CashRegister, error)

	// OpenRegister transitions CLOSED -> OPEN, records the OPENING movement
	// and initialises both balances to openingBalance.
	OpenRegister(ctx context.Context, registerID string, openingBalance decimal.Decimal, userID string) (*domain.CashRegister, error)

	// CloseRegister transitions OPEN -> CLOSED. Only the opener may close.
	// Returns the reconciliation of the counted drawer against the balance
	// replayed from the movement log.
	CloseRegister(ctx context.Context, registerID string, actualBalance decimal.Decimal, userID string) (*domain.Reconciliation, error)
}

// CashMovementSvc records movements against an open register.
type CashMovementSvc interface {
	// RecordSale adds cash to the drawer for a completed sale.
	RecordSale(ctx context.Context, registerID string, amount decimal.Decimal, reference string, userID string) (*domain.CashMovement, error)

	// RecordReturn removes cash refunded for an approved return. Requires
	// currentBalance >= amount.
	RecordReturn(ctx context.Context, registerID string, amount decimal.Decimal, reference string, userID string) (*domain.CashMovement, error)

	// RecordDeposit adds cash placed into the drawer.
	RecordDeposit(ctx context.Context, registerID string, amount decimal.Decimal, reference string, userID string) (*domain.CashMovement, error)

	// RecordWithdrawal removes cash taken from the drawer. Requires
	// currentBalance >= amount.
	RecordWithdrawal(ctx context.Context, registerID string, amount decimal.Decimal, reference string, userID string) (*domain.CashMovement, error)
}

// CashRegisterReaderSvc defines read operations for registers.
type CashRegisterReaderSvc interface {
	// GetRegisterByID retrieves a register.
	GetRegisterByID(ctx context.Context, registerID string) (*domain.CashRegister, error)

	// ListRegisters retrieves a paginated list of registers.
	ListRegisters(ctx context.Context, limit int, offset int) ([]domain.CashRegister, error)

	// ListMovements retrieves a page of a register's movement log.
	ListMovements(ctx context.Context, registerID string, params dto.ListMovementsParams) (*dto.ListMovementsResponse, error)

	// ExpectedBalance recomputes the register's balance purely from its
	// movement log since it was opened. Deliberately independent of the
	// incrementally maintained currentBalance.
	ExpectedBalance(ctx context.Context, registerID string) (decimal.Decimal, error)
}

// CashRegisterSvcFacade combines all register-related service interfaces.
type CashRegisterSvcFacade interface {
	CashRegisterLifecycleSvc
	CashMovementSvc
	CashRegisterReaderSvc
}
