package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/maslamhussaini/posaccoutingapp/internal/apperrors"
	"github.com/maslamhussaini/posaccoutingapp/internal/core/domain"
	portsrepo "github.com/maslamhussaini/posaccoutingapp/internal/core/ports/repositories"
	portssvc "github.com/maslamhussaini/posaccoutingapp/internal/core/ports/services"
	"github.com/maslamhussaini/posaccoutingapp/internal/dto"
)

// cashRegisterService implements the CashRegisterSvcFacade interface. It owns
// the register lifecycle and the append-only movement log.
type cashRegisterService struct {
	BaseService
	registerRepo portsrepo.CashRegisterRepositoryFacade
}

// NewCashRegisterService creates a new cash register service.
func NewCashRegisterService(registerRepo portsrepo.CashRegisterRepositoryFacade) portssvc.CashRegisterSvcFacade {
	return &cashRegisterService{
		registerRepo: registerRepo,
	}
}

// Ensure cashRegisterService implements the CashRegisterSvcFacade interface
var _ portssvc.CashRegisterSvcFacade = (*cashRegisterService)(nil)

// movementDelta returns the signed effect of a movement on the drawer balance.
// CLOSING carries the counted balance and does not move the drawer.
func movementDelta(m domain.CashMovement) decimal.Decimal {
	switch m.MovementType {
	case domain.MovementOpening, domain.MovementSale, domain.MovementDeposit:
		return m.Amount
	case domain.MovementReturn, domain.MovementWithdrawal:
		return m.Amount.Neg()
	default:
		return decimal.Zero
	}
}

func (s *cashRegisterService) CreateRegister(ctx context.Context, req dto.CreateRegisterRequest, userID string) (*domain.CashRegister, error) {
	now := time.Now()
	register := domain.CashRegister{
		RegisterID:     uuid.NewString(),
		Name:           req.Name,
		IsOpen:         false,
		OpeningBalance: decimal.Zero,
		CurrentBalance: decimal.Zero,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.registerRepo.SaveRegister(ctx, register); err != nil {
		s.LogError(ctx, err, "Failed to save register", slog.String("name", req.Name))
		return nil, fmt.Errorf("failed to create register: %w", err)
	}

	s.LogInfo(ctx, "Register created", slog.String("register_id", register.RegisterID))
	return &register, nil
}

func (s *cashRegisterService) OpenRegister(ctx context.Context, registerID string, openingBalance decimal.Decimal, userID string) (*domain.CashRegister, error) {
	if openingBalance.IsNegative() {
		err := apperrors.ErrValidation
		s.LogError(ctx, err, "Opening balance cannot be negative", slog.String("opening_balance", openingBalance.String()))
		return nil, fmt.Errorf("opening balance cannot be negative: %w", err)
	}

	register, err := s.registerRepo.FindRegisterByID(ctx, registerID)
	if err != nil {
		s.LogError(ctx, err, "Failed to find register to open", slog.String("register_id", registerID))
		return nil, err
	}
	if register.IsOpen {
		err := apperrors.ErrInvalidState
		s.LogError(ctx, err, "Register is already open", slog.String("register_id", registerID))
		return nil, fmt.Errorf("register is already open: %w", err)
	}

	now := time.Now()
	register.IsOpen = true
	register.OpeningBalance = openingBalance
	register.CurrentBalance = openingBalance
	register.OpenedAt = &now
	register.OpenedBy = userID
	register.ClosedAt = nil
	register.ClosedBy = ""
	register.LastUpdatedAt = now
	register.LastUpdatedBy = userID

	opening := domain.CashMovement{
		MovementID:   uuid.NewString(),
		RegisterID:   registerID,
		MovementType: domain.MovementOpening,
		Amount:       openingBalance,
		Description:  "Register opened",
		CreatedBy:    userID,
		CreatedAt:    now,
	}

	if err := s.registerRepo.OpenRegister(ctx, *register, opening); err != nil {
		s.LogError(ctx, err, "Failed to open register", slog.String("register_id", registerID))
		return nil, err
	}

	s.LogInfo(ctx, "Register opened",
		slog.String("register_id", registerID),
		slog.String("opening_balance", openingBalance.String()),
	)
	return register, nil
}

// CloseRegister reconciles the counted drawer against the balance replayed
// from the movement log and transitions the register to CLOSED. Only the user
// who opened the register may close it.
func (s *cashRegisterService) CloseRegister(ctx context.Context, registerID string, actualBalance decimal.Decimal, userID string) (*domain.Reconciliation, error) {
	if actualBalance.IsNegative() {
		err := apperrors.ErrValidation
		s.LogError(ctx, err, "Counted balance cannot be negative", slog.String("actual_balance", actualBalance.String()))
		return nil, fmt.Errorf("counted balance cannot be negative: %w", err)
	}

	register, err := s.registerRepo.FindRegisterByID(ctx, registerID)
	if err != nil {
		s.LogError(ctx, err, "Failed to find register to close", slog.String("register_id", registerID))
		return nil, err
	}
	if !register.IsOpen {
		err := apperrors.ErrInvalidState
		s.LogError(ctx, err, "Register is not open", slog.String("register_id", registerID))
		return nil, fmt.Errorf("register is not open: %w", err)
	}
	if register.OpenedBy != userID {
		err := apperrors.ErrInvalidState
		s.LogError(ctx, err, "Only the opener may close the register",
			slog.String("register_id", registerID),
			slog.String("opened_by", register.OpenedBy))
		return nil, fmt.Errorf("register was opened by another user: %w", err)
	}

	expected, err := s.replayBalance(ctx, register)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	closing := domain.CashMovement{
		MovementID:   uuid.NewString(),
		RegisterID:   registerID,
		MovementType: domain.MovementClosing,
		Amount:       actualBalance,
		Description:  fmt.Sprintf("Register closed: expected %s, counted %s", expected.String(), actualBalance.String()),
		CreatedBy:    userID,
		CreatedAt:    now,
	}

	if err := s.registerRepo.CloseRegister(ctx, registerID, actualBalance, closing, userID, now); err != nil {
		s.LogError(ctx, err, "Failed to close register", slog.String("register_id", registerID))
		return nil, err
	}

	reconciliation := &domain.Reconciliation{
		RegisterID:      registerID,
		ExpectedBalance: expected,
		ActualBalance:   actualBalance,
		Difference:      actualBalance.Sub(expected),
	}

	if !reconciliation.Difference.IsZero() {
		s.LogWarn(ctx, "Register closed with discrepancy",
			slog.String("register_id", registerID),
			slog.String("expected_balance", expected.String()),
			slog.String("actual_balance", actualBalance.String()),
			slog.String("difference", reconciliation.Difference.String()),
		)
	} else {
		s.LogInfo(ctx, "Register closed", slog.String("register_id", registerID))
	}

	return reconciliation, nil
}

func (s *cashRegisterService) RecordSale(ctx context.Context, registerID string, amount decimal.Decimal, reference string, userID string) (*domain.CashMovement, error) {
	return s.recordMovement(ctx, registerID, domain.MovementSale, amount, reference, userID)
}

func (s *cashRegisterService) RecordReturn(ctx context.Context, registerID string, amount decimal.Decimal, reference string, userID string) (*domain.CashMovement, error) {
	return s.recordMovement(ctx, registerID, domain.MovementReturn, amount, reference, userID)
}

func (s *cashRegisterService) RecordDeposit(ctx context.Context, registerID string, amount decimal.Decimal, reference string, userID string) (*domain.CashMovement, error) {
	return s.recordMovement(ctx, registerID, domain.MovementDeposit, amount, reference, userID)
}

func (s *cashRegisterService) RecordWithdrawal(ctx context.Context, registerID string, amount decimal.Decimal, reference string, userID string) (*domain.CashMovement, error) {
	return s.recordMovement(ctx, registerID, domain.MovementWithdrawal, amount, reference, userID)
}

// recordMovement appends one movement to an open register. The repository
// applies the balance change as an atomic increment; for outgoing movements it
// also enforces the non-negative drawer floor in the same statement, so two
// concurrent withdrawals cannot both pass a stale balance check.
func (s *cashRegisterService) recordMovement(ctx context.Context, registerID string, movementType domain.MovementType, amount decimal.Decimal, reference string, userID string) (*domain.CashMovement, error) {
	if !amount.IsPositive() {
		err := apperrors.ErrValidation
		s.LogError(ctx, err, "Movement amount must be positive",
			slog.String("movement_type", string(movementType)),
			slog.String("amount", amount.String()))
		return nil, fmt.Errorf("movement amount must be positive: %w", err)
	}

	register, err := s.registerRepo.FindRegisterByID(ctx, registerID)
	if err != nil {
		s.LogError(ctx, err, "Failed to find register for movement", slog.String("register_id", registerID))
		return nil, err
	}
	if !register.IsOpen {
		err := apperrors.ErrInvalidState
		s.LogError(ctx, err, "Register is not open", slog.String("register_id", registerID))
		return nil, fmt.Errorf("register is not open: %w", err)
	}

	movement := domain.CashMovement{
		MovementID:   uuid.NewString(),
		RegisterID:   registerID,
		MovementType: movementType,
		Amount:       amount,
		Reference:    reference,
		CreatedBy:    userID,
		CreatedAt:    time.Now(),
	}

	delta := movementDelta(movement)
	enforceFloor := delta.IsNegative()

	if err := s.registerRepo.AppendMovement(ctx, movement, delta, enforceFloor); err != nil {
		s.LogError(ctx, err, "Failed to append movement",
			slog.String("register_id", registerID),
			slog.String("movement_type", string(movementType)))
		return nil, err
	}

	s.LogInfo(ctx, "Movement recorded",
		slog.String("register_id", registerID),
		slog.String("movement_id", movement.MovementID),
		slog.String("movement_type", string(movementType)),
		slog.String("amount", amount.String()),
	)
	return &movement, nil
}

func (s *cashRegisterService) GetRegisterByID(ctx context.Context, registerID string) (*domain.CashRegister, error) {
	register, err := s.registerRepo.FindRegisterByID(ctx, registerID)
	if err != nil {
		s.LogDebug(ctx, "Failed to find register", slog.String("register_id", registerID))
		return nil, err
	}
	return register, nil
}

func (s *cashRegisterService) ListRegisters(ctx context.Context, limit int, offset int) ([]domain.CashRegister, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return s.registerRepo.ListRegisters(ctx, limit, offset)
}

func (s *cashRegisterService) ListMovements(ctx context.Context, registerID string, params dto.ListMovementsParams) (*dto.ListMovementsResponse, error) {
	if _, err := s.registerRepo.FindRegisterByID(ctx, registerID); err != nil {
		s.LogDebug(ctx, "Failed to find register for movement list", slog.String("register_id", registerID))
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	movements, nextToken, err := s.registerRepo.ListMovements(ctx, registerID, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list movements", slog.String("register_id", registerID))
		return nil, fmt.Errorf("failed to list movements: %w", err)
	}

	return &dto.ListMovementsResponse{
		Movements: dto.ToCashMovementResponses(movements),
		NextToken: nextToken,
	}, nil
}

// ExpectedBalance recomputes an open register's balance from its movement log.
// It never reads CurrentBalance; the point of the replay is to have an
// independent figure to compare the incremental balance against.
func (s *cashRegisterService) ExpectedBalance(ctx context.Context, registerID string) (decimal.Decimal, error) {
	register, err := s.registerRepo.FindRegisterByID(ctx, registerID)
	if err != nil {
		s.LogDebug(ctx, "Failed to find register for expected balance", slog.String("register_id", registerID))
		return decimal.Zero, err
	}
	if !register.IsOpen {
		err := apperrors.ErrInvalidState
		s.LogError(ctx, err, "Register is not open", slog.String("register_id", registerID))
		return decimal.Zero, fmt.Errorf("register is not open: %w", err)
	}
	return s.replayBalance(ctx, register)
}

// replayBalance folds the signed deltas of all movements since the register
// was opened.
func (s *cashRegisterService) replayBalance(ctx context.Context, register *domain.CashRegister) (decimal.Decimal, error) {
	if register.OpenedAt == nil {
		err := apperrors.ErrInvalidState
		s.LogError(ctx, err, "Open register has no opened_at timestamp", slog.String("register_id", register.RegisterID))
		return decimal.Zero, fmt.Errorf("register has no opening timestamp: %w", err)
	}

	movements, err := s.registerRepo.ListMovementsSince(ctx, register.RegisterID, *register.OpenedAt)
	if err != nil {
		s.LogError(ctx, err, "Failed to list movements for replay", slog.String("register_id", register.RegisterID))
		return decimal.Zero, fmt.Errorf("failed to replay register balance: %w", err)
	}

	balance := decimal.Zero
	for _, m := range movements {
		balance = balance.Add(movementDelta(m))
	}
	return balance, nil
}
