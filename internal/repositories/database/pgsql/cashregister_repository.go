package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/maslamhussaini/posaccoutingapp/internal/apperrors"
	"github.com/maslamhussaini/posaccoutingapp/internal/core/domain"
	portsrepo "github.com/maslamhussaini/posaccoutingapp/internal/core/ports/repositories"
	"github.com/maslamhussaini/posaccoutingapp/internal/models"
	"github.com/maslamhussaini/posaccoutingapp/internal/utils/mapping"
	"github.com/maslamhussaini/posaccoutingapp/internal/utils/pagination"
)

// oneOpenRegisterIndex is the partial unique index on cash_registers(opened_by)
// WHERE is_open. It is the authority for the one-open-register-per-user rule;
// the service never pre-checks, it just maps the violation.
const oneOpenRegisterIndex = "uq_cash_registers_open_user"

type PgxCashRegisterRepository struct {
	BaseRepository
}

// newPgxCashRegisterRepository creates a new repository for cash registers and
// their movement logs.
func newPgxCashRegisterRepository(pool *pgxpool.Pool) portsrepo.CashRegisterRepositoryFacade {
	return &PgxCashRegisterRepository{BaseRepository{Pool: pool}}
}

// Ensure PgxCashRegisterRepository implements portsrepo.CashRegisterRepositoryFacade
var _ portsrepo.CashRegisterRepositoryFacade = (*PgxCashRegisterRepository)(nil)

const registerColumns = `register_id, name, is_open, opening_balance, current_balance, opened_at, closed_at, opened_by, closed_by, created_at, created_by, last_updated_at, last_updated_by`

const movementColumns = `movement_id, register_id, movement_type, amount, description, reference, created_by, created_at`

// scanRegister scans one cash_registers row, mapping the nullable open/close
// columns through sql.Null types.
func scanRegister(row pgx.Row) (models.CashRegister, error) {
	var m models.CashRegister
	var openedAt, closedAt sql.NullTime
	var openedBy, closedBy sql.NullString
	err := row.Scan(
		&m.RegisterID,
		&m.Name,
		&m.IsOpen,
		&m.OpeningBalance,
		&m.CurrentBalance,
		&openedAt,
		&closedAt,
		&openedBy,
		&closedBy,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return models.CashRegister{}, err
	}
	if openedAt.Valid {
		t := openedAt.Time
		m.OpenedAt = &t
	}
	if closedAt.Valid {
		t := closedAt.Time
		m.ClosedAt = &t
	}
	if openedBy.Valid {
		m.OpenedBy = openedBy.String
	}
	if closedBy.Valid {
		m.ClosedBy = closedBy.String
	}
	return m, nil
}

// scanMovement scans one cash_movements row.
func scanMovement(row pgx.Row) (models.CashMovement, error) {
	var m models.CashMovement
	var description, reference sql.NullString
	err := row.Scan(
		&m.MovementID,
		&m.RegisterID,
		&m.MovementType,
		&m.Amount,
		&description,
		&reference,
		&m.CreatedBy,
		&m.CreatedAt,
	)
	if err != nil {
		return models.CashMovement{}, err
	}
	if description.Valid {
		m.Description = description.String
	}
	if reference.Valid {
		m.Reference = reference.String
	}
	return m, nil
}

// SaveRegister inserts a new (closed) register.
func (r *PgxCashRegisterRepository) SaveRegister(ctx context.Context, register domain.CashRegister) error {
	m := mapping.ToModelCashRegister(register)

	query := `
		INSERT INTO cash_registers (register_id, name, is_open, opening_balance, current_balance, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.RegisterID,
		m.Name,
		m.IsOpen,
		m.OpeningBalance,
		m.CurrentBalance,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err, "") {
			return fmt.Errorf("register %s already exists: %w", m.RegisterID, apperrors.ErrConflict)
		}
		return fmt.Errorf("failed to save register %s: %w", m.RegisterID, err)
	}
	return nil
}

// FindRegisterByID retrieves a register by its ID.
func (r *PgxCashRegisterRepository) FindRegisterByID(ctx context.Context, registerID string) (*domain.CashRegister, error) {
	query := `SELECT ` + registerColumns + ` FROM cash_registers WHERE register_id = $1;`

	m, err := scanRegister(r.Pool.QueryRow(ctx, query, registerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("register %s not found", registerID))
		}
		return nil, fmt.Errorf("failed to find register %s: %w", registerID, err)
	}

	register := mapping.ToDomainCashRegister(m)
	return &register, nil
}

// FindOpenRegisterByUser retrieves the register currently opened by the user.
// The partial unique index guarantees at most one row matches.
func (r *PgxCashRegisterRepository) FindOpenRegisterByUser(ctx context.Context, userID string) (*domain.CashRegister, error) {
	query := `SELECT ` + registerColumns + ` FROM cash_registers WHERE opened_by = $1 AND is_open = TRUE;`

	m, err := scanRegister(r.Pool.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("no open register for user %s", userID))
		}
		return nil, fmt.Errorf("failed to find open register for user %s: %w", userID, err)
	}

	register := mapping.ToDomainCashRegister(m)
	return &register, nil
}

// ListRegisters retrieves a page of registers ordered by name.
func (r *PgxCashRegisterRepository) ListRegisters(ctx context.Context, limit int, offset int) ([]domain.CashRegister, error) {
	query := `SELECT ` + registerColumns + ` FROM cash_registers ORDER BY name LIMIT $1 OFFSET $2;`

	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list registers: %w", err)
	}
	defer rows.Close()

	registers := make([]models.CashRegister, 0, limit)
	for rows.Next() {
		m, err := scanRegister(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan register row: %w", err)
		}
		registers = append(registers, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate register rows: %w", err)
	}

	return mapping.ToDomainCashRegisterSlice(registers), nil
}

// OpenRegister transitions the register to OPEN and records the OPENING
// movement in one transaction. A violation of the one-open-register-per-user
// index aborts the whole transition.
func (r *PgxCashRegisterRepository) OpenRegister(ctx context.Context, register domain.CashRegister, opening domain.CashMovement) error {
	m := mapping.ToModelCashRegister(register)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) //nolint:errcheck

	query := `
		UPDATE cash_registers
		SET is_open = TRUE, opening_balance = $2, current_balance = $3, opened_at = $4, opened_by = $5,
		    closed_at = NULL, closed_by = NULL, last_updated_at = $6, last_updated_by = $7
		WHERE register_id = $1 AND is_open = FALSE;
	`
	tag, err := tx.Exec(ctx, query,
		m.RegisterID,
		m.OpeningBalance,
		m.CurrentBalance,
		m.OpenedAt,
		nullableString(m.OpenedBy),
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err, oneOpenRegisterIndex) {
			return fmt.Errorf("user %s already has an open register: %w", m.OpenedBy, apperrors.ErrInvalidState)
		}
		return fmt.Errorf("failed to open register %s: %w", m.RegisterID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("register %s is missing or already open: %w", m.RegisterID, apperrors.ErrInvalidState)
	}

	if err := insertTxMovement(ctx, tx, mapping.ToModelCashMovement(opening)); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// CloseRegister transitions the register to CLOSED, storing the counted
// balance and recording the CLOSING movement in one transaction.
func (r *PgxCashRegisterRepository) CloseRegister(ctx context.Context, registerID string, actualBalance decimal.Decimal, closing domain.CashMovement, closedBy string, closedAt time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) //nolint:errcheck

	query := `
		UPDATE cash_registers
		SET is_open = FALSE, current_balance = $2, closed_at = $3, closed_by = $4, last_updated_at = $3, last_updated_by = $4
		WHERE register_id = $1 AND is_open = TRUE;
	`
	tag, err := tx.Exec(ctx, query, registerID, actualBalance, closedAt, closedBy)
	if err != nil {
		return fmt.Errorf("failed to close register %s: %w", registerID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("register %s is missing or not open: %w", registerID, apperrors.ErrInvalidState)
	}

	if err := insertTxMovement(ctx, tx, mapping.ToModelCashMovement(closing)); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// AppendMovement inserts one movement and applies its delta to the register's
// current balance. The balance change and, for outgoing movements, the
// non-negative floor check happen in a single UPDATE so concurrent movements
// serialize on the row instead of racing a read-modify-write cycle.
func (r *PgxCashRegisterRepository) AppendMovement(ctx context.Context, movement domain.CashMovement, delta decimal.Decimal, enforceFloor bool) error {
	m := mapping.ToModelCashMovement(movement)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) //nolint:errcheck

	query := `
		UPDATE cash_registers
		SET current_balance = current_balance + $2, last_updated_at = $3, last_updated_by = $4
		WHERE register_id = $1 AND is_open = TRUE
	`
	if enforceFloor {
		query += ` AND current_balance + $2 >= 0`
	}
	query += `;`

	tag, err := tx.Exec(ctx, query, m.RegisterID, delta, m.CreatedAt, m.CreatedBy)
	if err != nil {
		return fmt.Errorf("failed to apply movement to register %s: %w", m.RegisterID, err)
	}
	if tag.RowsAffected() == 0 {
		if enforceFloor {
			return fmt.Errorf("insufficient balance in register %s: %w", m.RegisterID, apperrors.ErrInvalidState)
		}
		return fmt.Errorf("register %s is missing or not open: %w", m.RegisterID, apperrors.ErrInvalidState)
	}

	if err := insertTxMovement(ctx, tx, m); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// insertTxMovement inserts one movement row within a transaction.
func insertTxMovement(ctx context.Context, tx pgx.Tx, movement models.CashMovement) error {
	query := `
		INSERT INTO cash_movements (movement_id, register_id, movement_type, amount, description, reference, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := tx.Exec(ctx, query,
		movement.MovementID,
		movement.RegisterID,
		movement.MovementType,
		movement.Amount,
		nullableString(movement.Description),
		nullableString(movement.Reference),
		movement.CreatedBy,
		movement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert movement %s: %w", movement.MovementID, err)
	}
	return nil
}

// ListMovementsSince retrieves all movements for a register recorded at or
// after the given time, in replay order.
func (r *PgxCashRegisterRepository) ListMovementsSince(ctx context.Context, registerID string, since time.Time) ([]domain.CashMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM cash_movements WHERE register_id = $1 AND created_at >= $2 ORDER BY created_at ASC, movement_id ASC;`

	rows, err := r.Pool.Query(ctx, query, registerID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to list movements for register %s: %w", registerID, err)
	}
	defer rows.Close()

	var movements []models.CashMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan movement row: %w", err)
		}
		movements = append(movements, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate movement rows: %w", err)
	}

	return mapping.ToDomainCashMovementSlice(movements), nil
}

// ListMovements retrieves a page of a register's movements ordered by
// (created_at, movement_id) descending, using token pagination.
func (r *PgxCashRegisterRepository) ListMovements(ctx context.Context, registerID string, limit int, nextToken *string) ([]domain.CashMovement, *string, error) {
	query := `SELECT ` + movementColumns + ` FROM cash_movements WHERE register_id = $1`
	args := []interface{}{registerID}

	if nextToken != nil && *nextToken != "" {
		createdAt, movementID, err := pagination.DecodeIDToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid pagination token: %w", apperrors.ErrValidation)
		}
		args = append(args, createdAt, movementID)
		query += fmt.Sprintf(` AND (created_at, movement_id) < ($%d, $%d)`, len(args)-1, len(args))
	}

	args = append(args, limit+1)
	query += fmt.Sprintf(` ORDER BY created_at DESC, movement_id DESC LIMIT $%d;`, len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list movements for register %s: %w", registerID, err)
	}
	defer rows.Close()

	movements := make([]models.CashMovement, 0, limit+1)
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan movement row: %w", err)
		}
		movements = append(movements, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to iterate movement rows: %w", err)
	}

	var newToken *string
	if len(movements) > limit {
		movements = movements[:limit]
		last := movements[len(movements)-1]
		token := pagination.EncodeIDToken(last.CreatedAt, last.MovementID)
		newToken = &token
	}

	return mapping.ToDomainCashMovementSlice(movements), newToken, nil
}

// ListMovementsInWindow retrieves all movements in [from, to), optionally
// restricted to one register.
func (r *PgxCashRegisterRepository) ListMovementsInWindow(ctx context.Context, registerID string, from, to time.Time) ([]domain.CashMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM cash_movements WHERE created_at >= $1 AND created_at < $2`
	args := []interface{}{from, to}

	if registerID != "" {
		args = append(args, registerID)
		query += fmt.Sprintf(` AND register_id = $%d`, len(args))
	}
	query += ` ORDER BY created_at ASC, movement_id ASC;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list movements in window: %w", err)
	}
	defer rows.Close()

	var movements []models.CashMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan movement row: %w", err)
		}
		movements = append(movements, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate movement rows: %w", err)
	}

	return mapping.ToDomainCashMovementSlice(movements), nil
}
