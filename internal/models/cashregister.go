package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementType classifies an entry in the cash_movements table.
type MovementType string

// CashRegister represents a row in the cash_registers table.
// OpenedAt/ClosedAt/OpenedBy/ClosedBy are nullable while the register has
// never been opened or closed.
type CashRegister struct {
	RegisterID     string          `db:"register_id"`
	Name           string          `db:"name"`
	IsOpen         bool            `db:"is_open"`
	OpeningBalance decimal.Decimal `db:"opening_balance"`
	CurrentBalance decimal.Decimal `db:"current_balance"`
	OpenedAt       *time.Time      `db:"opened_at"`
	ClosedAt       *time.Time      `db:"closed_at"`
	OpenedBy       string          `db:"opened_by"` // Nullable
	ClosedBy       string          `db:"closed_by"` // Nullable
	AuditFields
}

// CashMovement represents one append-only row in the cash_movements table.
type CashMovement struct {
	MovementID   string          `db:"movement_id"`
	RegisterID   string          `db:"register_id"`
	MovementType MovementType    `db:"movement_type"`
	Amount       decimal.Decimal `db:"amount"`
	Description  string          `db:"description"` // Nullable
	Reference    string          `db:"reference"`   // Nullable
	CreatedBy    string          `db:"created_by"`
	CreatedAt    time.Time       `db:"created_at"`
}
