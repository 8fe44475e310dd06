package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementType classifies an entry in a register's movement log.
type MovementType string

const (
	MovementOpening    MovementType = "OPENING"
	MovementSale       MovementType = "SALE"
	MovementReturn     MovementType = "RETURN"
	MovementDeposit    MovementType = "DEPOSIT"
	MovementWithdrawal MovementType = "WITHDRAWAL"
	MovementClosing    MovementType = "CLOSING"
)

// CashRegister tracks one physical drawer. CurrentBalance is maintained
// incrementally on every movement; the authoritative figure is recomputed from
// the movement log (expected balance) and the two are compared at close.
type CashRegister struct {
	RegisterID     string          `json:"registerID"` // Primary Key (UUID)
	Name           string          `json:"name"`
	IsOpen         bool            `json:"isOpen"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	OpenedAt       *time.Time      `json:"openedAt"`
	ClosedAt       *time.Time      `json:"closedAt"`
	OpenedBy       string          `json:"openedBy"` // UserID; empty while closed
	ClosedBy       string          `json:"closedBy"`
	AuditFields
}

// CashMovement is one append-only event in a register's log. Movements are
// never modified or deleted; ordering by CreatedAt drives balance replay.
type CashMovement struct {
	MovementID   string          `json:"movementID"` // Primary Key (UUID)
	RegisterID   string          `json:"registerID"`
	MovementType MovementType    `json:"movementType"`
	Amount       decimal.Decimal `json:"amount"`      // Positive; the type carries the direction
	Description  string          `json:"description"` // Optional
	Reference    string          `json:"reference"`   // Originating sale/return ID, if any
	CreatedBy    string          `json:"createdBy"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// Reconciliation is the result of closing a register: the drawer count versus
// the balance replayed from the movement log. Difference = actual - expected;
// negative means a shortage, positive an overage.
type Reconciliation struct {
	RegisterID      string          `json:"registerID"`
	ExpectedBalance decimal.Decimal `json:"expectedBalance"`
	ActualBalance   decimal.Decimal `json:"actualBalance"`
	Difference      decimal.Decimal `json:"difference"`
}
