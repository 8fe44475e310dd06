package dto

import (
	"time"

	"github.com/maslamhussaini/posaccoutingapp/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateRegisterRequest defines the data needed to create a register.
type CreateRegisterRequest struct {
	Name string `json:"name" binding:"required"`
}

// OpenRegisterRequest defines the data needed to open a register.
type OpenRegisterRequest struct {
	OpeningBalance decimal.Decimal `json:"openingBalance"`
}

// CloseRegisterRequest defines the data needed to close a register.
type CloseRegisterRequest struct {
	ActualBalance decimal.Decimal `json:"actualBalance"`
}

// RecordMovementRequest defines the data for a sale/return/deposit/withdrawal.
type RecordMovementRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description"`
	Reference   string          `json:"reference"` // Originating sale/return ID, if any
}

// CashRegisterResponse defines the data returned for a register.
type CashRegisterResponse struct {
	RegisterID     string          `json:"registerID"`
	Name           string          `json:"name"`
	IsOpen         bool            `json:"isOpen"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	OpenedAt       *time.Time      `json:"openedAt,omitempty"`
	ClosedAt       *time.Time      `json:"closedAt,omitempty"`
	OpenedBy       string          `json:"openedBy,omitempty"`
	ClosedBy       string          `json:"closedBy,omitempty"`
}

// ToCashRegisterResponse converts a domain.CashRegister to its DTO.
func ToCashRegisterResponse(r *domain.CashRegister) CashRegisterResponse {
	return CashRegisterResponse{
		RegisterID:     r.RegisterID,
		Name:           r.Name,
		IsOpen:         r.IsOpen,
		OpeningBalance: r.OpeningBalance,
		CurrentBalance: r.CurrentBalance,
		OpenedAt:       r.OpenedAt,
		ClosedAt:       r.ClosedAt,
		OpenedBy:       r.OpenedBy,
		ClosedBy:       r.ClosedBy,
	}
}

// ToListCashRegisterResponse converts a slice of registers.
func ToListCashRegisterResponse(registers []domain.CashRegister) []CashRegisterResponse {
	res := make([]CashRegisterResponse, len(registers))
	for i := range registers {
		res[i] = ToCashRegisterResponse(&registers[i])
	}
	return res
}

// CashMovementResponse defines the data returned for one movement.
type CashMovementResponse struct {
	MovementID   string          `json:"movementID"`
	RegisterID   string          `json:"registerID"`
	MovementType string          `json:"movementType"`
	Amount       decimal.Decimal `json:"amount"`
	Description  string          `json:"description,omitempty"`
	Reference    string          `json:"reference,omitempty"`
	CreatedBy    string          `json:"createdBy"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// ToCashMovementResponse converts a domain.CashMovement to its DTO.
func ToCashMovementResponse(m *domain.CashMovement) CashMovementResponse {
	return CashMovementResponse{
		MovementID:   m.MovementID,
		RegisterID:   m.RegisterID,
		MovementType: string(m.MovementType),
		Amount:       m.Amount,
		Description:  m.Description,
		Reference:    m.Reference,
		CreatedBy:    m.CreatedBy,
		CreatedAt:    m.CreatedAt,
	}
}

// ToCashMovementResponses converts a slice of movements.
func ToCashMovementResponses(movements []domain.CashMovement) []CashMovementResponse {
	res := make([]CashMovementResponse, len(movements))
	for i := range movements {
		res[i] = ToCashMovementResponse(&movements[i])
	}
	return res
}

// ListMovementsParams defines query parameters for listing movements.
type ListMovementsParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// ListMovementsResponse wraps a page of movements.
type ListMovementsResponse struct {
	Movements []CashMovementResponse `json:"movements"`
	NextToken *string                `json:"nextToken,omitempty"`
}

// ReconciliationResponse is the result of closing a register.
type ReconciliationResponse struct {
	RegisterID      string          `json:"registerID"`
	ExpectedBalance decimal.Decimal `json:"expectedBalance"`
	ActualBalance   decimal.Decimal `json:"actualBalance"`
	Difference      decimal.Decimal `json:"difference"`
}

// ToReconciliationResponse converts a domain.Reconciliation to its DTO.
func ToReconciliationResponse(r *domain.Reconciliation) ReconciliationResponse {
	return ReconciliationResponse{
		RegisterID:      r.RegisterID,
		ExpectedBalance: r.ExpectedBalance,
		ActualBalance:   r.ActualBalance,
		Difference:      r.Difference,
	}
}
