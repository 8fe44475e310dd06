package mapping

import (
	"github.com/maslamhussaini/posaccoutingapp/internal/core/domain"
	"github.com/maslamhussaini/posaccoutingapp/internal/models"
)

// ToModelCashRegister converts a domain CashRegister to a model CashRegister
func ToModelCashRegister(d domain.CashRegister) models.CashRegister {
	return models.CashRegister{
		RegisterID:     d.RegisterID,
		Name:           d.Name,
		IsOpen:         d.IsOpen,
		OpeningBalance: d.OpeningBalance,
		CurrentBalance: d.CurrentBalance,
		OpenedAt:       d.OpenedAt,
		ClosedAt:       d.ClosedAt,
		OpenedBy:       d.OpenedBy,
		ClosedBy:       d.ClosedBy,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCashRegister converts a model CashRegister to a domain CashRegister
func ToDomainCashRegister(m models.CashRegister) domain.CashRegister {
	return domain.CashRegister{
		RegisterID:     m.RegisterID,
		Name:           m.Name,
		IsOpen:         m.IsOpen,
		OpeningBalance: m.OpeningBalance,
		CurrentBalance: m.CurrentBalance,
		OpenedAt:       m.OpenedAt,
		ClosedAt:       m.ClosedAt,
		OpenedBy:       m.OpenedBy,
		ClosedBy:       m.ClosedBy,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainCashRegisterSlice converts a slice of model registers to domain registers
func ToDomainCashRegisterSlice(ms []models.CashRegister) []domain.CashRegister {
	ds := make([]domain.CashRegister, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCashRegister(m)
	}
	return ds
}

// ToModelCashMovement converts a domain CashMovement to a model CashMovement
func ToModelCashMovement(d domain.CashMovement) models.CashMovement {
	return models.CashMovement{
		MovementID:   d.MovementID,
		RegisterID:   d.RegisterID,
		MovementType: models.MovementType(d.MovementType),
		Amount:       d.Amount,
		Description:  d.Description,
		Reference:    d.Reference,
		CreatedBy:    d.CreatedBy,
		CreatedAt:    d.CreatedAt,
	}
}

// ToDomainCashMovement converts a model CashMovement to a domain CashMovement
func ToDomainCashMovement(m models.CashMovement) domain.CashMovement {
	return domain.CashMovement{
		MovementID:   m.MovementID,
		RegisterID:   m.RegisterID,
		MovementType: domain.MovementType(m.MovementType),
		Amount:       m.Amount,
		Description:  m.Description,
		Reference:    m.Reference,
		CreatedBy:    m.CreatedBy,
		CreatedAt:    m.CreatedAt,
	}
}

// ToDomainCashMovementSlice converts a slice of model movements to domain movements
func ToDomainCashMovementSlice(ms []models.CashMovement) []domain.CashMovement {
	ds := make([]domain.CashMovement, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCashMovement(m)
	}
	return ds
}
