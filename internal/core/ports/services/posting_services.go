package services

import (
	"context"

	"github.com/maslamhussaini/posaccoutingapp/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PostingSvc maps completed domain events (sale, purchase, return) to single
// debit/credit journal entries. It is a pure mapping over the journal engine:
// no side effects beyond PostEntry. A failed posting must never roll back the
// originating business event; callers log and continue.
type PostingSvc interface {
	// PostSaleEntry debits the cash/bank account for the payment method and
	// credits sales revenue.
	PostSaleEntry(ctx context.Context, saleID string, total decimal.Decimal, paymentMethod string, userID string) (*domain.JournalEntry, error)

	// PostPurchaseEntry debits inventory and credits accounts payable.
	PostPurchaseEntry(ctx context.Context, purchaseID string, total decimal.Decimal, userID string) (*domain.JournalEntry, error)

	// PostReturnEntry debits sales revenue and credits the cash/bank account
	// for the original payment method.
	PostReturnEntry(ctx context.Context, returnID string, total decimal.Decimal, paymentMethod string, userID string) (*domain.JournalEntry, error)
}
