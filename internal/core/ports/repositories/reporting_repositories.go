package repositories

import (
	"context"
	"time"

	"github.com/maslamhussaini/posaccoutingapp/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReportingRepository defines aggregate queries used by the reporting service.
// It reads across tables owned by the journal and cash-register components but
// never writes.
type ReportingRepository interface {
	// GetDailyMovementTotals sums movement amounts by type within [from, to],
	// optionally restricted to one register (empty registerID means all).
	GetDailyMovementTotals(ctx context.Context, registerID string, from, to time.Time) (map[domain.MovementType]decimal.Decimal, error)
}
