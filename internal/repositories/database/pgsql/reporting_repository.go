package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/maslamhussaini/posaccoutingapp/internal/core/domain"
	portsrepo "github.com/maslamhussaini/posaccoutingapp/internal/core/ports/repositories"
)

type PgxReportingRepository struct {
	BaseRepository
}

// newPgxReportingRepository creates a new read-only repository for report
// aggregates.
func newPgxReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &PgxReportingRepository{BaseRepository{Pool: pool}}
}

// Ensure PgxReportingRepository implements portsrepo.ReportingRepository
var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

// GetDailyMovementTotals sums movement amounts by type within [from, to),
// optionally restricted to one register.
func (r *PgxReportingRepository) GetDailyMovementTotals(ctx context.Context, registerID string, from, to time.Time) (map[domain.MovementType]decimal.Decimal, error) {
	query := `
		SELECT movement_type, COALESCE(SUM(amount), 0)
		FROM cash_movements
		WHERE created_at >= $1 AND created_at < $2
	`
	args := []interface{}{from, to}

	if registerID != "" {
		args = append(args, registerID)
		query += fmt.Sprintf(` AND register_id = $%d`, len(args))
	}
	query += ` GROUP BY movement_type;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily movement totals: %w", err)
	}
	defer rows.Close()

	totals := make(map[domain.MovementType]decimal.Decimal)
	for rows.Next() {
		var movementType string
		var total decimal.Decimal
		if err := rows.Scan(&movementType, &total); err != nil {
			return nil, fmt.Errorf("failed to scan movement totals row: %w", err)
		}
		totals[domain.MovementType(movementType)] = total
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate movement totals rows: %w", err)
	}

	return totals, nil
}
