package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/maslamhussaini/posaccoutingapp/internal/apperrors"
	"github.com/maslamhussaini/posaccoutingapp/internal/core/domain"
	portsrepo "github.com/maslamhussaini/posaccoutingapp/internal/core/ports/repositories"
	"github.com/maslamhussaini/posaccoutingapp/internal/models"
	"github.com/maslamhussaini/posaccoutingapp/internal/utils/mapping"
	"github.com/maslamhussaini/posaccoutingapp/internal/utils/pagination"
)

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal entries.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{BaseRepository{Pool: pool}}
}

// Ensure PgxJournalRepository implements portsrepo.JournalRepositoryFacade
var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

const journalColumns = `entry_id, entry_date, description, debit_account_id, credit_account_id, amount, reference, created_at, created_by, last_updated_at, last_updated_by`

// scanJournalEntry scans one journal_entries row, mapping the nullable
// reference through sql.NullString.
func scanJournalEntry(row pgx.Row) (models.JournalEntry, error) {
	var m models.JournalEntry
	var reference sql.NullString
	err := row.Scan(
		&m.EntryID,
		&m.EntryDate,
		&m.Description,
		&m.DebitAccountID,
		&m.CreditAccountID,
		&m.Amount,
		&reference,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return models.JournalEntry{}, err
	}
	if reference.Valid {
		m.Reference = reference.String
	}
	return m, nil
}

// SaveEntry inserts one immutable journal entry. There is deliberately no
// update or delete counterpart; corrections are posted as new entries.
func (r *PgxJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry) error {
	m := mapping.ToModelJournalEntry(entry)

	query := `
		INSERT INTO journal_entries (entry_id, entry_date, description, debit_account_id, credit_account_id, amount, reference, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.EntryID,
		m.EntryDate,
		m.Description,
		m.DebitAccountID,
		m.CreditAccountID,
		m.Amount,
		nullableString(m.Reference),
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err, "") {
			return fmt.Errorf("journal entry %s already exists: %w", m.EntryID, apperrors.ErrConflict)
		}
		return fmt.Errorf("failed to save journal entry %s: %w", m.EntryID, err)
	}
	return nil
}

// FindEntryByID retrieves a single journal entry.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + journalColumns + ` FROM journal_entries WHERE entry_id = $1;`

	m, err := scanJournalEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("journal entry %s not found", entryID))
		}
		return nil, fmt.Errorf("failed to find journal entry %s: %w", entryID, err)
	}

	entry := mapping.ToDomainJournalEntry(m)
	return &entry, nil
}

// ListEntries retrieves a page of entries ordered by (entry_date, created_at)
// descending. The token encodes the sort key of the last row of the previous
// page; one extra row is fetched to decide whether another page exists.
func (r *PgxJournalRepository) ListEntries(ctx context.Context, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	query := `SELECT ` + journalColumns + ` FROM journal_entries`
	args := []interface{}{}

	if nextToken != nil && *nextToken != "" {
		entryDate, createdAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid pagination token: %w", apperrors.ErrValidation)
		}
		query += ` WHERE (entry_date, created_at) < ($1, $2)`
		args = append(args, entryDate, createdAt)
	}

	query += fmt.Sprintf(` ORDER BY entry_date DESC, created_at DESC LIMIT $%d;`, len(args)+1)
	args = append(args, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list journal entries: %w", err)
	}
	defer rows.Close()

	entries := make([]models.JournalEntry, 0, limit+1)
	for rows.Next() {
		m, err := scanJournalEntry(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan journal entry row: %w", err)
		}
		entries = append(entries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to iterate journal entry rows: %w", err)
	}

	var newToken *string
	if len(entries) > limit {
		entries = entries[:limit]
		last := entries[len(entries)-1]
		token := pagination.EncodeToken(last.EntryDate, last.CreatedAt)
		newToken = &token
	}

	return mapping.ToDomainJournalEntrySlice(entries), newToken, nil
}

// HasEntriesForAccount reports whether the account appears on either side of
// any journal entry.
func (r *PgxJournalRepository) HasEntriesForAccount(ctx context.Context, accountID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM journal_entries WHERE debit_account_id = $1 OR credit_account_id = $1);`

	var exists bool
	if err := r.Pool.QueryRow(ctx, query, accountID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check journal entries for account %s: %w", accountID, err)
	}
	return exists, nil
}

// SumAccountSides returns the raw debit and credit totals for an account over
// an optional [from, to] window.
func (r *PgxJournalRepository) SumAccountSides(ctx context.Context, accountID string, from, to *time.Time) (domain.AccountBalance, error) {
	query := `
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE debit_account_id = $1), 0),
			COALESCE(SUM(amount) FILTER (WHERE credit_account_id = $1), 0)
		FROM journal_entries
		WHERE (debit_account_id = $1 OR credit_account_id = $1)
	`
	args := []interface{}{accountID}

	if from != nil {
		args = append(args, *from)
		query += fmt.Sprintf(` AND entry_date >= $%d`, len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += fmt.Sprintf(` AND entry_date <= $%d`, len(args))
	}
	query += `;`

	var balance domain.AccountBalance
	if err := r.Pool.QueryRow(ctx, query, args...).Scan(&balance.Debit, &balance.Credit); err != nil {
		return domain.AccountBalance{}, fmt.Errorf("failed to sum sides for account %s: %w", accountID, err)
	}

	balance.AccountID = accountID
	balance.Balance = balance.Debit.Sub(balance.Credit)
	return balance, nil
}

// SumAllAccountSides returns the raw debit/credit totals per account across
// every entry dated on or before asOf.
func (r *PgxJournalRepository) SumAllAccountSides(ctx context.Context, asOf time.Time) (map[string]domain.AccountBalance, error) {
	query := `
		SELECT account_id, SUM(debit), SUM(credit)
		FROM (
			SELECT debit_account_id AS account_id, amount AS debit, 0::numeric AS credit
			FROM journal_entries WHERE entry_date <= $1
			UNION ALL
			SELECT credit_account_id AS account_id, 0::numeric AS debit, amount AS credit
			FROM journal_entries WHERE entry_date <= $1
		) sides
		GROUP BY account_id;
	`
	rows, err := r.Pool.Query(ctx, query, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to sum all account sides: %w", err)
	}
	defer rows.Close()

	sums := make(map[string]domain.AccountBalance)
	for rows.Next() {
		var balance domain.AccountBalance
		if err := rows.Scan(&balance.AccountID, &balance.Debit, &balance.Credit); err != nil {
			return nil, fmt.Errorf("failed to scan account sums row: %w", err)
		}
		balance.Balance = balance.Debit.Sub(balance.Credit)
		sums[balance.AccountID] = balance
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate account sums rows: %w", err)
	}

	return sums, nil
}

// SummarizeEntries aggregates count and total amount over a filtered window.
func (r *PgxJournalRepository) SummarizeEntries(ctx context.Context, filters domain.EntryFilters) (domain.EntriesSummary, error) {
	query := `SELECT COUNT(*), COALESCE(SUM(amount), 0) FROM journal_entries WHERE 1=1`
	args := []interface{}{}

	if filters.AccountID != "" {
		args = append(args, filters.AccountID)
		query += fmt.Sprintf(` AND (debit_account_id = $%d OR credit_account_id = $%d)`, len(args), len(args))
	}
	if filters.From != nil {
		args = append(args, *filters.From)
		query += fmt.Sprintf(` AND entry_date >= $%d`, len(args))
	}
	if filters.To != nil {
		args = append(args, *filters.To)
		query += fmt.Sprintf(` AND entry_date <= $%d`, len(args))
	}
	query += `;`

	var summary domain.EntriesSummary
	if err := r.Pool.QueryRow(ctx, query, args...).Scan(&summary.Count, &summary.TotalAmount); err != nil {
		return domain.EntriesSummary{}, fmt.Errorf("failed to summarize journal entries: %w", err)
	}
	return summary, nil
}
