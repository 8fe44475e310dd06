package repositories

import (
	"context"
	"time"

	"github.com/maslamhussaini/posaccoutingapp/internal/core/domain"
)

// JournalReader defines read operations for journal entries
type JournalReader interface {
	// FindEntryByID retrieves a single journal entry.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// ListEntries retrieves a page of journal entries ordered by entry date
	// descending, using token pagination.
	ListEntries(ctx context.Context, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)

	// HasEntriesForAccount reports whether the account appears on either side
	// of any journal entry, ever.
	HasEntriesForAccount(ctx context.Context, accountID string) (bool, error)

	// SumAccountSides returns the raw debit and credit totals for an account
	// over the inclusive [from, to] window; nil bounds mean unbounded.
	SumAccountSides(ctx context.Context, accountID string, from, to *time.Time) (domain.AccountBalance, error)

	// SumAllAccountSides returns the raw debit/credit totals per account for
	// every account with at least one entry dated on or before asOf.
	SumAllAccountSides(ctx context.Context, asOf time.Time) (map[string]domain.AccountBalance, error)

	// SummarizeEntries aggregates count and total amount over a filtered window.
	SummarizeEntries(ctx context.Context, filters domain.EntryFilters) (domain.EntriesSummary, error)
}

// JournalWriter defines write operations for journal entries
type JournalWriter interface {
	// SaveEntry persists a new immutable journal entry.
	SaveEntry(ctx context.Context, entry domain.JournalEntry) error
}

// JournalRepositoryFacade combines all journal-related repository interfaces.
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
}
