package services

import (
	"context"
	"time"

	"github.com/maslamhussaini/posaccoutingapp/internal/core/domain"
	"github.com/maslamhussaini/posaccoutingapp/internal/dto"
)

// JournalWriterSvc defines the sole write primitive of the journal engine.
type JournalWriterSvc interface {
	// PostEntry validates and writes one immutable, balanced journal entry.
	// No entry is created if any validation fails.
	PostEntry(ctx context.Context, req dto.PostEntryRequest, userID string) (*domain.JournalEntry, error)
}

// JournalReaderSvc defines read and aggregate operations for the ledger.
type JournalReaderSvc interface {
	// GetEntryByID retrieves a single journal entry.
	GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// ListEntries retrieves a page of entries using token pagination.
	ListEntries(ctx context.Context, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)

	// AccountBalance sums the account's debit and credit sides over the
	// inclusive [from, to] window; nil bounds mean unbounded. The returned
	// Balance is raw (debit - credit), not sign-adjusted.
	AccountBalance(ctx context.Context, accountID string, from, to *time.Time) (*domain.AccountBalance, error)

	// TrialBalance computes raw and sign-adjusted balances for every active
	// account as of a date. Totals.Debit always equals Totals.Credit.
	TrialBalance(ctx context.Context, asOf time.Time) (*domain.TrialBalance, error)

	// EntriesSummary aggregates count and total amount over a filtered window.
	EntriesSummary(ctx context.Context, filters domain.EntryFilters) (*domain.EntriesSummary, error)
}

// JournalSvcFacade combines all journal-engine service interfaces.
type JournalSvcFacade interface {
	JournalWriterSvc
	JournalReaderSvc
}
