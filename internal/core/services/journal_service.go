package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/maslamhussaini/posaccoutingapp/internal/apperrors"
	"github.com/maslamhussaini/posaccoutingapp/internal/core/domain"
	portsrepo "github.com/maslamhussaini/posaccoutingapp/internal/core/ports/repositories"
	portssvc "github.com/maslamhussaini/posaccoutingapp/internal/core/ports/services"
	"github.com/maslamhussaini/posaccoutingapp/internal/dto"
	"github.com/maslamhussaini/posaccoutingapp/internal/utils/accounting"
)

// journalService implements the JournalSvcFacade interface. Entries are
// immutable once written; every correction is a new entry.
type journalService struct {
	BaseService
	journalRepo portsrepo.JournalRepositoryFacade
	accountRepo portsrepo.AccountReader
}

// NewJournalService creates a new journal service.
func NewJournalService(journalRepo portsrepo.JournalRepositoryFacade, accountRepo portsrepo.AccountReader) portssvc.JournalSvcFacade {
	return &journalService{
		journalRepo: journalRepo,
		accountRepo: accountRepo,
	}
}

// Ensure journalService implements the JournalSvcFacade interface
var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// PostEntry validates and persists one balanced debit/credit pair. All
// validations run before anything is written; a failed validation leaves the
// ledger untouched.
func (s *journalService) PostEntry(ctx context.Context, req dto.PostEntryRequest, userID string) (*domain.JournalEntry, error) {
	if !req.Amount.IsPositive() {
		err := apperrors.ErrValidation
		s.LogError(ctx, err, "Entry amount must be positive", slog.String("amount", req.Amount.String()))
		return nil, fmt.Errorf("entry amount must be positive: %w", err)
	}
	if req.DebitAccountID == req.CreditAccountID {
		err := apperrors.ErrValidation
		s.LogError(ctx, err, "Debit and credit accounts must differ", slog.String("account_id", req.DebitAccountID))
		return nil, fmt.Errorf("debit and credit accounts must differ: %w", err)
	}

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, []string{req.DebitAccountID, req.CreditAccountID})
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch entry accounts")
		return nil, fmt.Errorf("failed to fetch entry accounts: %w", err)
	}
	for _, accountID := range []string{req.DebitAccountID, req.CreditAccountID} {
		account, ok := accounts[accountID]
		if !ok {
			err := apperrors.ErrValidation
			s.LogError(ctx, err, "Entry account not found", slog.String("account_id", accountID))
			return nil, fmt.Errorf("account %s not found: %w", accountID, err)
		}
		if !account.IsActive {
			err := apperrors.ErrValidation
			s.LogError(ctx, err, "Entry account is inactive", slog.String("account_id", accountID))
			return nil, fmt.Errorf("account %s is inactive: %w", accountID, err)
		}
	}

	now := time.Now()
	entry := domain.JournalEntry{
		EntryID:         uuid.NewString(),
		EntryDate:       req.Date,
		Description:     req.Description,
		DebitAccountID:  req.DebitAccountID,
		CreditAccountID: req.CreditAccountID,
		Amount:          req.Amount,
		Reference:       req.Reference,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.journalRepo.SaveEntry(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to save journal entry")
		return nil, fmt.Errorf("failed to save journal entry: %w", err)
	}

	s.LogInfo(ctx, "Journal entry posted",
		slog.String("entry_id", entry.EntryID),
		slog.String("debit_account_id", entry.DebitAccountID),
		slog.String("credit_account_id", entry.CreditAccountID),
		slog.String("amount", entry.Amount.String()),
	)
	return &entry, nil
}

func (s *journalService) GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		s.LogDebug(ctx, "Failed to find journal entry", slog.String("entry_id", entryID))
		return nil, err
	}
	return entry, nil
}

func (s *journalService) ListEntries(ctx context.Context, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	entries, nextToken, err := s.journalRepo.ListEntries(ctx, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list journal entries")
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}

	return &dto.ListEntriesResponse{
		Entries:   dto.ToJournalEntryResponses(entries),
		NextToken: nextToken,
	}, nil
}

// AccountBalance returns the account's raw debit/credit totals and their
// difference over the window. Sign adjustment for the account's type is the
// caller's concern.
func (s *journalService) AccountBalance(ctx context.Context, accountID string, from, to *time.Time) (*domain.AccountBalance, error) {
	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		s.LogDebug(ctx, "Failed to find account for balance", slog.String("account_id", accountID))
		return nil, err
	}

	balance, err := s.journalRepo.SumAccountSides(ctx, accountID, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum account sides", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to compute account balance: %w", err)
	}

	balance.AccountID = accountID
	balance.Balance = balance.Debit.Sub(balance.Credit)
	return &balance, nil
}

// TrialBalance lists every active account with its raw debit/credit totals as
// of the date and its sign-adjusted balance. The raw totals must balance: for
// a ledger of paired entries Totals.Debit always equals Totals.Credit.
func (s *journalService) TrialBalance(ctx context.Context, asOf time.Time) (*domain.TrialBalance, error) {
	accounts, err := s.accountRepo.ListAllActiveAccounts(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts for trial balance")
		return nil, fmt.Errorf("failed to build trial balance: %w", err)
	}

	sums, err := s.journalRepo.SumAllAccountSides(ctx, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum account sides for trial balance")
		return nil, fmt.Errorf("failed to build trial balance: %w", err)
	}

	tb := &domain.TrialBalance{
		AsOf: asOf,
		Rows: make([]domain.TrialBalanceRow, 0, len(accounts)),
	}
	totalDebit := decimal.Zero
	totalCredit := decimal.Zero

	for i := range accounts {
		account := accounts[i]
		sum := sums[account.AccountID]

		balance, err := accounting.NormalBalance(account.AccountType, sum.Debit, sum.Credit)
		if err != nil {
			s.LogError(ctx, err, "Failed to compute normal balance", slog.String("account_id", account.AccountID))
			return nil, fmt.Errorf("failed to build trial balance: %w", err)
		}

		tb.Rows = append(tb.Rows, domain.TrialBalanceRow{
			AccountID:   account.AccountID,
			Code:        account.Code,
			AccountName: account.Name,
			AccountType: account.AccountType,
			Debit:       sum.Debit,
			Credit:      sum.Credit,
			Balance:     balance,
		})
		totalDebit = totalDebit.Add(sum.Debit)
		totalCredit = totalCredit.Add(sum.Credit)
	}

	tb.Totals.Debit = totalDebit
	tb.Totals.Credit = totalCredit

	if !totalDebit.Equal(totalCredit) {
		// Every entry writes the same amount to both sides, so an imbalance
		// means entries reference accounts missing from the active registry.
		s.LogWarn(ctx, "Trial balance totals do not match",
			slog.String("total_debit", totalDebit.String()),
			slog.String("total_credit", totalCredit.String()),
		)
	}

	return tb, nil
}

func (s *journalService) EntriesSummary(ctx context.Context, filters domain.EntryFilters) (*domain.EntriesSummary, error) {
	summary, err := s.journalRepo.SummarizeEntries(ctx, filters)
	if err != nil {
		s.LogError(ctx, err, "Failed to summarize journal entries")
		return nil, fmt.Errorf("failed to summarize journal entries: %w", err)
	}
	return &summary, nil
}
