package services

import (
	"context"
	"time"

	"github.com/maslamhussaini/posaccoutingapp/internal/core/domain"
)

// ReportingService builds reconciliation reports atop the journal engine and
// the cash register movement log.
type ReportingService interface {
	// DailySummary buckets all movements within the calendar day of date by
	// type and derives the net cash flow. Empty registerID means all registers.
	DailySummary(ctx context.Context, date time.Time, registerID string) (*domain.DailySummary, error)

	// UserRegisterStatus returns the user's open register, if any, with its
	// live expected balance and the drift of currentBalance against it.
	// Returns ErrNotFound when the user holds no open register.
	UserRegisterStatus(ctx context.Context, userID string) (*domain.RegisterStatus, error)

	// TrialBalanceReport renders the journal engine's trial balance, cached
	// briefly when a cache is configured.
	TrialBalanceReport(ctx context.Context, asOf time.Time) (*domain.TrialBalance, error)

	// AccountBalanceReport renders an account's raw and sign-adjusted balance
	// over a window.
	AccountBalanceReport(ctx context.Context, accountID string, from, to *time.Time) (*domain.AccountBalance, error)
}
