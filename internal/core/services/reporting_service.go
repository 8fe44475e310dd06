package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/maslamhussaini/posaccoutingapp/internal/core/domain"
	portsrepo "github.com/maslamhussaini/posaccoutingapp/internal/core/ports/repositories"
	portssvc "github.com/maslamhussaini/posaccoutingapp/internal/core/ports/services"
)

// reportingService implements the ReportingService interface. It is strictly
// read-only: every figure is derived from the journal and the movement log.
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
	registerRepo  portsrepo.CashRegisterRepositoryFacade
	journal       portssvc.JournalReaderSvc

	cache    *redis.Client
	cacheTTL time.Duration
}

// ReportingServiceOption is a functional option for configuring the reporting service
type ReportingServiceOption func(*reportingService)

// WithReportCache enables short-lived caching of the trial balance report.
// The trial balance aggregates the whole ledger, so dashboards polling it
// benefit from a small TTL without meaningfully staling the figures.
func WithReportCache(client *redis.Client, ttl time.Duration) ReportingServiceOption {
	return func(s *reportingService) {
		s.cache = client
		s.cacheTTL = ttl
	}
}

// NewReportingService creates a new reporting service with the provided options
func NewReportingService(
	reportingRepo portsrepo.ReportingRepository,
	registerRepo portsrepo.CashRegisterRepositoryFacade,
	journal portssvc.JournalReaderSvc,
	options ...ReportingServiceOption,
) portssvc.ReportingService {
	svc := &reportingService{
		reportingRepo: reportingRepo,
		registerRepo:  registerRepo,
		journal:       journal,
		cacheTTL:      time.Minute,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

func (s *reportingService) DailySummary(ctx context.Context, date time.Time, registerID string) (*domain.DailySummary, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	cacheKey := "report:daily_summary:" + dayStart.Format("2006-01-02") + ":" + registerID
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			var summary domain.DailySummary
			if err := json.Unmarshal([]byte(cached), &summary); err == nil {
				s.LogDebug(ctx, "Daily summary served from cache", slog.String("cache_key", cacheKey))
				return &summary, nil
			}
		} else if err != redis.Nil {
			s.LogWarn(ctx, "Daily summary cache read failed", slog.String("error", err.Error()))
		}
	}

	totals, err := s.reportingRepo.GetDailyMovementTotals(ctx, registerID, dayStart, dayEnd)
	if err != nil {
		s.LogError(ctx, err, "Failed to get daily movement totals",
			slog.String("date", dayStart.Format("2006-01-02")),
			slog.String("register_id", registerID))
		return nil, fmt.Errorf("failed to build daily summary: %w", err)
	}

	summary := &domain.DailySummary{
		Date:        dayStart,
		RegisterID:  registerID,
		Opening:     totals[domain.MovementOpening],
		Sales:       totals[domain.MovementSale],
		Returns:     totals[domain.MovementReturn],
		Deposits:    totals[domain.MovementDeposit],
		Withdrawals: totals[domain.MovementWithdrawal],
	}
	summary.NetCashFlow = summary.Sales.
		Add(summary.Deposits).
		Sub(summary.Returns).
		Sub(summary.Withdrawals)

	if s.cache != nil {
		if encoded, err := json.Marshal(summary); err == nil {
			if err := s.cache.Set(ctx, cacheKey, encoded, s.cacheTTL).Err(); err != nil {
				s.LogWarn(ctx, "Daily summary cache write failed", slog.String("error", err.Error()))
			}
		}
	}

	return summary, nil
}

// UserRegisterStatus resolves the user's open register and compares the
// incrementally maintained balance against a fresh replay of the movement log.
// A non-zero drift means the two bookkeeping paths disagree and the register
// needs a manual count.
func (s *reportingService) UserRegisterStatus(ctx context.Context, userID string) (*domain.RegisterStatus, error) {
	register, err := s.registerRepo.FindOpenRegisterByUser(ctx, userID)
	if err != nil {
		s.LogDebug(ctx, "No open register for user", slog.String("target_user_id", userID))
		return nil, err
	}

	expected := decimal.Zero
	if register.OpenedAt != nil {
		movements, err := s.registerRepo.ListMovementsSince(ctx, register.RegisterID, *register.OpenedAt)
		if err != nil {
			s.LogError(ctx, err, "Failed to replay register balance", slog.String("register_id", register.RegisterID))
			return nil, fmt.Errorf("failed to compute register status: %w", err)
		}
		for _, m := range movements {
			expected = expected.Add(movementDelta(m))
		}
	}

	status := &domain.RegisterStatus{
		Register:        *register,
		ExpectedBalance: expected,
		Drift:           register.CurrentBalance.Sub(expected),
	}

	if !status.Drift.IsZero() {
		s.LogWarn(ctx, "Register balance drift detected",
			slog.String("register_id", register.RegisterID),
			slog.String("current_balance", register.CurrentBalance.String()),
			slog.String("expected_balance", expected.String()),
			slog.String("drift", status.Drift.String()),
		)
	}

	return status, nil
}

func (s *reportingService) TrialBalanceReport(ctx context.Context, asOf time.Time) (*domain.TrialBalance, error) {
	cacheKey := "report:trial_balance:" + asOf.Format("2006-01-02")

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, cacheKey).Result()
		if err == nil {
			var tb domain.TrialBalance
			if err := json.Unmarshal([]byte(cached), &tb); err == nil {
				s.LogDebug(ctx, "Trial balance served from cache", slog.String("cache_key", cacheKey))
				return &tb, nil
			}
			s.LogWarn(ctx, "Failed to decode cached trial balance", slog.String("cache_key", cacheKey))
		} else if err != redis.Nil {
			// Cache trouble must not break the report.
			s.LogWarn(ctx, "Trial balance cache read failed", slog.String("error", err.Error()))
		}
	}

	tb, err := s.journal.TrialBalance(ctx, asOf)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if encoded, err := json.Marshal(tb); err == nil {
			if err := s.cache.Set(ctx, cacheKey, encoded, s.cacheTTL).Err(); err != nil {
				s.LogWarn(ctx, "Trial balance cache write failed", slog.String("error", err.Error()))
			}
		}
	}

	return tb, nil
}

func (s *reportingService) AccountBalanceReport(ctx context.Context, accountID string, from, to *time.Time) (*domain.AccountBalance, error) {
	return s.journal.AccountBalance(ctx, accountID, from, to)
}
