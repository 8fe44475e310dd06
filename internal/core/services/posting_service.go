package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/maslamhussaini/posaccoutingapp/internal/apperrors"
	"github.com/maslamhussaini/posaccoutingapp/internal/core/domain"
	portsrepo "github.com/maslamhussaini/posaccoutingapp/internal/core/ports/repositories"
	portssvc "github.com/maslamhussaini/posaccoutingapp/internal/core/ports/services"
	"github.com/maslamhussaini/posaccoutingapp/internal/dto"
)

// settlementAccountCodes maps a payment method to the asset account code that
// settles it. Unknown methods fall back to the cash account so a new payment
// method never blocks a sale from being recorded.
var settlementAccountCodes = map[string]string{
	"cash":           domain.CodeCash,
	"card":           domain.CodeBank,
	"bank_transfer":  domain.CodeBank,
	"check":          domain.CodeCheck,
	"digital_wallet": domain.CodeDigitalWallet,
}

// postingService implements PostingSvc: fixed mappings from completed business
// events to single journal entries. The originating event ID travels in the
// entry reference so a posting can be traced back or replayed.
type postingService struct {
	BaseService
	journal     portssvc.JournalWriterSvc
	accountRepo portsrepo.AccountReader
}

// NewPostingService creates a new posting service.
func NewPostingService(journal portssvc.JournalWriterSvc, accountRepo portsrepo.AccountReader) portssvc.PostingSvc {
	return &postingService{
		journal:     journal,
		accountRepo: accountRepo,
	}
}

// Ensure postingService implements the PostingSvc interface
var _ portssvc.PostingSvc = (*postingService)(nil)

// settlementAccount resolves the payment method to its settlement account.
func (s *postingService) settlementAccount(ctx context.Context, paymentMethod string) (*domain.Account, error) {
	code, ok := settlementAccountCodes[paymentMethod]
	if !ok {
		s.LogWarn(ctx, "Unknown payment method, falling back to cash account", slog.String("payment_method", paymentMethod))
		code = domain.CodeCash
	}
	return s.wellKnownAccount(ctx, code)
}

// wellKnownAccount looks up a seeded account by code. A missing code is a
// deployment problem, not a caller mistake, so it surfaces as ErrConfiguration.
func (s *postingService) wellKnownAccount(ctx context.Context, code string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByCode(ctx, code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Well-known account missing", slog.String("code", code))
			return nil, fmt.Errorf("account with code %s is not configured: %w", code, apperrors.ErrConfiguration)
		}
		return nil, fmt.Errorf("failed to resolve account with code %s: %w", code, err)
	}
	return account, nil
}

func (s *postingService) PostSaleEntry(ctx context.Context, saleID string, total decimal.Decimal, paymentMethod string, userID string) (*domain.JournalEntry, error) {
	settlement, err := s.settlementAccount(ctx, paymentMethod)
	if err != nil {
		return nil, err
	}
	revenue, err := s.wellKnownAccount(ctx, domain.CodeSalesRevenue)
	if err != nil {
		return nil, err
	}

	return s.journal.PostEntry(ctx, dto.PostEntryRequest{
		Date:            time.Now(),
		Description:     fmt.Sprintf("Sale %s (%s)", saleID, paymentMethod),
		DebitAccountID:  settlement.AccountID,
		CreditAccountID: revenue.AccountID,
		Amount:          total,
		Reference:       saleID,
	}, userID)
}

func (s *postingService) PostPurchaseEntry(ctx context.Context, purchaseID string, total decimal.Decimal, userID string) (*domain.JournalEntry, error) {
	inventory, err := s.wellKnownAccount(ctx, domain.CodeInventory)
	if err != nil {
		return nil, err
	}
	payable, err := s.wellKnownAccount(ctx, domain.CodeAccountsPayable)
	if err != nil {
		return nil, err
	}

	return s.journal.PostEntry(ctx, dto.PostEntryRequest{
		Date:            time.Now(),
		Description:     fmt.Sprintf("Purchase %s", purchaseID),
		DebitAccountID:  inventory.AccountID,
		CreditAccountID: payable.AccountID,
		Amount:          total,
		Reference:       purchaseID,
	}, userID)
}

func (s *postingService) PostReturnEntry(ctx context.Context, returnID string, total decimal.Decimal, paymentMethod string, userID string) (*domain.JournalEntry, error) {
	settlement, err := s.settlementAccount(ctx, paymentMethod)
	if err != nil {
		return nil, err
	}
	revenue, err := s.wellKnownAccount(ctx, domain.CodeSalesRevenue)
	if err != nil {
		return nil, err
	}

	return s.journal.PostEntry(ctx, dto.PostEntryRequest{
		Date:            time.Now(),
		Description:     fmt.Sprintf("Return %s (%s)", returnID, paymentMethod),
		DebitAccountID:  revenue.AccountID,
		CreditAccountID: settlement.AccountID,
		Amount:          total,
		Reference:       returnID,
	}, userID)
}
