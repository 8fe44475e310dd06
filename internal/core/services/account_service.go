package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/maslamhussaini/posaccoutingapp/internal/apperrors"
	"github.com/maslamhussaini/posaccoutingapp/internal/core/domain"
	portsrepo "github.com/maslamhussaini/posaccoutingapp/internal/core/ports/repositories"
	portssvc "github.com/maslamhussaini/posaccoutingapp/internal/core/ports/services"
	"github.com/maslamhussaini/posaccoutingapp/internal/dto"
)

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
	journalRepo portsrepo.JournalReader
}

// AccountServiceOption is a functional option for configuring the account service
type AccountServiceOption func(*accountService)

// WithJournalReader adds the journal reader dependency, used to block
// deactivation of accounts that appear in journal entries.
func WithJournalReader(repo portsrepo.JournalReader) AccountServiceOption {
	return func(s *accountService) {
		s.journalRepo = repo
	}
}

// NewAccountService creates a new account service with the provided options
func NewAccountService(repo portsrepo.AccountRepositoryFacade, options ...AccountServiceOption) portssvc.AccountSvcFacade {
	svc := &accountService{
		accountRepo: repo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure accountService implements the AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	if !req.AccountType.IsValid() {
		err := apperrors.ErrValidation
		s.LogError(ctx, err, "Invalid account type", slog.String("account_type", string(req.AccountType)))
		return nil, fmt.Errorf("invalid account type '%s': %w", req.AccountType, err)
	}

	parentID := ""
	if req.ParentAccountID != nil && *req.ParentAccountID != "" {
		parentID = *req.ParentAccountID
		if _, err := s.accountRepo.FindAccountByID(ctx, parentID); err != nil {
			s.LogError(ctx, err, "Failed to find parent account", slog.String("parent_id", parentID))
			return nil, fmt.Errorf("parent account %s does not exist: %w", parentID, apperrors.ErrValidation)
		}
	}

	now := time.Now()
	account := domain.Account{
		AccountID:       uuid.NewString(),
		Code:            req.Code,
		Name:            req.Name,
		AccountType:     req.AccountType,
		ParentAccountID: parentID,
		Description:     req.Description,
		IsActive:        true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account", slog.String("code", req.Code))
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	s.LogInfo(ctx, "Account created", slog.String("account_id", account.AccountID), slog.String("code", account.Code))
	return &account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		s.LogDebug(ctx, "Failed to find account", slog.String("account_id", accountID))
		return nil, err
	}
	return account, nil
}

func (s *accountService) GetAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByCode(ctx, code)
	if err != nil {
		s.LogDebug(ctx, "Failed to find account by code", slog.String("code", code))
		return nil, err
	}
	return account, nil
}

func (s *accountService) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return s.accountRepo.ListAccounts(ctx, limit, offset)
}

// Hierarchy builds the active-account forest in memory from a single list
// query. Accounts whose parent is missing or inactive surface as roots rather
// than disappearing from the report.
func (s *accountService) Hierarchy(ctx context.Context) ([]*domain.AccountNode, error) {
	accounts, err := s.accountRepo.ListAllActiveAccounts(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts for hierarchy")
		return nil, fmt.Errorf("failed to build account hierarchy: %w", err)
	}

	nodes := make(map[string]*domain.AccountNode, len(accounts))
	for i := range accounts {
		nodes[accounts[i].AccountID] = &domain.AccountNode{Account: accounts[i]}
	}

	roots := make([]*domain.AccountNode, 0)
	for i := range accounts {
		node := nodes[accounts[i].AccountID]
		parentID := accounts[i].ParentAccountID
		if parentID == "" {
			roots = append(roots, node)
			continue
		}
		parent, ok := nodes[parentID]
		if !ok {
			roots = append(roots, node)
			continue
		}
		parent.Children = append(parent.Children, node)
	}

	return roots, nil
}

func (s *accountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to find account for update", slog.String("account_id", accountID))
		return nil, err
	}

	if req.Code != nil {
		account.Code = *req.Code
	}
	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.Description != nil {
		account.Description = *req.Description
	}
	if req.ParentAccountID != nil {
		newParentID := *req.ParentAccountID
		if newParentID != "" {
			if newParentID == accountID {
				err := apperrors.ErrValidation
				s.LogError(ctx, err, "Account cannot be its own parent", slog.String("account_id", accountID))
				return nil, fmt.Errorf("account cannot be its own parent: %w", err)
			}
			if _, err := s.accountRepo.FindAccountByID(ctx, newParentID); err != nil {
				s.LogError(ctx, err, "Failed to find new parent account", slog.String("parent_id", newParentID))
				return nil, fmt.Errorf("parent account %s does not exist: %w", newParentID, apperrors.ErrValidation)
			}
		}
		account.ParentAccountID = newParentID
	}

	account.LastUpdatedAt = time.Now()
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update account", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to update account: %w", err)
	}

	s.LogInfo(ctx, "Account updated", slog.String("account_id", accountID))
	return account, nil
}

func (s *accountService) DeactivateAccount(ctx context.Context, accountID string, userID string) error {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to find account for deactivation", slog.String("account_id", accountID))
		return err
	}
	if !account.IsActive {
		err := apperrors.ErrInvalidState
		s.LogError(ctx, err, "Account already inactive", slog.String("account_id", accountID))
		return fmt.Errorf("account is already inactive: %w", err)
	}

	hasChildren, err := s.accountRepo.HasChildAccounts(ctx, accountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to check child accounts", slog.String("account_id", accountID))
		return fmt.Errorf("failed to deactivate account: %w", err)
	}
	if hasChildren {
		err := apperrors.ErrInvalidState
		s.LogError(ctx, err, "Account has child accounts", slog.String("account_id", accountID))
		return fmt.Errorf("account has child accounts: %w", err)
	}

	if s.journalRepo != nil {
		hasEntries, err := s.journalRepo.HasEntriesForAccount(ctx, accountID)
		if err != nil {
			s.LogError(ctx, err, "Failed to check journal entries", slog.String("account_id", accountID))
			return fmt.Errorf("failed to deactivate account: %w", err)
		}
		if hasEntries {
			err := apperrors.ErrInvalidState
			s.LogError(ctx, err, "Account has journal entries", slog.String("account_id", accountID))
			return fmt.Errorf("account has journal entries: %w", err)
		}
	}

	if err := s.accountRepo.DeactivateAccount(ctx, accountID, userID, time.Now()); err != nil {
		s.LogError(ctx, err, "Failed to deactivate account", slog.String("account_id", accountID))
		return fmt.Errorf("failed to deactivate account: %w", err)
	}

	s.LogInfo(ctx, "Account deactivated", slog.String("account_id", accountID))
	return nil
}
