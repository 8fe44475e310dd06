package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/maslamhussaini/posaccoutingapp/internal/apperrors"
	"github.com/maslamhussaini/posaccoutingapp/internal/core/domain"
	portssvc "github.com/maslamhussaini/posaccoutingapp/internal/core/ports/services"
	"github.com/maslamhussaini/posaccoutingapp/internal/core/services"
	"github.com/maslamhussaini/posaccoutingapp/internal/dto"
)

// --- Test Suite Setup ---

type JournalServiceTestSuite struct {
	suite.Suite
	mockJournalRepo *MockJournalRepository
	mockAccountRepo *MockAccountRepository
	service         portssvc.JournalSvcFacade
}

func (suite *JournalServiceTestSuite) SetupTest() {
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewJournalService(suite.mockJournalRepo, suite.mockAccountRepo)
}

func (suite *JournalServiceTestSuite) activeAccounts(ids ...string) map[string]domain.Account {
	accounts := make(map[string]domain.Account, len(ids))
	for _, id := range ids {
		accounts[id] = domain.Account{AccountID: id, AccountType: domain.Asset, IsActive: true}
	}
	return accounts
}

// --- Test Cases ---

func (suite *JournalServiceTestSuite) TestPostEntry_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	debitID := uuid.NewString()
	creditID := uuid.NewString()
	req := dto.PostEntryRequest{
		Date:            time.Now(),
		Description:     "Cash sale",
		DebitAccountID:  debitID,
		CreditAccountID: creditID,
		Amount:          decimal.NewFromInt(150),
		Reference:       "sale-42",
	}

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, []string{debitID, creditID}).
		Return(suite.activeAccounts(debitID, creditID), nil).Once()
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.MatchedBy(func(e domain.JournalEntry) bool {
		return e.DebitAccountID == debitID &&
			e.CreditAccountID == creditID &&
			e.Amount.Equal(req.Amount) &&
			e.Reference == "sale-42" &&
			e.EntryID != ""
	})).Return(nil).Once()

	entry, err := suite.service.PostEntry(ctx, req, userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.NotEmpty(entry.EntryID)
	suite.Equal(userID, entry.CreatedBy)
	suite.True(entry.Amount.Equal(req.Amount))

	suite.mockJournalRepo.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestPostEntry_ZeroAmount() {
	ctx := context.Background()
	req := dto.PostEntryRequest{
		Date:            time.Now(),
		Description:     "Nothing",
		DebitAccountID:  uuid.NewString(),
		CreditAccountID: uuid.NewString(),
		Amount:          decimal.Zero,
	}

	entry, err := suite.service.PostEntry(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestPostEntry_NegativeAmount() {
	ctx := context.Background()
	req := dto.PostEntryRequest{
		Date:            time.Now(),
		Description:     "Backwards",
		DebitAccountID:  uuid.NewString(),
		CreditAccountID: uuid.NewString(),
		Amount:          decimal.NewFromInt(-10),
	}

	entry, err := suite.service.PostEntry(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *JournalServiceTestSuite) TestPostEntry_SameAccountBothSides() {
	ctx := context.Background()
	accountID := uuid.NewString()
	req := dto.PostEntryRequest{
		Date:            time.Now(),
		Description:     "Self transfer",
		DebitAccountID:  accountID,
		CreditAccountID: accountID,
		Amount:          decimal.NewFromInt(10),
	}

	entry, err := suite.service.PostEntry(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "FindAccountsByIDs", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestPostEntry_MissingAccount() {
	ctx := context.Background()
	debitID := uuid.NewString()
	creditID := uuid.NewString()
	req := dto.PostEntryRequest{
		Date:            time.Now(),
		Description:     "Ghost account",
		DebitAccountID:  debitID,
		CreditAccountID: creditID,
		Amount:          decimal.NewFromInt(10),
	}

	// Only the credit account exists.
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, []string{debitID, creditID}).
		Return(suite.activeAccounts(creditID), nil).Once()

	entry, err := suite.service.PostEntry(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestPostEntry_InactiveAccount() {
	ctx := context.Background()
	debitID := uuid.NewString()
	creditID := uuid.NewString()
	req := dto.PostEntryRequest{
		Date:            time.Now(),
		Description:     "Dead account",
		DebitAccountID:  debitID,
		CreditAccountID: creditID,
		Amount:          decimal.NewFromInt(10),
	}

	accounts := suite.activeAccounts(debitID)
	accounts[creditID] = domain.Account{AccountID: creditID, AccountType: domain.Revenue, IsActive: false}
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, []string{debitID, creditID}).
		Return(accounts, nil).Once()

	entry, err := suite.service.PostEntry(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestPostEntry_SaveError() {
	ctx := context.Background()
	debitID := uuid.NewString()
	creditID := uuid.NewString()
	req := dto.PostEntryRequest{
		Date:            time.Now(),
		Description:     "Storage down",
		DebitAccountID:  debitID,
		CreditAccountID: creditID,
		Amount:          decimal.NewFromInt(10),
	}
	expectedErr := assert.AnError

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, []string{debitID, creditID}).
		Return(suite.activeAccounts(debitID, creditID), nil).Once()
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.AnythingOfType("domain.JournalEntry")).Return(expectedErr).Once()

	entry, err := suite.service.PostEntry(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, expectedErr)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestGetEntryByID_NotFound() {
	ctx := context.Background()
	entryID := uuid.NewString()

	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(nil, apperrors.ErrNotFound).Once()

	entry, err := suite.service.GetEntryByID(ctx, entryID)

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestListEntries_PassesToken() {
	ctx := context.Background()
	inToken := "opaque-token"
	outToken := "next-token"
	entries := []domain.JournalEntry{
		{EntryID: uuid.NewString(), Amount: decimal.NewFromInt(5)},
	}

	suite.mockJournalRepo.On("ListEntries", ctx, 20, &inToken).Return(entries, &outToken, nil).Once()

	resp, err := suite.service.ListEntries(ctx, dto.ListEntriesParams{Limit: 20, NextToken: &inToken})

	suite.Require().NoError(err)
	suite.Require().NotNil(resp)
	suite.Len(resp.Entries, 1)
	suite.Require().NotNil(resp.NextToken)
	suite.Equal(outToken, *resp.NextToken)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestAccountBalance_Success() {
	ctx := context.Background()
	accountID := uuid.NewString()

	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).
		Return(&domain.Account{AccountID: accountID, AccountType: domain.Asset, IsActive: true}, nil).Once()
	suite.mockJournalRepo.On("SumAccountSides", ctx, accountID, (*time.Time)(nil), (*time.Time)(nil)).
		Return(domain.AccountBalance{
			Debit:  decimal.NewFromInt(300),
			Credit: decimal.NewFromInt(120),
		}, nil).Once()

	balance, err := suite.service.AccountBalance(ctx, accountID, nil, nil)

	suite.Require().NoError(err)
	suite.Require().NotNil(balance)
	suite.Equal(accountID, balance.AccountID)
	suite.True(balance.Balance.Equal(decimal.NewFromInt(180)))
	suite.mockJournalRepo.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestAccountBalance_AccountNotFound() {
	ctx := context.Background()
	accountID := uuid.NewString()

	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(nil, apperrors.ErrNotFound).Once()

	balance, err := suite.service.AccountBalance(ctx, accountID, nil, nil)

	suite.Require().Error(err)
	suite.Nil(balance)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SumAccountSides", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestTrialBalance_BalancedTotals() {
	ctx := context.Background()
	asOf := time.Now()
	cashID := uuid.NewString()
	revenueID := uuid.NewString()

	accounts := []domain.Account{
		{AccountID: cashID, Code: "1001", Name: "Cash on Hand", AccountType: domain.Asset, IsActive: true},
		{AccountID: revenueID, Code: "4000", Name: "Sales Revenue", AccountType: domain.Revenue, IsActive: true},
	}
	sums := map[string]domain.AccountBalance{
		cashID:    {Debit: decimal.NewFromInt(500), Credit: decimal.Zero},
		revenueID: {Debit: decimal.Zero, Credit: decimal.NewFromInt(500)},
	}

	suite.mockAccountRepo.On("ListAllActiveAccounts", ctx).Return(accounts, nil).Once()
	suite.mockJournalRepo.On("SumAllAccountSides", ctx, asOf).Return(sums, nil).Once()

	tb, err := suite.service.TrialBalance(ctx, asOf)

	suite.Require().NoError(err)
	suite.Require().NotNil(tb)
	suite.Require().Len(tb.Rows, 2)

	// Asset balance is debit - credit; revenue balance is credit - debit.
	suite.True(tb.Rows[0].Balance.Equal(decimal.NewFromInt(500)))
	suite.True(tb.Rows[1].Balance.Equal(decimal.NewFromInt(500)))
	suite.True(tb.Totals.Debit.Equal(tb.Totals.Credit))
	suite.True(tb.Totals.Debit.Equal(decimal.NewFromInt(500)))

	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestTrialBalance_AccountWithNoEntries() {
	ctx := context.Background()
	asOf := time.Now()
	idleID := uuid.NewString()

	accounts := []domain.Account{
		{AccountID: idleID, Code: "1200", Name: "Inventory", AccountType: domain.Asset, IsActive: true},
	}

	suite.mockAccountRepo.On("ListAllActiveAccounts", ctx).Return(accounts, nil).Once()
	suite.mockJournalRepo.On("SumAllAccountSides", ctx, asOf).Return(map[string]domain.AccountBalance{}, nil).Once()

	tb, err := suite.service.TrialBalance(ctx, asOf)

	suite.Require().NoError(err)
	suite.Require().Len(tb.Rows, 1)
	suite.True(tb.Rows[0].Debit.IsZero())
	suite.True(tb.Rows[0].Credit.IsZero())
	suite.True(tb.Rows[0].Balance.IsZero())
}

func (suite *JournalServiceTestSuite) TestEntriesSummary_Success() {
	ctx := context.Background()
	accountID := uuid.NewString()
	filters := domain.EntryFilters{AccountID: accountID}
	expected := domain.EntriesSummary{Count: 3, TotalAmount: decimal.NewFromInt(450)}

	suite.mockJournalRepo.On("SummarizeEntries", ctx, filters).Return(expected, nil).Once()

	summary, err := suite.service.EntriesSummary(ctx, filters)

	suite.Require().NoError(err)
	suite.Require().NotNil(summary)
	suite.Equal(int64(3), summary.Count)
	suite.True(summary.TotalAmount.Equal(decimal.NewFromInt(450)))
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

// --- Run Test Suite ---

func TestJournalService(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}
