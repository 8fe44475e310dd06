package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/maslamhussaini/posaccoutingapp/internal/apperrors"
	"github.com/maslamhussaini/posaccoutingapp/internal/core/domain"
	portssvc "github.com/maslamhussaini/posaccoutingapp/internal/core/ports/services"
	"github.com/maslamhussaini/posaccoutingapp/internal/core/services"
	"github.com/maslamhussaini/posaccoutingapp/internal/dto"
)

// --- Test Suite Setup ---

type PostingServiceTestSuite struct {
	suite.Suite
	mockJournal     *MockJournalWriterSvc
	mockAccountRepo *MockAccountRepository
	service         portssvc.PostingSvc

	cashAccount      *domain.Account
	bankAccount      *domain.Account
	inventoryAccount *domain.Account
	payableAccount   *domain.Account
	revenueAccount   *domain.Account
}

func (suite *PostingServiceTestSuite) SetupTest() {
	suite.mockJournal = new(MockJournalWriterSvc)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewPostingService(suite.mockJournal, suite.mockAccountRepo)

	suite.cashAccount = &domain.Account{AccountID: uuid.NewString(), Code: domain.CodeCash, AccountType: domain.Asset, IsActive: true}
	suite.bankAccount = &domain.Account{AccountID: uuid.NewString(), Code: domain.CodeBank, AccountType: domain.Asset, IsActive: true}
	suite.inventoryAccount = &domain.Account{AccountID: uuid.NewString(), Code: domain.CodeInventory, AccountType: domain.Asset, IsActive: true}
	suite.payableAccount = &domain.Account{AccountID: uuid.NewString(), Code: domain.CodeAccountsPayable, AccountType: domain.Liability, IsActive: true}
	suite.revenueAccount = &domain.Account{AccountID: uuid.NewString(), Code: domain.CodeSalesRevenue, AccountType: domain.Revenue, IsActive: true}
}

func (suite *PostingServiceTestSuite) expectEntry(matcher func(req dto.PostEntryRequest) bool) {
	suite.mockJournal.On("PostEntry", mock.Anything, mock.MatchedBy(matcher), mock.AnythingOfType("string")).
		Return(&domain.JournalEntry{EntryID: uuid.NewString()}, nil).Once()
}

// --- Test Cases ---

func (suite *PostingServiceTestSuite) TestPostSaleEntry_Cash() {
	ctx := context.Background()
	saleID := "sale-" + uuid.NewString()
	total := decimal.NewFromFloat(49.99)

	suite.mockAccountRepo.On("FindAccountByCode", ctx, domain.CodeCash).Return(suite.cashAccount, nil).Once()
	suite.mockAccountRepo.On("FindAccountByCode", ctx, domain.CodeSalesRevenue).Return(suite.revenueAccount, nil).Once()
	suite.expectEntry(func(req dto.PostEntryRequest) bool {
		return req.DebitAccountID == suite.cashAccount.AccountID &&
			req.CreditAccountID == suite.revenueAccount.AccountID &&
			req.Amount.Equal(total) &&
			req.Reference == saleID
	})

	entry, err := suite.service.PostSaleEntry(ctx, saleID, total, "cash", uuid.NewString())

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.mockJournal.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestPostSaleEntry_CardSettlesToBank() {
	ctx := context.Background()
	saleID := "sale-" + uuid.NewString()
	total := decimal.NewFromInt(200)

	suite.mockAccountRepo.On("FindAccountByCode", ctx, domain.CodeBank).Return(suite.bankAccount, nil).Once()
	suite.mockAccountRepo.On("FindAccountByCode", ctx, domain.CodeSalesRevenue).Return(suite.revenueAccount, nil).Once()
	suite.expectEntry(func(req dto.PostEntryRequest) bool {
		return req.DebitAccountID == suite.bankAccount.AccountID &&
			req.CreditAccountID == suite.revenueAccount.AccountID
	})

	_, err := suite.service.PostSaleEntry(ctx, saleID, total, "card", uuid.NewString())

	suite.Require().NoError(err)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestPostSaleEntry_UnknownMethodFallsBackToCash() {
	ctx := context.Background()
	saleID := "sale-" + uuid.NewString()

	suite.mockAccountRepo.On("FindAccountByCode", ctx, domain.CodeCash).Return(suite.cashAccount, nil).Once()
	suite.mockAccountRepo.On("FindAccountByCode", ctx, domain.CodeSalesRevenue).Return(suite.revenueAccount, nil).Once()
	suite.expectEntry(func(req dto.PostEntryRequest) bool {
		return req.DebitAccountID == suite.cashAccount.AccountID
	})

	_, err := suite.service.PostSaleEntry(ctx, saleID, decimal.NewFromInt(10), "barter", uuid.NewString())

	suite.Require().NoError(err)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestPostSaleEntry_MissingRevenueAccount() {
	ctx := context.Background()

	suite.mockAccountRepo.On("FindAccountByCode", ctx, domain.CodeCash).Return(suite.cashAccount, nil).Once()
	suite.mockAccountRepo.On("FindAccountByCode", ctx, domain.CodeSalesRevenue).Return(nil, apperrors.ErrNotFound).Once()

	entry, err := suite.service.PostSaleEntry(ctx, "sale-1", decimal.NewFromInt(10), "cash", uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(entry)
	// A missing seeded account is a deployment problem, not a caller mistake.
	suite.ErrorIs(err, apperrors.ErrConfiguration)
	suite.mockJournal.AssertNotCalled(suite.T(), "PostEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestPostPurchaseEntry() {
	ctx := context.Background()
	purchaseID := "purchase-" + uuid.NewString()
	total := decimal.NewFromInt(1200)

	suite.mockAccountRepo.On("FindAccountByCode", ctx, domain.CodeInventory).Return(suite.inventoryAccount, nil).Once()
	suite.mockAccountRepo.On("FindAccountByCode", ctx, domain.CodeAccountsPayable).Return(suite.payableAccount, nil).Once()
	suite.expectEntry(func(req dto.PostEntryRequest) bool {
		return req.DebitAccountID == suite.inventoryAccount.AccountID &&
			req.CreditAccountID == suite.payableAccount.AccountID &&
			req.Amount.Equal(total) &&
			req.Reference == purchaseID
	})

	entry, err := suite.service.PostPurchaseEntry(ctx, purchaseID, total, uuid.NewString())

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.mockJournal.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestPostReturnEntry_ReversesSaleDirection() {
	ctx := context.Background()
	returnID := "return-" + uuid.NewString()
	total := decimal.NewFromInt(60)

	suite.mockAccountRepo.On("FindAccountByCode", ctx, domain.CodeCash).Return(suite.cashAccount, nil).Once()
	suite.mockAccountRepo.On("FindAccountByCode", ctx, domain.CodeSalesRevenue).Return(suite.revenueAccount, nil).Once()
	suite.expectEntry(func(req dto.PostEntryRequest) bool {
		return req.DebitAccountID == suite.revenueAccount.AccountID &&
			req.CreditAccountID == suite.cashAccount.AccountID &&
			req.Amount.Equal(total) &&
			req.Reference == returnID
	})

	entry, err := suite.service.PostReturnEntry(ctx, returnID, total, "cash", uuid.NewString())

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.mockJournal.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

// --- Run Test Suite ---

func TestPostingService(t *testing.T) {
	suite.Run(t, new(PostingServiceTestSuite))
}
