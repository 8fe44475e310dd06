package services_test

import (
	"context"
	"testing"
	"time"

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

type CashRegisterServiceTestSuite struct {
	suite.Suite
	mockRepo *MockCashRegisterRepository
	service  portssvc.CashRegisterSvcFacade
}

func (suite *CashRegisterServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockCashRegisterRepository)
	suite.service = services.NewCashRegisterService(suite.mockRepo)
}

func (suite *CashRegisterServiceTestSuite) openRegister(registerID, userID string, openedAt time.Time) *domain.CashRegister {
	return &domain.CashRegister{
		RegisterID:     registerID,
		Name:           "Front Desk",
		IsOpen:         true,
		OpeningBalance: decimal.NewFromInt(100),
		CurrentBalance: decimal.NewFromInt(100),
		OpenedAt:       &openedAt,
		OpenedBy:       userID,
	}
}

func movement(registerID string, movementType domain.MovementType, amount int64, createdAt time.Time) domain.CashMovement {
	return domain.CashMovement{
		MovementID:   uuid.NewString(),
		RegisterID:   registerID,
		MovementType: movementType,
		Amount:       decimal.NewFromInt(amount),
		CreatedAt:    createdAt,
	}
}

// --- Test Cases ---

func (suite *CashRegisterServiceTestSuite) TestCreateRegister_Success() {
	ctx := context.Background()
	userID := uuid.NewString()

	suite.mockRepo.On("SaveRegister", ctx, mock.MatchedBy(func(r domain.CashRegister) bool {
		return r.Name == "Front Desk" && !r.IsOpen && r.CurrentBalance.IsZero()
	})).Return(nil).Once()

	register, err := suite.service.CreateRegister(ctx, dto.CreateRegisterRequest{Name: "Front Desk"}, userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(register)
	suite.NotEmpty(register.RegisterID)
	suite.False(register.IsOpen)
	suite.Equal(userID, register.CreatedBy)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CashRegisterServiceTestSuite) TestOpenRegister_Success() {
	ctx := context.Background()
	registerID := uuid.NewString()
	userID := uuid.NewString()
	openingBalance := decimal.NewFromInt(100)

	closed := &domain.CashRegister{RegisterID: registerID, Name: "Front Desk", IsOpen: false}

	suite.mockRepo.On("FindRegisterByID", ctx, registerID).Return(closed, nil).Once()
	suite.mockRepo.On("OpenRegister", ctx,
		mock.MatchedBy(func(r domain.CashRegister) bool {
			return r.IsOpen &&
				r.OpeningBalance.Equal(openingBalance) &&
				r.CurrentBalance.Equal(openingBalance) &&
				r.OpenedBy == userID &&
				r.OpenedAt != nil
		}),
		mock.MatchedBy(func(m domain.CashMovement) bool {
			return m.MovementType == domain.MovementOpening && m.Amount.Equal(openingBalance)
		}),
	).Return(nil).Once()

	register, err := suite.service.OpenRegister(ctx, registerID, openingBalance, userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(register)
	suite.True(register.IsOpen)
	suite.True(register.CurrentBalance.Equal(openingBalance))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CashRegisterServiceTestSuite) TestOpenRegister_NegativeOpeningBalance() {
	ctx := context.Background()

	register, err := suite.service.OpenRegister(ctx, uuid.NewString(), decimal.NewFromInt(-1), uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(register)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "OpenRegister", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CashRegisterServiceTestSuite) TestOpenRegister_AlreadyOpen() {
	ctx := context.Background()
	registerID := uuid.NewString()
	openedAt := time.Now()

	suite.mockRepo.On("FindRegisterByID", ctx, registerID).
		Return(suite.openRegister(registerID, uuid.NewString(), openedAt), nil).Once()

	register, err := suite.service.OpenRegister(ctx, registerID, decimal.NewFromInt(50), uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(register)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
	suite.mockRepo.AssertNotCalled(suite.T(), "OpenRegister", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CashRegisterServiceTestSuite) TestCloseRegister_NoDiscrepancy() {
	ctx := context.Background()
	registerID := uuid.NewString()
	userID := uuid.NewString()
	openedAt := time.Now().Add(-8 * time.Hour)
	actualBalance := decimal.NewFromInt(150)

	register := suite.openRegister(registerID, userID, openedAt)
	movements := []domain.CashMovement{
		movement(registerID, domain.MovementOpening, 100, openedAt),
		movement(registerID, domain.MovementSale, 50, openedAt.Add(time.Hour)),
	}

	suite.mockRepo.On("FindRegisterByID", ctx, registerID).Return(register, nil).Once()
	suite.mockRepo.On("ListMovementsSince", ctx, registerID, openedAt).Return(movements, nil).Once()
	suite.mockRepo.On("CloseRegister", ctx, registerID, actualBalance,
		mock.MatchedBy(func(m domain.CashMovement) bool {
			return m.MovementType == domain.MovementClosing &&
				m.Amount.Equal(actualBalance) &&
				m.Description == "Register closed: expected 150, counted 150"
		}),
		userID, mock.AnythingOfType("time.Time"),
	).Return(nil).Once()

	reconciliation, err := suite.service.CloseRegister(ctx, registerID, actualBalance, userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(reconciliation)
	suite.True(reconciliation.ExpectedBalance.Equal(decimal.NewFromInt(150)))
	suite.True(reconciliation.ActualBalance.Equal(actualBalance))
	suite.True(reconciliation.Difference.IsZero())
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CashRegisterServiceTestSuite) TestCloseRegister_Shortage() {
	ctx := context.Background()
	registerID := uuid.NewString()
	userID := uuid.NewString()
	openedAt := time.Now().Add(-8 * time.Hour)
	actualBalance := decimal.NewFromInt(140)

	register := suite.openRegister(registerID, userID, openedAt)
	movements := []domain.CashMovement{
		movement(registerID, domain.MovementOpening, 100, openedAt),
		movement(registerID, domain.MovementSale, 80, openedAt.Add(time.Hour)),
		movement(registerID, domain.MovementReturn, 30, openedAt.Add(2*time.Hour)),
	}

	suite.mockRepo.On("FindRegisterByID", ctx, registerID).Return(register, nil).Once()
	suite.mockRepo.On("ListMovementsSince", ctx, registerID, openedAt).Return(movements, nil).Once()
	suite.mockRepo.On("CloseRegister", ctx, registerID, actualBalance,
		mock.MatchedBy(func(m domain.CashMovement) bool {
			// The closing movement must carry both reconciliation figures.
			return m.Description == "Register closed: expected 150, counted 140"
		}),
		userID, mock.AnythingOfType("time.Time"),
	).Return(nil).Once()

	reconciliation, err := suite.service.CloseRegister(ctx, registerID, actualBalance, userID)

	suite.Require().NoError(err)
	// Expected 100 + 80 - 30 = 150; counted 140; shortage of 10.
	suite.True(reconciliation.ExpectedBalance.Equal(decimal.NewFromInt(150)))
	suite.True(reconciliation.Difference.Equal(decimal.NewFromInt(-10)))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CashRegisterServiceTestSuite) TestCloseRegister_NegativeActualBalance() {
	ctx := context.Background()

	reconciliation, err := suite.service.CloseRegister(ctx, uuid.NewString(), decimal.NewFromInt(-5), uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(reconciliation)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "FindRegisterByID", mock.Anything, mock.Anything)
}

func (suite *CashRegisterServiceTestSuite) TestCloseRegister_NotOpen() {
	ctx := context.Background()
	registerID := uuid.NewString()

	suite.mockRepo.On("FindRegisterByID", ctx, registerID).
		Return(&domain.CashRegister{RegisterID: registerID, IsOpen: false}, nil).Once()

	reconciliation, err := suite.service.CloseRegister(ctx, registerID, decimal.Zero, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(reconciliation)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
	suite.mockRepo.AssertNotCalled(suite.T(), "CloseRegister", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CashRegisterServiceTestSuite) TestCloseRegister_OnlyOpenerMayClose() {
	ctx := context.Background()
	registerID := uuid.NewString()
	openerID := uuid.NewString()
	otherUserID := uuid.NewString()
	openedAt := time.Now()

	suite.mockRepo.On("FindRegisterByID", ctx, registerID).
		Return(suite.openRegister(registerID, openerID, openedAt), nil).Once()

	reconciliation, err := suite.service.CloseRegister(ctx, registerID, decimal.Zero, otherUserID)

	suite.Require().Error(err)
	suite.Nil(reconciliation)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
	suite.mockRepo.AssertNotCalled(suite.T(), "CloseRegister", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CashRegisterServiceTestSuite) TestRecordSale_Success() {
	ctx := context.Background()
	registerID := uuid.NewString()
	userID := uuid.NewString()
	amount := decimal.NewFromInt(75)
	openedAt := time.Now()

	suite.mockRepo.On("FindRegisterByID", ctx, registerID).
		Return(suite.openRegister(registerID, userID, openedAt), nil).Once()
	suite.mockRepo.On("AppendMovement", ctx,
		mock.MatchedBy(func(m domain.CashMovement) bool {
			return m.MovementType == domain.MovementSale && m.Amount.Equal(amount) && m.Reference == "sale-7"
		}),
		mock.MatchedBy(func(delta decimal.Decimal) bool { return delta.Equal(amount) }),
		false,
	).Return(nil).Once()

	recorded, err := suite.service.RecordSale(ctx, registerID, amount, "sale-7", userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(recorded)
	suite.Equal(domain.MovementSale, recorded.MovementType)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CashRegisterServiceTestSuite) TestRecordWithdrawal_EnforcesFloor() {
	ctx := context.Background()
	registerID := uuid.NewString()
	userID := uuid.NewString()
	amount := decimal.NewFromInt(30)
	openedAt := time.Now()

	suite.mockRepo.On("FindRegisterByID", ctx, registerID).
		Return(suite.openRegister(registerID, userID, openedAt), nil).Once()
	// Outgoing movements apply a negative delta with the floor check enabled.
	suite.mockRepo.On("AppendMovement", ctx,
		mock.MatchedBy(func(m domain.CashMovement) bool {
			return m.MovementType == domain.MovementWithdrawal && m.Amount.Equal(amount)
		}),
		mock.MatchedBy(func(delta decimal.Decimal) bool { return delta.Equal(amount.Neg()) }),
		true,
	).Return(nil).Once()

	recorded, err := suite.service.RecordWithdrawal(ctx, registerID, amount, "", userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(recorded)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CashRegisterServiceTestSuite) TestRecordReturn_InsufficientBalance() {
	ctx := context.Background()
	registerID := uuid.NewString()
	userID := uuid.NewString()
	openedAt := time.Now()

	suite.mockRepo.On("FindRegisterByID", ctx, registerID).
		Return(suite.openRegister(registerID, userID, openedAt), nil).Once()
	suite.mockRepo.On("AppendMovement", ctx, mock.AnythingOfType("domain.CashMovement"), mock.AnythingOfType("decimal.Decimal"), true).
		Return(apperrors.ErrInvalidState).Once()

	recorded, err := suite.service.RecordReturn(ctx, registerID, decimal.NewFromInt(500), "return-1", userID)

	suite.Require().Error(err)
	suite.Nil(recorded)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CashRegisterServiceTestSuite) TestRecordMovement_NonPositiveAmount() {
	ctx := context.Background()

	recorded, err := suite.service.RecordDeposit(ctx, uuid.NewString(), decimal.Zero, "", uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(recorded)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "AppendMovement", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CashRegisterServiceTestSuite) TestRecordMovement_RegisterClosed() {
	ctx := context.Background()
	registerID := uuid.NewString()

	suite.mockRepo.On("FindRegisterByID", ctx, registerID).
		Return(&domain.CashRegister{RegisterID: registerID, IsOpen: false}, nil).Once()

	recorded, err := suite.service.RecordDeposit(ctx, registerID, decimal.NewFromInt(10), "", uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(recorded)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
	suite.mockRepo.AssertNotCalled(suite.T(), "AppendMovement", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CashRegisterServiceTestSuite) TestExpectedBalance_ReplaysMovementLog() {
	ctx := context.Background()
	registerID := uuid.NewString()
	openedAt := time.Now().Add(-4 * time.Hour)

	register := suite.openRegister(registerID, uuid.NewString(), openedAt)
	movements := []domain.CashMovement{
		movement(registerID, domain.MovementOpening, 100, openedAt),
		movement(registerID, domain.MovementSale, 40, openedAt.Add(time.Hour)),
		movement(registerID, domain.MovementDeposit, 20, openedAt.Add(2*time.Hour)),
		movement(registerID, domain.MovementWithdrawal, 25, openedAt.Add(3*time.Hour)),
	}

	suite.mockRepo.On("FindRegisterByID", ctx, registerID).Return(register, nil).Once()
	suite.mockRepo.On("ListMovementsSince", ctx, registerID, openedAt).Return(movements, nil).Once()

	expected, err := suite.service.ExpectedBalance(ctx, registerID)

	suite.Require().NoError(err)
	// 100 + 40 + 20 - 25 = 135
	suite.True(expected.Equal(decimal.NewFromInt(135)))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CashRegisterServiceTestSuite) TestExpectedBalance_RegisterClosed() {
	ctx := context.Background()
	registerID := uuid.NewString()

	suite.mockRepo.On("FindRegisterByID", ctx, registerID).
		Return(&domain.CashRegister{RegisterID: registerID, IsOpen: false}, nil).Once()

	_, err := suite.service.ExpectedBalance(ctx, registerID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
}

func (suite *CashRegisterServiceTestSuite) TestListMovements_RegisterNotFound() {
	ctx := context.Background()
	registerID := uuid.NewString()

	suite.mockRepo.On("FindRegisterByID", ctx, registerID).Return(nil, apperrors.ErrNotFound).Once()

	resp, err := suite.service.ListMovements(ctx, registerID, dto.ListMovementsParams{})

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertNotCalled(suite.T(), "ListMovements", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- Run Test Suite ---

func TestCashRegisterService(t *testing.T) {
	suite.Run(t, new(CashRegisterServiceTestSuite))
}
