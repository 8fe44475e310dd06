package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/maslamhussaini/posaccoutingapp/internal/apperrors"
	"github.com/maslamhussaini/posaccoutingapp/internal/core/domain"
	portssvc "github.com/maslamhussaini/posaccoutingapp/internal/core/ports/services"
	"github.com/maslamhussaini/posaccoutingapp/internal/core/services"
	"github.com/maslamhussaini/posaccoutingapp/internal/dto"
	"github.com/maslamhussaini/posaccoutingapp/internal/models"
	"github.com/maslamhussaini/posaccoutingapp/internal/utils"
)

// --- Test Suite Setup ---

type UserServiceTestSuite struct {
	suite.Suite
	mockRepo *MockUserRepository
	service  portssvc.UserSvcFacade
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockUserRepository)
	suite.service = services.NewUserService(suite.mockRepo)
}

// --- Test Cases ---

func (suite *UserServiceTestSuite) TestCreateUser_Success() {
	ctx := context.Background()
	req := dto.CreateUserRequest{
		Username: "cashier1",
		Name:     "First Cashier",
		Password: "correct horse battery",
	}

	suite.mockRepo.On("SaveUser", ctx, mock.MatchedBy(func(u models.User) bool {
		return u.Username == req.Username &&
			u.Name == req.Name &&
			u.IsActive &&
			u.PasswordHash != "" &&
			u.PasswordHash != req.Password &&
			u.CreatedBy == u.UserID
	})).Return(nil).Once()

	user, err := suite.service.CreateUser(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(user)
	suite.NotEmpty(user.UserID)
	suite.Equal(req.Username, user.Username)
	suite.True(user.IsActive)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestCreateUser_DuplicateUsername() {
	ctx := context.Background()
	req := dto.CreateUserRequest{
		Username: "cashier1",
		Name:     "Duplicate",
		Password: "password123",
	}

	suite.mockRepo.On("SaveUser", ctx, mock.AnythingOfType("models.User")).Return(apperrors.ErrConflict).Once()

	user, err := suite.service.CreateUser(ctx, req)

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestGetUserByID_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	expected := &domain.User{UserID: userID, Username: "cashier1", IsActive: true}

	suite.mockRepo.On("FindUserByID", ctx, userID).Return(expected, nil).Once()

	user, err := suite.service.GetUserByID(ctx, userID)

	suite.Require().NoError(err)
	suite.Equal(expected, user)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestAuthenticate_Success() {
	ctx := context.Background()
	password := "open sesame 42"
	hash, err := utils.HashPassword(password)
	suite.Require().NoError(err)

	stored := &models.User{
		UserID:       uuid.NewString(),
		Username:     "cashier1",
		Name:         "First Cashier",
		PasswordHash: hash,
		IsActive:     true,
	}

	suite.mockRepo.On("FindUserByUsername", ctx, "cashier1").Return(stored, nil).Once()

	user, err := suite.service.Authenticate(ctx, "cashier1", password)

	suite.Require().NoError(err)
	suite.Require().NotNil(user)
	suite.Equal(stored.UserID, user.UserID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestAuthenticate_UnknownUsername() {
	ctx := context.Background()

	suite.mockRepo.On("FindUserByUsername", ctx, "ghost").Return(nil, apperrors.ErrNotFound).Once()

	user, err := suite.service.Authenticate(ctx, "ghost", "whatever")

	suite.Require().Error(err)
	suite.Nil(user)
	// Unknown usernames fail the same way as wrong passwords.
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestAuthenticate_InactiveUser() {
	ctx := context.Background()
	hash, err := utils.HashPassword("password123")
	suite.Require().NoError(err)

	stored := &models.User{
		UserID:       uuid.NewString(),
		Username:     "cashier1",
		PasswordHash: hash,
		IsActive:     false,
	}

	suite.mockRepo.On("FindUserByUsername", ctx, "cashier1").Return(stored, nil).Once()

	user, err := suite.service.Authenticate(ctx, "cashier1", "password123")

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestAuthenticate_WrongPassword() {
	ctx := context.Background()
	hash, err := utils.HashPassword("the real password")
	suite.Require().NoError(err)

	stored := &models.User{
		UserID:       uuid.NewString(),
		Username:     "cashier1",
		PasswordHash: hash,
		IsActive:     true,
	}

	suite.mockRepo.On("FindUserByUsername", ctx, "cashier1").Return(stored, nil).Once()

	user, err := suite.service.Authenticate(ctx, "cashier1", "a wrong guess")

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockRepo.AssertExpectations(suite.T())
}

// --- Run Test Suite ---

func TestUserService(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
