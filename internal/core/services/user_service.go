package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/maslamhussaini/posaccoutingapp/internal/apperrors"
	"github.com/maslamhussaini/posaccoutingapp/internal/core/domain"
	portsrepo "github.com/maslamhussaini/posaccoutingapp/internal/core/ports/repositories"
	portssvc "github.com/maslamhussaini/posaccoutingapp/internal/core/ports/services"
	"github.com/maslamhussaini/posaccoutingapp/internal/dto"
	"github.com/maslamhussaini/posaccoutingapp/internal/models"
	"github.com/maslamhussaini/posaccoutingapp/internal/utils"
	"github.com/maslamhussaini/posaccoutingapp/internal/utils/mapping"
)

// userService implements the UserSvcFacade interface
type userService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
}

// NewUserService creates a new user service.
func NewUserService(userRepo portsrepo.UserRepositoryFacade) portssvc.UserSvcFacade {
	return &userService{
		userRepo: userRepo,
	}
}

// Ensure userService implements the UserSvcFacade interface
var _ portssvc.UserSvcFacade = (*userService)(nil)

func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password")
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	now := time.Now()
	newUserID := uuid.NewString()
	user := models.User{
		UserID:       newUserID,
		Username:     req.Username,
		Name:         req.Name,
		PasswordHash: hash,
		IsActive:     true,
		AuditFields: models.AuditFields{
			CreatedAt:     now,
			CreatedBy:     newUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: newUserID,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		s.LogError(ctx, err, "Failed to save user", slog.String("username", req.Username))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	domainUser := mapping.ToDomainUser(user)
	s.LogInfo(ctx, "User created", slog.String("new_user_id", user.UserID))
	return &domainUser, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		s.LogDebug(ctx, "Failed to find user", slog.String("target_user_id", userID))
		return nil, err
	}
	return user, nil
}

// Authenticate verifies credentials. Unknown usernames, inactive users and
// wrong passwords all fail identically so the response does not reveal which
// usernames exist.
func (s *userService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogWarn(ctx, "Login attempt for unknown username")
			return nil, fmt.Errorf("invalid credentials: %w", apperrors.ErrForbidden)
		}
		s.LogError(ctx, err, "Failed to look up user for login")
		return nil, fmt.Errorf("failed to authenticate: %w", err)
	}

	if !user.IsActive {
		s.LogWarn(ctx, "Login attempt for inactive user", slog.String("target_user_id", user.UserID))
		return nil, fmt.Errorf("invalid credentials: %w", apperrors.ErrForbidden)
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		s.LogWarn(ctx, "Login attempt with wrong password", slog.String("target_user_id", user.UserID))
		return nil, fmt.Errorf("invalid credentials: %w", apperrors.ErrForbidden)
	}

	domainUser := mapping.ToDomainUser(*user)
	return &domainUser, nil
}
