package service

import (
	"context"
	"strings"

	"quizard/internal/domain"
	"quizard/internal/dto"
)

const maxProfileNameLength = 100

// UserService exposes profile reads and edits for the authenticated user.
type UserService interface {
	GetMyProfile(ctx context.Context, userID string) (*dto.UserProfileResponse, error)
	UpdateMyProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*dto.UserProfileResponse, error)
	GetCoinBalance(ctx context.Context, userID string) (int, error)
}

type userServiceImpl struct {
	userRepo domain.UserRepository
}

// NewUserService creates a new instance of UserService.
func NewUserService(userRepo domain.UserRepository) UserService {
	return &userServiceImpl{userRepo: userRepo}
}

func toProfileResponse(user *domain.User) *dto.UserProfileResponse {
	return &dto.UserProfileResponse{
		ID:                user.ID,
		Email:             user.Email,
		Name:              user.Name,
		ProfilePictureURL: user.ProfilePictureURL,
		CoinBalance:       user.CoinBalance,
	}
}

func (s *userServiceImpl) GetMyProfile(ctx context.Context, userID string) (*dto.UserProfileResponse, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.NewUnauthenticatedError("No profile found for the authenticated session")
	}
	return toProfileResponse(user), nil
}

// UpdateMyProfile changes the display name of the authenticated user. The
// rest of the profile comes from Google and is not editable here.
func (s *userServiceImpl) UpdateMyProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*dto.UserProfileResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.NewError(domain.CodeValidation, "name is required", nil)
	}
	if len(name) > maxProfileNameLength {
		return nil, domain.NewError(domain.CodeValidation, "name must be at most 100 characters", nil)
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.NewUnauthenticatedError("No profile found for the authenticated session")
	}

	user.Name = name
	if err := s.userRepo.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	return toProfileResponse(user), nil
}

func (s *userServiceImpl) GetCoinBalance(ctx context.Context, userID string) (int, error) {
	return s.userRepo.GetCoinBalance(ctx, userID)
}
