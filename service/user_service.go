package service

import (
	"echotrace-api/model"
	"echotrace-api/repository"
)

// UserService handles profile reads and updates for the authenticated user.
type UserService struct {
	userRepo    repository.IUserRepository
	authService *AuthService
}

// NewUserService creates a new UserService. The auth service is used for
// password hashing and verification during password changes.
func NewUserService(userRepo repository.IUserRepository, authService *AuthService) *UserService {
	return &UserService{userRepo: userRepo, authService: authService}
}

func (s *UserService) GetProfile(username string) (*model.UserProfileResponse, error) {
	user, err := s.userRepo.GetUserByUsername(username)
	if err != nil {
		return nil, ErrUserNotFound
	}

	return &model.UserProfileResponse{
		Username:         user.Username,
		Name:             user.Name,
		Email:            user.Email,
		Role:             user.Role,
		RemindersEnabled: user.RemindersEnabled,
	}, nil
}

// UpdateProfile applies a partial update: blank string fields keep their
// stored value, the reminders flag is always taken from the request.
func (s *UserService) UpdateProfile(username string, req *model.ProfileUpdateRequest) (*model.UserProfileResponse, error) {
	user, err := s.userRepo.GetUserByUsername(username)
	if err != nil {
		return nil, ErrUserNotFound
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if req.Role != "" {
		user.Role = req.Role
	}
	user.RemindersEnabled = req.RemindersEnabled

	if err := s.userRepo.UpdateProfile(user); err != nil {
		return nil, err
	}

	return s.GetProfile(username)
}

// ResolveRole maps a verified token subject to the stored account's role.
// Used by the auth filter; an unknown subject means the account was deleted
// after the token was issued.
func (s *UserService) ResolveRole(username string) (string, error) {
	user, err := s.userRepo.GetUserByUsername(username)
	if err != nil {
		return "", ErrUserNotFound
	}
	return user.Role, nil
}

// UpdatePassword verifies the current password before storing the new hash.
func (s *UserService) UpdatePassword(username string, req *model.PasswordUpdateRequest) error {
	user, err := s.userRepo.GetUserByUsername(username)
	if err != nil {
		return ErrUserNotFound
	}

	if !s.authService.CheckPasswordHash(req.CurrentPassword, user.Password) {
		return ErrInvalidCredentials
	}

	hashedPassword, err := s.authService.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}

	return s.userRepo.UpdatePassword(username, hashedPassword)
}
