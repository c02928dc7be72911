// file: service/auth_service.go

package service

import (
	"errors"
	"fmt"
	"time"

	"echotrace-api/logger"
	"echotrace-api/model"
	"echotrace-api/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// AuthService owns credential verification, token issuance and the refresh
// flow. The signing secret and token lifetimes are fixed at construction
// and never mutated, so concurrent use needs no locking.
type AuthService struct {
	userRepo   repository.IUserRepository
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewAuthService creates an AuthService. The secret signs both access and
// refresh tokens; the two lifetimes tell them apart semantically.
func NewAuthService(userRepo repository.IUserRepository, secret string, accessTTL, refreshTTL time.Duration) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

func (s *AuthService) HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to hash password")
		return "", err
	}
	return string(bytes), nil
}

func (s *AuthService) CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// IssueToken mints a signed token binding the subject and an absolute
// expiry. Pure apart from reading the wall clock.
func (s *AuthService) IssueToken(subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &model.AppClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		logger.Log.WithError(err).WithField("subject", subject).Error("Failed to sign JWT")
		return "", fmt.Errorf("failed to sign token string: %w", err)
	}

	return tokenString, nil
}

// VerifyToken checks structure, signature and expiry and returns the bound
// subject. Expiry uses server wall-clock with no skew leeway.
func (s *AuthService) VerifyToken(tokenString string) (string, error) {
	claims := &model.AppClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})

	switch {
	case err == nil && token.Valid:
		return claims.Subject, nil
	case errors.Is(err, jwt.ErrTokenExpired):
		return "", ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return "", ErrTokenBadSignature
	default:
		return "", ErrTokenMalformed
	}
}

// CheckPassword verifies a username/password pair against the stored hash.
// An unknown username and a wrong password both return false.
func (s *AuthService) CheckPassword(username, password string) bool {
	user, err := s.userRepo.GetUserByUsername(username)
	if err != nil {
		return false
	}
	return s.CheckPasswordHash(password, user.Password)
}

// Register creates a new account with a hashed password. Reminders are
// enabled by default, matching the signup flow of the web client.
func (s *AuthService) Register(req *model.RegisterRequest) (*model.User, error) {
	exists, err := s.userRepo.ExistsByUsername(req.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUsernameTaken
	}

	hashedPassword, err := s.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = string(model.RoleUser)
	}

	user := &model.User{
		Username:         req.Username,
		Password:         hashedPassword,
		Name:             req.Name,
		Email:            req.Email,
		Role:             role,
		RemindersEnabled: true,
	}

	if err := s.userRepo.CreateUser(user); err != nil {
		return nil, err
	}

	logger.Log.WithField("username", user.Username).Info("New user registered")
	return user, nil
}

// Login verifies credentials and issues a fresh session pair. The new
// refresh token overwrites any previously stored one, so two successive
// logins invalidate each other's refresh token.
func (s *AuthService) Login(username, password string) (*model.AuthResponse, error) {
	if !s.CheckPassword(username, password) {
		return nil, ErrInvalidCredentials
	}

	accessToken, err := s.IssueToken(username, s.accessTTL)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.IssueToken(username, s.refreshTTL)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateRefreshToken(username, refreshToken); err != nil {
		return nil, err
	}

	logger.Log.WithField("username", username).Info("User logged in")
	return &model.AuthResponse{
		Token:        accessToken,
		Username:     username,
		RefreshToken: refreshToken,
	}, nil
}

// Refresh exchanges a valid, currently-stored refresh token for a new
// access token. A token that verifies cryptographically but does not match
// the stored value exactly was rotated away by a newer login and is
// rejected. The refresh token itself is not rotated here; the same value
// stays usable until the next login overwrites it.
func (s *AuthService) Refresh(refreshToken string) (*model.AuthResponse, error) {
	username, err := s.VerifyToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}

	user, err := s.userRepo.GetUserByUsername(username)
	if err != nil {
		return nil, ErrInvalidToken
	}

	if user.RefreshToken != refreshToken {
		return nil, ErrInvalidToken
	}

	accessToken, err := s.IssueToken(username, s.accessTTL)
	if err != nil {
		return nil, err
	}

	return &model.AuthResponse{
		Token:        accessToken,
		Username:     username,
		RefreshToken: refreshToken,
	}, nil
}
