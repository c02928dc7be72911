// file: service/auth_service_test.go

package service

import (
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"echotrace-api/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) CreateUser(user *model.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *mockUserRepo) GetUserByUsername(username string) (*model.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockUserRepo) ExistsByUsername(username string) (bool, error) {
	args := m.Called(username)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepo) UpdateRefreshToken(username, refreshToken string) error {
	args := m.Called(username, refreshToken)
	return args.Error(0)
}

func (m *mockUserRepo) UpdateProfile(user *model.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *mockUserRepo) UpdatePassword(username, hashedPassword string) error {
	args := m.Called(username, hashedPassword)
	return args.Error(0)
}

func (m *mockUserRepo) GetUsersWithRemindersEnabled() ([]*model.User, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.User), args.Error(1)
}

func newTestAuthService(repo *mockUserRepo) *AuthService {
	return NewAuthService(repo, "test-secret", time.Hour, 7*24*time.Hour)
}

// TestAuthService_HashAndCheckPassword ensures that password hashing and verification work correctly.
func TestAuthService_HashAndCheckPassword(t *testing.T) {
	// Hashing does not touch the repository, so nil is fine here.
	authService := newTestAuthService(nil)
	password := "mySecretPassword123"

	hashedPassword, err := authService.HashPassword(password)
	if err != nil {
		t.Fatalf("authService.HashPassword() returned an unexpected error: %v", err)
	}

	if hashedPassword == password {
		t.Errorf("Hashed password should not be the same as the original password.")
	}

	if !authService.CheckPasswordHash(password, hashedPassword) {
		t.Errorf("CheckPasswordHash() should have returned true for a matching password.")
	}

	if authService.CheckPasswordHash("notMyPassword", hashedPassword) {
		t.Errorf("CheckPasswordHash() should have returned false for a non-matching password.")
	}
}

func TestAuthService_TokenRoundTrip(t *testing.T) {
	authService := newTestAuthService(nil)

	token, err := authService.IssueToken("alice", time.Hour)
	assert.NoError(t, err)

	subject, err := authService.VerifyToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "alice", subject)
}

func TestAuthService_VerifyToken_Expired(t *testing.T) {
	authService := newTestAuthService(nil)

	// A negative TTL puts the expiry in the past at issuance.
	token, err := authService.IssueToken("alice", -time.Minute)
	assert.NoError(t, err)

	_, err = authService.VerifyToken(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestAuthService_VerifyToken_TamperedSignature(t *testing.T) {
	authService := newTestAuthService(nil)

	token, err := authService.IssueToken("alice", time.Hour)
	assert.NoError(t, err)

	parts := strings.Split(token, ".")
	assert.Len(t, parts, 3)

	// Flip a byte in the signature segment.
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = authService.VerifyToken(tampered)
	assert.ErrorIs(t, err, ErrTokenBadSignature)
}

func TestAuthService_VerifyToken_Malformed(t *testing.T) {
	authService := newTestAuthService(nil)

	for _, input := range []string{"", "garbage", "not.a.token", "a.b"} {
		_, err := authService.VerifyToken(input)
		assert.ErrorIs(t, err, ErrTokenMalformed, "input %q", input)
	}
}

func TestAuthService_VerifyToken_WrongSecret(t *testing.T) {
	issuer := NewAuthService(nil, "one-secret", time.Hour, time.Hour)
	verifier := NewAuthService(nil, "other-secret", time.Hour, time.Hour)

	token, err := issuer.IssueToken("alice", time.Hour)
	assert.NoError(t, err)

	_, err = verifier.VerifyToken(token)
	assert.ErrorIs(t, err, ErrTokenBadSignature)
}

func TestAuthService_Login_Success(t *testing.T) {
	mockRepo := new(mockUserRepo)
	authService := newTestAuthService(mockRepo)

	hash, _ := authService.HashPassword("password123")
	user := &model.User{Username: "alice", Password: hash}

	mockRepo.On("GetUserByUsername", "alice").Return(user, nil)
	mockRepo.On("UpdateRefreshToken", "alice", mock.AnythingOfType("string")).Return(nil).Once()

	resp, err := authService.Login("alice", "password123")

	assert.NoError(t, err)
	assert.Equal(t, "alice", resp.Username)
	assert.NotEmpty(t, resp.Token)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.NotEqual(t, resp.Token, resp.RefreshToken)

	// Both tokens verify and carry the login subject.
	for _, token := range []string{resp.Token, resp.RefreshToken} {
		subject, err := authService.VerifyToken(token)
		assert.NoError(t, err)
		assert.Equal(t, "alice", subject)
	}

	mockRepo.AssertExpectations(t)
}

// TestAuthService_Login_CredentialOpacity verifies that an unknown username
// and a wrong password produce the exact same error.
func TestAuthService_Login_CredentialOpacity(t *testing.T) {
	mockRepo := new(mockUserRepo)
	authService := newTestAuthService(mockRepo)

	hash, _ := authService.HashPassword("correct-password")
	user := &model.User{Username: "alice", Password: hash}

	mockRepo.On("GetUserByUsername", "alice").Return(user, nil)
	mockRepo.On("GetUserByUsername", "nonexistent").Return(nil, sql.ErrNoRows)

	_, errUnknownUser := authService.Login("nonexistent", "x")
	_, errWrongPassword := authService.Login("alice", "wrongpassword")

	assert.ErrorIs(t, errUnknownUser, ErrInvalidCredentials)
	assert.ErrorIs(t, errWrongPassword, ErrInvalidCredentials)
	assert.Equal(t, errUnknownUser, errWrongPassword)
}

// TestAuthService_RefreshRotation walks the full rotation flow: a second
// login overwrites the stored refresh token, after which the first token is
// rejected on the stored-value match even though its signature still
// verifies.
func TestAuthService_RefreshRotation(t *testing.T) {
	mockRepo := new(mockUserRepo)
	authService := newTestAuthService(mockRepo)

	hash, _ := authService.HashPassword("password123")
	user := &model.User{Username: "alice", Password: hash}

	mockRepo.On("GetUserByUsername", "alice").Return(user, nil)
	// The shared user pointer tracks the stored value, mirroring the
	// overwrite-on-login semantics of the real repository.
	mockRepo.On("UpdateRefreshToken", "alice", mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) {
			user.RefreshToken = args.String(1)
		}).Return(nil)

	first, err := authService.Login("alice", "password123")
	assert.NoError(t, err)

	// jwt expiry has second granularity; force distinct token bytes.
	time.Sleep(1100 * time.Millisecond)

	second, err := authService.Login("alice", "password123")
	assert.NoError(t, err)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)

	// The rotated-away token still verifies but must be rejected.
	_, err = authService.VerifyToken(first.RefreshToken)
	assert.NoError(t, err)
	_, err = authService.Refresh(first.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	// The live token succeeds and is echoed back unrotated.
	resp, err := authService.Refresh(second.RefreshToken)
	assert.NoError(t, err)
	assert.Equal(t, second.RefreshToken, resp.RefreshToken)
	assert.NotEmpty(t, resp.Token)

	subject, err := authService.VerifyToken(resp.Token)
	assert.NoError(t, err)
	assert.Equal(t, "alice", subject)

	// The stored value is untouched by refresh itself.
	assert.Equal(t, second.RefreshToken, user.RefreshToken)
}

func TestAuthService_Refresh_UnknownSubject(t *testing.T) {
	mockRepo := new(mockUserRepo)
	authService := newTestAuthService(mockRepo)

	token, err := authService.IssueToken("ghost", time.Hour)
	assert.NoError(t, err)

	mockRepo.On("GetUserByUsername", "ghost").Return(nil, sql.ErrNoRows)

	_, err = authService.Refresh(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthService_Refresh_InvalidToken(t *testing.T) {
	authService := newTestAuthService(new(mockUserRepo))

	for _, input := range []string{"", "garbage", "a.b.c"} {
		_, err := authService.Refresh(input)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}

func TestAuthService_Register(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mockRepo := new(mockUserRepo)
		authService := newTestAuthService(mockRepo)

		mockRepo.On("ExistsByUsername", "tester").Return(false, nil).Once()
		mockRepo.On("CreateUser", mock.MatchedBy(func(u *model.User) bool {
			return u.Username == "tester" &&
				u.Role == "user" &&
				u.RemindersEnabled &&
				authService.CheckPasswordHash("password123", u.Password)
		})).Return(nil).Once()

		user, err := authService.Register(&model.RegisterRequest{
			Username: "tester",
			Password: "password123",
			Name:     "Test User",
			Email:    "test@example.com",
		})

		assert.NoError(t, err)
		assert.Equal(t, "tester", user.Username)
		mockRepo.AssertExpectations(t)
	})

	t.Run("username taken", func(t *testing.T) {
		mockRepo := new(mockUserRepo)
		authService := newTestAuthService(mockRepo)

		mockRepo.On("ExistsByUsername", "tester").Return(true, nil).Once()

		_, err := authService.Register(&model.RegisterRequest{
			Username: "tester",
			Password: "password123",
			Name:     "Test User",
			Email:    "test@example.com",
		})

		assert.ErrorIs(t, err, ErrUsernameTaken)
		mockRepo.AssertNotCalled(t, "CreateUser")
	})

	t.Run("repository error", func(t *testing.T) {
		mockRepo := new(mockUserRepo)
		authService := newTestAuthService(mockRepo)

		expectedError := errors.New("database error")
		mockRepo.On("ExistsByUsername", "tester").Return(false, expectedError).Once()

		_, err := authService.Register(&model.RegisterRequest{
			Username: "tester",
			Password: "password123",
			Name:     "Test User",
			Email:    "test@example.com",
		})

		assert.Equal(t, expectedError, err)
	})
}
