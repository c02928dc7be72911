// file: service/errors.go

package service

import "errors"

// Auth failure taxonomy. The three auth errors intentionally collapse many
// causes each: callers must not be able to tell why a credential or token
// was rejected.
var (
	// ErrInvalidCredentials is returned by login for an unknown username or
	// a wrong password. The two cases are externally indistinguishable.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrMissingCredentials is returned when a protected request carries no
	// bearer authorization header, or one with the wrong scheme.
	ErrMissingCredentials = errors.New("missing or malformed authorization header")

	// ErrInvalidToken covers signature failure, expiry, structural
	// corruption, stored-value mismatch and unknown subjects.
	ErrInvalidToken = errors.New("invalid or expired token")
)

// Token codec failures. All of them map to ErrInvalidToken at the request
// boundary; the distinction exists for tests and logging.
var (
	ErrTokenMalformed    = errors.New("token is malformed")
	ErrTokenBadSignature = errors.New("token signature is invalid")
	ErrTokenExpired      = errors.New("token is expired")
)

// Business errors surfaced by the user and log services.
var (
	ErrUsernameTaken = errors.New("username already exists")
	ErrUserNotFound  = errors.New("user not found")
	ErrLogNotFound   = errors.New("log not found")
	ErrNotLogOwner   = errors.New("log belongs to another user")
)
