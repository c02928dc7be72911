package handler

import (
	"context"
	"net/http"
	"strings"

	"echotrace-api/common"
	"echotrace-api/service"
)

type contextKey string

const (
	// UsernameKey holds the authenticated username in the request context.
	UsernameKey contextKey = "username"
	// UserRoleKey holds the authenticated user's role in the request context.
	UserRoleKey contextKey = "userRole"
)

// publicPrefixes lists the path prefixes the auth filter passes through
// untouched: auth endpoints, API docs, published uploads and the reminders
// stream handshake.
var publicPrefixes = []string{
	"/api/auth",
	"/swagger",
	"/uploads",
	"/reminders",
	"/health",
}

// AuthMiddleware is the request trust filter. It runs exactly once per
// request, before any business handler: preflight requests are accepted
// immediately, public prefixes pass through with no identity, and every
// other request must carry a valid bearer access token whose subject still
// resolves to a stored account.
type AuthMiddleware struct {
	authService   *service.AuthService
	userResolver  UserResolver
	publicPrefix  []string
	allowedOrigin string
}

// UserResolver resolves a verified token subject to a stored account role.
// A sql.ErrNoRows-class failure means the subject was deleted after the
// token was issued.
type UserResolver interface {
	ResolveRole(username string) (string, error)
}

// NewAuthMiddleware constructs the filter. All configuration is immutable
// after this point.
func NewAuthMiddleware(authService *service.AuthService, userResolver UserResolver, allowedOrigin string) *AuthMiddleware {
	return &AuthMiddleware{
		authService:   authService,
		userResolver:  userResolver,
		publicPrefix:  publicPrefixes,
		allowedOrigin: allowedOrigin,
	}
}

func (m *AuthMiddleware) isPublic(path string) bool {
	for _, prefix := range m.publicPrefix {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// Wrap applies the filter around the full route table.
func (m *AuthMiddleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.setCORSHeaders(w)

		// Preflight requests are accepted before any classification.
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		if m.isPublic(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			m.reject(w, r, service.ErrMissingCredentials, nil)
			return
		}

		headerParts := strings.SplitN(authHeader, " ", 2)
		if len(headerParts) != 2 || !strings.EqualFold(headerParts[0], "bearer") {
			m.reject(w, r, service.ErrMissingCredentials, nil)
			return
		}

		username, err := m.authService.VerifyToken(headerParts[1])
		if err != nil {
			m.reject(w, r, service.ErrInvalidToken, err)
			return
		}

		// A context should never be attached twice on a single-pass filter.
		if r.Context().Value(UsernameKey) != nil {
			m.reject(w, r, service.ErrInvalidToken, nil)
			return
		}

		role, err := m.userResolver.ResolveRole(username)
		if err != nil {
			// The subject was deleted after the token was issued.
			m.reject(w, r, service.ErrInvalidToken, err)
			return
		}

		ctx := context.WithValue(r.Context(), UsernameKey, username)
		ctx = context.WithValue(ctx, UserRoleKey, role)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// reject surfaces a structured 401 envelope. MissingCredentials and
// InvalidToken share the same message so callers cannot tell which check
// failed.
func (m *AuthMiddleware) reject(w http.ResponseWriter, r *http.Request, cause error, internal error) {
	common.NewAppError(http.StatusUnauthorized, "Invalid or missing token", internal).Send(w, r)
}

func (m *AuthMiddleware) setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", m.allowedOrigin)
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
}

// CurrentUsername reads the authenticated username attached by the filter.
func CurrentUsername(r *http.Request) (string, bool) {
	username, ok := r.Context().Value(UsernameKey).(string)
	return username, ok
}
