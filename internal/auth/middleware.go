package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/redmonkez12/advisory-cms/internal/httputil"
	"github.com/redmonkez12/advisory-cms/internal/logging"
	"github.com/redmonkez12/advisory-cms/internal/user"
)

// Authenticator resolves a bearer token to an active user
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*user.User, error)
}

// Middleware handles authentication and role checks for protected routes
type Middleware struct {
	auth Authenticator
}

func NewMiddleware(auth Authenticator) *Middleware {
	return &Middleware{auth: auth}
}

// Authenticate rejects requests without a valid token for an active user and
// attaches that user to the request context
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			respondError(w, "No token provided. Authorization denied.", httputil.CodeMissingAuth, http.StatusUnauthorized)
			return
		}

		u, err := m.auth.Authenticate(r.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, ErrExpiredToken):
				respondError(w, "Token expired. Please login again.", httputil.CodeTokenExpired, http.StatusUnauthorized)
			case errors.Is(err, ErrInvalidToken):
				respondError(w, "Invalid token. Authorization denied.", httputil.CodeInvalidToken, http.StatusUnauthorized)
			case errors.Is(err, ErrUserNotFound):
				respondError(w, "User not found. Authorization denied.", httputil.CodeUserNotFound, http.StatusUnauthorized)
			case errors.Is(err, ErrAccountInactive):
				respondError(w, "User account is inactive. Authorization denied.", httputil.CodeAccountInactive, http.StatusUnauthorized)
			default:
				logging.GetLoggerFromContext(r.Context()).Error("authentication failed: internal error", "error", err.Error())
				respondError(w, "Server error during authentication.", httputil.CodeInternalError, http.StatusInternalServerError)
			}
			return
		}

		next.ServeHTTP(w, r.WithContext(user.NewContext(r.Context(), u)))
	})
}

// OptionalAuthenticate attaches the user when a valid token is present and
// otherwise lets the request through anonymously
func (m *Middleware) OptionalAuthenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		u, err := m.auth.Authenticate(r.Context(), token)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(user.NewContext(r.Context(), u)))
	})
}

// RequireSuperAdmin allows only super admins. Must run after Authenticate.
func (m *Middleware) RequireSuperAdmin(next http.Handler) http.Handler {
	return requireRole(user.RoleSuperAdmin, "Access denied. Super admin privileges required.", next)
}

// RequireAdmin allows admins and super admins. Must run after Authenticate.
func (m *Middleware) RequireAdmin(next http.Handler) http.Handler {
	return requireRole(user.RoleAdmin, "Access denied. Admin privileges required.", next)
}

func requireRole(min user.Role, message string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, ok := user.FromContext(r.Context())
		if !ok || !u.Role.AtLeast(min) {
			respondError(w, message, httputil.CodeForbidden, http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// bearerToken returns the credential from "Authorization: Bearer <token>"
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}

	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
