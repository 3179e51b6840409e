package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/redmonkez12/advisory-cms/internal/user"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// TokenClaims are the claims carried by a session token
type TokenClaims struct {
	UserID    string    `json:"user_id"` // UUID stored as string in token
	IssuedAt  time.Time `json:"iat"`
	ExpiresAt time.Time `json:"exp"`
}

// TokenService defines the interface for token creation and validation.
// Implementations include JWTService (HS256) and PasetoService (PASETO v4.local).
type TokenService interface {
	CreateToken(userID uuid.UUID, duration time.Duration) (string, error)
	VerifyToken(tokenStr string) (*TokenClaims, error)
}

// PasswordHasher hashes and verifies account passwords
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(encodedHash, password string) bool
}

// UserStore is the subset of the user repository the auth flows need
type UserStore interface {
	ExistsWithRole(ctx context.Context, role user.Role) (bool, error)
	Create(ctx context.Context, u *user.User) (*user.User, error)
	GetByEmail(ctx context.Context, email string) (*user.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	SetResetOTP(ctx context.Context, id uuid.UUID, otp string, expiresAt time.Time) error
	ClearResetOTP(ctx context.Context, id uuid.UUID) error
	ConsumeResetOTP(ctx context.Context, email, otp, passwordHash string, now time.Time) error
	GetByInvitationToken(ctx context.Context, token string, now time.Time) (*user.User, error)
	ConsumeInvitation(ctx context.Context, token, passwordHash string, now time.Time) error
}

// Mailer sends the account emails the auth flows depend on
type Mailer interface {
	SendOTP(ctx context.Context, toEmail, otp string) error
	SendInvitation(ctx context.Context, toEmail, name, setupURL string) error
}

// BotVerifier checks a human-verification token issued to the browser
type BotVerifier interface {
	Verify(ctx context.Context, clientToken string) bool
}
