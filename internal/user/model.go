package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidRole = errors.New("invalid role")

// Role is an ordered privilege level. SuperAdmin dominates Admin.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

func (r Role) rank() int {
	switch r {
	case RoleAdmin:
		return 1
	case RoleSuperAdmin:
		return 2
	default:
		return 0
	}
}

// AtLeast reports whether r grants at least the privileges of min
func (r Role) AtLeast(min Role) bool {
	return r.rank() > 0 && r.rank() >= min.rank()
}

func (r Role) Valid() bool { return r.rank() > 0 }

// ParseRole returns the role named s, or RoleAdmin when s is empty
func ParseRole(s string) (Role, error) {
	if s == "" {
		return RoleAdmin, nil
	}
	r := Role(s)
	if !r.Valid() {
		return "", ErrInvalidRole
	}
	return r, nil
}

type User struct {
	ID                    uuid.UUID  `json:"id"`
	Name                  string     `json:"name"`
	Email                 string     `json:"email"`
	PasswordHash          string     `json:"-"` // Never expose password hash in JSON
	Role                  Role       `json:"role"`
	IsActive              bool       `json:"isActive"`
	PasswordSetupComplete bool       `json:"passwordSetupComplete"`
	ResetPasswordOTP      *string    `json:"-"`
	ResetPasswordExpires  *time.Time `json:"-"`
	InvitationToken       *string    `json:"-"`
	InvitationExpires     *time.Time `json:"-"`
	CreatedAt             time.Time  `json:"createdAt"`
	UpdatedAt             time.Time  `json:"updatedAt"`
}

// NormalizeEmail lowercases and trims an address before any lookup or write
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type contextKey struct{}

// NewContext returns a copy of ctx carrying the authenticated user
func NewContext(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, contextKey{}, u)
}

// FromContext returns the authenticated user attached by the auth middleware
func FromContext(ctx context.Context) (*User, bool) {
	u, ok := ctx.Value(contextKey{}).(*User)
	return u, ok && u != nil
}
