package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/redmonkez12/advisory-cms/internal/logging"
)

var (
	ErrFieldsRequired         = errors.New("name, email and password are required")
	ErrSuperAdminCreateDenied = errors.New("only super admin can create other super admins")
	ErrSuperAdminUpdateDenied = errors.New("only super admin can update other super admins")
	ErrSuperAdminDeleteDenied = errors.New("only super admin can delete other super admins")
	ErrSelfDeletion           = errors.New("cannot delete own account")
)

// Store is the persistence the admin user service depends on
type Store interface {
	List(ctx context.Context) ([]*User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	Create(ctx context.Context, u *User) (*User, error)
	Update(ctx context.Context, u *User) (*User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Hasher hashes new passwords
type Hasher interface {
	Hash(password string) (string, error)
}

// WelcomeMailer greets accounts created directly by an admin
type WelcomeMailer interface {
	SendWelcome(ctx context.Context, toEmail, name string) error
}

// Service implements admin account management
type Service struct {
	store  Store
	hasher Hasher
	mailer WelcomeMailer
	logger *logging.Logger
}

func NewService(store Store, hasher Hasher, mailer WelcomeMailer, logger *logging.Logger) *Service {
	return &Service{
		store:  store,
		hasher: hasher,
		mailer: mailer,
		logger: logger,
	}
}

// CreateInput is the body of an admin-created account
type CreateInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// UpdateInput is a partial update. Empty strings and nil leave fields unchanged.
type UpdateInput struct {
	Name     string
	Email    string
	IsActive *bool
	Role     string
}

func (s *Service) List(ctx context.Context) ([]*User, error) {
	return s.store.List(ctx)
}

// Create adds an active account with a password. The welcome email is best effort.
func (s *Service) Create(ctx context.Context, actor *User, in CreateInput) (*User, error) {
	name := strings.TrimSpace(in.Name)
	email := NormalizeEmail(in.Email)
	if name == "" || email == "" || in.Password == "" {
		return nil, ErrFieldsRequired
	}

	role, err := ParseRole(in.Role)
	if err != nil {
		return nil, err
	}
	if role == RoleSuperAdmin && actor.Role != RoleSuperAdmin {
		return nil, ErrSuperAdminCreateDenied
	}

	passwordHash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	created, err := s.store.Create(ctx, &User{
		Name:                  name,
		Email:                 email,
		PasswordHash:          passwordHash,
		Role:                  role,
		IsActive:              true,
		PasswordSetupComplete: true,
	})
	if err != nil {
		return nil, err
	}

	if err := s.mailer.SendWelcome(ctx, created.Email, created.Name); err != nil {
		s.logger.Warn("failed to send welcome email", "user_id", created.ID, "error", err)
	}

	return created, nil
}

// Update applies a partial update. Role changes are only applied for
// super admin actors; anyone else asking for super_admin is refused.
func (s *Service) Update(ctx context.Context, actor *User, id uuid.UUID, in UpdateInput) (*User, error) {
	target, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	actorIsSuper := actor.Role == RoleSuperAdmin
	if target.Role == RoleSuperAdmin && !actorIsSuper {
		return nil, ErrSuperAdminUpdateDenied
	}

	if name := strings.TrimSpace(in.Name); name != "" {
		target.Name = name
	}
	if email := NormalizeEmail(in.Email); email != "" {
		target.Email = email
	}
	if in.IsActive != nil {
		target.IsActive = *in.IsActive
	}
	if in.Role != "" {
		role, err := ParseRole(in.Role)
		if err != nil {
			return nil, err
		}
		switch {
		case actorIsSuper:
			target.Role = role
		case role == RoleSuperAdmin:
			return nil, ErrSuperAdminUpdateDenied
		}
	}

	return s.store.Update(ctx, target)
}

// Delete removes an account other than the actor's own
func (s *Service) Delete(ctx context.Context, actor *User, id uuid.UUID) error {
	target, err := s.store.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if target.ID == actor.ID {
		return ErrSelfDeletion
	}
	if target.Role == RoleSuperAdmin && actor.Role != RoleSuperAdmin {
		return ErrSuperAdminDeleteDenied
	}

	return s.store.Delete(ctx, id)
}
