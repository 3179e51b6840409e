package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/redmonkez12/advisory-cms/internal/database"
)

var (
	ErrNotFound       = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already exists")
)

// Repository handles user data persistence
type Repository struct {
	db *bun.DB
}

func NewRepository(db *bun.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new user into the database
func (r *Repository) Create(ctx context.Context, u *User) (*User, error) {
	dbUser := mapModelToDBUser(u)
	if dbUser.ID == uuid.Nil {
		dbUser.ID = uuid.New()
	}
	dbUser.Email = NormalizeEmail(dbUser.Email)

	_, err := r.db.NewInsert().
		Model(dbUser).
		Returning("*").
		Exec(ctx)

	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return mapDBUserToModel(dbUser), nil
}

// GetByEmail retrieves a user by email
func (r *Repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	dbUser := new(database.User)
	err := r.db.NewSelect().
		Model(dbUser).
		Where("email = ?", NormalizeEmail(email)).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return mapDBUserToModel(dbUser), nil
}

// GetByID retrieves a user by ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	dbUser := new(database.User)
	err := r.db.NewSelect().
		Model(dbUser).
		Where("id = ?", id).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return mapDBUserToModel(dbUser), nil
}

// List returns every user, newest first
func (r *Repository) List(ctx context.Context) ([]*User, error) {
	var dbUsers []database.User
	err := r.db.NewSelect().
		Model(&dbUsers).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]*User, 0, len(dbUsers))
	for i := range dbUsers {
		users = append(users, mapDBUserToModel(&dbUsers[i]))
	}
	return users, nil
}

// ExistsWithRole reports whether any user holds role
func (r *Repository) ExistsWithRole(ctx context.Context, role Role) (bool, error) {
	exists, err := r.db.NewSelect().
		Model((*database.User)(nil)).
		Where("role = ?", string(role)).
		Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check role existence: %w", err)
	}
	return exists, nil
}

// Update persists the mutable profile fields of u
func (r *Repository) Update(ctx context.Context, u *User) (*User, error) {
	dbUser := mapModelToDBUser(u)
	dbUser.Email = NormalizeEmail(dbUser.Email)
	dbUser.UpdatedAt = time.Now()

	res, err := r.db.NewUpdate().
		Model(dbUser).
		Column("name", "email", "role", "is_active", "updated_at").
		WherePK().
		Returning("*").
		Exec(ctx)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	if err := expectRow(res); err != nil {
		return nil, err
	}

	return mapDBUserToModel(dbUser), nil
}

// Delete removes a user by ID
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.NewDelete().
		Model((*database.User)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	return expectRow(res)
}

// SetResetOTP stores a one-time reset code and its expiry
func (r *Repository) SetResetOTP(ctx context.Context, id uuid.UUID, otp string, expiresAt time.Time) error {
	res, err := r.db.NewUpdate().
		Model((*database.User)(nil)).
		Set("reset_password_otp = ?", otp).
		Set("reset_password_expires = ?", expiresAt).
		Set("updated_at = NOW()").
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to store reset code: %w", err)
	}

	return expectRow(res)
}

// ClearResetOTP unsets the reset code fields
func (r *Repository) ClearResetOTP(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.NewUpdate().
		Model((*database.User)(nil)).
		Set("reset_password_otp = NULL").
		Set("reset_password_expires = NULL").
		Set("updated_at = NOW()").
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to clear reset code: %w", err)
	}
	return nil
}

// ConsumeResetOTP sets a new password for the user whose email, code and
// unexpired timestamp all match, clearing the code in the same statement.
// Returns ErrNotFound when nothing matched.
func (r *Repository) ConsumeResetOTP(ctx context.Context, email, otp, passwordHash string, now time.Time) error {
	res, err := r.db.NewUpdate().
		Model((*database.User)(nil)).
		Set("password_hash = ?", passwordHash).
		Set("password_setup_complete = ?", true).
		Set("reset_password_otp = NULL").
		Set("reset_password_expires = NULL").
		Set("updated_at = NOW()").
		Where("email = ?", NormalizeEmail(email)).
		Where("reset_password_otp = ?", otp).
		Where("reset_password_expires > ?", now).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to reset password: %w", err)
	}

	return expectRow(res)
}

// ClearExpiredResetOTPs unsets reset codes whose expiry has passed
func (r *Repository) ClearExpiredResetOTPs(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.NewUpdate().
		Model((*database.User)(nil)).
		Set("reset_password_otp = NULL").
		Set("reset_password_expires = NULL").
		Where("reset_password_expires IS NOT NULL").
		Where("reset_password_expires <= ?", now).
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to clear expired reset codes: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return n, nil
}

// GetByInvitationToken retrieves the user holding an unexpired invitation
func (r *Repository) GetByInvitationToken(ctx context.Context, token string, now time.Time) (*User, error) {
	dbUser := new(database.User)
	err := r.db.NewSelect().
		Model(dbUser).
		Where("invitation_token = ?", token).
		Where("invitation_expires > ?", now).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by invitation token: %w", err)
	}

	return mapDBUserToModel(dbUser), nil
}

// ConsumeInvitation sets the password of the invited user, activates the
// account and nullifies the token in one statement so it cannot be replayed.
// Returns ErrNotFound when the token is unknown or expired.
func (r *Repository) ConsumeInvitation(ctx context.Context, token, passwordHash string, now time.Time) error {
	res, err := r.db.NewUpdate().
		Model((*database.User)(nil)).
		Set("password_hash = ?", passwordHash).
		Set("password_setup_complete = ?", true).
		Set("is_active = ?", true).
		Set("invitation_token = NULL").
		Set("invitation_expires = NULL").
		Set("updated_at = NOW()").
		Where("invitation_token = ?", token).
		Where("invitation_expires > ?", now).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to set up password: %w", err)
	}

	return expectRow(res)
}

func expectRow(res sql.Result) error {
	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// mapDBUserToModel converts database model to domain model
func mapDBUserToModel(dbu *database.User) *User {
	return &User{
		ID:                    dbu.ID,
		Name:                  dbu.Name,
		Email:                 dbu.Email,
		PasswordHash:          dbu.PasswordHash,
		Role:                  Role(dbu.Role),
		IsActive:              dbu.IsActive,
		PasswordSetupComplete: dbu.PasswordSetupComplete,
		ResetPasswordOTP:      dbu.ResetPasswordOTP,
		ResetPasswordExpires:  dbu.ResetPasswordExpires,
		InvitationToken:       dbu.InvitationToken,
		InvitationExpires:     dbu.InvitationExpires,
		CreatedAt:             dbu.CreatedAt,
		UpdatedAt:             dbu.UpdatedAt,
	}
}

func mapModelToDBUser(u *User) *database.User {
	return &database.User{
		ID:                    u.ID,
		Name:                  u.Name,
		Email:                 u.Email,
		PasswordHash:          u.PasswordHash,
		Role:                  string(u.Role),
		IsActive:              u.IsActive,
		PasswordSetupComplete: u.PasswordSetupComplete,
		ResetPasswordOTP:      u.ResetPasswordOTP,
		ResetPasswordExpires:  u.ResetPasswordExpires,
		InvitationToken:       u.InvitationToken,
		InvitationExpires:     u.InvitationExpires,
		CreatedAt:             u.CreatedAt,
		UpdatedAt:             u.UpdatedAt,
	}
}
