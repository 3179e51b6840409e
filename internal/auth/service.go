package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/redmonkez12/advisory-cms/internal/logging"
	"github.com/redmonkez12/advisory-cms/internal/user"
)

var (
	ErrSetupComplete        = errors.New("super admin already exists")
	ErrSetupFieldsRequired  = errors.New("name, email and password are required")
	ErrSecurityCheckFailed  = errors.New("bot verification failed")
	ErrCredentialsRequired  = errors.New("email and password are required")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrAccountInactive      = errors.New("account is inactive")
	ErrUserNotFound         = errors.New("user not found")
	ErrEmailRequired        = errors.New("email is required")
	ErrResetFieldsRequired  = errors.New("email, otp and password are required")
	ErrInvalidOTP           = errors.New("invalid or expired otp")
	ErrEmailDelivery        = errors.New("failed to send email")
	ErrInviteFieldsRequired = errors.New("name and email are required")
	ErrUserExists           = errors.New("user with this email already exists")
	ErrInvalidInvitation    = errors.New("invalid or expired invitation token")
	ErrPasswordTooShort     = errors.New("password must be at least 6 characters")
)

const (
	otpTTL          = 10 * time.Minute
	invitationTTL   = 7 * 24 * time.Hour
	minPasswordLen  = 6
	setupPathPrefix = "/setup-password/"
)

// Session is a freshly authenticated user with its bearer token
type Session struct {
	User  *user.User `json:"user"`
	Token string     `json:"token"`
}

// Service handles authentication and account lifecycle flows
type Service struct {
	users         UserStore
	tokens        TokenService
	hasher        PasswordHasher
	mailer        Mailer
	bot           BotVerifier
	logger        *logging.Logger
	tokenDuration time.Duration
	frontendURL   string
	now           func() time.Time
}

func NewService(
	users UserStore,
	tokens TokenService,
	hasher PasswordHasher,
	mailer Mailer,
	bot BotVerifier,
	logger *logging.Logger,
	tokenDuration time.Duration,
	frontendURL string,
) *Service {
	return &Service{
		users:         users,
		tokens:        tokens,
		hasher:        hasher,
		mailer:        mailer,
		bot:           bot,
		logger:        logger,
		tokenDuration: tokenDuration,
		frontendURL:   strings.TrimSuffix(frontendURL, "/"),
		now:           time.Now,
	}
}

// SetupRequired reports whether no super admin exists yet
func (s *Service) SetupRequired(ctx context.Context) (bool, error) {
	exists, err := s.users.ExistsWithRole(ctx, user.RoleSuperAdmin)
	if err != nil {
		return false, fmt.Errorf("failed to check setup status: %w", err)
	}
	return !exists, nil
}

// Setup creates the first super admin. It is rejected once any super admin exists.
func (s *Service) Setup(ctx context.Context, name, email, password string) (*Session, error) {
	required, err := s.SetupRequired(ctx)
	if err != nil {
		return nil, err
	}
	if !required {
		return nil, ErrSetupComplete
	}

	name = strings.TrimSpace(name)
	email = user.NormalizeEmail(email)
	if name == "" || email == "" || password == "" {
		return nil, ErrSetupFieldsRequired
	}

	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	created, err := s.users.Create(ctx, &user.User{
		Name:                  name,
		Email:                 email,
		PasswordHash:          passwordHash,
		Role:                  user.RoleSuperAdmin,
		IsActive:              true,
		PasswordSetupComplete: true,
	})
	if err != nil {
		if errors.Is(err, user.ErrDuplicateEmail) {
			return nil, user.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create super admin: %w", err)
	}

	return s.newSession(created)
}

// Login verifies the bot check, then the credentials, and issues a token
func (s *Service) Login(ctx context.Context, email, password, botToken string) (*Session, error) {
	if !s.bot.Verify(ctx, botToken) {
		return nil, ErrSecurityCheckFailed
	}

	if strings.TrimSpace(email) == "" || password == "" {
		return nil, ErrCredentialsRequired
	}

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !existing.IsActive {
		return nil, ErrAccountInactive
	}

	if existing.PasswordHash == "" || !s.hasher.Verify(existing.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	return s.newSession(existing)
}

// Authenticate resolves a bearer token to an active user
func (s *Service) Authenticate(ctx context.Context, token string) (*user.User, error) {
	claims, err := s.tokens.VerifyToken(token)
	if err != nil {
		return nil, err
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, ErrInvalidToken
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !u.IsActive {
		return nil, ErrAccountInactive
	}

	return u, nil
}

// ForgotPassword stores a fresh one-time code and mails it. The code is
// cleared again when delivery fails so no unusable code lingers.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	if strings.TrimSpace(email) == "" {
		return ErrEmailRequired
	}

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	otp, err := generateOTP()
	if err != nil {
		return fmt.Errorf("failed to generate otp: %w", err)
	}

	if err := s.users.SetResetOTP(ctx, existing.ID, otp, s.now().Add(otpTTL)); err != nil {
		return fmt.Errorf("failed to store otp: %w", err)
	}

	if err := s.mailer.SendOTP(ctx, existing.Email, otp); err != nil {
		s.logger.Warn("failed to send otp email", "user_id", existing.ID, "error", err)
		if clearErr := s.users.ClearResetOTP(ctx, existing.ID); clearErr != nil {
			s.logger.Error("failed to roll back otp", "user_id", existing.ID, "error", clearErr)
		}
		return fmt.Errorf("%w: %v", ErrEmailDelivery, err)
	}

	return nil
}

// ResetPassword consumes a matching unexpired code and sets a new password
func (s *Service) ResetPassword(ctx context.Context, email, otp, password string) error {
	if strings.TrimSpace(email) == "" || strings.TrimSpace(otp) == "" || password == "" {
		return ErrResetFieldsRequired
	}

	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	err = s.users.ConsumeResetOTP(ctx, email, strings.TrimSpace(otp), passwordHash, s.now())
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return ErrInvalidOTP
		}
		return fmt.Errorf("failed to reset password: %w", err)
	}

	return nil
}

// Invite creates an inactive account holding a setup token and mails the
// setup link. The account is kept when delivery fails.
func (s *Service) Invite(ctx context.Context, name, email, role string) (*user.User, error) {
	name = strings.TrimSpace(name)
	email = user.NormalizeEmail(email)
	if name == "" || email == "" {
		return nil, ErrInviteFieldsRequired
	}

	parsedRole, err := user.ParseRole(role)
	if err != nil {
		return nil, err
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, ErrUserExists
	} else if !errors.Is(err, user.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	token, err := generateRandomToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate invitation token: %w", err)
	}
	expires := s.now().Add(invitationTTL)

	created, err := s.users.Create(ctx, &user.User{
		Name:              name,
		Email:             email,
		Role:              parsedRole,
		IsActive:          false,
		InvitationToken:   &token,
		InvitationExpires: &expires,
	})
	if err != nil {
		if errors.Is(err, user.ErrDuplicateEmail) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("failed to create invited user: %w", err)
	}

	if err := s.mailer.SendInvitation(ctx, email, name, s.SetupURL(token)); err != nil {
		return created, fmt.Errorf("%w: %v", ErrEmailDelivery, err)
	}

	return created, nil
}

// SetupURL is the frontend link embedded in invitation emails
func (s *Service) SetupURL(token string) string {
	return s.frontendURL + setupPathPrefix + token
}

// VerifyInvitation looks up the invited user without consuming the token
func (s *Service) VerifyInvitation(ctx context.Context, token string) (*user.User, error) {
	if token == "" {
		return nil, ErrInvalidInvitation
	}

	u, err := s.users.GetByInvitationToken(ctx, token, s.now())
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrInvalidInvitation
		}
		return nil, fmt.Errorf("failed to verify invitation: %w", err)
	}

	return u, nil
}

// SetupPassword consumes an invitation, setting the password and activating the account
func (s *Service) SetupPassword(ctx context.Context, token, password string) error {
	if utf8.RuneCountInString(password) < minPasswordLen {
		return ErrPasswordTooShort
	}
	if token == "" {
		return ErrInvalidInvitation
	}

	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.users.ConsumeInvitation(ctx, token, passwordHash, s.now()); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return ErrInvalidInvitation
		}
		return fmt.Errorf("failed to set up password: %w", err)
	}

	return nil
}

func (s *Service) newSession(u *user.User) (*Session, error) {
	token, err := s.tokens.CreateToken(u.ID, s.tokenDuration)
	if err != nil {
		return nil, fmt.Errorf("failed to create token: %w", err)
	}
	return &Session{User: u, Token: token}, nil
}
