package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/redmonkez12/advisory-cms/internal/logging"
	"github.com/redmonkez12/advisory-cms/internal/user"
)

// memStore is an in-memory UserStore mirroring the repository semantics
type memStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]*user.User
	err   error
}

func newMemStore() *memStore {
	return &memStore{users: make(map[uuid.UUID]*user.User)}
}

func (m *memStore) ExistsWithRole(_ context.Context, role user.Role) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	for _, u := range m.users {
		if u.Role == role {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) Create(_ context.Context, u *user.User) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	email := user.NormalizeEmail(u.Email)
	for _, existing := range m.users {
		if existing.Email == email {
			return nil, user.ErrDuplicateEmail
		}
	}
	c := *u
	c.ID = uuid.New()
	c.Email = email
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	m.users[c.ID] = &c
	out := c
	return &out, nil
}

func (m *memStore) GetByEmail(_ context.Context, email string) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	email = user.NormalizeEmail(email)
	for _, u := range m.users {
		if u.Email == email {
			c := *u
			return &c, nil
		}
	}
	return nil, user.ErrNotFound
}

func (m *memStore) GetByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	u, ok := m.users[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	c := *u
	return &c, nil
}

func (m *memStore) SetResetOTP(_ context.Context, id uuid.UUID, otp string, expiresAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return user.ErrNotFound
	}
	u.ResetPasswordOTP = &otp
	u.ResetPasswordExpires = &expiresAt
	return nil
}

func (m *memStore) ClearResetOTP(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		u.ResetPasswordOTP = nil
		u.ResetPasswordExpires = nil
	}
	return nil
}

func (m *memStore) ConsumeResetOTP(_ context.Context, email, otp, passwordHash string, now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	email = user.NormalizeEmail(email)
	for _, u := range m.users {
		if u.Email != email || u.ResetPasswordOTP == nil || *u.ResetPasswordOTP != otp {
			continue
		}
		if u.ResetPasswordExpires == nil || !u.ResetPasswordExpires.After(now) {
			continue
		}
		u.PasswordHash = passwordHash
		u.PasswordSetupComplete = true
		u.ResetPasswordOTP = nil
		u.ResetPasswordExpires = nil
		return nil
	}
	return user.ErrNotFound
}

func (m *memStore) GetByInvitationToken(_ context.Context, token string, now time.Time) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.InvitationToken != nil && *u.InvitationToken == token && u.InvitationExpires.After(now) {
			c := *u
			return &c, nil
		}
	}
	return nil, user.ErrNotFound
}

func (m *memStore) ConsumeInvitation(_ context.Context, token, passwordHash string, now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.InvitationToken != nil && *u.InvitationToken == token && u.InvitationExpires.After(now) {
			u.PasswordHash = passwordHash
			u.PasswordSetupComplete = true
			u.IsActive = true
			u.InvitationToken = nil
			u.InvitationExpires = nil
			return nil
		}
	}
	return user.ErrNotFound
}

func (m *memStore) get(id uuid.UUID) *user.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := *m.users[id]
	return &c
}

type sentMail struct {
	to, otp, name, url string
}

type fakeMailer struct {
	mu          sync.Mutex
	err         error
	otps        []sentMail
	invitations []sentMail
}

func (f *fakeMailer) SendOTP(_ context.Context, to, otp string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.otps = append(f.otps, sentMail{to: to, otp: otp})
	return nil
}

func (f *fakeMailer) SendInvitation(_ context.Context, to, name, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.invitations = append(f.invitations, sentMail{to: to, name: name, url: url})
	return nil
}

type staticBot bool

func (b staticBot) Verify(context.Context, string) bool { return bool(b) }

var errSMTPDown = errors.New("smtp down")

// testHasher keeps argon2 cheap in tests
func testHasher() *Argon2Hasher {
	return &Argon2Hasher{time: 1, memory: 1024, threads: 1}
}

type testEnv struct {
	store   *memStore
	mailer  *fakeMailer
	tokens  *JWTService
	service *Service
}

func newTestEnv(botPasses bool) *testEnv {
	store := newMemStore()
	mailer := &fakeMailer{}
	tokens, _ := NewJWTService([]byte("test-secret-test-secret-test-secret"), "test")
	svc := NewService(store, tokens, testHasher(), mailer, staticBot(botPasses), logging.Discard(), time.Hour, "http://localhost:5173/")
	return &testEnv{store: store, mailer: mailer, tokens: tokens, service: svc}
}

// seedUser inserts an account with the given password and role
func (e *testEnv) seedUser(email, password string, role user.Role, active bool) *user.User {
	hash := ""
	if password != "" {
		hash, _ = testHasher().Hash(password)
	}
	u, _ := e.store.Create(context.Background(), &user.User{
		Name:         "Test User",
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		IsActive:     active,
	})
	return u
}
