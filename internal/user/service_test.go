package user

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redmonkez12/advisory-cms/internal/logging"
)

type memStore struct {
	users map[uuid.UUID]*User
}

func (m *memStore) List(context.Context) ([]*User, error) {
	out := make([]*User, 0, len(m.users))
	for _, u := range m.users {
		c := *u
		out = append(out, &c)
	}
	return out, nil
}

func (m *memStore) GetByID(_ context.Context, id uuid.UUID) (*User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	c := *u
	return &c, nil
}

func (m *memStore) Create(_ context.Context, u *User) (*User, error) {
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return nil, ErrDuplicateEmail
		}
	}
	c := *u
	c.ID = uuid.New()
	m.users[c.ID] = &c
	out := c
	return &out, nil
}

func (m *memStore) Update(_ context.Context, u *User) (*User, error) {
	if _, ok := m.users[u.ID]; !ok {
		return nil, ErrNotFound
	}
	c := *u
	m.users[u.ID] = &c
	return u, nil
}

func (m *memStore) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.users[id]; !ok {
		return ErrNotFound
	}
	delete(m.users, id)
	return nil
}

type plainHasher struct{}

func (plainHasher) Hash(p string) (string, error) { return "hashed:" + p, nil }

type recordingMailer struct {
	err  error
	sent []string
}

func (r *recordingMailer) SendWelcome(_ context.Context, to, _ string) error {
	r.sent = append(r.sent, to)
	return r.err
}

func newTestService() (*Service, *memStore, *recordingMailer) {
	store := &memStore{users: make(map[uuid.UUID]*User)}
	mailer := &recordingMailer{}
	return NewService(store, plainHasher{}, mailer, logging.Discard()), store, mailer
}

func seed(store *memStore, role Role) *User {
	u, _ := store.Create(context.Background(), &User{
		Name:     string(role) + " user",
		Email:    uuid.NewString() + "@example.com",
		Role:     role,
		IsActive: true,
	})
	return u
}

func TestService_Create(t *testing.T) {
	svc, store, mailer := newTestService()
	super := seed(store, RoleSuperAdmin)
	admin := seed(store, RoleAdmin)
	ctx := context.Background()

	_, err := svc.Create(ctx, super, CreateInput{Name: "N", Email: "n@example.com"})
	assert.ErrorIs(t, err, ErrFieldsRequired)

	_, err = svc.Create(ctx, admin, CreateInput{Name: "N", Email: "n@example.com", Password: "pw", Role: "super_admin"})
	assert.ErrorIs(t, err, ErrSuperAdminCreateDenied)

	_, err = svc.Create(ctx, super, CreateInput{Name: "N", Email: "n@example.com", Password: "pw", Role: "root"})
	assert.ErrorIs(t, err, ErrInvalidRole)

	created, err := svc.Create(ctx, super, CreateInput{Name: "N", Email: " N@Example.com", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, created.Role)
	assert.Equal(t, "n@example.com", created.Email)
	assert.Equal(t, "hashed:pw", created.PasswordHash)
	assert.True(t, created.IsActive)
	assert.Equal(t, []string{"n@example.com"}, mailer.sent)

	_, err = svc.Create(ctx, super, CreateInput{Name: "N", Email: "n@example.com", Password: "pw"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestService_Create_WelcomeFailureIgnored(t *testing.T) {
	svc, store, mailer := newTestService()
	mailer.err = errors.New("smtp down")

	created, err := svc.Create(context.Background(), seed(store, RoleSuperAdmin), CreateInput{Name: "N", Email: "n@example.com", Password: "pw"})
	require.NoError(t, err)
	assert.NotNil(t, created)
}

func TestService_Update(t *testing.T) {
	svc, store, _ := newTestService()
	super := seed(store, RoleSuperAdmin)
	admin := seed(store, RoleAdmin)
	target := seed(store, RoleAdmin)
	ctx := context.Background()

	_, err := svc.Update(ctx, super, uuid.New(), UpdateInput{Name: "X"})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Update(ctx, admin, super.ID, UpdateInput{Name: "X"})
	assert.ErrorIs(t, err, ErrSuperAdminUpdateDenied)

	_, err = svc.Update(ctx, admin, target.ID, UpdateInput{Role: "super_admin"})
	assert.ErrorIs(t, err, ErrSuperAdminUpdateDenied)

	inactive := false
	updated, err := svc.Update(ctx, admin, target.ID, UpdateInput{Name: "Renamed", IsActive: &inactive, Role: "admin"})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.False(t, updated.IsActive)

	updated, err = svc.Update(ctx, super, target.ID, UpdateInput{Role: "super_admin"})
	require.NoError(t, err)
	assert.Equal(t, RoleSuperAdmin, updated.Role)
	assert.False(t, updated.IsActive, "omitted fields are unchanged")
}

func TestService_Delete(t *testing.T) {
	svc, store, _ := newTestService()
	super := seed(store, RoleSuperAdmin)
	admin := seed(store, RoleAdmin)
	target := seed(store, RoleAdmin)
	ctx := context.Background()

	assert.ErrorIs(t, svc.Delete(ctx, super, super.ID), ErrSelfDeletion)
	assert.ErrorIs(t, svc.Delete(ctx, admin, super.ID), ErrSuperAdminDeleteDenied)
	assert.ErrorIs(t, svc.Delete(ctx, super, uuid.New()), ErrNotFound)
	require.NoError(t, svc.Delete(ctx, super, target.ID))
	assert.NotContains(t, store.users, target.ID)
}

func TestHandler_DeleteSelf(t *testing.T) {
	svc, store, _ := newTestService()
	super := seed(store, RoleSuperAdmin)
	h := NewHandler(svc, false)

	r := chi.NewRouter()
	r.Delete("/users/{id}", h.Delete)
	r.Put("/users/{id}", h.Update)

	req := httptest.NewRequest(http.MethodDelete, "/users/"+super.ID.String(), nil)
	req = req.WithContext(NewContext(req.Context(), super))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "You cannot delete your own account.")

	req = httptest.NewRequest(http.MethodPut, "/users/not-a-uuid", strings.NewReader(`{}`))
	req = req.WithContext(NewContext(req.Context(), super))
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "User not found.")
}

func TestRole_AtLeast(t *testing.T) {
	assert.True(t, RoleSuperAdmin.AtLeast(RoleAdmin))
	assert.True(t, RoleAdmin.AtLeast(RoleAdmin))
	assert.False(t, RoleAdmin.AtLeast(RoleSuperAdmin))
	assert.False(t, Role("viewer").AtLeast(RoleAdmin))

	r, err := ParseRole("")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, r)
}
