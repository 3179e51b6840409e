package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redmonkez12/advisory-cms/internal/user"
)

func newTestRouter(env *testEnv) http.Handler {
	h := NewHandler(env.service, true)
	m := NewMiddleware(env.service)

	r := chi.NewRouter()
	r.Post("/auth/setup", h.Setup)
	r.Get("/auth/setup-status", h.SetupStatus)
	r.Post("/auth/login", h.Login)
	r.Post("/auth/forgot-password", h.ForgotPassword)
	r.Post("/auth/reset-password", h.ResetPassword)
	r.With(m.Authenticate).Get("/auth/me", h.Me)
	r.With(m.Authenticate, m.RequireSuperAdmin).Post("/invitation/invite", h.Invite)
	r.Get("/invitation/verify/{token}", h.VerifyInvitation)
	r.Post("/invitation/setup/{token}", h.SetupPassword)
	return r
}

func do(t *testing.T, h http.Handler, method, path, body, token string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return rec, out
}

func TestHandler_SetupThenLoginThenMe(t *testing.T) {
	env := newTestEnv(true)
	router := newTestRouter(env)

	rec, body := do(t, router, http.MethodGet, "/auth/setup-status", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["data"].(map[string]any)["setupRequired"])

	rec, body = do(t, router, http.MethodPost, "/auth/setup", `{"name":"Root","email":"root@example.com"}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Please provide name, email, and password.", body["message"])

	rec, body = do(t, router, http.MethodPost, "/auth/setup", `{"name":"Root","email":"root@example.com","password":"pw"}`, "")
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Super admin created successfully.", body["message"])
	data := body["data"].(map[string]any)
	assert.NotEmpty(t, data["token"])
	created := data["user"].(map[string]any)
	assert.Equal(t, "super_admin", created["role"])
	assert.NotContains(t, created, "passwordHash")
	assert.NotContains(t, created, "PasswordHash")

	rec, body = do(t, router, http.MethodPost, "/auth/setup", `{"name":"X","email":"x@example.com","password":"pw"}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Super admin already exists. Please login instead.", body["message"])

	rec, body = do(t, router, http.MethodPost, "/auth/login", `{"email":"root@example.com","password":"nope"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid credentials.", body["message"])

	rec, body = do(t, router, http.MethodPost, "/auth/login", `{"email":"root@example.com","password":"pw","turnstileToken":"t"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Login successful.", body["message"])
	token := body["data"].(map[string]any)["token"].(string)

	rec, body = do(t, router, http.MethodGet, "/auth/me", "", token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "root@example.com", body["data"].(map[string]any)["email"])

	rec, body = do(t, router, http.MethodGet, "/auth/me", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "No token provided. Authorization denied.", body["message"])
}

func TestHandler_LoginMessages(t *testing.T) {
	env := newTestEnv(true)
	env.seedUser("off@example.com", "pw", user.RoleAdmin, false)
	router := newTestRouter(env)

	rec, body := do(t, router, http.MethodPost, "/auth/login", ``, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Please provide email and password.", body["message"])

	rec, body = do(t, router, http.MethodPost, "/auth/login", `{"email":"off@example.com","password":"pw"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Account is inactive. Please contact administrator.", body["message"])

	rec, body = do(t, router, http.MethodPost, "/auth/login", `{not json`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_REQUEST_BODY", body["code"])

	blocked := newTestRouter(newTestEnv(false))
	rec, body = do(t, blocked, http.MethodPost, "/auth/login", `{"email":"a@b.c","password":"pw"}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Security check failed. Please refresh and try again.", body["message"])
}

func TestHandler_ForgotPassword(t *testing.T) {
	env := newTestEnv(true)
	env.seedUser("admin@example.com", "pw", user.RoleAdmin, true)
	router := newTestRouter(env)

	rec, body := do(t, router, http.MethodPost, "/auth/forgot-password", `{}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Please provide email.", body["message"])

	rec, body = do(t, router, http.MethodPost, "/auth/forgot-password", `{"email":"nobody@example.com"}`, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "User with this email does not exist.", body["message"])

	rec, body = do(t, router, http.MethodPost, "/auth/forgot-password", `{"email":"admin@example.com"}`, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OTP sent to your email.", body["message"])

	rec, body = do(t, router, http.MethodPost, "/auth/reset-password", `{"email":"admin@example.com","otp":"000000","password":"x"}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid or expired OTP.", body["message"])

	otp := env.mailer.otps[0].otp
	rec, body = do(t, router, http.MethodPost, "/auth/reset-password", `{"email":"admin@example.com","otp":"`+otp+`","password":"x"}`, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Password reset successfully. You can now login.", body["message"])

	env.mailer.err = errSMTPDown
	rec, body = do(t, router, http.MethodPost, "/auth/forgot-password", `{"email":"admin@example.com"}`, "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Error sending email. Please try again.", body["message"])
}

func TestHandler_InvitationFlow(t *testing.T) {
	env := newTestEnv(true)
	env.seedUser("taken@example.com", "pw", user.RoleAdmin, true)
	router := newTestRouter(env)

	session, err := env.service.Setup(t.Context(), "Root", "root@example.com", "pw")
	require.NoError(t, err)
	admin := env.seedUser("admin@example.com", "pw", user.RoleAdmin, true)
	adminToken, _ := env.tokens.CreateToken(admin.ID, time.Hour)

	rec, _ := do(t, router, http.MethodPost, "/invitation/invite", `{"name":"N","email":"n@example.com"}`, adminToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, body := do(t, router, http.MethodPost, "/invitation/invite", `{"name":"N","email":"taken@example.com"}`, session.Token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "User with this email already exists", body["message"])

	rec, body = do(t, router, http.MethodPost, "/invitation/invite", `{"name":"N","email":"n@example.com"}`, session.Token)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Invitation sent successfully", body["message"])
	assert.Equal(t, "admin", body["data"].(map[string]any)["role"])

	url := env.mailer.invitations[0].url
	token := url[strings.LastIndex(url, "/")+1:]

	rec, body = do(t, router, http.MethodGet, "/invitation/verify/"+token, "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "n@example.com", body["data"].(map[string]any)["email"])

	rec, body = do(t, router, http.MethodPost, "/invitation/setup/"+token, `{"password":"123"}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Password must be at least 6 characters", body["message"])

	rec, _ = do(t, router, http.MethodPost, "/invitation/setup/"+token, `{"password":"123456"}`, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, body = do(t, router, http.MethodGet, "/invitation/verify/"+token, "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid or expired invitation token", body["message"])
}
