package auth

import (
	"context"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redmonkez12/advisory-cms/internal/user"
)

func TestSetup_CreatesFirstSuperAdminOnce(t *testing.T) {
	env := newTestEnv(true)
	ctx := context.Background()

	required, err := env.service.SetupRequired(ctx)
	require.NoError(t, err)
	assert.True(t, required)

	session, err := env.service.Setup(ctx, "Root", " Root@Example.com ", "secret")
	require.NoError(t, err)
	assert.Equal(t, user.RoleSuperAdmin, session.User.Role)
	assert.Equal(t, "root@example.com", session.User.Email)
	assert.True(t, session.User.IsActive)
	assert.NotEmpty(t, session.Token)

	claims, err := env.tokens.VerifyToken(session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.User.ID.String(), claims.UserID)

	required, err = env.service.SetupRequired(ctx)
	require.NoError(t, err)
	assert.False(t, required)

	_, err = env.service.Setup(ctx, "Second", "second@example.com", "secret")
	assert.ErrorIs(t, err, ErrSetupComplete)
}

func TestSetup_RequiresAllFields(t *testing.T) {
	env := newTestEnv(true)

	_, err := env.service.Setup(context.Background(), "Root", "", "secret")
	assert.ErrorIs(t, err, ErrSetupFieldsRequired)
}

func TestLogin(t *testing.T) {
	env := newTestEnv(true)
	active := env.seedUser("admin@example.com", "correct-horse", user.RoleAdmin, true)
	env.seedUser("inactive@example.com", "correct-horse", user.RoleAdmin, false)
	env.seedUser("invited@example.com", "", user.RoleAdmin, true)

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{name: "missing email", email: "", password: "x", wantErr: ErrCredentialsRequired},
		{name: "missing password", email: "admin@example.com", password: "", wantErr: ErrCredentialsRequired},
		{name: "unknown user", email: "nobody@example.com", password: "x", wantErr: ErrInvalidCredentials},
		{name: "wrong password", email: "admin@example.com", password: "wrong", wantErr: ErrInvalidCredentials},
		{name: "inactive account", email: "inactive@example.com", password: "correct-horse", wantErr: ErrAccountInactive},
		{name: "no password set", email: "invited@example.com", password: "anything", wantErr: ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.service.Login(context.Background(), tt.email, tt.password, "token")
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("success with mixed case email", func(t *testing.T) {
		session, err := env.service.Login(context.Background(), "ADMIN@example.com", "correct-horse", "token")
		require.NoError(t, err)
		assert.Equal(t, active.ID, session.User.ID)
		assert.NotEmpty(t, session.Token)
	})
}

func TestLogin_BotCheckRunsFirst(t *testing.T) {
	env := newTestEnv(false)

	_, err := env.service.Login(context.Background(), "", "", "")
	assert.ErrorIs(t, err, ErrSecurityCheckFailed)
}

func TestAuthenticate(t *testing.T) {
	env := newTestEnv(true)
	active := env.seedUser("admin@example.com", "pw", user.RoleAdmin, true)
	inactive := env.seedUser("off@example.com", "pw", user.RoleAdmin, false)

	token, err := env.tokens.CreateToken(active.ID, time.Hour)
	require.NoError(t, err)
	u, err := env.service.Authenticate(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, active.ID, u.ID)

	token, _ = env.tokens.CreateToken(inactive.ID, time.Hour)
	_, err = env.service.Authenticate(context.Background(), token)
	assert.ErrorIs(t, err, ErrAccountInactive)

	token, _ = env.tokens.CreateToken(active.ID, -time.Minute)
	_, err = env.service.Authenticate(context.Background(), token)
	assert.ErrorIs(t, err, ErrExpiredToken)

	_, err = env.service.Authenticate(context.Background(), "garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthenticate_DeletedUser(t *testing.T) {
	env := newTestEnv(true)
	u := env.seedUser("gone@example.com", "pw", user.RoleAdmin, true)
	token, _ := env.tokens.CreateToken(u.ID, time.Hour)

	env.store.mu.Lock()
	delete(env.store.users, u.ID)
	env.store.mu.Unlock()

	_, err := env.service.Authenticate(context.Background(), token)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestForgotAndResetPassword(t *testing.T) {
	env := newTestEnv(true)
	ctx := context.Background()
	u := env.seedUser("admin@example.com", "old-password", user.RoleAdmin, true)

	assert.ErrorIs(t, env.service.ForgotPassword(ctx, ""), ErrEmailRequired)
	assert.ErrorIs(t, env.service.ForgotPassword(ctx, "nobody@example.com"), ErrUserNotFound)

	require.NoError(t, env.service.ForgotPassword(ctx, "admin@example.com"))
	require.Len(t, env.mailer.otps, 1)
	otp := env.mailer.otps[0].otp
	assert.Len(t, otp, 6)
	n, err := strconv.Atoi(otp)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, n, 100000)
	assert.LessOrEqual(t, n, 999999)

	stored := env.store.get(u.ID)
	require.NotNil(t, stored.ResetPasswordExpires)
	assert.WithinDuration(t, time.Now().Add(otpTTL), *stored.ResetPasswordExpires, time.Minute)

	assert.ErrorIs(t, env.service.ResetPassword(ctx, "admin@example.com", "", "new"), ErrResetFieldsRequired)
	assert.ErrorIs(t, env.service.ResetPassword(ctx, "admin@example.com", wrongOTP(otp), "new"), ErrInvalidOTP)

	require.NoError(t, env.service.ResetPassword(ctx, "admin@example.com", otp, "new-password"))

	// The code is single use
	assert.ErrorIs(t, env.service.ResetPassword(ctx, "admin@example.com", otp, "again"), ErrInvalidOTP)

	_, err = env.service.Login(ctx, "admin@example.com", "old-password", "t")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = env.service.Login(ctx, "admin@example.com", "new-password", "t")
	assert.NoError(t, err)
	assert.True(t, env.store.get(u.ID).PasswordSetupComplete)
}

func TestForgotPassword_RollsBackOnMailFailure(t *testing.T) {
	env := newTestEnv(true)
	u := env.seedUser("admin@example.com", "pw", user.RoleAdmin, true)
	env.mailer.err = errSMTPDown

	err := env.service.ForgotPassword(context.Background(), "admin@example.com")
	assert.ErrorIs(t, err, ErrEmailDelivery)

	stored := env.store.get(u.ID)
	assert.Nil(t, stored.ResetPasswordOTP)
	assert.Nil(t, stored.ResetPasswordExpires)
}

func TestResetPassword_ExpiredCode(t *testing.T) {
	env := newTestEnv(true)
	ctx := context.Background()
	env.seedUser("admin@example.com", "pw", user.RoleAdmin, true)

	require.NoError(t, env.service.ForgotPassword(ctx, "admin@example.com"))
	otp := env.mailer.otps[0].otp

	env.service.now = func() time.Time { return time.Now().Add(otpTTL + time.Second) }
	assert.ErrorIs(t, env.service.ResetPassword(ctx, "admin@example.com", otp, "new"), ErrInvalidOTP)
}

func TestInviteAndSetupPassword(t *testing.T) {
	env := newTestEnv(true)
	ctx := context.Background()

	invited, err := env.service.Invite(ctx, "New Admin", "New@Example.com", "")
	require.NoError(t, err)
	assert.Equal(t, user.RoleAdmin, invited.Role)
	assert.False(t, invited.IsActive)
	require.NotNil(t, invited.InvitationToken)
	token := *invited.InvitationToken
	assert.Len(t, token, 64)

	require.Len(t, env.mailer.invitations, 1)
	assert.Equal(t, "http://localhost:5173/setup-password/"+token, env.mailer.invitations[0].url)

	found, err := env.service.VerifyInvitation(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", found.Email)

	assert.ErrorIs(t, env.service.SetupPassword(ctx, token, "12345"), ErrPasswordTooShort)
	require.NoError(t, env.service.SetupPassword(ctx, token, "123456"))

	stored := env.store.get(invited.ID)
	assert.True(t, stored.IsActive)
	assert.True(t, stored.PasswordSetupComplete)
	assert.Nil(t, stored.InvitationToken)

	// Token cannot be replayed
	assert.ErrorIs(t, env.service.SetupPassword(ctx, token, "654321"), ErrInvalidInvitation)
	_, err = env.service.VerifyInvitation(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidInvitation)

	_, err = env.service.Login(ctx, "new@example.com", "123456", "t")
	assert.NoError(t, err)
}

func TestSetupPassword_CountsCharacters(t *testing.T) {
	env := newTestEnv(true)
	ctx := context.Background()

	invited, err := env.service.Invite(ctx, "Accented", "accented@example.com", "")
	require.NoError(t, err)
	token := *invited.InvitationToken

	// six bytes but three characters
	assert.ErrorIs(t, env.service.SetupPassword(ctx, token, "ééé"), ErrPasswordTooShort)
	assert.False(t, env.store.get(invited.ID).IsActive)

	require.NoError(t, env.service.SetupPassword(ctx, token, "éééééé"))
	assert.True(t, env.store.get(invited.ID).IsActive)
}

func TestInvite_Rejections(t *testing.T) {
	env := newTestEnv(true)
	ctx := context.Background()
	env.seedUser("taken@example.com", "pw", user.RoleAdmin, true)

	_, err := env.service.Invite(ctx, "Name", "taken@example.com", "admin")
	assert.ErrorIs(t, err, ErrUserExists)
	assert.Empty(t, env.mailer.invitations)

	_, err = env.service.Invite(ctx, "Name", "", "admin")
	assert.ErrorIs(t, err, ErrInviteFieldsRequired)

	_, err = env.service.Invite(ctx, "Name", "x@example.com", "owner")
	assert.ErrorIs(t, err, user.ErrInvalidRole)
}

func TestInvite_KeepsUserWhenMailFails(t *testing.T) {
	env := newTestEnv(true)
	env.mailer.err = errSMTPDown

	invited, err := env.service.Invite(context.Background(), "Name", "x@example.com", "super_admin")
	assert.ErrorIs(t, err, ErrEmailDelivery)
	require.NotNil(t, invited)

	stored := env.store.get(invited.ID)
	assert.Equal(t, user.RoleSuperAdmin, stored.Role)
	assert.NotNil(t, stored.InvitationToken)
}

func TestVerifyInvitation_Expired(t *testing.T) {
	env := newTestEnv(true)
	ctx := context.Background()

	invited, err := env.service.Invite(ctx, "Name", "x@example.com", "")
	require.NoError(t, err)

	env.service.now = func() time.Time { return time.Now().Add(invitationTTL + time.Hour) }
	_, err = env.service.VerifyInvitation(ctx, *invited.InvitationToken)
	assert.ErrorIs(t, err, ErrInvalidInvitation)
}

func TestGenerateOTP_Range(t *testing.T) {
	for i := 0; i < 200; i++ {
		otp, err := generateOTP()
		require.NoError(t, err)
		require.Len(t, otp, 6)
		assert.False(t, strings.HasPrefix(otp, "0"))
	}
}

func TestArgon2Hasher(t *testing.T) {
	h := testHasher()

	hash, err := h.Hash("password")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$"))
	assert.True(t, h.Verify(hash, "password"))
	assert.False(t, h.Verify(hash, "Password"))
	assert.False(t, h.Verify("not-a-hash", "password"))

	other, err := h.Hash("password")
	require.NoError(t, err)
	assert.NotEqual(t, hash, other, "salts must differ")
}

func wrongOTP(otp string) string {
	if otp == "123456" {
		return "654321"
	}
	return "123456"
}
