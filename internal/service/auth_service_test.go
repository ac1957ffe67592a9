package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"testing"
	"time"

	"ezzleads/internal/cache"
	"ezzleads/internal/models"
	"ezzleads/internal/repository/memory"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockMailer struct{ mock.Mock }

func (m *mockMailer) SendPasswordReset(ctx context.Context, to, link string) error {
	return m.Called(ctx, to, link).Error(0)
}

type authFixture struct {
	db     *memory.DB
	tokens *cache.Memory
	mailer *mockMailer
	svc    *AuthService
}

func newAuthFixture(t *testing.T) authFixture {
	t.Helper()
	db := memory.New()
	tokens := cache.NewMemory()
	mailer := &mockMailer{}
	svc := NewAuthService(db.Users(), db.Profiles(), tokens, mailer, AuthConfig{
		SessionSecret: "test-secret",
		SessionTTL:    time.Hour,
		ResetTokenTTL: time.Hour,
	}, zerolog.Nop())
	return authFixture{db: db, tokens: tokens, mailer: mailer, svc: svc}
}

func (f authFixture) signUp(t *testing.T, email string, role models.Role) *models.AuthUser {
	t.Helper()
	u, err := f.svc.SignUp(context.Background(), SignUpInput{
		Email: email, Password: "Abcdefg1", DisplayName: "Jane", Role: role,
	})
	require.NoError(t, err)
	return u
}

func TestSignUp_ProvisionsProfile(t *testing.T) {
	f := newAuthFixture(t)
	u := f.signUp(t, "Jane@Example.com", models.RoleAgent)

	assert.Equal(t, "jane@example.com", u.Email)
	p, err := f.db.Profiles().GetByID(context.Background(), u.ID)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, models.RoleAgent, p.Role)
	assert.Equal(t, models.StatusActive, p.Status)
	assert.Equal(t, "Jane", p.Name())
}

func TestSignUp_DuplicateEmail(t *testing.T) {
	f := newAuthFixture(t)
	f.signUp(t, "jane@example.com", models.RoleBuyer)

	_, err := f.svc.SignUp(context.Background(), SignUpInput{Email: "jane@example.com", Password: "Abcdefg1", Role: models.RoleBuyer})
	assert.ErrorIs(t, err, ErrEmailTaken)
	assert.Equal(t, "An account with this email already exists.", Message(err, "fallback"))
}

func TestSignUp_FailuresCarryUserMessages(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, err := f.svc.SignUp(ctx, SignUpInput{Email: "boss@example.com", Password: "Abcdefg1", Role: models.RoleManager})
	require.Error(t, err)
	assert.Equal(t, "Only buyer and agent accounts can sign up.", Message(err, "fallback"))

	_, err = f.svc.SignUp(ctx, SignUpInput{Email: "long@example.com", Password: "Aa1" + strings.Repeat("x", 80), Role: models.RoleBuyer})
	require.Error(t, err)
	assert.Equal(t, "Password must be at most 72 bytes.", Message(err, "fallback"))

	for _, email := range []string{"boss@example.com", "long@example.com"} {
		u, _, err := f.db.Users().GetByEmail(ctx, email)
		require.NoError(t, err)
		assert.Nil(t, u)
	}
}

func TestMessage_FallsBackForPlainErrors(t *testing.T) {
	assert.Equal(t, "fallback", Message(errors.New("boom"), "fallback"))
	assert.Equal(t, "fallback", Message(nil, "fallback"))
	wrapped := fmt.Errorf("outer: %w", &Error{Msg: "inner message"})
	assert.Equal(t, "inner message", Message(wrapped, "fallback"))
}

func TestSignIn(t *testing.T) {
	f := newAuthFixture(t)
	u := f.signUp(t, "jane@example.com", models.RoleBuyer)

	tok, s, err := f.svc.SignIn(context.Background(), "jane@example.com", "Abcdefg1")
	require.NoError(t, err)
	assert.Equal(t, u.ID, s.User.ID)
	assert.Equal(t, models.RoleBuyer, s.User.Role)
	assert.WithinDuration(t, time.Now().Add(time.Hour), s.ExpiresAt, time.Minute)

	parsed, err := f.svc.Session(tok)
	require.NoError(t, err)
	assert.Equal(t, s.User, parsed.User)

	_, _, err = f.svc.SignIn(context.Background(), "jane@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = f.svc.SignIn(context.Background(), "nobody@example.com", "Abcdefg1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestIssue_ReflectsProfileChanges(t *testing.T) {
	f := newAuthFixture(t)
	u := f.signUp(t, "jane@example.com", models.RoleBuyer)
	_, err := f.db.Profiles().UpdateStatus(context.Background(), u.ID, models.StatusSuspended)
	require.NoError(t, err)

	_, s, err := f.svc.Issue(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusSuspended, s.User.Status)

	_, _, err = f.svc.Issue(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrProfileMissing)
}

func TestNeedsRefresh(t *testing.T) {
	f := newAuthFixture(t)
	now := time.Now()
	assert.False(t, f.svc.NeedsRefresh(&models.Session{ExpiresAt: now.Add(50 * time.Minute)}, now))
	assert.True(t, f.svc.NeedsRefresh(&models.Session{ExpiresAt: now.Add(10 * time.Minute)}, now))
	assert.False(t, f.svc.NeedsRefresh(nil, now))
}

func TestResetPasswordFlow(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	f.signUp(t, "jane@example.com", models.RoleBuyer)

	var link string
	f.mailer.On("SendPasswordReset", mock.Anything, "jane@example.com", mock.Anything).
		Run(func(args mock.Arguments) { link = args.String(2) }).
		Return(nil).Once()

	require.NoError(t, f.svc.ResetPasswordForEmail(ctx, "jane@example.com", "http://localhost:8080/reset-password"))
	f.mailer.AssertExpectations(t)

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "/reset-password", u.Path)
	token := u.Query().Get("token")
	require.NotEmpty(t, token)

	require.NoError(t, f.svc.ResetPassword(ctx, token, "Newpass12"))
	_, _, err = f.svc.SignIn(ctx, "jane@example.com", "Newpass12")
	assert.NoError(t, err)

	assert.ErrorIs(t, f.svc.ResetPassword(ctx, token, "Another12"), ErrInvalidResetToken, "tokens are single use")
}

func TestResetPasswordForEmail_UnknownEmailSucceeds(t *testing.T) {
	f := newAuthFixture(t)
	require.NoError(t, f.svc.ResetPasswordForEmail(context.Background(), "ghost@example.com", "http://x/reset-password"))
	f.mailer.AssertNotCalled(t, "SendPasswordReset", mock.Anything, mock.Anything, mock.Anything)
}

func TestResetPassword_UnknownToken(t *testing.T) {
	f := newAuthFixture(t)
	assert.ErrorIs(t, f.svc.ResetPassword(context.Background(), "nope", "Abcdefg1"), ErrInvalidResetToken)
}

func TestReload(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	u := f.signUp(t, "jane@example.com", models.RoleAgent)
	_, s, err := f.svc.Issue(ctx, u.ID)
	require.NoError(t, err)

	_, err = f.db.Profiles().UpdateRole(ctx, u.ID, models.RoleBuyer)
	require.NoError(t, err)

	got, err := f.svc.Reload(ctx, s, time.Now())
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, models.RoleBuyer, got.User.Role)
	assert.Equal(t, s.ExpiresAt, got.ExpiresAt)

	got, err = f.svc.Reload(ctx, s, s.ExpiresAt.Add(time.Second))
	require.NoError(t, err)
	assert.Nil(t, got, "expired sessions resolve to nothing")
}
