package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"ezzleads/internal/cache"
	"ezzleads/internal/metrics"
	"ezzleads/internal/models"
	"ezzleads/internal/repository"
	"ezzleads/internal/utils"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidResetToken  = errors.New("reset token is invalid or has expired")
	ErrProfileMissing     = errors.New("profile not found")
)

const resetKeyPrefix = "reset:"

type AuthConfig struct {
	SessionSecret string
	SessionTTL    time.Duration
	ResetTokenTTL time.Duration
}

// AuthService is the session provider: it owns credentials and issues
// signed session tokens describing the caller's profile.
type AuthService struct {
	users    repository.UserRepository
	profiles repository.ProfileRepository
	tokens   cache.Store
	mailer   Mailer
	cfg      AuthConfig
	metrics  *metrics.Metrics
	log      zerolog.Logger
}

func NewAuthService(
	users repository.UserRepository,
	profiles repository.ProfileRepository,
	tokens cache.Store,
	mailer Mailer,
	cfg AuthConfig,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		users:    users,
		profiles: profiles,
		tokens:   tokens,
		mailer:   mailer,
		cfg:      cfg,
		metrics:  metrics.Default(),
		log:      log.With().Str("component", "auth").Logger(),
	}
}

type SignUpInput struct {
	Email       string
	Password    string
	DisplayName string
	Role        models.Role
}

// SignUp creates the credential record. The profile row is created by the
// database trigger from the display_name and role metadata.
func (a *AuthService) SignUp(ctx context.Context, in SignUpInput) (*models.AuthUser, error) {
	if in.Role != models.RoleBuyer && in.Role != models.RoleAgent {
		a.event("sign_up", "invalid")
		return nil, &Error{Msg: "Only buyer and agent accounts can sign up."}
	}
	hash, err := utils.HashPassword(in.Password)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		a.event("sign_up", "invalid")
		return nil, &Error{Msg: "Password must be at most 72 bytes.", Err: err}
	}
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u, err := a.users.Create(ctx, normalizeEmail(in.Email), hash, map[string]any{
		"display_name": in.DisplayName,
		"role":         string(in.Role),
	})
	if errors.Is(err, repository.ErrDuplicate) {
		a.event("sign_up", "duplicate")
		return nil, &Error{Msg: "An account with this email already exists.", Err: ErrEmailTaken}
	}
	if err != nil {
		a.event("sign_up", "error")
		return nil, &Error{Msg: "Unable to create your account right now. Please try again.", Err: fmt.Errorf("create user: %w", err)}
	}
	a.event("sign_up", "ok")
	a.log.Info().Str("user_id", u.ID).Str("role", string(in.Role)).Msg("user signed up")
	return u, nil
}

// SignIn verifies credentials and returns a session token.
func (a *AuthService) SignIn(ctx context.Context, email, password string) (string, *models.Session, error) {
	u, hash, err := a.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return "", nil, fmt.Errorf("load user: %w", err)
	}
	if u == nil || !utils.CheckPassword(hash, password) {
		a.event("sign_in", "denied")
		return "", nil, ErrInvalidCredentials
	}
	tok, s, err := a.Issue(ctx, u.ID)
	if err != nil {
		a.event("sign_in", "error")
		return "", nil, err
	}
	a.event("sign_in", "ok")
	return tok, s, nil
}

// Issue signs a fresh token from the user's current profile.
func (a *AuthService) Issue(ctx context.Context, userID string) (string, *models.Session, error) {
	p, err := a.profiles.GetByID(ctx, userID)
	if err != nil {
		return "", nil, fmt.Errorf("load profile: %w", err)
	}
	if p == nil {
		return "", nil, ErrProfileMissing
	}
	s := models.SessionFromProfile(*p, time.Time{})
	tok, exp, err := utils.SignJWT(a.cfg.SessionSecret, s.User, a.cfg.SessionTTL)
	if err != nil {
		return "", nil, fmt.Errorf("sign session: %w", err)
	}
	s.ExpiresAt = exp
	return tok, s, nil
}

// Session verifies token and returns the session it carries.
func (a *AuthService) Session(token string) (*models.Session, error) {
	c, err := utils.ParseJWT(a.cfg.SessionSecret, token)
	if err != nil {
		return nil, err
	}
	return c.Session(), nil
}

// Reload re-reads the profile behind s so role and status changes show up
// before the token is reissued. It returns nil once s has expired or the
// profile is gone.
func (a *AuthService) Reload(ctx context.Context, s *models.Session, now time.Time) (*models.Session, error) {
	if s == nil || !now.Before(s.ExpiresAt) {
		return nil, nil
	}
	p, err := a.profiles.GetByID(ctx, s.User.ID)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	if p == nil {
		return nil, nil
	}
	return models.SessionFromProfile(*p, s.ExpiresAt), nil
}

// NeedsRefresh reports whether s is inside the last quarter of its lifetime.
func (a *AuthService) NeedsRefresh(s *models.Session, now time.Time) bool {
	return s != nil && s.ExpiresAt.Sub(now) < a.cfg.SessionTTL/4
}

// ResetPasswordForEmail mails a single-use reset link pointing at redirectTo.
// Unknown addresses succeed silently.
func (a *AuthService) ResetPasswordForEmail(ctx context.Context, email, redirectTo string) error {
	email = normalizeEmail(email)
	u, _, err := a.users.GetByEmail(ctx, email)
	if err != nil {
		a.event("reset_request", "error")
		return fmt.Errorf("load user: %w", err)
	}
	if u == nil {
		a.log.Debug().Msg("reset requested for unknown email")
		a.event("reset_request", "unknown")
		return nil
	}

	token := uuid.NewString()
	if err := a.tokens.SetJSON(ctx, resetKeyPrefix+token, resetGrant{UserID: u.ID}, a.cfg.ResetTokenTTL); err != nil {
		a.event("reset_request", "error")
		return fmt.Errorf("store reset token: %w", err)
	}
	link, err := resetLink(redirectTo, token)
	if err != nil {
		return err
	}
	if err := a.mailer.SendPasswordReset(ctx, u.Email, link); err != nil {
		a.event("reset_request", "error")
		return fmt.Errorf("send reset email: %w", err)
	}
	a.event("reset_request", "ok")
	return nil
}

// ResetPassword consumes token and sets a new password.
func (a *AuthService) ResetPassword(ctx context.Context, token, password string) error {
	var g resetGrant
	ok, err := a.tokens.TakeJSON(ctx, resetKeyPrefix+token, &g)
	if err != nil {
		return fmt.Errorf("load reset token: %w", err)
	}
	if !ok || g.UserID == "" {
		a.event("reset", "invalid_token")
		return ErrInvalidResetToken
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := a.users.UpdatePasswordHash(ctx, g.UserID, hash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	a.event("reset", "ok")
	a.log.Info().Str("user_id", g.UserID).Msg("password reset")
	return nil
}

type resetGrant struct {
	UserID string `json:"userId"`
}

func resetLink(redirectTo, token string) (string, error) {
	u, err := url.Parse(redirectTo)
	if err != nil {
		return "", fmt.Errorf("parse redirect: %w", err)
	}
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (a *AuthService) event(name, outcome string) {
	a.metrics.AuthEvents.WithLabelValues(name, outcome).Inc()
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
