// Package guard holds the role and status checks that gate pages and API
// routes. Checks never perform I/O: they inspect a session and return a
// Decision, and the transport layer carries out the redirect.
package guard

import (
	"context"
	"slices"

	"ezzleads/internal/models"
)

const (
	PathHome         = "/"
	PathLogin        = "/login"
	PathUnauthorized = "/unauthorized"
	PathSuspended    = "/account-suspended"
)

// Decision is either Allowed or a redirect to Path.
type Decision struct {
	Path string
}

func Allow() Decision { return Decision{} }

func RedirectTo(path string) Decision { return Decision{Path: path} }

func (d Decision) Allowed() bool { return d.Path == "" }

type ctxKey struct{}

// WithSession returns ctx carrying s.
func WithSession(ctx context.Context, s *models.Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// GetSession returns the current session or nil.
func GetSession(ctx context.Context) *models.Session {
	s, _ := ctx.Value(ctxKey{}).(*models.Session)
	return s
}

// RequireAuth returns s, or a redirect to the login page when there is none.
func RequireAuth(s *models.Session) (*models.Session, Decision) {
	if s == nil {
		return nil, RedirectTo(PathLogin)
	}
	return s, Allow()
}

// RequireRole applies RequireAuth and then checks role membership.
func RequireRole(s *models.Session, allowed ...models.Role) (*models.Session, Decision) {
	s, d := RequireAuth(s)
	if !d.Allowed() {
		return nil, d
	}
	if !slices.Contains(allowed, s.User.Role) {
		return nil, RedirectTo(PathUnauthorized)
	}
	return s, Allow()
}

// CheckActiveStatus applies RequireAuth and then requires status "active".
func CheckActiveStatus(s *models.Session) (*models.Session, Decision) {
	s, d := RequireAuth(s)
	if !d.Allowed() {
		return nil, d
	}
	if s.User.Status != models.StatusActive {
		return nil, RedirectTo(PathSuspended)
	}
	return s, Allow()
}

// DashboardPath is the landing page for role.
func DashboardPath(role models.Role) string {
	switch role {
	case models.RoleBuyer:
		return "/dashboard/buyer"
	case models.RoleAgent:
		return "/dashboard/agent"
	case models.RoleManager:
		return "/dashboard/manager"
	default:
		return PathHome
	}
}
