package guard

import (
	"context"
	"testing"

	"ezzleads/internal/models"

	"github.com/stretchr/testify/assert"
)

func session(role models.Role, status models.Status) *models.Session {
	return &models.Session{User: models.SessionUser{ID: "u-" + string(role), Role: role, Status: status}}
}

func TestRequireAuth(t *testing.T) {
	s, d := RequireAuth(nil)
	assert.Nil(t, s)
	assert.False(t, d.Allowed())
	assert.Equal(t, PathLogin, d.Path)

	in := session(models.RoleBuyer, models.StatusActive)
	s, d = RequireAuth(in)
	assert.Same(t, in, s)
	assert.True(t, d.Allowed())
}

func TestRequireRoleRejectsManagerForAgentPage(t *testing.T) {
	s, d := RequireRole(session(models.RoleManager, models.StatusActive), models.RoleAgent)

	assert.Nil(t, s, "negative decision must not hand back a session")
	assert.Equal(t, RedirectTo(PathUnauthorized), d)
}

func TestRequireRole(t *testing.T) {
	cases := []struct {
		name    string
		s       *models.Session
		allowed []models.Role
		want    Decision
	}{
		{"no session", nil, []models.Role{models.RoleAgent}, RedirectTo(PathLogin)},
		{"allowed", session(models.RoleAgent, models.StatusActive), []models.Role{models.RoleAgent}, Allow()},
		{"one of many", session(models.RoleBuyer, models.StatusActive), []models.Role{models.RoleAgent, models.RoleBuyer}, Allow()},
		{"empty allowed set", session(models.RoleBuyer, models.StatusActive), nil, RedirectTo(PathUnauthorized)},
		{"jv partner", session(models.RoleJVPartner, models.StatusActive), []models.Role{models.RoleManager}, RedirectTo(PathUnauthorized)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s, d := RequireRole(c.s, c.allowed...)
			assert.Equal(t, c.want, d)
			if d.Allowed() {
				assert.Same(t, c.s, s)
			} else {
				assert.Nil(t, s)
			}
		})
	}
}

func TestCheckActiveStatus(t *testing.T) {
	for _, st := range []models.Status{models.StatusSuspended, models.StatusInactive, models.StatusPending} {
		s, d := CheckActiveStatus(session(models.RoleBuyer, st))
		assert.Nil(t, s)
		assert.Equal(t, PathSuspended, d.Path, "status %s", st)
	}

	_, d := CheckActiveStatus(nil)
	assert.Equal(t, PathLogin, d.Path)

	s, d := CheckActiveStatus(session(models.RoleBuyer, models.StatusActive))
	assert.NotNil(t, s)
	assert.True(t, d.Allowed())
}

func TestDashboardPath(t *testing.T) {
	assert.Equal(t, "/dashboard/buyer", DashboardPath(models.RoleBuyer))
	assert.Equal(t, "/dashboard/agent", DashboardPath(models.RoleAgent))
	assert.Equal(t, "/dashboard/manager", DashboardPath(models.RoleManager))
	assert.Equal(t, PathHome, DashboardPath(models.RoleJVPartner))
}

func TestSessionContext(t *testing.T) {
	ctx := context.Background()
	assert.Nil(t, GetSession(ctx))

	s := session(models.RoleAgent, models.StatusActive)
	assert.Same(t, s, GetSession(WithSession(ctx, s)))
}
