package guard

import (
	"context"
	"testing"
	"time"

	"ezzleads/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct{ paths []string }

func (r *recorder) Navigate(path string) { r.paths = append(r.paths, path) }

func TestRequireAuthHookNavigatesOnceWhenUnauthenticated(t *testing.T) {
	nav := &recorder{}
	h := RequireAuthHook(nav)

	h.Observe(State{Status: StatusLoading})
	for i := 0; i < 5; i++ {
		h.Observe(State{Status: StatusUnauthenticated})
	}

	assert.Equal(t, []string{PathLogin}, nav.paths)
	assert.Equal(t, StatusUnauthenticated, h.Current().Status)
}

func TestRequireAuthHookIgnoresAuthenticatedAndLoading(t *testing.T) {
	nav := &recorder{}
	h := RequireAuthHook(nav)

	h.Observe(State{Status: StatusLoading})
	h.Observe(State{Status: StatusAuthenticated, Session: session(models.RoleBuyer, models.StatusActive)})
	h.Observe(State{Status: StatusLoading})

	assert.Empty(t, nav.paths)
}

func TestRequireAuthHookNavigatesAgainAfterNewTransition(t *testing.T) {
	nav := &recorder{}
	h := RequireAuthHook(nav)

	h.Observe(State{Status: StatusUnauthenticated})
	h.Observe(State{Status: StatusAuthenticated, Session: session(models.RoleBuyer, models.StatusActive)})
	h.Observe(State{Status: StatusUnauthenticated})

	assert.Equal(t, []string{PathLogin, PathLogin}, nav.paths)
}

func TestRequireRoleHookNavigatesOnceAfterAuthResolves(t *testing.T) {
	nav := &recorder{}
	h := RequireRoleHook(nav, models.RoleAgent)
	mgr := session(models.RoleManager, models.StatusActive)

	path, ok := h.Observe(State{Status: StatusLoading})
	assert.False(t, ok)
	assert.Empty(t, path)

	path, ok = h.Observe(State{Status: StatusAuthenticated, Session: mgr})
	assert.True(t, ok)
	assert.Equal(t, PathUnauthorized, path)

	// Refetched session with the same identity does not re-trigger.
	h.Observe(State{Status: StatusAuthenticated, Session: session(models.RoleManager, models.StatusActive)})
	h.Observe(State{Status: StatusAuthenticated, Session: mgr})

	assert.Equal(t, []string{PathUnauthorized}, nav.paths)
}

func TestRequireRoleHookAllowsMatchingRoleAndIgnoresUnauthenticated(t *testing.T) {
	nav := &recorder{}
	h := RequireRoleHook(nav, models.RoleAgent, models.RoleManager)

	h.Observe(State{Status: StatusUnauthenticated})
	h.Observe(State{Status: StatusAuthenticated, Session: session(models.RoleAgent, models.StatusActive)})

	assert.Empty(t, nav.paths)
}

func TestRequireRoleHookCopiesAllowedRoles(t *testing.T) {
	nav := &recorder{}
	allowed := []models.Role{models.RoleAgent}
	h := RequireRoleHook(nav, allowed...)
	allowed[0] = models.RoleManager

	h.Observe(State{Status: StatusAuthenticated, Session: session(models.RoleManager, models.StatusActive)})
	assert.Equal(t, []string{PathUnauthorized}, nav.paths)
}

func TestHookRunDrainsChannel(t *testing.T) {
	var got []string
	h := RequireAuthHook(NavigatorFunc(func(p string) { got = append(got, p) }))

	states := make(chan State, 3)
	states <- State{Status: StatusLoading}
	states <- State{Status: StatusUnauthenticated}
	states <- State{Status: StatusUnauthenticated}
	close(states)

	require.NoError(t, h.Run(context.Background(), states))
	assert.Equal(t, []string{PathLogin}, got)
}

func TestHookRunStopsOnContext(t *testing.T) {
	h := RequireAuthHook(NavigatorFunc(func(string) {}))
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := h.Run(ctx, make(chan State))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
