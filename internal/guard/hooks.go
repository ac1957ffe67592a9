package guard

import (
	"context"

	"ezzleads/internal/models"
)

// Status is the resolution state of a watched session.
type Status string

const (
	StatusLoading         Status = "loading"
	StatusAuthenticated   Status = "authenticated"
	StatusUnauthenticated Status = "unauthenticated"
)

// State is one observation of the session.
type State struct {
	Status  Status
	Session *models.Session
}

// Navigator moves the viewer to another page.
type Navigator interface {
	Navigate(path string)
}

type NavigatorFunc func(path string)

func (f NavigatorFunc) Navigate(path string) { f(path) }

// Hook re-evaluates its rule whenever the observed dependencies change and
// navigates when the rule yields a redirect. Identical consecutive
// observations are ignored.
type Hook struct {
	nav     Navigator
	deps    func(State) string
	rule    func(State) Decision
	seen    bool
	lastKey string
	last    State
}

// RequireAuthHook navigates to the login page once the session resolves to
// unauthenticated. Its only dependency is the status.
func RequireAuthHook(nav Navigator) *Hook {
	return &Hook{
		nav:  nav,
		deps: func(st State) string { return string(st.Status) },
		rule: func(st State) Decision {
			if st.Status == StatusUnauthenticated {
				return RedirectTo(PathLogin)
			}
			return Allow()
		},
	}
}

// RequireRoleHook navigates to the unauthorized page once the session is
// authenticated with a role outside allowed. It depends on status and user.
func RequireRoleHook(nav Navigator, allowed ...models.Role) *Hook {
	allowed = append([]models.Role(nil), allowed...)
	return &Hook{
		nav: nav,
		deps: func(st State) string {
			key := string(st.Status)
			if st.Session != nil {
				key += "|" + st.Session.User.ID + "|" + string(st.Session.User.Role)
			}
			return key
		},
		rule: func(st State) Decision {
			if st.Status != StatusAuthenticated || st.Session == nil {
				return Allow()
			}
			_, d := RequireRole(st.Session, allowed...)
			return d
		},
	}
}

// Observe feeds one state to the hook. It reports the path navigated to, if any.
func (h *Hook) Observe(st State) (string, bool) {
	key := h.deps(st)
	h.last = st
	if h.seen && key == h.lastKey {
		return "", false
	}
	h.seen, h.lastKey = true, key

	d := h.rule(st)
	if d.Allowed() {
		return "", false
	}
	h.nav.Navigate(d.Path)
	return d.Path, true
}

// Current returns the most recent state observed.
func (h *Hook) Current() State { return h.last }

// Run observes states until ctx is done or states is closed.
func (h *Hook) Run(ctx context.Context, states <-chan State) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case st, ok := <-states:
			if !ok {
				return nil
			}
			h.Observe(st)
		}
	}
}
