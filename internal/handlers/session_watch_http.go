package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"ezzleads/internal/guard"
	"ezzleads/internal/models"
	"ezzleads/internal/utils"

	"github.com/rs/zerolog"
)

// SessionReloader re-resolves a session against the current profile.
type SessionReloader interface {
	Reload(ctx context.Context, s *models.Session, now time.Time) (*models.Session, error)
}

// SessionWatch streams session state to the browser as server-sent events
// and tells it where to go when the session stops qualifying for the page.
type SessionWatch struct {
	src      SessionReloader
	interval time.Duration
	log      zerolog.Logger
}

// DefaultWatchInterval replaces a non-positive poll interval.
const DefaultWatchInterval = 15 * time.Second

func NewSessionWatch(src SessionReloader, interval time.Duration, log zerolog.Logger) *SessionWatch {
	if interval <= 0 {
		interval = DefaultWatchInterval
	}
	return &SessionWatch{src: src, interval: interval, log: log.With().Str("component", "session_watch").Logger()}
}

type watchState struct {
	Status guard.Status `json:"status"`
	UserID string       `json:"userId,omitempty"`
	Role   models.Role  `json:"role,omitempty"`
}

// GET /api/session/watch?role=buyer&role=agent
func (h *SessionWatch) Watch() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var allowed []models.Role
		for _, v := range r.URL.Query()["role"] {
			role := models.Role(v)
			if !role.Valid() {
				utils.Error(w, http.StatusBadRequest, "invalid role")
				return
			}
			allowed = append(allowed, role)
		}
		flusher, ok := w.(http.Flusher)
		if !ok {
			utils.Error(w, http.StatusInternalServerError, "streaming unsupported")
			return
		}

		// the stream outlives the server's write timeout
		_ = http.NewResponseController(w).SetWriteDeadline(time.Time{})

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.WriteHeader(http.StatusOK)

		var target string
		nav := guard.NavigatorFunc(func(path string) {
			if target == "" {
				target = path
			}
		})
		hooks := []*guard.Hook{guard.RequireAuthHook(nav)}
		if len(allowed) > 0 {
			hooks = append(hooks, guard.RequireRoleHook(nav, allowed...))
		}

		ctx := r.Context()
		current := guard.GetSession(ctx)
		observe := func(st guard.State) bool {
			h.send(w, "state", stateOf(st))
			for _, hk := range hooks {
				hk.Observe(st)
			}
			if target != "" {
				h.send(w, "navigate", map[string]string{"path": target})
			}
			flusher.Flush()
			return target != ""
		}

		if observe(stateFor(current)) {
			return
		}
		ticker := time.NewTicker(h.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				next, err := h.src.Reload(ctx, current, now)
				if err != nil {
					// keep the last known state; the next tick retries
					h.log.Warn().Err(err).Msg("session reload failed")
					continue
				}
				current = next
				if observe(stateFor(current)) {
					return
				}
			}
		}
	}
}

func stateFor(s *models.Session) guard.State {
	if s == nil {
		return guard.State{Status: guard.StatusUnauthenticated}
	}
	return guard.State{Status: guard.StatusAuthenticated, Session: s}
}

func stateOf(st guard.State) watchState {
	out := watchState{Status: st.Status}
	if st.Session != nil {
		out.UserID, out.Role = st.Session.User.ID, st.Session.User.Role
	}
	return out
}

func (h *SessionWatch) send(w http.ResponseWriter, event string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		h.log.Error().Err(err).Str("event", event).Msg("encode event")
		return
	}
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
}
