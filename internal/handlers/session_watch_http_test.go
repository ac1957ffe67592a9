package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ezzleads/internal/guard"
	"ezzleads/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

type staticReloader struct{ s *models.Session }

func (r staticReloader) Reload(context.Context, *models.Session, time.Time) (*models.Session, error) {
	return r.s, nil
}

func TestNewSessionWatch_NonPositiveIntervalUsesDefault(t *testing.T) {
	assert.Equal(t, DefaultWatchInterval, NewSessionWatch(staticReloader{}, 0, zerolog.Nop()).interval)
	assert.Equal(t, DefaultWatchInterval, NewSessionWatch(staticReloader{}, -time.Second, zerolog.Nop()).interval)
	assert.Equal(t, time.Second, NewSessionWatch(staticReloader{}, time.Second, zerolog.Nop()).interval)
}

func TestSessionWatch_ZeroIntervalStreamsUntilClientLeaves(t *testing.T) {
	s := &models.Session{User: models.SessionUser{ID: "u1", Role: models.RoleAgent, Status: models.StatusActive}}
	h := NewSessionWatch(staticReloader{s: s}, 0, zerolog.Nop())

	ctx, cancel := context.WithTimeout(guard.WithSession(context.Background(), s), 50*time.Millisecond)
	defer cancel()
	req := httptest.NewRequest(http.MethodGet, "/api/session/watch?role=agent", nil).WithContext(ctx)
	rec := httptest.NewRecorder()

	assert.NotPanics(t, func() { h.Watch()(rec, req) })
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "event: state\n")
	assert.NotContains(t, rec.Body.String(), "event: navigate")
	assert.NotContains(t, rec.Body.String(), "internal error")
}
