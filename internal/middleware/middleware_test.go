package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ezzleads/internal/guard"
	"ezzleads/internal/models"
	"ezzleads/internal/web/sessioncookie"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func session(role models.Role, status models.Status) *models.Session {
	return &models.Session{
		User:      models.SessionUser{ID: "u1", Email: "u1@example.com", Role: role, Status: status},
		ExpiresAt: time.Now().Add(time.Hour),
	}
}

type fakeSource struct {
	sessions map[string]*models.Session
	refresh  bool
	issued   int
}

func (f *fakeSource) Session(tok string) (*models.Session, error) {
	if s, ok := f.sessions[tok]; ok {
		return s, nil
	}
	return nil, errors.New("bad token")
}

func (f *fakeSource) NeedsRefresh(*models.Session, time.Time) bool { return f.refresh }

func (f *fakeSource) Issue(_ context.Context, userID string) (string, *models.Session, error) {
	f.issued++
	s := session(models.RoleAgent, models.StatusActive)
	s.User.ID = userID
	return "fresh", s, nil
}

func captureSession(got **models.Session) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*got = guard.GetSession(r.Context())
	})
}

func TestWithAuth_Cookie(t *testing.T) {
	src := &fakeSource{sessions: map[string]*models.Session{"good": session(models.RoleBuyer, models.StatusActive)}}
	var got *models.Session
	h := WithAuth(zerolog.Nop(), src, false)(captureSession(&got))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: sessioncookie.Name, Value: "good"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.NotNil(t, got)
	assert.Equal(t, models.RoleBuyer, got.User.Role)
	assert.Empty(t, rec.Header().Get("Set-Cookie"))
}

func TestWithAuth_Bearer(t *testing.T) {
	src := &fakeSource{sessions: map[string]*models.Session{"good": session(models.RoleManager, models.StatusActive)}}
	var got *models.Session
	h := WithAuth(zerolog.Nop(), src, false)(captureSession(&got))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good")
	h.ServeHTTP(httptest.NewRecorder(), req)

	require.NotNil(t, got)
	assert.Equal(t, models.RoleManager, got.User.Role)
}

func TestWithAuth_BadCookieCleared(t *testing.T) {
	var got *models.Session
	h := WithAuth(zerolog.Nop(), &fakeSource{}, false)(captureSession(&got))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: sessioncookie.Name, Value: "expired"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Nil(t, got)
	c, err := http.ParseSetCookie(rec.Header().Get("Set-Cookie"))
	require.NoError(t, err)
	assert.Equal(t, -1, c.MaxAge)
}

func TestWithAuth_RefreshesNearExpiry(t *testing.T) {
	src := &fakeSource{sessions: map[string]*models.Session{"old": session(models.RoleAgent, models.StatusActive)}, refresh: true}
	var got *models.Session
	h := WithAuth(zerolog.Nop(), src, false)(captureSession(&got))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: sessioncookie.Name, Value: "old"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, 1, src.issued)
	c, err := http.ParseSetCookie(rec.Header().Get("Set-Cookie"))
	require.NoError(t, err)
	assert.Equal(t, "fresh", c.Value)
	require.NotNil(t, got)
}

func serveWith(mw func(http.Handler) http.Handler, s *models.Session) (*httptest.ResponseRecorder, bool) {
	called := false
	h := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}))
	req := httptest.NewRequest(http.MethodGet, "/dashboard/agent", nil)
	if s != nil {
		req = req.WithContext(guard.WithSession(req.Context(), s))
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec, called
}

func TestRequirePage(t *testing.T) {
	mw := RequirePage(Roles(models.RoleAgent), Active())

	cases := []struct {
		name     string
		session  *models.Session
		location string
	}{
		{"no session", nil, guard.PathLogin},
		{"wrong role", session(models.RoleManager, models.StatusActive), guard.PathUnauthorized},
		{"suspended", session(models.RoleAgent, models.StatusSuspended), guard.PathSuspended},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, called := serveWith(mw, tc.session)
			assert.False(t, called, "next must not run")
			assert.Equal(t, http.StatusSeeOther, rec.Code)
			assert.Equal(t, tc.location, rec.Header().Get("Location"))
		})
	}

	rec, called := serveWith(mw, session(models.RoleAgent, models.StatusActive))
	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAPI(t *testing.T) {
	mw := RequireAPI(Roles(models.RoleManager), Active())

	rec, called := serveWith(mw, nil)
	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, called = serveWith(mw, session(models.RoleBuyer, models.StatusActive))
	assert.False(t, called)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, called = serveWith(mw, session(models.RoleManager, models.StatusInactive))
	assert.False(t, called)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"error":"account is not active"}`, rec.Body.String())

	_, called = serveWith(mw, session(models.RoleManager, models.StatusActive))
	assert.True(t, called)
}

func TestRequireSelfOrRoles(t *testing.T) {
	r := chi.NewRouter()
	r.With(RequireSelfOrRoles(models.RoleManager)).Get("/profiles/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	do := func(path string, s *models.Session) int {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if s != nil {
			req = req.WithContext(guard.WithSession(req.Context(), s))
		}
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusNoContent, do("/profiles/u1", session(models.RoleBuyer, models.StatusActive)))
	assert.Equal(t, http.StatusForbidden, do("/profiles/u2", session(models.RoleBuyer, models.StatusActive)))
	assert.Equal(t, http.StatusNoContent, do("/profiles/u2", session(models.RoleManager, models.StatusActive)))
	assert.Equal(t, http.StatusUnauthorized, do("/profiles/u1", nil))
}

func TestRecoverer(t *testing.T) {
	h := Recoverer(zerolog.Nop())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRequestLogger_PassesThrough(t *testing.T) {
	h := RequestLogger(zerolog.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
}
