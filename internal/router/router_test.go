package router

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"ezzleads/internal/cache"
	"ezzleads/internal/config"
	"ezzleads/internal/handlers"
	"ezzleads/internal/models"
	"ezzleads/internal/repository/memory"
	"ezzleads/internal/service"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type app struct {
	db     *memory.DB
	server *httptest.Server
}

func newApp(t *testing.T) *app {
	t.Helper()
	db := memory.New()
	store := cache.NewMemory()
	cfg := config.Config{
		Env:                 "test",
		Origin:              "http://localhost:3000",
		SiteURL:             "http://ezzleads.test",
		SessionSecret:       "router-test-secret",
		SessionTTL:          time.Hour,
		ResetTokenTTL:       time.Hour,
		MetricsCacheTTL:     time.Minute,
		SessionPollInterval: 20 * time.Millisecond,
		RateLimitPerMinute:  10000,
	}
	h := New(zerolog.Nop(), cfg, Deps{
		Repos:  db.Repos(),
		Cache:  store,
		Mailer: service.NewLogMailer(zerolog.Nop()),
		Health: map[string]handlers.Pinger{"cache": store},
	})
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return &app{db: db, server: srv}
}

// client does not follow redirects so tests can assert on Location.
func (a *app) client(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func (a *app) postForm(t *testing.T, c *http.Client, path string, v url.Values) *http.Response {
	t.Helper()
	res, err := c.PostForm(a.server.URL+path, v)
	require.NoError(t, err)
	t.Cleanup(func() { res.Body.Close() })
	return res
}

func (a *app) get(t *testing.T, c *http.Client, path string) *http.Response {
	t.Helper()
	res, err := c.Get(a.server.URL + path)
	require.NoError(t, err)
	t.Cleanup(func() { res.Body.Close() })
	return res
}

func body(t *testing.T, res *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return string(b)
}

func registration(email string, role models.Role) url.Values {
	return url.Values{
		"email":           {email},
		"password":        {"Abcdefg1"},
		"confirmPassword": {"Abcdefg1"},
		"displayName":     {"Test User"},
		"role":            {string(role)},
	}
}

// signedIn registers email with role, optionally promotes it, and signs in.
func (a *app) signedIn(t *testing.T, email string, role models.Role) *http.Client {
	t.Helper()
	c := a.client(t)
	signup := role
	if role != models.RoleBuyer && role != models.RoleAgent {
		signup = models.RoleBuyer
	}
	res := a.postForm(t, c, "/register", registration(email, signup))
	require.Equal(t, http.StatusSeeOther, res.StatusCode)

	if signup != role {
		u, _, err := a.db.Users().GetByEmail(context.Background(), email)
		require.NoError(t, err)
		_, err = a.db.Profiles().UpdateRole(context.Background(), u.ID, role)
		require.NoError(t, err)
	}

	res = a.postForm(t, c, "/login", url.Values{"email": {email}, "password": {"Abcdefg1"}})
	require.Equal(t, http.StatusSeeOther, res.StatusCode)
	require.Equal(t, "/dashboard", res.Header.Get("Location"))
	return c
}

func TestRegister_RedirectsToLoginWithNotice(t *testing.T) {
	a := newApp(t)
	c := a.client(t)

	res := a.postForm(t, c, "/register", registration("new@example.com", models.RoleAgent))
	assert.Equal(t, http.StatusSeeOther, res.StatusCode)
	assert.Equal(t, "/login", res.Header.Get("Location"))

	page := body(t, a.get(t, c, "/login"))
	assert.Contains(t, page, "Account created successfully!")
	assert.Contains(t, page, "Please check your email to verify your account.")

	u, _, err := a.db.Users().GetByEmail(context.Background(), "new@example.com")
	require.NoError(t, err)
	p, err := a.db.Profiles().GetByID(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAgent, p.Role)
	assert.Equal(t, "Test User", p.Name())
}

func TestRegister_InvalidPasswordMakesNoCall(t *testing.T) {
	a := newApp(t)
	v := registration("weak@example.com", models.RoleBuyer)
	v.Set("password", "abc12345")
	v.Set("confirmPassword", "abc12345")

	res := a.postForm(t, a.client(t), "/register", v)
	assert.Equal(t, http.StatusUnprocessableEntity, res.StatusCode)
	assert.Contains(t, body(t, res), "Password must contain uppercase, lowercase, and number")

	u, _, err := a.db.Users().GetByEmail(context.Background(), "weak@example.com")
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestRegister_DuplicateShowsFailureNotice(t *testing.T) {
	a := newApp(t)
	a.postForm(t, a.client(t), "/register", registration("dup@example.com", models.RoleBuyer))

	res := a.postForm(t, a.client(t), "/register", registration("dup@example.com", models.RoleBuyer))
	assert.Equal(t, http.StatusUnprocessableEntity, res.StatusCode)
	html := body(t, res)
	assert.Contains(t, html, "Registration failed")
	assert.Contains(t, html, "An account with this email already exists.")
}

func TestRegister_ShowsServiceMessage(t *testing.T) {
	a := newApp(t)
	v := registration("long@example.com", models.RoleAgent)
	long := "Aa1" + strings.Repeat("x", 80)
	v.Set("password", long)
	v.Set("confirmPassword", long)

	res := a.postForm(t, a.client(t), "/register", v)
	assert.Equal(t, http.StatusUnprocessableEntity, res.StatusCode)
	html := body(t, res)
	assert.Contains(t, html, "Registration failed")
	assert.Contains(t, html, "Password must be at most 72 bytes.")
}

func TestLogin_Failure(t *testing.T) {
	a := newApp(t)
	res := a.postForm(t, a.client(t), "/login", url.Values{"email": {"nobody@example.com"}, "password": {"x"}})
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	assert.Contains(t, body(t, res), "Invalid email or password")
}

func TestDashboard_RedirectsByRole(t *testing.T) {
	a := newApp(t)
	for _, role := range []models.Role{models.RoleBuyer, models.RoleAgent, models.RoleManager} {
		c := a.signedIn(t, string(role)+"@example.com", role)
		res := a.get(t, c, "/dashboard")
		assert.Equal(t, http.StatusSeeOther, res.StatusCode)
		assert.Equal(t, "/dashboard/"+string(role), res.Header.Get("Location"))

		res = a.get(t, c, "/dashboard/"+string(role))
		assert.Equal(t, http.StatusOK, res.StatusCode, role)
	}

	res := a.get(t, a.client(t), "/dashboard")
	assert.Equal(t, "/login", res.Header.Get("Location"))
}

func TestDashboard_Guards(t *testing.T) {
	a := newApp(t)

	res := a.get(t, a.client(t), "/dashboard/agent")
	assert.Equal(t, http.StatusSeeOther, res.StatusCode)
	assert.Equal(t, "/login", res.Header.Get("Location"))

	manager := a.signedIn(t, "boss@example.com", models.RoleManager)
	res = a.get(t, manager, "/dashboard/agent")
	assert.Equal(t, "/unauthorized", res.Header.Get("Location"))

	agent := a.signedIn(t, "agent@example.com", models.RoleAgent)
	u, _, err := a.db.Users().GetByEmail(context.Background(), "agent@example.com")
	require.NoError(t, err)
	_, err = a.db.Profiles().UpdateStatus(context.Background(), u.ID, models.StatusSuspended)
	require.NoError(t, err)

	// the token still carries "active" until it is reissued
	res = a.get(t, agent, "/dashboard/agent")
	assert.Equal(t, http.StatusOK, res.StatusCode)

	fresh := a.client(t)
	res = a.postForm(t, fresh, "/login", url.Values{"email": {"agent@example.com"}, "password": {"Abcdefg1"}})
	require.Equal(t, http.StatusSeeOther, res.StatusCode)
	res = a.get(t, fresh, "/dashboard/agent")
	assert.Equal(t, "/account-suspended", res.Header.Get("Location"))
}

func TestSubmitLead(t *testing.T) {
	a := newApp(t)
	agent := a.signedIn(t, "agent@example.com", models.RoleAgent)

	res := a.postForm(t, agent, "/dashboard/agent/submit-lead", url.Values{
		"propertyAddress": {"12 Oak St"},
		"city":            {"Austin"},
		"state":           {"tx"},
		"zipCode":         {"78701"},
		"propertyType":    {"single_family"},
		"leadType":        {"probate"},
		"ownerName":       {"Bob Smith"},
		"ownerPhone":      {"5125550100"},
		"motivationLevel": {"8"},
	})
	require.Equal(t, http.StatusSeeOther, res.StatusCode)
	assert.Equal(t, "/dashboard/agent", res.Header.Get("Location"))

	page := body(t, a.get(t, agent, "/dashboard/agent"))
	assert.Contains(t, page, "Lead submitted!")

	page = body(t, a.get(t, agent, "/dashboard/agent/leads"))
	assert.Contains(t, page, "12 Oak St, Austin, TX 78701")
}

func TestForgotPassword_RendersEmailSentOnce(t *testing.T) {
	a := newApp(t)
	a.postForm(t, a.client(t), "/register", registration("jane@example.com", models.RoleBuyer))

	res := a.postForm(t, a.client(t), "/forgot-password", url.Values{"email": {"jane@example.com"}})
	require.Equal(t, http.StatusOK, res.StatusCode)
	page := body(t, res)
	assert.Equal(t, 1, strings.Count(page, "<h1>Check Your Email</h1>"))
	assert.Contains(t, page, "Email sent!")

	res = a.postForm(t, a.client(t), "/forgot-password", url.Values{"email": {"ghost@example.com"}})
	assert.Equal(t, http.StatusOK, res.StatusCode, "unknown addresses look the same")

	res = a.postForm(t, a.client(t), "/forgot-password", url.Values{"email": {"nope"}})
	assert.Equal(t, http.StatusUnprocessableEntity, res.StatusCode)
	assert.Contains(t, body(t, res), "Invalid email address")
}

func TestLogout(t *testing.T) {
	a := newApp(t)
	c := a.signedIn(t, "jane@example.com", models.RoleBuyer)

	res := a.postForm(t, c, "/logout", nil)
	assert.Equal(t, "/login", res.Header.Get("Location"))
	res = a.get(t, c, "/dashboard/buyer")
	assert.Equal(t, "/login", res.Header.Get("Location"))
}

func TestAPI_Authorization(t *testing.T) {
	a := newApp(t)

	res := a.get(t, a.client(t), "/api/me")
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	buyer := a.signedIn(t, "buyer@example.com", models.RoleBuyer)
	res = a.get(t, buyer, "/api/me")
	assert.Equal(t, http.StatusOK, res.StatusCode)
	res = a.get(t, buyer, "/api/users")
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
	res = a.get(t, buyer, "/api/wallet")
	assert.Equal(t, http.StatusOK, res.StatusCode)

	manager := a.signedIn(t, "boss@example.com", models.RoleManager)
	res = a.get(t, manager, "/api/users?role=buyer")
	require.Equal(t, http.StatusOK, res.StatusCode)
	var list struct {
		Items []models.UserProfile `json:"items"`
		Total int                  `json:"total"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&list))
	assert.Equal(t, 1, list.Total)

	res = a.get(t, manager, "/api/reports/summary")
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestAPI_ProfileSelfOrManager(t *testing.T) {
	a := newApp(t)
	buyer := a.signedIn(t, "buyer@example.com", models.RoleBuyer)
	other := a.signedIn(t, "other@example.com", models.RoleBuyer)
	u, _, err := a.db.Users().GetByEmail(context.Background(), "buyer@example.com")
	require.NoError(t, err)

	res := a.get(t, buyer, "/api/profiles/"+u.ID)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	res = a.get(t, other, "/api/profiles/"+u.ID)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
}

func TestSessionWatch(t *testing.T) {
	a := newApp(t)

	res := a.get(t, a.client(t), "/api/session/watch")
	assert.Equal(t, "text/event-stream", res.Header.Get("Content-Type"))
	stream := body(t, res)
	assert.Contains(t, stream, "event: navigate\ndata: {\"path\":\"/login\"}")

	manager := a.signedIn(t, "boss@example.com", models.RoleManager)
	stream = body(t, a.get(t, manager, "/api/session/watch?role=agent"))
	assert.Equal(t, 1, strings.Count(stream, "event: navigate"))
	assert.Contains(t, stream, `"/unauthorized"`)

	res = a.get(t, manager, "/api/session/watch?role=admin")
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestSessionWatch_RoleChangeNavigates(t *testing.T) {
	a := newApp(t)
	agent := a.signedIn(t, "agent@example.com", models.RoleAgent)
	u, _, err := a.db.Users().GetByEmail(context.Background(), "agent@example.com")
	require.NoError(t, err)
	_, err = a.db.Profiles().UpdateRole(context.Background(), u.ID, models.RoleBuyer)
	require.NoError(t, err)

	stream := body(t, a.get(t, agent, "/api/session/watch?role=agent"))
	assert.Contains(t, stream, `"role":"agent"`)
	assert.Contains(t, stream, `"role":"buyer"`)
	assert.Contains(t, stream, `{"path":"/unauthorized"}`)
}

func TestHealthAndMetrics(t *testing.T) {
	a := newApp(t)
	a.get(t, a.client(t), "/dashboard/manager")

	res := a.get(t, a.client(t), "/healthz")
	assert.Equal(t, http.StatusOK, res.StatusCode)

	res = a.get(t, a.client(t), "/metrics")
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body(t, res), "ezzleads_guard_redirects_total")
}
