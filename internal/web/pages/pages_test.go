package pages

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"ezzleads/internal/forms"
	"ezzleads/internal/models"
	"ezzleads/internal/service"
	"ezzleads/internal/web/flash"

	"github.com/a-h/templ"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var out bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &out))
	return out.String()
}

func TestLayout_NoticeAndSession(t *testing.T) {
	n := flash.Success("Email sent!", "Check your inbox.")
	s := &models.Session{User: models.SessionUser{Name: "Jane <3"}}
	html := render(t, Layout(Page{Title: "Login", Session: s, Notice: &n, WatchRole: models.RoleAgent}, Unauthorized()))

	assert.Contains(t, html, "<title>Login | EzzLeads</title>")
	assert.Contains(t, html, "Email sent!")
	assert.Contains(t, html, "Jane &lt;3")
	assert.Contains(t, html, `<script data-role="agent">`)
	assert.Contains(t, html, "/api/session/watch?role=")
	assert.Contains(t, html, `data-kind="success"`)
	assert.Contains(t, html, "Access Denied")
}

func TestRegister_FieldErrors(t *testing.T) {
	f := forms.Register{Email: `x"@y`, DisplayName: "J"}
	html := render(t, Register(f, forms.Errors{"confirmPassword": "Passwords don't match"}))

	assert.Contains(t, html, "Passwords don&#39;t match")
	assert.Contains(t, html, `value="x&#34;@y"`)
	assert.NotContains(t, html, `value="x"@y"`)
}

func TestForgotPassword_SentView(t *testing.T) {
	html := render(t, ForgotPassword(forms.ForgotPassword{}, nil, "", "jane@example.com"))
	assert.Equal(t, 1, strings.Count(html, "Check Your Email"))
	assert.Contains(t, html, "Send Again")
	assert.NotContains(t, html, "<form")

	html = render(t, ForgotPassword(forms.ForgotPassword{Email: "a@b.co"}, nil, "Failed to send reset email.", ""))
	assert.NotContains(t, html, "Check Your Email")
	assert.Contains(t, html, "Failed to send reset email.")
}

func TestAgentDashboard(t *testing.T) {
	s := &models.Session{User: models.SessionUser{Name: "Ann"}}
	html := render(t, AgentDashboard(s, service.AgentMetrics{TotalLeads: 4, ApprovedLeads: 2, TotalEarnings: decimal.RequireFromString("150.5")}))
	assert.Contains(t, html, "Welcome back, Ann!")
	assert.Contains(t, html, "$150.50")
	assert.Contains(t, html, "/dashboard/agent/submit-lead")
}

func TestSubmitLead_KeepsValues(t *testing.T) {
	html := render(t, SubmitLead(forms.Lead{City: "Austin", PropertyType: "land", MotivationLevel: 7}, forms.Errors{"state": "Use the two-letter state code"}, ""))
	assert.Contains(t, html, `value="Austin"`)
	assert.Contains(t, html, `<option value="land" selected>`)
	assert.Contains(t, html, `value="7"`)
	assert.Contains(t, html, "Use the two-letter state code")
}

func TestResetPassword_TokenAndAlerts(t *testing.T) {
	html := render(t, ResetPassword(`t"1`, forms.Errors{"token": "Reset token is required"}, "Reset link is invalid or has expired"))
	assert.Contains(t, html, `name="token" value="t&#34;1"`)
	assert.Contains(t, html, `<div class="alert alert-error" role="alert">Reset token is required</div>`)
	assert.Contains(t, html, "Reset link is invalid or has expired")
	assert.Equal(t, 2, strings.Count(html, `id="password"`)+strings.Count(html, `id="confirmPassword"`))
}
