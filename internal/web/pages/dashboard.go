package pages

import (
	"context"
	"strconv"

	"ezzleads/internal/models"
	"ezzleads/internal/service"

	"github.com/a-h/templ"
	"github.com/shopspring/decimal"
)

func money(d decimal.Decimal) string { return "$" + d.StringFixed(2) }

func stat(b *buf, title, value, hint string) {
	b.rawf(`<div class="card stat"><h3>%s</h3><div class="value">%s</div><p>%s</p></div>`, esc(title), esc(value), esc(hint))
}

func welcome(b *buf, heading string, s *models.Session) {
	b.rawf(`<div class="heading"><h1>%s</h1>`, esc(heading))
	if s != nil {
		b.rawf(`<p>Welcome back, %s!</p>`, esc(s.User.Name))
	}
	b.raw(`</div>`)
}

func BuyerDashboard(s *models.Session, m service.BuyerMetrics) templ.Component {
	return component(func(_ context.Context, b *buf) {
		welcome(b, "Buyer Dashboard", s)
		b.raw(`<div class="grid">`)
		stat(b, "Wallet Balance", money(m.WalletBalance), "Available credits")
		stat(b, "Purchased Leads", strconv.Itoa(m.PurchasedLeads), "In your CRM")
		stat(b, "Follow-ups Due", strconv.Itoa(m.FollowUpsDue), "Need attention today")
		b.raw(`</div><div class="card"><h2>Quick Actions</h2>`)
		b.raw(`<a class="button" href="/dashboard/buyer/credits">Add Credits</a></div>`)
	})
}

func AgentDashboard(s *models.Session, m service.AgentMetrics) templ.Component {
	return component(func(_ context.Context, b *buf) {
		welcome(b, "Agent Dashboard", s)
		b.raw(`<div class="grid">`)
		stat(b, "Total Leads", strconv.Itoa(m.TotalLeads), "Leads submitted")
		stat(b, "Total Earnings", money(m.TotalEarnings), "From sold leads")
		stat(b, "Approved Leads", strconv.Itoa(m.ApprovedLeads), "Live in marketplace")
		b.raw(`</div><div class="card"><h2>Quick Actions</h2><p>Manage your leads</p>`)
		b.raw(`<a class="button" href="/dashboard/agent/submit-lead">Submit New Lead</a>`)
		b.raw(`<a class="button outline" href="/dashboard/agent/leads">View My Leads</a></div>`)
	})
}

func ManagerDashboard(s *models.Session, m service.ManagerMetrics) templ.Component {
	return component(func(_ context.Context, b *buf) {
		welcome(b, "Manager Dashboard", s)
		b.raw(`<div class="grid">`)
		stat(b, "Pending Review", strconv.Itoa(m.PendingLeads), "Leads awaiting approval")
		stat(b, "Active Users", strconv.Itoa(m.ActiveUsers), "Accounts in good standing")
		stat(b, "Credit Requests", strconv.Itoa(m.OpenCreditRequests), "Awaiting processing")
		b.raw(`</div>`)
	})
}

// AgentLeads lists the agent's own submissions.
func AgentLeads(leads []models.Lead, total int) templ.Component {
	return component(func(_ context.Context, b *buf) {
		b.rawf(`<div class="heading"><h1>My Leads</h1><p>%d submitted</p></div>`, total)
		if len(leads) == 0 {
			b.raw(`<div class="card empty">No leads yet. <a href="/dashboard/agent/submit-lead">Submit your first lead</a></div>`)
			return
		}
		b.raw(`<table><thead><tr><th>Address</th><th>Type</th><th>Status</th><th>Submitted</th></tr></thead><tbody>`)
		for _, l := range leads {
			b.rawf(`<tr><td>%s, %s, %s %s</td><td>%s</td><td><span class="badge">%s</span></td><td>%s</td></tr>`,
				esc(l.PropertyAddress), esc(l.City), esc(l.State), esc(l.ZipCode),
				esc(string(l.LeadType)), esc(string(l.Status)), l.CreatedAt.Format("Jan 2, 2006"))
		}
		b.raw(`</tbody></table>`)
	})
}
