package handlers

import (
	"net/http"

	"ezzleads/internal/forms"
	"ezzleads/internal/guard"
	"ezzleads/internal/models"
	"ezzleads/internal/repository"
	"ezzleads/internal/service"
	"ezzleads/internal/utils"
	"ezzleads/internal/web/flash"
	"ezzleads/internal/web/pages"

	"github.com/rs/zerolog"
)

// DashboardPages serves the role dashboards and their forms. Routes are
// mounted behind the page guards, so a session is always present.
type DashboardPages struct {
	dash    *service.DashboardService
	leads   repository.LeadRepository
	credits repository.CreditRequestRepository
	log     zerolog.Logger
}

func NewDashboardPages(dash *service.DashboardService, leads repository.LeadRepository, credits repository.CreditRequestRepository, log zerolog.Logger) *DashboardPages {
	return &DashboardPages{dash: dash, leads: leads, credits: credits, log: log.With().Str("component", "dashboard_pages").Logger()}
}

// GET /dashboard
func (h *DashboardPages) Index() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, d := guard.RequireAuth(guard.GetSession(r.Context()))
		if !d.Allowed() {
			http.Redirect(w, r, d.Path, http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, guard.DashboardPath(s.User.Role), http.StatusSeeOther)
	}
}

func (h *DashboardPages) Buyer() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := guard.GetSession(r.Context())
		m, err := h.dash.Buyer(r.Context(), s.User.ID)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		renderPage(w, r, http.StatusOK, watched("Buyer Dashboard", models.RoleBuyer), pages.BuyerDashboard(s, m))
	}
}

func (h *DashboardPages) Agent() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := guard.GetSession(r.Context())
		m, err := h.dash.Agent(r.Context(), s.User.ID)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		renderPage(w, r, http.StatusOK, watched("Agent Dashboard", models.RoleAgent), pages.AgentDashboard(s, m))
	}
}

func (h *DashboardPages) Manager() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := guard.GetSession(r.Context())
		m, err := h.dash.Manager(r.Context())
		if err != nil {
			h.fail(w, r, err)
			return
		}
		renderPage(w, r, http.StatusOK, watched("Manager Dashboard", models.RoleManager), pages.ManagerDashboard(s, m))
	}
}

// ---------- agent ----------

// GET /dashboard/agent/leads?limit=&offset=
func (h *DashboardPages) AgentLeads() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := guard.GetSession(r.Context())
		limit, offset := utils.Page(r.URL.Query(), 50)
		items, total, err := h.leads.ListBySubmitter(r.Context(), s.User.ID, limit, offset)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		renderPage(w, r, http.StatusOK, watched("My Leads", models.RoleAgent), pages.AgentLeads(items, total))
	}
}

func (h *DashboardPages) SubmitLeadForm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		renderPage(w, r, http.StatusOK, watched("Submit Lead", models.RoleAgent), pages.SubmitLead(forms.Lead{}, nil, ""))
	}
}

func (h *DashboardPages) SubmitLead() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := guard.GetSession(r.Context())
		f := forms.LeadFromRequest(r)
		if errs := f.Validate(); errs != nil {
			renderPage(w, r, http.StatusUnprocessableEntity, watched("Submit Lead", models.RoleAgent), pages.SubmitLead(f, errs, ""))
			return
		}
		if err := h.leads.Create(r.Context(), f.ToLead(s.User.ID)); err != nil {
			h.log.Error().Err(err).Str("user_id", s.User.ID).Msg("lead create failed")
			renderPage(w, r, http.StatusInternalServerError, watched("Submit Lead", models.RoleAgent), pages.SubmitLead(f, nil, "Failed to submit lead. Please try again."))
			return
		}
		h.dash.LeadSubmitted(r.Context(), s.User.ID)
		flash.Write(w, flash.Success("Lead submitted!", "It will appear in the marketplace once approved."))
		http.Redirect(w, r, "/dashboard/agent", http.StatusSeeOther)
	}
}

// ---------- buyer ----------

func (h *DashboardPages) CreditsForm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		renderPage(w, r, http.StatusOK, watched("Add Credits", models.RoleBuyer), pages.Credits(forms.CreditRequest{}, nil, ""))
	}
}

func (h *DashboardPages) RequestCredits() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := guard.GetSession(r.Context())
		f := forms.CreditRequestFromRequest(r)
		if errs := f.Validate(); errs != nil {
			renderPage(w, r, http.StatusUnprocessableEntity, watched("Add Credits", models.RoleBuyer), pages.Credits(f, errs, ""))
			return
		}
		if _, err := h.credits.Create(r.Context(), s.User.ID, f.AmountDecimal(), optString(f.Notes)); err != nil {
			h.log.Error().Err(err).Str("user_id", s.User.ID).Msg("credit request failed")
			renderPage(w, r, http.StatusInternalServerError, watched("Add Credits", models.RoleBuyer), pages.Credits(f, nil, "Failed to submit request. Please try again."))
			return
		}
		h.dash.CreditRequested(r.Context())
		flash.Write(w, flash.Success("Request sent!", "A manager will follow up with a payment link."))
		http.Redirect(w, r, "/dashboard/buyer", http.StatusSeeOther)
	}
}

func (h *DashboardPages) fail(w http.ResponseWriter, r *http.Request, err error) {
	h.log.Error().Err(err).Str("path", r.URL.Path).Msg("dashboard load failed")
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func watched(title string, role models.Role) pages.Page {
	return pages.Page{Title: title, WatchRole: role}
}

func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
