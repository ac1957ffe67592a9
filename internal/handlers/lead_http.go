package handlers

import (
	"net/http"

	"ezzleads/internal/forms"
	"ezzleads/internal/guard"
	"ezzleads/internal/models"
	"ezzleads/internal/repository"
	"ezzleads/internal/service"
	"ezzleads/internal/utils"

	"github.com/rs/zerolog"
)

type LeadHTTP struct {
	repo repository.LeadRepository
	dash *service.DashboardService
	log  zerolog.Logger
}

func NewLeadHTTP(r repository.LeadRepository, dash *service.DashboardService, log zerolog.Logger) *LeadHTTP {
	return &LeadHTTP{repo: r, dash: dash, log: log.With().Str("component", "lead_http").Logger()}
}

// GET /api/leads?limit=&offset=
func (h *LeadHTTP) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := guard.GetSession(r.Context())
		limit, offset := utils.Page(r.URL.Query(), 20)
		items, total, err := h.repo.ListBySubmitter(r.Context(), s.User.ID, limit, offset)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		if items == nil {
			items = []models.Lead{}
		}
		utils.JSON(w, http.StatusOK, map[string]any{"items": items, "total": total})
	}
}

// POST /api/leads
func (h *LeadHTTP) Create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := guard.GetSession(r.Context())
		var in forms.Lead
		if err := utils.DecodeJSON(w, r, &in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		in.Normalize()
		if errs := in.Validate(); errs != nil {
			utils.JSON(w, http.StatusUnprocessableEntity, map[string]any{"error": "validation failed", "fields": errs})
			return
		}
		l := in.ToLead(s.User.ID)
		if err := h.repo.Create(r.Context(), l); err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		h.dash.LeadSubmitted(r.Context(), s.User.ID)
		h.log.Info().Str("lead_id", l.ID).Str("user_id", s.User.ID).Msg("lead submitted")
		utils.JSON(w, http.StatusCreated, l)
	}
}
