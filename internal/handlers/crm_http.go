package handlers

import (
	"net/http"

	"ezzleads/internal/forms"
	"ezzleads/internal/guard"
	"ezzleads/internal/models"
	"ezzleads/internal/repository"
	"ezzleads/internal/utils"
)

type CRMHTTP struct {
	repo repository.CRMRepository
}

func NewCRMHTTP(r repository.CRMRepository) *CRMHTTP { return &CRMHTTP{repo: r} }

// GET /api/crm/leads
func (h *CRMHTTP) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := guard.GetSession(r.Context())
		items, err := h.repo.ListByBuyer(r.Context(), s.User.ID)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		if items == nil {
			items = []models.CRMLead{}
		}
		utils.JSON(w, http.StatusOK, map[string]any{"items": items})
	}
}

// POST /api/crm/leads/{id}/activities
func (h *CRMHTTP) AddActivity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := guard.GetSession(r.Context())
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		lead, err := h.repo.Get(r.Context(), id)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		// Other buyers' leads are reported as missing.
		if lead == nil || lead.BuyerID != s.User.ID {
			utils.Error(w, http.StatusNotFound, "crm lead not found")
			return
		}

		var in forms.Activity
		if err := utils.DecodeJSON(w, r, &in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		if errs := in.Validate(); errs != nil {
			utils.JSON(w, http.StatusUnprocessableEntity, map[string]any{"error": "validation failed", "fields": errs})
			return
		}
		a := &models.CRMActivity{
			CRMLeadID:    lead.ID,
			ActivityType: in.ActivityType,
			Description:  in.Description,
			CreatedBy:    s.User.ID,
		}
		if err := h.repo.AddActivity(r.Context(), a); err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		utils.JSON(w, http.StatusCreated, a)
	}
}
