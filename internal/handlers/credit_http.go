package handlers

import (
	"net/http"

	"ezzleads/internal/forms"
	"ezzleads/internal/guard"
	"ezzleads/internal/models"
	"ezzleads/internal/repository"
	"ezzleads/internal/service"
	"ezzleads/internal/utils"
)

type CreditHTTP struct {
	repo repository.CreditRequestRepository
	dash *service.DashboardService
}

func NewCreditHTTP(r repository.CreditRequestRepository, dash *service.DashboardService) *CreditHTTP {
	return &CreditHTTP{repo: r, dash: dash}
}

// POST /api/credit-requests
func (h *CreditHTTP) Create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := guard.GetSession(r.Context())
		var in forms.CreditRequest
		if err := utils.DecodeJSON(w, r, &in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		if errs := in.Validate(); errs != nil {
			utils.JSON(w, http.StatusUnprocessableEntity, map[string]any{"error": "validation failed", "fields": errs})
			return
		}
		c, err := h.repo.Create(r.Context(), s.User.ID, in.AmountDecimal(), optString(in.Notes))
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		h.dash.CreditRequested(r.Context())
		utils.JSON(w, http.StatusCreated, c)
	}
}

// GET /api/credit-requests?status=&limit=&offset=
func (h *CreditHTTP) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		qv := r.URL.Query()
		status := models.CreditRequestStatus(qv.Get("status"))
		if status != "" && !status.Valid() {
			utils.Error(w, http.StatusBadRequest, "invalid status")
			return
		}
		limit, offset := utils.Page(qv, 20)
		items, total, err := h.repo.List(r.Context(), status, limit, offset)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		if items == nil {
			items = []models.CreditRequest{}
		}
		utils.JSON(w, http.StatusOK, map[string]any{"items": items, "total": total})
	}
}
