package handlers

import (
	"net/http"

	"ezzleads/internal/models"
	"ezzleads/internal/repository"
	"ezzleads/internal/utils"
)

type ReportsHTTP struct {
	leads   repository.LeadRepository
	credits repository.CreditRequestRepository
}

func NewReportsHTTP(leads repository.LeadRepository, credits repository.CreditRequestRepository) *ReportsHTTP {
	return &ReportsHTTP{leads: leads, credits: credits}
}

var reportStatuses = []models.LeadStatus{
	models.LeadPending, models.LeadApproved, models.LeadRejected,
	models.LeadSold, models.LeadExpired, models.LeadDeleted,
}

// GET /api/reports/summary
// Returns: { leads: {pending, approved, ...}, totalLeads, openCreditRequests }
func (h *ReportsHTTP) Summary() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		counts, err := h.leads.CountByStatus(r.Context())
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		openCredits, err := h.credits.CountOpen(r.Context())
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}

		byStatus := make(map[models.LeadStatus]int, len(reportStatuses))
		total := 0
		for _, st := range reportStatuses {
			byStatus[st] = counts[st]
			if st != models.LeadDeleted {
				total += counts[st]
			}
		}
		utils.JSON(w, http.StatusOK, map[string]any{
			"leads":              byStatus,
			"totalLeads":         total,
			"openCreditRequests": openCredits,
		})
	}
}
