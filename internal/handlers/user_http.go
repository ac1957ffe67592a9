package handlers

import (
	"net/http"

	"ezzleads/internal/forms"
	"ezzleads/internal/guard"
	"ezzleads/internal/models"
	"ezzleads/internal/repository"
	"ezzleads/internal/service"
	"ezzleads/internal/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// UserHTTP is the manager's user administration and the profile
// self-service endpoints.
type UserHTTP struct {
	repo repository.ProfileRepository
	dash *service.DashboardService
	log  zerolog.Logger
}

func NewUserHTTP(r repository.ProfileRepository, dash *service.DashboardService, log zerolog.Logger) *UserHTTP {
	return &UserHTTP{repo: r, dash: dash, log: log.With().Str("component", "user_http").Logger()}
}

// GET /api/users?q=&role=&status=&limit=&offset=
func (h *UserHTTP) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		qv := r.URL.Query()
		f := repository.ProfileFilter{
			Q:      qv.Get("q"),
			Role:   models.Role(qv.Get("role")),
			Status: models.Status(qv.Get("status")),
		}
		if f.Role != "" && !f.Role.Valid() {
			utils.Error(w, http.StatusBadRequest, "invalid role")
			return
		}
		if f.Status != "" && !f.Status.Valid() {
			utils.Error(w, http.StatusBadRequest, "invalid status")
			return
		}
		f.Limit, f.Offset = utils.Page(qv, 20)

		users, total, err := h.repo.List(r.Context(), f)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		if users == nil {
			users = []models.UserProfile{}
		}
		utils.JSON(w, http.StatusOK, map[string]any{"items": users, "total": total})
	}
}

// PATCH /api/users/{id}/role
func (h *UserHTTP) UpdateRole() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		var req forms.RoleChange
		if err := utils.DecodeJSON(w, r, &req); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid request")
			return
		}
		if errs := req.Validate(); errs != nil {
			utils.Error(w, http.StatusBadRequest, errs.Get("role"))
			return
		}
		p, err := h.repo.UpdateRole(r.Context(), id, req.Role)
		h.respondProfile(w, r, p, err, "role", string(req.Role))
	}
}

// PATCH /api/users/{id}/status
func (h *UserHTTP) UpdateStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		var req forms.StatusChange
		if err := utils.DecodeJSON(w, r, &req); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid request")
			return
		}
		if errs := req.Validate(); errs != nil {
			utils.Error(w, http.StatusBadRequest, errs.Get("status"))
			return
		}
		p, err := h.repo.UpdateStatus(r.Context(), id, req.Status)
		h.respondProfile(w, r, p, err, "status", string(req.Status))
	}
}

// GET /api/profiles/{id}
func (h *UserHTTP) GetProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		p, err := h.repo.GetByID(r.Context(), id)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		if p == nil {
			utils.Error(w, http.StatusNotFound, "profile not found")
			return
		}
		utils.JSON(w, http.StatusOK, p)
	}
}

// PATCH /api/profiles/{id}
func (h *UserHTTP) UpdateProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		var req forms.Profile
		if err := utils.DecodeJSON(w, r, &req); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid request")
			return
		}
		if errs := req.Validate(); errs != nil {
			utils.Error(w, http.StatusBadRequest, errs.Get("displayName"))
			return
		}
		p, err := h.repo.UpdateDisplayName(r.Context(), id, req.DisplayName)
		h.respondProfile(w, r, p, err, "display_name", req.DisplayName)
	}
}

func (h *UserHTTP) respondProfile(w http.ResponseWriter, r *http.Request, p *models.UserProfile, err error, field, value string) {
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	if p == nil {
		utils.Error(w, http.StatusNotFound, "profile not found")
		return
	}
	actor := ""
	if s := guard.GetSession(r.Context()); s != nil {
		actor = s.User.ID
	}
	h.log.Info().Str("actor", actor).Str("user_id", p.ID).Str(field, value).Msg("profile updated")
	h.dash.ProfileChanged(r.Context())
	utils.JSON(w, http.StatusOK, p)
}

// pathID reads {id} and rejects anything that is not a UUID.
func pathID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid id")
		return "", false
	}
	return id, true
}
