package handlers

import (
	"errors"
	"net/http"

	"ezzleads/internal/forms"
	"ezzleads/internal/guard"
	"ezzleads/internal/repository"
	"ezzleads/internal/service"
	"ezzleads/internal/utils"
	"ezzleads/internal/web/sessioncookie"

	"github.com/rs/zerolog"
)

type AuthHTTP struct {
	svc           *service.AuthService
	profiles      repository.ProfileRepository
	secureCookies bool
	log           zerolog.Logger
}

func NewAuthHTTP(s *service.AuthService, profiles repository.ProfileRepository, secureCookies bool, log zerolog.Logger) *AuthHTTP {
	return &AuthHTTP{svc: s, profiles: profiles, secureCookies: secureCookies, log: log.With().Str("component", "auth_http").Logger()}
}

// POST /api/auth/login
func (h *AuthHTTP) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in forms.Login
		if err := utils.DecodeJSON(w, r, &in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		if errs := in.Validate(); errs != nil {
			utils.JSON(w, http.StatusUnprocessableEntity, map[string]any{"error": "validation failed", "fields": errs})
			return
		}

		token, s, err := h.svc.SignIn(r.Context(), in.Email, in.Password)
		if err != nil {
			if !errors.Is(err, service.ErrInvalidCredentials) {
				h.log.Error().Err(err).Msg("sign in failed")
			}
			utils.Error(w, http.StatusUnauthorized, "invalid credentials")
			return
		}

		sessioncookie.Write(w, token, s.ExpiresAt, h.secureCookies)
		utils.JSON(w, http.StatusOK, map[string]any{
			"token":   token,
			"session": s,
		})
	}
}

// POST /api/auth/logout
func (h *AuthHTTP) Logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessioncookie.Clear(w, h.secureCookies)
		w.WriteHeader(http.StatusNoContent)
	}
}

// GET /api/me
func (h *AuthHTTP) Me() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := guard.GetSession(r.Context())
		if s == nil {
			utils.Error(w, http.StatusUnauthorized, "not authenticated")
			return
		}

		// Load full profile
		p, err := h.profiles.GetByID(r.Context(), s.User.ID)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		if p == nil {
			utils.Error(w, http.StatusNotFound, "profile not found")
			return
		}
		utils.JSON(w, http.StatusOK, map[string]any{
			"session": s,
			"profile": p,
		})
	}
}
