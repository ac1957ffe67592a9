package middleware

import (
	"net/http"

	"ezzleads/internal/guard"
	"ezzleads/internal/models"
	"ezzleads/internal/utils"

	"github.com/go-chi/chi/v5"
)

// RequireSelfOrRoles allows if {id} is the session user OR the user has any of the given roles.
func RequireSelfOrRoles(roles ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s := guard.GetSession(r.Context())
			if s == nil {
				utils.Error(w, http.StatusUnauthorized, "authentication required")
				return
			}
			if s.HasRole(roles...) || chi.URLParam(r, "id") == s.User.ID {
				next.ServeHTTP(w, r)
				return
			}
			utils.Error(w, http.StatusForbidden, "forbidden")
		})
	}
}
