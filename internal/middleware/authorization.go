package middleware

import (
	"net/http"

	"ezzleads/internal/guard"
	"ezzleads/internal/metrics"
	"ezzleads/internal/models"
	"ezzleads/internal/utils"
)

// Check is one guard applied to the current session.
type Check func(*models.Session) (*models.Session, guard.Decision)

// RequirePage redirects with 303 See Other to the decision's path when any
// check fails. The next handler only runs once every check allows.
func RequirePage(checks ...Check) func(http.Handler) http.Handler {
	m := metrics.Default()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s := guard.GetSession(r.Context())
			for _, c := range checks {
				var d guard.Decision
				if s, d = c(s); !d.Allowed() {
					m.GuardRedirects.WithLabelValues(d.Path).Inc()
					http.Redirect(w, r, d.Path, http.StatusSeeOther)
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAPI is the JSON counterpart of RequirePage: a missing session is
// 401 and any other failure 403.
func RequireAPI(checks ...Check) func(http.Handler) http.Handler {
	m := metrics.Default()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s := guard.GetSession(r.Context())
			for _, c := range checks {
				var d guard.Decision
				if s, d = c(s); !d.Allowed() {
					m.GuardRedirects.WithLabelValues(d.Path).Inc()
					switch d.Path {
					case guard.PathLogin:
						utils.Error(w, http.StatusUnauthorized, "authentication required")
					case guard.PathSuspended:
						utils.Error(w, http.StatusForbidden, "account is not active")
					default:
						utils.Error(w, http.StatusForbidden, "forbidden")
					}
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Authenticated requires any session.
func Authenticated() Check { return guard.RequireAuth }

// Active requires an active account.
func Active() Check { return guard.CheckActiveStatus }

// Roles requires one of roles.
func Roles(roles ...models.Role) Check {
	roles = append([]models.Role(nil), roles...)
	return func(s *models.Session) (*models.Session, guard.Decision) {
		return guard.RequireRole(s, roles...)
	}
}
