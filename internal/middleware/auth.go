package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"ezzleads/internal/guard"
	"ezzleads/internal/models"
	"ezzleads/internal/web/sessioncookie"

	"github.com/rs/zerolog"
)

// SessionSource verifies and reissues session tokens.
type SessionSource interface {
	Session(token string) (*models.Session, error)
	NeedsRefresh(s *models.Session, now time.Time) bool
	Issue(ctx context.Context, userID string) (string, *models.Session, error)
}

// WithAuth resolves the session from the session cookie or an
// Authorization: Bearer header and stores it in the request context.
// Cookie sessions close to expiry are reissued from the current profile.
func WithAuth(log zerolog.Logger, src SessionSource, secureCookies bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tok, fromCookie := sessioncookie.Read(r)
			if !fromCookie {
				if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
					tok = strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
				}
			}
			if tok == "" {
				next.ServeHTTP(w, r) // unauthenticated; guards decide
				return
			}

			s, err := src.Session(tok)
			if err != nil {
				// clear broken/expired cookie so it stops being sent
				if fromCookie {
					sessioncookie.Clear(w, secureCookies)
				}
				next.ServeHTTP(w, r)
				return
			}

			if fromCookie && src.NeedsRefresh(s, time.Now()) {
				fresh, fs, err := src.Issue(r.Context(), s.User.ID)
				if err != nil {
					log.Warn().Err(err).Str("user_id", s.User.ID).Msg("session refresh failed")
				} else {
					sessioncookie.Write(w, fresh, fs.ExpiresAt, secureCookies)
					s = fs
				}
			}

			next.ServeHTTP(w, r.WithContext(guard.WithSession(r.Context(), s)))
		})
	}
}
