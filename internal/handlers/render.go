package handlers

import (
	"net/http"

	"ezzleads/internal/guard"
	"ezzleads/internal/web/flash"
	"ezzleads/internal/web/pages"

	"github.com/a-h/templ"
)

// renderPage wraps body in the layout, consuming any pending flash notice
// unless page already carries one.
func renderPage(w http.ResponseWriter, r *http.Request, status int, page pages.Page, body templ.Component) {
	if page.Session == nil {
		page.Session = guard.GetSession(r.Context())
	}
	if n, ok := flash.ReadAndClear(w, r); ok && page.Notice == nil {
		page.Notice = &n
	}
	templ.Handler(pages.Layout(page, body), templ.WithStatus(status)).ServeHTTP(w, r)
}

func notice(n flash.Notice) *flash.Notice { return &n }
