package handlers

import (
	"net/http"

	"ezzleads/internal/guard"
	"ezzleads/internal/web/pages"
)

func HomePage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		renderPage(w, r, http.StatusOK, pages.Page{Title: "Real Estate Lead Marketplace"}, pages.Home(guard.GetSession(r.Context())))
	}
}

func UnauthorizedPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		renderPage(w, r, http.StatusForbidden, pages.Page{Title: "Access Denied"}, pages.Unauthorized())
	}
}

func SuspendedPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		renderPage(w, r, http.StatusForbidden, pages.Page{Title: "Account Suspended"}, pages.Suspended())
	}
}

func NotFoundPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		renderPage(w, r, http.StatusNotFound, pages.Page{Title: "Not Found"}, pages.NotFound())
	}
}
