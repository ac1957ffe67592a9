package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"ezzleads/internal/cache"
	"ezzleads/internal/config"
	"ezzleads/internal/handlers"
	mw "ezzleads/internal/middleware"
	"ezzleads/internal/models"
	"ezzleads/internal/repository"
	"ezzleads/internal/service"
	"ezzleads/internal/web"
)

// Deps are the long-lived collaborators the routes are built from.
type Deps struct {
	Repos  repository.Repos
	Cache  cache.Store
	Mailer service.Mailer
	// Health lists the dependencies /healthz pings.
	Health map[string]handlers.Pinger
}

func New(log zerolog.Logger, cfg config.Config, d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(mw.RequestLogger(log))
	r.Use(mw.Recoverer(log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.Origin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))
	r.Use(httprate.LimitByIP(cfg.RateLimitPerMinute, time.Minute))

	// Services
	auth := service.NewAuthService(d.Repos.Users, d.Repos.Profiles, d.Cache, d.Mailer, service.AuthConfig{
		SessionSecret: cfg.SessionSecret,
		SessionTTL:    cfg.SessionTTL,
		ResetTokenTTL: cfg.ResetTokenTTL,
	}, log)
	dash := service.NewDashboardService(service.DashboardRepos{
		Leads:    d.Repos.Leads,
		Profiles: d.Repos.Profiles,
		Wallets:  d.Repos.Wallets,
		Credits:  d.Repos.Credits,
		CRM:      d.Repos.CRM,
	}, d.Cache, cfg.MetricsCacheTTL, log)

	r.Use(mw.WithAuth(log, auth, cfg.SecureCookies))

	// Health + metrics
	r.Get("/healthz", handlers.Health(d.Health))
	r.Handle("/metrics", promhttp.Handler())
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServerFS(web.Static())))

	// Pages
	ap := handlers.NewAuthPages(auth, d.Repos.Profiles, handlers.AuthPagesConfig{
		SiteURL:       cfg.SiteURL,
		SecureCookies: cfg.SecureCookies,
	}, log)
	dp := handlers.NewDashboardPages(dash, d.Repos.Leads, d.Repos.Credits, log)

	r.Get("/", handlers.HomePage())
	r.Get("/login", ap.LoginForm())
	r.Post("/login", ap.Login())
	r.Get("/register", ap.RegisterForm())
	r.Post("/register", ap.Register())
	r.Get("/forgot-password", ap.ForgotPasswordForm())
	r.Post("/forgot-password", ap.ForgotPassword())
	r.Get("/reset-password", ap.ResetPasswordForm())
	r.Post("/reset-password", ap.ResetPassword())
	r.Post("/logout", ap.Logout())
	r.Get("/unauthorized", handlers.UnauthorizedPage())
	r.Get("/account-suspended", handlers.SuspendedPage())
	r.NotFound(handlers.NotFoundPage())

	r.Route("/dashboard", func(r chi.Router) {
		r.Get("/", dp.Index())
		r.Route("/buyer", func(r chi.Router) {
			r.Use(mw.RequirePage(mw.Roles(models.RoleBuyer), mw.Active()))
			r.Get("/", dp.Buyer())
			r.Get("/credits", dp.CreditsForm())
			r.Post("/credits", dp.RequestCredits())
		})
		r.Route("/agent", func(r chi.Router) {
			r.Use(mw.RequirePage(mw.Roles(models.RoleAgent), mw.Active()))
			r.Get("/", dp.Agent())
			r.Get("/leads", dp.AgentLeads())
			r.Get("/submit-lead", dp.SubmitLeadForm())
			r.Post("/submit-lead", dp.SubmitLead())
		})
		r.Route("/manager", func(r chi.Router) {
			r.Use(mw.RequirePage(mw.Roles(models.RoleManager), mw.Active()))
			r.Get("/", dp.Manager())
		})
	})

	// API
	ah := handlers.NewAuthHTTP(auth, d.Repos.Profiles, cfg.SecureCookies, log)
	uh := handlers.NewUserHTTP(d.Repos.Profiles, dash, log)
	lh := handlers.NewLeadHTTP(d.Repos.Leads, dash, log)
	wh := handlers.NewWalletHTTP(d.Repos.Wallets)
	ch := handlers.NewCreditHTTP(d.Repos.Credits, dash)
	crm := handlers.NewCRMHTTP(d.Repos.CRM)
	rh := handlers.NewReportsHTTP(d.Repos.Leads, d.Repos.Credits)
	sw := handlers.NewSessionWatch(auth, cfg.SessionPollInterval, log)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", ah.Login())
		r.Post("/auth/logout", ah.Logout())
		r.Get("/session/watch", sw.Watch())

		r.Group(func(r chi.Router) {
			r.Use(mw.RequireAPI(mw.Authenticated(), mw.Active()))
			r.Get("/me", ah.Me())
			r.Get("/wallet", wh.Get())

			r.Route("/profiles/{id}", func(r chi.Router) {
				r.Use(mw.RequireSelfOrRoles(models.RoleManager))
				r.Get("/", uh.GetProfile())
				r.Patch("/", uh.UpdateProfile())
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(mw.RequireAPI(mw.Roles(models.RoleManager), mw.Active()))
			r.Get("/users", uh.List())
			r.Patch("/users/{id}/role", uh.UpdateRole())
			r.Patch("/users/{id}/status", uh.UpdateStatus())
			r.Get("/credit-requests", ch.List())
			r.Get("/reports/summary", rh.Summary())
		})

		r.Group(func(r chi.Router) {
			r.Use(mw.RequireAPI(mw.Roles(models.RoleAgent), mw.Active()))
			r.Get("/leads", lh.List())
			r.Post("/leads", lh.Create())
		})

		r.Group(func(r chi.Router) {
			r.Use(mw.RequireAPI(mw.Roles(models.RoleBuyer), mw.Active()))
			r.Post("/credit-requests", ch.Create())
			r.Get("/crm/leads", crm.List())
			r.Post("/crm/leads/{id}/activities", crm.AddActivity())
		})
	})

	return r
}
