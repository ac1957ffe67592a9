package handlers

import (
	"errors"
	"net/http"

	"ezzleads/internal/forms"
	"ezzleads/internal/models"
	"ezzleads/internal/repository"
	"ezzleads/internal/service"
	"ezzleads/internal/web/flash"
	"ezzleads/internal/web/pages"
	"ezzleads/internal/web/sessioncookie"

	"github.com/rs/zerolog"
)

type AuthPagesConfig struct {
	SiteURL       string
	SecureCookies bool
}

// AuthPages serves the sign-in, registration and password recovery forms.
type AuthPages struct {
	auth     *service.AuthService
	profiles repository.ProfileRepository
	cfg      AuthPagesConfig
	log      zerolog.Logger
}

func NewAuthPages(auth *service.AuthService, profiles repository.ProfileRepository, cfg AuthPagesConfig, log zerolog.Logger) *AuthPages {
	return &AuthPages{auth: auth, profiles: profiles, cfg: cfg, log: log.With().Str("component", "auth_pages").Logger()}
}

// ---------- login ----------

func (h *AuthPages) LoginForm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		renderPage(w, r, http.StatusOK, pages.Page{Title: "Sign In"}, pages.Login(forms.Login{}, nil, ""))
	}
}

func (h *AuthPages) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f := forms.LoginFromRequest(r)
		if errs := f.Validate(); errs != nil {
			renderPage(w, r, http.StatusUnprocessableEntity, pages.Page{Title: "Sign In"}, pages.Login(f, errs, ""))
			return
		}
		tok, s, err := h.auth.SignIn(r.Context(), f.Email, f.Password)
		if err != nil {
			if !errors.Is(err, service.ErrInvalidCredentials) {
				h.log.Error().Err(err).Msg("sign in failed")
			}
			renderPage(w, r, http.StatusUnauthorized, pages.Page{Title: "Sign In"},
				pages.Login(forms.Login{Email: f.Email}, nil, "Invalid email or password"))
			return
		}
		sessioncookie.Write(w, tok, s.ExpiresAt, h.cfg.SecureCookies)
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
	}
}

// POST /logout
func (h *AuthPages) Logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessioncookie.Clear(w, h.cfg.SecureCookies)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	}
}

// ---------- register ----------

func (h *AuthPages) RegisterForm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		renderPage(w, r, http.StatusOK, pages.Page{Title: "Create Account"}, pages.Register(forms.Register{}, nil))
	}
}

func (h *AuthPages) Register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f := forms.RegisterFromRequest(r)
		if errs := f.Validate(); errs != nil {
			renderPage(w, r, http.StatusUnprocessableEntity, pages.Page{Title: "Create Account"}, pages.Register(f, errs))
			return
		}

		u, err := h.auth.SignUp(r.Context(), service.SignUpInput{
			Email:       f.Email,
			Password:    f.Password,
			DisplayName: f.DisplayName,
			Role:        f.Role,
		})
		if err != nil {
			if !errors.Is(err, service.ErrEmailTaken) {
				h.log.Error().Err(err).Msg("sign up failed")
			}
			msg := service.Message(err, "Something went wrong. Please try again.")
			page := pages.Page{Title: "Create Account", Notice: notice(flash.Error("Registration failed", msg))}
			renderPage(w, r, http.StatusUnprocessableEntity, page, pages.Register(f, nil))
			return
		}

		name := f.DisplayName
		if _, err := h.profiles.Upsert(r.Context(), models.UserProfile{
			ID:          u.ID,
			Email:       u.Email,
			Role:        f.Role,
			Status:      models.StatusActive,
			DisplayName: &name,
		}); err != nil {
			h.log.Warn().Err(err).Str("user_id", u.ID).Msg("profile upsert failed")
		}

		flash.Write(w, flash.Success("Account created successfully!", "Please check your email to verify your account."))
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	}
}

// ---------- password recovery ----------

func (h *AuthPages) ForgotPasswordForm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		renderPage(w, r, http.StatusOK, pages.Page{Title: "Reset Password"}, pages.ForgotPassword(forms.ForgotPassword{}, nil, "", ""))
	}
}

func (h *AuthPages) ForgotPassword() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f := forms.ForgotPasswordFromRequest(r)
		if errs := f.Validate(); errs != nil {
			renderPage(w, r, http.StatusUnprocessableEntity, pages.Page{Title: "Reset Password"}, pages.ForgotPassword(f, errs, "", ""))
			return
		}
		if err := h.auth.ResetPasswordForEmail(r.Context(), f.Email, h.cfg.SiteURL+"/reset-password"); err != nil {
			h.log.Error().Err(err).Msg("reset request failed")
			msg := service.Message(err, "Failed to send reset email.")
			page := pages.Page{Title: "Reset Password", Notice: notice(flash.Error("Error", msg))}
			renderPage(w, r, http.StatusInternalServerError, page, pages.ForgotPassword(f, nil, msg, ""))
			return
		}
		page := pages.Page{Title: "Check Your Email", Notice: notice(flash.Success("Email sent!", "Check your inbox for the password reset link."))}
		renderPage(w, r, http.StatusOK, page, pages.ForgotPassword(f, nil, "", f.Email))
	}
}

func (h *AuthPages) ResetPasswordForm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := r.URL.Query().Get("token")
		renderPage(w, r, http.StatusOK, pages.Page{Title: "Choose a New Password"}, pages.ResetPassword(token, nil, ""))
	}
}

func (h *AuthPages) ResetPassword() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f := forms.ResetPasswordFromRequest(r)
		if errs := f.Validate(); errs != nil {
			renderPage(w, r, http.StatusUnprocessableEntity, pages.Page{Title: "Choose a New Password"}, pages.ResetPassword(f.Token, errs, ""))
			return
		}
		if err := h.auth.ResetPassword(r.Context(), f.Token, f.Password); err != nil {
			msg := "Failed to update password."
			if errors.Is(err, service.ErrInvalidResetToken) {
				msg = "Reset link is invalid or has expired"
			} else {
				h.log.Error().Err(err).Msg("password reset failed")
			}
			renderPage(w, r, http.StatusUnprocessableEntity, pages.Page{Title: "Choose a New Password"}, pages.ResetPassword(f.Token, nil, msg))
			return
		}
		flash.Write(w, flash.Success("Password updated", "Sign in with your new password."))
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	}
}
