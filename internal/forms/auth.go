package forms

import (
	"net/http"
	"strings"

	"ezzleads/internal/models"
)

const (
	msgInvalidEmail     = "Invalid email address"
	msgPasswordLength   = "Password must be at least 8 characters"
	msgPasswordClasses  = "Password must contain uppercase, lowercase, and number"
	msgPasswordMismatch = "Passwords don't match"
)

var passwordMessages = Messages{
	"email":                     msgInvalidEmail,
	"password.min":              msgPasswordLength,
	"password.password_classes": msgPasswordClasses,
	"confirmPassword":           msgPasswordMismatch,
}

type Register struct {
	Email           string      `form:"email" json:"email" validate:"required,email"`
	Password        string      `form:"password" json:"password" validate:"min=8,password_classes"`
	ConfirmPassword string      `form:"confirmPassword" json:"confirmPassword" validate:"eqfield=Password"`
	DisplayName     string      `form:"displayName" json:"displayName" validate:"min=2"`
	Role            models.Role `form:"role" json:"role" validate:"oneof=buyer agent"`
}

var registerMessages = merged(passwordMessages, Messages{
	"displayName": "Name must be at least 2 characters",
	"role":        "Please select a role",
})

func (f *Register) Normalize() {
	f.Email = strings.TrimSpace(f.Email)
	f.DisplayName = strings.TrimSpace(f.DisplayName)
	f.Role = models.Role(strings.TrimSpace(string(f.Role)))
}

func (f Register) Validate() Errors { return check(f, registerMessages) }

func RegisterFromRequest(r *http.Request) Register {
	f := Register{
		Email:           r.PostFormValue("email"),
		Password:        r.PostFormValue("password"),
		ConfirmPassword: r.PostFormValue("confirmPassword"),
		DisplayName:     r.PostFormValue("displayName"),
		Role:            models.Role(r.PostFormValue("role")),
	}
	f.Normalize()
	return f
}

type Login struct {
	Email    string `form:"email" json:"email" validate:"required,email"`
	Password string `form:"password" json:"password" validate:"required"`
}

var loginMessages = Messages{
	"email":    msgInvalidEmail,
	"password": "Password is required",
}

func (f Login) Validate() Errors { return check(f, loginMessages) }

func LoginFromRequest(r *http.Request) Login {
	return Login{
		Email:    strings.TrimSpace(r.PostFormValue("email")),
		Password: r.PostFormValue("password"),
	}
}

type ForgotPassword struct {
	Email string `form:"email" json:"email" validate:"required,email"`
}

func (f ForgotPassword) Validate() Errors {
	return check(f, Messages{"email": msgInvalidEmail})
}

func ForgotPasswordFromRequest(r *http.Request) ForgotPassword {
	return ForgotPassword{Email: strings.TrimSpace(r.PostFormValue("email"))}
}

type ResetPassword struct {
	Token           string `form:"token" json:"token" validate:"required"`
	Password        string `form:"password" json:"password" validate:"min=8,password_classes"`
	ConfirmPassword string `form:"confirmPassword" json:"confirmPassword" validate:"eqfield=Password"`
}

func (f ResetPassword) Validate() Errors {
	return check(f, merged(passwordMessages, Messages{"token": "Reset link is invalid or has expired"}))
}

func ResetPasswordFromRequest(r *http.Request) ResetPassword {
	return ResetPassword{
		Token:           strings.TrimSpace(r.PostFormValue("token")),
		Password:        r.PostFormValue("password"),
		ConfirmPassword: r.PostFormValue("confirmPassword"),
	}
}

type Profile struct {
	DisplayName string `form:"displayName" json:"displayName" validate:"min=2,max=80"`
}

func (f Profile) Validate() Errors {
	return check(f, Messages{"displayName": "Name must be between 2 and 80 characters"})
}

func merged(a, b Messages) Messages {
	out := make(Messages, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}
