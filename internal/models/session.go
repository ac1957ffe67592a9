package models

import (
	"slices"
	"time"
)

// SessionUser is the identity carried by a session token.
type SessionUser struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   Role   `json:"role"`
	Status Status `json:"status"`
}

type Session struct {
	User      SessionUser `json:"user"`
	ExpiresAt time.Time   `json:"expiresAt"`
}

// HasRole reports whether the session role is one of roles.
func (s *Session) HasRole(roles ...Role) bool {
	return s != nil && slices.Contains(roles, s.User.Role)
}

func (s *Session) IsActive() bool {
	return s != nil && s.User.Status == StatusActive
}

// SessionFromProfile builds the session identity for p.
func SessionFromProfile(p UserProfile, expiresAt time.Time) *Session {
	return &Session{
		User: SessionUser{
			ID:     p.ID,
			Email:  p.Email,
			Name:   p.Name(),
			Role:   p.Role,
			Status: p.Status,
		},
		ExpiresAt: expiresAt,
	}
}
