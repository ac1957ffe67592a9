package models

import "time"

type Role string

const (
	RoleBuyer     Role = "buyer"
	RoleAgent     Role = "agent"
	RoleManager   Role = "manager"
	RoleJVPartner Role = "jv_partner"
)

func (r Role) Valid() bool {
	switch r {
	case RoleBuyer, RoleAgent, RoleManager, RoleJVPartner:
		return true
	}
	return false
}

type Status string

const (
	StatusActive    Status = "active"
	StatusInactive  Status = "inactive"
	StatusSuspended Status = "suspended"
	StatusPending   Status = "pending"
)

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusSuspended, StatusPending:
		return true
	}
	return false
}

// UserProfile mirrors a row of the profiles table.
type UserProfile struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	Role        Role      `json:"role"`
	Status      Status    `json:"status"`
	DisplayName *string   `json:"displayName"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Name returns the display name, falling back to the email.
func (p UserProfile) Name() string {
	if p.DisplayName != nil && *p.DisplayName != "" {
		return *p.DisplayName
	}
	return p.Email
}

// AuthUser is the credential record owned by the auth service.
type AuthUser struct {
	ID        string         `json:"id"`
	Email     string         `json:"email"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}
