package repository

import "ezzleads/internal/models"

// ProfileFilter narrows a profile listing. Zero values mean "any".
type ProfileFilter struct {
	Q      string // matches email or display name
	Role   models.Role
	Status models.Status
	Limit  int
	Offset int
}

// Normalize clamps paging to the range the repositories accept.
func (f ProfileFilter) Normalize() ProfileFilter {
	f.Limit, f.Offset = ClampPage(f.Limit, f.Offset)
	return f
}

// ClampPage applies the default page size of 50 and a ceiling of 200.
func ClampPage(limit, offset int) (int, int) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
