package domain

import "time"

// Tenant is a company workspace addressed publicly by its slug.
type Tenant struct {
	ID          string
	Slug        string // immutable once created
	Name        string
	Description string
	Branding    Branding
	Settings    Settings
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProfileUpdate carries the mutable parts of a tenant. Nil fields are left
// untouched.
type ProfileUpdate struct {
	Description *string   `json:"description" validate:"omitempty,max=2000"`
	Branding    *Branding `json:"branding" validate:"omitempty"`
	Settings    *Settings `json:"settings" validate:"omitempty"`
}

// Empty reports whether the update changes nothing.
func (u ProfileUpdate) Empty() bool {
	return u.Description == nil && u.Branding == nil && u.Settings == nil
}
