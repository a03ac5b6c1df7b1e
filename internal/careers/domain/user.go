package domain

import "time"

// User mirrors an identity verified by the identity provider. Credentials
// never reach this service.
type User struct {
	ID          string // identity provider subject
	Email       string
	DisplayName string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Identity is a verified caller as produced by the authn middleware.
type Identity struct {
	UserID string
	Email  string
	Name   string
}

// User converts the identity into the local mirror record.
func (i Identity) User() User {
	return User{
		ID:          i.UserID,
		Email:       i.Email,
		DisplayName: i.Name,
	}
}
