package domain

import "time"

// Membership is the (user, tenant, role) grant. It is the only source of
// authorization truth.
type Membership struct {
	UserID    string
	TenantID  string
	Role      Role
	CreatedAt time.Time
}

// TenantMembership pairs a tenant with the caller's membership in it.
type TenantMembership struct {
	Tenant     Tenant
	Membership Membership
}
