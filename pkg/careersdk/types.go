package careersdk

import (
	"encoding/json"
	"time"
)

// Roles a membership or invite can carry.
const (
	RoleOwner  = "OWNER"
	RoleAdmin  = "ADMIN"
	RoleEditor = "EDITOR"
	RoleViewer = "VIEWER"
)

// ErrorResponse is the error body of every endpoint.
type ErrorResponse struct {
	// Error is the machine readable error code (see the ErrorCode constants)
	Error string `json:"error"`

	// ErrorDescription is a human-readable description of the error
	ErrorDescription string `json:"error_description"`
}

// ============================================================================
// Tenant Types
// ============================================================================

// CreateTenantRequest is the body of POST /v1/tenants.
type CreateTenantRequest struct {
	// Name is the display name of the company
	Name string `json:"name"`

	// Slug is optional; when empty it is derived from Name
	Slug string `json:"slug,omitempty"`
}

// TenantResponse describes a tenant and its public profile.
type TenantResponse struct {
	ID          string          `json:"id"`
	Slug        string          `json:"slug"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Branding    json.RawMessage `json:"branding" swaggertype:"object"`
	Settings    json.RawMessage `json:"settings" swaggertype:"object"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// UpdateProfileRequest is the body of PATCH /v1/tenants/{slug}. Omitted
// fields are left unchanged.
type UpdateProfileRequest struct {
	Description *string         `json:"description,omitempty"`
	Branding    json.RawMessage `json:"branding,omitempty" swaggertype:"object"`
	Settings    json.RawMessage `json:"settings,omitempty" swaggertype:"object"`
}

// AccessResponse is returned by GET /v1/tenants/{slug}/access when the
// caller may edit the tenant.
type AccessResponse struct {
	Tenant TenantResponse `json:"tenant"`
	Role   string         `json:"role"`
}

// MembershipResponse describes a (user, tenant, role) grant.
type MembershipResponse struct {
	UserID    string    `json:"user_id"`
	TenantID  string    `json:"tenant_id"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// MyTenant pairs a tenant with the caller's role in it.
type MyTenant struct {
	Tenant TenantResponse `json:"tenant"`
	Role   string         `json:"role"`
}

// MyTenantsResponse is returned by GET /v1/me/tenants.
type MyTenantsResponse struct {
	Tenants []MyTenant `json:"tenants"`
}

// ============================================================================
// Invite Types
// ============================================================================

// CreateInviteRequest is the body of POST /v1/tenants/{slug}/invites.
type CreateInviteRequest struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

// InviteResponse describes an invite. Token is only present in the
// response to the request that created it.
type InviteResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	TenantID  string    `json:"tenant_id"`
	InvitedBy string    `json:"invited_by"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
	Token     string    `json:"token,omitempty"`
}

// InviteListResponse is returned by GET /v1/tenants/{slug}/invites.
type InviteListResponse struct {
	Invites []InviteResponse `json:"invites"`
}

// AcceptInviteRequest is the body of POST /v1/invites/accept.
type AcceptInviteRequest struct {
	Token string `json:"token"`
}

// ============================================================================
// Health Types
// ============================================================================

// HealthResponse represents the response structure for health check endpoints.
// Used by both /livez and /readyz endpoints (readyz includes additional Checks field).
type HealthResponse struct {
	// Status indicates the overall health status (e.g., "ok")
	Status string `json:"status"`

	// Uptime is the service uptime duration as a string (e.g., "1h23m45s")
	Uptime string `json:"uptime,omitempty"`

	// Version is the service version string
	Version string `json:"version,omitempty"`

	// Checks contains readiness check results for critical dependencies (only for /readyz)
	Checks *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks represents the status of critical service dependencies.
type HealthChecks struct {
	// Database indicates the database connection status
	Database string `json:"database"`

	// Keys indicates whether identity provider keys are loaded
	Keys string `json:"keys"`
}
