// Package careersdk is a Go client for the careers service API.
//
// Public operations (the careers page lookup and health probes) hang off
// SDKClient. Everything that acts on behalf of a user goes through a Session
// holding an identity provider token:
//
//	client := careersdk.NewSDKClient("https://careers.example.com")
//	session := client.NewSession(idToken)
//
//	tenant, err := session.CreateTenant(ctx, careersdk.CreateTenantRequest{Name: "Acme Corp"})
//	invite, err := session.CreateInvite(ctx, tenant.Slug, careersdk.CreateInviteRequest{
//		Email: "bob@acme.com",
//		Role:  careersdk.RoleEditor,
//	})
//
// Errors returned by the server are *APIError values; use the Is* helpers or
// compare Code against the ErrorCode constants.
package careersdk
