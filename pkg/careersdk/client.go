package careersdk

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// SDKClient is a client for the careers service.
// It provides access to unauthenticated operations and can create authenticated Sessions.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewSDKClient creates a new careers service client.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Session performs requests on behalf of the user identified by token, an
// identity provider issued JWT. Token refresh is the caller's concern.
type Session struct {
	client *SDKClient
	token  string
}

// NewSession creates an authenticated session from an identity token.
func (c *SDKClient) NewSession(token string) *Session {
	return &Session{client: c, token: token}
}

// GetTenant fetches the public profile of a tenant. No authentication is
// needed.
func (c *SDKClient) GetTenant(ctx context.Context, slug string) (*TenantResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, tenantPath(slug), nil, nil)
	if err != nil {
		return nil, err
	}

	var tenant TenantResponse
	if err := decodeJSON(resp, &tenant, http.StatusOK); err != nil {
		return nil, err
	}
	return &tenant, nil
}

// GetLiveness checks if the service is alive.
func (c *SDKClient) GetLiveness(ctx context.Context) (*HealthResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/livez", nil, nil)
	if err != nil {
		return nil, err
	}

	var health HealthResponse
	if err := decodeJSON(resp, &health, http.StatusOK); err != nil {
		return nil, err
	}
	return &health, nil
}

// GetReadiness checks if the service is ready.
func (c *SDKClient) GetReadiness(ctx context.Context) (*HealthResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/readyz", nil, nil)
	if err != nil {
		return nil, err
	}

	var health HealthResponse
	if err := decodeJSON(resp, &health, http.StatusOK); err != nil {
		return nil, err
	}
	return &health, nil
}

func tenantPath(slug string) string {
	return "/v1/tenants/" + url.PathEscape(slug)
}
