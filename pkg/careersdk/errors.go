package careersdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// Error codes carried in ErrorResponse.Error.
const (
	ErrorCodeInvalidRequest  = "invalid_request"
	ErrorCodeUnauthenticated = "unauthenticated"
	ErrorCodeAccessDenied    = "access_denied"
	ErrorCodeEmailMismatch   = "email_mismatch"
	ErrorCodeNotFound        = "not_found"
	ErrorCodeDuplicateInvite = "duplicate_invite"
	ErrorCodeSlugTaken       = "slug_taken"
	ErrorCodeInviteExpired   = "invite_expired"
	ErrorCodeUnavailable     = "temporarily_unavailable"
	ErrorCodeRateLimited     = "rate_limit_exceeded"
	ErrorCodeServerError     = "server_error"
)

// APIError is a non-2xx response from the service.
type APIError struct {
	// StatusCode is the HTTP status code of the response
	StatusCode int

	// Code is the machine readable error code
	Code string

	// Description is a human-readable description of the error
	Description string

	// RetryAfter is set from the Retry-After header on 429 and 503
	RetryAfter time.Duration
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s (HTTP %d)", e.Code, e.Description, e.StatusCode)
}

// Retryable reports whether the same request may succeed later.
func (e *APIError) Retryable() bool {
	return e.StatusCode == http.StatusServiceUnavailable || e.StatusCode == http.StatusTooManyRequests
}

// HasCode reports whether err is an *APIError with the given code.
func HasCode(err error, code string) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == code
}

func IsAccessDenied(err error) bool { return HasCode(err, ErrorCodeAccessDenied) }
func IsNotFound(err error) bool     { return HasCode(err, ErrorCodeNotFound) }
func IsInviteExpired(err error) bool {
	return HasCode(err, ErrorCodeInviteExpired)
}

// parseErrorResponse turns a non-2xx response into an *APIError. Bodies that
// are not in the error envelope still yield an APIError carrying the status.
func parseErrorResponse(resp *http.Response, body []byte) error {
	apiErr := &APIError{
		StatusCode:  resp.StatusCode,
		Code:        ErrorCodeServerError,
		Description: http.StatusText(resp.StatusCode),
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		apiErr.Code = errResp.Error
		apiErr.Description = errResp.ErrorDescription
	}

	if secs, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil && secs > 0 {
		apiErr.RetryAfter = time.Duration(secs) * time.Second
	}

	return apiErr
}
