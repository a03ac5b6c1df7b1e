package service

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrUnauthenticated        = errors.New("unauthenticated")
	ErrMissingSlug            = errors.New("tenant slug is required")
	ErrValidation             = errors.New("validation failed")
	ErrTenantNotFound         = errors.New("tenant not found")
	ErrForbidden              = errors.New("forbidden")
	ErrDuplicatePendingInvite = errors.New("an invite is already pending for this email")
	ErrInvalidOrExpiredInvite = errors.New("invite is invalid or has expired")
	ErrEmailMismatch          = errors.New("invite was issued to a different email")
	ErrSlugAlreadyExists      = errors.New("slug already exists")
	ErrStoreUnavailable       = errors.New("store unavailable")
)

// outcomes are the errors a caller can act on. Anything else coming out of
// the store is a fault.
var outcomes = []error{
	ErrUnauthenticated,
	ErrMissingSlug,
	ErrValidation,
	ErrTenantNotFound,
	ErrForbidden,
	ErrDuplicatePendingInvite,
	ErrInvalidOrExpiredInvite,
	ErrEmailMismatch,
	ErrSlugAlreadyExists,
	ErrStoreUnavailable,
}

// IsRetryable reports whether err is transient and the call may be retried
// unchanged.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrStoreUnavailable)
}

// storeFault passes known outcomes through and folds everything else,
// deadlines included, into ErrStoreUnavailable.
func storeFault(err error) error {
	if err == nil {
		return nil
	}
	for _, known := range outcomes {
		if errors.Is(err, known) {
			return err
		}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: deadline exceeded", ErrStoreUnavailable)
	}
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}
