package providers

import (
	"errors"
	"fmt"
)

// ErrorCategory normalizes provider failures so the enrichment service
// can decide on retry and fallback behavior without knowing which
// upstream API failed.
type ErrorCategory string

const (
	// ErrorTimeout: the provider took too long to respond.
	ErrorTimeout ErrorCategory = "timeout"

	// ErrorBadData: the provider returned malformed or inconsistent data.
	ErrorBadData ErrorCategory = "bad_data"

	// ErrorOutage: the provider is unreachable or down.
	ErrorOutage ErrorCategory = "provider_outage"

	// ErrorNotFound: the GSTIN has no record at this provider.
	ErrorNotFound ErrorCategory = "not_found"

	// ErrorRateLimited: the provider throttled the request.
	ErrorRateLimited ErrorCategory = "rate_limited"

	// ErrorInternal: an unexpected local failure.
	ErrorInternal ErrorCategory = "internal"
)

// ProviderError carries the category alongside the provider identity so
// logs and metrics can attribute failures.
type ProviderError struct {
	Category   ErrorCategory
	ProviderID string
	Message    string
	Underlying error
	Retryable  bool
}

func (e *ProviderError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("provider %s [%s]: %s: %v", e.ProviderID, e.Category, e.Message, e.Underlying)
	}
	return fmt.Sprintf("provider %s [%s]: %s", e.ProviderID, e.Category, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Underlying
}

// NewProviderError builds a categorized error. Timeouts, outages and
// throttling are marked retryable; data and lookup failures are not.
func NewProviderError(category ErrorCategory, providerID, message string, underlying error) *ProviderError {
	retryable := category == ErrorTimeout ||
		category == ErrorOutage ||
		category == ErrorRateLimited

	return &ProviderError{
		Category:   category,
		ProviderID: providerID,
		Message:    message,
		Underlying: underlying,
		Retryable:  retryable,
	}
}

// IsRetryable reports whether a retry on the next batch might succeed.
func IsRetryable(err error) bool {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Retryable
	}
	return false
}

// Category extracts the failure category, defaulting to internal for
// errors that did not come from a provider.
func Category(err error) ErrorCategory {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Category
	}
	return ErrorInternal
}
