package llmprovider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrAllProvidersFailed    = errors.New("all providers failed")
	ErrNoProvidersConfigured = errors.New("no providers configured")

	// ErrInvalidRequest is not retried on the same provider; another vendor may still accept it.
	ErrInvalidRequest = errors.New("invalid request")

	ErrProviderTimeout = errors.New("provider timeout")

	// ErrProviderRateLimited skips the remaining retries of that provider.
	ErrProviderRateLimited = errors.New("provider rate limited")
)

// ProviderError records which provider failed.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// wrapError tags a client failure with the sentinel matching its cause.
// status is the HTTP status the vendor answered with, 0 if none.
func wrapError(provider string, status int, err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		err = fmt.Errorf("%w: %w", ErrProviderTimeout, err)
	case status == http.StatusTooManyRequests:
		err = fmt.Errorf("%w: %w", ErrProviderRateLimited, err)
	case status == http.StatusBadRequest:
		err = fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	return &ProviderError{Provider: provider, Err: err}
}

// retryable reports whether another attempt on the same provider can succeed.
func retryable(err error) bool {
	return !errors.Is(err, ErrInvalidRequest) && !errors.Is(err, ErrProviderRateLimited)
}
