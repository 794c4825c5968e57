package llmprovider

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ai-receptionist/pkg/log"
)

// Manager walks the providers in priority order, retrying each before falling back to the next.
type Manager struct {
	providers []Provider
	config    *Config
	logger    log.Logger
}

// Config tunes retry and fallback.
type Config struct {
	FallbackEnabled bool
	RetryAttempts   int           // attempts per provider, at least 1
	RetryDelay      time.Duration // grows linearly with the attempt number
	MaxTotalTimeout time.Duration // bounds the whole chain, 0 for none
}

// NewManager expects providers already sorted by priority (see InitializeProviders).
func NewManager(providers []Provider, config *Config, logger log.Logger) *Manager {
	if config.RetryAttempts < 1 {
		config.RetryAttempts = 1
	}
	return &Manager{
		providers: providers,
		config:    config,
		logger:    logger,
	}
}

// GenerateContent returns the first successful answer. When every provider fails the error
// wraps ErrAllProvidersFailed and the last ProviderError.
func (m *Manager) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	if len(m.providers) == 0 {
		return nil, ErrNoProvidersConfigured
	}
	if req == nil || len(req.Messages) == 0 {
		return nil, fmt.Errorf("%w: no messages", ErrInvalidRequest)
	}

	if m.config.MaxTotalTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.config.MaxTotalTimeout)
		defer cancel()
	}

	var lastErr error
	for i, provider := range m.providers {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: gave up after %d provider(s): %w", ErrProviderTimeout, i, err)
		}

		resp, err := m.generateWithRetry(ctx, provider, req)
		if err == nil {
			m.logSuccess(ctx, provider, resp)
			return resp, nil
		}

		m.logFailure(ctx, provider, err)
		lastErr = err

		if !m.config.FallbackEnabled {
			break
		}
	}

	return nil, fmt.Errorf("%w: %w", ErrAllProvidersFailed, lastErr)
}

func (m *Manager) generateWithRetry(ctx context.Context, provider Provider, req *Request) (*Response, error) {
	var lastErr error

	for attempt := 0; attempt < m.config.RetryAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(time.Duration(attempt) * m.config.RetryDelay):
			case <-ctx.Done():
				return nil, &ProviderError{Provider: provider.Name(), Err: fmt.Errorf("%w: %w", ErrProviderTimeout, ctx.Err())}
			}
		}

		resp, err := provider.GenerateContent(ctx, req)
		if err == nil {
			return resp, nil
		}

		var perr *ProviderError
		if !errors.As(err, &perr) {
			err = wrapError(provider.Name(), 0, err)
		}
		lastErr = err

		if !retryable(err) {
			break
		}
	}

	return nil, lastErr
}

func (m *Manager) logSuccess(ctx context.Context, provider Provider, resp *Response) {
	usage := resp.Usage
	if usage == nil {
		usage = &Usage{}
	}
	m.logger.Infof(ctx, "llmprovider.Manager: generated with %s (%s), tokens in=%d out=%d",
		provider.Name(), provider.Model(), usage.InputTokens, usage.OutputTokens)
}

func (m *Manager) logFailure(ctx context.Context, provider Provider, err error) {
	m.logger.Warnf(ctx, "llmprovider.Manager: %s (%s) failed: %v", provider.Name(), provider.Model(), err)
}
