package repository

import (
	"context"
	"time"

	"ai-receptionist/internal/model"
)

// Repository is the TTL-expiring session store. Implementations must be safe for concurrent use.
// Only single-key operations are offered; concurrent writers to one key are last-writer-wins.
type Repository interface {
	// Put upserts the session and resets its expiry to ttl from now.
	Put(ctx context.Context, session model.ConversationSession, ttl time.Duration) error

	// Get returns ErrNotFound both for keys never written and for expired keys.
	Get(ctx context.Context, sessionID string) (model.ConversationSession, error)

	// Delete is idempotent.
	Delete(ctx context.Context, sessionID string) error

	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error
}
