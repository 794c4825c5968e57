package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	repo "ai-receptionist/internal/conversation/repository"
	"ai-receptionist/internal/model"
)

// Put stores the session as JSON under session:<id> with SET ... EX ttl.
func (r *implRepository) Put(ctx context.Context, session model.ConversationSession, ttl time.Duration) error {
	if session.SessionID == "" {
		return repo.ErrInvalidID
	}

	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("%s: marshal: %w", r.dsn("Put"), err)
	}

	if err := r.rdb.Set(ctx, repo.Key(session.SessionID), payload, ttl).Err(); err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("Put"), err)
		return fmt.Errorf("%w: %v", repo.ErrUnavailable, err)
	}
	return nil
}

// Get loads a session. A missing key maps to ErrNotFound.
func (r *implRepository) Get(ctx context.Context, sessionID string) (model.ConversationSession, error) {
	if sessionID == "" {
		return model.ConversationSession{}, repo.ErrNotFound
	}

	raw, err := r.rdb.Get(ctx, repo.Key(sessionID)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return model.ConversationSession{}, repo.ErrNotFound
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("Get"), err)
		return model.ConversationSession{}, fmt.Errorf("%w: %v", repo.ErrUnavailable, err)
	}

	var session model.ConversationSession
	if err := json.Unmarshal(raw, &session); err != nil {
		// A corrupt record is as good as absent.
		r.l.Warnf(ctx, "%s: corrupt record for %s: %v", r.dsn("Get"), sessionID, err)
		return model.ConversationSession{}, repo.ErrNotFound
	}
	return session, nil
}

// Delete removes the key. Deleting a missing key is not an error.
func (r *implRepository) Delete(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := r.rdb.Del(ctx, repo.Key(sessionID)).Err(); err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("Delete"), err)
		return fmt.Errorf("%w: %v", repo.ErrUnavailable, err)
	}
	return nil
}

// Ping checks connectivity.
func (r *implRepository) Ping(ctx context.Context) error {
	if err := r.rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: %v", repo.ErrUnavailable, err)
	}
	return nil
}
