package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	repo "ai-receptionist/internal/conversation/repository"
	"ai-receptionist/internal/model"
)

// Put stores an encoded copy so later caller mutations never leak into the store.
func (r *implRepository) Put(ctx context.Context, session model.ConversationSession, ttl time.Duration) error {
	if session.SessionID == "" {
		return repo.ErrInvalidID
	}

	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("conversation/repository/memory.Put: marshal: %w", err)
	}

	r.cache.Add(repo.Key(session.SessionID), entry{
		payload:   payload,
		expiresAt: r.now().Add(ttl),
	})
	return nil
}

func (r *implRepository) Get(ctx context.Context, sessionID string) (model.ConversationSession, error) {
	key := repo.Key(sessionID)

	e, ok := r.cache.Get(key)
	if !ok {
		return model.ConversationSession{}, repo.ErrNotFound
	}
	if !r.now().Before(e.expiresAt) {
		r.cache.Remove(key)
		return model.ConversationSession{}, repo.ErrNotFound
	}

	var session model.ConversationSession
	if err := json.Unmarshal(e.payload, &session); err != nil {
		r.l.Warnf(ctx, "conversation/repository/memory.Get: corrupt record for %s: %v", sessionID, err)
		return model.ConversationSession{}, repo.ErrNotFound
	}
	return session, nil
}

func (r *implRepository) Delete(ctx context.Context, sessionID string) error {
	r.cache.Remove(repo.Key(sessionID))
	return nil
}

func (r *implRepository) Ping(ctx context.Context) error {
	return nil
}
