package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"ai-receptionist/internal/conversation"
	"ai-receptionist/internal/conversation/repository"
	"ai-receptionist/internal/model"
	pkgLog "ai-receptionist/pkg/log"
)

// CreateSession opens an empty dialogue and persists it with a full TTL.
// A failed write is logged; the id is still returned and later reads report the session as absent.
func (uc *implUseCase) CreateSession(ctx context.Context, input conversation.CreateSessionInput) (conversation.CreateSessionOutput, error) {
	now := uc.now()
	session := model.ConversationSession{
		SessionID:      uuid.NewString(),
		CallID:         input.CallID,
		PhoneNumber:    input.PhoneNumber,
		Context:        defaultString(input.Context, conversation.DefaultContext),
		Language:       defaultString(input.Language, conversation.DefaultLanguage),
		CreatedAt:      now,
		LastActivityAt: now,
		Messages:       []model.Message{},
		UserProfile:    map[string]any{},
	}

	ctx = pkgLog.WithFields(ctx, "session_id", session.SessionID, "call_id", session.CallID)

	if err := uc.repo.Put(ctx, session, uc.cfg.TTL); err != nil {
		uc.l.Errorf(ctx, "conversation.usecase.CreateSession: failed to save session: %v", err)
	} else {
		uc.l.Infof(ctx, "conversation.usecase.CreateSession: created session for %s", session.PhoneNumber)
	}

	return conversation.CreateSessionOutput{
		SessionID:      session.SessionID,
		WelcomeMessage: conversation.WelcomeMessage,
		CreatedAt:      now,
	}, nil
}

// GetSession returns a snapshot of the stored session.
func (uc *implUseCase) GetSession(ctx context.Context, sessionID string) (model.ConversationSession, error) {
	return uc.loadSession(ctx, sessionID)
}

// EndSession removes the session. It never fails; store errors are logged.
func (uc *implUseCase) EndSession(ctx context.Context, sessionID string) error {
	ctx = pkgLog.WithFields(ctx, "session_id", sessionID)
	if strings.TrimSpace(sessionID) == "" {
		return nil
	}
	if err := uc.repo.Delete(ctx, sessionID); err != nil {
		uc.l.Warnf(ctx, "conversation.usecase.EndSession: failed to delete session: %v", err)
		return nil
	}
	uc.l.Infof(ctx, "conversation.usecase.EndSession: session ended")
	return nil
}

func (uc *implUseCase) loadSession(ctx context.Context, sessionID string) (model.ConversationSession, error) {
	if strings.TrimSpace(sessionID) == "" {
		return model.ConversationSession{}, conversation.ErrSessionNotFound
	}
	session, err := uc.repo.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrInvalidID) {
			return model.ConversationSession{}, conversation.ErrSessionNotFound
		}
		uc.l.Errorf(ctx, "conversation.usecase.loadSession: %v", err)
		return model.ConversationSession{}, fmt.Errorf("%w: %v", conversation.ErrStoreUnavailable, err)
	}
	return session, nil
}

// saveSession writes best-effort; the turn result never depends on it.
func (uc *implUseCase) saveSession(ctx context.Context, session model.ConversationSession) {
	if err := uc.repo.Put(ctx, session, uc.cfg.TTL); err != nil {
		uc.l.Errorf(ctx, "conversation.usecase.saveSession: %v", err)
	}
}

func defaultString(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}
