package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-receptionist/internal/conversation"
	"ai-receptionist/internal/conversation/repository"
)

func newTestUseCase(repo repository.Repository, tr conversation.Transcriber, gen conversation.Generator, syn conversation.Synthesizer) *implUseCase {
	return newUseCase(&mockLogger{}, repo, tr, gen, syn, Config{}, newSteppingClock().Now)
}

func TestCreateSession_ThenGet(t *testing.T) {
	repo := newMapRepo()
	uc := newTestUseCase(repo, nil, nil, nil)
	ctx := context.Background()

	out, err := uc.CreateSession(ctx, conversation.CreateSessionInput{CallID: "C1", PhoneNumber: "+15550001"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.SessionID)
	assert.Equal(t, conversation.WelcomeMessage, out.WelcomeMessage)

	s, err := uc.GetSession(ctx, out.SessionID)
	require.NoError(t, err)
	assert.Equal(t, out.SessionID, s.SessionID)
	assert.Equal(t, "C1", s.CallID)
	assert.Equal(t, conversation.DefaultContext, s.Context)
	assert.Equal(t, conversation.DefaultLanguage, s.Language)
	assert.Empty(t, s.Messages)
}

func TestCreateSession_KeepsExplicitContext(t *testing.T) {
	uc := newTestUseCase(newMapRepo(), nil, nil, nil)
	ctx := context.Background()

	out, err := uc.CreateSession(ctx, conversation.CreateSessionInput{CallID: "C1", Context: "dental clinic", Language: "fr-FR"})
	require.NoError(t, err)

	s, err := uc.GetSession(ctx, out.SessionID)
	require.NoError(t, err)
	assert.Equal(t, "dental clinic", s.Context)
	assert.Equal(t, "fr-FR", s.Language)
}

func TestCreateSession_StoreDownStillReturnsID(t *testing.T) {
	repo := newMapRepo()
	repo.putErr = repository.ErrUnavailable
	uc := newTestUseCase(repo, nil, nil, nil)

	out, err := uc.CreateSession(context.Background(), conversation.CreateSessionInput{CallID: "C1"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.SessionID)

	repo.putErr = nil
	_, err = uc.GetSession(context.Background(), out.SessionID)
	assert.ErrorIs(t, err, conversation.ErrSessionNotFound)
}

func TestEndSession(t *testing.T) {
	repo := newMapRepo()
	uc := newTestUseCase(repo, nil, nil, nil)
	ctx := context.Background()

	out, err := uc.CreateSession(ctx, conversation.CreateSessionInput{CallID: "C1"})
	require.NoError(t, err)

	require.NoError(t, uc.EndSession(ctx, out.SessionID))
	_, err = uc.GetSession(ctx, out.SessionID)
	assert.ErrorIs(t, err, conversation.ErrSessionNotFound)

	// Ending twice is fine.
	assert.NoError(t, uc.EndSession(ctx, out.SessionID))

	repo.delErr = errBoom
	assert.NoError(t, uc.EndSession(ctx, "other"))
}

func TestGetSession_Errors(t *testing.T) {
	repo := newMapRepo()
	uc := newTestUseCase(repo, nil, nil, nil)
	ctx := context.Background()

	_, err := uc.GetSession(ctx, "")
	assert.ErrorIs(t, err, conversation.ErrSessionNotFound)

	_, err = uc.GetSession(ctx, "missing")
	assert.ErrorIs(t, err, conversation.ErrSessionNotFound)

	repo.getErr = errors.Join(repository.ErrUnavailable, errBoom)
	_, err = uc.GetSession(ctx, "missing")
	assert.ErrorIs(t, err, conversation.ErrStoreUnavailable)
}
