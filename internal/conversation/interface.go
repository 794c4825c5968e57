package conversation

import (
	"context"

	"ai-receptionist/internal/model"
)

//go:generate mockery --name UseCase
type UseCase interface {
	// Session lifecycle
	CreateSession(ctx context.Context, input CreateSessionInput) (CreateSessionOutput, error)
	GetSession(ctx context.Context, sessionID string) (model.ConversationSession, error)
	EndSession(ctx context.Context, sessionID string) error

	// ProcessTurn turns one inbound audio chunk into one dialogue turn.
	ProcessTurn(ctx context.Context, input ProcessTurnInput) (TurnResult, error)

	// Standalone speech helpers
	Transcribe(ctx context.Context, input TranscribeInput) (TranscribeOutput, error)
	Synthesize(ctx context.Context, input SynthesizeInput) (SynthesizeOutput, error)
}

// Transcriber converts speech audio to text. An empty string is a valid result.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, language string) (string, error)
}

// Generator produces the assistant reply for a system prompt and an ordered history.
type Generator interface {
	Generate(ctx context.Context, systemPrompt string, messages []model.Message) (string, error)
}

// Synthesizer converts text to speech audio.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}
