package conversation

import "time"

// --- UseCase Inputs ---

type CreateSessionInput struct {
	CallID      string
	PhoneNumber string
	Context     string
	Language    string
}

type ProcessTurnInput struct {
	SessionID string
	Audio     []byte
}

type TranscribeInput struct {
	Audio    []byte
	Language string
}

type SynthesizeInput struct {
	Text string
}

// --- UseCase Outputs ---

type CreateSessionOutput struct {
	SessionID      string
	WelcomeMessage string
	CreatedAt      time.Time
}

// TurnResult is the outcome of one turn. ReplyAudio is nil when synthesis failed.
type TurnResult struct {
	SessionID  string
	Transcript string
	ReplyText  string
	ReplyAudio []byte
}

type TranscribeOutput struct {
	Transcript string
	Language   string
	Confidence float64
}

type SynthesizeOutput struct {
	Audio []byte
	Text  string
}
