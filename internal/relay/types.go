package relay

import "time"

type CallStatus string

const (
	CallStatusActive CallStatus = "active"
	CallStatusEnded  CallStatus = "ended"
)

// CallSession is the relay's record of one live telephony call.
type CallSession struct {
	CallID       string
	PhoneNumber  string
	StartTime    time.Time
	Status       CallStatus
	AISessionID  string // empty until the conversation session is created
	ConnectionID string
}

// Bound reports whether the call has a conversation session.
func (c CallSession) Bound() bool {
	return c.AISessionID != ""
}

// --- UseCase Inputs ---

type CallStartInput struct {
	ConnectionID string
	CallID       string
	PhoneNumber  string
	Context      string
	Language     string
}

// AudioChunkInput identifies the call by CallID, or failing that by SessionID
// among the calls driven by ConnectionID.
type AudioChunkInput struct {
	ConnectionID string
	CallID       string
	SessionID    string
	Audio        []byte
}
