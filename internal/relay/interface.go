package relay

import (
	"context"

	"ai-receptionist/internal/relay/protocol"
)

// Sender delivers outbound frames to the transport that drives a call.
type Sender interface {
	Send(ctx context.Context, msg protocol.Outbound) error
}

//go:generate mockery --name UseCase
type UseCase interface {
	CallStart(ctx context.Context, input CallStartInput, sender Sender) error
	AudioChunk(ctx context.Context, input AudioChunkInput, sender Sender) error
	CallEnd(ctx context.Context, callID string) error

	// Disconnect ends every call started by the connection and returns how many were ended.
	Disconnect(ctx context.Context, connectionID string) int

	Call(callID string) (CallSession, bool)
	ActiveCalls() int
}
