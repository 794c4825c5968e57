package usecase

import (
	"context"

	"ai-receptionist/internal/conversation"
	"ai-receptionist/internal/relay"
	"ai-receptionist/internal/relay/protocol"
	pkgLog "ai-receptionist/pkg/log"
)

// AudioChunk runs one dialogue turn for the call and sends the reply.
// Pipeline failures still produce a reply so the caller is never left in silence.
func (uc *implUseCase) AudioChunk(ctx context.Context, input relay.AudioChunkInput, sender relay.Sender) error {
	call, err := uc.resolve(input)
	if err != nil {
		return err
	}
	ctx = pkgLog.WithFields(ctx, "call_id", call.CallID, "session_id", call.AISessionID)

	result, err := uc.conv.ProcessTurn(ctx, conversation.ProcessTurnInput{
		SessionID: call.AISessionID,
		Audio:     input.Audio,
	})
	if err != nil {
		uc.l.Errorf(ctx, "relay.usecase.AudioChunk: %v", err)
		result = conversation.TurnResult{
			SessionID: call.AISessionID,
			ReplyText: conversation.ApologyReply,
		}
	}

	return sender.Send(ctx, protocol.AIResponse{
		CallID:        call.CallID,
		SessionID:     result.SessionID,
		Transcript:    result.Transcript,
		TextResponse:  result.ReplyText,
		AudioResponse: result.ReplyAudio,
	})
}

// resolve finds the target call and returns a snapshot of it.
func (uc *implUseCase) resolve(input relay.AudioChunkInput) (relay.CallSession, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	var call *relay.CallSession
	if input.CallID != "" {
		call = uc.calls[input.CallID]
	} else {
		call = uc.findOnConnection(input.ConnectionID, input.SessionID)
	}

	if call == nil {
		return relay.CallSession{}, relay.ErrCallNotFound
	}
	if !call.Bound() {
		return relay.CallSession{}, relay.ErrCallNotBound
	}
	return *call, nil
}

// findOnConnection matches by session id, or picks the connection's only call.
// Caller holds uc.mu.
func (uc *implUseCase) findOnConnection(connectionID, sessionID string) *relay.CallSession {
	if connectionID == "" {
		return nil
	}
	var only *relay.CallSession
	count := 0
	for _, call := range uc.calls {
		if call.ConnectionID != connectionID {
			continue
		}
		if sessionID != "" && call.AISessionID == sessionID {
			return call
		}
		only = call
		count++
	}
	if sessionID == "" && count == 1 {
		return only
	}
	return nil
}
