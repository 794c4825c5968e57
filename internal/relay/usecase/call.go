package usecase

import (
	"context"
	"fmt"
	"time"

	"ai-receptionist/internal/conversation"
	"ai-receptionist/internal/notifier"
	"ai-receptionist/internal/relay"
	"ai-receptionist/internal/relay/protocol"
	pkgLog "ai-receptionist/pkg/log"
)

// CallStart registers the call, opens its conversation session and greets the caller.
// A repeated call id replaces the previous entry.
func (uc *implUseCase) CallStart(ctx context.Context, input relay.CallStartInput, sender relay.Sender) error {
	ctx = pkgLog.WithFields(ctx, "call_id", input.CallID)

	call := &relay.CallSession{
		CallID:       input.CallID,
		PhoneNumber:  input.PhoneNumber,
		StartTime:    uc.now(),
		Status:       relay.CallStatusActive,
		ConnectionID: input.ConnectionID,
	}

	uc.mu.Lock()
	prev, exists := uc.calls[input.CallID]
	uc.calls[input.CallID] = call
	uc.mu.Unlock()

	if exists {
		uc.l.Warnf(ctx, "relay.usecase.CallStart: call already active (session=%s), replacing it", prev.AISessionID)
		if prev.Bound() {
			uc.endSession(ctx, prev.AISessionID)
		}
	}
	uc.l.Infof(ctx, "relay.usecase.CallStart: new call from %s", input.PhoneNumber)

	uc.notifier.Notify(ctx, notifier.EventCallStart, map[string]any{
		"call_id":      call.CallID,
		"phone_number": call.PhoneNumber,
		"timestamp":    call.StartTime.Format(time.RFC3339Nano),
	})

	out, err := uc.conv.CreateSession(ctx, conversation.CreateSessionInput{
		CallID:      input.CallID,
		PhoneNumber: input.PhoneNumber,
		Context:     input.Context,
		Language:    input.Language,
	})
	if err != nil {
		return fmt.Errorf("relay.usecase.CallStart: create session: %w", err)
	}
	ctx = pkgLog.WithFields(ctx, "session_id", out.SessionID)

	uc.mu.Lock()
	current := uc.calls[input.CallID] == call
	if current {
		call.AISessionID = out.SessionID
	}
	uc.mu.Unlock()

	if !current {
		// The call was ended or replaced while the session was being created.
		uc.l.Warnf(ctx, "relay.usecase.CallStart: call gone before binding, dropping session")
		uc.endSession(ctx, out.SessionID)
		return nil
	}

	var audio []byte
	if speech, err := uc.conv.Synthesize(ctx, conversation.SynthesizeInput{Text: out.WelcomeMessage}); err != nil {
		uc.l.Warnf(ctx, "relay.usecase.CallStart: welcome audio: %v", err)
	} else {
		audio = speech.Audio
	}

	return sender.Send(ctx, protocol.SessionCreated{
		CallID:        call.CallID,
		SessionID:     out.SessionID,
		Message:       out.WelcomeMessage,
		AudioResponse: audio,
	})
}

// CallEnd removes the call and releases its session. Unknown calls are ignored.
func (uc *implUseCase) CallEnd(ctx context.Context, callID string) error {
	uc.mu.Lock()
	call, ok := uc.calls[callID]
	if ok {
		delete(uc.calls, callID)
	}
	uc.mu.Unlock()

	if !ok {
		uc.l.Debugf(ctx, "relay.usecase.CallEnd: unknown call %s", callID)
		return nil
	}

	uc.endCall(ctx, call)
	return nil
}

// Disconnect ends every call that the connection started.
func (uc *implUseCase) Disconnect(ctx context.Context, connectionID string) int {
	uc.mu.Lock()
	var owned []*relay.CallSession
	for id, call := range uc.calls {
		if call.ConnectionID == connectionID {
			owned = append(owned, call)
			delete(uc.calls, id)
		}
	}
	uc.mu.Unlock()

	for _, call := range owned {
		uc.endCall(ctx, call)
	}
	if len(owned) > 0 {
		uc.l.Infof(ctx, "relay.usecase.Disconnect: connection %s closed, ended %d call(s)", connectionID, len(owned))
	}
	return len(owned)
}

// endCall runs after the call left the map, so only this goroutine touches it.
// Cleanup outlives the caller's cancellation but is bounded by the cleanup timeout.
func (uc *implUseCase) endCall(ctx context.Context, call *relay.CallSession) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), uc.cfg.CleanupTimeout)
	defer cancel()
	ctx = pkgLog.WithFields(ctx, "call_id", call.CallID)

	call.Status = relay.CallStatusEnded
	duration := uc.now().Sub(call.StartTime).Seconds()
	if duration < 0 {
		duration = 0
	}

	uc.l.Infof(ctx, "relay.usecase.endCall: call ended after %.1fs", duration)

	uc.notifier.Notify(ctx, notifier.EventCallEnd, map[string]any{
		"call_id":  call.CallID,
		"duration": duration,
	})

	if call.Bound() {
		uc.endSession(ctx, call.AISessionID)
	}
}

func (uc *implUseCase) endSession(ctx context.Context, sessionID string) {
	if err := uc.conv.EndSession(ctx, sessionID); err != nil {
		uc.l.Warnf(ctx, "relay.usecase.endSession: %v", err)
	}
}

// Call returns a snapshot of the call.
func (uc *implUseCase) Call(callID string) (relay.CallSession, bool) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	call, ok := uc.calls[callID]
	if !ok {
		return relay.CallSession{}, false
	}
	return *call, true
}

// ActiveCalls returns the number of registered calls.
func (uc *implUseCase) ActiveCalls() int {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return len(uc.calls)
}
