package usecase

import (
	"context"
	"sync"

	"ai-receptionist/internal/conversation"
	"ai-receptionist/internal/model"
	"ai-receptionist/internal/relay/protocol"
)

type notification struct {
	eventType string
	data      map[string]any
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []notification
}

func (n *recordingNotifier) Notify(ctx context.Context, eventType string, data map[string]any) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, notification{eventType: eventType, data: data})
}

func (n *recordingNotifier) Close(ctx context.Context) error { return nil }

func (n *recordingNotifier) byType(eventType string) []notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []notification
	for _, e := range n.events {
		if e.eventType == eventType {
			out = append(out, e)
		}
	}
	return out
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.events)
}

type recordingSender struct {
	mu   sync.Mutex
	sent []protocol.Outbound
	err  error
}

func (s *recordingSender) Send(ctx context.Context, msg protocol.Outbound) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, msg)
	return s.err
}

func (s *recordingSender) last() protocol.Outbound {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.sent) == 0 {
		return nil
	}
	return s.sent[len(s.sent)-1]
}

// fakeConversation counts pipeline calls.
type fakeConversation struct {
	mu           sync.Mutex
	nextID       int
	processCalls int
	ended        []string
	processErr   error
	synthErr     error
	createErr    error
	ctxErrOnEnd  error
}

func (f *fakeConversation) CreateSession(ctx context.Context, in conversation.CreateSessionInput) (conversation.CreateSessionOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return conversation.CreateSessionOutput{}, f.createErr
	}
	f.nextID++
	return conversation.CreateSessionOutput{
		SessionID:      "S" + string(rune('0'+f.nextID)),
		WelcomeMessage: conversation.WelcomeMessage,
	}, nil
}

func (f *fakeConversation) GetSession(ctx context.Context, id string) (model.ConversationSession, error) {
	return model.ConversationSession{SessionID: id}, nil
}

func (f *fakeConversation) EndSession(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ended = append(f.ended, id)
	f.ctxErrOnEnd = ctx.Err()
	return nil
}

func (f *fakeConversation) ProcessTurn(ctx context.Context, in conversation.ProcessTurnInput) (conversation.TurnResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.processCalls++
	if f.processErr != nil {
		return conversation.TurnResult{}, f.processErr
	}
	return conversation.TurnResult{
		SessionID:  in.SessionID,
		Transcript: "hello",
		ReplyText:  "Hi there",
		ReplyAudio: []byte("mp3"),
	}, nil
}

func (f *fakeConversation) Transcribe(ctx context.Context, in conversation.TranscribeInput) (conversation.TranscribeOutput, error) {
	return conversation.TranscribeOutput{}, nil
}

func (f *fakeConversation) Synthesize(ctx context.Context, in conversation.SynthesizeInput) (conversation.SynthesizeOutput, error) {
	if f.synthErr != nil {
		return conversation.SynthesizeOutput{}, f.synthErr
	}
	return conversation.SynthesizeOutput{Audio: []byte("welcome-mp3"), Text: in.Text}, nil
}
