package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"ai-receptionist/internal/conversation/repository"
	"ai-receptionist/internal/model"
)

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Debugf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Info(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Infof(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Warnf(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Error(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Errorf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) DPanicf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Panic(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Panicf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}

type mockTranscriber struct {
	text  string
	err   error
	calls int
}

func (m *mockTranscriber) Transcribe(ctx context.Context, audio []byte, language string) (string, error) {
	m.calls++
	return m.text, m.err
}

type mockGenerator struct {
	reply        string
	err          error
	calls        int
	lastPrompt   string
	lastMessages []model.Message
}

func (m *mockGenerator) Generate(ctx context.Context, systemPrompt string, messages []model.Message) (string, error) {
	m.calls++
	m.lastPrompt = systemPrompt
	m.lastMessages = append([]model.Message(nil), messages...)
	return m.reply, m.err
}

type mockSynthesizer struct {
	audio []byte
	err   error
	calls int
}

func (m *mockSynthesizer) Synthesize(ctx context.Context, text string) ([]byte, error) {
	m.calls++
	return m.audio, m.err
}

// mapRepo is an in-memory Repository whose failures can be switched on.
type mapRepo struct {
	mu       sync.Mutex
	sessions map[string]model.ConversationSession
	getErr   error
	putErr   error
	delErr   error
	puts     int
}

// copySession detaches the stored value from the caller, like the real stores do.
func copySession(s model.ConversationSession) model.ConversationSession {
	s.Messages = append([]model.Message(nil), s.Messages...)
	return s
}

func newMapRepo() *mapRepo {
	return &mapRepo{sessions: map[string]model.ConversationSession{}}
}

func (r *mapRepo) Put(ctx context.Context, s model.ConversationSession, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.puts++
	if r.putErr != nil {
		return r.putErr
	}
	r.sessions[s.SessionID] = copySession(s)
	return nil
}

func (r *mapRepo) Get(ctx context.Context, id string) (model.ConversationSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return model.ConversationSession{}, r.getErr
	}
	s, ok := r.sessions[id]
	if !ok {
		return model.ConversationSession{}, repository.ErrNotFound
	}
	return copySession(s), nil
}

func (r *mapRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.delErr != nil {
		return r.delErr
	}
	delete(r.sessions, id)
	return nil
}

func (r *mapRepo) Ping(ctx context.Context) error { return nil }

var errBoom = errors.New("boom")

// steppingClock advances one second per call.
type steppingClock struct {
	mu sync.Mutex
	t  time.Time
}

func newSteppingClock() *steppingClock {
	return &steppingClock{t: time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *steppingClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(time.Second)
	return c.t
}
