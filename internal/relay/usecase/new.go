package usecase

import (
	"sync"
	"time"

	"ai-receptionist/internal/conversation"
	"ai-receptionist/internal/notifier"
	"ai-receptionist/internal/relay"
	pkgLog "ai-receptionist/pkg/log"
)

const defaultCleanupTimeout = 5 * time.Second

// Config tunes the relay.
type Config struct {
	CleanupTimeout time.Duration
}

type implUseCase struct {
	l        pkgLog.Logger
	conv     conversation.UseCase
	notifier notifier.Notifier
	cfg      Config
	now      func() time.Time

	mu    sync.Mutex
	calls map[string]*relay.CallSession
}

// New creates a new relay UseCase instance.
func New(l pkgLog.Logger, conv conversation.UseCase, n notifier.Notifier, cfg Config) relay.UseCase {
	return newUseCase(l, conv, n, cfg, time.Now)
}

func newUseCase(l pkgLog.Logger, conv conversation.UseCase, n notifier.Notifier, cfg Config, now func() time.Time) *implUseCase {
	if n == nil {
		n = notifier.NewNoop()
	}
	if cfg.CleanupTimeout <= 0 {
		cfg.CleanupTimeout = defaultCleanupTimeout
	}
	return &implUseCase{
		l:        l,
		conv:     conv,
		notifier: n,
		cfg:      cfg,
		now:      now,
		calls:    make(map[string]*relay.CallSession),
	}
}
