package usecase

import (
	"time"

	"ai-receptionist/internal/conversation"
	"ai-receptionist/internal/conversation/repository"
	pkgLog "ai-receptionist/pkg/log"
)

const defaultCapabilityTimeout = 20 * time.Second

// Config tunes the conversation pipeline.
type Config struct {
	TTL               time.Duration
	CapabilityTimeout time.Duration
}

type implUseCase struct {
	l           pkgLog.Logger
	repo        repository.Repository
	transcriber conversation.Transcriber
	generator   conversation.Generator
	synthesizer conversation.Synthesizer
	cfg         Config
	now         func() time.Time
}

// New creates a new conversation UseCase instance.
// Any capability may be nil; the pipeline then degrades the same way it does on a capability failure.
func New(
	l pkgLog.Logger,
	repo repository.Repository,
	transcriber conversation.Transcriber,
	generator conversation.Generator,
	synthesizer conversation.Synthesizer,
	cfg Config,
) conversation.UseCase {
	return newUseCase(l, repo, transcriber, generator, synthesizer, cfg, time.Now)
}

func newUseCase(
	l pkgLog.Logger,
	repo repository.Repository,
	transcriber conversation.Transcriber,
	generator conversation.Generator,
	synthesizer conversation.Synthesizer,
	cfg Config,
	now func() time.Time,
) *implUseCase {
	if repo == nil {
		panic("conversation usecase: repository is required")
	}
	if cfg.TTL <= 0 {
		cfg.TTL = conversation.DefaultTTL
	}
	if cfg.CapabilityTimeout <= 0 {
		cfg.CapabilityTimeout = defaultCapabilityTimeout
	}
	return &implUseCase{
		l:           l,
		repo:        repo,
		transcriber: transcriber,
		generator:   generator,
		synthesizer: synthesizer,
		cfg:         cfg,
		now:         now,
	}
}
