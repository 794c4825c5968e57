package memory

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"ai-receptionist/internal/conversation/repository"
	"ai-receptionist/pkg/log"
)

const (
	defaultSize   = 10000
	defaultMaxTTL = 24 * time.Hour
)

// entry keeps the encoded session with its own deadline; the LRU TTL only bounds cleanup.
type entry struct {
	payload   []byte
	expiresAt time.Time
}

type implRepository struct {
	cache *expirable.LRU[string, entry]
	l     log.Logger
	now   func() time.Time
}

// Config tunes the in-process store.
type Config struct {
	Size   int
	MaxTTL time.Duration
}

// New creates an in-process session Repository for single-instance deployments and tests.
func New(cfg Config, l log.Logger) repository.Repository {
	return newRepository(cfg, l, time.Now)
}

func newRepository(cfg Config, l log.Logger, now func() time.Time) *implRepository {
	if cfg.Size <= 0 {
		cfg.Size = defaultSize
	}
	if cfg.MaxTTL <= 0 {
		cfg.MaxTTL = defaultMaxTTL
	}
	return &implRepository{
		cache: expirable.NewLRU[string, entry](cfg.Size, nil, cfg.MaxTTL),
		l:     l,
		now:   now,
	}
}
