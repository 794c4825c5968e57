package notifier

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"ai-receptionist/pkg/log"
)

const (
	eventsPath     = "/api/calls/events"
	defaultTimeout = 5 * time.Second
)

// Config configures the HTTP notifier.
type Config struct {
	BackendURL string
	Timeout    time.Duration
	HTTPClient *http.Client
}

type httpNotifier struct {
	l        log.Logger
	endpoint string
	timeout  time.Duration
	client   *http.Client

	wg     sync.WaitGroup
	mu     sync.RWMutex
	closed bool
}

// New returns an HTTP notifier, or a no-op notifier when no backend URL is configured.
func New(l log.Logger, cfg Config) Notifier {
	base := strings.TrimRight(strings.TrimSpace(cfg.BackendURL), "/")
	if base == "" {
		return NewNoop()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{}
	}
	return &httpNotifier{
		l:        l,
		endpoint: base + eventsPath,
		timeout:  cfg.Timeout,
		client:   client,
	}
}
