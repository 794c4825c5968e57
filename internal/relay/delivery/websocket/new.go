package websocket

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"ai-receptionist/internal/relay"
	"ai-receptionist/pkg/log"
)

const (
	defaultMaxMessageBytes  = 4 << 20
	defaultWriteTimeout     = 5 * time.Second
	defaultPingInterval     = 20 * time.Second
	defaultHandshakeTimeout = 10 * time.Second
)

// Config tunes the websocket transport.
type Config struct {
	MaxMessageBytes  int64
	WriteTimeout     time.Duration
	PingInterval     time.Duration
	HandshakeTimeout time.Duration
}

// Handler is the websocket transport of the call relay.
type Handler interface {
	Stream(c *gin.Context)
	// Close closes every open connection and waits, bounded by ctx, for their calls to be ended.
	Close(ctx context.Context) error
	Connections() int
}

type handler struct {
	l        log.Logger
	uc       relay.UseCase
	cfg      Config
	upgrader websocket.Upgrader

	mu    sync.Mutex
	conns map[string]*connection
	wg    sync.WaitGroup
}

// New creates the websocket handler for the call relay.
func New(l log.Logger, uc relay.UseCase, cfg Config) Handler {
	if cfg.MaxMessageBytes <= 0 {
		cfg.MaxMessageBytes = defaultMaxMessageBytes
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = defaultWriteTimeout
	}
	if cfg.PingInterval <= 0 {
		cfg.PingInterval = defaultPingInterval
	}
	if cfg.HandshakeTimeout <= 0 {
		cfg.HandshakeTimeout = defaultHandshakeTimeout
	}
	return &handler{
		l:   l,
		uc:  uc,
		cfg: cfg,
		upgrader: websocket.Upgrader{
			HandshakeTimeout: cfg.HandshakeTimeout,
			CheckOrigin:      func(*http.Request) bool { return true },
		},
		conns: make(map[string]*connection),
	}
}
