package httpserver

import (
	"context"
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"ai-receptionist/internal/conversation"
	"ai-receptionist/internal/middleware"
	"ai-receptionist/internal/relay"
	relayWS "ai-receptionist/internal/relay/delivery/websocket"
	"ai-receptionist/pkg/log"
)

const defaultShutdownTimeout = 10 * time.Second

// Pinger is the readiness check for a backing store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	// Server
	gin             *gin.Engine
	l               log.Logger
	port            int
	mode            string
	environment     string
	shutdownTimeout time.Duration

	// Dependencies
	store      Pinger
	middleware middleware.Middleware

	// Domains
	conversationUC conversation.UseCase
	relayUC        relay.UseCase
	stream         relayWS.Handler
}

// Config is the dependency bag passed to New().
type Config struct {
	Logger          log.Logger
	Port            int
	Mode            string
	Environment     string
	ShutdownTimeout time.Duration

	Store      Pinger
	Middleware middleware.Middleware

	ConversationUC conversation.UseCase
	RelayUC        relay.UseCase
	Relay          relayWS.Config
}

// New creates a new HTTPServer instance with every route mounted.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	srv := &HTTPServer{
		l:               logger,
		gin:             gin.New(),
		port:            cfg.Port,
		mode:            cfg.Mode,
		environment:     cfg.Environment,
		shutdownTimeout: cfg.ShutdownTimeout,
		store:           cfg.Store,
		middleware:      cfg.Middleware,
		conversationUC:  cfg.ConversationUC,
		relayUC:         cfg.RelayUC,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	srv.stream = relayWS.New(logger, srv.relayUC, cfg.Relay)

	if err := srv.mapHandlers(); err != nil {
		return nil, err
	}

	return srv, nil
}

func (srv HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	if srv.store == nil {
		return errors.New("store is required")
	}
	if srv.conversationUC == nil {
		return errors.New("conversation usecase is required")
	}
	if srv.relayUC == nil {
		return errors.New("relay usecase is required")
	}
	return nil
}

// Handler exposes the router, mainly for tests.
func (srv HTTPServer) Handler() *gin.Engine {
	return srv.gin
}
