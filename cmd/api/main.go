package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ai-receptionist/config"
	"ai-receptionist/config/redis"
	_ "ai-receptionist/docs" // Swagger docs
	"ai-receptionist/internal/conversation"
	"ai-receptionist/internal/conversation/repository"
	"ai-receptionist/internal/conversation/repository/memory"
	redisRepo "ai-receptionist/internal/conversation/repository/redis"
	convUsecase "ai-receptionist/internal/conversation/usecase"
	"ai-receptionist/internal/httpserver"
	"ai-receptionist/internal/middleware"
	"ai-receptionist/internal/notifier"
	relayWS "ai-receptionist/internal/relay/delivery/websocket"
	relayUsecase "ai-receptionist/internal/relay/usecase"
	"ai-receptionist/pkg/llmprovider"
	"ai-receptionist/pkg/log"
	"ai-receptionist/pkg/openai"
)

// @title       AI Receptionist API
// @description Voice receptionist: telephony relay, speech pipeline and conversation sessions.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting AI Receptionist...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 3. Session store
	repo, err := newRepository(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "Failed to initialize session store: ", err)
		return
	}
	defer redis.Disconnect()

	// 4. Speech (STT + TTS)
	var transcriber conversation.Transcriber
	var synthesizer conversation.Synthesizer
	speech, err := openai.New(openai.Config{
		APIKey:   cfg.Speech.APIKey,
		BaseURL:  cfg.Speech.BaseURL,
		STTModel: cfg.Speech.STTModel,
		TTSModel: cfg.Speech.TTSModel,
		Voice:    cfg.Speech.Voice,
		Format:   cfg.Speech.Format,
	})
	if err != nil {
		logger.Warnf(ctx, "Speech disabled, callers will hear text-only replies: %v", err)
	} else {
		transcriber, synthesizer = speech, speech
		logger.Infof(ctx, "Speech initialized (voice=%s, format=%s)", cfg.Speech.Voice, cfg.Speech.Format)
	}

	// 5. LLM provider chain
	generator, err := newGenerator(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "Failed to initialize LLM providers: ", err)
		return
	}

	// 6. UseCases
	conversationUC := convUsecase.New(logger, repo, transcriber, generator, synthesizer, convUsecase.Config{
		TTL:               cfg.Session.TTL,
		CapabilityTimeout: cfg.Conversation.CapabilityTimeout,
	})

	backend := notifier.New(logger, notifier.Config{
		BackendURL: cfg.Backend.URL,
		Timeout:    cfg.Backend.NotifyTimeout,
	})

	relayUC := relayUsecase.New(logger, conversationUC, backend, relayUsecase.Config{
		CleanupTimeout: cfg.Relay.CleanupTimeout,
	})

	// 7. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:         logger,
		Port:           cfg.HTTPServer.Port,
		Mode:           cfg.HTTPServer.Mode,
		Environment:    cfg.Environment.Name,
		Store:          repo,
		Middleware:     middleware.New(logger, cfg.Security.InternalKey, cfg.Security.RateLimitPerMin),
		ConversationUC: conversationUC,
		RelayUC:        relayUC,
		Relay: relayWS.Config{
			MaxMessageBytes:  cfg.Relay.MaxMessageBytes,
			WriteTimeout:     cfg.Relay.WriteTimeout,
			PingInterval:     cfg.Relay.PingInterval,
			HandshakeTimeout: cfg.Relay.HandshakeTimeout,
		},
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 8. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
	}

	// 9. Drain backend notifications
	drainCtx, cancel := context.WithTimeout(context.Background(), cfg.Backend.NotifyTimeout+time.Second)
	defer cancel()
	if err := backend.Close(drainCtx); err != nil {
		logger.Warnf(drainCtx, "Backend notifications not drained: %v", err)
	}

	logger.Info(ctx, "Server stopped gracefully")
}

func newRepository(ctx context.Context, cfg *config.Config, logger log.Logger) (repository.Repository, error) {
	switch cfg.Session.Driver {
	case "memory":
		logger.Warn(ctx, "Using in-process session store; sessions are lost on restart")
		return memory.New(memory.Config{Size: cfg.Session.MemorySize, MaxTTL: cfg.Session.TTL}, logger), nil
	case "redis", "":
		rdb, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		logger.Info(ctx, "✅ Redis session store connected")
		return redisRepo.New(rdb, logger), nil
	default:
		return nil, fmt.Errorf("unknown session driver %q", cfg.Session.Driver)
	}
}

func newGenerator(ctx context.Context, cfg *config.Config, logger log.Logger) (conversation.Generator, error) {
	providers, err := llmprovider.InitializeProviders(&cfg.LLM)
	if err != nil {
		return nil, err
	}

	retryDelay, err := time.ParseDuration(cfg.LLM.RetryDelay)
	if err != nil {
		return nil, fmt.Errorf("invalid llm.retry_delay: %w", err)
	}
	maxTotalTimeout, err := time.ParseDuration(cfg.LLM.MaxTotalTimeout)
	if err != nil {
		return nil, fmt.Errorf("invalid llm.max_total_timeout: %w", err)
	}

	manager := llmprovider.NewManager(providers, &llmprovider.Config{
		FallbackEnabled: cfg.LLM.FallbackEnabled,
		RetryAttempts:   cfg.LLM.RetryAttempts,
		RetryDelay:      retryDelay,
		MaxTotalTimeout: maxTotalTimeout,
	}, logger)

	for _, p := range providers {
		logger.Infof(ctx, "LLM provider ready: %s (%s)", p.Name(), p.Model())
	}

	return convUsecase.NewLLMGenerator(manager, cfg.Conversation.Temperature, cfg.Conversation.MaxTokens), nil
}
