package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig
	Security   SecurityConfig

	// Infrastructure
	Redis   RedisConfig
	Session SessionConfig

	// Conversation pipeline
	Conversation ConversationConfig
	Speech       SpeechConfig

	// LLM Provider Abstraction
	LLM LLMConfig

	// Call relay
	Relay   RelayConfig
	Backend BackendConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port int
	Mode string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

type SecurityConfig struct {
	InternalKey     string
	RateLimitPerMin int
}

type RedisConfig struct {
	URL string
}

// SessionConfig selects and tunes the conversation session store.
type SessionConfig struct {
	Driver     string // "redis" or "memory"
	TTL        time.Duration
	MemorySize int
}

type ConversationConfig struct {
	CapabilityTimeout time.Duration
	Temperature       float64
	MaxTokens         int
}

// SpeechConfig configures speech-to-text and text-to-speech.
type SpeechConfig struct {
	APIKey   string
	BaseURL  string
	STTModel string
	TTSModel string
	Voice    string
	Format   string
}

// LLMConfig holds configuration for the LLM provider abstraction layer
type LLMConfig struct {
	Providers       []ProviderConfig `yaml:"providers"`
	FallbackEnabled bool             `yaml:"fallback_enabled"`
	RetryAttempts   int              `yaml:"retry_attempts"`
	RetryDelay      string           `yaml:"retry_delay"`
	MaxTotalTimeout string           `yaml:"max_total_timeout"`
}

// ProviderConfig holds configuration for a single LLM provider
type ProviderConfig struct {
	Name     string `yaml:"name"`
	Enabled  bool   `yaml:"enabled"`
	Priority int    `yaml:"priority"`
	APIKey   string `yaml:"api_key"`
	BaseURL  string `yaml:"base_url,omitempty"`
	Model    string `yaml:"model"`
	Timeout  string `yaml:"timeout"`
}

type RelayConfig struct {
	CleanupTimeout   time.Duration
	MaxMessageBytes  int64
	WriteTimeout     time.Duration
	PingInterval     time.Duration
	HandshakeTimeout time.Duration
}

// BackendConfig points at the external system of record notified about call lifecycle events.
type BackendConfig struct {
	URL           string
	NotifyTimeout time.Duration
}

// Load loads configuration using Viper.
// A .env file in the working directory is loaded first when present.
// Config file name: config.yaml, searched in ./config, ., /etc/app/
func Load() (*Config, error) {
	_ = godotenv.Load()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/app/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	cfg.Security.InternalKey = viper.GetString("security.internal_key")
	if key := viper.GetString("internal_api_key"); key != "" {
		cfg.Security.InternalKey = key
	}
	cfg.Security.RateLimitPerMin = viper.GetInt("security.rate_limit_per_min")

	// Infrastructure
	cfg.Redis.URL = viper.GetString("redis.url")
	if redisURL := viper.GetString("redis_url"); redisURL != "" {
		cfg.Redis.URL = redisURL
	}
	cfg.Session.Driver = viper.GetString("session.driver")
	cfg.Session.TTL = viper.GetDuration("session.ttl")
	cfg.Session.MemorySize = viper.GetInt("session.memory_size")

	// Conversation pipeline
	cfg.Conversation.CapabilityTimeout = viper.GetDuration("conversation.capability_timeout")
	cfg.Conversation.Temperature = viper.GetFloat64("conversation.temperature")
	cfg.Conversation.MaxTokens = viper.GetInt("conversation.max_tokens")

	cfg.Speech.APIKey = viper.GetString("speech.api_key")
	if openaiKey := viper.GetString("openai_api_key"); openaiKey != "" && cfg.Speech.APIKey == "" {
		cfg.Speech.APIKey = openaiKey
	}
	cfg.Speech.BaseURL = viper.GetString("speech.base_url")
	cfg.Speech.STTModel = viper.GetString("speech.stt_model")
	cfg.Speech.TTSModel = viper.GetString("speech.tts_model")
	cfg.Speech.Voice = viper.GetString("speech.voice")
	cfg.Speech.Format = viper.GetString("speech.format")

	// LLM Provider Abstraction
	cfg.LLM.FallbackEnabled = viper.GetBool("llm.fallback_enabled")
	cfg.LLM.RetryAttempts = viper.GetInt("llm.retry_attempts")
	cfg.LLM.RetryDelay = viper.GetString("llm.retry_delay")
	cfg.LLM.MaxTotalTimeout = viper.GetString("llm.max_total_timeout")

	// Load provider configurations
	if viper.IsSet("llm.providers") {
		providersRaw := viper.Get("llm.providers")
		if providersList, ok := providersRaw.([]interface{}); ok {
			for _, p := range providersList {
				if providerMap, ok := p.(map[string]interface{}); ok {
					provider := ProviderConfig{
						Name:     getStringFromMap(providerMap, "name"),
						Enabled:  getBoolFromMap(providerMap, "enabled"),
						Priority: getIntFromMap(providerMap, "priority"),
						APIKey:   expandEnvVar(getStringFromMap(providerMap, "api_key")),
						BaseURL:  getStringFromMap(providerMap, "base_url"),
						Model:    getStringFromMap(providerMap, "model"),
						Timeout:  getStringFromMap(providerMap, "timeout"),
					}
					cfg.LLM.Providers = append(cfg.LLM.Providers, provider)
				}
			}
		}
	}

	// Without a provider list, fall back to a single OpenAI provider when a key is present.
	if len(cfg.LLM.Providers) == 0 && viper.GetString("openai_api_key") != "" {
		cfg.LLM.Providers = append(cfg.LLM.Providers, ProviderConfig{
			Name:     "openai",
			Enabled:  true,
			Priority: 1,
			APIKey:   viper.GetString("openai_api_key"),
			Model:    viper.GetString("model_name"),
		})
	}

	if err := validateLLMConfig(&cfg.LLM); err != nil {
		return nil, err
	}

	// Call relay
	cfg.Relay.CleanupTimeout = viper.GetDuration("relay.cleanup_timeout")
	cfg.Relay.MaxMessageBytes = viper.GetInt64("relay.max_message_bytes")
	cfg.Relay.WriteTimeout = viper.GetDuration("relay.write_timeout")
	cfg.Relay.PingInterval = viper.GetDuration("relay.ping_interval")
	cfg.Relay.HandshakeTimeout = viper.GetDuration("relay.handshake_timeout")

	cfg.Backend.URL = viper.GetString("backend.url")
	if backendURL := viper.GetString("backend_url"); backendURL != "" {
		cfg.Backend.URL = backendURL
	}
	cfg.Backend.NotifyTimeout = viper.GetDuration("backend.notify_timeout")

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)
	viper.SetDefault("security.rate_limit_per_min", 600)

	viper.SetDefault("redis.url", "redis://localhost:6379")
	viper.SetDefault("session.driver", "redis")
	viper.SetDefault("session.ttl", "3600s")
	viper.SetDefault("session.memory_size", 10000)

	viper.SetDefault("conversation.capability_timeout", "20s")
	viper.SetDefault("conversation.temperature", 0.7)
	viper.SetDefault("conversation.max_tokens", 150)

	viper.SetDefault("speech.base_url", "https://api.openai.com/v1")
	viper.SetDefault("speech.stt_model", "whisper-1")
	viper.SetDefault("speech.tts_model", "tts-1")
	viper.SetDefault("speech.voice", "alloy")
	viper.SetDefault("speech.format", "mp3")
	viper.SetDefault("model_name", "gpt-3.5-turbo")

	// LLM defaults
	viper.SetDefault("llm.fallback_enabled", true)
	viper.SetDefault("llm.retry_attempts", 2)
	viper.SetDefault("llm.retry_delay", "500ms")
	viper.SetDefault("llm.max_total_timeout", "30s")

	viper.SetDefault("relay.cleanup_timeout", "5s")
	viper.SetDefault("relay.max_message_bytes", 4<<20)
	viper.SetDefault("relay.write_timeout", "5s")
	viper.SetDefault("relay.ping_interval", "20s")
	viper.SetDefault("relay.handshake_timeout", "10s")

	viper.SetDefault("backend.url", "http://localhost:3000")
	viper.SetDefault("backend.notify_timeout", "5s")
}

// expandEnvVar expands environment variables in the format ${VAR_NAME}
func expandEnvVar(value string) string {
	if value == "" {
		return value
	}

	if strings.HasPrefix(value, "${") && strings.HasSuffix(value, "}") {
		envVar := value[2 : len(value)-1]
		if envValue := viper.GetString(envVar); envValue != "" {
			return envValue
		}
		if envValue := viper.GetString(strings.ToLower(envVar)); envValue != "" {
			return envValue
		}
		if envValue := os.Getenv(envVar); envValue != "" {
			return envValue
		}
	}

	return value
}

// validateLLMConfig validates the LLM configuration
func validateLLMConfig(cfg *LLMConfig) error {
	if len(cfg.Providers) == 0 {
		return fmt.Errorf("no LLM providers configured - add llm.providers to config.yaml or set OPENAI_API_KEY")
	}

	enabledCount := 0
	priorityMap := make(map[int]bool)

	for i, provider := range cfg.Providers {
		if provider.Name == "" {
			return fmt.Errorf("provider %d: name is required", i)
		}
		if provider.Model == "" {
			return fmt.Errorf("provider %s: model is required", provider.Name)
		}

		if provider.Enabled {
			enabledCount++

			if provider.Priority <= 0 {
				return fmt.Errorf("provider %s: priority must be positive", provider.Name)
			}

			if priorityMap[provider.Priority] {
				return fmt.Errorf("provider %s: duplicate priority %d", provider.Name, provider.Priority)
			}
			priorityMap[provider.Priority] = true
		}
	}

	if enabledCount == 0 {
		return fmt.Errorf("no enabled LLM providers")
	}

	return nil
}

// Helper functions to safely extract values from map[string]interface{}
func getStringFromMap(m map[string]interface{}, key string) string {
	if val, ok := m[key]; ok {
		if str, ok := val.(string); ok {
			return str
		}
	}
	return ""
}

func getBoolFromMap(m map[string]interface{}, key string) bool {
	if val, ok := m[key]; ok {
		if b, ok := val.(bool); ok {
			return b
		}
	}
	return false
}

func getIntFromMap(m map[string]interface{}, key string) int {
	if val, ok := m[key]; ok {
		if i, ok := val.(int); ok {
			return i
		}
		// Handle float64 from JSON unmarshaling
		if f, ok := val.(float64); ok {
			return int(f)
		}
	}
	return 0
}
