package openai

import (
	"errors"
	"net/http"
	"strings"
	"time"
)

// Config configures the client. Only APIKey is required.
type Config struct {
	APIKey     string
	BaseURL    string
	Model      string
	STTModel   string
	TTSModel   string
	Voice      string
	Format     string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Validate checks required fields.
func (c Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return errors.New("openai: api key is required")
	}
	return nil
}

func (c Config) withDefaults() Config {
	out := c
	if strings.TrimSpace(out.BaseURL) == "" {
		out.BaseURL = DefaultBaseURL
	}
	out.BaseURL = strings.TrimRight(strings.TrimSpace(out.BaseURL), "/")
	if out.Model == "" {
		out.Model = DefaultModel
	}
	if out.STTModel == "" {
		out.STTModel = DefaultSTTModel
	}
	if out.TTSModel == "" {
		out.TTSModel = DefaultTTSModel
	}
	if out.Voice == "" {
		out.Voice = DefaultVoice
	}
	if out.Format == "" {
		out.Format = DefaultFormat
	}
	if out.Timeout <= 0 {
		out.Timeout = DefaultTimeout
	}
	if out.HTTPClient == nil {
		out.HTTPClient = &http.Client{Timeout: out.Timeout}
	}
	return out
}

// ChatRequest is a provider-neutral chat completion request.
type ChatRequest struct {
	SystemPrompt string
	Messages     []ChatMessage
	Temperature  float64
	MaxTokens    int
}

// ChatMessage is one conversation turn. Role is "user" or "assistant".
type ChatMessage struct {
	Role    string
	Content string
}

// ChatResponse holds the first choice of a completion.
type ChatResponse struct {
	Text  string
	Model string
	Usage Usage
}

// Usage tracks token consumption
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
