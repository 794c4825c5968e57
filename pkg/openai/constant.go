package openai

import "time"

const (
	// DefaultBaseURL is the default OpenAI API endpoint
	DefaultBaseURL = "https://api.openai.com/v1"

	// DefaultModel is the default chat model
	DefaultModel = "gpt-3.5-turbo"

	DefaultSTTModel = "whisper-1"
	DefaultTTSModel = "tts-1"
	DefaultVoice    = "alloy"
	DefaultFormat   = "mp3"

	// DefaultTimeout is the default per-request timeout
	DefaultTimeout = 30 * time.Second
)
