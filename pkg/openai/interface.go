package openai

import "context"

// IOpenAI is a client for OpenAI and OpenAI-compatible endpoints.
// Implementations are safe for concurrent use.
type IOpenAI interface {
	// GenerateContent sends a chat completion request
	GenerateContent(ctx context.Context, req *ChatRequest) (*ChatResponse, error)

	// Transcribe converts speech audio to text
	Transcribe(ctx context.Context, audio []byte, language string) (string, error)

	// Synthesize converts text to speech audio
	Synthesize(ctx context.Context, text string) ([]byte, error)

	// Model returns the chat model being used
	Model() string
}

// New creates a new OpenAI client with the given configuration
func New(cfg Config) (IOpenAI, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return newOpenAIImpl(cfg.withDefaults()), nil
}
