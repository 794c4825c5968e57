package openai

import (
	openaigo "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

type openaiImpl struct {
	client openaigo.Client
	cfg    Config
}

// newOpenAIImpl creates a new OpenAI implementation.
// Retries are left to the caller (the provider manager owns retry and fallback).
func newOpenAIImpl(cfg Config) *openaiImpl {
	client := openaigo.NewClient(
		option.WithBaseURL(cfg.BaseURL),
		option.WithAPIKey(cfg.APIKey),
		option.WithHTTPClient(cfg.HTTPClient),
		option.WithMaxRetries(0),
		option.WithRequestTimeout(cfg.Timeout),
	)
	return &openaiImpl{
		client: client,
		cfg:    cfg,
	}
}

// Model returns the chat model being used
func (o *openaiImpl) Model() string {
	return o.cfg.Model
}
