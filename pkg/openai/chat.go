package openai

import (
	"context"
	"fmt"
	"strings"

	openaigo "github.com/openai/openai-go/v3"
)

// GenerateContent sends a chat completion request and returns the first choice.
func (o *openaiImpl) GenerateContent(ctx context.Context, req *ChatRequest) (*ChatResponse, error) {
	if req == nil {
		return nil, fmt.Errorf("openai: nil request")
	}

	messages := make([]openaigo.ChatCompletionMessageParamUnion, 0, len(req.Messages)+1)
	if strings.TrimSpace(req.SystemPrompt) != "" {
		messages = append(messages, openaigo.SystemMessage(req.SystemPrompt))
	}
	for _, m := range req.Messages {
		switch m.Role {
		case "assistant":
			messages = append(messages, openaigo.AssistantMessage(m.Content))
		default:
			messages = append(messages, openaigo.UserMessage(m.Content))
		}
	}

	params := openaigo.ChatCompletionNewParams{
		Model:    openaigo.ChatModel(o.cfg.Model),
		Messages: messages,
	}
	if req.Temperature > 0 {
		params.Temperature = openaigo.Float(req.Temperature)
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openaigo.Int(int64(req.MaxTokens))
	}

	resp, err := o.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("openai: chat completion: %w", err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return nil, fmt.Errorf("openai: empty choices")
	}

	return &ChatResponse{
		Text:  strings.TrimSpace(resp.Choices[0].Message.Content),
		Model: resp.Model,
		Usage: Usage{
			InputTokens:  int(resp.Usage.PromptTokens),
			OutputTokens: int(resp.Usage.CompletionTokens),
			TotalTokens:  int(resp.Usage.TotalTokens),
		},
	}, nil
}
