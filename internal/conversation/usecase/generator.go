package usecase

import (
	"context"

	"ai-receptionist/internal/conversation"
	"ai-receptionist/internal/model"
	"ai-receptionist/pkg/llmprovider"
)

type llmGenerator struct {
	manager     *llmprovider.Manager
	temperature float64
	maxTokens   int
}

// NewLLMGenerator exposes the provider manager as the pipeline's Generator.
func NewLLMGenerator(manager *llmprovider.Manager, temperature float64, maxTokens int) conversation.Generator {
	return &llmGenerator{
		manager:     manager,
		temperature: temperature,
		maxTokens:   maxTokens,
	}
}

func (g *llmGenerator) Generate(ctx context.Context, systemPrompt string, messages []model.Message) (string, error) {
	msgs := make([]llmprovider.Message, len(messages))
	for i, m := range messages {
		role := llmprovider.RoleUser
		if m.Role == model.RoleAssistant {
			role = llmprovider.RoleAssistant
		}
		msgs[i] = llmprovider.Message{Role: role, Text: m.Content}
	}

	resp, err := g.manager.GenerateContent(ctx, &llmprovider.Request{
		SystemInstruction: systemPrompt,
		Messages:          msgs,
		Temperature:       g.temperature,
		MaxTokens:         g.maxTokens,
	})
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}
