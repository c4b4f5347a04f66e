package engine

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// Generator runs a text-generation model on a fully assembled prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (GenerationResult, error)
}

// ChatGenerator adapts an eino chat model to the Generator interface.
type ChatGenerator struct {
	model model.BaseChatModel
}

// NewChatGenerator wraps an eino chat model.
func NewChatGenerator(m model.BaseChatModel) *ChatGenerator {
	return &ChatGenerator{model: m}
}

// Generate sends the prompt as a single user message and returns the model
// reply as a structured result.
func (g *ChatGenerator) Generate(ctx context.Context, prompt string) (GenerationResult, error) {
	msg, err := g.model.Generate(ctx, []*schema.Message{schema.UserMessage(prompt)})
	if err != nil {
		return nil, fmt.Errorf("chat model: %w", err)
	}
	if msg == nil {
		return nil, fmt.Errorf("chat model returned no message")
	}
	return Structured{Content: msg.Content}, nil
}
