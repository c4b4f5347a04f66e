// Package providers constructs the embedding and chat models the pipeline
// runs on. Models are built once at startup and reused for every request;
// constructing them per call would redo client setup on the hot path.
package providers

import (
	"context"
	"fmt"

	openaiEmbed "github.com/cloudwego/eino-ext/components/embedding/openai"
	openaiModel "github.com/cloudwego/eino-ext/components/model/openai"
	einoEmbedding "github.com/cloudwego/eino/components/embedding"
	"github.com/cloudwego/eino/components/model"

	"ragtutor/rag"
)

// NewEmbeddingModel creates an OpenAI-compatible embedding model.
func NewEmbeddingModel(ctx context.Context, cfg rag.Config) (einoEmbedding.Embedder, error) {
	if cfg.EmbeddingAPIKey == "" {
		return nil, fmt.Errorf("EMBEDDING_MODEL_API_KEY is required")
	}

	emb, err := openaiEmbed.NewEmbedder(ctx, &openaiEmbed.EmbeddingConfig{
		APIKey:  cfg.EmbeddingAPIKey,
		BaseURL: cfg.EmbeddingBaseURL,
		Model:   cfg.EmbeddingModel,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create embedding model: %w", err)
	}
	return emb, nil
}

// NewChatModel creates the generation model selected by cfg.Provider:
// "openai" for any OpenAI-compatible endpoint, "gemini" for Google Gemini.
func NewChatModel(ctx context.Context, cfg rag.Config) (model.BaseChatModel, error) {
	switch cfg.Provider {
	case "", "openai":
		return newOpenAIChatModel(ctx, cfg)
	case "gemini":
		return newGeminiChatModel(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported model provider: %s", cfg.Provider)
	}
}

func newOpenAIChatModel(ctx context.Context, cfg rag.Config) (model.BaseChatModel, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY is required for the openai provider")
	}

	modelName := cfg.Model
	if modelName == "" {
		modelName = "glm-4-flash"
	}

	cm, err := openaiModel.NewChatModel(ctx, &openaiModel.ChatModelConfig{
		APIKey:  cfg.APIKey,
		BaseURL: cfg.BaseURL,
		Model:   modelName,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}
	return cm, nil
}
