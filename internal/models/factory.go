package models

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/adk/model"
	"google.golang.org/adk/model/gemini"
	"google.golang.org/genai"
)

const (
	ProviderOpenRouter = "openrouter"
	ProviderOpenAI     = "openai"
	ProviderGrok       = "grok"
	ProviderGemini     = "gemini"
)

// New builds a chat model for the named provider.
func New(ctx context.Context, provider, modelName, apiKey string) (model.LLM, error) {
	cfg := &genai.ClientConfig{APIKey: apiKey}
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case "", ProviderOpenRouter:
		return NewOpenRouterModel(ctx, modelName, cfg)
	case ProviderOpenAI:
		return NewOpenAIModel(ctx, modelName, cfg)
	case ProviderGrok:
		return NewGrokModel(ctx, modelName, cfg)
	case ProviderGemini:
		cfg.Backend = genai.BackendGeminiAPI
		m, err := gemini.NewModel(ctx, modelName, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create gemini model: %w", err)
		}
		return newSystemInstructionModel(m), nil
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", provider)
	}
}
