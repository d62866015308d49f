package models

import (
	"context"
	"fmt"

	"google.golang.org/adk/model"
	"google.golang.org/genai"
)

const xaiBaseURL = "https://api.x.ai/v1"

// NewGrokModel creates a Grok model instance on the x.ai OpenAI-compatible
// endpoint (e.g. "grok-4-fast").
func NewGrokModel(ctx context.Context, modelName string, cfg *genai.ClientConfig) (model.LLM, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	return newCompatModel(modelName, cfg.APIKey, xaiBaseURL, "grok-go")
}
