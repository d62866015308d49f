package emotion

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
	"google.golang.org/adk/model"
	"google.golang.org/genai"

	"github.com/Emily548/FluffyCare/internal/utils"
)

// FailedReason is reported when the remote classifier could not be used.
const FailedReason = "analysis failed"

const classifierSystemPrompt = `You are an emotion analysis assistant. Always answer with strict JSON.`

const classifierPromptFormat = `Classify the user's utterance as exactly one of:
["happy", "sad", "angry", "surprise", "fear", "disgust", "neutral"].
Output JSON: {"emotion":"<emotion>","reason":"<short reason>"}.
User input: %q`

// Classification is the remote classifier's verdict for one utterance.
type Classification struct {
	Label  Label
	Reason string
}

// Analyzer classifies user text with a chat model.
type Analyzer struct {
	model model.LLM
}

// NewAnalyzer returns an Analyzer.
func NewAnalyzer(m model.LLM) *Analyzer {
	return &Analyzer{model: m}
}

// Classify returns the model's label for text. It never fails: any problem
// degrades to Neutral with FailedReason.
func (a *Analyzer) Classify(ctx context.Context, text string) Classification {
	if strings.TrimSpace(text) == "" {
		return Classification{Label: Neutral, Reason: "empty input"}
	}
	result, err := a.classify(ctx, text)
	if err != nil {
		slog.Warn("text emotion classification failed", "error", err.Error())
		return Classification{Label: Neutral, Reason: FailedReason}
	}
	return result
}

func (a *Analyzer) classify(ctx context.Context, text string) (Classification, error) {
	if a == nil || a.model == nil {
		return Classification{}, fmt.Errorf("emotion analyzer not configured")
	}

	temperature := float32(0.2)
	req := &model.LLMRequest{
		Contents: []*genai.Content{
			genai.NewContentFromText(classifierSystemPrompt, "system"),
			genai.NewContentFromText(fmt.Sprintf(classifierPromptFormat, text), "user"),
		},
		Config: &genai.GenerateContentConfig{
			Temperature:        &temperature,
			ResponseMIMEType:   "application/json",
			ResponseJsonSchema: OutputSchema(),
		},
	}

	seq := a.model.GenerateContent(ctx, req, false)
	var resp *model.LLMResponse
	var err error
	seq(func(r *model.LLMResponse, e error) bool {
		resp = r
		err = e
		return false
	})
	if err != nil {
		return Classification{}, err
	}
	if resp == nil {
		return Classification{}, fmt.Errorf("empty classifier response")
	}

	parsed, err := utils.ParseEmotionOutput(utils.ExtractContentText(resp.Content))
	if err != nil {
		return Classification{}, err
	}

	label := Label(parsed.Emotion)
	if !label.Valid() {
		label = Neutral
	}
	return Classification{Label: label, Reason: parsed.Reason}, nil
}

// OutputSchema describes the classifier's JSON reply.
func OutputSchema() *jsonschema.Schema {
	enum := make([]any, 0, len(Labels))
	for _, l := range Labels {
		enum = append(enum, string(l))
	}
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"emotion": {
				Type:        "string",
				Description: "Detected emotion label",
				Enum:        enum,
			},
			"reason": {
				Type:        "string",
				Description: "Short explanation",
			},
		},
		Required: []string{"emotion", "reason"},
	}
}
