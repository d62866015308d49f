package utils

import (
	"encoding/json"
	"fmt"
	"strings"
)

// EmotionOutput is the structured response from the emotion classifier.
type EmotionOutput struct {
	Emotion string `json:"emotion"`
	Reason  string `json:"reason"`
}

// ParseEmotionOutput extracts the classifier JSON, tolerating text around it.
func ParseEmotionOutput(raw string) (EmotionOutput, error) {
	clean := strings.TrimSpace(raw)
	start := strings.Index(clean, "{")
	end := strings.LastIndex(clean, "}")
	if start >= 0 && end > start {
		clean = clean[start : end+1]
	}

	var output EmotionOutput
	if err := json.Unmarshal([]byte(clean), &output); err != nil {
		return EmotionOutput{}, fmt.Errorf("failed to parse emotion output: %w", err)
	}

	output.Emotion = strings.ToLower(strings.TrimSpace(output.Emotion))
	if output.Emotion == "" {
		output.Emotion = "neutral"
	}
	output.Reason = strings.TrimSpace(output.Reason)
	if output.Reason == "" {
		output.Reason = "no reason given"
	}

	return output, nil
}
