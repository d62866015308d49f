package models

import (
	"context"
	"iter"
	"strings"

	"google.golang.org/adk/model"
	"google.golang.org/genai"

	"github.com/Emily548/FluffyCare/internal/utils"
)

// systemInstructionModel folds "system" contents into the request's system
// instruction. Gemini only accepts user and model roles in contents.
type systemInstructionModel struct {
	model.LLM
}

func newSystemInstructionModel(inner model.LLM) model.LLM {
	return &systemInstructionModel{LLM: inner}
}

func (m *systemInstructionModel) GenerateContent(ctx context.Context, req *model.LLMRequest, stream bool) iter.Seq2[*model.LLMResponse, error] {
	var system []string
	contents := make([]*genai.Content, 0, len(req.Contents))
	for _, c := range req.Contents {
		if c != nil && c.Role == "system" {
			if text := strings.TrimSpace(utils.ExtractContentText(c)); text != "" {
				system = append(system, text)
			}
			continue
		}
		contents = append(contents, c)
	}

	if len(system) > 0 {
		if req.Config == nil {
			req.Config = &genai.GenerateContentConfig{}
		}
		if existing := req.Config.SystemInstruction; existing != nil {
			if text := strings.TrimSpace(utils.ExtractContentText(existing)); text != "" {
				system = append([]string{text}, system...)
			}
		}
		req.Config.SystemInstruction = genai.NewContentFromText(strings.Join(system, "\n\n"), "")
	}
	req.Contents = contents

	return m.LLM.GenerateContent(ctx, req, stream)
}
