package models

import (
	"context"
	"iter"
	"testing"

	"google.golang.org/adk/model"
	"google.golang.org/genai"

	"github.com/Emily548/FluffyCare/internal/utils"
)

type recordingLLM struct {
	req *model.LLMRequest
}

func (r *recordingLLM) Name() string { return "recording" }

func (r *recordingLLM) GenerateContent(ctx context.Context, req *model.LLMRequest, stream bool) iter.Seq2[*model.LLMResponse, error] {
	r.req = req
	return func(yield func(*model.LLMResponse, error) bool) {
		yield(&model.LLMResponse{}, nil)
	}
}

func TestSystemInstructionModelFoldsSystemContents(t *testing.T) {
	inner := &recordingLLM{}
	m := newSystemInstructionModel(inner)

	req := &model.LLMRequest{
		Contents: []*genai.Content{
			genai.NewContentFromText("be kind", "system"),
			genai.NewContentFromText("hi", "user"),
			genai.NewContentFromText("example tone", "system"),
			genai.NewContentFromText("hello", "model"),
			genai.NewContentFromText("how are you", "user"),
		},
	}
	for range m.GenerateContent(t.Context(), req, false) {
	}

	if m.Name() != "recording" {
		t.Fatalf("expected name passthrough, got %q", m.Name())
	}
	got := inner.req
	if len(got.Contents) != 3 {
		t.Fatalf("expected system contents removed, got %d", len(got.Contents))
	}
	for _, c := range got.Contents {
		if c.Role == "system" {
			t.Fatalf("system role left in contents")
		}
	}
	if got.Config == nil || got.Config.SystemInstruction == nil {
		t.Fatalf("expected system instruction")
	}
	if text := utils.ExtractContentText(got.Config.SystemInstruction); text != "be kind\n\nexample tone" {
		t.Fatalf("unexpected system instruction %q", text)
	}
}

func TestSystemInstructionModelWithoutSystemContents(t *testing.T) {
	inner := &recordingLLM{}
	m := newSystemInstructionModel(inner)
	req := &model.LLMRequest{Contents: []*genai.Content{genai.NewContentFromText("hi", "user")}}
	for range m.GenerateContent(t.Context(), req, false) {
	}
	if inner.req.Config != nil {
		t.Fatalf("config should stay untouched")
	}
}
