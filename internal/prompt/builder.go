// Package prompt assembles the companion chat prompt.
package prompt

import (
	"bytes"
	"fmt"

	"google.golang.org/genai"

	"github.com/Emily548/FluffyCare/internal/types"
)

// BuildContext contains all inputs for prompt assembly.
type BuildContext struct {
	Companion   types.Companion
	Style       types.Style
	History     []types.Turn
	UserMessage string
}

// Builder assembles the prompt sent to the chat model.
type Builder struct {
	historyWindow int
}

// NewBuilder creates a Builder that keeps the last historyWindow turns.
func NewBuilder(historyWindow int) *Builder {
	if historyWindow <= 0 {
		historyWindow = 6
	}
	return &Builder{historyWindow: historyWindow}
}

// Build returns system prompt, few-shot examples, recent turns and the user
// message, in that order.
func (b *Builder) Build(ctx BuildContext) ([]*genai.Content, error) {
	data := struct {
		Companion        types.Companion
		StyleInstruction string
	}{
		Companion:        ctx.Companion,
		StyleInstruction: ctx.Style.Instruction(),
	}

	var buf bytes.Buffer
	if err := systemPromptTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to build prompt: %w", err)
	}

	history := ctx.History
	if len(history) > b.historyWindow {
		history = history[len(history)-b.historyWindow:]
	}

	contents := make([]*genai.Content, 0, 2+len(fewShots)+2*len(history))
	contents = append(contents, genai.NewContentFromText(buf.String(), "system"))
	contents = append(contents, fewShotContents()...)
	for _, turn := range history {
		contents = append(contents,
			genai.NewContentFromText(turn.User, "user"),
			genai.NewContentFromText(turn.Bot, "model"),
		)
	}
	contents = append(contents, genai.NewContentFromText(ctx.UserMessage, "user"))
	return contents, nil
}
