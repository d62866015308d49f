package prompt

import (
	"fmt"
	"strings"
	"testing"

	"github.com/Emily548/FluffyCare/internal/types"
	"github.com/Emily548/FluffyCare/internal/utils"
)

func TestBuildOrdersContents(t *testing.T) {
	companion, _ := types.CompanionByID(1)
	b := NewBuilder(6)

	contents, err := b.Build(BuildContext{
		Companion:   companion,
		Style:       types.StylePsychologist,
		History:     []types.Turn{{User: "hi", Bot: "hello"}},
		UserMessage: "I can't sleep",
	})
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}

	want := 1 + len(fewShots) + 2 + 1
	if len(contents) != want {
		t.Fatalf("expected %d contents, got %d", want, len(contents))
	}

	system := utils.ExtractContentText(contents[0])
	if !strings.HasPrefix(system, "You are an empathetic assistant. As a psychological counselor") {
		t.Fatalf("unexpected system prompt: %q", system)
	}
	if !strings.Contains(system, "Lulu Pig") {
		t.Fatalf("expected companion name in system prompt: %q", system)
	}
	if contents[0].Role != "system" {
		t.Fatalf("expected system role, got %s", contents[0].Role)
	}

	last := contents[len(contents)-1]
	if last.Role != "user" || utils.ExtractContentText(last) != "I can't sleep" {
		t.Fatalf("expected user message last, got %s %q", last.Role, utils.ExtractContentText(last))
	}
	reply := contents[len(contents)-2]
	if reply.Role != "model" || utils.ExtractContentText(reply) != "hello" {
		t.Fatalf("expected history reply before user message, got %s %q", reply.Role, utils.ExtractContentText(reply))
	}
}

func TestBuildTrimsHistoryToWindow(t *testing.T) {
	history := make([]types.Turn, 0, 10)
	for i := 0; i < 10; i++ {
		history = append(history, types.Turn{User: fmt.Sprintf("u%d", i), Bot: fmt.Sprintf("b%d", i)})
	}

	contents, err := NewBuilder(6).Build(BuildContext{Style: types.StyleFriend, History: history, UserMessage: "now"})
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}

	firstTurn := contents[1+len(fewShots)]
	if got := utils.ExtractContentText(firstTurn); got != "u4" {
		t.Fatalf("expected oldest kept turn u4, got %q", got)
	}
	if len(contents) != 1+len(fewShots)+12+1 {
		t.Fatalf("unexpected content count %d", len(contents))
	}
}

func TestBuildWithoutCompanionOmitsPersonaLine(t *testing.T) {
	contents, err := NewBuilder(0).Build(BuildContext{Style: types.StyleFriend, UserMessage: "hey"})
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	system := utils.ExtractContentText(contents[0])
	if strings.Contains(system, "You speak as") {
		t.Fatalf("expected no persona line, got %q", system)
	}
}
