package tasks

import (
	"strings"
	"testing"
)

func TestLookupKnownActions(t *testing.T) {
	actions := []Action{
		ActionImageAuto, ActionImageGuided, ActionVideo, ActionAudio,
		ActionConversationText, ActionConversationOCR, ActionIdentitySearch,
		ActionDeepReasoning, ActionPersonaSynthesis,
	}
	for _, a := range actions {
		task, err := Lookup(a)
		if err != nil {
			t.Fatalf("Lookup(%s): %v", a, err)
		}
		if task.Action != a {
			t.Fatalf("Lookup(%s) returned action %s", a, task.Action)
		}
	}
}

func TestLookupUnknownAction(t *testing.T) {
	if _, err := Lookup("summonDemon"); err == nil {
		t.Fatal("expected error for unknown action")
	}
}

func TestBudgetTokens(t *testing.T) {
	tests := []struct {
		budget Budget
		want   int32
	}{
		{BudgetNone, 0},
		{BudgetLow, 1024},
		{BudgetMedium, 2048},
		{BudgetHigh, 32768},
	}
	for _, tt := range tests {
		if got := tt.budget.Tokens(); got != tt.want {
			t.Errorf("Budget(%d).Tokens() = %d, want %d", tt.budget, got, tt.want)
		}
	}
}

func TestStreamable(t *testing.T) {
	stream := map[Action]bool{
		ActionImageAuto:        true,
		ActionImageGuided:      true,
		ActionVideo:            true,
		ActionAudio:            true,
		ActionConversationOCR:  true,
		ActionIdentitySearch:   true,
		ActionDeepReasoning:    true,
		ActionConversationText: false,
		ActionPersonaSynthesis: false,
	}
	for action, want := range stream {
		task, err := Lookup(action)
		if err != nil {
			t.Fatal(err)
		}
		if got := task.Streamable(); got != want {
			t.Errorf("%s: Streamable() = %v, want %v", action, got, want)
		}
	}
}

func TestVerdictCoverage(t *testing.T) {
	verdict := map[Action]bool{
		ActionImageAuto:        true,
		ActionVideo:            true,
		ActionAudio:            true,
		ActionConversationText: true,
		ActionImageGuided:      false,
		ActionConversationOCR:  false,
		ActionIdentitySearch:   false,
		ActionDeepReasoning:    false,
		ActionPersonaSynthesis: false,
	}
	for action, want := range verdict {
		task, err := Lookup(action)
		if err != nil {
			t.Fatal(err)
		}
		if got := task.HasVerdict(); got != want {
			t.Errorf("%s: HasVerdict() = %v, want %v", action, got, want)
		}
	}
}

func TestConversationPromptIncludesContext(t *testing.T) {
	p := ConversationPrompt("him: send gift cards", "met on a dating app")
	if !strings.Contains(p, "CONTEXT FROM USER: met on a dating app") {
		t.Error("context not embedded")
	}
	if !strings.HasSuffix(p, "him: send gift cards") {
		t.Error("transcript must come last")
	}

	bare := ConversationPrompt("hello", "")
	if strings.Contains(bare, "CONTEXT FROM USER") {
		t.Error("empty context must not add a context line")
	}
}

func TestIdentityPromptEmbedsQuery(t *testing.T) {
	p := IdentityPrompt("Sgt. John Miles, deployed in Syria")
	if !strings.Contains(p, `Query: "Sgt. John Miles, deployed in Syria"`) {
		t.Error("query not embedded")
	}
}
