package risk

import "testing"

func TestClassifyImageAuto(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Level
	}{
		{"hyphenated ai marker", "This image shows signs of being AI-generated with waxy skin texture", LevelHigh},
		{"spaced ai marker", "Several regions appear AI generated.", LevelHigh},
		{"highly edited marker", "**AUTHENTICITY VERDICT:** Highly Edited", LevelHigh},
		{"suspicious marker", "The lighting is suspicious around the jawline.", LevelMedium},
		{"high beats medium", "High risk: several suspicious artifacts.", LevelHigh},
		{"no markers", "Likely authentic. No anomalies found.", LevelLow},
		{"empty text", "", LevelLow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(RuleImageAuto, tt.text); got != tt.want {
				t.Fatalf("Classify(%q) = %s, want %s", tt.text, got, tt.want)
			}
		})
	}
}

func TestClassifyVideo(t *testing.T) {
	if got := Classify(RuleVideo, "**RISK LEVEL:** High"); got != LevelHigh {
		t.Fatalf("want HIGH, got %s", got)
	}
	if got := Classify(RuleVideo, "**RISK LEVEL:** Medium"); got != LevelMedium {
		t.Fatalf("want MEDIUM, got %s", got)
	}
	if got := Classify(RuleVideo, "No manipulation detected."); got != LevelLow {
		t.Fatalf("want LOW, got %s", got)
	}
}

func TestClassifyAudio(t *testing.T) {
	if got := Classify(RuleAudio, "Evidence of splicing between words."); got != LevelHigh {
		t.Fatalf("want HIGH, got %s", got)
	}
	if got := Classify(RuleAudio, "Synthetic voice artifacts present."); got != LevelHigh {
		t.Fatalf("want HIGH, got %s", got)
	}
	// Scenario: no splicing/synthetic markers anywhere.
	if got := Classify(RuleAudio, "Natural breathing, consistent room tone throughout."); got != LevelLow {
		t.Fatalf("want LOW, got %s", got)
	}
}

func TestClassifyDeterministic(t *testing.T) {
	text := "Verdict: AI-Generated. Confidence 92%."
	first := Classify(RuleImageAuto, text)
	for i := 0; i < 10; i++ {
		if got := Classify(RuleImageAuto, text); got != first {
			t.Fatalf("classification not deterministic: %s vs %s", got, first)
		}
	}
}

func TestClassifyNilRule(t *testing.T) {
	if got := Classify(nil, "anything at all"); got != LevelNone {
		t.Fatalf("nil rule should yield no verdict, got %s", got)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"CRITICAL", LevelCritical},
		{"high", LevelHigh},
		{" medium ", LevelMedium},
		{"LOW", LevelLow},
		{"bogus", LevelLow},
		{"", LevelLow},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Fatalf("ParseLevel(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
