package conversation

import (
	"encoding/json"
	"strings"

	"github.com/Bridgette013/Truthseeker/internal/risk"
)

// PatternType labels a detected manipulation category.
type PatternType string

const (
	PatternLoveBombing   PatternType = "LOVE_BOMBING"
	PatternUrgency       PatternType = "URGENCY"
	PatternIsolation     PatternType = "ISOLATION"
	PatternFinancial     PatternType = "FINANCIAL"
	PatternInconsistency PatternType = "INCONSISTENCY"
	PatternScript        PatternType = "SCRIPT"
	PatternOther         PatternType = "OTHER"
)

// Pattern is one manipulation tactic found in a conversation.
type Pattern struct {
	Type        PatternType `json:"type"`
	Severity    string      `json:"severity"`
	Evidence    []string    `json:"evidence"`
	Explanation string      `json:"explanation"`
}

// TimelineEvent marks one moment in the relationship's progression.
type TimelineEvent struct {
	Approximate string `json:"approximate"`
	Event       string `json:"event"`
	Concern     bool   `json:"concern"`
}

// Analysis is the structured result of a conversation scan.
type Analysis struct {
	OverallRiskScore int             `json:"overallRiskScore"`
	RiskLevel        string          `json:"riskLevel"`
	Summary          string          `json:"summary"`
	Patterns         []Pattern       `json:"patterns"`
	Timeline         []TimelineEvent `json:"timeline"`
	RedFlags         []string        `json:"redFlags"`
	Recommendations  []string        `json:"recommendations"`
}

// Level returns the analysis's declared risk tier. Unknown or missing
// values normalize to LOW.
func (a Analysis) Level() risk.Level {
	return risk.ParseLevel(a.RiskLevel)
}

// fallback is returned whenever the model output cannot be parsed. The
// caller always gets a well-formed result; a scan never hard-fails on a
// malformed model response.
func fallback() Analysis {
	return Analysis{
		OverallRiskScore: 0,
		RiskLevel:        string(risk.LevelLow),
		Summary:          "Error parsing analysis results. Please try again.",
		Patterns:         []Pattern{},
		Timeline:         []TimelineEvent{},
		RedFlags:         []string{},
		Recommendations:  []string{},
	}
}

// Parse decodes a model response into an Analysis. Markdown code fences
// are stripped first since models wrap JSON in them despite the response
// MIME type. Any decode failure yields the safe fallback result and
// ok=false.
func Parse(raw string) (Analysis, bool) {
	cleaned := StripFences(raw)
	if strings.TrimSpace(cleaned) == "" {
		return fallback(), false
	}

	var out Analysis
	if err := json.Unmarshal([]byte(cleaned), &out); err != nil {
		return fallback(), false
	}
	return normalize(out), true
}

// StripFences removes a wrapping markdown code fence, if present.
func StripFences(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```JSON")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func normalize(a Analysis) Analysis {
	a.OverallRiskScore = clampScore(a.OverallRiskScore)
	a.RiskLevel = string(risk.ParseLevel(a.RiskLevel))
	if a.Patterns == nil {
		a.Patterns = []Pattern{}
	}
	for i := range a.Patterns {
		if a.Patterns[i].Evidence == nil {
			a.Patterns[i].Evidence = []string{}
		}
	}
	if a.Timeline == nil {
		a.Timeline = []TimelineEvent{}
	}
	if a.RedFlags == nil {
		a.RedFlags = []string{}
	}
	if a.Recommendations == nil {
		a.Recommendations = []string{}
	}
	return a
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
