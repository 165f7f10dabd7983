package risk

import "strings"

// Level is a coarse ordinal risk tier summarizing an analysis outcome.
type Level string

const (
	// LevelNone marks tasks that deliberately produce no verdict.
	LevelNone     Level = ""
	LevelLow      Level = "LOW"
	LevelMedium   Level = "MEDIUM"
	LevelHigh     Level = "HIGH"
	LevelCritical Level = "CRITICAL"
)

// Valid reports whether the level is one of the known tiers.
func (l Level) Valid() bool {
	switch l {
	case LevelLow, LevelMedium, LevelHigh, LevelCritical:
		return true
	}
	return false
}

// Concerning reports whether the level should flag an item in reports.
func (l Level) Concerning() bool {
	return l == LevelHigh || l == LevelMedium
}

type clause struct {
	level    Level
	keywords []string
}

// Rule is an ordered keyword table. Clauses are evaluated in order and the
// first clause with a matching keyword wins; no match defaults to LOW.
// This is a deliberately crude heuristic safety net for summarizing
// free-form narrative output, not an analytic signal in itself.
type Rule []clause

// Keyword tables per analysis task. The narrative text is the real output;
// these only derive the history badge.
var (
	RuleImageAuto = Rule{
		{LevelHigh, []string{"high risk", "highly edited", "ai generated", "ai-generated"}},
		{LevelMedium, []string{"suspicious", "medium"}},
	}
	RuleVideo = Rule{
		{LevelHigh, []string{"high"}},
		{LevelMedium, []string{"medium"}},
	}
	RuleAudio = Rule{
		{LevelHigh, []string{"splicing", "synthetic"}},
	}
)

// Classify derives a risk level from final accumulated analysis text.
// A nil rule means the task computes no verdict and yields LevelNone.
func Classify(r Rule, text string) Level {
	if r == nil {
		return LevelNone
	}
	lowered := strings.ToLower(text)
	for _, c := range r {
		for _, kw := range c.keywords {
			if strings.Contains(lowered, kw) {
				return c.level
			}
		}
	}
	return LevelLow
}

// ParseLevel normalizes a model-declared risk level string. Unknown values
// fall back to LOW so malformed output can never escalate a case.
func ParseLevel(s string) Level {
	l := Level(strings.ToUpper(strings.TrimSpace(s)))
	if !l.Valid() {
		return LevelLow
	}
	return l
}
