package tasks

import (
	"fmt"

	"github.com/Bridgette013/Truthseeker/internal/risk"
)

// Action identifies one analysis task kind.
type Action string

const (
	ActionImageAuto        Action = "analyzeImage"
	ActionImageGuided      Action = "analyzeImageGuided"
	ActionVideo            Action = "analyzeVideo"
	ActionAudio            Action = "analyzeAudio"
	ActionConversationText Action = "analyzeConversation"
	ActionConversationOCR  Action = "extractTextFromImage"
	ActionIdentitySearch   Action = "verifyIdentity"
	ActionDeepReasoning    Action = "deepForensicThink"
	ActionPersonaSynthesis Action = "generateSimulationImage"
)

// InputKind describes which payload fields a task requires.
type InputKind string

const (
	InputMedia     InputKind = "media"     // base64 payload + MIME type
	InputText      InputKind = "text"      // plain text + optional context
	InputQuery     InputKind = "query"     // free-text query
	InputSynthesis InputKind = "synthesis" // prompt + aspect ratio
)

// OutputMode describes the shape of the model's response.
type OutputMode string

const (
	OutputMarkdown   OutputMode = "markdown"
	OutputStructured OutputMode = "structured" // machine-parseable JSON
	OutputTranscript OutputMode = "transcript"
	OutputImage      OutputMode = "image"
)

// Budget is a reasoning-budget tier; higher trades latency for depth.
type Budget int

const (
	BudgetNone Budget = iota
	BudgetLow
	BudgetMedium
	BudgetHigh
)

// Tokens maps the tier to the provider's thinking-token budget.
func (b Budget) Tokens() int32 {
	switch b {
	case BudgetLow:
		return 1024
	case BudgetMedium:
		return 2048
	case BudgetHigh:
		return 32768
	}
	return 0
}

// ModelTier selects which provider model family serves the task.
type ModelTier string

const (
	ModelPro   ModelTier = "pro"
	ModelFlash ModelTier = "flash"
	ModelImage ModelTier = "image"
)

// Task is the static definition of one analysis task. Definitions are
// immutable; behavioral differences between tasks live here, not in the
// gateway or the session layer.
type Task struct {
	Action     Action
	Input      InputKind
	Output     OutputMode
	Budget     Budget
	Grounding  bool
	Model      ModelTier
	RiskRule   risk.Rule // nil when the task computes no verdict
	StructRisk bool      // risk comes from the structured riskLevel field
	Prompt     string
	FileType   string // media kind recorded in case history
}

var registry = map[Action]Task{
	ActionImageAuto: {
		Action:   ActionImageAuto,
		Input:    InputMedia,
		Output:   OutputMarkdown,
		Budget:   BudgetLow,
		Model:    ModelPro,
		RiskRule: risk.RuleImageAuto,
		Prompt:   imageAutoPrompt,
		FileType: "image",
	},
	ActionImageGuided: {
		Action:   ActionImageGuided,
		Input:    InputMedia,
		Output:   OutputMarkdown,
		Budget:   BudgetLow,
		Model:    ModelPro,
		Prompt:   imageGuidedPrompt,
		FileType: "image",
	},
	ActionVideo: {
		Action:   ActionVideo,
		Input:    InputMedia,
		Output:   OutputMarkdown,
		Budget:   BudgetMedium,
		Model:    ModelPro,
		RiskRule: risk.RuleVideo,
		Prompt:   videoPrompt,
		FileType: "video",
	},
	ActionAudio: {
		Action:   ActionAudio,
		Input:    InputMedia,
		Output:   OutputMarkdown,
		Budget:   BudgetNone,
		Model:    ModelFlash,
		RiskRule: risk.RuleAudio,
		Prompt:   audioPrompt,
		FileType: "audio",
	},
	ActionConversationText: {
		Action:     ActionConversationText,
		Input:      InputText,
		Output:     OutputStructured,
		Budget:     BudgetMedium,
		Model:      ModelPro,
		StructRisk: true,
		Prompt:     conversationPromptPrefix,
		FileType:   "conversation",
	},
	ActionConversationOCR: {
		Action:   ActionConversationOCR,
		Input:    InputMedia,
		Output:   OutputTranscript,
		Budget:   BudgetNone,
		Model:    ModelFlash,
		Prompt:   ocrPrompt,
		FileType: "image",
	},
	ActionIdentitySearch: {
		Action:    ActionIdentitySearch,
		Input:     InputQuery,
		Output:    OutputMarkdown,
		Budget:    BudgetNone,
		Grounding: true,
		Model:     ModelFlash,
		Prompt:    identityPromptTemplate,
		FileType:  "search",
	},
	ActionDeepReasoning: {
		Action:   ActionDeepReasoning,
		Input:    InputText,
		Output:   OutputMarkdown,
		Budget:   BudgetHigh,
		Model:    ModelPro,
		Prompt:   deepReasoningPromptTemplate,
		FileType: "scenario",
	},
	ActionPersonaSynthesis: {
		Action:   ActionPersonaSynthesis,
		Input:    InputSynthesis,
		Output:   OutputImage,
		Budget:   BudgetNone,
		Model:    ModelImage,
		FileType: "image",
	},
}

// Lookup returns the task definition for action.
func Lookup(action Action) (Task, error) {
	task, ok := registry[action]
	if !ok {
		return Task{}, fmt.Errorf("unknown action %q", action)
	}
	return task, nil
}

// All returns every registered task definition.
func All() []Task {
	out := make([]Task, 0, len(registry))
	for _, t := range registry {
		out = append(out, t)
	}
	return out
}

// Streamable reports whether the task's output is delivered incrementally.
// Structured JSON and generated images only make sense as complete payloads.
func (t Task) Streamable() bool {
	return t.Output == OutputMarkdown || t.Output == OutputTranscript
}

// HasVerdict reports whether the task yields a risk tier at all. Guided
// tutoring, OCR, identity search, and synthesis deliberately withhold one;
// "no verdict" is a legitimate terminal state, not an error.
func (t Task) HasVerdict() bool {
	return t.RiskRule != nil || t.StructRisk
}
