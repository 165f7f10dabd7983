package analyses

import (
	"context"
	"errors"
	"fmt"

	"github.com/Bridgette013/Truthseeker/internal/cases"
	"github.com/Bridgette013/Truthseeker/internal/conversation"
	"github.com/Bridgette013/Truthseeker/internal/extract"
	"github.com/Bridgette013/Truthseeker/internal/gateway"
	"github.com/Bridgette013/Truthseeker/internal/risk"
	"github.com/Bridgette013/Truthseeker/internal/session"
	"github.com/Bridgette013/Truthseeker/internal/shared/storage/object"
	"github.com/Bridgette013/Truthseeker/internal/shared/telemetry"
	"github.com/Bridgette013/Truthseeker/internal/tasks"
	"github.com/Bridgette013/Truthseeker/internal/usage"
)

// Service orchestrates one analysis end to end: quota, submission,
// verdict, and case history.
type Service struct {
	Ctrl  *session.Controller
	Cases *cases.Service
	Usage *usage.Service

	// Store resolves uploaded transcript keys into conversation text.
	// Optional; runs referencing a fileKey fail without it.
	Store object.ObjectStore
}

// NewService constructs a Service.
func NewService(ctrl *session.Controller, caseSvc *cases.Service, usageSvc *usage.Service) *Service {
	return &Service{Ctrl: ctrl, Cases: caseSvc, Usage: usageSvc}
}

// RunInput describes one requested analysis.
type RunInput struct {
	Action   tasks.Action    `json:"action"`
	Surface  string          `json:"surface"`
	FileName string          `json:"fileName"`
	FileKey  string          `json:"fileKey"`
	Payload  gateway.Payload `json:"payload"`
}

// Result is the terminal outcome of a run delivered to the caller.
type Result struct {
	Text         string                 `json:"text"`
	Verdict      risk.Level             `json:"verdict,omitempty"`
	Citations    []gateway.Citation     `json:"citations,omitempty"`
	ImageBase64  string                 `json:"imageBase64,omitempty"`
	ImageMime    string                 `json:"imageMimeType,omitempty"`
	Conversation *conversation.Analysis `json:"conversation,omitempty"`
}

// Start validates quota and submits the run. The returned event channel
// follows the session lifecycle; call Finish with the terminal event to
// record history and shape the result.
func (s *Service) Start(ctx context.Context, clientID string, in RunInput) (<-chan session.Event, error) {
	if in.FileKey != "" && in.Payload.Text == "" {
		text, err := s.resolveTranscript(ctx, in)
		if err != nil {
			return nil, err
		}
		in.Payload.Text = text
	}

	if _, err := s.Usage.Consume(ctx, clientID); err != nil {
		return nil, err
	}

	surface := session.Surface(in.Surface)
	if surface == "" {
		surface = session.Surface(in.Action)
	}
	events, err := s.Ctrl.Submit(ctx, surface, gateway.Request{Action: in.Action, Payload: in.Payload})
	if err != nil {
		// The rejected submission never reached the model; hand the scan back.
		if _, refundErr := s.Usage.Refund(ctx, clientID); refundErr != nil {
			telemetry.Warn("quota refund failed", map[string]any{"client": clientID, "error": refundErr.Error()})
		}
		return nil, err
	}
	return events, nil
}

// Finish records a completed run in case history and builds the Result.
// Failed runs record nothing; partial output stays with the session.
func (s *Service) Finish(ctx context.Context, clientID string, in RunInput, ev session.Event) Result {
	if ev.Type != session.EventComplete || ev.Response == nil {
		return Result{}
	}

	task, err := tasks.Lookup(in.Action)
	if err != nil {
		return Result{Text: ev.Response.Text}
	}

	result := Result{
		Text:        ev.Response.Text,
		Verdict:     ev.Verdict,
		Citations:   ev.Response.Citations,
		ImageBase64: ev.Response.ImageBase64,
		ImageMime:   ev.Response.ImageMimeType,
	}

	summary := ev.Response.Text
	if task.StructRisk {
		parsed, ok := conversation.Parse(ev.Response.Text)
		if !ok {
			telemetry.Warn("conversation result unparseable", map[string]any{"client": clientID})
		}
		result.Conversation = &parsed
		result.Text = ""
		summary = parsed.Summary
	}

	// Persona synthesis produces a simulation image, not collected evidence.
	if in.Action == tasks.ActionPersonaSynthesis {
		return result
	}

	fileName := in.FileName
	if fileName == "" {
		fileName = defaultFileName(task, in.Payload)
	}
	riskLevel := ""
	if ev.Verdict != risk.LevelNone {
		riskLevel = string(ev.Verdict)
	}
	if _, err := s.Cases.Record(ctx, clientID, task.FileType, fileName, summary, riskLevel); err != nil {
		telemetry.Error("case history append failed", map[string]any{
			"client": clientID,
			"action": string(in.Action),
			"error":  err.Error(),
		})
	}
	return result
}

func (s *Service) resolveTranscript(ctx context.Context, in RunInput) (string, error) {
	if s.Store == nil {
		return "", fmt.Errorf("%w: fileKey supplied but no object store configured", gateway.ErrInvalidRequest)
	}
	text, err := extract.FromStore(ctx, s.Store, in.FileKey, "", in.FileName)
	if err != nil {
		if errors.Is(err, extract.ErrUnsupported) {
			return "", fmt.Errorf("%w: %v", gateway.ErrInvalidRequest, err)
		}
		return "", err
	}
	return text, nil
}

func defaultFileName(task tasks.Task, p gateway.Payload) string {
	switch task.Input {
	case tasks.InputQuery:
		return cases.Summarize(p.Query)
	case tasks.InputText:
		return cases.Summarize(p.Text)
	}
	return "untitled"
}

// IsQuotaErr reports whether err is quota exhaustion from either the
// daily scan counter or the upstream provider.
func IsQuotaErr(err error) bool {
	return errors.Is(err, usage.ErrLimitReached) || errors.Is(err, gateway.ErrQuotaExceeded)
}
