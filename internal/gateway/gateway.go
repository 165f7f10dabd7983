package gateway

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Bridgette013/Truthseeker/internal/tasks"
)

// Client abstracts the model provider behind the analysis surfaces.
type Client interface {
	// Invoke runs the task to completion and returns the full response.
	Invoke(ctx context.Context, req Request) (*Response, error)
	// InvokeStream runs the task, calling onFragment for each text chunk
	// in arrival order, then returns the complete response. Tasks whose
	// output is not streamable fall back to a single fragment.
	InvokeStream(ctx context.Context, req Request, onFragment func(string)) (*Response, error)
}

// Request is one analysis invocation.
type Request struct {
	Action  tasks.Action
	Payload Payload
}

// Payload carries the per-action inputs. Which fields are required
// depends on the task's input kind.
type Payload struct {
	// Media tasks.
	Base64Data string `json:"base64Data,omitempty"`
	MimeType   string `json:"mimeType,omitempty"`

	// Text tasks. Context is optional user-provided background.
	Text    string `json:"text,omitempty"`
	Context string `json:"context,omitempty"`

	// Query tasks.
	Query string `json:"query,omitempty"`

	// Synthesis tasks.
	Prompt      string `json:"prompt,omitempty"`
	AspectRatio string `json:"aspectRatio,omitempty"`
}

// Citation is a grounded web source attached to a search-backed response.
type Citation struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Response is the provider's complete answer to a Request.
type Response struct {
	Text          string     `json:"text"`
	Citations     []Citation `json:"citations,omitempty"`
	ImageBase64   string     `json:"imageBase64,omitempty"`
	ImageMimeType string     `json:"imageMimeType,omitempty"`
}

// ErrInvalidRequest marks requests rejected before reaching the provider.
var ErrInvalidRequest = errors.New("invalid request")

// ErrQuotaExceeded marks provider-side rate or quota exhaustion.
var ErrQuotaExceeded = errors.New("model quota exceeded")

// UpstreamError preserves the provider's own failure message so the
// caller can surface it instead of a generic error.
type UpstreamError struct {
	Code    int
	Message string
}

func (e *UpstreamError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("upstream error %d: %s", e.Code, e.Message)
	}
	return "upstream error: " + e.Message
}

// Validate checks that the payload carries every field the task's input
// kind requires. It never inspects media bytes beyond presence.
func Validate(req Request) error {
	task, err := tasks.Lookup(req.Action)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	p := req.Payload
	switch task.Input {
	case tasks.InputMedia:
		if p.Base64Data == "" || strings.TrimSpace(p.MimeType) == "" {
			return fmt.Errorf("%w: base64Data and mimeType are required for %s", ErrInvalidRequest, req.Action)
		}
	case tasks.InputText:
		if strings.TrimSpace(p.Text) == "" {
			return fmt.Errorf("%w: text is required for %s", ErrInvalidRequest, req.Action)
		}
	case tasks.InputQuery:
		if strings.TrimSpace(p.Query) == "" {
			return fmt.Errorf("%w: query is required for %s", ErrInvalidRequest, req.Action)
		}
	case tasks.InputSynthesis:
		if strings.TrimSpace(p.Prompt) == "" || strings.TrimSpace(p.AspectRatio) == "" {
			return fmt.Errorf("%w: prompt and aspectRatio are required for %s", ErrInvalidRequest, req.Action)
		}
	}
	return nil
}
