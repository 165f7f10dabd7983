package gemini

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	genai "google.golang.org/genai"

	"github.com/Bridgette013/Truthseeker/internal/gateway"
	"github.com/Bridgette013/Truthseeker/internal/tasks"
)

// Config selects the provider models backing each task tier.
type Config struct {
	APIKey     string
	ProModel   string
	FlashModel string
	ImageModel string
}

// Client implements gateway.Client on the Gemini API.
type Client struct {
	cli *genai.Client
	cfg Config
}

// NewClient constructs a Gemini-backed gateway client.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return &Client{cli: cli, cfg: cfg}, nil
}

func (c *Client) modelFor(tier tasks.ModelTier) string {
	switch tier {
	case tasks.ModelFlash:
		return c.cfg.FlashModel
	case tasks.ModelImage:
		return c.cfg.ImageModel
	}
	return c.cfg.ProModel
}

func safetySettings() []*genai.SafetySetting {
	return []*genai.SafetySetting{
		{Category: genai.HarmCategoryHarassment, Threshold: genai.HarmBlockThresholdBlockOnlyHigh},
		{Category: genai.HarmCategoryHateSpeech, Threshold: genai.HarmBlockThresholdBlockOnlyHigh},
		{Category: genai.HarmCategorySexuallyExplicit, Threshold: genai.HarmBlockThresholdBlockMediumAndAbove},
		{Category: genai.HarmCategoryDangerousContent, Threshold: genai.HarmBlockThresholdBlockOnlyHigh},
	}
}

// Invoke runs the task to completion.
func (c *Client) Invoke(ctx context.Context, req gateway.Request) (*gateway.Response, error) {
	if err := gateway.Validate(req); err != nil {
		return nil, err
	}
	task, err := tasks.Lookup(req.Action)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", gateway.ErrInvalidRequest, err)
	}

	contents, err := buildContents(task, req.Payload)
	if err != nil {
		return nil, err
	}

	resp, err := c.cli.Models.GenerateContent(ctx, c.modelFor(task.Model), contents, buildConfig(task, req.Payload))
	if err != nil {
		return nil, mapErr(err)
	}
	return collect(resp), nil
}

// InvokeStream streams the task's text output fragment by fragment.
// Non-streamable tasks run to completion and deliver one fragment.
func (c *Client) InvokeStream(ctx context.Context, req gateway.Request, onFragment func(string)) (*gateway.Response, error) {
	if err := gateway.Validate(req); err != nil {
		return nil, err
	}
	task, err := tasks.Lookup(req.Action)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", gateway.ErrInvalidRequest, err)
	}

	if !task.Streamable() {
		resp, err := c.Invoke(ctx, req)
		if err != nil {
			return nil, err
		}
		if resp.Text != "" && onFragment != nil {
			onFragment(resp.Text)
		}
		return resp, nil
	}

	contents, err := buildContents(task, req.Payload)
	if err != nil {
		return nil, err
	}

	out := &gateway.Response{}
	var b strings.Builder
	for chunk, err := range c.cli.Models.GenerateContentStream(ctx, c.modelFor(task.Model), contents, buildConfig(task, req.Payload)) {
		if err != nil {
			return nil, mapErr(err)
		}
		part := collect(chunk)
		if part.Text != "" {
			b.WriteString(part.Text)
			if onFragment != nil {
				onFragment(part.Text)
			}
		}
		if len(part.Citations) > 0 {
			out.Citations = append(out.Citations, part.Citations...)
		}
	}
	out.Text = b.String()
	return out, nil
}

func buildContents(task tasks.Task, p gateway.Payload) ([]*genai.Content, error) {
	switch task.Input {
	case tasks.InputMedia:
		data, err := base64.StdEncoding.DecodeString(p.Base64Data)
		if err != nil {
			return nil, fmt.Errorf("%w: media payload is not valid base64", gateway.ErrInvalidRequest)
		}
		return []*genai.Content{{Parts: []*genai.Part{
			{InlineData: &genai.Blob{MIMEType: p.MimeType, Data: data}},
			{Text: task.Prompt},
		}}}, nil
	case tasks.InputQuery:
		return textContent(tasks.IdentityPrompt(p.Query)), nil
	case tasks.InputText:
		if task.Action == tasks.ActionConversationText {
			return textContent(tasks.ConversationPrompt(p.Text, p.Context)), nil
		}
		return textContent(tasks.DeepReasoningPrompt(p.Text)), nil
	case tasks.InputSynthesis:
		return textContent(p.Prompt), nil
	}
	return nil, fmt.Errorf("%w: unsupported input kind %s", gateway.ErrInvalidRequest, task.Input)
}

func textContent(text string) []*genai.Content {
	return []*genai.Content{{Parts: []*genai.Part{{Text: text}}}}
}

func buildConfig(task tasks.Task, p gateway.Payload) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{}

	switch task.Action {
	case tasks.ActionConversationText:
		cfg.ResponseMIMEType = "application/json"
		cfg.Temperature = genai.Ptr[float32](0.3)
	case tasks.ActionConversationOCR:
		// Transcript extraction runs with provider defaults.
	case tasks.ActionIdentitySearch:
		cfg.Tools = []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}
		cfg.SafetySettings = safetySettings()
	case tasks.ActionPersonaSynthesis:
		cfg.ImageConfig = &genai.ImageConfig{AspectRatio: p.AspectRatio, ImageSize: "1K"}
		cfg.SafetySettings = safetySettings()
	default:
		cfg.SafetySettings = safetySettings()
	}

	if budget := task.Budget.Tokens(); budget > 0 {
		cfg.ThinkingConfig = &genai.ThinkingConfig{ThinkingBudget: genai.Ptr(budget)}
	}
	return cfg
}

func collect(resp *genai.GenerateContentResponse) *gateway.Response {
	out := &gateway.Response{}
	if resp == nil || len(resp.Candidates) == 0 {
		return out
	}

	var b strings.Builder
	cand := resp.Candidates[0]
	if cand.Content != nil {
		for _, part := range cand.Content.Parts {
			if part == nil {
				continue
			}
			if part.Text != "" {
				b.WriteString(part.Text)
			}
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				out.ImageBase64 = base64.StdEncoding.EncodeToString(part.InlineData.Data)
				out.ImageMimeType = part.InlineData.MIMEType
			}
		}
	}
	out.Text = b.String()

	if cand.GroundingMetadata != nil {
		for _, chunk := range cand.GroundingMetadata.GroundingChunks {
			if chunk == nil || chunk.Web == nil || chunk.Web.URI == "" {
				continue
			}
			out.Citations = append(out.Citations, gateway.Citation{
				Title: chunk.Web.Title,
				URL:   chunk.Web.URI,
			})
		}
	}
	return out
}

func mapErr(err error) error {
	var apiErr *genai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Code == 429 {
			return fmt.Errorf("%w: %s", gateway.ErrQuotaExceeded, apiErr.Message)
		}
		return &gateway.UpstreamError{Code: apiErr.Code, Message: apiErr.Message}
	}
	return err
}
