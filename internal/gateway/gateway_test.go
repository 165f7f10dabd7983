package gateway

import (
	"errors"
	"testing"

	"github.com/Bridgette013/Truthseeker/internal/tasks"
)

func TestValidateRequiredFields(t *testing.T) {
	tests := []struct {
		name    string
		req     Request
		wantErr bool
	}{
		{
			name: "media ok",
			req: Request{
				Action:  tasks.ActionImageAuto,
				Payload: Payload{Base64Data: "aGVsbG8=", MimeType: "image/jpeg"},
			},
		},
		{
			name:    "media missing mime",
			req:     Request{Action: tasks.ActionVideo, Payload: Payload{Base64Data: "aGVsbG8="}},
			wantErr: true,
		},
		{
			name:    "media missing data",
			req:     Request{Action: tasks.ActionAudio, Payload: Payload{MimeType: "audio/mpeg"}},
			wantErr: true,
		},
		{
			name: "text ok",
			req:  Request{Action: tasks.ActionConversationText, Payload: Payload{Text: "hi there"}},
		},
		{
			name:    "text blank",
			req:     Request{Action: tasks.ActionDeepReasoning, Payload: Payload{Text: "   "}},
			wantErr: true,
		},
		{
			name: "query ok",
			req:  Request{Action: tasks.ActionIdentitySearch, Payload: Payload{Query: "John Miles"}},
		},
		{
			name:    "query missing",
			req:     Request{Action: tasks.ActionIdentitySearch},
			wantErr: true,
		},
		{
			name: "synthesis ok",
			req: Request{
				Action:  tasks.ActionPersonaSynthesis,
				Payload: Payload{Prompt: "a profile photo", AspectRatio: "1:1"},
			},
		},
		{
			name:    "synthesis missing aspect ratio",
			req:     Request{Action: tasks.ActionPersonaSynthesis, Payload: Payload{Prompt: "x"}},
			wantErr: true,
		},
		{
			name:    "unknown action",
			req:     Request{Action: "transmute"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.req)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				if !errors.Is(err, ErrInvalidRequest) {
					t.Fatalf("error %v is not ErrInvalidRequest", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestUpstreamErrorMessage(t *testing.T) {
	err := &UpstreamError{Code: 503, Message: "model overloaded"}
	if got := err.Error(); got != "upstream error 503: model overloaded" {
		t.Errorf("Error() = %q", got)
	}
	bare := &UpstreamError{Message: "boom"}
	if got := bare.Error(); got != "upstream error: boom" {
		t.Errorf("Error() = %q", got)
	}
}
