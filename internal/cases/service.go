package cases

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// maxSummaryLen bounds stored summaries so history rows stay scannable.
const maxSummaryLen = 100

// Service manages case history via an underlying repo.
type Service struct {
	Repo Repo
}

// NewService constructs a Service.
func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// Record appends a completed scan to the client's history. Summaries are
// truncated with an ellipsis; IDs and timestamps are assigned here.
func (s *Service) Record(ctx context.Context, clientID, fileType, fileName, summary, riskLevel string) (CaseHistoryItem, error) {
	item := CaseHistoryItem{
		ID:        uuid.NewString(),
		ClientID:  clientID,
		Timestamp: time.Now().UTC(),
		Type:      fileType,
		FileName:  fileName,
		Summary:   Summarize(summary),
		RiskLevel: riskLevel,
	}
	if err := s.Repo.Append(ctx, item); err != nil {
		return CaseHistoryItem{}, err
	}
	return item, nil
}

// List returns the client's history, newest first.
func (s *Service) List(ctx context.Context, clientID string, limit, offset int) ([]CaseHistoryItem, error) {
	return s.Repo.ListByClient(ctx, clientID, limit, offset)
}

// Summarize trims and truncates free text for a history row.
func Summarize(text string) string {
	text = strings.TrimSpace(text)
	runes := []rune(text)
	if len(runes) <= maxSummaryLen {
		return text
	}
	return string(runes[:maxSummaryLen]) + "..."
}
