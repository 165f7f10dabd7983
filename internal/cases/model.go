package cases

import "time"

// CaseHistoryItem is one completed scan recorded in a client's case file.
// Items are append-only; history is never edited or deleted.
type CaseHistoryItem struct {
	ID        string    `json:"id"`
	ClientID  string    `json:"-"`
	Timestamp time.Time `json:"timestamp"`
	Type      string    `json:"type"`
	FileName  string    `json:"fileName"`
	Summary   string    `json:"summary"`
	RiskLevel string    `json:"riskLevel,omitempty"`
}
