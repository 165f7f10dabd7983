package evidence

import (
	"fmt"
	"math/rand"
	"time"
)

// defaultAssessment is used when the client provides no overall summary.
const defaultAssessment = "This report contains evidence collected and analyzed using TruthSeeker forensic tools. Review all items for potential indicators of online fraud or deception."

// TimelineEntry is one row of the report's chronological view.
type TimelineEntry struct {
	Date       string `json:"date"`
	Event      string `json:"event"`
	EvidenceID string `json:"evidenceId,omitempty"`
	IsConcern  bool   `json:"isConcern"`
}

// Stats summarizes the report's risk profile.
type Stats struct {
	TotalItems      int `json:"total"`
	HighRiskCount   int `json:"highRiskCount"`
	MediumRiskCount int `json:"mediumRiskCount"`
}

// Package is a compiled evidence report ready for rendering.
type Package struct {
	CaseID            string          `json:"caseId"`
	GeneratedAt       time.Time       `json:"generatedAt"`
	Items             []Item          `json:"items"`
	OverallAssessment string          `json:"overallAssessment"`
	Timeline          []TimelineEntry `json:"timeline"`
	Stats             Stats           `json:"stats"`
}

const caseIDAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// NewCaseID builds a case reference like TS-20240115-7GQ2.
func NewCaseID(now time.Time) string {
	suffix := make([]byte, 4)
	for i := range suffix {
		suffix[i] = caseIDAlphabet[rand.Intn(len(caseIDAlphabet))]
	}
	return fmt.Sprintf("TS-%s-%s", now.UTC().Format("20060102"), suffix)
}

// FormatDate renders a timestamp the way it appears throughout a report.
func FormatDate(t time.Time) string {
	return t.UTC().Format("Monday, January 2, 2006 03:04 PM")
}

// Compile assembles the selected items into a report package. Items keep
// their given order; the timeline mirrors them one to one.
func Compile(caseID string, items []Item, assessment string, generatedAt time.Time) Package {
	if assessment == "" {
		assessment = defaultAssessment
	}

	stats := Stats{TotalItems: len(items)}
	timeline := make([]TimelineEntry, 0, len(items))
	for _, item := range items {
		switch item.RiskLevel {
		case "HIGH":
			stats.HighRiskCount++
		case "MEDIUM":
			stats.MediumRiskCount++
		}
		timeline = append(timeline, TimelineEntry{
			Date:       FormatDate(item.Date),
			Event:      item.Title,
			EvidenceID: item.ID,
			IsConcern:  item.Concerning(),
		})
	}

	return Package{
		CaseID:            caseID,
		GeneratedAt:       generatedAt,
		Items:             items,
		OverallAssessment: assessment,
		Timeline:          timeline,
		Stats:             stats,
	}
}

// ExportFileName is the download name for a rendered report.
func ExportFileName(caseID string) string {
	return "TruthSeeker-Evidence-" + caseID + ".html"
}
