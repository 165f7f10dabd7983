package evidence

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/Bridgette013/Truthseeker/internal/cases"
	"github.com/Bridgette013/Truthseeker/internal/journal"
	"github.com/Bridgette013/Truthseeker/internal/shared/util"
)

// Item types distinguish scan results from journal records in a report.
const (
	TypeAnalysis = "analysis"
	TypeJournal  = "journal"
)

// maxJournalSummaryLen bounds how much journal content appears in an
// evidence summary.
const maxJournalSummaryLen = 500

// Item is one piece of evidence prepared for a report. Raw holds the
// serialized source record; Checksum is computed over Raw so a reader
// can verify the item was not altered after compilation.
type Item struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Date      time.Time `json:"date"`
	Title     string    `json:"title"`
	Summary   string    `json:"summary"`
	RiskLevel string    `json:"riskLevel,omitempty"`
	Raw       string    `json:"rawData,omitempty"`
	Checksum  string    `json:"checksum"`
}

// Concerning reports whether the item carries an elevated risk tier.
func (i Item) Concerning() bool {
	return i.RiskLevel == "HIGH" || i.RiskLevel == "MEDIUM"
}

// BuildItems converts case history and journal entries into evidence
// items ordered by date ascending. IDs are positional within each source
// so the same inputs always produce the same items.
func BuildItems(history []cases.CaseHistoryItem, entries []journal.Entry, now time.Time) []Item {
	items := make([]Item, 0, len(history)+len(entries))

	for idx, c := range history {
		date := c.Timestamp
		if date.IsZero() {
			date = now
		}
		title := c.FileName
		if title == "" {
			title = fmt.Sprintf("Analysis #%d", idx+1)
		}
		summary := c.Summary
		if summary == "" {
			summary = "Analysis completed"
		}
		raw, _ := json.Marshal(c)
		items = append(items, Item{
			ID:        fmt.Sprintf("case-%d", idx),
			Type:      TypeAnalysis,
			Date:      date,
			Title:     title,
			Summary:   summary,
			RiskLevel: c.RiskLevel,
			Raw:       string(raw),
			Checksum:  util.Checksum(string(raw)),
		})
	}

	for idx, j := range entries {
		date := j.CreatedAt
		if date.IsZero() {
			if parsed, err := time.Parse("2006-01-02", j.Date); err == nil {
				date = parsed
			} else {
				date = now
			}
		}
		title := j.Title
		if title == "" {
			title = fmt.Sprintf("Journal Entry #%d", idx+1)
		}
		raw, _ := json.Marshal(j)
		items = append(items, Item{
			ID:       fmt.Sprintf("journal-%d", idx),
			Type:     TypeJournal,
			Date:     date,
			Title:    title,
			Summary:  truncate(j.Content, maxJournalSummaryLen),
			Raw:      string(raw),
			Checksum: util.Checksum(string(raw)),
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Date.Before(items[j].Date)
	})
	return items
}

func truncate(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max])
}
