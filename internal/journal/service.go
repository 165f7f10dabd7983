package journal

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service manages journal entries via an underlying repo.
type Service struct {
	Repo Repo
}

// NewService constructs a Service.
func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// CreateInput carries the editable fields of a new entry.
type CreateInput struct {
	Date    string   `json:"date"`
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

func (in CreateInput) validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if strings.TrimSpace(in.Content) == "" {
		return fmt.Errorf("content is required")
	}
	return nil
}

// Create stores a new entry for the client. A missing date defaults to today.
func (s *Service) Create(ctx context.Context, clientID string, in CreateInput) (Entry, error) {
	if err := in.validate(); err != nil {
		return Entry{}, err
	}
	now := time.Now().UTC()
	date := strings.TrimSpace(in.Date)
	if date == "" {
		date = now.Format("2006-01-02")
	}
	entry := Entry{
		ID:        uuid.NewString(),
		ClientID:  clientID,
		Date:      date,
		CreatedAt: now,
		UpdatedAt: now,
		Title:     strings.TrimSpace(in.Title),
		Content:   in.Content,
		Tags:      normalizeTags(in.Tags),
	}
	if err := s.Repo.Create(ctx, entry); err != nil {
		return Entry{}, err
	}
	return entry, nil
}

// Get returns the client's entry.
func (s *Service) Get(ctx context.Context, clientID, entryID string) (Entry, error) {
	return s.Repo.GetByID(ctx, clientID, entryID)
}

// Update rewrites the editable fields of an existing entry.
func (s *Service) Update(ctx context.Context, clientID, entryID string, in CreateInput) (Entry, error) {
	if err := in.validate(); err != nil {
		return Entry{}, err
	}
	entry, err := s.Repo.GetByID(ctx, clientID, entryID)
	if err != nil {
		return Entry{}, err
	}
	if date := strings.TrimSpace(in.Date); date != "" {
		entry.Date = date
	}
	entry.Title = strings.TrimSpace(in.Title)
	entry.Content = in.Content
	entry.Tags = normalizeTags(in.Tags)
	entry.UpdatedAt = time.Now().UTC()
	if err := s.Repo.Update(ctx, entry); err != nil {
		return Entry{}, err
	}
	return entry, nil
}

// Delete removes the client's entry.
func (s *Service) Delete(ctx context.Context, clientID, entryID string) error {
	return s.Repo.Delete(ctx, clientID, entryID)
}

// List returns the client's entries, newest created first.
func (s *Service) List(ctx context.Context, clientID string) ([]Entry, error) {
	return s.Repo.ListByClient(ctx, clientID)
}

func normalizeTags(tags []string) []string {
	out := []string{}
	seen := make(map[string]bool)
	for _, tag := range tags {
		tag = strings.TrimSpace(strings.ToLower(tag))
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}
