package journal

import (
	"context"
	"errors"
)

// ErrNotFound indicates the journal entry does not exist for the client.
var ErrNotFound = errors.New("journal entry not found")

// Repo defines persistence operations for journal entries.
type Repo interface {
	Create(ctx context.Context, entry Entry) error
	GetByID(ctx context.Context, clientID, entryID string) (Entry, error)
	Update(ctx context.Context, entry Entry) error
	Delete(ctx context.Context, clientID, entryID string) error
	ListByClient(ctx context.Context, clientID string) ([]Entry, error)
}
