package journal

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo stores journal entries in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu   sync.RWMutex
	byID map[string]Entry
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[string]Entry)}
}

// Create stores the entry.
func (r *MemoryRepo) Create(ctx context.Context, entry Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[entry.ID] = entry
	return nil
}

// GetByID returns an entry owned by the client.
func (r *MemoryRepo) GetByID(ctx context.Context, clientID, entryID string) (Entry, error) {
	if err := ctx.Err(); err != nil {
		return Entry{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.byID[entryID]
	if !ok || entry.ClientID != clientID {
		return Entry{}, ErrNotFound
	}
	return entry, nil
}

// Update replaces an existing entry owned by the client.
func (r *MemoryRepo) Update(ctx context.Context, entry Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.byID[entry.ID]
	if !ok || existing.ClientID != entry.ClientID {
		return ErrNotFound
	}
	r.byID[entry.ID] = entry
	return nil
}

// Delete removes an entry owned by the client.
func (r *MemoryRepo) Delete(ctx context.Context, clientID, entryID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.byID[entryID]
	if !ok || existing.ClientID != clientID {
		return ErrNotFound
	}
	delete(r.byID, entryID)
	return nil
}

// ListByClient returns the client's entries, newest created first.
func (r *MemoryRepo) ListByClient(ctx context.Context, clientID string) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	entries := []Entry{}
	for _, entry := range r.byID {
		if entry.ClientID == clientID {
			entries = append(entries, entry)
		}
	}
	r.mu.RUnlock()

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
	return entries, nil
}
