package cases

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo stores case history in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu       sync.RWMutex
	byClient map[string][]CaseHistoryItem
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byClient: make(map[string][]CaseHistoryItem)}
}

// Append records the item.
func (r *MemoryRepo) Append(ctx context.Context, item CaseHistoryItem) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byClient[item.ClientID] = append(r.byClient[item.ClientID], item)
	return nil
}

// ListByClient returns the client's history, newest first.
func (r *MemoryRepo) ListByClient(ctx context.Context, clientID string, limit, offset int) ([]CaseHistoryItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	items := make([]CaseHistoryItem, len(r.byClient[clientID]))
	copy(items, r.byClient[clientID])
	r.mu.RUnlock()

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Timestamp.After(items[j].Timestamp)
	})
	if offset >= len(items) {
		return []CaseHistoryItem{}, nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items, nil
}
