package cases

import (
	"context"
	"errors"
)

// ErrNotFound indicates the case history item does not exist.
var ErrNotFound = errors.New("case history item not found")

// Repo defines persistence operations for case history.
type Repo interface {
	Append(ctx context.Context, item CaseHistoryItem) error
	ListByClient(ctx context.Context, clientID string, limit, offset int) ([]CaseHistoryItem, error)
}
