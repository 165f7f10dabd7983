package cases

import (
	"context"
	"database/sql"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Append inserts a case history item.
func (r *PGRepo) Append(ctx context.Context, item CaseHistoryItem) error {
	const query = `
INSERT INTO case_history (id, client_id, recorded_at, file_type, file_name, summary, risk_level)
VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.DB.ExecContext(ctx, query,
		item.ID,
		item.ClientID,
		item.Timestamp,
		item.Type,
		item.FileName,
		item.Summary,
		item.RiskLevel,
	)
	return err
}

// ListByClient returns the client's history, newest first.
func (r *PGRepo) ListByClient(ctx context.Context, clientID string, limit, offset int) ([]CaseHistoryItem, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
SELECT id, client_id, recorded_at, file_type, file_name, summary, risk_level
FROM case_history
WHERE client_id = $1
ORDER BY recorded_at DESC, id DESC
LIMIT $2 OFFSET $3`
	rows, err := r.DB.QueryContext(ctx, query, clientID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []CaseHistoryItem{}
	for rows.Next() {
		var item CaseHistoryItem
		if err := rows.Scan(&item.ID, &item.ClientID, &item.Timestamp, &item.Type, &item.FileName, &item.Summary, &item.RiskLevel); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
