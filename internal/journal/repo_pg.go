package journal

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
)

// PGRepo implements Repo using Postgres. Tags are stored as JSONB.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new entry.
func (r *PGRepo) Create(ctx context.Context, entry Entry) error {
	tags, err := json.Marshal(entry.Tags)
	if err != nil {
		return err
	}
	const query = `
INSERT INTO journal_entries (id, client_id, entry_date, created_at, updated_at, title, content, tags)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err = r.DB.ExecContext(ctx, query,
		entry.ID, entry.ClientID, entry.Date, entry.CreatedAt, entry.UpdatedAt, entry.Title, entry.Content, tags)
	return err
}

// GetByID returns an entry owned by the client.
func (r *PGRepo) GetByID(ctx context.Context, clientID, entryID string) (Entry, error) {
	const query = `
SELECT id, client_id, entry_date, created_at, updated_at, title, content, tags
FROM journal_entries
WHERE id = $1 AND client_id = $2`
	return scanEntry(r.DB.QueryRowContext(ctx, query, entryID, clientID))
}

// Update replaces the editable fields of an entry owned by the client.
func (r *PGRepo) Update(ctx context.Context, entry Entry) error {
	tags, err := json.Marshal(entry.Tags)
	if err != nil {
		return err
	}
	const query = `
UPDATE journal_entries
SET entry_date = $1, updated_at = $2, title = $3, content = $4, tags = $5
WHERE id = $6 AND client_id = $7`
	res, err := r.DB.ExecContext(ctx, query,
		entry.Date, entry.UpdatedAt, entry.Title, entry.Content, tags, entry.ID, entry.ClientID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes an entry owned by the client.
func (r *PGRepo) Delete(ctx context.Context, clientID, entryID string) error {
	res, err := r.DB.ExecContext(ctx,
		`DELETE FROM journal_entries WHERE id = $1 AND client_id = $2`, entryID, clientID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListByClient returns the client's entries, newest created first.
func (r *PGRepo) ListByClient(ctx context.Context, clientID string) ([]Entry, error) {
	const query = `
SELECT id, client_id, entry_date, created_at, updated_at, title, content, tags
FROM journal_entries
WHERE client_id = $1
ORDER BY created_at DESC, id DESC`
	rows, err := r.DB.QueryContext(ctx, query, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (Entry, error) {
	var entry Entry
	var tags []byte
	err := row.Scan(&entry.ID, &entry.ClientID, &entry.Date, &entry.CreatedAt, &entry.UpdatedAt, &entry.Title, &entry.Content, &tags)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Entry{}, ErrNotFound
		}
		return Entry{}, err
	}
	if len(tags) > 0 {
		if err := json.Unmarshal(tags, &entry.Tags); err != nil {
			return Entry{}, err
		}
	}
	if entry.Tags == nil {
		entry.Tags = []string{}
	}
	return entry, nil
}
