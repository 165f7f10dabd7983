package usage

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

type pgStore struct {
	DB    *sql.DB
	Limit int
}

// NewPGStore constructs a Postgres-backed quota store.
func NewPGStore(db *sql.DB, limit int) *pgStore {
	return &pgStore{DB: db, Limit: limit}
}

func (s *pgStore) Get(ctx context.Context, clientID string) (Usage, error) {
	return s.ensure(ctx, clientID)
}

func (s *pgStore) Consume(ctx context.Context, clientID string, n int) (Usage, error) {
	if n <= 0 {
		return s.ensure(ctx, clientID)
	}
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return Usage{}, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	u, err := s.lockAndEnsure(ctx, tx, clientID)
	if err != nil {
		return Usage{}, err
	}

	if u.Used+n > u.Limit {
		err = ErrLimitReached
		return Usage{}, err
	}
	u.Used += n
	if _, err = tx.ExecContext(ctx, `
UPDATE scan_quota SET used = $1 WHERE client_id = $2`, u.Used, clientID); err != nil {
		return Usage{}, err
	}
	if err = tx.Commit(); err != nil {
		return Usage{}, err
	}
	return u, nil
}

func (s *pgStore) Refund(ctx context.Context, clientID string, n int) (Usage, error) {
	if n <= 0 {
		return s.ensure(ctx, clientID)
	}
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return Usage{}, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	u, err := s.lockAndEnsure(ctx, tx, clientID)
	if err != nil {
		return Usage{}, err
	}
	u.Used -= n
	if u.Used < 0 {
		u.Used = 0
	}
	if _, err = tx.ExecContext(ctx, `
UPDATE scan_quota SET used = $1 WHERE client_id = $2`, u.Used, clientID); err != nil {
		return Usage{}, err
	}
	if err = tx.Commit(); err != nil {
		return Usage{}, err
	}
	return u, nil
}

func (s *pgStore) Reset(ctx context.Context, clientID string) (Usage, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return Usage{}, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()
	resetsAt := nextReset(time.Now().UTC())
	if _, err = tx.ExecContext(ctx, `
INSERT INTO scan_quota (client_id, limit_amount, used, resets_at)
VALUES ($1, $2, 0, $3)
ON CONFLICT (client_id) DO UPDATE SET used = 0, resets_at = EXCLUDED.resets_at`, clientID, s.Limit, resetsAt); err != nil {
		return Usage{}, err
	}
	if err = tx.Commit(); err != nil {
		return Usage{}, err
	}
	return Usage{Limit: s.Limit, Used: 0, ResetsAt: resetsAt}, nil
}

func (s *pgStore) ensure(ctx context.Context, clientID string) (Usage, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return Usage{}, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()
	u, err := s.lockAndEnsure(ctx, tx, clientID)
	if err != nil {
		return Usage{}, err
	}
	if err = tx.Commit(); err != nil {
		return Usage{}, err
	}
	return u, nil
}

func (s *pgStore) lockAndEnsure(ctx context.Context, tx *sql.Tx, clientID string) (Usage, error) {
	var u Usage
	row := tx.QueryRowContext(ctx, `
SELECT limit_amount, used, resets_at FROM scan_quota WHERE client_id = $1 FOR UPDATE`, clientID)
	err := row.Scan(&u.Limit, &u.Used, &u.ResetsAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			u = Usage{Limit: s.Limit, Used: 0, ResetsAt: nextReset(time.Now().UTC())}
			if _, err = tx.ExecContext(ctx, `
INSERT INTO scan_quota (client_id, limit_amount, used, resets_at) VALUES ($1, $2, $3, $4)`,
				clientID, u.Limit, u.Used, u.ResetsAt); err != nil {
				return Usage{}, err
			}
			return u, nil
		}
		return Usage{}, err
	}

	now := time.Now().UTC()
	if !now.Before(u.ResetsAt) {
		u.Used = 0
		u.ResetsAt = nextReset(now)
		if _, err = tx.ExecContext(ctx, `UPDATE scan_quota SET used = $1, resets_at = $2 WHERE client_id = $3`, u.Used, u.ResetsAt, clientID); err != nil {
			return Usage{}, err
		}
	}
	return u, nil
}
