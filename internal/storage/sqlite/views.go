package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// RecordView counts a view of athleteID at most once per sessionID and
// returns the resulting total.
func (s *Store) RecordView(ctx context.Context, athleteID, sessionID string) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("sqlite: begin view tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC().Format(timeLayout)
	res, err := tx.ExecContext(ctx,
		`INSERT OR IGNORE INTO view_sessions (athlete_id, session_id, viewed_at) VALUES (?, ?, ?)`,
		athleteID, sessionID, now)
	if err != nil {
		return 0, fmt.Errorf("sqlite: record session: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO athlete_views (athlete_id, count, last_viewed_at) VALUES (?, 1, ?)
			 ON CONFLICT(athlete_id) DO UPDATE SET count = count + 1, last_viewed_at = excluded.last_viewed_at`,
			athleteID, now); err != nil {
			return 0, fmt.Errorf("sqlite: increment views: %w", err)
		}
	}

	count, err := viewCount(ctx, tx, athleteID)
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("sqlite: commit view tx: %w", err)
	}
	return count, nil
}

// ViewCount returns the total views recorded for athleteID.
func (s *Store) ViewCount(ctx context.Context, athleteID string) (int, error) {
	return viewCount(ctx, s.db, athleteID)
}

// ViewCounts returns every non-zero view total keyed by athlete ID.
func (s *Store) ViewCounts(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT athlete_id, count FROM athlete_views`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list views: %w", err)
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var id string
		var n int
		if err := rows.Scan(&id, &n); err != nil {
			return nil, fmt.Errorf("sqlite: scan views: %w", err)
		}
		out[id] = n
	}
	return out, rows.Err()
}

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func viewCount(ctx context.Context, q queryer, athleteID string) (int, error) {
	var n int
	err := q.QueryRowContext(ctx, `SELECT count FROM athlete_views WHERE athlete_id = ?`, athleteID).Scan(&n)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("sqlite: read views: %w", err)
	}
	return n, nil
}
