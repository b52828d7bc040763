package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/gng-scout/athlete-directory-service/internal/app/claims"
)

// SaveClaim inserts a claim request.
func (s *Store) SaveClaim(ctx context.Context, c claims.Claim) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO claims (id, athlete_id, athlete_name, full_name, email, social_media, explanation, submitted_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.AthleteID, c.AthleteName, c.FullName, c.Email, c.SocialMedia, c.Explanation,
		c.SubmittedAt.UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("sqlite: insert claim %s: %w", c.ID, err)
	}
	return nil
}

// ListClaims returns every claim, newest first.
func (s *Store) ListClaims(ctx context.Context) ([]claims.Claim, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, athlete_id, athlete_name, full_name, email, social_media, explanation, submitted_at
		 FROM claims ORDER BY submitted_at DESC, rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list claims: %w", err)
	}
	defer rows.Close()

	out := []claims.Claim{}
	for rows.Next() {
		var c claims.Claim
		var submitted string
		if err := rows.Scan(&c.ID, &c.AthleteID, &c.AthleteName, &c.FullName, &c.Email,
			&c.SocialMedia, &c.Explanation, &submitted); err != nil {
			return nil, fmt.Errorf("sqlite: scan claim: %w", err)
		}
		c.SubmittedAt, err = time.Parse(timeLayout, submitted)
		if err != nil {
			return nil, fmt.Errorf("sqlite: parse claim time %q: %w", submitted, err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
