// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"sort"
	"time"

	"github.com/danielhkuo/campus-ballot/election"
	"github.com/danielhkuo/campus-ballot/models"
)

func (qs queries) BallotExists(ctx context.Context, userID string) (bool, error) {
	var exists bool
	err := qs.q.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM ballot WHERE user_id = $1)
	`, userID).Scan(&exists)
	if err != nil {
		return false, storageError("check ballot", err)
	}
	return exists, nil
}

// CreateBallot inserts the ballot and its selections. The UNIQUE(user_id)
// constraint is what stops two racing casts for one user.
func (qs queries) CreateBallot(ctx context.Context, ballot models.Ballot) error {
	_, err := qs.q.ExecContext(ctx, `
		INSERT INTO ballot (id, user_id, ip_hash, user_agent, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, ballot.ID, ballot.UserID, ballot.IPHash, ballot.UserAgent, ballot.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return election.ErrDuplicateBallot
		}
		return storageError("insert ballot", err)
	}

	for i, sel := range ballot.Selections {
		_, err := qs.q.ExecContext(ctx, `
			INSERT INTO ballot_selection (ballot_id, position, candidate_id, ordinal)
			VALUES ($1, $2, $3, $4)
		`, ballot.ID, sel.Position, sel.CandidateID, i)
		if err != nil {
			if isUniqueViolation(err) {
				return election.ErrDuplicatePosition
			}
			return storageError("insert selection", err)
		}
	}
	return nil
}

func (qs queries) CountBallots(ctx context.Context) (int, error) {
	return scanCount(ctx, qs.q, "count ballots", `SELECT COUNT(*) FROM ballot`)
}

// AggregateByHour buckets ballot timestamps by UTC hour, most recent first.
// Bucketing happens in Go because the two SQL dialects disagree on date
// truncation.
func (qs queries) AggregateByHour(ctx context.Context, limit int) ([]models.HourlyCount, error) {
	rows, err := qs.q.QueryContext(ctx, `SELECT created_at FROM ballot`)
	if err != nil {
		return nil, storageError("list ballot times", err)
	}
	defer rows.Close()

	counts := make(map[time.Time]int)
	for rows.Next() {
		var at time.Time
		if err := rows.Scan(&at); err != nil {
			return nil, storageError("scan ballot time", err)
		}
		counts[at.UTC().Truncate(time.Hour)]++
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("list ballot times", err)
	}

	buckets := make([]models.HourlyCount, 0, len(counts))
	for hour, n := range counts {
		buckets = append(buckets, models.HourlyCount{Hour: hour, Count: n})
	}
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Hour.After(buckets[j].Hour)
	})
	if limit > 0 && len(buckets) > limit {
		buckets = buckets[:limit]
	}
	return buckets, nil
}

// GetBallot loads a ballot with its selections in submission order.
func (s *Store) GetBallot(ctx context.Context, userID string) (models.Ballot, error) {
	var b models.Ballot
	err := s.q.QueryRowContext(ctx, `
		SELECT id, user_id, COALESCE(ip_hash, ''), COALESCE(user_agent, ''), created_at
		FROM ballot WHERE user_id = $1
	`, userID).Scan(&b.ID, &b.UserID, &b.IPHash, &b.UserAgent, &b.CreatedAt)
	if err != nil {
		return models.Ballot{}, notFoundOr(err, election.ErrBallotNotFound, "get ballot")
	}

	rows, err := s.q.QueryContext(ctx, `
		SELECT position, candidate_id FROM ballot_selection
		WHERE ballot_id = $1
		ORDER BY ordinal ASC
	`, b.ID)
	if err != nil {
		return models.Ballot{}, storageError("list selections", err)
	}
	defer rows.Close()

	for rows.Next() {
		var sel models.Selection
		if err := rows.Scan(&sel.Position, &sel.CandidateID); err != nil {
			return models.Ballot{}, storageError("scan selection", err)
		}
		b.Selections = append(b.Selections, sel)
	}
	if err := rows.Err(); err != nil {
		return models.Ballot{}, storageError("list selections", err)
	}
	return b, nil
}
