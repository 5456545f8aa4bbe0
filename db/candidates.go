// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/danielhkuo/campus-ballot/election"
	"github.com/danielhkuo/campus-ballot/models"
)

const candidateColumns = `
	id, name, position, department, year, manifesto, photo_url,
	is_active, vote_count, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCandidate(row rowScanner) (models.Candidate, error) {
	var c models.Candidate
	err := row.Scan(
		&c.ID, &c.Name, &c.Position, &c.Department, &c.Year, &c.Manifesto, &c.PhotoURL,
		&c.IsActive, &c.VoteCount, &c.CreatedAt, &c.UpdatedAt,
	)
	return c, err
}

func (qs queries) listCandidates(ctx context.Context, op, query string, args ...any) ([]models.Candidate, error) {
	rows, err := qs.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storageError(op, err)
	}
	defer rows.Close()

	candidates := []models.Candidate{}
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, storageError(op, err)
		}
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError(op, err)
	}
	return candidates, nil
}

// FindActiveByIDs returns the active candidates among ids. Unknown and
// inactive ids are simply absent from the result.
func (qs queries) FindActiveByIDs(ctx context.Context, ids []string) ([]models.Candidate, error) {
	if len(ids) == 0 {
		return []models.Candidate{}, nil
	}

	args := make([]any, 0, len(ids)+1)
	for _, id := range ids {
		args = append(args, id)
	}
	args = append(args, true)

	query := `SELECT` + candidateColumns + `
		FROM candidate
		WHERE id IN (` + placeholders(1, len(ids)) + `) AND is_active = $` + strconv.Itoa(len(ids)+1)
	return qs.listCandidates(ctx, "find active candidates", query, args...)
}

// IncrementVotes bumps the tally in the database, never in Go.
func (qs queries) IncrementVotes(ctx context.Context, id string) error {
	res, err := qs.q.ExecContext(ctx, `
		UPDATE candidate SET vote_count = vote_count + 1 WHERE id = $1
	`, id)
	if err != nil {
		return storageError("increment votes", err)
	}
	if rowsAffected(res) == 0 {
		return election.ErrNotFound
	}
	return nil
}

// ListResults returns active candidates by position, then tally descending.
// Name and id break ties so repeated reads agree.
func (qs queries) ListResults(ctx context.Context) ([]models.Candidate, error) {
	return qs.listCandidates(ctx, "list results", `
		SELECT`+candidateColumns+`
		FROM candidate
		WHERE is_active = $1
		ORDER BY position ASC, vote_count DESC, name ASC, id ASC
	`, true)
}

func (qs queries) CountActiveCandidates(ctx context.Context) (int, error) {
	return scanCount(ctx, qs.q, "count candidates", `
		SELECT COUNT(*) FROM candidate WHERE is_active = $1
	`, true)
}

// Admin operations

func (s *Store) CreateCandidate(ctx context.Context, c models.Candidate) (models.Candidate, error) {
	_, err := s.q.ExecContext(ctx, `
		INSERT INTO candidate (id, name, position, department, year, manifesto, photo_url, is_active, vote_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 0, $9, $10)
	`, c.ID, c.Name, c.Position, c.Department, c.Year, c.Manifesto, c.PhotoURL, true, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return models.Candidate{}, storageError("insert candidate", err)
	}
	c.IsActive = true
	c.VoteCount = 0
	return c, nil
}

func (s *Store) GetCandidate(ctx context.Context, id string) (models.Candidate, error) {
	c, err := scanCandidate(s.q.QueryRowContext(ctx, `
		SELECT`+candidateColumns+` FROM candidate WHERE id = $1
	`, id))
	if err != nil {
		return models.Candidate{}, notFoundOr(err, election.ErrNotFound, "get candidate")
	}
	return c, nil
}

// ListCandidates returns the ballot view (active only, by name) or the admin
// view (everything, by tally).
func (s *Store) ListCandidates(ctx context.Context, activeOnly bool) ([]models.Candidate, error) {
	if activeOnly {
		return s.listCandidates(ctx, "list candidates", `
			SELECT`+candidateColumns+`
			FROM candidate
			WHERE is_active = $1
			ORDER BY position ASC, name ASC, id ASC
		`, true)
	}
	return s.listCandidates(ctx, "list candidates", `
		SELECT`+candidateColumns+`
		FROM candidate
		ORDER BY position ASC, vote_count DESC, name ASC, id ASC
	`)
}

// UpdateCandidate applies the non-nil fields. The tally is not updatable here.
func (s *Store) UpdateCandidate(ctx context.Context, id string, req models.UpdateCandidateRequest, now time.Time) (models.Candidate, error) {
	var (
		sets []string
		args []any
	)
	set := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, column+" = $"+strconv.Itoa(len(args)))
	}
	if req.Name != nil {
		set("name", *req.Name)
	}
	if req.Position != nil {
		set("position", *req.Position)
	}
	if req.Department != nil {
		set("department", *req.Department)
	}
	if req.Year != nil {
		set("year", *req.Year)
	}
	if req.Manifesto != nil {
		set("manifesto", *req.Manifesto)
	}
	if req.PhotoURL != nil {
		set("photo_url", *req.PhotoURL)
	}
	if req.IsActive != nil {
		set("is_active", *req.IsActive)
	}
	set("updated_at", now)
	args = append(args, id)

	res, err := s.q.ExecContext(ctx,
		`UPDATE candidate SET `+strings.Join(sets, ", ")+` WHERE id = $`+strconv.Itoa(len(args)),
		args...,
	)
	if err != nil {
		return models.Candidate{}, storageError("update candidate", err)
	}
	if rowsAffected(res) == 0 {
		return models.Candidate{}, election.ErrNotFound
	}
	return s.GetCandidate(ctx, id)
}

// DeactivateCandidate is a soft delete: ballots keep referencing the row.
func (s *Store) DeactivateCandidate(ctx context.Context, id string, now time.Time) (models.Candidate, error) {
	active := false
	return s.UpdateCandidate(ctx, id, models.UpdateCandidateRequest{IsActive: &active}, now)
}
