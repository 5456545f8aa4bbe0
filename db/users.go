// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/danielhkuo/campus-ballot/election"
	"github.com/danielhkuo/campus-ballot/models"
)

const userColumns = `
	id, student_id, name, email, department, year,
	is_admin, has_voted, voted_at, created_at`

func scanUser(row rowScanner, extra ...any) (models.User, error) {
	var u models.User
	var votedAt sql.NullTime
	dest := append([]any{
		&u.ID, &u.StudentID, &u.Name, &u.Email, &u.Department, &u.Year,
		&u.IsAdmin, &u.HasVoted, &votedAt, &u.CreatedAt,
	}, extra...)
	if err := row.Scan(dest...); err != nil {
		return models.User{}, err
	}
	if votedAt.Valid {
		t := votedAt.Time
		u.VotedAt = &t
	}
	return u, nil
}

func notFoundOr(err, notFound error, op string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return notFound
	}
	return storageError(op, err)
}

func (qs queries) GetUser(ctx context.Context, id string) (models.User, error) {
	u, err := scanUser(qs.q.QueryRowContext(ctx, `
		SELECT`+userColumns+` FROM app_user WHERE id = $1
	`, id))
	if err != nil {
		return models.User{}, notFoundOr(err, election.ErrUserNotFound, "get user")
	}
	return u, nil
}

// MarkVoted flips the flag only if it is still unset.
func (qs queries) MarkVoted(ctx context.Context, id string, at time.Time) error {
	res, err := qs.q.ExecContext(ctx, `
		UPDATE app_user SET has_voted = $1, voted_at = $2
		WHERE id = $3 AND has_voted = $4
	`, true, at, id, false)
	if err != nil {
		return storageError("mark voted", err)
	}
	if rowsAffected(res) == 1 {
		return nil
	}

	if _, err := qs.GetUser(ctx, id); err != nil {
		return err
	}
	return election.ErrAlreadyVoted
}

func (qs queries) CountUsers(ctx context.Context) (int, error) {
	return scanCount(ctx, qs.q, "count users", `SELECT COUNT(*) FROM app_user`)
}

func (qs queries) CountVoted(ctx context.Context) (int, error) {
	return scanCount(ctx, qs.q, "count voters", `
		SELECT COUNT(*) FROM app_user WHERE has_voted = $1
	`, true)
}

// GroupCounts returns total and voted users per department or year, ordered
// by the group key.
func (qs queries) GroupCounts(ctx context.Context, by models.GroupBy) ([]models.GroupCount, error) {
	var column string
	switch by {
	case models.GroupByDepartment:
		column = "department"
	case models.GroupByYear:
		column = "year"
	default:
		return nil, fmt.Errorf("unknown grouping %q", by)
	}

	rows, err := qs.q.QueryContext(ctx, `
		SELECT `+column+`, COUNT(*), COALESCE(SUM(CASE WHEN has_voted = $1 THEN 1 ELSE 0 END), 0)
		FROM app_user
		GROUP BY `+column+`
		ORDER BY `+column+` ASC
	`, true)
	if err != nil {
		return nil, storageError("group users", err)
	}
	defer rows.Close()

	groups := []models.GroupCount{}
	for rows.Next() {
		var g models.GroupCount
		if err := rows.Scan(&g.Key, &g.Total, &g.Voted); err != nil {
			return nil, storageError("scan user group", err)
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("group users", err)
	}
	return groups, nil
}

// Registration and admin operations

// CreateUser inserts a new voter. Student id and email are unique.
func (s *Store) CreateUser(ctx context.Context, u models.User, passwordHash string) (models.User, error) {
	_, err := s.q.ExecContext(ctx, `
		INSERT INTO app_user (id, student_id, name, email, password_hash, department, year, is_admin, has_voted, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, u.ID, u.StudentID, u.Name, u.Email, passwordHash, u.Department, u.Year, u.IsAdmin, false, u.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return models.User{}, election.ErrUserExists
		}
		return models.User{}, storageError("insert user", err)
	}
	u.HasVoted = false
	u.VotedAt = nil
	return u, nil
}

// GetUserByStudentID returns the user and their password hash for login.
func (s *Store) GetUserByStudentID(ctx context.Context, studentID string) (models.User, string, error) {
	var hash string
	u, err := scanUser(s.q.QueryRowContext(ctx, `
		SELECT`+userColumns+`, password_hash FROM app_user WHERE student_id = $1
	`, studentID), &hash)
	if err != nil {
		return models.User{}, "", notFoundOr(err, election.ErrUserNotFound, "get user by student id")
	}
	return u, hash, nil
}

// ListUsers returns every user, newest first.
func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	rows, err := s.q.QueryContext(ctx, `
		SELECT`+userColumns+` FROM app_user ORDER BY created_at DESC, id ASC
	`)
	if err != nil {
		return nil, storageError("list users", err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, storageError("scan user", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("list users", err)
	}
	return users, nil
}
