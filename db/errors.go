// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/danielhkuo/campus-ballot/election"
)

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return true
		case sqlite3.SQLITE_CONSTRAINT:
			return strings.Contains(liteErr.Error(), "UNIQUE constraint failed")
		}
	}
	return false
}

// storageError marks an infrastructure failure so the service reports it as
// retryable. Domain sentinels pass through untouched.
func storageError(op string, err error) error {
	if err == nil {
		return nil
	}
	for _, known := range []error{
		election.ErrAlreadyVoted,
		election.ErrDuplicateBallot,
		election.ErrNotFound,
		election.ErrBallotNotFound,
		election.ErrUserNotFound,
		election.ErrUserExists,
		election.ErrStorageUnavailable,
	} {
		if errors.Is(err, known) {
			return err
		}
	}
	return fmt.Errorf("%s: %w: %w", op, election.ErrStorageUnavailable, err)
}
