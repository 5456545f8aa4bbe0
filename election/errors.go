// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import "errors"

var (
	ErrAlreadyVoted       = errors.New("user has already voted")
	ErrDuplicateBallot    = errors.New("ballot already exists for user")
	ErrInvalidCandidate   = errors.New("one or more candidates are invalid or inactive")
	ErrDuplicatePosition  = errors.New("multiple candidates selected for one position")
	ErrPositionMismatch   = errors.New("candidate does not run for the selected position")
	ErrEmptySelection     = errors.New("at least one selection is required")
	ErrNotFound           = errors.New("candidate not found")
	ErrBallotNotFound     = errors.New("no ballot on record")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists with this student ID or email")
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// IsRetryable reports whether the caller may resubmit the same request.
// Validation failures are final for a given input.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrStorageUnavailable)
}
