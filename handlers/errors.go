// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/campus-ballot/election"
	"github.com/danielhkuo/campus-ballot/middleware"
)

// Seconds a client should wait before retrying after a 503
const retryAfterSeconds = "2"

var errorStatus = []struct {
	err    error
	status int
}{
	{election.ErrAlreadyVoted, http.StatusForbidden},
	{election.ErrDuplicateBallot, http.StatusConflict},
	{election.ErrInvalidCandidate, http.StatusBadRequest},
	{election.ErrDuplicatePosition, http.StatusBadRequest},
	{election.ErrPositionMismatch, http.StatusBadRequest},
	{election.ErrEmptySelection, http.StatusBadRequest},
	{election.ErrNotFound, http.StatusNotFound},
	{election.ErrBallotNotFound, http.StatusNotFound},
	{election.ErrUserNotFound, http.StatusNotFound},
	{election.ErrUserExists, http.StatusConflict},
}

// writeError maps election errors onto HTTP responses. Anything unknown is a
// 500 and is logged with op.
func writeError(w http.ResponseWriter, op string, err error) {
	for _, e := range errorStatus {
		if errors.Is(err, e.err) {
			middleware.ErrorResponse(w, e.status, e.err.Error())
			return
		}
	}

	if election.IsRetryable(err) {
		slog.Warn("storage unavailable", "op", op, "error", err)
		w.Header().Set("Retry-After", retryAfterSeconds)
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Service temporarily unavailable, please retry")
		return
	}

	slog.Error("request failed", "op", op, "error", err)
	middleware.ErrorResponse(w, http.StatusInternalServerError, "Internal server error")
}
