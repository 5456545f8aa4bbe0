// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/campus-ballot/election"
	"github.com/danielhkuo/campus-ballot/models"
	"github.com/danielhkuo/campus-ballot/testutil"
)

func TestWriteError(t *testing.T) {
	testCases := []struct {
		name       string
		err        error
		wantStatus int
		retryAfter bool
	}{
		{"already voted", election.ErrAlreadyVoted, http.StatusForbidden, false},
		{"duplicate ballot", election.ErrDuplicateBallot, http.StatusConflict, false},
		{"invalid candidate", election.ErrInvalidCandidate, http.StatusBadRequest, false},
		{"duplicate position", election.ErrDuplicatePosition, http.StatusBadRequest, false},
		{"position mismatch", election.ErrPositionMismatch, http.StatusBadRequest, false},
		{"empty selection", election.ErrEmptySelection, http.StatusBadRequest, false},
		{"not found", election.ErrNotFound, http.StatusNotFound, false},
		{"ballot not found", election.ErrBallotNotFound, http.StatusNotFound, false},
		{"user not found", election.ErrUserNotFound, http.StatusNotFound, false},
		{"user exists", election.ErrUserExists, http.StatusConflict, false},
		{"wrapped sentinel", fmt.Errorf("cast: %w", election.ErrAlreadyVoted), http.StatusForbidden, false},
		{"storage unavailable", fmt.Errorf("insert: %w", election.ErrStorageUnavailable), http.StatusServiceUnavailable, true},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			writeError(w, "test", tc.err)

			testutil.AssertStatus(t, w, tc.wantStatus)
			if got := w.Header().Get("Retry-After") != ""; got != tc.retryAfter {
				t.Errorf("Retry-After present = %v, want %v", got, tc.retryAfter)
			}

			var resp models.ErrorResponse
			testutil.AssertJSON(t, w, &resp)
			if resp.Message == "" {
				t.Error("Expected an error message")
			}
			// Internal details stay in the logs
			if tc.wantStatus >= 500 && resp.Message == tc.err.Error() {
				t.Errorf("Server error leaked %q", resp.Message)
			}
		})
	}
}

func TestValidationMessage(t *testing.T) {
	testCases := []struct {
		name string
		v    interface{}
		want string
	}{
		{
			"nested selection",
			models.CastVoteRequest{Votes: []models.Selection{{Position: "Mascot", CandidateID: "x"}}},
			"votes[0].position must be one of President, Vice President, Secretary, Treasurer",
		},
		{
			"required",
			models.LoginRequest{Password: "pw"},
			"studentId is required",
		},
		{
			"numeric min",
			models.CandidateRequest{Name: "Ok Name", Position: models.PositionPresident, Department: "D", Year: -1, Manifesto: "m"},
			"year must be at least 1",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := validate.Struct(tc.v)
			if err == nil {
				t.Fatal("Expected validation error")
			}
			if got := validationMessage(err); got != tc.want {
				t.Errorf("validationMessage() = %q, want %q", got, tc.want)
			}
		})
	}

	if got := validationMessage(errors.New("other")); got != "Invalid request" {
		t.Errorf("validationMessage(non-validation) = %q", got)
	}
}
