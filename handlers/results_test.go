// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/danielhkuo/campus-ballot/election"
	"github.com/danielhkuo/campus-ballot/models"
	"github.com/danielhkuo/campus-ballot/testutil"
)

func TestGetResults(t *testing.T) {
	env := newTestEnv(t)
	handler := NewResultsHandler(env.svc, env.cfg)

	a := testutil.CreateTestCandidate(t, env.db, "Alpha", models.PositionPresident)
	b := testutil.CreateTestCandidate(t, env.db, "Bravo", models.PositionPresident)
	u1 := testutil.CreateTestUser(t, env.db, "RESU001", false)
	u2 := testutil.CreateTestUser(t, env.db, "RESU002", false)
	testutil.CreateTestUser(t, env.db, "RESU003", false)

	for _, v := range []struct {
		user models.User
		pick models.Candidate
	}{{u1, b}, {u2, b}} {
		_, err := env.svc.CastVote(context.Background(), election.CastRequest{
			UserID:     v.user.ID,
			Selections: []models.Selection{{Position: models.PositionPresident, CandidateID: v.pick.ID}},
		})
		if err != nil {
			t.Fatalf("CastVote() error = %v", err)
		}
	}

	w := env.serve(handler.GetResults, testutil.MakeRequest("GET", "/api/votes/results", nil, testutil.AuthHeaders(t, env.cfg, u1)))
	testutil.AssertStatus(t, w, http.StatusOK)

	if w.Header().Get("Cache-Control") != "no-store" {
		t.Error("Results must not be cached")
	}

	var results models.Results
	testutil.AssertJSON(t, w, &results)

	if results.Totals.TotalVotes != 2 || results.Totals.TotalUsers != 3 {
		t.Errorf("Unexpected totals %+v", results.Totals)
	}
	if results.Totals.TurnoutPercent != 66.67 {
		t.Errorf("Expected turnout 66.67, got %v", results.Totals.TurnoutPercent)
	}

	president := results.ResultsByPosition[models.PositionPresident]
	if len(president) != 2 {
		t.Fatalf("Expected 2 presidential candidates, got %d", len(president))
	}
	if president[0].Name != "Bravo" || president[0].VoteCount != 2 {
		t.Errorf("Expected Bravo leading with 2, got %+v", president[0])
	}
	if president[1].Name != a.Name || president[1].VoteCount != 0 {
		t.Errorf("Expected Alpha with 0, got %+v", president[1])
	}
}

func TestGetResultsNoUsers(t *testing.T) {
	env := newTestEnv(t)
	handler := NewResultsHandler(env.svc, env.cfg)

	// A token is enough; the user does not need to exist for results
	ghost := models.User{ID: "ghost"}
	w := env.serve(handler.GetResults, testutil.MakeRequest("GET", "/api/votes/results", nil, testutil.AuthHeaders(t, env.cfg, ghost)))
	testutil.AssertStatus(t, w, http.StatusOK)

	var results models.Results
	testutil.AssertJSON(t, w, &results)
	if results.Totals.TurnoutPercent != 0 {
		t.Errorf("Expected 0 turnout with no users, got %v", results.Totals.TurnoutPercent)
	}
}

func TestGetStats(t *testing.T) {
	env := newTestEnv(t)
	handler := NewResultsHandler(env.svc, env.cfg)

	pres := testutil.CreateTestCandidate(t, env.db, "Pres", models.PositionPresident)
	admin := testutil.CreateTestUser(t, env.db, "ADMIN001", true)
	voter := testutil.CreateTestUser(t, env.db, "STATS01", false)

	_, err := env.svc.CastVote(context.Background(), election.CastRequest{
		UserID:     voter.ID,
		Selections: []models.Selection{{Position: models.PositionPresident, CandidateID: pres.ID}},
	})
	if err != nil {
		t.Fatalf("CastVote() error = %v", err)
	}

	w := env.serveAdmin(handler.GetStats, testutil.MakeRequest("GET", "/api/admin/stats", nil, testutil.AuthHeaders(t, env.cfg, voter)))
	testutil.AssertStatus(t, w, http.StatusForbidden)

	w = env.serveAdmin(handler.GetStats, testutil.MakeRequest("GET", "/api/admin/stats", nil, testutil.AuthHeaders(t, env.cfg, admin)))
	testutil.AssertStatus(t, w, http.StatusOK)

	var stats models.Statistics
	testutil.AssertJSON(t, w, &stats)

	if stats.Overview.TotalUsers != 2 || stats.Overview.UsersVoted != 1 || stats.Overview.TurnoutPercent != 50 {
		t.Errorf("Unexpected overview %+v", stats.Overview)
	}
	if len(stats.VotesPerHour) != 1 || stats.VotesPerHour[0].Count != 1 {
		t.Errorf("Unexpected hourly counts %+v", stats.VotesPerHour)
	}
	if len(stats.CandidatesByPosition) != 1 || stats.CandidatesByPosition[0].TotalVotes != 1 {
		t.Errorf("Unexpected position tallies %+v", stats.CandidatesByPosition)
	}
	if len(stats.DepartmentStats) != 1 || stats.DepartmentStats[0].VotingPercent != 50 {
		t.Errorf("Unexpected department stats %+v", stats.DepartmentStats)
	}
}
