// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/campus-ballot/models"
	"github.com/danielhkuo/campus-ballot/testutil"
)

func TestHealthEndpoint(t *testing.T) {
	db := testutil.SetupTestDB(t)
	mux := NewRouter(db, testutil.GetTestConfig())

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if w.Body.String() != "OK" {
		t.Errorf("Expected body 'OK', got '%s'", w.Body.String())
	}
}

func TestRootEndpoint(t *testing.T) {
	db := testutil.SetupTestDB(t)
	mux := NewRouter(db, testutil.GetTestConfig())

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))

	expected := "campus-ballot API v1"
	if w.Code != http.StatusOK || w.Body.String() != expected {
		t.Errorf("Expected 200 '%s', got %d '%s'", expected, w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", "/nope", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown path, got %d", w.Code)
	}
}

func TestRouteExistence(t *testing.T) {
	db := testutil.SetupTestDB(t)
	mux := NewRouter(db, testutil.GetTestConfig())

	// Without a token every protected route answers 401, which proves it matched
	testCases := []struct {
		method string
		path   string
	}{
		{"GET", "/api/auth/me"},
		{"POST", "/api/auth/logout"},
		{"GET", "/api/votes/candidates"},
		{"POST", "/api/votes/cast"},
		{"GET", "/api/votes/status"},
		{"GET", "/api/votes/my-ballot"},
		{"GET", "/api/votes/results"},
		{"POST", "/api/admin/candidates"},
		{"GET", "/api/admin/candidates"},
		{"PUT", "/api/admin/candidates/some-id"},
		{"DELETE", "/api/admin/candidates/some-id"},
		{"GET", "/api/admin/stats"},
		{"GET", "/api/admin/users"},
		{"POST", "/api/admin/reset"},
		{"POST", "/api/admin/reconcile"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))

			if w.Code != http.StatusUnauthorized {
				t.Errorf("Expected 401 for %s %s, got %d", tc.method, tc.path, w.Code)
			}
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	db := testutil.SetupTestDB(t)
	mux := NewRouter(db, testutil.GetTestConfig())

	testCases := []struct {
		method string
		path   string
	}{
		{"POST", "/health"},
		{"GET", "/api/votes/cast"},
		{"PATCH", "/api/admin/candidates/some-id"},
		{"GET", "/api/auth/login"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))

			if w.Code != http.StatusMethodNotAllowed {
				t.Errorf("Expected 405 for %s %s, got %d", tc.method, tc.path, w.Code)
			}
		})
	}
}

func TestAdminRoutesForbidStudents(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	mux := NewRouter(db, cfg)

	student := testutil.CreateTestUser(t, db, "STUD001", false)
	admin := testutil.CreateTestUser(t, db, "ADMIN001", true)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("GET", "/api/admin/users", nil, testutil.AuthHeaders(t, cfg, student)))
	testutil.AssertStatus(t, w, http.StatusForbidden)

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("GET", "/api/admin/users", nil, testutil.AuthHeaders(t, cfg, admin)))
	testutil.AssertStatus(t, w, http.StatusOK)
}

func TestPathParameterExtraction(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	mux := NewRouter(db, cfg)

	admin := testutil.CreateTestUser(t, db, "ADMIN001", true)
	c := testutil.CreateTestCandidate(t, db, "Target", models.PositionSecretary)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("PUT", "/api/admin/candidates/"+c.ID,
		map[string]string{"manifesto": "Updated"}, testutil.AuthHeaders(t, cfg, admin)))
	testutil.AssertStatus(t, w, http.StatusOK)

	var updated models.Candidate
	testutil.AssertJSON(t, w, &updated)
	if updated.ID != c.ID || updated.Manifesto != "Updated" {
		t.Errorf("Expected candidate %s updated, got %+v", c.ID, updated)
	}
}
