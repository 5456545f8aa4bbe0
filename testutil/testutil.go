// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/campus-ballot/auth"
	"github.com/danielhkuo/campus-ballot/cliparse"
	"github.com/danielhkuo/campus-ballot/db"
	"github.com/danielhkuo/campus-ballot/models"
)

// TestPassword is the password of every user created by CreateTestUser
const TestPassword = "password123"

// SetupTestDB creates a fresh SQLite database file with the full schema.
// It is closed when the test ends.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "ballot.db")
	conn, err := db.Open(db.TypeSQLite, "file:"+path+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:            3318,
		DatabaseType:    db.TypeSQLite,
		JWTSecret:       "test-jwt-secret",
		IPHashSalt:      "test-ip-salt",
		TokenTTL:        time.Hour,
		StoreTimeout:    5 * time.Second,
		AdminStudentIDs: []string{"ADMIN001"},
	}
}

// CreateTestUser registers a user with TestPassword
func CreateTestUser(t *testing.T, conn *sql.DB, studentID string, admin bool) models.User {
	t.Helper()

	hash, err := auth.HashPassword(TestPassword)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	user, err := db.NewStore(conn).CreateUser(context.Background(), models.User{
		ID:         uuid.NewString(),
		StudentID:  studentID,
		Name:       "Student " + studentID,
		Email:      studentID + "@campus.test",
		Department: "Computer Science",
		Year:       2,
		IsAdmin:    admin,
		CreatedAt:  time.Now().UTC(),
	}, hash)
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return user
}

// AuthHeaders returns request headers carrying a session token for user
func AuthHeaders(t *testing.T, cfg cliparse.Config, user models.User) map[string]string {
	t.Helper()

	token, err := auth.IssueToken(user.ID, user.IsAdmin, cfg.JWTSecret, cfg.TokenTTL, time.Now())
	if err != nil {
		t.Fatalf("Failed to issue test token: %v", err)
	}

	return map[string]string{"Authorization": "Bearer " + token}
}

// CreateTestCandidate adds an active candidate and returns it
func CreateTestCandidate(t *testing.T, conn *sql.DB, name string, position models.Position) models.Candidate {
	t.Helper()

	now := time.Now().UTC()
	c, err := db.NewStore(conn).CreateCandidate(context.Background(), models.Candidate{
		ID:         uuid.NewString(),
		Name:       name,
		Position:   position,
		Department: "Economics",
		Year:       3,
		Manifesto:  "Vote " + name,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		t.Fatalf("Failed to create test candidate: %v", err)
	}

	return c
}

// DeactivateTestCandidate marks a candidate inactive
func DeactivateTestCandidate(t *testing.T, conn *sql.DB, id string) {
	t.Helper()

	if _, err := db.NewStore(conn).DeactivateCandidate(context.Background(), id, time.Now().UTC()); err != nil {
		t.Fatalf("Failed to deactivate test candidate: %v", err)
	}
}

// VoteCount reads a candidate's stored tally
func VoteCount(t *testing.T, conn *sql.DB, id string) int {
	t.Helper()

	c, err := db.NewStore(conn).GetCandidate(context.Background(), id)
	if err != nil {
		t.Fatalf("Failed to read candidate: %v", err)
	}
	return c.VoteCount
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
