// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/campus-ballot/auth"
)

const testSecret = "middleware-secret"

func issue(t *testing.T, userID string, admin bool) string {
	t.Helper()
	token, err := auth.IssueToken(userID, admin, testSecret, time.Hour, time.Now())
	if err != nil {
		t.Fatalf("IssueToken() error = %v", err)
	}
	return token
}

func TestRequireAuth(t *testing.T) {
	var got Identity
	next := func(w http.ResponseWriter, r *http.Request) {
		id, ok := IdentityFromContext(r.Context())
		if !ok {
			t.Error("identity missing from context")
		}
		got = id
		w.WriteHeader(http.StatusOK)
	}
	handler := RequireAuth(testSecret, next)

	expired, _ := auth.IssueToken("user-1", false, testSecret, time.Minute, time.Now().Add(-time.Hour))

	testCases := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"valid token", "Bearer " + issue(t, "user-1", false), http.StatusOK},
		{"lowercase scheme", "bearer " + issue(t, "user-1", false), http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + issue(t, "user-1", false), http.StatusUnauthorized},
		{"scheme only", "Bearer", http.StatusUnauthorized},
		{"garbage token", "Bearer abc.def.ghi", http.StatusUnauthorized},
		{"expired token", "Bearer " + expired, http.StatusUnauthorized},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got = Identity{}
			req := httptest.NewRequest("GET", "/api/auth/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()

			handler(w, req)

			if w.Code != tc.wantStatus {
				t.Errorf("Expected status %d, got %d", tc.wantStatus, w.Code)
			}
			if tc.wantStatus == http.StatusOK && got.UserID != "user-1" {
				t.Errorf("Expected user-1 in context, got %q", got.UserID)
			}
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	handler := RequireAuth(testSecret, RequireAdmin(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	testCases := []struct {
		name       string
		admin      bool
		wantStatus int
	}{
		{"admin allowed", true, http.StatusNoContent},
		{"student forbidden", false, http.StatusForbidden},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/admin/stats", nil)
			req.Header.Set("Authorization", "Bearer "+issue(t, "user-1", tc.admin))
			w := httptest.NewRecorder()

			handler(w, req)

			if w.Code != tc.wantStatus {
				t.Errorf("Expected status %d, got %d", tc.wantStatus, w.Code)
			}
		})
	}

	t.Run("without RequireAuth", func(t *testing.T) {
		w := httptest.NewRecorder()
		RequireAdmin(func(w http.ResponseWriter, r *http.Request) {
			t.Error("handler should not run")
		})(w, httptest.NewRequest("GET", "/api/admin/stats", nil))

		if w.Code != http.StatusUnauthorized {
			t.Errorf("Expected status 401, got %d", w.Code)
		}
	})
}
