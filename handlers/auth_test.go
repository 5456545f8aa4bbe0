// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielhkuo/campus-ballot/auth"
	"github.com/danielhkuo/campus-ballot/models"
	"github.com/danielhkuo/campus-ballot/testutil"
)

func validRegistration() models.RegisterRequest {
	return models.RegisterRequest{
		StudentID:  "stu12345",
		Name:       "Ada Lovelace",
		Email:      "Ada@Campus.test",
		Password:   "analytical",
		Department: "Mathematics",
		Year:       3,
	}
}

func TestRegister(t *testing.T) {
	env := newTestEnv(t)
	handler := NewAuthHandler(env.store, env.cfg)

	req := testutil.MakeRequest("POST", "/api/auth/register", validRegistration(), nil)
	w := httptest.NewRecorder()
	handler.Register(w, req)

	testutil.AssertStatus(t, w, http.StatusCreated)

	var resp models.AuthResponse
	testutil.AssertJSON(t, w, &resp)

	if resp.User.StudentID != "STU12345" {
		t.Errorf("Expected normalized student ID STU12345, got %s", resp.User.StudentID)
	}
	if resp.User.Email != "ada@campus.test" {
		t.Errorf("Expected lowercased email, got %s", resp.User.Email)
	}
	if resp.User.IsAdmin || resp.User.HasVoted {
		t.Errorf("New user should be a non-admin who has not voted: %+v", resp.User)
	}

	claims, err := auth.ParseToken(resp.Token, env.cfg.JWTSecret)
	if err != nil {
		t.Fatalf("Returned token does not parse: %v", err)
	}
	if claims.Subject != resp.User.ID {
		t.Errorf("Token subject %s, want %s", claims.Subject, resp.User.ID)
	}

	// Password hash never leaves the server
	if strings.Contains(w.Body.String(), "analytical") {
		t.Error("Response leaks the password")
	}
}

func TestRegisterAdminBootstrap(t *testing.T) {
	env := newTestEnv(t)
	handler := NewAuthHandler(env.store, env.cfg)

	body := validRegistration()
	body.StudentID = "admin001"

	w := httptest.NewRecorder()
	handler.Register(w, testutil.MakeRequest("POST", "/api/auth/register", body, nil))

	testutil.AssertStatus(t, w, http.StatusCreated)

	var resp models.AuthResponse
	testutil.AssertJSON(t, w, &resp)
	if !resp.User.IsAdmin {
		t.Error("Expected configured student ID to become admin")
	}
	claims, _ := auth.ParseToken(resp.Token, env.cfg.JWTSecret)
	if !claims.Admin {
		t.Error("Expected admin claim in token")
	}
}

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv(t)
	handler := NewAuthHandler(env.store, env.cfg)

	testCases := []struct {
		name    string
		mutate  func(r *models.RegisterRequest)
		wantMsg string
	}{
		{"short student id", func(r *models.RegisterRequest) { r.StudentID = "AB1" }, "studentId"},
		{"student id with symbols", func(r *models.RegisterRequest) { r.StudentID = "STU-1234" }, "studentId"},
		{"missing name", func(r *models.RegisterRequest) { r.Name = "" }, "name"},
		{"bad email", func(r *models.RegisterRequest) { r.Email = "not-an-email" }, "email"},
		{"short password", func(r *models.RegisterRequest) { r.Password = "12345" }, "password"},
		{"long password", func(r *models.RegisterRequest) { r.Password = strings.Repeat("p", 80) }, "password"},
		{"long multibyte password", func(r *models.RegisterRequest) { r.Password = strings.Repeat("é", 40) }, "password"},
		{"missing department", func(r *models.RegisterRequest) { r.Department = "  " }, "department"},
		{"year too high", func(r *models.RegisterRequest) { r.Year = 5 }, "year"},
		{"year missing", func(r *models.RegisterRequest) { r.Year = 0 }, "year"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			body := validRegistration()
			tc.mutate(&body)

			w := httptest.NewRecorder()
			handler.Register(w, testutil.MakeRequest("POST", "/api/auth/register", body, nil))

			testutil.AssertStatus(t, w, http.StatusBadRequest)

			var resp models.ErrorResponse
			testutil.AssertJSON(t, w, &resp)
			if !strings.HasPrefix(resp.Message, tc.wantMsg) {
				t.Errorf("Expected message about %s, got %q", tc.wantMsg, resp.Message)
			}
		})
	}

	t.Run("invalid JSON", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/auth/register", strings.NewReader("{"))
		w := httptest.NewRecorder()
		handler.Register(w, req)
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})
}

func TestRegisterDuplicate(t *testing.T) {
	env := newTestEnv(t)
	handler := NewAuthHandler(env.store, env.cfg)

	w := httptest.NewRecorder()
	handler.Register(w, testutil.MakeRequest("POST", "/api/auth/register", validRegistration(), nil))
	testutil.AssertStatus(t, w, http.StatusCreated)

	// Same student ID in different case
	body := validRegistration()
	body.StudentID = "STU12345"
	body.Email = "other@campus.test"

	w = httptest.NewRecorder()
	handler.Register(w, testutil.MakeRequest("POST", "/api/auth/register", body, nil))
	testutil.AssertStatus(t, w, http.StatusConflict)
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	handler := NewAuthHandler(env.store, env.cfg)
	user := testutil.CreateTestUser(t, env.db, "LOGIN01", false)

	testCases := []struct {
		name       string
		body       models.LoginRequest
		wantStatus int
	}{
		{"valid", models.LoginRequest{StudentID: "login01", Password: testutil.TestPassword}, http.StatusOK},
		{"wrong password", models.LoginRequest{StudentID: "LOGIN01", Password: "nope"}, http.StatusUnauthorized},
		{"unknown student", models.LoginRequest{StudentID: "GHOST01", Password: testutil.TestPassword}, http.StatusUnauthorized},
		{"missing password", models.LoginRequest{StudentID: "LOGIN01"}, http.StatusBadRequest},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.Login(w, testutil.MakeRequest("POST", "/api/auth/login", tc.body, nil))

			testutil.AssertStatus(t, w, tc.wantStatus)

			if tc.wantStatus == http.StatusOK {
				var resp models.AuthResponse
				testutil.AssertJSON(t, w, &resp)
				if resp.User.ID != user.ID || resp.Token == "" {
					t.Errorf("Unexpected login response %+v", resp)
				}
			}
		})
	}
}

func TestMeAndLogout(t *testing.T) {
	env := newTestEnv(t)
	handler := NewAuthHandler(env.store, env.cfg)
	user := testutil.CreateTestUser(t, env.db, "MEUSER1", false)
	headers := testutil.AuthHeaders(t, env.cfg, user)

	w := env.serve(handler.Me, testutil.MakeRequest("GET", "/api/auth/me", nil, headers))
	testutil.AssertStatus(t, w, http.StatusOK)

	var got models.User
	testutil.AssertJSON(t, w, &got)
	if got.ID != user.ID || got.StudentID != "MEUSER1" {
		t.Errorf("Unexpected user %+v", got)
	}

	w = env.serve(handler.Me, testutil.MakeRequest("GET", "/api/auth/me", nil, nil))
	testutil.AssertStatus(t, w, http.StatusUnauthorized)

	// Token for a user that does not exist
	ghost := models.User{ID: "ghost"}
	w = env.serve(handler.Me, testutil.MakeRequest("GET", "/api/auth/me", nil, testutil.AuthHeaders(t, env.cfg, ghost)))
	testutil.AssertStatus(t, w, http.StatusNotFound)

	w = env.serve(handler.Logout, testutil.MakeRequest("POST", "/api/auth/logout", nil, headers))
	testutil.AssertStatus(t, w, http.StatusOK)
}
