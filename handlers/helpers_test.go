// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/campus-ballot/cliparse"
	"github.com/danielhkuo/campus-ballot/db"
	"github.com/danielhkuo/campus-ballot/election"
	"github.com/danielhkuo/campus-ballot/middleware"
	"github.com/danielhkuo/campus-ballot/testutil"
)

type testEnv struct {
	db    *sql.DB
	cfg   cliparse.Config
	store *db.Store
	svc   *election.Service
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	store := db.NewStore(conn)
	return testEnv{
		db:    conn,
		cfg:   cfg,
		store: store,
		svc:   election.NewService(store, election.Options{Timeout: cfg.StoreTimeout}),
	}
}

// serve runs h behind the same auth middleware the router uses
func (e testEnv) serve(h http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	middleware.RequireAuth(e.cfg.JWTSecret, h)(w, req)
	return w
}

func (e testEnv) serveAdmin(h http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	return e.serve(middleware.RequireAdmin(h), req)
}
