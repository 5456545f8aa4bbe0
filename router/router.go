// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/campus-ballot/cliparse"
	"github.com/danielhkuo/campus-ballot/db"
	"github.com/danielhkuo/campus-ballot/election"
	"github.com/danielhkuo/campus-ballot/handlers"
	"github.com/danielhkuo/campus-ballot/middleware"
)

func NewRouter(conn *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	store := db.NewStore(conn)
	svc := election.NewService(store, election.Options{Timeout: cfg.StoreTimeout})

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(store, cfg)
	votingHandler := handlers.NewVotingHandler(store, svc, cfg)
	resultsHandler := handlers.NewResultsHandler(svc, cfg)
	adminHandler := handlers.NewAdminHandler(store, svc, cfg)

	// Middleware chains
	public := middleware.WithLogging
	user := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireAuth(cfg.JWTSecret, h))
	}
	admin := func(h http.HandlerFunc) http.HandlerFunc {
		return user(middleware.RequireAdmin(h))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Accounts
	mux.HandleFunc("POST /api/auth/register", public(authHandler.Register))
	mux.HandleFunc("POST /api/auth/login", public(authHandler.Login))
	mux.HandleFunc("GET /api/auth/me", user(authHandler.Me))
	mux.HandleFunc("POST /api/auth/logout", user(authHandler.Logout))

	// Voting (authenticated)
	mux.HandleFunc("GET /api/votes/candidates", user(votingHandler.GetCandidates))
	mux.HandleFunc("POST /api/votes/cast", user(votingHandler.CastVote))
	mux.HandleFunc("GET /api/votes/status", user(votingHandler.GetStatus))
	mux.HandleFunc("GET /api/votes/my-ballot", user(votingHandler.GetMyBallot))
	mux.HandleFunc("GET /api/votes/results", user(resultsHandler.GetResults))

	// Administration
	mux.HandleFunc("POST /api/admin/candidates", admin(adminHandler.CreateCandidate))
	mux.HandleFunc("GET /api/admin/candidates", admin(adminHandler.ListCandidates))
	mux.HandleFunc("PUT /api/admin/candidates/{id}", admin(adminHandler.UpdateCandidate))
	mux.HandleFunc("DELETE /api/admin/candidates/{id}", admin(adminHandler.DeleteCandidate))
	mux.HandleFunc("GET /api/admin/stats", admin(resultsHandler.GetStats))
	mux.HandleFunc("GET /api/admin/users", admin(adminHandler.ListUsers))
	mux.HandleFunc("POST /api/admin/reset", admin(adminHandler.Reset))
	mux.HandleFunc("POST /api/admin/reconcile", admin(adminHandler.Reconcile))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("campus-ballot API v1"))
	})

	return mux
}
