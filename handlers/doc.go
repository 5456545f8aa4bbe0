// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the campus-ballot API.

# Handler Types

Each handler is a struct with store, service and config dependencies:

  - AuthHandler: Registration, login, current user, logout
  - VotingHandler: Ballot screen, casting, vote status, own ballot
  - ResultsHandler: Live results and admin statistics
  - AdminHandler: Candidate management, users, reset, reconcile

	store := db.NewStore(conn)
	svc := election.NewService(store, election.Options{Timeout: cfg.StoreTimeout})
	votingHandler := handlers.NewVotingHandler(store, svc, cfg)

Handlers behind middleware.RequireAuth read the caller with
middleware.IdentityFromContext.

# Validation

Request bodies are checked with go-playground/validator using the `validate`
tags on models types, plus two custom tags:

  - studentid: 6-12 letters or digits (normalized to upper case)
  - position: one of the contested positions

Failures return 400 with a message naming the JSON field.

# Casting

	POST /api/votes/cast {"votes":[{"position":"President","candidateId":"..."}]}

The election service does the rest. Only a salted hash of the client IP is
stored with the ballot.

# Error Mapping

  - 400: validation, duplicate position, invalid candidate, position mismatch
  - 401: missing or bad token, bad credentials
  - 403: already voted, not an admin
  - 404: unknown candidate, user or ballot
  - 409: duplicate ballot, student ID or email taken
  - 503: storage unavailable, with Retry-After
*/
package handlers
