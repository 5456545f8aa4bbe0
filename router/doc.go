// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the campus-ballot API.

# Route Registration

NewRouter builds the store and election service over the connection and
returns a configured http.ServeMux:

	mux := router.NewRouter(db, cfg)

# Endpoints

Health:

	GET /health

Accounts:

	POST /api/auth/register - Create account, returns token
	POST /api/auth/login    - Exchange credentials for token
	GET  /api/auth/me       - Current user (token)
	POST /api/auth/logout   - Client-side logout (token)

Voting (requires Authorization: Bearer <token>):

	GET  /api/votes/candidates - Active candidates grouped by position
	POST /api/votes/cast       - Cast the caller's single ballot
	GET  /api/votes/status     - Whether and when the caller voted
	GET  /api/votes/my-ballot  - The caller's ballot
	GET  /api/votes/results    - Live tallies and turnout

Administration (token with admin flag):

	POST   /api/admin/candidates      - Add candidate
	GET    /api/admin/candidates      - All candidates, including inactive
	PUT    /api/admin/candidates/{id} - Update candidate (never the tally)
	DELETE /api/admin/candidates/{id} - Deactivate candidate
	GET    /api/admin/stats           - Turnout and vote-rate statistics
	GET    /api/admin/users           - Users, newest first
	POST   /api/admin/reset           - Clear all ballots (audited)
	POST   /api/admin/reconcile       - Recompute tallies from ballots
*/
package router
