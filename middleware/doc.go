// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs completion with method, path, status and duration_ms. 5xx responses are
logged at error level.

# Authentication

RequireAuth verifies an "Authorization: Bearer <token>" header and stores the
caller's Identity in the request context. RequireAdmin additionally requires
the admin flag:

	mux.HandleFunc("POST /api/votes/cast", middleware.RequireAuth(secret, h.Cast))
	mux.HandleFunc("GET /api/admin/stats",
		middleware.RequireAuth(secret, middleware.RequireAdmin(h.Stats)))

Handlers read the caller back with IdentityFromContext.

# CORS Middleware

Enable cross-origin requests for frontend access:

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)

Ballots store only a salted hash of it.
*/
package middleware
