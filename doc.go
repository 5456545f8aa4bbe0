// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the campus-ballot API server.

campus-ballot runs a student election: students register and log in, admins
manage the candidate list, every student casts at most one ballot with one
candidate per position, and tallies stay exact under concurrent casts.

# Starting the Server

	JWT_SECRET=... IP_HASH_SALT=... go run .

Or with flags and Postgres:

	go run . -p 3318 -t postgres -d "postgres://..." -jwt-secret ... -ip-salt ...

# Configuration

Required settings:

  - JWT_SECRET (-jwt-secret): Session token signing secret
  - IP_HASH_SALT (-ip-salt): Salt for ballot origin hashes

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - DATABASE_URL (-d): Connection string (default: local SQLite file)
  - TOKEN_TTL, STORE_TIMEOUT, ADMIN_STUDENT_IDS

A .env file in the working directory is read if present.

# Architecture

  - election: Vote casting, results and admin operations over store interfaces
  - db: SQL implementation of the stores, schema, driver error mapping
  - handlers: HTTP request handlers (auth, voting, results, admin)
  - router: Route definitions using Go 1.22+ routing
  - middleware: Logging, CORS, bearer auth, JSON helpers
  - models: Request, response and domain types
  - auth: Passwords, session tokens, IP hashing
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
