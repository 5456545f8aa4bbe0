// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - DatabaseURL: Connection string (default: a local SQLite file)
  - JWTSecret: Secret for signing session tokens (required)
  - IPHashSalt: Secret for hashing ballot origin addresses (required)
  - TokenTTL: Session token lifetime (default: 24h)
  - StoreTimeout: Upper bound for each storage operation (default: 5s)
  - AdminStudentIDs: Student IDs granted admin rights at registration

# CLI Flags

	-p              Server port
	-d              Database URL
	-t              Database type
	-env            Path to a .env file
	-jwt-secret     Token signing secret
	-ip-salt        IP hash salt
	-token-ttl      Session token lifetime
	-store-timeout  Storage timeout
	-admins         Admin student IDs

# Environment Variables

A .env file in the working directory is loaded first if present. It never
overrides variables already set in the process environment. Flags fall back
to environment variables:

	PORT              → -p
	DATABASE_URL      → -d
	DATABASE_TYPE     → -t
	JWT_SECRET        → -jwt-secret
	IP_HASH_SALT      → -ip-salt
	TOKEN_TTL         → -token-ttl
	STORE_TIMEOUT     → -store-timeout
	ADMIN_STUDENT_IDS → -admins

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if required values are missing or malformed:

  - JWT_SECRET must be provided
  - IP_HASH_SALT must be provided
  - DATABASE_URL must be provided for postgres
  - durations must parse with time.ParseDuration and be positive
*/
package cliparse
