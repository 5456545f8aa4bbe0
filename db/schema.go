// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// The DDL sticks to the subset PostgreSQL and SQLite share.
const schema = `
-- Users
CREATE TABLE IF NOT EXISTS app_user (
    id TEXT PRIMARY KEY,
    student_id TEXT NOT NULL UNIQUE,
    name TEXT NOT NULL,
    email TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    department TEXT NOT NULL,
    year INTEGER NOT NULL CHECK (year >= 1 AND year <= 4),
    is_admin BOOLEAN NOT NULL DEFAULT FALSE,
    has_voted BOOLEAN NOT NULL DEFAULT FALSE,
    voted_at TIMESTAMP,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_app_user_department ON app_user(department);
CREATE INDEX IF NOT EXISTS idx_app_user_year ON app_user(year);

-- Candidates
CREATE TABLE IF NOT EXISTS candidate (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    position TEXT NOT NULL CHECK (position IN ('President', 'Vice President', 'Secretary', 'Treasurer')),
    department TEXT NOT NULL,
    year INTEGER NOT NULL CHECK (year >= 1 AND year <= 4),
    manifesto TEXT NOT NULL,
    photo_url TEXT NOT NULL DEFAULT '',
    is_active BOOLEAN NOT NULL DEFAULT TRUE,
    vote_count INTEGER NOT NULL DEFAULT 0 CHECK (vote_count >= 0),
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_candidate_position_active ON candidate(position, is_active);

-- Ballots (one per user, never updated)
CREATE TABLE IF NOT EXISTS ballot (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL UNIQUE REFERENCES app_user(id),
    ip_hash TEXT,
    user_agent TEXT,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_ballot_created_at ON ballot(created_at);

-- Selections
CREATE TABLE IF NOT EXISTS ballot_selection (
    ballot_id TEXT NOT NULL REFERENCES ballot(id) ON DELETE CASCADE,
    position TEXT NOT NULL,
    candidate_id TEXT NOT NULL REFERENCES candidate(id),
    ordinal INTEGER NOT NULL,
    PRIMARY KEY (ballot_id, position)
);

CREATE INDEX IF NOT EXISTS idx_ballot_selection_candidate ON ballot_selection(candidate_id);

-- Reset audit trail
CREATE TABLE IF NOT EXISTS election_reset (
    id TEXT PRIMARY KEY,
    actor_id TEXT NOT NULL,
    ballots_cleared INTEGER NOT NULL,
    reset_at TIMESTAMP NOT NULL
);
`
