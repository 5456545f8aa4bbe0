// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db implements the election stores over database/sql.

# Connections

Open selects the driver by DATABASE_TYPE and pings:

	conn, err := db.Open(db.TypeSQLite, "file:ballot.db?_pragma=foreign_keys(1)")
	conn, err := db.Open(db.TypePostgres, "postgres://...")

SQLite pools are limited to one connection, so writers queue instead of
failing with SQLITE_BUSY.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
The DDL sticks to the subset both SQLite and PostgreSQL accept.

# Tables

  - app_user: Accounts, with has_voted and voted_at
  - candidate: Candidates, active flag and vote_count tally
  - ballot: One row per voter (UNIQUE user_id)
  - ballot_selection: One row per (ballot, position)
  - election_reset: Audit trail of resets

# Relationships

	app_user 1──0..1 ballot
	ballot 1──* ballot_selection
	candidate 1──* ballot_selection

Deleting a ballot cascades to its selections. Candidates are never deleted.

# Stores

Store satisfies election.Store. Queries run either on the pool or, inside
InTx, on one transaction:

	store := db.NewStore(conn)
	err := store.InTx(ctx, func(tx election.Tx) error { ... })

Unique violations from either driver are mapped to election sentinels.
Other driver errors and context expiry are wrapped in
election.ErrStorageUnavailable.
*/
package db
