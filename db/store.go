// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"strconv"
	"strings"

	"github.com/danielhkuo/campus-ballot/election"
	"github.com/danielhkuo/campus-ballot/models"
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// queries holds every statement; it runs against the pool or a transaction.
type queries struct {
	q querier
}

// Store is the SQL implementation of election.Store. Admin-only operations
// (registration, candidate CRUD) live here too but outside the interface.
type Store struct {
	queries
	db       *sql.DB
	postgres bool
}

var (
	_ election.Store = (*Store)(nil)
	_ election.Tx    = queries{}
)

func NewStore(db *sql.DB) *Store {
	return &Store{queries: queries{q: db}, db: db, postgres: isPostgres(db)}
}

// InTx runs fn inside a transaction and commits only when fn returns nil.
func (s *Store) InTx(ctx context.Context, fn func(tx election.Tx) error) error {
	return s.inTx(ctx, func(qs queries) error {
		return fn(qs)
	})
}

func (s *Store) inTx(ctx context.Context, fn func(qs queries) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return storageError("begin transaction", err)
	}
	defer tx.Rollback()

	if err := fn(queries{q: tx}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return storageError("commit transaction", err)
	}
	return nil
}

// ResetElection clears ballots, zeroes tallies and resets every voter in one
// transaction, then records who did it. On Postgres the ballot table is locked
// first so a cast committing mid-reset cannot leave a ballot behind with its
// tally and voter flag zeroed.
func (s *Store) ResetElection(ctx context.Context, record models.ResetRecord) (models.ResetRecord, error) {
	err := s.inTx(ctx, func(qs queries) error {
		if s.postgres {
			if _, err := qs.q.ExecContext(ctx, `LOCK TABLE ballot IN EXCLUSIVE MODE`); err != nil {
				return storageError("lock ballots", err)
			}
		}

		n, err := scanCount(ctx, qs.q, "count ballots", `SELECT COUNT(*) FROM ballot`)
		if err != nil {
			return err
		}
		record.BallotsCleared = n

		statements := []struct {
			op    string
			query string
			args  []any
		}{
			{"delete selections", `DELETE FROM ballot_selection`, nil},
			{"delete ballots", `DELETE FROM ballot`, nil},
			{"zero tallies", `UPDATE candidate SET vote_count = 0, updated_at = $1`, []any{record.ResetAt}},
			{"reset voters", `UPDATE app_user SET has_voted = $1, voted_at = NULL`, []any{false}},
			{"record reset", `
				INSERT INTO election_reset (id, actor_id, ballots_cleared, reset_at)
				VALUES ($1, $2, $3, $4)
			`, []any{record.ID, record.ActorID, record.BallotsCleared, record.ResetAt}},
		}
		for _, st := range statements {
			if _, err := qs.q.ExecContext(ctx, st.query, st.args...); err != nil {
				return storageError(st.op, err)
			}
		}
		return nil
	})
	if err != nil {
		return models.ResetRecord{}, err
	}
	return record, nil
}

// Reconcile rebuilds tallies and voter flags from the ballot tables, which
// are the source of truth.
func (s *Store) Reconcile(ctx context.Context) (models.ReconcileReport, error) {
	var report models.ReconcileReport
	err := s.inTx(ctx, func(qs queries) error {
		res, err := qs.q.ExecContext(ctx, `
			UPDATE candidate
			SET vote_count = (SELECT COUNT(*) FROM ballot_selection s WHERE s.candidate_id = candidate.id)
			WHERE vote_count <> (SELECT COUNT(*) FROM ballot_selection s WHERE s.candidate_id = candidate.id)
		`)
		if err != nil {
			return storageError("reconcile tallies", err)
		}
		report.CandidatesRepaired = rowsAffected(res)

		// Ballot without flag: the follow-up after the commit point was lost.
		res, err = qs.q.ExecContext(ctx, `
			UPDATE app_user
			SET has_voted = $1, voted_at = (SELECT b.created_at FROM ballot b WHERE b.user_id = app_user.id)
			WHERE has_voted = $2 AND EXISTS (SELECT 1 FROM ballot b WHERE b.user_id = app_user.id)
		`, true, false)
		if err != nil {
			return storageError("reconcile voters", err)
		}
		report.UsersRepaired = rowsAffected(res)

		// Flag without ballot would lock the voter out for good.
		res, err = qs.q.ExecContext(ctx, `
			UPDATE app_user
			SET has_voted = $1, voted_at = NULL
			WHERE has_voted = $2 AND NOT EXISTS (SELECT 1 FROM ballot b WHERE b.user_id = app_user.id)
		`, false, true)
		if err != nil {
			return storageError("reconcile voters", err)
		}
		report.UsersRepaired += rowsAffected(res)
		return nil
	})
	if err != nil {
		return models.ReconcileReport{}, err
	}
	return report, nil
}

func rowsAffected(res sql.Result) int {
	n, err := res.RowsAffected()
	if err != nil {
		return 0
	}
	return int(n)
}

// placeholders returns "$from, $from+1, ..." for n arguments.
func placeholders(from, n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString("$")
		b.WriteString(strconv.Itoa(from + i))
	}
	return b.String()
}

func scanCount(ctx context.Context, q querier, op, query string, args ...any) (int, error) {
	var n int
	if err := q.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, storageError(op, err)
	}
	return n, nil
}
