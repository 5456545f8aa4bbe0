// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"context"
	"time"

	"github.com/danielhkuo/campus-ballot/models"
)

// CandidateStore holds candidate records and their tallies.
type CandidateStore interface {
	FindActiveByIDs(ctx context.Context, ids []string) ([]models.Candidate, error)
	// IncrementVotes must be a single atomic storage-side increment.
	IncrementVotes(ctx context.Context, id string) error
	ListResults(ctx context.Context) ([]models.Candidate, error)
	CountActiveCandidates(ctx context.Context) (int, error)
}

// BallotStore holds at most one ballot per user. CreateBallot returns
// ErrDuplicateBallot when the storage uniqueness constraint fires.
type BallotStore interface {
	BallotExists(ctx context.Context, userID string) (bool, error)
	CreateBallot(ctx context.Context, ballot models.Ballot) error
	CountBallots(ctx context.Context) (int, error)
	AggregateByHour(ctx context.Context, limit int) ([]models.HourlyCount, error)
}

type UserStore interface {
	GetUser(ctx context.Context, id string) (models.User, error)
	// MarkVoted returns ErrAlreadyVoted if the flag was already set.
	MarkVoted(ctx context.Context, id string, at time.Time) error
	CountUsers(ctx context.Context) (int, error)
	CountVoted(ctx context.Context) (int, error)
	GroupCounts(ctx context.Context, by models.GroupBy) ([]models.GroupCount, error)
}

// Tx is the view of the stores inside a single storage transaction.
type Tx interface {
	CandidateStore
	BallotStore
	UserStore
}

// Store is the persistence boundary of the election core.
type Store interface {
	Tx
	// InTx runs fn in one transaction, committing only if fn returns nil.
	InTx(ctx context.Context, fn func(tx Tx) error) error
	ResetElection(ctx context.Context, record models.ResetRecord) (models.ResetRecord, error)
	Reconcile(ctx context.Context) (models.ReconcileReport, error)
}

// Clock is swapped out in tests.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }
