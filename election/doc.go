// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package election is the vote-casting core.

# Casting

Service.CastVote applies one ballot in a single store transaction:

	ballot, err := svc.CastVote(ctx, election.CastRequest{
		UserID:     userID,
		Selections: []models.Selection{{Position: models.PositionPresident, CandidateID: id}},
	})

Checks run in this order and the first failure wins:

 1. the user's voted flag (ErrAlreadyVoted)
 2. an existing ballot row (ErrDuplicateBallot)
 3. a position selected twice (ErrDuplicatePosition)
 4. unknown or inactive candidates (ErrInvalidCandidate)
 5. a candidate filed under the wrong position (ErrPositionMismatch)

On success the ballot row, one tally increment per selection and the voted
flag commit together. Two racing casts for one user cannot both commit: the
ballot table is unique on user.

# Reading

Results, VoteStatus and Statistics are read-only. Turnout is voted users over
registered users, and 0 when nobody is registered.

# Administration

Reset wipes ballots and tallies and records an audit row. Reconcile rebuilds
tallies and voted flags from the ballots on record.

# Errors

Every operation is bounded by Options.Timeout. Expiry and infrastructure
failures surface as ErrStorageUnavailable, the only retryable error.
*/
package election
