// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"context"
	"errors"
	"sort"

	"github.com/danielhkuo/campus-ballot/models"
)

// CastRequest is one ballot submission. IPHash and UserAgent are kept on the
// ballot for audit only.
type CastRequest struct {
	UserID     string
	Selections []models.Selection
	IPHash     string
	UserAgent  string
}

// CastVote validates a submission and applies it in one transaction: the
// ballot insert, one increment per selected candidate and the voter flag
// either all commit or none do.
func (s *Service) CastVote(ctx context.Context, req CastRequest) (models.Ballot, error) {
	if len(req.Selections) == 0 {
		return models.Ballot{}, ErrEmptySelection
	}

	ctx, cancel := s.bound(ctx)
	defer cancel()

	var ballot models.Ballot
	err := s.store.InTx(ctx, func(tx Tx) error {
		user, err := tx.GetUser(ctx, req.UserID)
		if err != nil {
			return err
		}
		if user.HasVoted {
			return ErrAlreadyVoted
		}

		// The flag above can lag a concurrent cast; the ballot row cannot.
		exists, err := tx.BallotExists(ctx, user.ID)
		if err != nil {
			return err
		}
		if exists {
			return ErrDuplicateBallot
		}

		if err := checkDistinctPositions(req.Selections); err != nil {
			return err
		}

		ids := distinctCandidateIDs(req.Selections)
		candidates, err := tx.FindActiveByIDs(ctx, ids)
		if err != nil {
			return err
		}
		if len(candidates) != len(ids) {
			return ErrInvalidCandidate
		}
		if err := checkCandidatePositions(req.Selections, candidates); err != nil {
			return err
		}

		now := s.clock.Now()
		ballot = models.Ballot{
			ID:         s.newID(),
			UserID:     user.ID,
			Selections: append([]models.Selection(nil), req.Selections...),
			IPHash:     req.IPHash,
			UserAgent:  req.UserAgent,
			CreatedAt:  now,
		}

		// Commit point: the unique constraint on ballot.user_id rejects a
		// racing second cast here.
		if err := tx.CreateBallot(ctx, ballot); err != nil {
			return err
		}
		// Increments lock candidate rows; a fixed order keeps two ballots
		// naming the same candidates from deadlocking.
		sort.Strings(ids)
		for _, id := range ids {
			if err := tx.IncrementVotes(ctx, id); err != nil {
				return err
			}
		}
		return tx.MarkVoted(ctx, user.ID, now)
	})
	if err != nil {
		err = unavailable(err)
		if errors.Is(err, ErrStorageUnavailable) {
			s.logger.Error("failed to cast vote", "user_id", req.UserID, "error", err)
		} else {
			s.logger.Warn("vote rejected", "user_id", req.UserID, "reason", err)
		}
		return models.Ballot{}, err
	}

	s.logger.Info("ballot cast",
		"ballot_id", ballot.ID,
		"user_id", ballot.UserID,
		"selections", len(ballot.Selections),
	)
	return ballot, nil
}

func checkDistinctPositions(selections []models.Selection) error {
	seen := make(map[models.Position]bool, len(selections))
	for _, sel := range selections {
		if seen[sel.Position] {
			return ErrDuplicatePosition
		}
		seen[sel.Position] = true
	}
	return nil
}

// distinctCandidateIDs keeps first-seen order.
func distinctCandidateIDs(selections []models.Selection) []string {
	seen := make(map[string]bool, len(selections))
	ids := make([]string, 0, len(selections))
	for _, sel := range selections {
		if seen[sel.CandidateID] {
			continue
		}
		seen[sel.CandidateID] = true
		ids = append(ids, sel.CandidateID)
	}
	return ids
}

func checkCandidatePositions(selections []models.Selection, candidates []models.Candidate) error {
	byID := make(map[string]models.Candidate, len(candidates))
	for _, c := range candidates {
		byID[c.ID] = c
	}
	for _, sel := range selections {
		c, ok := byID[sel.CandidateID]
		if !ok {
			return ErrInvalidCandidate
		}
		if c.Position != sel.Position {
			return ErrPositionMismatch
		}
	}
	return nil
}
