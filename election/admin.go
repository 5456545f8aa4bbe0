// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"context"

	"github.com/danielhkuo/campus-ballot/models"
)

// Reset clears every ballot, zeroes every tally and returns all users to the
// not-voted state. An audit row is appended for each reset.
func (s *Service) Reset(ctx context.Context, actorID string) (models.ResetRecord, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	record, err := s.store.ResetElection(ctx, models.ResetRecord{
		ID:      s.newID(),
		ActorID: actorID,
		ResetAt: s.clock.Now(),
	})
	if err != nil {
		s.logger.Error("failed to reset election", "actor_id", actorID, "error", err)
		return models.ResetRecord{}, unavailable(err)
	}

	s.logger.Warn("election reset",
		"reset_id", record.ID,
		"actor_id", actorID,
		"ballots_cleared", record.BallotsCleared,
	)
	return record, nil
}

// Reconcile recomputes tallies and voter flags from the ballots on record.
// Running it twice in a row repairs nothing the second time.
func (s *Service) Reconcile(ctx context.Context) (models.ReconcileReport, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	report, err := s.store.Reconcile(ctx)
	if err != nil {
		s.logger.Error("failed to reconcile tallies", "error", err)
		return models.ReconcileReport{}, unavailable(err)
	}
	if report.CandidatesRepaired > 0 || report.UsersRepaired > 0 {
		s.logger.Warn("tallies reconciled",
			"candidates_repaired", report.CandidatesRepaired,
			"users_repaired", report.UsersRepaired,
		)
	}
	return report, nil
}
