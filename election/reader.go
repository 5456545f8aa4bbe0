// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"context"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/danielhkuo/campus-ballot/models"
)

// HourlyBuckets is how many hours of vote-rate history Statistics returns.
const HourlyBuckets = 24

// VoteStatus reports whether the user has a ballot on record.
func (s *Service) VoteStatus(ctx context.Context, userID string) (models.VoteStatusResponse, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return models.VoteStatusResponse{}, unavailable(err)
	}
	return models.VoteStatusResponse{
		HasVoted: user.HasVoted,
		VotedAt:  user.VotedAt,
	}, nil
}

// Results groups active candidates by position, highest tally first.
func (s *Service) Results(ctx context.Context) (models.Results, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	var (
		candidates             []models.Candidate
		totalVotes, totalUsers int
		voted                  int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		candidates, err = s.store.ListResults(gctx)
		return err
	})
	g.Go(func() (err error) {
		totalVotes, err = s.store.CountBallots(gctx)
		return err
	})
	g.Go(func() (err error) {
		totalUsers, err = s.store.CountUsers(gctx)
		return err
	})
	g.Go(func() (err error) {
		voted, err = s.store.CountVoted(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return models.Results{}, unavailable(err)
	}

	byPosition := make(map[models.Position][]models.CandidateResult)
	for _, c := range candidates {
		byPosition[c.Position] = append(byPosition[c.Position], models.CandidateResult{
			Name:       c.Name,
			Department: c.Department,
			Year:       c.Year,
			VoteCount:  c.VoteCount,
			Manifesto:  c.Manifesto,
			PhotoURL:   c.PhotoURL,
		})
	}

	return models.Results{
		ResultsByPosition: byPosition,
		Totals: models.ResultTotals{
			TotalVotes:     totalVotes,
			TotalUsers:     totalUsers,
			TurnoutPercent: Percent(voted, totalUsers),
		},
	}, nil
}

// Statistics builds the admin dashboard: overview counts, hourly vote rate and
// turnout by department and year.
func (s *Service) Statistics(ctx context.Context) (models.Statistics, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	var (
		stats              models.Statistics
		candidates         []models.Candidate
		departments, years []models.GroupCount
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stats.Overview.TotalUsers, err = s.store.CountUsers(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.Overview.TotalVotes, err = s.store.CountBallots(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.Overview.TotalCandidates, err = s.store.CountActiveCandidates(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.Overview.UsersVoted, err = s.store.CountVoted(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.VotesPerHour, err = s.store.AggregateByHour(gctx, HourlyBuckets)
		return err
	})
	g.Go(func() (err error) {
		candidates, err = s.store.ListResults(gctx)
		return err
	})
	g.Go(func() (err error) {
		departments, err = s.store.GroupCounts(gctx, models.GroupByDepartment)
		return err
	})
	g.Go(func() (err error) {
		years, err = s.store.GroupCounts(gctx, models.GroupByYear)
		return err
	})
	if err := g.Wait(); err != nil {
		return models.Statistics{}, unavailable(err)
	}

	stats.Overview.TurnoutPercent = Percent(stats.Overview.UsersVoted, stats.Overview.TotalUsers)
	stats.CandidatesByPosition = tallyByPosition(candidates)
	stats.DepartmentStats = turnout(departments)
	stats.YearStats = turnout(years)
	return stats, nil
}

// Percent returns voted/total as a percentage rounded to two decimals, and 0
// for an empty group.
func Percent(voted, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(voted)/float64(total)*10000) / 100
}

func turnout(groups []models.GroupCount) []models.Turnout {
	out := make([]models.Turnout, 0, len(groups))
	for _, g := range groups {
		out = append(out, models.Turnout{
			Key:           g.Key,
			TotalStudents: g.Total,
			VotedStudents: g.Voted,
			VotingPercent: Percent(g.Voted, g.Total),
		})
	}
	return out
}

func tallyByPosition(candidates []models.Candidate) []models.PositionTally {
	byPosition := make(map[models.Position]*models.PositionTally)
	for _, c := range candidates {
		t, ok := byPosition[c.Position]
		if !ok {
			t = &models.PositionTally{Position: c.Position, Candidates: []models.NameAndVotes{}}
			byPosition[c.Position] = t
		}
		t.Candidates = append(t.Candidates, models.NameAndVotes{Name: c.Name, VoteCount: c.VoteCount})
		t.TotalVotes += c.VoteCount
	}

	out := make([]models.PositionTally, 0, len(byPosition))
	for _, p := range models.Positions {
		if t, ok := byPosition[p]; ok {
			out = append(out, *t)
		}
	}
	return out
}
