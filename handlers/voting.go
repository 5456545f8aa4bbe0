// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/campus-ballot/auth"
	"github.com/danielhkuo/campus-ballot/cliparse"
	"github.com/danielhkuo/campus-ballot/db"
	"github.com/danielhkuo/campus-ballot/election"
	"github.com/danielhkuo/campus-ballot/middleware"
	"github.com/danielhkuo/campus-ballot/models"
)

type VotingHandler struct {
	store *db.Store
	svc   *election.Service
	cfg   cliparse.Config
}

func NewVotingHandler(store *db.Store, svc *election.Service, cfg cliparse.Config) *VotingHandler {
	return &VotingHandler{store: store, svc: svc, cfg: cfg}
}

// GetCandidates handles GET /api/votes/candidates
func (h *VotingHandler) GetCandidates(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := storeContext(r, h.cfg)
	defer cancel()

	candidates, err := h.store.ListCandidates(ctx, true)
	if err != nil {
		writeError(w, "list candidates", err)
		return
	}

	byPosition := make(map[models.Position][]models.Candidate, len(models.Positions))
	for _, c := range candidates {
		byPosition[c.Position] = append(byPosition[c.Position], c)
	}

	middleware.JSONResponse(w, http.StatusOK, models.CandidatesResponse{
		Count:      len(candidates),
		ByPosition: byPosition,
		All:        candidates,
	})
}

// CastVote handles POST /api/votes/cast
func (h *VotingHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	id, _ := middleware.IdentityFromContext(r.Context())

	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if err := validate.Struct(req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	ballot, err := h.svc.CastVote(r.Context(), election.CastRequest{
		UserID:     id.UserID,
		Selections: req.Votes,
		IPHash:     auth.HashIP(middleware.GetClientIP(r), h.cfg.IPHashSalt),
		UserAgent:  r.UserAgent(),
	})
	if err != nil {
		writeError(w, "cast vote", err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.CastVoteResponse{
		BallotID:  ballot.ID,
		Timestamp: ballot.CreatedAt,
	})
}

// GetStatus handles GET /api/votes/status
func (h *VotingHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	id, _ := middleware.IdentityFromContext(r.Context())

	status, err := h.svc.VoteStatus(r.Context(), id.UserID)
	if err != nil {
		writeError(w, "vote status", err)
		return
	}
	if status.VotedAt != nil {
		status.VotedAgo = humanize.Time(*status.VotedAt)
	}

	middleware.JSONResponse(w, http.StatusOK, status)
}

// GetMyBallot handles GET /api/votes/my-ballot
func (h *VotingHandler) GetMyBallot(w http.ResponseWriter, r *http.Request) {
	id, _ := middleware.IdentityFromContext(r.Context())

	ctx, cancel := storeContext(r, h.cfg)
	defer cancel()

	ballot, err := h.store.GetBallot(ctx, id.UserID)
	if err != nil {
		writeError(w, "get ballot", err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, ballot)
}
