// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/campus-ballot/cliparse"
	"github.com/danielhkuo/campus-ballot/db"
	"github.com/danielhkuo/campus-ballot/election"
	"github.com/danielhkuo/campus-ballot/middleware"
	"github.com/danielhkuo/campus-ballot/models"
)

type AdminHandler struct {
	store *db.Store
	svc   *election.Service
	cfg   cliparse.Config
}

func NewAdminHandler(store *db.Store, svc *election.Service, cfg cliparse.Config) *AdminHandler {
	return &AdminHandler{store: store, svc: svc, cfg: cfg}
}

// CreateCandidate handles POST /api/admin/candidates
func (h *AdminHandler) CreateCandidate(w http.ResponseWriter, r *http.Request) {
	var req models.CandidateRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Department = strings.TrimSpace(req.Department)

	if err := validate.Struct(req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	ctx, cancel := storeContext(r, h.cfg)
	defer cancel()

	now := time.Now().UTC()
	candidate, err := h.store.CreateCandidate(ctx, models.Candidate{
		ID:         uuid.NewString(),
		Name:       req.Name,
		Position:   req.Position,
		Department: req.Department,
		Year:       req.Year,
		Manifesto:  req.Manifesto,
		PhotoURL:   req.PhotoURL,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		writeError(w, "create candidate", err)
		return
	}

	slog.Info("candidate created", "candidate_id", candidate.ID, "position", candidate.Position)

	middleware.JSONResponse(w, http.StatusCreated, candidate)
}

// ListCandidates handles GET /api/admin/candidates
// Includes inactive candidates.
func (h *AdminHandler) ListCandidates(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := storeContext(r, h.cfg)
	defer cancel()

	candidates, err := h.store.ListCandidates(ctx, false)
	if err != nil {
		writeError(w, "list candidates", err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, candidates)
}

// UpdateCandidate handles PUT /api/admin/candidates/{id}
// A voteCount in the body is ignored.
func (h *AdminHandler) UpdateCandidate(w http.ResponseWriter, r *http.Request) {
	candidateID := r.PathValue("id")
	if candidateID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id is required")
		return
	}

	var req models.UpdateCandidateRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	trimPtr(req.Name)
	trimPtr(req.Department)

	if err := validate.Struct(req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	ctx, cancel := storeContext(r, h.cfg)
	defer cancel()

	candidate, err := h.store.UpdateCandidate(ctx, candidateID, req, time.Now().UTC())
	if err != nil {
		writeError(w, "update candidate", err)
		return
	}

	slog.Info("candidate updated", "candidate_id", candidate.ID)

	middleware.JSONResponse(w, http.StatusOK, candidate)
}

// DeleteCandidate handles DELETE /api/admin/candidates/{id}
// Candidates are deactivated, never removed, so cast ballots stay intact.
func (h *AdminHandler) DeleteCandidate(w http.ResponseWriter, r *http.Request) {
	candidateID := r.PathValue("id")
	if candidateID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id is required")
		return
	}

	ctx, cancel := storeContext(r, h.cfg)
	defer cancel()

	candidate, err := h.store.DeactivateCandidate(ctx, candidateID, time.Now().UTC())
	if err != nil {
		writeError(w, "deactivate candidate", err)
		return
	}

	slog.Info("candidate deactivated", "candidate_id", candidate.ID)

	middleware.JSONResponse(w, http.StatusOK, candidate)
}

// ListUsers handles GET /api/admin/users
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := storeContext(r, h.cfg)
	defer cancel()

	users, err := h.store.ListUsers(ctx)
	if err != nil {
		writeError(w, "list users", err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, users)
}

// Reset handles POST /api/admin/reset
func (h *AdminHandler) Reset(w http.ResponseWriter, r *http.Request) {
	id, _ := middleware.IdentityFromContext(r.Context())

	record, err := h.svc.Reset(r.Context(), id.UserID)
	if err != nil {
		writeError(w, "reset election", err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ResetResponse{
		Message: "Election reset",
		Reset:   record,
	})
}

// Reconcile handles POST /api/admin/reconcile
func (h *AdminHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	report, err := h.svc.Reconcile(r.Context())
	if err != nil {
		writeError(w, "reconcile", err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, report)
}

func trimPtr(s *string) {
	if s != nil {
		*s = strings.TrimSpace(*s)
	}
}
