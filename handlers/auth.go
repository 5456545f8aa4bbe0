// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/campus-ballot/auth"
	"github.com/danielhkuo/campus-ballot/cliparse"
	"github.com/danielhkuo/campus-ballot/db"
	"github.com/danielhkuo/campus-ballot/election"
	"github.com/danielhkuo/campus-ballot/middleware"
	"github.com/danielhkuo/campus-ballot/models"
)

type AuthHandler struct {
	store *db.Store
	cfg   cliparse.Config
}

func NewAuthHandler(store *db.Store, cfg cliparse.Config) *AuthHandler {
	return &AuthHandler{store: store, cfg: cfg}
}

// storeContext bounds direct store calls the same way the election service does
func storeContext(r *http.Request, cfg cliparse.Config) (context.Context, context.CancelFunc) {
	timeout := cfg.StoreTimeout
	if timeout <= 0 {
		timeout = election.DefaultTimeout
	}
	return context.WithTimeout(r.Context(), timeout)
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	req.StudentID = strings.ToUpper(strings.TrimSpace(req.StudentID))
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Name = strings.TrimSpace(req.Name)
	req.Department = strings.TrimSpace(req.Department)

	if err := validate.Struct(req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if errors.Is(err, auth.ErrPasswordTooLong) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "password must be at most 72 bytes")
		return
	}
	if err != nil {
		slog.Error("failed to hash password", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register")
		return
	}

	ctx, cancel := storeContext(r, h.cfg)
	defer cancel()

	user, err := h.store.CreateUser(ctx, models.User{
		ID:         uuid.NewString(),
		StudentID:  req.StudentID,
		Name:       req.Name,
		Email:      req.Email,
		Department: req.Department,
		Year:       req.Year,
		IsAdmin:    h.cfg.IsAdminStudent(req.StudentID),
		CreatedAt:  time.Now().UTC(),
	}, hash)
	if err != nil {
		writeError(w, "register", err)
		return
	}

	token, err := auth.IssueToken(user.ID, user.IsAdmin, h.cfg.JWTSecret, h.cfg.TokenTTL, time.Now())
	if err != nil {
		slog.Error("failed to issue token", "error", err, "user_id", user.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register")
		return
	}

	slog.Info("user registered", "user_id", user.ID, "is_admin", user.IsAdmin)

	middleware.JSONResponse(w, http.StatusCreated, models.AuthResponse{
		User:  user,
		Token: token,
	})
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	req.StudentID = strings.ToUpper(strings.TrimSpace(req.StudentID))

	if err := validate.Struct(req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	ctx, cancel := storeContext(r, h.cfg)
	defer cancel()

	user, hash, err := h.store.GetUserByStudentID(ctx, req.StudentID)
	if errors.Is(err, election.ErrUserNotFound) {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if err != nil {
		writeError(w, "login", err)
		return
	}

	if err := auth.CheckPassword(hash, req.Password); err != nil {
		slog.Warn("failed login", "student_id", req.StudentID, "ip", middleware.GetClientIP(r))
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := auth.IssueToken(user.ID, user.IsAdmin, h.cfg.JWTSecret, h.cfg.TokenTTL, time.Now())
	if err != nil {
		slog.Error("failed to issue token", "error", err, "user_id", user.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to login")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.AuthResponse{
		User:  user,
		Token: token,
	})
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	id, _ := middleware.IdentityFromContext(r.Context())

	ctx, cancel := storeContext(r, h.cfg)
	defer cancel()

	user, err := h.store.GetUser(ctx, id.UserID)
	if err != nil {
		writeError(w, "get current user", err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, user)
}

// Logout handles POST /api/auth/logout
// Tokens are stateless; the client discards its copy.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, map[string]string{
		"message": "Logged out successfully",
	})
}
