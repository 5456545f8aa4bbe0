// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// DefaultTimeout bounds every service operation when Options.Timeout is zero.
const DefaultTimeout = 5 * time.Second

type Options struct {
	Timeout time.Duration
	Clock   Clock
	Logger  *slog.Logger
	NewID   func() string
}

// Service exposes the vote-casting core and the read models built on it.
type Service struct {
	store   Store
	timeout time.Duration
	clock   Clock
	logger  *slog.Logger
	newID   func() string
}

func NewService(store Store, opts Options) *Service {
	s := &Service{
		store:   store,
		timeout: opts.Timeout,
		clock:   opts.Clock,
		logger:  opts.Logger,
		newID:   opts.NewID,
	}
	if s.timeout <= 0 {
		s.timeout = DefaultTimeout
	}
	if s.clock == nil {
		s.clock = systemClock{}
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}
	return s
}

func (s *Service) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.timeout)
}

// unavailable folds context expiry into ErrStorageUnavailable so callers see
// one retryable kind.
func unavailable(err error) error {
	if err == nil || errors.Is(err, ErrStorageUnavailable) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return err
}
