package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"salestrack/backend/internal/report"
	"salestrack/backend/internal/store"
)

const DefaultListLimit = 1000

type Service struct {
	repo      store.Repository
	reports   *report.Engine
	sync      *InventorySync
	logger    *zap.Logger
	listLimit int
	now       func() time.Time
}

func New(repo store.Repository, reports *report.Engine, logger *zap.Logger, listLimit int) *Service {
	if reports == nil {
		reports = report.NewEngine()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if listLimit < 1 {
		listLimit = DefaultListLimit
	}

	s := &Service{
		repo:      repo,
		reports:   reports,
		logger:    logger,
		listLimit: listLimit,
		now:       utcNow,
	}
	s.sync = NewInventorySync(repo, logger)
	s.sync.now = func() time.Time { return s.now() }
	return s
}

// Ping reports whether the backing repository is reachable.
func (s *Service) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

// utcNow is truncated to microseconds so timestamps survive a postgres round trip.
func utcNow() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
