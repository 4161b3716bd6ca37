package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/projecthub/projecthub/internal/hub/store"
)

// DefaultNotificationRetention is how long read notifications are kept before
// housekeeping removes them.
const DefaultNotificationRetention = 30 * 24 * time.Hour

// HousekeepingService is the background worker that keeps derived state and
// table growth in check: it rewrites time-expired pending invitations to
// expired (read paths already derive this, the sweep just settles the stored
// rows) and prunes old read notifications.
type HousekeepingService struct {
	Store     store.Store
	Logger    *slog.Logger
	Interval  time.Duration
	Retention time.Duration

	// Now is the clock; tests override it.
	Now func() time.Time

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates the worker. Interval defaults to 1 hour and
// retention to DefaultNotificationRetention when zero.
func NewHousekeepingService(st store.Store, logger *slog.Logger, interval time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = 1 * time.Hour
	}

	return &HousekeepingService{
		Store:     st,
		Logger:    logger,
		Interval:  interval,
		Retention: DefaultNotificationRetention,
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
	}
}

func (s *HousekeepingService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Start begins the background worker. Non-blocking; call Stop to shut down.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping started", "interval", s.Interval)
}

// Stop shuts the worker down, blocking until any in-progress sweep finishes.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	// Settle stored state immediately on startup.
	s.Sweep(context.Background())

	for {
		select {
		case <-ticker.C:
			s.Sweep(context.Background())
		case <-s.stopCh:
			return
		}
	}
}

// Sweep runs one housekeeping pass. Each task is independent; a failure in
// one doesn't stop the others.
func (s *HousekeepingService) Sweep(ctx context.Context) {
	now := s.now()

	expired, err := s.Store.Invitations().SweepExpired(ctx, now)
	if err != nil {
		s.Logger.Error("failed to sweep expired invitations", "error", err)
	} else if expired > 0 {
		s.Logger.Info("swept expired invitations", "count", expired)
	}

	retention := s.Retention
	if retention <= 0 {
		retention = DefaultNotificationRetention
	}

	pruned, err := s.Store.Notifications().DeleteReadBefore(ctx, now.Add(-retention))
	if err != nil {
		s.Logger.Error("failed to prune read notifications", "error", err)
	} else if pruned > 0 {
		s.Logger.Info("pruned read notifications", "count", pruned)
	}
}
