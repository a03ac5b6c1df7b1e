package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/careers/internal/careers/store"
)

// InviteSweeper periodically stamps lapsed_at on invites that expired without
// being accepted. It never deletes rows; acceptance still checks expiry on
// its own, so the sweeper only keeps the outstanding-invite index tidy.
type InviteSweeper struct {
	Store     store.Store
	Logger    *slog.Logger
	Interval  time.Duration
	Clock     Clock
	OpTimeout time.Duration

	// OnSweep, if set, receives the number of rows lapsed by each sweep.
	OnSweep func(lapsed int64)

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewInviteSweeper creates a sweeper. If interval is 0 or negative, defaults
// to 1 hour.
func NewInviteSweeper(st store.Store, logger *slog.Logger, interval time.Duration) *InviteSweeper {
	if interval <= 0 {
		interval = time.Hour
	}

	return &InviteSweeper{
		Store:    st,
		Logger:   logger,
		Interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start launches the background loop. Call Stop to shut it down.
func (s *InviteSweeper) Start() {
	go s.run()
	s.Logger.Info("invite sweeper started", "interval", s.Interval)
}

// Stop blocks until an in-flight sweep has finished.
func (s *InviteSweeper) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("invite sweeper stopped")
}

func (s *InviteSweeper) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	// Sweep once on startup
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

// Sweep lapses every expired, unaccepted invite across all tenants and
// returns how many rows it touched.
func (s *InviteSweeper) Sweep(ctx context.Context) int64 {
	ctx, cancel := withOpTimeout(ctx, s.OpTimeout)
	defer cancel()

	n, err := s.Store.Invites().LapseExpiredInvites(ctx, "", "", s.Clock.now())
	if err != nil {
		s.Logger.Error("failed to lapse expired invites", "error", err)
		return 0
	}

	s.Logger.Debug("invite sweep completed", "lapsed", n)
	if s.OnSweep != nil {
		s.OnSweep(n)
	}
	return n
}
