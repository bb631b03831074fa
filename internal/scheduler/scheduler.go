package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"

	"github.com/i474232898/powercast-data/internal/grid"
)

const defaultInterval = 2 * time.Second

// LivePoller is what the scheduler drives on every tick.
type LivePoller interface {
	PollLive(ctx context.Context) (grid.GridSnapshot, error)
}

// Scheduler periodically refreshes the live grid snapshot that backs the
// dashboard header. Ticks are independent and may overlap.
type Scheduler struct {
	scheduler *gocron.Scheduler
	poller    LivePoller
	interval  time.Duration
	logger    *zap.Logger
}

// New creates a new Scheduler.
func New(interval time.Duration, poller LivePoller, logger *zap.Logger) *Scheduler {
	if interval <= 0 {
		interval = defaultInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		poller:    poller,
		interval:  interval,
		logger:    logger,
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	if s.poller == nil {
		s.logger.Info("scheduler: no live poller configured; nothing to schedule")
		return nil
	}

	_, err := s.scheduler.Every(s.interval).Do(s.Tick)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	s.logger.Info("scheduler: live grid polling started", zap.Duration("interval", s.interval))
	return nil
}

// Tick runs one live poll.
func (s *Scheduler) Tick() {
	snap, err := s.poller.PollLive(context.Background())
	if err != nil {
		s.logger.Error("scheduler: live poll failed", zap.Error(err))
		return
	}
	s.logger.Debug("scheduler: live poll completed",
		zap.Time("timestamp", snap.Timestamp),
		zap.Float64("total_load_mw", snap.TotalLoadMW),
		zap.String("status", string(snap.Status)))
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
