package scheduler

import (
	"log/slog"

	"github.com/robfig/cron/v3"

	internal "github.com/buildtrack/construction-api/internal"
)

// OverdueSweeper runs a promotion pass over stale rows of one domain.
type OverdueSweeper interface {
	SweepOverdue() (int64, error)
}

// Sweeper pairs a sweeper with the name it is logged under.
type Sweeper struct {
	Name    string
	Sweeper OverdueSweeper
}

// Scheduler owns the background cron jobs. Reads still promote lazily,
// so the sweep only keeps reminder and invoice states fresh between
// reads.
type Scheduler struct {
	cron     *cron.Cron
	cfg      internal.SchedulerConfig
	sweepers []Sweeper
	logger   *slog.Logger
}

func New(cfg internal.SchedulerConfig, logger *slog.Logger, sweepers ...Sweeper) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		cfg:      cfg,
		sweepers: sweepers,
		logger:   logger,
	}
}

func (s *Scheduler) Start() error {
	if !s.cfg.Enabled {
		s.logger.Info("scheduler disabled")
		return nil
	}

	if _, err := s.cron.AddFunc(s.cfg.OverdueSweep, s.runSweep); err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "overdue_sweep", s.cfg.OverdueSweep)
	return nil
}

func (s *Scheduler) runSweep() {
	for _, sw := range s.sweepers {
		if _, err := sw.Sweeper.SweepOverdue(); err != nil {
			s.logger.Error("scheduled overdue sweep failed",
				"sweeper", sw.Name,
				"error", err)
		}
	}
}

func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}
