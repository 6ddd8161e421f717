package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/kmutua/metertrack/internal/report"
)

// Summarizer is satisfied by *report.Service.
type Summarizer interface {
	Summarize(ctx context.Context, r report.DateRange) (*report.Summary, error)
}

// CacheInvalidator is satisfied by *meter.Service.
type CacheInvalidator interface {
	InvalidateCache()
}

// Scheduler runs the nightly reconciliation: recompute the aggregates, log
// a snapshot for the ops trail, and drop the serial cache so the next
// lookup sees whatever other writers did during the day.
type Scheduler struct {
	cron      *cron.Cron
	reports   Summarizer
	lifecycle CacheInvalidator
	schedule  string
	logger    *slog.Logger
}

func New(schedule string, reports Summarizer, lifecycle CacheInvalidator, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		cron:      cron.New(),
		reports:   reports,
		lifecycle: lifecycle,
		schedule:  schedule,
		logger:    logger,
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		s.Reconcile(ctx)
	}); err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "schedule", s.schedule)

	return nil
}

func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

// Reconcile runs one reconciliation pass. Exposed so it can be triggered
// outside the cron schedule.
func (s *Scheduler) Reconcile(ctx context.Context) {
	summary, err := s.reports.Summarize(ctx, report.DateRange{})
	if err != nil {
		s.logger.Error("nightly reconciliation failed", "error", err)
		return
	}

	remaining := 0
	for _, n := range summary.Remaining {
		remaining += n
	}

	withAgents := 0
	for _, n := range summary.WithAgents {
		withAgents += n
	}

	s.logger.Info("nightly snapshot",
		"in_stock", remaining,
		"with_agents", withAgents,
		"units_sold", summary.TotalUnitsSold,
		"revenue", summary.TotalRevenue.StringFixed(2),
		"pending_faults", summary.FaultsByStatus["pending"],
	)

	s.lifecycle.InvalidateCache()
}
