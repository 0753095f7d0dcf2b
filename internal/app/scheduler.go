/**
 * @description
 * Cron scheduler setup for the library-service's periodic jobs.
 */
package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/robfig/cron/v3"
)

// ScheduleDisabled turns a job schedule off.
const ScheduleDisabled = "off"

// Scheduler manages the cron jobs.
type Scheduler struct {
	cron     *cron.Cron
	jobs     *Jobs
	logger   *slog.Logger
	schedule string
}

// NewScheduler creates a new scheduler instance running the circulation
// report on the given cron spec.
func NewScheduler(jobs *Jobs, logger *slog.Logger, schedule string) *Scheduler {
	cronLogger := cron.PrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelInfo))
	c := cron.New(cron.WithChain(cron.Recover(cronLogger)))

	return &Scheduler{
		cron:     c,
		jobs:     jobs,
		logger:   logger,
		schedule: strings.TrimSpace(schedule),
	}
}

// Start registers the jobs and starts the cron scheduler.
// An empty or "off" schedule leaves the scheduler idle.
func (s *Scheduler) Start() error {
	if s.schedule == "" || strings.EqualFold(s.schedule, ScheduleDisabled) {
		s.logger.Info("circulation report disabled")
		return nil
	}

	if _, err := s.cron.AddFunc(s.schedule, s.jobs.ReportCirculation); err != nil {
		return fmt.Errorf("schedule circulation report %q: %w", s.schedule, err)
	}
	s.logger.Info("scheduled circulation report", "schedule", s.schedule)

	s.cron.Start()
	return nil
}

// Stop stops the cron scheduler. The returned context is done once running jobs finish.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}
