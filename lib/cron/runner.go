// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/bureau-foundation/chameleon/lib/clock"
)

// Job is a named function run on a cron schedule. The name appears in
// log output only.
type Job struct {
	Name     string
	Schedule Schedule
	Run      func(ctx context.Context) error
}

// Runner fires jobs at the times their schedules match. Jobs run
// sequentially in the runner's goroutine: a slow job delays later
// ones rather than overlapping with them. Chameleon's jobs (ledger
// backup, karma digest) finish in well under a second, so sequential
// execution keeps the model simple.
type Runner struct {
	clock  clock.Clock
	logger *slog.Logger
	jobs   []Job
}

// NewRunner creates a runner with no jobs. Add jobs before calling
// Run.
func NewRunner(clk clock.Clock, logger *slog.Logger) *Runner {
	return &Runner{
		clock:  clk,
		logger: logger,
	}
}

// Add registers a job. Must be called before Run.
func (r *Runner) Add(job Job) {
	r.jobs = append(r.jobs, job)
}

// pendingJob pairs a job with its next scheduled run time.
type pendingJob struct {
	job Job
	at  time.Time
}

// Run blocks until ctx is cancelled, firing each job at its scheduled
// times. Job errors are logged and the job is rescheduled; a job that
// can no longer produce a next run time (impossible schedule) is
// dropped with an error log. Returns nil when ctx is cancelled, or
// immediately if no jobs are runnable.
func (r *Runner) Run(ctx context.Context) error {
	now := r.clock.Now()
	var queue []pendingJob
	for _, job := range r.jobs {
		at, err := job.Schedule.Next(now)
		if err != nil {
			r.logger.Error("dropping unschedulable job", "job", job.Name, "error", err)
			continue
		}
		queue = append(queue, pendingJob{job: job, at: at})
		r.logger.Info("job scheduled", "job", job.Name, "next_run", at)
	}

	for len(queue) > 0 {
		// Find the job due soonest.
		earliest := 0
		for i := range queue {
			if queue[i].at.Before(queue[earliest].at) {
				earliest = i
			}
		}
		pending := queue[earliest]

		select {
		case <-ctx.Done():
			return nil
		case <-r.clock.After(pending.at.Sub(r.clock.Now())):
		}

		if err := pending.job.Run(ctx); err != nil {
			r.logger.Error("scheduled job failed", "job", pending.job.Name, "error", err)
		}

		// Reschedule from the nominal fire time, not the completion
		// time, so a slow job cannot skip an occurrence that its own
		// runtime overlapped.
		next, err := pending.job.Schedule.Next(pending.at)
		if err != nil {
			r.logger.Error("dropping unschedulable job", "job", pending.job.Name, "error", err)
			queue = append(queue[:earliest], queue[earliest+1:]...)
			continue
		}
		queue[earliest].at = next
		r.logger.Debug("job rescheduled", "job", pending.job.Name, "next_run", next)
	}

	return nil
}
