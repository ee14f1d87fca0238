package queuectl

import (
	"context"
	"log/slog"
	"time"

	"github.com/nottarun7/queuectl/internal"
	"github.com/nottarun7/queuectl/job"
)

// RetentionConfig defines the scheduling and filtering parameters for a
// RetentionWorker.
//
// Status specifies which terminal state is targeted for deletion
// (job.Completed or job.Dlq). Interval defines how often the worker runs.
// If Before is true, deletion is restricted to jobs whose UpdatedAt
// timestamp is older than now - Delta.
type RetentionConfig struct {
	Status   job.Status
	Interval time.Duration
	Before   bool
	Delta    time.Duration
}

// RetentionWorker periodically invokes a Cleaner implementation to purge
// terminal jobs, supplementing the operator's maintenance surface beyond
// what a thin CLI wrapper alone would provide.
//
// RetentionWorker does not participate in job processing and does not
// affect lease state.
//
// RetentionWorker has a strict lifecycle:
//   - Start may only be called once.
//   - Stop must be called to terminate the worker.
//   - Stop waits for the internal task to finish or until the timeout
//     expires.
type RetentionWorker struct {
	lcBase
	cleaner  Cleaner
	task     internal.TimerTask
	log      *slog.Logger
	status   job.Status
	interval time.Duration
	before   bool
	delta    time.Duration
}

// NewRetentionWorker creates a new RetentionWorker using the provided
// Cleaner implementation and configuration.
//
// The worker is not started automatically. Call Start to begin periodic
// cleaning.
func NewRetentionWorker(cleaner Cleaner, config *RetentionConfig, log *slog.Logger) *RetentionWorker {
	return &RetentionWorker{
		cleaner:  cleaner,
		log:      log,
		status:   config.Status,
		interval: config.Interval,
		before:   config.Before,
		delta:    config.Delta,
	}
}

func (rw *RetentionWorker) beforeStamp() *time.Time {
	if !rw.before {
		return nil
	}
	ret := time.Now()
	if rw.delta != 0 {
		ret = ret.Add(-rw.delta)
	}
	return &ret
}

func (rw *RetentionWorker) clean(ctx context.Context) {
	before := rw.beforeStamp()
	count, err := rw.cleaner.Clean(ctx, rw.status, before)
	if err != nil {
		rw.log.Error("error during retention sweep", "status", rw.status, "error", err)
		return
	}
	rw.log.Info("retention sweep removed jobs", "status", rw.status, "count", count)
}

// Start begins periodic execution of the retention sweep.
//
// Start returns ErrDoubleStarted if the worker has already been started.
func (rw *RetentionWorker) Start(ctx context.Context) error {
	if err := rw.tryStart(); err != nil {
		return err
	}
	rw.task.Start(ctx, rw.clean, rw.interval)
	return nil
}

// Stop terminates the background retention sweep.
//
// Stop waits until the task finishes or the specified timeout expires. If
// shutdown does not complete within the timeout, ErrStopTimeout is
// returned.
func (rw *RetentionWorker) Stop(timeout time.Duration) error {
	return rw.tryStop(timeout, rw.task.Stop)
}
