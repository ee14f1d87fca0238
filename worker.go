package queuectl

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/nottarun7/queuectl/job"
)

const maxErrorMessageLen = 500

// WorkerConfig defines the runtime behavior of a single Worker process.
//
// PollInterval is the sleep between unsuccessful lease attempts.
// HeartbeatInterval is the minimum time between worker-table heartbeats.
// JobTimeout bounds a single Executor.Execute call.
// ExitOnIdle and MaxIdle implement the optional idle-exit policy: after
// MaxIdle elapses with no leased job and no pending work left in the
// store, the loop exits on its own.
type WorkerConfig struct {
	PollInterval      time.Duration
	HeartbeatInterval time.Duration
	JobTimeout        time.Duration
	ExitOnIdle        bool
	MaxIdle           time.Duration
}

// Worker runs a single-threaded loop owning one worker id: lease, execute,
// report, heartbeat, and — on exit — reclaim its own in-flight leases.
//
// Worker has a strict lifecycle: Run blocks until ctx is canceled or the
// idle-exit policy fires, then always performs its shutdown reclaim before
// returning.
type Worker struct {
	id       string
	queue    *Queue
	workers  WorkerRegistry
	executor Executor
	log      *slog.Logger
	cfg      WorkerConfig
}

// NewWorker creates a Worker bound to the given id.
func NewWorker(id string, queue *Queue, workers WorkerRegistry, executor Executor, cfg WorkerConfig, log *slog.Logger) *Worker {
	return &Worker{
		id:       id,
		queue:    queue,
		workers:  workers,
		executor: executor,
		log:      log,
		cfg:      cfg,
	}
}

// Run executes the worker's main loop until ctx is canceled. It always
// registers before looping and reclaims/deregisters before returning,
// matching the crash-recovery contract described in SPEC_FULL.md: only a
// clean exit through this reclaim path releases the worker's leases
// proactively; an unclean death leaves them for Supervisor recovery.
func (w *Worker) Run(ctx context.Context) error {
	now := time.Now().UTC()
	if err := w.workers.RegisterWorker(ctx, w.id, os.Getpid(), now); err != nil {
		return fmt.Errorf("register worker: %w", err)
	}
	defer w.shutdown(context.Background())

	lastHeartbeat := now
	var idleSince *time.Time

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		now = time.Now().UTC()
		if now.Sub(lastHeartbeat) >= w.cfg.HeartbeatInterval {
			if err := w.workers.Heartbeat(ctx, w.id, now); err != nil {
				w.log.Error("heartbeat failed", "worker_id", w.id, "err", err)
			}
			lastHeartbeat = now
		}

		leased, err := w.queue.Lease(ctx, w.id)
		if err != nil {
			w.log.Error("lease failed", "worker_id", w.id, "err", err)
			w.sleep(ctx, w.cfg.PollInterval)
			continue
		}
		if leased == nil {
			if w.idleExceeded(idleSince) && w.pendingIsZero(ctx) {
				return nil
			}
			if idleSince == nil {
				stamp := now
				idleSince = &stamp
			}
			w.sleep(ctx, w.cfg.PollInterval)
			continue
		}
		idleSince = nil
		w.process(ctx, leased)
	}
}

func (w *Worker) idleExceeded(idleSince *time.Time) bool {
	if !w.cfg.ExitOnIdle || idleSince == nil {
		return false
	}
	return time.Since(*idleSince) >= w.cfg.MaxIdle
}

func (w *Worker) pendingIsZero(ctx context.Context) bool {
	pending, err := w.queue.List(ctx, job.Pending, 1)
	if err != nil {
		w.log.Error("pending recheck failed", "worker_id", w.id, "err", err)
		return false
	}
	return len(pending) == 0
}

func (w *Worker) sleep(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

func (w *Worker) process(ctx context.Context, j *job.Job) {
	result := w.executor.Execute(ctx, j.Command, w.cfg.JobTimeout)
	if result.ExitCode == 0 {
		if err := w.queue.Complete(ctx, j.Id); err != nil {
			w.log.Error("cannot complete job", "id", j.Id, "err", err)
		}
		return
	}
	errMsg := fmt.Sprintf("Exit code %d: %s", result.ExitCode, truncate(result.Stderr, maxErrorMessageLen))
	outcome, err := w.queue.Fail(ctx, j.Id, errMsg)
	if err != nil {
		w.log.Error("cannot fail job", "id", j.Id, "err", err)
		return
	}
	w.log.Info("job failed", "id", j.Id, "action", outcome.Action, "attempts", outcome.Attempts)
}

func (w *Worker) shutdown(ctx context.Context) {
	if _, err := w.queue.store.ReclaimWorker(ctx, w.id); err != nil {
		w.log.Error("reclaim on shutdown failed", "worker_id", w.id, "err", err)
	}
	if err := w.workers.DeregisterWorker(ctx, w.id); err != nil {
		w.log.Error("deregister on shutdown failed", "worker_id", w.id, "err", err)
	}
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n]
}
