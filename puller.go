package queuectl

import (
	"context"
	"time"

	"github.com/nottarun7/queuectl/job"
)

// Puller defines the atomic, lease-based read-write contract for consuming
// and transitioning jobs through the state machine described in
// SPEC_FULL.md.
//
// Unlike a visibility-timeout queue, ownership here is not time-bounded:
// once a job is leased, only a completion, failure, reset, or reclaim call
// returns it to a non-Processing state. Post-execution updates are
// unconditional on current ownership — they act by id, matching the
// "lease-then-execute-then-complete/fail is not a single transaction"
// design in the spec.
type Puller interface {

	// LeaseOne atomically finds the single oldest eligible job — Pending,
	// or Failed with NextRetryAt <= now — and transitions it to
	// Processing, binding it to workerId.
	//
	// StartedAt is set to now if it was previously unset; otherwise it is
	// left unchanged. Attempts is not incremented here; it is incremented
	// when the attempt's outcome is recorded (MarkCompleted,
	// MarkFailedForRetry or MarkDlq).
	//
	// LeaseOne returns (nil, nil) if no eligible job exists. Implementations
	// must guarantee that, under concurrent callers racing for the same
	// row, at most one observes that row transition to Processing.
	LeaseOne(ctx context.Context, workerId string, now time.Time) (*job.Job, error)

	// MarkCompleted increments Attempts, transitions the job to Completed,
	// sets CompletedAt, clears WorkerId, and clears ErrorMessage. The
	// successful attempt still counts as an execution attempt (spec.md
	// §3).
	//
	// MarkCompleted acts unconditionally by id; it does not verify that
	// the caller currently owns the lease.
	MarkCompleted(ctx context.Context, id string, now time.Time) error

	// MarkFailedForRetry increments Attempts, transitions the job to
	// Failed, clears WorkerId, and records the error message and
	// nextRetryAt.
	MarkFailedForRetry(ctx context.Context, id string, nextRetryAt time.Time, errMsg string, now time.Time) error

	// MarkDlq increments Attempts, transitions the job to Dlq, clears
	// WorkerId, and records the error message. The budget-exhausting
	// failure counts as an execution attempt, matching the
	// attempts == max_retries dlq invariant (spec.md §3).
	MarkDlq(ctx context.Context, id string, errMsg string, now time.Time) error

	// ResetJob transitions the job to Pending and clears WorkerId,
	// ErrorMessage, and NextRetryAt. Used by manual retry.
	ResetJob(ctx context.Context, id string, now time.Time) error

	// ReclaimWorker transitions every Processing job owned by workerId back
	// to Pending, clearing WorkerId. It returns the number of rows
	// affected. Used on worker graceful shutdown and supervisor crash
	// recovery.
	ReclaimWorker(ctx context.Context, workerId string) (int64, error)
}
