package queuectl

import (
	"context"
	"time"

	"github.com/nottarun7/queuectl/job"
	"github.com/nottarun7/queuectl/message"
)

// WorkerLiveness describes a registered worker for Queue.Stats.
type WorkerLiveness struct {
	WorkerId      string
	Pid           int
	StartedAt     time.Time
	LastHeartbeat time.Time
}

// WorkerRegistry manages the worker table: registration, heartbeats, and
// deregistration. It is implemented by the store package.
type WorkerRegistry interface {
	RegisterWorker(ctx context.Context, workerId string, pid int, now time.Time) error
	Heartbeat(ctx context.Context, workerId string, now time.Time) error
	DeregisterWorker(ctx context.Context, workerId string) error
	ListWorkers(ctx context.Context) ([]WorkerLiveness, error)
}

// FailOutcome reports the result of applying the retry/DLQ policy after an
// execution failure.
type FailOutcome struct {
	Action      Decision
	NextRetryAt *time.Time
	Attempts    uint32
	MaxRetries  uint32
}

// Store is the full storage contract Queue depends on: job creation,
// lease-based transitions, read access, and terminal-job cleanup.
type Store interface {
	JobCreator
	Puller
	Observer
	Cleaner
}

// Queue is the transactional façade combining Store operations with Policy
// decisions. It owns the job state machine. The only job-row writes that
// bypass it are lease reclaims by Worker shutdown and Supervisor.Stop, and
// deletions by RetentionWorker, all of which go to the Store directly.
type Queue struct {
	store   Store
	workers WorkerRegistry
	backoff BackoffConfig
}

// NewQueue creates a Queue backed by the given store and worker registry,
// applying backoff as the default retry policy.
func NewQueue(store Store, workers WorkerRegistry, backoff BackoffConfig) *Queue {
	return &Queue{store: store, workers: workers, backoff: backoff}
}

// Enqueue validates and persists a new job.
//
// It resolves the effective retry budget from msg.MaxRetries, falling back
// to the Queue's configured default. A duplicate id is reported via
// ErrDuplicateJob, not treated as an unexpected failure.
func (q *Queue) Enqueue(ctx context.Context, msg *message.Message) error {
	if msg.Id == "" || msg.Command == "" {
		return ErrValidation
	}
	j := &job.Job{
		Message: *msg,
		Status:  job.Pending,
	}
	j.MaxRetries = j.EffectiveMaxRetries(q.backoff.MaxRetries)
	return q.store.CreateJob(ctx, j)
}

// Lease attempts to lease the oldest eligible job for workerId.
//
// Lease returns (nil, nil) if no job is currently eligible.
func (q *Queue) Lease(ctx context.Context, workerId string) (*job.Job, error) {
	return q.store.LeaseOne(ctx, workerId, time.Now().UTC())
}

// Complete marks a leased job as successfully completed. The successful
// execution counts toward Attempts, same as a failed one.
func (q *Queue) Complete(ctx context.Context, id string) error {
	return q.store.MarkCompleted(ctx, id, time.Now().UTC())
}

// Fail applies the retry/DLQ policy after an execution failure and
// transitions the job accordingly.
func (q *Queue) Fail(ctx context.Context, id string, errMsg string) (*FailOutcome, error) {
	j, err := q.store.ReadJob(ctx, id)
	if err != nil {
		return nil, err
	}
	maxRetries := j.EffectiveMaxRetries(q.backoff.MaxRetries)
	attemptsAfter := j.Attempts + 1
	now := time.Now().UTC()
	decision := DecideAfterFailure(attemptsAfter, maxRetries)
	if decision == DLQ {
		if err := q.store.MarkDlq(ctx, id, errMsg, now); err != nil {
			return nil, err
		}
		return &FailOutcome{Action: DLQ, Attempts: attemptsAfter, MaxRetries: maxRetries}, nil
	}
	delay := time.Duration(q.backoff.BackoffSeconds(attemptsAfter)) * time.Second
	nextRetryAt := now.Add(delay)
	if err := q.store.MarkFailedForRetry(ctx, id, nextRetryAt, errMsg, now); err != nil {
		return nil, err
	}
	return &FailOutcome{
		Action:      Retry,
		NextRetryAt: &nextRetryAt,
		Attempts:    attemptsAfter,
		MaxRetries:  maxRetries,
	}, nil
}

// Retry returns a job in the failed or dlq state to pending, clearing its
// error message and worker ownership. Retry refuses jobs in any other state:
// it leaves them unchanged and returns ErrIllegalTransition.
func (q *Queue) Retry(ctx context.Context, id string) error {
	j, err := q.store.ReadJob(ctx, id)
	if err != nil {
		return err
	}
	if j.Status != job.Failed && j.Status != job.Dlq {
		return ErrIllegalTransition
	}
	return q.store.ResetJob(ctx, id, time.Now().UTC())
}

// Stats combines job counts by status with worker liveness.
func (q *Queue) Stats(ctx context.Context) (map[job.Status]int64, []WorkerLiveness, error) {
	counts, err := q.store.JobCounts(ctx)
	if err != nil {
		return nil, nil, err
	}
	workers, err := q.workers.ListWorkers(ctx)
	if err != nil {
		return nil, nil, err
	}
	return counts, workers, nil
}

// List returns up to limit jobs in the given status, or all statuses if
// status is job.Unknown.
func (q *Queue) List(ctx context.Context, status job.Status, limit int) ([]*job.Job, error) {
	return q.store.ListJobs(ctx, status, limit)
}

// DlqList returns up to limit dead-lettered jobs.
func (q *Queue) DlqList(ctx context.Context, limit int) ([]*job.Job, error) {
	return q.store.ListJobs(ctx, job.Dlq, limit)
}

// Get reads a single job by id.
func (q *Queue) Get(ctx context.Context, id string) (*job.Job, error) {
	return q.store.ReadJob(ctx, id)
}
