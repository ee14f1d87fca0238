package store

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	"github.com/nottarun7/queuectl/job"
)

// Puller implements queuectl.Puller using the SQLite-backed store.
//
// LeaseOne performs atomic state transitions using a single UPDATE ...
// WHERE id IN (subquery) statement with RETURNING, so that for any pair of
// concurrent callers at most one observes a given row transitioning to
// processing. The remaining transitions act unconditionally by id — they
// do not re-check ownership, matching the queue's lease-then-report
// protocol.
type Puller struct {
	db *bun.DB
}

// NewPuller creates a new SQL-backed Puller.
func NewPuller(db *bun.DB) *Puller {
	return &Puller{db: db}
}

// LeaseOne finds the single oldest eligible job — Pending, or Failed with
// NextRetryAt <= now — and transitions it to Processing, binding it to
// workerId. StartedAt is set to now only if it was previously unset.
//
// LeaseOne returns (nil, nil) if no eligible job exists.
func (p *Puller) LeaseOne(ctx context.Context, workerId string, now time.Time) (*job.Job, error) {
	subQuery := p.db.NewSelect().
		Model((*jobModel)(nil)).
		Column("id").
		WhereGroup("AND", func(sq *bun.SelectQuery) *bun.SelectQuery {
			return sq.
				Where("status = ?", job.Pending).
				WhereOr("status = ? AND next_retry_at <= ?", job.Failed, now)
		}).
		Where("worker_id IS NULL").
		Order("created_at ASC").
		Limit(1)

	var models []*jobModel
	err := p.db.NewUpdate().
		Model((*jobModel)(nil)).
		Set("status = ?", job.Processing).
		Set("worker_id = ?", workerId).
		Set("started_at = COALESCE(started_at, ?)", now).
		Set("next_retry_at = NULL").
		Set("updated_at = ?", now).
		Where("id IN (?)", subQuery).
		Returning("*").
		Scan(ctx, &models)
	if err != nil {
		return nil, err
	}
	if len(models) == 0 {
		return nil, nil
	}
	return models[0].toJob(), nil
}

// MarkCompleted increments Attempts, transitions the job to Completed, sets
// CompletedAt, clears WorkerId, and clears ErrorMessage. It acts
// unconditionally by id.
//
// The attempt that ended in success still counts as an execution attempt
// (spec.md §3: attempts = number of completed execution attempts), so
// Attempts goes from 0 to 1 on a job's first and only lease-execute-complete
// cycle.
func (p *Puller) MarkCompleted(ctx context.Context, id string, now time.Time) error {
	_, err := p.db.NewUpdate().
		Model((*jobModel)(nil)).
		Set("status = ?", job.Completed).
		Set("attempts = attempts + 1").
		Set("completed_at = ?", now).
		Set("worker_id = NULL").
		Set("error_message = NULL").
		Set("updated_at = ?", now).
		Where("id = ?", id).
		Exec(ctx)
	return err
}

// MarkFailedForRetry increments Attempts, transitions the job to Failed,
// clears WorkerId, and records the error message and nextRetryAt.
func (p *Puller) MarkFailedForRetry(ctx context.Context, id string, nextRetryAt time.Time, errMsg string, now time.Time) error {
	_, err := p.db.NewUpdate().
		Model((*jobModel)(nil)).
		Set("status = ?", job.Failed).
		Set("attempts = attempts + 1").
		Set("worker_id = NULL").
		Set("error_message = ?", errMsg).
		Set("next_retry_at = ?", nextRetryAt).
		Set("updated_at = ?", now).
		Where("id = ?", id).
		Exec(ctx)
	return err
}

// MarkDlq increments Attempts, transitions the job to Dlq, clears WorkerId,
// and records the error message.
//
// The failure that exhausted the retry budget is itself an execution
// attempt and must be reflected in the terminal row (spec.md §3: attempts ==
// max_retries is the dlq invariant), so MarkDlq accounts for it the same way
// MarkFailedForRetry does for a retryable failure.
func (p *Puller) MarkDlq(ctx context.Context, id string, errMsg string, now time.Time) error {
	_, err := p.db.NewUpdate().
		Model((*jobModel)(nil)).
		Set("status = ?", job.Dlq).
		Set("attempts = attempts + 1").
		Set("worker_id = NULL").
		Set("error_message = ?", errMsg).
		Set("updated_at = ?", now).
		Where("id = ?", id).
		Exec(ctx)
	return err
}

// ResetJob transitions the job to Pending and clears WorkerId,
// ErrorMessage, and NextRetryAt. Used by manual retry.
func (p *Puller) ResetJob(ctx context.Context, id string, now time.Time) error {
	_, err := p.db.NewUpdate().
		Model((*jobModel)(nil)).
		Set("status = ?", job.Pending).
		Set("worker_id = NULL").
		Set("error_message = NULL").
		Set("next_retry_at = NULL").
		Set("updated_at = ?", now).
		Where("id = ?", id).
		Exec(ctx)
	return err
}

// ReclaimWorker transitions every Processing job owned by workerId back to
// Pending, clearing WorkerId, and returns the number of rows affected.
func (p *Puller) ReclaimWorker(ctx context.Context, workerId string) (int64, error) {
	res, err := p.db.NewUpdate().
		Model((*jobModel)(nil)).
		Set("status = ?", job.Pending).
		Set("worker_id = NULL").
		Set("updated_at = ?", time.Now().UTC()).
		Where("worker_id = ?", workerId).
		Where("status = ?", job.Processing).
		Exec(ctx)
	if err != nil {
		return 0, err
	}
	return getAffected(res), nil
}
