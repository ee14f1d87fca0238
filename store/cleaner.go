package store

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	"github.com/nottarun7/queuectl"
	"github.com/nottarun7/queuectl/job"
)

// Cleaner implements queuectl.Cleaner using the SQLite-backed store.
//
// Cleaner permanently removes terminal jobs from storage and does not
// participate in lease transitions.
type Cleaner struct {
	db *bun.DB
}

// NewCleaner creates a new SQL-backed Cleaner.
func NewCleaner(db *bun.DB) *Cleaner {
	return &Cleaner{db: db}
}

// Clean deletes jobs matching the provided status and time filter.
//
// Only terminal states are allowed: job.Completed or job.Dlq. If status is
// job.Unknown (zero value), both are eligible for deletion. Any other
// status returns queuectl.ErrBadStatus.
//
// If before is non-nil, only jobs with updated_at <= *before are deleted.
func (c *Cleaner) Clean(ctx context.Context, status job.Status, before *time.Time) (int64, error) {
	if status != job.Unknown && status != job.Completed && status != job.Dlq {
		return 0, queuectl.ErrBadStatus
	}
	query := c.db.NewDelete().Model((*jobModel)(nil))
	if status != job.Unknown {
		query.Where("status = ?", status)
	} else {
		query.Where("status IN (?, ?)", job.Completed, job.Dlq)
	}
	if before != nil {
		query.Where("updated_at <= ?", before)
	}
	res, err := query.Exec(ctx)
	if err != nil {
		return 0, err
	}
	return getAffected(res), nil
}
