package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"

	"github.com/nottarun7/queuectl"
	"github.com/nottarun7/queuectl/job"
)

// Observer implements queuectl.Observer using the SQLite-backed store.
//
// Observer provides read-only access to job state and does not participate
// in lease transitions.
type Observer struct {
	db *bun.DB
}

// NewObserver creates a new SQL-backed Observer.
func NewObserver(db *bun.DB) *Observer {
	return &Observer{db: db}
}

// ReadJob retrieves a job by its identifier.
//
// If no job with the given id exists, ReadJob returns (nil,
// queuectl.ErrNotFound).
func (o *Observer) ReadJob(ctx context.Context, id string) (*job.Job, error) {
	var ret jobModel
	err := o.db.NewSelect().
		Model(&ret).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, queuectl.ErrNotFound
		}
		return nil, err
	}
	return ret.toJob(), nil
}

// ListJobs returns up to limit jobs filtered by status, ordered by
// CreatedAt descending.
//
// If status is job.Unknown, no status filter is applied. If limit is zero
// or negative, no LIMIT clause is added.
func (o *Observer) ListJobs(ctx context.Context, status job.Status, limit int) ([]*job.Job, error) {
	var models []*jobModel
	query := o.db.NewSelect().Model(&models).Order("created_at DESC")
	if status != job.Unknown {
		query.Where("status = ?", status)
	}
	if limit > 0 {
		query.Limit(limit)
	}
	if err := query.Scan(ctx); err != nil {
		return nil, err
	}
	ret := make([]*job.Job, len(models))
	for i, m := range models {
		ret[i] = m.toJob()
	}
	return ret, nil
}

var allStatuses = []job.Status{job.Pending, job.Processing, job.Completed, job.Failed, job.Dlq}

// JobCounts returns the number of jobs in each status, with a zero-filled
// entry for every status that has no matching rows.
func (o *Observer) JobCounts(ctx context.Context) (map[job.Status]int64, error) {
	counts := make(map[job.Status]int64, len(allStatuses))
	for _, s := range allStatuses {
		counts[s] = 0
	}
	var rows []struct {
		Status job.Status `bun:"status"`
		Count  int64      `bun:"count"`
	}
	err := o.db.NewSelect().
		Model((*jobModel)(nil)).
		ColumnExpr("status, count(*) AS count").
		Group("status").
		Scan(ctx, &rows)
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	return counts, nil
}
