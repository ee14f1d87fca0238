package queuectl

import (
	"context"

	"github.com/nottarun7/queuectl/job"
)

// Observer provides read-only access to jobs stored in the queue.
//
// Observer does not modify job state and does not participate in the lease
// protocol. It is intended for diagnostic, monitoring, and CLI use.
type Observer interface {

	// ReadJob returns the job identified by id.
	//
	// If no job with the given id exists, ReadJob returns (nil,
	// ErrNotFound).
	ReadJob(ctx context.Context, id string) (*job.Job, error)

	// ListJobs returns up to limit jobs matching the provided status,
	// ordered by CreatedAt descending.
	//
	// If status is job.Unknown (zero value), implementations return jobs
	// in any state. If limit is zero or negative, implementations return
	// all matching jobs.
	ListJobs(ctx context.Context, status job.Status, limit int) ([]*job.Job, error)

	// JobCounts returns the number of jobs in each status, with a
	// zero-filled entry for every status that has no matching rows.
	JobCounts(ctx context.Context) (map[job.Status]int64, error)
}
