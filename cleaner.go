package queuectl

import (
	"context"
	"time"

	"github.com/nottarun7/queuectl/job"
)

// Cleaner provides a mechanism for permanently removing terminal jobs from
// storage, used by the retention worker and the CLI's maintenance commands.
//
// Clean must only delete jobs in terminal states (Completed or Dlq).
// Implementations must reject attempts to delete Pending, Processing, or
// Failed jobs with ErrBadStatus.
type Cleaner interface {

	// Clean deletes jobs matching the given status and time condition.
	//
	// The before parameter restricts deletion to jobs whose UpdatedAt
	// timestamp is less than or equal to the provided time. If before is
	// nil, no time-based filtering is applied.
	//
	// Clean returns the number of deleted jobs.
	Clean(ctx context.Context, status job.Status, before *time.Time) (int64, error)
}
