package queuectl

import (
	"context"

	"github.com/nottarun7/queuectl/job"
)

// JobCreator is the write-side entry point of the store.
type JobCreator interface {

	// CreateJob inserts a new job row in the Pending state.
	//
	// The provided context controls cancellation of the insert itself. It
	// does not affect the lifetime of the enqueued job.
	//
	// CreateJob must not mutate j after returning.
	//
	// If a job with j.Id already exists, CreateJob returns ErrDuplicateJob
	// and leaves the existing row untouched. This is not treated as an
	// I/O failure — the caller is expected to handle it as a normal
	// outcome via errors.Is.
	CreateJob(ctx context.Context, j *job.Job) error
}
