package store

import (
	"context"
	"strings"

	"github.com/uptrace/bun"

	"github.com/nottarun7/queuectl"
	"github.com/nottarun7/queuectl/job"
)

// Pusher implements queuectl.JobCreator using the SQLite-backed store.
//
// Pusher inserts new jobs into storage in the Pending state and does not
// perform update-on-conflict: a duplicate id is reported, not merged.
type Pusher struct {
	db *bun.DB
}

// NewPusher creates a new SQL-backed Pusher.
//
// The provided *bun.DB must be properly configured and connected. Schema
// initialization must be completed before pushing jobs.
func NewPusher(db *bun.DB) *Pusher {
	return &Pusher{db: db}
}

// CreateJob inserts a new job row. If a row with j.Id already exists,
// CreateJob returns queuectl.ErrDuplicateJob and leaves the existing row
// untouched.
func (p *Pusher) CreateJob(ctx context.Context, j *job.Job) error {
	model := fromJob(j)
	_, err := p.db.NewInsert().
		Model(model).
		Exec(ctx)
	if err == nil {
		return nil
	}
	if isUniqueViolation(err) {
		return queuectl.ErrDuplicateJob
	}
	return err
}

// isUniqueViolation reports whether err represents a primary-key conflict
// on the jobs table. modernc.org/sqlite surfaces constraint violations as
// a plain error whose text includes "UNIQUE constraint failed"; there is
// no portable typed error across bun dialects, so text matching is the
// pragmatic choice here (mirrored by bun's own dialect-agnostic examples).
func isUniqueViolation(err error) bool {
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
