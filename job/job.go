package job

import (
	"time"

	"github.com/nottarun7/queuectl/message"
)

// Job represents a job record managed by the queue store.
//
// It embeds message.Message and augments it with delivery state and
// scheduling information, matching the jobs table described in SPEC_FULL.md.
//
// CreatedAt records when the job was first enqueued and never changes.
// UpdatedAt records the last state transition.
// StartedAt is set on the first Pending -> Processing transition and never
// cleared afterward, even across retries.
// CompletedAt is set on the Processing -> Completed transition.
// NextRetryAt is set while the job is Failed and cleared on every other
// transition.
//
// Attempts counts completed execution attempts. Automatic retries stop once
// it reaches MaxRetries; a manual retry does not reset it.
// WorkerId identifies the owning worker while Processing; nil otherwise.
// ErrorMessage holds the most recent failure diagnostic; cleared on
// Completed and on manual retry.
//
// Job instances are snapshots of store state. Mutating fields directly does
// not change the underlying queue state; transitions must be performed
// through the store's Puller interface.
type Job struct {
	message.Message

	CreatedAt time.Time
	UpdatedAt time.Time

	Status Status

	Attempts     uint32
	StartedAt    *time.Time
	CompletedAt  *time.Time
	NextRetryAt  *time.Time
	ErrorMessage *string
	WorkerId     *string
}

// EffectiveMaxRetries returns the job's retry budget, falling back to
// defaultMaxRetries when the submission did not specify one.
func (j *Job) EffectiveMaxRetries(defaultMaxRetries uint32) uint32 {
	if j.MaxRetries > 0 {
		return j.MaxRetries
	}
	return defaultMaxRetries
}
