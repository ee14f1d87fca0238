// Package job defines the stateful representation of a submitted command
// within the queuectl job lifecycle.
//
// A Job extends message.Message with delivery and scheduling metadata.
// It represents a job as stored and managed by the store and queue layers.
//
// Unlike message.Message, Job contains state-machine fields such as Status,
// Attempts, WorkerId, and scheduling timestamps. These fields are
// maintained exclusively by the store's Puller implementation.
//
// Job values are typically returned by lease operations and passed back to
// the store layer for state transitions (Complete, Fail, Reset, Reclaim).
//
// Job is not intended to be constructed manually by user code. Its fields
// reflect the authoritative state persisted by the store.
package job
