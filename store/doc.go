// Package store provides a bun-based SQLite storage implementation for
// queuectl.
//
// This package implements the queuectl interfaces (JobCreator, Puller,
// Observer, Cleaner, WorkerRegistry) using github.com/uptrace/bun over
// modernc.org/sqlite.
//
// # Schema
//
// The backend expects "jobs" and "workers" tables corresponding to
// jobModel and workerModel. InitDB (or MustInitDB) creates:
//
//   - the jobs table (if not exists)
//   - the workers table (if not exists)
//   - index (status)
//   - index (next_retry_at)
//
// These indexes are required for efficient lease-scan and retry-scan
// queries. InitDB is idempotent and runs inside a transaction. It does not
// perform destructive migrations.
//
// # Concurrency Model
//
// LeaseOne is implemented using a single atomic UPDATE statement with a
// subquery, so that for any pair of concurrent callers at most one
// observes a given row transitioning to processing. Completion, failure,
// reset, and reclaim act unconditionally by id, matching the queue's
// design: the lease-then-execute-then-report sequence is not a single
// transaction.
//
// SQLite users are strongly encouraged to enable WAL mode and configure
// an appropriate busy_timeout; the store package assumes the caller has
// done so when constructing *bun.DB.
//
// # Database Lifecycle
//
// This package does not manage connection pooling or database lifecycle.
// The caller is responsible for creating and configuring *bun.DB and
// running InitDB before use.
package store
