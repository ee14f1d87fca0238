// Package queuectl implements the coordination kernel of QueueCTL: a
// persistent, durable, shell-command job queue with at-most-once successful
// execution, bounded retries with exponential backoff, and a dead-letter
// queue (DLQ) for jobs that exhaust their retry budget.
//
// # Overview
//
// QueueCTL is a local, single-node system: producers submit jobs by
// identifier and shell command; a pool of worker processes consumes them
// concurrently; all state is persisted so that crashes, restarts, and
// operator actions leave the system in a recoverable, inspectable
// condition.
//
// The package separates submission data (message.Message) from delivery
// state (job.Job), and defines four storage contracts — JobCreator, Puller,
// Observer, Cleaner — implemented by the store package on top of SQLite.
//
// # State Machine
//
// Jobs follow this lifecycle:
//
//	(none)     -> Pending
//	Pending    -> Processing          (lease)
//	Processing -> Completed           (exit 0, terminal)
//	Processing -> Failed              (exit != 0, attempts remain)
//	Processing -> Dlq                 (exit != 0, budget exhausted)
//	Failed     -> Processing          (now >= next_retry_at, lease)
//	{Failed, Dlq} -> Pending          (manual retry)
//	Processing -> Pending             (worker death / supervisor reclaim)
//
// Terminal states (Completed, Dlq) are not retried automatically; Dlq may
// be returned to Pending by an operator-initiated manual retry.
//
// # Retry Policy
//
// Retry behavior is controlled by BackoffConfig. When execution exits
// non-zero, DecideAfterFailure chooses Retry or DLQ based on the job's
// attempt count and retry budget; on Retry, BackoffSeconds computes the
// delay before the job becomes eligible for lease again.
//
// # Queue
//
// Queue is the transactional façade combining store operations with
// policy decisions: Enqueue, Lease, Complete, Fail, Retry, Stats, List,
// DlqList. It owns the state machine; Worker and Supervisor reclaim leases
// and RetentionWorker deletes terminal jobs through the store directly.
//
// # Worker and Supervisor
//
// Worker runs a single-threaded loop bound to one worker id: lease, execute
// via an Executor, report outcome, heartbeat, and on exit reclaim its own
// leases. Supervisor manages a pool of worker processes: spawning,
// tracking PIDs, graceful-then-hard shutdown, and crash recovery via
// reclaim.
//
// # Concurrency Model
//
// All concurrency lives at the OS-process level: each Worker is an
// independent process with no shared in-memory state. Coordination is
// entirely through the store, which must be safe for concurrent
// multi-process access.
package queuectl
