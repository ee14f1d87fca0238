// Package message defines the job-submission abstraction used by queuectl.
//
// Message represents a producer-supplied job: an identifier, the shell
// command to run, and an optional per-job retry budget and metadata. It is
// intentionally minimal and does not contain any delivery or state
// information (such as status, attempts, or worker ownership). Those
// concerns are handled by higher-level types (see job.Job) and the store
// package.
//
// A Message is designed to be:
//   - storage-agnostic
//   - lightweight
//   - safe to pass to user code
//
// Message does not enforce immutability. Callers should treat Message
// instances as immutable once they are submitted to a queue to avoid
// unintended data races or side effects.
package message
