package queuectl

import "math"

// BackoffConfig parameterizes the retry/backoff policy applied after a
// failed execution attempt.
//
// Base and MaxDelaySeconds correspond directly to the backoff_base and
// backoff_max_delay configuration keys. MaxRetries is the default retry
// budget applied when a job submission does not specify its own.
type BackoffConfig struct {
	Base            uint64
	MaxDelaySeconds uint64
	MaxRetries      uint32
}

// Decision is the outcome of applying the retry policy after an execution
// failure: either the job is scheduled for another attempt, or it is
// routed to the dead-letter queue.
type Decision uint8

const (
	// Retry indicates the job should be scheduled for another attempt
	// after its computed backoff delay.
	Retry Decision = iota
	// DLQ indicates the job has exhausted its retry budget and should be
	// moved to the dead-letter queue.
	DLQ
)

func (d Decision) String() string {
	if d == DLQ {
		return "dlq"
	}
	return "retry"
}

// BackoffSeconds computes the delay, in seconds, before a job that has
// completed attempts failed attempts may be re-leased.
//
// It is a pure, total, integer-valued function: min(base^attempts,
// maxDelay). attempts counts completed attempts, so the delay after the
// first failure is base^1.
func (c BackoffConfig) BackoffSeconds(attempts uint32) uint64 {
	delay := math.Pow(float64(c.Base), float64(attempts))
	if delay > float64(c.MaxDelaySeconds) {
		return c.MaxDelaySeconds
	}
	return uint64(delay)
}

// DecideAfterFailure applies the retry/DLQ policy given the attempt count
// observed immediately after the current failure and the job's effective
// retry budget.
func DecideAfterFailure(attemptsAfter, maxRetries uint32) Decision {
	if attemptsAfter >= maxRetries {
		return DLQ
	}
	return Retry
}
