package job

import "fmt"

// Status represents the current lifecycle state of a Job.
//
// The state machine is:
//
//	(none)     -> Pending
//	Pending    -> Processing           (lease)
//	Processing -> Completed            (exit 0, terminal)
//	Processing -> Failed               (exit != 0, attempts remain)
//	Processing -> Dlq                  (exit != 0, budget exhausted)
//	Failed     -> Processing           (now >= next_retry_at, lease)
//	{Failed, Dlq} -> Pending           (manual retry)
//	Processing -> Pending              (worker death / supervisor reclaim)
//
// Unknown is reserved as a zero value and may be used to indicate
// an unspecified or invalid state in filtering contexts.
type Status uint8

const (
	// Unknown represents an unspecified or invalid job state.
	// It is the zero value of Status.
	Unknown Status = iota

	// Pending indicates that the job is eligible for lease.
	Pending

	// Processing indicates that the job has been leased and is currently
	// owned by a worker. While in this state, WorkerId is non-empty.
	Processing

	// Completed indicates successful execution (exit code 0). Terminal.
	Completed

	// Failed indicates a non-zero exit with retry budget remaining.
	// NextRetryAt is set to the earliest time the job may be re-leased.
	Failed

	// Dlq indicates the job exhausted its retry budget. Terminal, but
	// may be returned to Pending by a manual retry.
	Dlq
)

func statusToString(status Status) string {
	switch status {
	case Pending:
		return "pending"
	case Processing:
		return "processing"
	case Completed:
		return "completed"
	case Failed:
		return "failed"
	case Dlq:
		return "dlq"
	default:
		return "unknown"
	}
}

func statusFromString(status string) (Status, error) {
	switch status {
	case "pending":
		return Pending, nil
	case "processing":
		return Processing, nil
	case "completed":
		return Completed, nil
	case "failed":
		return Failed, nil
	case "dlq":
		return Dlq, nil
	case "unknown":
		return Unknown, nil
	default:
		return 0, fmt.Errorf("unknown status: %s", status)
	}
}

// ParseStatus converts a string representation of a status into a Status value.
//
// Recognized values are: "pending", "processing", "completed", "failed",
// "dlq" and "unknown". An error is returned for unrecognized strings.
func ParseStatus(s string) (Status, error) {
	return statusFromString(s)
}

// IsTerminal reports whether the state permits no further automatic
// transitions without an operator-initiated manual retry.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Dlq
}

// MarshalText implements encoding.TextMarshaler.
//
// Status values are encoded using their canonical string names.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(statusToString(s)), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
//
// The textual form must match one of the canonical status names.
func (s *Status) UnmarshalText(text []byte) error {
	status, err := statusFromString(string(text))
	if err != nil {
		return err
	}
	*s = status
	return nil
}

// String returns the canonical string representation of the status.
func (s Status) String() string {
	return statusToString(s)
}
