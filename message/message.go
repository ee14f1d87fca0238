package message

import "encoding/json"

// reserved holds the job-submission field names that are not treated as
// metadata (spec.md §6, "Job submission format").
var reserved = map[string]struct{}{
	"id":          {},
	"command":     {},
	"max_retries": {},
}

// Message represents a producer-submitted job in queuectl.
//
// It contains only the user-facing fields: an identifier, the shell command
// to execute, an optional per-job retry budget, and optional metadata.
// Message does not track delivery state or retry progress; those concerns
// belong to job.Job.
//
// Id must be a non-empty, globally unique string supplied by the producer.
// MaxRetries of zero means "unset" — the caller resolves the effective
// budget from configuration.
//
// Metadata is optional and lazily initialized. It holds any fields present
// in the submission besides id, command and max_retries, stored verbatim.
type Message struct {
	Id         string
	Command    string
	MaxRetries uint32
	Metadata   map[string]any
}

// NewMessage creates a new Message with the given id and command.
func NewMessage(id, command string) *Message {
	return &Message{
		Id:      id,
		Command: command,
	}
}

// Get returns the metadata value associated with the given key.
//
// If the key does not exist or Metadata is nil, Get returns nil.
//
// The returned value has static type any. For type-safe access,
// use the generic Get function.
func (m *Message) Get(key string) any {
	ret, ok := m.Metadata[key]
	if !ok {
		return nil
	}
	return ret
}

// Set stores the given key-value pair in the message metadata.
//
// If Metadata is nil, it is initialized automatically.
func (m *Message) Set(key string, value any) {
	if m.Metadata == nil {
		m.Metadata = make(map[string]any)
	}
	m.Metadata[key] = value
}

// Get retrieves a metadata value associated with the given key and
// attempts to cast it to type T.
//
// If the key does not exist or the stored value is not of type T,
// Get returns the zero value of T and false.
func Get[T any](m *Message, key string) (T, bool) {
	raw, ok := m.Metadata[key]
	if !ok {
		var t T
		return t, false
	}
	ret, ok := raw.(T)
	if !ok {
		var t T
		return t, false
	}
	return ret, true
}

// Set stores the given key-value pair in the message metadata
// using a type-safe generic helper.
//
// If Metadata is nil, it is initialized automatically.
func Set[T any](m *Message, key string, value T) {
	if m.Metadata == nil {
		m.Metadata = make(map[string]any)
	}
	m.Metadata[key] = value
}

// ParseSubmission decodes a job-submission JSON object into a Message.
//
// Recognized top-level fields are "id" (string, required), "command"
// (string, required) and "max_retries" (positive integer, optional). Any
// other top-level field is stored verbatim as metadata.
func ParseSubmission(data []byte) (*Message, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	m := &Message{}
	if v, ok := raw["id"].(string); ok {
		m.Id = v
	}
	if v, ok := raw["command"].(string); ok {
		m.Command = v
	}
	if v, ok := raw["max_retries"].(float64); ok && v > 0 {
		m.MaxRetries = uint32(v)
	}
	for k, v := range raw {
		if _, skip := reserved[k]; skip {
			continue
		}
		m.Set(k, v)
	}
	return m, nil
}
