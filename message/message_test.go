package message_test

import (
	"testing"

	"github.com/nottarun7/queuectl/message"
)

func TestNewMessage(t *testing.T) {
	m := message.NewMessage("id-1", "echo hi")
	if m.Id != "id-1" || m.Command != "echo hi" {
		t.Fatalf("unexpected message: %+v", m)
	}
	if m.Get("missing") != nil {
		t.Fatal("expected nil for missing key")
	}
}

func TestSetAndGet(t *testing.T) {
	m := message.NewMessage("id-1", "echo hi")
	m.Set("retries_hint", 3)
	if v := m.Get("retries_hint"); v != 3 {
		t.Fatalf("expected 3, got %v", v)
	}

	message.Set(m, "tag", "nightly")
	tag, ok := message.Get[string](m, "tag")
	if !ok || tag != "nightly" {
		t.Fatalf("expected tag=nightly, got %q ok=%v", tag, ok)
	}

	if _, ok := message.Get[int](m, "tag"); ok {
		t.Fatal("expected type mismatch to fail")
	}
	if _, ok := message.Get[string](m, "absent"); ok {
		t.Fatal("expected missing key to fail")
	}
}

func TestParseSubmission(t *testing.T) {
	data := []byte(`{"id":"j1","command":"echo hi","max_retries":5,"priority":"high","tags":["a","b"]}`)
	m, err := message.ParseSubmission(data)
	if err != nil {
		t.Fatal(err)
	}
	if m.Id != "j1" || m.Command != "echo hi" || m.MaxRetries != 5 {
		t.Fatalf("unexpected parsed message: %+v", m)
	}
	if v := m.Get("priority"); v != "high" {
		t.Fatalf("expected priority metadata, got %v", v)
	}
	if _, ok := message.Get[string](m, "id"); ok {
		t.Fatal("reserved field id must not leak into metadata")
	}
	if _, ok := message.Get[string](m, "max_retries"); ok {
		t.Fatal("reserved field max_retries must not leak into metadata")
	}
}

func TestParseSubmissionOmitsZeroMaxRetries(t *testing.T) {
	data := []byte(`{"id":"j2","command":"echo hi"}`)
	m, err := message.ParseSubmission(data)
	if err != nil {
		t.Fatal(err)
	}
	if m.MaxRetries != 0 {
		t.Fatalf("expected unset max_retries to be 0, got %d", m.MaxRetries)
	}
}

func TestParseSubmissionInvalidJSON(t *testing.T) {
	if _, err := message.ParseSubmission([]byte("not json")); err == nil {
		t.Fatal("expected an error for invalid JSON")
	}
}
