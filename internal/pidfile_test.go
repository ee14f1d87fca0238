package internal_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nottarun7/queuectl/internal"
)

func TestPidFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "workers.pid")

	pids, err := internal.ReadPidFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if pids != nil {
		t.Fatalf("expected nil for a missing pid file, got %v", pids)
	}

	if err := internal.WritePidFile(path, []int{101, 202, 303}); err != nil {
		t.Fatal(err)
	}
	pids, err = internal.ReadPidFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(pids) != 3 || pids[0] != 101 || pids[1] != 202 || pids[2] != 303 {
		t.Fatalf("unexpected pids: %v", pids)
	}

	if err := internal.ClearPidFile(path); err != nil {
		t.Fatal(err)
	}
	pids, err = internal.ReadPidFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if pids != nil {
		t.Fatalf("expected nil after clearing, got %v", pids)
	}
}

func TestClearPidFileMissingIsNotError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.pid")
	if err := internal.ClearPidFile(path); err != nil {
		t.Fatalf("expected no error clearing a missing pid file, got %v", err)
	}
}

func TestReadPidFileSkipsMalformedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "workers.pid")
	if err := internal.WritePidFile(path, []int{42}); err != nil {
		t.Fatal(err)
	}
	// append a malformed line directly; ReadPidFile must skip it rather
	// than fail the whole file.
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.WriteString("not-a-pid\n"); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	pids, err := internal.ReadPidFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(pids) != 1 || pids[0] != 42 {
		t.Fatalf("unexpected pids: %v", pids)
	}
}
