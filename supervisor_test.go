package queuectl_test

import (
	"context"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/nottarun7/queuectl"
	"github.com/nottarun7/queuectl/internal"
)

// TestSupervisorStopTerminatesAndReclaims spawns a real long-lived process,
// registers it in the worker table as if a worker process with that pid had
// started, then asks Supervisor.Stop to tear it down and verifies both the
// process death and the reclaim sweep.
func TestSupervisorStopTerminatesAndReclaims(t *testing.T) {
	_, wr, st := newTestStack(t)
	ctx := context.Background()

	cmd := exec.Command("sleep", "30")
	if err := cmd.Start(); err != nil {
		t.Skipf("cannot spawn helper process: %v", err)
	}
	pid := cmd.Process.Pid
	t.Cleanup(func() { _ = cmd.Process.Kill() })
	// Reap the child as soon as it exits: an unreaped zombie still answers
	// the signal-0 liveness probe and would look alive to Stop.
	waitErr := make(chan error, 1)
	go func() { waitErr <- cmd.Wait() }()

	if err := wr.RegisterWorker(ctx, "sup-worker", pid, time.Now()); err != nil {
		t.Fatal(err)
	}

	pidFile := filepath.Join(t.TempDir(), "workers.pid")
	if err := internal.WritePidFile(pidFile, []int{pid}); err != nil {
		t.Fatal(err)
	}

	sup := queuectl.NewSupervisor(queuectl.SupervisorConfig{
		PidFilePath:  pidFile,
		GraceTimeout: 2 * time.Second,
	}, st, wr, discardLogger())

	stopCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sup.Stop(stopCtx); err != nil {
		t.Fatal(err)
	}

	err := <-waitErr
	if err == nil {
		t.Fatal("expected the spawned process to have been terminated")
	}

	workers, err := wr.ListWorkers(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(workers) != 0 {
		t.Fatalf("expected reclaim sweep to deregister the dead worker, got %+v", workers)
	}
}

func TestSupervisorStartRejectsInvalidCount(t *testing.T) {
	_, wr, st := newTestStack(t)
	sup := queuectl.NewSupervisor(queuectl.SupervisorConfig{
		PidFilePath:  filepath.Join(t.TempDir(), "workers.pid"),
		GraceTimeout: time.Second,
	}, st, wr, discardLogger())

	if _, err := sup.Start(context.Background(), 0); err == nil {
		t.Fatal("expected an error for count below minimum")
	}
	if _, err := sup.Start(context.Background(), 1000); err == nil {
		t.Fatal("expected an error for count above maximum")
	}
}
