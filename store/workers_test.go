package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/nottarun7/queuectl/store"
)

func TestRegisterWorkerIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	reg := store.NewWorkerRegistry(db)

	now := time.Now().UTC()
	if err := reg.RegisterWorker(ctx, "worker-1", 100, now); err != nil {
		t.Fatal(err)
	}
	if err := reg.RegisterWorker(ctx, "worker-1", 100, now.Add(time.Second)); err != nil {
		t.Fatal(err)
	}

	workers, err := reg.ListWorkers(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(workers) != 1 {
		t.Fatalf("expected exactly one worker row, got %d", len(workers))
	}
}

func TestHeartbeatAndDeregister(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	reg := store.NewWorkerRegistry(db)

	now := time.Now().UTC()
	if err := reg.RegisterWorker(ctx, "worker-1", 100, now); err != nil {
		t.Fatal(err)
	}
	later := now.Add(time.Minute)
	if err := reg.Heartbeat(ctx, "worker-1", later); err != nil {
		t.Fatal(err)
	}

	workers, err := reg.ListWorkers(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !workers[0].LastHeartbeat.Equal(later) {
		t.Fatalf("expected heartbeat updated to %v, got %v", later, workers[0].LastHeartbeat)
	}

	if err := reg.DeregisterWorker(ctx, "worker-1"); err != nil {
		t.Fatal(err)
	}
	workers, err = reg.ListWorkers(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(workers) != 0 {
		t.Fatal("expected no workers after deregister")
	}
}
