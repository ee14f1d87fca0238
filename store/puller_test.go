package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/nottarun7/queuectl/job"
	"github.com/nottarun7/queuectl/message"
	"github.com/nottarun7/queuectl/store"
)

func mustCreate(t *testing.T, pusher *store.Pusher, id, command string) {
	t.Helper()
	j := &job.Job{Message: message.Message{Id: id, Command: command}}
	if err := pusher.CreateJob(context.Background(), j); err != nil {
		t.Fatal(err)
	}
}

func TestLeaseOneAndComplete(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	pusher := store.NewPusher(db)
	puller := store.NewPuller(db)

	mustCreate(t, pusher, "a", "true")

	now := time.Now().UTC()
	leased, err := puller.LeaseOne(ctx, "worker-1", now)
	if err != nil {
		t.Fatal(err)
	}
	if leased == nil {
		t.Fatal("expected a leased job")
	}
	if leased.Status != job.Processing {
		t.Fatalf("expected Processing, got %v", leased.Status)
	}
	if leased.WorkerId == nil || *leased.WorkerId != "worker-1" {
		t.Fatalf("expected worker-1 ownership, got %v", leased.WorkerId)
	}

	// No second job is eligible while the first is owned.
	again, err := puller.LeaseOne(ctx, "worker-2", now)
	if err != nil {
		t.Fatal(err)
	}
	if again != nil {
		t.Fatalf("expected no eligible job, got %v", again)
	}

	if err := puller.MarkCompleted(ctx, leased.Id, time.Now().UTC()); err != nil {
		t.Fatal(err)
	}

	observer := store.NewObserver(db)
	done, err := observer.ReadJob(ctx, leased.Id)
	if err != nil {
		t.Fatal(err)
	}
	if done.Status != job.Completed {
		t.Fatalf("expected Completed, got %v", done.Status)
	}
	if done.Attempts != 1 {
		t.Fatalf("expected the completing attempt to be counted: attempts=1, got %d", done.Attempts)
	}
}

func TestLeaseOneUniqueness(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	pusher := store.NewPusher(db)
	puller := store.NewPuller(db)

	mustCreate(t, pusher, "race", "true")

	now := time.Now().UTC()
	var leased int
	for i := 0; i < 3; i++ {
		j, err := puller.LeaseOne(ctx, "worker", now)
		if err != nil {
			t.Fatal(err)
		}
		if j != nil {
			leased++
		}
	}
	if leased != 1 {
		t.Fatalf("expected exactly one successful lease, got %d", leased)
	}
}

func TestMarkFailedForRetryThenReLease(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	pusher := store.NewPusher(db)
	puller := store.NewPuller(db)

	mustCreate(t, pusher, "retry-me", "false")

	now := time.Now().UTC()
	leased, err := puller.LeaseOne(ctx, "worker-1", now)
	if err != nil {
		t.Fatal(err)
	}

	nextRetryAt := now.Add(-time.Second) // already due
	if err := puller.MarkFailedForRetry(ctx, leased.Id, nextRetryAt, "boom", now); err != nil {
		t.Fatal(err)
	}

	relea, err := puller.LeaseOne(ctx, "worker-2", time.Now().UTC())
	if err != nil {
		t.Fatal(err)
	}
	if relea == nil {
		t.Fatal("expected the failed job to be re-leasable once next_retry_at elapsed")
	}
	if relea.Attempts != 1 {
		t.Fatalf("expected attempts=1, got %d", relea.Attempts)
	}
}

func TestMarkDlqIncrementsAttempts(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	pusher := store.NewPusher(db)
	puller := store.NewPuller(db)
	observer := store.NewObserver(db)

	mustCreate(t, pusher, "dlq-me", "false")
	now := time.Now().UTC()
	leased, err := puller.LeaseOne(ctx, "worker-1", now)
	if err != nil {
		t.Fatal(err)
	}

	if err := puller.MarkDlq(ctx, leased.Id, "exhausted", now); err != nil {
		t.Fatal(err)
	}

	got, err := observer.ReadJob(ctx, leased.Id)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != job.Dlq {
		t.Fatalf("expected Dlq, got %v", got.Status)
	}
	if got.Attempts != 1 {
		t.Fatalf("MarkDlq must count the budget-exhausting attempt: expected attempts=1, got %d", got.Attempts)
	}
}

func TestResetJob(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	pusher := store.NewPusher(db)
	puller := store.NewPuller(db)
	observer := store.NewObserver(db)

	mustCreate(t, pusher, "reset-me", "false")
	now := time.Now().UTC()
	leased, _ := puller.LeaseOne(ctx, "worker-1", now)
	_ = puller.MarkDlq(ctx, leased.Id, "bad", now)

	if err := puller.ResetJob(ctx, leased.Id, time.Now().UTC()); err != nil {
		t.Fatal(err)
	}

	got, err := observer.ReadJob(ctx, leased.Id)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != job.Pending {
		t.Fatalf("expected Pending after reset, got %v", got.Status)
	}
	if got.WorkerId != nil || got.ErrorMessage != nil {
		t.Fatal("expected worker_id and error_message cleared after reset")
	}
}

func TestReclaimWorker(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	pusher := store.NewPusher(db)
	puller := store.NewPuller(db)
	observer := store.NewObserver(db)

	mustCreate(t, pusher, "owned-a", "true")
	mustCreate(t, pusher, "owned-b", "true")
	now := time.Now().UTC()
	_, _ = puller.LeaseOne(ctx, "dead-worker", now)
	_, _ = puller.LeaseOne(ctx, "dead-worker", now)

	n, err := puller.ReclaimWorker(ctx, "dead-worker")
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Fatalf("expected 2 reclaimed rows, got %d", n)
	}

	a, _ := observer.ReadJob(ctx, "owned-a")
	if a.Status != job.Pending || a.WorkerId != nil {
		t.Fatalf("expected owned-a reclaimed to Pending, got %v worker=%v", a.Status, a.WorkerId)
	}
}
