package queuectl_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nottarun7/queuectl"
	"github.com/nottarun7/queuectl/job"
)

type mockCleaner struct {
	calls    int32
	lastStat job.Status
}

func (m *mockCleaner) Clean(ctx context.Context, status job.Status, before *time.Time) (int64, error) {
	atomic.AddInt32(&m.calls, 1)
	m.lastStat = status
	return 1, nil
}

func TestRetentionWorkerRunsPeriodically(t *testing.T) {
	cleaner := &mockCleaner{}
	rw := queuectl.NewRetentionWorker(cleaner, &queuectl.RetentionConfig{
		Status:   job.Completed,
		Interval: 10 * time.Millisecond,
	}, discardLogger())

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()

	if err := rw.Start(ctx); err != nil {
		t.Fatal(err)
	}
	<-ctx.Done()
	if err := rw.Stop(time.Second); err != nil {
		t.Fatal(err)
	}

	if atomic.LoadInt32(&cleaner.calls) < 2 {
		t.Fatalf("expected at least 2 sweeps, got %d", cleaner.calls)
	}
	if cleaner.lastStat != job.Completed {
		t.Fatalf("expected sweeps targeting Completed, got %s", cleaner.lastStat)
	}
}

func TestRetentionWorkerDoubleStart(t *testing.T) {
	cleaner := &mockCleaner{}
	rw := queuectl.NewRetentionWorker(cleaner, &queuectl.RetentionConfig{
		Status:   job.Dlq,
		Interval: time.Hour,
	}, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := rw.Start(ctx); err != nil {
		t.Fatal(err)
	}
	if err := rw.Start(ctx); err != queuectl.ErrDoubleStarted {
		t.Fatalf("expected ErrDoubleStarted, got %v", err)
	}
	if err := rw.Stop(time.Second); err != nil {
		t.Fatal(err)
	}
}
