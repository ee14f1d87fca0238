package store_test

import (
	"context"
	"testing"

	"github.com/nottarun7/queuectl/job"
	"github.com/nottarun7/queuectl/message"
	"github.com/nottarun7/queuectl/store"
)

func TestListJobsFilterAndOrder(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	pusher := store.NewPusher(db)
	observer := store.NewObserver(db)

	for _, id := range []string{"a", "b", "c"} {
		j := &job.Job{Message: message.Message{Id: id, Command: "true"}}
		if err := pusher.CreateJob(ctx, j); err != nil {
			t.Fatal(err)
		}
	}

	all, err := observer.ListJobs(ctx, job.Unknown, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 jobs, got %d", len(all))
	}
	if all[0].Id != "c" || all[2].Id != "a" {
		t.Fatalf("expected newest first (c, b, a), got %s, %s, %s", all[0].Id, all[1].Id, all[2].Id)
	}

	pending, err := observer.ListJobs(ctx, job.Pending, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(pending) != 2 {
		t.Fatalf("expected limit of 2, got %d", len(pending))
	}
}

func TestJobCountsZeroFilled(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	observer := store.NewObserver(db)

	counts, err := observer.JobCounts(ctx)
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range []job.Status{job.Pending, job.Processing, job.Completed, job.Failed, job.Dlq} {
		if _, ok := counts[s]; !ok {
			t.Fatalf("expected zero-filled entry for %v", s)
		}
	}
}
