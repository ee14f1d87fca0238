package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/nottarun7/queuectl"
	"github.com/nottarun7/queuectl/job"
	"github.com/nottarun7/queuectl/message"
	"github.com/nottarun7/queuectl/store"
)

func TestCreateJobAndRead(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	pusher := store.NewPusher(db)
	observer := store.NewObserver(db)

	j := &job.Job{Message: message.Message{Id: "a", Command: "true"}}
	if err := pusher.CreateJob(ctx, j); err != nil {
		t.Fatal(err)
	}

	got, err := observer.ReadJob(ctx, "a")
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != job.Pending {
		t.Fatalf("expected Pending, got %v", got.Status)
	}
	if got.Command != "true" {
		t.Fatalf("expected command true, got %s", got.Command)
	}
}

func TestCreateJobDuplicate(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	pusher := store.NewPusher(db)

	j := &job.Job{Message: message.Message{Id: "dup", Command: "true"}}
	if err := pusher.CreateJob(ctx, j); err != nil {
		t.Fatal(err)
	}
	err := pusher.CreateJob(ctx, j)
	if !errors.Is(err, queuectl.ErrDuplicateJob) {
		t.Fatalf("expected ErrDuplicateJob, got %v", err)
	}
}

func TestReadJobNotFound(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	observer := store.NewObserver(db)

	_, err := observer.ReadJob(ctx, "missing")
	if !errors.Is(err, queuectl.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
