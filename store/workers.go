package store

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	"github.com/nottarun7/queuectl"
)

// WorkerRegistry implements queuectl.WorkerRegistry using the SQLite-backed
// store. It has no direct equivalent in the teacher library; it is
// grounded on original_source/queuectl/storage.py's register_worker /
// update_worker_heartbeat / deregister_worker / list_workers methods.
type WorkerRegistry struct {
	db *bun.DB
}

// NewWorkerRegistry creates a new SQL-backed WorkerRegistry.
func NewWorkerRegistry(db *bun.DB) *WorkerRegistry {
	return &WorkerRegistry{db: db}
}

// RegisterWorker idempotently inserts or refreshes a worker row. Calling
// it twice with the same id leaves exactly one worker row.
func (r *WorkerRegistry) RegisterWorker(ctx context.Context, workerId string, pid int, now time.Time) error {
	model := &workerModel{
		WorkerId:      workerId,
		Pid:           pid,
		StartedAt:     now,
		LastHeartbeat: now,
		Status:        "active",
	}
	_, err := r.db.NewInsert().
		Model(model).
		On("CONFLICT (worker_id) DO UPDATE").
		Set("pid = EXCLUDED.pid").
		Set("started_at = EXCLUDED.started_at").
		Set("last_heartbeat = EXCLUDED.last_heartbeat").
		Set("status = EXCLUDED.status").
		Exec(ctx)
	return err
}

// Heartbeat updates last_heartbeat for workerId.
func (r *WorkerRegistry) Heartbeat(ctx context.Context, workerId string, now time.Time) error {
	_, err := r.db.NewUpdate().
		Model((*workerModel)(nil)).
		Set("last_heartbeat = ?", now).
		Where("worker_id = ?", workerId).
		Exec(ctx)
	return err
}

// DeregisterWorker removes the worker row for workerId.
func (r *WorkerRegistry) DeregisterWorker(ctx context.Context, workerId string) error {
	_, err := r.db.NewDelete().
		Model((*workerModel)(nil)).
		Where("worker_id = ?", workerId).
		Exec(ctx)
	return err
}

// ListWorkers returns every registered worker row.
func (r *WorkerRegistry) ListWorkers(ctx context.Context) ([]queuectl.WorkerLiveness, error) {
	var models []*workerModel
	if err := r.db.NewSelect().Model(&models).Order("worker_id ASC").Scan(ctx); err != nil {
		return nil, err
	}
	ret := make([]queuectl.WorkerLiveness, len(models))
	for i, m := range models {
		ret[i] = queuectl.WorkerLiveness{
			WorkerId:      m.WorkerId,
			Pid:           m.Pid,
			StartedAt:     m.StartedAt,
			LastHeartbeat: m.LastHeartbeat,
		}
	}
	return ret, nil
}
