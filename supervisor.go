package queuectl

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/nottarun7/queuectl/internal"
)

const (
	minWorkerCount = 1
	maxWorkerCount = 100
)

// SupervisorConfig parameterizes Supervisor process management.
//
// PidFilePath is the side file persisting child PIDs between start and
// stop. GraceTimeout is how long Stop waits after SIGTERM before sending
// SIGKILL to a still-live child.
type SupervisorConfig struct {
	PidFilePath  string
	GraceTimeout time.Duration
}

// Supervisor manages a pool of detached worker processes: spawning,
// tracking PIDs, graceful-then-hard shutdown, and crash recovery via
// reclaim. It never writes job rows directly; all job state changes flow
// through Queue/Store.
type Supervisor struct {
	cfg     SupervisorConfig
	store   Store
	workers WorkerRegistry
	log     *slog.Logger

	// selfExecArgs builds the command-line arguments used to re-exec this
	// binary as a single foreground worker with the given id. Defaulted
	// by NewSupervisor to ["worker", "run", "--id", id]; overridable for
	// testing.
	selfExecArgs func(id string) []string
}

// NewSupervisor creates a Supervisor.
func NewSupervisor(cfg SupervisorConfig, store Store, workers WorkerRegistry, log *slog.Logger) *Supervisor {
	return &Supervisor{
		cfg:     cfg,
		store:   store,
		workers: workers,
		log:     log,
		selfExecArgs: func(id string) []string {
			return []string{"worker", "run", "--id", id}
		},
	}
}

// Start spawns count detached worker processes, each with a unique
// generated id, and persists their PIDs to the configured pid file.
//
// count must satisfy 1 <= count <= 100. Start does not wait on the
// children; they are daemons.
func (s *Supervisor) Start(ctx context.Context, count int) ([]int, error) {
	if count < minWorkerCount || count > maxWorkerCount {
		return nil, fmt.Errorf("%w: worker count must be between %d and %d", ErrValidation, minWorkerCount, maxWorkerCount)
	}
	self, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("resolve executable: %w", err)
	}

	existing, err := internal.ReadPidFile(s.cfg.PidFilePath)
	if err != nil {
		return nil, fmt.Errorf("read pid file: %w", err)
	}

	pids := make([]int, 0, count)
	for i := 0; i < count; i++ {
		id := fmt.Sprintf("worker-%d-%s", i+1, uuid.NewString())
		cmd := exec.Command(self, s.selfExecArgs(id)...)
		cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		if err := cmd.Start(); err != nil {
			return pids, fmt.Errorf("spawn worker %s: %w", id, err)
		}
		s.log.Info("spawned worker", "worker_id", id, "pid", cmd.Process.Pid)
		pids = append(pids, cmd.Process.Pid)
	}

	if err := internal.WritePidFile(s.cfg.PidFilePath, append(existing, pids...)); err != nil {
		return pids, fmt.Errorf("write pid file: %w", err)
	}
	return pids, nil
}

// Stop reads the pid file, sends a graceful termination signal to every
// still-live PID, waits up to GraceTimeout, then sends a hard kill to any
// survivors. After the sweep it reclaims leases for any worker whose PID
// is no longer live and clears the pid file.
//
// The invariant after Stop returns: no live worker owns job rows and no
// live PID remains registered.
func (s *Supervisor) Stop(ctx context.Context) error {
	pids, err := internal.ReadPidFile(s.cfg.PidFilePath)
	if err != nil {
		return fmt.Errorf("read pid file: %w", err)
	}

	// The pool runs on a context only pool.Stop cancels, and Stop waits for
	// every pushed PID to be handled before stopping it, so no queued PID
	// is dropped.
	var handled sync.WaitGroup
	handled.Add(len(pids))
	pool := internal.NewWorkerPool[int](len(pids), len(pids), s.log)
	pool.Start(context.WithoutCancel(ctx), func(ctx context.Context, pid int) {
		defer handled.Done()
		s.terminate(pid)
	})
	for _, pid := range pids {
		pool.Push(pid)
	}
	handled.Wait()
	<-pool.Stop()

	if err := s.reclaimDeadWorkers(ctx, pids); err != nil {
		s.log.Error("reclaim sweep failed", "err", err)
	}

	return internal.ClearPidFile(s.cfg.PidFilePath)
}

func (s *Supervisor) terminate(pid int) {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return
	}
	if err := proc.Signal(syscall.SIGTERM); err != nil {
		return
	}
	deadline := time.After(s.cfg.GraceTimeout)
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-deadline:
			_ = proc.Signal(syscall.SIGKILL)
			return
		case <-ticker.C:
			if !processAlive(pid) {
				return
			}
		}
	}
}

func processAlive(pid int) bool {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	return proc.Signal(syscall.Signal(0)) == nil
}

// reclaimDeadWorkers looks up the worker table for any worker whose pid
// appears in the supplied list and is no longer live, and reclaims its
// leases. A worker that shut down cleanly already reclaimed itself; this
// is a safety net for the supervisor-hard-kill case.
func (s *Supervisor) reclaimDeadWorkers(ctx context.Context, pids []int) error {
	recorded, err := s.workers.ListWorkers(ctx)
	if err != nil {
		return err
	}
	dead := make(map[int]bool, len(pids))
	for _, pid := range pids {
		if !processAlive(pid) {
			dead[pid] = true
		}
	}
	for _, w := range recorded {
		if !dead[w.Pid] {
			continue
		}
		if _, err := s.store.ReclaimWorker(ctx, w.WorkerId); err != nil {
			s.log.Error("reclaim failed", "worker_id", w.WorkerId, "err", err)
			continue
		}
		if err := s.workers.DeregisterWorker(ctx, w.WorkerId); err != nil {
			s.log.Error("deregister failed", "worker_id", w.WorkerId, "err", err)
		}
	}
	return nil
}

// Status joins the pid file, a live-process probe, and the worker table.
type WorkerStatus struct {
	Pid      int
	Alive    bool
	WorkerId string
	Liveness *WorkerLiveness
}

// Status reports the combined view of persisted PIDs, process liveness,
// and registered worker rows.
func (s *Supervisor) Status(ctx context.Context) ([]WorkerStatus, error) {
	pids, err := internal.ReadPidFile(s.cfg.PidFilePath)
	if err != nil {
		return nil, fmt.Errorf("read pid file: %w", err)
	}
	recorded, err := s.workers.ListWorkers(ctx)
	if err != nil {
		return nil, err
	}
	byPid := make(map[int]WorkerLiveness, len(recorded))
	for _, w := range recorded {
		byPid[w.Pid] = w
	}

	statuses := make([]WorkerStatus, 0, len(pids))
	for _, pid := range pids {
		st := WorkerStatus{Pid: pid, Alive: processAlive(pid)}
		if w, ok := byPid[pid]; ok {
			wc := w
			st.WorkerId = w.WorkerId
			st.Liveness = &wc
		}
		statuses = append(statuses, st)
	}
	return statuses, nil
}
