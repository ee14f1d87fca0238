package main

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/nottarun7/queuectl"
)

func newWorkerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "worker",
		Short: "Manage worker processes",
	}
	cmd.AddCommand(newWorkerStartCmd())
	cmd.AddCommand(newWorkerRunCmd())
	cmd.AddCommand(newWorkerStopCmd())
	return cmd
}

func newWorkerStartCmd() *cobra.Command {
	var count int
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Spawn a pool of detached worker processes",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			sup := queuectl.NewSupervisor(supervisorConfig(), a.store, a.workers, a.log)
			pids, err := sup.Start(cmd.Context(), count)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "started %d worker(s): %v\n", len(pids), pids)
			return nil
		},
	}
	cmd.Flags().IntVar(&count, "count", 1, "number of worker processes to start")
	return cmd
}

func newWorkerStopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Gracefully stop all supervised worker processes",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			sup := queuectl.NewSupervisor(supervisorConfig(), a.store, a.workers, a.log)
			return sup.Stop(cmd.Context())
		},
	}
}

func newWorkerRunCmd() *cobra.Command {
	var id string
	var exitWhenIdle bool
	var maxIdleSeconds int

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a single worker loop in the foreground",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if id == "" {
				id = fmt.Sprintf("worker-manual-%s", uuid.NewString())
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			wcfg := queuectl.WorkerConfig{
				PollInterval:      a.cfg.WorkerPollInterval(),
				HeartbeatInterval: a.cfg.WorkerHeartbeatInterval(),
				JobTimeout:        a.cfg.JobTimeout(),
				ExitOnIdle:        exitWhenIdle,
				MaxIdle:           time.Duration(maxIdleSeconds) * time.Second,
			}
			w := queuectl.NewWorker(id, a.queue, a.workers, queuectl.NewShellExecutor(), wcfg, a.log)
			return w.Run(ctx)
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "worker id (defaults to a generated id)")
	cmd.Flags().BoolVar(&exitWhenIdle, "exit-when-idle", false, "exit once idle for --max-idle with no pending work")
	cmd.Flags().IntVar(&maxIdleSeconds, "max-idle", 30, "idle seconds before exiting when --exit-when-idle is set")
	return cmd
}

func supervisorConfig() queuectl.SupervisorConfig {
	return queuectl.SupervisorConfig{
		PidFilePath:  defaultPidFilePath,
		GraceTimeout: 10 * time.Second,
	}
}
