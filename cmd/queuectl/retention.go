package main

import (
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/nottarun7/queuectl"
	"github.com/nottarun7/queuectl/job"
)

// newRetentionCmd exposes the supplemented retention feature (see
// DESIGN.md): queuectl's original_source distillation stubbed
// clear_completed_jobs; this runs a periodic sweep deleting terminal jobs
// older than --older-than, until interrupted.
func newRetentionCmd() *cobra.Command {
	var intervalSeconds int
	var olderThan time.Duration
	var state string

	cmd := &cobra.Command{
		Use:   "retention-sweep",
		Short: "Run a periodic sweep deleting old completed/dlq jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			status := job.Completed
			if state == "dlq" {
				status = job.Dlq
			}
			rw := queuectl.NewRetentionWorker(a.store, &queuectl.RetentionConfig{
				Status:   status,
				Interval: time.Duration(intervalSeconds) * time.Second,
				Before:   olderThan > 0,
				Delta:    olderThan,
			}, a.log)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			if err := rw.Start(ctx); err != nil {
				return err
			}
			<-ctx.Done()
			return rw.Stop(10 * time.Second)
		},
	}
	cmd.Flags().IntVar(&intervalSeconds, "interval", 3600, "seconds between sweeps")
	cmd.Flags().DurationVar(&olderThan, "older-than", 0, "only delete jobs last updated before this long ago (0 disables the age filter)")
	cmd.Flags().StringVar(&state, "state", "completed", "terminal state to sweep: completed or dlq")
	return cmd
}
