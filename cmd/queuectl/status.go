package main

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/nottarun7/queuectl/job"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show job counts by state and registered worker liveness",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			counts, workers, err := a.queue.Stats(cmd.Context())
			if err != nil {
				return err
			}

			jobTable := tablewriter.NewWriter(os.Stdout)
			jobTable.SetHeader([]string{"state", "count"})
			for _, s := range []job.Status{job.Pending, job.Processing, job.Completed, job.Failed, job.Dlq} {
				jobTable.Append([]string{s.String(), fmt.Sprintf("%d", counts[s])})
			}
			jobTable.Render()

			workerTable := tablewriter.NewWriter(os.Stdout)
			workerTable.SetHeader([]string{"worker_id", "pid", "started_at", "last_heartbeat"})
			for _, w := range workers {
				workerTable.Append([]string{
					w.WorkerId,
					fmt.Sprintf("%d", w.Pid),
					w.StartedAt.Format("2006-01-02T15:04:05Z"),
					w.LastHeartbeat.Format("2006-01-02T15:04:05Z"),
				})
			}
			workerTable.Render()
			return nil
		},
	}
}
