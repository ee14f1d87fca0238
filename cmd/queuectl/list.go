package main

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/nottarun7/queuectl/job"
)

const truncateAt = 60

func newListCmd() *cobra.Command {
	var state string
	var limit int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List jobs, optionally filtered by state",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			status := job.Unknown
			if state != "" {
				status, err = job.ParseStatus(state)
				if err != nil {
					return fmt.Errorf("unknown state %q", state)
				}
			}
			jobs, err := a.queue.List(cmd.Context(), status, limit)
			if err != nil {
				return err
			}
			renderJobTable(jobs)
			return nil
		},
	}
	cmd.Flags().StringVar(&state, "state", "", "filter by state (pending, processing, completed, failed, dlq)")
	cmd.Flags().IntVar(&limit, "limit", 50, "maximum number of jobs to list")
	return cmd
}

func newDlqCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dlq",
		Short: "Inspect and retry dead-lettered jobs",
	}
	cmd.AddCommand(newDlqListCmd())
	cmd.AddCommand(newDlqRetryCmd())
	return cmd
}

func newDlqListCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List dead-lettered jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			jobs, err := a.queue.DlqList(cmd.Context(), limit)
			if err != nil {
				return err
			}
			renderJobTable(jobs)
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 50, "maximum number of jobs to list")
	return cmd
}

func newDlqRetryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "retry <id>",
		Short: "Return a dead-lettered or failed job to pending",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := a.queue.Retry(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "retried %s\n", args[0])
			return nil
		},
	}
}

func renderJobTable(jobs []*job.Job) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"id", "state", "attempts", "command", "error"})
	for _, j := range jobs {
		errMsg := ""
		if j.ErrorMessage != nil {
			errMsg = truncateString(*j.ErrorMessage, truncateAt)
		}
		table.Append([]string{
			j.Id,
			j.Status.String(),
			fmt.Sprintf("%d", j.Attempts),
			truncateString(j.Command, truncateAt),
			errMsg,
		})
	}
	table.Render()
}

func truncateString(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
