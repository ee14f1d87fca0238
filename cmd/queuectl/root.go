package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "queuectl",
		Short: "A durable shell-command job queue with retries and a dead-letter queue",
	}

	root.AddCommand(newEnqueueCmd())
	root.AddCommand(newWorkerCmd())
	root.AddCommand(newStatusCmd())
	root.AddCommand(newListCmd())
	root.AddCommand(newDlqCmd())
	root.AddCommand(newConfigCmd())
	root.AddCommand(newRetentionCmd())

	return root
}
