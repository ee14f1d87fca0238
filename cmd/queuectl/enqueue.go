package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nottarun7/queuectl/message"
)

func newEnqueueCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "enqueue <json>",
		Short: "Submit a new job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			msg, err := message.ParseSubmission([]byte(args[0]))
			if err != nil {
				return fmt.Errorf("invalid job json: %w", err)
			}
			if err := a.queue.Enqueue(cmd.Context(), msg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "enqueued %s\n", msg.Id)
			return nil
		},
	}
}
