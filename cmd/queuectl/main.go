// Command queuectl is the operator CLI for the QueueCTL job queue: job
// submission, worker process management, and inspection commands.
//
// It is a thin I/O layer around the queuectl package: argument parsing,
// tabular output formatting, configuration file load/save, and PID-file
// bookkeeping. The coordination kernel lives in the root package and the
// store package.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
