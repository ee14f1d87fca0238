package queuectl

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"
)

// Result is the outcome of running a single shell command.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Executor runs a shell command with a bounded timeout. It is the sole
// external collaborator of Worker.
type Executor interface {
	// Execute runs command through a shell, bounded by timeout.
	//
	// On timeout, Execute returns ExitCode -1 and a Stderr diagnostic of
	// the form "Command timed out after <N> seconds". On spawn failure,
	// Execute returns ExitCode -1 and the error text in Stderr. Execute
	// itself never returns a non-nil error for a command that ran (even
	// to a non-zero exit) — failures are reported through Result.
	Execute(ctx context.Context, command string, timeout time.Duration) Result
}

// ShellExecutor runs commands through /bin/sh -c via os/exec.
type ShellExecutor struct{}

// NewShellExecutor creates a ShellExecutor.
func NewShellExecutor() *ShellExecutor {
	return &ShellExecutor{}
}

func (e *ShellExecutor) Execute(ctx context.Context, command string, timeout time.Duration) Result {
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, "/bin/sh", "-c", command)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if runCtx.Err() == context.DeadlineExceeded {
		return Result{
			ExitCode: -1,
			Stdout:   stdout.String(),
			Stderr:   fmt.Sprintf("Command timed out after %d seconds", int(timeout.Seconds())),
		}
	}
	if err == nil {
		return Result{ExitCode: 0, Stdout: stdout.String(), Stderr: stderr.String()}
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return Result{ExitCode: exitErr.ExitCode(), Stdout: stdout.String(), Stderr: stderr.String()}
	}
	return Result{ExitCode: -1, Stdout: stdout.String(), Stderr: err.Error()}
}
