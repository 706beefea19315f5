package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Output is what a finished process left behind.
type Output struct {
	Stdout      []byte
	Stderr      []byte
	ExitSuccess bool
}

// StderrText returns stderr with surrounding whitespace removed.
func (o Output) StderrText() string {
	return strings.TrimSpace(string(o.Stderr))
}

// Runner executes an external program and waits for it to exit.
// A non-zero exit is reported through Output.ExitSuccess, not as an error;
// the only error a Runner returns is a *LaunchError.
type Runner interface {
	Run(ctx context.Context, executable string, args ...string) (Output, error)
}

// LaunchError means the executable could not be found or started.
type LaunchError struct {
	Executable string
	Err        error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("failed to launch %s: %v", e.Executable, e.Err)
}

func (e *LaunchError) Unwrap() error { return e.Err }

// ExitError carries the stderr text of a process that exited non-zero.
type ExitError struct {
	Executable string
	Stderr     string
}

func (e *ExitError) Error() string {
	return e.Stderr
}

// ExitFailure turns an unsuccessful Output into an *ExitError, or nil on success.
func ExitFailure(executable string, out Output) error {
	if out.ExitSuccess {
		return nil
	}
	return &ExitError{Executable: executable, Stderr: out.StderrText()}
}

// ExecRunner runs processes with os/exec.
type ExecRunner struct{}

var _ Runner = &ExecRunner{}

func (r *ExecRunner) Run(ctx context.Context, executable string, args ...string) (Output, error) {
	log.WithFields(log.Fields{"executable": executable, "args": len(args)}).Debug("Running command")

	cmd := exec.CommandContext(ctx, executable, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	out := Output{Stdout: stdout.Bytes(), Stderr: stderr.Bytes(), ExitSuccess: err == nil}
	if err == nil {
		log.WithField("executable", executable).Debugf("Command succeeded (%d bytes stdout)", len(out.Stdout))
		return out, nil
	}

	// A process killed by its context surfaces as ctx.Err() rather than *exec.ExitError.
	if ctxErr := ctx.Err(); ctxErr != nil && cmd.Process != nil {
		if len(out.Stderr) == 0 {
			out.Stderr = []byte(fmt.Sprintf("%s terminated: %v", executable, ctxErr))
		}
		log.WithField("executable", executable).Debugf("Command terminated: %v", ctxErr)
		return out, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		log.WithFields(log.Fields{"executable": executable, "exit_code": exitErr.ExitCode()}).
			Debugf("Command failed: %s", out.StderrText())
		return out, nil
	}

	return Output{}, &LaunchError{Executable: executable, Err: err}
}
