package runner

import (
	"context"
	"strings"
	"sync"
)

// Call is one invocation recorded by FakeRunner.
type Call struct {
	Executable string
	Args       []string
}

// FakeResponse is what FakeRunner replays for a matching call.
type FakeResponse struct {
	Output    Output
	LaunchErr error
}

// FakeRunner replays scripted responses without spawning processes.
// Respond picks the response for a call; when nil, Default is returned.
type FakeRunner struct {
	Default FakeResponse
	Respond func(call Call) FakeResponse

	mu    sync.Mutex
	calls []Call
}

var _ Runner = &FakeRunner{}

func (f *FakeRunner) Run(_ context.Context, executable string, args ...string) (Output, error) {
	call := Call{Executable: executable, Args: append([]string(nil), args...)}

	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()

	resp := f.Default
	if f.Respond != nil {
		resp = f.Respond(call)
	}
	if resp.LaunchErr != nil {
		return Output{}, &LaunchError{Executable: executable, Err: resp.LaunchErr}
	}
	return resp.Output, nil
}

// Calls returns a copy of every recorded call in order.
func (f *FakeRunner) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// Succeed is a FakeResponse that exits zero with the given stdout.
func Succeed(stdout string) FakeResponse {
	return FakeResponse{Output: Output{Stdout: []byte(stdout), ExitSuccess: true}}
}

// Fail is a FakeResponse that exits non-zero with the given stderr.
func Fail(stderr string) FakeResponse {
	return FakeResponse{Output: Output{Stderr: []byte(stderr)}}
}

// Missing is a FakeResponse for an executable that cannot be launched.
func Missing(cause error) FakeResponse {
	return FakeResponse{LaunchErr: cause}
}

// String renders the call as a shell-like line, for test failure messages.
func (c Call) String() string {
	return strings.TrimSpace(c.Executable + " " + strings.Join(c.Args, " "))
}
