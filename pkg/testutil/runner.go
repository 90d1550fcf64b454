package testutil

import (
	"context"
	"strings"
	"sync"

	"github.com/arthur-debert/archup/pkg/errors"
	"github.com/arthur-debert/archup/pkg/runner"
)

// Response is a scripted outcome for commands starting with Prefix.
type Response struct {
	Prefix string
	Result runner.Result
	Err    error

	// Times limits how often the response is used; 0 means always.
	Times int
	used  int
}

// FakeRunner implements runner.Runner without executing anything.
type FakeRunner struct {
	mu        sync.Mutex
	calls     []runner.Command
	responses []*Response
	paths     map[string]string

	// OnRun, when set, is called for every command after it is recorded.
	// Tests use it to simulate side effects such as a created directory.
	OnRun func(cmd runner.Command)
}

var _ runner.Runner = (*FakeRunner)(nil)

// NewFakeRunner creates a runner where every command succeeds with no output.
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{paths: make(map[string]string)}
}

// Installed makes LookPath resolve the given executables.
func (f *FakeRunner) Installed(names ...string) *FakeRunner {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, name := range names {
		f.paths[name] = "/usr/bin/" + name
	}
	return f
}

// On scripts a result for commands whose String() starts with prefix.
func (f *FakeRunner) On(prefix string, result runner.Result, err error) *FakeRunner {
	return f.add(&Response{Prefix: prefix, Result: result, Err: err})
}

// Stdout scripts a successful command printing out.
func (f *FakeRunner) Stdout(prefix, out string) *FakeRunner {
	return f.On(prefix, runner.Result{Stdout: out}, nil)
}

// Fail scripts a non-zero exit for commands starting with prefix.
func (f *FakeRunner) Fail(prefix string, exitCode int) *FakeRunner {
	return f.add(failure(prefix, exitCode, 0))
}

// FailTimes scripts n failures before falling through to later responses.
func (f *FakeRunner) FailTimes(prefix string, exitCode, n int) *FakeRunner {
	return f.add(failure(prefix, exitCode, n))
}

func failure(prefix string, exitCode, times int) *Response {
	err := errors.Newf(errors.ErrCommandFailed, "%s", prefix).WithDetail("exit_code", exitCode)
	return &Response{
		Prefix: prefix,
		Result: runner.Result{ExitCode: exitCode},
		Err:    err,
		Times:  times,
	}
}

func (f *FakeRunner) add(r *Response) *FakeRunner {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses = append(f.responses, r)
	return f
}

// Run records cmd and returns the first matching scripted response.
func (f *FakeRunner) Run(_ context.Context, cmd runner.Command) (runner.Result, error) {
	f.mu.Lock()
	f.calls = append(f.calls, cmd)
	line := cmd.String()
	var match *Response
	for _, r := range f.responses {
		if !strings.HasPrefix(line, r.Prefix) {
			continue
		}
		if r.Times > 0 && r.used >= r.Times {
			continue
		}
		r.used++
		match = r
		break
	}
	hook := f.OnRun
	f.mu.Unlock()

	if hook != nil {
		hook(cmd)
	}
	if match == nil {
		return runner.Result{}, nil
	}
	return match.Result, match.Err
}

// LookPath resolves names registered with Installed.
func (f *FakeRunner) LookPath(name string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if path, ok := f.paths[name]; ok {
		return path, nil
	}
	return "", errors.Newf(errors.ErrCommandNotFound, "%s not found on PATH", name)
}

// Calls returns the recorded commands.
func (f *FakeRunner) Calls() []runner.Command {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]runner.Command, len(f.calls))
	copy(out, f.calls)
	return out
}

// Commands returns the recorded commands rendered as strings.
func (f *FakeRunner) Commands() []string {
	calls := f.Calls()
	out := make([]string, len(calls))
	for i, c := range calls {
		out[i] = c.String()
	}
	return out
}

// Count returns how many recorded commands start with prefix.
func (f *FakeRunner) Count(prefix string) int {
	n := 0
	for _, line := range f.Commands() {
		if strings.HasPrefix(line, prefix) {
			n++
		}
	}
	return n
}

// Ran reports whether any recorded command starts with prefix.
func (f *FakeRunner) Ran(prefix string) bool {
	return f.Count(prefix) > 0
}

// Find returns the first recorded command starting with prefix.
func (f *FakeRunner) Find(prefix string) (runner.Command, bool) {
	for _, c := range f.Calls() {
		if strings.HasPrefix(c.String(), prefix) {
			return c, true
		}
	}
	return runner.Command{}, false
}
