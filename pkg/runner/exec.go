package runner

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/arthur-debert/archup/pkg/errors"
	"github.com/arthur-debert/archup/pkg/logging"
	"github.com/rs/zerolog"
)

// DefaultTimeout bounds non-interactive commands. Package installs and
// AUR builds are the slow ones.
const DefaultTimeout = 30 * time.Minute

// Option configures a runner.
type Option func(*options)

type options struct {
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
	timeout time.Duration
}

// WithOutput sets where command output is echoed to.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(o *options) {
		o.stdout = stdout
		o.stderr = stderr
	}
}

// WithInput sets the stdin given to interactive commands.
func WithInput(stdin io.Reader) Option {
	return func(o *options) { o.stdin = stdin }
}

// WithTimeout overrides DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

func buildOptions(opts []Option) options {
	o := options{
		stdin:   os.Stdin,
		stdout:  os.Stdout,
		stderr:  os.Stderr,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct {
	logger zerolog.Logger
	opts   options
}

// NewExecRunner creates a runner that executes commands for real.
func NewExecRunner(opts ...Option) *ExecRunner {
	return &ExecRunner{
		logger: logging.GetLogger("runner.exec"),
		opts:   buildOptions(opts),
	}
}

// LookPath resolves name on PATH.
func (r *ExecRunner) LookPath(name string) (string, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrCommandNotFound, "%s not found on PATH", name)
	}
	return path, nil
}

// Run executes cmd. A non-zero exit is returned as a COMMAND_FAILED error
// alongside the captured result.
func (r *ExecRunner) Run(ctx context.Context, cmd Command) (Result, error) {
	if cmd.Name == "" {
		return Result{}, errors.New(errors.ErrInvalidInput, "command name is required")
	}

	logging.LogCommand(r.logger, cmd.Name, cmd.RedactedArgs(), cmd.Dir)

	if cmd.Dir != "" {
		if _, err := os.Stat(cmd.Dir); err != nil {
			return Result{}, errors.Wrapf(err, errors.ErrFileNotFound,
				"working directory does not exist: %s", cmd.Dir)
		}
	}

	if !cmd.Interactive && r.opts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.opts.timeout)
		defer cancel()
	}

	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir
	c.Env = append(os.Environ(), cmd.Env...)

	var stdout, stderr bytes.Buffer
	if cmd.Interactive {
		c.Stdin = r.opts.stdin
		c.Stdout = r.opts.stdout
		c.Stderr = r.opts.stderr
	} else {
		c.Stdout = &stdout
		c.Stderr = &stderr
	}

	start := time.Now()
	err := c.Run()

	result := Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	if c.ProcessState != nil {
		result.ExitCode = c.ProcessState.ExitCode()
	}

	if !cmd.Interactive && !cmd.Quiet {
		if result.Stdout != "" {
			_, _ = fmt.Fprint(r.opts.stdout, cmd.mask(result.Stdout))
		}
		if result.Stderr != "" {
			_, _ = fmt.Fprint(r.opts.stderr, cmd.mask(result.Stderr))
		}
	}

	r.logger.Trace().
		Str("command", cmd.Redacted()).
		Int("exit_code", result.ExitCode).
		Dur("duration", time.Since(start)).
		Msg("Command finished")

	if err != nil {
		if result.ExitCode == 0 {
			result.ExitCode = -1
		}
		r.logger.Debug().
			Err(err).
			Str("command", cmd.Redacted()).
			Str("stdout", cmd.mask(result.Stdout)).
			Str("stderr", cmd.mask(result.Stderr)).
			Msg("Command execution failed")

		return result, errors.Wrapf(err, errors.ErrCommandFailed, "%s", cmd.Redacted()).
			WithDetail("exit_code", result.ExitCode)
	}

	return result, nil
}
