// Package runner executes the external programs archup drives
// (pacman, systemctl, mariadb, gh, git, python, pip, npm).
package runner

import (
	"context"
	"strings"
)

// Command describes one external program invocation.
type Command struct {
	Name string
	Args []string

	// Dir is the working directory; empty means the process's own.
	Dir string

	// Env is appended to the inherited environment. Later entries win.
	Env []string

	// Interactive attaches the process to the terminal instead of
	// capturing its output. Used for gh auth login and makepkg.
	Interactive bool

	// Quiet suppresses echoing captured output to the user. Probes such
	// as `systemctl is-active` or `gh auth status` set it.
	Quiet bool

	// Redact lists values, such as passwords, masked wherever the command
	// is logged, printed or reported in an error.
	Redact []string
}

// Mask is the replacement for redacted values.
const Mask = "******"

// String renders the command the way a user would type it.
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

// Redacted renders the command like String with Redact values masked.
func (c Command) Redacted() string {
	return c.mask(c.String())
}

// RedactedArgs returns Args with Redact values masked.
func (c Command) RedactedArgs() []string {
	if len(c.Redact) == 0 {
		return c.Args
	}
	out := make([]string, len(c.Args))
	for i, a := range c.Args {
		out[i] = c.mask(a)
	}
	return out
}

func (c Command) mask(s string) string {
	for _, secret := range c.Redact {
		if secret != "" {
			s = strings.ReplaceAll(s, secret, Mask)
		}
	}
	return s
}

// Result holds what a finished command produced.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Runner runs commands and resolves executables.
type Runner interface {
	Run(ctx context.Context, cmd Command) (Result, error)
	LookPath(name string) (string, error)
}

// New builds a command runner wired for a real or a dry run.
func New(dryRun bool, opts ...Option) Runner {
	exec := NewExecRunner(opts...)
	if dryRun {
		return NewDryRunner(exec, opts...)
	}
	return exec
}

// Sudo prefixes a command with sudo.
func Sudo(name string, args ...string) Command {
	return Command{Name: "sudo", Args: append([]string{name}, args...)}
}

// Shell wraps a command line for sh -c.
func Shell(line string) Command {
	return Command{Name: "sh", Args: []string{"-c", line}}
}

// Has reports whether name resolves on the runner's PATH.
func Has(r Runner, name string) bool {
	_, err := r.LookPath(name)
	return err == nil
}
