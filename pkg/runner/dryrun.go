package runner

import (
	"context"
	"fmt"

	"github.com/arthur-debert/archup/pkg/logging"
	"github.com/rs/zerolog"
)

// DryRunner reports commands instead of running them. Lookups still hit
// the real PATH so the plan reflects the machine it would run on.
type DryRunner struct {
	lookup Runner
	logger zerolog.Logger
	opts   options
}

// NewDryRunner wraps lookup, which is only used for LookPath.
func NewDryRunner(lookup Runner, opts ...Option) *DryRunner {
	return &DryRunner{
		lookup: lookup,
		logger: logging.GetLogger("runner.dryrun"),
		opts:   buildOptions(opts),
	}
}

// LookPath delegates to the wrapped runner.
func (r *DryRunner) LookPath(name string) (string, error) {
	return r.lookup.LookPath(name)
}

// Run prints what would be executed and reports success.
func (r *DryRunner) Run(_ context.Context, cmd Command) (Result, error) {
	r.logger.Info().Str("command", cmd.Redacted()).Str("dir", cmd.Dir).Msg("Dry run - command not executed")
	if cmd.Dir != "" {
		_, _ = fmt.Fprintf(r.opts.stdout, "Would execute (in %s): %s\n", cmd.Dir, cmd.Redacted())
	} else {
		_, _ = fmt.Fprintf(r.opts.stdout, "Would execute: %s\n", cmd.Redacted())
	}
	return Result{}, nil
}
