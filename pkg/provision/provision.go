// Package provision runs archup's steps in order against one machine and
// records what each of them did.
package provision

import (
	"context"
	"path/filepath"
	"time"

	"github.com/arthur-debert/archup/pkg/aliases"
	"github.com/arthur-debert/archup/pkg/config"
	"github.com/arthur-debert/archup/pkg/database"
	"github.com/arthur-debert/archup/pkg/envfile"
	"github.com/arthur-debert/archup/pkg/filesystem"
	"github.com/arthur-debert/archup/pkg/github"
	"github.com/arthur-debert/archup/pkg/logging"
	"github.com/arthur-debert/archup/pkg/paths"
	"github.com/arthur-debert/archup/pkg/platform"
	"github.com/arthur-debert/archup/pkg/runner"
	"github.com/arthur-debert/archup/pkg/status"
	"github.com/arthur-debert/archup/pkg/venv"
	"github.com/rs/zerolog"
)

// Options are the per-invocation inputs.
type Options struct {
	// Args are the positional arguments: os, distro, env file, build dir.
	Args   []string
	DryRun bool
	Only   []string
	Skip   []string
}

// Provisioner wires the steps to one filesystem, runner and config.
type Provisioner struct {
	Config   *config.Config
	Paths    *paths.Paths
	FS       filesystem.FS
	Runner   runner.Runner
	Reporter *Reporter

	// Prompter answers the GitHub retry question; nil never prompts.
	Prompter github.Prompter

	// NewAdmin overrides how the database admin is built.
	NewAdmin func(r runner.Runner, cfg config.DatabaseConfig, password string) (database.Admin, func() error, error)

	// Now is the clock used for the report.
	Now func() time.Time

	logger zerolog.Logger
}

// run holds the values resolved for one invocation.
type run struct {
	detection platform.Detection
	envPath   string
	buildPath string
	values    envfile.Values
	project   string
	venv      venv.Env
	status    *status.Map

	aliasContent string
	aliasErr     error
	aliasLoaded  bool
}

// Run provisions the machine described by opts.Args. An unsupported
// platform prints its message and returns a nil report: nothing else
// happens, not even taking the lock. Step failures are recorded in the
// report; the returned error is reserved for failures that stop the run
// before any step.
func (p *Provisioner) Run(ctx context.Context, opts Options) (*status.Report, error) {
	p.logger = logging.GetLogger("provision")

	selection, err := NewSelection(opts.Only, opts.Skip)
	if err != nil {
		return nil, err
	}

	detection, err := platform.Resolve(p.FS, opts.Args)
	if err != nil {
		p.logger.Warn().Err(err).Msg("host detection failed")
	}
	if !detection.Supported {
		p.Reporter.Message(detection.Message)
		return nil, nil
	}

	unlock, err := AcquireLock(p.Paths.LockFile())
	if err != nil {
		return nil, err
	}
	defer unlock()

	r, err := p.resolve(detection, opts.Args)
	if err != nil {
		return nil, err
	}

	report := &status.Report{
		Started: p.now(),
		OS:      detection.OS,
		Distro:  detection.Distro,
		Project: r.project,
		DryRun:  opts.DryRun,
	}

	for _, step := range p.steps() {
		if !selection.Enabled(step.name) {
			p.logger.Debug().Str("step", step.name).Msg("step not selected")
			continue
		}
		p.Reporter.Start(step.title)
		step.run(ctx, r)
	}

	report.Steps = r.status.Entries()
	report.Finished = p.now()

	store := status.NewStore(p.FS, p.Paths.LastRunFile())
	if err := store.Save(*report); err != nil {
		p.logger.Warn().Err(err).Msg("failed to save last run")
	}
	return report, nil
}

func (p *Provisioner) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

func (p *Provisioner) resolve(d platform.Detection, args []string) (*run, error) {
	r := &run{detection: d, status: status.NewMap()}

	if len(args) > 2 && args[2] != "" {
		envPath, err := p.Paths.Resolve(args[2])
		if err != nil {
			return nil, err
		}
		r.envPath = envPath
	}
	if len(args) > 3 {
		r.buildPath = args[3]
	}

	values, err := envfile.Read(p.FS, r.envPath)
	if err != nil {
		return nil, err
	}
	r.values = values
	r.project = values.Get(envfile.KeyProjectName, p.Config.Project.DefaultName)

	venvDir := p.Config.Python.VenvDir
	if !filepath.IsAbs(venvDir) {
		venvDir = p.Paths.InWorkdir(venvDir)
	}
	r.venv = venv.Env{Dir: venvDir}

	p.logger.Info().
		Str("env_file", r.envPath).
		Str("project", r.project).
		Str("workdir", p.Paths.Workdir()).
		Msg("provisioning")
	return r, nil
}

// record stores outcome under c and reports it.
func (p *Provisioner) record(r *run, c status.Category, outcome string) {
	r.status.Set(c, outcome)
	p.Reporter.Outcome(c, outcome)
}

// fail records c as failed and reports err.
func (p *Provisioner) fail(r *run, c status.Category, err error) {
	p.logger.Error().Err(err).Str("category", string(c)).Msg("step failed")
	r.status.Set(c, status.Failed)
	p.Reporter.Failure(c, err)
}

func (r *run) aliases(p *Provisioner) (string, error) {
	if !r.aliasLoaded {
		r.aliasContent, r.aliasErr = aliases.Load(p.FS, p.Config.Shell.AliasFile, r.detection.OS, r.detection.Distro)
		r.aliasLoaded = true
	}
	return r.aliasContent, r.aliasErr
}
