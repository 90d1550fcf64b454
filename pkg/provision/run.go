package provision

import (
	"context"

	"github.com/arthur-debert/archup/pkg/aliases"
	"github.com/arthur-debert/archup/pkg/cleanup"
	"github.com/arthur-debert/archup/pkg/database"
	"github.com/arthur-debert/archup/pkg/deps"
	"github.com/arthur-debert/archup/pkg/envfile"
	"github.com/arthur-debert/archup/pkg/errors"
	"github.com/arthur-debert/archup/pkg/github"
	"github.com/arthur-debert/archup/pkg/migrate"
	"github.com/arthur-debert/archup/pkg/packages"
	"github.com/arthur-debert/archup/pkg/status"
	"github.com/arthur-debert/archup/pkg/venv"
)

type step struct {
	name  string
	title string
	run   func(ctx context.Context, r *run)
}

func (p *Provisioner) steps() []step {
	return []step{
		{StepAliases, "Setting aliases", p.runAliases},
		{StepPackages, "Installing packages", p.runPackages},
		{StepDatabase, "Configuring database server", p.runDatabase},
		{StepClone, "Cloning project", p.runClone},
		{StepVenv, "Setting up virtual environment", p.runVenv},
		{StepConfig, "Creating configuration", p.runConfig},
		{StepDeps, "Installing dependencies", p.runDeps},
		{StepMigrate, "Running migrations", p.runMigrate},
		{StepCleanup, "Cleaning build", p.runCleanup},
	}
}

func (p *Provisioner) runAliases(_ context.Context, r *run) {
	content, err := r.aliases(p)
	if err != nil {
		p.fail(r, status.Aliases, err)
		return
	}
	rc, err := p.Paths.Resolve(p.Config.Shell.RCFile)
	if err != nil {
		p.fail(r, status.Aliases, err)
		return
	}
	outcome, err := aliases.Inject(p.FS, rc, content)
	if err != nil {
		p.fail(r, status.Aliases, err)
		return
	}
	p.record(r, status.Aliases, string(outcome))
}

func (p *Provisioner) runPackages(ctx context.Context, r *run) {
	if err := packages.NewInstaller(p.Runner, p.FS, p.Config.Packages).Install(ctx); err != nil {
		p.fail(r, status.Packages, err)
		return
	}
	p.record(r, status.Packages, "updated")
}

func (p *Provisioner) runDatabase(ctx context.Context, r *run) {
	cfg := p.Config.Database
	name := r.values.Get(envfile.KeyDBName, cfg.DefaultName)
	password := r.values.Get(envfile.KeyDBPassword, cfg.DefaultPassword)

	newAdmin := p.NewAdmin
	if newAdmin == nil {
		newAdmin = database.NewAdmin
	}
	admin, closeAdmin, err := newAdmin(p.Runner, cfg, password)
	if err != nil {
		p.fail(r, status.MariaDB, err)
		return
	}
	defer func() { _ = closeAdmin() }()

	setup := database.NewSetup(p.Runner, admin, cfg)
	if !setup.Installed() {
		p.Reporter.Warn(cfg.Client + " not found, skipping database setup")
		return
	}

	result, err := setup.Configure(ctx, name, password)
	if result.Service == "" {
		p.fail(r, status.MariaDB, err)
		return
	}
	p.record(r, status.MariaDB, string(result.Service))

	if result.DatabaseErr != nil {
		p.fail(r, status.Database, result.DatabaseErr)
	} else {
		p.record(r, status.Database, string(result.Database))
	}
	if result.PasswordErr != nil {
		p.fail(r, status.DatabasePassword, result.PasswordErr)
	} else {
		p.record(r, status.DatabasePassword, string(result.Password))
	}
}

func (p *Provisioner) runClone(ctx context.Context, r *run) {
	auth := github.NewAuthenticator(p.Runner, p.Prompter, p.Config.GitHub.MaxLoginAttempts)
	login, err := auth.Authenticate(ctx)
	p.record(r, status.GithubLogin, string(login))
	if err != nil {
		p.Reporter.Failure(status.GithubLogin, err)
		p.record(r, status.CloneProject, status.Skipped)
		return
	}

	owner := r.values.Get(envfile.KeyProjectOwner, p.Config.Project.Owner)
	repo := github.Repo{
		Name:   r.project,
		URL:    p.Config.ProjectURL(owner, r.project),
		Branch: r.values.Get(envfile.KeyProjectBranch, p.Config.Project.Branch),
	}
	outcome, err := github.Clone(ctx, p.Runner, p.FS, p.Paths.Workdir(), repo)
	if err != nil {
		p.fail(r, status.CloneProject, err)
		return
	}
	p.record(r, status.CloneProject, string(outcome))
}

func (p *Provisioner) runVenv(ctx context.Context, r *run) {
	env, outcome, err := venv.Ensure(ctx, p.Runner, p.FS, p.Paths.Workdir(), p.Config.Python.Interpreter, p.Config.Python.VenvDir)
	if err != nil {
		p.fail(r, status.VirtualEnvironment, err)
		return
	}
	r.venv = env
	p.record(r, status.VirtualEnvironment, string(outcome))
}

func (p *Provisioner) runConfig(_ context.Context, r *run) {
	if r.envPath == "" {
		p.fail(r, status.Configuration, errors.New(errors.ErrInvalidInput, "no env file given"))
		return
	}
	outcome, err := envfile.Generate(p.FS, envfile.GenerateOptions{
		Source: r.envPath,
		Extra:  p.Paths.InWorkdir(r.project, deps.BuildDir, "env.txt"),
		Dest:   p.Paths.InWorkdir(".env"),
	})
	if err != nil {
		p.fail(r, status.Configuration, err)
		return
	}
	p.record(r, status.Configuration, string(outcome))
}

func (p *Provisioner) runDeps(ctx context.Context, r *run) {
	if err := deps.NewInstaller(p.Runner, p.FS, p.Paths.Workdir(), r.venv).Install(ctx, r.project); err != nil {
		p.fail(r, status.Dependencies, err)
		return
	}
	p.record(r, status.Dependencies, "updated")
}

func (p *Provisioner) runMigrate(ctx context.Context, r *run) {
	content, err := r.aliases(p)
	if err != nil {
		p.fail(r, status.Migration, err)
		return
	}
	if err := migrate.Run(ctx, p.Runner, p.FS, p.Paths.Workdir(), r.project, content, r.venv.Environ()); err != nil {
		p.fail(r, status.Migration, err)
		return
	}
	p.record(r, status.Migration, "updated")
}

func (p *Provisioner) runCleanup(_ context.Context, r *run) {
	outcome, err := cleanup.Clean(p.FS, p.Paths, r.buildPath)
	if err != nil {
		p.fail(r, status.Build, err)
		return
	}
	p.record(r, status.Build, string(outcome))
}
