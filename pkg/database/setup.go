package database

import (
	"context"
	"path"
	"strings"
	"time"

	"github.com/arthur-debert/archup/pkg/config"
	"github.com/arthur-debert/archup/pkg/errors"
	"github.com/arthur-debert/archup/pkg/logging"
	"github.com/arthur-debert/archup/pkg/runner"
	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
)

// ServiceState is what EnsureService found or did.
type ServiceState string

const (
	// Running means the service was already active.
	Running ServiceState = "running"
	// Enabled means archup started and enabled it.
	Enabled ServiceState = "enabled"
)

// Outcome of the database and password steps
type Outcome string

const (
	Created Outcome = "created"
	Updated Outcome = "updated"
	Success Outcome = "success"
	Failed  Outcome = "failed"
)

// Result collects the outcomes of Configure and the error behind each
// failed one.
type Result struct {
	Service  ServiceState
	Database Outcome
	Password Outcome

	DatabaseErr error
	PasswordErr error
}

// DefaultReadyTimeout bounds WaitReady when the configured timeout is unset.
const DefaultReadyTimeout = 30 * time.Second

// Setup drives the server and the project database.
type Setup struct {
	runner     runner.Runner
	admin      Admin
	cfg        config.DatabaseConfig
	newBackOff func() backoff.BackOff
	logger     zerolog.Logger
}

// NewSetup creates a Setup.
func NewSetup(r runner.Runner, admin Admin, cfg config.DatabaseConfig) *Setup {
	s := &Setup{
		runner: r,
		admin:  admin,
		cfg:    cfg,
		logger: logging.GetLogger("database"),
	}
	s.newBackOff = s.defaultBackOff
	return s
}

// WithBackOff replaces the readiness retry policy.
func (s *Setup) WithBackOff(f func() backoff.BackOff) *Setup {
	s.newBackOff = f
	return s
}

func (s *Setup) defaultBackOff() backoff.BackOff {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 250 * time.Millisecond
	// A zero MaxElapsedTime would retry forever.
	bo.MaxElapsedTime = s.cfg.ReadyTimeout
	if bo.MaxElapsedTime <= 0 {
		bo.MaxElapsedTime = DefaultReadyTimeout
	}
	return bo
}

// Installed reports whether the client binary is on PATH. Without it the
// whole database step is skipped.
func (s *Setup) Installed() bool {
	return runner.Has(s.runner, s.cfg.Client)
}

// InitDataDir creates the system tables unless the data directory already
// holds them. The check runs under sudo since the directory is private to
// the mysql user.
func (s *Setup) InitDataDir(ctx context.Context) error {
	probe := runner.Sudo("test", "-d", path.Join(s.cfg.DataDir, "mysql"))
	probe.Quiet = true
	if _, err := s.runner.Run(ctx, probe); err == nil {
		s.logger.Debug().Str("datadir", s.cfg.DataDir).Msg("data directory already initialised")
		return nil
	}

	cmd := runner.Sudo(s.cfg.InstallDB, "--user=mysql", "--basedir=/usr", "--datadir="+s.cfg.DataDir)
	if _, err := s.runner.Run(ctx, cmd); err != nil {
		return errors.Wrap(err, errors.ErrCommandFailed, "failed to initialise the data directory")
	}
	return nil
}

// EnsureService starts and enables the service unless it is active.
func (s *Setup) EnsureService(ctx context.Context) (ServiceState, error) {
	probe := runner.Sudo("systemctl", "is-active", s.cfg.Service)
	probe.Quiet = true
	// is-active exits non-zero for inactive units; only stdout matters.
	res, _ := s.runner.Run(ctx, probe)
	if strings.TrimSpace(res.Stdout) == "active" {
		return Running, nil
	}

	for _, verb := range []string{"start", "enable"} {
		if _, err := s.runner.Run(ctx, runner.Sudo("systemctl", verb, s.cfg.Service)); err != nil {
			return "", errors.Wrapf(err, errors.ErrCommandFailed, "failed to %s %s", verb, s.cfg.Service)
		}
	}
	return Enabled, nil
}

// WaitReady pings the server until it answers or the backoff gives up.
func (s *Setup) WaitReady(ctx context.Context) error {
	attempts := 0
	err := backoff.Retry(func() error {
		attempts++
		err := s.admin.Ping(ctx)
		if err != nil {
			s.logger.Debug().Err(err).Int("attempt", attempts).Msg("database not ready")
		}
		return err
	}, backoff.WithContext(s.newBackOff(), ctx))
	if err != nil {
		return errors.Wrapf(err, errors.ErrDBUnavailable, "database not ready after %d attempts", attempts)
	}
	return nil
}

// EnsureDatabase creates name unless it exists.
func (s *Setup) EnsureDatabase(ctx context.Context, name string) (Outcome, error) {
	if err := ValidateName(name); err != nil {
		return Failed, err
	}
	exists, err := s.admin.DatabaseExists(ctx, name)
	if err != nil {
		return Failed, err
	}
	if exists {
		s.logger.Info().Str("database", name).Msg("database exists")
		return Updated, nil
	}
	if err := s.admin.CreateDatabase(ctx, name); err != nil {
		return Failed, err
	}
	s.logger.Info().Str("database", name).Msg("database created")
	return Created, nil
}

// Configure runs the whole database step. Outcomes are filled in as far as
// the step got; the first error is returned alongside them. A failure to
// create the database does not stop the password from being set.
func (s *Setup) Configure(ctx context.Context, name, password string) (Result, error) {
	done := logging.LogOperationStart(s.logger, "database.configure")
	defer done()

	var result Result

	if err := s.InitDataDir(ctx); err != nil {
		return result, err
	}

	state, err := s.EnsureService(ctx)
	if err != nil {
		return result, err
	}
	result.Service = state

	if err := s.WaitReady(ctx); err != nil {
		result.Database, result.DatabaseErr = Failed, err
		result.Password, result.PasswordErr = Failed, err
		return result, err
	}

	result.Database, result.DatabaseErr = s.EnsureDatabase(ctx, name)

	result.Password = Success
	if err := s.admin.SetRootPassword(ctx, password); err != nil {
		result.Password, result.PasswordErr = Failed, err
	}

	if result.DatabaseErr != nil {
		return result, result.DatabaseErr
	}
	return result, result.PasswordErr
}

// NewAdmin picks the Admin for the configured driver. The returned close
// function is never nil.
func NewAdmin(r runner.Runner, cfg config.DatabaseConfig, password string) (Admin, func() error, error) {
	switch cfg.Driver {
	case config.DriverSocket:
		a, err := OpenSocketAdmin(cfg.Socket, password)
		if err != nil {
			return nil, func() error { return nil }, err
		}
		return a, a.Close, nil
	case config.DriverCLI, "":
		return NewCLIAdmin(r, cfg.Client), func() error { return nil }, nil
	default:
		return nil, func() error { return nil }, errors.Newf(errors.ErrConfigValid, "unknown database driver %q", cfg.Driver)
	}
}
