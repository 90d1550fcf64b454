package database

import (
	"context"
	"strings"

	"github.com/arthur-debert/archup/pkg/errors"
	"github.com/arthur-debert/archup/pkg/runner"
)

// CLIAdmin runs statements with `sudo <client> -e`.
type CLIAdmin struct {
	runner runner.Runner
	client string
}

var _ Admin = (*CLIAdmin)(nil)

// NewCLIAdmin creates an Admin backed by the mariadb command line client.
func NewCLIAdmin(r runner.Runner, client string) *CLIAdmin {
	return &CLIAdmin{runner: r, client: client}
}

func (a *CLIAdmin) exec(ctx context.Context, stmt string, quiet bool, redact ...string) (runner.Result, error) {
	cmd := runner.Sudo(a.client, "-N", "-B", "-e", stmt)
	cmd.Quiet = quiet
	cmd.Redact = redact
	return a.runner.Run(ctx, cmd)
}

// Ping checks the server answers queries.
func (a *CLIAdmin) Ping(ctx context.Context) error {
	if _, err := a.exec(ctx, "SELECT 1", true); err != nil {
		return errors.Wrap(err, errors.ErrDBUnavailable, "database server is not answering")
	}
	return nil
}

// DatabaseExists lists databases and looks for an exact match. LIKE is
// avoided because _ is a wildcard there.
func (a *CLIAdmin) DatabaseExists(ctx context.Context, name string) (bool, error) {
	res, err := a.exec(ctx, "SHOW DATABASES", true)
	if err != nil {
		return false, errors.Wrap(err, errors.ErrDBUnavailable, "failed to list databases")
	}
	for _, line := range strings.Split(res.Stdout, "\n") {
		if strings.TrimSpace(line) == name {
			return true, nil
		}
	}
	return false, nil
}

// CreateDatabase creates name.
func (a *CLIAdmin) CreateDatabase(ctx context.Context, name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	if _, err := a.exec(ctx, createStatement(name), false); err != nil {
		return errors.Wrapf(err, errors.ErrCommandFailed, "failed to create database %s", name)
	}
	return nil
}

// SetRootPassword sets the password of root@localhost.
func (a *CLIAdmin) SetRootPassword(ctx context.Context, password string) error {
	// The quoted literal goes first so an escaped password is masked whole.
	if _, err := a.exec(ctx, passwordStatement(password), true, QuoteString(password), password); err != nil {
		return errors.Wrap(err, errors.ErrCommandFailed, "failed to set root password")
	}
	return nil
}
