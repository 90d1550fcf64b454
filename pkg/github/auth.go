// Package github handles gh authentication and cloning the project.
package github

import (
	"context"
	"strings"

	"github.com/arthur-debert/archup/pkg/errors"
	"github.com/arthur-debert/archup/pkg/logging"
	"github.com/arthur-debert/archup/pkg/runner"
	"github.com/rs/zerolog"
)

// RetryQuestion is asked after a failed login.
const RetryQuestion = "Press Enter to try again, or 'Q' to exit: "

// LoginOutcome is recorded under the Github Login category.
type LoginOutcome string

const (
	// LoginSuccess means a login happened during this run.
	LoginSuccess LoginOutcome = "success"
	// LoginUpdated means gh was already authenticated.
	LoginUpdated LoginOutcome = "updated"
	LoginFailed  LoginOutcome = "failed"
)

// Authenticator makes sure gh holds a valid login.
type Authenticator struct {
	runner      runner.Runner
	prompter    Prompter
	maxAttempts int
	logger      zerolog.Logger
}

// NewAuthenticator creates an authenticator. A nil prompter means the
// session is not interactive: failed logins are retried without asking
// until maxAttempts is reached.
func NewAuthenticator(r runner.Runner, p Prompter, maxAttempts int) *Authenticator {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &Authenticator{
		runner:      r,
		prompter:    p,
		maxAttempts: maxAttempts,
		logger:      logging.GetLogger("github"),
	}
}

// Authenticated reports whether `gh auth status` succeeds.
func (a *Authenticator) Authenticated(ctx context.Context) bool {
	_, err := a.runner.Run(ctx, runner.Command{Name: "gh", Args: []string{"auth", "status"}, Quiet: true})
	return err == nil
}

// Authenticate logs in with `gh auth login` when needed. The returned
// error is nil exactly when gh ends up authenticated.
func (a *Authenticator) Authenticate(ctx context.Context) (LoginOutcome, error) {
	if a.Authenticated(ctx) {
		a.logger.Debug().Msg("gh already authenticated")
		return LoginUpdated, nil
	}

	a.logger.Info().Msg("not authenticated with GitHub, logging in")
	var lastErr error
	for attempt := 1; attempt <= a.maxAttempts; attempt++ {
		login := runner.Command{Name: "gh", Args: []string{"auth", "login"}, Interactive: true}
		_, err := a.runner.Run(ctx, login)
		if err == nil {
			a.logger.Info().Int("attempt", attempt).Msg("GitHub authentication successful")
			return LoginSuccess, nil
		}
		lastErr = err
		a.logger.Warn().Err(err).Int("attempt", attempt).Msg("GitHub authentication failed")

		if attempt == a.maxAttempts || a.prompter == nil {
			continue
		}
		answer, err := a.prompter.Ask(RetryQuestion)
		if err != nil {
			return LoginFailed, err
		}
		if strings.EqualFold(strings.TrimSpace(answer), "q") {
			return LoginFailed, errors.New(errors.ErrAuthCancelled, "GitHub authentication cancelled")
		}
	}

	return LoginFailed, errors.Wrapf(lastErr, errors.ErrAuthFailed, "GitHub authentication failed after %d attempts", a.maxAttempts).
		WithDetail("attempts", a.maxAttempts)
}
