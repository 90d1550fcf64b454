// Package migrate runs the project's migration commands, taken from the
// adm function of the alias profile.
package migrate

import (
	"context"
	"path/filepath"

	"github.com/arthur-debert/archup/pkg/aliases"
	"github.com/arthur-debert/archup/pkg/errors"
	"github.com/arthur-debert/archup/pkg/filesystem"
	"github.com/arthur-debert/archup/pkg/logging"
	"github.com/arthur-debert/archup/pkg/runner"
)

// Run executes every adm line through sh in <workdir>/<project>, with env
// added to each command's environment. It stops at the first failing
// command.
func Run(ctx context.Context, r runner.Runner, fs filesystem.FS, workdir, project, aliasContent string, env []string) error {
	logger := logging.GetLogger("migrate")

	dir := filepath.Join(workdir, project)
	if !filesystem.IsDir(fs, dir) {
		return errors.Newf(errors.ErrFileNotFound, "project directory not found: %s", dir).WithDetail("path", dir)
	}

	lines := aliases.ExtractFunction(aliasContent, aliases.AdmFunction)
	if len(lines) == 0 {
		logger.Warn().Msg("alias profile has no adm function, nothing to migrate")
		return nil
	}

	for _, line := range lines {
		cmd := runner.Shell(line)
		cmd.Dir = dir
		cmd.Env = env
		if _, err := r.Run(ctx, cmd); err != nil {
			return errors.Wrapf(err, errors.ErrCommandFailed, "migration command failed: %s", line).
				WithDetail("command", line)
		}
	}
	return nil
}
