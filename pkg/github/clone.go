package github

import (
	"context"
	"path/filepath"

	"github.com/arthur-debert/archup/pkg/errors"
	"github.com/arthur-debert/archup/pkg/filesystem"
	"github.com/arthur-debert/archup/pkg/runner"
)

// CloneOutcome is recorded under the Clone Project category.
type CloneOutcome string

const (
	Cloned        CloneOutcome = "success"
	AlreadyCloned CloneOutcome = "updated"
)

// Repo identifies what to clone and where.
type Repo struct {
	Name   string
	URL    string
	Branch string
}

// Clone clones repo into <workdir>/<name> unless that directory exists.
// An existing checkout is left as it is.
func Clone(ctx context.Context, r runner.Runner, fs filesystem.FS, workdir string, repo Repo) (CloneOutcome, error) {
	if repo.Name == "" {
		return "", errors.New(errors.ErrInvalidInput, "project name is empty")
	}
	dest := filepath.Join(workdir, repo.Name)
	if filesystem.Exists(fs, dest) {
		return AlreadyCloned, nil
	}

	args := []string{"clone"}
	if repo.Branch != "" {
		args = append(args, "-b", repo.Branch)
	}
	args = append(args, repo.URL, repo.Name)

	if _, err := r.Run(ctx, runner.Command{Name: "git", Args: args, Dir: workdir}); err != nil {
		return "", errors.Wrapf(err, errors.ErrCommandFailed, "failed to clone %s", repo.URL).
			WithDetail("url", repo.URL)
	}
	return Cloned, nil
}
