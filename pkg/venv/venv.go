// Package venv creates the project's python virtual environment and
// computes the environment commands need to run inside it.
package venv

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/archup/pkg/errors"
	"github.com/arthur-debert/archup/pkg/filesystem"
	"github.com/arthur-debert/archup/pkg/logging"
	"github.com/arthur-debert/archup/pkg/runner"
)

// Outcome of Ensure
type Outcome string

const (
	Created Outcome = "created"
	Updated Outcome = "updated"
)

// Env is an activated virtual environment.
type Env struct {
	Dir string
}

// Bin returns the path of an executable inside the environment.
func (e Env) Bin(name string) string {
	return filepath.Join(e.Dir, "bin", name)
}

// Vars are the variables `source bin/activate` would set, given the
// current PATH.
func (e Env) Vars(path string) []string {
	bin := filepath.Join(e.Dir, "bin")
	if path != "" {
		bin += string(os.PathListSeparator) + path
	}
	return []string{
		"VIRTUAL_ENV=" + e.Dir,
		"PATH=" + bin,
		"PYTHONHOME=",
	}
}

// Environ is Vars for the current process PATH.
func (e Env) Environ() []string {
	return e.Vars(os.Getenv("PATH"))
}

// Ensure creates <workdir>/<dir> with `<python> -m venv <dir>` when it is
// missing. An existing environment is reused as is.
func Ensure(ctx context.Context, r runner.Runner, fs filesystem.FS, workdir, python, dir string) (Env, Outcome, error) {
	if strings.TrimSpace(dir) == "" || dir == "/" {
		return Env{}, "", errors.Newf(errors.ErrInvalidInput, "invalid venv directory %q", dir)
	}
	path := dir
	if !filepath.IsAbs(path) {
		path = filepath.Join(workdir, dir)
	}
	env := Env{Dir: path}

	if filesystem.IsDir(fs, path) {
		logger := logging.GetLogger("venv")
		logger.Debug().Str("dir", path).Msg("virtual environment exists")
		return env, Updated, nil
	}

	cmd := runner.Command{Name: python, Args: []string{"-m", "venv", dir}, Dir: workdir}
	if _, err := r.Run(ctx, cmd); err != nil {
		return Env{}, "", errors.Wrapf(err, errors.ErrCommandFailed, "failed to create virtual environment %s", path)
	}
	return env, Created, nil
}
