// Package deps installs the project's python and node dependencies.
package deps

import (
	"bytes"
	"context"
	"path/filepath"

	"github.com/arthur-debert/archup/pkg/errors"
	"github.com/arthur-debert/archup/pkg/filesystem"
	"github.com/arthur-debert/archup/pkg/logging"
	"github.com/arthur-debert/archup/pkg/runner"
	"github.com/arthur-debert/archup/pkg/venv"
	"github.com/rs/zerolog"
)

// Files involved, relative to the workdir or the project's build dir
const (
	RequirementsFile = "requirements.txt"
	PackageJSON      = "package.json"
	PackageLock      = "package-lock.json"
	BuildDir         = "build"
)

// Installer installs dependencies for one project inside the workdir.
type Installer struct {
	runner  runner.Runner
	fs      filesystem.FS
	workdir string
	env     venv.Env
	logger  zerolog.Logger
}

// NewInstaller creates an installer. pip runs from env.
func NewInstaller(r runner.Runner, fs filesystem.FS, workdir string, env venv.Env) *Installer {
	return &Installer{
		runner:  r,
		fs:      fs,
		workdir: workdir,
		env:     env,
		logger:  logging.GetLogger("deps"),
	}
}

// Install runs pip, syncs package.json and runs npm.
func (i *Installer) Install(ctx context.Context, project string) error {
	done := logging.LogOperationStart(i.logger, "deps.install")
	defer done()

	if err := i.InstallPython(ctx, project); err != nil {
		return err
	}
	if _, err := i.SyncPackageJSON(project); err != nil {
		return err
	}
	return i.InstallNode(ctx)
}

func (i *Installer) buildFile(project, name string) string {
	return filepath.Join(i.workdir, project, BuildDir, name)
}

// InstallPython installs the project's requirements into the venv. A
// project without requirements.txt has nothing to install.
func (i *Installer) InstallPython(ctx context.Context, project string) error {
	req := i.buildFile(project, RequirementsFile)
	if !filesystem.Exists(i.fs, req) {
		i.logger.Debug().Str("file", req).Msg("no python requirements")
		return nil
	}
	cmd := runner.Command{
		Name: i.env.Bin("pip"),
		Args: []string{"install", "-r", req},
		Dir:  i.workdir,
		Env:  i.env.Environ(),
	}
	if _, err := i.runner.Run(ctx, cmd); err != nil {
		return errors.Wrap(err, errors.ErrCommandFailed, "pip install failed")
	}
	return nil
}

// SyncPackageJSON copies the project's package.json into the workdir when
// it is missing there or differs. The lock file is dropped whenever the
// manifest changes so npm resolves again.
func (i *Installer) SyncPackageJSON(project string) (bool, error) {
	src := i.buildFile(project, PackageJSON)
	if !filesystem.Exists(i.fs, src) {
		i.logger.Debug().Str("file", src).Msg("no package.json in project")
		return false, nil
	}
	want, err := i.fs.ReadFile(src)
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", src)
	}

	dst := filepath.Join(i.workdir, PackageJSON)
	if filesystem.Exists(i.fs, dst) {
		have, err := i.fs.ReadFile(dst)
		if err != nil {
			return false, errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", dst)
		}
		if bytes.Equal(have, want) {
			return false, nil
		}
	}

	lock := filepath.Join(i.workdir, PackageLock)
	if filesystem.Exists(i.fs, lock) {
		if err := i.fs.Remove(lock); err != nil {
			return false, errors.Wrapf(err, errors.ErrFileWrite, "failed to remove %s", lock)
		}
	}
	if err := i.fs.WriteFile(dst, want, 0644); err != nil {
		return false, errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", dst)
	}
	i.logger.Info().Str("file", dst).Msg("package.json updated")
	return true, nil
}

// InstallNode runs npm install when the workdir has a package.json.
func (i *Installer) InstallNode(ctx context.Context) error {
	if !filesystem.Exists(i.fs, filepath.Join(i.workdir, PackageJSON)) {
		return nil
	}
	if _, err := i.runner.Run(ctx, runner.Command{Name: "npm", Args: []string{"install"}, Dir: i.workdir}); err != nil {
		return errors.Wrap(err, errors.ErrCommandFailed, "npm install failed")
	}
	return nil
}
