// Package packages installs system packages with pacman and AUR packages
// with an AUR helper, bootstrapping the helper when it is missing.
package packages

import (
	"context"
	"path/filepath"

	"github.com/arthur-debert/archup/pkg/config"
	"github.com/arthur-debert/archup/pkg/errors"
	"github.com/arthur-debert/archup/pkg/filesystem"
	"github.com/arthur-debert/archup/pkg/logging"
	"github.com/arthur-debert/archup/pkg/runner"
	"github.com/rs/zerolog"
)

// Installer installs the configured package sets.
type Installer struct {
	runner runner.Runner
	fs     filesystem.FS
	cfg    config.PackagesConfig
	logger zerolog.Logger
}

// NewInstaller creates an installer.
func NewInstaller(r runner.Runner, fs filesystem.FS, cfg config.PackagesConfig) *Installer {
	return &Installer{
		runner: r,
		fs:     fs,
		cfg:    cfg,
		logger: logging.GetLogger("packages"),
	}
}

// Install runs the system install, makes sure the AUR helper exists and
// installs the AUR packages. --needed keeps reruns from reinstalling.
func (i *Installer) Install(ctx context.Context) error {
	done := logging.LogOperationStart(i.logger, "packages.install")
	defer done()

	if err := i.installSystem(ctx); err != nil {
		return err
	}
	if len(i.cfg.AUR) == 0 {
		return nil
	}
	if err := i.EnsureAURHelper(ctx); err != nil {
		return err
	}
	return i.installAUR(ctx)
}

func (i *Installer) installSystem(ctx context.Context) error {
	if len(i.cfg.System) == 0 {
		i.logger.Debug().Msg("no system packages configured")
		return nil
	}
	args := append([]string{"-Sq", "--needed", "--noconfirm"}, i.cfg.System...)
	if _, err := i.runner.Run(ctx, runner.Sudo(i.cfg.Manager, args...)); err != nil {
		return errors.Wrapf(err, errors.ErrCommandFailed, "%s failed to install system packages", i.cfg.Manager)
	}
	return nil
}

// EnsureAURHelper builds and installs the AUR helper from its repository
// when it is not on PATH. The build directory is removed afterwards.
func (i *Installer) EnsureAURHelper(ctx context.Context) error {
	if runner.Has(i.runner, i.cfg.AURHelper) {
		i.logger.Debug().Str("helper", i.cfg.AURHelper).Msg("AUR helper already installed")
		return nil
	}

	tmp, err := i.fs.MkdirTemp("", "archup-"+i.cfg.AURHelper+"-")
	if err != nil {
		return errors.Wrap(err, errors.ErrFileWrite, "failed to create build directory")
	}
	defer func() {
		if err := i.fs.RemoveAll(tmp); err != nil {
			i.logger.Warn().Err(err).Str("dir", tmp).Msg("failed to remove build directory")
		}
	}()

	src := filepath.Join(tmp, i.cfg.AURHelper)
	clone := runner.Command{Name: "git", Args: []string{"clone", i.cfg.AURHelperRepo, src}}
	if _, err := i.runner.Run(ctx, clone); err != nil {
		return errors.Wrapf(err, errors.ErrCommandFailed, "failed to clone %s", i.cfg.AURHelperRepo)
	}

	// makepkg asks for the sudo password itself.
	build := runner.Command{Name: "makepkg", Args: []string{"-si", "--noconfirm"}, Dir: src, Interactive: true}
	if _, err := i.runner.Run(ctx, build); err != nil {
		return errors.Wrapf(err, errors.ErrCommandFailed, "failed to build %s", i.cfg.AURHelper)
	}

	i.logger.Info().Str("helper", i.cfg.AURHelper).Msg("AUR helper installed")
	return nil
}

func (i *Installer) installAUR(ctx context.Context) error {
	args := append([]string{"-S", "--needed", "--noconfirm"}, i.cfg.AUR...)
	cmd := runner.Command{Name: i.cfg.AURHelper, Args: args, Interactive: true}
	if _, err := i.runner.Run(ctx, cmd); err != nil {
		return errors.Wrapf(err, errors.ErrCommandFailed, "%s failed to install AUR packages", i.cfg.AURHelper)
	}
	return nil
}
