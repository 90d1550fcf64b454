// Package cleanup removes the build directory once provisioning is done.
package cleanup

import (
	"path/filepath"

	"github.com/arthur-debert/archup/pkg/errors"
	"github.com/arthur-debert/archup/pkg/filesystem"
	"github.com/arthur-debert/archup/pkg/logging"
	"github.com/arthur-debert/archup/pkg/paths"
)

// Outcome of Clean
type Outcome string

const (
	Cleaned Outcome = "cleaned"
	Skipped Outcome = "skipped"
)

// Clean removes buildPath recursively. An empty path skips the step and a
// path that does not exist is already clean. The root, home and workdir
// are refused.
func Clean(fs filesystem.FS, p *paths.Paths, buildPath string) (Outcome, error) {
	if buildPath == "" {
		return Skipped, nil
	}

	target, err := p.Resolve(buildPath)
	if err != nil {
		return "", err
	}
	target = filepath.Clean(target)

	if p.IsProtected(target) {
		return "", errors.Newf(errors.ErrUnsafePath, "refusing to remove %s", target).WithDetail("path", target)
	}

	if !filesystem.Exists(fs, target) {
		return Cleaned, nil
	}
	if err := fs.RemoveAll(target); err != nil {
		return "", errors.Wrapf(err, errors.ErrFileWrite, "failed to remove %s", target)
	}
	logger := logging.GetLogger("cleanup")
	logger.Info().Str("path", target).Msg("build directory removed")
	return Cleaned, nil
}
