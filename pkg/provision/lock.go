package provision

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/archup/pkg/errors"
	"github.com/gofrs/flock"
)

// AcquireLock takes the inter-process lock at path so that two
// provisioning runs never overlap. The returned function releases it.
func AcquireLock(path string) (func(), error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileWrite, "failed to create %s", filepath.Dir(path))
	}

	fileLock := flock.New(path)
	locked, err := fileLock.TryLock()
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to acquire lock %s", path)
	}
	if !locked {
		return nil, errors.New(errors.ErrLocked, "another archup run is in progress").WithDetail("path", path)
	}
	return func() { _ = fileLock.Unlock() }, nil
}
