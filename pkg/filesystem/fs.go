package filesystem

import (
	"errors"
	"io/fs"
)

// FS is the subset of filesystem operations the provisioning steps use.
type FS interface {
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
	MkdirAll(path string, perm fs.FileMode) error
	Remove(name string) error
	RemoveAll(path string) error

	// MkdirTemp creates a new directory under dir (the system temp dir
	// when empty) and returns its path.
	MkdirTemp(dir, pattern string) (string, error)
}

// Exists reports whether name exists. Errors other than "not exist" are
// treated as existing so callers never overwrite something they cannot see.
func Exists(fsys FS, name string) bool {
	_, err := fsys.Stat(name)
	if err == nil {
		return true
	}
	return !errors.Is(err, fs.ErrNotExist)
}

// IsDir reports whether name exists and is a directory.
func IsDir(fsys FS, name string) bool {
	info, err := fsys.Stat(name)
	return err == nil && info.IsDir()
}
