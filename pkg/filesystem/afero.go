package filesystem

import (
	"io/fs"

	"github.com/spf13/afero"
)

// aferoFS adapts an afero.Fs to FS. Most methods come straight from
// afero.Afero.
type aferoFS struct {
	afero.Afero
}

// NewOS returns the real filesystem.
func NewOS() FS {
	return NewAferoFS(afero.NewOsFs())
}

// NewAferoFS wraps any afero filesystem, typically a MemMapFs in tests.
func NewAferoFS(base afero.Fs) FS {
	return aferoFS{afero.Afero{Fs: base}}
}

// NewDryRun returns a filesystem that reads from disk but keeps every
// write in memory, so a dry run goes through the same code paths
// without changing anything.
func NewDryRun() FS {
	base := afero.NewReadOnlyFs(afero.NewOsFs())
	return NewAferoFS(afero.NewCopyOnWriteFs(base, afero.NewMemMapFs()))
}

// ReadFile refuses directories, which MemMapFs would otherwise read as empty.
func (a aferoFS) ReadFile(name string) ([]byte, error) {
	info, err := a.Stat(name)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, &fs.PathError{Op: "read", Path: name, Err: fs.ErrInvalid}
	}
	return a.Afero.ReadFile(name)
}

func (a aferoFS) MkdirTemp(dir, pattern string) (string, error) {
	return a.TempDir(dir, pattern)
}
