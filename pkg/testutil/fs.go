package testutil

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/archup/pkg/filesystem"
	"github.com/spf13/afero"
)

// NewMemFS returns an in-memory filesystem seeded with files, keyed by
// absolute path.
func NewMemFS(t *testing.T, files map[string]string) filesystem.FS {
	t.Helper()

	fs := filesystem.NewAferoFS(afero.NewMemMapFs())
	for path, content := range files {
		WriteFile(t, fs, path, content)
	}
	return fs
}

// WriteFile writes content to path, creating parent directories.
func WriteFile(t *testing.T, fs filesystem.FS, path, content string) {
	t.Helper()

	if err := fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create parent of %s: %v", path, err)
	}
	if err := fs.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

// ReadFile returns the content of path or fails the test.
func ReadFile(t *testing.T, fs filesystem.FS, path string) string {
	t.Helper()

	data, err := fs.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}
