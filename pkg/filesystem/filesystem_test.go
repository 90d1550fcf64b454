package filesystem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOS(t *testing.T) {
	fs := NewOS()
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "test.txt")

	require.NoError(t, fs.WriteFile(testFile, []byte("hello world"), 0644))

	info, err := fs.Stat(testFile)
	require.NoError(t, err)
	assert.Equal(t, "test.txt", info.Name())

	content, err := fs.ReadFile(testFile)
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(content))

	subDir := filepath.Join(tmpDir, "sub", "dir")
	require.NoError(t, fs.MkdirAll(subDir, 0755))
	assert.True(t, IsDir(fs, subDir))

	require.NoError(t, fs.Remove(testFile))
	assert.False(t, Exists(fs, testFile))

	require.NoError(t, fs.RemoveAll(filepath.Join(tmpDir, "sub")))
	assert.False(t, Exists(fs, subDir))
}

func TestAferoFS_ReadDirectoryFails(t *testing.T) {
	fs := NewAferoFS(afero.NewMemMapFs())
	require.NoError(t, fs.MkdirAll("/work/venv", 0755))

	_, err := fs.ReadFile("/work/venv")
	assert.Error(t, err)
	assert.True(t, Exists(fs, "/work/venv"))
	assert.True(t, IsDir(fs, "/work/venv"))
	assert.False(t, IsDir(fs, "/work/missing"))
}

func TestNewDryRun_DoesNotTouchDisk(t *testing.T) {
	tmpDir := t.TempDir()
	existing := filepath.Join(tmpDir, ".bashrc")
	require.NoError(t, os.WriteFile(existing, []byte("export A=1\n"), 0644))

	fs := NewDryRun()

	content, err := fs.ReadFile(existing)
	require.NoError(t, err)
	assert.Equal(t, "export A=1\n", string(content))

	require.NoError(t, fs.WriteFile(existing, []byte("changed\n"), 0644))
	overlay, err := fs.ReadFile(existing)
	require.NoError(t, err)
	assert.Equal(t, "changed\n", string(overlay))

	onDisk, err := os.ReadFile(existing)
	require.NoError(t, err)
	assert.Equal(t, "export A=1\n", string(onDisk))

	newFile := filepath.Join(tmpDir, ".env")
	require.NoError(t, fs.WriteFile(newFile, []byte("X=1\n"), 0644))
	_, err = os.Stat(newFile)
	assert.True(t, os.IsNotExist(err))
}

func TestMkdirTemp(t *testing.T) {
	fs := NewAferoFS(afero.NewMemMapFs())

	first, err := fs.MkdirTemp("/tmp", "yay-")
	require.NoError(t, err)
	second, err := fs.MkdirTemp("/tmp", "yay-")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, IsDir(fs, first))
	assert.Contains(t, filepath.Base(first), "yay-")
}
