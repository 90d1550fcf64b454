package cleanup_test

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/archup/pkg/cleanup"
	"github.com/arthur-debert/archup/pkg/errors"
	"github.com/arthur-debert/archup/pkg/filesystem"
	"github.com/arthur-debert/archup/pkg/paths"
	"github.com/arthur-debert/archup/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*paths.Paths, string) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	work := filepath.Join(home, "work")

	p, err := paths.New(work)
	require.NoError(t, err)
	return p, work
}

func TestClean(t *testing.T) {
	p, work := setup(t)
	build := filepath.Join(work, "archup-build")
	fs := testutil.NewMemFS(t, map[string]string{filepath.Join(build, "a", "b.txt"): "x"})

	outcome, err := cleanup.Clean(fs, p, "archup-build")
	require.NoError(t, err)
	assert.Equal(t, cleanup.Cleaned, outcome)
	assert.False(t, filesystem.Exists(fs, build))

	// already gone
	outcome, err = cleanup.Clean(fs, p, build)
	require.NoError(t, err)
	assert.Equal(t, cleanup.Cleaned, outcome)
}

func TestClean_Skipped(t *testing.T) {
	p, _ := setup(t)
	outcome, err := cleanup.Clean(testutil.NewMemFS(t, nil), p, "")
	require.NoError(t, err)
	assert.Equal(t, cleanup.Skipped, outcome)
}

func TestClean_RefusesProtected(t *testing.T) {
	p, work := setup(t)
	fs := testutil.NewMemFS(t, map[string]string{filepath.Join(work, "keep.txt"): "x"})

	for _, target := range []string{"/", "~", work, ".", ".."} {
		_, err := cleanup.Clean(fs, p, target)
		assert.True(t, errors.IsErrorCode(err, errors.ErrUnsafePath), target)
	}
	assert.True(t, filesystem.Exists(fs, filepath.Join(work, "keep.txt")))
}
