package packages_test

import (
	"context"
	"strings"
	"testing"

	"github.com/arthur-debert/archup/pkg/config"
	"github.com/arthur-debert/archup/pkg/errors"
	"github.com/arthur-debert/archup/pkg/filesystem"
	"github.com/arthur-debert/archup/pkg/packages"
	"github.com/arthur-debert/archup/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() config.PackagesConfig {
	return config.PackagesConfig{
		Manager:       "pacman",
		System:        []string{"firefox", "nodejs", "npm", "base-devel", "mariadb"},
		AURHelper:     "yay",
		AURHelperRepo: "https://aur.archlinux.org/yay.git",
		AUR:           []string{"visual-studio-code-bin"},
	}
}

func TestInstall_HelperPresent(t *testing.T) {
	r := testutil.NewFakeRunner().Installed("yay")
	fs := testutil.NewMemFS(t, nil)

	require.NoError(t, packages.NewInstaller(r, fs, testConfig()).Install(context.Background()))

	assert.Equal(t, []string{
		"sudo pacman -Sq --needed --noconfirm firefox nodejs npm base-devel mariadb",
		"yay -S --needed --noconfirm visual-studio-code-bin",
	}, r.Commands())
}

func TestInstall_BootstrapsHelper(t *testing.T) {
	r := testutil.NewFakeRunner()
	fs := testutil.NewMemFS(t, nil)

	require.NoError(t, packages.NewInstaller(r, fs, testConfig()).Install(context.Background()))

	cmds := r.Commands()
	require.Len(t, cmds, 4)
	assert.True(t, strings.HasPrefix(cmds[1], "git clone https://aur.archlinux.org/yay.git "))

	build, ok := r.Find("makepkg")
	require.True(t, ok)
	assert.Equal(t, "makepkg -si --noconfirm", build.String())
	assert.True(t, build.Interactive)
	assert.True(t, strings.HasSuffix(build.Dir, "/yay"))

	// the temporary build directory is gone
	assert.False(t, filesystem.Exists(fs, strings.TrimSuffix(build.Dir, "/yay")))
	assert.Equal(t, "yay -S --needed --noconfirm visual-studio-code-bin", cmds[3])
}

func TestInstall_PacmanFailureStops(t *testing.T) {
	r := testutil.NewFakeRunner().Installed("yay").Fail("sudo pacman", 1)

	err := packages.NewInstaller(r, testutil.NewMemFS(t, nil), testConfig()).Install(context.Background())
	assert.True(t, errors.IsErrorCode(err, errors.ErrCommandFailed))
	assert.False(t, r.Ran("yay"))
}

func TestInstall_BuildFailure(t *testing.T) {
	r := testutil.NewFakeRunner().Fail("makepkg", 2)

	err := packages.NewInstaller(r, testutil.NewMemFS(t, nil), testConfig()).Install(context.Background())
	assert.True(t, errors.IsErrorCode(err, errors.ErrCommandFailed))
	assert.False(t, r.Ran("yay -S"))
}

func TestInstall_NoAURPackages(t *testing.T) {
	cfg := testConfig()
	cfg.AUR = nil
	r := testutil.NewFakeRunner()

	require.NoError(t, packages.NewInstaller(r, testutil.NewMemFS(t, nil), cfg).Install(context.Background()))
	assert.Equal(t, 1, len(r.Calls()))
	assert.False(t, r.Ran("git clone"))
}
