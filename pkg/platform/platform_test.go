package platform

import (
	"testing"

	"github.com/arthur-debert/archup/pkg/errors"
	"github.com/arthur-debert/archup/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		supported bool
		distro    string
		message   string
	}{
		{"arch", []string{"linux", "arch"}, true, "arch", ""},
		{"arch linux", []string{"linux", "arch linux"}, true, "arch", ""},
		{"mixed case and spacing", []string{" Linux ", "Arch   Linux"}, true, "arch", ""},
		{"ubuntu", []string{"linux", "ubuntu"}, false, "ubuntu", "archup supports Arch Linux only. Detected ubuntu distribution."},
		{"fedora", []string{"linux", "fedora"}, false, "fedora", "archup supports Arch Linux only. Detected fedora distribution."},
		{"suse", []string{"linux", "suse"}, false, "suse", "archup supports Arch Linux only. Detected suse distribution."},
		{"unknown distro", []string{"linux", "gentoo"}, false, "gentoo", "archup supports Arch Linux only."},
		{"missing distro", []string{"linux"}, false, "unknown", "archup supports Arch Linux only."},
		{"macos", []string{"macos", "arch"}, false, "arch", "archup supports Arch Linux only. Detected macos operating system."},
		{"windows", []string{"windows"}, false, "unknown", "archup supports Arch Linux only. Detected windows operating system."},
		{"unknown os", []string{"beos", "arch"}, false, "arch", "archup supports Arch Linux only."},
		{"no args", nil, false, "unknown", "archup supports Arch Linux only."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Detect(tt.args)
			assert.Equal(t, tt.supported, d.Supported)
			assert.Equal(t, tt.distro, d.Distro)
			assert.Equal(t, tt.message, d.Message)
		})
	}
}

func TestDetectHost(t *testing.T) {
	tests := []struct {
		name      string
		release   string
		supported bool
		distro    string
	}{
		{"arch", "NAME=\"Arch Linux\"\nID=arch\n", true, "arch"},
		{"arch derivative", "NAME=EndeavourOS\nID=endeavouros\nID_LIKE=arch\n", true, "arch"},
		{"ubuntu", "NAME=\"Ubuntu\"\nID=ubuntu\nID_LIKE=debian\n", false, "ubuntu"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := testutil.NewMemFS(t, map[string]string{OSReleasePath: tt.release})

			d, err := detectHost(fs, "linux")
			require.NoError(t, err)
			assert.Equal(t, OSLinux, d.OS)
			assert.Equal(t, tt.supported, d.Supported)
			assert.Equal(t, tt.distro, d.Distro)
		})
	}

	t.Run("missing os-release", func(t *testing.T) {
		d, err := detectHost(testutil.NewMemFS(t, nil), "linux")
		assert.True(t, errors.IsErrorCode(err, errors.ErrFileAccess))
		assert.False(t, d.Supported)
	})

	t.Run("darwin", func(t *testing.T) {
		d, err := detectHost(testutil.NewMemFS(t, nil), "darwin")
		require.NoError(t, err)
		assert.Equal(t, "archup supports Arch Linux only. Detected macos operating system.", d.Message)
	})
}
