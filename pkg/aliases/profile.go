package aliases

import (
	"embed"
	"path"
	"strings"

	"github.com/arthur-debert/archup/pkg/errors"
	"github.com/arthur-debert/archup/pkg/filesystem"
)

//go:embed os
var profiles embed.FS

// ProfilePath is the embedded location of the profile for an os/distro.
func ProfilePath(osName, distro string) string {
	return path.Join("os", osName, strings.ReplaceAll(distro, " ", "_"), "alias.txt")
}

// Profile returns the embedded alias profile for an os/distro.
func Profile(osName, distro string) (string, error) {
	p := ProfilePath(osName, distro)
	data, err := profiles.ReadFile(p)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrNotFound, "no alias profile for %s/%s", osName, distro).WithDetail("path", p)
	}
	return string(data), nil
}

// Load returns the alias content from override when set, falling back to
// the embedded profile.
func Load(fs filesystem.FS, override, osName, distro string) (string, error) {
	if override == "" {
		return Profile(osName, distro)
	}
	if !filesystem.Exists(fs, override) {
		return "", errors.Newf(errors.ErrFileNotFound, "file not found: %s", override).WithDetail("path", override)
	}
	data, err := fs.ReadFile(override)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", override)
	}
	return string(data), nil
}
