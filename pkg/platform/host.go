package platform

import (
	"runtime"
	"strings"

	"github.com/arthur-debert/archup/pkg/errors"
	"github.com/arthur-debert/archup/pkg/filesystem"
	"github.com/joho/godotenv"
)

// OSReleasePath is where systemd distributions describe themselves.
const OSReleasePath = "/etc/os-release"

// DetectHost classifies the running machine. On Linux the distribution
// comes from os-release: ID=arch, or an ID_LIKE mentioning arch, counts
// as Arch.
func DetectHost(fs filesystem.FS) (Detection, error) {
	return detectHost(fs, runtime.GOOS)
}

func detectHost(fs filesystem.FS, goos string) (Detection, error) {
	switch goos {
	case "linux":
	case "darwin":
		return Classify(OSMacOS, OSUnknown), nil
	case "windows":
		return Classify(OSWindows, OSUnknown), nil
	default:
		return Classify(OSUnknown, OSUnknown), nil
	}

	data, err := fs.ReadFile(OSReleasePath)
	if err != nil {
		return Classify(OSLinux, OSUnknown), errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", OSReleasePath)
	}
	release, err := godotenv.Unmarshal(string(data))
	if err != nil {
		return Classify(OSLinux, OSUnknown), errors.Wrapf(err, errors.ErrConfigParse, "invalid %s", OSReleasePath)
	}

	id := normalize(release["ID"])
	for _, like := range strings.Fields(strings.ToLower(release["ID_LIKE"])) {
		if like == DistroArch {
			id = DistroArch
		}
	}
	return Classify(OSLinux, id), nil
}

// Resolve expands "auto" arguments using the host and otherwise defers to
// Detect.
func Resolve(fs filesystem.FS, args []string) (Detection, error) {
	if len(args) > 0 && normalize(args[0]) == Auto {
		return DetectHost(fs)
	}
	return Detect(args), nil
}
