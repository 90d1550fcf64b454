// Package platform decides whether archup can provision the host described
// by the command line.
package platform

import (
	"fmt"
	"strings"
)

// Operating systems recognised on the command line
const (
	OSLinux   = "linux"
	OSMacOS   = "macos"
	OSWindows = "windows"
	OSUnknown = "unknown"

	// Auto asks archup to read the host's os-release instead.
	Auto = "auto"
)

// DistroArch is the only distribution archup provisions.
const DistroArch = "arch"

var archNames = map[string]bool{
	"arch":       true,
	"arch linux": true,
	"archlinux":  true,
}

// knownDistros are recognised but unsupported.
var knownDistros = map[string]bool{
	"debian":    true,
	"ubuntu":    true,
	"linuxmint": true,
	"fedora":    true,
	"centos":    true,
	"rhel":      true,
	"opensuse":  true,
	"suse":      true,
}

// Detection is the outcome of the OS/distro dispatch.
type Detection struct {
	OS        string
	Distro    string
	Supported bool

	// Message is set when Supported is false.
	Message string
}

const unsupported = "archup supports Arch Linux only."

// Detect classifies the first two positional arguments. Missing values
// are treated as "unknown".
func Detect(args []string) Detection {
	d := Detection{OS: OSUnknown, Distro: OSUnknown}
	if len(args) > 0 {
		d.OS = normalize(args[0])
	}
	if len(args) > 1 {
		d.Distro = normalize(args[1])
	}
	return Classify(d.OS, d.Distro)
}

// Classify decides support for an already normalised os and distro.
func Classify(osName, distro string) Detection {
	d := Detection{OS: osName, Distro: distro}

	switch osName {
	case OSLinux:
		switch {
		case archNames[distro]:
			d.Distro = DistroArch
			d.Supported = true
		case knownDistros[distro]:
			d.Message = fmt.Sprintf("%s Detected %s distribution.", unsupported, distro)
		default:
			d.Message = unsupported
		}
	case OSMacOS, OSWindows:
		d.Message = fmt.Sprintf("%s Detected %s operating system.", unsupported, osName)
	default:
		d.Message = unsupported
	}
	return d
}

func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return OSUnknown
	}
	return strings.Join(strings.Fields(s), " ")
}
