// Package version carries the build metadata stamped in at release time.
package version

import "fmt"

// Set with -ldflags "-X github.com/arthur-debert/archup/internal/version.Version=..."
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// String is the one-line form printed by `archup version`.
func String() string {
	return fmt.Sprintf("archup %s (commit %s, built %s)", Version, Commit, Date)
}
