package status

import (
	"time"
)

// Report is a finished run: what was provisioned and how every step went.
type Report struct {
	Started  time.Time `toml:"started" yaml:"started"`
	Finished time.Time `toml:"finished" yaml:"finished"`
	OS       string    `toml:"os" yaml:"os"`
	Distro   string    `toml:"distro" yaml:"distro"`
	Project  string    `toml:"project,omitempty" yaml:"project,omitempty"`
	DryRun   bool      `toml:"dry_run" yaml:"dry_run"`
	Steps    []Entry   `toml:"steps" yaml:"steps"`
}

// Failed reports whether any step failed.
func (r Report) Failed() bool {
	for _, s := range r.Steps {
		if s.Outcome == Failed {
			return true
		}
	}
	return false
}
